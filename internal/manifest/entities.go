package manifest

// WorkingHours is the daily working window used by Config and by the
// dependency engine's calendar (§4.G).
type WorkingHours struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// VacationRules configures the workspace- or project-level policy on
// concurrent and layoff vacations (§3.1, §4.F VacationRules).
type VacationRules struct {
	MaxConcurrentVacations       int      `yaml:"maxConcurrentVacations,omitempty"`
	AllowConcurrentLayoffs       bool     `yaml:"allowConcurrentLayoffs,omitempty"`
	RequireLayoffVacationPeriod  bool     `yaml:"requireLayoffVacationPeriod,omitempty"`
	LayoffPeriods                []Period `yaml:"layoffPeriods,omitempty"`
}

// Period is a plain start/end date window (used for layoff periods).
type Period struct {
	StartDate string `yaml:"startDate"`
	EndDate   string `yaml:"endDate"`
}

// ConfigSpec is the body of the single workspace Config manifest.
type ConfigSpec struct {
	ManagerName         string        `yaml:"managerName"`
	ManagerEmail        string        `yaml:"managerEmail"`
	DefaultTimezone     string        `yaml:"defaultTimezone"`
	WorkingHours        WorkingHours  `yaml:"workingHours"`
	WorkingDays         []string      `yaml:"workingDays"`
	Currency            string        `yaml:"currency,omitempty"`
	Locale              string        `yaml:"locale,omitempty"`
	DateFormat          string        `yaml:"dateFormat,omitempty"`
	DefaultTaskDuration int           `yaml:"defaultTaskDuration,omitempty"`
	ResourceTypes       []string      `yaml:"resourceTypes"`
	VacationRules       VacationRules `yaml:"vacationRules,omitempty"`
	MaxActiveTasks      int           `yaml:"maxActiveTasks,omitempty"`
}

// ConfigManifest is the on-disk config.yaml document.
type ConfigManifest struct {
	APIVersion string     `yaml:"apiVersion"`
	Kind       string     `yaml:"kind"`
	Metadata   Metadata   `yaml:"metadata"`
	Spec       ConfigSpec `yaml:"spec"`
}

// CompanySpec is the body of a Company manifest.
type CompanySpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Contact     string `yaml:"contact,omitempty"`
	Industry    string `yaml:"industry,omitempty"`
	Size        string `yaml:"size"`
	Status      string `yaml:"status"`
}

type CompanyManifest struct {
	APIVersion string      `yaml:"apiVersion"`
	Kind       string      `yaml:"kind"`
	Metadata   Metadata    `yaml:"metadata"`
	Spec       CompanySpec `yaml:"spec"`
}

// ProjectSpec is the body of a Project manifest.
type ProjectSpec struct {
	CompanyCode   string        `yaml:"companyCode"`
	Name          string        `yaml:"name"`
	Description   string        `yaml:"description,omitempty"`
	Timezone      string        `yaml:"timezone,omitempty"`
	StartDate     string        `yaml:"startDate,omitempty"`
	EndDate       string        `yaml:"endDate,omitempty"`
	Status        string        `yaml:"status"`
	VacationRules VacationRules `yaml:"vacationRules,omitempty"`
}

type ProjectManifest struct {
	APIVersion string      `yaml:"apiVersion"`
	Kind       string      `yaml:"kind"`
	Metadata   Metadata    `yaml:"metadata"`
	Spec       ProjectSpec `yaml:"spec"`
}

// Comment is a single entry in a task's comment log.
type Comment struct {
	ActorID string `yaml:"actorId"`
	At      string `yaml:"at"`
	Text    string `yaml:"text"`
}

// TaskSpec is the body of a Task manifest.
type TaskSpec struct {
	Name                string   `yaml:"name"`
	Description         string   `yaml:"description,omitempty"`
	Status              string   `yaml:"status"`
	Priority            string   `yaml:"priority"`
	Category            string   `yaml:"category,omitempty"`
	StartDate           string   `yaml:"startDate"`
	DueDate             string   `yaml:"dueDate"`
	ActualStartDate     string   `yaml:"actualStartDate,omitempty"`
	ActualEndDate       string   `yaml:"actualEndDate,omitempty"`
	EstimatedHours      float64  `yaml:"estimatedHours"`
	ActualHours         float64  `yaml:"actualHours,omitempty"`
	Predecessors        []string `yaml:"predecessors,omitempty"`
	AssignedResources   []string `yaml:"assignedResources,omitempty"`
	AcceptanceCriteria  []string `yaml:"acceptanceCriteria,omitempty"`
	Comments            []Comment `yaml:"comments,omitempty"`
}

type TaskManifest struct {
	APIVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Metadata   Metadata `yaml:"metadata"`
	Spec       TaskSpec `yaml:"spec"`
}

// VacationPeriod is one entry in a resource's vacation history (§3.1).
type VacationPeriod struct {
	StartDate         string   `yaml:"startDate"`
	EndDate           string   `yaml:"endDate"`
	Approved          bool     `yaml:"approved"`
	Type              string   `yaml:"type"`
	IsLayoff          bool     `yaml:"isLayoff,omitempty"`
	CompensatedHours  *float64 `yaml:"compensatedHours,omitempty"`
}

// ProjectAssignment is a resource's allocation on one project.
type ProjectAssignment struct {
	ProjectCode string  `yaml:"projectCode"`
	StartDate   string  `yaml:"startDate"`
	EndDate     string  `yaml:"endDate,omitempty"`
	Allocation  float64 `yaml:"allocationPercent"`
}

// ResourceSpec is the body of a Resource manifest.
type ResourceSpec struct {
	Name                string              `yaml:"name"`
	Email               string              `yaml:"email,omitempty"`
	ResourceType        string              `yaml:"resourceType"`
	Status              string              `yaml:"status"`
	StartDate           string              `yaml:"startDate,omitempty"`
	EndDate             string              `yaml:"endDate,omitempty"`
	TimeOffBalanceHours float64             `yaml:"timeOffBalanceHours,omitempty"`
	VacationPeriods     []VacationPeriod    `yaml:"vacationPeriods,omitempty"`
	ProjectAssignments  []ProjectAssignment `yaml:"projectAssignments,omitempty"`
	Scope               string              `yaml:"scope"`
	OwningProjectID     string              `yaml:"owningProjectId,omitempty"`
}

type ResourceManifest struct {
	APIVersion string       `yaml:"apiVersion"`
	Kind       string       `yaml:"kind"`
	Metadata   Metadata     `yaml:"metadata"`
	Spec       ResourceSpec `yaml:"spec"`
}
