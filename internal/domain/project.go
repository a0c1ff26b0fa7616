package domain

import "fmt"

// Project statuses and their legal transition graph (§4.B):
//
//	Planned -> InProgress -> (OnHold <-> InProgress) -> Completed
//	any -> Cancelled
const (
	ProjectPlanned    = "Planned"
	ProjectInProgress = "InProgress"
	ProjectOnHold     = "OnHold"
	ProjectCompleted  = "Completed"
	ProjectCancelled  = "Cancelled"
)

// Project is owned by exactly one Company (§3.1).
type Project struct {
	ID            string
	Code          string
	CompanyCode   string
	Name          string
	Description   string
	Timezone      string
	StartDate     string
	EndDate       string
	Status        string
	VacationRules VacationRules
	CreatedAt     string
	UpdatedAt     string
	CreatedBy     string
}

// VacationRules mirrors manifest.VacationRules for the domain layer, kept
// as a plain value so validate/engine don't need to import manifest.
type VacationRules struct {
	MaxConcurrentVacations      int
	AllowConcurrentLayoffs      bool
	RequireLayoffVacationPeriod bool
	LayoffPeriods               []Period
}

type Period struct {
	StartDate string
	EndDate   string
}

// NewProject constructs a Project in Planned state.
func NewProject(code, companyCode, name, createdBy string) (Project, error) {
	if name == "" {
		return Project{}, fmt.Errorf("project name must not be empty")
	}
	if companyCode == "" {
		return Project{}, fmt.Errorf("project must belong to a company")
	}
	now := timestamp()
	return Project{
		ID:          NewID(),
		Code:        code,
		CompanyCode: companyCode,
		Name:        name,
		Status:      ProjectPlanned,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   createdBy,
	}, nil
}

var projectTransitions = map[string]map[string]bool{
	ProjectPlanned:    {ProjectInProgress: true, ProjectCancelled: true},
	ProjectInProgress: {ProjectOnHold: true, ProjectCompleted: true, ProjectCancelled: true},
	ProjectOnHold:     {ProjectInProgress: true, ProjectCancelled: true},
	ProjectCompleted:  {ProjectInProgress: true, ProjectCancelled: true}, // reopen, admin only
	ProjectCancelled:  {},
}

// CanTransition reports whether status -> next is an edge of the state
// graph. That includes reopening Completed -> InProgress, which callers
// must additionally gate on admin privilege (§4.B).
func (p Project) CanTransition(next string) bool {
	allowed, ok := projectTransitions[p.Status]
	return ok && allowed[next]
}

// TransitionStatus moves the project to next, enforcing the state graph.
// admin bypasses the "reopen requires admin" gate on Completed -> InProgress.
func (p Project) TransitionStatus(next string, admin bool) (Project, error) {
	if next == ProjectCancelled {
		p.Status = ProjectCancelled
		p.UpdatedAt = timestamp()
		return p, nil
	}
	if p.Status == ProjectCompleted && next == ProjectInProgress && !admin {
		return p, fmt.Errorf("reopening a Completed project requires admin")
	}
	if !p.CanTransition(next) {
		return p, fmt.Errorf("invalid project status transition %s -> %s", p.Status, next)
	}
	p.Status = next
	p.UpdatedAt = timestamp()
	return p, nil
}

// mutable reports whether name/description/dates may still be edited.
// Completed forbids further mutation except through TransitionStatus's
// admin reopen path (§4.B).
func (p Project) mutable() bool {
	return p.Status == ProjectPlanned || p.Status == ProjectInProgress
}

// WithProfile updates name/description. Legal in Planned and InProgress.
func (p Project) WithProfile(name, description string) (Project, error) {
	if !p.mutable() {
		return p, fmt.Errorf("project %s is not editable in status %s", p.Code, p.Status)
	}
	if name == "" {
		return p, fmt.Errorf("project name must not be empty")
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = timestamp()
	return p, nil
}

// WithDates sets start/end. Once set, dates may not be cleared (§4.B); an
// empty incoming value that would clear an already-set date is rejected.
func (p Project) WithDates(start, end string) (Project, error) {
	if !p.mutable() {
		return p, fmt.Errorf("project %s is not editable in status %s", p.Code, p.Status)
	}
	if p.StartDate != "" && start == "" {
		return p, fmt.Errorf("project start date may not be cleared once set")
	}
	if p.EndDate != "" && end == "" {
		return p, fmt.Errorf("project end date may not be cleared once set")
	}
	if start != "" && end != "" && start > end {
		return p, fmt.Errorf("project start date must be <= end date")
	}
	p.StartDate = start
	p.EndDate = end
	p.UpdatedAt = timestamp()
	return p, nil
}

// SoftDelete transitions a Project to Cancelled. Idempotent.
func (p Project) SoftDelete() Project {
	if p.Status == ProjectCancelled {
		return p
	}
	p.Status = ProjectCancelled
	p.UpdatedAt = timestamp()
	return p
}
