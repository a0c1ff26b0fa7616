package domain

import "fmt"

// Task statuses and transition graph (§4.B):
//
//	Planned -> ToDo -> InProgress -> Done
//	any -> Blocked (reversible)
//	any -> Cancelled (terminal)
const (
	TaskPlanned    = "Planned"
	TaskToDo       = "ToDo"
	TaskInProgress = "InProgress"
	TaskDone       = "Done"
	TaskBlocked    = "Blocked"
	TaskCancelled  = "Cancelled"
)

// Task priorities (§3.1).
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// Task is owned by exactly one Project (§3.1).
type Task struct {
	ID                 string
	Code               string
	ProjectCode        string
	Name               string
	Description        string
	Status             string
	Priority           string
	Category           string
	StartDate          string
	DueDate            string
	ActualStartDate    string
	ActualEndDate      string
	EstimatedHours     float64
	ActualHours        float64
	Predecessors       []string
	AssignedResources  []string
	AcceptanceCriteria []string
	Comments           []Comment
	CreatedAt          string
	UpdatedAt          string
	CreatedBy          string
}

type Comment struct {
	ActorID string
	At      string
	Text    string
}

// NewTask constructs a Task in Planned state.
func NewTask(code, projectCode, name string, start, due string, estimatedHours float64, createdBy string) (Task, error) {
	if name == "" {
		return Task{}, fmt.Errorf("task name must not be empty")
	}
	if projectCode == "" {
		return Task{}, fmt.Errorf("task must belong to a project")
	}
	if start != "" && due != "" && start > due {
		return Task{}, fmt.Errorf("task start date must be <= due date")
	}
	if estimatedHours < 0 {
		return Task{}, fmt.Errorf("task estimatedHours must be >= 0")
	}
	now := timestamp()
	return Task{
		ID:             NewID(),
		Code:           code,
		ProjectCode:    projectCode,
		Name:           name,
		Status:         TaskPlanned,
		Priority:       PriorityMedium,
		StartDate:      start,
		DueDate:        due,
		EstimatedHours: estimatedHours,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      createdBy,
	}, nil
}

var taskTransitions = map[string]map[string]bool{
	TaskPlanned:    {TaskToDo: true, TaskBlocked: true, TaskCancelled: true},
	TaskToDo:       {TaskInProgress: true, TaskBlocked: true, TaskCancelled: true},
	TaskInProgress: {TaskDone: true, TaskBlocked: true, TaskCancelled: true},
	TaskBlocked:    {TaskPlanned: true, TaskToDo: true, TaskInProgress: true, TaskCancelled: true},
	TaskDone:       {TaskBlocked: true, TaskCancelled: true},
	TaskCancelled:  {},
}

func (t Task) CanTransition(next string) bool {
	allowed, ok := taskTransitions[t.Status]
	return ok && allowed[next]
}

// TransitionStatus moves the task to next. predecessorsSatisfied must be
// supplied by the caller (usecase layer, via the repository) since Task
// alone cannot see its predecessors' current status (§4.B: "Transition to
// Done requires all predecessors Done or Cancelled").
func (t Task) TransitionStatus(next string, predecessorsSatisfied bool) (Task, error) {
	if !t.CanTransition(next) {
		return t, fmt.Errorf("invalid task status transition %s -> %s", t.Status, next)
	}
	if next == TaskDone && !predecessorsSatisfied {
		return t, fmt.Errorf("task %s cannot become Done: predecessors not Done/Cancelled", t.Code)
	}
	now := timestamp()
	t.Status = next
	t.UpdatedAt = now
	if next == TaskDone {
		t.ActualEndDate = now[:10]
	}
	return t, nil
}

// SoftDelete transitions a Task to Cancelled. Idempotent.
func (t Task) SoftDelete() Task {
	if t.Status == TaskCancelled {
		return t
	}
	t.Status = TaskCancelled
	t.UpdatedAt = timestamp()
	return t
}

// WithPredecessors replaces the predecessor list.
func (t Task) WithPredecessors(preds []string) Task {
	t.Predecessors = preds
	t.UpdatedAt = timestamp()
	return t
}

// AddPredecessor appends a predecessor code if not already present.
func (t Task) AddPredecessor(code string) Task {
	for _, p := range t.Predecessors {
		if p == code {
			return t
		}
	}
	t.Predecessors = append(t.Predecessors, code)
	t.UpdatedAt = timestamp()
	return t
}

// RemovePredecessor removes a predecessor code if present.
func (t Task) RemovePredecessor(code string) Task {
	out := t.Predecessors[:0]
	for _, p := range t.Predecessors {
		if p != code {
			out = append(out, p)
		}
	}
	t.Predecessors = out
	t.UpdatedAt = timestamp()
	return t
}

// AssignResource adds a resource code to the assigned set (idempotent).
func (t Task) AssignResource(code string) Task {
	for _, r := range t.AssignedResources {
		if r == code {
			return t
		}
	}
	t.AssignedResources = append(t.AssignedResources, code)
	t.UpdatedAt = timestamp()
	return t
}

// UnassignResource removes a resource code from the assigned set.
func (t Task) UnassignResource(code string) Task {
	out := t.AssignedResources[:0]
	for _, r := range t.AssignedResources {
		if r != code {
			out = append(out, r)
		}
	}
	t.AssignedResources = out
	t.UpdatedAt = timestamp()
	return t
}

// AddComment appends a comment to the task's log.
func (t Task) AddComment(actorID, text string) Task {
	t.Comments = append(t.Comments, Comment{ActorID: actorID, At: timestamp(), Text: text})
	t.UpdatedAt = timestamp()
	return t
}

// WithSchedule updates the declared start/due window and estimate.
func (t Task) WithSchedule(start, due string, estimatedHours float64) (Task, error) {
	if start != "" && due != "" && start > due {
		return t, fmt.Errorf("task start date must be <= due date")
	}
	if estimatedHours < 0 {
		return t, fmt.Errorf("task estimatedHours must be >= 0")
	}
	t.StartDate = start
	t.DueDate = due
	t.EstimatedHours = estimatedHours
	t.UpdatedAt = timestamp()
	return t, nil
}
