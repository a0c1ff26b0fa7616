package domain

import "fmt"

// Resource statuses (§3.1). Available and Assigned are derived from the
// resource's current ProjectAssignments rather than stored independently;
// Inactive is the only status a caller sets directly, and it overrides the
// derived value until the resource is reactivated.
const (
	ResourceAvailable = "Available"
	ResourceAssigned  = "Assigned"
	ResourceInactive  = "Inactive"
)

// Resource types (§3.1); the set is extensible via Config.ResourceTypes, so
// these are defaults rather than an exhaustive enum.
const (
	ResourceTypeDeveloper = "Developer"
	ResourceTypeDesigner  = "Designer"
	ResourceTypeManager   = "Manager"
)

// ResourceScope distinguishes a company-pool resource from one owned by a
// single project (§3.1: "resources may be scoped to a company or to a
// single project").
const (
	ResourceScopeCompany = "Company"
	ResourceScopeProject = "Project"
)

type VacationPeriod struct {
	StartDate        string
	EndDate          string
	Approved         bool
	Type             string
	IsLayoff         bool
	CompensatedHours *float64
}

type ProjectAssignment struct {
	ProjectCode string
	StartDate   string
	EndDate     string
	Allocation  float64
}

// Resource is owned either by a Company (pool) or by a single Project.
type Resource struct {
	ID                  string
	Code                string
	Name                string
	Email               string
	ResourceType        string
	Status              string
	StartDate           string
	EndDate             string
	TimeOffBalanceHours float64
	VacationPeriods     []VacationPeriod
	ProjectAssignments  []ProjectAssignment
	Scope               string
	OwningProjectID     string
	CreatedAt           string
	UpdatedAt           string
	CreatedBy           string
}

// NewResource constructs a Resource in its derived Available state.
func NewResource(code, name, resourceType, scope, createdBy string) (Resource, error) {
	if name == "" {
		return Resource{}, fmt.Errorf("resource name must not be empty")
	}
	if scope != ResourceScopeCompany && scope != ResourceScopeProject {
		return Resource{}, fmt.Errorf("invalid resource scope %q", scope)
	}
	now := timestamp()
	return Resource{
		ID:           NewID(),
		Code:         code,
		Name:         name,
		ResourceType: resourceType,
		Status:       ResourceAvailable,
		Scope:        scope,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    createdBy,
	}, nil
}

// activeAssignment reports whether asOf falls within any project assignment
// window; asOf is a YYYY-MM-DD date string, comparable lexically like the
// rest of the domain's date fields.
func (r Resource) activeAssignment(asOf string) bool {
	for _, a := range r.ProjectAssignments {
		if a.StartDate != "" && asOf < a.StartDate {
			continue
		}
		if a.EndDate != "" && asOf > a.EndDate {
			continue
		}
		return true
	}
	return false
}

// RecomputeStatus derives Available/Assigned from ProjectAssignments as of
// asOf, leaving an Inactive status untouched (Inactive can only be cleared
// by Reactivate). This is called by the usecase layer after any assignment
// mutation, mirroring the way Task derives nothing but Resource must.
func (r Resource) RecomputeStatus(asOf string) Resource {
	if r.Status == ResourceInactive {
		return r
	}
	if r.activeAssignment(asOf) {
		r.Status = ResourceAssigned
	} else {
		r.Status = ResourceAvailable
	}
	return r
}

// AssignToProject adds or replaces the assignment window for projectCode.
// allocation is a percentage in (0, 100], per §3.1's "allocation% ∈ [0,100]".
func (r Resource) AssignToProject(projectCode, start, end string, allocation float64) (Resource, error) {
	if r.Status == ResourceInactive {
		return r, fmt.Errorf("resource %s is inactive", r.Code)
	}
	if allocation <= 0 || allocation > 100 {
		return r, fmt.Errorf("allocation must be in (0, 100], got %v", allocation)
	}
	found := false
	for i, a := range r.ProjectAssignments {
		if a.ProjectCode == projectCode {
			r.ProjectAssignments[i] = ProjectAssignment{ProjectCode: projectCode, StartDate: start, EndDate: end, Allocation: allocation}
			found = true
			break
		}
	}
	if !found {
		r.ProjectAssignments = append(r.ProjectAssignments, ProjectAssignment{ProjectCode: projectCode, StartDate: start, EndDate: end, Allocation: allocation})
	}
	r.UpdatedAt = timestamp()
	return r, nil
}

// UnassignFromProject removes the assignment for projectCode, if any.
func (r Resource) UnassignFromProject(projectCode string) Resource {
	out := r.ProjectAssignments[:0]
	for _, a := range r.ProjectAssignments {
		if a.ProjectCode != projectCode {
			out = append(out, a)
		}
	}
	r.ProjectAssignments = out
	r.UpdatedAt = timestamp()
	return r
}

// AddVacation appends a vacation/time-off period. Overlap and concurrency
// limits are enforced by internal/validate, which has visibility into the
// project's VacationRules; Resource only records the period.
func (r Resource) AddVacation(v VacationPeriod) Resource {
	r.VacationPeriods = append(r.VacationPeriods, v)
	r.UpdatedAt = timestamp()
	return r
}

// ApplyTimeOff debits hours from the balance, rejecting an overdraft.
func (r Resource) ApplyTimeOff(hours float64) (Resource, error) {
	if hours <= 0 {
		return r, fmt.Errorf("time-off hours must be > 0")
	}
	if hours > r.TimeOffBalanceHours {
		return r, fmt.Errorf("insufficient time-off balance: have %v, requested %v", r.TimeOffBalanceHours, hours)
	}
	r.TimeOffBalanceHours -= hours
	r.UpdatedAt = timestamp()
	return r, nil
}

// WithProfile updates the freely editable name/resourceType fields.
func (r Resource) WithProfile(name, resourceType string) (Resource, error) {
	if name == "" {
		return r, fmt.Errorf("resource name must not be empty")
	}
	r.Name = name
	r.ResourceType = resourceType
	r.UpdatedAt = timestamp()
	return r, nil
}

// Deactivate transitions a Resource to Inactive. Idempotent.
func (r Resource) Deactivate() Resource {
	if r.Status == ResourceInactive {
		return r
	}
	r.Status = ResourceInactive
	r.UpdatedAt = timestamp()
	return r
}

// Reactivate clears Inactive and recomputes the derived status as of asOf.
func (r Resource) Reactivate(asOf string) (Resource, error) {
	if r.Status != ResourceInactive {
		return r, fmt.Errorf("resource %s is not inactive", r.Code)
	}
	r.Status = ResourceAvailable
	r.UpdatedAt = timestamp()
	return r.RecomputeStatus(asOf), nil
}

// SoftDelete deactivates the resource; Resource has no separate deleted
// state, matching §3.1's note that resource removal is expressed as
// deactivation rather than file deletion.
func (r Resource) SoftDelete() Resource {
	return r.Deactivate()
}
