package validate

import (
	"regexp"
	"strings"

	"tasktaskrevolution/internal/domain"
)

// Snapshot is the full set of loaded entities a system-wide validate pass
// runs against; individual use-cases instead call the narrower per-entity
// rule functions directly on their candidate post-state.
type Snapshot struct {
	Config    domain.Config
	Companies []domain.Company
	Projects  []domain.Project
	Tasks     map[string][]domain.Task     // keyed by "companyCode/projectCode"
	Resources map[string][]domain.Resource // keyed by "Company:code" or "Project:companyCode/projectCode"
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IdentityRules: code format, non-empty name, well-formed email.
func IdentityRules(codes map[string]int, name, code, email, entityKind string) Result {
	var vs []Violation
	if name == "" {
		vs = append(vs, Violation{Severity: SeverityError, Category: entityKind + "/Identity", Message: "name must not be empty", EntityCode: code, Field: "name"})
	}
	if codes[code] > 1 {
		vs = append(vs, Violation{Severity: SeverityError, Category: entityKind + "/Identity", Message: "code is not unique in scope", EntityCode: code, Field: "code", SuggestedFix: "rename one of the duplicates"})
	}
	if email != "" && !emailPattern.MatchString(email) {
		vs = append(vs, Violation{Severity: SeverityWarning, Category: entityKind + "/Identity", Message: "email is not well-formed", EntityCode: code, Field: "email"})
	}
	return Result{Violations: vs}
}

// ReferentialProject checks project.companyCode exists and is not Inactive.
func ReferentialProject(p domain.Project, companies map[string]domain.Company) Result {
	c, ok := companies[p.CompanyCode]
	if !ok {
		return Violated(Violation{Severity: SeverityError, Category: "Project/Referential", Message: "companyCode does not reference a known company", EntityCode: p.Code, Field: "companyCode"})
	}
	if c.Status == domain.CompanyInactive {
		return Violated(Violation{Severity: SeverityError, Category: "Project/Referential", Message: "company is Inactive", EntityCode: p.Code, Field: "companyCode", SuggestedFix: "reactivate the company or move the project"})
	}
	return Satisfied()
}

// ReferentialTask checks predecessors exist in the same project and
// assignedResources resolve in project or company scope.
func ReferentialTask(t domain.Task, tasksInProject map[string]domain.Task, resourceCodes map[string]bool) Result {
	var vs []Violation
	for _, pred := range t.Predecessors {
		if _, ok := tasksInProject[pred]; !ok {
			vs = append(vs, Violation{Severity: SeverityError, Category: "Task/Referential", Message: "predecessor does not exist in this project", EntityCode: t.Code, Field: "predecessors", SuggestedFix: "remove or correct " + pred})
		}
	}
	for _, res := range t.AssignedResources {
		if !resourceCodes[res] {
			vs = append(vs, Violation{Severity: SeverityError, Category: "Task/Referential", Message: "assigned resource does not resolve", EntityCode: t.Code, Field: "assignedResources", SuggestedFix: "remove or correct " + res})
		}
	}
	return Result{Violations: vs}
}

// TemporalRange enforces start <= end for any dated entity.
func TemporalRange(entityCode, category, start, end string) Result {
	if start != "" && end != "" && start > end {
		return Violated(Violation{Severity: SeverityError, Category: category, Message: "start date must be <= end date", EntityCode: entityCode, Field: "dates"})
	}
	return Satisfied()
}

// TemporalTaskWithinProject checks a task's window falls within its
// project's declared window, when both are set.
func TemporalTaskWithinProject(t domain.Task, p domain.Project) Result {
	var vs []Violation
	if p.StartDate != "" && t.StartDate != "" && t.StartDate < p.StartDate {
		vs = append(vs, Violation{Severity: SeverityWarning, Category: "Task/Temporal", Message: "task starts before project start", EntityCode: t.Code, Field: "startDate"})
	}
	if p.EndDate != "" && t.DueDate != "" && t.DueDate > p.EndDate {
		vs = append(vs, Violation{Severity: SeverityWarning, Category: "Task/Temporal", Message: "task due date is after project end", EntityCode: t.Code, Field: "dueDate"})
	}
	return Result{Violations: vs}
}

// ResourceTypeRule checks resource.resourceType is declared in Config.
func ResourceTypeRule(r domain.Resource, cfg domain.Config) Result {
	if !cfg.AllowsResourceType(r.ResourceType) {
		return Violated(Violation{
			Severity: SeverityError, Category: "Resource/ResourceType", Message: "resourceType is not in declared resourceTypes",
			EntityCode: r.Code, Field: "resourceType", SuggestedFix: "add it to config.resourceTypes or use an existing type",
		})
	}
	return Satisfied()
}

// VacationOverlap enforces §3.1's VacationPeriod invariant: no overlap for
// a resource's non-layoff vacations; layoff overlaps require Config to
// allow concurrent layoffs and both periods to be layoff-type.
func VacationOverlap(r domain.Resource, cfg domain.Config) Result {
	var vs []Violation
	periods := r.VacationPeriods
	for i := 0; i < len(periods); i++ {
		for j := i + 1; j < len(periods); j++ {
			a, b := periods[i], periods[j]
			if !overlaps(a.StartDate, a.EndDate, b.StartDate, b.EndDate) {
				continue
			}
			bothLayoff := a.IsLayoff && b.IsLayoff
			if bothLayoff && cfg.VacationRules.AllowConcurrentLayoffs {
				continue
			}
			vs = append(vs, Violation{
				Severity: SeverityError, Category: "Resource/Vacation", Message: "vacation periods overlap",
				EntityCode: r.Code, Field: "vacationPeriods", SuggestedFix: "adjust one of the overlapping windows",
			})
		}
	}
	if cfg.VacationRules.RequireLayoffVacationPeriod {
		for _, v := range periods {
			if !v.IsLayoff {
				continue
			}
			covered := false
			for _, lp := range cfg.VacationRules.LayoffPeriods {
				if overlaps(v.StartDate, v.EndDate, lp.StartDate, lp.EndDate) {
					covered = true
					break
				}
			}
			if !covered {
				vs = append(vs, Violation{
					Severity: SeverityError, Category: "Resource/Vacation", Message: "layoff vacation does not overlap a declared layoff period",
					EntityCode: r.Code, Field: "vacationPeriods",
				})
			}
		}
	}
	return Result{Violations: vs}
}

// ConcurrentVacationLimit checks that no more than maxConcurrent resources
// in a project are on non-layoff vacation at once, sampled at each
// non-layoff vacation's start date.
func ConcurrentVacationLimit(resources []domain.Resource, maxConcurrent int) Result {
	if maxConcurrent <= 0 {
		return Satisfied()
	}
	var boundaries []string
	for _, r := range resources {
		for _, v := range r.VacationPeriods {
			if v.IsLayoff {
				continue
			}
			boundaries = append(boundaries, v.StartDate)
		}
	}
	var vs []Violation
	for _, day := range boundaries {
		count := 0
		for _, r := range resources {
			for _, v := range r.VacationPeriods {
				if v.IsLayoff {
					continue
				}
				if day >= v.StartDate && day <= v.EndDate {
					count++
					break
				}
			}
		}
		if count > maxConcurrent {
			vs = append(vs, Violation{
				Severity: SeverityError, Category: "Project/Vacation", Message: "too many resources on concurrent vacation",
				EntityCode: day, Field: "vacationPeriods", SuggestedFix: "stagger vacations or raise maxConcurrentVacations",
			})
			break
		}
	}
	return Result{Violations: vs}
}

// WIPRule sums each resource's active overlapping assignments against
// Config.MaxActiveTasks (0 disables the check): for every assignment, count
// how many others' windows overlap it, and flag the resource if any such
// overlapping-window sum exceeds the limit.
func WIPRule(r domain.Resource, maxActiveTasks int) Result {
	if maxActiveTasks <= 0 {
		return Satisfied()
	}
	for i, a := range r.ProjectAssignments {
		sum := 1
		for j, other := range r.ProjectAssignments {
			if i == j {
				continue
			}
			if overlaps(a.StartDate, a.EndDate, other.StartDate, other.EndDate) {
				sum++
			}
		}
		if sum > maxActiveTasks {
			return Violated(Violation{
				Severity: SeverityWarning, Category: "Resource/WIP", Message: "resource exceeds max active assignments in an overlapping window",
				EntityCode: r.Code, Field: "projectAssignments", SuggestedFix: "reassign or raise maxActiveTasks",
			})
		}
	}
	return Satisfied()
}

func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	if aStart == "" || aEnd == "" || bStart == "" || bEnd == "" {
		return false
	}
	return aStart <= bEnd && bStart <= aEnd
}

// CodeFormat rejects codes containing whitespace, mirroring the
// upper-snake convention GenerateCode produces (§3.3).
func CodeFormat(code, entityKind string) Result {
	if code == "" {
		return Satisfied()
	}
	if strings.ContainsAny(code, " \t\n") {
		return Violated(Violation{Severity: SeverityWarning, Category: entityKind + "/Identity", Message: "code contains whitespace", EntityCode: code, Field: "code"})
	}
	return Satisfied()
}
