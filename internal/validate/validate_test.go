package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/validate"
)

func TestAndAccumulatesViolations(t *testing.T) {
	alwaysOne := func(subject int) validate.Result {
		return validate.Violated(validate.Violation{Severity: validate.SeverityError, Category: "x", Message: "m", EntityCode: "c"})
	}
	spec := validate.And(alwaysOne, alwaysOne)
	r := spec(0)
	assert.Len(t, r.Violations, 2)
}

func TestOrShortCircuitsOnFirstSatisfied(t *testing.T) {
	fail := func(subject int) validate.Result {
		return validate.Violated(validate.Violation{Severity: validate.SeverityError, Category: "x", Message: "m"})
	}
	ok := func(subject int) validate.Result { return validate.Satisfied() }
	spec := validate.Or(fail, ok)
	assert.True(t, spec(0).OK(), "expected Or to be satisfied when one operand passes")
}

func TestResourceTypeRuleRejectsUndeclaredType(t *testing.T) {
	cfg, _ := domain.NewDefaultConfig("Alice", "")
	r, _ := domain.NewResource("X", "X", "TipoInvalido", domain.ResourceScopeCompany, "root")
	res := validate.ResourceTypeRule(r, cfg)
	assert.False(t, res.OK(), "expected violation for undeclared resource type")
	if assert.NotEmpty(t, res.Violations) {
		assert.Equal(t, "Resource/ResourceType", res.Violations[0].Category)
	}
}

func TestVacationOverlapRejectsNonLayoffOverlap(t *testing.T) {
	cfg, _ := domain.NewDefaultConfig("Alice", "")
	r, _ := domain.NewResource("DEV1", "Dev", domain.ResourceTypeDeveloper, domain.ResourceScopeCompany, "root")
	r = r.AddVacation(domain.VacationPeriod{StartDate: "2024-01-01", EndDate: "2024-01-10", Type: "Vacation"})
	r = r.AddVacation(domain.VacationPeriod{StartDate: "2024-01-05", EndDate: "2024-01-15", Type: "Vacation"})
	res := validate.VacationOverlap(r, cfg)
	assert.False(t, res.OK(), "expected overlap violation")
}

func TestVacationOverlapAllowsConcurrentLayoffsWhenConfigured(t *testing.T) {
	cfg, _ := domain.NewDefaultConfig("Alice", "")
	cfg.VacationRules.AllowConcurrentLayoffs = true
	r, _ := domain.NewResource("DEV1", "Dev", domain.ResourceTypeDeveloper, domain.ResourceScopeCompany, "root")
	r = r.AddVacation(domain.VacationPeriod{StartDate: "2024-01-01", EndDate: "2024-01-10", Type: "Layoff", IsLayoff: true})
	r = r.AddVacation(domain.VacationPeriod{StartDate: "2024-01-05", EndDate: "2024-01-15", Type: "Layoff", IsLayoff: true})
	res := validate.VacationOverlap(r, cfg)
	assert.True(t, res.OK(), "expected concurrent layoffs to be allowed")
}

func TestReferentialTaskFlagsUnknownPredecessor(t *testing.T) {
	task, _ := domain.NewTask("B", "PROJ", "B", "", "", 0, "root")
	task = task.AddPredecessor("MISSING")
	res := validate.ReferentialTask(task, map[string]domain.Task{}, map[string]bool{})
	assert.False(t, res.OK(), "expected unknown predecessor to be flagged")
}

func TestWIPRuleSumsOnlyOverlappingWindows(t *testing.T) {
	cfg, _ := domain.NewDefaultConfig("Alice", "")
	r, _ := domain.NewResource("DEV1", "Dev", domain.ResourceTypeDeveloper, domain.ResourceScopeCompany, "root")
	r, _ = r.AssignToProject("A", "2024-01-01", "2024-01-31", 100)
	r, _ = r.AssignToProject("B", "2024-06-01", "2024-06-30", 100)
	assert.True(t, validate.WIPRule(r, cfg.MaxActiveTasks).OK() || cfg.MaxActiveTasks <= 0,
		"non-overlapping assignments must not sum together")

	r, _ = r.AssignToProject("C", "2024-01-15", "2024-02-15", 100)
	res := validate.WIPRule(r, 1)
	assert.False(t, res.OK(), "expected overlapping A/C windows to exceed maxActiveTasks=1")
}
