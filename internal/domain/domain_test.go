package domain_test

import (
	"testing"

	"tasktaskrevolution/internal/domain"
)

func TestCompanySoftDeleteIdempotent(t *testing.T) {
	c, err := domain.NewCompany("ACME", "Acme Inc", "", "root")
	if err != nil {
		t.Fatalf("NewCompany: %v", err)
	}
	first := c.SoftDelete()
	second := first.SoftDelete()
	if first.Status != domain.CompanyInactive || second.Status != domain.CompanyInactive {
		t.Fatalf("expected Inactive after soft delete, got %s then %s", first.Status, second.Status)
	}
	if first.UpdatedAt != "" && second.UpdatedAt != first.UpdatedAt {
		t.Fatalf("idempotent soft delete must not touch UpdatedAt again, got %s -> %s", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestCompanyCannotReceiveProjectsWhenSuspended(t *testing.T) {
	c, _ := domain.NewCompany("ACME", "Acme Inc", domain.CompanySmall, "root")
	c, err := c.SetStatus(domain.CompanySuspended)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if c.CanReceiveProjects() {
		t.Fatal("suspended company must not receive new projects")
	}
}

func TestProjectTransitionGraph(t *testing.T) {
	p, err := domain.NewProject("WEBSITE", "ACME", "Website Revamp", "root")
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	if p.Status != domain.ProjectPlanned {
		t.Fatalf("expected Planned, got %s", p.Status)
	}
	p, err = p.TransitionStatus(domain.ProjectInProgress, false)
	if err != nil {
		t.Fatalf("Planned -> InProgress: %v", err)
	}
	p, err = p.TransitionStatus(domain.ProjectOnHold, false)
	if err != nil {
		t.Fatalf("InProgress -> OnHold: %v", err)
	}
	p, err = p.TransitionStatus(domain.ProjectInProgress, false)
	if err != nil {
		t.Fatalf("OnHold -> InProgress: %v", err)
	}
	p, err = p.TransitionStatus(domain.ProjectCompleted, false)
	if err != nil {
		t.Fatalf("InProgress -> Completed: %v", err)
	}
	if _, err := p.TransitionStatus(domain.ProjectInProgress, false); err == nil {
		t.Fatal("expected reopen without admin to be rejected")
	}
	if _, err := p.TransitionStatus(domain.ProjectInProgress, true); err != nil {
		t.Fatalf("admin reopen should be allowed: %v", err)
	}
}

func TestProjectCancelledIsTerminal(t *testing.T) {
	p, _ := domain.NewProject("WEBSITE", "ACME", "Website Revamp", "root")
	p, err := p.TransitionStatus(domain.ProjectCancelled, false)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := p.TransitionStatus(domain.ProjectInProgress, true); err == nil {
		t.Fatal("expected Cancelled to be terminal even for admin")
	}
}

func TestProjectDatesCannotBeCleared(t *testing.T) {
	p, _ := domain.NewProject("WEBSITE", "ACME", "Website Revamp", "root")
	p, err := p.WithDates("2024-01-01", "2024-06-01")
	if err != nil {
		t.Fatalf("WithDates: %v", err)
	}
	if _, err := p.WithDates("", "2024-06-01"); err == nil {
		t.Fatal("expected clearing start date to be rejected")
	}
}

func TestTaskDoneRequiresPredecessorsSatisfied(t *testing.T) {
	task, err := domain.NewTask("SETUP", "WEBSITE", "Setup", "2024-01-01", "2024-01-05", 8, "root")
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	task, _ = task.TransitionStatus(domain.TaskToDo, true)
	task, _ = task.TransitionStatus(domain.TaskInProgress, true)
	if _, err := task.TransitionStatus(domain.TaskDone, false); err == nil {
		t.Fatal("expected Done to be rejected when predecessors unsatisfied")
	}
	task, err = task.TransitionStatus(domain.TaskDone, true)
	if err != nil {
		t.Fatalf("Done with predecessors satisfied: %v", err)
	}
	if task.ActualEndDate == "" {
		t.Fatal("expected ActualEndDate to be stamped on Done")
	}
}

func TestTaskBlockedIsReversible(t *testing.T) {
	task, _ := domain.NewTask("SETUP", "WEBSITE", "Setup", "", "", 0, "root")
	task, err := task.TransitionStatus(domain.TaskBlocked, false)
	if err != nil {
		t.Fatalf("Planned -> Blocked: %v", err)
	}
	if _, err := task.TransitionStatus(domain.TaskToDo, false); err != nil {
		t.Fatalf("Blocked -> ToDo should be legal: %v", err)
	}
}

func TestTaskCancelledFromAnyState(t *testing.T) {
	task, _ := domain.NewTask("SETUP", "WEBSITE", "Setup", "", "", 0, "root")
	task, _ = task.TransitionStatus(domain.TaskToDo, false)
	task, err := task.TransitionStatus(domain.TaskCancelled, false)
	if err != nil {
		t.Fatalf("ToDo -> Cancelled: %v", err)
	}
	if _, err := task.TransitionStatus(domain.TaskToDo, false); err == nil {
		t.Fatal("expected Cancelled to be terminal")
	}
}

func TestTaskPredecessorManagement(t *testing.T) {
	task, _ := domain.NewTask("BUILD", "WEBSITE", "Build", "", "", 0, "root")
	task = task.AddPredecessor("SETUP")
	task = task.AddPredecessor("SETUP")
	if len(task.Predecessors) != 1 {
		t.Fatalf("expected AddPredecessor to be idempotent, got %v", task.Predecessors)
	}
	task = task.RemovePredecessor("SETUP")
	if len(task.Predecessors) != 0 {
		t.Fatalf("expected predecessor removed, got %v", task.Predecessors)
	}
}

func TestResourceRecomputeStatus(t *testing.T) {
	r, err := domain.NewResource("DEV1", "Dev One", domain.ResourceTypeDeveloper, domain.ResourceScopeCompany, "root")
	if err != nil {
		t.Fatalf("NewResource: %v", err)
	}
	if r.Status != domain.ResourceAvailable {
		t.Fatalf("expected Available, got %s", r.Status)
	}
	r, err = r.AssignToProject("WEBSITE", "2024-01-01", "2024-06-01", 50)
	if err != nil {
		t.Fatalf("AssignToProject: %v", err)
	}
	r = r.RecomputeStatus("2024-03-01")
	if r.Status != domain.ResourceAssigned {
		t.Fatalf("expected Assigned while inside window, got %s", r.Status)
	}
	r = r.RecomputeStatus("2024-12-01")
	if r.Status != domain.ResourceAvailable {
		t.Fatalf("expected Available once outside window, got %s", r.Status)
	}
}

func TestResourceInactiveOverridesDerivedStatus(t *testing.T) {
	r, _ := domain.NewResource("DEV1", "Dev One", domain.ResourceTypeDeveloper, domain.ResourceScopeCompany, "root")
	r, _ = r.AssignToProject("WEBSITE", "2024-01-01", "2024-06-01", 100)
	r = r.Deactivate()
	r = r.RecomputeStatus("2024-03-01")
	if r.Status != domain.ResourceInactive {
		t.Fatalf("expected Inactive to override derived Assigned, got %s", r.Status)
	}
	r, err := r.Reactivate("2024-03-01")
	if err != nil {
		t.Fatalf("Reactivate: %v", err)
	}
	if r.Status != domain.ResourceAssigned {
		t.Fatalf("expected reactivation to recompute Assigned, got %s", r.Status)
	}
}

func TestResourceTimeOffOverdraftRejected(t *testing.T) {
	r, _ := domain.NewResource("DEV1", "Dev One", domain.ResourceTypeDeveloper, domain.ResourceScopeCompany, "root")
	r.TimeOffBalanceHours = 4
	if _, err := r.ApplyTimeOff(8); err == nil {
		t.Fatal("expected overdraft to be rejected")
	}
	r, err := r.ApplyTimeOff(4)
	if err != nil {
		t.Fatalf("ApplyTimeOff: %v", err)
	}
	if r.TimeOffBalanceHours != 0 {
		t.Fatalf("expected balance 0, got %v", r.TimeOffBalanceHours)
	}
}

func TestGenerateCodeSanitizesName(t *testing.T) {
	got := domain.GenerateCode("Website Revamp & Launch!")
	if got != "WEBSITE-REVAMP-LAUNCH" {
		t.Fatalf("unexpected code: %s", got)
	}
	if domain.GenerateCode("   ") != "ITEM" {
		t.Fatalf("expected fallback ITEM for empty name")
	}
}

func TestWithSuffix(t *testing.T) {
	if got := domain.WithSuffix("X", 1); got != "X" {
		t.Fatalf("suffix 1 should be unchanged, got %s", got)
	}
	if got := domain.WithSuffix("X", 2); got != "X-2" {
		t.Fatalf("expected X-2, got %s", got)
	}
}
