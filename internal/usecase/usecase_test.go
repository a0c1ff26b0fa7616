package usecase_test

import (
	"errors"
	"testing"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/repo"
	"tasktaskrevolution/internal/ttrerr"
	"tasktaskrevolution/internal/usecase"
)

func newOrchestrator(t *testing.T) *usecase.Orchestrator {
	t.Helper()
	return usecase.New(repo.New(t.TempDir()))
}

func TestInitCreatesConfigAndRejectsSecondCallWithoutForce(t *testing.T) {
	o := newOrchestrator(t)
	if err := o.Init("Ada Lovelace", "ada@example.com", false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := o.Init("Ada Lovelace", "ada@example.com", false); err == nil {
		t.Fatal("expected second Init without --force to fail")
	}
	if err := o.Init("Ada Lovelace", "ada@example.com", true); err != nil {
		t.Fatalf("Init with force: %v", err)
	}
}

func TestCreateCompanyGeneratesCodeAndDisambiguatesCollision(t *testing.T) {
	o := newOrchestrator(t)
	c1, err := o.CreateCompany("Acme Corp", "", "", "root")
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if c1.Code != "ACME-CORP" {
		t.Fatalf("expected generated code ACME-CORP, got %s", c1.Code)
	}
	c2, err := o.CreateCompany("Acme Corp", "", "", "root")
	if err != nil {
		t.Fatalf("CreateCompany second: %v", err)
	}
	if c2.Code == c1.Code {
		t.Fatalf("expected disambiguated code, got duplicate %s", c2.Code)
	}
}

func TestCreateProjectRejectsUnknownCompany(t *testing.T) {
	o := newOrchestrator(t)
	if _, err := o.CreateProject("Website", "", "NOPE", "root"); err == nil {
		t.Fatal("expected error for unknown company")
	}
}

func TestCreateProjectRejectsSuspendedCompany(t *testing.T) {
	o := newOrchestrator(t)
	c, err := o.CreateCompany("Acme Corp", "ACME", "", "root")
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	c, err = c.SetStatus(domain.CompanySuspended)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := o.Repo.SaveCompany(c); err != nil {
		t.Fatalf("SaveCompany: %v", err)
	}
	if _, err := o.CreateProject("Website", "", "ACME", "root"); err == nil {
		t.Fatal("expected error creating project under a suspended company")
	}
}

func TestCreateResourceRejectsSuspendedCompany(t *testing.T) {
	o := newOrchestrator(t)
	c, err := o.CreateCompany("Acme Corp", "ACME", "", "root")
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	c, err = c.SetStatus(domain.CompanySuspended)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if err := o.Repo.SaveCompany(c); err != nil {
		t.Fatalf("SaveCompany: %v", err)
	}
	if _, err := o.CreateResource("Jane Dev", domain.ResourceTypeDeveloper, "ACME", "", "root"); err == nil {
		t.Fatal("expected error creating a resource under a suspended company")
	}
}

func setupProject(t *testing.T, o *usecase.Orchestrator) (companyCode, projectCode string) {
	t.Helper()
	if err := o.Init("Ada Lovelace", "ada@example.com", false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	c, err := o.CreateCompany("Acme Corp", "ACME", "", "root")
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	p, err := o.CreateProject("Website", "", c.Code, "root")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	return c.Code, p.Code
}

func TestLinkTasksRejectsCycle(t *testing.T) {
	o := newOrchestrator(t)
	companyCode, projectCode := setupProject(t, o)
	a, err := o.CreateTask(companyCode, projectCode, "Design", "2026-01-05", "2026-01-09", 16, "root")
	if err != nil {
		t.Fatalf("CreateTask A: %v", err)
	}
	b, err := o.CreateTask(companyCode, projectCode, "Build", "2026-01-12", "2026-01-16", 24, "root")
	if err != nil {
		t.Fatalf("CreateTask B: %v", err)
	}
	if err := o.LinkTasks(companyCode, projectCode, a.Code, b.Code); err != nil {
		t.Fatalf("LinkTasks A->B: %v", err)
	}
	if err := o.LinkTasks(companyCode, projectCode, b.Code, a.Code); err == nil {
		t.Fatal("expected cycle rejection linking B->A after A->B")
	}
}

func TestAssignResourceDefaultsToFullAllocation(t *testing.T) {
	o := newOrchestrator(t)
	companyCode, projectCode := setupProject(t, o)
	task, err := o.CreateTask(companyCode, projectCode, "Build", "2026-01-05", "2026-01-09", 16, "root")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	res, err := o.CreateResource("Jane Dev", domain.ResourceTypeDeveloper, companyCode, "", "root")
	if err != nil {
		t.Fatalf("CreateResource: %v", err)
	}
	if err := o.AssignResource(companyCode, projectCode, task.Code, res.Code, 0); err != nil {
		t.Fatalf("AssignResource: %v", err)
	}
	got, err := o.Repo.FindTaskByCode(companyCode, projectCode, task.Code)
	if err != nil {
		t.Fatalf("FindTaskByCode: %v", err)
	}
	if len(got.AssignedResources) != 1 || got.AssignedResources[0] != res.Code {
		t.Fatalf("expected task to carry the assigned resource, got %+v", got.AssignedResources)
	}
}

func TestTransitionTaskToDoneRequiresPredecessorsSatisfied(t *testing.T) {
	o := newOrchestrator(t)
	companyCode, projectCode := setupProject(t, o)
	a, err := o.CreateTask(companyCode, projectCode, "Design", "2026-01-05", "2026-01-09", 16, "root")
	if err != nil {
		t.Fatalf("CreateTask A: %v", err)
	}
	b, err := o.CreateTask(companyCode, projectCode, "Build", "2026-01-12", "2026-01-16", 24, "root")
	if err != nil {
		t.Fatalf("CreateTask B: %v", err)
	}
	if err := o.LinkTasks(companyCode, projectCode, a.Code, b.Code); err != nil {
		t.Fatalf("LinkTasks: %v", err)
	}
	if _, err := o.TransitionTask(companyCode, projectCode, b.Code, domain.TaskToDo); err != nil {
		t.Fatalf("TransitionTask Planned->ToDo on B: %v", err)
	}
	if _, err := o.TransitionTask(companyCode, projectCode, b.Code, domain.TaskInProgress); err != nil {
		t.Fatalf("TransitionTask ToDo->InProgress on B: %v", err)
	}
	if _, err := o.TransitionTask(companyCode, projectCode, b.Code, domain.TaskDone); err == nil {
		t.Fatal("expected B->Done to fail while its predecessor A is not Done")
	}
	if _, err := o.TransitionTask(companyCode, projectCode, a.Code, domain.TaskToDo); err != nil {
		t.Fatalf("TransitionTask A Planned->ToDo: %v", err)
	}
	if _, err := o.TransitionTask(companyCode, projectCode, a.Code, domain.TaskInProgress); err != nil {
		t.Fatalf("TransitionTask A ToDo->InProgress: %v", err)
	}
	if _, err := o.TransitionTask(companyCode, projectCode, a.Code, domain.TaskDone); err != nil {
		t.Fatalf("TransitionTask A InProgress->Done: %v", err)
	}
	if _, err := o.TransitionTask(companyCode, projectCode, b.Code, domain.TaskDone); err != nil {
		t.Fatalf("TransitionTask B->Done after predecessor Done: %v", err)
	}
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	o := newOrchestrator(t)
	companyCode, projectCode := setupProject(t, o)
	task, err := o.CreateTask(companyCode, projectCode, "Design", "2026-01-05", "2026-01-09", 16, "root")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	_, already, err := o.DeleteTask(companyCode, projectCode, task.Code)
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if already {
		t.Fatal("expected first DeleteTask to report it was not already cancelled")
	}
	_, already, err = o.DeleteTask(companyCode, projectCode, task.Code)
	if err != nil {
		t.Fatalf("DeleteTask second call: %v", err)
	}
	if !already {
		t.Fatal("expected second DeleteTask call to report the task was already cancelled")
	}
}

func TestCreateCompanyExplicitDuplicateCodeFails(t *testing.T) {
	o := newOrchestrator(t)
	if _, err := o.CreateCompany("Acme Corp", "ACME", "", "root"); err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	_, err := o.CreateCompany("Acme Corp Two", "ACME", "", "root")
	if err == nil {
		t.Fatal("expected explicit duplicate company code to fail")
	}
	if !errors.Is(err, ttrerr.ErrDuplicateCode) {
		t.Fatalf("expected a DuplicateCodeError, got %v", err)
	}
}

func TestCreateProjectExplicitDuplicateCodeFails(t *testing.T) {
	o := newOrchestrator(t)
	c, err := o.CreateCompany("Acme Corp", "ACME", "", "root")
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if _, err := o.CreateProject("Website", "WEB", c.Code, "root"); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	_, err = o.CreateProject("Website Relaunch", "WEB", c.Code, "root")
	if err == nil {
		t.Fatal("expected explicit duplicate project code to fail")
	}
	if !errors.Is(err, ttrerr.ErrDuplicateCode) {
		t.Fatalf("expected a DuplicateCodeError, got %v", err)
	}
}

// TestLinkTasksPropagatesSuccessorSchedule mirrors the "update A, B's file is
// rewritten" scenario, but triggers it by adding the predecessor edge
// itself: B's declared start (2026-01-05) is earlier than A's computed
// finish, so linking must recompute and persist B's window.
func TestLinkTasksPropagatesSuccessorSchedule(t *testing.T) {
	o := newOrchestrator(t)
	companyCode, projectCode := setupProject(t, o)
	a, err := o.CreateTask(companyCode, projectCode, "Design", "2026-01-05", "2026-01-06", 16, "root")
	if err != nil {
		t.Fatalf("CreateTask A: %v", err)
	}
	b, err := o.CreateTask(companyCode, projectCode, "Build", "2026-01-05", "2026-01-07", 24, "root")
	if err != nil {
		t.Fatalf("CreateTask B: %v", err)
	}
	if err := o.LinkTasks(companyCode, projectCode, a.Code, b.Code); err != nil {
		t.Fatalf("LinkTasks: %v", err)
	}
	got, err := o.Repo.FindTaskByCode(companyCode, projectCode, b.Code)
	if err != nil {
		t.Fatalf("FindTaskByCode: %v", err)
	}
	if got.StartDate != "2026-01-06" || got.DueDate != "2026-01-08" {
		t.Fatalf("expected B's window to shift past A's finish, got start=%s due=%s", got.StartDate, got.DueDate)
	}
}

// TestUpdateTaskPropagatesToSuccessor is the S2 scenario itself: A's
// schedule changes after the link is in place, and B's file is rewritten
// to reflect the new transitive window, with no direct call touching B.
func TestUpdateTaskPropagatesToSuccessor(t *testing.T) {
	o := newOrchestrator(t)
	companyCode, projectCode := setupProject(t, o)
	a, err := o.CreateTask(companyCode, projectCode, "Design", "2026-01-05", "2026-01-06", 16, "root")
	if err != nil {
		t.Fatalf("CreateTask A: %v", err)
	}
	b, err := o.CreateTask(companyCode, projectCode, "Build", "2026-01-05", "2026-01-07", 24, "root")
	if err != nil {
		t.Fatalf("CreateTask B: %v", err)
	}
	if err := o.LinkTasks(companyCode, projectCode, a.Code, b.Code); err != nil {
		t.Fatalf("LinkTasks: %v", err)
	}
	if _, err := o.UpdateTask(companyCode, projectCode, a.Code, "", "", 32); err != nil {
		t.Fatalf("UpdateTask A: %v", err)
	}
	gotA, err := o.Repo.FindTaskByCode(companyCode, projectCode, a.Code)
	if err != nil {
		t.Fatalf("FindTaskByCode A: %v", err)
	}
	if gotA.DueDate != "2026-01-08" {
		t.Fatalf("expected A's own due date to reflect the new estimate, got %s", gotA.DueDate)
	}
	gotB, err := o.Repo.FindTaskByCode(companyCode, projectCode, b.Code)
	if err != nil {
		t.Fatalf("FindTaskByCode B: %v", err)
	}
	if gotB.StartDate != "2026-01-08" || gotB.DueDate != "2026-01-12" {
		t.Fatalf("expected B's window to shift with A's, got start=%s due=%s", gotB.StartDate, gotB.DueDate)
	}
}

func TestUpdateCompanyPatchesProfile(t *testing.T) {
	o := newOrchestrator(t)
	c, err := o.CreateCompany("Acme Corp", "ACME", "", "root")
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	updated, err := o.UpdateCompany(c.Code, "Acme Corporation", "A widget maker", "ops@acme.example", "Manufacturing")
	if err != nil {
		t.Fatalf("UpdateCompany: %v", err)
	}
	if updated.Name != "Acme Corporation" || updated.Industry != "Manufacturing" {
		t.Fatalf("expected profile fields to be patched, got %+v", updated)
	}
	got, err := o.Repo.FindCompanyByCode(c.Code)
	if err != nil {
		t.Fatalf("FindCompanyByCode: %v", err)
	}
	if got.Name != "Acme Corporation" {
		t.Fatalf("expected the patch to be persisted, got %+v", got)
	}
}

func TestUpdateProjectPatchesDates(t *testing.T) {
	o := newOrchestrator(t)
	companyCode, projectCode := setupProject(t, o)
	updated, err := o.UpdateProject(companyCode, projectCode, "", "", "2026-02-01", "2026-06-01")
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if updated.StartDate != "2026-02-01" || updated.EndDate != "2026-06-01" {
		t.Fatalf("expected dates to be patched, got %+v", updated)
	}
	got, err := o.Repo.FindProjectByCode(companyCode, projectCode)
	if err != nil {
		t.Fatalf("FindProjectByCode: %v", err)
	}
	if got.StartDate != "2026-02-01" || got.EndDate != "2026-06-01" {
		t.Fatalf("expected the patch to be persisted, got %+v", got)
	}
}

func TestUpdateResourcePatchesProfile(t *testing.T) {
	o := newOrchestrator(t)
	companyCode, projectCode := setupProject(t, o)
	res, err := o.CreateResource("Jane Dev", domain.ResourceTypeDeveloper, companyCode, "", "root")
	if err != nil {
		t.Fatalf("CreateResource: %v", err)
	}
	updated, err := o.UpdateResource(companyCode, projectCode, res.Code, "Jane Q. Dev", domain.ResourceTypeManager)
	if err != nil {
		t.Fatalf("UpdateResource: %v", err)
	}
	if updated.Name != "Jane Q. Dev" || updated.ResourceType != domain.ResourceTypeManager {
		t.Fatalf("expected profile fields to be patched, got %+v", updated)
	}
	if _, err := o.UpdateResource(companyCode, projectCode, res.Code, "", "Astronaut"); err == nil {
		t.Fatal("expected an unknown resource type to be rejected")
	}
}
