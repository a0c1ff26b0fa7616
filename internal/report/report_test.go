package report_test

import (
	"bytes"
	"strings"
	"testing"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/engine"
	"tasktaskrevolution/internal/report"
)

func TestVacationReportSortsByResourceThenStart(t *testing.T) {
	r1, _ := domain.NewResource("BOB", "Bob", domain.ResourceTypeDeveloper, domain.ResourceScopeCompany, "root")
	r1 = r1.AddVacation(domain.VacationPeriod{StartDate: "2026-03-01", EndDate: "2026-03-05", Approved: true, Type: "Personal"})
	r2, _ := domain.NewResource("ANA", "Ana", domain.ResourceTypeDeveloper, domain.ResourceScopeCompany, "root")
	r2 = r2.AddVacation(domain.VacationPeriod{StartDate: "2026-02-01", EndDate: "2026-02-05", Approved: false, Type: "Sick", IsLayoff: true})

	var buf bytes.Buffer
	if err := report.Vacation(&buf, []domain.Resource{r1, r2}); err != nil {
		t.Fatalf("Vacation: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[1], "ANA,") {
		t.Fatalf("expected ANA's vacation first (code sorts before BOB), got %q", lines[1])
	}
}

func TestTaskReportIncludesComputedWindow(t *testing.T) {
	task, err := domain.NewTask("BUILD", "WEBSITE", "Build", "2026-01-05", "2026-01-09", 8, "root")
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}
	cal := engine.NewCalendar([]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, 8)

	var buf bytes.Buffer
	if err := report.Task(&buf, []domain.Task{task}, cal); err != nil {
		t.Fatalf("Task: %v", err)
	}
	if !strings.Contains(buf.String(), "BUILD,WEBSITE") {
		t.Fatalf("expected task row for BUILD, got %q", buf.String())
	}
}

func TestWIPReportCountsOnlyActiveTasks(t *testing.T) {
	res, _ := domain.NewResource("DEV1", "Dev One", domain.ResourceTypeDeveloper, domain.ResourceScopeCompany, "root")
	active, _ := domain.NewTask("A", "P", "Active task", "2026-01-01", "2026-01-05", 8, "root")
	active = active.AssignResource("DEV1")
	done, _ := domain.NewTask("B", "P", "Done task", "2026-01-01", "2026-01-05", 8, "root")
	done = done.AssignResource("DEV1")
	done, _ = done.TransitionStatus(domain.TaskToDo, true)
	done, _ = done.TransitionStatus(domain.TaskInProgress, true)
	done, _ = done.TransitionStatus(domain.TaskDone, true)

	var buf bytes.Buffer
	if err := report.WIP(&buf, []domain.Resource{res}, []domain.Task{active, done}); err != nil {
		t.Fatalf("WIP: %v", err)
	}
	if !strings.Contains(buf.String(), "DEV1,1") {
		t.Fatalf("expected DEV1 to show a WIP count of 1 (Done task excluded), got %q", buf.String())
	}
}
