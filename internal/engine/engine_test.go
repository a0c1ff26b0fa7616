package engine_test

import (
	"testing"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/engine"
)

func mustTask(t *testing.T, code, start, due string, hours float64, preds ...string) domain.Task {
	t.Helper()
	task, err := domain.NewTask(code, "WEBSITE", code, start, due, hours, "root")
	if err != nil {
		t.Fatalf("NewTask %s: %v", code, err)
	}
	task.Predecessors = preds
	return task
}

func TestDetectCycleRejectsBackEdge(t *testing.T) {
	tasks := map[string]domain.Task{
		"A": mustTask(t, "A", "", "", 0),
		"B": mustTask(t, "B", "", "", 0, "A"),
	}
	if err := engine.DetectCycle(tasks, "B", "A"); err == nil {
		t.Fatal("expected cycle when linking B -> A while A -> B already exists")
	}
}

func TestDetectCycleAllowsNewIndependentEdge(t *testing.T) {
	tasks := map[string]domain.Task{
		"A": mustTask(t, "A", "", "", 0),
		"B": mustTask(t, "B", "", "", 0),
	}
	if err := engine.DetectCycle(tasks, "A", "B"); err != nil {
		t.Fatalf("expected no cycle, got %v", err)
	}
}

func TestTopoSortOrdersByCodeOnTies(t *testing.T) {
	tasks := map[string]domain.Task{
		"C": mustTask(t, "C", "", "", 0),
		"A": mustTask(t, "A", "", "", 0),
		"B": mustTask(t, "B", "", "", 0),
	}
	order, err := engine.TopoSort(tasks)
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}
	if order[0] != "A" || order[1] != "B" || order[2] != "C" {
		t.Fatalf("expected alphabetical order for unrelated tasks, got %v", order)
	}
}

func TestComputeScheduleAdvancesSuccessorPastPredecessorFinish(t *testing.T) {
	tasks := map[string]domain.Task{
		"A": mustTask(t, "A", "2024-01-15", "2024-01-30", 40),
		"B": mustTask(t, "B", "2024-02-01", "2024-04-15", 40, "A"),
	}
	cal := engine.NewCalendar([]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, 8)
	e := engine.New()
	windows, err := e.ComputeSchedule(tasks, cal)
	if err != nil {
		t.Fatalf("ComputeSchedule: %v", err)
	}
	if !windows["B"].EarliestStart.After(windows["A"].EarliestStart) {
		t.Fatalf("expected B to start after A: A=%v B=%v", windows["A"].EarliestStart, windows["B"].EarliestStart)
	}
	if windows["B"].EarliestStart.Before(windows["A"].EarliestFinish) {
		t.Fatalf("expected B's start >= A's finish, got B.start=%v A.finish=%v", windows["B"].EarliestStart, windows["A"].EarliestFinish)
	}
}

func TestTransitiveSuccessorsFollowsChain(t *testing.T) {
	tasks := map[string]domain.Task{
		"A": mustTask(t, "A", "", "", 0),
		"B": mustTask(t, "B", "", "", 0, "A"),
		"C": mustTask(t, "C", "", "", 0, "B"),
		"D": mustTask(t, "D", "", "", 0),
	}
	succ := engine.TransitiveSuccessors(tasks, "A")
	if !succ["B"] || !succ["C"] || succ["D"] {
		t.Fatalf("unexpected successor set: %+v", succ)
	}
}
