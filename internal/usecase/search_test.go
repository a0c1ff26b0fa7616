package usecase_test

import (
	"testing"

	"tasktaskrevolution/internal/domain"
)

func TestSearchFiltersByKindAndField(t *testing.T) {
	o := newOrchestrator(t)
	companyCode, projectCode := setupProject(t, o)
	a, err := o.CreateTask(companyCode, projectCode, "Design", "2026-01-05", "2026-01-09", 16, "root")
	if err != nil {
		t.Fatalf("CreateTask A: %v", err)
	}
	if _, err := o.CreateTask(companyCode, projectCode, "Build", "2026-01-12", "2026-01-16", 24, "root"); err != nil {
		t.Fatalf("CreateTask B: %v", err)
	}
	if _, err := o.TransitionTask(companyCode, projectCode, a.Code, domain.TaskToDo); err != nil {
		t.Fatalf("TransitionTask: %v", err)
	}
	if _, err := o.TransitionTask(companyCode, projectCode, a.Code, domain.TaskInProgress); err != nil {
		t.Fatalf("TransitionTask: %v", err)
	}

	hits, err := o.Search("kind=task status=InProgress")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected exactly one InProgress task, got %d", len(hits))
	}
	if hits[0].Fields["code"] != a.Code {
		t.Fatalf("expected match on task %s, got %s", a.Code, hits[0].Fields["code"])
	}
}

func TestSearchWithNoQueryReturnsEverything(t *testing.T) {
	o := newOrchestrator(t)
	setupProject(t, o)

	hits, err := o.Search("")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	kinds := map[string]bool{}
	for _, h := range hits {
		kinds[h.Kind] = true
	}
	if !kinds["company"] || !kinds["project"] {
		t.Fatalf("expected both company and project hits with no filter, got %+v", kinds)
	}
}

func TestSearchByKindResource(t *testing.T) {
	o := newOrchestrator(t)
	companyCode, _ := setupProject(t, o)
	if _, err := o.CreateResource("Jane Dev", domain.ResourceTypeDeveloper, companyCode, "", "root"); err != nil {
		t.Fatalf("CreateResource: %v", err)
	}

	hits, err := o.Search("kind=resource")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected one resource hit, got %d", len(hits))
	}
}
