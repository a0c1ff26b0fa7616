package site_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasktaskrevolution/internal/site"
	"tasktaskrevolution/internal/testkit"
)

func TestBuildProducesLinkedTree(t *testing.T) {
	env := testkit.New(t)
	companyCode, projectCode := testkit.SeedCompanyProject(t, env)
	if _, err := env.Orch.CreateTask(companyCode, projectCode, "Design", "2026-01-05", "2026-01-09", 8, "root"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	out := t.TempDir()
	b := site.New(env.Repo, out, false)
	paths, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("expected at least one output file")
	}
	if _, err := os.Stat(filepath.Join(out, "index.html")); err != nil {
		t.Fatalf("expected index.html: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "companies", companyCode, "gantt.html")); err != nil {
		t.Fatalf("expected company gantt.html: %v", err)
	}
}

func TestCompanyGanttSurvivesCrossProjectTaskCodeCollision(t *testing.T) {
	env := testkit.New(t)
	companyCode, projectA := testkit.SeedCompanyProject(t, env)
	projectB, err := env.Orch.CreateProject("Mobile App", "", companyCode, "root")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	// Both tasks are named "Design", so GenerateCode produces the same
	// "DESIGN" code in each project — codes are unique only within a
	// project, so the company Gantt must schedule each project on its own.
	taskA, err := env.Orch.CreateTask(companyCode, projectA, "Design", "2026-01-05", "2026-01-09", 8, "root")
	if err != nil {
		t.Fatalf("CreateTask A: %v", err)
	}
	taskB, err := env.Orch.CreateTask(companyCode, projectB.Code, "Design", "2026-02-05", "2026-02-09", 8, "root")
	if err != nil {
		t.Fatalf("CreateTask B: %v", err)
	}
	if taskA.Code != taskB.Code {
		t.Fatalf("expected colliding codes to exercise this test, got %q and %q", taskA.Code, taskB.Code)
	}

	out := t.TempDir()
	b := site.New(env.Repo, out, false)
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(out, "companies", companyCode, "gantt.html"))
	if err != nil {
		t.Fatalf("read company gantt.html: %v", err)
	}
	html := string(data)
	if strings.Count(html, taskA.Name) != 2 {
		t.Fatalf("expected both projects' same-named tasks to render as distinct bars, got:\n%s", html)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	env := testkit.New(t)
	companyCode, projectCode := testkit.SeedCompanyProject(t, env)
	if _, err := env.Orch.CreateTask(companyCode, projectCode, "Design", "2026-01-05", "2026-01-09", 8, "root"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	out1, out2 := t.TempDir(), t.TempDir()
	if _, err := site.New(env.Repo, out1, false).Build(); err != nil {
		t.Fatalf("Build 1: %v", err)
	}
	if _, err := site.New(env.Repo, out2, false).Build(); err != nil {
		t.Fatalf("Build 2: %v", err)
	}
	a, err := os.ReadFile(filepath.Join(out1, "index.html"))
	if err != nil {
		t.Fatalf("read out1: %v", err)
	}
	b2, err := os.ReadFile(filepath.Join(out2, "index.html"))
	if err != nil {
		t.Fatalf("read out2: %v", err)
	}
	if string(a) != string(b2) {
		t.Fatal("expected byte-equal output across two builds of the same inputs")
	}
}
