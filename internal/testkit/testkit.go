// Package testkit centralizes the fixture builder every other package's
// tests use, generalizing the teacher's newTestEnv (a temp SQLite file
// plus a seeded Engine/Repo pair) into a temp workspace directory tree
// plus a seeded Orchestrator/Repo pair.
package testkit

import (
	"testing"
	"time"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/repo"
	"tasktaskrevolution/internal/usecase"
)

// Env bundles the dependencies a use-case/report/site test needs, mirroring
// the teacher's testEnv{Engine, Ctx} shape.
type Env struct {
	Root   string
	Repo   repo.Repo
	Orch   *usecase.Orchestrator
	Clock  time.Time
	Config domain.Config
}

// New builds an initialized workspace under a fresh t.TempDir(), seeded
// with a default Config the way newTestEnv seeds a project config before
// handing control to the test body.
func New(t *testing.T) Env {
	t.Helper()
	root := t.TempDir()
	r := repo.New(root)
	orch := usecase.New(r)
	if err := orch.Init("Test Manager", "manager@example.com", false); err != nil {
		t.Fatalf("testkit.New: Init: %v", err)
	}
	cfg, err := r.LoadConfig()
	if err != nil {
		t.Fatalf("testkit.New: LoadConfig: %v", err)
	}
	return Env{
		Root:   root,
		Repo:   r,
		Orch:   orch,
		Clock:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Config: cfg,
	}
}

// SeedCompanyProject creates one Active company and one Planned project
// under it, the minimal fixture nearly every use-case/report/site test
// needs before it can create tasks or resources.
func SeedCompanyProject(t *testing.T, env Env) (companyCode, projectCode string) {
	t.Helper()
	c, err := env.Orch.CreateCompany("Acme Corp", "ACME", "", "root")
	if err != nil {
		t.Fatalf("SeedCompanyProject: CreateCompany: %v", err)
	}
	p, err := env.Orch.CreateProject("Website Revamp", "", c.Code, "root")
	if err != nil {
		t.Fatalf("SeedCompanyProject: CreateProject: %v", err)
	}
	return c.Code, p.Code
}
