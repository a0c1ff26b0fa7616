package ctx_test

import (
	"os"
	"path/filepath"
	"testing"

	"tasktaskrevolution/internal/ctx"
)

func mkWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte("apiVersion: x\nkind: Config\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	return root
}

func TestResolveWorkspaceRoot(t *testing.T) {
	root := mkWorkspace(t)
	c, err := ctx.Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.Kind != ctx.Workspace {
		t.Fatalf("expected Workspace, got %v", c.Kind)
	}
}

func TestResolveInProject(t *testing.T) {
	root := mkWorkspace(t)
	dir := filepath.Join(root, "companies", "TECH-CORP", "projects", "WEBSITE")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	c, err := ctx.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.Kind != ctx.InProject || c.CompanyCode != "TECH-CORP" || c.ProjectCode != "WEBSITE" {
		t.Fatalf("unexpected context: %+v", c)
	}
}

func TestResolveWalksUpward(t *testing.T) {
	root := mkWorkspace(t)
	dir := filepath.Join(root, "companies", "TECH-CORP", "projects", "WEBSITE", "tasks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	c, err := ctx.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c.Root != root {
		t.Fatalf("expected root %s, got %s", root, c.Root)
	}
}

func TestResolveOutsideWorkspaceFails(t *testing.T) {
	if _, err := ctx.Resolve(t.TempDir()); err == nil {
		t.Fatal("expected error outside any workspace")
	}
}

func TestOverrideConflict(t *testing.T) {
	c := ctx.Context{Kind: ctx.InProject, CompanyCode: "TECH-CORP", ProjectCode: "WEBSITE"}
	if _, err := c.Override("OTHER-CORP", ""); err == nil {
		t.Fatal("expected ContextConflict when explicit company disagrees")
	}
	merged, err := c.Override("TECH-CORP", "")
	if err != nil {
		t.Fatalf("agreeing override should succeed: %v", err)
	}
	if merged.CompanyCode != "TECH-CORP" {
		t.Fatalf("unexpected company: %s", merged.CompanyCode)
	}
}
