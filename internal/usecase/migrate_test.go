package usecase_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasktaskrevolution/internal/manifest"
	"tasktaskrevolution/internal/repo"
	"tasktaskrevolution/internal/usecase"
)

func TestMigrateIsANoOpWhenEverythingIsCurrent(t *testing.T) {
	root := t.TempDir()
	o := usecase.New(repo.New(root))
	if err := o.Init("Ada Lovelace", "ada@example.com", false); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := o.CreateCompany("Acme Corp", "ACME", "", "root"); err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}

	results, err := o.Migrate(root)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least the config and company manifests to be visited")
	}
	for _, r := range results {
		if r.Migrated {
			t.Fatalf("expected no migration needed for freshly written manifest %s", r.Path)
		}
		if r.FromVersion != manifest.CurrentAPIVersion {
			t.Fatalf("expected apiVersion %s in %s, got %s", manifest.CurrentAPIVersion, r.Path, r.FromVersion)
		}
	}
}

func TestMigrateRewritesFormattingDrift(t *testing.T) {
	root := t.TempDir()
	o := usecase.New(repo.New(root))
	if err := o.Init("Ada Lovelace", "ada@example.com", false); err != nil {
		t.Fatalf("Init: %v", err)
	}

	configPath := filepath.Join(root, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	drifted := strings.Replace(string(data), "managerName: Ada Lovelace", "managerName:   Ada Lovelace", 1)
	if err := os.WriteFile(configPath, []byte(drifted), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	results, err := o.Migrate(root)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	found := false
	for _, r := range results {
		if r.Path == configPath {
			found = true
			if !r.Migrated {
				t.Fatal("expected the drifted config to be rewritten to canonical formatting")
			}
		}
	}
	if !found {
		t.Fatal("expected config.yaml to appear in the migration results")
	}
}
