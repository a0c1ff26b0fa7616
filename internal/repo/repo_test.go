package repo_test

import (
	"os"
	"path/filepath"
	"testing"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/repo"
)

func TestSaveAndFindCompanyRoundTrip(t *testing.T) {
	root := t.TempDir()
	r := repo.New(root)
	c, err := domain.NewCompany("TECH-CORP", "Tech Corp", domain.CompanyMedium, "root")
	if err != nil {
		t.Fatalf("NewCompany: %v", err)
	}
	if err := r.SaveCompany(c); err != nil {
		t.Fatalf("SaveCompany: %v", err)
	}
	got, err := r.FindCompanyByCode("TECH-CORP")
	if err != nil {
		t.Fatalf("FindCompanyByCode: %v", err)
	}
	if got.Name != c.Name || got.ID != c.ID {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestFindAllCompaniesDetectsDuplicateCodes(t *testing.T) {
	root := t.TempDir()
	r := repo.New(root)
	c1, _ := domain.NewCompany("DUP", "First", "", "root")
	if err := r.SaveCompany(c1); err != nil {
		t.Fatalf("save c1: %v", err)
	}
	// Force a second file declaring the same code, as if it had been
	// created under a different path by hand.
	altPath := filepath.Join(root, "companies", "DUP-ALT", "company.yaml")
	data, err := os.ReadFile(r.CompanyPath("DUP"))
	if err != nil {
		t.Fatalf("read original: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(altPath), 0o755); err != nil {
		t.Fatalf("mkdir alt: %v", err)
	}
	if err := os.WriteFile(altPath, data, 0o644); err != nil {
		t.Fatalf("write alt: %v", err)
	}
	if _, err := r.FindAllCompanies(); err == nil {
		t.Fatal("expected duplicate code error")
	}
}

func TestSaveTaskUnderProject(t *testing.T) {
	root := t.TempDir()
	r := repo.New(root)
	task, _ := domain.NewTask("SETUP", "WEBSITE", "Setup", "2024-01-15", "2024-01-22", 8, "root")
	if err := r.SaveTask("TECH-CORP", task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	got, err := r.FindTaskByCode("TECH-CORP", "WEBSITE", "SETUP")
	if err != nil {
		t.Fatalf("FindTaskByCode: %v", err)
	}
	if got.Name != task.Name || got.DueDate != task.DueDate {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestFindAllTasksSortedByCode(t *testing.T) {
	root := t.TempDir()
	r := repo.New(root)
	b, _ := domain.NewTask("B-TASK", "WEBSITE", "B", "", "", 0, "root")
	a, _ := domain.NewTask("A-TASK", "WEBSITE", "A", "", "", 0, "root")
	r.SaveTask("TECH-CORP", b)
	r.SaveTask("TECH-CORP", a)
	tasks, err := r.FindAllTasks("TECH-CORP", "WEBSITE")
	if err != nil {
		t.Fatalf("FindAllTasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Code != "A-TASK" || tasks[1].Code != "B-TASK" {
		t.Fatalf("expected sorted [A-TASK B-TASK], got %+v", tasks)
	}
}

func TestConfigHasConfigBeforeAndAfterSave(t *testing.T) {
	root := t.TempDir()
	r := repo.New(root)
	if r.HasConfig() {
		t.Fatal("fresh root must not have a config")
	}
	cfg, err := domain.NewDefaultConfig("Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("NewDefaultConfig: %v", err)
	}
	if err := r.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if !r.HasConfig() {
		t.Fatal("expected config to exist after save")
	}
	got, err := r.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.ManagerName != "Alice" {
		t.Fatalf("unexpected manager name: %s", got.ManagerName)
	}
}
