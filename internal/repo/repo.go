// Package repo implements the filesystem repository layer (§4.C): hierarchical
// discovery, atomic persistence, and lookup of entities across a workspace.
// It is the only package that touches entity files directly; every use-case
// goes through here, mirroring the teacher engine's rule that its SQL Repo is
// the sole write path into the database.
package repo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tasktaskrevolution/internal/ttrerr"
)

// Repo roots every operation at a single workspace directory, the
// filesystem analogue of the teacher's Repo{DB *sql.DB}.
type Repo struct {
	Root string
}

func New(root string) Repo { return Repo{Root: root} }

func (r Repo) ConfigPath() string { return filepath.Join(r.Root, "config.yaml") }

func (r Repo) CompanyDir(companyCode string) string {
	return filepath.Join(r.Root, "companies", companyCode)
}

func (r Repo) CompanyPath(companyCode string) string {
	return filepath.Join(r.CompanyDir(companyCode), "company.yaml")
}

func (r Repo) CompanyResourceDir(companyCode string) string {
	return filepath.Join(r.CompanyDir(companyCode), "resources")
}

func (r Repo) CompanyResourcePath(companyCode, resourceCode string) string {
	return filepath.Join(r.CompanyResourceDir(companyCode), resourceCode+".yaml")
}

func (r Repo) ProjectDir(companyCode, projectCode string) string {
	return filepath.Join(r.CompanyDir(companyCode), "projects", projectCode)
}

func (r Repo) ProjectPath(companyCode, projectCode string) string {
	return filepath.Join(r.ProjectDir(companyCode, projectCode), "project.yaml")
}

func (r Repo) ProjectResourceDir(companyCode, projectCode string) string {
	return filepath.Join(r.ProjectDir(companyCode, projectCode), "resources")
}

func (r Repo) ProjectResourcePath(companyCode, projectCode, resourceCode string) string {
	return filepath.Join(r.ProjectResourceDir(companyCode, projectCode), resourceCode+".yaml")
}

func (r Repo) TaskDir(companyCode, projectCode string) string {
	return filepath.Join(r.ProjectDir(companyCode, projectCode), "tasks")
}

func (r Repo) TaskPath(companyCode, projectCode, taskCode string) string {
	return filepath.Join(r.TaskDir(companyCode, projectCode), taskCode+".yaml")
}

// atomicWrite writes to a sibling temp file and renames it into place, so
// readers never observe partial content (§4.C "atomic writes").
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &ttrerr.IOError{Op: "mkdir", Path: dir, Cause: err}
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return &ttrerr.IOError{Op: "create-temp", Path: dir, Cause: err}
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &ttrerr.IOError{Op: "write", Path: tmpPath, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &ttrerr.IOError{Op: "close", Path: tmpPath, Cause: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &ttrerr.IOError{Op: "rename", Path: path, Cause: err}
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ttrerr.ErrNotFound
		}
		return nil, &ttrerr.IOError{Op: "read", Path: path, Cause: err}
	}
	return data, nil
}

// walkYAML visits every .yaml file under dir, skipping hidden directories
// and not following symlinks (§4.C "Discovery").
func walkYAML(dir string, fn func(path string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ttrerr.IOError{Op: "readdir", Path: dir, Cause: err}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		if e.IsDir() {
			if err := walkYAML(full, fn); err != nil {
				return err
			}
			continue
		}
		if e.Type()&os.ModeSymlink != 0 {
			continue
		}
		if strings.HasSuffix(name, ".yaml") {
			if err := fn(full); err != nil {
				return err
			}
		}
	}
	return nil
}

// duplicateCheck records the first path seen for each code and reports a
// DuplicateCodeError if a second one appears in the same scope (§4.C
// "No duplicates").
type duplicateCheck struct {
	scope string
	seen  map[string][]string
}

func newDuplicateCheck(scope string) *duplicateCheck {
	return &duplicateCheck{scope: scope, seen: map[string][]string{}}
}

func (d *duplicateCheck) add(code, path string) {
	d.seen[code] = append(d.seen[code], path)
}

// sortByCode orders items ascending by the code extracted with key, matching
// the "same-kind entities by code ascending" ordering guarantee of §5.
func sortByCode[T any](items []T, key func(T) string) {
	sort.Slice(items, func(i, j int) bool { return key(items[i]) < key(items[j]) })
}

func (d *duplicateCheck) err() error {
	var codes []string
	for code, paths := range d.seen {
		if len(paths) > 1 {
			codes = append(codes, code)
		}
	}
	if len(codes) == 0 {
		return nil
	}
	sort.Strings(codes)
	code := codes[0]
	return &ttrerr.DuplicateCodeError{Code: code, Scope: d.scope, Paths: d.seen[code]}
}
