package usecase

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tasktaskrevolution/internal/manifest"
	"tasktaskrevolution/internal/ttrerr"
)

// MigrationResult reports what happened to one manifest file during a
// migrate run.
type MigrationResult struct {
	Path        string
	FromVersion string
	Migrated    bool
}

// Migrate walks every manifest under root, decodes it through the manifest
// codec's version migration hook, and rewrites it in place whenever the
// re-encoded text differs from the bytes on disk, so formatting drift is
// normalized as well. It mirrors repo.go's own walkYAML traversal, which is
// unexported and therefore reimplemented here rather than reused across
// package boundaries.
func (o *Orchestrator) Migrate(root string) ([]MigrationResult, error) {
	var paths []string
	if err := walkYAMLFiles(root, func(path string) error {
		paths = append(paths, path)
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var results []MigrationResult
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return results, &ttrerr.IOError{Op: "read", Path: path, Cause: err}
		}
		before := extractAPIVersion(data)
		decoded, err := manifest.DecodeAny(data)
		if err != nil {
			return results, err
		}
		reencoded, err := reencode(decoded)
		if err != nil {
			return results, err
		}
		migrated := reencoded != string(data)
		if migrated {
			if err := os.WriteFile(path, []byte(reencoded), 0o644); err != nil {
				return results, &ttrerr.IOError{Op: "write", Path: path, Cause: err}
			}
		}
		results = append(results, MigrationResult{Path: path, FromVersion: before, Migrated: migrated})
	}
	return results, nil
}

func reencode(a manifest.Any) (string, error) {
	switch a.Kind {
	case manifest.KindCompany:
		return manifest.EncodeCompany(a.Company)
	case manifest.KindProject:
		return manifest.EncodeProject(a.Project)
	case manifest.KindTask:
		return manifest.EncodeTask(a.Task)
	case manifest.KindResource:
		return manifest.EncodeResource(a.Resource)
	case manifest.KindConfig:
		return manifest.EncodeConfig(a.Config)
	default:
		return "", ttrerr.New(ttrerr.KindSystem, "Manifest/Kind", "unknown manifest kind during migration")
	}
}

// extractAPIVersion pulls the apiVersion line out of a raw document without
// a full decode, purely for the migrate command's report output.
func extractAPIVersion(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "apiVersion:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "apiVersion:"))
		}
	}
	return ""
}

func walkYAMLFiles(dir string, fn func(path string) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ttrerr.IOError{Op: "readdir", Path: dir, Cause: err}
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(dir, name)
		if e.IsDir() {
			if err := walkYAMLFiles(full, fn); err != nil {
				return err
			}
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
