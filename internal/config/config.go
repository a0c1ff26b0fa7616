// Package config reconciles process-wide settings (internal/appconfig)
// with the workspace's own Config manifest (internal/domain,
// internal/repo): it is the one place that decides which config.yaml a
// command actually reads, honoring TTR_CONFIG the way the teacher's
// cmd/wl/main.go treats an explicit --config override as taking
// precedence over the workspace-relative default.
package config

import (
	"os"

	"tasktaskrevolution/internal/appconfig"
	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/manifest"
	"tasktaskrevolution/internal/repo"
	"tasktaskrevolution/internal/ttrerr"
)

// Load resolves the effective Config for a workspace rooted at root,
// reading from the file named by TTR_CONFIG when set instead of the
// workspace's own <root>/config.yaml.
func Load(root string) (domain.Config, error) {
	if override := appconfig.ConfigOverride(); override != "" {
		return loadFile(override)
	}
	return repo.New(root).LoadConfig()
}

func loadFile(path string) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Config{}, ttrerr.ErrNotFound
		}
		return domain.Config{}, &ttrerr.IOError{Op: "read", Path: path, Cause: err}
	}
	m, err := manifest.DecodeConfig(data)
	if err != nil {
		return domain.Config{}, &ttrerr.DecodeFileError{Path: path, Cause: err}
	}
	return repo.ConfigFromManifest(m), nil
}

// Exists reports whether a Config manifest is resolvable for root,
// without treating its absence as an error (§4.E "init").
func Exists(root string) bool {
	if override := appconfig.ConfigOverride(); override != "" {
		_, err := os.Stat(override)
		return err == nil
	}
	return repo.New(root).HasConfig()
}
