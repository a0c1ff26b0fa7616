package repo

import (
	"os"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/manifest"
	"tasktaskrevolution/internal/ttrerr"
)

func configToManifest(c domain.Config) *manifest.ConfigManifest {
	spec := manifest.ConfigSpec{
		ManagerName:         c.ManagerName,
		ManagerEmail:        c.ManagerEmail,
		DefaultTimezone:     c.DefaultTimezone,
		WorkingHours:        manifest.WorkingHours{Start: c.WorkingHours.Start, End: c.WorkingHours.End},
		WorkingDays:         c.WorkingDays,
		Currency:            c.Currency,
		Locale:              c.Locale,
		DateFormat:          c.DateFormat,
		DefaultTaskDuration: c.DefaultTaskDuration,
		ResourceTypes:       c.ResourceTypes,
		VacationRules:       vacationRulesToManifest(c.VacationRules),
		MaxActiveTasks:      c.MaxActiveTasks,
	}
	return &manifest.ConfigManifest{
		Metadata: manifest.Metadata{CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt},
		Spec:     spec,
	}
}

// ConfigFromManifest exposes the manifest-to-domain mapping for callers
// outside this package (internal/config's TTR_CONFIG override path reads a
// manifest file directly rather than through a Repo).
func ConfigFromManifest(m *manifest.ConfigManifest) domain.Config {
	return configFromManifest(m)
}

func configFromManifest(m *manifest.ConfigManifest) domain.Config {
	return domain.Config{
		ManagerName:         m.Spec.ManagerName,
		ManagerEmail:        m.Spec.ManagerEmail,
		DefaultTimezone:     m.Spec.DefaultTimezone,
		WorkingHours:        domain.WorkingHours{Start: m.Spec.WorkingHours.Start, End: m.Spec.WorkingHours.End},
		WorkingDays:         m.Spec.WorkingDays,
		Currency:            m.Spec.Currency,
		Locale:              m.Spec.Locale,
		DateFormat:          m.Spec.DateFormat,
		DefaultTaskDuration: m.Spec.DefaultTaskDuration,
		ResourceTypes:       m.Spec.ResourceTypes,
		VacationRules:       vacationRulesFromManifest(m.Spec.VacationRules),
		MaxActiveTasks:      m.Spec.MaxActiveTasks,
		CreatedAt:           m.Metadata.CreatedAt,
		UpdatedAt:           m.Metadata.UpdatedAt,
	}
}

// SaveConfig writes the single workspace Config manifest.
func (r Repo) SaveConfig(c domain.Config) error {
	text, err := manifest.EncodeConfig(configToManifest(c))
	if err != nil {
		return err
	}
	return atomicWrite(r.ConfigPath(), []byte(text))
}

// LoadConfig reads config.yaml at the workspace root.
func (r Repo) LoadConfig() (domain.Config, error) {
	data, err := readFile(r.ConfigPath())
	if err != nil {
		return domain.Config{}, err
	}
	m, err := manifest.DecodeConfig(data)
	if err != nil {
		return domain.Config{}, &ttrerr.DecodeFileError{Path: r.ConfigPath(), Cause: err}
	}
	return configFromManifest(m), nil
}

// HasConfig reports whether this root has already been initialized as a
// workspace (§4.E "init ... fails if config.yaml already exists").
func (r Repo) HasConfig() bool {
	_, err := os.Stat(r.ConfigPath())
	return err == nil
}
