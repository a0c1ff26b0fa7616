package domain

import "fmt"

// WorkingHours bounds the working day used by the scheduling engine when it
// advances dates across non-working hours (§4.F).
type WorkingHours struct {
	Start string
	End   string
}

// VacationRules at workspace scope set the defaults every Project inherits
// unless it overrides them (§3.1).
type Config struct {
	ManagerName         string
	ManagerEmail        string
	DefaultTimezone     string
	WorkingHours        WorkingHours
	WorkingDays         []string
	Currency            string
	Locale              string
	DateFormat          string
	DefaultTaskDuration int
	ResourceTypes       []string
	VacationRules       VacationRules
	MaxActiveTasks      int
	CreatedAt           string
	UpdatedAt           string
}

var defaultWorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// NewDefaultConfig seeds a Config with the values a fresh workspace ships
// with (§4.A "config.Default"-style seeding), mirroring the teacher's
// GenerateDefault pattern of embedding sane defaults rather than requiring
// every field up front.
func NewDefaultConfig(managerName, managerEmail string) (Config, error) {
	if managerName == "" {
		return Config{}, fmt.Errorf("config managerName must not be empty")
	}
	now := timestamp()
	return Config{
		ManagerName:         managerName,
		ManagerEmail:        managerEmail,
		DefaultTimezone:     "UTC",
		WorkingHours:        WorkingHours{Start: "09:00", End: "18:00"},
		WorkingDays:         append([]string(nil), defaultWorkingDays...),
		Currency:            "USD",
		Locale:              "en-US",
		DateFormat:          "2006-01-02",
		DefaultTaskDuration: 8,
		ResourceTypes:       []string{ResourceTypeDeveloper, ResourceTypeDesigner, ResourceTypeManager},
		VacationRules: VacationRules{
			MaxConcurrentVacations: 1,
		},
		MaxActiveTasks: 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// IsWorkingDay reports whether the named weekday (e.g. "Monday") is a
// working day under this config.
func (c Config) IsWorkingDay(weekday string) bool {
	for _, d := range c.WorkingDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// WithManager updates the manager identity fields.
func (c Config) WithManager(name, email string) (Config, error) {
	if name == "" {
		return c, fmt.Errorf("config managerName must not be empty")
	}
	c.ManagerName = name
	c.ManagerEmail = email
	c.UpdatedAt = timestamp()
	return c, nil
}

// WithResourceTypes replaces the extensible resource-type catalog.
func (c Config) WithResourceTypes(types []string) (Config, error) {
	if len(types) == 0 {
		return c, fmt.Errorf("config must declare at least one resource type")
	}
	c.ResourceTypes = types
	c.UpdatedAt = timestamp()
	return c, nil
}

// AllowsResourceType reports whether typ is in the configured catalog.
func (c Config) AllowsResourceType(typ string) bool {
	for _, t := range c.ResourceTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// WithVacationRules replaces the workspace-default vacation policy that
// Projects inherit absent their own override.
func (c Config) WithVacationRules(rules VacationRules) Config {
	c.VacationRules = rules
	c.UpdatedAt = timestamp()
	return c
}
