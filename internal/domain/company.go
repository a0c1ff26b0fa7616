package domain

import "fmt"

// Company statuses (§3.1).
const (
	CompanyActive    = "Active"
	CompanySuspended = "Suspended"
	CompanyInactive  = "Inactive"
)

// Company is the organizational root aggregate.
type Company struct {
	ID          string
	Code        string
	Name        string
	Description string
	Contact     string
	Industry    string
	Size        string
	Status      string
	CreatedAt   string
	UpdatedAt   string
	CreatedBy   string
}

// Company sizes (§3.1).
const (
	CompanySmall  = "Small"
	CompanyMedium = "Medium"
	CompanyLarge  = "Large"
)

// NewCompany constructs a Company in its initial Active state.
func NewCompany(code, name, size, createdBy string) (Company, error) {
	if name == "" {
		return Company{}, fmt.Errorf("company name must not be empty")
	}
	if size == "" {
		size = CompanyMedium
	}
	now := timestamp()
	return Company{
		ID:        NewID(),
		Code:      code,
		Name:      name,
		Size:      size,
		Status:    CompanyActive,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: createdBy,
	}, nil
}

// CanReceiveProjects reports whether new projects may be attached, per
// §3.1: "an Inactive/Suspended company may not receive new projects".
func (c Company) CanReceiveProjects() bool { return c.Status == CompanyActive }

// CanReceiveResources mirrors CanReceiveProjects for company-scope resources.
func (c Company) CanReceiveResources() bool { return c.Status == CompanyActive }

// WithProfile updates the freely editable descriptive fields. Legal in any
// non-terminal status; Company has no terminal status short of deletion.
func (c Company) WithProfile(name, description, contact, industry string) (Company, error) {
	if name == "" {
		return c, fmt.Errorf("company name must not be empty")
	}
	c.Name = name
	c.Description = description
	c.Contact = contact
	c.Industry = industry
	c.UpdatedAt = timestamp()
	return c, nil
}

// SetStatus transitions Company between Active/Inactive/Suspended.
func (c Company) SetStatus(status string) (Company, error) {
	switch status {
	case CompanyActive, CompanyInactive, CompanySuspended:
	default:
		return c, fmt.Errorf("invalid company status %q", status)
	}
	c.Status = status
	c.UpdatedAt = timestamp()
	return c, nil
}

// SoftDelete transitions a Company to Inactive. Idempotent: deleting an
// already-Inactive company returns the unchanged value and no error, per
// §8 invariant 7.
func (c Company) SoftDelete() Company {
	if c.Status == CompanyInactive {
		return c
	}
	c.Status = CompanyInactive
	c.UpdatedAt = timestamp()
	return c
}
