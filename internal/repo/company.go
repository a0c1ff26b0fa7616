package repo

import (
	"path/filepath"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/manifest"
	"tasktaskrevolution/internal/ttrerr"
)

func companyToManifest(c domain.Company) *manifest.CompanyManifest {
	return &manifest.CompanyManifest{
		Metadata: manifest.Metadata{ID: c.ID, Code: c.Code, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt, CreatedBy: c.CreatedBy},
		Spec: manifest.CompanySpec{
			Name:        c.Name,
			Description: c.Description,
			Contact:     c.Contact,
			Industry:    c.Industry,
			Size:        c.Size,
			Status:      c.Status,
		},
	}
}

func companyFromManifest(m *manifest.CompanyManifest) domain.Company {
	return domain.Company{
		ID:          m.Metadata.ID,
		Code:        m.Metadata.Code,
		Name:        m.Spec.Name,
		Description: m.Spec.Description,
		Contact:     m.Spec.Contact,
		Industry:    m.Spec.Industry,
		Size:        m.Spec.Size,
		Status:      m.Spec.Status,
		CreatedAt:   m.Metadata.CreatedAt,
		UpdatedAt:   m.Metadata.UpdatedAt,
		CreatedBy:   m.Metadata.CreatedBy,
	}
}

// SaveCompany writes c to its canonical path, create-or-update (§4.C).
func (r Repo) SaveCompany(c domain.Company) error {
	text, err := manifest.EncodeCompany(companyToManifest(c))
	if err != nil {
		return err
	}
	return atomicWrite(r.CompanyPath(c.Code), []byte(text))
}

// FindCompanyByCode loads the company at companies/<code>/company.yaml.
func (r Repo) FindCompanyByCode(code string) (domain.Company, error) {
	data, err := readFile(r.CompanyPath(code))
	if err != nil {
		return domain.Company{}, err
	}
	m, err := manifest.DecodeCompany(data)
	if err != nil {
		return domain.Company{}, &ttrerr.DecodeFileError{Path: r.CompanyPath(code), Cause: err}
	}
	return companyFromManifest(m), nil
}

// FindCompanyByID scans every company for a matching id.
func (r Repo) FindCompanyByID(id string) (domain.Company, error) {
	all, err := r.FindAllCompanies()
	if err != nil {
		return domain.Company{}, err
	}
	for _, c := range all {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Company{}, ttrerr.ErrNotFound
}

// FindAllCompanies lists every company in the workspace, sorted by code.
func (r Repo) FindAllCompanies() ([]domain.Company, error) {
	dir := filepath.Join(r.Root, "companies")
	dupes := newDuplicateCheck("workspace")
	var out []domain.Company
	err := walkYAML(dir, func(path string) error {
		if filepath.Base(path) != "company.yaml" {
			return nil
		}
		data, err := readFile(path)
		if err != nil {
			return err
		}
		m, err := manifest.DecodeCompany(data)
		if err != nil {
			return &ttrerr.DecodeFileError{Path: path, Cause: err}
		}
		dupes.add(m.Metadata.Code, path)
		out = append(out, companyFromManifest(m))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := dupes.err(); err != nil {
		return nil, err
	}
	sortByCode(out, func(c domain.Company) string { return c.Code })
	return out, nil
}
