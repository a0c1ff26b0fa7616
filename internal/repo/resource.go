package repo

import (
	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/manifest"
	"tasktaskrevolution/internal/ttrerr"
)

func resourceToManifest(r domain.Resource) *manifest.ResourceManifest {
	m := &manifest.ResourceManifest{
		Metadata: manifest.Metadata{ID: r.ID, Code: r.Code, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt, CreatedBy: r.CreatedBy},
		Spec: manifest.ResourceSpec{
			Name:                r.Name,
			Email:               r.Email,
			ResourceType:        r.ResourceType,
			Status:              r.Status,
			StartDate:           r.StartDate,
			EndDate:             r.EndDate,
			TimeOffBalanceHours: r.TimeOffBalanceHours,
			Scope:               r.Scope,
			OwningProjectID:     r.OwningProjectID,
		},
	}
	for _, v := range r.VacationPeriods {
		m.Spec.VacationPeriods = append(m.Spec.VacationPeriods, manifest.VacationPeriod{
			StartDate: v.StartDate, EndDate: v.EndDate, Approved: v.Approved,
			Type: v.Type, IsLayoff: v.IsLayoff, CompensatedHours: v.CompensatedHours,
		})
	}
	for _, a := range r.ProjectAssignments {
		m.Spec.ProjectAssignments = append(m.Spec.ProjectAssignments, manifest.ProjectAssignment{
			ProjectCode: a.ProjectCode, StartDate: a.StartDate, EndDate: a.EndDate, Allocation: a.Allocation,
		})
	}
	return m
}

func resourceFromManifest(m *manifest.ResourceManifest) domain.Resource {
	r := domain.Resource{
		ID:                  m.Metadata.ID,
		Code:                m.Metadata.Code,
		Name:                m.Spec.Name,
		Email:               m.Spec.Email,
		ResourceType:        m.Spec.ResourceType,
		Status:              m.Spec.Status,
		StartDate:           m.Spec.StartDate,
		EndDate:             m.Spec.EndDate,
		TimeOffBalanceHours: m.Spec.TimeOffBalanceHours,
		Scope:               m.Spec.Scope,
		OwningProjectID:     m.Spec.OwningProjectID,
		CreatedAt:           m.Metadata.CreatedAt,
		UpdatedAt:           m.Metadata.UpdatedAt,
		CreatedBy:           m.Metadata.CreatedBy,
	}
	for _, v := range m.Spec.VacationPeriods {
		r.VacationPeriods = append(r.VacationPeriods, domain.VacationPeriod{
			StartDate: v.StartDate, EndDate: v.EndDate, Approved: v.Approved,
			Type: v.Type, IsLayoff: v.IsLayoff, CompensatedHours: v.CompensatedHours,
		})
	}
	for _, a := range m.Spec.ProjectAssignments {
		r.ProjectAssignments = append(r.ProjectAssignments, domain.ProjectAssignment{
			ProjectCode: a.ProjectCode, StartDate: a.StartDate, EndDate: a.EndDate, Allocation: a.Allocation,
		})
	}
	return r
}

// SaveCompanyResource writes a company-scope resource.
func (r Repo) SaveCompanyResource(companyCode string, res domain.Resource) error {
	text, err := manifest.EncodeResource(resourceToManifest(res))
	if err != nil {
		return err
	}
	return atomicWrite(r.CompanyResourcePath(companyCode, res.Code), []byte(text))
}

// SaveProjectResource writes a project-scope resource.
func (r Repo) SaveProjectResource(companyCode, projectCode string, res domain.Resource) error {
	text, err := manifest.EncodeResource(resourceToManifest(res))
	if err != nil {
		return err
	}
	return atomicWrite(r.ProjectResourcePath(companyCode, projectCode, res.Code), []byte(text))
}

func (r Repo) FindCompanyResourceByCode(companyCode, code string) (domain.Resource, error) {
	path := r.CompanyResourcePath(companyCode, code)
	data, err := readFile(path)
	if err != nil {
		return domain.Resource{}, err
	}
	m, err := manifest.DecodeResource(data)
	if err != nil {
		return domain.Resource{}, &ttrerr.DecodeFileError{Path: path, Cause: err}
	}
	return resourceFromManifest(m), nil
}

func (r Repo) FindProjectResourceByCode(companyCode, projectCode, code string) (domain.Resource, error) {
	path := r.ProjectResourcePath(companyCode, projectCode, code)
	data, err := readFile(path)
	if err != nil {
		return domain.Resource{}, err
	}
	m, err := manifest.DecodeResource(data)
	if err != nil {
		return domain.Resource{}, &ttrerr.DecodeFileError{Path: path, Cause: err}
	}
	return resourceFromManifest(m), nil
}

// FindAllCompanyResources lists company-scope resources for one company.
func (r Repo) FindAllCompanyResources(companyCode string) ([]domain.Resource, error) {
	return r.findResources(r.CompanyResourceDir(companyCode), "company:"+companyCode)
}

// FindAllProjectResources lists project-scope resources for one project.
func (r Repo) FindAllProjectResources(companyCode, projectCode string) ([]domain.Resource, error) {
	return r.findResources(r.ProjectResourceDir(companyCode, projectCode), "project:"+companyCode+"/"+projectCode)
}

func (r Repo) findResources(dir, scope string) ([]domain.Resource, error) {
	dupes := newDuplicateCheck(scope)
	var out []domain.Resource
	err := walkYAML(dir, func(path string) error {
		data, err := readFile(path)
		if err != nil {
			return err
		}
		m, err := manifest.DecodeResource(data)
		if err != nil {
			return &ttrerr.DecodeFileError{Path: path, Cause: err}
		}
		dupes.add(m.Metadata.Code, path)
		out = append(out, resourceFromManifest(m))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := dupes.err(); err != nil {
		return nil, err
	}
	sortByCode(out, func(res domain.Resource) string { return res.Code })
	return out, nil
}

// FindResourceByCodeAnyScope resolves a resource code first in project
// scope, then company scope, per the resolution order used by task
// assignment (§9 Open Question: project-scope is checked first so it can
// shadow a company-scope resource of the same code without colliding).
func (r Repo) FindResourceByCodeAnyScope(companyCode, projectCode, code string) (domain.Resource, error) {
	if projectCode != "" {
		if res, err := r.FindProjectResourceByCode(companyCode, projectCode, code); err == nil {
			return res, nil
		}
	}
	return r.FindCompanyResourceByCode(companyCode, code)
}
