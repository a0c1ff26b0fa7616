package repo

import (
	"path/filepath"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/manifest"
	"tasktaskrevolution/internal/ttrerr"
)

func vacationRulesToManifest(v domain.VacationRules) manifest.VacationRules {
	out := manifest.VacationRules{
		MaxConcurrentVacations:      v.MaxConcurrentVacations,
		AllowConcurrentLayoffs:      v.AllowConcurrentLayoffs,
		RequireLayoffVacationPeriod: v.RequireLayoffVacationPeriod,
	}
	for _, p := range v.LayoffPeriods {
		out.LayoffPeriods = append(out.LayoffPeriods, manifest.Period{StartDate: p.StartDate, EndDate: p.EndDate})
	}
	return out
}

func vacationRulesFromManifest(v manifest.VacationRules) domain.VacationRules {
	out := domain.VacationRules{
		MaxConcurrentVacations:      v.MaxConcurrentVacations,
		AllowConcurrentLayoffs:      v.AllowConcurrentLayoffs,
		RequireLayoffVacationPeriod: v.RequireLayoffVacationPeriod,
	}
	for _, p := range v.LayoffPeriods {
		out.LayoffPeriods = append(out.LayoffPeriods, domain.Period{StartDate: p.StartDate, EndDate: p.EndDate})
	}
	return out
}

func projectToManifest(p domain.Project) *manifest.ProjectManifest {
	return &manifest.ProjectManifest{
		Metadata: manifest.Metadata{ID: p.ID, Code: p.Code, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt, CreatedBy: p.CreatedBy},
		Spec: manifest.ProjectSpec{
			CompanyCode:   p.CompanyCode,
			Name:          p.Name,
			Description:   p.Description,
			Timezone:      p.Timezone,
			StartDate:     p.StartDate,
			EndDate:       p.EndDate,
			Status:        p.Status,
			VacationRules: vacationRulesToManifest(p.VacationRules),
		},
	}
}

func projectFromManifest(m *manifest.ProjectManifest) domain.Project {
	return domain.Project{
		ID:            m.Metadata.ID,
		Code:          m.Metadata.Code,
		CompanyCode:   m.Spec.CompanyCode,
		Name:          m.Spec.Name,
		Description:   m.Spec.Description,
		Timezone:      m.Spec.Timezone,
		StartDate:     m.Spec.StartDate,
		EndDate:       m.Spec.EndDate,
		Status:        m.Spec.Status,
		VacationRules: vacationRulesFromManifest(m.Spec.VacationRules),
		CreatedAt:     m.Metadata.CreatedAt,
		UpdatedAt:     m.Metadata.UpdatedAt,
		CreatedBy:     m.Metadata.CreatedBy,
	}
}

// SaveProject writes p under its owning company (§4.C save_in_hierarchy).
func (r Repo) SaveProject(p domain.Project) error {
	text, err := manifest.EncodeProject(projectToManifest(p))
	if err != nil {
		return err
	}
	return atomicWrite(r.ProjectPath(p.CompanyCode, p.Code), []byte(text))
}

func (r Repo) FindProjectByCode(companyCode, projectCode string) (domain.Project, error) {
	data, err := readFile(r.ProjectPath(companyCode, projectCode))
	if err != nil {
		return domain.Project{}, err
	}
	m, err := manifest.DecodeProject(data)
	if err != nil {
		return domain.Project{}, &ttrerr.DecodeFileError{Path: r.ProjectPath(companyCode, projectCode), Cause: err}
	}
	return projectFromManifest(m), nil
}

// FindProjectByID scans every project in the workspace for a matching id.
func (r Repo) FindProjectByID(id string) (domain.Project, error) {
	all, err := r.FindAllProjects("")
	if err != nil {
		return domain.Project{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Project{}, ttrerr.ErrNotFound
}

// FindAllProjects lists projects, optionally restricted to one company
// (companyCode == "" scans the whole workspace).
func (r Repo) FindAllProjects(companyCode string) ([]domain.Project, error) {
	dir := filepath.Join(r.Root, "companies")
	if companyCode != "" {
		dir = r.CompanyDir(companyCode)
	}
	dupes := newDuplicateCheck("company:" + companyCode)
	var out []domain.Project
	err := walkYAML(dir, func(path string) error {
		if filepath.Base(path) != "project.yaml" {
			return nil
		}
		data, err := readFile(path)
		if err != nil {
			return err
		}
		m, err := manifest.DecodeProject(data)
		if err != nil {
			return &ttrerr.DecodeFileError{Path: path, Cause: err}
		}
		dupes.add(m.Spec.CompanyCode+"/"+m.Metadata.Code, path)
		out = append(out, projectFromManifest(m))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := dupes.err(); err != nil {
		return nil, err
	}
	sortByCode(out, func(p domain.Project) string { return p.CompanyCode + "/" + p.Code })
	return out, nil
}
