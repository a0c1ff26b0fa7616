package repo

import (
	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/manifest"
	"tasktaskrevolution/internal/ttrerr"
)

func taskToManifest(t domain.Task) *manifest.TaskManifest {
	m := &manifest.TaskManifest{
		Metadata: manifest.Metadata{ID: t.ID, Code: t.Code, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt, CreatedBy: t.CreatedBy},
		Spec: manifest.TaskSpec{
			Name:               t.Name,
			Description:        t.Description,
			Status:             t.Status,
			Priority:           t.Priority,
			Category:           t.Category,
			StartDate:          t.StartDate,
			DueDate:            t.DueDate,
			ActualStartDate:    t.ActualStartDate,
			ActualEndDate:      t.ActualEndDate,
			EstimatedHours:     t.EstimatedHours,
			ActualHours:        t.ActualHours,
			Predecessors:       t.Predecessors,
			AssignedResources:  t.AssignedResources,
			AcceptanceCriteria: t.AcceptanceCriteria,
		},
	}
	for _, c := range t.Comments {
		m.Spec.Comments = append(m.Spec.Comments, manifest.Comment{ActorID: c.ActorID, At: c.At, Text: c.Text})
	}
	return m
}

func taskFromManifest(projectCode string, m *manifest.TaskManifest) domain.Task {
	t := domain.Task{
		ID:                 m.Metadata.ID,
		Code:               m.Metadata.Code,
		ProjectCode:        projectCode,
		Name:               m.Spec.Name,
		Description:        m.Spec.Description,
		Status:             m.Spec.Status,
		Priority:           m.Spec.Priority,
		Category:           m.Spec.Category,
		StartDate:          m.Spec.StartDate,
		DueDate:            m.Spec.DueDate,
		ActualStartDate:    m.Spec.ActualStartDate,
		ActualEndDate:      m.Spec.ActualEndDate,
		EstimatedHours:     m.Spec.EstimatedHours,
		ActualHours:        m.Spec.ActualHours,
		Predecessors:       m.Spec.Predecessors,
		AssignedResources:  m.Spec.AssignedResources,
		AcceptanceCriteria: m.Spec.AcceptanceCriteria,
		CreatedAt:          m.Metadata.CreatedAt,
		UpdatedAt:          m.Metadata.UpdatedAt,
		CreatedBy:          m.Metadata.CreatedBy,
	}
	for _, c := range m.Spec.Comments {
		t.Comments = append(t.Comments, domain.Comment{ActorID: c.ActorID, At: c.At, Text: c.Text})
	}
	return t
}

// SaveTask writes t under its owning project.
func (r Repo) SaveTask(companyCode string, t domain.Task) error {
	text, err := manifest.EncodeTask(taskToManifest(t))
	if err != nil {
		return err
	}
	return atomicWrite(r.TaskPath(companyCode, t.ProjectCode, t.Code), []byte(text))
}

func (r Repo) FindTaskByCode(companyCode, projectCode, taskCode string) (domain.Task, error) {
	path := r.TaskPath(companyCode, projectCode, taskCode)
	data, err := readFile(path)
	if err != nil {
		return domain.Task{}, err
	}
	m, err := manifest.DecodeTask(data)
	if err != nil {
		return domain.Task{}, &ttrerr.DecodeFileError{Path: path, Cause: err}
	}
	return taskFromManifest(projectCode, m), nil
}

// FindAllTasks lists tasks within a project, sorted by code ascending (§5,
// §4.G "ties broken by task code ascending").
func (r Repo) FindAllTasks(companyCode, projectCode string) ([]domain.Task, error) {
	dir := r.TaskDir(companyCode, projectCode)
	dupes := newDuplicateCheck("project:" + companyCode + "/" + projectCode)
	var out []domain.Task
	err := walkYAML(dir, func(path string) error {
		data, err := readFile(path)
		if err != nil {
			return err
		}
		m, err := manifest.DecodeTask(data)
		if err != nil {
			return &ttrerr.DecodeFileError{Path: path, Cause: err}
		}
		dupes.add(m.Metadata.Code, path)
		out = append(out, taskFromManifest(projectCode, m))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := dupes.err(); err != nil {
		return nil, err
	}
	sortByCode(out, func(t domain.Task) string { return t.Code })
	return out, nil
}

// FindTaskByID scans every company/project for a matching id.
func (r Repo) FindTaskByID(id string) (domain.Task, error) {
	companies, err := r.FindAllCompanies()
	if err != nil {
		return domain.Task{}, err
	}
	for _, c := range companies {
		projects, err := r.FindAllProjects(c.Code)
		if err != nil {
			return domain.Task{}, err
		}
		for _, p := range projects {
			tasks, err := r.FindAllTasks(c.Code, p.Code)
			if err != nil {
				return domain.Task{}, err
			}
			for _, t := range tasks {
				if t.ID == id {
					return t, nil
				}
			}
		}
	}
	return domain.Task{}, ttrerr.ErrNotFound
}
