package usecase

import (
	"strings"

	"tasktaskrevolution/internal/domain"
)

// SearchHit is one match returned by Search: a kind tag, the codes that
// place it in the tree, and the entity itself as a plain field map so the
// CLI can render arbitrary result shapes without a type switch per caller.
type SearchHit struct {
	Kind        string
	CompanyCode string
	ProjectCode string
	Fields      map[string]string
}

// Search is a thin predicate filter over the repository's find-all
// operations. The query is a space-separated list of key=value terms,
// e.g. "kind=task status=InProgress", every term of which must match
// (logical AND). An empty query returns every entity in the workspace.
func (o *Orchestrator) Search(query string) ([]SearchHit, error) {
	terms := parseQuery(query)
	wantKind := terms["kind"]

	var hits []SearchHit
	companies, err := o.Repo.FindAllCompanies()
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		if matchesKind(wantKind, "company") {
			if h := companyHit(c); matchTerms(h.Fields, terms) {
				hits = append(hits, h)
			}
		}

		resources, err := o.Repo.FindAllCompanyResources(c.Code)
		if err != nil {
			return nil, err
		}
		for _, r := range resources {
			if matchesKind(wantKind, "resource") {
				if h := resourceHit(c.Code, "", r); matchTerms(h.Fields, terms) {
					hits = append(hits, h)
				}
			}
		}

		projects, err := o.Repo.FindAllProjects(c.Code)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			if matchesKind(wantKind, "project") {
				if h := projectHit(p); matchTerms(h.Fields, terms) {
					hits = append(hits, h)
				}
			}

			projectResources, err := o.Repo.FindAllProjectResources(c.Code, p.Code)
			if err != nil {
				return nil, err
			}
			for _, r := range projectResources {
				if matchesKind(wantKind, "resource") {
					if h := resourceHit(c.Code, p.Code, r); matchTerms(h.Fields, terms) {
						hits = append(hits, h)
					}
				}
			}

			tasks, err := o.Repo.FindAllTasks(c.Code, p.Code)
			if err != nil {
				return nil, err
			}
			for _, t := range tasks {
				if matchesKind(wantKind, "task") {
					if h := taskHit(c.Code, t); matchTerms(h.Fields, terms) {
						hits = append(hits, h)
					}
				}
			}
		}
	}
	return hits, nil
}

func matchesKind(want, actual string) bool {
	return want == "" || strings.EqualFold(want, actual)
}

func parseQuery(query string) map[string]string {
	terms := map[string]string{}
	for _, tok := range strings.Fields(query) {
		k, v, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		terms[strings.ToLower(k)] = v
	}
	return terms
}

func matchTerms(fields map[string]string, terms map[string]string) bool {
	for k, v := range terms {
		if k == "kind" {
			continue
		}
		fv, ok := fields[k]
		if !ok || !strings.EqualFold(fv, v) {
			return false
		}
	}
	return true
}

func companyHit(c domain.Company) SearchHit {
	return SearchHit{
		Kind:        "company",
		CompanyCode: c.Code,
		Fields: map[string]string{
			"code": c.Code, "name": c.Name, "status": c.Status, "size": c.Size,
		},
	}
}

func projectHit(p domain.Project) SearchHit {
	return SearchHit{
		Kind:        "project",
		CompanyCode: p.CompanyCode,
		ProjectCode: p.Code,
		Fields: map[string]string{
			"code": p.Code, "name": p.Name, "status": p.Status, "company": p.CompanyCode,
		},
	}
}

func taskHit(companyCode string, t domain.Task) SearchHit {
	return SearchHit{
		Kind:        "task",
		CompanyCode: companyCode,
		ProjectCode: t.ProjectCode,
		Fields: map[string]string{
			"code": t.Code, "name": t.Name, "status": t.Status, "priority": t.Priority,
			"category": t.Category, "project": t.ProjectCode,
		},
	}
}

func resourceHit(companyCode, projectCode string, r domain.Resource) SearchHit {
	return SearchHit{
		Kind:        "resource",
		CompanyCode: companyCode,
		ProjectCode: projectCode,
		Fields: map[string]string{
			"code": r.Code, "name": r.Name, "status": r.Status, "type": r.ResourceType, "scope": r.Scope,
		},
	}
}
