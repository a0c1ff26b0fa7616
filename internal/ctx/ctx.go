// Package ctx implements the Context Resolver (§4.D): mapping the current
// working directory to an ambient scope so commands run inside a project
// directory don't need --company/--project flags repeated on every call.
package ctx

import (
	"os"
	"path/filepath"
	"strings"

	"tasktaskrevolution/internal/ttrerr"
)

// Kind classifies the ambient scope derived from cwd.
type Kind int

const (
	Workspace Kind = iota
	InCompany
	InProject
	InResource
)

func (k Kind) String() string {
	switch k {
	case InCompany:
		return "InCompany"
	case InProject:
		return "InProject"
	case InResource:
		return "InResource"
	default:
		return "Workspace"
	}
}

// Context is the ambient scope resolved from cwd (§4.D).
type Context struct {
	Kind         Kind
	Root         string
	CompanyCode  string
	ProjectCode  string
	ResourceCode string
}

// Resolve walks upward from dir until it finds config.yaml, then classifies
// the remaining relative path against the canonical layout of §4.C.
func Resolve(dir string) (Context, error) {
	root, err := findRoot(dir)
	if err != nil {
		return Context{}, err
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return Context{}, err
	}
	if rel == "." {
		return Context{Kind: Workspace, Root: root}, nil
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	// companies/<CODE>[/resources|/projects/<CODE>[/resources|/tasks]]
	if len(parts) >= 2 && parts[0] == "companies" {
		companyCode := parts[1]
		if len(parts) == 2 {
			return Context{Kind: InCompany, Root: root, CompanyCode: companyCode}, nil
		}
		switch parts[2] {
		case "resources":
			rc := ""
			if len(parts) >= 4 {
				rc = strings.TrimSuffix(parts[3], ".yaml")
			}
			return Context{Kind: InResource, Root: root, CompanyCode: companyCode, ResourceCode: rc}, nil
		case "projects":
			if len(parts) >= 4 {
				projectCode := parts[3]
				if len(parts) >= 5 && parts[4] == "resources" {
					rc := ""
					if len(parts) >= 6 {
						rc = strings.TrimSuffix(parts[5], ".yaml")
					}
					return Context{Kind: InResource, Root: root, CompanyCode: companyCode, ProjectCode: projectCode, ResourceCode: rc}, nil
				}
				return Context{Kind: InProject, Root: root, CompanyCode: companyCode, ProjectCode: projectCode}, nil
			}
			return Context{Kind: InCompany, Root: root, CompanyCode: companyCode}, nil
		}
		return Context{Kind: InCompany, Root: root, CompanyCode: companyCode}, nil
	}
	return Context{Kind: Workspace, Root: root}, nil
}

func findRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ttrerr.New(ttrerr.KindUserInput, "Context", "not inside a TaskTaskRevolution workspace").
				WithSuggestion("run `ttr init` here, or pass --workspace")
		}
		dir = parent
	}
}

// Override applies explicit --company/--project flags over the resolved
// context. A non-empty explicit value that disagrees with the resolved
// context is a ContextConflict (§4.D).
func (c Context) Override(explicitCompany, explicitProject string) (Context, error) {
	if explicitCompany != "" && c.CompanyCode != "" && explicitCompany != c.CompanyCode {
		return c, ttrerr.New(ttrerr.KindUserInput, "ContextConflict",
			"explicit --company does not match ambient context").
			WithEntity(explicitCompany, "company")
	}
	if explicitProject != "" && c.ProjectCode != "" && explicitProject != c.ProjectCode {
		return c, ttrerr.New(ttrerr.KindUserInput, "ContextConflict",
			"explicit --project does not match ambient context").
			WithEntity(explicitProject, "project")
	}
	if explicitCompany != "" {
		c.CompanyCode = explicitCompany
	}
	if explicitProject != "" {
		c.ProjectCode = explicitProject
	}
	return c, nil
}
