// Package site builds the deterministic static HTML site and Gantt
// charts described in §4.H: a workspace dashboard, one page per
// company/project/task/resource, and a Gantt chart per company and
// project scope. It uses stdlib html/template the way the teacher has
// no frontend framework dependency to draw from and §4.H requires a
// fully static, portable output tree.
package site

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"tasktaskrevolution/internal/cache"
	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/engine"
	"tasktaskrevolution/internal/repo"
)

// Builder renders the full site tree for a workspace into an output
// directory, tracking every path it writes so the final self-check can
// confirm no emitted link dangles (§4.H "link integrity").
type Builder struct {
	Repo      repo.Repo
	OutDir    string
	LocalLink bool // when true, links are relative instead of root-absolute (TTR_LOCAL_BUILD)
	written   map[string]bool
	cache     *cache.Store
}

func New(r repo.Repo, outDir string, localLink bool) *Builder {
	return &Builder{Repo: r, OutDir: outDir, LocalLink: localLink, written: map[string]bool{}}
}

// Build renders every page and returns the list of relative output paths
// written, or an error from the first failed template render, filesystem
// write, or link-integrity check. It opens the optional schedule cache
// under .ttr/cache/ for the duration of the run; a failure to open it is
// not fatal, it just means every Gantt window gets recomputed.
func (b *Builder) Build() ([]string, error) {
	store, err := cache.Open(b.Repo.Root)
	if err == nil {
		b.cache = store
		defer store.Close()
	}

	cfg, err := b.Repo.LoadConfig()
	if err != nil {
		return nil, err
	}
	companies, err := b.Repo.FindAllCompanies()
	if err != nil {
		return nil, err
	}
	sortCompanies(companies)

	if err := b.renderIndex(companies); err != nil {
		return nil, err
	}
	if err := b.renderCompaniesIndex(companies); err != nil {
		return nil, err
	}
	cal := engine.NewCalendar(cfg.WorkingDays, hoursPerDay(cfg.WorkingHours))

	for _, c := range companies {
		if err := b.renderCompany(c); err != nil {
			return nil, err
		}
		projects, err := b.Repo.FindAllProjects(c.Code)
		if err != nil {
			return nil, err
		}
		sortProjects(projects)
		if err := b.renderCompanyGantt(c, projects); err != nil {
			return nil, err
		}
		companyResources, err := b.Repo.FindAllCompanyResources(c.Code)
		if err != nil {
			return nil, err
		}
		for _, r := range companyResources {
			if err := b.renderResource(c.Code, "", r); err != nil {
				return nil, err
			}
		}
		for _, p := range projects {
			tasks, err := b.Repo.FindAllTasks(c.Code, p.Code)
			if err != nil {
				return nil, err
			}
			if err := b.renderProject(c, p, tasks); err != nil {
				return nil, err
			}
			if err := b.renderProjectGantt(c, p, tasks, cal); err != nil {
				return nil, err
			}
			for _, t := range tasks {
				if err := b.renderTask(c, p, t); err != nil {
					return nil, err
				}
			}
			projectResources, err := b.Repo.FindAllProjectResources(c.Code, p.Code)
			if err != nil {
				return nil, err
			}
			for _, r := range projectResources {
				if err := b.renderResource(c.Code, p.Code, r); err != nil {
					return nil, err
				}
			}
		}
	}

	paths := make([]string, 0, len(b.written))
	for p := range b.written {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	if err := b.checkLinkIntegrity(paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func sortCompanies(cs []domain.Company) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Code < cs[j].Code })
}

func sortProjects(ps []domain.Project) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Code < ps[j].Code })
}

func (b *Builder) write(relPath string, data []byte) error {
	full := filepath.Join(b.OutDir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return err
	}
	b.written[relPath] = true
	return nil
}

// link renders a navigable href to relPath, root-absolute unless the
// builder was configured for a local (file://-friendly) build, in which
// case it is resolved relative to fromDir — the directory of the page the
// href is being written into — so the link still opens correctly when the
// output tree is browsed directly off disk rather than served from root.
func (b *Builder) link(fromDir, relPath string) string {
	if !b.LocalLink {
		return "/" + relPath
	}
	return relativeURL(fromDir, relPath)
}

// relativeURL computes a "/"-joined relative path from fromDir to target,
// both forward-slash workspace-relative paths regardless of host OS (unlike
// path/filepath.Rel, which is OS-path-separator aware).
func relativeURL(fromDir, target string) string {
	if fromDir == "" || fromDir == "." {
		return target
	}
	fromParts := strings.Split(fromDir, "/")
	targetParts := strings.Split(path.Dir(target), "/")
	if targetParts[0] == "." {
		targetParts = targetParts[1:]
	}
	common := 0
	for common < len(fromParts) && common < len(targetParts) && fromParts[common] == targetParts[common] {
		common++
	}
	rel := strings.Repeat("../", len(fromParts)-common)
	for _, part := range targetParts[common:] {
		rel += part + "/"
	}
	return rel + path.Base(target)
}

// checkLinkIntegrity re-parses every emitted HTML file's hrefs and fails
// if any points at a path this run did not also write, per §4.H "the
// builder emits no link to a file it does not also write in the same
// run."
func (b *Builder) checkLinkIntegrity(paths []string) error {
	for _, relPath := range paths {
		if filepath.Ext(relPath) != ".html" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(b.OutDir, relPath))
		if err != nil {
			return err
		}
		for _, href := range extractHrefs(string(data)) {
			target := trimLeadingSlash(href)
			if b.LocalLink && !strings.HasPrefix(href, "/") {
				target = path.Join(path.Dir(relPath), href)
			}
			if !b.written[target] {
				return fmt.Errorf("dangling link in %s: %s", relPath, href)
			}
		}
	}
	return nil
}

func trimLeadingSlash(p string) string {
	if len(p) > 0 && p[0] == '/' {
		return p[1:]
	}
	return p
}

func hoursPerDay(h domain.WorkingHours) float64 {
	if h.Start == "" || h.End == "" {
		return 8
	}
	var sh, sm, eh, em int
	fmt.Sscanf(h.Start, "%d:%d", &sh, &sm)
	fmt.Sscanf(h.End, "%d:%d", &eh, &em)
	hrs := float64(eh-sh) + float64(em-sm)/60
	if hrs <= 0 {
		return 8
	}
	return hrs
}
