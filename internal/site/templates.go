package site

import (
	"bytes"
	"html/template"
	"path"
	"regexp"

	"tasktaskrevolution/internal/cache"
	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/engine"
)

var hrefRe = regexp.MustCompile(`href="([^"]+)"`)

func extractHrefs(html string) []string {
	matches := hrefRe.FindAllStringSubmatch(html, -1)
	hrefs := make([]string, 0, len(matches))
	for _, m := range matches {
		hrefs = append(hrefs, m[1])
	}
	return hrefs
}

const pageShell = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title><link rel="stylesheet" href="{{.AssetsHref}}"></head>
<body>
<nav>{{range .Breadcrumbs}}<a href="{{.Href}}">{{.Label}}</a> / {{end}}</nav>
<h1>{{.Title}}</h1>
{{.Body}}
</body>
</html>
`

type crumb struct {
	Href  string
	Label string
}

type page struct {
	Title       string
	AssetsHref  string
	Breadcrumbs []crumb
	Body        template.HTML
}

var shellTmpl = template.Must(template.New("shell").Parse(pageShell))

func (b *Builder) renderPage(relPath, title string, breadcrumbs []crumb, body template.HTML) error {
	var buf bytes.Buffer
	dir := path.Dir(relPath)
	p := page{Title: title, AssetsHref: b.link(dir, "assets/style.css"), Breadcrumbs: breadcrumbs, Body: body}
	if err := shellTmpl.Execute(&buf, p); err != nil {
		return err
	}
	if err := b.write("assets/style.css", []byte(stylesheet)); err != nil {
		return err
	}
	return b.write(relPath, buf.Bytes())
}

const stylesheet = `body{font-family:sans-serif;margin:2rem;}nav{color:#666;margin-bottom:1rem;}
table{border-collapse:collapse;width:100%;}td,th{border:1px solid #ccc;padding:.4rem;text-align:left;}
.gantt-bar{height:1.2rem;display:inline-block;}
.status-Planned{background:#ccc;}.status-ToDo{background:#9cf;}.status-InProgress{background:#fc6;}
.status-Done{background:#8c8;}.status-Blocked{background:#f88;}.status-Cancelled{background:#eee;}
`

func (b *Builder) renderIndex(companies []domain.Company) error {
	const dir = "."
	var body bytes.Buffer
	body.WriteString("<h2>Companies</h2><ul>")
	for _, c := range companies {
		body.WriteString(`<li><a href="` + b.link(dir, "companies/"+c.Code+"/index.html") + `">` + template.HTMLEscapeString(c.Name) + `</a> (` + c.Status + `)</li>`)
	}
	body.WriteString("</ul>")
	return b.renderPage("index.html", "Workspace Dashboard", nil, template.HTML(body.String()))
}

func (b *Builder) renderCompaniesIndex(companies []domain.Company) error {
	const dir = "companies"
	var body bytes.Buffer
	body.WriteString("<table><tr><th>Code</th><th>Name</th><th>Status</th></tr>")
	for _, c := range companies {
		body.WriteString("<tr><td>" + c.Code + "</td><td>" + template.HTMLEscapeString(c.Name) + "</td><td>" + c.Status + "</td></tr>")
	}
	body.WriteString("</table>")
	crumbs := []crumb{{Href: b.link(dir, "index.html"), Label: "Dashboard"}}
	return b.renderPage("companies/index.html", "Companies", crumbs, template.HTML(body.String()))
}

func (b *Builder) renderCompany(c domain.Company) error {
	dir := "companies/" + c.Code
	var body bytes.Buffer
	body.WriteString("<p>Status: " + c.Status + " · Size: " + c.Size + "</p>")
	body.WriteString(`<p><a href="` + b.link(dir, "companies/"+c.Code+"/gantt.html") + `">Company Gantt</a></p>`)
	crumbs := []crumb{
		{Href: b.link(dir, "index.html"), Label: "Dashboard"},
		{Href: b.link(dir, "companies/index.html"), Label: "Companies"},
	}
	return b.renderPage("companies/"+c.Code+"/index.html", c.Name, crumbs, template.HTML(body.String()))
}

func (b *Builder) renderProject(c domain.Company, p domain.Project, tasks []domain.Task) error {
	dir := "companies/" + c.Code + "/projects/" + p.Code
	var body bytes.Buffer
	body.WriteString("<p>Status: " + p.Status + "</p>")
	body.WriteString(`<p><a href="` + b.link(dir, "companies/"+c.Code+"/projects/"+p.Code+"/gantt.html") + `">Project Gantt</a></p>`)
	body.WriteString("<h2>Tasks</h2><table><tr><th>Code</th><th>Name</th><th>Status</th></tr>")
	for _, t := range tasks {
		href := b.link(dir, "companies/"+c.Code+"/projects/"+p.Code+"/tasks/"+t.Code+".html")
		body.WriteString(`<tr><td><a href="` + href + `">` + t.Code + `</a></td><td>` + template.HTMLEscapeString(t.Name) + `</td><td class="status-` + t.Status + `">` + t.Status + `</td></tr>`)
	}
	body.WriteString("</table>")
	crumbs := []crumb{
		{Href: b.link(dir, "index.html"), Label: "Dashboard"},
		{Href: b.link(dir, "companies/index.html"), Label: "Companies"},
		{Href: b.link(dir, "companies/"+c.Code+"/index.html"), Label: c.Code},
	}
	return b.renderPage("companies/"+c.Code+"/projects/"+p.Code+"/index.html", p.Name, crumbs, template.HTML(body.String()))
}

func (b *Builder) renderTask(c domain.Company, p domain.Project, t domain.Task) error {
	dir := "companies/" + c.Code + "/projects/" + p.Code + "/tasks"
	var body bytes.Buffer
	body.WriteString("<p>Status: " + t.Status + "</p>")
	body.WriteString("<p>Declared: " + t.StartDate + " → " + t.DueDate + "</p>")
	if len(t.Predecessors) > 0 {
		body.WriteString("<p>Predecessors: " + joinComma(t.Predecessors) + "</p>")
	}
	if len(t.AssignedResources) > 0 {
		body.WriteString("<p>Assigned: " + joinComma(t.AssignedResources) + "</p>")
	}
	crumbs := []crumb{
		{Href: b.link(dir, "index.html"), Label: "Dashboard"},
		{Href: b.link(dir, "companies/index.html"), Label: "Companies"},
		{Href: b.link(dir, "companies/"+c.Code+"/index.html"), Label: c.Code},
		{Href: b.link(dir, "companies/"+c.Code+"/projects/"+p.Code+"/index.html"), Label: p.Code},
	}
	relPath := "companies/" + c.Code + "/projects/" + p.Code + "/tasks/" + t.Code + ".html"
	return b.renderPage(relPath, t.Name, crumbs, template.HTML(body.String()))
}

func (b *Builder) renderResource(companyCode, projectCode string, r domain.Resource) error {
	dir := "companies/" + companyCode + "/resources"
	if projectCode != "" {
		dir = "companies/" + companyCode + "/projects/" + projectCode + "/resources"
	}
	var body bytes.Buffer
	body.WriteString("<p>Type: " + r.ResourceType + " · Status: " + r.Status + "</p>")
	crumbs := []crumb{
		{Href: b.link(dir, "index.html"), Label: "Dashboard"},
		{Href: b.link(dir, "companies/index.html"), Label: "Companies"},
		{Href: b.link(dir, "companies/"+companyCode+"/index.html"), Label: companyCode},
	}
	relPath := "companies/" + companyCode + "/resources/" + r.Code + ".html"
	if projectCode != "" {
		relPath = "companies/" + companyCode + "/projects/" + projectCode + "/resources/" + r.Code + ".html"
		crumbs = append(crumbs, crumb{Href: b.link(dir, "companies/"+companyCode+"/projects/"+projectCode+"/index.html"), Label: projectCode})
	}
	return b.renderPage(relPath, r.Name, crumbs, template.HTML(body.String()))
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// taskGroup is one project's tasks, scheduled independently. Task codes are
// unique only within a project (§3.1), so the dependency engine must never
// see two projects' tasks in the same byCode map — a company Gantt chart
// schedules each project's group on its own and concatenates the bars.
type taskGroup struct {
	ProjectCode string
	Tasks       []domain.Task
}

// gantt renders one Gantt chart page: each group's tasks in topological
// order, bars spanning their computed windows, colored by status. cacheKey
// scopes the optional persisted schedule cache (§6); each group's own
// project code is appended to it so a company chart's per-project cache
// entries don't collide with each other or with that project's own chart.
func (b *Builder) gantt(cacheKey string, groups []taskGroup, cal engine.Calendar) (template.HTML, error) {
	var body bytes.Buffer
	body.WriteString("<div class=\"gantt\">")
	for _, g := range groups {
		byCode := map[string]domain.Task{}
		for _, t := range g.Tasks {
			byCode[t.Code] = t
		}
		order, err := engine.TopoSort(byCode)
		if err != nil {
			return "", err
		}
		windows, err := b.computeScheduleCached(cacheKey+"/"+g.ProjectCode, byCode, cal)
		if err != nil {
			return "", err
		}
		if len(groups) > 1 {
			body.WriteString("<h3>" + g.ProjectCode + "</h3>")
		}
		for _, code := range order {
			t := byCode[code]
			w := windows[code]
			label := t.Code + " " + t.Name
			if len(t.AssignedResources) > 0 {
				label += " [" + joinComma(t.AssignedResources) + "]"
			}
			if len(t.Predecessors) > 0 {
				label += " ← " + joinComma(t.Predecessors)
			}
			width := 20
			if !w.EarliestStart.IsZero() && !w.EarliestFinish.IsZero() {
				days := int(w.EarliestFinish.Sub(w.EarliestStart).Hours()/24) + 1
				if days > 0 {
					width = days * 20
				}
			}
			body.WriteString(`<div><span class="gantt-bar status-` + t.Status + `" style="width:` + itoa(width) + `px"></span> ` + template.HTMLEscapeString(label) + `</div>`)
		}
	}
	body.WriteString("</div>")
	return template.HTML(body.String()), nil
}

// computeScheduleCached consults the optional persisted schedule cache
// before falling back to a fresh engine.ComputeSchedule. A missing or
// unopenable cache (b.cache == nil) degrades silently to always-compute.
func (b *Builder) computeScheduleCached(cacheKey string, byCode map[string]domain.Task, cal engine.Calendar) (map[string]engine.Window, error) {
	hash, err := cache.ContentHash(byCode)
	if err != nil {
		return engine.New().ComputeSchedule(byCode, cal)
	}
	var windows map[string]engine.Window
	if b.cache.Get(cacheKey, hash, &windows) {
		return windows, nil
	}
	windows, err = engine.New().ComputeSchedule(byCode, cal)
	if err != nil {
		return nil, err
	}
	_ = b.cache.Put(cacheKey, hash, windows)
	return windows, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func (b *Builder) renderCompanyGantt(c domain.Company, projects []domain.Project) error {
	dir := "companies/" + c.Code
	var groups []taskGroup
	for _, p := range projects {
		tasks, err := b.Repo.FindAllTasks(c.Code, p.Code)
		if err != nil {
			return err
		}
		groups = append(groups, taskGroup{ProjectCode: p.Code, Tasks: tasks})
	}
	cfg, err := b.Repo.LoadConfig()
	if err != nil {
		return err
	}
	cal := engine.NewCalendar(cfg.WorkingDays, hoursPerDay(cfg.WorkingHours))
	body, err := b.gantt("company:"+c.Code, groups, cal)
	if err != nil {
		return err
	}
	crumbs := []crumb{
		{Href: b.link(dir, "index.html"), Label: "Dashboard"},
		{Href: b.link(dir, "companies/index.html"), Label: "Companies"},
		{Href: b.link(dir, "companies/"+c.Code+"/index.html"), Label: c.Code},
	}
	return b.renderPage("companies/"+c.Code+"/gantt.html", c.Name+" Gantt", crumbs, body)
}

func (b *Builder) renderProjectGantt(c domain.Company, p domain.Project, tasks []domain.Task, cal engine.Calendar) error {
	dir := "companies/" + c.Code + "/projects/" + p.Code
	body, err := b.gantt("project:"+c.Code+"/"+p.Code, []taskGroup{{ProjectCode: p.Code, Tasks: tasks}}, cal)
	if err != nil {
		return err
	}
	crumbs := []crumb{
		{Href: b.link(dir, "index.html"), Label: "Dashboard"},
		{Href: b.link(dir, "companies/index.html"), Label: "Companies"},
		{Href: b.link(dir, "companies/"+c.Code+"/index.html"), Label: c.Code},
		{Href: b.link(dir, "companies/"+c.Code+"/projects/"+p.Code+"/index.html"), Label: p.Code},
	}
	return b.renderPage("companies/"+c.Code+"/projects/"+p.Code+"/gantt.html", p.Name+" Gantt", crumbs, body)
}
