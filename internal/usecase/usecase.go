// Package usecase implements the transactional command handlers (§4.E):
// each exported function is a pure function of (inputs, context,
// repositories, clock) that loads what it needs, validates the candidate
// post-state, computes dependency effects, and writes the full write-set
// through the Repository Layer. This mirrors the teacher engine's
// InitProject/CreateTask/UpdateTask shape, generalized from a SQL
// transaction to a sequence of atomic file writes (§4.E step 4:
// "best-effort atomicity").
package usecase

import (
	"fmt"
	"sort"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/engine"
	"tasktaskrevolution/internal/logging"
	"tasktaskrevolution/internal/repo"
	"tasktaskrevolution/internal/ttrerr"
	"tasktaskrevolution/internal/validate"
)

// Orchestrator bundles the repository, clock, and dependency engine every
// use-case needs, mirroring the teacher's Engine{Repo, Now} grouping.
type Orchestrator struct {
	Repo repo.Repo
	Now  func() string // ISO-8601 UTC, matching domain.timestamp's format
	eng  *engine.Engine
}

func New(r repo.Repo) *Orchestrator {
	return &Orchestrator{Repo: r, Now: func() string { return "" }, eng: engine.New()}
}

// Init creates the workspace root and Config manifest (§4.E "init").
func (o *Orchestrator) Init(managerName, managerEmail string, force bool) error {
	if o.Repo.HasConfig() && !force {
		return ttrerr.New(ttrerr.KindUserInput, "Init", "workspace already initialized").
			WithSuggestion("pass --force to reinitialize")
	}
	cfg, err := domain.NewDefaultConfig(managerName, managerEmail)
	if err != nil {
		return ttrerr.New(ttrerr.KindUserInput, "Init", err.Error())
	}
	if err := o.Repo.SaveConfig(cfg); err != nil {
		return err
	}
	logging.L().WithField("manager", managerName).Info("workspace initialized")
	return nil
}

// CreateCompany generates a code if omitted, validates, and persists. An
// explicitly-supplied code that collides with an existing company is a
// DuplicateCode error rather than a silent suffix; the suffix path is only
// for codes this use-case generated itself (§3.3, §4.E "create <kind>").
func (o *Orchestrator) CreateCompany(name, code, size, createdBy string) (domain.Company, error) {
	if code == "" {
		code = o.disambiguateCompanyCode(domain.GenerateCode(name))
	} else {
		taken, err := o.companyCodeTaken(code)
		if err != nil {
			return domain.Company{}, err
		}
		if taken {
			return domain.Company{}, &ttrerr.DuplicateCodeError{Code: code, Scope: "Company", Paths: []string{o.Repo.CompanyPath(code)}}
		}
	}
	c, err := domain.NewCompany(code, name, size, createdBy)
	if err != nil {
		return domain.Company{}, ttrerr.New(ttrerr.KindUserInput, "Company/Create", err.Error())
	}
	if err := o.Repo.SaveCompany(c); err != nil {
		return domain.Company{}, err
	}
	return c, nil
}

func (o *Orchestrator) disambiguateCompanyCode(code string) string {
	all, err := o.Repo.FindAllCompanies()
	if err != nil {
		return code
	}
	taken := map[string]bool{}
	for _, c := range all {
		taken[c.Code] = true
	}
	if !taken[code] {
		return code
	}
	for n := 2; ; n++ {
		candidate := domain.WithSuffix(code, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

func (o *Orchestrator) companyCodeTaken(code string) (bool, error) {
	all, err := o.Repo.FindAllCompanies()
	if err != nil {
		return false, err
	}
	for _, c := range all {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// CreateProject validates companyCode references a live company before
// persisting (§4.F ReferentialRules, enforced here per §4.E step 2).
func (o *Orchestrator) CreateProject(name, code, companyCode, createdBy string) (domain.Project, error) {
	company, err := o.Repo.FindCompanyByCode(companyCode)
	if err != nil {
		return domain.Project{}, ttrerr.New(ttrerr.KindUserInput, "Project/Create", "unknown company").WithEntity(companyCode, "companyCode")
	}
	if !company.CanReceiveProjects() {
		return domain.Project{}, ttrerr.New(ttrerr.KindValidation, "Project/Create", "company is not Active").WithEntity(companyCode, "companyCode")
	}
	if code == "" {
		code = o.disambiguateProjectCode(companyCode, domain.GenerateCode(name))
	} else {
		taken, err := o.projectCodeTaken(companyCode, code)
		if err != nil {
			return domain.Project{}, err
		}
		if taken {
			return domain.Project{}, &ttrerr.DuplicateCodeError{Code: code, Scope: "Project", Paths: []string{o.Repo.ProjectPath(companyCode, code)}}
		}
	}
	p, err := domain.NewProject(code, companyCode, name, createdBy)
	if err != nil {
		return domain.Project{}, ttrerr.New(ttrerr.KindUserInput, "Project/Create", err.Error())
	}
	if err := o.Repo.SaveProject(p); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

func (o *Orchestrator) disambiguateProjectCode(companyCode, code string) string {
	all, err := o.Repo.FindAllProjects(companyCode)
	if err != nil {
		return code
	}
	taken := map[string]bool{}
	for _, p := range all {
		taken[p.Code] = true
	}
	if !taken[code] {
		return code
	}
	for n := 2; ; n++ {
		candidate := domain.WithSuffix(code, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

func (o *Orchestrator) projectCodeTaken(companyCode, code string) (bool, error) {
	all, err := o.Repo.FindAllProjects(companyCode)
	if err != nil {
		return false, err
	}
	for _, p := range all {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// CreateTask validates the parent project exists, generates a code if
// omitted, and persists (§4.E "create task").
func (o *Orchestrator) CreateTask(companyCode, projectCode, name, start, due string, estimatedHours float64, createdBy string) (domain.Task, error) {
	if _, err := o.Repo.FindProjectByCode(companyCode, projectCode); err != nil {
		return domain.Task{}, ttrerr.New(ttrerr.KindUserInput, "Task/Create", "unknown project").WithEntity(projectCode, "projectCode")
	}
	code := domain.GenerateCode(name)
	code = o.disambiguateTaskCode(companyCode, projectCode, code)
	t, err := domain.NewTask(code, projectCode, name, start, due, estimatedHours, createdBy)
	if err != nil {
		return domain.Task{}, ttrerr.New(ttrerr.KindUserInput, "Task/Create", err.Error())
	}
	if err := o.Repo.SaveTask(companyCode, t); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (o *Orchestrator) disambiguateTaskCode(companyCode, projectCode, code string) string {
	all, err := o.Repo.FindAllTasks(companyCode, projectCode)
	if err != nil {
		return code
	}
	taken := map[string]bool{}
	for _, t := range all {
		taken[t.Code] = true
	}
	if !taken[code] {
		return code
	}
	for n := 2; ; n++ {
		candidate := domain.WithSuffix(code, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// CreateResource validates the owning company can receive resources and
// resourceType is declared in Config before persisting.
func (o *Orchestrator) CreateResource(name, resourceType, companyCode, projectCode, createdBy string) (domain.Resource, error) {
	company, err := o.Repo.FindCompanyByCode(companyCode)
	if err != nil {
		return domain.Resource{}, ttrerr.New(ttrerr.KindUserInput, "Resource/Create", "unknown company").WithEntity(companyCode, "companyCode")
	}
	if !company.CanReceiveResources() {
		return domain.Resource{}, ttrerr.New(ttrerr.KindValidation, "Resource/Create", "company is not Active").WithEntity(companyCode, "companyCode")
	}
	cfg, err := o.Repo.LoadConfig()
	if err != nil {
		return domain.Resource{}, err
	}
	scope := domain.ResourceScopeCompany
	if projectCode != "" {
		scope = domain.ResourceScopeProject
	}
	r, err := domain.NewResource(domain.GenerateCode(name), name, resourceType, scope, createdBy)
	if err != nil {
		return domain.Resource{}, ttrerr.New(ttrerr.KindUserInput, "Resource/Create", err.Error())
	}
	if res := validate.ResourceTypeRule(r, cfg); !res.OK() {
		v := res.Violations[0]
		return domain.Resource{}, ttrerr.New(ttrerr.KindValidation, v.Category, v.Message).WithEntity(v.EntityCode, v.Field)
	}
	if scope == domain.ResourceScopeProject {
		if err := o.Repo.SaveProjectResource(companyCode, projectCode, r); err != nil {
			return domain.Resource{}, err
		}
	} else {
		if err := o.Repo.SaveCompanyResource(companyCode, r); err != nil {
			return domain.Resource{}, err
		}
	}
	return r, nil
}

// DeleteTask soft-deletes a task; a second call on an already-Cancelled
// task succeeds with no file change (§4.E "delete <kind>", idempotent).
func (o *Orchestrator) DeleteTask(companyCode, projectCode, taskCode string) (domain.Task, bool, error) {
	t, err := o.Repo.FindTaskByCode(companyCode, projectCode, taskCode)
	if err != nil {
		return domain.Task{}, false, err
	}
	alreadyCancelled := t.Status == domain.TaskCancelled
	t = t.SoftDelete()
	if !alreadyCancelled {
		if err := o.Repo.SaveTask(companyCode, t); err != nil {
			return domain.Task{}, false, err
		}
	}
	return t, alreadyCancelled, nil
}

// DeleteCompany soft-deletes a company (idempotent, same shape as DeleteTask).
func (o *Orchestrator) DeleteCompany(code string) (domain.Company, bool, error) {
	c, err := o.Repo.FindCompanyByCode(code)
	if err != nil {
		return domain.Company{}, false, err
	}
	already := c.Status == domain.CompanyInactive
	c = c.SoftDelete()
	if !already {
		if err := o.Repo.SaveCompany(c); err != nil {
			return domain.Company{}, false, err
		}
	}
	return c, already, nil
}

// LinkTasks adds a Finish-to-Start predecessor edge after a cycle check
// (§4.E "link / unlink tasks", §4.G point 1).
func (o *Orchestrator) LinkTasks(companyCode, projectCode, from, to string) error {
	tasks, err := o.Repo.FindAllTasks(companyCode, projectCode)
	if err != nil {
		return err
	}
	byCode := map[string]domain.Task{}
	for _, t := range tasks {
		byCode[t.Code] = t
	}
	if _, ok := byCode[from]; !ok {
		return ttrerr.New(ttrerr.KindUserInput, "Task/Link", "unknown task").WithEntity(from, "from")
	}
	target, ok := byCode[to]
	if !ok {
		return ttrerr.New(ttrerr.KindUserInput, "Task/Link", "unknown task").WithEntity(to, "to")
	}
	if err := engine.DetectCycle(byCode, from, to); err != nil {
		return ttrerr.New(ttrerr.KindDependency, "Task/Link", err.Error()).WithEntity(to, "predecessors")
	}
	target = target.AddPredecessor(from)
	if err := o.Repo.SaveTask(companyCode, target); err != nil {
		return err
	}
	return o.propagateSchedule(companyCode, projectCode, to)
}

// UnlinkTasks removes a predecessor edge.
func (o *Orchestrator) UnlinkTasks(companyCode, projectCode, from, to string) error {
	target, err := o.Repo.FindTaskByCode(companyCode, projectCode, to)
	if err != nil {
		return err
	}
	target = target.RemovePredecessor(from)
	if err := o.Repo.SaveTask(companyCode, target); err != nil {
		return err
	}
	return o.propagateSchedule(companyCode, projectCode, to)
}

// propagateSchedule recomputes the transitive successor closure of
// changedCode and rewrites every successor whose computed window moved, as
// one write-set (§4.G point 4: "on any mutation that changes a task's
// dates, predecessors, or assignments, recompute the transitive successor
// closure"). Called after any mutation that can shift a task's own
// schedule, since that shift is what propagates outward.
func (o *Orchestrator) propagateSchedule(companyCode, projectCode, changedCode string) error {
	tasks, err := o.Repo.FindAllTasks(companyCode, projectCode)
	if err != nil {
		return err
	}
	byCode := map[string]domain.Task{}
	for _, t := range tasks {
		byCode[t.Code] = t
	}
	if _, ok := byCode[changedCode]; !ok {
		return nil
	}
	o.eng.InvalidateSuccessors(byCode, changedCode)
	cfg, err := o.Repo.LoadConfig()
	if err != nil {
		return err
	}
	cal := engine.NewCalendar(cfg.WorkingDays, hoursPerDay(cfg.WorkingHours))
	windows, err := o.eng.ComputeSchedule(byCode, cal)
	if err != nil {
		return err
	}
	// changedCode itself is included: linking/unlinking a predecessor edits
	// its own Predecessors list without touching its declared dates, so its
	// computed window can move without a prior save picking that up.
	successors := engine.TransitiveSuccessors(byCode, changedCode)
	codes := make([]string, 0, len(successors)+1)
	codes = append(codes, changedCode)
	for c := range successors {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	for _, code := range codes {
		t := byCode[code]
		w, ok := windows[code]
		if !ok {
			continue
		}
		newStart := w.EarliestStart.Format("2006-01-02")
		newDue := w.EarliestFinish.Format("2006-01-02")
		if t.StartDate == newStart && t.DueDate == newDue {
			continue
		}
		updated, err := t.WithSchedule(newStart, newDue, t.EstimatedHours)
		if err != nil {
			return err
		}
		if err := o.Repo.SaveTask(companyCode, updated); err != nil {
			return err
		}
		logging.L().WithField("task", code).Info("schedule propagated from upstream change")
	}
	return nil
}

// hoursPerDay derives a calendar's daily working-hour span from Config's
// declared working window, defaulting to 8 when unset or non-positive.
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

// AssignResource adds a resource code to a task's assigned set and a
// matching ProjectAssignment on the resource; allocation is a percentage
// in (0, 100] and defaults to 100 when unset (§4.E "task assign-resource").
func (o *Orchestrator) AssignResource(companyCode, projectCode, taskCode, resourceCode string, allocation float64) error {
	if allocation <= 0 {
		allocation = 100
	}
	task, err := o.Repo.FindTaskByCode(companyCode, projectCode, taskCode)
	if err != nil {
		return err
	}
	res, err := o.Repo.FindResourceByCodeAnyScope(companyCode, projectCode, resourceCode)
	if err != nil {
		return ttrerr.New(ttrerr.KindUserInput, "Task/AssignResource", "unknown resource").WithEntity(resourceCode, "resourceCode")
	}
	task = task.AssignResource(resourceCode)
	res, err = res.AssignToProject(projectCode, task.StartDate, task.DueDate, allocation)
	if err != nil {
		return ttrerr.New(ttrerr.KindValidation, "Task/AssignResource", err.Error()).WithEntity(resourceCode, "allocation")
	}
	cfg, err := o.Repo.LoadConfig()
	if err != nil {
		return err
	}
	if wip := validate.WIPRule(res, cfg.MaxActiveTasks); !wip.OK() {
		if wip.HasErrors() {
			v := wip.Violations[0]
			return ttrerr.New(ttrerr.KindValidation, v.Category, v.Message).WithEntity(v.EntityCode, v.Field)
		}
		for _, v := range wip.Violations {
			logging.L().WithField("resource", res.Code).Warn(v.Message)
		}
	}
	if err := o.Repo.SaveTask(companyCode, task); err != nil {
		return err
	}
	if res.Scope == domain.ResourceScopeProject {
		if err := o.Repo.SaveProjectResource(companyCode, projectCode, res); err != nil {
			return err
		}
	} else {
		if err := o.Repo.SaveCompanyResource(companyCode, res); err != nil {
			return err
		}
	}
	return o.propagateSchedule(companyCode, projectCode, taskCode)
}

// TransitionTask moves a task's status, resolving the predecessor-done
// check against the repository before delegating to domain's local state
// graph (§4.B "Transition to Done requires all predecessors Done or
// Cancelled").
func (o *Orchestrator) TransitionTask(companyCode, projectCode, taskCode, next string) (domain.Task, error) {
	task, err := o.Repo.FindTaskByCode(companyCode, projectCode, taskCode)
	if err != nil {
		return domain.Task{}, err
	}
	satisfied := true
	if next == domain.TaskDone {
		tasks, err := o.Repo.FindAllTasks(companyCode, projectCode)
		if err != nil {
			return domain.Task{}, err
		}
		byCode := map[string]domain.Task{}
		for _, t := range tasks {
			byCode[t.Code] = t
		}
		for _, pred := range task.Predecessors {
			pt, ok := byCode[pred]
			if !ok || (pt.Status != domain.TaskDone && pt.Status != domain.TaskCancelled) {
				satisfied = false
				break
			}
		}
	}
	task, err = task.TransitionStatus(next, satisfied)
	if err != nil {
		return domain.Task{}, ttrerr.New(ttrerr.KindUserInput, "Task/Transition", err.Error()).WithEntity(taskCode, "status")
	}
	if err := o.Repo.SaveTask(companyCode, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTask applies a partial patch to a task's declared schedule and
// triggers dependency propagation, since a date change is exactly the
// mutation §4.G point 4 propagates (§4.E "update <kind>"). An empty start,
// due, or estimatedHours leaves that field unchanged.
func (o *Orchestrator) UpdateTask(companyCode, projectCode, taskCode, start, due string, estimatedHours float64) (domain.Task, error) {
	task, err := o.Repo.FindTaskByCode(companyCode, projectCode, taskCode)
	if err != nil {
		return domain.Task{}, err
	}
	if start == "" {
		start = task.StartDate
	}
	if due == "" {
		due = task.DueDate
	}
	if estimatedHours <= 0 {
		estimatedHours = task.EstimatedHours
	}
	task, err = task.WithSchedule(start, due, estimatedHours)
	if err != nil {
		return domain.Task{}, ttrerr.New(ttrerr.KindUserInput, "Task/Update", err.Error()).WithEntity(taskCode, "schedule")
	}
	if err := o.Repo.SaveTask(companyCode, task); err != nil {
		return domain.Task{}, err
	}
	if err := o.propagateSchedule(companyCode, projectCode, taskCode); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateCompany applies a partial patch to a company's descriptive profile
// (§4.E "update <kind>").
func (o *Orchestrator) UpdateCompany(code, name, description, contact, industry string) (domain.Company, error) {
	c, err := o.Repo.FindCompanyByCode(code)
	if err != nil {
		return domain.Company{}, err
	}
	if name == "" {
		name = c.Name
	}
	c, err = c.WithProfile(name, description, contact, industry)
	if err != nil {
		return domain.Company{}, ttrerr.New(ttrerr.KindUserInput, "Company/Update", err.Error()).WithEntity(code, "profile")
	}
	if err := o.Repo.SaveCompany(c); err != nil {
		return domain.Company{}, err
	}
	return c, nil
}

// UpdateProject applies a partial patch to a project's profile and declared
// dates (§4.E "update <kind>"). Disallowed in a terminal status, per
// Project.mutable.
func (o *Orchestrator) UpdateProject(companyCode, code, name, description, start, end string) (domain.Project, error) {
	p, err := o.Repo.FindProjectByCode(companyCode, code)
	if err != nil {
		return domain.Project{}, err
	}
	if name == "" {
		name = p.Name
	}
	if description == "" {
		description = p.Description
	}
	p, err = p.WithProfile(name, description)
	if err != nil {
		return domain.Project{}, ttrerr.New(ttrerr.KindUserInput, "Project/Update", err.Error()).WithEntity(code, "profile")
	}
	if start != "" || end != "" {
		newStart, newEnd := start, end
		if newStart == "" {
			newStart = p.StartDate
		}
		if newEnd == "" {
			newEnd = p.EndDate
		}
		p, err = p.WithDates(newStart, newEnd)
		if err != nil {
			return domain.Project{}, ttrerr.New(ttrerr.KindUserInput, "Project/Update", err.Error()).WithEntity(code, "dates")
		}
	}
	if err := o.Repo.SaveProject(p); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// UpdateResource applies a partial patch to a resource's name/resourceType,
// re-checking ResourceTypeRule on the post-state (§4.E "update <kind>").
func (o *Orchestrator) UpdateResource(companyCode, projectCode, code, name, resourceType string) (domain.Resource, error) {
	r, err := o.Repo.FindResourceByCodeAnyScope(companyCode, projectCode, code)
	if err != nil {
		return domain.Resource{}, err
	}
	if name == "" {
		name = r.Name
	}
	if resourceType == "" {
		resourceType = r.ResourceType
	}
	r, err = r.WithProfile(name, resourceType)
	if err != nil {
		return domain.Resource{}, ttrerr.New(ttrerr.KindUserInput, "Resource/Update", err.Error()).WithEntity(code, "profile")
	}
	cfg, err := o.Repo.LoadConfig()
	if err != nil {
		return domain.Resource{}, err
	}
	if res := validate.ResourceTypeRule(r, cfg); !res.OK() {
		v := res.Violations[0]
		return domain.Resource{}, ttrerr.New(ttrerr.KindValidation, v.Category, v.Message).WithEntity(v.EntityCode, v.Field)
	}
	if r.Scope == domain.ResourceScopeProject {
		if err := o.Repo.SaveProjectResource(companyCode, projectCode, r); err != nil {
			return domain.Resource{}, err
		}
	} else {
		if err := o.Repo.SaveCompanyResource(companyCode, r); err != nil {
			return domain.Resource{}, err
		}
	}
	return r, nil
}
