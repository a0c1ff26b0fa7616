// Package report renders the CSV/tabular views named in §4.H: vacation,
// task, and WIP reports. Column order and header names are stable, per
// the same "deterministic output" contract the static site builder
// honors, mirroring the teacher's printJSONOrTable helper's approach of
// keeping a single row-building pass ahead of the actual formatting.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/engine"
)

var vacationHeader = []string{"resource", "start", "end", "type", "approved", "layoff"}

// Vacation writes one CSV row per vacation period across resources, sorted
// by resource code then start date for determinism.
func Vacation(w io.Writer, resources []domain.Resource) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(vacationHeader); err != nil {
		return err
	}
	type row struct {
		resourceCode string
		v            domain.VacationPeriod
	}
	var rows []row
	for _, r := range resources {
		for _, v := range r.VacationPeriods {
			rows = append(rows, row{resourceCode: r.Code, v: v})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].resourceCode != rows[j].resourceCode {
			return rows[i].resourceCode < rows[j].resourceCode
		}
		return rows[i].v.StartDate < rows[j].v.StartDate
	})
	for _, r := range rows {
		if err := cw.Write([]string{
			r.resourceCode,
			r.v.StartDate,
			r.v.EndDate,
			r.v.Type,
			strconv.FormatBool(r.v.Approved),
			strconv.FormatBool(r.v.IsLayoff),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var taskHeader = []string{"code", "project", "status", "declaredStart", "declaredDue", "computedStart", "computedFinish", "assignees"}

// Task writes one CSV row per task: declared dates alongside the
// dependency engine's computed window, per §4.H.
func Task(w io.Writer, tasks []domain.Task, cal engine.Calendar) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(taskHeader); err != nil {
		return err
	}
	byCode := map[string]domain.Task{}
	for _, t := range tasks {
		byCode[t.Code] = t
	}
	windows, err := engine.New().ComputeSchedule(byCode, cal)
	if err != nil {
		return fmt.Errorf("compute schedule: %w", err)
	}
	codes := make([]string, 0, len(tasks))
	for _, t := range tasks {
		codes = append(codes, t.Code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		t := byCode[code]
		w2 := windows[code]
		computedStart, computedFinish := "", ""
		if !w2.EarliestStart.IsZero() {
			computedStart = w2.EarliestStart.Format("2006-01-02")
		}
		if !w2.EarliestFinish.IsZero() {
			computedFinish = w2.EarliestFinish.Format("2006-01-02")
		}
		if err := cw.Write([]string{
			t.Code,
			t.ProjectCode,
			t.Status,
			t.StartDate,
			t.DueDate,
			computedStart,
			computedFinish,
			joinComma(t.AssignedResources),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var wipHeader = []string{"resource", "activeTaskCount"}

// WIP writes per-resource concurrent-assignment counts: how many
// non-terminal tasks currently name each resource as an assignee.
func WIP(w io.Writer, resources []domain.Resource, tasks []domain.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(wipHeader); err != nil {
		return err
	}
	counts := map[string]int{}
	for _, r := range resources {
		counts[r.Code] = 0
	}
	for _, t := range tasks {
		if t.Status == domain.TaskDone || t.Status == domain.TaskCancelled {
			continue
		}
		for _, rc := range t.AssignedResources {
			counts[rc]++
		}
	}
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if err := cw.Write([]string{code, strconv.Itoa(counts[code])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var layoffOverlapHeader = []string{"resourceA", "resourceB", "start", "end"}

// LayoffOverlap emits pairs of resources whose layoff-flagged vacation
// windows overlap, a supplemental report described in SPEC_FULL.md §3
// beyond the base vacation/task/WIP set.
func LayoffOverlap(w io.Writer, resources []domain.Resource) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(layoffOverlapHeader); err != nil {
		return err
	}
	type layoff struct {
		code       string
		start, end string
	}
	var layoffs []layoff
	for _, r := range resources {
		for _, v := range r.VacationPeriods {
			if v.IsLayoff {
				layoffs = append(layoffs, layoff{code: r.Code, start: v.StartDate, end: v.EndDate})
			}
		}
	}
	sort.Slice(layoffs, func(i, j int) bool { return layoffs[i].code < layoffs[j].code })
	for i := 0; i < len(layoffs); i++ {
		for j := i + 1; j < len(layoffs); j++ {
			a, b := layoffs[i], layoffs[j]
			if a.code == b.code {
				continue
			}
			if a.start <= b.end && b.start <= a.end {
				if err := cw.Write([]string{a.code, b.code, maxStr(a.start, b.start), minStr(a.end, b.end)}); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

func maxStr(a, b string) string {
	if a > b {
		return a
	}
	return b
}

func minStr(a, b string) string {
	if a < b {
		return a
	}
	return b
}
