package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tasktaskrevolution/internal/config"
	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/engine"
	"tasktaskrevolution/internal/lock"
	"tasktaskrevolution/internal/report"
	"tasktaskrevolution/internal/usecase"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <kind>",
		Short: "Emit a CSV report: vacation, task, wip, or layoff-overlap",
	}
	cmd.AddCommand(
		reportKindCmd("vacation", "Vacation periods across every resource"),
		reportKindCmd("task", "Declared vs computed task schedules"),
		reportKindCmd("wip", "Per-resource active task counts"),
		reportKindCmd("layoff-overlap", "Overlapping layoff periods across resources"),
	)
	return cmd
}

func reportKindCmd(kind, short string) *cobra.Command {
	var company, project string
	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Shared, func(o *usecase.Orchestrator) error {
				companyCode := company
				if companyCode == "" {
					resolved, err := resolveCompany(root, "")
					if err != nil {
						return err
					}
					companyCode = resolved
				}
				return runReport(o, root, kind, companyCode, project)
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code to scope the report")
	cmd.Flags().StringVar(&project, "project", "", "project code to scope the task/wip report")
	return cmd
}

func runReport(o *usecase.Orchestrator, root, kind, companyCode, projectCode string) error {
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	resources, err := o.Repo.FindAllCompanyResources(companyCode)
	if err != nil {
		return err
	}
	if projectCode != "" {
		projectResources, err := o.Repo.FindAllProjectResources(companyCode, projectCode)
		if err != nil {
			return err
		}
		resources = append(resources, projectResources...)
	}

	switch kind {
	case "vacation":
		return report.Vacation(os.Stdout, resources)
	case "layoff-overlap":
		return report.LayoffOverlap(os.Stdout, resources)
	case "task", "wip":
		tasks, err := collectTasks(o, companyCode, projectCode)
		if err != nil {
			return err
		}
		if kind == "wip" {
			return report.WIP(os.Stdout, resources, tasks)
		}
		cal := engine.NewCalendar(cfg.WorkingDays, hoursPerDay(cfg.WorkingHours))
		return report.Task(os.Stdout, tasks, cal)
	default:
		return fmt.Errorf("unknown report kind %q", kind)
	}
}

func collectTasks(o *usecase.Orchestrator, companyCode, projectCode string) ([]domain.Task, error) {
	if projectCode != "" {
		return o.Repo.FindAllTasks(companyCode, projectCode)
	}
	projects, err := o.Repo.FindAllProjects(companyCode)
	if err != nil {
		return nil, err
	}
	var all []domain.Task
	for _, p := range projects {
		tasks, err := o.Repo.FindAllTasks(companyCode, p.Code)
		if err != nil {
			return nil, err
		}
		all = append(all, tasks...)
	}
	return all, nil
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
