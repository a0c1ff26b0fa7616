package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tasktaskrevolution/internal/config"
	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/lock"
	"tasktaskrevolution/internal/usecase"
	"tasktaskrevolution/internal/validate"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate [company-code]",
		Aliases: []string{"check"},
		Short:   "Run the validation rule suite over the workspace, or one company",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			var companyCode string
			if len(args) == 1 {
				companyCode = args[0]
			}
			return withLock(root, lock.Shared, func(o *usecase.Orchestrator) error {
				violations, err := runValidation(o, root, companyCode)
				if err != nil {
					return err
				}
				if len(violations) == 0 {
					fmt.Println("no violations found")
					return nil
				}
				t := table.NewWriter()
				t.AppendHeader(table.Row{"Severity", "Category", "Entity", "Message"})
				hasError := false
				for _, v := range violations {
					t.AppendRow(table.Row{v.Severity, v.Category, v.EntityCode, v.Message})
					if v.Severity == validate.SeverityError {
						hasError = true
					}
				}
				fmt.Println(t.Render())
				if hasError {
					os.Exit(1)
				}
				return nil
			})
		},
	}
	return cmd
}

// runValidation loads the full snapshot (or one company's slice of it) and
// runs every applicable rule, per §4.F.
func runValidation(o *usecase.Orchestrator, root, companyCode string) ([]validate.Violation, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	companies, err := o.Repo.FindAllCompanies()
	if err != nil {
		return nil, err
	}
	byCode := map[string]domain.Company{}
	for _, c := range companies {
		byCode[c.Code] = c
	}

	var violations []validate.Violation
	for _, c := range companies {
		if companyCode != "" && c.Code != companyCode {
			continue
		}
		resources, err := o.Repo.FindAllCompanyResources(c.Code)
		if err != nil {
			return nil, err
		}
		for _, r := range resources {
			violations = append(violations, validate.ResourceTypeRule(r, cfg).Violations...)
			violations = append(violations, validate.VacationOverlap(r, cfg).Violations...)
		}
		violations = append(violations, validate.ConcurrentVacationLimit(resources, cfg.VacationRules.MaxConcurrentVacations).Violations...)

		projects, err := o.Repo.FindAllProjects(c.Code)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			violations = append(violations, validate.ReferentialProject(p, byCode).Violations...)
			tasks, err := o.Repo.FindAllTasks(c.Code, p.Code)
			if err != nil {
				return nil, err
			}
			taskByCode := map[string]domain.Task{}
			for _, t := range tasks {
				taskByCode[t.Code] = t
			}
			resourceCodes := map[string]bool{}
			for _, r := range resources {
				resourceCodes[r.Code] = true
			}
			projectResources, err := o.Repo.FindAllProjectResources(c.Code, p.Code)
			if err != nil {
				return nil, err
			}
			for _, r := range projectResources {
				resourceCodes[r.Code] = true
				violations = append(violations, validate.ResourceTypeRule(r, cfg).Violations...)
			}
			for _, t := range tasks {
				violations = append(violations, validate.ReferentialTask(t, taskByCode, resourceCodes).Violations...)
				violations = append(violations, validate.TemporalTaskWithinProject(t, p).Violations...)
			}
		}
	}
	return violations, nil
}
