package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasktaskrevolution/internal/config"
	"tasktaskrevolution/internal/domain"
	"tasktaskrevolution/internal/lock"
	"tasktaskrevolution/internal/ttrerr"
	"tasktaskrevolution/internal/usecase"
	"tasktaskrevolution/internal/validate"
)

func resourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Resource-specific operations",
	}
	cmd.AddCommand(resourceTimeOffCmd(), resourceDeactivateCmd())
	return cmd
}

func resourceTimeOffCmd() *cobra.Command {
	var company, project, start, end, vacationType string
	var hours float64
	var isLayoff, approved bool
	cmd := &cobra.Command{
		Use:   "time-off <resource-code>",
		Short: "Record a vacation period or apply time-off hours for a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, err := resolveCompany(root, company)
				if err != nil {
					return err
				}
				res, err := o.Repo.FindResourceByCodeAnyScope(companyCode, project, args[0])
				if err != nil {
					return err
				}
				if start != "" {
					res = res.AddVacation(domain.VacationPeriod{
						StartDate: start,
						EndDate:   end,
						Approved:  approved,
						Type:      vacationType,
						IsLayoff:  isLayoff,
					})
				}
				if hours > 0 {
					res, err = res.ApplyTimeOff(hours)
					if err != nil {
						return err
					}
				}
				cfg, err := config.Load(root)
				if err != nil {
					return err
				}
				if v := validate.VacationOverlap(res, cfg); !v.OK() {
					if v.HasErrors() {
						first := v.Violations[0]
						return ttrerr.New(ttrerr.KindValidation, first.Category, first.Message).WithEntity(first.EntityCode, first.Field)
					}
					for _, viol := range v.Violations {
						fmt.Printf("warning: %s\n", viol.String())
					}
				}
				var scoped []domain.Resource
				if res.Scope == domain.ResourceScopeProject {
					scoped, err = o.Repo.FindAllProjectResources(companyCode, project)
				} else {
					scoped, err = o.Repo.FindAllCompanyResources(companyCode)
				}
				if err != nil {
					return err
				}
				for i, r := range scoped {
					if r.Code == res.Code {
						scoped[i] = res
					}
				}
				if v := validate.ConcurrentVacationLimit(scoped, cfg.VacationRules.MaxConcurrentVacations); !v.OK() {
					if v.HasErrors() {
						first := v.Violations[0]
						return ttrerr.New(ttrerr.KindValidation, first.Category, first.Message).WithEntity(first.EntityCode, first.Field)
					}
					for _, viol := range v.Violations {
						fmt.Printf("warning: %s\n", viol.String())
					}
				}
				if res.Scope == domain.ResourceScopeProject {
					err = o.Repo.SaveProjectResource(companyCode, project, res)
				} else {
					err = o.Repo.SaveCompanyResource(companyCode, res)
				}
				if err != nil {
					return err
				}
				fmt.Printf("recorded time off for %s\n", res.Code)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&project, "project", "", "project code, when the resource is project-scoped")
	cmd.Flags().StringVar(&start, "start", "", "vacation start date")
	cmd.Flags().StringVar(&end, "end", "", "vacation end date")
	cmd.Flags().StringVar(&vacationType, "type", "Personal", "vacation type")
	cmd.Flags().Float64Var(&hours, "hours", 0, "apply this many hours as time off instead of a vacation period")
	cmd.Flags().BoolVar(&isLayoff, "layoff", false, "flag this vacation as a layoff period")
	cmd.Flags().BoolVar(&approved, "approved", false, "mark the vacation as already approved")
	return cmd
}

func resourceDeactivateCmd() *cobra.Command {
	var company, project string
	cmd := &cobra.Command{
		Use:   "deactivate <resource-code>",
		Short: "Deactivate a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, err := resolveCompany(root, company)
				if err != nil {
					return err
				}
				res, err := o.Repo.FindResourceByCodeAnyScope(companyCode, project, args[0])
				if err != nil {
					return err
				}
				res = res.Deactivate()
				if res.Scope == domain.ResourceScopeProject {
					err = o.Repo.SaveProjectResource(companyCode, project, res)
				} else {
					err = o.Repo.SaveCompanyResource(companyCode, res)
				}
				if err != nil {
					return err
				}
				fmt.Printf("deactivated %s\n", res.Code)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&project, "project", "", "project code, when the resource is project-scoped")
	return cmd
}
