package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tasktaskrevolution/internal/ctx"
	"tasktaskrevolution/internal/lock"
	"tasktaskrevolution/internal/usecase"
)

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"new"},
		Short:   "Create a company, project, task, or resource",
	}
	cmd.AddCommand(createCompanyCmd(), createProjectCmd(), createTaskCmd(), createResourceCmd())
	return cmd
}

func createCompanyCmd() *cobra.Command {
	var code, size string
	cmd := &cobra.Command{
		Use:   "company <name>",
		Short: "Create a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLock(workspaceRoot(), lock.Exclusive, func(o *usecase.Orchestrator) error {
				c, err := o.CreateCompany(args[0], code, size, "local-user")
				if err != nil {
					return err
				}
				fmt.Printf("created company %s (%s)\n", c.Code, c.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "explicit company code (default: generated from name)")
	cmd.Flags().StringVar(&size, "size", "", "company size (Small|Medium|Large)")
	return cmd
}

func createProjectCmd() *cobra.Command {
	var code, company string
	cmd := &cobra.Command{
		Use:   "project <name>",
		Short: "Create a project under a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, err := resolveCompany(root, company)
				if err != nil {
					return err
				}
				p, err := o.CreateProject(args[0], code, companyCode, "local-user")
				if err != nil {
					return err
				}
				fmt.Printf("created project %s (%s) under %s\n", p.Code, p.Name, companyCode)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "explicit project code")
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	return cmd
}

func createTaskCmd() *cobra.Command {
	var company, project, start, due string
	var hours float64
	cmd := &cobra.Command{
		Use:   "task <name>",
		Short: "Create a task under a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, projectCode, err := resolveProject(root, company, project)
				if err != nil {
					return err
				}
				t, err := o.CreateTask(companyCode, projectCode, args[0], start, due, hours, "local-user")
				if err != nil {
					return err
				}
				fmt.Printf("created task %s (%s)\n", t.Code, t.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&project, "project", "", "project code (default: resolved from cwd)")
	cmd.Flags().StringVar(&start, "start", "", "declared start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&due, "due", "", "declared due date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "estimated hours")
	return cmd
}

func createResourceCmd() *cobra.Command {
	var company, project, resourceType string
	cmd := &cobra.Command{
		Use:   "resource <name>",
		Short: "Create a resource, scoped to a company or a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, projectCode, err := resolveScope(root, company, project)
				if err != nil {
					return err
				}
				r, err := o.CreateResource(args[0], resourceType, companyCode, projectCode, "local-user")
				if err != nil {
					return err
				}
				fmt.Printf("created resource %s (%s)\n", r.Code, r.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&project, "project", "", "project code, to scope the resource to a single project")
	cmd.Flags().StringVar(&resourceType, "type", "", "resource type, must be declared in Config.ResourceTypes")
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List companies, projects, tasks, or resources",
	}
	cmd.AddCommand(listCompaniesCmd(), listProjectsCmd(), listTasksCmd())
	return cmd
}

func listCompaniesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "companies",
		Short: "List all companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Shared, func(o *usecase.Orchestrator) error {
				companies, err := o.Repo.FindAllCompanies()
				if err != nil {
					return err
				}
				t := table.NewWriter()
				t.AppendHeader(table.Row{"Code", "Name", "Status"})
				for _, c := range companies {
					t.AppendRow(table.Row{c.Code, c.Name, c.Status})
				}
				fmt.Println(t.Render())
				return nil
			})
		},
	}
}

func listProjectsCmd() *cobra.Command {
	var company string
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects, optionally scoped to a company",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Shared, func(o *usecase.Orchestrator) error {
				companyCode := company
				if companyCode == "" {
					c, err := ctx.Resolve(root)
					if err == nil {
						companyCode = c.CompanyCode
					}
				}
				projects, err := o.Repo.FindAllProjects(companyCode)
				if err != nil {
					return err
				}
				t := table.NewWriter()
				t.AppendHeader(table.Row{"Code", "Company", "Name", "Status"})
				for _, p := range projects {
					t.AppendRow(table.Row{p.Code, p.CompanyCode, p.Name, p.Status})
				}
				fmt.Println(t.Render())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code to scope the listing")
	return cmd
}

func listTasksCmd() *cobra.Command {
	var company, project string
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks under a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Shared, func(o *usecase.Orchestrator) error {
				companyCode, projectCode, err := resolveProject(root, company, project)
				if err != nil {
					return err
				}
				tasks, err := o.Repo.FindAllTasks(companyCode, projectCode)
				if err != nil {
					return err
				}
				t := table.NewWriter()
				t.AppendHeader(table.Row{"Code", "Name", "Status", "Start", "Due"})
				for _, task := range tasks {
					t.AppendRow(table.Row{task.Code, task.Name, task.Status, task.StartDate, task.DueDate})
				}
				fmt.Println(t.Render())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&project, "project", "", "project code (default: resolved from cwd)")
	return cmd
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update",
		Aliases: []string{"edit"},
		Short:   "Apply a partial patch to a company, project, task, or resource",
	}
	cmd.AddCommand(updateCompanyCmd(), updateProjectCmd(), updateTaskCmd(), updateResourceCmd())
	return cmd
}

func updateCompanyCmd() *cobra.Command {
	var name, description, contact, industry string
	cmd := &cobra.Command{
		Use:   "company <code>",
		Args:  cobra.ExactArgs(1),
		Short: "Patch a company's descriptive profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLock(workspaceRoot(), lock.Exclusive, func(o *usecase.Orchestrator) error {
				c, err := o.UpdateCompany(args[0], name, description, contact, industry)
				if err != nil {
					return err
				}
				fmt.Printf("updated company %s\n", c.Code)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name (default: unchanged)")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&contact, "contact", "", "new contact")
	cmd.Flags().StringVar(&industry, "industry", "", "new industry")
	return cmd
}

func updateProjectCmd() *cobra.Command {
	var company, name, description, start, end string
	cmd := &cobra.Command{
		Use:   "project <code>",
		Args:  cobra.ExactArgs(1),
		Short: "Patch a project's profile and declared dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, err := resolveCompany(root, company)
				if err != nil {
					return err
				}
				p, err := o.UpdateProject(companyCode, args[0], name, description, start, end)
				if err != nil {
					return err
				}
				fmt.Printf("updated project %s\n", p.Code)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&name, "name", "", "new name (default: unchanged)")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&start, "start", "", "new declared start date")
	cmd.Flags().StringVar(&end, "end", "", "new declared end date")
	return cmd
}

func updateTaskCmd() *cobra.Command {
	var company, project, status, start, due string
	var hours float64
	cmd := &cobra.Command{
		Use:   "task <code>",
		Args:  cobra.ExactArgs(1),
		Short: "Transition a task's status and/or patch its declared schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, projectCode, err := resolveProject(root, company, project)
				if err != nil {
					return err
				}
				if start != "" || due != "" || hours > 0 {
					t, err := o.UpdateTask(companyCode, projectCode, args[0], start, due, hours)
					if err != nil {
						return err
					}
					fmt.Printf("%s schedule is now %s..%s\n", t.Code, t.StartDate, t.DueDate)
				}
				if status != "" {
					t, err := o.TransitionTask(companyCode, projectCode, args[0], status)
					if err != nil {
						return err
					}
					fmt.Printf("%s is now %s\n", t.Code, t.Status)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&project, "project", "", "project code (default: resolved from cwd)")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&start, "start", "", "new declared start date, triggers dependency propagation")
	cmd.Flags().StringVar(&due, "due", "", "new declared due date, triggers dependency propagation")
	cmd.Flags().Float64Var(&hours, "hours", 0, "new estimated hours")
	return cmd
}

func updateResourceCmd() *cobra.Command {
	var company, project, name, resourceType string
	cmd := &cobra.Command{
		Use:   "resource <code>",
		Args:  cobra.ExactArgs(1),
		Short: "Patch a resource's name and/or resourceType",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, err := resolveCompany(root, company)
				if err != nil {
					return err
				}
				r, err := o.UpdateResource(companyCode, project, args[0], name, resourceType)
				if err != nil {
					return err
				}
				fmt.Printf("updated resource %s\n", r.Code)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&project, "project", "", "project code, when the resource is project-scoped")
	cmd.Flags().StringVar(&name, "name", "", "new name (default: unchanged)")
	cmd.Flags().StringVar(&resourceType, "type", "", "new resourceType, must be declared in Config.ResourceTypes")
	return cmd
}

func deleteCmd() *cobra.Command {
	var company, project string
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm"},
		Short:   "Soft-delete a company or task",
	}
	companySub := &cobra.Command{
		Use:   "company <code>",
		Args:  cobra.ExactArgs(1),
		Short: "Soft-delete a company",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLock(workspaceRoot(), lock.Exclusive, func(o *usecase.Orchestrator) error {
				_, already, err := o.DeleteCompany(args[0])
				if err != nil {
					return err
				}
				if already {
					fmt.Printf("%s was already inactive\n", args[0])
					return nil
				}
				fmt.Printf("deleted company %s\n", args[0])
				return nil
			})
		},
	}
	taskSub := &cobra.Command{
		Use:   "task <code>",
		Args:  cobra.ExactArgs(1),
		Short: "Soft-delete a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, projectCode, err := resolveProject(root, company, project)
				if err != nil {
					return err
				}
				_, already, err := o.DeleteTask(companyCode, projectCode, args[0])
				if err != nil {
					return err
				}
				if already {
					fmt.Printf("%s was already cancelled\n", args[0])
					return nil
				}
				fmt.Printf("deleted task %s\n", args[0])
				return nil
			})
		},
	}
	taskSub.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	taskSub.Flags().StringVar(&project, "project", "", "project code (default: resolved from cwd)")
	cmd.AddCommand(companySub, taskSub)
	return cmd
}

// resolveCompany falls back to context resolution when no explicit
// --company flag was passed, per §4.D.
func resolveCompany(root, explicitCompany string) (string, error) {
	if explicitCompany != "" {
		return explicitCompany, nil
	}
	c, err := ctx.Resolve(root)
	if err != nil {
		return "", err
	}
	if c.CompanyCode == "" {
		return "", fmt.Errorf("no company in scope; pass --company or run from inside a company directory")
	}
	return c.CompanyCode, nil
}

func resolveProject(root, explicitCompany, explicitProject string) (companyCode, projectCode string, err error) {
	c, rerr := ctx.Resolve(root)
	if explicitCompany != "" || explicitProject != "" {
		oc, oerr := c.Override(explicitCompany, explicitProject)
		if oerr != nil {
			return "", "", oerr
		}
		c = oc
	} else if rerr != nil {
		return "", "", rerr
	}
	if c.CompanyCode == "" || c.ProjectCode == "" {
		return "", "", fmt.Errorf("no project in scope; pass --company/--project or run from inside a project directory")
	}
	return c.CompanyCode, c.ProjectCode, nil
}

func resolveScope(root, explicitCompany, explicitProject string) (companyCode, projectCode string, err error) {
	companyCode, err = resolveCompany(root, explicitCompany)
	if err != nil {
		return "", "", err
	}
	return companyCode, explicitProject, nil
}
