package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasktaskrevolution/internal/lock"
	"tasktaskrevolution/internal/usecase"
)

// taskCmd groups task-scoped subcommands that don't fit create/list/update/
// delete's generic shape, per §4.I's "task assign-resource" verb.
func taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Task-specific operations",
	}
	cmd.AddCommand(taskAssignResourceCmd())
	return cmd
}

func taskAssignResourceCmd() *cobra.Command {
	var company, project string
	var allocation float64
	cmd := &cobra.Command{
		Use:   "assign-resource <task-code> <resource-code>",
		Short: "Assign a resource to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, projectCode, err := resolveProject(root, company, project)
				if err != nil {
					return err
				}
				if err := o.AssignResource(companyCode, projectCode, args[0], args[1], allocation); err != nil {
					return err
				}
				fmt.Printf("assigned %s to %s\n", args[1], args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&project, "project", "", "project code (default: resolved from cwd)")
	cmd.Flags().Float64Var(&allocation, "allocation", 0, "percentage allocation, 0 < x <= 100 (default 100)")
	return cmd
}
