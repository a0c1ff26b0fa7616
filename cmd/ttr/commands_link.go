package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasktaskrevolution/internal/lock"
	"tasktaskrevolution/internal/usecase"
)

func linkCmd() *cobra.Command {
	var company, project string
	cmd := &cobra.Command{
		Use:   "link <predecessor> <successor>",
		Short: "Add a Finish-to-Start dependency: <successor> waits on <predecessor>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, projectCode, err := resolveProject(root, company, project)
				if err != nil {
					return err
				}
				if err := o.LinkTasks(companyCode, projectCode, args[0], args[1]); err != nil {
					return err
				}
				fmt.Printf("%s now depends on %s\n", args[1], args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&project, "project", "", "project code (default: resolved from cwd)")
	return cmd
}

func unlinkCmd() *cobra.Command {
	var company, project string
	cmd := &cobra.Command{
		Use:   "unlink <predecessor> <successor>",
		Short: "Remove a Finish-to-Start dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				companyCode, projectCode, err := resolveProject(root, company, project)
				if err != nil {
					return err
				}
				if err := o.UnlinkTasks(companyCode, projectCode, args[0], args[1]); err != nil {
					return err
				}
				fmt.Printf("%s no longer depends on %s\n", args[1], args[0])
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company code (default: resolved from cwd)")
	cmd.Flags().StringVar(&project, "project", "", "project code (default: resolved from cwd)")
	return cmd
}
