package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasktaskrevolution/internal/lock"
	"tasktaskrevolution/internal/usecase"
)

func initCmd() *cobra.Command {
	var managerName, managerEmail string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new TTR workspace in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				if err := o.Init(managerName, managerEmail, force); err != nil {
					return err
				}
				fmt.Printf("initialized workspace at %s\n", root)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&managerName, "manager-name", "", "workspace manager's name")
	cmd.Flags().StringVar(&managerEmail, "manager-email", "", "workspace manager's email")
	cmd.Flags().BoolVar(&force, "force", false, "reinitialize an existing workspace")
	return cmd
}
