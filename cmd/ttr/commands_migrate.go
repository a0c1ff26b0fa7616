package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tasktaskrevolution/internal/lock"
	"tasktaskrevolution/internal/usecase"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite every manifest in the workspace to the current apiVersion",
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Exclusive, func(o *usecase.Orchestrator) error {
				results, err := o.Migrate(root)
				if err != nil {
					return err
				}
				migrated := 0
				t := table.NewWriter()
				t.AppendHeader(table.Row{"Path", "From", "Migrated"})
				for _, r := range results {
					if r.Migrated {
						migrated++
					}
					t.AppendRow(table.Row{r.Path, r.FromVersion, r.Migrated})
				}
				fmt.Println(t.Render())
				fmt.Printf("%d of %d manifests migrated\n", migrated, len(results))
				return nil
			})
		},
	}
	return cmd
}
