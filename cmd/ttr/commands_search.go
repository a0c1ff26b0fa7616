package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tasktaskrevolution/internal/lock"
	"tasktaskrevolution/internal/usecase"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search <query>",
		Aliases: []string{"query", "q"},
		Short:   `Search the workspace with a predicate query, e.g. "kind=task status=InProgress"`,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := workspaceRoot()
			return withLock(root, lock.Shared, func(o *usecase.Orchestrator) error {
				hits, err := o.Search(strings.Join(args, " "))
				if err != nil {
					return err
				}
				if len(hits) == 0 {
					fmt.Println("no matches")
					return nil
				}
				t := table.NewWriter()
				t.AppendHeader(table.Row{"Kind", "Company", "Project", "Code", "Name", "Status"})
				sort.Slice(hits, func(i, j int) bool {
					if hits[i].Kind != hits[j].Kind {
						return hits[i].Kind < hits[j].Kind
					}
					return hits[i].Fields["code"] < hits[j].Fields["code"]
				})
				for _, h := range hits {
					t.AppendRow(table.Row{h.Kind, h.CompanyCode, h.ProjectCode, h.Fields["code"], h.Fields["name"], h.Fields["status"]})
				}
				fmt.Println(t.Render())
				return nil
			})
		},
	}
	return cmd
}
