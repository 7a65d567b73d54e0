package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"leo/internal/hierarchy"
)

type chainRow struct {
	Logger    string   `json:"logger"`
	Propagate bool     `json:"propagate"`
	Sinks     []string `json:"sinks"`
	Chain     []string `json:"chain"`
}

func newChainsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "chains",
		Short: "Show the propagation chain of every configured logger",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _, err := ctx.buildRegistry(cmd, nil, nil)
			if err != nil {
				return err
			}
			defer reg.Close()

			rows, err := collectChains(reg)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, rows)
			}

			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				chain := "-"
				if row.Logger != hierarchy.RootName {
					chain = strings.Join(row.Chain, " → ")
					if chain == "" {
						chain = "(none)"
					}
				}
				table = append(table, []string{row.Logger, yesNo(row.Propagate), strings.Join(row.Sinks, ", "), chain})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Logger", "Propagate", "Sinks", "Chain"},
				table,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			if !reg.Propagates() {
				fmt.Fprintln(cmd.OutOrStdout(), "Propagation is disabled registry-wide; chains are not followed.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func collectChains(reg *hierarchy.Registry) ([]chainRow, error) {
	chains := reg.Chains()
	names := reg.Names()
	rows := make([]chainRow, 0, len(names))
	for _, name := range names {
		l, err := reg.Get(name)
		if err != nil {
			return nil, err
		}
		chain := chains[name]
		if chain == nil {
			chain = []string{}
		}
		rows = append(rows, chainRow{
			Logger:    name,
			Propagate: l.Propagates(),
			Sinks:     l.Sinks(),
			Chain:     chain,
		})
	}
	return rows, nil
}
