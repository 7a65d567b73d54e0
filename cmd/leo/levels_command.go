package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newLevelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the effective level names by severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			levels := cfg.Levels()
			names := levels.Names()
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{name, strconv.Itoa(levels[name])})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Level", "Severity"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}
