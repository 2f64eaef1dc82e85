package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/tabby/internal/app"
)

func (c *CLI) newCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect <profile>",
		Short: "Collect a profile's workbooks into one cached dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			strategy, _ := cmd.Flags().GetString("strategy")
			noAggregate, _ := cmd.Flags().GetBool("no-aggregate")

			ds, err := c.app.Collect(cmd.Context(), configPath, args[0], app.Overrides{
				Strategy:    strategy,
				NoAggregate: noAggregate,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "collected %d row(s), %d column(s)\n", ds.NumRows(), ds.NumColumns())
			return nil
		},
	}
	cmd.Flags().Bool("no-aggregate", false, "Warm per-file caches without writing the aggregate entry")
	return cmd
}
