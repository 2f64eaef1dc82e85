package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.trai.ch/tabby/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <profile>",
		Short: "Collect a profile, then recollect whenever its sources change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			strategy, _ := cmd.Flags().GetString("strategy")
			noAggregate, _ := cmd.Flags().GetBool("no-aggregate")

			err := c.app.Watch(cmd.Context(), configPath, args[0], app.Overrides{
				Strategy:    strategy,
				NoAggregate: noAggregate,
			})
			if errors.Is(err, context.Canceled) {
				// Interrupting the watch is the normal way to stop it.
				return nil
			}
			return err
		},
	}
	cmd.Flags().Bool("no-aggregate", false, "Warm per-file caches without writing the aggregate entry")
	return cmd
}
