package commands

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tabby/internal/app"
	"go.trai.ch/tabby/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <profile> <workbook>",
		Short: "Read a workbook through the profile's cache and print it as CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			strategy, _ := cmd.Flags().GetString("strategy")
			sheet, _ := cmd.Flags().GetString("sheet")

			sheets, err := c.app.Read(cmd.Context(), configPath, args[0], args[1], app.Overrides{
				Strategy: strategy,
				Sheet:    sheet,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, sh := range sheets {
				if len(sheets) > 1 {
					if i > 0 {
						_, _ = fmt.Fprintln(out)
					}
					_, _ = fmt.Fprintf(out, "# %s\n", sh.Name)
				}
				if err := writeCSV(out, sh.Data); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().String("sheet", "", "Sheet to read: a name, a zero-based index, or 'all'")
	return cmd
}

// writeCSV prints a dataset as CSV with a header row.
func writeCSV(w io.Writer, ds domain.Dataset) error {
	cw := csv.NewWriter(w)

	header := make([]string, ds.NumColumns())
	for i, col := range ds.Columns {
		header[i] = col.Name
	}
	if err := cw.Write(header); err != nil {
		return zerr.Wrap(err, "failed to write csv header")
	}

	record := make([]string, ds.NumColumns())
	for row := 0; row < ds.NumRows(); row++ {
		for i, col := range ds.Columns {
			record[i] = col.Values[row].Render()
		}
		if err := cw.Write(record); err != nil {
			return zerr.Wrap(err, "failed to write csv record")
		}
	}
	cw.Flush()
	return cw.Error()
}
