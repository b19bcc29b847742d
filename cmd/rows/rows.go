// Package rows writes the filtered transaction table as CSV
package rows

import (
	"fmt"

	"fjacquet/dre-report/cmd/common"
	"fjacquet/dre-report/cmd/root"
	"fjacquet/dre-report/internal/export"
	"fjacquet/dre-report/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the rows command
var Cmd = &cobra.Command{
	Use:   "rows",
	Short: "Write the filtered transactions as CSV",
	Long: `Write the transactions that pass --store and --account as CSV, with
the original column names, normalized dates (dd/mm/yyyy) and amounts.`,
	RunE: rowsFunc,
}

func rowsFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	ds, err := common.LoadDataset(cmd.Context(), c, root.SharedFlags.Input)
	if err != nil {
		return common.NoDataOrError(cmd.ErrOrStderr(), err)
	}

	d := common.BuildDashboard(c, ds, root.Filters())
	if out := root.SharedFlags.Output; out != "" {
		if err := export.ExportRows(out, d.Table, c.ExportOptions()); err != nil {
			return fmt.Errorf("failed to export rows: %w", err)
		}
		root.Log.Info("Rows exported",
			logging.F(logging.FieldOutputFile, out),
			logging.F(logging.FieldCount, len(d.Table)))
		return nil
	}
	return export.WriteRowsCSV(cmd.OutOrStdout(), d.Table, c.ExportOptions().Delimiter)
}
