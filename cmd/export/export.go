// Package export writes the chart-of-accounts summary to a file
package export

import (
	"fmt"

	"fjacquet/dre-report/cmd/common"
	"fjacquet/dre-report/cmd/root"
	"fjacquet/dre-report/internal/export"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/validation"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the monthly summary as xlsx or csv",
	Long: `Export the chart-of-accounts x month summary, one row per category with
its total in the last column. The format follows the --output extension unless --format is set;
without --output the configured file name is used (Resumo_Plano_De_Contas.xlsx).

Example:
  dre-report export -i lancamentos.xlsx -o resumo.csv`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: xlsx or csv (default from the output extension)")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidExportFormat(format); err != nil {
		return err
	}
	c := root.GetContainer()
	ds, err := common.LoadDataset(cmd.Context(), c, root.SharedFlags.Input)
	if err != nil {
		return common.NoDataOrError(cmd.ErrOrStderr(), err)
	}

	path := root.SharedFlags.Output
	if path == "" {
		path = c.GetConfig().Export.FileName
	}

	d := common.BuildDashboard(c, ds, root.Filters())
	if err := export.ExportSummary(path, d.Summary, format, c.ExportOptions()); err != nil {
		return fmt.Errorf("failed to export summary: %w", err)
	}

	root.Log.Info("Summary exported",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(d.Summary.Rows)))
	fmt.Fprintf(cmd.OutOrStdout(), "Resumo exportado para %s\n", path)
	return nil
}
