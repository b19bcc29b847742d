// Package report writes a dashboard snapshot as JSON or YAML
package report

import (
	"fmt"

	"fjacquet/dre-report/cmd/common"
	"fjacquet/dre-report/cmd/root"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/report"
	"fjacquet/dre-report/internal/validation"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Write the full dashboard as JSON or YAML",
	Long: `Write every dashboard section (cards, top expenses, DRE, summary,
chart series and the filtered table) as a JSON or YAML document.

Example:
  dre-report report --format yaml -o dashboard.yaml`,
	RunE: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatJSON, "Report format: json or yaml")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidReportFormat(format); err != nil {
		return err
	}
	c := root.GetContainer()
	ds, err := common.LoadDataset(cmd.Context(), c, root.SharedFlags.Input)
	if err != nil {
		return common.NoDataOrError(cmd.ErrOrStderr(), err)
	}

	d := common.BuildDashboard(c, ds, root.Filters())
	data, err := c.GetReportGenerator().GenerateReport(d, string(ds.Source), format)
	if err != nil {
		return err
	}

	w, closeOutput, err := common.OpenOutput(root.SharedFlags.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = closeOutput()
		return fmt.Errorf("failed to write report: %w", err)
	}
	root.Log.Debug("Report written",
		logging.F(logging.FieldFormat, format),
		logging.F(logging.FieldOutputFile, root.SharedFlags.Output))
	return closeOutput()
}
