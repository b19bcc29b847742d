// Package summary prints the dashboard to the terminal
package summary

import (
	"fjacquet/dre-report/cmd/common"
	"fjacquet/dre-report/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the cards, top expenses, DRE and the monthly summary",
	Long: `Print the dashboard for the selected spreadsheet (or the stored dataset):
sales cards, the five largest expense categories, the monthly DRE and the
chart-of-accounts summary. Negative amounts are highlighted.

Example:
  dre-report summary -i lancamentos.xlsx --store "Loja Centro"`,
	RunE: summaryFunc,
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	ds, err := common.LoadDataset(cmd.Context(), c, root.SharedFlags.Input)
	if err != nil {
		return common.NoDataOrError(cmd.ErrOrStderr(), err)
	}

	w, closeOutput, err := common.OpenOutput(root.SharedFlags.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil {
			root.Log.WithError(cerr).Warn("Failed to close output")
		}
	}()

	if ds.StoreErr != nil {
		common.Warning(cmd.ErrOrStderr(), "Não foi possível salvar os dados: "+ds.StoreErr.Error())
	}

	d := common.BuildDashboard(c, ds, root.Filters())
	if d.FilteredCount == 0 {
		common.Warning(cmd.ErrOrStderr(), "Nenhum lançamento corresponde aos filtros.")
	}
	common.PrintDashboard(w, d)
	return nil
}
