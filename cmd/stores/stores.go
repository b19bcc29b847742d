// Package stores lists the stores of the dataset
package stores

import (
	"fmt"

	"fjacquet/dre-report/cmd/common"
	"fjacquet/dre-report/cmd/root"
	"fjacquet/dre-report/internal/viewstate"

	"github.com/spf13/cobra"
)

// Cmd represents the stores command
var Cmd = &cobra.Command{
	Use:   "stores",
	Short: "List the stores (Loja) found in the dataset",
	RunE:  storesFunc,
}

func storesFunc(cmd *cobra.Command, args []string) error {
	ds, err := common.LoadDataset(cmd.Context(), root.GetContainer(), root.SharedFlags.Input)
	if err != nil {
		return common.NoDataOrError(cmd.ErrOrStderr(), err)
	}
	for _, s := range viewstate.Stores(ds.Records) {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	return nil
}
