// Package push uploads a spreadsheet to the configured store
package push

import (
	"errors"
	"fmt"

	"fjacquet/dre-report/cmd/root"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the push command
var Cmd = &cobra.Command{
	Use:   "push",
	Short: "Save --input to the configured store",
	Long: `Read --input and replace the stored dataset with its rows, regardless of
store.save_on_upload. Later commands without --input use it.`,
	RunE: pushFunc,
}

func pushFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	if root.SharedFlags.Input == "" {
		return errors.New("--input is required")
	}
	if err := validation.IsValidInputFile(root.SharedFlags.Input); err != nil {
		return err
	}
	if c.GetStore() == nil {
		if err := c.StoreError(); err != nil {
			return fmt.Errorf("store unavailable: %w", err)
		}
		return errors.New("no store configured (store.backend is none)")
	}

	rows, err := c.GetLoader().Load(cmd.Context(), root.SharedFlags.Input)
	if err != nil {
		return err
	}
	if err := c.GetDatasets().Push(cmd.Context(), rows); err != nil {
		return err
	}

	backend := c.GetStore().Name()
	root.Log.Info("Dataset pushed",
		logging.F(logging.FieldInputFile, root.SharedFlags.Input),
		logging.F(logging.FieldBackend, backend),
		logging.F(logging.FieldCount, len(rows)))
	fmt.Fprintf(cmd.OutOrStdout(), "%d linhas enviadas para %s\n", len(rows), backend)
	return nil
}
