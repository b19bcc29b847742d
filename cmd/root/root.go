// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/dre-report/internal/config"
	"fjacquet/dre-report/internal/container"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/viewstate"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	Store      string
	Account    string
	ConfigFile string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.NewLogrusAdapter("info", "text")

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "dre-report",
		Short: "Monthly chart-of-accounts summary and DRE from a spreadsheet of transactions.",
		Long: `dre-report reads a spreadsheet of categorized transactions (xlsx or csv)
and builds a month-by-month summary per chart-of-accounts category, the
income statement (DRE), the top expenses and the sales cards.

The last upload is kept in the configured store (sqlite by default), so
commands run without --input work on the stored dataset.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to dre-report!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer == nil || !ownsContainer {
				return
			}
			if err := appContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close container")
			}
			appContainer = nil
		},
		SilenceUsage: true,
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	appContainer  *container.Container
	ownsContainer bool
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input spreadsheet (.xlsx or .csv); the stored dataset is used when omitted")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (stdout when omitted)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Store, "store", "s", "", "Only include transactions of this store (Loja)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Account, "account", "a", "", "Only include categories containing this text")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default $HOME/.dre-report/config.yaml)")
}

func initialize(cmd *cobra.Command, args []string) error {
	if appContainer != nil {
		return nil
	}

	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	appContainer = c
	ownsContainer = true
	Log = c.GetLogger()
	return nil
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer installs a prebuilt container. Commands then skip config
// loading and the container is left open after the command finishes.
func SetContainer(c *container.Container) {
	appContainer = c
	ownsContainer = false
	if c != nil {
		Log = c.GetLogger()
	}
}

// GetLogger returns the shared logger.
func GetLogger() logging.Logger {
	return Log
}

// Filters returns the --store and --account filters.
func Filters() viewstate.Filters {
	return viewstate.Filters{Store: SharedFlags.Store, Account: SharedFlags.Account}
}
