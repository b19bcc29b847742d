package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/dre-report/cmd/export"
	"fjacquet/dre-report/cmd/push"
	"fjacquet/dre-report/cmd/report"
	"fjacquet/dre-report/cmd/root"
	"fjacquet/dre-report/cmd/rows"
	"fjacquet/dre-report/cmd/serve"
	"fjacquet/dre-report/cmd/stores"
	"fjacquet/dre-report/cmd/summary"
	"fjacquet/dre-report/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	_, _ = config.LoadEnv()

	// 2. Set the global logrus level before any command logs
	logrus.SetLevel(logLevelFromEnv())

	// 3. Initialize root command and add all subcommands
	root.Init()
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(rows.Cmd)
	root.Cmd.AddCommand(stores.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(push.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// logLevelFromEnv reads DRE_LOG_LEVEL (or LOG_LEVEL), defaulting to info.
func logLevelFromEnv() logrus.Level {
	value := os.Getenv(config.EnvPrefix + "_LOG_LEVEL")
	if value == "" {
		value = os.Getenv("LOG_LEVEL")
	}
	level, err := logrus.ParseLevel(strings.ToLower(value))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
