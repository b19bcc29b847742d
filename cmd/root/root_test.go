package root_test

import (
	"context"
	"testing"

	"fjacquet/dre-report/cmd/root"
	"fjacquet/dre-report/internal/config"
	"fjacquet/dre-report/internal/container"
	"fjacquet/dre-report/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "dre-report", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "chart-of-accounts")
	assert.Contains(t, root.Cmd.Long, "income statement (DRE)")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"input", "i"},
		{"output", "o"},
		{"store", "s"},
		{"account", "a"},
		{"config", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := root.Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestSetContainer(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "memory"
	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(context.Background(), cfg, logger)
	require.NoError(t, err)

	root.SetContainer(c)
	defer root.SetContainer(nil)

	assert.Same(t, c, root.GetContainer())
	assert.Equal(t, logging.Logger(logger), root.GetLogger())

	// An installed container short-circuits config loading.
	require.NoError(t, root.Cmd.PersistentPreRunE(root.Cmd, nil))
	assert.Same(t, c, root.GetContainer())

	// and is not closed by the post-run hook.
	root.Cmd.PersistentPostRun(root.Cmd, nil)
	assert.Same(t, c, root.GetContainer())
}

func TestFilters(t *testing.T) {
	root.SharedFlags.Store = "Centro"
	root.SharedFlags.Account = "vendas"
	defer func() {
		root.SharedFlags.Store = ""
		root.SharedFlags.Account = ""
	}()

	f := root.Filters()
	assert.Equal(t, "Centro", f.Store)
	assert.Equal(t, "vendas", f.Account)
}
