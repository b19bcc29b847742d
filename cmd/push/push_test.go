package push

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/dre-report/cmd/root"
	"fjacquet/dre-report/internal/config"
	"fjacquet/dre-report/internal/container"
	"fjacquet/dre-report/internal/logging"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upload = "Descrição;Plano de contas;Conta bancária;Loja;Data;Valor\n" +
	"Venda;Vendas;Itaú;Centro;01/03/2024;100,50\n" +
	"Balcão;Vendas no balcão;Itaú;Centro;05/03/2024;50,00\n" +
	"Aluguel;Aluguel;Itaú;Norte;02/03/2024;-200,00\n"

// setup installs a container backed by an in-memory store and returns the
// command's stdout and stderr buffers.
func setup(t *testing.T, backend string, flags root.CommonFlags) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true

	cfg := config.Default()
	cfg.Store.Backend = backend
	c, err := container.NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)

	root.SetContainer(c)
	root.SharedFlags = flags
	t.Cleanup(func() {
		root.SetContainer(nil)
		root.SharedFlags = root.CommonFlags{}
		_ = c.Close()
	})

	var stdout, stderr bytes.Buffer
	Cmd.SetOut(&stdout)
	Cmd.SetErr(&stderr)
	Cmd.SetContext(context.Background())
	return &stdout, &stderr
}

func writeUpload(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dados.csv")
	require.NoError(t, os.WriteFile(path, []byte(upload), 0600))
	return path
}

func TestPushCommand(t *testing.T) {
	stdout, _ := setup(t, "memory", root.CommonFlags{Input: writeUpload(t)})

	require.NoError(t, Cmd.RunE(Cmd, nil))
	assert.Equal(t, "3 linhas enviadas para memory\n", stdout.String())

	rows, err := root.GetContainer().GetStore().Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestPushCommand_Errors(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		setup(t, "memory", root.CommonFlags{})
		assert.EqualError(t, Cmd.RunE(Cmd, nil), "--input is required")
	})

	t.Run("no store", func(t *testing.T) {
		setup(t, "none", root.CommonFlags{Input: writeUpload(t)})
		assert.Error(t, Cmd.RunE(Cmd, nil))
	})

	t.Run("unreadable input", func(t *testing.T) {
		setup(t, "memory", root.CommonFlags{Input: filepath.Join(t.TempDir(), "nada.csv")})
		assert.Error(t, Cmd.RunE(Cmd, nil))
	})
}
