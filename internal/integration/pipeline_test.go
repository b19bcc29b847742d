package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/dre-report/internal/config"
	"fjacquet/dre-report/internal/container"
	"fjacquet/dre-report/internal/dashboard"
	"fjacquet/dre-report/internal/export"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/viewstate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var tolerance = decimal.RequireFromString("0.01")

func newContainer(t *testing.T, dbPath string) *container.Container {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Backend = "sqlite"
	cfg.Store.SQLite.Path = dbPath
	c, err := container.NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger())
	require.NoError(t, err)
	require.NotNil(t, c.GetStore())
	return c
}

// writeWorkbook builds an upload the way a spreadsheet program saves it:
// real dates as serial numbers, typed amounts, and a mix of text dates.
func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Descrição", "Plano de contas", "Conta bancária", "Loja", "Data", "Valor"},
		{"Venda", "Vendas", "Itaú", "Centro", 45352, 100.5},
		{"Balcão", "Vendas no Balcão", "Itaú", "Centro", "15-03-2024", "50,00"},
		{"Aluguel", "Aluguel", "Bradesco", "Norte", "2024.03.02", "-200,00"},
		{"Energia", "Despesas Energia", "Bradesco", "Norte", "10/04/24", "(80,25)"},
		{"Venda", "Vendas", "Itaú", "Norte", "05.04.2024", "R$ 1.000,00"},
		{"Ajuste", "Vendas", "Itaú", "Centro", "sem data", "abc"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "lancamentos.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestPipeline_UploadStoreAndReload(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "dre.db")
	upload := writeWorkbook(t)

	first := newContainer(t, dbPath)
	ds, err := first.GetDatasets().Load(ctx, upload)
	require.NoError(t, err)
	require.NoError(t, ds.StoreErr)
	require.Len(t, ds.Records, 6)
	want := dashboard.Build(viewstate.New(ds.Records), first.AggregatorOptions())
	require.NoError(t, first.Close())

	// A fresh process sees the same dataset through the store.
	second := newContainer(t, dbPath)
	defer second.Close()
	stored, err := second.GetDatasets().Load(ctx, "")
	require.NoError(t, err)
	got := dashboard.Build(viewstate.New(stored.Records), second.AggregatorOptions())

	assert.Equal(t, want.Summary.Header, got.Summary.Header)
	assert.True(t, want.Summary.GrandTotal.Equal(got.Summary.GrandTotal))
	assert.Equal(t, want.StoreOptions, got.StoreOptions)
}

func TestPipeline_Dashboard(t *testing.T) {
	c := newContainer(t, filepath.Join(t.TempDir(), "dre.db"))
	defer c.Close()

	ds, err := c.GetDatasets().Load(context.Background(), writeWorkbook(t))
	require.NoError(t, err)
	d := dashboard.Build(viewstate.New(ds.Records), c.AggregatorOptions())

	assert.Equal(t, []string{"Plano de Contas", "3/2024", "4/2024", "Total"}, d.Summary.Header)
	assert.Equal(t, []string{"Centro", "Norte"}, d.StoreOptions)
	assert.True(t, decimal.RequireFromString("1100.5").Equal(d.Cards.TotalSales), d.Cards.TotalSales.String())
	assert.True(t, decimal.RequireFromString("50").Equal(d.Cards.TotalCounterSales), d.Cards.TotalCounterSales.String())

	require.Len(t, d.TopExpenses, 2)
	assert.Equal(t, "Aluguel", d.TopExpenses[0].Category)
	assert.Equal(t, "Despesas Energia", d.TopExpenses[1].Category)

	require.Len(t, d.DRE, 2)
	assert.True(t, decimal.RequireFromString("-49.5").Equal(d.DRE[0].Result), d.DRE[0].Result.String())
	assert.True(t, decimal.RequireFromString("919.75").Equal(d.DRE[1].Result), d.DRE[1].Result.String())
}

func TestPipeline_Filters(t *testing.T) {
	c := newContainer(t, filepath.Join(t.TempDir(), "dre.db"))
	defer c.Close()
	ds, err := c.GetDatasets().Load(context.Background(), writeWorkbook(t))
	require.NoError(t, err)

	state := viewstate.New(ds.Records)
	unfiltered := dashboard.Build(state, c.AggregatorOptions())
	empty := dashboard.Build(state.WithFilters(viewstate.Filters{}), c.AggregatorOptions())
	assert.Equal(t, unfiltered, empty)

	norte := dashboard.Build(state.WithStore(" norte "), c.AggregatorOptions())
	assert.Equal(t, 3, norte.FilteredCount)
	assert.Equal(t, unfiltered.StoreOptions, norte.StoreOptions)

	despesas := dashboard.Build(state.WithAccount("DESPESAS"), c.AggregatorOptions())
	require.Len(t, despesas.Summary.Rows, 1)
	assert.Equal(t, "Despesas Energia", despesas.Summary.Rows[0].Category)
}

func TestPipeline_ExportReparse(t *testing.T) {
	c := newContainer(t, filepath.Join(t.TempDir(), "dre.db"))
	defer c.Close()
	ds, err := c.GetDatasets().Load(context.Background(), writeWorkbook(t))
	require.NoError(t, err)
	summary := dashboard.Build(viewstate.New(ds.Records), c.AggregatorOptions()).Summary

	for _, format := range []string{export.FormatCSV, export.FormatXLSX} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "resumo."+format)
			require.NoError(t, export.ExportSummary(path, summary, "", c.ExportOptions()))

			data, err := os.ReadFile(path)
			require.NoError(t, err)

			var back dashboard.SummaryTable
			if format == export.FormatCSV {
				back, err = export.ReadSummaryCSV(bytes.NewReader(data), c.ExportOptions().Delimiter)
			} else {
				back, err = export.ReadSummaryXLSX(bytes.NewReader(data), c.ExportOptions().SheetName)
			}
			require.NoError(t, err)

			require.Len(t, back.Rows, len(summary.Rows))
			for i, row := range summary.Rows {
				assert.Equal(t, row.Category, back.Rows[i].Category)
				assert.True(t, row.Total.Sub(back.Rows[i].Total).Abs().LessThanOrEqual(tolerance))
			}
			assert.True(t, summary.GrandTotal.Sub(back.GrandTotal).Abs().LessThanOrEqual(tolerance))
		})
	}
}
