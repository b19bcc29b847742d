package dashboard

import (
	"testing"

	"fjacquet/dre-report/internal/aggregator"
	"fjacquet/dre-report/internal/models"
	"fjacquet/dre-report/internal/normalizer"
	"fjacquet/dre-report/internal/viewstate"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() viewstate.State {
	return viewstate.New(normalizer.NormalizeAll([]models.RawRow{
		{Description: "Venda", Category: "Vendas", Store: "Centro", Date: "01/03/2024", Amount: "100,50"},
		{Description: "Balcão", Category: "Vendas no Balcão", Store: "Centro", Date: "15/03/2024", Amount: "50,00"},
		{Description: "Aluguel", Category: "Aluguel", Store: "Norte", Date: "02/03/2024", Amount: "-200,00"},
		{Description: "Aluguel abril", Category: "Aluguel", Store: "Norte", Date: "02/04/2024", Amount: "-200,00"},
		{Description: "Sem data", Category: "Vendas", Store: "Norte", Date: "", Amount: "7"},
	}))
}

func TestBuild(t *testing.T) {
	d := Build(sampleState(), aggregator.DefaultOptions())

	assert.Equal(t, 5, d.RecordCount)
	assert.Equal(t, 5, d.FilteredCount)
	assert.Equal(t, []string{"Centro", "Norte"}, d.StoreOptions)
	assert.True(t, decimal.RequireFromString("107.50").Equal(d.Cards.TotalSales))

	require.Len(t, d.Table, 5)
	assert.Equal(t, "01/03/2024", d.Table[0].Date)
	assert.Equal(t, "100.50", d.Table[0].Amount)
	assert.Equal(t, "", d.Table[4].Date)

	assert.Equal(t, []string{"Plano de Contas", "3/2024", "4/2024", "Total"}, d.Summary.Header)
	require.Len(t, d.Summary.Rows, 3)
	aluguel := d.Summary.Rows[2]
	assert.Equal(t, "Aluguel", aluguel.Category)
	assert.True(t, decimal.RequireFromString("-400").Equal(aluguel.Total))
	assert.True(t, decimal.RequireFromString("-49.50").Equal(d.Summary.MonthTotals[0]))
	assert.True(t, decimal.RequireFromString("-249.50").Equal(d.Summary.GrandTotal))
}

func TestBuild_FilteredKeepsStoreOptions(t *testing.T) {
	state := sampleState().WithStore("norte")
	d := Build(state, aggregator.DefaultOptions())

	assert.Equal(t, 3, d.FilteredCount)
	assert.Equal(t, []string{"Centro", "Norte"}, d.StoreOptions)
	assert.Equal(t, "norte", d.Filters.Store)
	require.Len(t, d.TopExpenses, 1)
	assert.Equal(t, "Aluguel", d.TopExpenses[0].Category)
}

func TestBuild_Empty(t *testing.T) {
	d := Build(viewstate.New(nil), aggregator.DefaultOptions())
	assert.True(t, d.Summary.IsEmpty())
	assert.Equal(t, []string{"Plano de Contas", "Total"}, d.Summary.Header)
	assert.Empty(t, d.Table)
	assert.Empty(t, d.Charts.Income.Series)
}

func TestBuildCharts(t *testing.T) {
	res := aggregator.Aggregate(sampleState().Records, aggregator.DefaultOptions())
	charts := BuildCharts(res)

	assert.Equal(t, "line", charts.Income.Type)
	assert.Equal(t, []string{"3/2024", "4/2024"}, charts.Income.Labels)
	require.Len(t, charts.Income.Series, 2)
	assert.Equal(t, "Vendas", charts.Income.Series[0].Label)
	assert.Equal(t, []float64{100.5, 0}, charts.Income.Series[0].Values)
	assert.Equal(t, Color(0), charts.Income.Series[0].Color)
	assert.NotEqual(t, charts.Income.Series[0].Color, charts.Income.Series[1].Color)

	require.Len(t, charts.TopExpenses.Series, 1)
	assert.Equal(t, []float64{200, 200}, charts.TopExpenses.Series[0].Values)
}

func TestColor_Cycles(t *testing.T) {
	assert.Equal(t, Color(0), Color(len(palette)))
	assert.Equal(t, Color(3), Color(-3))
}
