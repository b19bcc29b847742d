package dashboard

import (
	"fjacquet/dre-report/internal/aggregator"

	"github.com/shopspring/decimal"
)

// palette is cycled in category order so colours are stable between runs.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Color returns the palette colour for the i-th series.
func Color(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// Series is one dataset of a chart.
type Series struct {
	Label  string    `json:"label" yaml:"label"`
	Color  string    `json:"color" yaml:"color"`
	Values []float64 `json:"values" yaml:"values"`
}

// Chart is a chart definition handed to an external charting library.
type Chart struct {
	Type   string   `json:"type" yaml:"type"`
	Labels []string `json:"labels" yaml:"labels"`
	Series []Series `json:"series" yaml:"series"`
}

// Charts groups the two dashboard charts.
type Charts struct {
	Income      Chart `json:"income" yaml:"income"`
	TopExpenses Chart `json:"top_expenses" yaml:"top_expenses"`
}

// BuildCharts derives the income line chart (positive sums per category
// over months) and the top expenses bar chart.
func BuildCharts(res aggregator.Result) Charts {
	labels := make([]string, 0, len(res.Months))
	for _, m := range res.Months {
		labels = append(labels, m.String())
	}

	income := Chart{Type: "line", Labels: labels, Series: []Series{}}
	i := 0
	for _, c := range res.Categories {
		if _, ok := res.PositiveByCategoryMonth[c]; !ok {
			continue
		}
		values := make([]float64, 0, len(res.Months))
		for _, m := range res.Months {
			values = append(values, toFloat(res.PositiveByCategoryMonth.Get(c, m)))
		}
		income.Series = append(income.Series, Series{Label: c, Color: Color(i), Values: values})
		i++
	}

	expenses := Chart{Type: "bar", Labels: labels, Series: []Series{}}
	for j, e := range res.TopExpenses {
		values := make([]float64, 0, len(res.Months))
		for _, m := range res.Months {
			values = append(values, toFloat(res.NegativeByCategoryMonth.Get(e.Category, m)))
		}
		expenses.Series = append(expenses.Series, Series{Label: e.Category, Color: Color(j), Values: values})
	}

	return Charts{Income: income, TopExpenses: expenses}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
