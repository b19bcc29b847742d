// Package dashboard builds the view model shown by the CLI, the HTTP
// dashboard and the reports: raw table, summary pivot, cards, top
// expenses, DRE and chart series, all derived from one viewstate.State.
package dashboard

import (
	"fjacquet/dre-report/internal/aggregator"
	"fjacquet/dre-report/internal/currencyutils"
	"fjacquet/dre-report/internal/models"
	"fjacquet/dre-report/internal/viewstate"

	"github.com/shopspring/decimal"
)

// TableRow is one line of the filtered raw table.
type TableRow struct {
	Description string `json:"description" yaml:"description" csv:"Descrição"`
	Category    string `json:"category" yaml:"category" csv:"Plano de contas"`
	BankAccount string `json:"bank_account" yaml:"bank_account" csv:"Conta bancária"`
	Store       string `json:"store" yaml:"store" csv:"Loja"`
	Date        string `json:"date" yaml:"date" csv:"Data"`
	Amount      string `json:"amount" yaml:"amount" csv:"Valor"`
}

// SummaryRow is one category line of the pivot.
type SummaryRow struct {
	Category string            `json:"category" yaml:"category"`
	Values   []decimal.Decimal `json:"values" yaml:"values"`
	Total    decimal.Decimal   `json:"total" yaml:"total"`
}

// SummaryTable is the category x month pivot with a totals footer.
type SummaryTable struct {
	Header      []string          `json:"header" yaml:"header"`
	Months      []models.MonthKey `json:"months" yaml:"months"`
	Rows        []SummaryRow      `json:"rows" yaml:"rows"`
	MonthTotals []decimal.Decimal `json:"month_totals" yaml:"month_totals"`
	GrandTotal  decimal.Decimal   `json:"grand_total" yaml:"grand_total"`
}

// Dashboard is everything one screen shows.
type Dashboard struct {
	Filters       viewstate.Filters          `json:"filters" yaml:"filters"`
	StoreOptions  []string                   `json:"store_options" yaml:"store_options"`
	RecordCount   int                        `json:"record_count" yaml:"record_count"`
	FilteredCount int                        `json:"filtered_count" yaml:"filtered_count"`
	Cards         aggregator.Cards           `json:"cards" yaml:"cards"`
	TopExpenses   []aggregator.CategoryTotal `json:"top_expenses" yaml:"top_expenses"`
	DRE           []aggregator.DREMonth      `json:"dre" yaml:"dre"`
	Summary       SummaryTable               `json:"summary" yaml:"summary"`
	Charts        Charts                     `json:"charts" yaml:"charts"`
	Table         []TableRow                 `json:"table" yaml:"table"`
}

// Build derives the dashboard for state. The store options always come
// from the unfiltered working set.
func Build(state viewstate.State, opts aggregator.Options) Dashboard {
	filtered := state.Filtered()
	res := aggregator.Aggregate(filtered, opts)

	return Dashboard{
		Filters:       state.Filters,
		StoreOptions:  viewstate.Stores(state.Records),
		RecordCount:   len(state.Records),
		FilteredCount: len(filtered),
		Cards:         res.Cards,
		TopExpenses:   res.TopExpenses,
		DRE:           res.DRE,
		Summary:       BuildSummary(res),
		Charts:        BuildCharts(res),
		Table:         BuildTable(filtered),
	}
}

// BuildTable renders records as display rows.
func BuildTable(records []models.TransactionRecord) []TableRow {
	rows := make([]TableRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, TableRow{
			Description: rec.Description,
			Category:    rec.Category,
			BankAccount: rec.BankAccount,
			Store:       rec.Store,
			Date:        rec.DisplayDate(),
			Amount:      currencyutils.FormatAmount(rec.Amount),
		})
	}
	return rows
}

// BuildSummary lays the aggregate out as the exported pivot.
func BuildSummary(res aggregator.Result) SummaryTable {
	table := SummaryTable{
		Header:      make([]string, 0, len(res.Months)+2),
		Months:      res.Months,
		Rows:        make([]SummaryRow, 0, len(res.Categories)),
		MonthTotals: make([]decimal.Decimal, 0, len(res.Months)),
		GrandTotal:  res.GrandTotal(),
	}

	table.Header = append(table.Header, models.SummaryCategoryHeader)
	for _, m := range res.Months {
		table.Header = append(table.Header, m.String())
		table.MonthTotals = append(table.MonthTotals, res.MonthTotals[m])
	}
	table.Header = append(table.Header, models.SummaryTotalHeader)

	for _, c := range res.Categories {
		row := SummaryRow{Category: c, Values: make([]decimal.Decimal, 0, len(res.Months))}
		for _, m := range res.Months {
			row.Values = append(row.Values, res.ByCategoryMonth.Get(c, m))
		}
		row.Total = res.CategoryRowTotal(c)
		table.Rows = append(table.Rows, row)
	}
	return table
}

// IsEmpty reports whether the pivot has no category rows.
func (t SummaryTable) IsEmpty() bool {
	return len(t.Rows) == 0
}
