package export

import (
	"fmt"
	"strings"

	"fjacquet/dre-report/internal/dashboard"
	"fjacquet/dre-report/internal/models"

	"github.com/shopspring/decimal"
)

// parseSummary rebuilds a SummaryTable from exported records. Month totals
// and the grand total are recomputed from the rows.
func parseSummary(records [][]string) (dashboard.SummaryTable, error) {
	if len(records) == 0 {
		return dashboard.SummaryTable{}, fmt.Errorf("summary is empty")
	}
	header := records[0]
	if len(header) < 2 ||
		strings.TrimSpace(header[0]) != models.SummaryCategoryHeader ||
		strings.TrimSpace(header[len(header)-1]) != models.SummaryTotalHeader {
		return dashboard.SummaryTable{}, fmt.Errorf("unexpected summary header: %v", header)
	}

	table := dashboard.SummaryTable{
		Header:     header,
		Months:     make([]models.MonthKey, 0, len(header)-2),
		Rows:       []dashboard.SummaryRow{},
		GrandTotal: decimal.Zero,
	}
	for _, h := range header[1 : len(header)-1] {
		m, err := models.ParseMonthKey(strings.TrimSpace(h))
		if err != nil {
			return dashboard.SummaryTable{}, err
		}
		table.Months = append(table.Months, m)
	}
	table.MonthTotals = make([]decimal.Decimal, len(table.Months))
	for i := range table.MonthTotals {
		table.MonthTotals[i] = decimal.Zero
	}

	for n, record := range records[1:] {
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		row := dashboard.SummaryRow{
			Category: record[0],
			Values:   make([]decimal.Decimal, len(table.Months)),
		}
		for i := range table.Months {
			v, err := cellDecimal(record, i+1)
			if err != nil {
				return dashboard.SummaryTable{}, fmt.Errorf("row %d, column %s: %w", n+2, header[i+1], err)
			}
			row.Values[i] = v
			table.MonthTotals[i] = table.MonthTotals[i].Add(v)
		}
		total, err := cellDecimal(record, len(header)-1)
		if err != nil {
			return dashboard.SummaryTable{}, fmt.Errorf("row %d, total: %w", n+2, err)
		}
		row.Total = total
		table.GrandTotal = table.GrandTotal.Add(total)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// cellDecimal reads column i; missing or blank cells are zero.
func cellDecimal(record []string, i int) (decimal.Decimal, error) {
	if i >= len(record) || strings.TrimSpace(record[i]) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.TrimSpace(record[i]))
}
