// Package aggregator computes the category-by-month pivot, the partial
// income/expense sums, the top expense ranking, the sales cards and the
// monthly DRE from a slice of normalized records.
//
// Aggregate is a pure function: every call recomputes everything from the
// records it is given.
package aggregator

import (
	"sort"
	"strings"

	"fjacquet/dre-report/internal/models"
	"fjacquet/dre-report/internal/textutils"

	"github.com/shopspring/decimal"
)

// Options tunes the ranking and the card keywords.
type Options struct {
	TopN                int
	SalesKeyword        string
	CounterSalesKeyword string
}

// DefaultOptions returns the dashboard defaults.
func DefaultOptions() Options {
	return Options{
		TopN:                models.DefaultTopN,
		SalesKeyword:        models.SalesKeyword,
		CounterSalesKeyword: models.CounterSalesKeyword,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TopN <= 0 {
		o.TopN = d.TopN
	}
	if strings.TrimSpace(o.SalesKeyword) == "" {
		o.SalesKeyword = d.SalesKeyword
	}
	if strings.TrimSpace(o.CounterSalesKeyword) == "" {
		o.CounterSalesKeyword = d.CounterSalesKeyword
	}
	return o
}

// MonthValues maps a month to an amount.
type MonthValues map[models.MonthKey]decimal.Decimal

// CategoryMonthValues maps a category to its per-month amounts.
type CategoryMonthValues map[string]MonthValues

func (c CategoryMonthValues) add(category string, month models.MonthKey, amount decimal.Decimal) {
	values, ok := c[category]
	if !ok {
		values = make(MonthValues)
		c[category] = values
	}
	values[month] = values[month].Add(amount)
}

// Get returns the amount for a bucket, zero when absent.
func (c CategoryMonthValues) Get(category string, month models.MonthKey) decimal.Decimal {
	return c[category][month]
}

// Total returns the sum of a category across all months.
func (c CategoryMonthValues) Total(category string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range c[category] {
		total = total.Add(v)
	}
	return total
}

// CategoryTotal is one entry of the top expense ranking.
type CategoryTotal struct {
	Category string          `json:"category" yaml:"category"`
	Total    decimal.Decimal `json:"total" yaml:"total"`
}

// Cards holds the two headline sales figures.
type Cards struct {
	TotalSales        decimal.Decimal `json:"total_sales" yaml:"total_sales"`
	TotalCounterSales decimal.Decimal `json:"total_counter_sales" yaml:"total_counter_sales"`
}

// DREMonth is one column of the simplified income statement.
type DREMonth struct {
	Month    models.MonthKey `json:"month" yaml:"month"`
	Income   decimal.Decimal `json:"income" yaml:"income"`
	Expenses decimal.Decimal `json:"expenses" yaml:"expenses"`
	Result   decimal.Decimal `json:"result" yaml:"result"`
}

// Result is the full aggregate of one record set.
type Result struct {
	ByCategoryMonth         CategoryMonthValues
	PositiveByCategoryMonth CategoryMonthValues
	// NegativeByCategoryMonth holds magnitudes, never negative values.
	NegativeByCategoryMonth CategoryMonthValues
	Months                  []models.MonthKey
	Categories              []string
	MonthTotals             MonthValues
	TopExpenses             []CategoryTotal
	Cards                   Cards
	DRE                     []DREMonth
}

// Aggregate computes the Result for records.
//
// Records with a blank category count toward Months only. They are left out
// of every category map, MonthTotals and TopExpenses, so a blank category
// never shows up as a "" row in the pivot or the DRE.
func Aggregate(records []models.TransactionRecord, opts Options) Result {
	opts = opts.withDefaults()

	res := Result{
		ByCategoryMonth:         make(CategoryMonthValues),
		PositiveByCategoryMonth: make(CategoryMonthValues),
		NegativeByCategoryMonth: make(CategoryMonthValues),
		MonthTotals:             make(MonthValues),
		Months:                  []models.MonthKey{},
		Categories:              []string{},
		TopExpenses:             []CategoryTotal{},
		DRE:                     []DREMonth{},
		Cards:                   Cards{TotalSales: decimal.Zero, TotalCounterSales: decimal.Zero},
	}

	seenMonths := make(map[models.MonthKey]bool)
	seenCategories := make(map[string]bool)
	counterKey := textutils.Fold(opts.CounterSalesKeyword)
	salesKey := textutils.Fold(opts.SalesKeyword)

	for _, rec := range records {
		folded := textutils.Fold(rec.Category)
		switch {
		case folded == "":
		case strings.Contains(folded, counterKey):
			res.Cards.TotalCounterSales = res.Cards.TotalCounterSales.Add(rec.Amount)
		case strings.Contains(folded, salesKey):
			res.Cards.TotalSales = res.Cards.TotalSales.Add(rec.Amount)
		}

		month, ok := rec.MonthKey()
		if !ok {
			continue
		}
		if !seenMonths[month] {
			seenMonths[month] = true
			res.Months = append(res.Months, month)
		}
		if rec.Category == "" {
			continue
		}
		if !seenCategories[rec.Category] {
			seenCategories[rec.Category] = true
			res.Categories = append(res.Categories, rec.Category)
		}

		res.ByCategoryMonth.add(rec.Category, month, rec.Amount)
		res.MonthTotals[month] = res.MonthTotals[month].Add(rec.Amount)
		switch rec.Amount.Sign() {
		case 1:
			res.PositiveByCategoryMonth.add(rec.Category, month, rec.Amount)
		case -1:
			res.NegativeByCategoryMonth.add(rec.Category, month, rec.Amount.Abs())
		}
	}

	sort.Slice(res.Months, func(i, j int) bool { return res.Months[i].Before(res.Months[j]) })
	for _, m := range res.Months {
		if _, ok := res.MonthTotals[m]; !ok {
			res.MonthTotals[m] = decimal.Zero
		}
	}

	res.TopExpenses = topExpenses(res.Categories, res.NegativeByCategoryMonth, opts.TopN)
	res.DRE = buildDRE(res.Months, res.Categories, res.PositiveByCategoryMonth, res.NegativeByCategoryMonth)
	return res
}

func topExpenses(categories []string, negative CategoryMonthValues, n int) []CategoryTotal {
	ranked := make([]CategoryTotal, 0, len(categories))
	for _, c := range categories {
		total := negative.Total(c)
		if total.IsPositive() {
			ranked = append(ranked, CategoryTotal{Category: c, Total: total})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func buildDRE(months []models.MonthKey, categories []string, positive, negative CategoryMonthValues) []DREMonth {
	dre := make([]DREMonth, 0, len(months))
	for _, m := range months {
		row := DREMonth{Month: m, Income: decimal.Zero, Expenses: decimal.Zero}
		for _, c := range categories {
			row.Income = row.Income.Add(positive.Get(c, m))
			row.Expenses = row.Expenses.Add(negative.Get(c, m))
		}
		row.Result = row.Income.Sub(row.Expenses)
		dre = append(dre, row)
	}
	return dre
}

// CategoryRowTotal returns the pivot row total of a category.
func (r Result) CategoryRowTotal(category string) decimal.Decimal {
	return r.ByCategoryMonth.Total(category)
}

// GrandTotal returns the sum of all month totals.
func (r Result) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, m := range r.Months {
		total = total.Add(r.MonthTotals[m])
	}
	return total
}
