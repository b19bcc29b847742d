package common

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/dre-report/internal/currencyutils"
	"fjacquet/dre-report/internal/dashboard"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed)
)

// PrintDashboard writes the cards, top expenses, DRE and pivot as text.
// Negative amounts are shown in red when the terminal supports colour.
func PrintDashboard(w io.Writer, d dashboard.Dashboard) {
	header(w, "Indicadores")
	fmt.Fprintf(w, "  %-24s %s\n", "Total Vendas", brl(d.Cards.TotalSales))
	fmt.Fprintf(w, "  %-24s %s\n", "Total Vendas no Balcão", brl(d.Cards.TotalCounterSales))
	fmt.Fprintf(w, "  %-24s %d de %d\n", "Lançamentos", d.FilteredCount, d.RecordCount)

	header(w, "Maiores despesas")
	if len(d.TopExpenses) == 0 {
		fmt.Fprintln(w, "  (nenhuma)")
	}
	for i, e := range d.TopExpenses {
		fmt.Fprintf(w, "  %d. %-30s ", i+1, e.Category)
		red.Fprintf(w, "%16s\n", currencyutils.FormatBRL(e.Total))
	}

	header(w, "DRE")
	fmt.Fprintf(w, "  %-8s %16s %16s %16s\n", "Mês", "Receitas", "Despesas", "Resultado")
	for _, m := range d.DRE {
		fmt.Fprintf(w, "  %-8s %16s %16s ", m.Month, currencyutils.FormatBRL(m.Income), currencyutils.FormatBRL(m.Expenses))
		amount(w, m.Result, "%16s")
		fmt.Fprintln(w)
	}

	header(w, "Resumo por plano de contas")
	PrintSummary(w, d.Summary)
}

// PrintSummary writes the pivot as aligned columns.
func PrintSummary(w io.Writer, t dashboard.SummaryTable) {
	if t.IsEmpty() {
		fmt.Fprintln(w, "  (vazio)")
		return
	}

	width := len(t.Header[0])
	for _, r := range t.Rows {
		if n := len([]rune(r.Category)); n > width {
			width = n
		}
	}

	fmt.Fprintf(w, "%-*s", width, t.Header[0])
	for _, h := range t.Header[1:] {
		fmt.Fprintf(w, " %12s", h)
	}
	fmt.Fprintln(w)

	for _, r := range t.Rows {
		fmt.Fprintf(w, "%s%s", r.Category, strings.Repeat(" ", width-len([]rune(r.Category))))
		for _, v := range r.Values {
			fmt.Fprint(w, " ")
			amount(w, v, "%12s")
		}
		fmt.Fprint(w, " ")
		amount(w, r.Total, "%12s")
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%-*s", width, "Total")
	for _, v := range t.MonthTotals {
		fmt.Fprint(w, " ")
		amount(w, v, "%12s")
	}
	fmt.Fprint(w, " ")
	amount(w, t.GrandTotal, "%12s")
	fmt.Fprintln(w)
}

// Warning prints a highlighted warning line.
func Warning(w io.Writer, text string) {
	yellow.Fprintf(w, "⚠ %s\n", text)
}

func header(w io.Writer, text string) {
	green.Fprintf(w, "\n== %s ==\n", text)
}

func amount(w io.Writer, d decimal.Decimal, format string) {
	s := fmt.Sprintf(format, d.StringFixed(2))
	if d.IsNegative() {
		red.Fprint(w, s)
		return
	}
	fmt.Fprint(w, s)
}

func brl(d decimal.Decimal) string {
	return currencyutils.FormatBRL(d)
}
