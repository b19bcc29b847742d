package export

import (
	"strings"

	"fjacquet/dre-report/internal/dashboard"
)

// formulaPrefixes start a formula when a spreadsheet opens a CSV file.
const formulaPrefixes = "=+-@\t\r"

// textCell prefixes a quote to text that a spreadsheet would evaluate.
func textCell(s string) string {
	if s != "" && strings.ContainsRune(formulaPrefixes, rune(s[0])) {
		return "'" + s
	}
	return s
}

// plainCell reverses textCell.
func plainCell(s string) string {
	if len(s) > 1 && s[0] == '\'' && strings.ContainsRune(formulaPrefixes, rune(s[1])) {
		return s[1:]
	}
	return s
}

// textRows returns a copy of rows with every text column passed through
// textCell. Amounts are left alone so negatives stay numeric.
func textRows(rows []dashboard.TableRow) []dashboard.TableRow {
	out := make([]dashboard.TableRow, len(rows))
	for i, row := range rows {
		out[i] = dashboard.TableRow{
			Description: textCell(row.Description),
			Category:    textCell(row.Category),
			BankAccount: textCell(row.BankAccount),
			Store:       textCell(row.Store),
			Date:        textCell(row.Date),
			Amount:      row.Amount,
		}
	}
	return out
}
