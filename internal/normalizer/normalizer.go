// Package normalizer turns raw upload rows into TransactionRecords.
//
// Normalization never fails: an unreadable date leaves the record undated and
// an unreadable amount becomes zero, so every row stays in the raw table and
// aggregation totals are always defined.
package normalizer

import (
	"strings"

	"fjacquet/dre-report/internal/currencyutils"
	"fjacquet/dre-report/internal/dateutils"
	"fjacquet/dre-report/internal/models"
)

// Normalize converts one raw row into a canonical record.
func Normalize(raw models.RawRow) models.TransactionRecord {
	rec := models.TransactionRecord{
		Description: strings.TrimSpace(raw.Description),
		Category:    strings.TrimSpace(raw.Category),
		BankAccount: strings.TrimSpace(raw.BankAccount),
		Store:       strings.TrimSpace(raw.Store),
		Amount:      currencyutils.ParseAmountOrZero(raw.Amount),
	}
	if date, err := dateutils.ParseDayMonthYear(raw.Date); err == nil {
		rec.Date = date
	}
	return rec
}

// NormalizeAll normalizes rows in order. Blank rows are kept; dropping them
// is the loader's job.
func NormalizeAll(rows []models.RawRow) []models.TransactionRecord {
	records := make([]models.TransactionRecord, 0, len(rows))
	for _, raw := range rows {
		records = append(records, Normalize(raw))
	}
	return records
}

// Stats counts the fields that degraded during normalization.
type Stats struct {
	Rows           int
	UndatedRows    int
	ZeroAmountRows int
}

// Summarize reports how many rows lost their date or amount, for logging.
func Summarize(rows []models.RawRow, records []models.TransactionRecord) Stats {
	stats := Stats{Rows: len(records)}
	for i, rec := range records {
		if !rec.HasDate() {
			stats.UndatedRows++
		}
		if rec.Amount.IsZero() && i < len(rows) && strings.TrimSpace(rows[i].Amount) != "" {
			if _, err := currencyutils.ParseAmount(rows[i].Amount); err != nil {
				stats.ZeroAmountRows++
			}
		}
	}
	return stats
}
