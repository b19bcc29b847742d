package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is a normalized upload row. Text fields are never nil and
// are already trimmed. A zero Date means the source date could not be parsed.
type TransactionRecord struct {
	Description string          `json:"descricao" yaml:"descricao"`
	Category    string          `json:"plano_de_contas" yaml:"plano_de_contas"`
	BankAccount string          `json:"conta_bancaria" yaml:"conta_bancaria"`
	Store       string          `json:"loja" yaml:"loja"`
	Date        time.Time       `json:"data" yaml:"data"`
	Amount      decimal.Decimal `json:"valor" yaml:"valor"`
}

// HasDate reports whether the record carries a valid calendar date.
func (t TransactionRecord) HasDate() bool {
	return !t.Date.IsZero()
}

// MonthKey returns the record's month bucket; ok is false for undated records.
func (t TransactionRecord) MonthKey() (MonthKey, bool) {
	if !t.HasDate() {
		return MonthKey{}, false
	}
	return MonthKey{Year: t.Date.Year(), Month: t.Date.Month()}, true
}

// DisplayDate returns the date as dd/mm/yyyy, or "" when absent.
func (t TransactionRecord) DisplayDate() string {
	if !t.HasDate() {
		return ""
	}
	return t.Date.Format(DisplayDateLayout)
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// String renders the key as "<month>/<year>" without zero padding, e.g. "3/2024".
func (m MonthKey) String() string {
	return fmt.Sprintf("%d/%d", int(m.Month), m.Year)
}

// Before orders keys chronologically, year first.
func (m MonthKey) Before(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// MarshalText lets MonthKey be used as a JSON/YAML map key.
func (m MonthKey) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMonthKey parses the "<month>/<year>" form produced by String.
func ParseMonthKey(s string) (MonthKey, error) {
	var month, year int
	if _, err := fmt.Sscanf(s, "%d/%d", &month, &year); err != nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	if month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("invalid month key %q: month out of range", s)
	}
	return MonthKey{Year: year, Month: time.Month(month)}, nil
}
