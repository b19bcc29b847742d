// Package viewstate holds the working record set together with the active
// store and account filters.
package viewstate

import (
	"strings"

	"fjacquet/dre-report/internal/models"
	"fjacquet/dre-report/internal/textutils"
)

// Filters are the two dashboard filters. Empty means no restriction.
type Filters struct {
	Store   string `json:"store" yaml:"store"`
	Account string `json:"account" yaml:"account"`
}

// IsEmpty reports whether neither filter is set.
func (f Filters) IsEmpty() bool {
	return strings.TrimSpace(f.Store) == "" && strings.TrimSpace(f.Account) == ""
}

// Apply returns the records matching f, in input order. The store filter is
// a case-insensitive exact match on the store name; the account filter is a
// case-insensitive substring of the category.
func Apply(records []models.TransactionRecord, f Filters) []models.TransactionRecord {
	store := textutils.Fold(f.Store)
	account := strings.TrimSpace(f.Account)

	out := make([]models.TransactionRecord, 0, len(records))
	for _, rec := range records {
		if store != "" && textutils.Fold(rec.Store) != store {
			continue
		}
		if account != "" && !textutils.ContainsFold(rec.Category, account) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Stores lists the distinct non-blank store names in first-seen order.
func Stores(records []models.TransactionRecord) []string {
	seen := make(map[string]bool)
	stores := []string{}
	for _, rec := range records {
		name := strings.TrimSpace(rec.Store)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		stores = append(stores, name)
	}
	return stores
}

// State is an immutable snapshot of the working set and its filters.
// Mutators return a new State and leave the receiver untouched.
type State struct {
	Records []models.TransactionRecord
	Filters Filters
}

// New returns a State over records with no filters.
func New(records []models.TransactionRecord) State {
	return State{Records: records}
}

// WithRecords replaces the working set and keeps the filters.
func (s State) WithRecords(records []models.TransactionRecord) State {
	s.Records = records
	return s
}

// WithStore sets the store filter.
func (s State) WithStore(store string) State {
	s.Filters.Store = strings.TrimSpace(store)
	return s
}

// WithAccount sets the account substring filter.
func (s State) WithAccount(account string) State {
	s.Filters.Account = strings.TrimSpace(account)
	return s
}

// WithFilters replaces both filters.
func (s State) WithFilters(f Filters) State {
	return s.WithStore(f.Store).WithAccount(f.Account)
}

// Filtered returns the records selected by the current filters.
func (s State) Filtered() []models.TransactionRecord {
	return Apply(s.Records, s.Filters)
}

// HasData reports whether a working set is loaded.
func (s State) HasData() bool {
	return len(s.Records) > 0
}
