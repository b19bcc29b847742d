// Package models provides the data structures shared by the loader, the
// normalizer, the aggregator and the stores.
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RawRow is one upload line before normalization. Every column is kept as
// text; the JSON keys match the upload headers so persisted datasets keep
// the original record shape.
type RawRow struct {
	Description string `csv:"Descrição" json:"Descrição" yaml:"descricao"`
	Category    string `csv:"Plano de contas" json:"Plano de contas" yaml:"plano_de_contas"`
	BankAccount string `csv:"Conta bancária" json:"Conta bancária" yaml:"conta_bancaria"`
	Store       string `csv:"Loja" json:"Loja" yaml:"loja"`
	Date        string `csv:"Data" json:"Data" yaml:"data"`
	Amount      string `csv:"Valor" json:"Valor" yaml:"valor"`
}

// IsBlank reports whether every column is empty or whitespace.
func (r RawRow) IsBlank() bool {
	for _, v := range []string{r.Description, r.Category, r.BankAccount, r.Store, r.Date, r.Amount} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// UnmarshalJSON accepts every column as text or as a JSON number, since
// other writers of a shared store may not quote Data or Valor. Values of any
// other JSON type decode as empty so the row is kept.
func (r *RawRow) UnmarshalJSON(data []byte) error {
	var aux struct {
		Description json.RawMessage `json:"Descrição"`
		Category    json.RawMessage `json:"Plano de contas"`
		BankAccount json.RawMessage `json:"Conta bancária"`
		Store       json.RawMessage `json:"Loja"`
		Date        json.RawMessage `json:"Data"`
		Amount      json.RawMessage `json:"Valor"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = RawRow{
		Description: scalarText(aux.Description),
		Category:    scalarText(aux.Category),
		BankAccount: scalarText(aux.BankAccount),
		Store:       scalarText(aux.Store),
		Date:        scalarText(aux.Date),
		Amount:      scalarText(aux.Amount),
	}
	return nil
}

func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch {
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return ""
	}
}
