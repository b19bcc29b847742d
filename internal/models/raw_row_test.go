package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawRow_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    RawRow
	}{
		{
			name:    "text values",
			payload: `{"Descrição":"Venda","Plano de contas":"Vendas","Loja":"Centro","Data":"01/03/2024","Valor":"100,50"}`,
			want:    RawRow{Description: "Venda", Category: "Vendas", Store: "Centro", Date: "01/03/2024", Amount: "100,50"},
		},
		{
			name:    "numeric amount",
			payload: `{"Plano de contas":"Vendas","Data":"01/03/2024","Valor":100.5}`,
			want:    RawRow{Category: "Vendas", Date: "01/03/2024", Amount: "100.5"},
		},
		{
			name:    "negative integer amount",
			payload: `{"Plano de contas":"Aluguel","Valor":-200}`,
			want:    RawRow{Category: "Aluguel", Amount: "-200"},
		},
		{
			name:    "exponent amount",
			payload: `{"Valor":1.5e3}`,
			want:    RawRow{Amount: "1500"},
		},
		{
			name:    "numeric date and store",
			payload: `{"Loja":12,"Data":45352}`,
			want:    RawRow{Store: "12", Date: "45352"},
		},
		{
			name:    "null and other types",
			payload: `{"Plano de contas":null,"Valor":true,"Data":{"d":1},"Loja":["x"]}`,
			want:    RawRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RawRow
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRawRow_JSONRoundTrip(t *testing.T) {
	rows := []RawRow{
		{Description: "Venda", Category: "Vendas", BankAccount: "Itaú", Store: "Centro", Date: "01/03/2024", Amount: "100,50"},
	}
	data, err := json.Marshal(rows)
	require.NoError(t, err)

	var got []RawRow
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, rows, got)
}

func TestRawRow_UnmarshalJSON_NotAnObject(t *testing.T) {
	var got []RawRow
	assert.Error(t, json.Unmarshal([]byte(`["linha"]`), &got))
}
