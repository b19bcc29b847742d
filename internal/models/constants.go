package models

// Upload column headers, exactly as the accounting export names them.
const (
	ColumnDescription = "Descrição"
	ColumnCategory    = "Plano de contas"
	ColumnBankAccount = "Conta bancária"
	ColumnStore       = "Loja"
	ColumnDate        = "Data"
	ColumnAmount      = "Valor"
)

// RequiredColumns lists the headers every upload must carry, in display order.
var RequiredColumns = []string{
	ColumnDescription,
	ColumnCategory,
	ColumnBankAccount,
	ColumnStore,
	ColumnDate,
	ColumnAmount,
}

// Summary table labels.
const (
	SummaryCategoryHeader = "Plano de Contas"
	SummaryTotalHeader    = "Total"
)

// Card keywords. A category containing CounterSalesKeyword is counted only
// as counter sales, never as generic sales.
const (
	SalesKeyword        = "vendas"
	CounterSalesKeyword = "vendas no balcão"
)

// DefaultTopN is the number of expense categories ranked on the dashboard.
const DefaultTopN = 5

// DisplayDateLayout is the dd/mm/yyyy layout used in tables and exports.
const DisplayDateLayout = "02/01/2006"

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
