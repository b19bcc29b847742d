package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/dre-report/internal/dashboard"

	"github.com/gocarina/gocsv"
)

// WriteSummaryCSV writes the header row followed by one row per category.
// Amounts use two decimals and a dot separator. A category starting with a
// formula character is written with a leading quote.
func WriteSummaryCSV(w io.Writer, table dashboard.SummaryTable, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	writer := gocsv.NewSafeCSVWriter(csvWriter)

	if err := writer.Write(table.Header); err != nil {
		return fmt.Errorf("error writing summary header: %w", err)
	}
	for _, row := range table.Rows {
		record := make([]string, 0, len(row.Values)+2)
		record = append(record, textCell(row.Category))
		for _, v := range row.Values {
			record = append(record, v.StringFixed(2))
		}
		record = append(record, row.Total.StringFixed(2))
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing summary row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteRowsCSV writes the raw table through its csv struct tags. Text columns
// are quoted like WriteSummaryCSV categories.
func WriteRowsCSV(w io.Writer, rows []dashboard.TableRow, delimiter rune) error {
	rows = textRows(rows)
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// ReadSummaryCSV parses a summary written by WriteSummaryCSV.
func ReadSummaryCSV(r io.Reader, delimiter rune) (dashboard.SummaryTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return dashboard.SummaryTable{}, fmt.Errorf("error reading summary CSV: %w", err)
	}
	for i := 1; i < len(records); i++ {
		if len(records[i]) > 0 {
			records[i][0] = plainCell(records[i][0])
		}
	}
	return parseSummary(records)
}
