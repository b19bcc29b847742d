package export

import (
	"bytes"
	"fmt"
	"io"

	"fjacquet/dre-report/internal/dashboard"

	"github.com/xuri/excelize/v2"
)

// numFmtThousands is the built-in "#,##0.00" format.
const numFmtThousands = 4

// WriteSummaryXLSX writes table as a single-sheet workbook. Amounts are
// stored as numbers.
func WriteSummaryXLSX(w io.Writer, table dashboard.SummaryTable, sheetName string) error {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return fmt.Errorf("error creating amount style: %w", err)
	}

	for c, h := range table.Header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	if len(table.Header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(table.Header), 1)
		if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range table.Rows {
		line := r + 2
		values := make([]interface{}, 0, len(row.Values)+2)
		values = append(values, row.Category)
		for _, v := range row.Values {
			values = append(values, v.Round(2).InexactFloat64())
		}
		values = append(values, row.Total.Round(2).InexactFloat64())

		start, _ := excelize.CoordinatesToCellName(1, line)
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			return fmt.Errorf("error writing summary row: %w", err)
		}
		if len(values) > 1 {
			first, _ := excelize.CoordinatesToCellName(2, line)
			last, _ := excelize.CoordinatesToCellName(len(values), line)
			if err := f.SetCellStyle(sheetName, first, last, amountStyle); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 32); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// ReadSummaryXLSX parses a workbook written by WriteSummaryXLSX. An empty
// sheetName reads the first sheet.
func ReadSummaryXLSX(r io.Reader, sheetName string) (dashboard.SummaryTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return dashboard.SummaryTable{}, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return dashboard.SummaryTable{}, fmt.Errorf("error opening summary workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dashboard.SummaryTable{}, fmt.Errorf("summary workbook has no sheets")
		}
		sheetName = sheets[0]
	}
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return dashboard.SummaryTable{}, fmt.Errorf("error reading sheet %s: %w", sheetName, err)
	}
	return parseSummary(rows)
}
