package spreadsheet

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/models"
	"fjacquet/dre-report/internal/parsererror"
	"fjacquet/dre-report/internal/textutils"

	"github.com/xuri/excelize/v2"
)

// maxExcelSerial is 31/12/9999.
const maxExcelSerial = 2958465

// readWorkbook returns the raw cell values of the configured sheet. Numeric
// serial dates in the date column become dd/mm/yyyy text.
func (l *Loader) readWorkbook(name string, data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       name,
			ExpectedFormat: "Office Open XML workbook",
			Msg:            err.Error(),
		}
	}
	defer func() {
		if err := f.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close workbook", logging.F(logging.FieldFile, name))
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, parsererror.ErrEmptyUpload
	}
	sheet := sheets[0]
	if l.opts.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if textutils.EqualFold(s, l.opts.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, &parsererror.ValidationError{
				FilePath: name,
				Reason:   fmt.Sprintf("sheet %q not found", l.opts.Sheet),
			}
		}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &parsererror.ParseError{Loader: "xlsx", Field: "sheet", Value: sheet, Err: err}
	}
	l.logger.Debug("Read worksheet",
		logging.F(logging.FieldSheet, sheet),
		logging.F(logging.FieldCount, len(rows)))

	convertSerialDates(rows)
	return rows, nil
}

// convertSerialDates rewrites numeric cells of the date column, found in the
// first non-blank row, as dd/mm/yyyy.
func convertSerialDates(rows [][]string) {
	header := 0
	for header < len(rows) && isBlankLine(rows[header]) {
		header++
	}
	if header == len(rows) {
		return
	}
	col := -1
	dateKey := textutils.HeaderKey(models.ColumnDate)
	for i, h := range rows[header] {
		if textutils.HeaderKey(h) == dateKey {
			col = i
			break
		}
	}
	if col < 0 {
		return
	}
	for _, row := range rows[header+1:] {
		if col >= len(row) {
			continue
		}
		if text, ok := serialToDate(row[col]); ok {
			row[col] = text
		}
	}
}

func serialToDate(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", false
	}
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil || serial < 1 || serial > maxExcelSerial {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return t.Format(models.DisplayDateLayout), true
}
