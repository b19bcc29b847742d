package spreadsheet

import (
	"io"
	"strings"

	"fjacquet/dre-report/internal/models"
	"fjacquet/dre-report/internal/parsererror"
	"fjacquet/dre-report/internal/textutils"

	"github.com/gocarina/gocsv"
)

// canonicalColumns maps a folded header to the canonical column name.
var canonicalColumns = func() map[string]string {
	m := make(map[string]string, len(models.RequiredColumns))
	for _, c := range models.RequiredColumns {
		m[textutils.HeaderKey(c)] = c
	}
	return m
}()

// decodeTable turns a header row plus data rows into RawRows. The first
// non-blank row is the header; columns are matched ignoring case, accents
// and surrounding space, and extra columns are ignored.
func decodeTable(name string, table [][]string) ([]models.RawRow, error) {
	start := 0
	for start < len(table) && isBlankLine(table[start]) {
		start++
	}
	if start == len(table) {
		return nil, parsererror.ErrEmptyUpload
	}

	index := make(map[string]int, len(models.RequiredColumns))
	for i, h := range table[start] {
		if canonical, ok := canonicalColumns[textutils.HeaderKey(h)]; ok {
			if _, dup := index[canonical]; !dup {
				index[canonical] = i
			}
		}
	}

	var missing []string
	for _, c := range models.RequiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &parsererror.ValidationError{
			FilePath: name,
			Reason:   "missing required columns",
			Missing:  missing,
		}
	}

	canonical := [][]string{models.RequiredColumns}
	for _, line := range table[start+1:] {
		if isBlankLine(line) {
			continue
		}
		record := make([]string, len(models.RequiredColumns))
		for j, c := range models.RequiredColumns {
			if i := index[c]; i < len(line) {
				record[j] = line[i]
			}
		}
		canonical = append(canonical, record)
	}

	var rows []models.RawRow
	if len(canonical) == 1 {
		return rows, nil
	}
	if err := gocsv.UnmarshalCSV(&tableReader{records: canonical}, &rows); err != nil {
		return nil, &parsererror.ParseError{Loader: "table", Err: err}
	}
	return rows, nil
}

func isBlankLine(line []string) bool {
	for _, v := range line {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// tableReader feeds an in-memory table to gocsv.
type tableReader struct {
	records [][]string
	pos     int
}

func (t *tableReader) Read() ([]string, error) {
	if t.pos >= len(t.records) {
		return nil, io.EOF
	}
	rec := t.records[t.pos]
	t.pos++
	return rec, nil
}

func (t *tableReader) ReadAll() ([][]string, error) {
	rest := t.records[t.pos:]
	t.pos = len(t.records)
	return rest, nil
}
