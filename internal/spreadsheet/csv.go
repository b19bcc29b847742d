package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/parsererror"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV decodes a delimited text upload into a table.
func (l *Loader) readCSV(name string, data []byte) ([][]string, error) {
	text, err := l.decodeText(data)
	if err != nil {
		return nil, &parsererror.ParseError{Loader: "csv", Field: "encoding", Value: l.opts.Encoding, Err: err}
	}

	delim := l.opts.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(text)
	}
	l.logger.Debug("Reading delimited upload",
		logging.F(logging.FieldFile, name),
		logging.F(logging.FieldDelimiter, string(delim)))

	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	table, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.ParseError{Loader: "csv", Err: err}
	}
	return table, nil
}

// decodeText strips a UTF-8 BOM and converts Windows-1252 input to UTF-8.
// In auto mode, input that is not valid UTF-8 is taken as Windows-1252.
func (l *Loader) decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	switch strings.ToLower(l.opts.Encoding) {
	case EncodingUTF8, "utf8":
		return data, nil
	case EncodingWindows1252, "cp1252", "latin1", "iso-8859-1":
		return decodeWindows1252(data)
	case EncodingAuto, "":
		if utf8.Valid(data) {
			return data, nil
		}
		return decodeWindows1252(data)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", l.opts.Encoding)
	}
}

func decodeWindows1252(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("windows-1252 decode: %w", err)
	}
	return out, nil
}

// DetectDelimiter picks the separator that occurs most often in the first
// non-empty line: ';', ',' or tab. Ties go to ';', the Brazilian default.
func DetectDelimiter(data []byte) rune {
	line := data
	for len(line) > 0 {
		i := bytes.IndexByte(line, '\n')
		var first []byte
		if i < 0 {
			first, line = line, nil
		} else {
			first, line = line[:i], line[i+1:]
		}
		if len(bytes.TrimSpace(first)) > 0 {
			line = first
			break
		}
	}

	best, bestCount := ';', bytes.Count(line, []byte{';'})
	for _, candidate := range []rune{',', '\t'} {
		if n := bytes.Count(line, []byte(string(candidate))); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}
