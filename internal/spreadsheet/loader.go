// Package spreadsheet reads uploaded workbooks and CSV files into raw rows.
package spreadsheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/models"
	"fjacquet/dre-report/internal/parsererror"
)

// Supported encodings for CSV input.
const (
	EncodingAuto        = "auto"
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// Options controls how uploads are read.
type Options struct {
	// Sheet is the worksheet to read; empty means the first one.
	Sheet string
	// Delimiter for CSV input; zero means detect from the header line.
	Delimiter rune
	// Encoding of CSV input: auto, utf-8 or windows-1252.
	Encoding string
}

// Loader reads uploads into RawRows.
type Loader struct {
	opts   Options
	logger logging.Logger
}

// NewLoader creates a Loader.
func NewLoader(opts Options, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if opts.Encoding == "" {
		opts.Encoding = EncodingAuto
	}
	return &Loader{opts: opts, logger: logger}
}

// Load opens path and reads it.
func (l *Loader) Load(ctx context.Context, path string) ([]models.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.WithError(err).Warn("Failed to close input file", logging.F(logging.FieldFile, path))
		}
	}()
	return l.Read(path, file)
}

// Read decodes r. The format is chosen from name's extension, falling back to
// content sniffing when there is none.
func (l *Loader) Read(name string, r io.Reader) ([]models.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading upload: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, parsererror.ErrEmptyUpload
	}

	var table [][]string
	switch format := detectFormat(name, data); format {
	case formatExcel:
		table, err = l.readWorkbook(name, data)
	case formatCSV:
		table, err = l.readCSV(name, data)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       name,
			ExpectedFormat: ".xlsx, .xlsm, .csv, .txt",
			Msg:            "unsupported file extension",
		}
	}
	if err != nil {
		return nil, err
	}

	rows, err := decodeTable(name, table)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, parsererror.ErrEmptyUpload
	}

	l.logger.Info("Read upload",
		logging.F(logging.FieldFile, name),
		logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatExcel
	formatCSV
)

// zipMagic starts every OOXML workbook.
var zipMagic = []byte("PK\x03\x04")

func detectFormat(name string, data []byte) fileFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return formatExcel
	case ".csv", ".txt", ".tsv":
		return formatCSV
	case "":
		if bytes.HasPrefix(data, zipMagic) {
			return formatExcel
		}
		return formatCSV
	}
	return formatUnknown
}
