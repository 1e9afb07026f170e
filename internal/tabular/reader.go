// Package tabular turns uploaded spreadsheet bytes into header-keyed rows.
// The file extension decides the codec; callers never see format details.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for extensions outside the supported set
// (.csv and .xlsx). Legacy binary .xls is not supported.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseError wraps a decode failure of the declared format.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s file: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Row maps a normalized column name to the raw cell text. Cells missing from
// a short row are simply absent from the map.
type Row map[string]string

// Table is the parsed file: the normalized header plus the data rows in file
// order.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the header contains the given normalized name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Supported reports whether the filename's extension names a format Read
// can decode.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// Read parses the byte stream according to the filename's extension. Column
// names are lowercased and trimmed before rows are keyed by them. A file with
// a header but no data rows yields an empty Rows slice and no error.
func Read(r io.Reader, filename string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(r)
	case ".xlsx":
		return readXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func readCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be ragged; the normalizer decides

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Format: "csv", Err: err}
	}

	return buildTable(records), nil
}

func readXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Format: "xlsx", Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &ParseError{Format: "xlsx", Err: errors.New("workbook has no sheets")}
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Format: "xlsx", Err: err}
	}

	return buildTable(records), nil
}

func buildTable(records [][]string) *Table {
	if len(records) == 0 {
		return &Table{}
	}

	columns := make([]string, len(records[0]))
	for i, c := range records[0] {
		columns[i] = strings.ToLower(strings.TrimSpace(c))
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(columns))
		for i, cell := range record {
			if i >= len(columns) {
				break
			}
			row[columns[i]] = cell
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}
}
