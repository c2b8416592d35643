// Package importer turns spreadsheet uploads into staged draft records and
// commits them to the backend one row at a time.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrEmptyFile is returned when the sheet has no data rows
	ErrEmptyFile = errors.New("empty file")
	// ErrNoValidRecords is returned when rows exist but none has every required field
	ErrNoValidRecords = errors.New("no valid records in file")
)

// maxXLSRows bounds how many rows are read from a legacy workbook
const maxXLSRows = 100000

// Row is one data row keyed by normalized header
type Row map[string]string

// Get returns the first non-empty value among the given header keys
func (r Row) Get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[normalizeHeader(k)]); v != "" {
			return v
		}
	}
	return ""
}

// ReadRows reads the first sheet of an .xlsx, .xls or .csv file. The first
// row is the header; blank rows are skipped.
func ReadRows(r io.Reader, filename string) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	var cells [][]string
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xls":
		cells, err = readXLS(data)
	case ".csv":
		cells, err = readCSV(data)
	case ".xlsx", ".xlsm":
		cells, err = readXLSX(data)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv, .xlsx or .xls)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return keyRows(cells)
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	return file.GetRows(sheetName)
}

func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}
	return workbook.ReadAllCells(maxXLSRows), nil
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func keyRows(cells [][]string) ([]Row, error) {
	if len(cells) < 2 {
		return nil, ErrEmptyFile
	}
	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := Row{}
		blank := true
		for i, h := range headers {
			if h == "" {
				continue
			}
			v := cellValue(line, i)
			if v != "" {
				blank = false
			}
			row[h] = v
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

// normalizeHeader folds "Due Date", "due_date" and "dueDate" to "duedate"
func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
