package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"revcompare/pkg/contracts/domain"
)

// utf8BOM is written by spreadsheet tools and by our own CSV exports
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFile reads a CSV or XLSX revenue report from disk. The file name is
// used as the table name.
func ParseFile(filePath string) (domain.Table, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Parse(filepath.Base(filePath), f)
}

// Parse reads a report, choosing the format from the extension of name.
func Parse(name string, r io.Reader) (domain.Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ParseCSV(name, r)
	case ".xlsx", ".xlsm":
		return ParseExcel(name, r)
	default:
		return domain.Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// IsSupported reports whether name has an extension Parse understands.
func IsSupported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// ParseCSV reads a comma separated report whose first record is the header.
func ParseCSV(name string, r io.Reader) (domain.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to parse CSV %s: %w", name, err)
	}
	if len(records) == 0 {
		return domain.Table{}, fmt.Errorf("%w: %s", ErrNoHeader, name)
	}

	return buildTable(name, records[0], records[1:])
}

// ParseExcel reads an XLSX report. The first sheet whose rows contain a
// CompanyName header is used; the header row does not have to be the first
// row, since exported reports often carry a title above it.
func ParseExcel(name string, r io.Reader) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to open workbook %s: %w", name, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for i, row := range rows {
			if headerIndex(row, domain.ColumnCompanyName) < 0 {
				continue
			}
			slog.Debug("Found report header",
				slog.String("source", name),
				slog.String("sheet", sheet),
				slog.Int("row", i))
			return buildTable(name, row, rows[i+1:])
		}
	}

	return domain.Table{}, fmt.Errorf("%w: %s", ErrMissingCompanyName, name)
}

// buildTable turns a header and its records into a table. Fully empty records
// are dropped and short records are padded with empty cells. Blank header
// positions are left out of the table, and a repeated header name keeps only
// its first column.
func buildTable(name string, header []string, records [][]string) (domain.Table, error) {
	type field struct {
		column string
		index  int
	}

	var fields []field
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		column := strings.TrimSpace(h)
		if column == "" || seen[column] {
			continue
		}
		seen[column] = true
		fields = append(fields, field{column: column, index: i})
	}
	if len(fields) == 0 {
		return domain.Table{}, fmt.Errorf("%w: %s", ErrNoHeader, name)
	}
	if !seen[domain.ColumnCompanyName] {
		return domain.Table{}, fmt.Errorf("%w: %s", ErrMissingCompanyName, name)
	}

	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.column
	}

	table := domain.Table{Name: name, Columns: columns, Rows: make([]domain.Row, 0, len(records))}
	for _, record := range records {
		if isBlank(record) {
			continue
		}
		row := make(domain.Row, len(fields))
		for _, f := range fields {
			raw := ""
			if f.index < len(record) {
				raw = record[f.index]
			}
			if domain.IsIdentifyingColumn(f.column) {
				row[f.column] = domain.Cell{Raw: strings.TrimSpace(raw)}
				continue
			}
			row[f.column] = domain.NewCell(raw)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func headerIndex(header []string, column string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			return i
		}
	}
	return -1
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
