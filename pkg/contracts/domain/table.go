package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Identifying columns carried by every revenue report. They label rows and are
// never offered as metric columns.
const (
	ColumnCompanyName = "CompanyName"
	ColumnCompanyCode = "CompanyCode"
)

// IsIdentifyingColumn reports whether name is one of the label columns.
func IsIdentifyingColumn(name string) bool {
	return name == ColumnCompanyName || name == ColumnCompanyCode
}

// Cell is a single value of a report row. Raw always holds the source text;
// Number is only meaningful when Numeric is true.
type Cell struct {
	Raw     string
	Number  float64
	Numeric bool
}

// NewCell builds a cell from raw source text. Thousands separators are
// stripped before numeric parsing, so "1,250.50" is numeric. NaN and
// infinities are treated as missing values.
func NewCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Raw: raw}
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Cell{Raw: raw, Number: f, Numeric: true}
	}
	return Cell{Raw: raw}
}

// NumberCell builds a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{Raw: strconv.FormatFloat(f, 'f', -1, 64), Number: f, Numeric: true}
}

// String returns the cell as display text.
func (c Cell) String() string {
	if c.Numeric {
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	return c.Raw
}

// MarshalJSON renders numeric cells as JSON numbers and everything else as strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Numeric {
		return json.Marshal(c.Number)
	}
	return json.Marshal(c.Raw)
}

// Row maps a column name to its cell.
type Row map[string]Cell

// Label returns the CompanyName of the row, or an empty string.
func (r Row) Label() string {
	return strings.TrimSpace(r[ColumnCompanyName].Raw)
}

// Table is an ordered collection of rows read from one source. Columns keeps the
// header order of the source so exports preserve it.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether the table header contains column.
func (t Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Project returns a copy of the table restricted to the given columns, in the
// given order. Columns the table does not have are dropped.
func (t Table) Project(columns ...string) Table {
	kept := make([]string, 0, len(columns))
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if t.HasColumn(c) && !seen[c] {
			seen[c] = true
			kept = append(kept, c)
		}
	}

	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		projected := make(Row, len(kept))
		for _, c := range kept {
			if cell, ok := row[c]; ok {
				projected[c] = cell
			}
		}
		rows[i] = projected
	}

	return Table{Name: t.Name, Columns: kept, Rows: rows}
}

// Records converts the table into string records in column order, the shape
// CSV and spreadsheet writers expect. No index column is added.
func (t Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			record[i] = row[c].String()
		}
		records = append(records, record)
	}
	return records
}

// Source is one fully materialized input: a name (usually the file name) and
// the table parsed from it.
type Source struct {
	Name  string
	Table Table
}

// Rejection records why a source was left out of a batch.
type Rejection struct {
	SourceName string `json:"source_name"`
	Reason     string `json:"reason"`
}
