package exporter

import (
	"fmt"
	"strings"

	"revcompare/pkg/contracts/domain"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ExportBaseName is the file name used for downloads, without extension.
const ExportBaseName = "revenue_export"

// ParseFormat resolves a format name. An empty name selects XLSX.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", name)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName returns the download file name for the format.
func (f Format) FileName() string {
	return ExportBaseName + "." + string(f)
}

// Sheet is a header row plus data rows, with no index column.
type Sheet struct {
	Headers []string
	Rows    [][]domain.Cell
}

// Records returns the rows as display strings.
func (s Sheet) Records() [][]string {
	records := make([][]string, len(s.Rows))
	for i, row := range s.Rows {
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = cell.String()
		}
		records[i] = record
	}
	return records
}

// TableSheet converts a table, keeping its column order.
func TableSheet(t domain.Table) Sheet {
	sheet := Sheet{
		Headers: append([]string(nil), t.Columns...),
		Rows:    make([][]domain.Cell, len(t.Rows)),
	}
	for i, row := range t.Rows {
		cells := make([]domain.Cell, len(t.Columns))
		for j, c := range t.Columns {
			cells[j] = row[c]
		}
		sheet.Rows[i] = cells
	}
	return sheet
}

// RankSheet exports the ranked CompanyName and metric view.
func RankSheet(result domain.RankResult) Sheet {
	return TableSheet(result.Table)
}

// SeriesSheet exports the chronological comparison, one row per source.
func SeriesSheet(result domain.SeriesResult) Sheet {
	sheet := Sheet{
		Headers: []string{"Period", "Year", "Month", result.Column, "Source"},
		Rows:    make([][]domain.Cell, 0, len(result.Chronological)),
	}
	for _, row := range result.Chronological {
		sheet.Rows = append(sheet.Rows, []domain.Cell{
			{Raw: row.Period.Value},
			domain.NumberCell(float64(row.Period.Year())),
			{Raw: row.Period.Month().String()},
			domain.NumberCell(row.Value),
			{Raw: row.SourceName},
		})
	}
	return sheet
}
