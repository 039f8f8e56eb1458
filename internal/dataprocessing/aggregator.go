package dataprocessing

import (
	"revcompare/pkg/contracts/domain"
)

// SummedSeries sums column over each accepted table, one row per table.
// Tables without the column are skipped without error, since other tables of
// the batch may legitimately carry it. Non-numeric cells do not contribute.
// Row order follows the registry; use Chronological to order by period.
func SummedSeries(reg *Registry, column string) ([]domain.ComparisonRow, error) {
	if !reg.CanCompare() {
		return nil, ErrInsufficientSources
	}

	rows := make([]domain.ComparisonRow, 0, reg.Len())
	for _, e := range reg.entries {
		if !e.Table.HasColumn(column) {
			continue
		}
		rows = append(rows, domain.ComparisonRow{
			Period:     e.Period,
			Value:      SumColumn(e.Table, column),
			SourceName: e.SourceName,
		})
	}
	return rows, nil
}

// SumColumn adds up the numeric cells of one column.
func SumColumn(t domain.Table, column string) float64 {
	var total float64
	for _, row := range t.Rows {
		if cell, ok := row[column]; ok && cell.Numeric {
			total += cell.Number
		}
	}
	return total
}
