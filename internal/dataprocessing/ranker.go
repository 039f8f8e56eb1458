package dataprocessing

import (
	"fmt"
	"sort"

	"revcompare/pkg/contracts/domain"
)

// DefaultTopN is the number of rows shown on each side of a ranking.
const DefaultTopN = 3

// Rank returns the table reduced to CompanyName and column, sorted on column.
// The sort is stable, so ties keep their original row order and ranking an
// already ranked table changes nothing. Rows without a numeric value sort
// last in both directions.
func Rank(t domain.Table, column string, ascending bool) (domain.Table, error) {
	if !t.HasColumn(column) {
		return domain.Table{}, fmt.Errorf("%w: %q in %s", ErrColumnNotFound, column, t.Name)
	}

	ranked := t.Project(domain.ColumnCompanyName, column)
	sort.SliceStable(ranked.Rows, func(i, j int) bool {
		a, b := ranked.Rows[i][column], ranked.Rows[j][column]
		switch {
		case !a.Numeric:
			return false
		case !b.Numeric:
			return true
		case ascending:
			return a.Number < b.Number
		default:
			return a.Number > b.Number
		}
	})
	return ranked, nil
}

// TopN returns the n largest values of column, largest first. The result does
// not depend on how the table is sorted. Tables with fewer than n numeric rows
// return all of them.
func TopN(t domain.Table, column string, n int) []domain.RankedValue {
	values := rankedValues(t, column)
	sort.SliceStable(values, func(i, j int) bool { return values[i].Value > values[j].Value })
	return head(values, n)
}

// BottomN returns the n smallest values of column, smallest first.
func BottomN(t domain.Table, column string, n int) []domain.RankedValue {
	values := rankedValues(t, column)
	sort.SliceStable(values, func(i, j int) bool { return values[i].Value < values[j].Value })
	return head(values, n)
}

// RankTable ranks t and attaches the top and bottom n values.
func RankTable(t domain.Table, column string, ascending bool, n int) (domain.RankResult, error) {
	ranked, err := Rank(t, column, ascending)
	if err != nil {
		return domain.RankResult{}, err
	}
	if n <= 0 {
		n = DefaultTopN
	}
	return domain.RankResult{
		Column:    column,
		Ascending: ascending,
		Table:     ranked,
		Top:       TopN(ranked, column, n),
		Bottom:    BottomN(ranked, column, n),
	}, nil
}

// rankedValues collects the numeric values of column in row order
func rankedValues(t domain.Table, column string) []domain.RankedValue {
	values := make([]domain.RankedValue, 0, len(t.Rows))
	for _, row := range t.Rows {
		cell, ok := row[column]
		if !ok || !cell.Numeric {
			continue
		}
		values = append(values, domain.RankedValue{Label: row.Label(), Value: cell.Number})
	}
	return values
}

func head(values []domain.RankedValue, n int) []domain.RankedValue {
	if n < 0 {
		n = 0
	}
	if len(values) > n {
		values = values[:n]
	}
	return values
}
