package dataprocessing

import (
	"sort"

	"revcompare/pkg/contracts/domain"
)

// Chronological returns the rows ordered by period. Rows sharing a period keep
// their relative order. Missing periods are not filled in.
func Chronological(rows []domain.ComparisonRow) []domain.ComparisonRow {
	out := make([]domain.ComparisonRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}

// YearOverYear regroups rows into one series per calendar year so the same
// month of different years can be compared. Points within a year follow the
// calendar, and the month axis only lists months that occur in the data.
// Two rows for the same month and year both stay in the series.
func YearOverYear(rows []domain.ComparisonRow) domain.YearOverYear {
	ordered := Chronological(rows)

	byYear := make(map[int][]domain.MonthPoint)
	present := make(map[int]string)
	for _, row := range ordered {
		month := row.Period.Month()
		year := row.Period.Year()
		byYear[year] = append(byYear[year], domain.MonthPoint{
			Month:       month.String(),
			MonthNumber: int(month),
			Period:      row.Period,
			Value:       row.Value,
			SourceName:  row.SourceName,
		})
		present[int(month)] = month.String()
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	result := domain.YearOverYear{
		Months: make([]string, 0, len(present)),
		Series: make([]domain.YearSeries, 0, len(years)),
	}

	for _, year := range years {
		points := byYear[year]
		sort.SliceStable(points, func(i, j int) bool { return points[i].MonthNumber < points[j].MonthNumber })
		result.Series = append(result.Series, domain.YearSeries{Year: year, Points: points})
	}

	monthNumbers := make([]int, 0, len(present))
	for m := range present {
		monthNumbers = append(monthNumbers, m)
	}
	sort.Ints(monthNumbers)
	for _, m := range monthNumbers {
		result.Months = append(result.Months, present[m])
	}

	return result
}

// Compose builds both comparison views for column from a registry.
func Compose(reg *Registry, column string) (domain.SeriesResult, error) {
	rows, err := SummedSeries(reg, column)
	if err != nil {
		return domain.SeriesResult{}, err
	}
	return domain.SeriesResult{
		Column:        column,
		Chronological: Chronological(rows),
		YearOverYear:  YearOverYear(rows),
	}, nil
}
