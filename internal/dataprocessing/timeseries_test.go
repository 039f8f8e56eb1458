package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revcompare/pkg/contracts/domain"
)

func monthRow(period string, value float64) domain.ComparisonRow {
	return domain.ComparisonRow{
		Period:     domain.Period{Value: period, Granularity: domain.GranularityMonth},
		Value:      value,
		SourceName: "revenue_" + period + ".csv",
	}
}

func TestChronological(t *testing.T) {
	rows := []domain.ComparisonRow{
		monthRow("2025-02", 3),
		monthRow("2024-03", 2),
		monthRow("2024-01", 1),
	}

	ordered := Chronological(rows)

	assert.Equal(t, []string{"2024-01", "2024-03", "2025-02"}, periods(ordered))
	assert.Equal(t, "2025-02", rows[0].Period.Value, "input is not reordered")
}

func TestChronological_MixedGranularityAndDuplicates(t *testing.T) {
	day := domain.ComparisonRow{
		Period:     domain.Period{Value: "2024-01-15", Granularity: domain.GranularityDay},
		Value:      5,
		SourceName: "mid.csv",
	}
	first := monthRow("2024-02", 1)
	second := monthRow("2024-02", 2)
	second.SourceName = "second.csv"

	ordered := Chronological([]domain.ComparisonRow{first, day, monthRow("2024-01", 9), second})

	assert.Equal(t, []string{"2024-01", "2024-01-15", "2024-02", "2024-02"}, periods(ordered))
	assert.Equal(t, "revenue_2024-02.csv", ordered[2].SourceName)
	assert.Equal(t, "second.csv", ordered[3].SourceName)
}

func TestYearOverYear(t *testing.T) {
	yoy := YearOverYear([]domain.ComparisonRow{
		monthRow("2025-01", 150),
		monthRow("2024-03", 120),
		monthRow("2024-01", 100),
	})

	assert.Equal(t, []string{"January", "March"}, yoy.Months)
	require.Len(t, yoy.Series, 2)

	assert.Equal(t, 2024, yoy.Series[0].Year)
	require.Len(t, yoy.Series[0].Points, 2)
	assert.Equal(t, "January", yoy.Series[0].Points[0].Month)
	assert.Equal(t, 1, yoy.Series[0].Points[0].MonthNumber)
	assert.Equal(t, 100.0, yoy.Series[0].Points[0].Value)
	assert.Equal(t, "March", yoy.Series[0].Points[1].Month)

	assert.Equal(t, 2025, yoy.Series[1].Year)
	require.Len(t, yoy.Series[1].Points, 1)
	assert.Equal(t, "January", yoy.Series[1].Points[0].Month)
	assert.Equal(t, 150.0, yoy.Series[1].Points[0].Value)
}

func TestYearOverYear_SameMonthTwice(t *testing.T) {
	day := domain.ComparisonRow{
		Period:     domain.Period{Value: "2024-06-30", Granularity: domain.GranularityDay},
		Value:      2,
		SourceName: "late.csv",
	}

	yoy := YearOverYear([]domain.ComparisonRow{day, monthRow("2024-06", 1)})

	assert.Equal(t, []string{"June"}, yoy.Months)
	require.Len(t, yoy.Series, 1)
	require.Len(t, yoy.Series[0].Points, 2)
	assert.Equal(t, "2024-06", yoy.Series[0].Points[0].Period.Value)
	assert.Equal(t, "2024-06-30", yoy.Series[0].Points[1].Period.Value)
}

func TestYearOverYear_Empty(t *testing.T) {
	yoy := YearOverYear(nil)
	assert.Empty(t, yoy.Months)
	assert.Empty(t, yoy.Series)
}

func TestCompose(t *testing.T) {
	reg, _ := Load([]domain.Source{
		source("revenue_2025-02.csv", "Revenue", company{"Acme", 300}),
		source("revenue_2024-03.csv", "Revenue", company{"Acme", 200}),
		source("revenue_2024-01.csv", "Revenue", company{"Acme", 60}, company{"Globex", 40}),
	})

	result, err := Compose(reg, "Revenue")
	require.NoError(t, err)

	assert.Equal(t, "Revenue", result.Column)
	assert.Equal(t, []string{"2024-01", "2024-03", "2025-02"}, periods(result.Chronological))
	assert.Equal(t, []float64{100, 200, 300}, []float64{
		result.Chronological[0].Value,
		result.Chronological[1].Value,
		result.Chronological[2].Value,
	})
	assert.Equal(t, []string{"January", "February", "March"}, result.YearOverYear.Months)
	assert.Len(t, result.YearOverYear.Series, 2)
}

func TestCompose_InsufficientSources(t *testing.T) {
	reg, _ := Load([]domain.Source{source("revenue_2024-01.csv", "Revenue", company{"Acme", 1})})

	_, err := Compose(reg, "Revenue")
	assert.ErrorIs(t, err, ErrInsufficientSources)
}
