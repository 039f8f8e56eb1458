package domain

import "time"

// Entry is one accepted source of a registry: a table tagged with the period
// extracted from its name.
type Entry struct {
	SourceName string `json:"source_name"`
	Table      Table  `json:"-"`
	Period     Period `json:"period"`
}

// ComparisonRow is one summed metric observation for one source.
type ComparisonRow struct {
	Period     Period  `json:"period"`
	Value      float64 `json:"value"`
	SourceName string  `json:"source_name"`
}

// MonthPoint is a comparison row placed on a month axis.
type MonthPoint struct {
	Month       string  `json:"month"`
	MonthNumber int     `json:"month_number"`
	Period      Period  `json:"period"`
	Value       float64 `json:"value"`
	SourceName  string  `json:"source_name"`
}

// YearSeries holds the points of one calendar year, in calendar month order.
type YearSeries struct {
	Year   int          `json:"year"`
	Points []MonthPoint `json:"points"`
}

// YearOverYear groups comparison rows by year for month-by-month comparison.
// Months lists the month names present in the data in calendar order and is
// the category axis every series shares.
type YearOverYear struct {
	Months []string     `json:"months"`
	Series []YearSeries `json:"series"`
}

// RankedValue is one labelled value of a ranking.
type RankedValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RankResult is a table sorted on one metric along with its extremes. Top
// always holds the largest values and Bottom the smallest, whatever the sort
// direction of Table.
type RankResult struct {
	Column    string        `json:"column"`
	Ascending bool          `json:"ascending"`
	Table     Table         `json:"table"`
	Top       []RankedValue `json:"top"`
	Bottom    []RankedValue `json:"bottom"`
}

// SeriesResult bundles both views of one comparison request.
type SeriesResult struct {
	Column        string          `json:"column"`
	Chronological []ComparisonRow `json:"chronological"`
	YearOverYear  YearOverYear    `json:"year_over_year"`
}

// BatchSummary describes the batch currently loaded.
type BatchSummary struct {
	ID                  string      `json:"id"`
	Source              string      `json:"source"`
	LoadedAt            time.Time   `json:"loaded_at"`
	Tables              []string    `json:"tables"`
	Accepted            []Entry     `json:"accepted"`
	Rejected            []Rejection `json:"rejected"`
	Columns             []string    `json:"columns"`
	ComparisonAvailable bool        `json:"comparison_available"`
}
