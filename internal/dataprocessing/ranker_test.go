package dataprocessing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revcompare/pkg/contracts/domain"
)

func fiveCompanies() domain.Table {
	return revenueTable("revenue.csv", "Revenue",
		company{"A", 10}, company{"B", 50}, company{"C", 30}, company{"D", 5}, company{"E", 90})
}

func rankedLabels(t domain.Table) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Label()
	}
	return out
}

func TestRank(t *testing.T) {
	tests := []struct {
		name      string
		ascending bool
		want      []string
	}{
		{name: "descending", ascending: false, want: []string{"E", "B", "C", "A", "D"}},
		{name: "ascending", ascending: true, want: []string{"D", "A", "C", "B", "E"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked, err := Rank(fiveCompanies(), "Revenue", tt.ascending)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rankedLabels(ranked))
			assert.Equal(t, []string{"CompanyName", "Revenue"}, ranked.Columns)
		})
	}
}

func TestRank_Idempotent(t *testing.T) {
	for _, ascending := range []bool{true, false} {
		once, err := Rank(fiveCompanies(), "Revenue", ascending)
		require.NoError(t, err)
		twice, err := Rank(once, "Revenue", ascending)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestRank_StableTiesAndMissingValues(t *testing.T) {
	table := domain.Table{
		Name:    "ties.csv",
		Columns: []string{"CompanyName", "Revenue"},
		Rows: []domain.Row{
			{"CompanyName": {Raw: "First"}, "Revenue": domain.NumberCell(7)},
			{"CompanyName": {Raw: "Blank"}, "Revenue": domain.NewCell("")},
			{"CompanyName": {Raw: "Second"}, "Revenue": domain.NumberCell(7)},
			{"CompanyName": {Raw: "Low"}, "Revenue": domain.NumberCell(1)},
		},
	}

	desc, err := Rank(table, "Revenue", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second", "Low", "Blank"}, rankedLabels(desc))

	asc, err := Rank(table, "Revenue", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Low", "First", "Second", "Blank"}, rankedLabels(asc))
}

func TestRank_MissingColumn(t *testing.T) {
	_, err := Rank(fiveCompanies(), "Rooms", true)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestTopBottom_IndependentOfDirection(t *testing.T) {
	for _, ascending := range []bool{true, false} {
		ranked, err := Rank(fiveCompanies(), "Revenue", ascending)
		require.NoError(t, err)

		top := TopN(ranked, "Revenue", 3)
		bottom := BottomN(ranked, "Revenue", 3)

		assert.Equal(t, []domain.RankedValue{{Label: "E", Value: 90}, {Label: "B", Value: 50}, {Label: "C", Value: 30}}, top)
		assert.Equal(t, []domain.RankedValue{{Label: "D", Value: 5}, {Label: "A", Value: 10}, {Label: "C", Value: 30}}, bottom)
	}
}

func TestTopBottom_FewerRowsThanN(t *testing.T) {
	table := revenueTable("small.csv", "Revenue", company{"A", 10}, company{"B", 20})

	assert.Equal(t, []string{"B", "A"}, labels(TopN(table, "Revenue", 3)))
	assert.Equal(t, []string{"A", "B"}, labels(BottomN(table, "Revenue", 3)))
	assert.Empty(t, TopN(domain.Table{}, "Revenue", 3))
	assert.Empty(t, BottomN(table, "Revenue", 0))
}

func TestRankTable(t *testing.T) {
	result, err := RankTable(fiveCompanies(), "Revenue", true, 0)
	require.NoError(t, err)

	assert.Equal(t, "Revenue", result.Column)
	assert.True(t, result.Ascending)
	assert.Equal(t, []string{"D", "A", "C", "B", "E"}, rankedLabels(result.Table))
	assert.Equal(t, []string{"E", "B", "C"}, labels(result.Top))
	assert.Equal(t, []string{"D", "A", "C"}, labels(result.Bottom))

	_, err = RankTable(fiveCompanies(), "Nope", true, 3)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func nonFiniteTable() domain.Table {
	raw := []struct{ name, value string }{
		{"A", "100"}, {"B", "NaN"}, {"C", "50"}, {"D", "inf"}, {"E", "75"}, {"F", "-Infinity"},
	}
	t := domain.Table{Name: "revenue_2024-01.csv", Columns: []string{domain.ColumnCompanyName, "Revenue"}}
	for _, r := range raw {
		t.Rows = append(t.Rows, domain.Row{
			domain.ColumnCompanyName: {Raw: r.name},
			"Revenue":                domain.NewCell(r.value),
		})
	}
	return t
}

func TestRankTable_NonFiniteValuesSortLast(t *testing.T) {
	tests := []struct {
		name       string
		ascending  bool
		wantOrder  []string
		wantTop    []string
		wantBottom []string
	}{
		{
			name:       "descending",
			wantOrder:  []string{"A", "E", "C", "B", "D", "F"},
			wantTop:    []string{"A", "E"},
			wantBottom: []string{"C", "E"},
		},
		{
			name:       "ascending",
			ascending:  true,
			wantOrder:  []string{"C", "E", "A", "B", "D", "F"},
			wantTop:    []string{"A", "E"},
			wantBottom: []string{"C", "E"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RankTable(nonFiniteTable(), "Revenue", tt.ascending, 2)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOrder, rankedLabels(result.Table))
			assert.Equal(t, tt.wantTop, labels(result.Top))
			assert.Equal(t, tt.wantBottom, labels(result.Bottom))

			_, err = json.Marshal(result)
			assert.NoError(t, err)
		})
	}
}
