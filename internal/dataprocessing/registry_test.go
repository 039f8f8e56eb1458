package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revcompare/pkg/contracts/domain"
)

func TestLoad(t *testing.T) {
	sources := []domain.Source{
		source("revenue_2024-02.csv", "Revenue", company{"Acme", 10}),
		source("Company Revenue Report Demo.csv", "Revenue", company{"Acme", 20}),
		source("revenue_2024-01-15.csv", "Revenue", company{"Acme", 30}),
	}

	reg, rejected := Load(sources)

	assert.Equal(t, []string{"Company Revenue Report Demo.csv"}, rejected)
	require.Equal(t, 2, reg.Len())

	entries := reg.Entries()
	assert.Equal(t, "revenue_2024-02.csv", entries[0].SourceName)
	assert.Equal(t, "2024-02", entries[0].Period.Value)
	assert.Equal(t, "revenue_2024-01-15.csv", entries[1].SourceName)
	assert.Equal(t, domain.GranularityDay, entries[1].Period.Granularity)
	assert.True(t, reg.CanCompare())
}

func TestLoad_ReplacesWholesale(t *testing.T) {
	first, _ := Load([]domain.Source{
		source("a_2024-01.csv", "Revenue", company{"Acme", 1}),
		source("b_2024-02.csv", "Revenue", company{"Acme", 2}),
	})
	second, _ := Load([]domain.Source{
		source("c_2025-01.csv", "Rooms", company{"Acme", 3}),
	})

	assert.Equal(t, 2, first.Len(), "earlier registry is untouched")
	assert.Equal(t, 1, second.Len())
	assert.Equal(t, []string{"Rooms"}, second.Columns())
	assert.False(t, second.CanCompare())
}

func TestRegistry_EntriesIsACopy(t *testing.T) {
	reg, _ := Load([]domain.Source{source("a_2024-01.csv", "Revenue", company{"Acme", 1})})

	entries := reg.Entries()
	entries[0].SourceName = "changed"

	assert.Equal(t, "a_2024-01.csv", reg.Entries()[0].SourceName)
}

func TestRegistry_Columns(t *testing.T) {
	tests := []struct {
		name    string
		sources []domain.Source
		want    []string
	}{
		{
			name: "union in first seen order without identifying columns",
			sources: []domain.Source{
				source("a_2024-01.csv", "Revenue", company{"Acme", 1}),
				source("b_2024-02.csv", "Rooms", company{"Acme", 1}),
				source("c_2024-03.csv", "Revenue", company{"Acme", 1}),
			},
			want: []string{"Revenue", "Rooms"},
		},
		{
			name: "rejected tables do not contribute",
			sources: []domain.Source{
				source("a_2024-01.csv", "Revenue", company{"Acme", 1}),
				source("undated.csv", "Rooms", company{"Acme", 1}),
			},
			want: []string{"Revenue"},
		},
		{
			name: "only identifying columns",
			sources: []domain.Source{{
				Name:  "a_2024-01.csv",
				Table: domain.Table{Columns: []string{"CompanyName", "CompanyCode"}},
			}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, _ := Load(tt.sources)
			assert.Equal(t, tt.want, reg.Columns())
		})
	}
}

func TestRegistry_NilAndEmpty(t *testing.T) {
	var reg *Registry
	assert.Equal(t, 0, reg.Len())
	assert.False(t, reg.CanCompare())
	assert.Nil(t, reg.Columns())
	assert.Nil(t, reg.Entries())

	empty, rejected := Load(nil)
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Columns())
	assert.Empty(t, rejected)
}

func TestRegistry_ColumnsFromInteriorBlankHeader(t *testing.T) {
	var sources []domain.Source
	for _, name := range []string{"rev_2024-01.csv", "rev_2024-02.csv"} {
		table, err := ParseCSV(name, strings.NewReader("CompanyName,,Revenue\nAcme,,1\n"))
		require.NoError(t, err)
		sources = append(sources, domain.Source{Name: name, Table: table})
	}

	reg, _ := Load(sources)
	assert.Equal(t, []string{"Revenue"}, reg.Columns())
}
