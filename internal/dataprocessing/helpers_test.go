package dataprocessing

import (
	"revcompare/pkg/contracts/domain"
)

// company is a labelled metric value used to build test tables
type company struct {
	name  string
	value float64
}

// revenueTable builds a CompanyName/CompanyCode/column table
func revenueTable(name, column string, companies ...company) domain.Table {
	table := domain.Table{
		Name:    name,
		Columns: []string{domain.ColumnCompanyName, domain.ColumnCompanyCode, column},
	}
	for _, c := range companies {
		table.Rows = append(table.Rows, domain.Row{
			domain.ColumnCompanyName: {Raw: c.name},
			domain.ColumnCompanyCode: {Raw: c.name[:1]},
			column:                   domain.NumberCell(c.value),
		})
	}
	return table
}

func source(name, column string, companies ...company) domain.Source {
	return domain.Source{Name: name, Table: revenueTable(name, column, companies...)}
}

func labels(values []domain.RankedValue) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Label
	}
	return out
}

func periods(rows []domain.ComparisonRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Period.Value
	}
	return out
}
