package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"revcompare/pkg/contracts/domain"
)

func newWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderList(w io.Writer, header string, values []string) {
	if len(values) == 0 {
		_, _ = fmt.Fprintln(w, "(none)")
		return
	}
	t := newWriter(w)
	t.AppendHeader(table.Row{header})
	for _, v := range values {
		t.AppendRow(table.Row{v})
	}
	t.Render()
}

func renderTable(w io.Writer, tbl domain.Table) {
	if len(tbl.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := newWriter(w)
	t.SetTitle(tbl.Name)

	header := make(table.Row, len(tbl.Columns))
	configs := make([]table.ColumnConfig, 0, len(tbl.Columns))
	for i, c := range tbl.Columns {
		header[i] = c
		if !domain.IsIdentifyingColumn(c) {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, row := range tbl.Rows {
		r := make(table.Row, len(tbl.Columns))
		for i, c := range tbl.Columns {
			r[i] = row[c].String()
		}
		t.AppendRow(r)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(tbl.Rows))
}

func renderSummary(w io.Writer, summary domain.BatchSummary) {
	_, _ = fmt.Fprintf(w, "Batch %s (%s), %d tables\n", summary.ID, summary.Source, len(summary.Tables))

	t := newWriter(w)
	t.SetTitle("Accepted")
	t.AppendHeader(table.Row{"Source", "Period", "Granularity"})
	for _, e := range summary.Accepted {
		t.AppendRow(table.Row{e.SourceName, e.Period.String(), e.Period.Granularity.String()})
	}
	t.Render()

	if len(summary.Rejected) > 0 {
		r := newWriter(w)
		r.SetTitle("Rejected")
		r.AppendHeader(table.Row{"Source", "Reason"})
		for _, rej := range summary.Rejected {
			r.AppendRow(table.Row{rej.SourceName, rej.Reason})
		}
		r.Render()
	}

	if summary.ComparisonAvailable {
		_, _ = fmt.Fprintln(w, "Comparison available")
	} else {
		_, _ = fmt.Fprintln(w, "Comparison unavailable: at least two dated reports are required")
	}
}

func renderRank(w io.Writer, result domain.RankResult) {
	renderTable(w, result.Table)
	renderExtremes(w, "Top", result.Column, result.Top)
	renderExtremes(w, "Bottom", result.Column, result.Bottom)
}

func renderExtremes(w io.Writer, title, column string, values []domain.RankedValue) {
	t := newWriter(w)
	t.SetTitle(fmt.Sprintf("%s %d by %s", title, len(values), column))
	t.AppendHeader(table.Row{"#", domain.ColumnCompanyName, column})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	for i, v := range values {
		t.AppendRow(table.Row{i + 1, v.Label, formatNumber(v.Value)})
	}
	t.Render()
}

func renderSeries(w io.Writer, result domain.SeriesResult) {
	chrono := newWriter(w)
	chrono.SetTitle(result.Column + " over time")
	chrono.AppendHeader(table.Row{"Period", result.Column, "Source"})
	chrono.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	for _, row := range result.Chronological {
		chrono.AppendRow(table.Row{row.Period.String(), formatNumber(row.Value), row.SourceName})
	}
	chrono.Render()

	yoy := result.YearOverYear
	if len(yoy.Series) == 0 {
		return
	}

	// One row per month, one column per year. A month with several reports
	// in the same year lists each value.
	pivot := newWriter(w)
	pivot.SetTitle(result.Column + " year over year")
	header := table.Row{"Month"}
	configs := make([]table.ColumnConfig, 0, len(yoy.Series))
	for i, s := range yoy.Series {
		header = append(header, strconv.Itoa(s.Year))
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	pivot.AppendHeader(header)
	pivot.SetColumnConfigs(configs)

	for _, month := range yoy.Months {
		row := table.Row{month}
		for _, s := range yoy.Series {
			row = append(row, monthValues(s.Points, month))
		}
		pivot.AppendRow(row)
	}
	pivot.Render()
}

func monthValues(points []domain.MonthPoint, month string) string {
	out := ""
	for _, p := range points {
		if p.Month != month {
			continue
		}
		if out != "" {
			out += " / "
		}
		out += formatNumber(p.Value)
	}
	return out
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
