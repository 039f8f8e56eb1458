package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apierrors "revcompare/internal/errors"
	"revcompare/internal/exporter"
	"revcompare/internal/services"
	"revcompare/pkg/contracts"
)

// Sort orders accepted by --order
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show which reports were accepted for comparison",
		Example: `  revcompare summary --dir ./reports
  revcompare summary --demo -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			summary, err := s.service.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if s.output == OutputJSON {
				return renderJSON(cmd.OutOrStdout(), summary)
			}
			renderSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the loaded report tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			names, err := s.service.Tables(cmd.Context())
			if err != nil {
				return err
			}
			if s.output == OutputJSON {
				return renderJSON(cmd.OutOrStdout(), names)
			}
			renderList(cmd.OutOrStdout(), "Table", names)
			return nil
		},
	}
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "List the metric columns available for ranking and comparison",
		Long: `List metric columns. Without --table the columns of every accepted
report are listed in first-seen order; with --table only that report's.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			columns, err := s.service.Columns(cmd.Context(), table)
			if err != nil {
				return err
			}
			if s.output == OutputJSON {
				return renderJSON(cmd.OutOrStdout(), columns)
			}
			renderList(cmd.OutOrStdout(), "Column", columns)
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "Restrict to one report table")
	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var columns []string

	cmd := &cobra.Command{
		Use:     "show <table>",
		Short:   "Print one report table",
		Example: `  revcompare show revenue_2024-01.csv --columns CompanyName,Revenue`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			t, err := s.service.Table(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(columns) > 0 {
				t = t.Project(columns...)
			}
			if s.output == OutputJSON {
				return renderJSON(cmd.OutOrStdout(), t)
			}
			renderTable(cmd.OutOrStdout(), t)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to show, in order")
	return cmd
}

// NewRankCommand creates the rank command.
func NewRankCommand() *cobra.Command {
	var (
		table  string
		column string
		order  string
		top    int
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank companies of one report on a metric",
		Example: `  revcompare rank --table revenue_2024-01.csv --column Revenue
  revcompare rank --table revenue_2024-01.csv --column NetIncome --order asc --top 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			ascending, err := parseOrder(order)
			if err != nil {
				return err
			}
			result, err := s.service.Rank(cmd.Context(), table, column, ascending, top)
			if err != nil {
				return err
			}
			if s.output == OutputJSON {
				return renderJSON(cmd.OutOrStdout(), result)
			}
			renderRank(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&table, "table", "", "Report table to rank (required)")
	cmd.Flags().StringVar(&column, "column", "", "Metric column to rank on (required)")
	cmd.Flags().StringVar(&order, "order", OrderDesc, "Sort order (asc|desc)")
	cmd.Flags().IntVar(&top, "top", 0, "Number of top and bottom entries (default: report.top_n)")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("column")
	registerOrderCompletion(cmd)

	return cmd
}

// NewSeriesCommand creates the series command.
func NewSeriesCommand() *cobra.Command {
	var column string

	cmd := &cobra.Command{
		Use:     "series",
		Short:   "Compare a metric across every dated report",
		Example: `  revcompare series --dir ./reports --column Revenue`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			result, err := s.service.Series(cmd.Context(), column)
			if err != nil {
				return err
			}
			if s.output == OutputJSON {
				return renderJSON(cmd.OutOrStdout(), result)
			}
			renderSeries(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Metric column to compare (required)")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		view   string
		table  string
		column string
		order  string
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a table, ranking or comparison to CSV or Excel",
		Example: `  revcompare export --view rank --table revenue_2024-01.csv --column Revenue
  revcompare export --view series --column Revenue --format csv --out revenue.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			f, err := exporter.ParseFormat(format)
			if err != nil {
				return err
			}
			ascending, err := parseOrder(order)
			if err != nil {
				return err
			}

			exp, err := s.service.Export(cmd.Context(), services.ExportRequest{
				View:      view,
				Table:     table,
				Column:    column,
				Ascending: ascending,
				Format:    f,
			})
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = filepath.Join(s.cfg.Paths.ExportDir, exp.FileName())
			}
			if err := exporter.WriteFile(path, exp.Format, exp.Sheet); err != nil {
				return apierrors.NewExportError("failed to write export", err).WithContext("path", path)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", len(exp.Sheet.Rows), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", services.ViewRank, "View to export (table|rank|series)")
	cmd.Flags().StringVar(&table, "table", "", "Report table (table and rank views)")
	cmd.Flags().StringVar(&column, "column", "", "Metric column (rank and series views)")
	cmd.Flags().StringVar(&order, "order", OrderDesc, "Sort order of the rank view (asc|desc)")
	cmd.Flags().StringVar(&format, "format", string(exporter.FormatXLSX), "File format (xlsx|csv)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: paths.export_dir/revenue_export.<format>)")
	registerOrderCompletion(cmd)

	_ = cmd.RegisterFlagCompletionFunc("view", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{services.ViewTable, services.ViewRank, services.ViewSeries}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(exporter.FormatXLSX), string(exporter.FormatCSV)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func parseOrder(order string) (bool, error) {
	switch strings.ToLower(order) {
	case OrderAsc:
		return true, nil
	case OrderDesc, "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid order %q: must be %q or %q", order, OrderAsc, OrderDesc)
	}
}

func registerOrderCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("order", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{OrderAsc, OrderDesc}, cobra.ShellCompDirectiveNoFileComp
	})
}
