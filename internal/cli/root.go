// Package cli provides the command-line interface for revenue report comparison.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"revcompare/internal/config"
	"revcompare/internal/infrastructure"
	"revcompare/internal/services"
	"revcompare/pkg/contracts"
)

// Output formats for list and ranking commands
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// options holds the global flags of one root command.
type options struct {
	configFile string
	dir        string
	demo       bool
	output     string
	verbose    bool
}

// session is what every subcommand works with: the loaded configuration and
// a report service with its batch already loaded.
type session struct {
	cfg     *config.Config
	service *services.ReportService
	output  string
}

type sessionKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "revcompare",
		Short: "Compare monthly revenue reports",
		Long: `revcompare loads a folder of revenue report CSV files, ranks companies on
any metric and compares a metric across the months and years found in the
file names.

Files must be named with a YYYY-MM or YYYY-MM-DD date, for example
revenue_2024-03.csv. Files without a date can still be ranked.`,
		Version: contracts.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}

			s, err := openSession(cmd.Context(), opts, cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "d", "", "Directory of report CSV files (default: paths.reports_dir)")
	rootCmd.PersistentFlags().BoolVar(&opts.demo, "demo", false, "Use the bundled demo reports")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", OutputTable, "Output format (table|json)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{OutputTable, OutputJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewSummaryCommand())
	rootCmd.AddCommand(NewTablesCommand())
	rootCmd.AddCommand(NewColumnsCommand())
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewRankCommand())
	rootCmd.AddCommand(NewSeriesCommand())
	rootCmd.AddCommand(NewExportCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// openSession loads configuration and the report batch selected by the flags.
func openSession(ctx context.Context, opts *options, cmd *cobra.Command) (*session, error) {
	ctx = infrastructure.EnsureTraceID(ctx)

	if opts.output != OutputTable && opts.output != OutputJSON {
		return nil, fmt.Errorf("unsupported output format %q: must be %q or %q", opts.output, OutputTable, OutputJSON)
	}

	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := "error"
	if opts.verbose {
		level = cfg.Logging.Level
	}
	logger := infrastructure.NewLogger(cmd.ErrOrStderr(), level)

	service := services.NewReportService(cfg.Report, cfg.Paths, nil, logger)

	dir := opts.dir
	if dir == "" && !opts.demo {
		dir = cfg.Paths.ReportsDir
	}

	switch {
	case opts.demo, dir == "" && cfg.Report.Source == config.SourceDemo:
		_, err = service.LoadDemo(ctx)
	case dir != "":
		_, err = service.LoadDirectory(ctx, dir)
	default:
		err = errors.New("no reports to load: pass --dir or --demo")
	}
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, service: service, output: opts.output}, nil
}

// sessionFrom returns the session stored by the root command.
func sessionFrom(cmd *cobra.Command) (*session, error) {
	s, ok := cmd.Context().Value(sessionKey{}).(*session)
	if !ok || s == nil {
		return nil, errors.New("no report batch loaded")
	}
	return s, nil
}
