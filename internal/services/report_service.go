package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"revcompare/internal/config"
	"revcompare/internal/dataprocessing"
	"revcompare/internal/demo"
	apierrors "revcompare/internal/errors"
	"revcompare/internal/exporter"
	"revcompare/internal/files"
	"revcompare/internal/infrastructure"
	"revcompare/pkg/contracts/domain"
)

// Export views
const (
	ViewTable  = "table"
	ViewRank   = "rank"
	ViewSeries = "series"
)

// Computation kinds recorded in metrics
const (
	kindRank   = "rank"
	kindSeries = "series"
)

// reasonNoPeriod is the rejection reason for sources without a date in their name
const reasonNoPeriod = "no YYYY-MM or YYYY-MM-DD date in the file name; usable for ranking only"

// batch is one loaded set of reports. It is never modified after it is built.
type batch struct {
	id       string
	source   string
	loadedAt time.Time
	sources  []domain.Source
	registry *dataprocessing.Registry
	rejected []domain.Rejection
}

func (b *batch) table(name string) (domain.Table, bool) {
	for _, src := range b.sources {
		if src.Name == name {
			return src.Table, true
		}
	}
	return domain.Table{}, false
}

// ReportService holds the current report batch and runs the comparison engine
// against it. Loading a batch replaces the previous one as a whole.
type ReportService struct {
	mu      sync.RWMutex
	current *batch

	loader    *files.Loader
	discovery *files.Discovery
	topN      int
	maxFiles  int

	tracer  trace.Tracer
	metrics *infrastructure.ReportMetrics
	logger  *slog.Logger
}

// NewReportService creates a report service with no batch loaded
func NewReportService(cfg config.ReportConfig, paths config.PathsConfig, metrics *infrastructure.ReportMetrics, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "report_service")

	if cfg.TopN <= 0 {
		cfg.TopN = dataprocessing.DefaultTopN
	}

	return &ReportService{
		loader:    files.NewLoader(cfg.ParseWorkers, logger),
		discovery: files.NewDiscovery(paths.ReportsDir),
		topN:      cfg.TopN,
		maxFiles:  cfg.MaxFiles,
		tracer:    otel.Tracer(infrastructure.MeterName),
		metrics:   metrics,
		logger:    logger,
	}
}

// LoadDemo replaces the batch with the embedded demo reports
func (s *ReportService) LoadDemo(ctx context.Context) (domain.BatchSummary, error) {
	inputs, err := demo.Inputs()
	if err != nil {
		return domain.BatchSummary{}, fmt.Errorf("failed to open demo reports: %w", err)
	}
	return s.load(ctx, config.SourceDemo, inputs)
}

// LoadDirectory replaces the batch with every report found in dir
func (s *ReportService) LoadDirectory(ctx context.Context, dir string) (domain.BatchSummary, error) {
	found, err := s.discovery.FindReports(dir)
	if err != nil {
		return domain.BatchSummary{}, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(found) == 0 {
		return domain.BatchSummary{}, fmt.Errorf("%w in %s", ErrNoReportsFound, dir)
	}
	return s.LoadUploads(ctx, files.FromPaths(found))
}

// LoadUploads replaces the batch with the given inputs
func (s *ReportService) LoadUploads(ctx context.Context, inputs []files.Input) (domain.BatchSummary, error) {
	if len(inputs) == 0 {
		return domain.BatchSummary{}, ErrNoReportsFound
	}
	if s.maxFiles > 0 && len(inputs) > s.maxFiles {
		return domain.BatchSummary{}, fmt.Errorf("%w: %d files, limit %d", ErrTooManyFiles, len(inputs), s.maxFiles)
	}
	return s.load(ctx, config.SourceUploaded, inputs)
}

func (s *ReportService) load(ctx context.Context, source string, inputs []files.Input) (domain.BatchSummary, error) {
	ctx, span := s.tracer.Start(ctx, "report.load", trace.WithAttributes(
		attribute.String("report.source", source),
		attribute.Int("report.inputs", len(inputs)),
	))
	defer span.End()

	start := time.Now()

	sources, rejected, err := s.loader.Load(ctx, inputs)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return domain.BatchSummary{}, fmt.Errorf("failed to load reports: %w", err)
	}

	registry, undated := dataprocessing.Load(sources)
	for _, name := range undated {
		s.logger.WarnContext(ctx, "Source has no date in its name, excluded from comparison",
			slog.String("source", name))
		rejected = append(rejected, domain.Rejection{SourceName: name, Reason: reasonNoPeriod})
	}

	b := &batch{
		id:       uuid.New().String(),
		source:   source,
		loadedAt: time.Now(),
		sources:  sources,
		registry: registry,
		rejected: rejected,
	}

	s.mu.Lock()
	s.current = b
	s.mu.Unlock()

	s.metrics.RecordBatch(ctx, source, registry.Len(), len(rejected), time.Since(start))
	span.SetAttributes(
		attribute.String("report.batch_id", b.id),
		attribute.Int("report.accepted", registry.Len()),
		attribute.Int("report.rejected", len(rejected)),
	)

	s.logger.InfoContext(ctx, "Report batch loaded",
		slog.String("batch_id", b.id),
		slog.String("source", source),
		slog.Int("tables", len(sources)),
		slog.Int("accepted", registry.Len()),
		slog.Int("rejected", len(rejected)),
		slog.Bool("comparison_available", registry.CanCompare()))

	return summarize(b), nil
}

// snapshot returns the current batch
func (s *ReportService) snapshot() (*batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoBatch
	}
	return s.current, nil
}

// Summary describes the current batch
func (s *ReportService) Summary(ctx context.Context) (domain.BatchSummary, error) {
	b, err := s.snapshot()
	if err != nil {
		return domain.BatchSummary{}, err
	}
	return summarize(b), nil
}

func summarize(b *batch) domain.BatchSummary {
	tables := make([]string, len(b.sources))
	for i, src := range b.sources {
		tables[i] = src.Name
	}
	rejected := b.rejected
	if rejected == nil {
		rejected = []domain.Rejection{}
	}
	columns := b.registry.Columns()
	if columns == nil {
		columns = []string{}
	}
	return domain.BatchSummary{
		ID:                  b.id,
		Source:              b.source,
		LoadedAt:            b.loadedAt,
		Tables:              tables,
		Accepted:            b.registry.Entries(),
		Rejected:            rejected,
		Columns:             columns,
		ComparisonAvailable: b.registry.CanCompare(),
	}
}

// Columns returns the metric columns offered for analysis. With an empty
// table name the columns of the dated sources are returned; otherwise the
// columns of that one table.
func (s *ReportService) Columns(ctx context.Context, table string) ([]string, error) {
	b, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	if table == "" {
		return b.registry.Columns(), nil
	}

	t, ok := b.table(table)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	var columns []string
	for _, c := range t.Columns {
		if !domain.IsIdentifyingColumn(c) {
			columns = append(columns, c)
		}
	}
	return columns, nil
}

// Tables returns the names of every parsed table, sorted
func (s *ReportService) Tables(ctx context.Context) ([]string, error) {
	b, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(b.sources))
	for i, src := range b.sources {
		names[i] = src.Name
	}
	sort.Strings(names)
	return names, nil
}

// Table returns one parsed table as loaded
func (s *ReportService) Table(ctx context.Context, name string) (domain.Table, error) {
	b, err := s.snapshot()
	if err != nil {
		return domain.Table{}, err
	}
	t, ok := b.table(name)
	if !ok {
		return domain.Table{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return t, nil
}

// Rank sorts one table on column and picks its extremes. n falls back to the
// configured TopN when not positive. Any parsed table can be ranked, dated
// or not.
func (s *ReportService) Rank(ctx context.Context, table, column string, ascending bool, n int) (domain.RankResult, error) {
	ctx, span := s.tracer.Start(ctx, "report.rank", trace.WithAttributes(
		attribute.String("report.table", table),
		attribute.String("report.column", column),
		attribute.Bool("report.ascending", ascending),
	))
	defer span.End()

	start := time.Now()
	result, err := s.rank(table, column, ascending, n)
	s.metrics.RecordComputation(ctx, kindRank, time.Since(start), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return domain.RankResult{}, err
	}
	return result, nil
}

func (s *ReportService) rank(table, column string, ascending bool, n int) (domain.RankResult, error) {
	b, err := s.snapshot()
	if err != nil {
		return domain.RankResult{}, err
	}
	t, ok := b.table(table)
	if !ok {
		return domain.RankResult{}, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	if n <= 0 {
		n = s.topN
	}
	return dataprocessing.RankTable(t, column, ascending, n)
}

// Series compares the summed column across the dated sources of the batch
func (s *ReportService) Series(ctx context.Context, column string) (domain.SeriesResult, error) {
	ctx, span := s.tracer.Start(ctx, "report.series", trace.WithAttributes(
		attribute.String("report.column", column),
	))
	defer span.End()

	start := time.Now()
	result, err := s.series(column)
	s.metrics.RecordComputation(ctx, kindSeries, time.Since(start), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return domain.SeriesResult{}, err
	}

	span.SetAttributes(attribute.Int("report.points", len(result.Chronological)))
	return result, nil
}

func (s *ReportService) series(column string) (domain.SeriesResult, error) {
	b, err := s.snapshot()
	if err != nil {
		return domain.SeriesResult{}, err
	}
	return dataprocessing.Compose(b.registry, column)
}

// ExportRequest selects what to export
type ExportRequest struct {
	View      string
	Table     string
	Column    string
	Ascending bool
	Format    exporter.Format
}

// Export is a rendered sheet ready to be written in its format
type Export struct {
	Sheet  exporter.Sheet
	Format exporter.Format
}

// FileName returns the download file name
func (e *Export) FileName() string {
	return e.Format.FileName()
}

// ContentType returns the MIME type of the export
func (e *Export) ContentType() string {
	return e.Format.ContentType()
}

// Write writes the export to w
func (e *Export) Write(w io.Writer) error {
	if err := exporter.Write(w, e.Format, e.Sheet); err != nil {
		return apierrors.NewExportError("failed to write export", err).
			WithContext("format", string(e.Format))
	}
	return nil
}

// Export builds the filtered view selected by req
func (s *ReportService) Export(ctx context.Context, req ExportRequest) (*Export, error) {
	if req.Format == "" {
		req.Format = exporter.FormatXLSX
	}

	var sheet exporter.Sheet
	switch req.View {
	case ViewTable:
		t, err := s.Table(ctx, req.Table)
		if err != nil {
			return nil, err
		}
		sheet = exporter.TableSheet(t)
	case ViewRank, "":
		req.View = ViewRank
		result, err := s.Rank(ctx, req.Table, req.Column, req.Ascending, 0)
		if err != nil {
			return nil, err
		}
		sheet = exporter.RankSheet(result)
	case ViewSeries:
		result, err := s.Series(ctx, req.Column)
		if err != nil {
			return nil, err
		}
		sheet = exporter.SeriesSheet(result)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, req.View)
	}

	s.metrics.RecordExport(ctx, req.View, string(req.Format))
	s.logger.InfoContext(ctx, "Export prepared",
		slog.String("view", req.View),
		slog.String("format", string(req.Format)),
		slog.Int("rows", len(sheet.Rows)))

	return &Export{Sheet: sheet, Format: req.Format}, nil
}
