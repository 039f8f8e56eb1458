package http

import (
	"context"

	"revcompare/internal/files"
	"revcompare/internal/services"
	"revcompare/pkg/contracts/domain"
)

// ReportServiceInterface defines the report operations the handler needs
type ReportServiceInterface interface {
	LoadDemo(ctx context.Context) (domain.BatchSummary, error)
	LoadUploads(ctx context.Context, inputs []files.Input) (domain.BatchSummary, error)
	Summary(ctx context.Context) (domain.BatchSummary, error)
	Columns(ctx context.Context, table string) ([]string, error)
	Tables(ctx context.Context) ([]string, error)
	Table(ctx context.Context, name string) (domain.Table, error)
	Rank(ctx context.Context, table, column string, ascending bool, n int) (domain.RankResult, error)
	Series(ctx context.Context, column string) (domain.SeriesResult, error)
	Export(ctx context.Context, req services.ExportRequest) (*services.Export, error)
}
