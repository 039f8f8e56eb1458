package services

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"revcompare/pkg/contracts"
	"revcompare/pkg/contracts/domain"
)

// BatchSummarizer reports on the loaded batch
type BatchSummarizer interface {
	Summary(ctx context.Context) (domain.BatchSummary, error)
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	reports   BatchSummarizer
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, reports BatchSummarizer, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized", slog.String("version", version))

	return &HealthService{
		version:   version,
		reports:   reports,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "HealthCheck: performing health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports the state of the report batch. The service is ready
// without a batch; uploads can arrive at any time.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]interface{}{
			"reports": hs.checkReports(ctx),
		},
	}
	return status
}

func (hs *HealthService) checkReports(ctx context.Context) ServiceHealth {
	if hs.reports == nil {
		return ServiceHealth{Status: "unavailable", Message: "report service not configured"}
	}

	summary, err := hs.reports.Summary(ctx)
	switch {
	case errors.Is(err, ErrNoBatch):
		return ServiceHealth{Status: "empty", Message: "no report batch loaded"}
	case err != nil:
		hs.logger.WarnContext(ctx, "Report summary failed during readiness check", slog.String("error", err.Error()))
		return ServiceHealth{Status: "error", Message: err.Error()}
	case !summary.ComparisonAvailable:
		return ServiceHealth{Status: "loaded", Message: "fewer than two dated reports, comparison unavailable"}
	default:
		return ServiceHealth{Status: "loaded"}
	}
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":      hs.version,
		"build_time":   info.BuildTime,
		"git_commit":   info.GitCommit,
		"api_version":  info.APIVersion,
		"data_format":  info.DataFormat,
		"go_version":   info.GoVersion,
		"os":           info.OS,
		"arch":         info.Architecture,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}
