package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "revcompare/internal/errors"
	"revcompare/internal/exporter"
	"revcompare/internal/files"
	"revcompare/internal/middleware"
	"revcompare/internal/services"
)

// UploadField is the multipart field carrying report files
const UploadField = "files"

// uploadMemory is how much of a multipart upload is held in memory before
// spilling to temporary files
const uploadMemory = 8 << 20

// Sort orders accepted by the rank and export endpoints
const (
	orderAsc  = "asc"
	orderDesc = "desc"
)

// rankQuery is the query of GET /rank
type rankQuery struct {
	Table  string `json:"table" validate:"required,filename"`
	Column string `json:"column" validate:"required,trimmed"`
	Order  string `json:"order" validate:"omitempty,oneof=asc desc"`
	TopN   int    `json:"top_n" validate:"gte=0,lte=100"`
}

// seriesQuery is the query of GET /series
type seriesQuery struct {
	Column string `json:"column" validate:"required,trimmed"`
}

// exportQuery is the query of GET /export
type exportQuery struct {
	View   string `json:"view" validate:"omitempty,oneof=table rank series"`
	Table  string `json:"table" validate:"omitempty,filename"`
	Column string `json:"column" validate:"omitempty,trimmed"`
	Order  string `json:"order" validate:"omitempty,oneof=asc desc"`
	Format string `json:"format" validate:"omitempty,oneof=xlsx csv"`
}

// ReportHandler serves the report comparison API with RFC 7807 errors
type ReportHandler struct {
	service        ReportServiceInterface
	validator      *middleware.Validator
	maxUploadBytes int64
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:        service,
		validator:      middleware.NewValidator(logger),
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "report_handler")),
		errorHandler:   errorHandler,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetSummary)
	r.Post("/demo", h.LoadDemo)
	r.With(middleware.ContentTypeValidator(h.errorHandler, "multipart/form-data")).
		Post("/upload", h.Upload)

	r.Get("/columns", h.GetColumns)
	r.Get("/tables", h.GetTables)
	r.Get("/tables/{name}", h.GetTable)

	r.Get("/rank", h.GetRank)
	r.Get("/series", h.GetSeries)
	r.Get("/export", h.Export)

	return r
}

// LoadDemo handles POST /api/reports/demo
func (h *ReportHandler) LoadDemo(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.LoadDemo(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// Upload handles POST /api/reports/upload. Every file of the multipart field
// "files" becomes one source of a new batch.
func (h *ReportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errorHandler.HandleError(w, r, apierrors.PayloadTooLarge(h.maxUploadBytes))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[UploadField]
	if len(headers) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(UploadField, "at least one report file is required"))
		return
	}

	inputs := make([]files.Input, len(headers))
	for i, fh := range headers {
		inputs[i] = files.Input{
			Name: fh.Filename,
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		}
	}

	h.logger.InfoContext(r.Context(), "reports uploaded", slog.Int("files", len(inputs)))

	summary, err := h.service.LoadUploads(r.Context(), inputs)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetSummary handles GET /api/reports
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetColumns handles GET /api/reports/columns
func (h *ReportHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.service.Columns(r.Context(), r.URL.Query().Get("table"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if columns == nil {
		columns = []string{}
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   columns,
		"count":  len(columns),
	})
}

// GetTables handles GET /api/reports/tables
func (h *ReportHandler) GetTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.Tables(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   tables,
		"count":  len(tables),
	})
}

// GetTable handles GET /api/reports/tables/{name}
func (h *ReportHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("name", "Invalid table name encoding"))
		return
	}

	table, err := h.service.Table(r.Context(), name)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   table,
	})
}

// GetRank handles GET /api/reports/rank
func (h *ReportHandler) GetRank(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := rankQuery{
		Table:  q.Get("table"),
		Column: q.Get("column"),
		Order:  strings.ToLower(q.Get("order")),
	}

	topN, ok := h.intParam(w, r, "top_n")
	if !ok {
		return
	}
	query.TopN = topN

	if err := h.validator.ValidateStruct(query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Rank(r.Context(), query.Table, query.Column, query.Order == orderAsc, query.TopN)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// GetSeries handles GET /api/reports/series
func (h *ReportHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	query := seriesQuery{Column: r.URL.Query().Get("column")}
	if err := h.validator.ValidateStruct(query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Series(r.Context(), query.Column)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// Export handles GET /api/reports/export and streams the file
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := exportQuery{
		View:   strings.ToLower(q.Get("view")),
		Table:  q.Get("table"),
		Column: q.Get("column"),
		Order:  strings.ToLower(q.Get("order")),
		Format: strings.ToLower(q.Get("format")),
	}
	if query.View == "" {
		query.View = services.ViewRank
	}

	if err := h.validator.ValidateStruct(query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if err := requiredForView(query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	format, err := exporter.ParseFormat(query.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", err.Error()))
		return
	}

	exp, err := h.service.Export(r.Context(), services.ExportRequest{
		View:      query.View,
		Table:     query.Table,
		Column:    query.Column,
		Ascending: query.Order == orderAsc,
		Format:    format,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.FileName()))
	w.WriteHeader(http.StatusOK)

	if err := exp.Write(w); err != nil {
		// Headers are gone; all that is left is to log.
		h.logger.ErrorContext(r.Context(), "failed to stream export",
			slog.String("view", query.View),
			slog.String("error", err.Error()))
	}
}

// requiredForView checks the parameters each export view depends on
func requiredForView(q exportQuery) error {
	var missing []apierrors.ValidationError
	needTable := q.View == services.ViewTable || q.View == services.ViewRank
	needColumn := q.View == services.ViewRank || q.View == services.ViewSeries

	if needTable && q.Table == "" {
		missing = append(missing, apierrors.ValidationError{Field: "table", Message: fmt.Sprintf("table is required for the %s view", q.View)})
	}
	if needColumn && q.Column == "" {
		missing = append(missing, apierrors.ValidationError{Field: "column", Message: fmt.Sprintf("column is required for the %s view", q.View)})
	}
	if len(missing) > 0 {
		return apierrors.NewValidationErrors(missing)
	}
	return nil
}

// intParam reads an optional integer query parameter, zero when absent
func (h *ReportHandler) intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(name, fmt.Sprintf("%s must be a valid integer", name)))
		return 0, false
	}
	return n, true
}

// handleServiceError maps service sentinels onto API errors
func (h *ReportHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNoBatch):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusNotFound,
			apierrors.CodeNoBatch,
			"No reports loaded; load the demo batch or upload reports first",
		))
	case errors.Is(err, services.ErrTableNotFound):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusNotFound,
			apierrors.CodeTableNotFound,
			"Table not found",
			err.Error(),
		))
	case errors.Is(err, services.ErrColumnNotFound):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusNotFound,
			apierrors.CodeColumnNotFound,
			"Column not found",
			err.Error(),
		))
	case errors.Is(err, services.ErrInsufficientSources):
		accepted := 0
		if summary, sErr := h.service.Summary(r.Context()); sErr == nil {
			accepted = len(summary.Accepted)
		}
		h.errorHandler.HandleError(w, r, apierrors.ComparisonUnavailable(accepted))
	case errors.Is(err, services.ErrNoReportsFound), errors.Is(err, services.ErrTooManyFiles):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(UploadField, err.Error()))
	case errors.Is(err, services.ErrUnknownView):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("view", err.Error()))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
