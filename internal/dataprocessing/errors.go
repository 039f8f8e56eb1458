package dataprocessing

import "errors"

var (
	// ErrInsufficientSources is returned when a comparison is requested before
	// MinComparableEntries dated sources are loaded.
	ErrInsufficientSources = errors.New("at least two dated sources are required for comparison")

	// ErrColumnNotFound is returned when a table lacks the requested metric column.
	ErrColumnNotFound = errors.New("column not found")

	// ErrNoHeader is returned when a source has no header row.
	ErrNoHeader = errors.New("source has no header row")

	// ErrMissingCompanyName is returned when a source has no CompanyName column.
	ErrMissingCompanyName = errors.New("source has no CompanyName column")

	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
