package services

import (
	"errors"

	"revcompare/internal/dataprocessing"
)

// Report service errors
var (
	// Batch errors
	ErrNoBatch        = errors.New("no report batch loaded")
	ErrNoReportsFound = errors.New("no reports found")
	ErrTooManyFiles   = errors.New("too many files in one batch")

	// Lookup errors
	ErrTableNotFound = errors.New("table not found")
	ErrUnknownView   = errors.New("unknown export view")

	// Engine errors, re-exported so callers need only this package
	ErrColumnNotFound      = dataprocessing.ErrColumnNotFound
	ErrInsufficientSources = dataprocessing.ErrInsufficientSources
)
