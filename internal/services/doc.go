// Package services implements the business logic layer between the HTTP
// handlers and the comparison engine.
//
// ReportService owns the loaded report batch. A batch comes from the embedded
// demo reports, a reports directory or an upload, and replaces the previous
// batch as a whole. Rank, Series and Export read a snapshot of the batch, so a
// load running concurrently never exposes half of a batch.
//
// Errors are returned as the sentinels in errors.go, wrapped with context.
// The transport layer maps them to HTTP problems.
package services
