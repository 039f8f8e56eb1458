// Package http implements the HTTP handlers of the report comparison API.
//
// Handlers stay thin: they parse and validate query parameters, call the
// report service and render the result. Successful responses use the
// envelope
//
//	{"status": "success", "data": ...}
//
// and failures are RFC 7807 problem documents produced by the shared
// errors.ErrorHandler. Service sentinels are mapped in handleServiceError;
// a comparison requested with fewer than two dated reports becomes
// 409 COMPARISON_UNAVAILABLE.
//
// Routes, mounted under /api/reports:
//
//	GET  /               summary of the loaded batch
//	POST /demo           load the embedded demo batch
//	POST /upload         load a multipart upload (field "files")
//	GET  /columns        metric columns, optionally of one table
//	GET  /tables         parsed table names
//	GET  /tables/{name}  one table as loaded
//	GET  /rank           ranked table with top and bottom values
//	GET  /series         chronological and year-over-year comparison
//	GET  /export         filtered view as XLSX or CSV
package http
