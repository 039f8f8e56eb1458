// Package errors carries the API error model of the service.
//
// APIError is the error a handler returns when it knows the HTTP status and
// error code. AppError is a typed error raised below the transport layer.
// ErrorHandler turns either into an RFC 7807 problem document:
//
//	h.errorHandler.HandleError(w, r, apierrors.ComparisonUnavailable(1))
//
// renders
//
//	{"type":"/errors/report/comparison-unavailable","status":409,
//	 "error_code":"COMPARISON_UNAVAILABLE", ...}
package errors
