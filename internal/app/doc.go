// Package app wires configuration, logging, telemetry, services and the HTTP
// router into a runnable Application.
//
// Initialization order:
//
//	1. Load configuration (defaults, YAML file, REVCOMPARE_* environment)
//	2. Initialize the slog logger and OpenTelemetry providers
//	3. Create the report and health services
//	4. Seed the first batch: demo reports, or the reports directory when the
//	   source is "uploaded"
//	5. Build the chi router and the HTTP server
//
// Run blocks until SIGINT or SIGTERM and then shuts the server down within
// Server.ShutdownTimeout.
package app
