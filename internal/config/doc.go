// Package config loads the service configuration.
//
// # Configuration Sources
//
// Values are resolved in this order, later sources winning:
//
//  1. Default()
//  2. A YAML file: $REVCOMPARE_CONFIG, config.yaml or configs/config.yaml
//  3. Environment variables
//
// # Environment Variables
//
// Every variable is prefixed with REVCOMPARE and follows the struct nesting:
//
//	REVCOMPARE_SERVER_PORT=8080
//	REVCOMPARE_REPORT_SOURCE=demo
//	REVCOMPARE_REPORT_TOP_N=3
//	REVCOMPARE_PATHS_REPORTS_DIR=/srv/reports
//	REVCOMPARE_LOGGING_LEVEL=debug
//
// # Report Source
//
// Report.Source is either "demo", which loads the embedded demo reports at
// startup, or "uploaded", which starts from Paths.ReportsDir (or an empty
// batch) and waits for uploads. It is resolved once at startup.
package config
