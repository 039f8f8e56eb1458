// Package dataprocessing is the aggregation and comparison engine for revenue
// reports. It turns a batch of parsed report tables into rankings and period
// comparisons.
//
// # Architecture
//
// The package is organized into five components, leaves first:
//
// 1. Period extraction: reads a YYYY-MM-DD or YYYY-MM period from a file name
// 2. Registry: the immutable set of dated tables of the current batch
// 3. Aggregator: one summed metric value per dated table
// 4. Ranker: sorts a single table on a metric and picks its extremes
// 5. Time series: chronological and year-over-year views of the sums
//
// Parsing of CSV and XLSX sources lives here as well so callers can hand the
// engine raw bytes.
//
// # Usage
//
//	reg, rejected := dataprocessing.Load(sources)
//	for _, name := range rejected {
//	    logger.Warn("no period in source name", slog.String("source", name))
//	}
//
//	result, err := dataprocessing.Compose(reg, "Revenue")
//	if errors.Is(err, dataprocessing.ErrInsufficientSources) {
//	    // comparison not available yet
//	}
//
// # Data Flow
//
//	CSV/XLSX → Parse → Source → Load → Registry → SummedSeries → Chronological / YearOverYear
//	                      └──────────────→ RankTable → Top / Bottom
//
// Every function is synchronous and free of shared state. A new batch is a new
// Registry; nothing is merged into the previous one.
package dataprocessing
