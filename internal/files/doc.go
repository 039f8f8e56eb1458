// Package files locates revenue report files and reads a batch of them into
// parsed sources.
//
// Discovery finds CSV and XLSX reports in a directory. Loader opens and parses
// a batch concurrently while keeping the input order, and turns every file it
// cannot read into a rejection instead of failing the batch.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/data")
//	reports, err := discovery.FindReports("reports")
//
//	loader := files.NewLoader(4, logger)
//	sources, rejected, err := loader.Load(ctx, files.FromPaths(reports))
package files
