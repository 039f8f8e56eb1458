// Package exporter writes report views as CSV or XLSX downloads.
//
// A Sheet is the flat, index-free shape of a view: a header row followed by
// cells. Ranked tables and comparison series are turned into sheets by
// RankSheet and SeriesSheet, then written by WriteCSV or WriteExcel. CSV output
// carries a UTF-8 BOM so spreadsheet tools detect the encoding; XLSX output
// uses a single sheet named "Export".
//
// Example usage:
//
//	sheet := exporter.RankSheet(result)
//	err := exporter.Write(w, exporter.FormatXLSX, sheet)
package exporter
