package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// utf8BOM lets spreadsheet tools recognize UTF-8 CSV
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
}

// WriteCSV writes a header row and records to w.
func WriteCSV(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Write renders sheet to w in the given format.
func Write(w io.Writer, format Format, sheet Sheet) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, WriteOptions{
			Headers:   sheet.Headers,
			Records:   sheet.Records(),
			BOMPrefix: true,
		})
	case FormatXLSX:
		return WriteExcel(w, sheet)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteFile writes sheet to filePath, creating parent directories.
func WriteFile(filePath string, format Format, sheet Sheet) error {
	slog.Info("Writing export file",
		slog.String("file_path", filePath),
		slog.String("format", string(format)),
		slog.Int("record_count", len(sheet.Rows)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(file, format, sheet); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
