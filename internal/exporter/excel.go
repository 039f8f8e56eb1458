package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the worksheet name of XLSX exports.
const ExportSheetName = "Export"

// WriteExcel writes sheet as a single-worksheet workbook. Numeric cells are
// stored as numbers.
func WriteExcel(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range sheet.Rows {
		values := make([]interface{}, len(row))
		for j, cell := range row {
			if cell.Numeric {
				values[j] = cell.Number
			} else {
				values[j] = cell.Raw
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExportSheetName, axis, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
