package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentType is the media type of WriteXLSX output.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes the workbook as an XLSX file, one worksheet per table.
func WriteXLSX(w io.Writer, wb Workbook) error {
	if len(wb.Sheets) == 0 {
		return fmt.Errorf("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, table := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", table.Name, err)
			}
		} else if _, err := f.NewSheet(table.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", table.Name, err)
		}

		if err := writeTable(f, table, bold); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, table Table, headerStyle int) error {
	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(table.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", table.Name, err)
	}
	if err := f.SetRowStyle(table.Name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", table.Name, err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(table.Name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, table.Name, err)
		}
	}
	return nil
}
