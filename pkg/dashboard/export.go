package dashboard

import (
	"fmt"
	"io"
	"strconv"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"

	"github.com/anrid/world-population/pkg/stats"
)

const exportSheet = "Sheet1"

// WriteXLSX writes records as a single sheet workbook, header first. Cells
// that hold a number are stored as numbers.
func WriteXLSX(w io.Writer, columns []string, records []stats.Record) error {
	f := xlsx.NewFile()

	for i, header := range columns {
		cell, err := xlsx.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return err
		}
		col, err := xlsx.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(exportSheet, col, col, 16); err != nil {
			return err
		}
	}

	for r, row := range stats.RecordRows(columns, records) {
		for c, value := range row {
			cell, err := xlsx.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			var v interface{} = value
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				v = n
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}
