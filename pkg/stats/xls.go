package stats

import (
	"bytes"
	"fmt"
	"strings"

	xlsx "github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/anrid/xls"

	"github.com/anrid/world-population/pkg/logger"
)

// ExtractRowsFromFile returns the cell values of the first sheet of an Excel
// workbook. Blank rows are dropped and every row is padded to the width of
// the header row.
func ExtractRowsFromFile(f *File) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	if f.Ext() == ".xlsx" {
		rows, err = ExtractRowsFromXLSX(f)
	} else {
		rows, err = ExtractRowsFromXLS(f)
	}
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

func ExtractRowsFromXLS(f *File) ([][]string, error) {
	logger.Infof("Loading XLS data: %s", f.Source)

	wb, err := xls.OpenReader(bytes.NewReader(f.Content), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("could not read XLS file '%s': %w", f.Source, err)
	}

	var rows [][]string
	if sheet := wb.GetSheet(0); sheet != nil {
		logger.Debugf("Sheet name : %s", sheet.Name)
		logger.Debugf("Sheet rows : %d", sheet.MaxRow)

		for i := 0; i <= int(sheet.MaxRow); i++ {
			row := sheet.Row(i)
			if row == nil {
				continue
			}
			var cols []string
			for j := 0; j <= row.LastCol(); j++ {
				cols = append(cols, row.Col(j))
			}
			rows = append(rows, cols)
		}
	}
	return rows, nil
}

func ExtractRowsFromXLSX(f *File) ([][]string, error) {
	logger.Infof("Loading XLSX data: %s", f.Source)

	wb, err := xlsx.OpenReader(bytes.NewReader(f.Content))
	if err != nil {
		return nil, fmt.Errorf("could not read XLSX file '%s': %w", f.Source, err)
	}

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	defaultSheet := sheets[0]

	rows, err := wb.GetRows(defaultSheet)
	if err != nil {
		return nil, fmt.Errorf("could not get rows for default sheet '%s': %w", defaultSheet, err)
	}

	logger.Debugf("Sheet name : %s", defaultSheet)
	logger.Debugf("Sheet rows : %d", len(rows))

	return rows, nil
}

func normalizeRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	width := 0
	for _, r := range rows {
		blank := true
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}
		if width == 0 {
			width = len(r)
		}
		cells := make([]string, width)
		for i := 0; i < width && i < len(r); i++ {
			cells[i] = strings.TrimSpace(r[i])
		}
		out = append(out, cells)
	}
	return out
}
