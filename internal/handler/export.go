package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

type exportRow struct {
	Label  string
	Amount float64
	Date   time.Time
}

// writeExcel streams a single-sheet workbook of ledger rows to the response.
func writeExcel(w http.ResponseWriter, sheet, labelHeader, filename string, rows []exportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &[]any{labelHeader, "Amount", "Date"}); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, cell, &[]any{
			row.Label,
			row.Amount,
			row.Date.Format("2006-01-02"),
		}); err != nil {
			return err
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	return f.Write(w)
}
