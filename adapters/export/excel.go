package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"coinlab/domain/coin"
	"coinlab/internal/errors"
)

const sheetName = "Flips"

// WriteXLSX writes a trial sequence as a two-column spreadsheet (flip
// index, outcome label) with a header row.
func WriteXLSX(w io.Writer, trials coin.TrialSequence) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.ExportError("rename sheet", err)
	}

	if err := f.SetCellValue(sheetName, "A1", "Flip"); err != nil {
		return errors.ExportError("write header", err)
	}
	if err := f.SetCellValue(sheetName, "B1", "Outcome"); err != nil {
		return errors.ExportError("write header", err)
	}

	for i, outcome := range trials {
		row := i + 2
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1); err != nil {
			return errors.ExportError("write flip index", err)
		}
		if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), outcome.Label()); err != nil {
			return errors.ExportError("write outcome", err)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.ExportError("write workbook", err)
	}
	return nil
}
