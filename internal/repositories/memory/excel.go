package memory

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readExcelRows extracts raw rows from the first sheet of an .xlsx question
// bank. Banks exported from spreadsheets follow the same six-column row
// contract as the delimited files.
func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
