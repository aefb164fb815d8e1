package sheet

import (
	"github.com/xuri/excelize/v2"

	apperrors "delivery-order-service/pkg/errors"
)

// OpenWorkbook opens an Excel workbook and returns the first sheet as
// a typed Grid. Raw cell values are requested so date-typed cells
// surface as their underlying numeric serials rather than rendered
// display strings.
func OpenWorkbook(path string) (*Grid, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.WorkbookError(apperrors.CodeWorkbookOpen,
			"failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.WorkbookError(apperrors.CodeSheetNotFound,
			"workbook contains no sheets", nil).WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.WorkbookError(apperrors.CodeWorkbookRead,
			"failed to read sheet rows", err).WithContext("path", path)
	}

	return NewGrid(rows), nil
}
