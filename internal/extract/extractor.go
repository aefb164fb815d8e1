package extract

import (
	"strings"

	"delivery-order-service/internal/models"
	"delivery-order-service/internal/sheet"
	"delivery-order-service/pkg/logger"
)

// Extractor turns spreadsheet files into delivery order records using
// the header locator and metadata hunts.
type Extractor struct {
	logger logger.Logger
}

// NewExtractor creates an Extractor with the given logger
func NewExtractor(log logger.Logger) *Extractor {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Extractor{logger: log.WithComponent("extract")}
}

// ExtractFile opens the workbook at path and extracts its records.
// The returned error is fatal for the whole file.
func (e *Extractor) ExtractFile(path, customerType string) ([]models.Record, error) {
	grid, err := sheet.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	records := e.ExtractGrid(grid, path, customerType)

	e.logger.WithFields(logger.Fields{
		"file":    path,
		"records": len(records),
	}).Debug("Extracted file")

	return records, nil
}

// ExtractGrid extracts records from an already-loaded sheet grid.
// Extraction is best-effort: rows without a product name or a
// parseable quantity are skipped silently, and the walk stops at the
// first totals row.
func (e *Extractor) ExtractGrid(g *sheet.Grid, path, customerType string) []models.Record {
	layout := LocateHeader(g)
	meta := ExtractMetadata(g)

	records := make([]models.Record, 0)
	orderNo := meta.OrderNo

	for row := layout.DataStart; row < g.RowCount(); row++ {
		if g.RowIsEmpty(row) {
			continue
		}
		if isTotalsRow(g, row) {
			break
		}

		product := cleanProductName(g.Cell(row, layout.Product).Text())
		if product == "" {
			continue
		}
		quantity, ok := g.Cell(row, layout.Quantity).Number()
		if !ok {
			continue
		}

		// Some documents carry the purchase-order number in a remarks
		// cell inside the item table rather than the header block. A
		// conflicting in-row value never replaces an existing one.
		if found := scanRowOrderNo(g, row); found != "" {
			if orderNo == "" || orderNo == found {
				orderNo = found
			}
		}

		record := models.Record{
			CustomerName:  meta.CustomerName,
			CustomerType:  customerType,
			DeliveryDate:  meta.DeliveryDate,
			DeliveryNo:    meta.DeliveryNo,
			ProductName:   product,
			Specification: columnText(g, row, layout.Spec),
			Quantity:      quantity,
			Unit:          columnText(g, row, layout.Unit),
			FilePath:      path,
			RowIndex:      row,
		}
		if models.HasColumn(layout.UnitPrice) {
			record.UnitPrice, _ = g.Cell(row, layout.UnitPrice).Number()
		}
		if models.HasColumn(layout.Amount) {
			record.Amount, _ = g.Cell(row, layout.Amount).Number()
		}

		record.OrderNo = columnText(g, row, layout.OrderNo)
		if record.OrderNo == "" {
			record.OrderNo = orderNo
		}

		records = append(records, record)
	}

	return records
}

// isTotalsRow reports whether the row's first cell carries a totals
// marker, ending the item table
func isTotalsRow(g *sheet.Grid, row int) bool {
	text := g.Cell(row, 0).Text()
	if text == "" {
		return false
	}
	for _, marker := range totalsMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// scanRowOrderNo looks through every cell of the row for an embedded
// purchase-order label and returns the in-cell value, if any
func scanRowOrderNo(g *sheet.Grid, row int) string {
	for col := 0; col < g.RowWidth(row); col++ {
		cell := g.Cell(row, col)
		if cell.Kind != sheet.KindText {
			continue
		}
		if !matchesAny(cell.Text(), orderNoKeywords) {
			continue
		}
		if value, ok := afterSeparator(cell.Text()); ok {
			return value
		}
	}
	return ""
}

// cleanProductName collapses embedded newlines to spaces and strips
// quote characters
func cleanProductName(text string) string {
	replaced := strings.NewReplacer(
		"\r\n", " ",
		"\n", " ",
		"\r", " ",
		"\"", "",
		"“", "",
		"”", "",
	).Replace(text)
	return strings.TrimSpace(replaced)
}

// columnText returns the trimmed text of a mapped column, or the
// empty string when the column is unmapped
func columnText(g *sheet.Grid, row, col int) string {
	if !models.HasColumn(col) {
		return ""
	}
	return g.Cell(row, col).Text()
}
