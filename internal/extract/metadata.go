package extract

import (
	"strings"

	"delivery-order-service/internal/models"
	"delivery-order-service/internal/sheet"
)

// metadataScanRows is the number of leading rows inspected for
// file-level metadata
const metadataScanRows = 10

// ExtractMetadata hunts the first rows of the grid for the four
// file-level fields: customer name, document date, delivery order
// number, and purchase-order number. Each hunt is independent and
// first match wins; a field found once is never overwritten.
func ExtractMetadata(g *sheet.Grid) models.FileMetadata {
	var meta models.FileMetadata

	for row := 0; row < metadataScanRows && row < g.RowCount(); row++ {
		for col := 0; col < g.RowWidth(row); col++ {
			cell := g.Cell(row, col)
			if cell.Kind != sheet.KindText {
				continue
			}
			text := cell.Text()

			if meta.CustomerName == "" && matchesAny(text, customerKeywords) {
				meta.CustomerName = inCellOrAdjacent(g, row, col, text)
			}
			if meta.DeliveryDate == "" && matchesAny(text, dateKeywords) {
				meta.DeliveryDate = extractDate(g, row, col, text)
			}
			if meta.DeliveryNo == "" && matchesAny(text, deliveryNoKeywords) {
				meta.DeliveryNo = extractDeliveryNo(g, row, col, text)
			}
			if meta.OrderNo == "" && matchesAny(text, orderNoKeywords) {
				meta.OrderNo = inCellOrAdjacent(g, row, col, text)
			}
		}
	}

	return meta
}

// inCellOrAdjacent takes the value after a colon separator in the
// labeled cell itself, falling back to the cell to the right
func inCellOrAdjacent(g *sheet.Grid, row, col int, text string) string {
	if value, ok := afterSeparator(text); ok {
		return value
	}
	return g.Cell(row, col+1).Text()
}

// extractDate resolves the document date. In-cell values go through
// the text date parser; adjacent cells go through the full cell date
// path so date-typed cells resolve via serial conversion.
func extractDate(g *sheet.Grid, row, col int, text string) string {
	if value, ok := afterSeparator(text); ok {
		return models.NormalizeDate(value)
	}
	if value, ok := g.Cell(row, col+1).DateString(); ok {
		return value
	}
	return ""
}

// extractDeliveryNo resolves the delivery note number. It tries, in
// order: a token following a "no"/"单号" token in the split cell text,
// the cell remainder when the text literally starts with "no", and
// finally the adjacent cell.
func extractDeliveryNo(g *sheet.Grid, row, col int, text string) string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ':' || r == '：' || r == '.' || r == ' '
	})
	for i, token := range tokens {
		lower := strings.ToLower(token)
		if (lower == "no" || token == "单号") && i+1 < len(tokens) {
			return strings.TrimSpace(tokens[i+1])
		}
	}

	if strings.HasPrefix(strings.ToLower(text), "no") && len(text) > 2 {
		return strings.TrimSpace(strings.TrimLeft(text[2:], ":：. "))
	}

	return g.Cell(row, col+1).Text()
}
