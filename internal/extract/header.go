package extract

import (
	"delivery-order-service/internal/models"
	"delivery-order-service/internal/sheet"
)

const (
	// headerScanRows is the number of leading rows inspected for a
	// header row
	headerScanRows = 15
	// fallbackDataStart is the assumed first data row when no header
	// row is found
	fallbackDataStart = 8
)

// LocateHeader scans the first rows of the grid for a row carrying
// recognizable column labels and returns the resulting column layout.
// The first qualifying row wins, and within it the first cell matching
// each label family claims that family's column. When no row qualifies
// the fixed fallback layout is returned.
func LocateHeader(g *sheet.Grid) models.ColumnLayout {
	for row := 0; row < headerScanRows && row < g.RowCount(); row++ {
		layout := emptyLayout()
		matched := false

		for col := 0; col < g.RowWidth(row); col++ {
			cell := g.Cell(row, col)
			if cell.IsEmpty() {
				continue
			}
			for _, family := range headerFamilies {
				if *layout.columnFor(family.field) >= 0 {
					continue
				}
				if matchesAny(cell.Text(), family.keywords) {
					*layout.columnFor(family.field) = col
					matched = true
					break
				}
			}
		}

		if matched {
			layout.HeaderRow = row
			layout.DataStart = row + 1
			return layout.ColumnLayout
		}
	}

	return fallbackLayout()
}

// headerLayout wraps ColumnLayout with field-indexed column access
type headerLayout struct {
	models.ColumnLayout
}

func emptyLayout() headerLayout {
	return headerLayout{models.ColumnLayout{
		Product:   -1,
		Spec:      -1,
		Quantity:  -1,
		Unit:      -1,
		UnitPrice: -1,
		Amount:    -1,
		OrderNo:   -1,
		DataStart: -1,
		HeaderRow: -1,
	}}
}

func fallbackLayout() models.ColumnLayout {
	layout := emptyLayout()
	layout.Product = 0
	layout.Spec = 2
	layout.Quantity = 4
	layout.Unit = 5
	layout.DataStart = fallbackDataStart
	return layout.ColumnLayout
}

func (l *headerLayout) columnFor(f field) *int {
	switch f {
	case fieldProduct:
		return &l.Product
	case fieldSpec:
		return &l.Spec
	case fieldQuantity:
		return &l.Quantity
	case fieldUnit:
		return &l.Unit
	case fieldUnitPrice:
		return &l.UnitPrice
	case fieldAmount:
		return &l.Amount
	default:
		return &l.OrderNo
	}
}
