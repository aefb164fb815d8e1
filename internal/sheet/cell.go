// Package sheet provides a typed view over spreadsheet cells and the
// workbook loader that produces it. Cells are classified as empty,
// numeric, or text, and expose numeric and date coercions used by the
// extraction layer.
package sheet

import (
	"strconv"
	"strings"
	"time"

	"delivery-order-service/internal/models"
)

// CellKind classifies a cell's content
type CellKind int

const (
	// KindEmpty marks a cell with no content
	KindEmpty CellKind = iota
	// KindNumber marks a cell whose raw value is fully numeric
	KindNumber
	// KindText marks any other non-empty cell
	KindText
)

// excelEpoch is the zero point of Excel's 1900 date system. Excel
// serial 1 is 1900-01-01, and serials past 59 carry the fictitious
// 1900-02-29, so the epoch sits at 1899-12-30.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Cell is a single spreadsheet cell with its classified kind
type Cell struct {
	Kind CellKind
	// Raw is the trimmed raw cell value
	Raw string
	// Value is the parsed numeric value, valid when Kind is KindNumber
	Value float64
}

// NewCell classifies a raw cell value into a typed Cell
func NewCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Kind: KindEmpty}
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Cell{Kind: KindNumber, Raw: trimmed, Value: v}
	}
	return Cell{Kind: KindText, Raw: trimmed}
}

// IsEmpty reports whether the cell has no content
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// Text returns the cell's trimmed text content. Numeric cells render
// their raw form.
func (c Cell) Text() string {
	return c.Raw
}

// Number coerces the cell to a numeric value. Numeric cells return
// their value directly. Text cells yield the leading numeric run, so
// values like "160*1000米" coerce to 160. Cells with no leading
// numeric run, and empty cells, return 0 with ok false.
func (c Cell) Number() (float64, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Value, true
	case KindText:
		run := leadingNumericRun(c.Raw)
		if run == "" {
			return 0, false
		}
		v, err := strconv.ParseFloat(run, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// DateString coerces the cell to a YYYY-MM-DD date string. Numeric
// cells are treated as Excel date serials. Text cells are parsed
// against the accepted date layouts and re-rendered; unparsable text
// passes through unchanged. Empty cells return ok false.
func (c Cell) DateString() (string, bool) {
	switch c.Kind {
	case KindNumber:
		return SerialToDate(c.Value), true
	case KindText:
		return models.NormalizeDate(c.Raw), true
	default:
		return "", false
	}
}

// SerialToDate converts an Excel date serial to a YYYY-MM-DD string.
// Serial 44927 converts to 2023-01-01.
func SerialToDate(serial float64) string {
	days := int(serial)
	return excelEpoch.AddDate(0, 0, days).Format(models.DateLayout)
}

// leadingNumericRun returns the longest prefix of s consisting of
// digits, dots, and a leading minus sign.
func leadingNumericRun(s string) string {
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || (r == '-' && i == 0) {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}
