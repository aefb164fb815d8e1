// Package models defines the core data structures for delivery order
// extraction, validation, and aggregation.
package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical layout delivery dates are normalized to.
const DateLayout = "2006-01-02"

// YearMonthUnknown is the grouping bucket for records whose delivery
// date cannot be resolved to a year-month.
const YearMonthUnknown = "unknown"

// AcceptedDateLayouts lists the date layouts recognized in spreadsheet
// cells and metadata values, in the order they are attempted. The
// non-padded month and day tokens accept both "2023-06-05" and
// "2023-6-5" forms.
var AcceptedDateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006年1月2日",
	"2/1/2006",
	"1/2/2006",
}

// yearMonthLayouts extends the accepted layouts with a timestamp form
// that appears when date cells carry a time component.
var yearMonthLayouts = append([]string{"2006-1-2 15:04:05"}, AcceptedDateLayouts...)

// Record represents a single delivery order line extracted from a
// spreadsheet file.
type Record struct {
	// CustomerName is the customer the delivery belongs to
	CustomerName string `json:"customer_name"`
	// CustomerType is the label derived from the file's parent directory
	CustomerType string `json:"customer_type"`
	// DeliveryDate is the delivery date normalized to YYYY-MM-DD
	DeliveryDate string `json:"delivery_date"`
	// DeliveryNo is the delivery note number, if present
	DeliveryNo string `json:"delivery_no"`
	// OrderNo is the purchase order number in effect for this row
	OrderNo string `json:"order_no"`
	// ProductName is the product description
	ProductName string `json:"product_name"`
	// Specification is the product specification
	Specification string `json:"specification"`
	// Quantity is the delivered quantity
	Quantity float64 `json:"quantity"`
	// Unit is the unit of measure
	Unit string `json:"unit"`
	// UnitPrice is the per-unit price, 0 when the column is absent
	UnitPrice float64 `json:"unit_price"`
	// Amount is the line amount, 0 when the column is absent
	Amount float64 `json:"amount"`
	// FilePath is the source file the record was extracted from
	FilePath string `json:"file_path"`
	// RowIndex is the zero-based sheet row the record came from
	RowIndex int `json:"row_index"`
}

// Validate checks that the record has the minimum required fields
func (r *Record) Validate() error {
	if r.ProductName == "" {
		return fmt.Errorf("product name is required")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %f", r.Quantity)
	}
	return nil
}

// YearMonth resolves the record's delivery date to a YYYY-MM bucket.
// Unparsable dates fall back to the prefix before the second hyphen,
// and to YearMonthUnknown when no such prefix exists.
func (r *Record) YearMonth() string {
	for _, layout := range yearMonthLayouts {
		if t, err := time.Parse(layout, r.DeliveryDate); err == nil {
			return t.Format("2006-01")
		}
	}
	parts := strings.SplitN(r.DeliveryDate, "-", 3)
	if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
		return parts[0] + "-" + parts[1]
	}
	return YearMonthUnknown
}

// FileMetadata holds the file-level fields hunted from the rows above
// and around the header: customer, date, delivery number, and order
// number.
type FileMetadata struct {
	CustomerName string `json:"customer_name"`
	DeliveryDate string `json:"delivery_date"`
	DeliveryNo   string `json:"delivery_no"`
	OrderNo      string `json:"order_no"`
}

// ColumnLayout describes where the record columns live in a sheet.
// A value of -1 means the column was not found.
type ColumnLayout struct {
	Product   int `json:"product"`
	Spec      int `json:"spec"`
	Quantity  int `json:"quantity"`
	Unit      int `json:"unit"`
	UnitPrice int `json:"unit_price"`
	Amount    int `json:"amount"`
	OrderNo   int `json:"order_no"`
	// DataStart is the first row index containing record data
	DataStart int `json:"data_start"`
	// HeaderRow is the row the layout was located on, -1 for fallback
	HeaderRow int `json:"header_row"`
}

// HasColumn reports whether the given column index is present
func HasColumn(idx int) bool {
	return idx >= 0
}

// Issue represents a per-file warning raised during validation
type Issue struct {
	// FileName is the base name of the file the issue concerns
	FileName string `json:"file_name"`
	// Message describes the problem
	Message string `json:"message"`
}

// String returns a display form of the issue
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.FileName, i.Message)
}

// FileResult is the outcome of extracting a single file
type FileResult struct {
	// FilePath is the file that was processed
	FilePath string `json:"file_path"`
	// Records are the rows extracted from the file
	Records []Record `json:"records"`
	// Err is the fatal error that rejected the file, if any
	Err error `json:"-"`
}

// ProcessResult is the tri-partitioned outcome of processing a batch
// of files: accepted records plus error and warning issues.
type ProcessResult struct {
	// Records are the accepted delivery order rows across all files
	Records []Record `json:"records"`
	// Errors are fatal per-file issues; each error rejects its file's
	// entire record batch
	Errors []Issue `json:"errors"`
	// Warnings are non-fatal issues, sorted and deduplicated
	Warnings []Issue `json:"warnings"`
	// FilesProcessed is the number of files that contributed records
	FilesProcessed int `json:"files_processed"`
}

// SummaryRow aggregates records sharing a product, specification, and
// unit.
type SummaryRow struct {
	ProductName   string  `json:"product_name"`
	Specification string  `json:"specification"`
	Unit          string  `json:"unit"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
	// AveragePrice is TotalAmount / TotalQuantity rounded to 2
	// decimals, 0 when TotalQuantity is 0
	AveragePrice float64 `json:"average_price"`
	// Customers lists contributing customer names in first-seen order
	Customers []string `json:"customers"`
}

// CustomerMonthKey identifies a customer and year-month grouping bucket
type CustomerMonthKey struct {
	CustomerName string `json:"customer_name"`
	YearMonth    string `json:"year_month"`
}

// String returns a display form of the grouping key
func (k CustomerMonthKey) String() string {
	return fmt.Sprintf("%s/%s", k.CustomerName, k.YearMonth)
}

// CustomerMonthGroup holds the records for one customer in one month
type CustomerMonthGroup struct {
	Key     CustomerMonthKey `json:"key"`
	Records []Record         `json:"records"`
}

// SourceFile describes a spreadsheet discovered during directory scan
type SourceFile struct {
	// Path is the absolute or scan-relative path to the file
	Path string `json:"path"`
	// CustomerType is the first-level subdirectory name, or the
	// default label for files at the scan root
	CustomerType string `json:"customer_type"`
}

// ParseDate attempts to parse a date string using the accepted layouts
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range AcceptedDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

// NormalizeDate parses a date string and re-renders it in the
// canonical YYYY-MM-DD layout. It returns the input unchanged when no
// layout matches.
func NormalizeDate(value string) string {
	if t, err := ParseDate(value); err == nil {
		return t.Format(DateLayout)
	}
	return strings.TrimSpace(value)
}
