// Package aggregate computes derived views over accepted delivery
// order records: the weighted product summary and the per-customer
// monthly grouping.
package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"delivery-order-service/internal/models"
)

// summaryKey groups records sharing product, specification, and unit
type summaryKey struct {
	product string
	spec    string
	unit    string
}

type summaryAccumulator struct {
	quantity  decimal.Decimal
	amount    decimal.Decimal
	customers []string
	seen      map[string]struct{}
}

// Summarize folds records into one SummaryRow per distinct (product,
// spec, unit) key. Quantities and amounts are accumulated with
// decimal arithmetic so the derived average price survives binary
// float accumulation error. Rows are sorted descending by total
// amount; ties keep first-seen order.
func Summarize(records []models.Record) []models.SummaryRow {
	order := make([]summaryKey, 0)
	groups := make(map[summaryKey]*summaryAccumulator)

	for _, rec := range records {
		key := summaryKey{product: rec.ProductName, spec: rec.Specification, unit: rec.Unit}
		acc, ok := groups[key]
		if !ok {
			acc = &summaryAccumulator{
				quantity: decimal.Zero,
				amount:   decimal.Zero,
				seen:     make(map[string]struct{}),
			}
			groups[key] = acc
			order = append(order, key)
		}
		acc.quantity = acc.quantity.Add(decimal.NewFromFloat(rec.Quantity))
		acc.amount = acc.amount.Add(decimal.NewFromFloat(rec.Amount))
		if rec.CustomerName != "" {
			if _, dup := acc.seen[rec.CustomerName]; !dup {
				acc.seen[rec.CustomerName] = struct{}{}
				acc.customers = append(acc.customers, rec.CustomerName)
			}
		}
	}

	rows := make([]models.SummaryRow, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		row := models.SummaryRow{
			ProductName:   key.product,
			Specification: key.spec,
			Unit:          key.unit,
			TotalQuantity: acc.quantity.InexactFloat64(),
			TotalAmount:   acc.amount.InexactFloat64(),
			Customers:     acc.customers,
		}
		if acc.quantity.IsPositive() {
			row.AveragePrice = acc.amount.Div(acc.quantity).Round(2).InexactFloat64()
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalAmount > rows[j].TotalAmount
	})
	return rows
}

// GroupByCustomerMonth buckets records by customer name and year-month.
// Records whose date cannot be resolved land in the "unknown" bucket
// for their customer. Insertion order within each bucket follows input
// order; the returned groups are sorted by key for deterministic
// iteration.
func GroupByCustomerMonth(records []models.Record) []models.CustomerMonthGroup {
	order := make([]models.CustomerMonthKey, 0)
	groups := make(map[models.CustomerMonthKey][]models.Record)

	for _, rec := range records {
		key := models.CustomerMonthKey{
			CustomerName: rec.CustomerName,
			YearMonth:    rec.YearMonth(),
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rec)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].CustomerName != order[j].CustomerName {
			return order[i].CustomerName < order[j].CustomerName
		}
		return order[i].YearMonth < order[j].YearMonth
	})

	result := make([]models.CustomerMonthGroup, 0, len(order))
	for _, key := range order {
		result = append(result, models.CustomerMonthGroup{Key: key, Records: groups[key]})
	}
	return result
}
