// Package extract implements the heuristic layout detection and record
// extraction over typed sheet grids: header location, metadata hunting,
// and row-by-row record emission.
package extract

import (
	"strings"
	"unicode/utf8"
)

// field identifies a logical column located by header keywords
type field int

const (
	fieldProduct field = iota
	fieldSpec
	fieldQuantity
	fieldUnit
	fieldUnitPrice
	fieldAmount
	fieldOrderNo
)

// keywordFamily maps a logical field to the label keywords that
// identify it. Matching is case-insensitive containment.
type keywordFamily struct {
	field    field
	keywords []string
}

// headerFamilies lists the column label families in match order. A
// cell claims at most one family, so families whose keywords are
// substrings of other families' keywords ("unit" vs "unit price")
// must come after them.
var headerFamilies = []keywordFamily{
	{fieldUnitPrice, []string{"单价", "unit price", "price"}},
	{fieldProduct, []string{"货名", "品名", "产品名称", "product"}},
	{fieldSpec, []string{"规格", "spec"}},
	{fieldQuantity, []string{"数量", "quantity", "qty"}},
	{fieldAmount, []string{"金额", "amount"}},
	{fieldOrderNo, []string{"订单号", "order no"}},
	{fieldUnit, []string{"单位", "unit"}},
}

// Metadata label keywords
var (
	customerKeywords   = []string{"客户", "单位", "customer"}
	dateKeywords       = []string{"日期", "date"}
	deliveryNoKeywords = []string{"no", "单号"}
	orderNoKeywords    = []string{"订单号", "order number"}
)

// totalsMarkers end the item table when found in a row's first cell
var totalsMarkers = []string{"合计", "送货单位"}

// matchesAny reports whether text contains any of the keywords,
// case-insensitively
func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// afterSeparator returns the trimmed text following the first colon
// separator, ASCII or full-width. ok is false when no separator is
// present or nothing follows it.
func afterSeparator(text string) (string, bool) {
	for i, r := range text {
		if r == ':' || r == '：' {
			rest := strings.TrimSpace(text[i+utf8.RuneLen(r):])
			if rest == "" {
				return "", false
			}
			return rest, true
		}
	}
	return "", false
}
