package statement

import (
	"strconv"
	"strings"
	"time"

	"delivery-order-service/internal/models"
)

var chineseDigits = []string{"零", "壹", "贰", "叁", "肆", "伍", "陆", "柒", "捌", "玖"}
var chineseUnits = []string{"", "拾", "佰", "仟", "万", "拾", "佰", "仟", "亿"}

// AmountToChinese renders a monetary amount in Chinese uppercase
// accounting notation, e.g. 123.45 becomes 壹佰贰拾叁元肆角伍分.
func AmountToChinese(amount float64) string {
	formatted := strconv.FormatFloat(amount, 'f', 2, 64)
	parts := strings.SplitN(formatted, ".", 2)
	integerPart := parts[0]
	decimalPart := "00"
	if len(parts) == 2 {
		decimalPart = parts[1]
	}

	var result string
	for i := 0; i < len(integerPart); i++ {
		ch := integerPart[len(integerPart)-1-i]
		digit := 0
		if ch >= '0' && ch <= '9' {
			digit = int(ch - '0')
		}
		if digit != 0 {
			unit := ""
			if i < len(chineseUnits) {
				unit = chineseUnits[i]
			}
			result = chineseDigits[digit] + unit + result
		} else if result != "" && !strings.HasPrefix(result, "零") {
			result = "零" + result
		}
	}

	for strings.Contains(result, "零零") {
		result = strings.ReplaceAll(result, "零零", "零")
	}
	result = strings.TrimSuffix(result, "零")
	if result == "" {
		result = "零"
	}
	result += "元"

	jiao := int(decimalPart[0] - '0')
	fen := 0
	if len(decimalPart) > 1 {
		fen = int(decimalPart[1] - '0')
	}

	if jiao == 0 && fen == 0 {
		result += "整"
	} else {
		if jiao != 0 {
			result += chineseDigits[jiao] + "角"
		}
		if fen != 0 {
			result += chineseDigits[fen] + "分"
		}
	}

	return result
}

// statementDateLayouts extends the accepted layouts with the
// timestamp form seen in merged exports
var statementDateLayouts = append([]string{"2006-1-2 15:04:05"}, models.AcceptedDateLayouts...)

// FormatDate renders a record date in the canonical YYYY-MM-DD form.
// Unparsable values lose any ISO "T" time suffix and are otherwise
// passed through.
func FormatDate(value string) string {
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(models.DateLayout)
		}
	}
	if idx := strings.Index(value, "T"); idx >= 0 {
		return value[:idx]
	}
	return value
}

// FormatYearMonth renders a "2024-01" bucket as the display form
// "2024年1月". Values that do not look like a year-month pass through.
func FormatYearMonth(yearMonth string) string {
	parts := strings.Split(yearMonth, "-")
	if len(parts) != 2 {
		return yearMonth
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return yearMonth
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return yearMonth
	}
	return strconv.Itoa(year) + "年" + strconv.Itoa(month) + "月"
}
