package statement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"delivery-order-service/internal/models"
	"delivery-order-service/pkg/logger"
)

func testLogger() logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: logger.TextFormat,
		Output: logger.StderrOutput,
	})
	return log
}

func TestAmountToChinese(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "零元整"},
		{1, "壹元整"},
		{10, "壹拾元整"},
		{100, "壹佰元整"},
		{123.45, "壹佰贰拾叁元肆角伍分"},
		{1005, "壹仟零伍元整"},
		{10000, "壹万元整"},
		{10.5, "壹拾元伍角"},
		{0.05, "零元伍分"},
		{286, "贰佰捌拾陆元整"},
	}

	for _, tt := range tests {
		if got := AmountToChinese(tt.amount); got != tt.expected {
			t.Errorf("AmountToChinese(%f) = %q, want %q", tt.amount, got, tt.expected)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"2024-03-15", "2024-03-15"},
		{"2024/3/15", "2024-03-15"},
		{"2024年3月15日", "2024-03-15"},
		{"2024-03-15 08:00:00", "2024-03-15"},
		{"2024-03-15T08:00:00", "2024-03-15"},
		{"乱七八糟", "乱七八糟"},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.value); got != tt.expected {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.value, got, tt.expected)
		}
	}
}

func TestFormatYearMonth(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"2024-01", "2024年1月"},
		{"2024-12", "2024年12月"},
		{"unknown", "unknown"},
		{"2024-xx", "2024-xx"},
	}

	for _, tt := range tests {
		if got := FormatYearMonth(tt.value); got != tt.expected {
			t.Errorf("FormatYearMonth(%q) = %q, want %q", tt.value, got, tt.expected)
		}
	}
}

func sampleGroup() models.CustomerMonthGroup {
	return models.CustomerMonthGroup{
		Key: models.CustomerMonthKey{CustomerName: "东方建材", YearMonth: "2023-06"},
		Records: []models.Record{
			{
				CustomerName:  "东方建材",
				DeliveryDate:  "2023-06-20",
				DeliveryNo:    "DN-002",
				ProductName:   "铁丝",
				Specification: "2mm",
				Quantity:      3,
				Unit:          "卷",
				UnitPrice:     12,
				Amount:        36,
			},
			{
				CustomerName:  "东方建材",
				DeliveryDate:  "2023-06-15",
				DeliveryNo:    "DN-001",
				OrderNo:       "PO-123",
				ProductName:   "钢管",
				Specification: "160*1000",
				Quantity:      10,
				Unit:          "根",
				UnitPrice:     25,
				Amount:        250,
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "statement.xlsx")

	g := NewGenerator(&Config{CompanyName: "测试公司", Address: "测试地址", Phone: "123", Fax: "456"}, testLogger())
	if err := g.Generate(sampleGroup(), out); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("open generated workbook: %v", err)
	}
	defer f.Close()
	sheetName := f.GetSheetName(0)

	if got, _ := f.GetCellValue(sheetName, "A1"); got != "测试公司" {
		t.Errorf("A1 = %q, want company name", got)
	}
	if got, _ := f.GetCellValue(sheetName, "A4"); got != "客户：东方建材" {
		t.Errorf("A4 = %q, want customer line", got)
	}
	if got, _ := f.GetCellValue(sheetName, "D4"); got != "2023年6月对账单" {
		t.Errorf("D4 = %q, want statement period", got)
	}
	// a record carries an order number, so the order-number column is
	// present and the header spans 9 columns
	if got, _ := f.GetCellValue(sheetName, "C5"); got != "订单号" {
		t.Errorf("C5 = %q, want 订单号 header", got)
	}
	if got, _ := f.GetCellValue(sheetName, "I5"); got != "备注" {
		t.Errorf("I5 = %q, want 备注 header", got)
	}
	// rows are sorted by date: DN-001 (06-15) before DN-002 (06-20)
	if got, _ := f.GetCellValue(sheetName, "A6"); got != "2023-06-15" {
		t.Errorf("A6 = %q, want earliest date first", got)
	}
	if got, _ := f.GetCellValue(sheetName, "B6"); got != "DN-001" {
		t.Errorf("B6 = %q, want DN-001", got)
	}
	if got, _ := f.GetCellValue(sheetName, "D6"); got != "钢管 160*1000" {
		t.Errorf("D6 = %q, want combined product and spec", got)
	}
	if got, _ := f.GetCellFormula(sheetName, "H6"); got != "F6*G6" {
		t.Errorf("H6 formula = %q, want F6*G6", got)
	}
	// summary row sits at record count + 8
	if got, _ := f.GetCellFormula(sheetName, "E10"); got != "SUM(H6:H7)" {
		t.Errorf("E10 formula = %q, want SUM over amount column", got)
	}
}

func TestGenerateWithoutOrderNo(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "statement.xlsx")

	group := sampleGroup()
	for i := range group.Records {
		group.Records[i].OrderNo = ""
	}

	g := NewGenerator(nil, testLogger())
	if err := g.Generate(group, out); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("open generated workbook: %v", err)
	}
	defer f.Close()
	sheetName := f.GetSheetName(0)

	// without order numbers the column is dropped and 品名规格 moves up
	if got, _ := f.GetCellValue(sheetName, "C5"); got != "品名规格" {
		t.Errorf("C5 = %q, want 品名规格 header", got)
	}
	if got, _ := f.GetCellFormula(sheetName, "G6"); got != "E6*F6" {
		t.Errorf("G6 formula = %q, want E6*F6", got)
	}
}

func TestGenerateAllSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(nil, testLogger())

	groups := []models.CustomerMonthGroup{
		sampleGroup(),
		{Key: models.CustomerMonthKey{CustomerName: "", YearMonth: "2023-06"}},
	}

	generated, skipped, err := g.GenerateAll(groups, dir)
	if err != nil {
		t.Fatalf("GenerateAll() error = %v", err)
	}
	if generated != 1 || skipped != 0 {
		t.Errorf("first run generated=%d skipped=%d, want 1/0", generated, skipped)
	}

	expected := filepath.Join(dir, "东方建材", "statement_东方建材_2023-06.xlsx")
	if _, err := os.Stat(expected); err != nil {
		t.Fatalf("expected statement at %s: %v", expected, err)
	}

	generated, skipped, err = g.GenerateAll(groups, dir)
	if err != nil {
		t.Fatalf("GenerateAll() second run error = %v", err)
	}
	if generated != 0 || skipped != 1 {
		t.Errorf("second run generated=%d skipped=%d, want 0/1", generated, skipped)
	}
}
