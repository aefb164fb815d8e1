package reconciler

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"delivery-order-service/internal/models"
)

// writeTestWorkbook creates a small delivery order workbook on disk
func writeTestWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("coordinates: %v", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestOrchestratorProcess(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "东方建材2023-06-15.xlsx")
	writeTestWorkbook(t, good, [][]interface{}{
		{"客户：东方建材", "", "日期：2023-06-15"},
		{"货名", "规格", "数量", "单位", "单价", "金额"},
		{"钢管", "160*1000", "10", "根", "25", "250"},
		{"铁丝", "2mm", "3", "卷", "12", "36"},
		{"合计", "", "13", "", "", "286"},
	})

	empty := filepath.Join(dir, "空文件.xlsx")
	writeTestWorkbook(t, empty, [][]interface{}{
		{"没有表头的说明文字"},
	})

	files := []models.SourceFile{
		{Path: good, CustomerType: "月结"},
		{Path: empty, CustomerType: "月结"},
		{Path: filepath.Join(dir, "不存在.xlsx"), CustomerType: "月结"},
	}

	o := NewOrchestrator(&Config{MaxConcurrentFiles: 2}, testLogger())
	result := o.Process(context.Background(), files)

	if len(result.Records) != 2 {
		t.Fatalf("accepted %d records, want 2", len(result.Records))
	}
	if result.Records[0].ProductName != "钢管" || result.Records[1].ProductName != "铁丝" {
		t.Errorf("records = %+v, want 钢管 then 铁丝", result.Records)
	}
	if result.Records[0].CustomerName != "东方建材" {
		t.Errorf("CustomerName = %q, want 东方建材", result.Records[0].CustomerName)
	}
	if result.Records[0].CustomerType != "月结" {
		t.Errorf("CustomerType = %q, want 月结", result.Records[0].CustomerType)
	}
	if len(result.Errors) != 1 {
		t.Errorf("errors = %v, want 1 for the missing file", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v, want 1 for the empty file", result.Warnings)
	}
	if result.FilesProcessed != 1 {
		t.Errorf("FilesProcessed = %d, want 1", result.FilesProcessed)
	}
}

func TestOrchestratorDeterministicOrder(t *testing.T) {
	dir := t.TempDir()

	var files []models.SourceFile
	products := []string{"钢管", "铁丝", "水泥", "砂石", "木方"}
	for i, product := range products {
		path := filepath.Join(dir, product+".xlsx")
		writeTestWorkbook(t, path, [][]interface{}{
			{"客户：同一客户", "日期：2023-06-15"},
			{"货名", "规格", "数量", "单位"},
			{product, "", float64(i + 1), "件"},
		})
		files = append(files, models.SourceFile{Path: path, CustomerType: "月结"})
	}

	o := NewOrchestrator(&Config{MaxConcurrentFiles: 4}, testLogger())
	result := o.Process(context.Background(), files)

	if len(result.Records) != len(products) {
		t.Fatalf("accepted %d records, want %d", len(result.Records), len(products))
	}
	// collection is by input index, so record order follows discovery
	// order regardless of worker scheduling
	for i, product := range products {
		if result.Records[i].ProductName != product {
			t.Errorf("record %d = %q, want %q", i, result.Records[i].ProductName, product)
		}
	}
}
