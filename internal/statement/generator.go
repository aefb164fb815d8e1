// Package statement renders per-customer monthly statement workbooks
// from grouped delivery order records.
package statement

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"delivery-order-service/internal/models"
	apperrors "delivery-order-service/pkg/errors"
	"delivery-order-service/pkg/logger"
)

// Config holds the letterhead fields printed at the top of every
// statement.
type Config struct {
	CompanyName string `json:"company_name" mapstructure:"company_name"`
	Address     string `json:"address" mapstructure:"address"`
	Phone       string `json:"phone" mapstructure:"phone"`
	Fax         string `json:"fax" mapstructure:"fax"`
}

// DefaultConfig returns the default letterhead
func DefaultConfig() *Config {
	return &Config{
		CompanyName: "对账单",
		Address:     "",
		Phone:       "",
		Fax:         "",
	}
}

// Generator writes statement workbooks
type Generator struct {
	config *Config
	logger logger.Logger
}

// NewGenerator creates a Generator with the given letterhead config
func NewGenerator(config *Config, log logger.Logger) *Generator {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Generator{config: config, logger: log.WithComponent("statement")}
}

// GenerateAll writes one statement per customer-month group under
// outputDir, one subdirectory per customer. Groups whose customer is
// empty are skipped, and existing statement files are never
// overwritten. It returns the generated and skipped counts.
func (g *Generator) GenerateAll(groups []models.CustomerMonthGroup, outputDir string) (int, int, error) {
	generated := 0
	skipped := 0

	for _, group := range groups {
		if group.Key.CustomerName == "" {
			continue
		}

		customerDir := filepath.Join(outputDir, group.Key.CustomerName)
		if err := os.MkdirAll(customerDir, 0o755); err != nil {
			return generated, skipped, apperrors.FileError(apperrors.CodeDirectoryCreate,
				"failed to create customer directory", err).WithContext("dir", customerDir)
		}

		fileName := fmt.Sprintf("statement_%s_%s.xlsx", group.Key.CustomerName, group.Key.YearMonth)
		outputFile := filepath.Join(customerDir, fileName)

		if _, err := os.Stat(outputFile); err == nil {
			g.logger.WithField("file", outputFile).Debug("Statement exists, skipping")
			skipped++
			continue
		}

		if err := g.Generate(group, outputFile); err != nil {
			return generated, skipped, err
		}
		generated++
	}

	return generated, skipped, nil
}

// Generate writes a single statement workbook for the group
func (g *Generator) Generate(group models.CustomerMonthGroup, outputFile string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)

	records := make([]models.Record, len(group.Records))
	copy(records, group.Records)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DeliveryDate < records[j].DeliveryDate
	})

	hasOrderNo := false
	for _, rec := range records {
		if rec.OrderNo != "" {
			hasOrderNo = true
			break
		}
	}

	if err := g.writeLayout(f, sheetName, group, records, hasOrderNo); err != nil {
		return apperrors.WorkbookError(apperrors.CodeWorkbookWrite,
			"failed to build statement sheet", err).WithContext("file", outputFile)
	}

	if err := f.SaveAs(outputFile); err != nil {
		return apperrors.WorkbookError(apperrors.CodeWorkbookWrite,
			"failed to save statement workbook", err).WithContext("file", outputFile)
	}

	g.logger.WithFields(logger.Fields{
		"file":    outputFile,
		"records": len(records),
	}).Debug("Statement generated")

	return nil
}

func (g *Generator) writeLayout(f *excelize.File, sheetName string, group models.CustomerMonthGroup, records []models.Record, hasOrderNo bool) error {
	// column count: 9 with the order-number column, 8 without
	totalCols := 8
	if hasOrderNo {
		totalCols = 9
	}

	if err := g.setColumnWidths(f, sheetName, hasOrderNo); err != nil {
		return err
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return err
	}

	lastColName, err := excelize.ColumnNumberToName(totalCols)
	if err != nil {
		return err
	}

	// letterhead rows
	if err := f.MergeCell(sheetName, "A1", lastColName+"1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastColName+"1", styles.title); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, "A1", g.config.CompanyName); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheetName, 1, 30); err != nil {
		return err
	}

	if err := f.MergeCell(sheetName, "A2", lastColName+"2"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A2", lastColName+"2", styles.subtitle); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, "A2", "地址："+g.config.Address); err != nil {
		return err
	}

	if err := f.MergeCell(sheetName, "A3", lastColName+"3"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A3", lastColName+"3", styles.subtitle); err != nil {
		return err
	}
	contact := fmt.Sprintf("电话：%s    传真：%s", g.config.Phone, g.config.Fax)
	if err := f.SetCellValue(sheetName, "A3", contact); err != nil {
		return err
	}

	// customer and period row
	if err := f.MergeCell(sheetName, "A4", "C4"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, "A4", "客户："+group.Key.CustomerName); err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, "D4", "F4"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "D4", "F4", styles.centered); err != nil {
		return err
	}
	monthText := FormatYearMonth(group.Key.YearMonth) + "对账单"
	if err := f.SetCellValue(sheetName, "D4", monthText); err != nil {
		return err
	}

	// table header
	headers := []string{"送货日期", "送货单号"}
	if hasOrderNo {
		headers = append(headers, "订单号")
	}
	headers = append(headers, "品名规格", "单位", "数量", "单价", "金额", "备注")
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 5)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, styles.header); err != nil {
			return err
		}
	}

	qtyCol := 6
	priceCol := 7
	amountCol := 8
	if !hasOrderNo {
		qtyCol, priceCol, amountCol = 5, 6, 7
	}
	qtyColName, err := excelize.ColumnNumberToName(qtyCol)
	if err != nil {
		return err
	}
	priceColName, err := excelize.ColumnNumberToName(priceCol)
	if err != nil {
		return err
	}
	amountColName, err := excelize.ColumnNumberToName(amountCol)
	if err != nil {
		return err
	}

	// data rows
	startDataRow := 6
	lastDataRow := startDataRow
	for idx, rec := range records {
		row := startDataRow + idx
		lastDataRow = row

		values := []interface{}{FormatDate(rec.DeliveryDate), rec.DeliveryNo}
		if hasOrderNo {
			values = append(values, rec.OrderNo)
		}
		productSpec := rec.ProductName
		if rec.Specification != "" {
			productSpec += " " + rec.Specification
		}
		values = append(values, productSpec, rec.Unit, rec.Quantity, rec.UnitPrice)

		for i, value := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}

		amountCell, err := excelize.CoordinatesToCellName(amountCol, row)
		if err != nil {
			return err
		}
		formula := fmt.Sprintf("%s%d*%s%d", qtyColName, row, priceColName, row)
		if err := f.SetCellFormula(sheetName, amountCell, formula); err != nil {
			return err
		}

		firstCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		remarkCell, err := excelize.CoordinatesToCellName(totalCols, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, firstCell, remarkCell, styles.cell); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, amountCell, amountCell, styles.amount); err != nil {
			return err
		}
	}

	// summary row: Chinese uppercase total on the left, numeric SUM on
	// the right
	summaryRow := len(records) + 8
	sumRef := fmt.Sprintf("SUM(%s%d:%s%d)", amountColName, startDataRow, amountColName, lastDataRow)

	capsStart, err := excelize.CoordinatesToCellName(1, summaryRow)
	if err != nil {
		return err
	}
	capsEnd, err := excelize.CoordinatesToCellName(4, summaryRow)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, capsStart, capsEnd); err != nil {
		return err
	}
	capsFormula := fmt.Sprintf(
		`"合计人民币大写：" & IF(%[1]s=0,"零元整",IF(%[1]s<0,"负","") & SUBSTITUTE(SUBSTITUTE(SUBSTITUTE(TEXT(INT(ABS(%[1]s)),"[DBNum2]0元") & TEXT(MOD(INT(ABS(%[1]s)*10),10),"[DBNum2]0角") & TEXT(MOD(INT(ABS(%[1]s)*100),10),"[DBNum2]0分"),"零角零分","整"),"零分","整"),"零角","零"))`,
		sumRef)
	if err := f.SetCellFormula(sheetName, capsStart, capsFormula); err != nil {
		return err
	}

	totalStart, err := excelize.CoordinatesToCellName(5, summaryRow)
	if err != nil {
		return err
	}
	totalEnd, err := excelize.CoordinatesToCellName(totalCols, summaryRow)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, totalStart, totalEnd); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, totalStart, totalEnd, styles.total); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheetName, totalStart, sumRef); err != nil {
		return err
	}

	return nil
}

func (g *Generator) setColumnWidths(f *excelize.File, sheetName string, hasOrderNo bool) error {
	widths := []float64{12, 15}
	if hasOrderNo {
		widths = append(widths, 15, 20)
	} else {
		widths = append(widths, 35)
	}
	widths = append(widths, 8, 10, 10, 12, 12)

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// styleSet holds the style IDs used across a statement sheet
type styleSet struct {
	title    int
	subtitle int
	centered int
	header   int
	cell     int
	amount   int
	total    int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	var s styleSet
	var err error

	center := excelize.Alignment{Horizontal: "center", Vertical: "center"}
	thinBorder := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 18, Bold: true},
		Alignment: &center,
	}); err != nil {
		return nil, err
	}
	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &center,
	}); err != nil {
		return nil, err
	}
	if s.centered, err = f.NewStyle(&excelize.Style{
		Alignment: &center,
	}); err != nil {
		return nil, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11, Bold: true},
		Alignment: &center,
		Border:    thinBorder,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}},
	}); err != nil {
		return nil, err
	}
	if s.cell, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorder,
	}); err != nil {
		return nil, err
	}
	if s.amount, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 10},
		Alignment:    &center,
		Border:       thinBorder,
		CustomNumFmt: strPtr(`¥#,##0.00`),
	}); err != nil {
		return nil, err
	}
	if s.total, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 11},
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		CustomNumFmt: strPtr(`"人民币小写："¥#,##0.00"元"`),
	}); err != nil {
		return nil, err
	}

	return &s, nil
}

func strPtr(s string) *string {
	return &s
}
