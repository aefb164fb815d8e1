// Package reporter renders processing results as console text, JSON,
// or CSV for the validation summary surface.
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"delivery-order-service/internal/models"
	"delivery-order-service/internal/statement"
	apperrors "delivery-order-service/pkg/errors"
	"delivery-order-service/pkg/logger"
)

// Format represents the report output format
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
)

// Config holds report rendering settings
type Config struct {
	Format Format `json:"format" mapstructure:"format"`
	// OutputPath writes the report to a file instead of stdout when
	// non-empty
	OutputPath string `json:"output_path" mapstructure:"output_path"`
	// Verbose includes every accepted record in console output
	Verbose bool `json:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns reporting defaults
func DefaultConfig() *Config {
	return &Config{Format: FormatConsole}
}

// Validate checks the report configuration
func (c *Config) Validate() error {
	switch c.Format {
	case FormatConsole, FormatJSON, FormatCSV:
		return nil
	default:
		return apperrors.ConfigurationError(apperrors.CodeInvalidConfig,
			fmt.Sprintf("unsupported report format: %s", c.Format), nil)
	}
}

// Report is the serializable shape of a full processing report
type Report struct {
	GeneratedAt        time.Time           `json:"generated_at"`
	FilesProcessed     int                 `json:"files_processed"`
	RecordCount        int                 `json:"record_count"`
	TotalAmount        float64             `json:"total_amount"`
	TotalAmountChinese string              `json:"total_amount_chinese"`
	Errors             []models.Issue      `json:"errors"`
	Warnings           []models.Issue      `json:"warnings"`
	Summary            []models.SummaryRow `json:"summary"`
}

// Reporter renders processing results
type Reporter struct {
	config *Config
	logger logger.Logger
}

// NewReporter creates a Reporter with the given configuration
func NewReporter(config *Config, log logger.Logger) (*Reporter, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Reporter{config: config, logger: log.WithComponent("reporter")}, nil
}

// BuildReport assembles a Report from a processing result and its
// summary rows
func BuildReport(result *models.ProcessResult, summary []models.SummaryRow) *Report {
	total := 0.0
	for _, row := range summary {
		total += row.TotalAmount
	}
	return &Report{
		GeneratedAt:        time.Now(),
		FilesProcessed:     result.FilesProcessed,
		RecordCount:        len(result.Records),
		TotalAmount:        total,
		TotalAmountChinese: statement.AmountToChinese(total),
		Errors:             result.Errors,
		Warnings:           result.Warnings,
		Summary:            summary,
	}
}

// Generate renders the report in the configured format
func (r *Reporter) Generate(result *models.ProcessResult, summary []models.SummaryRow) error {
	report := BuildReport(result, summary)

	out, closer, err := r.output()
	if err != nil {
		return err
	}
	defer closer()

	switch r.config.Format {
	case FormatJSON:
		err = r.writeJSON(out, report)
	case FormatCSV:
		err = r.writeCSV(out, report)
	default:
		err = r.writeConsole(out, report, result)
	}
	if err != nil {
		return apperrors.InternalError(apperrors.CodeReportGeneration,
			"failed to render report", err)
	}

	r.logger.WithFields(logger.Fields{
		"format":  r.config.Format,
		"records": report.RecordCount,
	}).Info("Report generated")

	return nil
}

func (r *Reporter) output() (io.Writer, func(), error) {
	if r.config.OutputPath == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(r.config.OutputPath)
	if err != nil {
		return nil, nil, apperrors.FileError(apperrors.CodeFileAccess,
			"failed to create report file", err).WithContext("path", r.config.OutputPath)
	}
	return f, func() { f.Close() }, nil
}

func (r *Reporter) writeJSON(out io.Writer, report *Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func (r *Reporter) writeCSV(out io.Writer, report *Report) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write([]string{"product_name", "specification", "unit",
		"total_quantity", "total_amount", "average_price", "customers"}); err != nil {
		return err
	}
	for _, row := range report.Summary {
		record := []string{
			row.ProductName,
			row.Specification,
			row.Unit,
			strconv.FormatFloat(row.TotalQuantity, 'f', -1, 64),
			strconv.FormatFloat(row.TotalAmount, 'f', 2, 64),
			strconv.FormatFloat(row.AveragePrice, 'f', 2, 64),
			strings.Join(row.Customers, ", "),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

func (r *Reporter) writeConsole(out io.Writer, report *Report, result *models.ProcessResult) error {
	fmt.Fprintln(out, "==== 送货单处理报告 ====")
	fmt.Fprintf(out, "处理文件数: %d\n", report.FilesProcessed)
	fmt.Fprintf(out, "记录总数: %d\n", report.RecordCount)
	fmt.Fprintf(out, "金额合计: %.2f (%s)\n", report.TotalAmount, report.TotalAmountChinese)

	if len(report.Errors) > 0 {
		fmt.Fprintf(out, "\n错误 (%d):\n", len(report.Errors))
		for _, issue := range report.Errors {
			fmt.Fprintf(out, "  %s\n", issue)
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintf(out, "\n警告 (%d):\n", len(report.Warnings))
		for _, issue := range report.Warnings {
			fmt.Fprintf(out, "  %s\n", issue)
		}
	}

	if len(report.Summary) > 0 {
		fmt.Fprintln(out, "\n汇总 (按金额降序):")
		for _, row := range report.Summary {
			fmt.Fprintf(out, "  %-20s %-12s %-6s 数量=%.2f 金额=%.2f 均价=%.2f\n",
				row.ProductName, row.Specification, row.Unit,
				row.TotalQuantity, row.TotalAmount, row.AveragePrice)
		}
	}

	if r.config.Verbose && len(result.Records) > 0 {
		fmt.Fprintln(out, "\n明细:")
		for _, rec := range result.Records {
			fmt.Fprintf(out, "  [%s] %s %s x%.2f %s (%s)\n",
				rec.DeliveryDate, rec.ProductName, rec.Specification,
				rec.Quantity, rec.Unit, rec.CustomerName)
		}
	}

	return nil
}
