package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"delivery-order-service/internal/aggregate"
	"delivery-order-service/internal/discovery"
	"delivery-order-service/internal/models"
	"delivery-order-service/internal/reconciler"
	"delivery-order-service/internal/reporter"
	apperrors "delivery-order-service/pkg/errors"
	"delivery-order-service/pkg/logger"
)

var (
	scanFormat     string
	scanOutput     string
	scanWorkers    int
	scanShowDetail bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Scan a directory and report extracted delivery orders",
	Long: `Scan walks the given directory (or the configured raw data path),
extracts delivery order records from every spreadsheet, validates
them, and renders a validation report without writing statements.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "report format: console, json, or csv")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "write the report to a file instead of stdout")
	scanCmd.Flags().IntVarP(&scanWorkers, "workers", "w", 0, "number of files extracted in parallel")
	scanCmd.Flags().BoolVar(&scanShowDetail, "detail", false, "include every accepted record in console output")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	root := appConfig.RawDataPath
	if len(args) > 0 {
		root = args[0]
	}

	result, err := runPipeline(cmd, root)
	if err != nil {
		return err
	}

	reportConfig := &appConfig.Report
	if scanFormat != "" {
		reportConfig.Format = reporter.Format(scanFormat)
	}
	if scanOutput != "" {
		reportConfig.OutputPath = scanOutput
	}
	reportConfig.Verbose = scanShowDetail

	rep, err := reporter.NewReporter(reportConfig, logger.GetGlobalLogger())
	if err != nil {
		return err
	}
	if err := rep.Generate(result, aggregate.Summarize(result.Records)); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		return apperrors.ValidationError(apperrors.CodeInvalidDate,
			fmt.Sprintf("%d file(s) were rejected during validation", len(result.Errors)), nil).
			WithUserMessage("some files were rejected, see the report errors section")
	}
	return nil
}

// runPipeline performs discovery, extraction, and reconciliation for
// the given root directory
func runPipeline(cmd *cobra.Command, root string) (*models.ProcessResult, error) {
	log := logger.GetGlobalLogger()

	scanner := discovery.NewScanner(log)
	files, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	orchestratorConfig := appConfig.OrchestratorConfig()
	if scanWorkers > 0 {
		orchestratorConfig.MaxConcurrentFiles = scanWorkers
	}

	orchestrator := reconciler.NewOrchestrator(orchestratorConfig, log)
	result := orchestrator.Process(cmd.Context(), files)

	log.WithFields(logger.Fields{
		"files":    len(files),
		"records":  len(result.Records),
		"errors":   len(result.Errors),
		"warnings": len(result.Warnings),
	}).Info("Pipeline complete")

	return result, nil
}
