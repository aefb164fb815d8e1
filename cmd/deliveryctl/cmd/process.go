package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"delivery-order-service/internal/aggregate"
	"delivery-order-service/internal/reporter"
	"delivery-order-service/internal/statement"
	"delivery-order-service/pkg/logger"
)

var processOutputDir string

var processCmd = &cobra.Command{
	Use:   "process [directory]",
	Short: "Process delivery orders and generate monthly statements",
	Long: `Process runs the full pipeline: scan the raw data directory, extract
and validate records, then write one statement workbook per customer
per month under the output directory. Existing statements are kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processOutputDir, "output-dir", "d", "", "statement output directory")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	root := appConfig.RawDataPath
	if len(args) > 0 {
		root = args[0]
	}
	outputDir := appConfig.OutputPath
	if processOutputDir != "" {
		outputDir = processOutputDir
	}

	result, err := runPipeline(cmd, root)
	if err != nil {
		return err
	}

	log := logger.GetGlobalLogger()
	groups := aggregate.GroupByCustomerMonth(result.Records)
	log.WithField("groups", len(groups)).Info("Grouped records by customer and month")

	generator := statement.NewGenerator(&appConfig.Statement, log)
	generated, skipped, err := generator.GenerateAll(groups, outputDir)
	if err != nil {
		return err
	}

	rep, err := reporter.NewReporter(&appConfig.Report, log)
	if err != nil {
		return err
	}
	if err := rep.Generate(result, aggregate.Summarize(result.Records)); err != nil {
		return err
	}

	fmt.Printf("新生成对账单: %d, 已存在跳过: %d, 输出目录: %s\n", generated, skipped, outputDir)
	return nil
}
