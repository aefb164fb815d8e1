// Package cmd implements the deliveryctl command line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"delivery-order-service/cmd/deliveryctl/config"
	"delivery-order-service/pkg/logger"
)

var (
	cfgFile   string
	verbose   bool
	appConfig *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "deliveryctl",
	Short: "Extract, validate, and reconcile delivery order spreadsheets",
	Long: `deliveryctl ingests heterogeneous delivery order spreadsheets,
heuristically locates their headers and metadata, validates the
extracted records, and produces aggregated reports and per-customer
monthly statement workbooks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appConfig, err = config.LoadConfig(cfgFile)
		if err != nil {
			return err
		}

		loggerConfig := appConfig.LoggerConfig()
		if verbose {
			loggerConfig.Level = logger.DebugLevel
		}
		log, err := logger.NewLogger(loggerConfig)
		if err != nil {
			return err
		}
		logger.SetGlobalLogger(log)
		return nil
	},
}

// Execute runs the root command and exits with an appropriate code on
// failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		HandleError(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./deliveryctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
