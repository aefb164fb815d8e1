// Package config loads and validates the application configuration
// from files, environment variables, and flags via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"delivery-order-service/internal/reconciler"
	"delivery-order-service/internal/reporter"
	"delivery-order-service/internal/statement"
	apperrors "delivery-order-service/pkg/errors"
	"delivery-order-service/pkg/logger"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// DELIVERYCTL_LOGGING_LEVEL
const envPrefix = "DELIVERYCTL"

// AppConfig is the root application configuration
type AppConfig struct {
	// RawDataPath is the directory scanned for delivery order files
	RawDataPath string `json:"raw_data_path" mapstructure:"raw_data_path"`
	// OutputPath is where statement workbooks are written
	OutputPath string `json:"output_path" mapstructure:"output_path"`

	Processing ProcessingConfig `json:"processing" mapstructure:"processing"`
	Statement  statement.Config `json:"statement" mapstructure:"statement"`
	Report     reporter.Config  `json:"report" mapstructure:"report"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// ProcessingConfig holds pipeline tuning knobs
type ProcessingConfig struct {
	MaxConcurrentFiles int `json:"max_concurrent_files" mapstructure:"max_concurrent_files"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		RawDataPath: "raw-data",
		OutputPath:  "output",
		Processing: ProcessingConfig{
			MaxConcurrentFiles: 4,
		},
		Statement: *statement.DefaultConfig(),
		Report:    *reporter.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads configuration from an optional config file and the
// environment, layered over the defaults
func LoadConfig(configFile string) (*AppConfig, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("raw_data_path", defaults.RawDataPath)
	v.SetDefault("output_path", defaults.OutputPath)
	v.SetDefault("processing.max_concurrent_files", defaults.Processing.MaxConcurrentFiles)
	v.SetDefault("statement.company_name", defaults.Statement.CompanyName)
	v.SetDefault("statement.address", defaults.Statement.Address)
	v.SetDefault("statement.phone", defaults.Statement.Phone)
	v.SetDefault("statement.fax", defaults.Statement.Fax)
	v.SetDefault("report.format", string(defaults.Report.Format))
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.ConfigurationError(apperrors.CodeMissingConfig,
				"failed to read config file", err).WithContext("file", configFile)
		}
	} else {
		v.SetConfigName("deliveryctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.deliveryctl")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, apperrors.ConfigurationError(apperrors.CodeInvalidConfig,
					"failed to parse config file", err)
			}
		}
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, apperrors.ConfigurationError(apperrors.CodeInvalidConfig,
			"failed to unmarshal configuration", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration for consistency
func (c *AppConfig) Validate() error {
	if c.RawDataPath == "" {
		return apperrors.ConfigurationError(apperrors.CodeInvalidConfig,
			"raw_data_path must not be empty", nil)
	}
	if c.OutputPath == "" {
		return apperrors.ConfigurationError(apperrors.CodeInvalidConfig,
			"output_path must not be empty", nil)
	}
	if c.Processing.MaxConcurrentFiles < 1 {
		return apperrors.ConfigurationError(apperrors.CodeInvalidConfig,
			fmt.Sprintf("max_concurrent_files must be positive, got %d", c.Processing.MaxConcurrentFiles), nil)
	}
	if err := c.Report.Validate(); err != nil {
		return err
	}
	return nil
}

// OrchestratorConfig derives the pipeline configuration
func (c *AppConfig) OrchestratorConfig() *reconciler.Config {
	cfg := reconciler.DefaultConfig()
	cfg.MaxConcurrentFiles = c.Processing.MaxConcurrentFiles
	return cfg
}

// LoggerConfig derives the logger configuration
func (c *AppConfig) LoggerConfig() *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = logger.Level(c.Logging.Level)
	cfg.Format = logger.Format(c.Logging.Format)
	return cfg
}
