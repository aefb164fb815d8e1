package config

import (
	"os"
	"path/filepath"
	"testing"

	"delivery-order-service/internal/reporter"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if c.RawDataPath != "raw-data" {
		t.Errorf("RawDataPath = %q, want raw-data", c.RawDataPath)
	}
	if c.OutputPath != "output" {
		t.Errorf("OutputPath = %q, want output", c.OutputPath)
	}
	if c.Processing.MaxConcurrentFiles != 4 {
		t.Errorf("MaxConcurrentFiles = %d, want 4", c.Processing.MaxConcurrentFiles)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid defaults", func(c *AppConfig) {}, false},
		{"empty raw data path", func(c *AppConfig) { c.RawDataPath = "" }, true},
		{"empty output path", func(c *AppConfig) { c.OutputPath = "" }, true},
		{"zero workers", func(c *AppConfig) { c.Processing.MaxConcurrentFiles = 0 }, true},
		{"bad report format", func(c *AppConfig) { c.Report.Format = reporter.Format("xml") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deliveryctl.yaml")
	content := `raw_data_path: /data/orders
output_path: /data/statements
processing:
  max_concurrent_files: 8
statement:
  company_name: 测试公司
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if c.RawDataPath != "/data/orders" {
		t.Errorf("RawDataPath = %q, want /data/orders", c.RawDataPath)
	}
	if c.Processing.MaxConcurrentFiles != 8 {
		t.Errorf("MaxConcurrentFiles = %d, want 8", c.Processing.MaxConcurrentFiles)
	}
	if c.Statement.CompanyName != "测试公司" {
		t.Errorf("CompanyName = %q, want 测试公司", c.Statement.CompanyName)
	}
	if c.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", c.Logging.Level)
	}
	// unset keys keep their defaults
	if c.Report.Format != reporter.FormatConsole {
		t.Errorf("Report.Format = %q, want console default", c.Report.Format)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() with explicit missing file should fail")
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DELIVERYCTL_RAW_DATA_PATH", "/env/orders")

	c, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.RawDataPath != "/env/orders" {
		t.Errorf("RawDataPath = %q, want env override /env/orders", c.RawDataPath)
	}
}
