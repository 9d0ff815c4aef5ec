package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Analysis.MetricsPeriod != "1y" {
		t.Errorf("Analysis.MetricsPeriod = %q, want 1y", cfg.Analysis.MetricsPeriod)
	}
	if cfg.Analysis.ForecastPeriod != "2y" {
		t.Errorf("Analysis.ForecastPeriod = %q, want 2y", cfg.Analysis.ForecastPeriod)
	}
	if cfg.Analysis.HorizonDays != 30 {
		t.Errorf("Analysis.HorizonDays = %d, want 30", cfg.Analysis.HorizonDays)
	}
	if len(cfg.Analysis.Benchmarks) != 2 || cfg.Analysis.Benchmarks[0] != "SPY" {
		t.Errorf("Analysis.Benchmarks = %v, want [SPY QQQ]", cfg.Analysis.Benchmarks)
	}
	if cfg.IsProduction() {
		t.Error("default config reports production")
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "advisor.toml")
	content := `
environment = "production"

[server]
port = 9090

[analysis]
horizon_days = 14
benchmarks = ["SPY"]

[clients.eodhd]
timeout = "5s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Analysis.HorizonDays != 14 {
		t.Errorf("Analysis.HorizonDays = %d, want 14", cfg.Analysis.HorizonDays)
	}
	if len(cfg.Analysis.Benchmarks) != 1 {
		t.Errorf("Analysis.Benchmarks = %v, want [SPY]", cfg.Analysis.Benchmarks)
	}
	if cfg.Clients.EODHD.GetTimeout() != 5*time.Second {
		t.Errorf("EODHD timeout = %v, want 5s", cfg.Clients.EODHD.GetTimeout())
	}
	// Unset fields keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/advisor.toml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v, missing files are skipped", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ADVISOR_PORT", "7000")
	t.Setenv("ADVISOR_HORIZON_DAYS", "60")
	t.Setenv("EODHD_API_KEY", "env-key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Analysis.HorizonDays != 60 {
		t.Errorf("Analysis.HorizonDays = %d, want 60", cfg.Analysis.HorizonDays)
	}
	if cfg.Clients.EODHD.APIKey != "env-key" {
		t.Errorf("EODHD.APIKey = %q, want env-key", cfg.Clients.EODHD.APIKey)
	}
}

func TestEODHDConfig_GetTimeoutFallback(t *testing.T) {
	cfg := EODHDConfig{Timeout: "not a duration"}
	if got := cfg.GetTimeout(); got != 30*time.Second {
		t.Errorf("GetTimeout() = %v, want 30s fallback", got)
	}
}
