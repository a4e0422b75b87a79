package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"slcricket/internal/config"
	"slcricket/internal/logger"
	"slcricket/internal/source"
)

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	if got := LoadEnv(); got != "" {
		t.Fatalf("LoadEnv() = %q with no .env present", got)
	}

	if err := os.WriteFile(".env", []byte("CRICKET_OUTPUT_DIR=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	os.Unsetenv(config.EnvOutputDir)
	t.Cleanup(func() { os.Unsetenv(config.EnvOutputDir) })

	if got := LoadEnv(); got != ".env" {
		t.Errorf("LoadEnv() = %q, want .env", got)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Output.Dir != "from-dotenv" {
		t.Errorf("Output.Dir = %q, want from-dotenv", cfg.Output.Dir)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	if err := os.WriteFile(path, []byte("window:\n  start_date: \"2001-01-01\"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv(config.EnvWindowStart, "2010-01-01")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Window.StartDate != "2010-01-01" {
		t.Errorf("StartDate = %s, want the environment value", cfg.Window.StartDate)
	}
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "loud")

	if _, err := LoadConfig(""); !errors.Is(err, config.ErrInvalidLogLevel) {
		t.Errorf("LoadConfig() error = %v, want ErrInvalidLogLevel", err)
	}
}

func TestWorker_Build_MissingSource(t *testing.T) {
	cfg := config.Default()
	cfg.Sources = []config.SourceConfig{{Format: "ODI", Path: filepath.Join(t.TempDir(), "missing.zip"), Enabled: true}}
	cfg.Output.Dir = t.TempDir()

	_, err := New(cfg, logger.NewDiscard()).Build(context.Background())
	if !errors.Is(err, source.ErrNotFound) {
		t.Errorf("Build() error = %v, want ErrNotFound", err)
	}
}

func TestWorker_Run_EmptyBundle(t *testing.T) {
	cfg := config.Default()
	cfg.Sources = []config.SourceConfig{{Format: "T20", Path: t.TempDir(), Enabled: true}}
	cfg.Output.Dir = t.TempDir()
	cfg.Output.SQLite = ""

	result, err := New(cfg, logger.NewDiscard()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.Report.RowsBefore != 0 || len(result.Records) != 0 || result.SQLitePath != "" {
		t.Errorf("unexpected result for an empty bundle: %+v", result)
	}

	for _, path := range []string{cfg.OutputPath(cfg.Output.RawCSV), result.CleanPath, result.ReportPath} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output %s: %v", path, err)
		}
	}
}
