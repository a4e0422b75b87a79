// Package worker runs the dataset stages end to end: extraction into the raw
// table, then cleaning into the final table, database and report.
package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"slcricket/internal/config"
	"slcricket/internal/extractor"
	"slcricket/internal/formatter"
	"slcricket/internal/logger"
	"slcricket/internal/models"
	"slcricket/internal/normalizer"
	"slcricket/internal/pipeline"
	"slcricket/internal/source"
	"slcricket/internal/storage"
)

// envPaths are tried in order; the first .env found wins.
var envPaths = []string{".env", "../.env", "../../.env"}

// LoadEnv loads the first .env file found and returns its path, or "" when
// none exists.
func LoadEnv() string {
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}

	return ""
}

// LoadConfig reads path (or the defaults when path is empty), applies
// environment overrides and validates the result.
func LoadConfig(path string) (*config.Config, error) {
	cfg := config.Default()

	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// NewLogger builds the logger described by cfg.
func NewLogger(cfg *config.Config) *logger.Logger {
	return logger.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
}

// BuildResult is the output of the extraction stage.
type BuildResult struct {
	Formats []*pipeline.FormatResult
	Records []models.MatchRecord
	RawPath string
}

// Rows returns the raw table.
func (b *BuildResult) Rows(team models.Team) []models.Row {
	return pipeline.Rows(b.Records, team)
}

// CleanResult is the output of the cleaning stage.
type CleanResult struct {
	Records    []models.MatchRecord
	Report     *normalizer.Report
	CleanPath  string
	SQLitePath string
	ReportPath string
}

// Worker runs the stages with one configuration.
type Worker struct {
	cfg  *config.Config
	log  *logger.Logger
	team models.Team
}

// New creates a worker. cfg must already be validated.
func New(cfg *config.Config, log *logger.Logger) *Worker {
	return &Worker{
		cfg:  cfg,
		log:  log,
		team: cfg.TeamModel(),
	}
}

// Build extracts every enabled source and writes the raw table.
func (w *Worker) Build(ctx context.Context) (*BuildResult, error) {
	start, err := w.cfg.WindowStart()
	if err != nil {
		return nil, err
	}

	var sources []pipeline.FormatSource

	for _, sc := range w.cfg.GetEnabledSources() {
		src, err := source.Open(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("%s source: %w", sc.FormatOf(), err)
		}

		sources = append(sources, pipeline.FormatSource{Format: sc.FormatOf(), Source: src})
	}

	started := time.Now()

	p := pipeline.New(extractor.New(w.team, start), w.log)

	results, err := p.RunAll(ctx, sources, w.cfg.Processing.ParallelFormats)
	if err != nil {
		return nil, err
	}

	build := &BuildResult{
		Formats: results,
		Records: pipeline.Assemble(results...),
		RawPath: w.cfg.OutputPath(w.cfg.Output.RawCSV),
	}

	if err := storage.WriteCSVFile(build.RawPath, build.Rows(w.team), false); err != nil {
		return nil, fmt.Errorf("failed to write raw table: %w", err)
	}

	w.log.Info("✅ Raw table written",
		"path", build.RawPath,
		"rows", len(build.Records),
		"duration", time.Since(started).Round(time.Millisecond))

	return build, nil
}

// Clean cleans rows and writes the final table, the optional database and
// the report. extraction may be nil when rows were read from a file.
func (w *Worker) Clean(ctx context.Context, rows []models.Row, extraction []*pipeline.FormatResult) (*CleanResult, error) {
	venues := normalizer.NewVenueSet(w.cfg.HomeVenues...)
	processor := normalizer.NewProcessor(w.team, venues, w.log)

	records, report, err := processor.Clean(rows)
	if err != nil {
		return nil, err
	}

	report.AddExtraction(extraction...)

	result := &CleanResult{
		Records:    records,
		Report:     report,
		CleanPath:  w.cfg.OutputPath(w.cfg.Output.CleanCSV),
		SQLitePath: w.cfg.OutputPath(w.cfg.Output.SQLite),
		ReportPath: w.cfg.OutputPath(w.cfg.Output.Report),
	}

	clean := make([]models.Row, len(records))
	for i, rec := range records {
		clean[i] = rec.Row(w.team)
	}

	if err := storage.WriteCSVFile(result.CleanPath, clean, true); err != nil {
		return nil, fmt.Errorf("failed to write clean table: %w", err)
	}

	w.log.Info("✅ Clean table written", "path", result.CleanPath, "rows", len(clean))

	if result.SQLitePath != "" {
		if err := w.writeSQLite(ctx, result.SQLitePath, records); err != nil {
			return nil, err
		}
	}

	if result.ReportPath != "" {
		if err := writeReport(result.ReportPath, report); err != nil {
			return nil, err
		}

		w.log.Info("✅ Report written", "path", result.ReportPath, "run_id", report.RunID)
	}

	return result, nil
}

// Run builds and cleans in one pass without re-reading the raw table.
func (w *Worker) Run(ctx context.Context) (*CleanResult, error) {
	build, err := w.Build(ctx)
	if err != nil {
		return nil, err
	}

	return w.Clean(ctx, build.Rows(w.team), build.Formats)
}

func (w *Worker) writeSQLite(ctx context.Context, path string, records []models.MatchRecord) error {
	store, err := storage.OpenStore(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceMatches(ctx, records, w.team); err != nil {
		return fmt.Errorf("failed to export to SQLite: %w", err)
	}

	w.log.Info("✅ SQLite database written", "path", path, "rows", len(records))

	return nil
}

func writeReport(path string, report *normalizer.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(formatter.RenderReport(report)), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
