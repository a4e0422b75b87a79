// Package main provides the dataset command, which runs extraction and
// cleaning in one process.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slcricket/internal/worker"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to YAML configuration file")
	outputDir := flag.String("output-dir", "", "Override output.dir")
	flag.Parse()

	if path := worker.LoadEnv(); path != "" {
		fmt.Printf("Loaded .env from: %s\n", path)
	}

	cfg, err := worker.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}

	log := worker.NewLogger(cfg)
	log.Info("🚀 Starting dataset run", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()

	result, err := worker.New(cfg, log).Run(ctx)
	if err != nil {
		log.Error("❌ Dataset run failed", "error", err)
		os.Exit(1)
	}

	r := result.Report

	fmt.Println("========================================")
	fmt.Printf("Run %s finished in %s\n", r.RunID, time.Since(started).Round(time.Millisecond))

	for _, e := range r.Extraction {
		fmt.Printf("  %-4s documents=%d matches=%d malformed=%d\n", e.Format, e.DocumentsSeen, e.MatchesForTeam, e.MalformedSkipped)
	}

	fmt.Printf("  rows %d -> %d, %s to %s\n", r.RowsBefore, r.RowsAfter, r.DateFrom, r.DateTo)
	fmt.Printf("  table:  %s\n", result.CleanPath)

	if result.SQLitePath != "" {
		fmt.Printf("  sqlite: %s\n", result.SQLitePath)
	}

	if result.ReportPath != "" {
		fmt.Printf("  report: %s\n", result.ReportPath)
	}
}

func defaultConfigPath() string {
	if _, err := os.Stat("configs/dataset.yaml"); err == nil {
		return "configs/dataset.yaml"
	}

	return ""
}
