// Package main provides the cleaner command, which validates, standardizes
// and deduplicates a raw match table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"slcricket/internal/storage"
	"slcricket/internal/worker"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to YAML configuration file")
	inputPath := flag.String("input", "", "Raw CSV to clean (default: output.raw_csv from config)")
	noSQLite := flag.Bool("no-sqlite", false, "Skip the SQLite export")
	flag.Parse()

	if path := worker.LoadEnv(); path != "" {
		fmt.Printf("Loaded .env from: %s\n", path)
	}

	cfg, err := worker.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if *noSQLite {
		cfg.Output.SQLite = ""
	}

	input := *inputPath
	if input == "" {
		input = cfg.OutputPath(cfg.Output.RawCSV)
	}

	log := worker.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load the raw table
	rows, err := storage.ReadCSVFile(input)
	if err != nil {
		log.Error("❌ Failed to read raw table", "error", err)
		os.Exit(1)
	}

	log.Info("📂 Loaded raw table", "path", input, "rows", len(rows))

	// 2. Clean and write outputs
	result, err := worker.New(cfg, log).Clean(ctx, rows, nil)
	if err != nil {
		log.Error("❌ Cleaning failed", "error", err)
		os.Exit(1)
	}

	r := result.Report
	fmt.Printf("Rows: %d -> %d (invalid %d, duplicates %d, retention %.1f%%)\n",
		r.RowsBefore, r.RowsAfter, r.InvalidRowsRemoved, r.DuplicatesRemoved, r.RetentionRate*100)
	fmt.Printf("✅ Clean table: %s\n", result.CleanPath)
}

func defaultConfigPath() string {
	if _, err := os.Stat("configs/dataset.yaml"); err == nil {
		return "configs/dataset.yaml"
	}

	return ""
}
