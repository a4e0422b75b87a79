// Package main provides the builder command, which extracts the designated
// team's matches from the format bundles into the raw table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"slcricket/internal/worker"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to YAML configuration file")
	parallel := flag.Bool("parallel", false, "Extract formats concurrently")
	flag.Parse()

	if path := worker.LoadEnv(); path != "" {
		fmt.Printf("Loaded .env from: %s\n", path)
	}

	cfg, err := worker.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if *parallel {
		cfg.Processing.ParallelFormats = true
	}

	log := worker.NewLogger(cfg)
	log.Info("🚀 Building raw match table", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build, err := worker.New(cfg, log).Build(ctx)
	if err != nil {
		log.Error("❌ Build failed", "error", err)
		os.Exit(1)
	}

	for _, res := range build.Formats {
		fmt.Printf("%-4s documents=%d matches=%d malformed=%d\n",
			res.Stats.Format, res.Stats.DocumentsSeen, res.Stats.MatchesForTeam, res.Stats.MalformedSkipped)
	}

	fmt.Printf("✅ %d matches written to %s\n", len(build.Records), build.RawPath)
}

func defaultConfigPath() string {
	if _, err := os.Stat("configs/dataset.yaml"); err == nil {
		return "configs/dataset.yaml"
	}

	return ""
}
