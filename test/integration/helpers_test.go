package integration

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"slcricket/internal/config"
	"slcricket/internal/logger"
	"slcricket/internal/worker"
)

// fixtureDir returns the path of a fixture bundle directory.
func fixtureDir(name string) string {
	return filepath.Join("..", "fixtures", name)
}

// zipFixtures packs a fixture directory into a zip bundle under t.TempDir.
func zipFixtures(t *testing.T, name string) string {
	t.Helper()

	entries, err := os.ReadDir(fixtureDir(name))
	if err != nil {
		t.Fatalf("Failed to read fixtures: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	sort.Strings(names)

	path := filepath.Join(t.TempDir(), name+"_json.zip")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	// Bundles from the download site carry a README next to the matches.
	readme, err := zw.Create("README.txt")
	if err != nil {
		t.Fatalf("Failed to add README: %v", err)
	}

	if _, err := readme.Write([]byte("match data\n")); err != nil {
		t.Fatalf("Failed to write README: %v", err)
	}

	for _, n := range names {
		data, err := os.ReadFile(filepath.Join(fixtureDir(name), n))
		if err != nil {
			t.Fatalf("Failed to read fixture %s: %v", n, err)
		}

		w, err := zw.Create(n)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", n, err)
		}

		if _, err := w.Write(data); err != nil {
			t.Fatalf("Failed to write %s: %v", n, err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}

	return path
}

// testConfig points the default configuration at the fixtures: tests and
// T20s as zip bundles, ODIs as a plain directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Sources = []config.SourceConfig{
		{Format: "Test", Path: zipFixtures(t, "tests"), Enabled: true},
		{Format: "ODI", Path: fixtureDir("odis"), Enabled: true},
		{Format: "T20", Path: zipFixtures(t, "t20s"), Enabled: true},
	}
	cfg.Output.Dir = t.TempDir()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}

	return cfg
}

func newWorker(cfg *config.Config) *worker.Worker {
	return worker.New(cfg, logger.NewDiscard())
}
