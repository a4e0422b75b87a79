package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"slcricket/internal/models"
)

var sriLanka = models.Team{Name: "Sri Lanka"}

func TestStore_ReplaceMatches(t *testing.T) {
	ctx := context.Background()

	store, err := OpenStore(filepath.Join(t.TempDir(), "matches.sqlite"))
	if err != nil {
		t.Fatalf("OpenStore returned unexpected error: %v", err)
	}
	defer store.Close()

	day := func(s string) time.Time {
		d, _ := time.Parse(models.DateLayout, s)
		return d
	}

	records := []models.MatchRecord{
		{Date: day("2019-05-01"), Format: models.FormatT20, Opponent: "India", Winner: models.WinnerTeam, Margin: "1 run", Ground: "Galle", Year: 2019, HomeAway: models.Home},
		{Date: day("2019-05-01"), Format: models.FormatTest, Opponent: "India", Winner: models.WinnerDraw, Ground: "Galle", Year: 2019, HomeAway: models.Home},
		{Date: day("2018-01-01"), Format: models.FormatODI, Opponent: "England", Winner: models.WinnerOpponent, Margin: "4 wickets", Ground: "Lord's", Year: 2018, HomeAway: models.Away},
	}

	if err := store.ReplaceMatches(ctx, records, sriLanka); err != nil {
		t.Fatalf("ReplaceMatches returned unexpected error: %v", err)
	}

	rows, err := store.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[0].Opponent != "England" || rows[1].MatchFormat != "Test" || rows[2].Winner != "Sri Lanka" || rows[2].Year != "2019" {
		t.Errorf("unexpected rows: %+v", rows)
	}

	// A second run replaces rather than appends.
	if err := store.ReplaceMatches(ctx, records[:1], sriLanka); err != nil {
		t.Fatalf("second ReplaceMatches returned unexpected error: %v", err)
	}

	rows, err = store.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows returned unexpected error: %v", err)
	}

	if len(rows) != 1 {
		t.Errorf("expected 1 row after replace, got %d", len(rows))
	}
}

func TestStore_ReplaceMatches_DuplicateKey(t *testing.T) {
	ctx := context.Background()

	store, err := OpenStore(filepath.Join(t.TempDir(), "matches.sqlite"))
	if err != nil {
		t.Fatalf("OpenStore returned unexpected error: %v", err)
	}
	defer store.Close()

	rec := models.MatchRecord{Format: models.FormatODI, Opponent: "India", Ground: "Galle", Winner: models.WinnerDraw}

	if err := store.ReplaceMatches(ctx, []models.MatchRecord{rec, rec}, sriLanka); err == nil {
		t.Error("expected primary key violation for duplicate records")
	}
}
