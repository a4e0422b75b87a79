package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"slcricket/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	match_date   TEXT NOT NULL,
	match_format TEXT NOT NULL,
	opponent     TEXT NOT NULL,
	winner       TEXT NOT NULL,
	margin       TEXT NOT NULL,
	ground       TEXT NOT NULL,
	year         INTEGER NOT NULL,
	home_away    TEXT NOT NULL,
	PRIMARY KEY (match_date, match_format, opponent, ground)
);
CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(match_date);
CREATE INDEX IF NOT EXISTS idx_matches_opponent ON matches(opponent);
CREATE INDEX IF NOT EXISTS idx_matches_format ON matches(match_format);
`

// Store is a SQLite copy of the cleaned table.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceMatches swaps the table contents for records in one transaction.
func (s *Store) ReplaceMatches(ctx context.Context, records []models.MatchRecord, team models.Team) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches (match_date, match_format, opponent, winner, margin, ground, year, home_away)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		row := rec.Row(team)
		if _, err := stmt.ExecContext(ctx, row.MatchDate, row.MatchFormat, row.Opponent, row.Winner,
			row.Margin, row.Ground, rec.Year, row.HomeAway); err != nil {
			return fmt.Errorf("failed to insert %s: %w", rec.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// Rows returns the stored table in output order.
func (s *Store) Rows(ctx context.Context) ([]models.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT match_date, match_format, opponent, winner, margin, ground, year, home_away
		FROM matches
		ORDER BY match_date,
			CASE match_format WHEN 'Test' THEN 1 WHEN 'ODI' THEN 2 WHEN 'T20' THEN 3 ELSE 4 END,
			opponent
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var out []models.Row

	for rows.Next() {
		var (
			r    models.Row
			year int
		)

		if err := rows.Scan(&r.MatchDate, &r.MatchFormat, &r.Opponent, &r.Winner, &r.Margin, &r.Ground, &year, &r.HomeAway); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}

		r.Year = strconv.Itoa(year)
		out = append(out, r)
	}

	return out, rows.Err()
}
