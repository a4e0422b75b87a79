// Package storage persists match tables as CSV files and SQLite databases.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"slcricket/internal/models"
)

// CSV errors.
var (
	ErrEmptyFile     = errors.New("csv file has no header")
	ErrMissingColumn = errors.New("required column missing")
)

// WriteCSV writes a header and rows in the fixed column order. When
// withHomeAway is false only the seven source columns are written.
func WriteCSV(w io.Writer, rows []models.Row, withHomeAway bool) error {
	cw := csv.NewWriter(w)

	header := models.SourceColumns
	if withHomeAway {
		header = models.Columns
	}

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(row.Values(withHomeAway)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// ReadCSV reads a table written by WriteCSV or by hand. Columns are located
// by header name; Home_Away is optional and extra columns are ignored.
func ReadCSV(r io.Reader) ([]models.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	for _, col := range models.SourceColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}

		return record[i]
	}

	var rows []models.Row

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}

		rows = append(rows, models.Row{
			MatchDate:   field(record, "Match_Date"),
			MatchFormat: field(record, "Match_Format"),
			Opponent:    field(record, "Opponent"),
			Winner:      field(record, "Winner"),
			Margin:      field(record, "Margin"),
			Ground:      field(record, "Ground"),
			Year:        field(record, "Year"),
			HomeAway:    field(record, "Home_Away"),
		})
	}

	return rows, nil
}

// WriteCSVFile writes rows to path, creating parent directories. The file is
// replaced atomically.
func WriteCSVFile(path string, rows []models.Row, withHomeAway bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteCSV(tmp, rows, withHomeAway); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// ReadCSVFile reads a table from path.
func ReadCSVFile(path string) ([]models.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}
