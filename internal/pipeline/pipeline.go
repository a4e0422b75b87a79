// Package pipeline drives the extractor across each format's documents and
// assembles the combined match table.
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"slcricket/internal/extractor"
	"slcricket/internal/logger"
	"slcricket/internal/models"
	"slcricket/internal/source"
)

// Stats counts what happened to one format's documents.
type Stats struct {
	Format           models.Format
	DocumentsSeen    int
	MatchesForTeam   int
	MalformedSkipped int
	Skipped          map[extractor.SkipReason]int
	Warnings         map[extractor.Warning]int
}

// FormatResult is the output of one format's run. Records keep source order.
type FormatResult struct {
	Source    string
	Records   []models.MatchRecord
	Malformed []*extractor.MalformedError
	Stats     Stats
}

// FormatSource pairs a document source with the format its bundle holds.
type FormatSource struct {
	Format models.Format
	Source source.Source
}

// Pipeline runs extraction for one or more formats.
type Pipeline struct {
	extractor *extractor.Extractor
	log       *logger.Logger
}

// New creates a pipeline around ex.
func New(ex *extractor.Extractor, log *logger.Logger) *Pipeline {
	return &Pipeline{
		extractor: ex,
		log:       log,
	}
}

// Run extracts every document of src in arrival order. Malformed documents
// are counted and kept for the report; only a structurally impossible
// document or a source failure stops the run.
func (p *Pipeline) Run(ctx context.Context, format models.Format, src source.Source) (*FormatResult, error) {
	log := p.log.With("format", format.String(), "source", src.Name())

	result := &FormatResult{
		Source: src.Name(),
		Stats: Stats{
			Format:   format,
			Skipped:  make(map[extractor.SkipReason]int),
			Warnings: make(map[extractor.Warning]int),
		},
	}

	for doc, err := range src.Documents(ctx) {
		if err != nil {
			return nil, fmt.Errorf("reading %s documents: %w", format, err)
		}

		result.Stats.DocumentsSeen++

		res, err := p.extractor.Extract(doc, format)
		if err != nil {
			return nil, fmt.Errorf("extracting %s documents: %w", format, err)
		}

		switch res.Kind {
		case extractor.KindRecord:
			result.Records = append(result.Records, res.Record)
			result.Stats.MatchesForTeam++

			for _, w := range res.Warnings {
				result.Stats.Warnings[w]++
				log.Warn("Record kept with incomplete outcome", "document", doc.ID, "warning", string(w))
			}
		case extractor.KindSkipped:
			result.Stats.Skipped[res.Reason]++
		case extractor.KindMalformed:
			result.Stats.MalformedSkipped++
			result.Malformed = append(result.Malformed, res.Err)
			log.Warn("Skipping malformed document", "document", doc.ID, "error", res.Err)
		}
	}

	log.Info("Format extracted",
		"documents", result.Stats.DocumentsSeen,
		"matches", result.Stats.MatchesForTeam,
		"malformed", result.Stats.MalformedSkipped,
	)

	return result, nil
}

// RunAll runs every format and returns results in the order of sources.
// With parallel set the formats run concurrently; each keeps its own
// accumulator, so the output is identical either way.
func (p *Pipeline) RunAll(ctx context.Context, sources []FormatSource, parallel bool) ([]*FormatResult, error) {
	results := make([]*FormatResult, len(sources))

	if !parallel {
		for i, fs := range sources {
			res, err := p.Run(ctx, fs.Format, fs.Source)
			if err != nil {
				return nil, err
			}

			results[i] = res
		}

		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, fs := range sources {
		g.Go(func() error {
			res, err := p.Run(gctx, fs.Format, fs.Source)
			if err != nil {
				return err
			}

			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Assemble concatenates the records of results and sorts them by date, then
// format (Test < ODI < T20), then opponent. The sort is stable so equal keys
// keep their concatenation order.
func Assemble(results ...*FormatResult) []models.MatchRecord {
	var total int
	for _, r := range results {
		total += len(r.Records)
	}

	records := make([]models.MatchRecord, 0, total)
	for _, r := range results {
		records = append(records, r.Records...)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return models.Less(records[i], records[j])
	})

	return records
}

// Rows serializes records into table rows for the cleaning stage.
func Rows(records []models.MatchRecord, team models.Team) []models.Row {
	rows := make([]models.Row, len(records))
	for i, rec := range records {
		rows[i] = rec.Row(team)
	}

	return rows
}
