// Package normalizer cleans the assembled match table: it standardizes
// labels, validates rows, derives Home/Away and removes duplicates.
package normalizer

import (
	"fmt"
	"sort"

	"slcricket/internal/logger"
	"slcricket/internal/models"
)

// Processor runs the cleaning stages in order.
type Processor struct {
	team       models.Team
	validator  *Validator
	normalizer *Normalizer
	log        *logger.Logger
}

// NewProcessor creates a processor for team with the given home venues.
func NewProcessor(team models.Team, venues *VenueSet, log *logger.Logger) *Processor {
	return &Processor{
		team:       team,
		validator:  NewValidator(team),
		normalizer: NewNormalizer(team, venues),
		log:        log,
	}
}

// Clean turns raw rows into the cleaned, sorted record set and its report.
func (p *Processor) Clean(rows []models.Row) ([]models.MatchRecord, *Report, error) {
	// 1. Standardize labels so lenient spellings pass validation
	standardized := p.normalizer.StandardizeAll(rows)

	// 2. Validate
	validation := p.validator.Validate(standardized)
	for _, inv := range validation.Invalid {
		p.log.Warn("Dropping invalid row", "index", inv.Index, "reasons", inv.Reasons)
	}

	// 3. Convert to records and derive Home/Away
	records, err := p.normalizer.Normalize(validation.Valid)
	if err != nil {
		return nil, nil, fmt.Errorf("normalization failed: %w", err)
	}

	// 4. Deduplicate
	records, duplicates := Deduplicate(records)

	sort.SliceStable(records, func(i, j int) bool {
		return models.Less(records[i], records[j])
	})

	report := NewReport(p.team, validation, records, duplicates)

	p.log.Info("Cleaning complete",
		"rows_before", report.RowsBefore,
		"rows_after", report.RowsAfter,
		"invalid", report.InvalidRowsRemoved,
		"duplicates", report.DuplicatesRemoved)

	return records, report, nil
}
