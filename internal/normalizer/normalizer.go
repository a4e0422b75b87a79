package normalizer

import (
	"fmt"
	"strconv"
	"time"

	"slcricket/internal/models"
	"slcricket/pkg/utils"
)

// Normalizer maps loosely written rows onto canonical labels and converts
// validated rows into typed records.
type Normalizer struct {
	team   models.Team
	venues *VenueSet
}

// NewNormalizer creates a normalizer. venues decides Home/Away; a nil set
// classifies every ground as Away.
func NewNormalizer(team models.Team, venues *VenueSet) *Normalizer {
	return &Normalizer{
		team:   team,
		venues: venues,
	}
}

// Standardize collapses whitespace on every field and rewrites format, winner
// and margin variants to their canonical labels. Values it cannot resolve
// are left for the validator to reject.
func (n *Normalizer) Standardize(row models.Row) models.Row {
	out := models.Row{
		MatchDate:   utils.CollapseWhitespace(row.MatchDate),
		MatchFormat: utils.CollapseWhitespace(row.MatchFormat),
		Opponent:    utils.CollapseWhitespace(row.Opponent),
		Winner:      utils.CollapseWhitespace(row.Winner),
		Margin:      models.CanonicalMargin(row.Margin),
		Ground:      utils.CollapseWhitespace(row.Ground),
		Year:        utils.CollapseWhitespace(row.Year),
		HomeAway:    utils.CollapseWhitespace(row.HomeAway),
	}

	if f, ok := models.LookupFormat(out.MatchFormat); ok {
		out.MatchFormat = f.String()
	}

	if w, ok := models.LookupWinner(out.Winner, n.team); ok {
		out.Winner = w.Label(n.team)
	}

	return out
}

// StandardizeAll applies Standardize to every row.
func (n *Normalizer) StandardizeAll(rows []models.Row) []models.Row {
	out := make([]models.Row, len(rows))
	for i, row := range rows {
		out[i] = n.Standardize(row)
	}

	return out
}

// Normalize converts validated rows into records and derives Home/Away.
// Undecided results lose any margin; decided ones get the canonical margin.
func (n *Normalizer) Normalize(rows []models.Row) ([]models.MatchRecord, error) {
	records := make([]models.MatchRecord, 0, len(rows))

	for i, row := range rows {
		rec, err := n.record(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		records = append(records, rec)
	}

	return records, nil
}

// Classify returns Home when ground is one of the configured home venues.
func (n *Normalizer) Classify(ground string) models.HomeAway {
	if n.venues.Contains(ground) {
		return models.Home
	}

	return models.Away
}

func (n *Normalizer) record(row models.Row) (models.MatchRecord, error) {
	date, err := time.Parse(models.DateLayout, row.MatchDate)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("parse date: %w", err)
	}

	format, err := models.ParseFormat(row.MatchFormat)
	if err != nil {
		return models.MatchRecord{}, err
	}

	winner, err := models.ParseWinner(row.Winner, n.team)
	if err != nil {
		return models.MatchRecord{}, err
	}

	year, err := strconv.Atoi(row.Year)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("parse year: %w", err)
	}

	margin := ""
	if winner.Decided() {
		margin = models.CanonicalMargin(row.Margin)
	}

	return models.MatchRecord{
		Date:     date,
		Format:   format,
		Opponent: row.Opponent,
		Winner:   winner,
		Margin:   margin,
		Ground:   row.Ground,
		Year:     year,
		HomeAway: n.Classify(row.Ground),
	}, nil
}
