package normalizer

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"slcricket/internal/extractor"
	"slcricket/internal/models"
	"slcricket/internal/pipeline"
	"slcricket/pkg/utils"
)

// topOpponents is how many opponents the report ranks.
const topOpponents = 10

// maxDetail bounds the length of a malformed-document detail in the report.
const maxDetail = 80

// Count is one labelled tally in a breakdown.
type Count struct {
	Label string
	N     int
}

// FormatStats summarizes one format's extraction run.
type FormatStats struct {
	Format           string
	Source           string
	DocumentsSeen    int
	MatchesForTeam   int
	MalformedSkipped int
	TeamAbsent       int
	BeforeWindow     int
	Warnings         int
	Malformed        []string
}

// Report describes one cleaning run.
type Report struct {
	RunID              string
	GeneratedAt        time.Time
	Team               string
	RowsBefore         int
	RowsAfter          int
	DuplicatesRemoved  int
	InvalidRowsRemoved int
	RetentionRate      float64
	ReasonCounts       []Count
	Invalid            []InvalidRow
	Extraction         []FormatStats
	ByFormat           []Count
	ByWinner           []Count
	ByHomeAway         []Count
	TopOpponents       []Count
	DateFrom           string
	DateTo             string
}

// NewReport aggregates a cleaning run. records are the cleaned output.
func NewReport(team models.Team, validation *ValidationResult, records []models.MatchRecord, duplicates int) *Report {
	r := &Report{
		RunID:              uuid.NewString(),
		GeneratedAt:        time.Now().UTC(),
		Team:               team.Name,
		RowsBefore:         validation.Stats.TotalRows,
		RowsAfter:          len(records),
		DuplicatesRemoved:  duplicates,
		InvalidRowsRemoved: validation.Stats.InvalidRows,
		Invalid:            validation.Invalid,
	}

	if r.RowsBefore > 0 {
		r.RetentionRate = float64(r.RowsAfter) / float64(r.RowsBefore)
	}

	reasons := make(map[string]int, len(validation.Stats.ReasonCounts))
	for code, n := range validation.Stats.ReasonCounts {
		reasons[string(code)] = n
	}

	r.ReasonCounts = sortedCounts(reasons)

	byFormat := make(map[string]int)
	byWinner := make(map[string]int)
	byHomeAway := make(map[string]int)
	opponents := make(map[string]int)

	for _, rec := range records {
		byFormat[rec.Format.String()]++
		byWinner[winnerLabel(rec.Winner, team)]++
		byHomeAway[rec.HomeAway.String()]++
		opponents[rec.Opponent]++
	}

	r.ByFormat = formatCounts(byFormat)
	r.ByWinner = sortedCounts(byWinner)
	r.ByHomeAway = sortedCounts(byHomeAway)

	r.TopOpponents = sortedCounts(opponents)
	if len(r.TopOpponents) > topOpponents {
		r.TopOpponents = r.TopOpponents[:topOpponents]
	}

	if len(records) > 0 {
		from, to := records[0].Date, records[0].Date
		for _, rec := range records[1:] {
			if rec.Date.Before(from) {
				from = rec.Date
			}

			if rec.Date.After(to) {
				to = rec.Date
			}
		}

		r.DateFrom = from.Format(models.DateLayout)
		r.DateTo = to.Format(models.DateLayout)
	}

	return r
}

// AddExtraction attaches the extraction statistics of the run that produced
// the raw table.
func (r *Report) AddExtraction(results ...*pipeline.FormatResult) {
	for _, res := range results {
		stats := FormatStats{
			Format:           res.Stats.Format.String(),
			Source:           res.Source,
			DocumentsSeen:    res.Stats.DocumentsSeen,
			MatchesForTeam:   res.Stats.MatchesForTeam,
			MalformedSkipped: res.Stats.MalformedSkipped,
			TeamAbsent:       res.Stats.Skipped[extractor.ReasonTeamAbsent],
			BeforeWindow:     res.Stats.Skipped[extractor.ReasonBeforeWindow],
		}

		for _, n := range res.Stats.Warnings {
			stats.Warnings += n
		}

		for _, m := range res.Malformed {
			stats.Malformed = append(stats.Malformed, utils.TruncateString(m.Error(), maxDetail))
		}

		r.Extraction = append(r.Extraction, stats)
	}
}

func winnerLabel(w models.Winner, team models.Team) string {
	if w == models.WinnerUnknown {
		return "Unknown"
	}

	return w.Label(team)
}

// sortedCounts orders by count descending, then label.
func sortedCounts(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for label, n := range m {
		counts = append(counts, Count{Label: label, N: n})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}

		return counts[i].Label < counts[j].Label
	})

	return counts
}

// formatCounts lists formats in canonical order, omitting absent ones.
func formatCounts(m map[string]int) []Count {
	var counts []Count

	for _, f := range models.Formats {
		if n := m[f.String()]; n > 0 {
			counts = append(counts, Count{Label: f.String(), N: n})
		}
	}

	return counts
}
