package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"slcricket/internal/models"
)

// ReasonCode identifies which schema check a row failed.
type ReasonCode string

// Reason codes, one per check.
const (
	ReasonMissingField      ReasonCode = "missing_field"
	ReasonInvalidFormat     ReasonCode = "invalid_format"
	ReasonInvalidDate       ReasonCode = "invalid_date"
	ReasonYearMismatch      ReasonCode = "year_mismatch"
	ReasonInvalidWinner     ReasonCode = "invalid_winner"
	ReasonOpponentIsTeam    ReasonCode = "opponent_is_team"
	ReasonMarginOnUndecided ReasonCode = "margin_on_undecided"
)

// Reason is one failed check on one row.
type Reason struct {
	Code  ReasonCode
	Field string
	Value string
}

func (r Reason) String() string {
	return fmt.Sprintf("%s: %s=%q", r.Code, r.Field, r.Value)
}

// InvalidRow is a rejected row with every reason it failed.
type InvalidRow struct {
	Index   int
	Row     models.Row
	Reasons []Reason
}

// ValidationStats contains validation statistics.
type ValidationStats struct {
	ReasonCounts map[ReasonCode]int
	TotalRows    int
	ValidRows    int
	InvalidRows  int
}

// ValidationResult partitions a table into valid and invalid rows.
type ValidationResult struct {
	Valid   []models.Row
	Invalid []InvalidRow
	Stats   ValidationStats
}

// Validator checks table rows against the output schema. It keeps no state
// between rows.
type Validator struct {
	team        models.Team
	datePattern *regexp.Regexp
}

// NewValidator creates a validator for the designated team.
func NewValidator(team models.Team) *Validator {
	return &Validator{
		team:        team,
		datePattern: regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	}
}

// Validate runs every check on every row.
func (v *Validator) Validate(rows []models.Row) *ValidationResult {
	result := &ValidationResult{
		Stats: ValidationStats{
			TotalRows:    len(rows),
			ReasonCounts: make(map[ReasonCode]int),
		},
	}

	for i, row := range rows {
		reasons := v.CheckRow(row)
		if len(reasons) == 0 {
			result.Valid = append(result.Valid, row)
			continue
		}

		for _, r := range reasons {
			result.Stats.ReasonCounts[r.Code]++
		}

		result.Invalid = append(result.Invalid, InvalidRow{Index: i, Row: row, Reasons: reasons})
	}

	result.Stats.ValidRows = len(result.Valid)
	result.Stats.InvalidRows = len(result.Invalid)

	return result
}

// CheckRow returns every reason row fails. Checks do not short-circuit.
func (v *Validator) CheckRow(row models.Row) []Reason {
	var reasons []Reason

	required := []struct {
		field string
		value string
	}{
		{"Match_Date", row.MatchDate},
		{"Match_Format", row.MatchFormat},
		{"Opponent", row.Opponent},
		{"Ground", row.Ground},
		{"Year", row.Year},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			reasons = append(reasons, Reason{Code: ReasonMissingField, Field: f.field})
		}
	}

	if row.MatchFormat != "" {
		if _, err := models.ParseFormat(row.MatchFormat); err != nil {
			reasons = append(reasons, Reason{Code: ReasonInvalidFormat, Field: "Match_Format", Value: row.MatchFormat})
		}
	}

	var date time.Time

	if row.MatchDate != "" {
		parsed, ok := v.parseDate(row.MatchDate)
		if ok {
			date = parsed
		} else {
			reasons = append(reasons, Reason{Code: ReasonInvalidDate, Field: "Match_Date", Value: row.MatchDate})
		}
	}

	if row.Year != "" {
		year, err := strconv.Atoi(row.Year)
		if err != nil || (!date.IsZero() && year != date.Year()) {
			reasons = append(reasons, Reason{Code: ReasonYearMismatch, Field: "Year", Value: row.Year})
		}
	}

	winner, err := models.ParseWinner(row.Winner, v.team)
	if err != nil {
		reasons = append(reasons, Reason{Code: ReasonInvalidWinner, Field: "Winner", Value: row.Winner})
	}

	if strings.TrimSpace(row.Opponent) != "" && v.team.Matches(row.Opponent) {
		reasons = append(reasons, Reason{Code: ReasonOpponentIsTeam, Field: "Opponent", Value: row.Opponent})
	}

	if err == nil && !winner.Decided() && strings.TrimSpace(row.Margin) != "" {
		reasons = append(reasons, Reason{Code: ReasonMarginOnUndecided, Field: "Margin", Value: row.Margin})
	}

	return reasons
}

func (v *Validator) parseDate(s string) (time.Time, bool) {
	if !v.datePattern.MatchString(s) {
		return time.Time{}, false
	}

	date, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}

	return date, true
}
