// Package extractor turns one raw match document into a match record.
package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"slcricket/internal/models"
	"slcricket/internal/source"
	"slcricket/pkg/utils"
)

// ErrNotStructured is returned when a document is not a JSON object at all.
// It is the only extraction failure that aborts a run.
var ErrNotStructured = errors.New("document is not a structured object")

// Causes carried by a MalformedError.
var (
	ErrInvalidInfo  = errors.New("info section is not parsable")
	ErrMissingTeams = errors.New("team list is missing")
	ErrTeamCount    = errors.New("team list must contain exactly two teams")
	ErrTeamNotFound = errors.New("team list does not resolve to the designated team and one opponent")
	ErrMissingDate  = errors.New("match date is missing")
	ErrInvalidDate  = errors.New("match date is not parsable")
	ErrMissingVenue = errors.New("venue is missing")
)

// MalformedError reports a document that involves the designated team but
// cannot be turned into a record.
type MalformedError struct {
	DocumentID string
	Cause      error
	Detail     string
}

func (e *MalformedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("malformed document %s: %v", e.DocumentID, e.Cause)
	}

	return fmt.Sprintf("malformed document %s: %v (%s)", e.DocumentID, e.Cause, e.Detail)
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}

// Kind tells which branch of a Result is populated.
type Kind int

// Result kinds.
const (
	KindRecord Kind = iota + 1
	KindSkipped
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindSkipped:
		return "skipped"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// SkipReason explains why a well-formed document produced no record.
type SkipReason string

// Skip reasons.
const (
	ReasonTeamAbsent   SkipReason = "team_absent"
	ReasonBeforeWindow SkipReason = "before_window"
)

// Warning flags a record that was kept despite incomplete source data.
type Warning string

// Warnings.
const (
	WarnAmbiguousMargin Warning = "ambiguous_margin"
	WarnUnknownOutcome  Warning = "unknown_outcome"
	WarnUnknownWinner   Warning = "unknown_winner"
)

// Result is the outcome of extracting one document.
type Result struct {
	Kind     Kind
	Record   models.MatchRecord
	Reason   SkipReason
	Err      *MalformedError
	Warnings []Warning
}

var dateLayouts = []string{models.DateLayout, "2006/01/02", "02/01/2006"}

// Extractor holds the reference parameters shared by every document.
type Extractor struct {
	team        models.Team
	windowStart time.Time
}

// New creates an extractor for team, keeping matches on or after windowStart.
func New(team models.Team, windowStart time.Time) *Extractor {
	return &Extractor{
		team:        team,
		windowStart: truncateDay(windowStart),
	}
}

// Team returns the designated team.
func (e *Extractor) Team() models.Team {
	return e.team
}

// Extract parses doc, played in format, into a Result. The returned error is
// non-nil only when doc is not a JSON object.
func (e *Extractor) Extract(doc source.Document, format models.Format) (Result, error) {
	trimmed := bytes.TrimSpace(doc.Data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Result{}, fmt.Errorf("%w: %s", ErrNotStructured, doc.ID)
	}

	var raw models.Document
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrNotStructured, doc.ID, err)
	}

	var info models.Info
	if len(raw.Info) > 0 && string(raw.Info) != "null" {
		if err := json.Unmarshal(raw.Info, &info); err != nil {
			return e.malformed(doc.ID, ErrInvalidInfo, err.Error()), nil
		}
	}

	if len(info.Teams) == 0 {
		return e.malformed(doc.ID, ErrMissingTeams, ""), nil
	}

	if !e.involvesTeam(info.Teams) {
		return Result{Kind: KindSkipped, Reason: ReasonTeamAbsent}, nil
	}

	opponent, err := e.resolveOpponent(info.Teams)
	if err != nil {
		return e.malformed(doc.ID, err, strings.Join(info.Teams, ", ")), nil
	}

	date, err := firstDate(info.Dates)
	if err != nil {
		return e.malformed(doc.ID, err, strings.Join(info.Dates, ", ")), nil
	}

	if date.Before(e.windowStart) {
		return Result{Kind: KindSkipped, Reason: ReasonBeforeWindow}, nil
	}

	ground := utils.CollapseWhitespace(info.Venue)
	if ground == "" {
		return e.malformed(doc.ID, ErrMissingVenue, ""), nil
	}

	result := Result{Kind: KindRecord}

	winner, warn := e.resolveWinner(info.Outcome, opponent, raw.HasInnings())
	if warn != "" {
		result.Warnings = append(result.Warnings, warn)
	}

	margin := ""
	if winner.Decided() {
		var ok bool
		if margin, ok = resolveMargin(info.Outcome); !ok {
			result.Warnings = append(result.Warnings, WarnAmbiguousMargin)
		}
	}

	result.Record = models.MatchRecord{
		Date:     date,
		Format:   format,
		Opponent: opponent,
		Winner:   winner,
		Margin:   margin,
		Ground:   ground,
		Year:     date.Year(),
	}

	return result, nil
}

func (e *Extractor) malformed(id string, cause error, detail string) Result {
	return Result{
		Kind: KindMalformed,
		Err:  &MalformedError{DocumentID: id, Cause: cause, Detail: detail},
	}
}

func (e *Extractor) involvesTeam(teams []string) bool {
	for _, t := range teams {
		if e.team.Matches(t) {
			return true
		}
	}

	return false
}

func (e *Extractor) resolveOpponent(teams []string) (string, error) {
	if len(teams) != 2 {
		return "", ErrTeamCount
	}

	first, second := e.team.Matches(teams[0]), e.team.Matches(teams[1])

	switch {
	case first && !second:
		return utils.CollapseWhitespace(teams[1]), nil
	case second && !first:
		return utils.CollapseWhitespace(teams[0]), nil
	default:
		return "", ErrTeamNotFound
	}
}

// resolveWinner applies the outcome precedence: result markers (tie, no
// result, draw) before the winner field, then the no-outcome draw rule.
func (e *Extractor) resolveWinner(outcome *models.Outcome, opponent string, hasInnings bool) (models.Winner, Warning) {
	if outcome == nil {
		if hasInnings {
			return models.WinnerDraw, ""
		}

		return models.WinnerUnknown, WarnUnknownOutcome
	}

	switch utils.Fold(outcome.Result) {
	case "tie", "tied":
		return models.WinnerTie, ""
	case "no result", "abandoned", "cancelled", "canceled":
		return models.WinnerNoResult, ""
	case "draw", "drawn":
		return models.WinnerDraw, ""
	}

	if strings.TrimSpace(outcome.Winner) != "" {
		switch {
		case e.team.Matches(outcome.Winner):
			return models.WinnerTeam, ""
		case utils.EqualFold(outcome.Winner, opponent):
			return models.WinnerOpponent, ""
		default:
			return models.WinnerUnknown, WarnUnknownWinner
		}
	}

	return models.WinnerUnknown, WarnUnknownOutcome
}

// resolveMargin renders the margin of a decided match. It reports false when
// runs and wickets are both present or both absent.
func resolveMargin(outcome *models.Outcome) (string, bool) {
	if outcome == nil || outcome.By == nil {
		return "", false
	}

	by := outcome.By

	switch {
	case by.Runs != nil && by.Wickets == nil:
		return models.FormatMargin(*by.Runs, models.UnitRuns), true
	case by.Wickets != nil && by.Runs == nil:
		return models.FormatMargin(*by.Wickets, models.UnitWickets), true
	default:
		return "", false
	}
}

// firstDate returns the earliest parsable date in dates.
func firstDate(dates []string) (time.Time, error) {
	if len(dates) == 0 {
		return time.Time{}, ErrMissingDate
	}

	var earliest time.Time

	for _, raw := range dates {
		date, ok := parseDate(raw)
		if !ok {
			continue
		}

		if earliest.IsZero() || date.Before(earliest) {
			earliest = date
		}
	}

	if earliest.IsZero() {
		return time.Time{}, ErrInvalidDate
	}

	return earliest, nil
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)

	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
