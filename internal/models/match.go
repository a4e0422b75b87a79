// Package models defines the match data structures shared by the extractor,
// the cleaning stages and the output layer.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"slcricket/pkg/utils"
)

// DateLayout is the only date form written to and accepted from the table.
const DateLayout = "2006-01-02"

// Columns is the fixed column order of the output table.
var Columns = []string{
	"Match_Date", "Match_Format", "Opponent", "Winner", "Margin", "Ground", "Year", "Home_Away",
}

// SourceColumns are the seven columns produced by extraction; Home_Away is derived later.
var SourceColumns = Columns[:7]

// Label errors.
var (
	ErrUnknownFormat = errors.New("unknown match format")
	ErrUnknownWinner = errors.New("unknown winner label")
)

// Format is the match format category.
type Format int

// Formats, declared in output order.
const (
	FormatTest Format = iota + 1
	FormatODI
	FormatT20
)

// Formats lists every format in canonical order.
var Formats = []Format{FormatTest, FormatODI, FormatT20}

func (f Format) String() string {
	switch f {
	case FormatTest:
		return "Test"
	case FormatODI:
		return "ODI"
	case FormatT20:
		return "T20"
	default:
		return ""
	}
}

// Rank orders formats Test < ODI < T20. Unknown formats sort last.
func (f Format) Rank() int {
	if f < FormatTest || f > FormatT20 {
		return int(FormatT20) + 1
	}

	return int(f)
}

// ParseFormat accepts only the canonical labels.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if s == f.String() {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

var formatAliases = map[string]Format{
	"test":  FormatTest,
	"tests": FormatTest,
	"odi":   FormatODI,
	"odis":  FormatODI,
	"t20":   FormatT20,
	"t20i":  FormatT20,
	"t20s":  FormatT20,
	"it20":  FormatT20,
}

// LookupFormat resolves case and spelling variants ("test", "T20I", " odis ").
func LookupFormat(s string) (Format, bool) {
	f, ok := formatAliases[utils.Fold(s)]
	return f, ok
}

// Winner is the match result from the designated team's point of view.
type Winner int

// Winner values. WinnerUnknown is the zero value and serializes to "".
const (
	WinnerUnknown Winner = iota
	WinnerTeam
	WinnerOpponent
	WinnerDraw
	WinnerTie
	WinnerNoResult
)

// Fixed winner labels. The designated team's label is its name.
const (
	LabelOpponent = "Opponent"
	LabelDraw     = "Draw"
	LabelTie      = "Tie"
	LabelNoResult = "No Result"
)

// Decided reports whether one side won the match.
func (w Winner) Decided() bool {
	return w == WinnerTeam || w == WinnerOpponent
}

// Label renders the winner for the output table.
func (w Winner) Label(team Team) string {
	switch w {
	case WinnerTeam:
		return team.Name
	case WinnerOpponent:
		return LabelOpponent
	case WinnerDraw:
		return LabelDraw
	case WinnerTie:
		return LabelTie
	case WinnerNoResult:
		return LabelNoResult
	default:
		return ""
	}
}

func (w Winner) String() string {
	switch w {
	case WinnerTeam:
		return "Team"
	case WinnerUnknown:
		return "Unknown"
	default:
		return w.Label(Team{})
	}
}

// ParseWinner accepts only the canonical labels for the given team.
func ParseWinner(s string, team Team) (Winner, error) {
	switch s {
	case team.Name:
		return WinnerTeam, nil
	case LabelOpponent:
		return WinnerOpponent, nil
	case LabelDraw:
		return WinnerDraw, nil
	case LabelTie:
		return WinnerTie, nil
	case LabelNoResult:
		return WinnerNoResult, nil
	case "":
		return WinnerUnknown, nil
	}

	return WinnerUnknown, fmt.Errorf("%w: %q", ErrUnknownWinner, s)
}

var winnerAliases = map[string]Winner{
	"opponent":  WinnerOpponent,
	"draw":      WinnerDraw,
	"drawn":     WinnerDraw,
	"tie":       WinnerTie,
	"tied":      WinnerTie,
	"no result": WinnerNoResult,
	"noresult":  WinnerNoResult,
	"no-result": WinnerNoResult,
	"abandoned": WinnerNoResult,
	"":          WinnerUnknown,
	"nan":       WinnerUnknown,
	"none":      WinnerUnknown,
}

// LookupWinner resolves case and spelling variants, including the team's aliases.
func LookupWinner(s string, team Team) (Winner, bool) {
	if team.Matches(s) {
		return WinnerTeam, true
	}

	w, ok := winnerAliases[utils.Fold(s)]

	return w, ok
}

// HomeAway classifies the venue relative to the designated team.
type HomeAway int

// HomeAway values.
const (
	HomeAwayUnset HomeAway = iota
	Home
	Away
)

func (h HomeAway) String() string {
	switch h {
	case Home:
		return "Home"
	case Away:
		return "Away"
	default:
		return ""
	}
}

// Team identifies the designated team and the spellings used for it in source data.
type Team struct {
	Name    string
	Aliases []string
}

// Matches reports whether name refers to the team, ignoring case and spacing.
func (t Team) Matches(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}

	if utils.EqualFold(name, t.Name) {
		return true
	}

	for _, alias := range t.Aliases {
		if utils.EqualFold(name, alias) {
			return true
		}
	}

	return false
}

// MatchRecord is one match involving the designated team.
type MatchRecord struct {
	Date     time.Time
	Format   Format
	Opponent string
	Winner   Winner
	Margin   string
	Ground   string
	Year     int
	HomeAway HomeAway
}

// Key returns the natural key used for deduplication.
func (m MatchRecord) Key() Key {
	return Key{
		Date:     m.Date.Format(DateLayout),
		Format:   m.Format,
		Opponent: m.Opponent,
		Ground:   m.Ground,
	}
}

// Row serializes the record into its table form.
func (m MatchRecord) Row(team Team) Row {
	return Row{
		MatchDate:   m.Date.Format(DateLayout),
		MatchFormat: m.Format.String(),
		Opponent:    m.Opponent,
		Winner:      m.Winner.Label(team),
		Margin:      m.Margin,
		Ground:      m.Ground,
		Year:        strconv.Itoa(m.Year),
		HomeAway:    m.HomeAway.String(),
	}
}

// Key is the (date, format, opponent, ground) tuple identifying a match.
type Key struct {
	Date     string
	Format   Format
	Opponent string
	Ground   string
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s|%s", k.Date, k.Format, k.Opponent, k.Ground)
}

// Row is a table row as written to or read from CSV. Every value is text;
// the cleaning stages are responsible for checking it.
type Row struct {
	MatchDate   string
	MatchFormat string
	Opponent    string
	Winner      string
	Margin      string
	Ground      string
	Year        string
	HomeAway    string
}

// Values returns the row in column order. When withHomeAway is false only
// the seven source columns are returned.
func (r Row) Values(withHomeAway bool) []string {
	values := []string{r.MatchDate, r.MatchFormat, r.Opponent, r.Winner, r.Margin, r.Ground, r.Year}
	if withHomeAway {
		values = append(values, r.HomeAway)
	}

	return values
}

// Less orders records by date, then format rank, then opponent.
func Less(a, b MatchRecord) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}

	if a.Format.Rank() != b.Format.Rank() {
		return a.Format.Rank() < b.Format.Rank()
	}

	return a.Opponent < b.Opponent
}
