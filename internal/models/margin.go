package models

import (
	"regexp"
	"strconv"
	"strings"

	"slcricket/pkg/utils"
)

// MarginUnit is the unit a victory margin is counted in.
type MarginUnit string

// Margin units.
const (
	UnitRuns    MarginUnit = "run"
	UnitWickets MarginUnit = "wicket"
)

var marginPattern = regexp.MustCompile(`(?i)^(\d+)\s+(run|runs|wicket|wickets)$`)

// FormatMargin renders n in unit, singular exactly when n == 1.
func FormatMargin(n int, unit MarginUnit) string {
	word := string(unit)
	if n != 1 {
		word += "s"
	}

	return strconv.Itoa(n) + " " + word
}

// CanonicalMargin re-renders margin text through FormatMargin. Text that is
// not a run or wicket count is returned with whitespace collapsed.
func CanonicalMargin(text string) string {
	text = utils.CollapseWhitespace(text)

	match := marginPattern.FindStringSubmatch(text)
	if match == nil {
		return text
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return text
	}

	if strings.HasPrefix(strings.ToLower(match[2]), "wicket") {
		return FormatMargin(n, UnitWickets)
	}

	return FormatMargin(n, UnitRuns)
}
