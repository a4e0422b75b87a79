package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"slcricket/internal/normalizer"
	"slcricket/pkg/metadata"
)

// maxInvalidRows caps the invalid-row listing.
const maxInvalidRows = 25

// RenderReport renders r as a signed markdown document.
func RenderReport(r *normalizer.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Cleaning report: %s\n\n", r.Team)
	fmt.Fprintf(&sb, "Run `%s`, generated %s.\n\n", r.RunID, r.GeneratedAt.Format(time.RFC3339))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(RenderTable([]string{"Metric", "Value"}, summaryRows(r)))
	sb.WriteString("\n\n")

	clean := r.InvalidRowsRemoved == 0

	if len(r.Extraction) > 0 {
		sb.WriteString("## Extraction\n\n")

		header := []string{"Format", "Source", "Documents", "Matches", "Malformed", "Team absent", "Before window", "Warnings"}

		var rows [][]string
		for _, e := range r.Extraction {
			rows = append(rows, []string{
				e.Format, cell(e.Source), strconv.Itoa(e.DocumentsSeen), strconv.Itoa(e.MatchesForTeam),
				strconv.Itoa(e.MalformedSkipped), strconv.Itoa(e.TeamAbsent), strconv.Itoa(e.BeforeWindow),
				strconv.Itoa(e.Warnings),
			})

			if e.MalformedSkipped > 0 {
				clean = false
			}
		}

		sb.WriteString(RenderTable(header, rows))
		sb.WriteString("\n\n")
	}

	writeCounts(&sb, "Rejection reasons", "Reason", r.ReasonCounts)
	writeCounts(&sb, "By format", "Format", r.ByFormat)
	writeCounts(&sb, "By winner", "Winner", r.ByWinner)
	writeCounts(&sb, "Home and away", "Venue", r.ByHomeAway)
	writeCounts(&sb, "Top opponents", "Opponent", r.TopOpponents)

	writeMalformed(&sb, r.Extraction)
	writeInvalid(&sb, r.Invalid)

	return metadata.Sign(sb.String(), r.RunID, clean)
}

func summaryRows(r *normalizer.Report) [][]string {
	dateRange := "-"
	if r.DateFrom != "" {
		dateRange = r.DateFrom + " to " + r.DateTo
	}

	return [][]string{
		{"Rows before", strconv.Itoa(r.RowsBefore)},
		{"Invalid rows removed", strconv.Itoa(r.InvalidRowsRemoved)},
		{"Duplicates removed", strconv.Itoa(r.DuplicatesRemoved)},
		{"Rows after", strconv.Itoa(r.RowsAfter)},
		{"Retention rate", fmt.Sprintf("%.1f%%", r.RetentionRate*100)},
		{"Date range", dateRange},
	}
}

func writeCounts(sb *strings.Builder, title, label string, counts []normalizer.Count) {
	if len(counts) == 0 {
		return
	}

	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		name := c.Label
		if name == "" {
			name = "(none)"
		}

		rows = append(rows, []string{cell(name), strconv.Itoa(c.N)})
	}

	fmt.Fprintf(sb, "## %s\n\n", title)
	sb.WriteString(RenderTable([]string{label, "Count"}, rows))
	sb.WriteString("\n\n")
}

func writeMalformed(sb *strings.Builder, extraction []normalizer.FormatStats) {
	var lines []string

	for _, e := range extraction {
		for _, m := range e.Malformed {
			lines = append(lines, fmt.Sprintf("- %s: %s", e.Format, m))
		}
	}

	if len(lines) == 0 {
		return
	}

	sb.WriteString("## Malformed documents\n\n")
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n\n")
}

func writeInvalid(sb *strings.Builder, invalid []normalizer.InvalidRow) {
	if len(invalid) == 0 {
		return
	}

	sb.WriteString("## Invalid rows\n\n")

	shown := invalid
	if len(shown) > maxInvalidRows {
		shown = shown[:maxInvalidRows]
	}

	rows := make([][]string, 0, len(shown))
	for _, inv := range shown {
		reasons := make([]string, 0, len(inv.Reasons))
		for _, r := range inv.Reasons {
			reasons = append(reasons, r.String())
		}

		rows = append(rows, []string{
			strconv.Itoa(inv.Index), cell(inv.Row.MatchDate), cell(inv.Row.Opponent), cell(strings.Join(reasons, "; ")),
		})
	}

	sb.WriteString(RenderTable([]string{"Row", "Date", "Opponent", "Reasons"}, rows))
	sb.WriteString("\n")

	if len(invalid) > len(shown) {
		fmt.Fprintf(sb, "\n%d more not shown.\n", len(invalid)-len(shown))
	}

	sb.WriteString("\n")
}

// cell keeps a value from breaking the table layout.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", "/")
}
