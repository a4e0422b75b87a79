package normalizer

import (
	"strconv"
	"testing"

	"slcricket/internal/logger"
	"slcricket/internal/models"
)

func TestProcessor_Clean(t *testing.T) {
	p := NewProcessor(sriLanka, testVenues(), logger.NewDiscard())

	rows := []models.Row{
		{MatchDate: "2019-06-01", MatchFormat: "test", Opponent: "England", Winner: "drawn", Ground: "Lord's", Year: "2019"},
		{MatchDate: "2019-05-01", MatchFormat: "ODI", Opponent: "India", Winner: "Opponent", Ground: "Galle International Stadium", Year: "2019"},
		{MatchDate: "2019-05-01", MatchFormat: "ODI", Opponent: "India", Winner: "Opponent", Margin: "5 wickets", Ground: "Galle International Stadium", Year: "2019"},
		{MatchDate: "2019-05-01", MatchFormat: "ODI", Opponent: "Sri Lanka", Winner: "Tie", Ground: "Galle International Stadium", Year: "2019"},
		{MatchDate: "2018-02-01", MatchFormat: "T20I", Opponent: "Bangladesh", Winner: "SL", Margin: "1 Runs", Ground: "R Premadasa Stadium", Year: "2018"},
		{MatchDate: "2018-02-02", MatchFormat: "T20", Opponent: "Bangladesh", Winner: "Tie", Margin: "1 run", Ground: "R Premadasa Stadium", Year: "2018"},
	}

	records, report, err := p.Clean(rows)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d: %+v", len(records), records)
	}

	if records[0].Format != models.FormatT20 || records[0].Margin != "1 run" || records[0].HomeAway != models.Home {
		t.Errorf("unexpected first record: %+v", records[0])
	}

	if records[1].Opponent != "India" || records[1].Margin != "5 wickets" {
		t.Errorf("duplicate not resolved to the row with a margin: %+v", records[1])
	}

	if records[2].Format != models.FormatTest || records[2].Winner != models.WinnerDraw || records[2].HomeAway != models.Away {
		t.Errorf("unexpected last record: %+v", records[2])
	}

	for i := 1; i < len(records); i++ {
		if models.Less(records[i], records[i-1]) {
			t.Errorf("records not sorted at %d", i)
		}
	}

	for _, rec := range records {
		if strconv.Itoa(rec.Year) != rec.Date.Format("2006") {
			t.Errorf("year %d does not match date %s", rec.Year, rec.Date)
		}

		if !rec.Winner.Decided() && rec.Margin != "" {
			t.Errorf("undecided record carries margin: %+v", rec)
		}

		if sriLanka.Matches(rec.Opponent) {
			t.Errorf("opponent is the designated team: %+v", rec)
		}
	}

	if report.RowsBefore != 6 || report.RowsAfter != 3 || report.InvalidRowsRemoved != 2 || report.DuplicatesRemoved != 1 {
		t.Errorf("unexpected report counts: %+v", report)
	}

	if report.RetentionRate != 0.5 {
		t.Errorf("RetentionRate = %v, want 0.5", report.RetentionRate)
	}
}

func TestProcessor_Clean_Empty(t *testing.T) {
	p := NewProcessor(sriLanka, testVenues(), logger.NewDiscard())

	records, report, err := p.Clean(nil)
	if err != nil {
		t.Fatalf("Clean returned unexpected error: %v", err)
	}

	if len(records) != 0 || report.RetentionRate != 0 || report.DateFrom != "" {
		t.Errorf("unexpected result for empty input: %d records, %+v", len(records), report)
	}
}
