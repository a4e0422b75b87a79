package normalizer

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"slcricket/internal/extractor"
	"slcricket/internal/models"
	"slcricket/internal/pipeline"
)

func TestNewReport_Breakdowns(t *testing.T) {
	var records []models.MatchRecord

	for i := 0; i < 12; i++ {
		rec := record(fmt.Sprintf("2019-05-%02d", i+1), models.FormatODI, fmt.Sprintf("Team %02d", i), "Galle", "1 run")
		records = append(records, rec)
	}

	extra := record("2015-01-01", models.FormatTest, "Team 05", "Galle", "")
	extra.HomeAway = models.Home
	records = append(records, extra)

	validation := &ValidationResult{
		Stats: ValidationStats{
			TotalRows:    15,
			InvalidRows:  2,
			ReasonCounts: map[ReasonCode]int{ReasonInvalidDate: 1, ReasonMissingField: 2},
		},
	}

	r := NewReport(sriLanka, validation, records, 0)

	if _, err := uuid.Parse(r.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", r.RunID, err)
	}

	if len(r.TopOpponents) != topOpponents {
		t.Errorf("TopOpponents has %d entries, want %d", len(r.TopOpponents), topOpponents)
	}

	if r.TopOpponents[0] != (Count{Label: "Team 05", N: 2}) {
		t.Errorf("TopOpponents[0] = %+v", r.TopOpponents[0])
	}

	wantFormats := []Count{{"Test", 1}, {"ODI", 12}}
	if !reflect.DeepEqual(r.ByFormat, wantFormats) {
		t.Errorf("ByFormat = %v, want %v", r.ByFormat, wantFormats)
	}

	wantWinners := []Count{{"Sri Lanka", 12}, {"Draw", 1}}
	if !reflect.DeepEqual(r.ByWinner, wantWinners) {
		t.Errorf("ByWinner = %v, want %v", r.ByWinner, wantWinners)
	}

	wantReasons := []Count{{"missing_field", 2}, {"invalid_date", 1}}
	if !reflect.DeepEqual(r.ReasonCounts, wantReasons) {
		t.Errorf("ReasonCounts = %v, want %v", r.ReasonCounts, wantReasons)
	}

	if r.DateFrom != "2015-01-01" || r.DateTo != "2019-05-12" {
		t.Errorf("date range = %s..%s", r.DateFrom, r.DateTo)
	}
}

func TestReport_AddExtraction(t *testing.T) {
	r := NewReport(sriLanka, &ValidationResult{}, nil, 0)

	r.AddExtraction(&pipeline.FormatResult{
		Source: "odis_json.zip",
		Malformed: []*extractor.MalformedError{
			{DocumentID: "9.json", Cause: extractor.ErrMissingVenue},
		},
		Stats: pipeline.Stats{
			Format:           models.FormatODI,
			DocumentsSeen:    10,
			MatchesForTeam:   4,
			MalformedSkipped: 1,
			Skipped:          map[extractor.SkipReason]int{extractor.ReasonTeamAbsent: 3, extractor.ReasonBeforeWindow: 2},
			Warnings:         map[extractor.Warning]int{extractor.WarnAmbiguousMargin: 2, extractor.WarnUnknownWinner: 1},
		},
	})

	if len(r.Extraction) != 1 {
		t.Fatalf("expected 1 extraction entry, got %d", len(r.Extraction))
	}

	got := r.Extraction[0]
	if got.Format != "ODI" || got.TeamAbsent != 3 || got.BeforeWindow != 2 || got.Warnings != 3 {
		t.Errorf("unexpected extraction stats: %+v", got)
	}

	if len(got.Malformed) != 1 || got.Malformed[0] != "malformed document 9.json: venue is missing" {
		t.Errorf("Malformed = %v", got.Malformed)
	}
}
