package models

import (
	"bytes"
	"encoding/json"
)

// Document is the subset of a Cricsheet match file the extractor reads.
// Both sections stay raw so a badly shaped section never fails the whole
// document; deliveries inside innings are never decoded.
type Document struct {
	Info    json.RawMessage `json:"info"`
	Innings json.RawMessage `json:"innings"`
}

// HasInnings reports whether the document carries at least one innings.
func (d Document) HasInnings() bool {
	var innings []json.RawMessage
	if err := json.Unmarshal(d.Innings, &innings); err != nil {
		return false
	}

	return len(innings) > 0
}

// Info is the match-level metadata block.
type Info struct {
	Teams     []string `json:"teams"`
	Dates     DateList `json:"dates"`
	Venue     string   `json:"venue"`
	City      string   `json:"city"`
	MatchType string   `json:"match_type"`
	Gender    string   `json:"gender"`
	Event     *Event   `json:"event,omitempty"`
	Outcome   *Outcome `json:"outcome,omitempty"`
}

// Event names the series or tournament a match belongs to.
type Event struct {
	Name        string `json:"name"`
	MatchNumber int    `json:"match_number"`
}

// Outcome is the result section. Winner is absent for draws, ties and
// abandoned matches; Result carries the marker in those cases.
type Outcome struct {
	Winner     string   `json:"winner"`
	Result     string   `json:"result"`
	Method     string   `json:"method"`
	Eliminator string   `json:"eliminator"`
	By         *Victory `json:"by,omitempty"`
}

// Victory is the margin sub-structure. Runs and Wickets are mutually
// exclusive in well-formed data.
type Victory struct {
	Runs    *int `json:"runs,omitempty"`
	Wickets *int `json:"wickets,omitempty"`
	Innings *int `json:"innings,omitempty"`
}

// DateList accepts either a single date string or a list of them.
type DateList []string

// UnmarshalJSON implements json.Unmarshaler.
func (d *DateList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}

		*d = DateList{single}

		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}

	*d = list

	return nil
}
