package utils

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Galle", "Galle"},
		{"  R  Premadasa\tStadium \n", "R Premadasa Stadium"},
	}

	for _, tt := range tests {
		if got := CollapseWhitespace(tt.in); got != tt.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Galle International Stadium", "  galle   INTERNATIONAL stadium ", true},
		{"Sinhalese Sports Club", "Sinhalese Sports Club Ground", false},
		{"Dambulla", "Dámbulla", true},
		{"", "   ", true},
	}

	for _, tt := range tests {
		if got := EqualFold(tt.a, tt.b); got != tt.want {
			t.Errorf("EqualFold(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("abcdef", 3); got != "abc..." {
		t.Errorf("TruncateString = %q, want abc...", got)
	}

	if got := TruncateString("abc", 5); got != "abc" {
		t.Errorf("TruncateString = %q, want abc", got)
	}

	if got := TruncateString("Kurunégala", 6); got != "Kuruné..." {
		t.Errorf("TruncateString = %q, want Kuruné...", got)
	}
}
