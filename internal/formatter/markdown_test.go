package formatter

import (
	"strings"
	"testing"

	"slcricket/pkg/metadata"
)

func TestFormatMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "Basic table formatting",
			input: `
| Metric | Value |
| --- | --- |
| Rows before | 12 |
`,
			expected: `
| Metric      | Value |
| ----------- | ----- |
| Rows before | 12    |
`,
		},
		{
			name: "Fix excessive dashes",
			input: `
| Format | Count |
| ---------------------- | ---------------------------------- |
| ODI | 4 |
`,
			expected: `
| Format | Count |
| ------ | ----- |
| ODI    | 4     |
`,
		},
		{
			name: "Mixed content",
			input: `
# Top opponents

| H1 | H2 |
| -- | -- |
| v1 | v2 |

Text after table.
`,
			expected: `
# Top opponents

| H1  | H2  |
| --- | --- |
| v1  | v2  |

Text after table.
`,
		},
		{
			name: "Wide characters",
			input: `
| Ground | Year |
| --- | --- |
| 加尔体育场 | 2019 |
| Galle | 2020 |
`,
			expected: `
| Ground     | Year |
| ---------- | ---- |
| 加尔体育场 | 2019 |
| Galle      | 2020 |
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatMarkdown(strings.TrimSpace(tt.input))
			if err != nil {
				t.Errorf("FormatMarkdown() error = %v", err)

				return
			}

			if strings.TrimSpace(got) != strings.TrimSpace(tt.expected) {
				t.Errorf("FormatMarkdown() = \n%v\nwant \n%v", got, tt.expected)
			}
		})
	}
}

func TestFormatMarkdown_KeepsSignature(t *testing.T) {
	signed := metadata.Sign("| a | b |\n| - | - |\n| 1 | 2 |", "run-7", true)

	got, err := FormatMarkdown(signed)
	if err != nil {
		t.Fatalf("FormatMarkdown() error = %v", err)
	}

	meta, err := metadata.Verify(got)
	if err != nil {
		t.Fatalf("reformatted report does not verify: %v", err)
	}

	if meta.RunID != "run-7" || !meta.Validation {
		t.Errorf("unexpected metadata: %+v", meta)
	}
}

func TestRenderTable(t *testing.T) {
	got := RenderTable([]string{"Opponent", "Count"}, [][]string{{"India", "12"}, {"Bangladesh", "3"}})

	want := strings.Join([]string{
		"| Opponent   | Count |",
		"| ---------- | ----- |",
		"| India      | 12    |",
		"| Bangladesh | 3     |",
	}, "\n")

	if got != want {
		t.Errorf("RenderTable() = \n%s\nwant \n%s", got, want)
	}
}
