// Package metadata signs generated reports with a trailing hash block so
// later edits to the report body can be detected.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the metadata block.
	TagStart = "<!-- METADATA_START"
	// TagEnd is the end of the metadata block.
	TagEnd = "METADATA_END -->"
)

// Metadata verification errors.
var (
	ErrNoMetadataBlock = errors.New("no metadata block found")
	ErrNoHashFound     = errors.New("no hash found in metadata")
	ErrHashMismatch    = errors.New("hash mismatch")
)

// Metadata describes a signed report.
type Metadata struct {
	RunID      string
	Generated  time.Time
	Hash       string
	Validation bool
}

// metadataRegex matches the entire metadata block including tags.
var metadataRegex = regexp.MustCompile(`(?s)<!--\s*METADATA_START\s*\n(.*?)\n\s*METADATA_END\s*-->`)

// Extract splits content into its metadata block and the body that was hashed.
// meta is nil when content carries no block.
func Extract(content string) (*Metadata, string) {
	match := metadataRegex.FindStringSubmatch(content)
	body := strings.TrimRight(metadataRegex.ReplaceAllString(content, ""), "\n")

	if len(match) < 2 {
		return nil, body
	}

	meta := &Metadata{}

	for line := range strings.SplitSeq(match[1], "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}

		val = strings.TrimSpace(val)

		switch strings.TrimSpace(key) {
		case "RUN_ID":
			meta.RunID = val
		case "VALIDATION":
			meta.Validation = strings.EqualFold(val, "TRUE")
		case "GENERATED":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				meta.Generated = t
			}
		case "HASH":
			meta.Hash = val
		}
	}

	return meta, body
}

// CalculateHash computes the SHA-256 of content with any metadata block removed.
func CalculateHash(content string) string {
	_, body := Extract(content)
	sum := sha256.Sum256([]byte(body))

	return hex.EncodeToString(sum[:])
}

// Sign replaces any existing block with a fresh one for runID. validated
// records whether the run rejected no input.
func Sign(content, runID string, validated bool) string {
	_, body := Extract(content)

	valStr := "FALSE"
	if validated {
		valStr = "TRUE"
	}

	block := fmt.Sprintf("\n\n%s\nRUN_ID: %s\nVALIDATION: %s\nGENERATED: %s\nHASH: %s\n%s",
		TagStart, runID, valStr, time.Now().UTC().Format(time.RFC3339), CalculateHash(body), TagEnd)

	return body + block + "\n"
}

// Verify checks that the body of content matches the hash in its block.
func Verify(content string) (*Metadata, error) {
	meta, body := Extract(content)
	if meta == nil {
		return nil, ErrNoMetadataBlock
	}

	if meta.Hash == "" {
		return meta, ErrNoHashFound
	}

	if calculated := CalculateHash(body); calculated != meta.Hash {
		return meta, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, meta.Hash, calculated)
	}

	return meta, nil
}
