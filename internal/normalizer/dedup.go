package normalizer

import "slcricket/internal/models"

// Deduplicate keeps one record per natural key and returns the survivors with
// the number removed. The representative sits at the position of the group's
// first occurrence. A record with a margin replaces one without; otherwise
// the first occurrence wins.
func Deduplicate(records []models.MatchRecord) ([]models.MatchRecord, int) {
	out := make([]models.MatchRecord, 0, len(records))
	seen := make(map[models.Key]int, len(records))

	for _, rec := range records {
		key := rec.Key()

		pos, dup := seen[key]
		if !dup {
			seen[key] = len(out)
			out = append(out, rec)

			continue
		}

		if out[pos].Margin == "" && rec.Margin != "" {
			out[pos] = rec
		}
	}

	return out, len(records) - len(out)
}
