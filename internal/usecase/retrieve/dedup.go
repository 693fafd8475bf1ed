package retrieve

import "github.com/aika-cloud/answerdex/internal/domain"

// Dedup collapses evidence retrieved by multiple expanded queries.
// The pool is stable-sorted ascending by score first, then the first
// occurrence of each distinct text wins, so a passage found by several
// queries keeps its best score. Keying on exact text (not chunk ID) merges
// identical passages that were indexed under different IDs; near-duplicates
// are left alone.
func Dedup(evidence []domain.Evidence) []domain.Evidence {
	if len(evidence) == 0 {
		return nil
	}

	pool := make([]domain.Evidence, len(evidence))
	copy(pool, evidence)
	domain.SortByScore(pool)

	seen := make(map[string]struct{}, len(pool))
	out := pool[:0]
	for _, ev := range pool {
		if _, dup := seen[ev.Text]; dup {
			continue
		}
		seen[ev.Text] = struct{}{}
		out = append(out, ev)
	}

	return out
}
