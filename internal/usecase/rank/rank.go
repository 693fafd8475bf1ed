// Package rank orders deduplicated evidence for context assembly, guaranteeing
// the primary reference document class a minimum share of the final set.
package rank

import (
	"github.com/aika-cloud/answerdex/internal/domain"
)

// PrimaryQuota returns the number of slots reserved for primary-reference
// evidence: half of topK, but always at least one.
func PrimaryQuota(topK int) int {
	quota := topK / 2
	if quota < 1 {
		quota = 1
	}
	return quota
}

// Rank selects at most topK evidence items: the best-scored primary-reference
// items fill the reserved quota, the remaining slots take the best of the
// rest. Both partitions are stable-sorted ascending by score, so score ties
// keep their input order. When fewer primaries exist than the quota the
// output is simply shorter; unused primary slots are not backfilled.
func Rank(evidence []domain.Evidence, topK int) []domain.Evidence {
	if topK <= 0 || len(evidence) == 0 {
		return nil
	}

	var primary, other []domain.Evidence
	for _, ev := range evidence {
		if ev.Metadata.PrimaryReference {
			primary = append(primary, ev)
		} else {
			other = append(other, ev)
		}
	}

	domain.SortByScore(primary)
	domain.SortByScore(other)

	quota := PrimaryQuota(topK)
	if quota > len(primary) {
		quota = len(primary)
	}
	rest := topK - PrimaryQuota(topK)
	if rest > len(other) {
		rest = len(other)
	}

	out := make([]domain.Evidence, 0, quota+rest)
	out = append(out, primary[:quota]...)
	out = append(out, other[:rest]...)
	return out
}
