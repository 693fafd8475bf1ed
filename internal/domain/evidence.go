package domain

import (
	"sort"

	"github.com/aika-cloud/answerdex/internal/domain/industry"
)

// Evidence is a scored passage of corpus text returned by retrieval.
// Score is a cosine distance: lower means more relevant.
type Evidence struct {
	ID       string
	Text     string
	Score    float64
	Metadata EvidenceMetadata
}

// EvidenceMetadata carries document-level attributes of an evidence chunk.
type EvidenceMetadata struct {
	SourceFilename   string
	IndustryCodes    industry.CodeSet
	PrimaryReference bool
}

// SortByScore orders evidence ascending by score in place.
// The sort is stable so ties keep their input order.
func SortByScore(evidence []Evidence) {
	sort.SliceStable(evidence, func(i, j int) bool {
		return evidence[i].Score < evidence[j].Score
	})
}
