package industry

import "sort"

// Taxonomy associates corpus document identifiers with their industry codes.
// It is built once at startup and read-only afterwards, so it needs no locking.
type Taxonomy struct {
	docs map[string]CodeSet
}

// NewTaxonomy builds a taxonomy from a documentID -> comma-separated-codes
// mapping. Codes that fail to parse fall back to the General set, so every
// known document always has at least one code.
func NewTaxonomy(mapping map[string]string) *Taxonomy {
	docs := make(map[string]CodeSet, len(mapping))
	for id, csv := range mapping {
		docs[id] = ParseCodes(csv)
	}
	return &Taxonomy{docs: docs}
}

// Len returns the number of known documents.
func (t *Taxonomy) Len() int { return len(t.docs) }

// CodesFor returns the codes of a document, defaulting to General for
// documents absent from the mapping.
func (t *Taxonomy) CodesFor(documentID string) CodeSet {
	if codes, ok := t.docs[documentID]; ok {
		return codes
	}
	return NewCodeSet(General)
}

// DocumentRelevant reports whether the document applies to the user's sector.
func (t *Taxonomy) DocumentRelevant(documentID string, userCode Code) bool {
	return Relevant(t.CodesFor(documentID), userCode)
}

// FilterDocuments keeps the document IDs relevant to the user's sector,
// preserving input order.
func (t *Taxonomy) FilterDocuments(documentIDs []string, userCode Code) []string {
	out := make([]string, 0, len(documentIDs))
	for _, id := range documentIDs {
		if t.DocumentRelevant(id, userCode) {
			out = append(out, id)
		}
	}
	return out
}

// Documents returns all known document IDs in ascending order.
func (t *Taxonomy) Documents() []string {
	out := make([]string, 0, len(t.docs))
	for id := range t.docs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
