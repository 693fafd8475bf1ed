package domain

// AnswerResult is the outcome of one answer pipeline run.
// It is always well-formed: failed runs carry a fixed apology text,
// empty evidence and OK=false instead of an error.
type AnswerResult struct {
	Text            string
	Evidence        []Evidence
	ExpandedQueries []string
	Sources         []string
	Link            string // empty when no topic matched
	OK              bool
}
