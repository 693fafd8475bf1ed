package answer

import (
	"context"

	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/domain/industry"
	"github.com/aika-cloud/answerdex/internal/domain/link"
)

// Expander widens the query into semantic variants. Must not fail: a
// degraded expander returns an empty slice.
type Expander interface {
	Expand(ctx context.Context, query string, n int) []string
}

// Retriever fans queries out against the search collaborator and reports
// merged evidence plus the number of failed sub-queries.
type Retriever interface {
	Retrieve(ctx context.Context, queries []string, topK int, code industry.Code) ([]domain.Evidence, int)
}

// Classifier resolves the query intent to a link topic, ok=false for none.
type Classifier interface {
	Classify(ctx context.Context, query string, evidence []domain.Evidence, code industry.Code) (link.Topic, bool)
}

// Completer issues the synthesis chat completion.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (domain.CompletionResult, error)
}
