package retrieve

import (
	"context"

	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/domain/industry"
)

// Searcher is the vector search collaborator. Industry filtering is applied
// index-side; implementations must not re-filter results.
type Searcher interface {
	Search(ctx context.Context, query string, topK int, code industry.Code) ([]domain.Evidence, error)
}
