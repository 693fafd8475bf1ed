package classify

import (
	"context"

	"github.com/aika-cloud/answerdex/internal/domain"
)

// Completer issues a chat completion against the generative provider.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (domain.CompletionResult, error)
}
