// Package expand widens retrieval recall by generating semantically varied
// rephrasings of the user's query.
package expand

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/metrics"
)

const systemPrompt = "You are a query expansion assistant. Your task is to generate alternative " +
	"versions of the user's query that might retrieve additional relevant information. " +
	"Covered topics: key EU regulations like CSRD, Taxonomy, and ESRS, along with GHG Protocols " +
	"(general, project-level, agriculture) and UN guidelines. " +
	"Generate semantically different but related queries that explore different aspects " +
	"or phrasings of the same information need. Return ONLY a numbered list of queries, " +
	"no explanations or other text. Mix of German and English language."

// Service generates query expansions. Expansion is strictly best-effort:
// any failure yields zero expansions and the caller proceeds with the
// original query alone.
type Service struct {
	completer Completer
	model     string
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates an expansion service.
func New(completer Completer, model string, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{completer: completer, model: model, timeout: timeout, logger: logger}
}

// Expand returns up to n rephrasings of query. Never fails: on any provider
// or parse problem it returns an empty slice and records the fallback.
func (s *Service) Expand(ctx context.Context, query string, n int) []string {
	if n <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.completer.Complete(ctx, domain.CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   fmt.Sprintf("Original query: '%s'\n\nGenerate %d alternative queries.", query, n),
		Model:        s.model,
		Temperature:  0.7,
	})
	if err != nil {
		metrics.ExpansionFailuresTotal.Inc()
		s.logger.Warn("query expansion failed, continuing with original query only", zap.Error(err))
		return nil
	}

	expansions := parseExpansions(result.Text, n)
	if len(expansions) == 0 {
		metrics.ExpansionFailuresTotal.Inc()
		s.logger.Warn("query expansion returned no usable lines")
	}
	return expansions
}
