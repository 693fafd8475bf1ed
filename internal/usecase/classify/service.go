// Package classify maps a query's intent onto the closed set of resource
// topics, using the top ranked evidence and the user's sector as context.
package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/domain/industry"
	"github.com/aika-cloud/answerdex/internal/domain/link"
	"github.com/aika-cloud/answerdex/internal/metrics"
)

const (
	maxContextChunks = 3
	maxChunkChars    = 200
	maxOutputTokens  = 10
)

// Service classifies query intent into a link topic. Classification is
// best-effort: every failure path resolves to "no topic".
type Service struct {
	completer Completer
	model     string
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a link classification service.
func New(completer Completer, model string, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{completer: completer, model: model, timeout: timeout, logger: logger}
}

// Classify returns the topic for the query, or ok=false when no topic from
// the closed set applies. Provider failures and out-of-set answers both
// resolve to no topic and are never surfaced as errors.
func (s *Service) Classify(
	ctx context.Context, query string, evidence []domain.Evidence, code industry.Code,
) (link.Topic, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.completer.Complete(ctx, domain.CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   buildUserPrompt(query, evidence, code),
		Model:        s.model,
		Temperature:  0,
		MaxTokens:    maxOutputTokens,
	})
	if err != nil {
		s.logger.Warn("link classification failed, answering without link", zap.Error(err))
		metrics.ClassificationOutcomesTotal.WithLabelValues(string(link.TopicNone)).Inc()
		return link.TopicNone, false
	}

	topic, ok := link.Parse(strings.ToLower(strings.TrimSpace(result.Text)))
	metrics.ClassificationOutcomesTotal.WithLabelValues(string(topic)).Inc()
	if !ok {
		return link.TopicNone, false
	}
	return topic, true
}

// buildUserPrompt assembles the classification context: the query, the
// user's sector description, and the first 200 characters of the top 3
// evidence chunks.
func buildUserPrompt(query string, evidence []domain.Evidence, code industry.Code) string {
	var chunks []string
	for i, ev := range evidence {
		if i == maxContextChunks {
			break
		}
		chunks = append(chunks, truncate(ev.Text, maxChunkChars))
	}

	return fmt.Sprintf(
		"User Query: %q\n\nIndustry Context: %s\n\nContext from relevant documents:\n%s\n\n"+
			"Classify this query into one of the three categories, considering the user's industry context.",
		query, industry.Describe(code), strings.Join(chunks, " "),
	)
}

// truncate cuts s to at most n runes without splitting a multibyte character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
