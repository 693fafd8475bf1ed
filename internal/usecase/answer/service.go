// Package answer orchestrates the full pipeline from user query to answer:
// expansion, fan-out retrieval, deduplication, ranking, synthesis and link
// classification.
package answer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/domain/industry"
	"github.com/aika-cloud/answerdex/internal/domain/link"
	"github.com/aika-cloud/answerdex/internal/logger"
	"github.com/aika-cloud/answerdex/internal/metrics"
	"github.com/aika-cloud/answerdex/internal/usecase/rank"
	"github.com/aika-cloud/answerdex/internal/usecase/retrieve"
)

// Pipeline stage labels, used for logging and stage duration metrics.
const (
	stageExpanding   = "expanding"
	stageRetrieving  = "retrieving"
	stageDedup       = "deduplicating"
	stageRanking     = "ranking"
	stageSynthesis   = "synthesizing"
	stageClassifying = "classifying_link"
)

// apologyText is returned verbatim whenever synthesis fails.
const apologyText = "I apologize, but I encountered an error while processing your request."

// Request carries one answer pipeline invocation.
type Request struct {
	Query               string
	IndustryCode        industry.Code
	TopK                int // 0 uses the configured default
	ConversationHistory string
	MetaInformation     string
}

// Config holds the pipeline tuning knobs.
type Config struct {
	Model            string
	Expansions       int
	TopK             int
	SynthesisTimeout time.Duration
}

// Service runs the answer pipeline. Expansion, retrieval and classification
// degrade gracefully; only synthesis failure fails the whole run.
type Service struct {
	expander   Expander
	retriever  Retriever
	classifier Classifier
	completer  Completer
	cfg        Config
	logger     *zap.Logger
}

// New creates an answer pipeline service.
func New(
	expander Expander,
	retriever Retriever,
	classifier Classifier,
	completer Completer,
	cfg Config,
	log *zap.Logger,
) *Service {
	return &Service{
		expander:   expander,
		retriever:  retriever,
		classifier: classifier,
		completer:  completer,
		cfg:        cfg,
		logger:     log,
	}
}

// Answer runs the pipeline for one query. It never returns an error: a fatal
// synthesis failure yields a result with the fixed apology text and OK=false.
func (s *Service) Answer(ctx context.Context, req Request) domain.AnswerResult {
	log := s.logger
	if reqLog := logger.FromContext(ctx); reqLog != nil {
		log = reqLog
	}
	log = log.With(zap.String("query", req.Query))

	topK := req.TopK
	if topK <= 0 {
		topK = s.cfg.TopK
	}
	code := req.IndustryCode
	if !industry.Valid(code) {
		code = industry.General
	}

	expansions := s.timed(stageExpanding, func() []string {
		return s.expander.Expand(ctx, req.Query, s.cfg.Expansions)
	})
	queries := make([]string, 0, len(expansions)+1)
	queries = append(queries, req.Query)
	queries = append(queries, expansions...)

	start := time.Now()
	pool, failed := s.retriever.Retrieve(ctx, queries, topK, code)
	observeStage(stageRetrieving, start)

	start = time.Now()
	unique := retrieve.Dedup(pool)
	observeStage(stageDedup, start)

	start = time.Now()
	ranked := rank.Rank(unique, topK)
	observeStage(stageRanking, start)

	log.Info("evidence assembled",
		zap.Int("queries", len(queries)),
		zap.Int("failed_subqueries", failed),
		zap.Int("retrieved", len(pool)),
		zap.Int("unique", len(unique)),
		zap.Int("ranked", len(ranked)),
	)

	start = time.Now()
	text, err := s.synthesize(ctx, req, ranked)
	observeStage(stageSynthesis, start)
	if err != nil {
		log.Error("answer synthesis failed", zap.Error(err))
		metrics.AnswerRequestsTotal.WithLabelValues("failed").Inc()
		return domain.AnswerResult{Text: apologyText}
	}

	var url string
	start = time.Now()
	if topic, ok := s.classifier.Classify(ctx, req.Query, ranked, code); ok {
		url, _ = link.URLFor(topic)
	}
	observeStage(stageClassifying, start)

	metrics.AnswerRequestsTotal.WithLabelValues("ok").Inc()
	return domain.AnswerResult{
		Text:            text,
		Evidence:        ranked,
		ExpandedQueries: expansions,
		Sources:         sources(ranked),
		Link:            url,
		OK:              true,
	}
}

// synthesize issues the grounded completion over the ranked evidence.
func (s *Service) synthesize(ctx context.Context, req Request, evidence []domain.Evidence) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SynthesisTimeout)
	defer cancel()

	result, err := s.completer.Complete(ctx, domain.CompletionRequest{
		SystemPrompt: buildSystemPrompt(req, evidence),
		UserPrompt:   req.Query,
		Model:        s.cfg.Model,
		Temperature:  0,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSynthesis, err)
	}
	return result.Text, nil
}

// sources lists the distinct source filenames of the evidence, in rank order.
func sources(evidence []domain.Evidence) []string {
	seen := make(map[string]struct{}, len(evidence))
	var out []string
	for _, ev := range evidence {
		name := ev.Metadata.SourceFilename
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (s *Service) timed(stage string, fn func() []string) []string {
	start := time.Now()
	defer observeStage(stage, start)
	return fn()
}

func observeStage(stage string, start time.Time) {
	metrics.AnswerStageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
