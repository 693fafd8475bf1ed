// Package retrieve fans one request out into concurrent per-query searches
// and merges the partial results into a deduplicated evidence pool.
package retrieve

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/domain/industry"
	"github.com/aika-cloud/answerdex/internal/metrics"
)

// Service runs bounded-concurrency retrieval fan-out.
type Service struct {
	searcher      Searcher
	maxConcurrent int
	timeout       time.Duration
	logger        *zap.Logger
}

// New creates a retrieval service. maxConcurrent caps simultaneous search
// calls per request; timeout bounds each individual call.
func New(searcher Searcher, maxConcurrent int, timeout time.Duration, logger *zap.Logger) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 5
	}
	return &Service{
		searcher:      searcher,
		maxConcurrent: maxConcurrent,
		timeout:       timeout,
		logger:        logger,
	}
}

// Retrieve issues one search per query concurrently and returns the merged
// results plus the number of failed sub-queries. Each sub-query is isolated:
// a failure (including timeout) drops only that query's contribution and
// never aborts its siblings. The method returns only after every sub-query
// has completed or failed.
func (s *Service) Retrieve(
	ctx context.Context, queries []string, topK int, code industry.Code,
) ([]domain.Evidence, int) {
	slots := make([][]domain.Evidence, len(queries))
	errs := make([]error, len(queries))

	var g errgroup.Group
	g.SetLimit(s.maxConcurrent)

	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			results, err := s.searcher.Search(callCtx, query, topK, code)
			if err != nil {
				errs[i] = err
				return nil // failures are collected, not propagated
			}
			slots[i] = results
			return nil
		})
	}
	_ = g.Wait() // barrier; goroutines never return errors

	failed := 0
	merged := make([]domain.Evidence, 0, len(queries)*topK)
	for i := range queries {
		if errs[i] != nil {
			failed++
			metrics.RetrievalSubqueriesTotal.WithLabelValues("failure").Inc()
			s.logger.Warn("sub-query retrieval failed",
				zap.String("query", queries[i]),
				zap.Error(errs[i]),
			)
			continue
		}
		metrics.RetrievalSubqueriesTotal.WithLabelValues("success").Inc()
		merged = append(merged, slots[i]...)
	}

	return merged, failed
}
