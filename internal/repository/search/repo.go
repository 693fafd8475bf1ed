// Package search adapts the vector store into the retrieval contract:
// embed the query, run an industry-scoped KNN search, map hits to evidence.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/aika-cloud/answerdex/internal/db"
	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/domain/industry"
)

// Index field names written by the ingestion pipeline.
const (
	fieldContent       = "__content"
	fieldSource        = "__source"
	fieldIndustryCodes = "__industry_codes"
	fieldPrimary       = "__primary"
	fieldVectorScore   = "__vector_score"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Repo implements usecase/retrieve.Searcher over the corpus index.
type Repo struct {
	store     store
	embed     Embedder
	keyPrefix string
	taxonomy  *industry.Taxonomy
}

// New creates an evidence search repository. keyPrefix scopes all corpus keys
// (e.g. "answerdex:").
func New(s store, embed Embedder, keyPrefix string) *Repo {
	return &Repo{store: s, embed: embed, keyPrefix: keyPrefix}
}

// WithTaxonomy attaches the static document mapping. It backfills industry
// codes for corpus entries indexed without the codes field and re-checks
// relevance client-side for them.
func (r *Repo) WithTaxonomy(t *industry.Taxonomy) *Repo {
	r.taxonomy = t
	return r
}

// Search embeds the query and runs a KNN search pre-filtered to documents
// tagged General or the user's industry code. The industry scoping happens
// index-side; only entries missing the codes field are re-checked against
// the taxonomy.
func (r *Repo) Search(
	ctx context.Context, query string, topK int, code industry.Code,
) ([]domain.Evidence, error) {
	vector, err := r.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	values := []string{string(industry.General)}
	if code != industry.General {
		values = append(values, string(code))
	}

	q := &db.KNNQuery{
		IndexName: r.indexName(),
		Filter:    &db.TagFilter{Field: "industry_codes", Values: values},
		Vector:    vector,
		K:         topK,
		ReturnFields: []string{
			fieldContent, fieldSource, fieldIndustryCodes, fieldPrimary, fieldVectorScore,
		},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w: %w", domain.ErrSearchUnavailable, err)
	}

	return r.parseResults(sr, code), nil
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "corpus:idx"
}

func (r *Repo) parseResults(sr *db.SearchResult, code industry.Code) []domain.Evidence {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	docPrefix := r.keyPrefix + "corpus:"
	evidence := make([]domain.Evidence, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		source := entry.Fields[fieldSource]

		codes := industry.ParseCodes(entry.Fields[fieldIndustryCodes])
		if entry.Fields[fieldIndustryCodes] == "" && r.taxonomy != nil {
			// Entry predates the codes field: fall back to the static
			// mapping and re-check relevance here.
			codes = r.taxonomy.CodesFor(source)
			if !industry.Relevant(codes, code) {
				continue
			}
		}

		ev := domain.Evidence{
			ID:    strings.TrimPrefix(entry.Key, docPrefix),
			Text:  entry.Fields[fieldContent],
			Score: entry.Score,
			Metadata: domain.EvidenceMetadata{
				SourceFilename:   source,
				IndustryCodes:    codes,
				PrimaryReference: isTrue(entry.Fields[fieldPrimary]),
			},
		}
		evidence = append(evidence, ev)
	}

	return evidence
}

func isTrue(s string) bool {
	return s == "1" || s == "true"
}
