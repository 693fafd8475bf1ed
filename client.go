package answerdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aika-cloud/answerdex/internal/db"
	dbRedis "github.com/aika-cloud/answerdex/internal/db/redis"
	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/domain/industry"
	searchrepo "github.com/aika-cloud/answerdex/internal/repository/search"
	taxonomyrepo "github.com/aika-cloud/answerdex/internal/repository/taxonomy"
	openaiTransport "github.com/aika-cloud/answerdex/internal/transport/openai"
	answeruc "github.com/aika-cloud/answerdex/internal/usecase/answer"
	classifyuc "github.com/aika-cloud/answerdex/internal/usecase/classify"
	expanduc "github.com/aika-cloud/answerdex/internal/usecase/expand"
	retrieveuc "github.com/aika-cloud/answerdex/internal/usecase/retrieve"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultSynthesisTimeout = 60 * time.Second
	defaultAuxiliaryTimeout = 15 * time.Second
	defaultQueryTimeout     = 20 * time.Second
	defaultMaxConcurrent    = 5
)

// Request is one answer pipeline invocation.
type Request struct {
	// Query is the user question. Required.
	Query string
	// IndustryCode scopes retrieval to a ÖNACE section; empty means general.
	IndustryCode string
	// TopK overrides the configured evidence budget when positive.
	TopK int
	// ConversationHistory is prior dialogue carried into synthesis.
	ConversationHistory string
	// MetaInformation is free-form user context carried into synthesis.
	MetaInformation string
}

// Evidence is one retrieved corpus chunk backing an answer.
type Evidence struct {
	ID               string
	Text             string
	Score            float64
	Source           string
	IndustryCodes    []string
	PrimaryReference bool
}

// Result is the outcome of one pipeline run. Failed runs carry a fixed
// apology text and OK=false.
type Result struct {
	Answer          string
	Evidence        []Evidence
	ExpandedQueries []string
	Sources         []string
	Link            string
	OK              bool
}

// Client is the answerdex in-process entry point.
type Client struct {
	store  db.Store
	answer *answeruc.Service
}

// New creates a Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	cfg.applyDefaults()

	if len(cfg.addrs) == 0 {
		return nil, errors.New("answerdex: database address required (use WithValkey or WithRedis)")
	}
	if cfg.apiKey == "" {
		return nil, errors.New("answerdex: provider credentials required (use WithOpenAI)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("answerdex: database not ready: %w", err)
	}

	return wireClient(store, cfg)
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("answerdex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("answerdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) (*Client, error) {
	completerCfg := &openaiTransport.Config{
		APIKey:  cfg.apiKey,
		BaseURL: cfg.baseURL,
		Logger:  cfg.logger,
	}
	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.apiKey,
		BaseURL:    cfg.baseURL,
		Model:      cfg.embeddingModel,
		Dimensions: cfg.embeddingDimensions,
		Logger:     cfg.logger,
	})

	searchRepo := searchrepo.New(store, embedder, cfg.keyPrefix)
	if cfg.taxonomyPath != "" {
		taxonomy, err := taxonomyrepo.Load(cfg.taxonomyPath)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("answerdex: load taxonomy: %w", err)
		}
		searchRepo = searchRepo.WithTaxonomy(taxonomy)
	}

	expandSvc := expanduc.New(
		openaiTransport.NewCompleter(completerCfg, "expansion"),
		cfg.expansionModel, defaultAuxiliaryTimeout, cfg.logger,
	)
	retrieveSvc := retrieveuc.New(searchRepo, defaultMaxConcurrent, defaultQueryTimeout, cfg.logger)
	classifySvc := classifyuc.New(
		openaiTransport.NewCompleter(completerCfg, "classification"),
		cfg.classifierModel, defaultAuxiliaryTimeout, cfg.logger,
	)
	answerSvc := answeruc.New(
		expandSvc, retrieveSvc, classifySvc,
		openaiTransport.NewCompleter(completerCfg, "synthesis"),
		answeruc.Config{
			Model:            cfg.synthesisModel,
			Expansions:       cfg.expansions,
			TopK:             cfg.topK,
			SynthesisTimeout: defaultSynthesisTimeout,
		},
		cfg.logger,
	)

	return &Client{store: store, answer: answerSvc}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Answer runs the full pipeline for one request. It never returns a pipeline
// error: failed runs come back with OK=false and the apology text.
func (c *Client) Answer(ctx context.Context, req Request) (Result, error) {
	if req.Query == "" {
		return Result{}, errors.New("answerdex: query is required")
	}
	code := industry.Code(req.IndustryCode)
	if req.IndustryCode != "" && !industry.Valid(code) {
		return Result{}, fmt.Errorf("answerdex: %w: %q", domain.ErrIndustryUnknown, req.IndustryCode)
	}

	result := c.answer.Answer(ctx, answeruc.Request{
		Query:               req.Query,
		IndustryCode:        code,
		TopK:                req.TopK,
		ConversationHistory: req.ConversationHistory,
		MetaInformation:     req.MetaInformation,
	})
	return resultFromDomain(result), nil
}

func resultFromDomain(r domain.AnswerResult) Result {
	out := Result{
		Answer:          r.Text,
		ExpandedQueries: r.ExpandedQueries,
		Sources:         r.Sources,
		Link:            r.Link,
		OK:              r.OK,
	}
	if len(r.Evidence) > 0 {
		out.Evidence = make([]Evidence, len(r.Evidence))
		for i, ev := range r.Evidence {
			codes := ev.Metadata.IndustryCodes.Sorted()
			strs := make([]string, len(codes))
			for j, code := range codes {
				strs[j] = string(code)
			}
			out.Evidence[i] = Evidence{
				ID:               ev.ID,
				Text:             ev.Text,
				Score:            ev.Score,
				Source:           ev.Metadata.SourceFilename,
				IndustryCodes:    strs,
				PrimaryReference: ev.Metadata.PrimaryReference,
			}
		}
	}
	return out
}

// Industries lists the ÖNACE section catalog.
func (c *Client) Industries() []industry.Category {
	return industry.All()
}
