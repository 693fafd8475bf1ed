package answerdex

import "go.uber.org/zap"

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver   string
	addrs    []string
	password string

	apiKey  string
	baseURL string

	synthesisModel  string
	expansionModel  string
	classifierModel string

	embeddingModel      string
	embeddingDimensions int

	keyPrefix    string
	taxonomyPath string

	topK       int
	expansions int

	logger *zap.Logger
}

// WithValkey connects to a Valkey instance.
func WithValkey(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = addrs
		c.password = password
	}
}

// WithRedis connects to a Redis 8+ instance.
func WithRedis(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = addrs
		c.password = password
	}
}

// WithOpenAI sets the credentials for the completion and embedding provider.
// baseURL may be empty for the default endpoint.
func WithOpenAI(apiKey, baseURL string) Option {
	return func(c *clientConfig) {
		c.apiKey = apiKey
		c.baseURL = baseURL
	}
}

// WithModels overrides the per-purpose completion models. Empty values keep
// the defaults.
func WithModels(synthesis, expansion, classifier string) Option {
	return func(c *clientConfig) {
		if synthesis != "" {
			c.synthesisModel = synthesis
		}
		if expansion != "" {
			c.expansionModel = expansion
		}
		if classifier != "" {
			c.classifierModel = classifier
		}
	}
}

// WithEmbeddingModel overrides the embedding model and its dimensions.
func WithEmbeddingModel(model string, dimensions int) Option {
	return func(c *clientConfig) {
		c.embeddingModel = model
		c.embeddingDimensions = dimensions
	}
}

// WithKeyPrefix scopes all corpus keys (default "answerdex:").
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithTaxonomyFile loads the document industry-code mapping from a YAML file.
func WithTaxonomyFile(path string) Option {
	return func(c *clientConfig) {
		c.taxonomyPath = path
	}
}

// WithRetrieval tunes the evidence budget and query expansion count.
func WithRetrieval(topK, expansions int) Option {
	return func(c *clientConfig) {
		c.topK = topK
		c.expansions = expansions
	}
}

// WithLogger attaches a zap logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

func (c *clientConfig) applyDefaults() {
	if c.synthesisModel == "" {
		c.synthesisModel = "gpt-4o"
	}
	if c.expansionModel == "" {
		c.expansionModel = c.synthesisModel
	}
	if c.classifierModel == "" {
		c.classifierModel = c.synthesisModel
	}
	if c.embeddingModel == "" {
		c.embeddingModel = "text-embedding-3-small"
	}
	if c.embeddingDimensions <= 0 {
		c.embeddingDimensions = 1536
	}
	if c.keyPrefix == "" {
		c.keyPrefix = "answerdex:"
	}
	if c.topK <= 0 {
		c.topK = 3
	}
	if c.expansions <= 0 {
		c.expansions = 4
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
}
