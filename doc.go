// Package answerdex embeds the retrieval-augmented answer pipeline in-process:
// query expansion, industry-scoped vector retrieval, deduplication, priority
// ranking, grounded synthesis and resource link classification.
//
// The HTTP service under cmd/answerdex wraps the same pipeline; this package
// is for Go programs that want the engine without the server.
package answerdex
