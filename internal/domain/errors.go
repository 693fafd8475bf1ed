package domain

import "errors"

var (
	// ErrCompletionProvider signals a generative provider failure.
	ErrCompletionProvider = errors.New("completion provider error")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrSearchUnavailable signals that the vector search backend is unreachable.
	ErrSearchUnavailable = errors.New("search backend unavailable")
	// ErrSynthesis signals a failed answer synthesis call. Fatal for the request.
	ErrSynthesis = errors.New("answer synthesis failed")
	// ErrIndustryUnknown signals an industry code outside the catalog.
	ErrIndustryUnknown = errors.New("unknown industry code")
)
