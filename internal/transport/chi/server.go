// Package chi exposes the answer pipeline over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/domain/industry"
	answeruc "github.com/aika-cloud/answerdex/internal/usecase/answer"
	healthuc "github.com/aika-cloud/answerdex/internal/usecase/health"
)

const maxQueryLength = 4000

// Answerer runs the answer pipeline for one request.
type Answerer interface {
	Answer(ctx context.Context, req answeruc.Request) domain.AnswerResult
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the HTTP API.
type Server struct {
	answers       Answerer
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(answers Answerer, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		answers: answers,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrIndustryUnknown, http.StatusNotFound, "industry_not_found"),
		sentinelHandler(domain.ErrSearchUnavailable, http.StatusServiceUnavailable, "search_unavailable"),
		sentinelHandler(domain.ErrCompletionProvider, http.StatusBadGateway, "completion_provider_error"),
		sentinelHandler(domain.ErrEmbeddingProvider, http.StatusBadGateway, "embedding_provider_error"),
	}
	return s
}

// Routes mounts all endpoints on the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Post("/v1/answers", s.CreateAnswer)
	r.Get("/v1/industries", s.ListIndustries)
	r.Get("/v1/industries/{code}", s.GetIndustry)
	r.Post("/v1/industries/parse", s.ParseIndustryCodes)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// --- DTOs ---

type answerRequest struct {
	Query               string `json:"query"`
	IndustryCode        string `json:"industry_code,omitempty"`
	TopK                int    `json:"top_k,omitempty"`
	ConversationHistory string `json:"conversation_history,omitempty"`
	MetaInformation     string `json:"meta_information,omitempty"`
}

type evidenceItem struct {
	ID               string  `json:"id"`
	Text             string  `json:"text"`
	Score            float64 `json:"score"`
	Source           string  `json:"source,omitempty"`
	IndustryCodes    string  `json:"industry_codes,omitempty"`
	PrimaryReference bool    `json:"primary_reference"`
}

type answerResponse struct {
	Answer          string         `json:"answer"`
	Sources         []string       `json:"sources"`
	ExpandedQueries []string       `json:"expanded_queries"`
	Evidence        []evidenceItem `json:"evidence,omitempty"`
	Link            string         `json:"link,omitempty"`
	OK              bool           `json:"ok"`
}

type industryItem struct {
	Code        string `json:"code"`
	NameGerman  string `json:"name_de"`
	NameEnglish string `json:"name_en"`
	Description string `json:"description,omitempty"`
}

type industryListResponse struct {
	Items []industryItem `json:"items"`
	Total int            `json:"total"`
}

type parseCodesRequest struct {
	Raw string `json:"raw"`
}

type parseCodesResponse struct {
	Codes []string `json:"codes"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// --- Handlers ---

// CreateAnswer handles POST /v1/answers.
func (s *Server) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "query is required")
		return
	}
	if len(req.Query) > maxQueryLength {
		writeError(w, http.StatusBadRequest, "validation_failed", "query is too long")
		return
	}
	if req.IndustryCode != "" && !industry.Valid(industry.Code(req.IndustryCode)) {
		writeError(w, http.StatusBadRequest, "validation_failed",
			"industry_code must be a valid ÖNACE section code")
		return
	}

	result := s.answers.Answer(r.Context(), answeruc.Request{
		Query:               req.Query,
		IndustryCode:        industry.Code(req.IndustryCode),
		TopK:                req.TopK,
		ConversationHistory: req.ConversationHistory,
		MetaInformation:     req.MetaInformation,
	})

	writeJSON(w, http.StatusOK, answerToResponse(result))
}

// ListIndustries handles GET /v1/industries.
func (s *Server) ListIndustries(w http.ResponseWriter, r *http.Request) {
	cats := industry.All()
	items := make([]industryItem, len(cats))
	for i, c := range cats {
		items[i] = industryToItem(c)
	}
	writeJSON(w, http.StatusOK, industryListResponse{Items: items, Total: len(items)})
}

// GetIndustry handles GET /v1/industries/{code}.
func (s *Server) GetIndustry(w http.ResponseWriter, r *http.Request) {
	code := industry.Code(chirouter.URLParam(r, "code"))
	cat, ok := industry.Lookup(code)
	if !ok {
		s.handleDomainError(w, fmt.Errorf("%w: %q", domain.ErrIndustryUnknown, code))
		return
	}
	writeJSON(w, http.StatusOK, industryToItem(cat))
}

// ParseIndustryCodes handles POST /v1/industries/parse.
func (s *Server) ParseIndustryCodes(w http.ResponseWriter, r *http.Request) {
	var req parseCodesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	codes := industry.ParseCodes(req.Raw).Sorted()
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	writeJSON(w, http.StatusOK, parseCodesResponse{Codes: out})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- Converters ---

func answerToResponse(result domain.AnswerResult) answerResponse {
	resp := answerResponse{
		Answer:          result.Text,
		Sources:         result.Sources,
		ExpandedQueries: result.ExpandedQueries,
		Link:            result.Link,
		OK:              result.OK,
	}
	if resp.Sources == nil {
		resp.Sources = []string{}
	}
	if resp.ExpandedQueries == nil {
		resp.ExpandedQueries = []string{}
	}
	if len(result.Evidence) > 0 {
		resp.Evidence = make([]evidenceItem, len(result.Evidence))
		for i, ev := range result.Evidence {
			resp.Evidence[i] = evidenceItem{
				ID:               ev.ID,
				Text:             ev.Text,
				Score:            ev.Score,
				Source:           ev.Metadata.SourceFilename,
				IndustryCodes:    ev.Metadata.IndustryCodes.String(),
				PrimaryReference: ev.Metadata.PrimaryReference,
			}
		}
	}
	return resp
}

func industryToItem(c industry.Category) industryItem {
	return industryItem{
		Code:        string(c.Code),
		NameGerman:  c.NameGerman,
		NameEnglish: c.NameEnglish,
		Description: c.Description,
	}
}

// --- Error handling ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrIndustryUnknown,
		domain.ErrSearchUnavailable,
		domain.ErrCompletionProvider,
		domain.ErrEmbeddingProvider,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
