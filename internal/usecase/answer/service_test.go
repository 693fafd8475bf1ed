package answer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/domain/industry"
	"github.com/aika-cloud/answerdex/internal/domain/link"
	"github.com/aika-cloud/answerdex/internal/logger"
	"github.com/aika-cloud/answerdex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterPipelineMetrics()
	m.Run()
}

type mockExpander struct {
	expansions []string
	gotQuery   string
	gotN       int
}

func (m *mockExpander) Expand(_ context.Context, query string, n int) []string {
	m.gotQuery, m.gotN = query, n
	return m.expansions
}

type mockRetriever struct {
	evidence   []domain.Evidence
	failed     int
	gotQueries []string
	gotTopK    int
	gotCode    industry.Code
}

func (m *mockRetriever) Retrieve(
	_ context.Context, queries []string, topK int, code industry.Code,
) ([]domain.Evidence, int) {
	m.gotQueries, m.gotTopK, m.gotCode = queries, topK, code
	return m.evidence, m.failed
}

type mockClassifier struct {
	topic link.Topic
	ok    bool
}

func (m *mockClassifier) Classify(
	_ context.Context, _ string, _ []domain.Evidence, _ industry.Code,
) (link.Topic, bool) {
	return m.topic, m.ok
}

type mockCompleter struct {
	text    string
	err     error
	lastReq domain.CompletionRequest
}

func (m *mockCompleter) Complete(_ context.Context, req domain.CompletionRequest) (domain.CompletionResult, error) {
	m.lastReq = req
	if m.err != nil {
		return domain.CompletionResult{}, m.err
	}
	return domain.CompletionResult{Text: m.text}, nil
}

func testConfig() Config {
	return Config{
		Model:            "gpt-test",
		Expansions:       3,
		TopK:             4,
		SynthesisTimeout: time.Second,
	}
}

func ev(id, text, source string, score float64, primary bool) domain.Evidence {
	return domain.Evidence{
		ID:    id,
		Text:  text,
		Score: score,
		Metadata: domain.EvidenceMetadata{
			SourceFilename:   source,
			PrimaryReference: primary,
		},
	}
}

func TestAnswer_FullPipeline(t *testing.T) {
	expander := &mockExpander{expansions: []string{"alt one", "alt two"}}
	retriever := &mockRetriever{evidence: []domain.Evidence{
		ev("a", "vsme chunk", "vsme.pdf", 0.10, true),
		ev("b", "csrd chunk", "csrd.pdf", 0.20, false),
		ev("c", "vsme chunk", "vsme.pdf", 0.30, true), // duplicate text, worse score
		ev("d", "esrs chunk", "esrs.pdf", 0.25, false),
	}}
	classifier := &mockClassifier{topic: link.TopicWater, ok: true}
	completer := &mockCompleter{text: "Per VSME (VSME-EU-2025/1710) ..."}

	svc := New(expander, retriever, classifier, completer, testConfig(), zap.NewNop())
	result := svc.Answer(context.Background(), Request{Query: "reporting duties?", IndustryCode: "C"})

	if !result.OK {
		t.Fatal("pipeline should succeed")
	}
	if result.Text != completer.text {
		t.Errorf("answer text = %q", result.Text)
	}
	if got := retriever.gotQueries; len(got) != 3 || got[0] != "reporting duties?" {
		t.Errorf("retrieval queries = %v, want original first plus 2 expansions", got)
	}
	if retriever.gotCode != "C" {
		t.Errorf("industry code = %q, want C", retriever.gotCode)
	}
	if len(result.Evidence) != 3 {
		t.Fatalf("ranked evidence = %d items, want 3 (duplicate collapsed)", len(result.Evidence))
	}
	if result.Evidence[0].ID != "a" {
		t.Errorf("best primary must lead, got %q", result.Evidence[0].ID)
	}
	if len(result.ExpandedQueries) != 2 {
		t.Errorf("expanded queries = %v", result.ExpandedQueries)
	}
	wantSources := []string{"vsme.pdf", "csrd.pdf", "esrs.pdf"}
	if len(result.Sources) != len(wantSources) {
		t.Fatalf("sources = %v, want %v", result.Sources, wantSources)
	}
	for i, s := range wantSources {
		if result.Sources[i] != s {
			t.Errorf("sources[%d] = %q, want %q", i, result.Sources[i], s)
		}
	}
	if result.Link != "https://maps.wisa.bmluk.gv.at/emreg" {
		t.Errorf("link = %q", result.Link)
	}
}

func TestAnswer_SynthesisRequestShape(t *testing.T) {
	retriever := &mockRetriever{evidence: []domain.Evidence{
		ev("a", "vsme text", "vsme.pdf", 0.1, true),
		ev("b", "other text", "other.pdf", 0.2, false),
	}}
	completer := &mockCompleter{text: "answer"}
	svc := New(&mockExpander{}, retriever, &mockClassifier{}, completer, testConfig(), zap.NewNop())

	svc.Answer(context.Background(), Request{
		Query:               "what about water?",
		MetaInformation:     "company operates in Austria",
		ConversationHistory: "User: hi\nAssistant: hello",
	})

	req := completer.lastReq
	if req.Model != "gpt-test" {
		t.Errorf("model = %q", req.Model)
	}
	if req.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", req.Temperature)
	}
	if req.UserPrompt != "what about water?" {
		t.Errorf("user prompt = %q", req.UserPrompt)
	}
	for _, want := range []string{
		"[Chunk 1 - Source: vsme.pdf]",
		"[Chunk 2 - Source: other.pdf]",
		"company operates in Austria",
		"Previous conversation:",
		"VSME (EU 2025/1710)",
	} {
		if !strings.Contains(req.SystemPrompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestAnswer_SynthesisFailureYieldsApology(t *testing.T) {
	retriever := &mockRetriever{evidence: []domain.Evidence{ev("a", "t", "s.pdf", 0.1, true)}}
	completer := &mockCompleter{err: errors.New("upstream 502")}
	svc := New(&mockExpander{}, retriever, &mockClassifier{topic: link.TopicWater, ok: true}, completer, testConfig(), zap.NewNop())

	result := svc.Answer(context.Background(), Request{Query: "q"})

	if result.OK {
		t.Fatal("synthesis failure must fail the run")
	}
	if result.Text != apologyText {
		t.Errorf("text = %q, want fixed apology", result.Text)
	}
	if result.Evidence != nil || result.Sources != nil || result.ExpandedQueries != nil || result.Link != "" {
		t.Errorf("failed result must carry no evidence, sources, expansions or link: %+v", result)
	}
}

func TestAnswer_DegradedCollaboratorsStillAnswer(t *testing.T) {
	// Expansion returns nothing, retrieval reports partial failure, the
	// classifier finds no topic. The answer must still come back OK.
	retriever := &mockRetriever{
		evidence: []domain.Evidence{ev("a", "t", "s.pdf", 0.1, true)},
		failed:   2,
	}
	completer := &mockCompleter{text: "best effort answer"}
	svc := New(&mockExpander{}, retriever, &mockClassifier{}, completer, testConfig(), zap.NewNop())

	result := svc.Answer(context.Background(), Request{Query: "q"})

	if !result.OK || result.Text != "best effort answer" {
		t.Fatalf("degraded run should still answer, got %+v", result)
	}
	if result.Link != "" {
		t.Errorf("no topic means no link, got %q", result.Link)
	}
	if len(retriever.gotQueries) != 1 {
		t.Errorf("only the original query should be retrieved, got %v", retriever.gotQueries)
	}
}

func TestAnswer_NoEvidenceStillSynthesizes(t *testing.T) {
	completer := &mockCompleter{text: "I don't have specific information about that in my documents"}
	svc := New(&mockExpander{}, &mockRetriever{}, &mockClassifier{}, completer, testConfig(), zap.NewNop())

	result := svc.Answer(context.Background(), Request{Query: "q"})

	if !result.OK {
		t.Fatal("empty evidence is not a failure")
	}
	if len(result.Evidence) != 0 || len(result.Sources) != 0 {
		t.Errorf("no evidence expected, got %+v", result)
	}
}

func TestAnswer_RequestDefaults(t *testing.T) {
	retriever := &mockRetriever{}
	expander := &mockExpander{}
	svc := New(expander, retriever, &mockClassifier{}, &mockCompleter{text: "a"}, testConfig(), zap.NewNop())

	svc.Answer(context.Background(), Request{Query: "q", IndustryCode: "ZZ", TopK: -1})

	if retriever.gotTopK != 4 {
		t.Errorf("topK = %d, want configured default 4", retriever.gotTopK)
	}
	if retriever.gotCode != industry.General {
		t.Errorf("invalid industry code must fall back to %q, got %q", industry.General, retriever.gotCode)
	}
	if expander.gotN != 3 {
		t.Errorf("expansion count = %d, want configured 3", expander.gotN)
	}
}

func TestAnswer_PrefersRequestScopedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := logger.ContextWithLogger(context.Background(), zap.New(core))

	retriever := &mockRetriever{evidence: []domain.Evidence{
		ev("a", "vsme chunk", "vsme.pdf", 0.10, true),
	}}
	svc := New(&mockExpander{}, retriever, &mockClassifier{}, &mockCompleter{text: "fine"}, testConfig(), zap.NewNop())

	svc.Answer(ctx, Request{Query: "q", IndustryCode: "C"})

	if logs.FilterMessage("evidence assembled").Len() != 1 {
		t.Errorf("pipeline logs should flow through the context logger, got %d entries", logs.Len())
	}
}
