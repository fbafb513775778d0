package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"finassist/internal/domain"
)

type stubLLM struct {
	reply string
	err   error

	gotSystem    string
	gotMessages  []domain.Message
	gotMaxTokens int
}

func (s *stubLLM) Generate(_ context.Context, messages []domain.Message, systemPrompt string, maxTokens int, _ float64) (string, error) {
	s.gotSystem = systemPrompt
	s.gotMessages = messages
	s.gotMaxTokens = maxTokens
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubLLM) ModelName() string { return "stub" }

type stubSearcher struct {
	calls int
	resp  domain.SearchResponse
}

func (s *stubSearcher) Search(_ context.Context, _ string, _ int) domain.SearchResponse {
	s.calls++
	return s.resp
}

func newTestOrchestrator(t *testing.T, fetcherText string, model *stubLLM, searcher *stubSearcher) *Orchestrator {
	t.Helper()
	retrieval := newTestService(t, fetcherText)
	return NewOrchestrator(retrieval, searcher, model, NewConversationMemory(20), DefaultBudgets())
}

func TestRespondCitesDefaultDocument(t *testing.T) {
	report := strings.Repeat("In 2023 Amazon net income was $30.4 billion. ", 10)
	model := &stubLLM{reply: "Net income was $30.4B."}
	o := newTestOrchestrator(t, report, model, &stubSearcher{})

	answer, sources, err := o.Respond(context.Background(), "What was Amazon's 2023 net income?", Options{
		UseRetrieval: true,
		Mode:         ModeDetailed,
	})
	if err != nil {
		t.Fatal(err)
	}
	if answer == "" {
		t.Fatal("expected an answer")
	}

	found := false
	for _, s := range sources {
		if strings.Contains(s, "Amazon 2023 Annual Report") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected the default report citation, got %v", sources)
	}
	if !strings.Contains(model.gotSystem, "Relevant information from documents") {
		t.Error("retrieved context missing from the system prompt")
	}
}

func TestRespondTriggersWebSearchLexically(t *testing.T) {
	// Retrieval finds context and needsWebSearch stays false, yet the
	// lexical trigger alone must fire the search.
	report := strings.Repeat("The stock did things. ", 20)
	model := &stubLLM{reply: "ok"}
	searcher := &stubSearcher{resp: domain.SearchResponse{
		Results: []domain.WebResult{{Title: "AMZN hits high", URL: "https://reuters.com/a", Content: "..."}},
	}}
	o := newTestOrchestrator(t, report, model, searcher)

	_, sources, err := o.Respond(context.Background(), "latest stock price", Options{
		UseRetrieval: true,
		UseWebSearch: true,
		Mode:         ModeConcise,
	})
	if err != nil {
		t.Fatal(err)
	}

	if searcher.calls != 1 {
		t.Fatalf("expected 1 web search call, got %d", searcher.calls)
	}
	hasWeb := false
	for _, s := range sources {
		if strings.HasPrefix(s, "🌐 ") {
			hasWeb = true
		}
	}
	if !hasWeb {
		t.Errorf("expected a web attribution, got %v", sources)
	}
}

func TestRespondSkipsWebSearchWithoutTrigger(t *testing.T) {
	report := strings.Repeat("The document discusses many things. ", 20)
	model := &stubLLM{reply: "ok"}
	searcher := &stubSearcher{}
	o := newTestOrchestrator(t, report, model, searcher)

	_, _, err := o.Respond(context.Background(), "Summarize the document", Options{
		UseRetrieval: true,
		UseWebSearch: true,
		Mode:         ModeDetailed,
	})
	if err != nil {
		t.Fatal(err)
	}
	if searcher.calls != 0 {
		t.Errorf("web search should not run when retrieval succeeded and no trigger matched, got %d calls", searcher.calls)
	}
}

func TestRespondFallsBackToWebForFinancialMiss(t *testing.T) {
	// Empty fetcher text: retrieval yields nothing, the query is
	// financial, so the web fallback fires without a lexical trigger.
	model := &stubLLM{reply: "ok"}
	searcher := &stubSearcher{}
	o := newTestOrchestrator(t, "", model, searcher)

	_, _, err := o.Respond(context.Background(), "How did operating margin evolve?", Options{
		UseRetrieval: true,
		UseWebSearch: true,
		Mode:         ModeDetailed,
	})
	if err != nil {
		t.Fatal(err)
	}
	if searcher.calls != 1 {
		t.Errorf("expected web fallback for an unanswered financial query, got %d calls", searcher.calls)
	}
}

func TestRespondModeSelectsTokenBudget(t *testing.T) {
	model := &stubLLM{reply: "ok"}
	o := newTestOrchestrator(t, "", model, &stubSearcher{})

	if _, _, err := o.Respond(context.Background(), "hello", Options{Mode: ModeConcise}); err != nil {
		t.Fatal(err)
	}
	if model.gotMaxTokens != DefaultBudgets().ConciseMaxTokens {
		t.Errorf("concise budget not applied, got %d", model.gotMaxTokens)
	}

	if _, _, err := o.Respond(context.Background(), "hello", Options{Mode: ModeDetailed}); err != nil {
		t.Fatal(err)
	}
	if model.gotMaxTokens != DefaultBudgets().DetailedMaxTokens {
		t.Errorf("detailed budget not applied, got %d", model.gotMaxTokens)
	}
}

func TestRespondNoContextNotice(t *testing.T) {
	model := &stubLLM{reply: "ok"}
	o := newTestOrchestrator(t, "", model, &stubSearcher{})

	if _, _, err := o.Respond(context.Background(), "hello there", Options{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(model.gotSystem, "No specific context available") {
		t.Error("expected the explicit no-context notice in the system prompt")
	}
}

func TestRespondModelErrorPropagatesAndRecordsNothing(t *testing.T) {
	modelErr := &domain.ModelError{Status: 429, Err: errors.New("quota exceeded")}
	model := &stubLLM{err: modelErr}
	o := newTestOrchestrator(t, "", model, &stubSearcher{})

	_, _, err := o.Respond(context.Background(), "hello", Options{})
	var got *domain.ModelError
	if !errors.As(err, &got) {
		t.Fatalf("expected ModelError, got %v", err)
	}
	if o.Memory().Len() != 0 {
		t.Errorf("no turns must be recorded on a failed turn, got %d", o.Memory().Len())
	}
}

func TestRespondRecordsBothTurns(t *testing.T) {
	model := &stubLLM{reply: "the answer"}
	o := newTestOrchestrator(t, "", model, &stubSearcher{})

	if _, _, err := o.Respond(context.Background(), "a question", Options{}); err != nil {
		t.Fatal(err)
	}

	turns := o.Memory().Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 recorded turns, got %d", len(turns))
	}
	if turns[0].Role != domain.RoleUser || turns[1].Role != domain.RoleAssistant {
		t.Errorf("unexpected roles: %s, %s", turns[0].Role, turns[1].Role)
	}

	// History flows into the next model call, content only.
	if _, _, err := o.Respond(context.Background(), "a follow-up", Options{}); err != nil {
		t.Fatal(err)
	}
	if len(model.gotMessages) != 3 {
		t.Errorf("expected prior turns plus the new query, got %d messages", len(model.gotMessages))
	}
}
