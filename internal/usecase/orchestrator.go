package usecase

import (
	"context"
	"fmt"
	"strings"

	"finassist/internal/adapter/websearch"
	"finassist/internal/domain"
	"finassist/internal/port"
)

// Mode selects between brief and exhaustive answers. It is a textual
// directive to the model plus a token budget, nothing structural.
type Mode string

const (
	ModeConcise  Mode = "Concise"
	ModeDetailed Mode = "Detailed"
)

// Options controls which context sources a turn may consult.
type Options struct {
	UseRetrieval bool
	UseWebSearch bool
	Mode         Mode
}

// Budgets are the token and sampling settings for the model call.
type Budgets struct {
	ConciseMaxTokens  int
	DetailedMaxTokens int
	Temperature       float64
	TopK              int
	MaxWebResults     int
}

// DefaultBudgets mirrors the original application settings.
func DefaultBudgets() Budgets {
	return Budgets{
		ConciseMaxTokens:  150,
		DetailedMaxTokens: 1000,
		Temperature:       0.7,
		TopK:              3,
		MaxWebResults:     3,
	}
}

// Orchestrator runs one conversational turn: decide which context
// sources to consult, merge their output into a system prompt, call
// the model, and record the exchange.
type Orchestrator struct {
	retrieval *RetrievalService
	searcher  port.WebSearcher
	model     port.LLM
	memory    *ConversationMemory
	budgets   Budgets
}

func NewOrchestrator(
	retrieval *RetrievalService,
	searcher port.WebSearcher,
	model port.LLM,
	memory *ConversationMemory,
	budgets Budgets,
) *Orchestrator {
	return &Orchestrator{
		retrieval: retrieval,
		searcher:  searcher,
		model:     model,
		memory:    memory,
		budgets:   budgets,
	}
}

// Respond answers one user query. Retrieval and web search failures
// degrade the context silently; only a model failure surfaces, and
// then nothing is recorded so the caller can retry the turn.
func (o *Orchestrator) Respond(ctx context.Context, query string, opts Options) (string, []string, error) {
	var contextText string
	var sources []string
	needsWebSearch := false

	if opts.UseRetrieval && o.retrieval != nil {
		ragContext, isFinancial := o.retrieval.Retrieve(ctx, query, o.budgets.TopK)
		if ragContext != "" {
			contextText += ragContext
			if strings.Contains(ragContext, domain.DefaultSourceName) {
				sources = append(sources, "📄 Amazon 2023 Annual Report")
			} else {
				sources = append(sources, "📄 Uploaded Documents")
			}
		}
		// A financial question the documents could not answer is worth
		// a web lookup even without a lexical trigger.
		if isFinancial && ragContext == "" {
			needsWebSearch = true
		}
	}

	if opts.UseWebSearch && o.searcher != nil && (needsWebSearch || WantsWebSearch(query)) {
		resp := o.searcher.Search(ctx, query, o.budgets.MaxWebResults)
		contextText += "\n" + websearch.FormatResults(resp)
		for i, r := range resp.Results {
			if i >= o.budgets.MaxWebResults {
				break
			}
			title := r.Title
			if title == "" {
				title = "Financial Source"
			}
			sources = append(sources, "🌐 "+title)
		}
	}

	systemPrompt := buildSystemPrompt(opts.Mode, contextText)

	messages := append(o.memory.Messages(), domain.Message{
		Role:    domain.RoleUser,
		Content: query,
	})

	maxTokens := o.budgets.DetailedMaxTokens
	if opts.Mode == ModeConcise {
		maxTokens = o.budgets.ConciseMaxTokens
	}

	answer, err := o.model.Generate(ctx, messages, systemPrompt, maxTokens, o.budgets.Temperature)
	if err != nil {
		return "", nil, err
	}

	o.memory.Append(domain.RoleUser, query, nil)
	o.memory.Append(domain.RoleAssistant, answer, sources)

	return answer, sources, nil
}

// Memory exposes the session log for the caller's transcript display.
func (o *Orchestrator) Memory() *ConversationMemory {
	return o.memory
}

func buildSystemPrompt(mode Mode, contextText string) string {
	if mode != ModeConcise {
		mode = ModeDetailed
	}
	if contextText == "" {
		contextText = "No specific context available. I'll answer based on general knowledge."
	}

	return fmt.Sprintf(`You are an AI Financial Research Assistant specializing in Amazon investor relations and financial analysis.

When answering financial questions:
1. Be precise with numbers and metrics
2. Compare year-over-year changes when relevant
3. Explain financial terms if needed
4. Highlight important trends
5. Always cite your sources

Response Mode: %s
- Concise: Focus on key numbers and brief explanations
- Detailed: Include full context, comparisons, and analysis

Available Context:
%s
`, mode, contextText)
}
