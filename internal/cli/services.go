package cli

import (
	"fmt"
	"os"

	"finassist/config"
	"finassist/internal/adapter/chunker"
	"finassist/internal/adapter/embedding"
	"finassist/internal/adapter/extract"
	"finassist/internal/adapter/index"
	"finassist/internal/adapter/llm"
	"finassist/internal/adapter/websearch"
	"finassist/internal/port"
	"finassist/internal/usecase"
)

// newRetrievalService wires extractor, chunker, embedder and index for
// the configured data directory. The caller owns the returned index
// and must close it.
func newRetrievalService(cfg *config.Config, dir string) (*usecase.RetrievalService, *index.BoltIndex, error) {
	if err := config.EnsureDataDir(dir); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	idx, err := index.Open(config.IndexDBPath(dir))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open index: %w", err)
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		idx.Close()
		return nil, nil, err
	}

	extractor := extract.NewService()

	var fetcher port.DefaultDocumentFetcher = extract.NewReportFetcher(extractor)
	if !cfg.Retrieve.SeedDefault {
		fetcher = noFetcher{}
	}

	svc := usecase.NewRetrievalService(
		extractor,
		chunker.NewWindowChunker(cfg.Index.ChunkSize, cfg.Index.ChunkOverlap),
		embedder,
		idx,
		fetcher,
	)
	return svc, idx, nil
}

func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "mock":
		return embedding.NewMockEmbedder(cfg.Embedding.Dimension), nil
	default:
		return embedding.NewOpenAICompatibleEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.BaseURL)
	}
}

func newModel(cfg *config.Config) (port.LLM, error) {
	apiKey := os.Getenv(cfg.Model.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", cfg.Model.APIKeyEnv)
	}
	return llm.NewOpenAIClient(apiKey, cfg.Model.Model, cfg.Model.BaseURL), nil
}

// newSearcher returns nil when web search is disabled or unconfigured;
// the orchestrator treats a nil searcher as "no web context".
func newSearcher(cfg *config.Config) port.WebSearcher {
	if !cfg.Search.Enabled {
		return nil
	}
	apiKey := os.Getenv(cfg.Search.APIKeyEnv)
	if apiKey == "" {
		return nil
	}
	return websearch.NewTavilyClient(apiKey)
}

func budgetsFromConfig(cfg *config.Config) usecase.Budgets {
	b := usecase.DefaultBudgets()
	if cfg.Chat.ConciseMaxTokens > 0 {
		b.ConciseMaxTokens = cfg.Chat.ConciseMaxTokens
	}
	if cfg.Chat.DetailedMaxTokens > 0 {
		b.DetailedMaxTokens = cfg.Chat.DetailedMaxTokens
	}
	if cfg.Model.Temperature > 0 {
		b.Temperature = cfg.Model.Temperature
	}
	if cfg.Retrieve.TopK > 0 {
		b.TopK = cfg.Retrieve.TopK
	}
	if cfg.Search.MaxResults > 0 {
		b.MaxWebResults = cfg.Search.MaxResults
	}
	return b
}

func modeFromFlag(mode string) usecase.Mode {
	if mode == string(usecase.ModeConcise) {
		return usecase.ModeConcise
	}
	return usecase.ModeDetailed
}

type noFetcher struct{}

func (noFetcher) Fetch() string { return "" }
