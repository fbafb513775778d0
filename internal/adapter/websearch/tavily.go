package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"finassist/internal/domain"
)

const tavilyAPIURL = "https://api.tavily.com/search"

// FinancialSites is the fixed allow-list the search is restricted to.
// It is a caller-side filter, not a provider guarantee.
var FinancialSites = []string{
	"investor.amazon.com",
	"sec.gov",
	"finance.yahoo.com",
	"bloomberg.com",
	"reuters.com",
	"marketwatch.com",
	"wsj.com",
	"ft.com",
	"investopedia.com",
}

// TavilyClient issues domain-filtered web searches against the Tavily
// API. Any transport failure yields an empty response so the caller
// can proceed without web context.
type TavilyClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type tavilyRequest struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	IncludeAnswer  bool     `json:"include_answer"`
}

func NewTavilyClient(apiKey string) *TavilyClient {
	return &TavilyClient{
		apiKey:  apiKey,
		baseURL: tavilyAPIURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewTavilyClientURL overrides the endpoint, for tests.
func NewTavilyClientURL(apiKey, baseURL string) *TavilyClient {
	c := NewTavilyClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Search queries Tavily with the finance allow-list. maxResults <= 0
// falls back to 3.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) domain.SearchResponse {
	if maxResults <= 0 {
		maxResults = 3
	}

	reqBody := tavilyRequest{
		Query:          query,
		SearchDepth:    "advanced",
		MaxResults:     maxResults,
		IncludeDomains: FinancialSites,
		IncludeAnswer:  true,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		log.Printf("web search: marshal failed: %v", err)
		return domain.SearchResponse{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		log.Printf("web search: request failed: %v", err)
		return domain.SearchResponse{}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("web search: %v", err)
		return domain.SearchResponse{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("web search: status %d", resp.StatusCode)
		return domain.SearchResponse{}
	}

	var result domain.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("web search: decode failed: %v", err)
		return domain.SearchResponse{}
	}

	return result
}

// maxContentChars bounds how much of each result body goes into the
// prompt context.
const maxContentChars = 500

// FormatResults renders a labeled context block per result plus the
// provider's quick answer when present.
func FormatResults(resp domain.SearchResponse) string {
	if len(resp.Results) == 0 {
		return "No relevant financial information found."
	}

	var sb strings.Builder
	sb.WriteString("Financial web search results:\n\n")
	for i, r := range resp.Results {
		content := r.Content
		if len(content) > maxContentChars {
			content = content[:maxContentChars] + "..."
		}
		fmt.Fprintf(&sb, "Source %d:\n", i+1)
		fmt.Fprintf(&sb, "Title: %s\n", orNA(r.Title))
		fmt.Fprintf(&sb, "URL: %s\n", orNA(r.URL))
		fmt.Fprintf(&sb, "Content: %s\n\n", orNA(content))
	}

	if resp.Answer != "" {
		fmt.Fprintf(&sb, "Quick Answer: %s\n", resp.Answer)
	}

	return sb.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
