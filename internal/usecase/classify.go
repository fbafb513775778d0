package usecase

import "strings"

// financialKeywords marks a query as financial. Case-insensitive
// substring match against the whole query.
var financialKeywords = []string{
	"revenue", "income", "profit", "aws", "segment", "growth",
	"earnings", "ebitda", "cash flow", "operating", "margin",
	"investment", "shareholder", "dividend", "stock", "forecast",
	"guidance", "financial", "metrics", "quarterly", "annual",
}

// webSearchTriggers are lexical cues that a query wants fresh
// information the document index cannot have.
var webSearchTriggers = []string{
	"latest", "recent", "current", "news", "today", "2024", "2025",
	"what's happening", "breaking", "update", "trend", "stock price",
	"analyst", "rating", "target price", "q1", "q2", "q3", "q4",
}

// IsFinancialQuery reports whether the query touches financial topics.
func IsFinancialQuery(query string) bool {
	return matchesAny(query, financialKeywords)
}

// WantsWebSearch reports whether the query lexically asks for fresh or
// market data, independent of whether retrieval found anything.
func WantsWebSearch(query string) bool {
	return matchesAny(query, webSearchTriggers)
}

func matchesAny(query string, keywords []string) bool {
	q := strings.ToLower(query)
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
