package port

import (
	"context"

	"finassist/internal/domain"
)

// LLM represents a language model for conversational generation.
type LLM interface {
	// Generate completes the conversation under the given system
	// prompt. A failed call is reported as *domain.ModelError.
	Generate(ctx context.Context, messages []domain.Message, systemPrompt string, maxTokens int, temperature float64) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
