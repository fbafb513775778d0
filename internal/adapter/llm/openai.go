package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"finassist/internal/domain"
)

// OpenAIClient calls an OpenAI-compatible chat completions endpoint.
// Azure OpenAI deployments expose the same protocol.
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []domain.Message `json:"messages"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature float64          `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewOpenAIClient(apiKey, model, baseURL string) *OpenAIClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Generate completes the conversation. The system prompt is prepended
// as a system message; failures come back as *domain.ModelError, the
// one error the orchestrator does not absorb.
func (c *OpenAIClient) Generate(ctx context.Context, messages []domain.Message, systemPrompt string, maxTokens int, temperature float64) (string, error) {
	full := make([]domain.Message, 0, len(messages)+1)
	if systemPrompt != "" {
		full = append(full, domain.Message{Role: domain.RoleSystem, Content: systemPrompt})
	}
	full = append(full, messages...)

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    full,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &domain.ModelError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &domain.ModelError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &domain.ModelError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.ModelError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return "", &domain.ModelError{Status: resp.StatusCode, Err: fmt.Errorf("%s", preview)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &domain.ModelError{Err: fmt.Errorf("parse response: %w", err)}
	}
	if chatResp.Error != nil {
		return "", &domain.ModelError{Err: fmt.Errorf("API error: %s", chatResp.Error.Message)}
	}
	if len(chatResp.Choices) == 0 {
		return "", &domain.ModelError{Err: fmt.Errorf("no choices in response")}
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ModelName returns the name of the model.
func (c *OpenAIClient) ModelName() string {
	return c.model
}
