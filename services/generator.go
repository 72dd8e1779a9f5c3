package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Generator produces text completions from prompts.
type Generator interface {
	Complete(ctx context.Context, prompt string, opts map[string]any) (string, error)
	Model() string
}

// NewGeneratorFromEnv picks the provider: RECOMMENDER_PROVIDER=openai|mock,
// defaulting to openai when an API key is present and mock otherwise.
func NewGeneratorFromEnv() (Generator, error) {
	provider := os.Getenv("RECOMMENDER_PROVIDER")
	if provider == "" {
		if os.Getenv("OPENAI_API_KEY") != "" {
			provider = "openai"
		} else {
			provider = "mock"
		}
	}
	switch provider {
	case "openai":
		model := os.Getenv("RECOMMENDER_MODEL")
		if model == "" {
			model = "gpt-4o-mini"
		}
		return NewOpenAIGenerator(model, os.Getenv("OPENAI_API_KEY"))
	case "mock":
		return NewMockGenerator(""), nil
	default:
		return nil, fmt.Errorf("unsupported recommender provider: %s", provider)
	}
}

type OpenAIGenerator struct {
	apiKey string
	model  string
	client *http.Client
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewOpenAIGenerator(model, apiKey string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	return &OpenAIGenerator{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func (g *OpenAIGenerator) Complete(ctx context.Context, prompt string, opts map[string]any) (string, error) {
	maxTokens := 500
	if val, ok := opts["max_tokens"].(int); ok && val > 0 {
		maxTokens = val
	}
	temperature := 0.4
	if val, ok := opts["temperature"].(float64); ok {
		temperature = val
	}
	system := "You are an expert fashion consultant."
	if val, ok := opts["system"].(string); ok && val != "" {
		system = val
	}

	req := openAIRequest{
		Model: g.model,
		Messages: []openAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OpenAI API error %d: %s", resp.StatusCode, string(body))
	}

	var response openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return response.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) Model() string { return g.model }

// MockGenerator returns a canned response; used in tests and as the default
// provider when no API key is configured.
type MockGenerator struct {
	Response string
}

func NewMockGenerator(response string) *MockGenerator {
	if response == "" {
		response = "[]"
	}
	return &MockGenerator{Response: response}
}

func (g *MockGenerator) Complete(ctx context.Context, prompt string, opts map[string]any) (string, error) {
	return g.Response, nil
}

func (g *MockGenerator) Model() string { return "mock" }

var (
	_ Generator = (*OpenAIGenerator)(nil)
	_ Generator = (*MockGenerator)(nil)
)
