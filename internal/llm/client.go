package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers. Temperature is supplied per
// call (0.0-1.0 inclusive; 0.0 recommended for deterministic output).
type Client interface {
	// Complete generates a free-text completion for the prompt.
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
	// CompleteJSON generates a completion with JSON output requested from the
	// provider where supported. The result may still be malformed; callers
	// run it through the recovery chain.
	CompleteJSON(ctx context.Context, prompt string, temperature float32) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a new LLM client based on configuration.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "API key is required"}
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if config.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(config.Endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete generates a free-text completion for the prompt.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	model, err := c.model(temperature)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// CompleteJSON generates a completion with application/json output requested.
func (c *GeminiClient) CompleteJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	model, err := c.model(temperature)
	if err != nil {
		return "", err
	}
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) model(temperature float32) (*genai.GenerativeModel, error) {
	if c.config.Model == "" {
		return nil, &ConfigurationError{Message: "no model configured"}
	}
	if temperature < 0 || temperature > 1 {
		return nil, fmt.Errorf("temperature %v out of range [0, 1]", temperature)
	}

	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(temperature)
	return model, nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
