package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mcparena/arena-go/domain/agent"
)

// HTTPProvider talks to an OpenAI-compatible chat completions endpoint.
type HTTPProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// HTTPConfig configures the HTTP provider.
type HTTPConfig struct {
	APIKey  string // Bearer token, optional for local endpoints
	BaseURL string // Required: endpoint base, e.g. http://localhost:11434/v1
	Model   string // Model name forwarded to the endpoint
	Timeout int    // Timeout in seconds (default: 120)
}

// NewHTTPProvider creates a provider for an OpenAI-compatible endpoint.
func NewHTTPProvider(config HTTPConfig) *HTTPProvider {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 120
	}
	return &HTTPProvider{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		model:   config.Model,
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// Name returns the provider name.
func (p *HTTPProvider) Name() string {
	return "http"
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// wireRole maps domain roles onto the chat API role set.
func wireRole(r agent.Role) string {
	switch r {
	case agent.RoleAgent:
		return "assistant"
	case agent.RoleTool:
		return "user" // observations are re-presented as user context
	default:
		return "user"
	}
}

// Generate implements the Provider interface.
func (p *HTTPProvider) Generate(ctx context.Context, req Request) (Response, error) {
	messages := make([]chatMessage, 0, len(req.Context)+1)
	for _, m := range req.Context {
		messages = append(messages, chatMessage{Role: wireRole(m.Role), Content: m.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return Response{}, fmt.Errorf("%w: marshal request: %w", ErrGeneration, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("%w: build request: %w", ErrGeneration, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: read response: %w", ErrGeneration, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Response{}, fmt.Errorf("%w: decode response: %w", ErrGeneration, err)
	}
	if parsed.Error != nil {
		return Response{}, fmt.Errorf("%w: %s: %s", ErrGeneration, parsed.Error.Type, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("%w: status %d", ErrGeneration, resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return Response{}, fmt.Errorf("%w: response has no choices", ErrGeneration)
	}

	return Response{Text: parsed.Choices[0].Message.Content}, nil
}
