package engine

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

const (
	defaultAPIURL         = "https://api.openai.com/v1/chat/completions"
	defaultAPIModel       = "gpt-4o-mini"
	defaultAPITimeout     = 60 * time.Second
	defaultAPIMaxTokens   = 2000
	defaultAPITemperature = 0.2
)

// APIEngine implements LLMEngine for an OpenAI-compatible chat API.
type APIEngine struct {
	apiKey      string
	apiURL      string
	model       string
	httpClient  *http.Client
	maxTokens   int
	temperature float64
	verbose     bool
}

// APIEngineOption is a functional option for APIEngine.
type APIEngineOption func(*APIEngine)

// WithAPIModel sets the model.
func WithAPIModel(model string) APIEngineOption {
	return func(e *APIEngine) { e.model = model }
}

// WithAPIURL sets a non-default endpoint (compatible providers, proxies).
func WithAPIURL(url string) APIEngineOption {
	return func(e *APIEngine) { e.apiURL = url }
}

// WithAPITimeout sets the HTTP client timeout.
func WithAPITimeout(timeout time.Duration) APIEngineOption {
	return func(e *APIEngine) { e.httpClient.Timeout = timeout }
}

// WithAPIVerbose enables verbose logging.
func WithAPIVerbose(verbose bool) APIEngineOption {
	return func(e *APIEngine) { e.verbose = verbose }
}

// NewAPIEngine creates a new OpenAI-compatible API engine.
func NewAPIEngine(apiKey string, opts ...APIEngineOption) *APIEngine {
	e := &APIEngine{
		apiKey:      apiKey,
		apiURL:      defaultAPIURL,
		model:       defaultAPIModel,
		httpClient:  &http.Client{Timeout: defaultAPITimeout},
		maxTokens:   defaultAPIMaxTokens,
		temperature: defaultAPITemperature,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Name returns the engine identifier.
func (e *APIEngine) Name() string {
	return "openai-api"
}

// IsAvailable checks if the engine can be used.
func (e *APIEngine) IsAvailable() bool {
	return e.apiKey != ""
}

// Execute sends the request via the chat completions API.
func (e *APIEngine) Execute(ctx context.Context, req *Request) (string, error) {
	if e.apiKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = e.maxTokens
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = e.temperature
	}

	messages := make([]apiMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, apiMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, apiMessage{Role: "user", Content: req.UserPrompt})

	apiReq := apiRequest{
		Model:       e.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(apiReq)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)

	if e.verbose {
		fmt.Fprintf(os.Stderr, "LLM API request:\n  Model: %s\n  Prompt length: %d chars\n",
			e.model, len(req.UserPrompt))
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s (type: %s)", apiResp.Error.Message, apiResp.Error.Type)
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return apiResp.Choices[0].Message.Content, nil
}

// apiRequest represents the chat completions request structure.
type apiRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	MaxTokens   int          `json:"max_completion_tokens,omitempty"`
	Temperature float64      `json:"temperature,omitempty"`
}

// apiMessage represents a message in the request.
type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiResponse represents the chat completions response structure.
type apiResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}
