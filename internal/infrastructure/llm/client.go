package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/config"
)

const systemPrompt = "You are a precise assistant that only answers with a single valid JSON object. " +
	"Never add explanations, markdown or code fences."

// Client calls an OpenAI-compatible /chat/completions endpoint and returns the "items" array of the answer.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

func NewClient(cfg config.LLMConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       strings.TrimSpace(cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// GenerateItems sends prompt as the user message. No retries.
//
// Errors are one of *ConfigurationError, *UpstreamError or *ResponseParseError.
func (c *Client) GenerateItems(ctx context.Context, prompt string) ([]json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, &ConfigurationError{Message: "OPENAI_API_KEY is not set"}
	}
	if c.model == "" {
		return nil, &ConfigurationError{Message: "LLM_MODEL is not set"}
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, &ConfigurationError{Message: fmt.Sprintf("invalid LLM_BASE_URL: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{StatusCode: 0, Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: "read response body: " + err.Error(), Err: err}
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Str("model", c.model).
		Msg("[LLM] chat completion finished")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Detail: upstreamDetail(resp.Status, raw)}
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, &ResponseParseError{Reason: "invalid completion envelope", Content: truncate(string(raw))}
	}
	if len(chat.Choices) == 0 || strings.TrimSpace(chat.Choices[0].Message.Content) == "" {
		return nil, &ResponseParseError{Reason: "no message content"}
	}

	return ParseItems(chat.Choices[0].Message.Content)
}

// upstreamDetail prefers the provider's error.message over the bare status line.
func upstreamDetail(status string, body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return status
}

// IsUnavailable reports whether err came out of this package.
func IsUnavailable(err error) bool {
	var cfgErr *ConfigurationError
	var upErr *UpstreamError
	var parseErr *ResponseParseError
	return errors.As(err, &cfgErr) || errors.As(err, &upErr) || errors.As(err, &parseErr)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
