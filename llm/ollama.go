package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OllamaDefaultBaseURL is the address of a locally hosted Ollama server.
const OllamaDefaultBaseURL = "http://localhost:11434"

// OllamaDefaultTimeout bounds a chat round trip when no timeout is
// configured. Local models can be slow to first token on cold start.
const OllamaDefaultTimeout = 120 * time.Second

// OllamaClient implements the Client interface against the Ollama chat
// API. It performs exactly one HTTP round trip per call: no retry, no
// streaming, and any transport error is returned to the caller as-is.
type OllamaClient struct {
	baseURL string
	client  *http.Client
}

// NewOllamaClient creates a client for the given base URL and per-call
// timeout. An empty URL selects the local default; a non-positive
// timeout selects OllamaDefaultTimeout.
func NewOllamaClient(baseURL string, timeout time.Duration) *OllamaClient {
	if baseURL == "" {
		baseURL = OllamaDefaultBaseURL
	}
	if timeout <= 0 {
		timeout = OllamaDefaultTimeout
	}
	return &OllamaClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ollama API request/response structures
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []Message       `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  DecodingOptions `json:"options"`
}

type ollamaErrorResponse struct {
	Error string `json:"error"`
}

// Chat sends the exchange to POST /api/chat and returns the assistant
// reply.
func (c *OllamaClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(ollamaChatRequest{
		Model:    req.Model,
		Messages: req.Messages,
		Stream:   false,
		Options:  req.Options,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr ollamaErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err != nil || apiErr.Error == "" {
			return nil, fmt.Errorf("ollama API error %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("ollama API error %d: %s", resp.StatusCode, apiErr.Error)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &chatResp, nil
}
