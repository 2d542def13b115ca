// Package llm contains the chat-endpoint client used for query synthesis.
package llm

import (
	"context"
)

// Message roles for a chat exchange.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged message in a chat exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DecodingOptions are the tunable decoding parameters for a chat call.
type DecodingOptions struct {
	// Temperature controls determinism; lower is more deterministic.
	Temperature float64 `json:"temperature"`

	// NumPredict caps the number of generated output tokens.
	NumPredict int `json:"num_predict"`
}

// ChatRequest is a single request/response chat exchange.
type ChatRequest struct {
	Model    string
	Messages []Message
	Options  DecodingOptions
}

// ChatResponse carries the assistant's reply. The reply text lives at the
// fixed Message.Content path.
type ChatResponse struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

// Client is the interface to a language-model chat endpoint.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
