package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClientChat(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model": "mistral:instruct",
			"message": map[string]string{
				"role":    "assistant",
				"content": "Candidate.objects.all()",
			},
			"done": true,
		})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, 0)
	resp, err := client.Chat(context.Background(), ChatRequest{
		Model: "mistral:instruct",
		Messages: []Message{
			{Role: RoleSystem, Content: "you translate queries"},
			{Role: RoleUser, Content: "all candidates"},
		},
		Options: DecodingOptions{Temperature: 0.2, NumPredict: 500},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/chat", gotPath)
	assert.Equal(t, "mistral:instruct", gotBody["model"])
	assert.Equal(t, false, gotBody["stream"])

	msgs, ok := gotBody["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]interface{})
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "you translate queries", first["content"])

	opts, ok := gotBody["options"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 0.2, opts["temperature"])
	assert.Equal(t, float64(500), opts["num_predict"])

	assert.Equal(t, RoleAssistant, resp.Message.Role)
	assert.Equal(t, "Candidate.objects.all()", resp.Message.Content)
	assert.True(t, resp.Done)
}

func TestOllamaClientChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "model 'missing:latest' not found"})
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, 0)
	_, err := client.Chat(context.Background(), ChatRequest{Model: "missing:latest"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "model 'missing:latest' not found")
}

func TestOllamaClientChatNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client := NewOllamaClient(srv.URL, 0)
	_, err := client.Chat(context.Background(), ChatRequest{Model: "mistral:instruct"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestOllamaClientContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewOllamaClient(srv.URL, 0)
	_, err := client.Chat(ctx, ChatRequest{Model: "mistral:instruct"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewOllamaClientDefaults(t *testing.T) {
	client := NewOllamaClient("", 0)
	assert.Equal(t, OllamaDefaultBaseURL, client.baseURL)
	assert.Equal(t, OllamaDefaultTimeout, client.client.Timeout)
}

func TestNewOllamaClientConfiguredTimeout(t *testing.T) {
	client := NewOllamaClient("", 5*time.Minute)
	assert.Equal(t, 5*time.Minute, client.client.Timeout)
}

func TestOllamaClientTimeoutCutsOffSlowServer(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := NewOllamaClient(srv.URL, 50*time.Millisecond)
	_, err := client.Chat(context.Background(), ChatRequest{Model: "mistral:instruct"})
	require.Error(t, err)
}
