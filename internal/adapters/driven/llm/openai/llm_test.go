package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)
	return svc
}

func writeData(w http.ResponseWriter, data string) {
	fmt.Fprintf(w, "data: %s\n\n", data)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func delta(text string) string {
	return fmt.Sprintf(`{"choices":[{"index":0,"delta":{"content":%q},"finish_reason":null}]}`, text)
}

func drain(seq func(func(string, error) bool)) ([]string, error) {
	var out []string
	for text, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, text)
	}
	return out, nil
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.Error(t, err)

	svc, err := NewLLMService(LLMConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
}

func TestStreamChat(t *testing.T) {
	var got chatCompletionRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeData(w, `{"choices":[{"index":0,"delta":{"role":"assistant"},"finish_reason":null}]}`)
		writeData(w, delta("Hello"))
		writeData(w, delta(" world"))
		writeData(w, `{"choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`)
		writeData(w, "[DONE]")
	})

	fragments, err := drain(svc.StreamChat(context.Background(), driven.ChatRequest{
		System: "be brief",
		Messages: []driven.ChatMessage{
			{Role: "user", Content: "q1"},
			{Role: "assistant", Content: "a1"},
			{Role: "user", Content: "q2"},
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", " world"}, fragments)

	assert.True(t, got.Stream)
	assert.Equal(t, 2000, got.MaxTokens)
	assert.Equal(t, []chatCompletionMsg{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "q1"},
		{Role: "assistant", Content: "a1"},
		{Role: "user", Content: "q2"},
	}, got.Messages)
}

func TestStreamChat_MissingDone(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, delta("a"))
		writeData(w, delta("b"))
	})

	fragments, err := drain(svc.StreamChat(context.Background(), driven.ChatRequest{}))
	assert.Equal(t, []string{"a", "b"}, fragments)
	assert.ErrorContains(t, err, "stream ended before [DONE]")
}

func TestStreamChat_ErrorChunk(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, delta("a"))
		writeData(w, `{"error":{"message":"server overloaded","type":"server_error"}}`)
	})

	fragments, err := drain(svc.StreamChat(context.Background(), driven.ChatRequest{}))
	assert.Equal(t, []string{"a"}, fragments)
	assert.EqualError(t, err, "openai error: server overloaded")
}

func TestStreamChat_HTTPError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	})

	_, err := drain(svc.StreamChat(context.Background(), driven.ChatRequest{}))
	assert.EqualError(t, err, "openai error (status 429): Rate limit reached")
}

func TestStreamChat_CancelledContext(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		writeData(w, "[DONE]")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := drain(svc.StreamChat(ctx, driven.ChatRequest{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPing(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	})

	assert.ErrorContains(t, svc.Ping(context.Background()), "status 401")
}
