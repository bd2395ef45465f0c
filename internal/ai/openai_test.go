package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequestBody struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, choices []map[string]any, got *chatRequestBody) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"model":   defaultOpenAIModel,
			"choices": choices,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClient_Generate(t *testing.T) {
	var body chatRequestBody
	srv := newChatServer(t, []map[string]any{{
		"index":         0,
		"finish_reason": "stop",
		"message":       map[string]any{"role": "assistant", "content": "Water often stands for emotion."},
	}}, &body)

	client := NewOpenAIClient("test-key", "", srv.URL+"/v1")
	got, err := client.Generate(context.Background(), Request{
		System:      dreamPersona,
		Prompt:      "Dream content: the sea",
		MaxTokens:   500,
		Temperature: 0.7,
	})

	require.NoError(t, err)
	assert.Equal(t, "Water often stands for emotion.", got)
	assert.Equal(t, defaultOpenAIModel, body.Model)
	assert.Equal(t, 500, body.MaxTokens)
	assert.InDelta(t, 0.7, body.Temperature, 1e-6)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, dreamPersona, body.Messages[0].Content)
	assert.Equal(t, "user", body.Messages[1].Role)
	assert.Equal(t, "Dream content: the sea", body.Messages[1].Content)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	srv := newChatServer(t, []map[string]any{}, nil)
	client := NewOpenAIClient("test-key", "", srv.URL+"/v1")

	_, err := client.Generate(context.Background(), Request{System: "s", Prompt: "p", MaxTokens: 10, Temperature: 0.5})
	assert.Error(t, err)

	got := newAssistant(client).InterpretDream(context.Background(), "the sea", 3, []string{"water"})
	assert.Equal(t, FallbackInterpretation([]string{"water"}), got)
}
