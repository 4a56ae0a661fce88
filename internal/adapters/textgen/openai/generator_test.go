package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnema/sparky/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, status int, content string, captured *capturedRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeneratorGenerate(t *testing.T) {
	t.Parallel()

	var captured capturedRequest
	srv := newChatServer(t, http.StatusOK, "Wow! 猫 (māo) means cat!", &captured)

	generator, err := NewGenerator(Options{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	reply, err := generator.Generate(context.Background(), domain.Prompt{
		System:      "You are Sparky.",
		Instruction: "Share 猫.",
		Excerpt:     []domain.Exchange{{Learner: "hi", Tutor: "Hello!"}},
		Learner:     "I like cats",
	})
	require.NoError(t, err)
	assert.Equal(t, "Wow! 猫 (māo) means cat!", reply)

	assert.Equal(t, DefaultModel, captured.Model)
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "assistant", captured.Messages[2].Role)
	assert.Equal(t, "I like cats", captured.Messages[3].Content)
}

func TestGeneratorSurfacesAPIError(t *testing.T) {
	t.Parallel()

	srv := newChatServer(t, http.StatusServiceUnavailable, "", nil)
	generator, err := NewGenerator(Options{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = generator.Generate(context.Background(), domain.Prompt{Learner: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai chat completion")
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(Options{})
	require.Error(t, err)
}
