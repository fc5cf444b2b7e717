package generate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/intima/internal/generate"
)

type stubGenerator struct {
	calls int
	text  string
}

func (s *stubGenerator) Generate(context.Context, generate.Prompt) (string, error) {
	s.calls++
	return s.text, nil
}

func TestLimiter_PerAccountBurst(t *testing.T) {
	stub := &stubGenerator{text: "hello"}
	lim := generate.NewLimiter(stub, 0.0001, 2)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	for range 2 {
		text, err := lim.Generate(ctx, a, generate.Prompt{User: "x"})
		require.NoError(t, err)
		assert.Equal(t, "hello", text)
	}

	_, err := lim.Generate(ctx, a, generate.Prompt{User: "x"})
	assert.ErrorIs(t, err, generate.ErrRateLimited)

	_, err = lim.Generate(ctx, b, generate.Prompt{User: "x"})
	assert.NoError(t, err)
	assert.Equal(t, 3, stub.calls)
}

func TestDisabled(t *testing.T) {
	_, err := generate.Disabled{}.Generate(context.Background(), generate.Prompt{})
	assert.ErrorIs(t, err, generate.ErrNotConfigured)
}

func newOpenAIServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		assert.Len(t, req.Messages, 2)

		resp := openai.ChatCompletionResponse{}
		if content != "" {
			resp.Choices = []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
				FinishReason: openai.FinishReasonStop,
			}}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAI_Generate(t *testing.T) {
	srv := newOpenAIServer(t, "  What made you smile today?  ")
	defer srv.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"

	text, err := generate.NewOpenAIWithConfig(cfg, "gpt-test").Generate(context.Background(), generate.Prompt{User: "icebreaker"})
	require.NoError(t, err)
	assert.Equal(t, "What made you smile today?", text)
}

func TestOpenAI_EmptyChoices(t *testing.T) {
	srv := newOpenAIServer(t, "")
	defer srv.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"

	_, err := generate.NewOpenAIWithConfig(cfg, "gpt-test").Generate(context.Background(), generate.Prompt{User: "x"})
	assert.ErrorIs(t, err, generate.ErrEmptyResponse)
}
