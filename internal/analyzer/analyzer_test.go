package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/mindvault/internal/config"
	"github.com/user/mindvault/internal/vault"
)

// chatStub emulates an OpenAI-compatible chat-completion endpoint that
// always answers with the given message content.
func chatStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"id":     "test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			Provider: "openai",
			Model:    "test-model",
			BaseURL:  baseURL + "/v1",
			APIKey:   "test-key",
		},
	}
}

func TestAnalyzeWithoutCredential(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	cfg := &config.Config{LLM: config.LLMConfig{Provider: "deepseek", Model: "deepseek-chat", BaseURL: srv.URL}}
	res := New(cfg, nil).Analyze(context.Background(), "My Title", "body", vault.TypeVideo)

	assert.False(t, called, "no network call may be attempted without a credential")
	assert.True(t, res.Degraded)
	assert.Contains(t, res.Summary, "My Title")
	assert.Contains(t, res.Summary, string(vault.TypeVideo))
	assert.Contains(t, res.Tags, "no-ai")
	assert.Contains(t, res.Tags, "My Title")
}

func TestAnalyzeNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	res := New(testConfig(srv.URL), nil).Analyze(context.Background(), "T", "c", vault.TypeArticle)

	assert.True(t, res.Degraded)
	assert.NotEmpty(t, res.Reason)
	assert.Contains(t, res.Summary, "summarization failed")
	assert.Contains(t, res.Tags, "ai-error")
}

func TestAnalyzeStrictJSONResponse(t *testing.T) {
	srv := chatStub(t, `{"summary":"A crisp summary.","tags":["go","testing"]}`)

	res := New(testConfig(srv.URL), nil).Analyze(context.Background(), "T", "c", vault.TypeArticle)

	require.False(t, res.Degraded)
	assert.Equal(t, "A crisp summary.", res.Summary)
	assert.Equal(t, []string{"go", "testing"}, res.Tags)
}

func TestAnalyzeStripsCodeFences(t *testing.T) {
	srv := chatStub(t, "```json\n{\"summary\":\"Fenced.\",\"tags\":[\"a\"]}\n```")

	res := New(testConfig(srv.URL), nil).Analyze(context.Background(), "T", "c", vault.TypeArticle)

	require.False(t, res.Degraded)
	assert.Equal(t, "Fenced.", res.Summary)
	assert.Equal(t, []string{"a"}, res.Tags)
}

func TestAnalyzeNonJSONResponseBecomesSummary(t *testing.T) {
	srv := chatStub(t, "The model ignored the format and just wrote prose.")

	res := New(testConfig(srv.URL), nil).Analyze(context.Background(), "T", "c", vault.TypeArticle)

	require.False(t, res.Degraded)
	assert.Equal(t, "The model ignored the format and just wrote prose.", res.Summary)
	assert.Empty(t, res.Tags)
}

func TestAnalyzeNonArrayTagsTreatedAsEmpty(t *testing.T) {
	srv := chatStub(t, `{"summary":"S","tags":"not-a-list"}`)

	res := New(testConfig(srv.URL), nil).Analyze(context.Background(), "T", "c", vault.TypeArticle)

	require.False(t, res.Degraded)
	assert.Equal(t, "S", res.Summary)
	assert.Empty(t, res.Tags)
}

func TestAnalyzeEmptyMessageFallsBack(t *testing.T) {
	srv := chatStub(t, "")

	res := New(testConfig(srv.URL), nil).Analyze(context.Background(), "T", "c", vault.TypeTweet)

	assert.True(t, res.Degraded)
	assert.Contains(t, res.Summary, "summarization failed")
}

func TestAnalyzeUnsupportedProviderFallsBack(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "gemini", APIKey: "k"}}

	res := New(cfg, nil).Analyze(context.Background(), "T", "c", vault.TypeArticle)

	assert.True(t, res.Degraded)
	assert.Contains(t, res.Reason, "unsupported LLM provider")
}
