// Package analyzer asks a chat-completion model for a summary and tag
// suggestions for a saved resource. It never fails hard: every error path
// degrades to a usable fallback result so saving content is never blocked by
// the AI side.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/user/mindvault/internal/config"
	"github.com/user/mindvault/internal/logger"
	"github.com/user/mindvault/internal/vault"
)

const deepseekBaseURL = "https://api.deepseek.com"

// requestTimeout bounds a single completion call so a hung connection can't
// suspend the caller indefinitely.
const requestTimeout = 30 * time.Second

// Result is the outcome of one Analyze call. Degraded marks a fallback
// produced without (or despite) the remote model; Reason says why.
type Result struct {
	Summary  string
	Tags     []string
	Degraded bool
	Reason   string
}

// Analyzer generates summaries and tag suggestions using the configured LLM.
type Analyzer struct {
	cfg *config.Config
	log logger.Logger
}

func New(cfg *config.Config, log logger.Logger) *Analyzer {
	if log == nil {
		log = logger.Nop()
	}
	return &Analyzer{cfg: cfg, log: log}
}

const promptTemplate = `You are an assistant that organizes a personal knowledge base.
Read the content below and produce:
1) a concise 2-4 sentence summary;
2) 3-6 search-friendly tags (no explanations).

Return strictly the following JSON and nothing else:
{
  "summary": "the summary...",
  "tags": ["tag1", "tag2", "tag3"]
}

Title: %s
Type: %s
Content: %s`

// Analyze returns a (summary, tags) pair for the given resource fields. It
// always returns a usable Result; when no credential is configured it
// produces a deterministic local placeholder without touching the network.
func (a *Analyzer) Analyze(ctx context.Context, title, content string, typ vault.Type) Result {
	apiKey := a.apiKey()
	if apiKey == "" {
		return Result{
			Summary: fmt.Sprintf("(local summary) %q, type %s. Configure an API key to enable %s summaries.",
				title, typ, a.serviceName()),
			Tags:     []string{"no-ai", "local-summary", titleOr(title)},
			Degraded: true,
			Reason:   "no API credential configured",
		}
	}

	prompt := fmt.Sprintf(promptTemplate,
		valueOr(title, "no title"),
		typ,
		valueOr(content, "(no body provided, only a title and short description)"),
	)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	raw, err := a.complete(ctx, apiKey, prompt)
	if err != nil {
		a.log.Warn("summarization request failed", logger.String("provider", a.cfg.LLM.Provider), logger.Error(err))
		return a.fallback(title, err)
	}
	if strings.TrimSpace(raw) == "" {
		a.log.Warn("summarization returned empty message", logger.String("provider", a.cfg.LLM.Provider))
		return a.fallback(title, fmt.Errorf("empty response from %s", a.serviceName()))
	}

	summary, tags := a.parse(raw)
	if summary == "" && len(tags) == 0 {
		tags = []string{a.serviceName(), string(typ), titleOr(title)}
	}
	return Result{Summary: summary, Tags: tags}
}

// fallback is the terminal path for any failed call: an error-flavored
// summary plus marker tags, never an error.
func (a *Analyzer) fallback(title string, err error) Result {
	return Result{
		Summary:  fmt.Sprintf("(summarization failed) could not generate a summary for %q, try again later.", title),
		Tags:     []string{"ai-error", a.serviceName(), titleOr(title)},
		Degraded: true,
		Reason:   err.Error(),
	}
}

func (a *Analyzer) complete(ctx context.Context, apiKey, prompt string) (string, error) {
	switch a.cfg.LLM.Provider {
	case "anthropic":
		return a.completeWithAnthropic(ctx, apiKey, prompt)
	case "deepseek", "openai":
		return a.completeWithOpenAI(ctx, apiKey, prompt)
	default:
		return "", fmt.Errorf("unsupported LLM provider: %s", a.cfg.LLM.Provider)
	}
}

func (a *Analyzer) completeWithOpenAI(ctx context.Context, apiKey, prompt string) (string, error) {
	clientCfg := openai.DefaultConfig(apiKey)
	baseURL := a.cfg.LLM.BaseURL
	if baseURL == "" && a.cfg.LLM.Provider == "deepseek" {
		baseURL = deepseekBaseURL
	}
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}

	client := openai.NewClientWithConfig(clientCfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:  a.cfg.LLM.Model,
		Stream: false,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful assistant."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", a.serviceName())
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *Analyzer) completeWithAnthropic(ctx context.Context, apiKey, prompt string) (string, error) {
	client := anthropic.NewClient(apiKey)

	resp, err := client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.cfg.LLM.Model),
		MaxTokens: 500,
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{{Type: "text", Text: &prompt}},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic")
	}
	return resp.Content[0].GetText(), nil
}

var fenceRe = regexp.MustCompile("(?i)```json|```")

// parse extracts (summary, tags) from the model's message. The model is
// asked for strict JSON but doesn't always comply: code fences are stripped
// and, when the JSON still doesn't parse, the raw text becomes the summary.
func (a *Analyzer) parse(raw string) (string, []string) {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))

	var parsed struct {
		Summary string `json:"summary"`
		Tags    any    `json:"tags"`
	}
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		a.log.Debug("model response was not valid JSON, using raw text as summary", logger.Error(err))
		return strings.TrimSpace(raw), nil
	}

	summary := parsed.Summary
	if summary == "" {
		summary = cleaned
	}

	var tags []string
	if arr, ok := parsed.Tags.([]any); ok {
		for _, v := range arr {
			if s, ok := v.(string); ok {
				tags = append(tags, s)
			}
		}
	}
	return summary, tags
}

func (a *Analyzer) apiKey() string {
	if a.cfg.LLM.APIKey != "" {
		return a.cfg.LLM.APIKey
	}
	switch a.cfg.LLM.Provider {
	case "deepseek":
		return os.Getenv("DEEPSEEK_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return ""
}

func (a *Analyzer) serviceName() string {
	switch a.cfg.LLM.Provider {
	case "openai":
		return "OpenAI"
	case "anthropic":
		return "Anthropic"
	default:
		return "DeepSeek"
	}
}

func titleOr(title string) string {
	if title == "" {
		return "untagged"
	}
	return title
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
