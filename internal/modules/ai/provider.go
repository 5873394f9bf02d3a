package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"github.com/pagesage/core/internal/config"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
)

// Completer sends an ordered message list to the language-model backend and
// returns its textual response verbatim.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// ProviderCompleter implements Completer against a configured provider:
// "openai" and "anthropic" go through the SDK clients, everything else is
// treated as an OpenAI-compatible chat-completions endpoint (Ollama, LM
// Studio, OpenRouter and friends).
type ProviderCompleter struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

func NewCompleter(cfg config.AIConfig) *ProviderCompleter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ProviderCompleter{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

func (p *ProviderCompleter) Complete(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", &CompletionError{Err: errors.New("no messages")}
	}

	switch normalizeProviderType(p.cfg.Type) {
	case "openai", "anthropic":
		return p.completeSDK(ctx, messages)
	default:
		return p.completeOpenAICompatible(ctx, messages)
	}
}

func (p *ProviderCompleter) completeSDK(ctx context.Context, messages []Message) (string, error) {
	model, err := p.buildLanguageModel()
	if err != nil {
		return "", &CompletionError{Err: err}
	}

	resp, err := jetai.GenerateText(
		ctx,
		buildPromptMessages(messages),
		jetai.WithModel(model),
		jetai.WithMaxOutputTokens(p.cfg.MaxOutputTokens),
	)
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	return extractTextFromResponse(resp)
}

func (p *ProviderCompleter) buildLanguageModel() (jetapi.LanguageModel, error) {
	apiKey := strings.TrimSpace(p.cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("ai api key is empty")
	}
	modelID := strings.TrimSpace(p.cfg.Model)
	endpoint := strings.TrimSpace(p.cfg.Endpoint)

	if normalizeProviderType(p.cfg.Type) == "anthropic" {
		if modelID == "" {
			modelID = "claude-haiku-4-5-20251001"
		}
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}
		client := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client)), nil
	}

	if modelID == "" {
		modelID = "gpt-4o-mini"
	}
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}
	client := openaiclient.NewClient(opts...)
	return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client)), nil
}

func buildPromptMessages(messages []Message) []jetapi.Message {
	out := make([]jetapi.Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			out = append(out, &jetapi.SystemMessage{Content: m.Content})
			continue
		}
		out = append(out, &jetapi.UserMessage{Content: jetapi.ContentFromText(m.Content)})
	}
	return out
}

func extractTextFromResponse(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", &CompletionError{Err: errors.New("empty response from backend")}
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", &CompletionError{Err: errors.New("empty response from backend")}
	}
	return text, nil
}

func (p *ProviderCompleter) completeOpenAICompatible(ctx context.Context, messages []Message) (string, error) {
	endpoint := normalizeOpenAICompatibleEndpoint(p.cfg.Endpoint)
	model := strings.TrimSpace(p.cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}

	body, err := json.Marshal(map[string]interface{}{
		"model":       model,
		"messages":    messages,
		"max_tokens":  p.cfg.MaxOutputTokens,
		"temperature": p.cfg.Temperature,
	})
	if err != nil {
		return "", &CompletionError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if key := strings.TrimSpace(p.cfg.APIKey); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &CompletionError{Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", &CompletionError{Err: fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &CompletionError{Err: fmt.Errorf("malformed backend response: %w", err)}
	}
	if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
		return "", &CompletionError{Err: errors.New(result.Error.Message)}
	}
	if len(result.Choices) == 0 {
		return "", &CompletionError{Err: errors.New("empty response from backend")}
	}
	return result.Choices[0].Message.Content, nil
}

// normalizeOpenAIBaseURL appends /v1 when the configured endpoint omits it.
func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

// normalizeOpenAICompatibleEndpoint strips a trailing /v1 so the caller can
// always append /v1/chat/completions.
func normalizeOpenAICompatibleEndpoint(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return "http://localhost:11434"
	}
	cleaned := strings.TrimRight(base, "/")
	cleaned = strings.TrimSuffix(cleaned, "/v1")
	return strings.TrimRight(cleaned, "/")
}
