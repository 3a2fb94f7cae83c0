// Package llm provides a thin client for an OpenAI-compatible text-generation
// endpoint. The contract is a single prompt in, a plain-text completion out.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/eastworld-ai/eastworld/internal/config"
)

// GeneratorInterface is the text-generation contract used by the perception builder.
type GeneratorInterface interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client calls a chat-completions endpoint with a single user message.
type Client struct {
	cfg    *config.LLMEnvConfig
	client *resty.Client
}

// NewClient constructs a text-generation client from the environment configuration.
func NewClient(cfg *config.LLMEnvConfig) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("llm env configuration cannot be nil")
	}

	client := resty.New().
		SetBaseURL(cfg.LLMAPIUrl).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetTimeout(cfg.LLMTimeout)

	if cfg.LLMAPIKey != "" {
		client.SetAuthToken(cfg.LLMAPIKey)
	}

	return &Client{
		cfg:    cfg,
		client: client,
	}, nil
}

// Complete sends the prompt and returns the trimmed completion text. An empty
// prompt short-circuits to an empty completion.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", nil
	}

	body := ChatCompletionRequest{
		Model:    c.cfg.LLMModel,
		Messages: []ChatMessage{{Role: "user", Content: prompt}},
	}
	// Reasoning models burn their token budget on thinking unless told otherwise.
	if strings.HasPrefix(c.cfg.LLMModel, "gpt-5") || strings.HasPrefix(c.cfg.LLMModel, "gemini-2.5") {
		body.ReasoningEffort = "low"
	}

	var out ChatCompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		log.Error().Err(err).Msg("chat completion request failed")
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("body", resp.String()).Msg("chat completion non-2xx")
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	log.Trace().Msgf("LLM completion: \n%s", content)
	return content, nil
}
