package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kariua-parish/parish-site/internal/common/config"
	"github.com/kariua-parish/parish-site/internal/common/resilience"
	"github.com/kariua-parish/parish-site/internal/observability/metrics"
)

// FallbackReply is returned when the model answers with empty content.
const FallbackReply = "I apologize, but I couldn't generate a response. Please try again."

const maxResponseBytes = 1 << 20

var ErrAPIKeyMissing = errors.New("openai: api key not configured")

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model               string    `json:"model"`
	Messages            []message `json:"messages"`
	MaxCompletionTokens int       `json:"max_completion_tokens"`
}

// Client calls the chat completions endpoint of an OpenAI compatible API.
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	maxTokens  int
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg config.OpenAIConfig, httpClient *http.Client, breaker *resilience.CircuitBreaker) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
		httpClient: httpClient,
		breaker:    breaker,
	}
}

func (c *Client) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if c.apiKey == "" {
		metrics.ChatCompletionsTotal.WithLabelValues("unconfigured").Inc()
		return "", ErrAPIKeyMissing
	}

	payload, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		MaxCompletionTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai: encode request: %w", err)
	}

	var reply string
	call := func(ctx context.Context) error {
		var err error
		reply, err = c.complete(ctx, payload)
		return err
	}

	start := time.Now()
	if c.breaker != nil {
		err = c.breaker.Call(ctx, call)
	} else {
		err = call(ctx)
	}
	metrics.ChatCompletionDurationSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ChatCompletionsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	if reply == "" {
		metrics.ChatCompletionsTotal.WithLabelValues("empty").Inc()
		return FallbackReply, nil
	}
	metrics.ChatCompletionsTotal.WithLabelValues("success").Inc()
	return reply, nil
}

func (c *Client) complete(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg := gjson.GetBytes(body, "error.message").String(); msg != "" {
			return "", fmt.Errorf("openai: %s: %s", resp.Status, msg)
		}
		return "", fmt.Errorf("openai: %s", resp.Status)
	}

	if !gjson.ValidBytes(body) {
		return "", errors.New("openai: decode response: invalid json")
	}
	choices := gjson.GetBytes(body, "choices")
	if !choices.IsArray() || len(choices.Array()) == 0 {
		return "", errors.New("openai: decode response: no choices")
	}
	return choices.Get("0.message.content").String(), nil
}
