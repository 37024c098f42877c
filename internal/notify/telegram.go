package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/kariua-parish/parish-site/internal/common/config"
	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/common/resilience"
)

const maxTelegramResponseBytes = 64 << 10

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// TelegramRelay posts messages through the Telegram Bot API sendMessage
// method.
type TelegramRelay struct {
	botToken   string
	chatID     string
	apiURL     string
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
}

func NewTelegramRelay(cfg config.TelegramConfig, httpClient *http.Client, breaker *resilience.CircuitBreaker) *TelegramRelay {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &TelegramRelay{
		botToken:   cfg.BotToken,
		chatID:     cfg.ChatID,
		apiURL:     cfg.APIURL,
		httpClient: httpClient,
		breaker:    breaker,
	}
}

func (r *TelegramRelay) Configured() bool {
	return r.botToken != "" && r.chatID != ""
}

func (r *TelegramRelay) Notify(ctx context.Context, text string) error {
	if !r.Configured() {
		return commonerrors.ErrConfigurationMissing
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: r.chatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return deliveryFailed(0, "failed to encode message", err)
	}

	send := func(ctx context.Context) error { return r.send(ctx, payload) }
	if r.breaker == nil {
		return send(ctx)
	}

	err = r.breaker.Call(ctx, send)
	if errors.Is(err, commonerrors.ErrCircuitOpen) {
		return deliveryFailed(0, "circuit open", err)
	}
	return err
}

func (r *TelegramRelay) send(ctx context.Context, payload []byte) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", r.apiURL, r.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return deliveryFailed(0, "failed to build request", redact(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return deliveryFailed(0, "transport error", redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTelegramResponseBytes))
	if err != nil {
		return deliveryFailed(resp.StatusCode, "failed to read response", err)
	}

	description := gjson.GetBytes(body, "description").String()
	if description == "" {
		description = resp.Status
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return deliveryFailed(resp.StatusCode, description, fmt.Errorf("telegram api: %s", resp.Status))
	}
	if ok := gjson.GetBytes(body, "ok"); ok.Exists() && !ok.Bool() {
		return deliveryFailed(resp.StatusCode, description, errors.New("telegram api: ok=false"))
	}
	return nil
}

func deliveryFailed(status int, description string, cause error) error {
	return commonerrors.ErrDeliveryFailed.
		WithDetails(map[string]any{"status": status, "description": description}).
		WithCause(cause)
}

// redact drops the request URL from transport errors; it embeds the bot token.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
