package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chathttp "github.com/kariua-parish/parish-site/internal/chat/http"
	"github.com/kariua-parish/parish-site/internal/chat/service"
	"github.com/kariua-parish/parish-site/internal/common/constants"
	"github.com/kariua-parish/parish-site/internal/common/logger"
	"github.com/kariua-parish/parish-site/internal/common/validation"
)

type generatorFunc func(ctx context.Context, systemPrompt, message string) (string, error)

func (f generatorFunc) Generate(ctx context.Context, systemPrompt, message string) (string, error) {
	return f(ctx, systemPrompt, message)
}

func newHandler(t *testing.T, gen service.Generator) http.Handler {
	t.Helper()
	log, _ := logger.New("", "test", "error")
	return chathttp.NewHandler(service.NewChatService(gen, validation.New(), log), time.Second, log)
}

func postChat(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))
	return rec
}

func TestChat_Success(t *testing.T) {
	h := newHandler(t, generatorFunc(func(context.Context, string, string) (string, error) {
		return "The Rosary has twenty mysteries.", nil
	}))

	rec := postChat(h, `{"message":"How many mysteries?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["response"] != "The Rosary has twenty mysteries." {
		t.Errorf("unexpected response %q", body["response"])
	}
}

func TestChat_UpstreamFailure(t *testing.T) {
	h := newHandler(t, generatorFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("upstream unavailable")
	}))

	rec := postChat(h, `{"message":"hello"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "failed to process chat message" {
		t.Errorf("unexpected error %v", body["error"])
	}
	if strings.Contains(rec.Body.String(), "upstream unavailable") {
		t.Error("upstream error text must not leak to the client")
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	h := newHandler(t, generatorFunc(func(context.Context, string, string) (string, error) {
		t.Error("generator must not be called")
		return "", nil
	}))

	for _, body := range []string{`{"message":""}`, `{}`, `not json`, `{"message":"hi"} trailing`} {
		if rec := postChat(h, body); rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestChat_MethodNotAllowed(t *testing.T) {
	h := newHandler(t, generatorFunc(func(context.Context, string, string) (string, error) { return "", nil }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	req = req.WithContext(context.WithValue(req.Context(), constants.TraceIDKey, "trace-chat"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `"trace_id":"trace-chat"`) {
		t.Errorf("expected trace id in 405 body, got %s", rec.Body.String())
	}
}
