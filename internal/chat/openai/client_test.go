package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kariua-parish/parish-site/internal/chat/openai"
	"github.com/kariua-parish/parish-site/internal/common/config"
	"github.com/kariua-parish/parish-site/internal/common/resilience"
)

func openAIConfig(apiURL string) config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:    "sk-test",
		APIURL:    apiURL,
		Model:     "gpt-5",
		MaxTokens: 500,
		Timeout:   time.Second,
	}
}

func TestClient_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("unexpected authorization %q", auth)
		}

		var req struct {
			Model               string `json:"model"`
			MaxCompletionTokens int    `json:"max_completion_tokens"`
			Messages            []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
			return
		}
		if req.Model != "gpt-5" || req.MaxCompletionTokens != 500 {
			t.Errorf("unexpected model/limit %s/%d", req.Model, req.MaxCompletionTokens)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected messages %+v", req.Messages)
		}
		if req.Messages[1].Content != "hello" {
			t.Errorf("unexpected user message %q", req.Messages[1].Content)
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Peace be with you."}}]}`))
	}))
	defer server.Close()

	client := openai.NewClient(openAIConfig(server.URL), server.Client(), nil)
	reply, err := client.Generate(context.Background(), "system", "hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply != "Peace be with you." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestClient_Generate_EmptyContentFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":null}}]}`))
	}))
	defer server.Close()

	client := openai.NewClient(openAIConfig(server.URL), server.Client(), nil)
	reply, err := client.Generate(context.Background(), "system", "hello")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply != openai.FallbackReply {
		t.Errorf("expected fallback reply, got %q", reply)
	}
}

func TestClient_Generate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	}))
	defer server.Close()

	client := openai.NewClient(openAIConfig(server.URL), server.Client(), nil)
	_, err := client.Generate(context.Background(), "system", "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Rate limit reached") {
		t.Errorf("expected upstream message in error, got %v", err)
	}
}

func TestClient_Generate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := openai.NewClient(openAIConfig(server.URL), server.Client(), nil)
	if _, err := client.Generate(context.Background(), "system", "hello"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestClient_Generate_MissingKeyMakesNoCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	cfg := openAIConfig(server.URL)
	cfg.APIKey = ""
	client := openai.NewClient(cfg, server.Client(), nil)

	_, err := client.Generate(context.Background(), "system", "hello")
	if err != openai.ErrAPIKeyMissing {
		t.Errorf("expected ErrAPIKeyMissing, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no upstream call, got %d", calls.Load())
	}
}

func TestClient_Generate_OpenCircuit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{Threshold: 2, ResetAfter: time.Minute})
	client := openai.NewClient(openAIConfig(server.URL), server.Client(), breaker)

	for i := 0; i < 4; i++ {
		if _, err := client.Generate(context.Background(), "system", "hello"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 upstream calls before the circuit opened, got %d", calls.Load())
	}
}
