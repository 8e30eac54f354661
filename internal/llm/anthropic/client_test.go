package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"candidature-backend/internal/llm"
)

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", "", llm.Profile{}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestGenerateLetterParsesTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "key-1" {
			t.Errorf("missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		var req messagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Acme") {
			t.Errorf("prompt missing offer details")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"Madame, Monsieur, ma lettre."}]}`))
	}))
	defer srv.Close()

	c, err := NewClient("key-1", "", llm.Profile{Name: "Jean"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.baseURL = srv.URL

	letter, err := c.GenerateLetter(context.Background(), "Acme", "Dev Go", "desc", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(letter, "ma lettre") {
		t.Fatalf("unexpected letter %q", letter)
	}
}

func TestGenerateLetterAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	c, _ := NewClient("key-1", "", llm.Profile{})
	c.baseURL = srv.URL

	_, err := c.GenerateLetter(context.Background(), "Acme", "Dev", "", "")
	if err == nil || !strings.Contains(err.Error(), "rate_limit_error") {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}
