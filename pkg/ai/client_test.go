package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"resume-chatbot/internal/model"

	"github.com/pkg/errors"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Options{})
	if c.Provider != ProviderAIService {
		t.Errorf("Expected provider '%s', got '%s'", ProviderAIService, c.Provider)
	}
	if c.BaseURL != "http://ai-service:8000" {
		t.Errorf("Unexpected base URL '%s'", c.BaseURL)
	}
	if c.MaxAttempts != 1 {
		t.Errorf("Expected 1 attempt by default, got %d", c.MaxAttempts)
	}
	if c.HTTP == nil || c.HTTP.Timeout != 60*time.Second {
		t.Error("Expected HTTP client with 60s timeout")
	}
}

func TestSuggestAIService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Agent string `json:"agent"`
			Input string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
			return
		}
		if req.Agent != "auto" {
			t.Errorf("Expected agent 'auto', got '%s'", req.Agent)
		}
		if !strings.Contains(req.Input, "Python") {
			t.Errorf("Expected skill in input, got '%s'", req.Input)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"agent": "writer", "output": "Django, Flask, Pandas"})
	}))
	defer server.Close()

	c := NewClient(Options{BaseURL: server.URL + "/"})
	got, err := c.Suggest(context.Background(), "Python")
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Django", "Flask", "Pandas"}) {
		t.Errorf("Unexpected suggestions %v", got)
	}
}

func TestSuggestOpenAI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("Missing or incorrect Authorization header")
		}
		var req struct {
			Model    string        `json:"model"`
			Messages []chatMessage `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
			return
		}
		if req.Model != "llama-3.1-8b-instant" {
			t.Errorf("Unexpected model '%s'", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("Unexpected messages %+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"SELECT, Joins, Indexes"}}]}`))
	}))
	defer server.Close()

	c := NewClient(Options{
		Provider: ProviderOpenAI,
		BaseURL:  server.URL,
		APIKey:   "test-key",
		Model:    "llama-3.1-8b-instant",
	})
	got, err := c.Suggest(context.Background(), "SQL")
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(got) != 3 || got[0] != "SELECT" {
		t.Errorf("Unexpected suggestions %v", got)
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "non-200", status: http.StatusBadRequest, body: `{"detail":"bad"}`},
		{name: "empty output", status: http.StatusOK, body: `{"agent":"auto","output":"  "}`, wantErr: ErrEmptyOutput},
		{name: "not json", status: http.StatusOK, body: `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(Options{BaseURL: server.URL}).Complete(context.Background(), "", "hi")
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCompleteUnknownProvider(t *testing.T) {
	c := NewClient(Options{Provider: "carrier-pigeon"})
	if _, err := c.Complete(context.Background(), "", "hi"); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"agent": "auto", "output": "ok"})
	}))
	defer server.Close()

	c := NewClient(Options{BaseURL: server.URL, MaxAttempts: 2})
	out, err := c.Complete(context.Background(), "", "hi")
	if err != nil {
		t.Fatalf("Expected success on retry, got %v", err)
	}
	if out != "ok" || atomic.LoadInt32(&calls) != 2 {
		t.Errorf("Expected 2 calls and output 'ok', got %d calls and '%s'", atomic.LoadInt32(&calls), out)
	}
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(Options{BaseURL: server.URL, MaxAttempts: 3})
	if _, err := c.Complete(context.Background(), "", "hi"); err == nil {
		t.Fatal("Expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("Expected a single call, got %d", n)
	}
}

func TestSummarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"agent": "auto", "output": "Backend engineer focused on Go services."})
	}))
	defer server.Close()

	rec := model.NewRecord()
	rec.Name = "Alice"
	got, err := NewClient(Options{BaseURL: server.URL}).Summarize(context.Background(), rec)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got != "Backend engineer focused on Go services." {
		t.Errorf("Unexpected summary '%s'", got)
	}
}
