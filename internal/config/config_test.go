package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AI_MAX_ATTEMPTS", "")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %s", cfg.Port)
	}
	if cfg.AI.MaxAttempts != 1 {
		t.Errorf("Expected one AI attempt by default, got %d", cfg.AI.MaxAttempts)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("Expected 24h session TTL, got %v", cfg.SessionTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("AI_MAX_ATTEMPTS", "3")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("Expected port 8081, got %s", cfg.Port)
	}
	if cfg.AI.Provider != "openai" {
		t.Errorf("Expected provider openai, got %s", cfg.AI.Provider)
	}
	if cfg.AI.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", cfg.AI.Timeout)
	}
	if cfg.AI.MaxAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", cfg.AI.MaxAttempts)
	}
	if !cfg.CookieSecure {
		t.Error("Expected secure cookies")
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("Expected invalid duration to fall back to default, got %v", cfg.SessionTTL)
	}
}

func TestDefaultPromptsCoverEveryStep(t *testing.T) {
	p := DefaultPrompts()
	if len(p.Questions) != QuestionCount {
		t.Fatalf("Expected %d questions, got %d", QuestionCount, len(p.Questions))
	}
	for i, q := range p.Questions {
		if q == "" {
			t.Errorf("Question %d is empty", i)
		}
	}
}

func TestLoadPromptsMissingFile(t *testing.T) {
	p, err := LoadPrompts(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected missing file to fall back to defaults, got %v", err)
	}
	if p.Questions[0] != DefaultPrompts().Questions[0] {
		t.Errorf("Expected default first question, got %q", p.Questions[0])
	}
}

func TestLoadPromptsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "invalid_input: \"Say something!\"\nmissing_project: \"Name the project first.\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write prompts file: %v", err)
	}

	p, err := LoadPrompts(path)
	if err != nil {
		t.Fatalf("Failed to load prompts: %v", err)
	}
	if p.InvalidInput != "Say something!" {
		t.Errorf("Expected override, got %q", p.InvalidInput)
	}
	if p.MissingProject != "Name the project first." {
		t.Errorf("Expected override, got %q", p.MissingProject)
	}
	if p.MissingCert != DefaultPrompts().MissingCert {
		t.Errorf("Expected untouched default, got %q", p.MissingCert)
	}
}

func TestLoadPromptsWrongQuestionCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := "questions:\n  - \"only one\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write prompts file: %v", err)
	}

	if _, err := LoadPrompts(path); err == nil {
		t.Error("Expected error for short questions list, got nil")
	}
}

func TestLoadPromptsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("questions: [unterminated"), 0600); err != nil {
		t.Fatalf("Failed to write prompts file: %v", err)
	}

	if _, err := LoadPrompts(path); err == nil {
		t.Error("Expected parse error, got nil")
	}
}
