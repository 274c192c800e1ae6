package formatters

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"resume-chatbot/internal/model"

	"github.com/pkg/errors"
)

type stubCompleter struct {
	out    string
	err    error
	system string
	prompt string
}

func (s *stubCompleter) Complete(_ context.Context, system, prompt string) (string, error) {
	s.system, s.prompt = system, prompt
	return s.out, s.err
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "comma and space",
			raw:  "Django, Flask, FastAPI, Pandas",
			want: []string{"Django", "Flask", "FastAPI", "Pandas"},
		},
		{
			name: "numbered lines",
			raw:  "1. Django\n2) Flask\n- Pandas\n* NumPy",
			want: []string{"Django", "Flask", "Pandas", "NumPy"},
		},
		{
			name: "code fence and quotes",
			raw:  "```\n\"Django\",'Flask',\n```",
			want: []string{"Django", "Flask"},
		},
		{
			name: "malformed separators",
			raw:  "Django,,Flask ;  ,Celery.",
			want: []string{"Django", "Flask", "Celery"},
		},
		{
			name: "duplicates dropped",
			raw:  "Go, go, Goroutines",
			want: []string{"Go", "Goroutines"},
		},
		{
			name: "nothing usable",
			raw:  " , ,\n",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSuggestions(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSubSkillsFormatter(t *testing.T) {
	stub := &stubCompleter{out: "Django, Flask"}
	got, err := NewSubSkillsFormatter(stub).Format(context.Background(), "Python")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Django", "Flask"}) {
		t.Errorf("Unexpected suggestions %v", got)
	}
	if !strings.Contains(stub.prompt, "'Python'") || !strings.Contains(stub.prompt, "10") {
		t.Errorf("Prompt should name the skill and the count: %q", stub.prompt)
	}
}

func TestSubSkillsFormatterErrors(t *testing.T) {
	_, err := NewSubSkillsFormatter(&stubCompleter{err: errors.New("boom")}).Format(context.Background(), "Go")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Expected upstream error to propagate, got %v", err)
	}

	_, err = NewSubSkillsFormatter(&stubCompleter{out: ",,,"}).Format(context.Background(), "Go")
	if !errors.Is(err, ErrNoSuggestions) {
		t.Errorf("Expected ErrNoSuggestions, got %v", err)
	}
}

func TestSummaryFormatter(t *testing.T) {
	rec := model.NewRecord()
	rec.Name = "Alice"
	rec.Email = "alice@x.com"
	rec.ProfessionalSummary = "old"

	stub := &stubCompleter{out: "```\n\"Engineer who ships   reliable tools.\"\n```"}
	got, err := NewSummaryFormatter(stub).Format(context.Background(), rec)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "Engineer who ships reliable tools." {
		t.Errorf("Unexpected summary %q", got)
	}
	if strings.Contains(stub.prompt, "alice@x.com") || strings.Contains(stub.prompt, `"old"`) {
		t.Error("Prompt must not carry contact details or the previous summary")
	}
	if rec.Email != "alice@x.com" || rec.ProfessionalSummary != "old" {
		t.Error("Format must not modify the record")
	}
}

func TestSummaryFormatterEmpty(t *testing.T) {
	if _, err := NewSummaryFormatter(&stubCompleter{out: "```\n```"}).Format(context.Background(), model.NewRecord()); err == nil {
		t.Error("Expected error for empty summary")
	}
	if _, err := NewSummaryFormatter(&stubCompleter{}).Format(context.Background(), nil); err == nil {
		t.Error("Expected error for nil record")
	}
}
