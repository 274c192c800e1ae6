package formatters

import (
	"context"
	"strings"
)

// Completer sends one instruction/prompt pair to the text-generation service.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// stripFences removes Markdown code fences a model may wrap its answer in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "```") {
			continue
		}
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
