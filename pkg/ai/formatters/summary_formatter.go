package formatters

import (
	"context"
	"encoding/json"
	"strings"

	"resume-chatbot/internal/model"

	"github.com/pkg/errors"
)

const summaryInstructions = "You write résumé summaries. Reply with ONLY one paragraph of two or three sentences, " +
	"in the first person implied (no 'I'), under 330 characters. No headings, no Markdown, no quotes."

const maxSummaryLen = 600

type SummaryFormatter struct {
	completer Completer
}

func NewSummaryFormatter(c Completer) *SummaryFormatter {
	return &SummaryFormatter{completer: c}
}

// Format drafts a professional summary from the collected record.
func (f *SummaryFormatter) Format(ctx context.Context, rec *model.Record) (string, error) {
	if rec == nil {
		return "", errors.New("summary: nil record")
	}
	in := rec.Clone()
	in.ProfessionalSummary = ""
	in.Email, in.Phone = "", ""

	payload, err := json.Marshal(in)
	if err != nil {
		return "", errors.Wrap(err, "encode record")
	}

	out, err := f.completer.Complete(ctx, summaryInstructions, "Write a professional summary for this candidate:\n"+string(payload))
	if err != nil {
		return "", errors.Wrap(err, "draft summary")
	}
	summary := cleanSummary(out)
	if summary == "" {
		return "", errors.New("ai response contained no summary text")
	}
	return summary, nil
}

func cleanSummary(s string) string {
	s = stripFences(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.Trim(s, `"`)
	if r := []rune(s); len(r) > maxSummaryLen {
		s = strings.TrimSpace(string(r[:maxSummaryLen]))
	}
	return s
}
