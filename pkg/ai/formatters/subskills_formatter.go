package formatters

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const subSkillsInstructions = "You suggest résumé skills. Reply with ONLY a comma-separated list on one line. " +
	"No numbering, no explanations, no Markdown."

// SuggestionCount is how many related skills are requested.
const SuggestionCount = 10

// ErrNoSuggestions is returned when a reply contains no usable items.
var ErrNoSuggestions = errors.New("no suggestions in ai response")

var listMarker = regexp.MustCompile(`^(?:[-*•]+|\d+[.)])\s*`)

type SubSkillsFormatter struct {
	completer Completer
}

func NewSubSkillsFormatter(c Completer) *SubSkillsFormatter {
	return &SubSkillsFormatter{completer: c}
}

// Format asks for skills related to skill and parses the reply.
func (f *SubSkillsFormatter) Format(ctx context.Context, skill string) ([]string, error) {
	prompt := fmt.Sprintf("Give me %d sub-skills or related technologies for '%s' (comma-separated).", SuggestionCount, skill)
	out, err := f.completer.Complete(ctx, subSkillsInstructions, prompt)
	if err != nil {
		return nil, errors.Wrapf(err, "suggest sub-skills for %q", skill)
	}
	items := ParseSuggestions(out)
	if len(items) == 0 {
		return nil, ErrNoSuggestions
	}
	return items, nil
}

// ParseSuggestions splits a free-text reply into items. Commas and newlines
// both separate items; list markers and surrounding quotes are dropped, as
// are duplicates. The number of items is not enforced.
func ParseSuggestions(raw string) []string {
	raw = stripFences(raw)
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		f = listMarker.ReplaceAllString(f, "")
		f = strings.Trim(f, `"'`+"`")
		f = strings.TrimSpace(strings.TrimSuffix(f, "."))
		if f == "" {
			continue
		}
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
