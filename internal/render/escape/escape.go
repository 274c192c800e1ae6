// Package escape makes user text safe for each output format.
package escape

import (
	"html"
	"strings"
	"unicode"
)

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\^{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
)

// HTML escapes entities and turns line breaks into <br/>.
func HTML(s string) string {
	return strings.ReplaceAll(html.EscapeString(Plain(s)), "\n", "<br/>")
}

// LaTeX escapes the characters TeX treats as markup. Replacement is done in
// one pass so inserted commands are never escaped again.
func LaTeX(s string) string {
	return latexReplacer.Replace(Plain(s))
}

// Plain normalises line endings to \n and drops other control characters.
func Plain(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
