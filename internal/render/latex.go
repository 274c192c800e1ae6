package render

import (
	"bytes"
	"strings"
	"text/template"

	"resume-chatbot/internal/model"
	"resume-chatbot/internal/render/escape"

	"github.com/pkg/errors"
)

// The LaTeX template uses << >> delimiters so TeX braces read naturally.
var latexTemplate = template.Must(
	template.New("tex").
		Delims("<<", ">>").
		Funcs(templateFuncs).
		Funcs(template.FuncMap{
			"tex":   escape.LaTeX,
			"upper": strings.ToUpper,
			"url":   texURL,
			"texjoin": func(items []string) string {
				out := make([]string, len(items))
				for i, s := range items {
					out[i] = escape.LaTeX(s)
				}
				return strings.Join(out, ", ")
			},
		}).
		ParseFS(templateFS, "templates/*.tex.tmpl"),
)

// texURL escapes the characters hyperref cannot take raw inside \href.
func texURL(u string) string {
	return strings.NewReplacer(`\`, "", `%`, `\%`, `#`, `\#`, `{`, "", `}`, "").Replace(escape.Plain(u))
}

type latexRenderer struct{}

func (latexRenderer) Name() string        { return "latex" }
func (latexRenderer) ContentType() string { return "application/x-tex; charset=utf-8" }
func (latexRenderer) Extension() string   { return "tex" }

func (latexRenderer) Render(rec *model.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := latexTemplate.ExecuteTemplate(&buf, "latex", NewDocument(rec)); err != nil {
		return nil, errors.Wrap(err, "render latex")
	}
	return buf.Bytes(), nil
}
