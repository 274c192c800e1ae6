package render

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"resume-chatbot/internal/model"

	"github.com/pkg/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateFuncs = map[string]any{
	"join": strings.Join,
	"placeholder": func(section string) string {
		switch section {
		case "education":
			return NoEducation
		case "skills":
			return NoSkills
		case "projects":
			return NoProjects
		default:
			return NoCertifications
		}
	},
}

var htmlTemplates = template.Must(
	template.New("html").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html.tmpl"),
)

// htmlRenderer executes the template named after the style.
type htmlRenderer struct {
	name string
}

func (h htmlRenderer) Name() string        { return h.name }
func (h htmlRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (h htmlRenderer) Extension() string   { return "html" }
func (h htmlRenderer) HTML() bool          { return true }

func (h htmlRenderer) Render(rec *model.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, h.name, NewDocument(rec)); err != nil {
		return nil, errors.Wrapf(err, "render %s", h.name)
	}
	return buf.Bytes(), nil
}
