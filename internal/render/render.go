// Package render turns a résumé record into finished documents. Every style
// is a pure function of the record: the same record always yields the same
// bytes.
package render

import (
	"sort"

	"resume-chatbot/internal/model"
)

// Renderer produces one document style.
type Renderer interface {
	Name() string
	ContentType() string
	Extension() string
	Render(rec *model.Record) ([]byte, error)
}

// HTMLRenderer marks styles whose output is an HTML page that can be printed
// to PDF by a browser.
type HTMLRenderer interface {
	Renderer
	HTML() bool
}

const DefaultStyle = "modern"

var registry = map[string]Renderer{}

func register(r Renderer) { registry[r.Name()] = r }

func init() {
	register(htmlRenderer{name: "modern"})
	register(htmlRenderer{name: "classic"})
	register(atsRenderer{})
	register(textRenderer{})
	register(latexRenderer{})
	register(pdfRenderer{})
}

// Lookup returns the renderer registered under name.
func Lookup(name string) (Renderer, bool) {
	r, ok := registry[name]
	return r, ok
}

// Names lists the registered styles in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// IsHTML reports whether r writes an HTML page.
func IsHTML(r Renderer) bool {
	h, ok := r.(HTMLRenderer)
	return ok && h.HTML()
}
