package render

import (
	"bytes"
	"strings"

	"resume-chatbot/internal/model"
	"resume-chatbot/internal/render/escape"
)

const atsHead = `<!doctype html><html><head><meta charset="utf-8"/>` +
	`<style>pre{font-family:monospace;font-size:10px;white-space:pre-wrap;}</style>` +
	`</head><body><pre>`

const atsTail = "</pre></body></html>\n"

// atsLines lays the document out as plain lines. Every value passes through
// esc; links appear only as inline text.
func atsLines(d *Document, esc func(string) string) []string {
	var lines []string
	if d.Name != "" {
		lines = append(lines, esc(strings.ToUpper(d.Name)), "")
	}
	if d.Email != "" {
		lines = append(lines, "Email: "+esc(d.Email))
	}
	if d.Phone != "" {
		lines = append(lines, "Phone: "+esc(d.Phone))
	}
	if d.Location != "" {
		lines = append(lines, "Location: "+esc(d.Location))
	}
	for _, l := range d.Links {
		lines = append(lines, l.Label+": "+esc(l.URL))
	}
	lines = append(lines, "", "SUMMARY", esc(d.Summary), "")

	lines = append(lines, "SKILLS")
	for _, s := range d.Skills {
		lines = append(lines, esc(s.Name)+": "+esc(strings.Join(s.Subs, ", ")))
	}
	if len(d.Skills) == 0 {
		lines = append(lines, NoSkills)
	}
	lines = append(lines, "")

	lines = append(lines, "PROJECTS")
	for _, p := range d.Projects {
		line := esc(p.Name)
		if p.Description != "" {
			line += " — " + esc(p.Description)
		}
		if len(p.Technologies) > 0 {
			line += " [" + esc(strings.Join(p.Technologies, ", ")) + "]"
		}
		if p.Repository != "" {
			line += " (Repo: " + esc(p.Repository) + ")"
		}
		lines = append(lines, line)
	}
	if len(d.Projects) == 0 {
		lines = append(lines, NoProjects)
	}
	lines = append(lines, "")

	lines = append(lines, "EDUCATION")
	for _, e := range d.Education {
		line := esc(e.Course)
		if e.College != "" {
			line += " — " + esc(e.College)
		}
		if e.Year != "" {
			line += " (" + esc(e.Year) + ")"
		}
		lines = append(lines, line)
	}
	if len(d.Education) == 0 {
		lines = append(lines, NoEducation)
	}
	lines = append(lines, "")

	lines = append(lines, "CERTIFICATIONS")
	for _, c := range d.Certifications {
		line := esc(c.Name)
		if c.ID != "" {
			line += " (ID: " + esc(c.ID) + ")"
		}
		if c.Source != "" {
			line += " — " + esc(c.Source)
		}
		lines = append(lines, line)
	}
	if len(d.Certifications) == 0 {
		lines = append(lines, NoCertifications)
	}
	return lines
}

// atsRenderer wraps the plain layout in a monospace block so the page still
// prints as PDF.
type atsRenderer struct{}

func (atsRenderer) Name() string        { return "ats" }
func (atsRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (atsRenderer) Extension() string   { return "html" }
func (atsRenderer) HTML() bool          { return true }

func (atsRenderer) Render(rec *model.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(atsHead)
	buf.WriteString(strings.Join(atsLines(NewDocument(rec), escape.HTML), "\n"))
	buf.WriteString(atsTail)
	return buf.Bytes(), nil
}

// textRenderer writes the same layout as a .txt file.
type textRenderer struct{}

func (textRenderer) Name() string        { return "text" }
func (textRenderer) ContentType() string { return "text/plain; charset=utf-8" }
func (textRenderer) Extension() string   { return "txt" }

func (textRenderer) Render(rec *model.Record) ([]byte, error) {
	return []byte(strings.Join(atsLines(NewDocument(rec), escape.Plain), "\n") + "\n"), nil
}
