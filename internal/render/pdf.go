package render

import (
	"bytes"
	"strings"
	"time"

	"resume-chatbot/internal/model"
	"resume-chatbot/internal/render/escape"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// Page geometry in points.
const (
	pdfMarginX     = 0.6 * 72
	pdfMarginY     = 0.5 * 72
	pdfSkillColumn = 1.6 * 72
)

// pdfEpoch is stamped as creation and modification date so output only
// depends on the record.
var pdfEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type rgb [3]int

type paraStyle struct {
	size        float64
	leading     float64
	bold        bool
	align       string
	indent      float64
	color       rgb
	spaceBefore float64
	spaceAfter  float64
}

var (
	headerStyle  = paraStyle{size: 18, leading: 22, bold: true, align: "C", spaceAfter: 6}
	contactStyle = paraStyle{size: 9, leading: 11, align: "C", color: rgb{128, 128, 128}, spaceAfter: 4}
	sectionStyle = paraStyle{size: 12, leading: 14, bold: true, color: rgb{0x0b, 0x53, 0x94}, spaceBefore: 10, spaceAfter: 6}
	normalStyle  = paraStyle{size: 10, leading: 12}
	bulletStyle  = paraStyle{size: 10, leading: 12, indent: 12}
)

// run is a piece of a paragraph with its own weight and optional link target.
type run struct {
	text string
	bold bool
	link string
}

// flowable is one block of the PDF story, drawn top to bottom.
type flowable interface {
	draw(pdf *fpdf.Fpdf, tr func(string) string)
}

type paragraph struct {
	style paraStyle
	runs  []run
}

func para(style paraStyle, text string) paragraph {
	return paragraph{style: style, runs: []run{{text: text}}}
}

func (p paragraph) draw(pdf *fpdf.Fpdf, tr func(string) string) {
	st := p.style
	if st.spaceBefore > 0 {
		pdf.Ln(st.spaceBefore)
	}
	pdf.SetTextColor(st.color[0], st.color[1], st.color[2])

	if st.align == "C" {
		var sb strings.Builder
		for _, r := range p.runs {
			sb.WriteString(r.text)
		}
		pdf.SetFont("Helvetica", fontStyle(st.bold), st.size)
		pdf.MultiCell(0, st.leading, tr(sb.String()), "", "C", false)
	} else {
		pdf.SetLeftMargin(pdfMarginX + st.indent)
		pdf.SetX(pdfMarginX + st.indent)
		for _, r := range p.runs {
			pdf.SetFont("Helvetica", fontStyle(st.bold || r.bold), st.size)
			if r.link != "" {
				pdf.SetTextColor(0x0b, 0x53, 0x94)
				pdf.WriteLinkString(st.leading, tr(r.text), r.link)
				pdf.SetTextColor(st.color[0], st.color[1], st.color[2])
				continue
			}
			pdf.Write(st.leading, tr(r.text))
		}
		pdf.Ln(st.leading)
		pdf.SetLeftMargin(pdfMarginX)
	}

	if st.spaceAfter > 0 {
		pdf.Ln(st.spaceAfter)
	}
}

type spacer float64

func (s spacer) draw(pdf *fpdf.Fpdf, _ func(string) string) { pdf.Ln(float64(s)) }

// skillsTable is a two-column table: main skill in bold on the left, its
// sub-skills wrapping on the right.
type skillsTable struct {
	rows [][2]string
}

func (t skillsTable) draw(pdf *fpdf.Fpdf, tr func(string) string) {
	pageW, pageH := pdf.GetPageSize()
	rightW := pageW - 2*pdfMarginX - pdfSkillColumn
	const leading, padBottom, padRight = 12.0, 4.0, 6.0

	pdf.SetTextColor(0, 0, 0)
	for _, row := range t.rows {
		left, right := tr(row[0]), tr(row[1])

		pdf.SetFont("Helvetica", "B", normalStyle.size)
		leftLines := len(pdf.SplitLines([]byte(left), pdfSkillColumn-padRight))
		pdf.SetFont("Helvetica", "", normalStyle.size)
		rightLines := len(pdf.SplitLines([]byte(right), rightW))
		h := float64(max(leftLines, rightLines, 1))*leading + padBottom

		if pdf.GetY()+h > pageH-pdfMarginY {
			pdf.AddPage()
		}
		x, y := pdf.GetX(), pdf.GetY()

		pdf.SetFont("Helvetica", "B", normalStyle.size)
		pdf.MultiCell(pdfSkillColumn-padRight, leading, left, "", "L", false)
		pdf.SetXY(x+pdfSkillColumn, y)
		pdf.SetFont("Helvetica", "", normalStyle.size)
		pdf.MultiCell(rightW, leading, right, "", "L", false)
		pdf.SetXY(x, y+h)
	}
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

// story lays the document out as flowables.
func story(d *Document) []flowable {
	clean := escape.Plain
	var out []flowable

	out = append(out, para(headerStyle, clean(strings.ToUpper(d.Name))))
	if c := d.Contact(); len(c) > 0 {
		out = append(out, para(contactStyle, clean(strings.Join(c, " • "))))
	}
	if len(d.Links) > 0 {
		links := make([]string, 0, len(d.Links))
		for _, l := range d.Links {
			links = append(links, l.Label+": "+clean(l.URL))
		}
		out = append(out, para(contactStyle, strings.Join(links, " • ")))
	}
	out = append(out, spacer(8))

	out = append(out, para(sectionStyle, "PROFESSIONAL SUMMARY"), para(normalStyle, clean(d.Summary)))

	out = append(out, spacer(6), para(sectionStyle, "CORE SKILLS"))
	if len(d.Skills) > 0 {
		t := skillsTable{}
		for _, s := range d.Skills {
			t.rows = append(t.rows, [2]string{clean(s.Name), clean(strings.Join(s.Subs, ", "))})
		}
		out = append(out, t)
	} else {
		out = append(out, para(normalStyle, NoSkills))
	}

	out = append(out, spacer(6), para(sectionStyle, "KEY PROJECTS"))
	for _, p := range d.Projects {
		head := paragraph{style: normalStyle}
		title := clean(p.Name)
		if len(p.Technologies) > 0 {
			title += " — " + clean(strings.Join(p.Technologies, ", "))
		}
		head.runs = append(head.runs, run{text: title, bold: true})
		if p.Repository != "" {
			head.runs = append(head.runs, run{text: " "}, run{text: "[Repo]", link: p.Repository})
		}
		out = append(out, head)
		if p.Description != "" {
			out = append(out, para(bulletStyle, clean(p.Description)))
		}
		out = append(out, spacer(4))
	}
	if len(d.Projects) == 0 {
		out = append(out, para(normalStyle, NoProjects))
	}

	out = append(out, spacer(6), para(sectionStyle, "EDUCATION"))
	for _, e := range d.Education {
		line := paragraph{style: normalStyle, runs: []run{{text: clean(e.Course), bold: true}}}
		if e.Year != "" {
			line.runs = append(line.runs, run{text: " — " + clean(e.Year)})
		}
		out = append(out, line)
		if e.College != "" {
			out = append(out, para(normalStyle, clean(e.College)))
		}
		out = append(out, spacer(4))
	}
	if len(d.Education) == 0 {
		out = append(out, para(normalStyle, NoEducation))
	}

	out = append(out, spacer(6), para(sectionStyle, "CERTIFICATIONS"))
	for _, c := range d.Certifications {
		line := clean(c.Name)
		if c.ID != "" {
			line += " (ID: " + clean(c.ID) + ")"
		}
		p := paragraph{style: normalStyle, runs: []run{{text: line}}}
		switch {
		case c.SourceLink != nil:
			p.runs = append(p.runs,
				run{text: " "},
				run{text: c.SourceLink.Label, link: c.SourceLink.URL},
				run{text: " (" + c.SourceLink.Host + ")"},
			)
		case c.Source != "":
			p.runs = append(p.runs, run{text: " — " + clean(c.Source)})
		}
		out = append(out, p, spacer(2))
	}
	if len(d.Certifications) == 0 {
		out = append(out, para(normalStyle, NoCertifications))
	}
	return out
}

// pdfRenderer builds the PDF directly rather than printing an HTML page.
type pdfRenderer struct{}

func (pdfRenderer) Name() string        { return "pdf" }
func (pdfRenderer) ContentType() string { return "application/pdf" }
func (pdfRenderer) Extension() string   { return "pdf" }

func (pdfRenderer) Render(rec *model.Record) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMarginX, pdfMarginY, pdfMarginX)
	pdf.SetAutoPageBreak(true, pdfMarginY)
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetCatalogSort(true)

	doc := NewDocument(rec)
	pdf.SetTitle(doc.Name+" Resume", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, f := range story(doc) {
		f.draw(pdf, tr)
	}
	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(err, "build pdf")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "write pdf")
	}
	return buf.Bytes(), nil
}
