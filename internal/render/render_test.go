package render

import (
	"bytes"
	"strings"
	"testing"

	"resume-chatbot/internal/model"
)

func sampleRecord() *model.Record {
	r := model.NewRecord()
	r.Name = "Alice"
	r.Email = "alice@x.com"
	r.Phone = "+1 555 0100"
	r.GitHub = "https://github.com/alice"
	r.Education = append(r.Education, model.EducationEntry{Course: "CS", College: "MIT", Year: "2024"})
	r.Skills = append(r.Skills,
		model.SkillEntry{MainSkill: "Python", SubSkills: []string{"Django", "Flask"}},
		model.SkillEntry{MainSkill: "SQL", SubSkills: []string{"Joins"}},
	)
	r.Certifications = append(r.Certifications,
		model.CertificationEntry{Name: "AWS CCP", ID: "ABC-1", Source: "https://www.credly.com/badges/1"},
		model.CertificationEntry{Name: "Local Cert", Source: "Night school"},
	)
	r.Projects = append(r.Projects, model.ProjectEntry{
		Name:         "MyApp",
		Description:  "a tool",
		Technologies: []string{"Python", "Flask"},
		Repository:   "https://github.com/alice/myapp",
	})
	return r
}

func TestNamesAndLookup(t *testing.T) {
	want := []string{"ats", "classic", "latex", "modern", "pdf", "text"}
	got := Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Expected styles %v, got %v", want, got)
	}
	if _, ok := Lookup("fancy"); ok {
		t.Error("Expected unknown style lookup to fail")
	}
	if r, ok := Lookup(DefaultStyle); !ok || !IsHTML(r) {
		t.Error("Expected default style to be an HTML renderer")
	}
	if r, _ := Lookup("pdf"); IsHTML(r) {
		t.Error("Expected pdf style not to be HTML")
	}
}

func TestHTMLStylesEmptyRecordPlaceholders(t *testing.T) {
	for _, name := range []string{"modern", "classic", "ats"} {
		t.Run(name, func(t *testing.T) {
			r, _ := Lookup(name)
			out, err := r.Render(model.NewRecord())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, ph := range []string{NoEducation, NoSkills, NoProjects, NoCertifications} {
				if !bytes.Contains(out, []byte(ph)) {
					t.Errorf("Expected placeholder %q in output", ph)
				}
			}
			if !bytes.Contains(out, []byte(GenericSummary)) {
				t.Error("Expected generic summary for empty record")
			}
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	rec := sampleRecord()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			r, _ := Lookup(name)
			first, err := r.Render(rec)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			second, err := r.Render(rec)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !bytes.Equal(first, second) {
				t.Error("Expected byte-identical output for the same record")
			}
		})
	}
}

func TestHTMLEscapesScript(t *testing.T) {
	rec := model.NewRecord()
	rec.Name = "<script>alert(1)</script>"
	rec.Projects = append(rec.Projects, model.ProjectEntry{Name: "<b>bold</b>"})

	for _, name := range []string{"modern", "classic", "ats"} {
		t.Run(name, func(t *testing.T) {
			r, _ := Lookup(name)
			out, err := r.Render(rec)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if bytes.Contains(out, []byte("<script>")) || bytes.Contains(out, []byte("<SCRIPT>")) {
				t.Error("Found raw script tag in output")
			}
			if !bytes.Contains(out, []byte("&lt;")) || !bytes.Contains(out, []byte("&gt;")) {
				t.Error("Expected angle brackets as entities")
			}
			if bytes.Contains(out, []byte("<b>bold</b>")) {
				t.Error("Found raw project markup in output")
			}
		})
	}
}

func TestCertificationSourceLinks(t *testing.T) {
	rec := sampleRecord()
	for _, name := range []string{"modern", "classic"} {
		t.Run(name, func(t *testing.T) {
			r, _ := Lookup(name)
			out, err := r.Render(rec)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			s := string(out)
			if !strings.Contains(s, `href="https://www.credly.com/badges/1"`) {
				t.Error("Expected http source rendered as a link")
			}
			if !strings.Contains(s, "[Certificate]") {
				t.Error("Expected [Certificate] link text")
			}
			if !strings.Contains(s, `title="credly.com"`) {
				t.Error("Expected registrable domain as link title")
			}
			if strings.Contains(s, `href="Night school"`) {
				t.Error("Non-http source must not become a link")
			}
			if !strings.Contains(s, "Night school") {
				t.Error("Expected non-http source as trailing text")
			}
		})
	}
}

func TestProjectRepoLink(t *testing.T) {
	rec := sampleRecord()
	for _, name := range []string{"modern", "classic"} {
		r, _ := Lookup(name)
		out, err := r.Render(rec)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if !bytes.Contains(out, []byte(`href="https://github.com/alice/myapp"`)) || !bytes.Contains(out, []byte("[Repo]")) {
			t.Errorf("%s: expected [Repo] link next to project", name)
		}
	}

	ats, _ := Lookup("ats")
	out, _ := ats.Render(rec)
	if bytes.Contains(out, []byte("<a ")) {
		t.Error("ATS output must not contain anchors")
	}
	if !bytes.Contains(out, []byte("(Repo: https://github.com/alice/myapp)")) {
		t.Error("Expected repository as inline text in ATS output")
	}
}

func TestModernSkillPills(t *testing.T) {
	r, _ := Lookup("modern")
	out, err := r.Render(sampleRecord())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !bytes.Contains(out, []byte(`<div class="skill-pill"><b>Python</b>: Django, Flask</div>`)) {
		t.Errorf("Expected pill for Python, got:\n%s", out)
	}

	classic, _ := Lookup("classic")
	out, _ = classic.Render(sampleRecord())
	if bytes.Contains(out, []byte("skill-pill")) {
		t.Error("Classic style must not use pills")
	}
}

func TestTextStyle(t *testing.T) {
	r, _ := Lookup("text")
	rec := sampleRecord()
	rec.Name = "Tom & Jerry"
	out, err := r.Render(rec)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "TOM & JERRY\n") {
		t.Errorf("Expected unescaped upper-case name first, got %q", s[:20])
	}
	if !strings.Contains(s, "Python: Django, Flask") {
		t.Error("Expected skills line")
	}
	if !strings.Contains(s, "AWS CCP (ID: ABC-1) — https://www.credly.com/badges/1") {
		t.Error("Expected certification line with inline source")
	}
}

func TestLatexEscapesFields(t *testing.T) {
	r, _ := Lookup("latex")
	rec := sampleRecord()
	rec.Name = "R&D_Lead"
	rec.Projects[0].Description = "100% {fun}"
	out, err := r.Render(rec)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `R\&D\_LEAD`) {
		t.Error("Expected escaped upper-case name")
	}
	if !strings.Contains(s, `100\% \{fun\}`) {
		t.Error("Expected escaped description")
	}
	if !strings.Contains(s, `\href{https://github.com/alice/myapp}{[Repo]}`) {
		t.Error("Expected repo href")
	}
	if !strings.HasPrefix(s, `\documentclass`) || !strings.Contains(s, `\end{document}`) {
		t.Error("Expected a complete LaTeX document")
	}
}

func TestPDFStyle(t *testing.T) {
	r, _ := Lookup("pdf")
	for _, rec := range []*model.Record{sampleRecord(), model.NewRecord()} {
		out, err := r.Render(rec)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Errorf("Expected PDF header, got %q", out[:8])
		}
	}
}

func TestSynthesizeSummary(t *testing.T) {
	tests := []struct {
		name string
		rec  *model.Record
		want string
	}{
		{"nil record", nil, GenericSummary},
		{"empty record", model.NewRecord(), GenericSummary},
		{"full record", sampleRecord(), "CS graduate. from MIT. Skills: Python, SQL. Projects: MyApp"},
		{
			name: "skills only, capped at three",
			rec: &model.Record{Skills: []model.SkillEntry{
				{MainSkill: "A"}, {MainSkill: "B"}, {MainSkill: "C"}, {MainSkill: "D"},
			}},
			want: "Skills: A, B, C",
		},
		{
			name: "projects capped at two",
			rec:  &model.Record{Projects: []model.ProjectEntry{{Name: "P1"}, {Name: "P2"}, {Name: "P3"}}},
			want: "Projects: P1, P2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SynthesizeSummary(tt.rec); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGivenSummaryWins(t *testing.T) {
	rec := sampleRecord()
	rec.ProfessionalSummary = "Builder of tools."
	if d := NewDocument(rec); d.Summary != "Builder of tools." {
		t.Errorf("Expected given summary, got %q", d.Summary)
	}
}

func TestHostLabel(t *testing.T) {
	tests := map[string]string{
		"https://www.coursera.org/verify/X": "coursera.org",
		"https://learn.microsoft.com/a":     "microsoft.com",
		"http://example.co.uk/cert":         "example.co.uk",
		"udemy.com/cert":                    "udemy.com",
	}
	for in, want := range tests {
		if got := hostLabel(in); got != want {
			t.Errorf("hostLabel(%q) = %q, want %q", in, got, want)
		}
	}
}
