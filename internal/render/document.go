package render

import (
	"net/url"
	"strings"

	"resume-chatbot/internal/model"

	"golang.org/x/net/publicsuffix"
)

const (
	NoEducation      = "No education details provided."
	NoSkills         = "No skills provided."
	NoProjects       = "No projects provided."
	NoCertifications = "No certifications listed."

	GenericSummary = "Computer Science graduate with practical experience in software development and AI projects."
)

// Link is an outbound reference. Host is a short label derived from the URL.
type Link struct {
	Label string
	URL   string
	Host  string
}

type Education struct {
	Course  string
	College string
	Year    string
}

type Skill struct {
	Name string
	Subs []string
}

type Project struct {
	Name         string
	Description  string
	Technologies []string
	Repository   string
}

type Certification struct {
	Name string
	ID   string
	// Source is either a link (SourceLink set) or trailing text.
	Source     string
	SourceLink *Link
}

// Document is the style-independent view of a record. Values are raw; each
// backend escapes them for its own format.
type Document struct {
	Name     string
	Email    string
	Phone    string
	Location string
	Links    []Link

	Summary string

	Education      []Education
	Skills         []Skill
	Projects       []Project
	Certifications []Certification
}

// NewDocument builds the document for r. Entries with nothing to show are
// skipped.
func NewDocument(r *model.Record) *Document {
	if r == nil {
		r = model.NewRecord()
	}
	d := &Document{
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.TrimSpace(r.Email),
		Phone:    strings.TrimSpace(r.Phone),
		Location: strings.TrimSpace(r.Location),
		Summary:  strings.TrimSpace(r.ProfessionalSummary),
	}
	if d.Summary == "" {
		d.Summary = SynthesizeSummary(r)
	}
	if r.LinkedIn != "" {
		d.Links = append(d.Links, newLink("LinkedIn", r.LinkedIn))
	}
	if r.GitHub != "" {
		d.Links = append(d.Links, newLink("GitHub", r.GitHub))
	}

	for _, e := range r.Education {
		if e.Course == "" && e.College == "" && e.Year == "" {
			continue
		}
		d.Education = append(d.Education, Education{Course: e.Course, College: e.College, Year: e.Year})
	}
	for _, s := range r.Skills {
		if s.MainSkill == "" {
			continue
		}
		d.Skills = append(d.Skills, Skill{Name: s.MainSkill, Subs: nonEmpty(s.SubSkills)})
	}
	for _, p := range r.Projects {
		if p.Name == "" && p.Description == "" {
			continue
		}
		d.Projects = append(d.Projects, Project{
			Name:         p.Name,
			Description:  p.Description,
			Technologies: nonEmpty(p.Technologies),
			Repository:   p.Repository,
		})
	}
	for _, c := range r.Certifications {
		cert := Certification{Name: c.Name, ID: c.ID, Source: c.Source}
		if strings.HasPrefix(c.Source, "http") {
			l := newLink("[Certificate]", c.Source)
			cert.SourceLink = &l
		}
		d.Certifications = append(d.Certifications, cert)
	}
	return d
}

// Contact returns location, phone and email, skipping empty ones.
func (d *Document) Contact() []string {
	return nonEmpty([]string{d.Location, d.Phone, d.Email})
}

// SynthesizeSummary builds a one-line summary from the first education
// entry, the first three main skills and the first two project names.
func SynthesizeSummary(r *model.Record) string {
	if r == nil {
		return GenericSummary
	}
	var parts []string
	if len(r.Education) > 0 {
		e := r.Education[0]
		if e.Course != "" {
			parts = append(parts, e.Course+" graduate")
		}
		if e.College != "" {
			parts = append(parts, "from "+e.College)
		}
	}

	var skills []string
	for i := 0; i < len(r.Skills) && i < 3; i++ {
		skills = append(skills, r.Skills[i].MainSkill)
	}
	if skills = nonEmpty(skills); len(skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(skills, ", "))
	}

	var projects []string
	for i := 0; i < len(r.Projects) && i < 2; i++ {
		projects = append(projects, r.Projects[i].Name)
	}
	if projects = nonEmpty(projects); len(projects) > 0 {
		parts = append(parts, "Projects: "+strings.Join(projects, ", "))
	}

	if len(parts) == 0 {
		return GenericSummary
	}
	return strings.Join(parts, ". ")
}

func newLink(label, raw string) Link {
	return Link{Label: label, URL: raw, Host: hostLabel(raw)}
}

// hostLabel reduces a URL to its registrable domain, e.g.
// https://www.coursera.org/verify/X becomes coursera.org.
func hostLabel(raw string) string {
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld
	}
	return host
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
