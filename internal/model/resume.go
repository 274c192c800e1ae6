package model

// Go models for the record collected by the conversation. JSON keys match
// resume.schema.json used for validation of externally supplied records.

type EducationEntry struct {
	Course  string `json:"course"`
	College string `json:"college,omitempty"`
	Year    string `json:"year,omitempty"`
}

type SkillEntry struct {
	MainSkill string   `json:"mainskill"`
	SubSkills []string `json:"subskills,omitempty"`
}

type CertificationEntry struct {
	Name   string `json:"name"`
	ID     string `json:"id,omitempty"`
	Source string `json:"source,omitempty"`
}

type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Repository   string   `json:"repository,omitempty"`
}

// Record is the résumé aggregate built across the conversation. Phone,
// LinkedIn, GitHub, Location and ProfessionalSummary are enrichment fields
// that only the renderers read.
type Record struct {
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	Education      []EducationEntry     `json:"education"`
	Skills         []SkillEntry         `json:"skills"`
	Certifications []CertificationEntry `json:"certifications"`
	Projects       []ProjectEntry       `json:"projects"`

	Phone               string `json:"phone,omitempty"`
	LinkedIn            string `json:"linkedin,omitempty"`
	GitHub              string `json:"github,omitempty"`
	Location            string `json:"location,omitempty"`
	ProfessionalSummary string `json:"professional_summary,omitempty"`
}

// NewRecord returns an empty record with non-nil sequences.
func NewRecord() *Record {
	return &Record{
		Education:      []EducationEntry{},
		Skills:         []SkillEntry{},
		Certifications: []CertificationEntry{},
		Projects:       []ProjectEntry{},
	}
}

// Clone returns a deep copy of r. A nil record clones to an empty one.
func (r *Record) Clone() *Record {
	out := NewRecord()
	if r == nil {
		return out
	}
	out.Name = r.Name
	out.Email = r.Email
	out.Phone = r.Phone
	out.LinkedIn = r.LinkedIn
	out.GitHub = r.GitHub
	out.Location = r.Location
	out.ProfessionalSummary = r.ProfessionalSummary

	out.Education = append(out.Education, r.Education...)
	for _, s := range r.Skills {
		out.Skills = append(out.Skills, SkillEntry{
			MainSkill: s.MainSkill,
			SubSkills: cloneStrings(s.SubSkills),
		})
	}
	out.Certifications = append(out.Certifications, r.Certifications...)
	for _, p := range r.Projects {
		out.Projects = append(out.Projects, ProjectEntry{
			Name:         p.Name,
			Description:  p.Description,
			Technologies: cloneStrings(p.Technologies),
			Repository:   p.Repository,
		})
	}
	return out
}

// IsEmpty reports whether nothing has been collected yet.
func (r *Record) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Name == "" && r.Email == "" &&
		len(r.Education) == 0 && len(r.Skills) == 0 &&
		len(r.Certifications) == 0 && len(r.Projects) == 0 &&
		r.Phone == "" && r.LinkedIn == "" && r.GitHub == "" &&
		r.Location == "" && r.ProfessionalSummary == ""
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
