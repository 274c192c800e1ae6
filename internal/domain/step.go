package domain

import "fmt"

// Step is a position in the fixed questionnaire.
type Step int

const (
	StepName Step = iota
	StepEmail
	StepCourse
	StepCollege
	StepYear
	StepMoreEducation
	StepMainSkill
	StepSubSkills
	StepMoreSkills
	StepHasCertifications
	StepCertName
	StepCertID
	StepCertSource
	StepMoreCertifications
	StepProjectName
	StepProjectDescription
	StepProjectTechnologies
	StepMoreProjects
	StepDone
)

var stepNames = [...]string{
	StepName:                "name",
	StepEmail:               "email",
	StepCourse:              "course",
	StepCollege:             "college",
	StepYear:                "year",
	StepMoreEducation:       "more_education",
	StepMainSkill:           "main_skill",
	StepSubSkills:           "sub_skills",
	StepMoreSkills:          "more_skills",
	StepHasCertifications:   "has_certifications",
	StepCertName:            "cert_name",
	StepCertID:              "cert_id",
	StepCertSource:          "cert_source",
	StepMoreCertifications:  "more_certifications",
	StepProjectName:         "project_name",
	StepProjectDescription:  "project_description",
	StepProjectTechnologies: "project_technologies",
	StepMoreProjects:        "more_projects",
	StepDone:                "done",
}

// Steps lists every step in questionnaire order.
func Steps() []Step {
	out := make([]Step, 0, len(stepNames))
	for s := StepName; s <= StepDone; s++ {
		out = append(out, s)
	}
	return out
}

func (s Step) Valid() bool { return s >= StepName && s <= StepDone }

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// ParseStep maps a step name back to its value.
func ParseStep(name string) (Step, bool) {
	for i, n := range stepNames {
		if n == name {
			return Step(i), true
		}
	}
	return 0, false
}
