package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Prompts holds every text the conversation sends back to the user.
// Questions is indexed by step; the remaining fields cover branches and
// recoverable errors.
type Prompts struct {
	Questions []string `yaml:"questions"`

	AnotherSkill   string `yaml:"another_skill"`
	InvalidInput   string `yaml:"invalid_input"`
	MissingCourse  string `yaml:"missing_course"`
	MissingSkill   string `yaml:"missing_skill"`
	MissingCert    string `yaml:"missing_certificate"`
	MissingProject string `yaml:"missing_project"`
}

// QuestionCount is the number of steps in the questionnaire.
const QuestionCount = 19

// DefaultPrompts returns the built-in wording.
func DefaultPrompts() Prompts {
	return Prompts{
		Questions: []string{
			"Hi there! I'm ResumeBot. Let's build your resume! What is your name?",
			"Great! What is your email?",
			"Now, tell me about your education. What is your course?",
			"Which college did you study at for this course?",
			"What year did you complete it?",
			"Would you like to add another education detail? (yes/no)",
			"Now, let's talk about your skills. Enter a main skill:",
			"Here are 10 related sub-skills. Select the ones you have (comma-separated):",
			"Would you like to add another main skill? (yes/no)",
			"Do you have any certifications? (yes/no)",
			"Enter the certificate name:",
			"Enter the certificate ID:",
			"Where did you get this certification from?",
			"Would you like to add another certification? (yes/no)",
			"Tell me about your projects. What is the project name?",
			"Provide a brief description of the project:",
			"Which technologies did you use? (comma-separated)",
			"Would you like to add another project? (yes/no)",
			"All done! Generating your resume now...",
		},
		AnotherSkill:   "Enter another main skill:",
		InvalidInput:   "Please enter a valid response.",
		MissingCourse:  "Error: Please enter the course first.",
		MissingSkill:   "Error: Please enter a main skill first.",
		MissingCert:    "Error: Please enter the certificate name first.",
		MissingProject: "Error: Please enter the project name first.",
	}
}

// LoadPrompts reads a YAML prompts file and fills anything it leaves out
// from DefaultPrompts. A missing file is not an error.
func LoadPrompts(filename string) (Prompts, error) {
	prompts := DefaultPrompts()
	if filename == "" {
		return prompts, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return prompts, nil
		}
		return prompts, errors.Wrapf(err, "read prompts file %s", filename)
	}

	var override Prompts
	if err := yaml.Unmarshal(data, &override); err != nil {
		return prompts, errors.Wrapf(err, "parse prompts file %s", filename)
	}

	if err := override.validate(); err != nil {
		return prompts, errors.Wrapf(err, "invalid prompts file %s", filename)
	}

	prompts.merge(override)
	return prompts, nil
}

func (p Prompts) validate() error {
	if len(p.Questions) != 0 && len(p.Questions) != QuestionCount {
		return errors.Errorf("questions must list %d entries, got %d", QuestionCount, len(p.Questions))
	}
	return nil
}

func (p *Prompts) merge(o Prompts) {
	for i, q := range o.Questions {
		if q != "" {
			p.Questions[i] = q
		}
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.AnotherSkill, o.AnotherSkill)
	set(&p.InvalidInput, o.InvalidInput)
	set(&p.MissingCourse, o.MissingCourse)
	set(&p.MissingSkill, o.MissingSkill)
	set(&p.MissingCert, o.MissingCert)
	set(&p.MissingProject, o.MissingProject)
}
