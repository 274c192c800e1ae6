package usecase

import (
	"context"
	"strings"
	"time"

	"resume-chatbot/internal/config"
	"resume-chatbot/internal/domain"
	"resume-chatbot/internal/model"

	"github.com/pkg/errors"
)

// Reply is what the bot says after one user message.
type Reply struct {
	Prompt      string      `json:"question"`
	Suggestions []string    `json:"subskills,omitempty"`
	Step        domain.Step `json:"step"`
	Done        bool        `json:"done"`
}

// outcome is the result of applying one answer to a copy of the record.
// A rejected outcome leaves the session as it was and shows prompt instead
// of the next question.
type outcome struct {
	next        domain.Step
	prompt      string
	suggestions []string
	rejected    bool
}

type action func(ctx context.Context, rec *model.Record, answer string) (outcome, error)

// Conversation drives the questionnaire. It holds no per-session data and is
// safe for concurrent use.
type Conversation struct {
	prompts   config.Prompts
	suggester Suggester
	actions   [domain.StepDone]action
	now       func() time.Time
}

func NewConversation(prompts config.Prompts, suggester Suggester) *Conversation {
	c := &Conversation{prompts: prompts, suggester: suggester, now: time.Now}
	c.actions = [domain.StepDone]action{
		domain.StepName: c.set(domain.StepEmail, func(r *model.Record, a string) { r.Name = a }),
		domain.StepEmail: c.set(domain.StepCourse, func(r *model.Record, a string) { r.Email = a }),
		domain.StepCourse: c.set(domain.StepCollege, func(r *model.Record, a string) {
			r.Education = append(r.Education, model.EducationEntry{Course: a})
		}),
		domain.StepCollege: c.fill(domain.StepYear, hasEducation, prompts.MissingCourse, func(r *model.Record, a string) {
			r.Education[len(r.Education)-1].College = a
		}),
		domain.StepYear: c.fill(domain.StepMoreEducation, hasEducation, prompts.MissingCourse, func(r *model.Record, a string) {
			r.Education[len(r.Education)-1].Year = a
		}),
		domain.StepMoreEducation: c.gate(domain.StepCourse, domain.StepMainSkill, ""),
		domain.StepMainSkill:     c.mainSkill,
		domain.StepSubSkills: c.fill(domain.StepMoreSkills, hasSkill, prompts.MissingSkill, func(r *model.Record, a string) {
			r.Skills[len(r.Skills)-1].SubSkills = SplitList(a)
		}),
		domain.StepMoreSkills:        c.gate(domain.StepMainSkill, domain.StepHasCertifications, prompts.AnotherSkill),
		domain.StepHasCertifications: c.gate(domain.StepCertName, domain.StepProjectName, ""),
		domain.StepCertName: c.set(domain.StepCertID, func(r *model.Record, a string) {
			r.Certifications = append(r.Certifications, model.CertificationEntry{Name: a})
		}),
		domain.StepCertID: c.fill(domain.StepCertSource, hasCertification, prompts.MissingCert, func(r *model.Record, a string) {
			r.Certifications[len(r.Certifications)-1].ID = a
		}),
		domain.StepCertSource: c.fill(domain.StepMoreCertifications, hasCertification, prompts.MissingCert, func(r *model.Record, a string) {
			r.Certifications[len(r.Certifications)-1].Source = a
		}),
		domain.StepMoreCertifications: c.gate(domain.StepCertName, domain.StepProjectName, ""),
		domain.StepProjectName: c.set(domain.StepProjectDescription, func(r *model.Record, a string) {
			r.Projects = append(r.Projects, model.ProjectEntry{Name: a})
		}),
		domain.StepProjectDescription: c.fill(domain.StepProjectTechnologies, hasProject, prompts.MissingProject, func(r *model.Record, a string) {
			r.Projects[len(r.Projects)-1].Description = a
		}),
		domain.StepProjectTechnologies: c.fill(domain.StepMoreProjects, hasProject, prompts.MissingProject, func(r *model.Record, a string) {
			r.Projects[len(r.Projects)-1].Technologies = SplitList(a)
		}),
		domain.StepMoreProjects: c.gate(domain.StepProjectName, domain.StepDone, ""),
	}
	return c
}

// Question returns the prompt shown when a session is at step s.
func (c *Conversation) Question(s domain.Step) string {
	if !s.Valid() {
		return ""
	}
	return c.prompts.Questions[s]
}

// Advance applies one user message to state and returns the next state with
// the bot's reply. state is never modified. When the answer is rejected the
// returned state is state itself.
func (c *Conversation) Advance(ctx context.Context, state *domain.SessionState, utterance string) (*domain.SessionState, Reply, error) {
	if state == nil {
		return nil, Reply{}, errors.New("conversation: nil session state")
	}
	if !state.Step.Valid() {
		return state, Reply{}, errors.Errorf("conversation: invalid step %d", int(state.Step))
	}
	if state.Step == domain.StepDone {
		return state, Reply{Prompt: c.Question(domain.StepDone), Step: domain.StepDone, Done: true}, nil
	}

	answer := strings.TrimSpace(utterance)
	if answer == "" {
		return state, Reply{Prompt: c.prompts.InvalidInput, Step: state.Step}, nil
	}

	next := state.Clone()
	out, err := c.actions[state.Step](ctx, next.Record, answer)
	if err != nil {
		return state, Reply{Step: state.Step}, err
	}
	if out.rejected {
		return state, Reply{Prompt: out.prompt, Step: state.Step}, nil
	}

	next.Step = out.next
	next.UpdatedAt = c.now()

	reply := Reply{
		Prompt:      out.prompt,
		Suggestions: out.suggestions,
		Step:        next.Step,
		Done:        next.Step == domain.StepDone,
	}
	if reply.Prompt == "" {
		reply.Prompt = c.Question(next.Step)
	}
	return next, reply, nil
}

func (c *Conversation) set(next domain.Step, apply func(*model.Record, string)) action {
	return func(_ context.Context, rec *model.Record, answer string) (outcome, error) {
		apply(rec, answer)
		return outcome{next: next}, nil
	}
}

// fill writes into the most recent entry of a sequence, which must exist.
func (c *Conversation) fill(next domain.Step, exists func(*model.Record) bool, missing string, apply func(*model.Record, string)) action {
	return func(_ context.Context, rec *model.Record, answer string) (outcome, error) {
		if !exists(rec) {
			return outcome{rejected: true, prompt: missing}, nil
		}
		apply(rec, answer)
		return outcome{next: next}, nil
	}
}

// gate branches on a yes/no answer. Only "no" is negative.
func (c *Conversation) gate(yes, no domain.Step, yesPrompt string) action {
	return func(_ context.Context, _ *model.Record, answer string) (outcome, error) {
		if IsNo(answer) {
			return outcome{next: no}, nil
		}
		return outcome{next: yes, prompt: yesPrompt}, nil
	}
}

func (c *Conversation) mainSkill(ctx context.Context, rec *model.Record, answer string) (outcome, error) {
	if c.suggester == nil {
		return outcome{}, &UpstreamError{Op: "suggest " + answer, Sentinel: ErrSuggestionFailed, Err: errors.New("no suggestion service configured")}
	}
	suggestions, err := c.suggester.Suggest(ctx, answer)
	if err != nil {
		return outcome{}, &UpstreamError{Op: "suggest " + answer, Sentinel: ErrSuggestionFailed, Err: err}
	}
	rec.Skills = append(rec.Skills, model.SkillEntry{MainSkill: answer, SubSkills: []string{}})
	return outcome{next: domain.StepSubSkills, suggestions: suggestions}, nil
}

func hasEducation(r *model.Record) bool     { return len(r.Education) > 0 }
func hasSkill(r *model.Record) bool         { return len(r.Skills) > 0 }
func hasCertification(r *model.Record) bool { return len(r.Certifications) > 0 }
func hasProject(r *model.Record) bool       { return len(r.Projects) > 0 }

// IsNo reports whether a yes/no answer is negative.
func IsNo(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "no")
}

// SplitList splits a comma-separated answer, trimming items and dropping
// empty ones.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
