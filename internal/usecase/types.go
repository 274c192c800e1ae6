package usecase

import (
	"context"

	"resume-chatbot/internal/domain"
	"resume-chatbot/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Suggester returns related sub-skills for a main skill.
type Suggester interface {
	Suggest(ctx context.Context, skill string) ([]string, error)
}

// SuggestFunc adapts a plain function to Suggester.
type SuggestFunc func(ctx context.Context, skill string) ([]string, error)

func (f SuggestFunc) Suggest(ctx context.Context, skill string) ([]string, error) {
	return f(ctx, skill)
}

// SummaryWriter drafts a professional summary from a record.
type SummaryWriter interface {
	Summarize(ctx context.Context, rec *model.Record) (string, error)
}

// Renderer converts a finished HTML document to PDF.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type SessionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.SessionState, error)
	Save(ctx context.Context, s *domain.SessionState) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ArtifactsRepo interface {
	Save(ctx context.Context, a *domain.Artifact) error
}

var (
	ErrNoData           = errors.New("no resume data found")
	ErrSuggestionFailed = errors.New("suggestion service failed")
	ErrSummaryFailed    = errors.New("summary service failed")
	ErrRenderFailed     = errors.New("error generating document")
	ErrUnknownStyle     = errors.New("unknown resume style")
	ErrUnknownFormat    = errors.New("unknown output format")
)

// UpstreamError carries the cause of a failed call to the text-generation
// service while still matching its sentinel with errors.Is.
type UpstreamError struct {
	Op       string
	Sentinel error
	Err      error
}

func (e *UpstreamError) Error() string {
	return e.Sentinel.Error() + ": " + e.Op + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == e.Sentinel }

// ProfileUpdate sets the enrichment fields the conversation never asks for.
// Nil fields are left as they are.
type ProfileUpdate struct {
	Phone               *string `json:"phone" validate:"omitempty,max=64"`
	LinkedIn            *string `json:"linkedin" validate:"omitempty,url,max=2048"`
	GitHub              *string `json:"github" validate:"omitempty,url,max=2048"`
	Location            *string `json:"location" validate:"omitempty,max=200"`
	ProfessionalSummary *string `json:"professional_summary" validate:"omitempty,max=2000"`
}

func (u ProfileUpdate) apply(r *model.Record) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&r.Phone, u.Phone)
	set(&r.LinkedIn, u.LinkedIn)
	set(&r.GitHub, u.GitHub)
	set(&r.Location, u.Location)
	set(&r.ProfessionalSummary, u.ProfessionalSummary)
}
