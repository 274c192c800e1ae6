package usecase

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"resume-chatbot/internal/domain"
	"resume-chatbot/internal/model"
	"resume-chatbot/internal/render"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Deps are the collaborators of a Processor. Only Conversation and Sessions
// are required.
type Deps struct {
	Conversation *Conversation
	Sessions     SessionStore
	// PDF prints HTML styles to PDF. Without it only native formats export.
	PDF       Renderer
	Artifacts ArtifactsRepo
	Summaries SummaryWriter
	// OutputDir receives a copy of every generated file. Empty disables writing.
	OutputDir string
	// PDFAttempts bounds browser print retries. Defaults to 3.
	PDFAttempts int
}

// Processor runs the chat sessions and turns finished records into files.
type Processor struct {
	conv        *Conversation
	sessions    SessionStore
	pdf         Renderer
	artifacts   ArtifactsRepo
	summaries   SummaryWriter
	outputDir   string
	pdfAttempts int
	now         func() time.Time
}

func NewProcessor(d Deps) *Processor {
	if d.PDFAttempts < 1 {
		d.PDFAttempts = 3
	}
	return &Processor{
		conv:        d.Conversation,
		sessions:    d.Sessions,
		pdf:         d.PDF,
		artifacts:   d.Artifacts,
		summaries:   d.Summaries,
		outputDir:   d.OutputDir,
		pdfAttempts: d.PDFAttempts,
		now:         time.Now,
	}
}

// Start opens a new session and returns it with the first question.
func (p *Processor) Start(ctx context.Context) (*domain.SessionState, Reply, error) {
	st := domain.NewSessionState()
	if err := p.sessions.Save(ctx, st); err != nil {
		return nil, Reply{}, errors.Wrap(err, "save new session")
	}
	log.Info().Str("session_id", st.ID.String()).Msg("session started")
	return st, p.question(st), nil
}

// Chat applies one message to the session and stores the result.
func (p *Processor) Chat(ctx context.Context, id uuid.UUID, message string) (Reply, error) {
	st, err := p.sessions.Get(ctx, id)
	if err != nil {
		return Reply{}, err
	}

	next, reply, err := p.conv.Advance(ctx, st, message)
	if err != nil {
		log.Error().Err(err).Str("session_id", id.String()).Str("step", st.Step.String()).Msg("conversation step failed")
		return reply, err
	}
	if next != st {
		if err := p.sessions.Save(ctx, next); err != nil {
			return Reply{}, errors.Wrapf(err, "save session %s", id)
		}
	}
	return reply, nil
}

// Reset puts the session back at the first question with an empty record.
func (p *Processor) Reset(ctx context.Context, id uuid.UUID) (Reply, error) {
	st, err := p.sessions.Get(ctx, id)
	if err != nil {
		return Reply{}, err
	}
	st.Reset()
	if err := p.sessions.Save(ctx, st); err != nil {
		return Reply{}, errors.Wrapf(err, "save session %s", id)
	}
	return p.question(st), nil
}

// State returns a copy of the session.
func (p *Processor) State(ctx context.Context, id uuid.UUID) (*domain.SessionState, error) {
	return p.sessions.Get(ctx, id)
}

// Question returns the prompt for the session's current step.
func (p *Processor) Question(st *domain.SessionState) Reply {
	return p.question(st)
}

func (p *Processor) question(st *domain.SessionState) Reply {
	return Reply{Prompt: p.conv.Question(st.Step), Step: st.Step, Done: st.Done()}
}

// UpdateProfile sets the contact and summary fields the questionnaire does
// not ask for.
func (p *Processor) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*model.Record, error) {
	st, err := p.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	upd.apply(st.Record)
	st.UpdatedAt = p.now()
	if err := p.sessions.Save(ctx, st); err != nil {
		return nil, errors.Wrapf(err, "save session %s", id)
	}
	return st.Record, nil
}

// SuggestSummary drafts a professional summary for the session's record
// and stores it.
func (p *Processor) SuggestSummary(ctx context.Context, id uuid.UUID) (string, error) {
	st, err := p.sessions.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if st.Record.IsEmpty() {
		return "", ErrNoData
	}
	if p.summaries == nil {
		return "", &UpstreamError{Op: "summarize", Sentinel: ErrSummaryFailed, Err: errors.New("no summary service configured")}
	}

	summary, err := p.summaries.Summarize(ctx, st.Record)
	if err != nil {
		log.Error().Err(err).Str("session_id", id.String()).Msg("summary generation failed")
		return "", &UpstreamError{Op: "summarize", Sentinel: ErrSummaryFailed, Err: err}
	}

	st.Record.ProfessionalSummary = summary
	st.UpdatedAt = p.now()
	if err := p.sessions.Save(ctx, st); err != nil {
		return "", errors.Wrapf(err, "save session %s", id)
	}
	return summary, nil
}

// Export renders the session's record in style and format, keeps a copy in
// the output directory and records its metadata.
func (p *Processor) Export(ctx context.Context, id uuid.UUID, style, format string) (*domain.Artifact, error) {
	st, err := p.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.Record.IsEmpty() {
		return nil, ErrNoData
	}

	a, err := p.render(ctx, st.Record, style, format)
	if err != nil {
		return nil, err
	}
	a.SessionID = &id
	if err := p.persist(ctx, st.Record.Name, a); err != nil {
		return nil, err
	}
	return a, nil
}

// RenderRecord renders a record that did not come from a session.
func (p *Processor) RenderRecord(ctx context.Context, rec *model.Record, style, format string) (*domain.Artifact, error) {
	if rec.IsEmpty() {
		return nil, ErrNoData
	}
	if err := model.ValidateRecord(rec); err != nil {
		return nil, err
	}

	a, err := p.render(ctx, rec, style, format)
	if err != nil {
		return nil, err
	}
	if err := p.persist(ctx, rec.Name, a); err != nil {
		return nil, err
	}
	return a, nil
}

// render produces the artifact bytes. A format equal to the style's own
// extension (or empty) uses the style directly; "pdf" on an HTML style goes
// through the browser.
func (p *Processor) render(ctx context.Context, rec *model.Record, style, format string) (*domain.Artifact, error) {
	if style == "" {
		style = render.DefaultStyle
	}
	r, ok := render.Lookup(style)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownStyle, "%q", style)
	}

	a := &domain.Artifact{
		ID:          uuid.New(),
		Style:       r.Name(),
		Format:      r.Extension(),
		ContentType: r.ContentType(),
		CreatedAt:   p.now(),
	}

	body, err := r.Render(rec)
	if err != nil {
		log.Error().Err(err).Str("style", style).Msg("render failed")
		return nil, errors.Wrapf(ErrRenderFailed, "%s: %v", style, err)
	}

	switch {
	case format == "" || format == r.Extension():
	case format == "pdf" && render.IsHTML(r):
		if p.pdf == nil {
			return nil, errors.Wrap(ErrUnknownFormat, "pdf printing is not configured")
		}
		body, err = p.printPDF(ctx, body)
		if err != nil {
			log.Error().Err(err).Str("style", style).Msg("pdf print failed")
			return nil, errors.Wrapf(ErrRenderFailed, "%s as pdf: %v", style, err)
		}
		a.Format, a.ContentType = "pdf", "application/pdf"
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q for style %s", format, style)
	}

	a.Content = body
	a.Size = len(body)
	return a, nil
}

// printPDF retries the browser print with exponential backoff and rejects
// output that is not a PDF.
func (p *Processor) printPDF(ctx context.Context, html []byte) ([]byte, error) {
	var lastErr error
	for i := 0; i < p.pdfAttempts; i++ {
		out, err := p.pdf.RenderHTMLToPDF(ctx, string(html))
		if err == nil {
			if bytes.HasPrefix(out, []byte("%PDF")) {
				return out, nil
			}
			err = errors.Errorf("invalid PDF output (len=%d)", len(out))
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", i+1).Msg("pdf render attempt failed")

		if i < p.pdfAttempts-1 {
			backoff := time.Duration(1<<i) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// persist names the artifact, writes it to the output directory and records
// its metadata. A metadata failure is logged and does not fail the export.
func (p *Processor) persist(ctx context.Context, name string, a *domain.Artifact) error {
	a.FileName = ArtifactName(name, a.Format, a.CreatedAt)

	if p.outputDir != "" {
		if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
			return errors.Wrap(err, "create output dir")
		}
		a.FilePath = filepath.Join(p.outputDir, a.FileName)
		if err := os.WriteFile(a.FilePath, a.Content, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", a.FilePath)
		}
	}

	if p.artifacts != nil {
		if err := p.artifacts.Save(ctx, a); err != nil {
			log.Warn().Err(err).Str("file", a.FileName).Msg("unable to record artifact (non-fatal)")
		}
	}

	log.Info().Str("file", a.FileName).Str("style", a.Style).Str("format", a.Format).Int("size", a.Size).Msg("resume generated")
	return nil
}

// ArtifactName builds <name>_Resume_<timestamp>_<suffix>.<ext>. Whitespace
// in name becomes "_" and anything outside [A-Za-z0-9_-] is dropped. The
// random suffix keeps names unique within the same second.
func ArtifactName(name, ext string, t time.Time) string {
	var b strings.Builder
	for _, r := range strings.Join(strings.Fields(name), "_") {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	base := strings.Trim(b.String(), "_-")
	if base == "" {
		base = "resume"
	}
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return base + "_Resume_" + t.Format("20060102150405") + "_" + suffix + "." + ext
}
