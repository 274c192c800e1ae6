package http

import (
	"time"

	"resume-chatbot/internal/domain"
	"resume-chatbot/internal/model"
	"resume-chatbot/internal/render"
	"resume-chatbot/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "resume_session"
)

var validate = validator.New()

type Options struct {
	CookieSecure bool
	SessionTTL   time.Duration
}

type Handler struct {
	processor *usecase.Processor
	opts      Options
}

func NewHandler(p *usecase.Processor, opts Options) *Handler {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &Handler{processor: p, opts: opts}
}

// NewApp builds the fiber app with access logging, panic recovery and every
// route registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "resume-chatbot",
		DisableStartupMessage: true,
		BodyLimit:             1 << 20,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	h.Register(app)
	return app
}

func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.Health)

	api := app.Group("/api")
	api.Post("/session", h.StartSession)
	api.Get("/session", h.GetSession)
	api.Post("/session/reset", h.ResetSession)
	api.Patch("/session/profile", h.UpdateProfile)
	api.Post("/session/summary", h.SuggestSummary)
	api.Post("/chat", h.Chat)
	api.Get("/export", h.Export)
	api.Post("/render", h.Render)
	api.Get("/styles", h.Styles)
}

type chatReq struct {
	Message string `json:"message" validate:"max=4000"`
}

type renderQuery struct {
	Style  string `query:"style" validate:"omitempty,max=32"`
	Format string `query:"format" validate:"omitempty,max=16"`
}

type sessionResp struct {
	SessionID string `json:"sessionId"`
	usecase.Reply
}

type stateResp struct {
	SessionID string        `json:"sessionId"`
	Question  string        `json:"question"`
	Step      domain.Step   `json:"step"`
	Done      bool          `json:"done"`
	Record    *model.Record `json:"record"`
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) Styles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"styles": render.Names(), "default": render.DefaultStyle})
}

func (h *Handler) StartSession(c *fiber.Ctx) error {
	st, reply, err := h.processor.Start(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    st.ID.String(),
		Path:     "/",
		MaxAge:   int(h.opts.SessionTTL.Seconds()),
		Secure:   h.opts.CookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(fiber.StatusCreated).JSON(sessionResp{SessionID: st.ID.String(), Reply: reply})
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	st, err := h.processor.State(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	q := h.processor.Question(st)
	return c.JSON(stateResp{
		SessionID: st.ID.String(),
		Question:  q.Prompt,
		Step:      st.Step,
		Done:      st.Done(),
		Record:    st.Record,
	})
}

func (h *Handler) ResetSession(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	reply, err := h.processor.Reset(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sessionResp{SessionID: id.String(), Reply: reply})
}

func (h *Handler) Chat(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req chatReq
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	reply, err := h.processor.Chat(c.UserContext(), id, req.Message)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(reply)
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req usecase.ProfileUpdate
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	rec, err := h.processor.UpdateProfile(c.UserContext(), id, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"record": rec})
}

func (h *Handler) SuggestSummary(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	summary, err := h.processor.SuggestSummary(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"professional_summary": summary})
}

func (h *Handler) Export(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return h.fail(c, err)
	}
	q, err := parseRenderQuery(c)
	if err != nil {
		return badRequest(c, err)
	}

	a, err := h.processor.Export(c.UserContext(), id, q.Style, q.Format)
	if err != nil {
		return h.fail(c, err)
	}
	return sendArtifact(c, a)
}

// Render validates a posted record and renders it without a session.
func (h *Handler) Render(c *fiber.Ctx) error {
	q, err := parseRenderQuery(c)
	if err != nil {
		return badRequest(c, err)
	}
	rec, err := model.ValidateJSON(c.Body())
	if err != nil {
		return h.fail(c, err)
	}

	a, err := h.processor.RenderRecord(c.UserContext(), rec, q.Style, q.Format)
	if err != nil {
		return h.fail(c, err)
	}
	return sendArtifact(c, a)
}

func sendArtifact(c *fiber.Ctx, a *domain.Artifact) error {
	c.Attachment(a.FileName)
	c.Set(fiber.HeaderContentType, a.ContentType)
	c.Set("X-Artifact-ID", a.ID.String())
	return c.Send(a.Content)
}

// sessionID reads the session from the X-Session-ID header or, failing
// that, the session cookie. Missing or malformed ids count as unknown
// sessions.
func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Get(SessionHeader)
	if raw == "" {
		raw = c.Cookies(SessionCookie)
	}
	if raw == "" {
		return uuid.Nil, domain.ErrSessionNotFound
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrapf(domain.ErrSessionNotFound, "malformed session id %q", raw)
	}
	return id, nil
}

var errInvalidPayload = errors.New("invalid payload")

// bind parses the JSON body into dst and validates it.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errInvalidPayload
	}
	return validate.Struct(dst)
}

func parseRenderQuery(c *fiber.Ctx) (renderQuery, error) {
	var q renderQuery
	if err := c.QueryParser(&q); err != nil {
		return q, errInvalidPayload
	}
	return q, validate.Struct(&q)
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func badRequest(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	details := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed", "details": details})
}

var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrSessionNotFound, fiber.StatusNotFound},
	{usecase.ErrNoData, fiber.StatusBadRequest},
	{usecase.ErrUnknownStyle, fiber.StatusBadRequest},
	{usecase.ErrUnknownFormat, fiber.StatusBadRequest},
	{model.ErrInvalidRecord, fiber.StatusBadRequest},
	{usecase.ErrSuggestionFailed, fiber.StatusBadGateway},
	{usecase.ErrSummaryFailed, fiber.StatusBadGateway},
	{usecase.ErrRenderFailed, fiber.StatusInternalServerError},
}

// fail writes the status and message for err. Upstream and render causes
// are logged, not returned to the client.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	for _, e := range errorStatus {
		if !errors.Is(err, e.err) {
			continue
		}
		msg := e.err.Error()
		if e.status == fiber.StatusBadRequest {
			msg = err.Error()
		}
		if e.status >= 500 {
			log.Error().Err(err).Str("path", c.Path()).Int("status", e.status).Msg("request failed")
		}
		return c.Status(e.status).JSON(fiber.Map{"error": msg})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
