package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-chatbot/internal/model"
	"resume-chatbot/pkg/ai/formatters"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// ProviderAIService speaks the internal ai-service chat protocol.
	ProviderAIService = "ai-service"
	// ProviderOpenAI speaks OpenAI-compatible chat completions (OpenAI, Groq, ...).
	ProviderOpenAI = "openai"
)

// ErrEmptyOutput is returned when the service answers 200 with no text.
var ErrEmptyOutput = errors.New("ai service returned empty output")

// Options configures a Client. Zero values fall back to the ai-service
// defaults.
type Options struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxAttempts int
}

// Client calls the text-generation service that suggests sub-skills and
// drafts summaries.
type Client struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	HTTP        *http.Client
	MaxAttempts int
}

func NewClient(opts Options) *Client {
	if opts.Provider == "" {
		opts.Provider = ProviderAIService
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "http://ai-service:8000"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &Client{
		Provider:    opts.Provider,
		BaseURL:     strings.TrimRight(opts.BaseURL, "/"),
		APIKey:      opts.APIKey,
		Model:       opts.Model,
		HTTP:        &http.Client{Timeout: opts.Timeout},
		MaxAttempts: opts.MaxAttempts,
	}
}

func (c *Client) NewSubSkillsFormatter() *formatters.SubSkillsFormatter {
	return formatters.NewSubSkillsFormatter(c)
}

func (c *Client) NewSummaryFormatter() *formatters.SummaryFormatter {
	return formatters.NewSummaryFormatter(c)
}

// Suggest returns skills related to skill.
func (c *Client) Suggest(ctx context.Context, skill string) ([]string, error) {
	return c.NewSubSkillsFormatter().Format(ctx, skill)
}

// Summarize drafts a professional summary for rec.
func (c *Client) Summarize(ctx context.Context, rec *model.Record) (string, error) {
	return c.NewSummaryFormatter().Format(ctx, rec)
}

// Complete sends one instruction/prompt pair and returns the generated text.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	switch c.Provider {
	case ProviderAIService:
		return c.completeAIService(ctx, system, prompt)
	case ProviderOpenAI:
		return c.completeOpenAI(ctx, system, prompt)
	default:
		return "", errors.Errorf("unknown ai provider %q", c.Provider)
	}
}

func (c *Client) completeAIService(ctx context.Context, system, prompt string) (string, error) {
	input := prompt
	if system != "" {
		input = system + "\n\n" + prompt
	}
	b, err := json.Marshal(map[string]string{"agent": "auto", "input": input})
	if err != nil {
		return "", errors.Wrap(err, "encode chat request")
	}

	respBytes, err := c.post(ctx, "/v1/chat", b)
	if err != nil {
		return "", err
	}

	var chatResp struct {
		Agent  string `json:"agent"`
		Output string `json:"output"`
	}
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", errors.Wrap(err, "decode chat response")
	}
	if strings.TrimSpace(chatResp.Output) == "" {
		return "", ErrEmptyOutput
	}
	return chatResp.Output, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) completeOpenAI(ctx context.Context, system, prompt string) (string, error) {
	msgs := make([]chatMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: system})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: prompt})

	b, err := json.Marshal(struct {
		Model       string        `json:"model"`
		Messages    []chatMessage `json:"messages"`
		Temperature float64       `json:"temperature"`
	}{Model: c.Model, Messages: msgs, Temperature: 0.3})
	if err != nil {
		return "", errors.Wrap(err, "encode completion request")
	}

	respBytes, err := c.post(ctx, "/chat/completions", b)
	if err != nil {
		return "", err
	}

	var completion struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &completion); err != nil {
		return "", errors.Wrap(err, "decode completion response")
	}
	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", ErrEmptyOutput
	}
	return completion.Choices[0].Message.Content, nil
}

// post sends body to path and returns the response body of a 200 reply.
// Transport errors and 5xx replies are retried with exponential backoff up
// to MaxAttempts.
func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	var lastErr error
	for i := 0; i < c.MaxAttempts; i++ {
		respBytes, retry, err := c.postOnce(ctx, path, body)
		if err == nil {
			return respBytes, nil
		}
		lastErr = err
		if !retry {
			break
		}
		log.Warn().Err(err).Str("path", path).Int("attempt", i+1).Msg("ai request failed")

		if i < c.MaxAttempts-1 {
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

func (c *Client) postOnce(ctx context.Context, path string, body []byte) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, false, errors.Wrap(err, "build ai request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, errors.Wrapf(err, "POST %s", path)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, errors.Wrap(err, "read ai response")
	}
	log.Debug().Str("provider", c.Provider).Str("path", path).Int("status", resp.StatusCode).Int("bytes", len(respBytes)).Msg("ai response")

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= 500, errors.Errorf("ai service returned status %d", resp.StatusCode)
	}
	return respBytes, false, nil
}
