package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"resume-chatbot/internal/adapter/repository"
	"resume-chatbot/internal/config"
	"resume-chatbot/internal/render"
	"resume-chatbot/internal/usecase"
	"resume-chatbot/pkg/ai"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// defaultAnswers walks every branch once: one education entry, one skill,
// one certification and one project.
var defaultAnswers = []string{
	"Alice", "alice@example.com",
	"BSc Computer Science", "MIT", "2024", "no",
	"Python", "Django, Flask", "no",
	"yes", "AWS Cloud Practitioner", "ABC-123", "https://www.credly.com/badges/abc", "no",
	"MyApp", "A tool that builds résumés from a chat", "Go, Redis", "no",
}

// fakeSuggestions is what the local stand-in for the ai-service returns.
const fakeSuggestions = "Django, Flask, FastAPI, Pandas, NumPy, Pytest, Asyncio, SQLAlchemy, Celery, Typing"

type simulateOptions struct {
	answers string
	out     string
	prompts string
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a scripted conversation and write every style",
		Long: `Drive the questionnaire with scripted answers against a local fake
suggestion service, then export the finished record in every style.

Answers are read one per line from --answers, or a built-in script is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimulate(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.answers, "answers", "", "File with one answer per line")
	cmd.Flags().StringVar(&opts.out, "out", "resume-data/simulated", "Output directory")
	cmd.Flags().StringVar(&opts.prompts, "prompts", "", "Prompts YAML file (default is the built-in wording)")
	return cmd
}

func newFakeAIService() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"agent": "auto", "output": fakeSuggestions})
	}))
}

func readAnswers(path string) ([]string, error) {
	if path == "" {
		return defaultAnswers, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, errors.Wrapf(sc.Err(), "read %s", path)
}

func runSimulate(cmd *cobra.Command, opts simulateOptions) error {
	ctx := cmd.Context()
	stdout := cmd.OutOrStdout()

	answers, err := readAnswers(opts.answers)
	if err != nil {
		return err
	}
	prompts, err := config.LoadPrompts(opts.prompts)
	if err != nil {
		return err
	}

	aiServer := newFakeAIService()
	defer aiServer.Close()
	client := ai.NewClient(ai.Options{BaseURL: aiServer.URL})

	p := usecase.NewProcessor(usecase.Deps{
		Conversation: usecase.NewConversation(prompts, client),
		Sessions:     repository.NewMemorySessionStore(0),
		OutputDir:    opts.out,
	})

	st, reply, err := p.Start(ctx)
	if err != nil {
		return err
	}
	for _, answer := range answers {
		fmt.Fprintf(stdout, "BOT: %s\nYOU: %s\n", reply.Prompt, answer)
		reply, err = p.Chat(ctx, st.ID, answer)
		if err != nil {
			return errors.Wrapf(err, "answer %q", answer)
		}
		if len(reply.Suggestions) > 0 {
			fmt.Fprintf(stdout, "     suggestions: %s\n", strings.Join(reply.Suggestions, ", "))
		}
	}
	fmt.Fprintf(stdout, "BOT: %s\n", reply.Prompt)
	if !reply.Done {
		return errors.Errorf("conversation stopped at step %s", reply.Step)
	}

	for _, style := range render.Names() {
		a, err := p.Export(ctx, st.ID, style, "")
		if err != nil {
			return errors.Wrapf(err, "export %s", style)
		}
		fmt.Fprintf(stdout, "%-8s %s\n", style, a.FilePath)
	}
	return nil
}
