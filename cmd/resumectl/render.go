package main

import (
	"fmt"
	"os"
	"strings"

	"resume-chatbot/internal/model"
	"resume-chatbot/internal/render"
	"resume-chatbot/internal/usecase"
	infra "resume-chatbot/pkg/infrastructure"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	in     string
	style  string
	format string
	out    string
	chrome string
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Validate a record JSON file and render it",
		Long: `Validate a record against the record schema and render it.

Example:
  resumectl render --in record.json --style modern --out out/
  resumectl render --in record.json --style classic --format pdf --out out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.in, "in", "", "Record JSON file")
	cmd.Flags().StringVar(&opts.style, "style", render.DefaultStyle, "Style: "+strings.Join(render.Names(), ", "))
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format (default is the style's own; pdf prints HTML styles through Chrome)")
	cmd.Flags().StringVar(&opts.out, "out", ".", "Output directory")
	cmd.Flags().StringVar(&opts.chrome, "chrome", "", "Chrome executable for HTML to PDF printing")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	raw, err := os.ReadFile(opts.in)
	if err != nil {
		return errors.Wrapf(err, "read %s", opts.in)
	}
	rec, err := model.ValidateJSON(raw)
	if err != nil {
		return err
	}

	deps := usecase.Deps{OutputDir: opts.out}
	if opts.format == "pdf" {
		deps.PDF = infra.NewChromedpRenderer(opts.chrome)
	}
	p := usecase.NewProcessor(deps)

	a, err := p.RenderRecord(cmd.Context(), rec, opts.style, opts.format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.FilePath)
	return nil
}
