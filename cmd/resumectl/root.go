package main

import (
	infra "resume-chatbot/pkg/infrastructure"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "resumectl",
		Short: "Render résumé records and replay the chat questionnaire",
		Long: `resumectl works with the résumé chatbot offline.

It renders a record JSON file in any style, or plays a scripted conversation
end to end and writes the result in every style.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			infra.SetupLogger(level, "console")
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(newRenderCmd(), newSimulateCmd())
	return root
}
