package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "framecoder",
		Short: "Batch yes/no annotation of research articles with LLM providers",
		Long: `framecoder runs a fixed coding questionnaire over a JSON-Lines corpus of
articles, one provider call per article, and appends one result row per
record. Runs are resumable: interrupt at any point and re-run with --resume.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(newAnnotateCommand())
	cmd.AddCommand(newMergeCommand())
	cmd.AddCommand(newSearchCommand())
	cmd.AddCommand(newQuestionsCommand())
	return cmd
}
