package main

import (
	"fmt"

	"framecoder/internal/merge"

	"github.com/spf13/cobra"
)

func newMergeCommand() *cobra.Command {
	var (
		outPath       string
		labels        []string
		questionsPath string
	)

	cmd := &cobra.Command{
		Use:   "merge <results.jsonl>...",
		Short: "Merge annotation outputs into one comparison CSV",
		Long: `Merge joins outputs from different providers or models by custom_id into a
wide CSV: one row per question per article plus a justification row, one
column per input file. Articles missing from a file show N/A.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := loadQuestions(questionsPath)
			if err != nil {
				return err
			}
			if err := merge.Write(args, labels, qs, outPath); err != nil {
				return err
			}
			fmt.Printf("Done. Wrote comparison to %s.\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "comparison.csv", "output CSV path")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "column label per input file (can be repeated)")
	cmd.Flags().StringVar(&questionsPath, "questions", "", "YAML file overriding the built-in question set")
	return cmd
}
