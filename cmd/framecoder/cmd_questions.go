package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newQuestionsCommand() *cobra.Command {
	var questionsPath string

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the active question set",
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := loadQuestions(questionsPath)
			if err != nil {
				return err
			}
			for _, q := range qs {
				fmt.Printf("%s: %s\n", q.Code, q.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&questionsPath, "questions", "", "YAML file overriding the built-in question set")
	return cmd
}
