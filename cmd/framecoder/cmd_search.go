package main

import (
	"fmt"
	"sort"

	"framecoder/internal/search"

	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	var (
		conceptsPath string
		jsonPath     string
		csvPath      string
	)

	cmd := &cobra.Command{
		Use:   "search <corpus.jsonl>",
		Short: "Scan titles and abstracts for concept keywords",
		Long: `Search matches each article's title and abstract against named concept
pattern lists (regexes, case-insensitive) from a YAML file and writes a JSON
summary plus a long-format CSV of concept,id hits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			concepts, err := search.LoadConcepts(conceptsPath)
			if err != nil {
				return err
			}
			summary, err := search.Run(args[0], concepts)
			if err != nil {
				return err
			}
			if err := search.WriteReports(summary, concepts, jsonPath, csvPath); err != nil {
				return err
			}

			fmt.Printf("Scanned %d articles.\n", summary.NumArticles)
			names := make([]string, 0, len(summary.Results))
			for name := range summary.Results {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s: %d\n", name, summary.Results[name].Count)
			}
			fmt.Printf("Wrote %s and %s.\n", jsonPath, csvPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&conceptsPath, "concepts", "", "YAML file of concept -> pattern list")
	cmd.Flags().StringVar(&jsonPath, "out-json", "out/keyword_hits.json", "JSON summary output path")
	cmd.Flags().StringVar(&csvPath, "out-csv", "out/keyword_hits.csv", "CSV output path")
	_ = cmd.MarkFlagRequired("concepts")
	return cmd
}
