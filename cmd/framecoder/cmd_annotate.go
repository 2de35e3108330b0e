package main

import (
	"context"
	"fmt"
	"strings"

	"framecoder/internal/config"
	"framecoder/internal/providers"
	"framecoder/internal/questions"
	"framecoder/internal/run"
	"framecoder/internal/storage"

	"github.com/spf13/cobra"
)

func newAnnotateCommand() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Annotate every input record with the yes/no questionnaire",
		Long: `Annotate reads a JSON-Lines corpus, sends each article to the selected
provider with the coding questionnaire, and appends one result row per
record to the output file. Failed records are written too, with an all-zero
answer set and the last error; nothing is silently dropped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd.Context(), &cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.InPath, "in", "", "input JSONL path")
	f.StringVar(&cfg.OutPath, "out", "", "output JSONL path")
	f.StringVar(&cfg.Provider, "provider", "", "provider: "+strings.Join(providers.Names(), ", "))
	f.StringVar(&cfg.Model, "model", "", "model ID (provider-specific)")
	f.StringVar(&cfg.IDField, "id-field", cfg.IDField, "field name for article id")
	f.StringVar(&cfg.TextField, "text-field", cfg.TextField, "field name for article text")
	f.StringVar(&cfg.AlsoStore, "also-store", cfg.AlsoStore, "extra field to copy to output; use '' to disable")
	f.IntVar(&cfg.MaxOutputTokens, "max-output-tokens", cfg.MaxOutputTokens, "maximum output tokens per call")
	f.Float64Var(&cfg.Temperature, "temperature", cfg.Temperature, "sampling temperature")
	f.Float64Var(&cfg.SleepSeconds, "sleep", cfg.SleepSeconds, "seconds to sleep between records")
	f.IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "attempts per record before writing a failed row")
	f.BoolVar(&cfg.Resume, "resume", false, "skip ids already present in --out")
	f.StringVar(&cfg.SkipIDs, "skip-ids", "", "comma-separated ids to skip, e.g. art_000240,art_000241")
	f.StringVar(&cfg.OnlyIDs, "only-ids", "", "comma-separated ids to process exclusively")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "print extracted ids + text preview and exit (no API calls)")
	f.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "character chunk size for oversized articles (0 disables chunking)")
	f.StringVar(&cfg.QuestionsPath, "questions", "", "YAML file overriding the built-in question set")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}

func runAnnotate(ctx context.Context, cfg *config.Config) error {
	if !cfg.DryRun && cfg.Model == "" {
		return config.Errorf("--model is required unless --dry-run is set")
	}

	qs, err := loadQuestions(cfg.QuestionsPath)
	if err != nil {
		return err
	}

	d := run.New(cfg, nil, qs)
	if !cfg.DryRun {
		annotator, err := buildAnnotator(cfg, qs)
		if err != nil {
			return err
		}
		d.Annotator = annotator

		if cfg.AuditPostgresURL != "" {
			db, err := storage.NewDB(ctx, cfg.AuditPostgresURL)
			if err != nil {
				return err
			}
			defer db.Close()
			d.Audit = storage.NewAuditRepo(db)
		}
	}

	wrote, err := d.Run(ctx)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		fmt.Println("Dry-run complete (no API calls made).")
	} else {
		fmt.Printf("Done. Wrote %d rows to %s.\n", wrote, cfg.OutPath)
	}
	return nil
}

func buildAnnotator(cfg *config.Config, qs []questions.Question) (providers.ArticleAnnotator, error) {
	inner, err := providers.New(cfg.Provider, questions.Codes(qs))
	if err != nil {
		return nil, err
	}
	if cfg.ChunkSize > 0 {
		return providers.NewChunked(inner, qs, cfg.ChunkSize), nil
	}
	return providers.NewPrompted(inner, qs), nil
}

func loadQuestions(path string) ([]questions.Question, error) {
	if path == "" {
		return questions.Default(), nil
	}
	return questions.LoadYAML(path)
}
