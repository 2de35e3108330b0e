// Package run drives one batch annotation pass: iterate input records,
// apply skip/only/resume filters, call the provider with bounded retries,
// and append exactly one output row per processed record.
package run

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"framecoder/internal/answers"
	"framecoder/internal/config"
	"framecoder/internal/providers"
	"framecoder/internal/questions"
	"framecoder/internal/record"
	"framecoder/internal/storage"

	"github.com/google/uuid"
)

type Driver struct {
	Cfg       *config.Config
	Annotator providers.ArticleAnnotator
	Questions []questions.Question
	Retry     RetryPolicy

	// Audit is optional; nil disables the per-attempt trail.
	Audit *storage.AuditRepo

	// Stdout receives dry-run previews; Sleep paces requests. Both are
	// injectable so tests run instantly.
	Stdout io.Writer
	Sleep  func(time.Duration)
}

func New(cfg *config.Config, a providers.ArticleAnnotator, qs []questions.Question) *Driver {
	return &Driver{
		Cfg:       cfg,
		Annotator: a,
		Questions: qs,
		Retry:     NewRetryPolicy(cfg.MaxRetries),
		Stdout:    os.Stdout,
		Sleep:     time.Sleep,
	}
}

// Run processes the whole input file sequentially and returns how many
// output rows were written. Configuration errors (missing id, malformed
// input line) abort the run; everything else degrades to a FAILED row.
func (d *Driver) Run(ctx context.Context) (int, error) {
	cfg := d.Cfg
	codes := questions.Codes(d.Questions)
	skipIDs := ParseIDList(cfg.SkipIDs)
	onlyIDs := ParseIDList(cfg.OnlyIDs)

	doneIDs := map[string]struct{}{}
	if cfg.Resume {
		var err error
		doneIDs, err = record.LoadDoneIDs(cfg.OutPath)
		if err != nil {
			return 0, err
		}
	}

	sc, err := record.OpenInput(cfg.InPath)
	if err != nil {
		return 0, err
	}
	defer sc.Close()

	// The output file is only created once there is something to write,
	// so dry runs and fully-skipped runs leave no empty file behind.
	var out *record.Appender
	defer func() {
		if out != nil {
			_ = out.Close()
		}
	}()

	runID := uuid.NewString()
	wrote := 0
	for {
		if err := ctx.Err(); err != nil {
			return wrote, err
		}
		row, ok, err := sc.Next()
		if err != nil {
			return wrote, err
		}
		if !ok {
			break
		}

		id := strings.TrimSpace(fieldString(row[cfg.IDField]))
		if id == "" {
			// Output rows are keyed solely by id; an unkeyed result cannot
			// be safely attributed, so the whole run stops here.
			return wrote, config.Errorf("missing %q in an input row; cannot safely map outputs", cfg.IDField)
		}
		text := fieldString(row[cfg.TextField])

		if len(onlyIDs) > 0 {
			if _, ok := onlyIDs[id]; !ok {
				continue
			}
		}
		if _, ok := skipIDs[id]; ok {
			continue
		}
		if cfg.Resume {
			if _, ok := doneIDs[id]; ok {
				continue
			}
		}

		if cfg.DryRun {
			fmt.Fprintf(d.Stdout, "%s\t%s\n", id, preview(text))
			continue
		}

		set, just, lastErr := d.annotateWithRetries(ctx, runID, id, text)

		outRow := map[string]any{
			"custom_id":     id,
			"provider":      cfg.Provider,
			"model":         cfg.Model,
			"justification": just,
		}
		if lastErr != nil {
			log.Printf("record %s failed after %d attempts: %v", id, d.Retry.MaxAttempts, lastErr)
			outRow["answers"] = answers.AllZero(codes)
			outRow["justification"] = ""
			outRow["error"] = lastErr.Error()
		} else {
			outRow["answers"] = set
			outRow["error"] = nil
		}
		if cfg.AlsoStore != "" {
			extra := row[cfg.AlsoStore]
			if extra == nil {
				extra = ""
			}
			outRow[cfg.AlsoStore] = extra
		}

		if out == nil {
			out, err = record.OpenAppend(cfg.OutPath)
			if err != nil {
				return wrote, err
			}
		}
		if err := out.Append(outRow); err != nil {
			return wrote, err
		}
		wrote++

		if cfg.SleepSeconds > 0 {
			d.Sleep(time.Duration(cfg.SleepSeconds * float64(time.Second)))
		}
	}
	return wrote, nil
}

// annotateWithRetries runs the bounded retry loop for one article. Every
// failed attempt is recorded as the last error and followed by a backoff;
// after the budget is spent the caller writes a FAILED row rather than
// dropping the record.
func (d *Driver) annotateWithRetries(ctx context.Context, runID, id, text string) (answers.Set, string, error) {
	cfg := d.Cfg
	codes := questions.Codes(d.Questions)
	req := providers.Request{
		Model:           cfg.Model,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Temperature:     cfg.Temperature,
	}

	var lastErr error
	for attempt := 1; attempt <= d.Retry.MaxAttempts; attempt++ {
		raw, err := d.Annotator.AnnotateArticle(ctx, text, req)
		if err == nil {
			var v any
			v, err = answers.ParseStrict(raw)
			if err == nil {
				var set answers.Set
				var just string
				set, just, err = answers.Normalize(v, codes)
				if err == nil {
					d.audit(ctx, runID, id, attempt, "ok", nil)
					return set, just, nil
				}
			}
		}
		lastErr = err
		d.audit(ctx, runID, id, attempt, "error", err)
		d.Sleep(d.Retry.Backoff(attempt))
	}
	return nil, "", lastErr
}

func (d *Driver) audit(ctx context.Context, runID, id string, attempt int, status string, cause error) {
	if d.Audit == nil {
		return
	}
	rec := storage.CallRecord{
		CallID:    uuid.NewString(),
		RunID:     runID,
		CustomID:  id,
		Provider:  d.Cfg.Provider,
		Model:     d.Cfg.Model,
		Attempt:   attempt,
		Status:    status,
		ErrorType: providers.Classify(cause),
	}
	if err := d.Audit.Insert(ctx, rec); err != nil {
		// The audit trail is diagnostics; a database hiccup must not
		// fail the run.
		log.Printf("audit insert failed for %s: %v", id, err)
	}
}

// fieldString renders an arbitrary JSON field value the way it would appear
// as an identifier: strings pass through, numbers lose their float suffix,
// absent values become empty.
func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// preview returns the first 200 characters with newlines escaped, for
// dry-run output.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) > 200 {
		runes = runes[:200]
	}
	return strings.ReplaceAll(string(runes), "\n", "\\n")
}
