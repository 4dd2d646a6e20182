package archive

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/viant/wordrank/schedule"
)

// ImportOptions configures Import.
type ImportOptions struct {
	// Dir holds the *.json ranking files.
	Dir string
	// Schedule supplies the secret word of files that do not carry one.
	Schedule *schedule.Schedule
	// DryRun only counts what would be written.
	DryRun bool
	// Replace overwrites dates the store already holds.
	Replace bool
	Logger  *slog.Logger
	Now     func() time.Time
}

// ImportSummary reports the outcome of Import.
type ImportSummary struct {
	Files    int
	Planned  int
	Added    int
	Replaced int
	Skipped  int
	Errors   int
}

// Import migrates ranking files into store. A file's date comes from its
// "game_date" field or, failing that, from a YYYY-MM-DD in its name; its
// secret word from a "secret_word" field or the schedule. Unreadable files
// and files without a usable date or word are counted and skipped.
func Import(ctx context.Context, store Writer, opts ImportOptions) (*ImportSummary, error) {
	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("archive: import dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("archive: import dir %s is not a directory", opts.Dir)
	}
	files, err := filepath.Glob(filepath.Join(opts.Dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	summary := &ImportSummary{Files: len(files)}
	logger.Info("import started", "dir", opts.Dir, "files", len(files), "dry_run", opts.DryRun, "replace", opts.Replace)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		name := filepath.Base(path)
		data, err := os.ReadFile(path)
		if err != nil {
			summary.Errors++
			logger.Error("import read failed", "file", name, "error", err)
			continue
		}
		doc, err := decodeDocument(data)
		if err != nil {
			summary.Errors++
			logger.Error("import decode failed", "file", name, "error", err)
			continue
		}
		fallback, _ := dateFromName(path)
		rec, err := doc.record(fallback)
		if err != nil || rec.GameDate.IsZero() {
			summary.Skipped++
			logger.Warn("import skipped, no game date", "file", name)
			continue
		}
		day := schedule.FormatDate(rec.GameDate)

		exists, err := store.Exists(ctx, rec.GameDate)
		if err != nil {
			return summary, fmt.Errorf("archive: check %s: %w", day, err)
		}
		if exists && !opts.Replace {
			summary.Skipped++
			continue
		}
		if rec.SecretWord == "" {
			if opts.Schedule == nil {
				summary.Errors++
				logger.Error("import failed, no secret word", "file", name, "date", day)
				continue
			}
			if rec.SecretWord, err = opts.Schedule.WordFor(rec.GameDate); err != nil {
				summary.Errors++
				logger.Error("import failed, no secret word", "file", name, "date", day, "error", err)
				continue
			}
		}

		summary.Planned++
		if opts.DryRun {
			continue
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now()
		}
		if err := store.Upsert(ctx, rec); err != nil {
			return summary, fmt.Errorf("archive: import %s: %w", day, err)
		}
		if exists {
			summary.Replaced++
		} else {
			summary.Added++
		}
	}
	logger.Info("import finished", "planned", summary.Planned, "added", summary.Added, "replaced", summary.Replaced,
		"skipped", summary.Skipped, "errors", summary.Errors)
	return summary, nil
}
