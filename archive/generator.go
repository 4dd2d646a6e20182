package archive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viant/wordrank/embedding"
	"github.com/viant/wordrank/rank"
	"github.com/viant/wordrank/schedule"
)

// Generator produces one archive record per date of a range. Resources are
// built once by the caller and shared by every ranking of the run.
type Generator struct {
	Store     Writer
	Schedule  *schedule.Schedule
	Resources *embedding.Resources
	// Workers bounds how many dates are ranked concurrently; values below 2
	// rank sequentially. Records are always written in date order.
	Workers int
	Logger  *slog.Logger
	// Now stamps CreatedAt; nil means time.Now.
	Now func() time.Time
}

// Summary reports the outcome of one Generate run.
type Summary struct {
	RunID       string
	Generated   int
	Skipped     int
	Failed      int
	FailedDates []time.Time
}

type pendingDate struct {
	date time.Time
	word string
}

// Generate ranks and stores every date in [from, to] that the store does not
// hold yet. A date whose word cannot be scheduled or ranked is logged and
// counted as failed without stopping the run; store errors abort it.
func (g *Generator) Generate(ctx context.Context, from, to time.Time) (*Summary, error) {
	if g.Store == nil || g.Schedule == nil || g.Resources == nil {
		return nil, fmt.Errorf("archive: generator requires Store, Schedule and Resources")
	}
	summary := &Summary{RunID: uuid.NewString()}
	logger := g.logger().With("run", summary.RunID)
	dates := schedule.Dates(from, to)
	logger.Info("archive generation started", "from", schedule.FormatDate(from), "to", schedule.FormatDate(to), "dates", len(dates))

	batch := make([]pendingDate, 0, g.batchSize())
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		day := schedule.FormatDate(date)
		word, err := g.Schedule.WordFor(date)
		if err != nil {
			g.fail(summary, logger, date, "", err)
			continue
		}
		exists, err := g.Store.Exists(ctx, date)
		if err != nil {
			return summary, fmt.Errorf("archive: check %s: %w", day, err)
		}
		if exists {
			summary.Skipped++
			logger.Debug("archive date skipped, already generated", "date", day, "word", word)
			continue
		}
		batch = append(batch, pendingDate{date: date, word: word})
		if len(batch) == cap(batch) {
			if err := g.flush(ctx, batch, summary, logger); err != nil {
				return summary, err
			}
			batch = batch[:0]
		}
	}
	if err := g.flush(ctx, batch, summary, logger); err != nil {
		return summary, err
	}
	logger.Info("archive generation finished", "generated", summary.Generated, "skipped", summary.Skipped, "failed", summary.Failed)
	return summary, nil
}

// flush ranks a batch of dates, concurrently when Workers allows, and stores
// the results in date order.
func (g *Generator) flush(ctx context.Context, batch []pendingDate, summary *Summary, logger *slog.Logger) error {
	if len(batch) == 0 {
		return nil
	}
	targets := make([]string, len(batch))
	for i, p := range batch {
		targets[i] = p.word
	}
	results, err := rank.RankAll(ctx, g.Resources, targets, g.batchSize())
	if err != nil {
		return err
	}
	for i, p := range batch {
		if results[i].Err != nil {
			g.fail(summary, logger, p.date, p.word, results[i].Err)
			continue
		}
		rec := &Record{GameDate: p.date, SecretWord: p.word, Ranking: results[i].Entries, CreatedAt: g.now()}
		if err := g.Store.Upsert(ctx, rec); err != nil {
			return fmt.Errorf("archive: store %s: %w", schedule.FormatDate(p.date), err)
		}
		summary.Generated++
		logger.Info("archive date generated", "date", schedule.FormatDate(p.date), "word", p.word, "words", len(rec.Ranking))
	}
	return nil
}

func (g *Generator) fail(summary *Summary, logger *slog.Logger, date time.Time, word string, err error) {
	summary.Failed++
	summary.FailedDates = append(summary.FailedDates, date)
	logger.Error("archive date failed", "date", schedule.FormatDate(date), "word", word, "error", err)
}

func (g *Generator) batchSize() int {
	if g.Workers < 1 {
		return 1
	}
	return g.Workers
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}
