package rank

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/viant/wordrank/embedding"
)

// Result is the outcome of ranking one target in RankAll.
type Result struct {
	Target  string
	Entries []Entry
	Err     error
}

// RankAll ranks several targets against the same resources using up to
// workers goroutines (GOMAXPROCS when workers <= 0). Results follow targets
// order; a failing target only sets its own Result.Err. The returned error is
// non-nil only when ctx is done before every target was ranked.
func RankAll(ctx context.Context, res *embedding.Resources, targets []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, target := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries, err := Rank(target, res)
			results[i] = Result{Target: target, Entries: entries, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
