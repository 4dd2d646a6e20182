package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/wordrank/embedding"
	"github.com/viant/wordrank/rank"
	"github.com/viant/wordrank/schedule"
	"github.com/viant/wordrank/vector"
)

func testResources(t *testing.T, daily ...string) *embedding.Resources {
	t.Helper()
	res, err := embedding.NewResources(map[string]vector.Vector{
		"сонце":  {1, 0, 0},
		"вода":   {0, 1, 0},
		"небо":   {0.8, 0.2, 0.1},
		"зірка":  {0.9, 0.1, 0.3},
		"річка":  {0.1, 0.9, 0.2},
		"дощ":    {0.2, 0.7, 0.6},
		"порожн": {0, 0, 0},
	}, []string{"сонце", "вода", "небо", "зірка", "річка", "дощ"}, daily)
	require.NoError(t, err)
	return res
}

var fixedNow = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	gen := &Generator{Store: store, Schedule: testSchedule, Resources: testResources(t), Now: fixedNow}

	from, to := schedule.Date(2025, time.June, 2), schedule.Date(2025, time.June, 5)
	summary, err := gen.Generate(ctx, from, to)
	require.NoError(t, err)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 4, summary.Generated)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)

	rec, err := store.Get(ctx, from)
	require.NoError(t, err)
	assert.Equal(t, "сонце", rec.SecretWord)
	want, err := rank.Rank("сонце", gen.Resources)
	require.NoError(t, err)
	assert.Equal(t, want, rec.Ranking)
	assert.Equal(t, "сонце", rec.Ranking[0].Word)
	assert.Equal(t, 1, rec.Ranking[0].Rank)

	// the schedule wraps after three words
	rec, err = store.Get(ctx, schedule.Date(2025, time.June, 5))
	require.NoError(t, err)
	assert.Equal(t, "сонце", rec.SecretWord)

	rec, err = store.Get(ctx, schedule.Date(2025, time.June, 3))
	require.NoError(t, err)
	assert.Equal(t, "вода", rec.SecretWord)
	assert.Equal(t, "вода", rec.Ranking[0].Word)
}

func TestGenerator_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	gen := &Generator{Store: store, Schedule: testSchedule, Resources: testResources(t), Now: fixedNow}
	from, to := schedule.Date(2025, time.June, 2), schedule.Date(2025, time.June, 4)

	_, err := gen.Generate(ctx, from, to)
	require.NoError(t, err)
	first, err := store.Get(ctx, from)
	require.NoError(t, err)

	summary, err := gen.Generate(ctx, from, to.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Skipped)
	assert.Equal(t, 1, summary.Generated)

	again, err := store.Get(ctx, from)
	require.NoError(t, err)
	assert.Equal(t, first.Ranking, again.Ranking)
	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestGenerator_FailuresDoNotAbort(t *testing.T) {
	ctx := context.Background()
	store := newBadgerStore(t)
	sched := schedule.New([]string{"сонце", "туман", "порожн", "вода"}, schedule.Date(2025, time.June, 2))
	gen := &Generator{Store: store, Schedule: sched, Resources: testResources(t, sched.Words...), Now: fixedNow}

	summary, err := gen.Generate(ctx, schedule.Date(2025, time.June, 1), schedule.Date(2025, time.June, 5))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Generated)
	assert.Equal(t, 3, summary.Failed)
	assert.Equal(t, []time.Time{
		schedule.Date(2025, time.June, 1),
		schedule.Date(2025, time.June, 3),
		schedule.Date(2025, time.June, 4),
	}, summary.FailedDates)

	dates, err := store.Dates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{schedule.Date(2025, time.June, 5), schedule.Date(2025, time.June, 2)}, dates)
}

func TestGenerator_WorkersMatchSequential(t *testing.T) {
	ctx := context.Background()
	res := testResources(t)
	from, to := schedule.Date(2025, time.June, 2), schedule.Date(2025, time.June, 12)

	sequential := newSQLiteStore(t)
	_, err := (&Generator{Store: sequential, Schedule: testSchedule, Resources: res, Now: fixedNow}).Generate(ctx, from, to)
	require.NoError(t, err)

	parallel := newDirStore(t)
	summary, err := (&Generator{Store: parallel, Schedule: testSchedule, Resources: res, Workers: 4, Now: fixedNow}).Generate(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 11, summary.Generated)

	for _, d := range schedule.Dates(from, to) {
		a, err := sequential.Get(ctx, d)
		require.NoError(t, err)
		b, err := parallel.Get(ctx, d)
		require.NoError(t, err)
		assert.Equal(t, a.SecretWord, b.SecretWord, d)
		assert.Equal(t, a.Ranking, b.Ranking, d)
	}
}

type failingWriter struct {
	existsErr error
	upsertErr error
	upserts   int
}

func (f *failingWriter) Exists(context.Context, time.Time) (bool, error) { return false, f.existsErr }

func (f *failingWriter) Upsert(context.Context, *Record) error {
	f.upserts++
	return f.upsertErr
}

func TestGenerator_StoreErrorsAbort(t *testing.T) {
	boom := errors.New("disk full")
	from, to := schedule.Date(2025, time.June, 2), schedule.Date(2025, time.June, 4)

	w := &failingWriter{upsertErr: boom}
	summary, err := (&Generator{Store: w, Schedule: testSchedule, Resources: testResources(t)}).Generate(context.Background(), from, to)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, w.upserts)
	assert.Equal(t, 0, summary.Generated)

	w = &failingWriter{existsErr: boom}
	_, err = (&Generator{Store: w, Schedule: testSchedule, Resources: testResources(t)}).Generate(context.Background(), from, to)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, w.upserts)
}

func TestGenerator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := &Generator{Store: newSQLiteStore(t), Schedule: testSchedule, Resources: testResources(t)}
	_, err := gen.Generate(ctx, schedule.Date(2025, time.June, 2), schedule.Date(2025, time.June, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerator_Incomplete(t *testing.T) {
	_, err := (&Generator{}).Generate(context.Background(), time.Now(), time.Now())
	assert.Error(t, err)
}
