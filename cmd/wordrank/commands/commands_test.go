package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/wordrank/archive"
	"github.com/viant/wordrank/config"
	"github.com/viant/wordrank/engine"
	"github.com/viant/wordrank/rank"
	"github.com/viant/wordrank/schedule"
)

const testVectors = `сонце 1 0 0
вода 0 1 0
небо 0.8 0.2 0.1
зірка 0.9 0.1 0.3
річка 0.1 0.9 0.2
`

type fixture struct {
	dir   string
	flags []string
}

func newFixture(t *testing.T, daily string) *fixture {
	t.Helper()
	for _, name := range []string{"LOCAL_EMBEDDINGS_PATH", "DATABASE_URL", "WORDRANK_VECTORS", "WORDRANK_STORE", "WORDRANK_STORE_DSN", "WORDRANK_STORE_DIR"} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	files := map[string]string{
		"vectors.txt":     testVectors,
		"wordlist.txt":    "сонце\nвода\nнебо\nзірка\nрічка\n",
		"daily_words.txt": daily,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return &fixture{dir: dir, flags: []string{
		"--vectors", filepath.Join(dir, "vectors.txt"),
		"--vocabulary", filepath.Join(dir, "wordlist.txt"),
		"--daily-words", filepath.Join(dir, "daily_words.txt"),
		"--base-date", "2025-06-02",
		"--dsn", filepath.Join(dir, "instance", "games.db"),
		"--store-dir", filepath.Join(dir, "precomputed"),
	}}
}

func (f *fixture) path(name string) string { return filepath.Join(f.dir, name) }

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, f.flags...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRootCmd_Definition(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "wordrank", cmd.Use)
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"generate", "rank", "similarity", "word", "check", "import", "extract", "serve"}, names)

	pflags := cmd.PersistentFlags()
	require.NotNil(t, pflags.Lookup("config"))
	assert.Equal(t, "c", pflags.Lookup("config").Shorthand)
	assert.Equal(t, "text", pflags.Lookup("log-format").DefValue)
	assert.Equal(t, "v", pflags.Lookup("verbose").Shorthand)
}

func TestRootCmd_LocalFlagsKeepGlobalNames(t *testing.T) {
	cmd := NewRootCmd()
	for _, sub := range cmd.Commands() {
		sub.LocalNonPersistentFlags().VisitAll(func(fl *pflag.Flag) {
			assert.Nil(t, cmd.PersistentFlags().Lookup(fl.Name), "%s --%s shadows a global flag", sub.Name(), fl.Name)
		})
	}
}

func TestRootCmd_InvalidSettings(t *testing.T) {
	f := newFixture(t, "сонце\n")
	_, err := f.run(t, "word", "--store", "mongo")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = f.run(t, "word", "--log-format", "xml")
	assert.Error(t, err)
}

func TestGenerateCmd(t *testing.T) {
	f := newFixture(t, "сонце\nвода\nнебо\n")

	out, err := f.run(t, "generate", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "generated 3, skipped 0, failed 0")

	out, err = f.run(t, "generate", "--to", "2025-06-05")
	require.NoError(t, err)
	assert.Contains(t, out, "generated 1, skipped 3, failed 0")

	db, err := engine.Open(f.path("instance/games.db"))
	require.NoError(t, err)
	store, err := archive.NewSQLiteStore(context.Background(), db)
	require.NoError(t, err)
	defer store.Close()
	rec, err := store.Get(context.Background(), schedule.Date(2025, time.June, 3))
	require.NoError(t, err)
	assert.Equal(t, "вода", rec.SecretWord)
	assert.Equal(t, "вода", rec.Ranking[0].Word)
	assert.Len(t, rec.Ranking, 5)
}

func TestGenerateCmd_FailedDates(t *testing.T) {
	f := newFixture(t, "сонце\nтуман\n")
	out, err := f.run(t, "generate", "--store", "dir")
	require.NoError(t, err)
	assert.Contains(t, out, "generated 1, skipped 0, failed 1")
	assert.Contains(t, out, "failed: 2025-06-03")
	assert.FileExists(t, f.path("precomputed/2025-06-02.json"))
}

func TestRankCmd(t *testing.T) {
	f := newFixture(t, "сонце\nвода\nнебо\n")

	out, err := f.run(t, "rank", "сонце", "--top", "2")
	require.NoError(t, err)
	var entries []rank.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, rank.Entry{Word: "сонце", Similarity: 1, Rank: 1}, entries[0])
	assert.Equal(t, "небо", entries[1].Word)

	out, err = f.run(t, "rank", "--date", "2025-06-03")
	require.NoError(t, err)
	entries = nil
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 5)
	assert.Equal(t, "вода", entries[0].Word)

	_, err = f.run(t, "rank", "туман")
	assert.ErrorIs(t, err, rank.ErrUnknownTargetWord)

	_, err = f.run(t, "rank", "сонце", "--save")
	assert.ErrorIs(t, err, errSaveNeedsDate)

	out, err = f.run(t, "rank", "--date", "2025-06-04", "--save", "--store", "dir")
	require.NoError(t, err)
	assert.Contains(t, out, "stored 2025-06-04: небо (5 words)")
	assert.FileExists(t, f.path("precomputed/2025-06-04.json"))
}

func TestRankCmd_SaveKeepsArchiveConsistent(t *testing.T) {
	f := newFixture(t, "сонце\nвода\nнебо\n")
	day := schedule.Date(2025, time.June, 3)

	_, err := f.run(t, "rank", "--date", "2025-06-03", "--top", "2", "--save", "--store", "dir")
	assert.ErrorIs(t, err, errSaveTop)

	_, err = f.run(t, "rank", "річка", "--date", "2025-06-03", "--save", "--store", "dir")
	assert.ErrorIs(t, err, errSaveWord)

	_, err = f.run(t, "rank", "вода", "--date", "2025-06-01", "--save", "--store", "dir")
	assert.ErrorIs(t, err, schedule.ErrInvalidDate)
	assert.NoFileExists(t, f.path("precomputed/2025-06-03.json"))

	// the scheduled word may be named explicitly
	out, err := f.run(t, "rank", "вода", "--date", "2025-06-03", "--save", "--store", "dir")
	require.NoError(t, err)
	assert.Contains(t, out, "stored 2025-06-03: вода (5 words)")

	store, err := archive.NewDirStore(f.path("precomputed"), nil)
	require.NoError(t, err)
	rec, err := store.Get(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, rec.Ranking, 5)
	assert.Equal(t, "вода", rec.Ranking[0].Word)

	// printing an arbitrary word for a date stays allowed
	out, err = f.run(t, "rank", "річка", "--date", "2025-06-03", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"word": "річка"`)
}

func TestSimilarityCmd(t *testing.T) {
	f := newFixture(t, "сонце\n")
	out, err := f.run(t, "similarity", "сонце", "вода")
	require.NoError(t, err)
	assert.Contains(t, out, "cosine similarity: 0.000000")
	assert.Contains(t, out, "cosine distance:   1.000000")
	assert.Contains(t, out, "euclidean:         1.414214")

	_, err = f.run(t, "similarity", "сонце", "туман")
	assert.ErrorIs(t, err, rank.ErrUnknownTargetWord)
}

func TestWordCmd(t *testing.T) {
	f := newFixture(t, "сонце\nвода\nнебо\n")
	out, err := f.run(t, "word", "--date", "2025-06-05")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-05\t#4\tсонце\n", out)

	_, err = f.run(t, "word", "--date", "2025-06-01")
	assert.ErrorIs(t, err, schedule.ErrInvalidDate)
}

func TestCheckCmd(t *testing.T) {
	f := newFixture(t, "сонце\nвода\n")
	out, err := f.run(t, "check", "--with-vectors")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "ok\n"), out)

	f = newFixture(t, "сонце\nтуман\nСонце\n")
	out, err = f.run(t, "check")
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "duplicates (1): сонце")
	assert.Contains(t, out, "not in vocabulary (1): туман")

	out, err = f.run(t, "check", "--with-vectors")
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "without vectors (2): Сонце, туман")
}

func TestImportCmd(t *testing.T) {
	f := newFixture(t, "сонце\nвода\n")
	src := f.path("legacy")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "2025-06-02.json"), []byte(`[{"word":"сонце","similarity":1,"rank":1}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "broken.json"), []byte(`[`), 0o644))

	out, err := f.run(t, "import", "--dir", src, "--dry-run", "--store", "badger")
	require.NoError(t, err)
	assert.Contains(t, out, "files 2: would import 1 (added 0, replaced 0), skipped 0, errors 1")

	out, err = f.run(t, "import", "--dir", src, "--store", "badger")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 (added 1, replaced 0)")

	out, err = f.run(t, "import", "--dir", src, "--store", "badger", "--replace")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 (added 0, replaced 1)")
}

func TestExtractCmd(t *testing.T) {
	f := newFixture(t, "сонце\nвода\nнебо\n")
	cache := f.path("models/vectors.db")
	out, err := f.run(t, "extract", "--out", cache)
	require.NoError(t, err)
	assert.Contains(t, out, "stored 5 vectors")

	// rank from the cache instead of the text file
	f.flags = append(f.flags, "--vectors", cache)
	out, err = f.run(t, "rank", "вода", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"word": "вода"`)

	_, err = f.run(t, "extract", "--out", f.path("again.db"))
	assert.Error(t, err)
}

func TestIsVectorCache(t *testing.T) {
	assert.True(t, isVectorCache("models/vectors.db"))
	assert.True(t, isVectorCache("sqlite:///models/vectors"))
	assert.True(t, isVectorCache("cache.SQLITE"))
	assert.False(t, isVectorCache("models/glove.300d"))
	assert.False(t, isVectorCache("models/glove.300d.bz2"))
}
