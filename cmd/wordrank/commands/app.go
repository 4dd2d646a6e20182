package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/viant/wordrank/archive"
	"github.com/viant/wordrank/config"
	"github.com/viant/wordrank/embedding"
	"github.com/viant/wordrank/engine"
	"github.com/viant/wordrank/schedule"
	"github.com/viant/wordrank/vector"
	"github.com/viant/wordrank/wordlist"
)

func (a *app) vocabularyWords() ([]string, error) {
	return wordlist.Load(a.cfg.Vocabulary)
}

func (a *app) loadSchedule() (*schedule.Schedule, error) {
	words, err := wordlist.Load(a.cfg.DailyWords)
	if err != nil {
		return nil, err
	}
	base, err := a.cfg.Base()
	if err != nil {
		return nil, err
	}
	return schedule.New(words, base), nil
}

// isVectorCache reports whether path names a SQLite vector cache rather than
// a text vector file.
func isVectorCache(path string) bool {
	if strings.HasPrefix(path, "sqlite:") {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// source opens the configured vector source. The returned close function is
// never nil.
func (a *app) source(ctx context.Context) (embedding.Source, func() error, error) {
	if !isVectorCache(a.cfg.Vectors) {
		return embedding.NewTextSource(a.cfg.Vectors, a.logger), func() error { return nil }, nil
	}
	db, err := engine.Open(a.cfg.Vectors)
	if err != nil {
		return nil, nil, err
	}
	store, err := vector.NewSQLiteStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	a.logger.Info("using vector cache", "dsn", a.cfg.Vectors)
	return store, db.Close, nil
}

func (a *app) resources(ctx context.Context, vocabulary, extra []string) (*embedding.Resources, error) {
	src, closeSource, err := a.source(ctx)
	if err != nil {
		return nil, err
	}
	defer closeSource()
	return embedding.LoadResources(ctx, src, vocabulary, extra, a.logger)
}

func (a *app) openStore(ctx context.Context, sched *schedule.Schedule) (archive.Store, error) {
	sc := a.cfg.Store
	switch sc.Kind {
	case config.StoreSQLite:
		db, err := engine.Open(sc.DSN)
		if err != nil {
			return nil, err
		}
		store, err := archive.NewSQLiteStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return store, nil
	case config.StoreBadger:
		return archive.NewBadgerStore(archive.BadgerOptions{Dir: sc.Dir, Logger: a.logger})
	case config.StoreDir:
		return archive.NewDirStore(sc.Dir, sched)
	}
	return nil, fmt.Errorf("unknown store kind %q", sc.Kind)
}

// parseDay parses a YYYY-MM-DD flag value; empty means today.
func parseDay(value string) (time.Time, error) {
	if value == "" {
		return schedule.Day(time.Now()), nil
	}
	return schedule.ParseDate(value)
}
