package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/viant/wordrank/schedule"
)

const badgerPrefix = "archive/"

// BadgerStore keeps archived games in BadgerDB, one JSON document per
// "archive/<YYYY-MM-DD>" key.
type BadgerStore struct {
	db *badger.DB
}

// BadgerOptions configures the BadgerDB store.
type BadgerOptions struct {
	// Dir is the directory for BadgerDB data files. Required unless InMemory.
	Dir string

	// InMemory runs BadgerDB without disk persistence, for tests.
	InMemory bool

	// Logger receives badger's own log output at debug level. Nil uses
	// slog.Default().
	Logger *slog.Logger
}

// NewBadgerStore opens a BadgerDB-backed Store.
func NewBadgerStore(opts BadgerOptions) (*BadgerStore, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("archive: BadgerOptions.Dir is required for on-disk mode")
	}
	dir := opts.Dir
	if opts.InMemory {
		dir = ""
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dbOpts := badger.DefaultOptions(dir).
		WithInMemory(opts.InMemory).
		WithLogger(badgerLogger{logger: logger.With("component", "badger")})
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("archive: open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func badgerKey(date time.Time) []byte {
	return []byte(badgerPrefix + schedule.FormatDate(date))
}

// Exists reports whether a game is stored for date.
func (b *BadgerStore) Exists(_ context.Context, date time.Time) (bool, error) {
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(badgerKey(date))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Upsert stores rec, keeping the CreatedAt of a record it replaces.
func (b *BadgerStore) Upsert(_ context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("archive: Upsert called with nil record")
	}
	key := badgerKey(rec.GameDate)
	return b.db.Update(func(txn *badger.Txn) error {
		stored := *rec
		if item, err := txn.Get(key); err == nil {
			prev, err := decodeItem(item, rec.GameDate)
			if err != nil {
				return err
			}
			stored.CreatedAt = prev.CreatedAt
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = time.Now()
		}
		data, err := encodeRecord(&stored)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Get loads the record stored for date.
func (b *BadgerStore) Get(_ context.Context, date time.Time) (*Record, error) {
	var rec *Record
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(date))
		if err != nil {
			return err
		}
		rec, err = decodeItem(item, date)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Dates lists stored game dates, newest first. Values are not read.
func (b *BadgerStore) Dates(_ context.Context) ([]time.Time, error) {
	var out []time.Time
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(badgerPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			raw := strings.TrimPrefix(string(it.Item().Key()), badgerPrefix)
			date, err := schedule.ParseDate(raw)
			if err != nil {
				return err
			}
			out = append(out, date)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out, nil
}

// Close closes the underlying database.
func (b *BadgerStore) Close() error { return b.db.Close() }

func decodeItem(item *badger.Item, date time.Time) (*Record, error) {
	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("archive: decode %s: %w", schedule.FormatDate(date), err)
	}
	return doc.record(date)
}

// badgerLogger forwards badger's printf style logging to slog. Info and
// debug chatter is demoted to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Ensure BadgerStore satisfies the Store interface.
var _ Store = (*BadgerStore)(nil)
