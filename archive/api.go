package archive

import (
	"context"
	"errors"
	"time"

	"github.com/viant/wordrank/rank"
)

// ErrNotFound is returned by Get when no record exists for the date.
var ErrNotFound = errors.New("archive: record not found")

// Record is the persisted ranking of one game date.
type Record struct {
	GameDate   time.Time
	SecretWord string
	Ranking    []rank.Entry
	CreatedAt  time.Time
}

// Writer is the persistence contract the Generator depends on.
type Writer interface {
	// Exists reports whether a record is stored for date.
	Exists(ctx context.Context, date time.Time) (bool, error)

	// Upsert stores rec, replacing any record with the same GameDate. The
	// original CreatedAt is kept on replacement.
	Upsert(ctx context.Context, rec *Record) error
}

// Store is a full archive backend used by the generator, the importer and
// the serving layer.
type Store interface {
	Writer

	// Get returns the record for date or ErrNotFound.
	Get(ctx context.Context, date time.Time) (*Record, error)

	// Dates lists stored game dates, newest first.
	Dates(ctx context.Context) ([]time.Time, error)

	// Close releases the backend.
	Close() error
}
