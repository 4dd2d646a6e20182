package vector

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// lookupBatch bounds the number of bound parameters per IN (...) query.
const lookupBatch = 500

// SQLiteStore caches word vectors in a SQLite table so repeated runs can skip
// scanning the full text source. Only the words a vocabulary needs are
// normally stored.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed Store. It ensures the
// word_vectors schema exists in the provided database.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("vector: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Put upserts vectors into the word_vectors table within one transaction.
func (s *SQLiteStore) Put(ctx context.Context, vectors map[string]Vector) (int, error) {
	if len(vectors) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO word_vectors(word, dim, embedding) VALUES(?, ?, ?)
ON CONFLICT(word) DO UPDATE SET dim = excluded.dim, embedding = excluded.embedding`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for word, vec := range vectors {
		if word == "" || len(vec) == 0 {
			continue
		}
		if _, err := stmt.ExecContext(ctx, word, len(vec), EncodeEmbedding(vec)); err != nil {
			return 0, fmt.Errorf("vector: put %q: %w", word, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// Lookup loads the vectors for the requested words. Words are queried in
// batches to stay under SQLite's bound parameter limit.
func (s *SQLiteStore) Lookup(ctx context.Context, words []string) (map[string]Vector, error) {
	out := make(map[string]Vector, len(words))
	for start := 0; start < len(words); start += lookupBatch {
		end := min(start+lookupBatch, len(words))
		batch := words[start:end]
		args := make([]any, len(batch))
		for i, w := range batch {
			args[i] = w
		}
		query := `SELECT word, embedding FROM word_vectors WHERE word IN (?` + strings.Repeat(",?", len(batch)-1) + `)`
		if err := s.scan(ctx, out, query, args...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Count returns the number of cached vectors.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM word_vectors`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) scan(ctx context.Context, out map[string]Vector, query string, args ...any) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var word string
		var blob []byte
		if err := rows.Scan(&word, &blob); err != nil {
			return err
		}
		vec, err := DecodeEmbedding(blob)
		if err != nil {
			return fmt.Errorf("vector: decode %q: %w", word, err)
		}
		out[word] = vec
	}
	return rows.Err()
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
