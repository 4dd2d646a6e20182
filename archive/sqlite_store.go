package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/viant/wordrank/schedule"
)

// SQLiteStore keeps archived games in the archived_game table. Rankings are
// stored as JSON text, one row per game date.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed Store. It ensures the
// archived_game schema exists in the provided database.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("archive: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Exists reports whether a game is stored for date.
func (s *SQLiteStore) Exists(ctx context.Context, date time.Time) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM archived_game WHERE game_date = ?`, schedule.FormatDate(date)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Upsert inserts rec or replaces the secret word and ranking of an existing
// row for the same date.
func (s *SQLiteStore) Upsert(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("archive: Upsert called with nil record")
	}
	payload, err := EncodeRanking(rec.Ranking)
	if err != nil {
		return err
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO archived_game(game_date, secret_word, ranking_json, created_at) VALUES(?, ?, ?, ?)
ON CONFLICT(game_date) DO UPDATE SET secret_word = excluded.secret_word, ranking_json = excluded.ranking_json`,
		schedule.FormatDate(rec.GameDate), rec.SecretWord, string(payload), formatTime(created))
	if err != nil {
		return fmt.Errorf("archive: upsert %s: %w", schedule.FormatDate(rec.GameDate), err)
	}
	return nil
}

// Get loads the record stored for date.
func (s *SQLiteStore) Get(ctx context.Context, date time.Time) (*Record, error) {
	var word, payload string
	var created sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT secret_word, ranking_json, created_at FROM archived_game WHERE game_date = ?`,
		schedule.FormatDate(date)).Scan(&word, &payload, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec := &Record{GameDate: schedule.Day(date), SecretWord: word, CreatedAt: parseTime(created.String)}
	if err := json.Unmarshal([]byte(payload), &rec.Ranking); err != nil {
		return nil, fmt.Errorf("archive: decode ranking for %s: %w", schedule.FormatDate(date), err)
	}
	return rec, nil
}

// Dates lists stored game dates, newest first. Rankings are not loaded.
func (s *SQLiteStore) Dates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT game_date FROM archived_game ORDER BY game_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		date, err := schedule.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, date)
	}
	return out, rows.Err()
}

// Count returns the number of stored games.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM archived_game`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
