package archive

import (
	"context"
	"database/sql"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS archived_game (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    game_date    TEXT NOT NULL UNIQUE,
    secret_word  TEXT NOT NULL,
    ranking_json TEXT NOT NULL,
    created_at   TEXT
);
CREATE INDEX IF NOT EXISTS ix_archived_game_game_date ON archived_game(game_date);
`

// EnsureSchema creates the archived_game table in the provided database if it
// does not already exist. The unique game_date keeps concurrent writers from
// producing duplicate days.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, archiveSchema)
	return err
}
