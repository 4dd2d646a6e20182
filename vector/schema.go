package vector

import (
	"context"
	"database/sql"
)

const vectorsSchema = `
CREATE TABLE IF NOT EXISTS word_vectors (
    word      TEXT PRIMARY KEY,
    dim       INTEGER NOT NULL,
    embedding BLOB NOT NULL
);
`

// EnsureSchema creates the word_vectors table in the provided database if it
// does not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, vectorsSchema)
	return err
}
