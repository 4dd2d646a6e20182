package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

const memoryDSN = ":memory:"

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./db.sqlite" (a "sqlite:///"
// URL prefix is accepted too). The parent directory is created when missing
// and the connection is configured with WAL journaling and a busy timeout.
// For in-memory databases, pass ":memory:".
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("engine: empty dsn")
	}
	if dsn == memoryDSN {
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, err
		}
		// every new connection of an in-memory database is a fresh database
		db.SetMaxOpenConns(1)
		return db, nil
	}
	path := TrimScheme(dsn)
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("engine: create %s: %w", dir, err)
		}
	}
	return sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
}

// TrimScheme strips the SQLAlchemy style "sqlite:///" prefix used by the
// DATABASE_URL convention, returning a plain file path.
func TrimScheme(dsn string) string {
	for _, prefix := range []string{"sqlite:///", "sqlite://", "file:"} {
		if strings.HasPrefix(dsn, prefix) {
			return strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}
