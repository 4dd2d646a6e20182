package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpenInMemory verifies that we can open an in-memory SQLite database
// using the modernc.org/sqlite driver and execute a trivial statement.
func TestOpenInMemory(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE t(x INTEGER)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO t(x) VALUES (1),(2),(3)")
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM t").Scan(&n))
	assert.Equal(t, 3, n)
}

func TestOpenFileCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance", "games.db")
	db, err := Open("sqlite:///" + path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("CREATE TABLE t(x INTEGER)")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestOpenEmptyDSN(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestTrimScheme(t *testing.T) {
	assert.Equal(t, "/var/lib/games.db", TrimScheme("sqlite:////var/lib/games.db"))
	assert.Equal(t, "instance/games.db", TrimScheme("sqlite:///instance/games.db"))
	assert.Equal(t, "games.db", TrimScheme("games.db"))
}
