package vector

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/wordrank/engine"
)

// TestSQLiteStore_PutLookup exercises the vector cache: inserting vectors,
// looking up a subset and replacing an existing word.
func TestSQLiteStore_PutLookup(t *testing.T) {
	ctx := context.Background()
	db, err := engine.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLiteStore(ctx, db)
	require.NoError(t, err)

	n, err := store.Put(ctx, map[string]Vector{
		"сонце": {1, 0},
		"вода":  {0, 1},
		"":      {1, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := store.Lookup(ctx, []string{"сонце", "місяць"})
	require.NoError(t, err)
	assert.Equal(t, map[string]Vector{"сонце": {1, 0}}, got)

	_, err = store.Put(ctx, map[string]Vector{"сонце": {0.5, 0.5}})
	require.NoError(t, err)
	got, err = store.Lookup(ctx, []string{"сонце"})
	require.NoError(t, err)
	assert.Equal(t, Vector{0.5, 0.5}, got["сонце"])

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLiteStore_LookupBatches(t *testing.T) {
	ctx := context.Background()
	db, err := engine.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store, err := NewSQLiteStore(ctx, db)
	require.NoError(t, err)

	vectors := make(map[string]Vector)
	words := make([]string, 0, 1200)
	for i := 0; i < 1200; i++ {
		w := fmt.Sprintf("w%d", i)
		vectors[w] = Vector{float32(i), 1}
		words = append(words, w)
	}
	_, err = store.Put(ctx, vectors)
	require.NoError(t, err)

	got, err := store.Lookup(ctx, words)
	require.NoError(t, err)
	assert.Len(t, got, 1200)
	assert.Equal(t, Vector{1199, 1}, got["w1199"])
}

func TestNewSQLiteStore_NilDB(t *testing.T) {
	_, err := NewSQLiteStore(context.Background(), nil)
	assert.Error(t, err)
}
