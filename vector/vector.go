package vector

import (
	"context"
)

// Vector is the embedding of a single vocabulary word. All vectors read from
// one source share the same width.
type Vector []float32

// Dim returns the vector width.
func (v Vector) Dim() int { return len(v) }

// Float64s returns a float64 copy of the vector, as used by the dense
// similarity matrix.
func (v Vector) Float64s() []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

// Store defines a persistent word -> vector mapping that can stand in for
// scanning the original text source.
type Store interface {
	// Put stores vectors keyed by word, replacing existing entries, and
	// returns the number of rows written.
	Put(ctx context.Context, vectors map[string]Vector) (int, error)

	// Lookup returns the vectors for the requested words that are present in
	// the store. Unknown words are silently absent from the result.
	Lookup(ctx context.Context, words []string) (map[string]Vector, error)
}
