// Package vector defines the word vector type and the SQLite-backed vector
// cache used by this project. It includes:
//   - Vector, a fixed-width float32 embedding of a single word
//   - Dot, Magnitude, CosineSimilarity and L2Distance helpers
//   - Embedding encoding (BLOB) for persistence
//   - SQLiteStore: a word -> vector cache extracted from a large text source
package vector
