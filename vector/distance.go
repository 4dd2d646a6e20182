package vector

import (
	"fmt"
	"math"

	"github.com/viant/vec/search"
	"github.com/viterin/vek/vek32"
)

// Dot returns the dot product of two equally sized vectors.
func Dot(a, b Vector) float32 {
	return vek32.Dot(a, b)
}

// Magnitude returns the Euclidean norm of the vector.
func Magnitude(v Vector) float32 {
	if len(v) == 0 {
		return 0
	}
	return search.Float32s(v).Magnitude()
}

// IsZero reports whether every component of the vector is zero.
func IsZero(v Vector) bool {
	for _, f := range v {
		if f != 0 {
			return false
		}
	}
	return true
}

// CosineSimilarity computes the cosine similarity between two vectors. It
// returns an error if the vectors have different lengths or if either vector
// has zero magnitude.
func CosineSimilarity(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine similarity dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: cosine similarity on empty vectors")
	}
	if IsZero(a) || IsZero(b) {
		return 0, fmt.Errorf("vector: cosine similarity with zero-magnitude vector")
	}
	na := math.Sqrt(float64(Dot(a, a)))
	nb := math.Sqrt(float64(Dot(b, b)))
	return float64(Dot(a, b)) / (na * nb), nil
}

// CosineDistance returns 1 - cosine similarity, computed from the vector
// magnitudes.
func CosineDistance(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	ma, mb := Magnitude(a), Magnitude(b)
	if ma == 0 || mb == 0 {
		return 0, fmt.Errorf("vector: cosine distance with zero-magnitude vector")
	}
	return 1 - float64(Dot(a, b))/(float64(ma)*float64(mb)), nil
}

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns an error if the vectors have different lengths.
func L2Distance(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return float64(search.Float32s(a).EuclideanDistance(search.Float32s(b))), nil
}
