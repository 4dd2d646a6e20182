package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/viant/wordrank/vector"
)

// NormEpsilon replaces zero row norms so that similarity never divides by
// zero.
const NormEpsilon = 1e-12

// missingPreview caps the missing words echoed to the log.
const missingPreview = 10

// Resources holds the vocabulary vectors shared by every ranking of a run.
// It is never mutated after construction and is safe for concurrent reads.
type Resources struct {
	// Vectors maps every requested word that has a vector to it.
	Vectors map[string]vector.Vector
	// Words lists vocabulary words with a vector, in vocabulary order. Row i
	// of Matrix belongs to Words[i].
	Words []string
	// Matrix is the dense len(Words) x dim stack of vocabulary vectors.
	Matrix *mat.Dense
	// Norms holds the Euclidean norm of every Matrix row, never zero.
	Norms []float64
	// Missing lists requested words without a vector, sorted.
	Missing []string
}

// NewResources assembles Resources from loaded vectors. Vocabulary order is
// preserved and repeated entries keep their first position. Extra words such
// as the daily secret words can be ranking targets but are not ranked
// themselves. Vectors whose width disagrees with the first vocabulary vector
// are treated as missing.
func NewResources(vectors map[string]vector.Vector, vocabulary []string, extra []string) (*Resources, error) {
	seen := make(map[string]struct{}, len(vocabulary))
	words := make([]string, 0, len(vocabulary))
	dim := 0
	for _, w := range vocabulary {
		if _, dup := seen[w]; dup || w == "" {
			continue
		}
		seen[w] = struct{}{}
		vec, ok := vectors[w]
		if !ok || len(vec) == 0 {
			continue
		}
		if dim == 0 {
			dim = len(vec)
		} else if len(vec) != dim {
			continue
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return nil, ErrEmptyVocabulary
	}

	data := make([]float64, 0, len(words)*dim)
	for _, w := range words {
		for _, f := range vectors[w] {
			data = append(data, float64(f))
		}
	}
	matrix := mat.NewDense(len(words), dim, data)
	norms := make([]float64, len(words))
	for i := range words {
		norms[i] = floats.Norm(matrix.RawRowView(i), 2)
		if norms[i] == 0 {
			norms[i] = NormEpsilon
		}
	}

	kept := make(map[string]vector.Vector, len(vectors))
	missing := make(map[string]struct{})
	for _, list := range [][]string{vocabulary, extra} {
		for _, w := range list {
			if w == "" {
				continue
			}
			if vec, ok := vectors[w]; ok && len(vec) == dim {
				kept[w] = vec
				continue
			}
			missing[w] = struct{}{}
		}
	}

	return &Resources{
		Vectors: kept,
		Words:   words,
		Matrix:  matrix,
		Norms:   norms,
		Missing: sortedKeys(missing),
	}, nil
}

// Dim returns the vector width.
func (r *Resources) Dim() int {
	_, c := r.Matrix.Dims()
	return c
}

// Len returns the number of rankable words.
func (r *Resources) Len() int { return len(r.Words) }

// Vector returns the vector for word, including non-vocabulary words such as
// secret words that were requested alongside the vocabulary.
func (r *Resources) Vector(word string) (vector.Vector, bool) {
	v, ok := r.Vectors[word]
	return v, ok
}

// LoadResources looks up vectors for the vocabulary and the daily words in
// src, then builds Resources. Missing words are reported on the logger but
// are not an error.
func LoadResources(ctx context.Context, src Source, vocabulary, daily []string, logger *slog.Logger) (*Resources, error) {
	if logger == nil {
		logger = slog.Default()
	}
	required := make([]string, 0, len(vocabulary)+len(daily))
	required = append(required, vocabulary...)
	required = append(required, daily...)
	vectors, err := src.Lookup(ctx, required)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, ErrEmptyVectorSource
	}
	res, err := NewResources(vectors, vocabulary, daily)
	if err != nil {
		return nil, err
	}
	logger.Info("embedding resources ready", "available", res.Len(), "vocabulary", len(vocabulary),
		"missing", len(res.Missing), "dim", res.Dim())
	if len(res.Missing) > 0 {
		preview := res.Missing[:min(missingPreview, len(res.Missing))]
		suffix := ""
		if len(res.Missing) > missingPreview {
			suffix = " ..."
		}
		logger.Warn("words without vectors", "examples", strings.Join(preview, ", ")+suffix)
	}
	return res, nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// String summarises the resources for diagnostics.
func (r *Resources) String() string {
	return fmt.Sprintf("resources(words=%d dim=%d missing=%d)", r.Len(), r.Dim(), len(r.Missing))
}
