package rank

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/viant/wordrank/embedding"
	"github.com/viant/wordrank/vector"
)

var (
	// ErrUnknownTargetWord is returned when the target word has no vector.
	ErrUnknownTargetWord = errors.New("rank: target word has no vector")
	// ErrDegenerateVector is returned when the target vector has zero norm.
	ErrDegenerateVector = errors.New("rank: target vector has zero norm")
)

// Entry is a single ranked word.
type Entry struct {
	Word       string  `json:"word"`
	Similarity float64 `json:"similarity"`
	Rank       int     `json:"rank"`
}

// Rank scores every word of res against target and returns them ordered by
// descending cosine similarity. Equal similarities keep res.Words order.
// Rank only reads res and may be called concurrently.
func Rank(target string, res *embedding.Resources) ([]Entry, error) {
	sims, err := Similarities(target, res)
	if err != nil {
		return nil, err
	}
	order := make([]int, len(sims))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return sims[order[a]] > sims[order[b]] })

	out := make([]Entry, len(order))
	for pos, idx := range order {
		out[pos] = Entry{Word: res.Words[idx], Similarity: sims[idx], Rank: pos + 1}
	}
	return out, nil
}

// Nearest returns the k most similar words to target, the prefix of Rank.
// k <= 0 returns the full ranking.
func Nearest(target string, res *embedding.Resources, k int) ([]Entry, error) {
	entries, err := Rank(target, res)
	if err != nil {
		return nil, err
	}
	if k > 0 && k < len(entries) {
		entries = entries[:k]
	}
	return entries, nil
}

// Similarities returns the cosine similarity of target to every row of
// res.Matrix, in res.Words order.
func Similarities(target string, res *embedding.Resources) ([]float64, error) {
	tv, ok := res.Vector(target)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTargetWord, target)
	}
	if len(tv) != res.Dim() {
		return nil, fmt.Errorf("%w: %q has width %d, want %d", ErrUnknownTargetWord, target, len(tv), res.Dim())
	}
	if vector.IsZero(tv) {
		return nil, fmt.Errorf("%w: %q", ErrDegenerateVector, target)
	}
	t := tv.Float64s()
	norm := floats.Norm(t, 2)

	rows := res.Len()
	dots := mat.NewVecDense(rows, nil)
	dots.MulVec(res.Matrix, mat.NewVecDense(len(t), t))
	sims := make([]float64, rows)
	for i := range sims {
		sims[i] = dots.AtVec(i) / (res.Norms[i] * norm)
	}
	return sims, nil
}

// Compare returns the cosine similarity between two known words.
func Compare(a, b string, res *embedding.Resources) (float64, error) {
	va, ok := res.Vector(a)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTargetWord, a)
	}
	vb, ok := res.Vector(b)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTargetWord, b)
	}
	if vector.IsZero(va) || vector.IsZero(vb) {
		return 0, ErrDegenerateVector
	}
	return vector.CosineSimilarity(va, vb)
}
