package embedding

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/viant/wordrank/vector"
)

const (
	maxLineSize = 16 << 20
	// ctxCheckEvery is the number of lines scanned between context checks.
	ctxCheckEvery = 1 << 16
)

// Source resolves vectors for a set of words.
type Source interface {
	// Lookup returns vectors for the requested words that the source knows.
	Lookup(ctx context.Context, words []string) (map[string]vector.Vector, error)
}

// TextSource reads vectors from a plain or compressed text file with one
// "<word> <float> <float> ..." entry per line.
type TextSource struct {
	// Path is resolved with ResolvePath, so a missing ".bz2" (or other
	// supported) suffix is tolerated.
	Path   string
	Logger *slog.Logger
}

// NewTextSource creates a TextSource for path.
func NewTextSource(path string, logger *slog.Logger) *TextSource {
	return &TextSource{Path: path, Logger: logger}
}

// Lookup scans the file once and returns the vectors of the requested words.
func (s *TextSource) Lookup(ctx context.Context, words []string) (map[string]vector.Vector, error) {
	path, err := ResolvePath(s.Path)
	if err != nil {
		return nil, err
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	required := requiredSet(words)
	logger.Info("loading vectors", "path", path, "required", len(required))

	r, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	found, stats, err := ReadVectors(ctx, r, required)
	if err != nil {
		return nil, fmt.Errorf("embedding: read %s: %w", path, err)
	}
	logger.Info("vectors loaded", "path", path, "found", len(found), "required", len(required),
		"lines", stats.Lines, "skipped", stats.Skipped, "dim", stats.Dim, "complete", stats.Complete)
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyVectorSource, path)
	}
	return found, nil
}

// LoadVectors is a shorthand for NewTextSource(path, nil).Lookup.
func LoadVectors(ctx context.Context, path string, words []string) (map[string]vector.Vector, error) {
	return NewTextSource(path, nil).Lookup(ctx, words)
}

// ScanStats describes a single pass over a vector source.
type ScanStats struct {
	Lines    int
	Skipped  int
	Dim      int
	Complete bool // every required word was found before EOF
}

// ReadVectors streams r line by line and parses vectors only for words in
// required. The width of the first valid vector fixes the dimensionality;
// later lines of a different width, lines without numeric fields and lines
// with unparsable or non-finite numbers are skipped. The first occurrence of a word wins.
// Reading stops as soon as every required word was found.
func ReadVectors(ctx context.Context, r io.Reader, required map[string]struct{}) (map[string]vector.Vector, ScanStats, error) {
	found := make(map[string]vector.Vector, len(required))
	var stats ScanStats
	if len(required) == 0 {
		stats.Complete = true
		return found, stats, nil
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		stats.Lines++
		if stats.Lines%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}
		word, rest, ok := splitWord(scanner.Text())
		if !ok {
			stats.Skipped++
			continue
		}
		if _, want := required[word]; !want {
			continue
		}
		if _, seen := found[word]; seen {
			continue
		}
		vec, ok := parseVector(rest, stats.Dim)
		if !ok {
			stats.Skipped++
			continue
		}
		if stats.Dim == 0 {
			stats.Dim = len(vec)
		}
		found[word] = vec
		if len(found) == len(required) {
			stats.Complete = true
			return found, stats, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}
	return found, stats, nil
}

func splitWord(line string) (word, rest string, ok bool) {
	line = strings.TrimSpace(line)
	idx := strings.IndexAny(line, " \t")
	if idx <= 0 {
		return "", "", false
	}
	return line[:idx], line[idx+1:], true
}

// parseVector parses whitespace separated floats. When dim is non-zero any
// other field count rejects the line before parsing.
func parseVector(s string, dim int) (vector.Vector, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 || (dim > 0 && len(fields) != dim) {
		return nil, false
	}
	vec := make(vector.Vector, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		vec[i] = float32(v)
	}
	return vec, true
}

func requiredSet(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w != "" {
			out[w] = struct{}{}
		}
	}
	return out
}

// Ensure the sources satisfy the Source interface.
var (
	_ Source = (*TextSource)(nil)
	_ Source = (*vector.SQLiteStore)(nil)
)
