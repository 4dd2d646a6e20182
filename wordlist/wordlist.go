// Package wordlist reads the newline delimited vocabulary and daily word
// lists and cross-checks them.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Load reads a newline delimited list from path, trimming surrounding
// whitespace and skipping blank lines. Order is preserved.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: %w", err)
	}
	defer f.Close()
	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("wordlist: read %s: %w", path, err)
	}
	return words, nil
}

// Read reads a newline delimited list from r.
func Read(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if w := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff")); w != "" {
			out = append(out, w)
		}
	}
	return out, scanner.Err()
}

// Normalized returns the sorted, lower-cased unique words of list.
func Normalized(list []string) []string {
	set := make(map[string]struct{}, len(list))
	for _, w := range list {
		set[strings.ToLower(w)] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Report is the outcome of Check.
type Report struct {
	// Duplicates lists daily words that occur more than once.
	Duplicates []string
	// Missing lists daily words absent from the vocabulary.
	Missing []string
}

// OK reports whether the lists are consistent.
func (r Report) OK() bool { return len(r.Duplicates) == 0 && len(r.Missing) == 0 }

// Check reports repeated daily words and daily words absent from the
// vocabulary. Comparison is case-insensitive; results are lower-cased and
// sorted.
func Check(daily, vocabulary []string) Report {
	vocab := make(map[string]struct{}, len(vocabulary))
	for _, w := range vocabulary {
		vocab[strings.ToLower(w)] = struct{}{}
	}
	seen := make(map[string]int, len(daily))
	var report Report
	for _, w := range daily {
		w = strings.ToLower(w)
		seen[w]++
		if seen[w] == 2 {
			report.Duplicates = append(report.Duplicates, w)
		}
		if seen[w] > 1 {
			continue
		}
		if _, ok := vocab[w]; !ok {
			report.Missing = append(report.Missing, w)
		}
	}
	sort.Strings(report.Duplicates)
	sort.Strings(report.Missing)
	return report
}
