package embedding

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CompressedSuffixes lists the suffixes tried, in order, when the literal
// vector source path does not exist.
var CompressedSuffixes = []string{".bz2", ".gz", ".zst"}

// ResolvePath returns path itself when it names a regular file, otherwise the
// first existing path+suffix from CompressedSuffixes. Windows style
// separators are normalized first.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrResourceNotFound)
	}
	normalized := filepath.Clean(filepath.FromSlash(strings.ReplaceAll(path, `\`, "/")))
	if isFile(normalized) {
		return normalized, nil
	}
	for _, suffix := range CompressedSuffixes {
		if candidate := normalized + suffix; isFile(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s (also tried %s)", ErrResourceNotFound, normalized, strings.Join(CompressedSuffixes, ", "))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
