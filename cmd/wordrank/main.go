// Command wordrank builds and serves the daily word game rankings.
//
// Usage:
//
//	wordrank [flags] <command> [args]
//
// Commands:
//
//	generate   - rank and archive every scheduled day of a date range
//	rank       - rank the vocabulary against one word
//	similarity - compare two words
//	word       - show the secret word and game number of a date
//	check      - cross-check the daily words against the vocabulary
//	import     - migrate precomputed JSON rankings into the archive store
//	extract    - cache the vectors a vocabulary needs in SQLite
//	serve      - serve archived rankings over HTTP
package main

import (
	"fmt"
	"os"

	"github.com/viant/wordrank/cmd/wordrank/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
