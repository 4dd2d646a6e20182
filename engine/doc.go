// Package engine opens modernc.org/sqlite connections, in memory or file
// backed, with the pragmas the archive and vector cache stores rely on.
package engine
