// Package embedding loads word vectors for a vocabulary and assembles them
// into the read-only similarity matrix shared by every ranking of a run.
//
// Vectors come from a Source: either a (possibly bzip2, gzip or zstd
// compressed) text file of "<word> <float> <float> ..." lines, scanned in a
// single streaming pass that stops once every required word was found, or a
// vector.SQLiteStore cache extracted from such a file earlier.
package embedding
