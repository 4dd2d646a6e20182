package embedding

import "errors"

var (
	// ErrResourceNotFound is returned when the vector source file does not
	// exist under its literal path or any supported compressed suffix.
	ErrResourceNotFound = errors.New("embedding: vector source not found")
	// ErrEmptyVectorSource is returned when a source yields no usable vector
	// for any of the requested words.
	ErrEmptyVectorSource = errors.New("embedding: no usable vectors in source")
	// ErrEmptyVocabulary is returned when no vocabulary word has a vector.
	ErrEmptyVocabulary = errors.New("embedding: no vocabulary word has a vector")
)
