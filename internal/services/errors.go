package services

import "errors"

// Sentinel errors of the matching engine. Every one of them is recoverable
// at the request boundary and maps to a {success:false, error} response.
var (
	// ErrUnsupportedFormat is returned for a file extension the extractor
	// does not handle.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrCorruptDocument is returned when the underlying parser cannot
	// extract any text from the document bytes.
	ErrCorruptDocument = errors.New("document is corrupt or unreadable")

	// ErrEmptyDocument is returned when extraction succeeds but yields no
	// text after normalization.
	ErrEmptyDocument = errors.New("document contains no text")

	// ErrParseInputInvalid is returned by the profile parser for empty input.
	ErrParseInputInvalid = errors.New("parse input is empty")

	// ErrEmbeddingUnavailable is returned on a hard embedder failure, such
	// as input exceeding the maximum supported length.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrDuplicateID is returned when inserting an id already present in an
	// index collection. The index is unchanged after the failed call.
	ErrDuplicateID = errors.New("duplicate id in index")

	// ErrInvalidTopK is returned for topK values of zero or less.
	ErrInvalidTopK = errors.New("top_k must be positive")

	// ErrEmptyQuery is returned for empty or whitespace-only query text.
	ErrEmptyQuery = errors.New("query text is empty")
)
