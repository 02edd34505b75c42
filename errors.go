package iconview

import "github.com/pkg/errors"

// Failure categories. The Model absorbs every one of them and degrades to a
// zero value; they surface only from the lower level building blocks.
var (
	// ErrInvalidMarkup is returned when vector markup cannot be parsed.
	ErrInvalidMarkup = errors.New("invalid markup")
	// ErrIndexOutOfRange is returned for an entry index outside [0, count).
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidSize is returned for a non-positive render size.
	ErrInvalidSize = errors.New("invalid render size")
	// ErrUnknownCollection is returned when a registry lookup misses.
	ErrUnknownCollection = errors.New("unknown collection or style")
	// ErrDuplicateCollection is returned when a collection id is registered twice.
	ErrDuplicateCollection = errors.New("duplicate collection")
)
