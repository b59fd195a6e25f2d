package chunk

import "errors"

var (
	// ErrInvalidUTF8 is returned for text which is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("chunk: invalid UTF-8")
	// ErrChunkTooLarge is returned for text longer than MaxBase bytes.
	ErrChunkTooLarge = errors.New("chunk: text exceeds chunk capacity")
	// ErrIndexOutOfBounds is returned for offsets outside of a chunk.
	ErrIndexOutOfBounds = errors.New("chunk: index out of bounds")
	// ErrNotCharBoundary is returned for offsets inside of a multi-byte rune.
	ErrNotCharBoundary = errors.New("chunk: offset is not a char boundary")
)
