package chunk

import (
	"fmt"
	"math/bits"
)

// Summary holds text metrics for a chunk or a run of chunks.
//
// As a tree aggregate, summaries add up field by field. As a path value it
// is the position of a subtree: the metrics of all text in front of it.
type Summary struct {
	Bytes  uint64
	Chars  uint64
	Lines  uint64 // number of newline characters
	Chunks uint64
}

// ComputeInfo returns the metrics of c. Every chunk counts as one chunk,
// even an empty one.
func (c Chunk) ComputeInfo() Summary {
	return Summary{
		Bytes:  uint64(c.n),
		Chars:  uint64(bits.OnesCount64(c.chars)),
		Lines:  uint64(bits.OnesCount64(c.newlines)),
		Chunks: 1,
	}
}

// Gather adds two summaries.
func (s Summary) Gather(other Summary) Summary {
	return Summary{
		Bytes:  s.Bytes + other.Bytes,
		Chars:  s.Chars + other.Chars,
		Lines:  s.Lines + other.Lines,
		Chunks: s.Chunks + other.Chunks,
	}
}

// Extend moves a position past the text summarized by prev.
func (s Summary) Extend(prev Summary) Summary {
	return s.Gather(prev)
}

// ExtendInv moves a position back in front of the text summarized by curr.
func (s Summary) ExtendInv(curr Summary) Summary {
	return Summary{
		Bytes:  s.Bytes - curr.Bytes,
		Chars:  s.Chars - curr.Chars,
		Lines:  s.Lines - curr.Lines,
		Chunks: s.Chunks - curr.Chunks,
	}
}

// Identity is the start of a text.
func (Summary) Identity() Summary {
	return Summary{}
}

func (s Summary) String() string {
	return fmt.Sprintf("[b=%d c=%d l=%d #%d]", s.Bytes, s.Chars, s.Lines, s.Chunks)
}
