package chunk

import (
	"math/bits"
	"unicode/utf8"
)

// Bitmap marks byte offsets inside a chunk. Bit i stands for offset i.
type Bitmap = uint64

// MaxBase is the maximum chunk payload length in bytes.
const MaxBase = 64

// Chunk is a short run of UTF-8 text, the leaf value of a text tree.
//
// Besides the bytes, a chunk keeps two bitmaps: one marks the start of every
// rune, the other every newline. Counting and offset arithmetic within a
// chunk are bit operations on them.
//
// Chunks are values; editing operations return new chunks.
type Chunk struct {
	chars    Bitmap
	newlines Bitmap
	n        uint8
	text     [MaxBase]byte
}

// New creates a chunk from UTF-8 text.
//
// Returns ErrInvalidUTF8 for broken input and ErrChunkTooLarge if text is
// longer than MaxBase bytes.
func New(text string) (Chunk, error) {
	if !utf8.ValidString(text) {
		return Chunk{}, ErrInvalidUTF8
	}
	if len(text) > MaxBase {
		return Chunk{}, ErrChunkTooLarge
	}
	return fill(text), nil
}

// NewBytes creates a chunk from UTF-8 bytes, with the same errors as New.
// The chunk does not alias text.
//
// text may not start or end in the middle of a multi-byte rune. Callers
// cutting up larger input should use Fragment.
func NewBytes(text []byte) (Chunk, error) {
	if !utf8.Valid(text) {
		return Chunk{}, ErrInvalidUTF8
	}
	if len(text) > MaxBase {
		return Chunk{}, ErrChunkTooLarge
	}
	return fill(text), nil
}

// fill expects valid UTF-8 of at most MaxBase bytes.
func fill[T ~string | ~[]byte](text T) Chunk {
	var c Chunk
	c.n = uint8(copy(c.text[:], text))
	for i := 0; i < len(text); i++ {
		if utf8.RuneStart(text[i]) {
			c.chars |= bit(i)
		}
		if text[i] == '\n' {
			c.newlines |= bit(i)
		}
	}
	return c
}

// Fragment cuts text into chunks of at most MaxBase bytes. Cuts never
// separate the bytes of a rune.
func Fragment(text []byte) ([]Chunk, error) {
	if len(text) == 0 {
		return nil, nil
	}
	if !utf8.Valid(text) {
		return nil, ErrInvalidUTF8
	}
	parts := make([]Chunk, 0, 1+len(text)/MaxBase)
	for i := 0; i < len(text); {
		end := i + MaxBase
		if end >= len(text) {
			end = len(text)
		} else {
			for end > i && !utf8.RuneStart(text[end]) {
				end--
			}
		}
		parts = append(parts, fill(text[i:end]))
		i = end
	}
	return parts, nil
}

// Len returns the text length in bytes.
func (c Chunk) Len() int {
	return int(c.n)
}

// IsEmpty reports whether the chunk has no bytes.
func (c Chunk) IsEmpty() bool {
	return c.n == 0
}

// String returns the chunk text.
func (c Chunk) String() string {
	return string(c.text[:c.n])
}

// Bytes returns a copy of the chunk text.
func (c Chunk) Bytes() []byte {
	return append([]byte(nil), c.text[:c.n]...)
}

// Chars returns the rune-start bitmap.
func (c Chunk) Chars() Bitmap {
	return c.chars
}

// Newlines returns the newline bitmap.
func (c Chunk) Newlines() Bitmap {
	return c.newlines
}

// ByteAt returns the byte at offset i.
func (c Chunk) ByteAt(i int) (byte, error) {
	if i < 0 || i >= c.Len() {
		return 0, ErrIndexOutOfBounds
	}
	return c.text[i], nil
}

// IsCharBoundary reports whether offset is a rune boundary of this chunk.
// Both ends of the chunk are boundaries.
func (c Chunk) IsCharBoundary(offset int) bool {
	if offset == c.Len() {
		return true
	}
	if offset < 0 || offset > c.Len() {
		return false
	}
	return c.chars&bit(offset) != 0
}

// Slice returns a chunk holding the bytes [start,end) of c.
func (c Chunk) Slice(start, end int) (Chunk, error) {
	if start < 0 || end < start || end > c.Len() {
		return Chunk{}, ErrIndexOutOfBounds
	}
	if !c.IsCharBoundary(start) || !c.IsCharBoundary(end) {
		return Chunk{}, ErrNotCharBoundary
	}
	var out Chunk
	m := rangeMask(start, end)
	out.chars = (c.chars & m) >> uint(start)
	out.newlines = (c.newlines & m) >> uint(start)
	out.n = uint8(copy(out.text[:], c.text[start:end]))
	return out, nil
}

// Split cuts c into the bytes before and from offset mid.
func (c Chunk) Split(mid int) (Chunk, Chunk, error) {
	left, err := c.Slice(0, mid)
	if err != nil {
		return Chunk{}, Chunk{}, err
	}
	right, err := c.Slice(mid, c.Len())
	if err != nil {
		return Chunk{}, Chunk{}, err
	}
	return left, right, nil
}

// Append returns c with other appended. If the result would exceed MaxBase
// bytes, c is returned unchanged and ok is false.
func (c Chunk) Append(other Chunk) (out Chunk, ok bool) {
	total := c.Len() + other.Len()
	if total > MaxBase {
		return c, false
	}
	out = c
	shift := uint(c.Len())
	out.chars |= other.chars << shift
	out.newlines |= other.newlines << shift
	copy(out.text[c.n:total], other.text[:other.n])
	out.n = uint8(total)
	return out, true
}

// CharsBefore counts the runes starting before byte offset.
func (c Chunk) CharsBefore(offset int) int {
	return bits.OnesCount64(c.chars & prefixMask(offset))
}

// LinesBefore counts the newlines before byte offset.
func (c Chunk) LinesBefore(offset int) int {
	return bits.OnesCount64(c.newlines & prefixMask(offset))
}

// CharOffset returns the byte offset of the rune with index k. k equal to
// the number of runes yields the chunk length.
func (c Chunk) CharOffset(k int) (int, error) {
	if k < 0 {
		return 0, ErrIndexOutOfBounds
	}
	if k == bits.OnesCount64(c.chars) {
		return c.Len(), nil
	}
	return nthBit(c.chars, k)
}

// LineStart returns the byte offset following the k-th newline of c,
// counting from 1.
func (c Chunk) LineStart(k int) (int, error) {
	if k < 1 {
		return 0, ErrIndexOutOfBounds
	}
	at, err := nthBit(c.newlines, k-1)
	if err != nil {
		return 0, err
	}
	return at + 1, nil
}

// --- Bitmap helpers --------------------------------------------------------

func bit(offset int) Bitmap {
	if offset < 0 || offset >= MaxBase {
		return 0
	}
	return Bitmap(1) << uint(offset)
}

func prefixMask(offset int) Bitmap {
	switch {
	case offset <= 0:
		return 0
	case offset >= MaxBase:
		return ^Bitmap(0)
	default:
		return (Bitmap(1) << uint(offset)) - 1
	}
}

func rangeMask(start, end int) Bitmap {
	return prefixMask(end) &^ prefixMask(start)
}

// nthBit returns the position of the set bit with index k (from 0) in b.
func nthBit(b Bitmap, k int) (int, error) {
	if k < 0 || k >= bits.OnesCount64(b) {
		return 0, ErrIndexOutOfBounds
	}
	for ; k > 0; k-- {
		b &= b - 1
	}
	return bits.TrailingZeros64(b), nil
}
