package sumrope

import (
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/npillmayer/sumrope/btree"
	"github.com/npillmayer/sumrope/chunk"
)

type (
	textNode   = btree.Node[chunk.Chunk, chunk.Summary]
	textCursor = btree.MutCursor[chunk.Chunk, chunk.Summary, chunk.Summary]
)

// Text is an immutable rope of UTF-8 text.
//
// A text created by
//
//	Text{}
//
// is a valid object and behaves like the empty string.
//
// Methods that take or return positions use byte offsets, unless stated
// otherwise.
//
//	Operation     |   Text          |  String
//	--------------+-----------------+--------
//	Index         |   O(log n)      |   O(1)
//	Split         |   O(log n)      |   O(1)
//	Iterate       |   O(n)          |   O(n)
//
//	Concatenate   |   O(log n)      |   O(n)
//	Insert        |   O(log n)      |   O(n)
//	Delete        |   O(log n)      |   O(n)
type Text struct {
	root *textNode // nil for the empty text
	cfg  btree.Config
}

// FromString creates a text from a Go string, using the default tree shape.
//
// The input string must be valid UTF-8. Invalid input triggers an
// assertion panic; use FromBytes to check input.
func FromString(s string) Text {
	parts, err := chunk.Fragment([]byte(s))
	assert(err == nil, "FromString requires valid UTF-8 input")
	return FromChunks(btree.DefaultConfig(), slices.Values(parts))
}

// FromBytes creates a text from UTF-8 bytes, using the default tree shape.
func FromBytes(b []byte) (Text, error) {
	parts, err := chunk.Fragment(b)
	if err != nil {
		return Text{}, err
	}
	return FromChunks(btree.DefaultConfig(), slices.Values(parts)), nil
}

// FromChunks creates a text from a sequence of chunks, building a tree of
// shape cfg. Empty chunks are skipped.
func FromChunks(cfg btree.Config, chunks iter.Seq[chunk.Chunk]) Text {
	nonEmpty := func(yield func(chunk.Chunk) bool) {
		for c := range chunks {
			if !c.IsEmpty() && !yield(c) {
				return
			}
		}
	}
	root, ok := btree.Build[chunk.Chunk, chunk.Summary, chunk.Summary](cfg, nonEmpty).IntoRoot()
	return fromRoot(cfg, root, ok)
}

func fromRoot(cfg btree.Config, root textNode, ok bool) Text {
	if !ok || root.Info().Bytes == 0 {
		return Text{cfg: cfg}
	}
	return Text{root: &root, cfg: cfg}
}

// cursor creates a mutable cursor on a shared copy of the tree. The text
// itself is never changed by the cursor.
func (t Text) cursor() *textCursor {
	if t.root == nil {
		return btree.NewMutCursor[chunk.Chunk, chunk.Summary, chunk.Summary](t.cfg)
	}
	return btree.FromNode[chunk.Chunk, chunk.Summary, chunk.Summary](t.cfg, t.root.Clone())
}

// Config returns the tree shape of t.
func (t Text) Config() btree.Config {
	return t.cfg
}

// String returns the complete text as a Go string. This may be an expensive
// operation, as it will allocate a buffer for all the bytes of the text and
// collect all fragments to a single continuous string.
func (t Text) String() string {
	if t.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(t.Len()))
	for c := range t.Chunks() {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// IsVoid reports whether the text has no bytes.
func (t Text) IsVoid() bool {
	return t.root == nil
}

// Len returns the text length in bytes.
func (t Text) Len() uint64 {
	return t.Summary().Bytes
}

// Summary returns the aggregate byte/rune/line/chunk counts for the text.
func (t Text) Summary() chunk.Summary {
	if t.root == nil {
		return chunk.Summary{}
	}
	return t.root.Info()
}

// CharCount returns the number of runes in the text.
func (t Text) CharCount() uint64 {
	return t.Summary().Chars
}

// LineCount returns the number of newline characters in the text.
func (t Text) LineCount() uint64 {
	return t.Summary().Lines
}

// FragmentCount returns the number of chunks the text is internally split into.
func (t Text) FragmentCount() int {
	return int(t.Summary().Chunks)
}

// Height returns the height of the text's tree; 0 for an empty text.
func (t Text) Height() int {
	if t.root == nil {
		return 0
	}
	return t.root.Height()
}

// Chunks returns an iterator over all chunks in logical order.
func (t Text) Chunks() iter.Seq[chunk.Chunk] {
	if t.root == nil {
		return func(func(chunk.Chunk) bool) {}
	}
	return btree.Leaves(*t.root)
}

// EachChunk visits all chunks in logical order.
//
// The callback receives each chunk and its starting byte offset. Iteration
// stops at the first callback error and returns that error to the caller.
func (t Text) EachChunk(f func(chunk.Chunk, uint64) error) error {
	if t.root == nil {
		return nil
	}
	for at, leaf := range btree.LeafNodes(*t.root, chunk.Summary{}) {
		c, _ := leaf.Leaf()
		if err := f(c, at.Bytes); err != nil {
			return err
		}
	}
	return nil
}

// Check validates the tree structure of t: its shape and its summaries.
func (t Text) Check() error {
	if t.root == nil {
		return nil
	}
	if err := btree.Check(t.cfg, *t.root); err != nil {
		return err
	}
	return btree.CheckInfo(*t.root, btree.Equal[chunk.Summary])
}

// Dump renders the tree structure of t as indented text.
func (t Text) Dump() string {
	if t.root == nil {
		return "<empty>\n"
	}
	return btree.Dump(*t.root, chunkLabel)
}

// Dot outputs the tree structure of t in Graphviz DOT format (for debugging
// purposes).
func (t Text) Dot(w io.Writer) error {
	if t.root == nil {
		_, err := io.WriteString(w, "strict digraph {\n}\n")
		return err
	}
	return btree.ToDot(w, *t.root, chunkLabel)
}

func chunkLabel(c chunk.Chunk) string {
	return strconv.Quote(c.String())
}
