package sumrope

import (
	"fmt"
	"slices"

	"github.com/npillmayer/sumrope/btree"
	"github.com/npillmayer/sumrope/chunk"
)

// Concat concatenates texts and returns a new text. All texts should share
// the tree shape of the first one.
func Concat(t Text, others ...Text) Text {
	cfg := t.cfg
	var root textNode
	var ok bool
	for _, part := range append([]Text{t}, others...) {
		if part.IsVoid() {
			continue
		}
		if !ok {
			root, ok = part.root.Clone(), true
			continue
		}
		root = btree.Join(cfg, root, part.root.Clone())
	}
	return fromRoot(cfg, root, ok)
}

// Split splits a text into two new (smaller) texts right before position i.
// Split(T,i) => split T into T1 and T2, with T1=b0,...,bi-1 and T2=bi,...,bn.
func Split(t Text, i uint64) (Text, Text, error) {
	void := Text{cfg: t.cfg}
	switch {
	case i > t.Len():
		return void, void, ErrIndexOutOfBounds
	case i == 0:
		return void, t, nil
	case i == t.Len():
		return t, void, nil
	}
	c := t.cursor()
	seek(c, func(end chunk.Summary) bool { return end.Bytes > i })
	leaf, ok := c.Current().Leaf()
	assert(ok, "Split: seek did not reach a chunk")
	var head textNode
	local := int(i - c.Extra().Bytes)
	if local > 0 {
		l, r, err := leaf.Split(local)
		if err != nil {
			return void, void, fmt.Errorf("%w: split index %d: %w", ErrNotCharBoundary, i, err)
		}
		c.Replace(btree.FromLeaf[chunk.Chunk, chunk.Summary](r))
		head = btree.FromLeaf[chunk.Chunk, chunk.Summary](l)
	}
	right, _ := c.SplitOff()
	left, hasLeft := c.IntoRoot()
	if local > 0 {
		if hasLeft {
			left = btree.Join(t.cfg, left, head)
		} else {
			left, hasLeft = head, true
		}
	}
	return fromRoot(t.cfg, left, hasLeft), fromRoot(t.cfg, right, true), nil
}

// seek moves the cursor from the root down to the chunk for which pick
// first returns true. pick receives the position at the end of a candidate
// subtree.
func seek(c *textCursor, pick func(end chunk.Summary) bool) {
	for {
		base := c.Extra()
		if c.DescendByExt(func(_, gathered chunk.Summary, _, _ int) bool {
			return pick(base.Gather(gathered))
		}, false) == nil {
			return
		}
	}
}

// locate finds the chunk for which pick first returns true, without an
// edit cursor. It returns the chunk and the position in front of it.
func (t Text) locate(pick func(end chunk.Summary) bool) (chunk.Chunk, chunk.Summary, bool) {
	if t.root == nil {
		return chunk.Chunk{}, chunk.Summary{}, false
	}
	var base chunk.Summary
	leaf, at, ok := btree.Locate(*t.root, chunk.Summary{}, func(extra, gathered chunk.Summary, i, _ int) bool {
		if i == 0 {
			base = extra
		}
		return pick(base.Gather(gathered))
	})
	if !ok {
		return chunk.Chunk{}, at, false
	}
	c, _ := leaf.Leaf()
	return c, at, true
}

// Insert inserts a text c into t at index i, resulting in a new text.
// If i is greater than the length of t, an out-of-bounds error is returned.
func Insert(t Text, c Text, i uint64) (Text, error) {
	if i > t.Len() {
		return Text{cfg: t.cfg}, ErrIndexOutOfBounds
	}
	if c.IsVoid() {
		return t, nil
	}
	left, right, err := Split(t, i)
	if err != nil {
		return Text{cfg: t.cfg}, err
	}
	return Concat(left, c, right), nil
}

// Cut cuts out a substring [i...i+l) from a text. It returns a new text
// without the cut-out segment and the cut segment itself.
func Cut(t Text, i, l uint64) (Text, Text, error) {
	void := Text{cfg: t.cfg}
	if i > t.Len() || l > t.Len()-i {
		return void, void, ErrIndexOutOfBounds
	}
	if l == 0 {
		return t, void, nil
	}
	left, rest, err := Split(t, i)
	if err != nil {
		return void, void, err
	}
	mid, right, err := Split(rest, l)
	if err != nil {
		return void, void, err
	}
	return Concat(left, right), mid, nil
}

// Substr creates a new text from the bytes [i...i+l) of t.
func Substr(t Text, i, l uint64) (Text, error) {
	void := Text{cfg: t.cfg}
	if i > t.Len() || l > t.Len()-i {
		return void, ErrIndexOutOfBounds
	}
	if l == 0 {
		return void, nil
	}
	_, rest, err := Split(t, i)
	if err != nil {
		return void, err
	}
	sub, _, err := Split(rest, l)
	return sub, err
}

// Report outputs a substring: Report(i,l) => outputs the string bi,...,bi+l-1.
func (t Text) Report(i, l uint64) (string, error) {
	sub, err := Substr(t, i, l)
	if err != nil {
		return "", err
	}
	return sub.String(), nil
}

// Index returns the chunk that includes byte position i, together with the
// position of i within that chunk.
func (t Text) Index(i uint64) (chunk.Chunk, uint64, error) {
	if i >= t.Len() {
		return chunk.Chunk{}, 0, ErrIndexOutOfBounds
	}
	c, at, ok := t.locate(func(end chunk.Summary) bool { return end.Bytes > i })
	assert(ok, "Index: position not found in tree")
	return c, i - at.Bytes, nil
}

// Append returns a text with s appended to t.
func (t Text) Append(s string) (Text, error) {
	other, err := t.fragment(s)
	if err != nil {
		return t, err
	}
	return Concat(t, other), nil
}

// Prepend returns a text with s put in front of t.
func (t Text) Prepend(s string) (Text, error) {
	other, err := t.fragment(s)
	if err != nil {
		return t, err
	}
	return Concat(other, t), nil
}

// fragment creates a text from s with the tree shape of t.
func (t Text) fragment(s string) (Text, error) {
	parts, err := chunk.Fragment([]byte(s))
	if err != nil {
		return Text{cfg: t.cfg}, err
	}
	return FromChunks(t.cfg, slices.Values(parts)), nil
}
