package sumrope

import (
	"fmt"

	"github.com/npillmayer/sumrope/chunk"
)

// Pos is a position within a text, counted in bytes, in runes and in
// newlines in front of it. Line therefore is the 0-based line number.
type Pos struct {
	Byte uint64
	Char uint64
	Line uint64
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d|%d|%d)", p.Byte, p.Char, p.Line)
}

// PosStart returns the zero position of a text.
func (t Text) PosStart() Pos {
	return Pos{}
}

// PosEnd returns the end position of a text.
func (t Text) PosEnd() Pos {
	s := t.Summary()
	return Pos{Byte: s.Bytes, Char: s.Chars, Line: s.Lines}
}

// PosFromByte creates a position from a byte offset, which has to be at a
// rune boundary.
func (t Text) PosFromByte(b uint64) (Pos, error) {
	if b > t.Len() {
		return Pos{}, ErrIndexOutOfBounds
	}
	if b == t.Len() {
		return t.PosEnd(), nil
	}
	c, at, _ := t.locate(func(end chunk.Summary) bool { return end.Bytes > b })
	local := int(b - at.Bytes)
	if !c.IsCharBoundary(local) {
		return Pos{}, fmt.Errorf("%w: byte %d", ErrNotCharBoundary, b)
	}
	return Pos{
		Byte: b,
		Char: at.Chars + uint64(c.CharsBefore(local)),
		Line: at.Lines + uint64(c.LinesBefore(local)),
	}, nil
}

// CharOffset returns the byte offset of the rune with index k. k equal to
// the number of runes yields the length of t.
func (t Text) CharOffset(k uint64) (uint64, error) {
	total := t.Summary()
	if k > total.Chars {
		return 0, ErrIndexOutOfBounds
	}
	if k == total.Chars {
		return total.Bytes, nil
	}
	c, at, _ := t.locate(func(end chunk.Summary) bool { return end.Chars > k })
	local, err := c.CharOffset(int(k - at.Chars))
	assert(err == nil, "CharOffset: chunk summary out of sync")
	return at.Bytes + uint64(local), nil
}

// LineOffset returns the byte offset of the start of line number line,
// counting from 0. Lines are terminated by '\n'; the text after the last
// newline is a line of its own, possibly empty.
func (t Text) LineOffset(line uint64) (uint64, error) {
	if line == 0 {
		return 0, nil
	}
	if line > t.LineCount() {
		return 0, ErrIndexOutOfBounds
	}
	c, at, _ := t.locate(func(end chunk.Summary) bool { return end.Lines >= line })
	local, err := c.LineStart(int(line - at.Lines))
	assert(err == nil, "LineOffset: chunk summary out of sync")
	return at.Bytes + uint64(local), nil
}

// Line returns the text of line number line, without its newline.
func (t Text) Line(line uint64) (string, error) {
	start, err := t.LineOffset(line)
	if err != nil {
		return "", err
	}
	end := t.Len()
	if line < t.LineCount() {
		next, _ := t.LineOffset(line + 1)
		end = next - 1
	}
	return t.Report(start, end-start)
}
