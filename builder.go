package sumrope

import (
	"github.com/npillmayer/sumrope/btree"
	"github.com/npillmayer/sumrope/chunk"
)

// Builder collects text fragments and finalizes them into a Text.
//
// Fragments are staged as chunks; small neighbouring chunks appended one
// after the other are merged. The tree is built in one bulk pass when Text
// is called.
type Builder struct {
	cfg   btree.Config
	front []chunk.Chunk // prepended chunks, in reverse logical order
	back  []chunk.Chunk // appended chunks, in logical order
	done  bool
	text  Text
}

// NewBuilder creates a new and empty text builder for texts of shape cfg.
// It panics if cfg is not a valid tree shape.
func NewBuilder(cfg btree.Config) *Builder {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return &Builder{cfg: cfg}
}

// Text returns the text built from all staged fragments.
//
// It is illegal to continue adding fragments after Text has been called, but
// Text may be called multiple times.
func (b *Builder) Text() Text {
	if b == nil {
		return Text{}
	}
	if !b.done {
		b.text = FromChunks(b.cfg, b.chunks)
		b.done = true
		b.front, b.back = nil, nil
		tracer().Debugf("text builder: built text of %d bytes in %d chunks",
			b.text.Len(), b.text.FragmentCount())
	}
	return b.text
}

// Reset drops the staged build and prepares the builder for a fresh build.
func (b *Builder) Reset() {
	b.front, b.back = nil, nil
	b.done = false
	b.text = Text{}
}

// AppendString appends UTF-8 text to the staged build.
func (b *Builder) AppendString(text string) error {
	return b.AppendBytes([]byte(text))
}

// PrependString prepends UTF-8 text to the staged build.
func (b *Builder) PrependString(text string) error {
	return b.PrependBytes([]byte(text))
}

// AppendBytes appends UTF-8 bytes to the staged build.
func (b *Builder) AppendBytes(text []byte) error {
	parts, err := b.fragment(text)
	if err != nil {
		return err
	}
	for _, c := range parts {
		b.appendChunk(c)
	}
	return nil
}

// PrependBytes prepends UTF-8 bytes to the staged build.
func (b *Builder) PrependBytes(text []byte) error {
	parts, err := b.fragment(text)
	if err != nil {
		return err
	}
	for i := len(parts) - 1; i >= 0; i-- {
		b.front = append(b.front, parts[i])
	}
	return nil
}

// AppendChunk appends a pre-built chunk.
func (b *Builder) AppendChunk(c chunk.Chunk) error {
	if err := b.check(); err != nil {
		return err
	}
	b.appendChunk(c)
	return nil
}

// PrependChunk prepends a pre-built chunk.
func (b *Builder) PrependChunk(c chunk.Chunk) error {
	if err := b.check(); err != nil {
		return err
	}
	if !c.IsEmpty() {
		b.front = append(b.front, c)
	}
	return nil
}

func (b *Builder) check() error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrTextCompleted
	}
	return nil
}

func (b *Builder) fragment(text []byte) ([]chunk.Chunk, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	return chunk.Fragment(text)
}

func (b *Builder) appendChunk(c chunk.Chunk) {
	if c.IsEmpty() {
		return
	}
	if last := len(b.back) - 1; last >= 0 {
		if merged, ok := b.back[last].Append(c); ok {
			b.back[last] = merged
			return
		}
	}
	b.back = append(b.back, c)
}

// chunks yields the staged chunks in logical order.
func (b *Builder) chunks(yield func(chunk.Chunk) bool) {
	for i := len(b.front) - 1; i >= 0; i-- {
		if !yield(b.front[i]) {
			return
		}
	}
	for _, c := range b.back {
		if !yield(c) {
			return
		}
	}
}
