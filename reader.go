package sumrope

import (
	"io"

	"github.com/npillmayer/sumrope/btree"
	"github.com/npillmayer/sumrope/chunk"
)

// Reader returns a reader for the bytes of t.
func (t Text) Reader() io.Reader {
	r := &textReader{}
	if t.root == nil {
		r.leaves = btree.EmptyCursor[chunk.Chunk, chunk.Summary]()
	} else {
		r.leaves = btree.NewCursor(*t.root)
	}
	return r
}

type textReader struct {
	leaves  *btree.Cursor[chunk.Chunk, chunk.Summary]
	pending []byte // rest of the current chunk
}

func (r *textReader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(r.pending) == 0 {
			c, ok := r.leaves.NextLeaf()
			if !ok {
				break
			}
			r.pending = c.Bytes()
		}
		k := copy(p[n:], r.pending)
		r.pending = r.pending[k:]
		n += k
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}
