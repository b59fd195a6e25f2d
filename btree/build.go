package btree

import (
	"iter"
	"slices"
)

// Build creates a tree bottom-up from an ordered sequence of leaves and
// returns a cursor holding it (at the position of the last insertion; call
// IntoRoot for the finished tree).
//
// Leaves are packed into nodes of height 1, up to MaxChildren at a time, and
// every such node is inserted after the rightmost one. This avoids the split
// cascades of inserting leaf by leaf. The last two packs are balanced, so no
// node of height 1 except a root ends up with less than MinChildren leaves.
func Build[L Leaf[N], N Info[N], P PathInfo[P, N]](cfg Config, leaves iter.Seq[L]) *MutCursor[L, N, P] {
	c := NewMutCursor[L, N, P](cfg)
	maxFill, minFill := c.cfg.MaxChildren, c.cfg.MinChildren
	buf := make([]Node[L, N], 0, maxFill+minFill)
	for leaf := range leaves {
		buf = append(buf, FromLeaf[L, N](leaf))
		if len(buf) == maxFill+minFill {
			c.appendPack(buf[:maxFill])
			n := copy(buf, buf[maxFill:])
			clear(buf[n:])
			buf = buf[:n]
		}
	}
	if len(buf) > maxFill {
		half := len(buf) / 2
		c.appendPack(buf[:half])
		c.appendPack(buf[half:])
	} else if len(buf) > 0 {
		c.appendPack(buf)
	}
	return c
}

// BuildSlice creates a tree from a slice of leaves, see Build.
func BuildSlice[L Leaf[N], N Info[N], P PathInfo[P, N]](cfg Config, leaves []L) *MutCursor[L, N, P] {
	return Build[L, N, P](cfg, slices.Values(leaves))
}

// appendPack wraps leaf nodes into a node of height 1 and inserts it after
// the rightmost node of height 1.
func (c *MutCursor[L, N, P]) appendPack(pack []Node[L, N]) {
	for c.held && c.cur.height > 1 {
		if c.DescendLast(0) == nil {
			break
		}
	}
	list := make([]Node[L, N], len(pack), c.cfg.MaxChildren+1)
	copy(list, pack)
	c.insertRaw(makeInternal(newChildren(c.cfg, list)), true)
}
