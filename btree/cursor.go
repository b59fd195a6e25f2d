package btree

import "iter"

// Cursor reads the leaves of a tree sequentially, from left to right.
// It never changes the tree and may be used while other trees share nodes
// with it.
type Cursor[L Leaf[N], N Info[N]] struct {
	root    Node[L, N]
	empty   bool
	started bool
	stack   []cursorFrame[L, N]
}

type cursorFrame[L Leaf[N], N Info[N]] struct {
	node Node[L, N]
	next int // index of the next child to visit
}

// NewCursor creates a read-only cursor positioned before the first leaf of root.
func NewCursor[L Leaf[N], N Info[N]](root Node[L, N]) *Cursor[L, N] {
	return &Cursor[L, N]{
		root:  root,
		stack: make([]cursorFrame[L, N], 0, root.height+1),
	}
}

// EmptyCursor creates a read-only cursor over an empty tree.
func EmptyCursor[L Leaf[N], N Info[N]]() *Cursor[L, N] {
	return &Cursor[L, N]{empty: true}
}

// NextLeaf returns the next leaf value. After the last leaf it keeps
// returning false.
func (c *Cursor[L, N]) NextLeaf() (L, bool) {
	if !c.started {
		c.started = true
		if !c.empty {
			c.stack = append(c.stack, cursorFrame[L, N]{node: c.root})
		}
	}
	for len(c.stack) > 0 {
		top := &c.stack[len(c.stack)-1]
		if top.node.IsLeaf() {
			leaf := top.node.leaf
			c.stack = c.stack[:len(c.stack)-1]
			return leaf, true
		}
		list := top.node.childList()
		if top.next >= len(list) {
			c.stack = c.stack[:len(c.stack)-1]
			continue
		}
		child := list[top.next]
		top.next++
		c.stack = append(c.stack, cursorFrame[L, N]{node: child})
	}
	var zero L
	return zero, false
}

// Reset positions the cursor before the first leaf again.
func (c *Cursor[L, N]) Reset() {
	c.started = false
	c.stack = c.stack[:0]
}

// Leaves returns an iterator over the leaf values of the tree rooted at root.
func Leaves[L Leaf[N], N Info[N]](root Node[L, N]) iter.Seq[L] {
	return func(yield func(L) bool) {
		c := NewCursor(root)
		for {
			leaf, ok := c.NextLeaf()
			if !ok || !yield(leaf) {
				return
			}
		}
	}
}

// LeafNodes returns an iterator over the leaf nodes of root, together with
// the path info in effect at each leaf.
func LeafNodes[L Leaf[N], N Info[N], P PathInfo[P, N]](root Node[L, N], extra P) iter.Seq2[P, Node[L, N]] {
	return func(yield func(P, Node[L, N]) bool) {
		walkLeaves(root, extra, yield)
	}
}

func walkLeaves[L Leaf[N], N Info[N], P PathInfo[P, N]](n Node[L, N], extra P,
	yield func(P, Node[L, N]) bool) bool {
	//
	if n.IsLeaf() {
		return yield(extra, n)
	}
	for _, child := range n.childList() {
		if !walkLeaves(child, extra, yield) {
			return false
		}
		extra = extra.Extend(child.info)
	}
	return true
}

// Locate descends from root to a leaf without changing the tree. At every
// internal node it selects the child as Traverse does with f. Locate returns
// the leaf node and the path info in effect for it, starting from extra at
// root. ok is false if f rejects all children of some node.
func Locate[L Leaf[N], N Info[N], P PathInfo[P, N]](root Node[L, N], extra P,
	f func(extra P, gathered N, i, j int) bool) (leaf Node[L, N], at P, ok bool) {
	//
	n := root
	for !n.IsLeaf() {
		var idx int
		if idx, extra, ok = Traverse(n, extra, f); !ok {
			return leaf, extra, false
		}
		n = n.childList()[idx]
	}
	return n, extra, true
}
