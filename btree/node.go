package btree

import "fmt"

// Node is a persistent tree node. It is either a leaf, wrapping exactly one
// stored value, or an internal node with an ordered array of children of
// equal height. Every node caches its aggregate Info.
//
// Nodes are values and immutable once built. A Node owns one reference to
// its child array; use Clone to hand a node to a second owner. The zero
// value is not a valid node.
type Node[L Leaf[N], N Info[N]] struct {
	height int // 0 for leaves
	info   N
	leaf   L
	kids   children[L, N] // nil for leaves
}

// FromLeaf wraps a leaf value into a node of height 0.
func FromLeaf[L Leaf[N], N Info[N]](leaf L) Node[L, N] {
	return Node[L, N]{
		info: leaf.ComputeInfo(),
		leaf: leaf,
	}
}

// FromNodes creates an internal node from a non-empty list of equal-height
// nodes. The list may not exceed the configured maximum fan-out. FromNodes
// takes ownership of the nodes.
func FromNodes[L Leaf[N], N Info[N]](cfg Config, nodes ...Node[L, N]) Node[L, N] {
	cfg = cfg.mustValidate()
	assert(len(nodes) > 0, "cannot create an internal node without children")
	assert(len(nodes) <= cfg.MaxChildren, "too many children for an internal node")
	list := make([]Node[L, N], len(nodes), cfg.MaxChildren+1)
	copy(list, nodes)
	return makeInternal(newChildren(cfg, list))
}

// Concat creates a node of height h+1 from two nodes of equal height h.
// This is how a tree grows taller.
func Concat[L Leaf[N], N Info[N]](cfg Config, left, right Node[L, N]) Node[L, N] {
	assert(left.height == right.height, "concatenation of nodes with different heights")
	cfg = cfg.mustValidate()
	list := make([]Node[L, N], 2, cfg.MaxChildren+1)
	list[0], list[1] = left, right
	return makeInternal(newChildren(cfg, list))
}

// makeInternal builds an internal node over a non-empty child array,
// computing height and aggregate.
func makeInternal[L Leaf[N], N Info[N]](kids children[L, N]) Node[L, N] {
	list := kids.nodes()
	assert(len(list) > 0, "internal node without children")
	n := Node[L, N]{
		height: list[0].height + 1,
		info:   list[0].info,
		kids:   kids,
	}
	for _, child := range list[1:] {
		assert(child.height == list[0].height, "children of different heights")
		n.info = n.info.Gather(child.info)
	}
	return n
}

// Height returns the distance of n to its leaves. Leaves have height 0.
func (n Node[L, N]) Height() int {
	return n.height
}

// Info returns the cached aggregate of n.
func (n Node[L, N]) Info() N {
	return n.info
}

// IsLeaf is true for nodes wrapping a leaf value.
func (n Node[L, N]) IsLeaf() bool {
	return n.kids == nil
}

// Leaf returns the leaf value of a leaf node.
func (n Node[L, N]) Leaf() (L, bool) {
	if n.kids != nil {
		var zero L
		return zero, false
	}
	return n.leaf, true
}

// Len returns the number of children of an internal node, 0 for a leaf.
func (n Node[L, N]) Len() int {
	if n.kids == nil {
		return 0
	}
	return len(n.kids.nodes())
}

// Child returns the i-th child of an internal node. The child is shared
// with n, the caller owns the returned reference.
func (n Node[L, N]) Child(i int) Node[L, N] {
	assert(n.kids != nil, "leaf nodes do not have children")
	return n.kids.nodes()[i].share()
}

// Clone returns another reference to the tree rooted at n. With shared
// storage this is cheap and both references share all nodes. A mutable
// cursor will copy shared parts before changing them.
func (n Node[L, N]) Clone() Node[L, N] {
	return n.share()
}

// Release gives up the reference to the tree rooted at n. Releasing is
// optional; a tree which is never released just causes more copying.
// n may not be used afterwards.
func (n Node[L, N]) Release() {
	if n.kids != nil {
		n.kids.release()
	}
}

func (n Node[L, N]) share() Node[L, N] {
	if n.kids != nil {
		n.kids = n.kids.clone()
	}
	return n
}

func (n Node[L, N]) childList() []Node[L, N] {
	if n.kids == nil {
		return nil
	}
	return n.kids.nodes()
}

func (n Node[L, N]) String() string {
	if n.kids == nil {
		return fmt.Sprintf("leaf(%v)", n.info)
	}
	return fmt.Sprintf("node[h=%d,n=%d](%v)", n.height, n.Len(), n.info)
}

// --- Traversal -------------------------------------------------------------

// Traverse visits the children of n from left to right and stops at the
// first child for which f returns true. f receives the path info in effect
// before the candidate child, the aggregate gathered over all visited
// children including the candidate, and the forward and reverse index of
// the candidate.
//
// Traverse returns the index of the selected child and the path info in
// effect before it. ok is false for leaves or if no child matched.
func Traverse[L Leaf[N], N Info[N], P PathInfo[P, N]](n Node[L, N], extra P,
	f func(extra P, gathered N, i, j int) bool) (idx int, at P, ok bool) {
	//
	list := n.childList()
	var acc N
	for i, child := range list {
		if i == 0 {
			acc = child.info
		} else {
			acc = acc.Gather(child.info)
		}
		if f(extra, acc, i, len(list)-1-i) {
			return i, extra, true
		}
		extra = extra.Extend(child.info)
	}
	return -1, extra, false
}

// TraverseRev is like Traverse, visiting children from right to left.
// Path info starts from the end of n and is reverted child by child using
// ExtendInv, so f receives the same path info for a child as Traverse would.
func TraverseRev[L Leaf[N], N Info[N], P PathInfo[P, N]](n Node[L, N], extra P,
	f func(extra P, gathered N, i, j int) bool) (idx int, at P, ok bool) {
	//
	list := n.childList()
	if len(list) == 0 {
		return -1, extra, false
	}
	end := extra.Extend(n.info)
	var acc N
	for i := len(list) - 1; i >= 0; i-- {
		child := list[i]
		end = end.ExtendInv(child.info)
		if i == len(list)-1 {
			acc = child.info
		} else {
			acc = child.info.Gather(acc)
		}
		if f(end, acc, i, len(list)-1-i) {
			return i, end, true
		}
	}
	return -1, extra, false
}
