package btree

// Join concatenates two trees of arbitrary heights, left before right, and
// returns the root of the result. The result keeps the shape invariants if
// the inputs do. Join takes ownership of both trees.
//
// The smaller tree is attached at the matching height along the right spine
// of left (or the left spine of right), splitting nodes on the way up as
// necessary. Subtrees not on that spine stay shared.
func Join[L Leaf[N], N Info[N]](cfg Config, left, right Node[L, N]) Node[L, N] {
	cfg = cfg.mustValidate()
	l, r, two := joinNodes(cfg, left, right)
	if !two {
		return l
	}
	return Concat(cfg, l, r)
}

// joinNodes joins a and b into one node of height max(a,b), or into two
// siblings of that height if one would overflow.
func joinNodes[L Leaf[N], N Info[N]](cfg Config, a, b Node[L, N]) (Node[L, N], Node[L, N], bool) {
	switch {
	case a.height == b.height:
		if a.IsLeaf() {
			return a, b, true
		}
		if a.Len() >= cfg.MinChildren && b.Len() >= cfg.MinChildren {
			return a, b, true
		}
		ak, bk := a.kids.mut(), b.kids.mut()
		*ak.items() = append(*ak.items(), bk.nodes()...)
		bk.drain()
		return splitOverfull(cfg, ak)
	case a.height > b.height:
		ak := a.kids.mut()
		list := ak.items()
		last := removeAt(list, len(*list)-1)
		l, r, two := joinNodes(cfg, last, b)
		insertAt(list, len(*list), l)
		if two {
			insertAt(list, len(*list), r)
		}
		return splitOverfull(cfg, ak)
	default:
		bk := b.kids.mut()
		list := bk.items()
		first := removeAt(list, 0)
		l, r, two := joinNodes(cfg, a, first)
		if two {
			insertAt(list, 0, l, r)
		} else {
			insertAt(list, 0, l)
		}
		return splitOverfull(cfg, bk)
	}
}

// splitOverfull builds a node over kids, or two nodes splitting kids in
// halves if there are more than MaxChildren of them.
func splitOverfull[L Leaf[N], N Info[N]](cfg Config, kids children[L, N]) (Node[L, N], Node[L, N], bool) {
	list := kids.items()
	if len(*list) <= cfg.MaxChildren {
		return makeInternal(kids), Node[L, N]{}, false
	}
	mid := len(*list) / 2
	rest := make([]Node[L, N], len(*list)-mid, cfg.MaxChildren+1)
	copy(rest, (*list)[mid:])
	truncate(list, mid)
	tracer().Debugf("btree: join splits node of height %d into %d + %d",
		(*list)[0].height+1, mid, len(rest))
	return makeInternal(kids), makeInternal(newChildren(cfg, rest)), true
}
