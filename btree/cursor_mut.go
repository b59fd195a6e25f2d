package btree

// MutCursor is a zipper for editing a tree.
//
// The cursor holds one node, lifted out of its parent, plus a stack of
// ascent steps. A step records the parent's children with the held node
// absent, the slot the held node came from, and the path info in effect for
// the held node at that level. Ascending puts the held node back and rebuilds
// the parent, recomputing its aggregate.
//
// Child arrays are made exclusive (copied if shared) before they are changed,
// so trees sharing nodes with the edited one are never affected.
//
// States: empty (no tree), at the root (no steps), at depth n (n steps).
type MutCursor[L Leaf[N], N Info[N], P PathInfo[P, N]] struct {
	cfg   Config
	cur   Node[L, N]
	held  bool // false iff the cursor is empty
	steps []step[L, N, P]
}

type step[L Leaf[N], N Info[N], P PathInfo[P, N]] struct {
	siblings children[L, N] // parent's children without the held node
	idx      int            // slot of the held node in siblings
	extra    P              // path info in effect for the held node
}

// NewMutCursor creates an empty cursor.
func NewMutCursor[L Leaf[N], N Info[N], P PathInfo[P, N]](cfg Config) *MutCursor[L, N, P] {
	return &MutCursor[L, N, P]{cfg: cfg.mustValidate()}
}

// FromNode creates a cursor positioned at root. The cursor takes ownership
// of root; to keep using the tree elsewhere, pass root.Clone().
func FromNode[L Leaf[N], N Info[N], P PathInfo[P, N]](cfg Config, root Node[L, N]) *MutCursor[L, N, P] {
	return &MutCursor[L, N, P]{
		cfg:  cfg.mustValidate(),
		cur:  root,
		held: true,
	}
}

// Config returns the tree shape used by the cursor.
func (c *MutCursor[L, N, P]) Config() Config {
	return c.cfg
}

// IsEmpty is true if the cursor holds no tree at all.
func (c *MutCursor[L, N, P]) IsEmpty() bool {
	return !c.held
}

// Depth returns the number of ascent steps, i.e. 0 at the root.
func (c *MutCursor[L, N, P]) Depth() int {
	return len(c.steps)
}

// IntoRoot ascends to the root and hands out the finished tree. The cursor
// is empty afterwards. ok is false if the cursor was empty.
func (c *MutCursor[L, N, P]) IntoRoot() (root Node[L, N], ok bool) {
	c.Reset()
	if !c.held {
		return root, false
	}
	root = c.cur
	c.cur, c.held = Node[L, N]{}, false
	return root, true
}

// Current returns the held node, or nil if the cursor is empty.
//
// The node may be replaced through the pointer by a node of equal height.
func (c *MutCursor[L, N, P]) Current() *Node[L, N] {
	if !c.held {
		return nil
	}
	return &c.cur
}

// Replace exchanges the held node for node, which must have the same height,
// and returns the previous one.
func (c *MutCursor[L, N, P]) Replace(node Node[L, N]) (Node[L, N], bool) {
	if !c.held {
		return Node[L, N]{}, false
	}
	assert(node.height == c.cur.height, "replacement node has a different height")
	old := c.cur
	c.cur = node
	return old, true
}

// Extra returns the path info in effect for the held node. At the root it is
// the identity.
func (c *MutCursor[L, N, P]) Extra() P {
	if len(c.steps) == 0 {
		var p P
		return p.Identity()
	}
	return c.steps[len(c.steps)-1].extra
}

// Reset ascends until the root is reached.
func (c *MutCursor[L, N, P]) Reset() {
	for c.Ascend() != nil {
	}
}

// Ascend moves one level up: the held node is put back into its parent's
// children, the parent is rebuilt and becomes the held node. Ascend returns
// nil if the cursor is empty or already at the root.
func (c *MutCursor[L, N, P]) Ascend() *Node[L, N] {
	if !c.held || len(c.steps) == 0 {
		return nil
	}
	st := c.popStep()
	kids := st.siblings.mut()
	insertAt(kids.items(), st.idx, c.cur)
	c.cur = makeInternal(kids)
	return &c.cur
}

// Descend moves to the child at index idx of the held node.
// It returns nil, without moving, if there is no such child.
func (c *MutCursor[L, N, P]) Descend(idx int) *Node[L, N] {
	return c.DescendByExt(func(_ P, _ N, i, _ int) bool {
		return i == idx
	}, false)
}

// DescendLast moves to the child at reverse index idx of the held node,
// i.e. DescendLast(0) selects the last child.
func (c *MutCursor[L, N, P]) DescendLast(idx int) *Node[L, N] {
	return c.DescendByExt(func(_ P, _ N, _, j int) bool {
		return j == idx
	}, true)
}

// DescendBy moves to the first child for which f returns true. f receives the
// aggregate gathered over the visited children, including the candidate, and
// the forward and reverse index of the candidate. With reversed set, children
// are visited from right to left.
func (c *MutCursor[L, N, P]) DescendBy(f func(gathered N, i, j int) bool, reversed bool) *Node[L, N] {
	return c.DescendByExt(func(_ P, gathered N, i, j int) bool {
		return f(gathered, i, j)
	}, reversed)
}

// DescendByExt is like DescendBy, but f additionally receives the path info
// in effect before the candidate child. See Traverse and TraverseRev.
//
// DescendByExt returns nil, without moving, if the cursor is empty, the held
// node is a leaf, or no child matches.
func (c *MutCursor[L, N, P]) DescendByExt(f func(extra P, gathered N, i, j int) bool, reversed bool) *Node[L, N] {
	if !c.held || c.cur.IsLeaf() {
		return nil
	}
	var idx int
	var extra P
	var ok bool
	if reversed {
		idx, extra, ok = TraverseRev(c.cur, c.Extra(), f)
	} else {
		idx, extra, ok = Traverse(c.cur, c.Extra(), f)
	}
	if !ok {
		return nil
	}
	kids := c.cur.kids.mut()
	child := removeAt(kids.items(), idx)
	c.steps = append(c.steps, step[L, N, P]{
		siblings: kids,
		idx:      idx,
		extra:    extra,
	})
	c.cur = child
	return &c.cur
}

// Insert descends to the leftmost leaf below the held node and inserts leaf
// before it. Afterwards the cursor holds the new leaf, an ancestor of it, or
// the right sibling of an ancestor.
func (c *MutCursor[L, N, P]) Insert(leaf L) {
	for c.Descend(0) != nil {
	}
	c.insertRaw(FromLeaf[L, N](leaf), false)
}

// InsertAfter descends to the rightmost leaf below the held node and inserts
// leaf after it. The resulting position is as for Insert.
func (c *MutCursor[L, N, P]) InsertAfter(leaf L) {
	for c.DescendLast(0) != nil {
	}
	c.insertRaw(FromLeaf[L, N](leaf), true)
}

// InsertNode inserts a node next to the held node, before or after it. node
// must have the height of the held node. The cursor takes ownership of node.
func (c *MutCursor[L, N, P]) InsertNode(node Node[L, N], after bool) {
	c.insertRaw(node, after)
}

func (c *MutCursor[L, N, P]) insertRaw(node Node[L, N], after bool) {
	if !c.held {
		c.cur, c.held = node, true
		return
	}
	assert(node.height == c.cur.height, "inserted node does not match the height of the cursor position")
	if len(c.steps) == 0 {
		if after {
			c.cur = Concat(c.cfg, c.cur, node)
		} else {
			c.cur = Concat(c.cfg, node, c.cur)
		}
		tracer().Debugf("btree: root grows to height %d", c.cur.height)
		return
	}
	st := c.popStep()
	kids := st.siblings.mut()
	list := kids.items()
	insertAt(list, st.idx, c.cur)
	at := st.idx
	if after {
		at++
	}
	if sibling, split := c.insertMaybeSplit(list, at, node); split {
		c.cur = makeInternal(kids)
		c.insertRaw(sibling, true)
		return
	}
	prev := c.cur
	c.cur = removeAt(list, at)
	if after {
		st.extra = st.extra.Extend(prev.info)
	}
	st.siblings, st.idx = kids, at
	c.steps = append(c.steps, st)
}

// insertMaybeSplit inserts node at slot at. If the array overflows, the
// first MinChildren+1 entries stay and the rest moves to a new sibling,
// which is returned.
func (c *MutCursor[L, N, P]) insertMaybeSplit(list *[]Node[L, N], at int, node Node[L, N]) (Node[L, N], bool) {
	insertAt(list, at, node)
	if len(*list) <= c.cfg.MaxChildren {
		return Node[L, N]{}, false
	}
	keep := c.cfg.MinChildren + 1
	rest := make([]Node[L, N], len(*list)-keep, c.cfg.MaxChildren+1)
	copy(rest, (*list)[keep:])
	truncate(list, keep)
	tracer().Debugf("btree: split node of height %d into %d + %d", node.height+1, keep, len(rest))
	return makeInternal(newChildren(c.cfg, rest)), true
}

func (c *MutCursor[L, N, P]) popStep() step[L, N, P] {
	assert(len(c.steps) > 0, "pop from empty step stack")
	st := c.steps[len(c.steps)-1]
	c.steps[len(c.steps)-1] = step[L, N, P]{}
	c.steps = c.steps[:len(c.steps)-1]
	return st
}

// rebuild creates an internal node of the given height over kids, which may
// transiently be empty during rebalancing.
func rebuild[L Leaf[N], N Info[N]](kids children[L, N], height int) Node[L, N] {
	if len(kids.nodes()) == 0 {
		return Node[L, N]{height: height, kids: kids}
	}
	return makeInternal(kids)
}
