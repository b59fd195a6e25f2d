package btree

// SplitOff splits the tree at the cursor position. The held node, with all
// its leaves, and everything right of it is returned as a new tree.
// Everything left of the held node stays with the cursor, which is
// positioned at the root of that remaining tree (or empty, if nothing is
// left). ok is false if the cursor was empty.
//
// Both halves are reassembled from the sibling lists along the path with
// Join, so each satisfies the shape invariants on its own.
func (c *MutCursor[L, N, P]) SplitOff() (right Node[L, N], ok bool) {
	if !c.held {
		return right, false
	}
	right = c.cur
	lefts := make([][]Node[L, N], 0, len(c.steps)) // innermost level first
	for len(c.steps) > 0 {
		st := c.popStep()
		kids := st.siblings.mut()
		list := kids.nodes()
		for _, sibling := range list[st.idx:] {
			right = Join(c.cfg, right, sibling)
		}
		lefts = append(lefts, append([]Node[L, N](nil), list[:st.idx]...))
		kids.drain()
	}
	c.cur, c.held = Node[L, N]{}, false
	for i := len(lefts) - 1; i >= 0; i-- {
		for _, node := range lefts[i] {
			if !c.held {
				c.cur, c.held = node, true
				continue
			}
			c.cur = Join(c.cfg, c.cur, node)
		}
	}
	tracer().Debugf("btree: split off tree of height %d", right.height)
	return right, true
}
