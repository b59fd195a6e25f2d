package btree

// Remove detaches the child at index idx of the held node and returns it.
// The held node must not be a leaf. ok is false for an empty cursor or an
// index out of range.
//
// If the held node drops below the minimum fan-out, it borrows a child from
// a sibling or is merged with one. Merges may underflow the parent, which is
// then rebalanced in turn. A root left with a single internal child is
// replaced by that child; a root left without children empties the cursor.
//
// Afterwards the cursor holds the node which shifted into slot idx (or the
// one left of it, if there is none to the right), or, if the level of the
// removed node has been merged away, an ancestor of its former location.
func (c *MutCursor[L, N, P]) Remove(idx int) (removed Node[L, N], ok bool) {
	if !c.held {
		return removed, false
	}
	assert(!c.cur.IsLeaf(), "remove called at a leaf")
	if idx < 0 || idx >= c.cur.Len() {
		return removed, false
	}
	kids := c.cur.kids.mut()
	removed = removeAt(kids.items(), idx)
	c.cur = rebuild(kids, c.cur.height)
	slot, stay := c.rebalance(idx)
	if stay {
		if n := c.cur.Len(); slot < n {
			c.Descend(slot)
		} else if n > 0 {
			c.Descend(n - 1)
		}
	}
	return removed, true
}

// rebalance restores the fan-out of the held node, which has lost the child
// at slot. It works bottom-up, trying in turn to borrow from the left
// sibling, borrow from the right sibling, merge with the left sibling and
// merge with the right sibling.
//
// rebalance returns slot, adjusted for children moved in from the left, and
// whether the cursor still holds the node which lost the child.
func (c *MutCursor[L, N, P]) rebalance(slot int) (int, bool) {
	minFill := c.cfg.MinChildren
	same := true
	for {
		n := c.cur.Len()
		if len(c.steps) == 0 {
			switch {
			case n == 0:
				c.cur.kids.drain()
				c.cur, c.held = Node[L, N]{}, false
				tracer().Debugf("btree: last leaf removed, tree is empty")
				return 0, false
			case n == 1 && c.cur.height > 1:
				kids := c.cur.kids.mut()
				c.cur = removeAt(kids.items(), 0)
				kids.drain()
				tracer().Debugf("btree: root collapses to height %d", c.cur.height)
				same = false
				continue
			}
			return slot, same
		}
		if n >= minFill {
			return slot, same
		}
		height := c.cur.height
		st := c.popStep()
		kids := st.siblings.mut()
		list := kids.items()
		at := st.idx
		switch {
		case n == 0:
			// an emptied node is dropped, its parent lost a child
			c.cur.kids.drain()
			c.cur = rebuild(kids, height+1)
			slot, same = at, false
			continue
		case at > 0 && (*list)[at-1].Len() > minFill:
			lk := (*list)[at-1].kids.mut()
			moved := removeAt(lk.items(), len(lk.nodes())-1)
			(*list)[at-1] = makeInternal(lk)
			ck := c.cur.kids.mut()
			insertAt(ck.items(), 0, moved)
			c.cur = makeInternal(ck)
			st.extra = st.extra.ExtendInv(moved.info)
			st.siblings = kids
			c.steps = append(c.steps, st)
			tracer().Debugf("btree: node of height %d borrows from left sibling", height)
			return slot + 1, same
		case at < len(*list) && (*list)[at].Len() > minFill:
			rk := (*list)[at].kids.mut()
			moved := removeAt(rk.items(), 0)
			(*list)[at] = makeInternal(rk)
			ck := c.cur.kids.mut()
			insertAt(ck.items(), len(ck.nodes()), moved)
			c.cur = makeInternal(ck)
			st.siblings = kids
			c.steps = append(c.steps, st)
			tracer().Debugf("btree: node of height %d borrows from right sibling", height)
			return slot, same
		case at > 0:
			left := removeAt(list, at-1)
			lk := left.kids.mut()
			ck := c.cur.kids.mut()
			*lk.items() = append(*lk.items(), ck.nodes()...)
			ck.drain()
			insertAt(list, at-1, makeInternal(lk))
			slot = at - 1
			tracer().Debugf("btree: node of height %d merged into left sibling", height)
		case at < len(*list):
			right := removeAt(list, at)
			rk := right.kids.mut()
			ck := c.cur.kids.mut()
			*ck.items() = append(*ck.items(), rk.nodes()...)
			rk.drain()
			insertAt(list, at, makeInternal(ck))
			slot = at
			tracer().Debugf("btree: node of height %d merged with right sibling", height)
		default:
			// only child, its parent is the root
			insertAt(list, at, c.cur)
			slot = at
		}
		c.cur = makeInternal(kids)
		same = false
	}
}
