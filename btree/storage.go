package btree

import "sync/atomic"

// children is a handle to the array of child nodes of an internal node.
//
// Every Node value owns exactly one handle. Handing a node to a second owner
// requires clone. Mutation requires mut, which returns a handle to an array
// nobody else can observe.
type children[L Leaf[N], N Info[N]] interface {
	nodes() []Node[L, N]   // read-only view
	clone() children[L, N] // handle for a second owner
	mut() children[L, N]   // exclusive handle, consumes the receiver
	items() *[]Node[L, N]  // mutable access, valid on results of mut only
	release()              // drop the handle and the children's handles
	drain()                // drop the handle after its nodes have been moved out
}

func newChildren[L Leaf[N], N Info[N]](cfg Config, list []Node[L, N]) children[L, N] {
	if cfg.Storage == ExclusiveStorage {
		return &ownedChildren[L, N]{list: list}
	}
	c := &sharedChildren[L, N]{list: list}
	c.ref.Store(1)
	return c
}

// --- Shared storage --------------------------------------------------------

// sharedChildren is an atomically reference-counted child array.
type sharedChildren[L Leaf[N], N Info[N]] struct {
	ref  atomic.Int32
	list []Node[L, N]
}

func (c *sharedChildren[L, N]) nodes() []Node[L, N] {
	return c.list
}

func (c *sharedChildren[L, N]) clone() children[L, N] {
	c.ref.Add(1)
	return c
}

// mut returns c if it is the only handle. Otherwise it copies the array one
// level deep, adds a reference to every child and drops a reference from c.
func (c *sharedChildren[L, N]) mut() children[L, N] {
	if c.ref.Load() == 1 {
		return c
	}
	list := make([]Node[L, N], len(c.list), len(c.list)+1)
	for i := range c.list {
		list[i] = c.list[i].share()
	}
	c.release()
	cp := &sharedChildren[L, N]{list: list}
	cp.ref.Store(1)
	return cp
}

func (c *sharedChildren[L, N]) items() *[]Node[L, N] {
	assert(c.ref.Load() == 1, "mutation of a shared child array")
	return &c.list
}

func (c *sharedChildren[L, N]) release() {
	if c.ref.Add(-1) == 0 {
		for i := range c.list {
			c.list[i].Release()
		}
	}
}

func (c *sharedChildren[L, N]) drain() {
	if c.ref.Add(-1) == 0 {
		c.list = nil
	}
}

// --- Exclusive storage -----------------------------------------------------

// ownedChildren is a child array owned by exactly one node.
type ownedChildren[L Leaf[N], N Info[N]] struct {
	list []Node[L, N]
}

func (c *ownedChildren[L, N]) nodes() []Node[L, N] {
	return c.list
}

// clone deep-copies the subtree.
func (c *ownedChildren[L, N]) clone() children[L, N] {
	list := make([]Node[L, N], len(c.list))
	for i := range c.list {
		list[i] = c.list[i].share()
	}
	return &ownedChildren[L, N]{list: list}
}

func (c *ownedChildren[L, N]) mut() children[L, N] {
	return c
}

func (c *ownedChildren[L, N]) items() *[]Node[L, N] {
	return &c.list
}

func (c *ownedChildren[L, N]) release() {}

func (c *ownedChildren[L, N]) drain() {
	c.list = nil
}

// --- Slice helpers ---------------------------------------------------------

// insertAt inserts values into a slice at idx, in place.
func insertAt[T any](list *[]T, idx int, values ...T) {
	assert(idx >= 0 && idx <= len(*list), "insertAt index out of range")
	s := *list
	n := len(s)
	s = append(s, values...)
	copy(s[idx+len(values):], s[idx:n])
	copy(s[idx:], values)
	*list = s
}

// removeAt removes and returns the element at idx, in place.
func removeAt[T any](list *[]T, idx int) T {
	assert(idx >= 0 && idx < len(*list), "removeAt index out of range")
	s := *list
	item := s[idx]
	copy(s[idx:], s[idx+1:])
	var zero T
	s[len(s)-1] = zero
	*list = s[:len(s)-1]
	return item
}

// truncate cuts a slice to length n, clearing the tail for the garbage collector.
func truncate[T any](list *[]T, n int) {
	s := *list
	var zero T
	for i := n; i < len(s); i++ {
		s[i] = zero
	}
	*list = s[:n]
}
