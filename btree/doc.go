/*
Package btree provides a generic, persistent B-tree of summarized leaves,
edited through a zipper-style mutable cursor.

The tree stores an ordered sequence of leaf values. Every subtree caches an
aggregate (`Info`) which is the gather of its children's aggregates. While a
cursor descends, it threads a second, path-dependent value (`PathInfo`) from
the root down, e.g. the offset of a subtree within the whole sequence.

Nodes are immutable values. Internal nodes hold a handle to an array of
children; arrays may be shared between many trees. Mutation always goes
through a copy-on-write step, which copies an array (one level deep) exactly
when it is about to be changed and other holders exist.

Overview:
  - `Leaf`, `Info` and `PathInfo` contracts with unit and counting instances,
  - `Node` construction (`FromLeaf`, `FromNodes`, `Concat`, `Join`),
  - forward and reverse traversal primitives (`Traverse`, `TraverseRev`),
  - shared (reference-counted) and exclusive child-array storage,
  - read-only `Cursor` for sequential leaf access,
  - `MutCursor`: descend/ascend, insertion with splitting, removal with
    borrow/merge rebalancing, split-off,
  - bulk construction from an `iter.Seq` of leaves (`Build`),
  - invariant checking (`Check`, `CheckInfo`) and debug output (`ToDot`, `Dump`).

A `MutCursor` holds one node "lifted out" of its parent plus a stack of
ascent steps. Each step remembers the parent's remaining children, the slot
the held node came from, and the path info in effect at that level.

	c := btree.FromNode[L, N, P](cfg, root.Clone())
	c.DescendByExt(pred, false)
	...
	root, ok := c.IntoRoot()

A single cursor must not be used from more than one goroutine. Trees and
read-only cursors may be shared freely.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sumrope.btree'.
func tracer() tracing.Trace {
	return tracing.Select("sumrope.btree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
