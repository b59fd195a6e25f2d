package btree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEmptyCursor(t *testing.T) {
	c := NewMutCursor[item, Count, Count](DefaultConfig())
	if !c.IsEmpty() {
		t.Fatalf("new cursor should be empty")
	}
	if c.Current() != nil || c.Ascend() != nil || c.Descend(0) != nil {
		t.Fatalf("empty cursor should not hold or move to a node")
	}
	if c.Extra() != 0 {
		t.Fatalf("extra of empty cursor should be identity, is %d", c.Extra())
	}
	if _, ok := c.IntoRoot(); ok {
		t.Fatalf("empty cursor should not produce a root")
	}
	if _, ok := c.Remove(0); ok {
		t.Fatalf("remove on empty cursor should report absence")
	}
	if _, ok := c.SplitOff(); ok {
		t.Fatalf("split-off on empty cursor should report absence")
	}
}

func TestInsertAfterReadBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sumrope.btree")
	defer teardown()
	//
	c := NewMutCursor[item, Count, Count](DefaultConfig())
	for i := 0; i < 128; i++ {
		c.InsertAfter(Item(i))
	}
	root, ok := c.IntoRoot()
	if !ok {
		t.Fatalf("expected a tree, cursor is empty")
	}
	r := NewCursor(root)
	for i := 0; i < 128; i++ {
		leaf, ok := r.NextLeaf()
		if !ok {
			t.Fatalf("expected leaf %d, sequence ended", i)
		}
		if leaf.Value != i {
			t.Fatalf("leaf mismatch: got=%d want=%d", leaf.Value, i)
		}
	}
	if _, ok := r.NextLeaf(); ok {
		t.Fatalf("expected end of sequence after 128 leaves")
	}
	if _, ok := r.NextLeaf(); ok {
		t.Fatalf("expected end of sequence to persist")
	}
}

func TestRoundTripInsertAfter(t *testing.T) {
	for _, cfg := range shapes {
		t.Run(shapeName(cfg), func(t *testing.T) {
			for _, n := range []int{0, 1, 2, 3, 5, 17, 64, 255, 1000, 2000} {
				c := NewMutCursor[item, Count, Count](cfg)
				for i := 0; i < n; i++ {
					c.InsertAfter(Item(i))
				}
				root, ok := c.IntoRoot()
				if n == 0 {
					if ok {
						t.Fatalf("expected no tree for empty input")
					}
					continue
				}
				checkTree(t, cfg, root)
				checkValues(t, root, ints(0, n))
			}
		})
	}
}

func TestRoundTripBuild(t *testing.T) {
	for _, cfg := range shapes {
		t.Run(shapeName(cfg), func(t *testing.T) {
			for n := 0; n <= 2000; n += 1 + n/7 {
				root, ok := BuildSlice[item, Count, Count](cfg, items(0, n)).IntoRoot()
				if n == 0 {
					if ok {
						t.Fatalf("expected no tree for empty input")
					}
					continue
				}
				checkTree(t, cfg, root)
				checkValues(t, root, ints(0, n))
			}
		})
	}
}

func TestInsertAtFront(t *testing.T) {
	for _, cfg := range shapes {
		t.Run(shapeName(cfg), func(t *testing.T) {
			c := NewMutCursor[item, Count, Count](cfg)
			const n = 300
			for i := 0; i < n; i++ {
				c.Reset()
				c.Insert(Item(i))
			}
			root, _ := c.IntoRoot()
			checkTree(t, cfg, root)
			want := make([]int, n)
			for i := range want {
				want[i] = n - 1 - i
			}
			checkValues(t, root, want)
		})
	}
}

func TestInsertInTheMiddle(t *testing.T) {
	for _, cfg := range shapes {
		t.Run(shapeName(cfg), func(t *testing.T) {
			root := build(t, cfg, 0, 50)
			model := ints(0, 50)
			for i := 0; i < 100; i++ {
				k := (i * 7) % len(model)
				c := FromNode[item, Count, Count](cfg, root)
				if !seekLeaf(c, k) {
					t.Fatalf("cannot seek to leaf %d", k)
				}
				c.Insert(Item(1000 + i))
				model = append(model[:k], append([]int{1000 + i}, model[k:]...)...)
				root, _ = c.IntoRoot()
				checkTree(t, cfg, root)
				checkValues(t, root, model)
			}
		})
	}
}

func TestSplitOnOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sumrope.btree")
	defer teardown()
	//
	cfg := Config{MaxChildren: 4, MinChildren: 2}
	root := FromNodes(cfg, leafNode(0), leafNode(1), leafNode(2), leafNode(3))
	c := FromNode[item, Count, Count](cfg, root)
	if c.Descend(3) == nil {
		t.Fatalf("cannot descend to last child")
	}
	if c.Extra() != 3 {
		t.Fatalf("extra at last child: got=%d want=3", c.Extra())
	}
	c.InsertNode(leafNode(4), true)
	if c.Depth() != 0 {
		t.Fatalf("expected split to propagate to a new root, depth is %d", c.Depth())
	}
	root, _ = c.IntoRoot()
	if root.Height() != 2 || root.Len() != 2 {
		t.Fatalf("expected root of height 2 with 2 children, is %v", root)
	}
	if l, r := root.Child(0).Len(), root.Child(1).Len(); l != cfg.MinChildren+1 || r != 2 {
		t.Fatalf("expected split into %d + 2, got %d + %d", cfg.MinChildren+1, l, r)
	}
	checkTree(t, cfg, root)
	checkValues(t, root, ints(0, 5))
	t.Logf("\n%s", Dump(root, itemLabel))
}

func TestSplitOnOverflowByInsertAfter(t *testing.T) {
	cfg := Config{MaxChildren: 4, MinChildren: 2}
	c := NewMutCursor[item, Count, Count](cfg)
	for i := 0; i < 4; i++ {
		c.InsertAfter(Item(i))
	}
	root, _ := c.IntoRoot()
	if root.Height() != 1 || root.Len() != 4 {
		t.Fatalf("expected one full node of height 1, is %v", root)
	}
	c = FromNode[item, Count, Count](cfg, root)
	c.InsertAfter(Item(4))
	root, _ = c.IntoRoot()
	if root.Height() != 2 || root.Child(0).Len() != 3 || root.Child(1).Len() != 2 {
		t.Fatalf("expected split into 3 + 2 under a new root, is\n%s", Dump(root, itemLabel))
	}
	checkTree(t, cfg, root)
}

func TestAscendDescend(t *testing.T) {
	cfg := Config{MaxChildren: 4, MinChildren: 2}
	root := build(t, cfg, 0, 40)
	c := FromNode[item, Count, Count](cfg, root)
	if c.Ascend() != nil {
		t.Fatalf("ascend at the root should report no further ascent")
	}
	if c.Current() == nil || c.Current().Height() != root.Height() {
		t.Fatalf("ascend at the root should not change the position")
	}
	depth := 0
	for c.DescendLast(0) != nil {
		depth++
	}
	if depth != root.Height() || c.Depth() != depth {
		t.Fatalf("expected to descend %d levels, did %d", root.Height(), depth)
	}
	leaf, ok := c.Current().Leaf()
	if !ok || leaf.Value != 39 {
		t.Fatalf("expected last leaf 39, got %v", leaf)
	}
	if c.Extra() != 39 {
		t.Fatalf("extra at last leaf: got=%d want=39", c.Extra())
	}
	if c.Descend(0) != nil {
		t.Fatalf("descend at a leaf should report absence")
	}
	if c.Ascend() == nil || c.Current().Height() != 1 {
		t.Fatalf("expected to ascend to height 1")
	}
	if c.Descend(99) != nil {
		t.Fatalf("descend to missing child should report absence")
	}
	root, _ = c.IntoRoot()
	checkTree(t, cfg, root)
	checkValues(t, root, ints(0, 40))
}

func TestDescendByPathInfo(t *testing.T) {
	for _, cfg := range shapes {
		t.Run(shapeName(cfg), func(t *testing.T) {
			const n = 333
			c := FromNode[item, Count, Count](cfg, build(t, cfg, 0, n))
			for k := 0; k < n; k++ {
				if !seekLeaf(c, k) {
					t.Fatalf("cannot seek to %d", k)
				}
				leaf, _ := c.Current().Leaf()
				if leaf.Value != k || int(c.Extra()) != k {
					t.Fatalf("seek %d: got leaf=%d extra=%d", k, leaf.Value, c.Extra())
				}
			}
		})
	}
}

func TestDescendReversedPathInfo(t *testing.T) {
	for _, cfg := range shapes {
		t.Run(shapeName(cfg), func(t *testing.T) {
			const n = 200
			c := FromNode[item, Count, Count](cfg, build(t, cfg, 0, n))
			for k := 0; k < n; k++ {
				c.Reset()
				for c.DescendByExt(func(extra Count, _ Count, _, _ int) bool {
					return int(extra) <= k
				}, true) != nil {
					x := c.Current().Info()
					if c.Extra().Extend(x).ExtendInv(x) != c.Extra() {
						t.Fatalf("path info law violated at extra=%d info=%d", c.Extra(), x)
					}
				}
				leaf, ok := c.Current().Leaf()
				if !ok || leaf.Value != k || int(c.Extra()) != k {
					t.Fatalf("reverse seek %d: got leaf=%d extra=%d", k, leaf.Value, c.Extra())
				}
			}
		})
	}
}

func TestDescendByGathered(t *testing.T) {
	cfg := Config{MaxChildren: 4, MinChildren: 2}
	c := FromNode[item, Count, Count](cfg, build(t, cfg, 0, 30))
	// select the child which covers the 10th leaf of the current subtree
	node := c.DescendBy(func(gathered Count, _, _ int) bool {
		return gathered > 10
	}, false)
	if node == nil {
		t.Fatalf("expected to descend")
	}
	if int(c.Extra()) > 10 || int(c.Extra()+node.Info()) <= 10 {
		t.Fatalf("child at offset %d with %d leaves does not cover leaf 10", c.Extra(), node.Info())
	}
}

func TestStructuralSharing(t *testing.T) {
	for _, cfg := range shapes {
		t.Run(shapeName(cfg), func(t *testing.T) {
			const n = 500
			root := build(t, cfg, 0, n)
			snapshot := root.Clone()
			c := FromNode[item, Count, Count](cfg, root)
			c.Insert(Item(-1))
			seekLeaf(c, 250)
			c.Insert(Item(-2))
			idx := seekParent(c, 100)
			c.Remove(idx)
			edited, _ := c.IntoRoot()
			checkTree(t, cfg, edited)
			checkTree(t, cfg, snapshot)
			checkValues(t, snapshot, ints(0, n))
			if int(edited.Info()) != n+1 {
				t.Fatalf("edited tree should hold %d leaves, holds %d", n+1, edited.Info())
			}
			if cfg.Storage != SharedStorage {
				return
			}
			arrays := make(map[children[item, Count]]bool)
			collectArrays(snapshot, arrays)
			shared, total := countShared(edited, arrays)
			t.Logf("%d of %d child arrays shared after 3 edits", shared, total)
			if shared == 0 {
				t.Fatalf("expected untouched subtrees to be shared between versions")
			}
		})
	}
}

func TestReplaceCurrent(t *testing.T) {
	cfg := Config{MaxChildren: 4, MinChildren: 2}
	c := FromNode[item, Count, Count](cfg, build(t, cfg, 0, 10))
	seekLeaf(c, 4)
	old, ok := c.Replace(leafNode(40))
	if !ok {
		t.Fatalf("replace should succeed on a non-empty cursor")
	}
	if leaf, _ := old.Leaf(); leaf.Value != 4 {
		t.Fatalf("expected to replace leaf 4, replaced %d", leaf.Value)
	}
	root, _ := c.IntoRoot()
	checkValues(t, root, []int{0, 1, 2, 3, 40, 5, 6, 7, 8, 9})
}

func TestInsertHeightMismatchPanics(t *testing.T) {
	cfg := Config{MaxChildren: 4, MinChildren: 2}
	c := FromNode[item, Count, Count](cfg, build(t, cfg, 0, 10))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for height mismatch")
		}
	}()
	c.InsertNode(leafNode(99), true)
}

func collectArrays(n seqNode, arrays map[children[item, Count]]bool) {
	if n.IsLeaf() {
		return
	}
	arrays[n.kids] = true
	for _, child := range n.childList() {
		collectArrays(child, arrays)
	}
}

func countShared(n seqNode, arrays map[children[item, Count]]bool) (shared, total int) {
	if n.IsLeaf() {
		return 0, 0
	}
	total = 1
	if arrays[n.kids] {
		shared = 1
	}
	for _, child := range n.childList() {
		s, t := countShared(child, arrays)
		shared, total = shared+s, total+t
	}
	return shared, total
}
