package btree

import (
	"fmt"
	"strconv"
	"testing"
)

type (
	item    = Counted[int]
	seqNode = Node[item, Count]
	seqCur  = MutCursor[item, Count, Count]
)

// shapes are the tree configurations most tests run with.
var shapes = []Config{
	{MaxChildren: 2, MinChildren: 1},
	{MaxChildren: 3, MinChildren: 1},
	{MaxChildren: 4, MinChildren: 2},
	{MaxChildren: 5, MinChildren: 2},
	DefaultConfig(),
	{MaxChildren: 8, MinChildren: 4, Storage: ExclusiveStorage},
}

func shapeName(cfg Config) string {
	return fmt.Sprintf("max%d_min%d_%s", cfg.MaxChildren, cfg.MinChildren, cfg.Storage)
}

func leafNode(v int) seqNode {
	return FromLeaf[item, Count](Item(v))
}

func itemLabel(it item) string {
	return strconv.Itoa(it.Value)
}

func items(from, to int) []item {
	out := make([]item, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, Item(i))
	}
	return out
}

func ints(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func build(t *testing.T, cfg Config, from, to int) seqNode {
	t.Helper()
	root, ok := BuildSlice[item, Count, Count](cfg, items(from, to)).IntoRoot()
	if !ok {
		t.Fatalf("build of [%d,%d) produced no tree", from, to)
	}
	return root
}

func values(root seqNode) []int {
	var out []int
	for leaf := range Leaves(root) {
		out = append(out, leaf.Value)
	}
	return out
}

func checkTree(t *testing.T, cfg Config, root seqNode) {
	t.Helper()
	if err := Check(cfg, root); err != nil {
		t.Fatalf("shape invariants violated: %v\n%s", err, Dump(root, itemLabel))
	}
	if err := CheckInfo(root, Equal[Count]); err != nil {
		t.Fatalf("aggregate invariants violated: %v\n%s", err, Dump(root, itemLabel))
	}
}

func checkValues(t *testing.T, root seqNode, want []int) {
	t.Helper()
	got := values(root)
	if len(got) != len(want) {
		t.Fatalf("sequence length mismatch: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sequence mismatch at %d: got=%d want=%d", i, got[i], want[i])
		}
	}
	if int(root.Info()) != len(want) {
		t.Fatalf("root aggregate mismatch: got=%d want=%d", root.Info(), len(want))
	}
}

// seekLeaf moves the cursor to the leaf at position k, starting from the root.
func seekLeaf(c *seqCur, k int) bool {
	c.Reset()
	for {
		base := c.Extra()
		if c.DescendByExt(func(_ Count, gathered Count, _, _ int) bool {
			return int(base+gathered) > k
		}, false) == nil {
			break
		}
	}
	cur := c.Current()
	return cur != nil && cur.IsLeaf()
}

// seekParent moves the cursor to the node of height 1 above the leaf at
// position k and returns the leaf's index within that node.
func seekParent(c *seqCur, k int) int {
	c.Reset()
	for c.Current().Height() > 1 {
		base := c.Extra()
		c.DescendByExt(func(_ Count, gathered Count, _, _ int) bool {
			return int(base+gathered) > k
		}, false)
	}
	return k - int(c.Extra())
}
