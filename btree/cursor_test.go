package btree

import "testing"

func TestCursorNextLeaf(t *testing.T) {
	for _, cfg := range shapes {
		t.Run(shapeName(cfg), func(t *testing.T) {
			root := build(t, cfg, 0, 77)
			c := NewCursor(root)
			for i := 0; i < 77; i++ {
				leaf, ok := c.NextLeaf()
				if !ok || leaf.Value != i {
					t.Fatalf("leaf %d: got %v (%v)", i, leaf.Value, ok)
				}
			}
			for range 2 {
				if _, ok := c.NextLeaf(); ok {
					t.Fatalf("cursor should be exhausted")
				}
			}
			c.Reset()
			if leaf, ok := c.NextLeaf(); !ok || leaf.Value != 0 {
				t.Fatalf("reset cursor should start over")
			}
		})
	}
}

func TestCursorOnSingleLeafAndEmpty(t *testing.T) {
	c := NewCursor(leafNode(5))
	if leaf, ok := c.NextLeaf(); !ok || leaf.Value != 5 {
		t.Fatalf("expected the single leaf")
	}
	if _, ok := c.NextLeaf(); ok {
		t.Fatalf("expected end after the single leaf")
	}
	if _, ok := EmptyCursor[item, Count]().NextLeaf(); ok {
		t.Fatalf("empty cursor should not yield a leaf")
	}
}

func TestLeavesStopsEarly(t *testing.T) {
	root := build(t, DefaultConfig(), 0, 100)
	n := 0
	for leaf := range Leaves(root) {
		if leaf.Value == 10 {
			break
		}
		n++
	}
	if n != 10 {
		t.Fatalf("expected to visit 10 leaves, visited %d", n)
	}
}

func TestLeafNodesPathInfo(t *testing.T) {
	cfg := Config{MaxChildren: 3, MinChildren: 1}
	root := build(t, cfg, 0, 40)
	k := 0
	for at, leaf := range LeafNodes(root, Count(100)) {
		v, _ := leaf.Leaf()
		if int(at) != 100+k || v.Value != k {
			t.Fatalf("leaf %d: path info %d, value %d", k, at, v.Value)
		}
		k++
	}
	if k != 40 {
		t.Fatalf("expected 40 leaves, have %d", k)
	}
}

func TestLocate(t *testing.T) {
	for _, cfg := range shapes {
		t.Run(shapeName(cfg), func(t *testing.T) {
			const n = 123
			root := build(t, cfg, 0, n)
			for k := 0; k < n; k++ {
				var base Count
				leaf, at, ok := Locate(root, Count(0), func(extra, gathered Count, i, _ int) bool {
					if i == 0 {
						base = extra
					}
					return int(base+gathered) > k
				})
				if !ok {
					t.Fatalf("cannot locate leaf %d", k)
				}
				v, _ := leaf.Leaf()
				if v.Value != k || int(at) != k {
					t.Fatalf("located leaf %d at %d, expected %d", v.Value, at, k)
				}
			}
			_, _, ok := Locate(root, Count(0), func(Count, Count, int, int) bool {
				return false
			})
			if ok {
				t.Fatalf("a predicate rejecting everything should not locate anything")
			}
		})
	}
}
