package btree

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders a tree as indented text, one line per node. label renders
// leaf values; it may be nil.
func Dump[L Leaf[N], N Info[N]](root Node[L, N], label func(L) string) string {
	tree := tp.New()
	if root.IsLeaf() {
		tree.SetValue(leafLabel(root, label))
		return tree.String()
	}
	tree.SetValue(root.String())
	dumpChildren(tree, root, label)
	return tree.String()
}

func dumpChildren[L Leaf[N], N Info[N]](branch tp.Tree, n Node[L, N], label func(L) string) {
	for _, child := range n.childList() {
		if child.IsLeaf() {
			branch.AddNode(leafLabel(child, label))
			continue
		}
		dumpChildren(branch.AddBranch(child.String()), child, label)
	}
}

func leafLabel[L Leaf[N], N Info[N]](n Node[L, N], label func(L) string) string {
	if label == nil {
		return fmt.Sprintf("%v", n.leaf)
	}
	return label(n.leaf)
}
