package btree

import "fmt"

// Check validates the structural invariants of the tree rooted at root:
//
//   - every internal node has between MinChildren and MaxChildren children,
//     except the root, which may have fewer,
//   - all children of a node have the same height,
//   - heights decrease by exactly 1 per level, leaves have height 0.
//
// Check is meant for tests and debugging.
func Check[L Leaf[N], N Info[N]](cfg Config, root Node[L, N]) error {
	cfg = cfg.normalized()
	return checkNode(cfg, root, true)
}

func checkNode[L Leaf[N], N Info[N]](cfg Config, n Node[L, N], isRoot bool) error {
	if n.IsLeaf() {
		if n.height != 0 {
			return fmt.Errorf("%w: leaf with height %d", ErrInvalidTree, n.height)
		}
		return nil
	}
	list := n.childList()
	if len(list) == 0 {
		return fmt.Errorf("%w: internal node has no children", ErrInvalidTree)
	}
	if len(list) > cfg.MaxChildren {
		return fmt.Errorf("%w: child count %d exceeds maximum %d",
			ErrInvalidTree, len(list), cfg.MaxChildren)
	}
	if !isRoot && len(list) < cfg.MinChildren {
		return fmt.Errorf("%w: child count %d below minimum %d",
			ErrInvalidTree, len(list), cfg.MinChildren)
	}
	for i, child := range list {
		if child.height != n.height-1 {
			return fmt.Errorf("%w: child %d has height %d under node of height %d",
				ErrInvalidTree, i, child.height, n.height)
		}
		if err := checkNode(cfg, child, false); err != nil {
			return err
		}
	}
	return nil
}

// CheckInfo validates that every cached aggregate equals the gather of its
// children's aggregates, and that leaf nodes cache their leaf's info.
func CheckInfo[L Leaf[N], N Info[N]](root Node[L, N], equal func(a, b N) bool) error {
	_, err := checkInfo(root, equal)
	return err
}

func checkInfo[L Leaf[N], N Info[N]](n Node[L, N], equal func(a, b N) bool) (N, error) {
	if n.IsLeaf() {
		info := n.leaf.ComputeInfo()
		if !equal(info, n.info) {
			return info, fmt.Errorf("%w: leaf caches %v, computes %v", ErrInvalidTree, n.info, info)
		}
		return info, nil
	}
	var acc N
	for i, child := range n.childList() {
		info, err := checkInfo(child, equal)
		if err != nil {
			return acc, err
		}
		if i == 0 {
			acc = info
		} else {
			acc = acc.Gather(info)
		}
	}
	if !equal(acc, n.info) {
		return acc, fmt.Errorf("%w: node of height %d caches %v, children gather to %v",
			ErrInvalidTree, n.height, n.info, acc)
	}
	return acc, nil
}

// Equal compares comparable aggregates, for use with CheckInfo.
func Equal[N comparable](a, b N) bool {
	return a == b
}
