package btree

// Info is an aggregate of leaf metadata, gathered bottom-up through a tree.
//
// Gather has to be associative and commutative, so that the aggregate of a
// subtree does not depend on where nodes have been split or merged:
//
//	a.Gather(b).Gather(c) == a.Gather(b.Gather(c))
type Info[N any] interface {
	Gather(other N) N
}

// Leaf is a value stored at the bottom level of a tree.
//
// Leaves are copied by assignment and should therefore behave like values.
type Leaf[N Info[N]] interface {
	ComputeInfo() N
}

// PathInfo is a quantity accumulated top-down while descending a tree, for
// example the offset of a subtree from the start of the sequence.
//
// ExtendInv is the exact inverse of Extend:
//
//	c.Extend(x).ExtendInv(x) == c
//
// and Identity carries no contribution.
type PathInfo[P any, N any] interface {
	Extend(prev N) P
	ExtendInv(curr N) P
	Identity() P
}

// --- Unit instances --------------------------------------------------------

// Unit is an aggregate without metadata. It is a Leaf, an Info and a PathInfo.
type Unit struct{}

// Gather is a no-op.
func (Unit) Gather(Unit) Unit { return Unit{} }

// ComputeInfo is a no-op.
func (Unit) ComputeInfo() Unit { return Unit{} }

// Extend is a no-op.
func (Unit) Extend(Unit) Unit { return Unit{} }

// ExtendInv is a no-op.
func (Unit) ExtendInv(Unit) Unit { return Unit{} }

// Identity returns Unit{}.
func (Unit) Identity() Unit { return Unit{} }

// NoPath is a path info which never accumulates anything. It fits any Info type.
type NoPath[N any] struct{}

// Extend is a no-op.
func (NoPath[N]) Extend(N) NoPath[N] { return NoPath[N]{} }

// ExtendInv is a no-op.
func (NoPath[N]) ExtendInv(N) NoPath[N] { return NoPath[N]{} }

// Identity returns NoPath{}.
func (NoPath[N]) Identity() NoPath[N] { return NoPath[N]{} }

// --- Counting instances ----------------------------------------------------

// Count is a numeric aggregate (Gather = sum). As a path info it is a numeric
// offset: Extend adds, ExtendInv subtracts.
type Count int

// Gather adds two counts.
func (c Count) Gather(other Count) Count { return c + other }

// Extend adds prev to the offset.
func (c Count) Extend(prev Count) Count { return c + prev }

// ExtendInv subtracts curr from the offset.
func (c Count) ExtendInv(curr Count) Count { return c - curr }

// Identity returns 0.
func (Count) Identity() Count { return 0 }

// ComputeInfo lets a Count be a leaf which carries its own weight.
func (c Count) ComputeInfo() Count { return c }

// Counted wraps an arbitrary value as a leaf with weight 1.
type Counted[T any] struct {
	Value T
}

// ComputeInfo returns 1.
func (Counted[T]) ComputeInfo() Count { return 1 }

// Item wraps v as a Counted leaf.
func Item[T any](v T) Counted[T] {
	return Counted[T]{Value: v}
}
