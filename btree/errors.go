package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrInvalidTree signals a violated structural or aggregate invariant.
	ErrInvalidTree = errors.New("btree: invalid tree")
)
