// Package lattice provides join semilattices over generic element types.
package lattice

import (
	"errors"
	"fmt"

	"github.com/cs-au-dk/monotone/utils"

	"github.com/fatih/color"
)

var colorize = struct {
	Lattice func(...interface{}) string
	Element func(...interface{}) string
	Key     func(...interface{}) string
}{
	Lattice: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
	Element: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Key: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgYellow).SprintFunc())(is...)
	},
}

var (
	// ErrMissingStoreKey is raised when a store lacks a binding for a variable
	// of its lattice's universe.
	ErrMissingStoreKey = errors.New("store is missing variable")

	errPatternMatch = func(v interface{}) error {
		return fmt.Errorf("invalid pattern match: %v %T", v, v)
	}
)

// Lattice is a join semilattice with a least element over elements of type T.
// Join must be commutative, associative and idempotent, and the join of no
// elements is the least element.
type Lattice[T any] interface {
	Join(elements ...T) T
	Eq(a, b T) bool
	String() string
}

// Bot returns the least element of l.
func Bot[T any](l Lattice[T]) T {
	return l.Join()
}

// Leq is the partial order induced by the join: a ⊑ b iff a ⊔ b = b.
func Leq[T any](l Lattice[T], a, b T) bool {
	return l.Eq(l.Join(a, b), b)
}
