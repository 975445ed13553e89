package lattice

import (
	"fmt"

	i "github.com/cs-au-dk/monotone/utils/indenter"

	"github.com/benbjohnson/immutable"
	"golang.org/x/exp/slices"
)

// Store is a persistent mapping from variable names to lattice elements. The
// zero Store is empty.
type Store[T any] struct {
	mp *immutable.Map[string, T]
}

func EmptyStore[T any]() Store[T] {
	return Store[T]{immutable.NewMap[string, T](nil)}
}

func (s Store[T]) m() *immutable.Map[string, T] {
	if s.mp == nil {
		return immutable.NewMap[string, T](nil)
	}
	return s.mp
}

func (s Store[T]) Size() int {
	return s.m().Len()
}

func (s Store[T]) Get(name string) (T, bool) {
	return s.m().Get(name)
}

// MustGet panics with ErrMissingStoreKey if name is unbound.
func (s Store[T]) MustGet(name string) T {
	v, found := s.m().Get(name)
	if !found {
		panic(fmt.Errorf("%w: %s", ErrMissingStoreKey, name))
	}
	return v
}

// Update binds name to v in a new store.
func (s Store[T]) Update(name string, v T) Store[T] {
	return Store[T]{s.m().Set(name, v)}
}

// Keys returns the bound names in sorted order.
func (s Store[T]) Keys() []string {
	keys := make([]string, 0, s.Size())
	for iter := s.m().Iterator(); !iter.Done(); {
		k, _, _ := iter.Next()
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s Store[T]) String() string {
	keys := s.Keys()
	if len(keys) == 0 {
		return "[]"
	}

	buf := make([]func() string, 0, len(keys))
	for _, k := range keys {
		k := k
		buf = append(buf, func() string {
			v, _ := s.m().Get(k)
			return fmt.Sprintf("%s ↦ %v", colorize.Key(k), v)
		})
	}
	return i.Start("[").NestThunkedSep(",", buf...).End("]")
}

// StoreLattice lifts a lattice to total mappings from a fixed set of
// variables. Joining a store that lacks a variable is a contract violation.
type StoreLattice[T any] struct {
	inner     Lattice[T]
	variables []string
}

func NewStoreLattice[T any](inner Lattice[T], variables ...string) *StoreLattice[T] {
	vars := append([]string(nil), variables...)
	slices.Sort(vars)
	return &StoreLattice[T]{inner, slices.Compact(vars)}
}

func (l *StoreLattice[T]) Variables() []string {
	return l.variables
}

// Const maps every variable to v.
func (l *StoreLattice[T]) Const(v T) Store[T] {
	s := EmptyStore[T]()
	for _, x := range l.variables {
		s = s.Update(x, v)
	}
	return s
}

func (l *StoreLattice[T]) Join(elements ...Store[T]) Store[T] {
	res := l.Const(Bot(l.inner))
	for _, x := range l.variables {
		v := res.MustGet(x)
		for _, s := range elements {
			v = l.inner.Join(v, s.MustGet(x))
		}
		res = res.Update(x, v)
	}
	return res
}

func (l *StoreLattice[T]) Eq(a, b Store[T]) bool {
	if a.mp == b.mp {
		return true
	}
	if a.Size() != b.Size() {
		return false
	}

	for iter := a.m().Iterator(); !iter.Done(); {
		k, va, _ := iter.Next()
		vb, found := b.Get(k)
		if !found || !l.inner.Eq(va, vb) {
			return false
		}
	}
	return true
}

func (l *StoreLattice[T]) String() string {
	return l.inner.String() + colorize.Lattice("^") + fmt.Sprint(l.variables)
}
