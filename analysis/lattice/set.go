package lattice

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/immutable"
	"golang.org/x/exp/slices"
)

// Set is a persistent set. Update operations return a new set and leave the
// receiver untouched. The zero Set is empty.
type Set[T any] struct {
	hasher immutable.Hasher[T]
	mp     *immutable.Map[T, struct{}]
}

// EmptySet creates a set keyed by hasher. A nil hasher is valid for builtin
// key types such as strings and integers.
func EmptySet[T any](hasher immutable.Hasher[T]) Set[T] {
	return Set[T]{hasher, immutable.NewMap[T, struct{}](hasher)}
}

func (s Set[T]) m() *immutable.Map[T, struct{}] {
	if s.mp == nil {
		return immutable.NewMap[T, struct{}](s.hasher)
	}
	return s.mp
}

func SetOf[T any](hasher immutable.Hasher[T], xs ...T) Set[T] {
	s := EmptySet(hasher)
	for _, x := range xs {
		s = s.Add(x)
	}
	return s
}

func (s Set[T]) Size() int {
	return s.m().Len()
}

func (s Set[T]) Contains(x T) bool {
	_, found := s.m().Get(x)
	return found
}

func (s Set[T]) Add(x T) Set[T] {
	if s.Contains(x) {
		return s
	}
	return Set[T]{s.hasher, s.m().Set(x, struct{}{})}
}

func (s Set[T]) Remove(x T) Set[T] {
	return Set[T]{s.hasher, s.m().Delete(x)}
}

func (s Set[T]) ForEach(do func(T)) {
	for iter := s.m().Iterator(); !iter.Done(); {
		x, _, _ := iter.Next()
		do(x)
	}
}

// Filter keeps the elements satisfying pred.
func (s Set[T]) Filter(pred func(T) bool) Set[T] {
	res := s
	s.ForEach(func(x T) {
		if !pred(x) {
			res = res.Remove(x)
		}
	})
	return res
}

func (s Set[T]) Union(o Set[T]) Set[T] {
	if s.Size() < o.Size() {
		s, o = o, s
	}
	o.ForEach(func(x T) {
		s = s.Add(x)
	})
	return s
}

func (s Set[T]) Intersection(o Set[T]) Set[T] {
	if s.Size() > o.Size() {
		s, o = o, s
	}
	return s.Filter(o.Contains)
}

func (s Set[T]) Eq(o Set[T]) bool {
	if s.mp == o.mp {
		return true
	}
	return s.Size() == o.Size() && s.Subset(o)
}

// Subset checks s ⊆ o.
func (s Set[T]) Subset(o Set[T]) bool {
	for iter := s.m().Iterator(); !iter.Done(); {
		if x, _, _ := iter.Next(); !o.Contains(x) {
			return false
		}
	}
	return true
}

// Elements returns the members of the set sorted by their string rendering.
func (s Set[T]) Elements() []T {
	xs := make([]T, 0, s.Size())
	s.ForEach(func(x T) {
		xs = append(xs, x)
	})
	slices.SortFunc(xs, func(a, b T) bool {
		return fmt.Sprint(a) < fmt.Sprint(b)
	})
	return xs
}

func (s Set[T]) String() string {
	if s.Size() == 0 {
		return colorize.Element("∅")
	}

	strs := make([]string, 0, s.Size())
	for _, x := range s.Elements() {
		strs = append(strs, colorize.Element(x))
	}
	return "{" + strings.Join(strs, ", ") + "}"
}
