package lattice

import "github.com/benbjohnson/immutable"

// Powerset orders sets by inclusion. The join is union and ⊥ = ∅.
type Powerset[T any] struct {
	hasher immutable.Hasher[T]
}

func NewPowerset[T any](hasher immutable.Hasher[T]) *Powerset[T] {
	return &Powerset[T]{hasher}
}

// Empty returns ∅.
func (p *Powerset[T]) Empty() Set[T] {
	return EmptySet(p.hasher)
}

func (p *Powerset[T]) Of(xs ...T) Set[T] {
	return SetOf(p.hasher, xs...)
}

func (p *Powerset[T]) Join(elements ...Set[T]) Set[T] {
	if len(elements) == 0 {
		return p.Empty()
	}

	res := elements[0]
	for _, s := range elements[1:] {
		res = res.Union(s)
	}
	return res
}

func (p *Powerset[T]) Eq(a, b Set[T]) bool {
	return a.Eq(b)
}

func (p *Powerset[T]) String() string {
	return colorize.Lattice("℘")
}

// ReversePowerset orders subsets of a finite universe by reverse inclusion.
// The join is intersection and ⊥ is the universe.
type ReversePowerset[T any] struct {
	universe Set[T]
}

func NewReversePowerset[T any](universe Set[T]) *ReversePowerset[T] {
	return &ReversePowerset[T]{universe}
}

func (p *ReversePowerset[T]) Empty() Set[T] {
	return EmptySet(p.universe.hasher)
}

func (p *ReversePowerset[T]) Of(xs ...T) Set[T] {
	return SetOf(p.universe.hasher, xs...)
}

func (p *ReversePowerset[T]) Join(elements ...Set[T]) Set[T] {
	if len(elements) == 0 {
		return p.universe
	}

	res := elements[0]
	for _, s := range elements[1:] {
		res = res.Intersection(s)
	}
	return res
}

func (p *ReversePowerset[T]) Eq(a, b Set[T]) bool {
	return a.Eq(b)
}

func (p *ReversePowerset[T]) String() string {
	return colorize.Lattice("℘ᵒᵖ") + "(" + p.universe.String() + ")"
}
