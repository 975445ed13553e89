package solver

import (
	"testing"

	L "github.com/cs-au-dk/monotone/analysis/lattice"
)

// A chain a -> b -> c with a cycle c -> b, propagating and extending sets.
func TestSolveChain(t *testing.T) {
	s := New()
	a, b, c := s.FreshVariable(), s.FreshVariable(), s.FreshVariable()
	s.AddDependency(a, b)
	s.AddDependency(b, c)
	s.AddDependency(c, b)

	lat := L.NewPowerset[string](nil)
	gen := map[Variable]string{a: "a", b: "b", c: "c"}

	sol := Solve[L.Set[string]](s, lat, func(v Variable, in L.Set[string]) L.Set[string] {
		return in.Add(gen[v])
	})

	expected := map[Variable]L.Set[string]{
		a: lat.Of("a"),
		b: lat.Of("a", "b", "c"),
		c: lat.Of("a", "b", "c"),
	}
	for v, exp := range expected {
		if res := sol.Get(v); !res.Eq(exp) {
			t.Errorf("%v = %v, expected %v", v, res, exp)
		}
	}

	if sol.Iterations < 3 {
		t.Errorf("every variable is evaluated at least once, got %d iterations", sol.Iterations)
	}
}

// Variables are evaluated in FIFO order: first in creation order, then each
// changed variable's children in creation order.
func TestSolveOrder(t *testing.T) {
	s := New()
	a, b, c := s.FreshVariable(), s.FreshVariable(), s.FreshVariable()
	s.AddDependency(a, b)
	s.AddDependency(b, c)
	s.AddDependency(c, b)

	names := map[Variable]string{a: "a", b: "b", c: "c"}
	var trace []string

	sol := Solve[L.Set[string]](s, L.NewPowerset[string](nil), func(v Variable, in L.Set[string]) L.Set[string] {
		trace = append(trace, names[v])
		return in.Add(names[v])
	})

	expected := []string{"a", "b", "c", "b", "c", "b", "c"}
	if len(trace) != len(expected) {
		t.Fatalf("evaluated %v, expected %v", trace, expected)
	}
	for i := range expected {
		if trace[i] != expected[i] {
			t.Fatalf("evaluated %v, expected %v", trace, expected)
		}
	}
	if sol.Iterations != len(expected) {
		t.Errorf("expected %d iterations, got %d", len(expected), sol.Iterations)
	}
}

func TestSolveNoParents(t *testing.T) {
	s := New()
	v := s.FreshVariable()

	sol := Solve[L.Sign](s, L.Signs(), func(_ Variable, in L.Sign) L.Sign {
		if in != L.NoSign {
			t.Errorf("input of a variable without parents should be ⊥, got %s", in)
		}
		return in
	})

	if sol.Get(v) != L.NoSign {
		t.Errorf("expected ⊥, got %s", sol.Get(v))
	}
	if sol.Iterations != 1 {
		t.Errorf("expected a single iteration, got %d", sol.Iterations)
	}
}

func TestMonotoneUpdates(t *testing.T) {
	s := New()
	vs := make([]Variable, 5)
	for i := range vs {
		vs[i] = s.FreshVariable()
	}
	for i := range vs {
		s.AddDependency(vs[i], vs[(i+1)%len(vs)])
	}

	lat := L.NewPowerset[int](nil)
	updates := 0
	sol := Solve[L.Set[int]](s, lat, func(v Variable, in L.Set[int]) L.Set[int] {
		return in.Add(v.id)
	}, func(v Variable, prev, next L.Set[int]) {
		updates++
		if !L.Leq[L.Set[int]](lat, prev, next) {
			t.Errorf("%v shrank from %v to %v", v, prev, next)
		}
	})

	for _, v := range vs {
		if sol.Get(v).Size() != len(vs) {
			t.Errorf("%v = %v, expected every id on the cycle", v, sol.Get(v))
		}
	}
	if updates == 0 {
		t.Error("observer was never called")
	}
}

func TestDependencies(t *testing.T) {
	s := New()
	a, b, c := s.FreshVariable(), s.FreshVariable(), s.FreshVariable()
	s.AddDependency(c, b)
	s.AddDependency(a, b)
	s.AddDependency(a, b)

	parents := s.Parents(b)
	if len(parents) != 2 || parents[0] != a || parents[1] != c {
		t.Errorf("parents of %v = %v, expected [%v %v]", b, parents, a, c)
	}
	if children := s.Children(a); len(children) != 1 || children[0] != b {
		t.Errorf("children of %v = %v", a, children)
	}
}

func TestForeignVariable(t *testing.T) {
	s1, s2 := New(), New()
	v1, v2 := s1.FreshVariable(), s2.FreshVariable()

	defer func() {
		if recover() == nil {
			t.Error("mixing variables of different solvers should panic")
		}
	}()
	s1.AddDependency(v1, v2)
}
