package lattice

import (
	"errors"
	"math/rand"
	"testing"
)

var letters = []string{"a", "b", "c", "d", "e"}

func randomSubset(r *rand.Rand) []string {
	var xs []string
	for _, x := range letters {
		if r.Intn(2) == 0 {
			xs = append(xs, x)
		}
	}
	return xs
}

var signs = []Sign{NoSign, Unknown, Pos, Neg, Zero}

// checkLaws verifies the join semilattice laws on randomly generated elements.
func checkLaws[T any](t *testing.T, l Lattice[T], gen func(*rand.Rand) T) {
	t.Helper()
	r := rand.New(rand.NewSource(1))
	bot := Bot(l)

	if !l.Eq(l.Join(), bot) {
		t.Errorf("%s: ⊔∅ differs from ⊥", l)
	}

	for n := 0; n < 200; n++ {
		a, b, c := gen(r), gen(r), gen(r)

		if !l.Eq(l.Join(a), a) {
			t.Errorf("%s: ⊔{%v} = %v", l, a, l.Join(a))
		}
		if !l.Eq(l.Join(a, b), l.Join(b, a)) {
			t.Errorf("%s: %v ⊔ %v is not commutative", l, a, b)
		}
		if !l.Eq(l.Join(a, a), a) {
			t.Errorf("%s: %v ⊔ %v is not idempotent", l, a, a)
		}
		if !l.Eq(l.Join(l.Join(a, b), c), l.Join(a, l.Join(b, c))) {
			t.Errorf("%s: (%v ⊔ %v) ⊔ %v is not associative", l, a, b, c)
		}
		if !l.Eq(l.Join(bot, a), a) {
			t.Errorf("%s: ⊥ is not the identity of %v", l, a)
		}
		if !Leq(l, a, l.Join(a, b)) || !Leq(l, bot, a) {
			t.Errorf("%s: join of %v and %v is not an upper bound", l, a, b)
		}
	}
}

func TestPowersetLaws(t *testing.T) {
	p := NewPowerset[string](nil)
	checkLaws[Set[string]](t, p, func(r *rand.Rand) Set[string] {
		return p.Of(randomSubset(r)...)
	})
}

func TestReversePowersetLaws(t *testing.T) {
	p := NewReversePowerset(SetOf(nil, letters...))
	checkLaws[Set[string]](t, p, func(r *rand.Rand) Set[string] {
		return p.Of(randomSubset(r)...)
	})
}

func TestSignLaws(t *testing.T) {
	checkLaws[Sign](t, Signs(), func(r *rand.Rand) Sign {
		return signs[r.Intn(len(signs))]
	})
}

func TestSecurityLaws(t *testing.T) {
	checkLaws[SecurityLevel](t, Security(), func(r *rand.Rand) SecurityLevel {
		return SecurityLevel(r.Intn(2) == 0)
	})
}

func TestStoreLaws(t *testing.T) {
	l := NewStoreLattice[Sign](Signs(), "x", "y", "z")
	checkLaws[Store[Sign]](t, l, func(r *rand.Rand) Store[Sign] {
		s := EmptyStore[Sign]()
		for _, x := range l.Variables() {
			s = s.Update(x, signs[r.Intn(len(signs))])
		}
		return s
	})
}

func TestReversePowersetUniverse(t *testing.T) {
	universe := SetOf(nil, letters...)
	p := NewReversePowerset(universe)

	if !p.Join().Eq(universe) {
		t.Errorf("⊔∅ = %v, expected the universe %v", p.Join(), universe)
	}

	r := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		s := p.Of(randomSubset(r)...)
		if !p.Join(s).Eq(s) {
			t.Errorf("⊔{%v} = %v", s, p.Join(s))
		}
		if !Leq[Set[string]](p, universe, s) {
			t.Errorf("the universe should be below %v", s)
		}
	}
}

func TestSignJoin(t *testing.T) {
	tests := []struct{ a, b, expected Sign }{
		{NoSign, NoSign, NoSign},
		{NoSign, Pos, Pos},
		{Neg, NoSign, Neg},
		{Pos, Pos, Pos},
		{Pos, Neg, Unknown},
		{Zero, Pos, Unknown},
		{Unknown, NoSign, Unknown},
		{Zero, Unknown, Unknown},
	}

	for _, test := range tests {
		if res := Signs().Join(test.a, test.b); res != test.expected {
			t.Errorf("%s ⊔ %s = %s, expected %s", test.a, test.b, res, test.expected)
		}
	}
}

func TestSecurityJoin(t *testing.T) {
	tests := []struct{ a, b, expected SecurityLevel }{
		{Public, Public, Public},
		{Public, Secret, Secret},
		{Secret, Public, Secret},
		{Secret, Secret, Secret},
	}

	for _, test := range tests {
		if res := Security().Join(test.a, test.b); res != test.expected {
			t.Errorf("%s ⊔ %s = %s, expected %s", test.a, test.b, res, test.expected)
		}
	}
}

func TestStoreMissingKey(t *testing.T) {
	l := NewStoreLattice[SecurityLevel](Security(), "x", "y")
	partial := EmptyStore[SecurityLevel]().Update("x", Secret)

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, ErrMissingStoreKey) {
			t.Errorf("expected a missing key panic, got %v", err)
		}
	}()
	l.Join(l.Const(Public), partial)
}

func TestStoreJoin(t *testing.T) {
	l := NewStoreLattice[Sign](Signs(), "x", "y")
	a := l.Const(NoSign).Update("x", Pos)
	b := l.Const(Neg)

	res := l.Join(a, b)
	if x := res.MustGet("x"); x != Unknown {
		t.Errorf("x ↦ %s, expected %s", x, Unknown)
	}
	if y := res.MustGet("y"); y != Neg {
		t.Errorf("y ↦ %s, expected %s", y, Neg)
	}
}
