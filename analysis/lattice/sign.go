package lattice

// Sign abstracts integers by their sign. NoSign is the least element and
// Unknown the greatest; Pos, Neg and Zero are incomparable.
type Sign int

const (
	NoSign Sign = iota
	Unknown
	Pos
	Neg
	Zero
)

func (s Sign) String() string {
	switch s {
	case NoSign:
		return "⊥"
	case Unknown:
		return "⊤"
	case Pos:
		return "+"
	case Neg:
		return "-"
	case Zero:
		return "0"
	}
	panic(errPatternMatch(int(s)))
}

// SignOf abstracts a concrete integer.
func SignOf(i int) Sign {
	switch {
	case i == 0:
		return Zero
	case i > 0:
		return Pos
	default:
		return Neg
	}
}

type SignLattice struct{}

var signLattice = &SignLattice{}

func Signs() *SignLattice {
	return signLattice
}

func (*SignLattice) join(a, b Sign) Sign {
	switch {
	case a == Unknown || b == Unknown:
		return Unknown
	case a == NoSign:
		return b
	case b == NoSign:
		return a
	case a == b:
		return a
	default:
		return Unknown
	}
}

func (l *SignLattice) Join(elements ...Sign) Sign {
	res := NoSign
	for _, s := range elements {
		res = l.join(res, s)
	}
	return res
}

func (*SignLattice) Eq(a, b Sign) bool {
	return a == b
}

func (*SignLattice) String() string {
	return colorize.Lattice("Sign")
}
