package lattice

// SecurityLevel is the two point lattice Public ⊑ Secret.
type SecurityLevel bool

const (
	Public SecurityLevel = false
	Secret SecurityLevel = true
)

func (l SecurityLevel) String() string {
	if l == Secret {
		return "secret"
	}
	return "public"
}

type SecurityLattice struct{}

var securityLattice = &SecurityLattice{}

func Security() *SecurityLattice {
	return securityLattice
}

func (*SecurityLattice) Join(elements ...SecurityLevel) SecurityLevel {
	for _, l := range elements {
		if l == Secret {
			return Secret
		}
	}
	return Public
}

func (*SecurityLattice) Eq(a, b SecurityLevel) bool {
	return a == b
}

func (*SecurityLattice) String() string {
	return colorize.Lattice("Security")
}
