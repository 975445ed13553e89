package cfg

import "github.com/spakin/disjoint"

// Simplify removes forwarding blocks (no statements, unconditional jump) by
// redirecting every jump through chains of forwarding blocks to the first
// block that does real work. The entry block is never removed.
// Simplifying an already simplified graph has no effect.
func (g *ControlFlowGraph) Simplify() {
	elems := make(map[int]*disjoint.Element)
	elem := func(id int) *disjoint.Element {
		if e, found := elems[id]; found {
			return e
		}
		e := disjoint.NewElement()
		e.Data = id
		elems[id] = e
		return e
	}

	forwarding := make(map[int]bool)
	for _, id := range g.IDs() {
		b := g.Blocks[id]
		if id == g.Entry || !b.IsForwarding() {
			continue
		}

		forwarding[id] = true
		disjoint.Union(elem(id), elem(b.Jump.(UnconditionalJump).Target))
	}

	if len(forwarding) == 0 {
		return
	}

	// Every chain ends in exactly one block that is not forwarding. Chains
	// without such a block are cycles.
	roots := make(map[*disjoint.Element]int)
	for id, e := range elems {
		if !forwarding[id] {
			roots[e.Find()] = id
		}
	}

	subst := make(map[int]int, len(forwarding))
	for id := range forwarding {
		root, found := roots[elems[id].Find()]
		if !found {
			panic(ErrForwardingCycle)
		}
		subst[id] = root
	}

	for id := range forwarding {
		delete(g.Blocks, id)
	}
	for _, b := range g.Blocks {
		b.Jump = b.Jump.Substitute(subst)
	}
}
