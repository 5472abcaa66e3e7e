package automata

import (
	"github.com/bits-and-blooms/bitset"
)

// Run returns true if a accepts s, whatever its kind.
func Run(a Automaton, s string) bool {
	return a.Accepts(s)
}

// reachableSet returns the states reachable from the initial state, by breadth-first search.
func (d *DFA) reachableSet() *bitset.BitSet {
	live := d.states.newSet()
	live.Set(uint(d.initial))

	workList := []int{d.initial}
	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for _, dst := range d.delta[s] {
			if dst != -1 && !live.Test(uint(dst)) {
				live.Set(uint(dst))
				workList = append(workList, dst)
			}
		}
	}
	return live
}

// Reachable returns a copy of d without the states that cannot be reached from the initial state.
// Unreachable states have no influence on the accepted language.
func (d *DFA) Reachable() *DFA {
	live := d.reachableSet()
	if live.Count() == uint(d.states.len()) {
		return d
	}

	b := newDFADraft(d.alphabet)
	ids := make([]int, d.states.len())
	for s, ok := live.NextSet(0); ok; s, ok = live.NextSet(s + 1) {
		ids[s] = b.CreateState(d.states.name(int(s)), d.finals.Test(s))
	}
	for s, ok := live.NextSet(0); ok; s, ok = live.NextSet(s + 1) {
		for sym, dst := range d.delta[s] {
			if dst != -1 {
				b.AddTransition(ids[s], sym, ids[dst])
			}
		}
	}
	b.initial = ids[d.initial]

	// Names come from a valid table, so build cannot fail.
	result, _ := b.build()
	return result
}

// IsEmpty returns true if d accepts no strings.
func (d *DFA) IsEmpty() bool {
	return d.reachableSet().IntersectionCardinality(d.finals) == 0
}

// IsTotal returns true if every state has a transition on every symbol.
func (d *DFA) IsTotal() bool {
	for _, row := range d.delta {
		for _, dst := range row {
			if dst == -1 {
				return false
			}
		}
	}
	return true
}

// Totalize returns a DFA accepting the same language as d whose transition function is total:
// every undefined transition is redirected to a new non-final state named sink, which loops to
// itself on every symbol. If d is already total it is returned as is. sink must not name an
// existing state.
func Totalize(d *DFA, sink string) (*DFA, error) {
	if !d.valid() {
		return nil, unsupported("totalize requires a DFA built by NewDFA")
	}
	if d.IsTotal() {
		return d, nil
	}
	if _, ok := d.states.lookup(sink); ok {
		return nil, malformed("sink state %q is already a declared state", sink)
	}

	b := newDFADraft(d.alphabet)
	for s := 0; s < d.states.len(); s++ {
		b.CreateState(d.states.name(s), d.finals.Test(uint(s)))
	}
	deadState := b.CreateState(sink, false)
	for s, row := range d.delta {
		for sym, dst := range row {
			if dst == -1 {
				dst = deadState
			}
			b.AddTransition(s, sym, dst)
		}
	}
	for sym := 0; sym < d.alphabet.len(); sym++ {
		b.AddTransition(deadState, sym, deadState)
	}
	b.initial = d.initial

	return b.build()
}

// Equivalent reports whether a and b accept the same language. Automata over different alphabets
// are equivalent only if neither distinguishes strings using the extra symbols, which this check
// does not attempt; they are reported as not equivalent.
//
// The check walks the product automaton from the pair of initial states, treating an undefined
// transition as a move into a dead state, and fails on the first reachable pair that disagrees on
// acceptance.
func Equivalent(a, b *DFA) (bool, error) {
	if !a.valid() || !b.valid() {
		return false, unsupported("equivalence requires DFAs built by NewDFA")
	}
	symbols := a.Alphabet()
	if len(symbols) != b.alphabet.len() {
		return false, nil
	}
	for _, r := range symbols {
		if !b.alphabet.contains(r) {
			return false, nil
		}
	}

	accept := func(d *DFA, s int) bool {
		return s != -1 && d.finals.Test(uint(s))
	}

	type pair struct{ a, b int }
	start := pair{a.initial, b.initial}
	visited := map[pair]struct{}{start: {}}
	workList := []pair{start}
	for len(workList) > 0 {
		p := workList[0]
		workList = workList[1:]
		if accept(a, p.a) != accept(b, p.b) {
			return false, nil
		}
		for _, r := range symbols {
			next := pair{-1, -1}
			if p.a != -1 {
				next.a = a.step(p.a, r)
			}
			if p.b != -1 {
				next.b = b.step(p.b, r)
			}
			if next.a == -1 && next.b == -1 {
				continue
			}
			if _, ok := visited[next]; !ok {
				visited[next] = struct{}{}
				workList = append(workList, next)
			}
		}
	}
	return true, nil
}
