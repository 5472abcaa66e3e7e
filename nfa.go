package automata

import (
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
)

// NFA is a nondeterministic finite automaton with ε-transitions. ε-edges are stored apart from
// symbol edges, and any lookup may yield the empty set.
type NFA struct {
	states   *stateTable
	alphabet *alphabet

	// delta[state][symbol] and epsilon[state] are nil when there is no such edge.
	delta   [][]*bitset.BitSet
	epsilon []*bitset.BitSet

	initial int
	finals  *bitset.BitSet
}

// NewNFA builds an NFA from its five defining elements. ε-transitions are keyed with Epsilon in
// delta. Any reference to an undeclared state or symbol fails with ErrMalformedAutomaton.
func NewNFA(states []string, symbols []rune, delta map[string]map[rune][]string, initial string, finals []string) (*NFA, error) {
	table := newStateTable(states)
	alpha, err := newAlphabet(symbols, "input")
	if err != nil {
		return nil, err
	}

	start, ok := table.lookup(initial)
	if !ok {
		return nil, malformed("initial state %q is not a declared state", initial)
	}
	finalSet, err := table.setOf(finals, "final")
	if err != nil {
		return nil, err
	}

	n := &NFA{
		states:   table,
		alphabet: alpha,
		delta:    make([][]*bitset.BitSet, table.len()),
		epsilon:  make([]*bitset.BitSet, table.len()),
		initial:  start,
		finals:   finalSet,
	}
	for i := range n.delta {
		n.delta[i] = make([]*bitset.BitSet, alpha.len())
	}

	for _, from := range slices.Sorted(maps.Keys(delta)) {
		src, ok := table.lookup(from)
		if !ok {
			return nil, malformed("transition from undeclared state %q", from)
		}
		edges := delta[from]
		for _, symbol := range slices.Sorted(maps.Keys(edges)) {
			sym, ok := alpha.lookup(symbol)
			if !ok && symbol != Epsilon {
				return nil, malformed("transition from %q on undeclared symbol %q", from, symbol)
			}
			dests, err := table.setOf(edges[symbol], "destination")
			if err != nil {
				return nil, err
			}
			if dests.None() {
				continue
			}
			if symbol == Epsilon {
				n.epsilon[src] = dests
			} else {
				n.delta[src][sym] = dests
			}
		}
	}
	return n, nil
}

func (n *NFA) valid() bool {
	return n != nil && n.states != nil && n.alphabet != nil && n.finals != nil &&
		len(n.delta) == n.states.len() && len(n.epsilon) == n.states.len() &&
		n.initial >= 0 && n.initial < n.states.len()
}

func (n *NFA) Kind() Kind {
	return Nondeterministic
}

func (n *NFA) States() []string {
	if !n.valid() {
		return nil
	}
	return n.states.all()
}

func (n *NFA) Alphabet() []rune {
	if !n.valid() {
		return nil
	}
	return n.alphabet.all()
}

func (n *NFA) Initial() string {
	if !n.valid() {
		return ""
	}
	return n.states.name(n.initial)
}

func (n *NFA) Finals() []string {
	if !n.valid() {
		return nil
	}
	return n.states.namesOf(n.finals)
}

func (n *NFA) IsFinal(state string) bool {
	if !n.valid() {
		return false
	}
	i, ok := n.states.lookup(state)
	return ok && n.finals.Test(uint(i))
}

// NumStates How many states this automaton has.
func (n *NFA) NumStates() int {
	if !n.valid() {
		return 0
	}
	return n.states.len()
}

// HasEpsilon reports whether any state has an ε-transition.
func (n *NFA) HasEpsilon() bool {
	if !n.valid() {
		return false
	}
	for _, eps := range n.epsilon {
		if eps != nil {
			return true
		}
	}
	return false
}

// Destinations returns δ(state, symbol), sorted. symbol may be Epsilon. Unknown arguments yield
// the empty set.
func (n *NFA) Destinations(state string, symbol rune) []string {
	if !n.valid() {
		return nil
	}
	src, ok := n.states.lookup(state)
	if !ok {
		return nil
	}
	if set := n.edges(src, symbol); set != nil {
		return n.states.namesOf(set)
	}
	return nil
}

func (n *NFA) edges(src int, symbol rune) *bitset.BitSet {
	if symbol == Epsilon {
		return n.epsilon[src]
	}
	sym, ok := n.alphabet.lookup(symbol)
	if !ok {
		return nil
	}
	return n.delta[src][sym]
}

// EpsilonClosure returns the smallest superset of states closed under ε-transitions, sorted.
func (n *NFA) EpsilonClosure(states []string) ([]string, error) {
	if !n.valid() {
		return nil, unsupported("closure requires an NFA built by NewNFA")
	}
	set, err := n.states.setOf(states, "closure")
	if err != nil {
		return nil, err
	}
	return n.states.namesOf(n.closure(set)), nil
}

// Delta returns the transition function in the shape NewNFA accepts.
func (n *NFA) Delta() map[string]map[rune][]string {
	delta := make(map[string]map[rune][]string)
	for _, t := range n.Transitions() {
		if delta[t.From] == nil {
			delta[t.From] = make(map[rune][]string)
		}
		delta[t.From][t.Symbol] = append(delta[t.From][t.Symbol], t.To)
	}
	return delta
}

func (n *NFA) Transitions() []Transition {
	var transitions []Transition
	if !n.valid() {
		return transitions
	}
	emit := func(src int, symbol rune, dests *bitset.BitSet) {
		if dests == nil {
			return
		}
		for _, to := range n.states.namesOf(dests) {
			transitions = append(transitions, Transition{From: n.states.name(src), Symbol: symbol, To: to})
		}
	}
	for src := range n.delta {
		emit(src, Epsilon, n.epsilon[src])
		for sym, dests := range n.delta[src] {
			emit(src, n.alphabet.symbols[sym], dests)
		}
	}
	return transitions
}

// Accepts simulates every path at once: the current state set starts as the ε-closure of the
// initial state and is advanced one symbol at a time. An empty set rejects immediately, and so
// does input that is not valid UTF-8.
func (n *NFA) Accepts(input string) bool {
	if !n.valid() || !utf8.ValidString(input) {
		return false
	}
	current := n.closure(singleton(n.states, n.initial))
	for _, r := range input {
		sym, ok := n.alphabet.lookup(r)
		if !ok {
			return false
		}
		current = n.closure(n.move(current, sym))
		if current.None() {
			return false
		}
	}
	return current.IntersectionCardinality(n.finals) > 0
}

func (n *NFA) String() string {
	return describe(n, nil)
}
