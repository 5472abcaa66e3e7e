package automata

import (
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
)

// DFA is a deterministic finite automaton with a partial transition function. A DFA is immutable
// once built; every accessor returns a copy. The accessors of a zero DFA report an automaton with
// no states.
type DFA struct {
	states   *stateTable
	alphabet *alphabet

	// delta[state][symbol] holds the destination index, or -1 when the transition is undefined.
	delta [][]int

	initial int
	finals  *bitset.BitSet
}

// NewDFA builds a DFA from its five defining elements. delta maps a source state and a symbol to
// at most one destination; missing entries are undefined transitions. Any reference to an
// undeclared state or symbol, or an ε-transition, fails with ErrMalformedAutomaton and no DFA is
// returned.
func NewDFA(states []string, symbols []rune, delta map[string]map[rune]string, initial string, finals []string) (*DFA, error) {
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

	rows := newDeltaTable(table.len(), alpha.len())
	for _, from := range slices.Sorted(maps.Keys(delta)) {
		src, ok := table.lookup(from)
		if !ok {
			return nil, malformed("transition from undeclared state %q", from)
		}
		edges := delta[from]
		for _, symbol := range slices.Sorted(maps.Keys(edges)) {
			to := edges[symbol]
			if symbol == Epsilon {
				return nil, malformed("deterministic automaton has an ε-transition from %q", from)
			}
			sym, ok := alpha.lookup(symbol)
			if !ok {
				return nil, malformed("transition from %q on undeclared symbol %q", from, symbol)
			}
			dst, ok := table.lookup(to)
			if !ok {
				return nil, malformed("transition δ(%s, %c) to undeclared state %q", from, symbol, to)
			}
			rows[src][sym] = dst
		}
	}

	return &DFA{
		states:   table,
		alphabet: alpha,
		delta:    rows,
		initial:  start,
		finals:   finalSet,
	}, nil
}

func newDeltaTable(numStates, numSymbols int) [][]int {
	rows := make([][]int, numStates)
	for i := range rows {
		row := make([]int, numSymbols)
		for j := range row {
			row[j] = -1
		}
		rows[i] = row
	}
	return rows
}

// dfaDraft is a DFA under construction by an algorithm. States are identified by discovery order
// and carry generated names; build sorts the names into a stateTable and remaps every index.
type dfaDraft struct {
	names    []string
	alphabet *alphabet
	delta    [][]int
	accept   []bool
	initial  int
}

func newDFADraft(alpha *alphabet) *dfaDraft {
	return &dfaDraft{alphabet: alpha}
}

// CreateState adds a state with every transition undefined and returns its draft id.
func (b *dfaDraft) CreateState(name string, accept bool) int {
	id := len(b.names)
	b.names = append(b.names, name)
	b.accept = append(b.accept, accept)
	row := make([]int, b.alphabet.len())
	for i := range row {
		row[i] = -1
	}
	b.delta = append(b.delta, row)
	return id
}

func (b *dfaDraft) AddTransition(source, symbol, dest int) {
	b.delta[source][symbol] = dest
}

func (b *dfaDraft) build() (*DFA, error) {
	table, err := newStateTableStrict(b.names)
	if err != nil {
		return nil, err
	}

	remap := make([]int, len(b.names))
	for id, name := range b.names {
		remap[id], _ = table.lookup(name)
	}

	rows := newDeltaTable(table.len(), b.alphabet.len())
	finals := table.newSet()
	for id, row := range b.delta {
		for sym, dst := range row {
			if dst != -1 {
				rows[remap[id]][sym] = remap[dst]
			}
		}
		if b.accept[id] {
			finals.Set(uint(remap[id]))
		}
	}

	return &DFA{
		states:   table,
		alphabet: b.alphabet,
		delta:    rows,
		initial:  remap[b.initial],
		finals:   finals,
	}, nil
}

// valid reports whether d came out of a constructor rather than being a zero value.
func (d *DFA) valid() bool {
	return d != nil && d.states != nil && d.alphabet != nil && d.finals != nil &&
		len(d.delta) == d.states.len() && d.initial >= 0 && d.initial < d.states.len()
}

func (d *DFA) Kind() Kind {
	return Deterministic
}

func (d *DFA) States() []string {
	if !d.valid() {
		return nil
	}
	return d.states.all()
}

func (d *DFA) Alphabet() []rune {
	if !d.valid() {
		return nil
	}
	return d.alphabet.all()
}

func (d *DFA) Initial() string {
	if !d.valid() {
		return ""
	}
	return d.states.name(d.initial)
}

func (d *DFA) Finals() []string {
	if !d.valid() {
		return nil
	}
	return d.states.namesOf(d.finals)
}

func (d *DFA) IsFinal(state string) bool {
	if !d.valid() {
		return false
	}
	i, ok := d.states.lookup(state)
	return ok && d.finals.Test(uint(i))
}

// NumStates How many states this automaton has.
func (d *DFA) NumStates() int {
	if !d.valid() {
		return 0
	}
	return d.states.len()
}

// Step Performs lookup in transitions. Returns the destination state and false if the transition
// is undefined or either argument is not declared.
func (d *DFA) Step(state string, symbol rune) (string, bool) {
	if !d.valid() {
		return "", false
	}
	src, ok := d.states.lookup(state)
	if !ok {
		return "", false
	}
	dst := d.step(src, symbol)
	if dst == -1 {
		return "", false
	}
	return d.states.name(dst), true
}

func (d *DFA) step(state int, symbol rune) int {
	sym, ok := d.alphabet.lookup(symbol)
	if !ok {
		return -1
	}
	return d.delta[state][sym]
}

// Delta returns the transition function in the shape NewDFA accepts.
func (d *DFA) Delta() map[string]map[rune]string {
	delta := make(map[string]map[rune]string)
	if !d.valid() {
		return delta
	}
	for src, row := range d.delta {
		for sym, dst := range row {
			if dst == -1 {
				continue
			}
			from := d.states.name(src)
			if delta[from] == nil {
				delta[from] = make(map[rune]string)
			}
			delta[from][d.alphabet.symbols[sym]] = d.states.name(dst)
		}
	}
	return delta
}

func (d *DFA) Transitions() []Transition {
	var transitions []Transition
	if !d.valid() {
		return transitions
	}
	for src, row := range d.delta {
		for sym, dst := range row {
			if dst == -1 {
				continue
			}
			transitions = append(transitions, Transition{
				From:   d.states.name(src),
				Symbol: d.alphabet.symbols[sym],
				To:     d.states.name(dst),
			})
		}
	}
	return transitions
}

// Accepts walks the transition function from the initial state, rejecting as soon as a
// transition is undefined. Input that is not valid UTF-8 is rejected.
func (d *DFA) Accepts(input string) bool {
	if !d.valid() || !utf8.ValidString(input) {
		return false
	}
	state := d.initial
	for _, r := range input {
		state = d.step(state, r)
		if state == -1 {
			return false
		}
	}
	return d.finals.Test(uint(state))
}

func (d *DFA) String() string {
	return describe(d, nil)
}
