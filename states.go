package automata

import (
	"slices"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
)

// stateTable assigns every state name a dense index. Names are kept sorted so the index order
// is also the lexicographic order, which the algorithms rely on for deterministic naming.
type stateTable struct {
	names []string
	index map[string]int
}

func newStateTable(names []string) *stateTable {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	index := make(map[string]int, len(sorted))
	for i, name := range sorted {
		index[name] = i
	}
	return &stateTable{names: sorted, index: index}
}

// newStateTableStrict is newStateTable for generated names, where a duplicate is a bug in the
// naming scheme rather than something to collapse.
func newStateTableStrict(names []string) (*stateTable, error) {
	t := newStateTable(names)
	if len(t.names) != len(names) {
		return nil, unsupported("generated state names are not unique")
	}
	return t, nil
}

func (t *stateTable) len() int {
	return len(t.names)
}

func (t *stateTable) lookup(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

func (t *stateTable) name(i int) string {
	return t.names[i]
}

func (t *stateTable) all() []string {
	return slices.Clone(t.names)
}

func (t *stateTable) newSet() *bitset.BitSet {
	return bitset.New(uint(len(t.names)))
}

// setOf resolves names into a state set; what names the role of the states in the error.
func (t *stateTable) setOf(names []string, what string) (*bitset.BitSet, error) {
	set := t.newSet()
	for _, name := range names {
		i, ok := t.lookup(name)
		if !ok {
			return nil, malformed("%s state %q is not a declared state", what, name)
		}
		set.Set(uint(i))
	}
	return set, nil
}

// namesOf returns the names of the states in set, sorted.
func (t *stateTable) namesOf(set *bitset.BitSet) []string {
	names := make([]string, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		names = append(names, t.names[i])
	}
	return names
}

// alphabet is the symbol counterpart of stateTable.
type alphabet struct {
	symbols []rune
	index   map[rune]int
}

func newAlphabet(symbols []rune, what string) (*alphabet, error) {
	sorted := slices.Clone(symbols)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	index := make(map[rune]int, len(sorted))
	for i, r := range sorted {
		if r == Epsilon {
			return nil, malformed("%s alphabet contains epsilon", what)
		}
		if !utf8.ValidRune(r) {
			return nil, malformed("%s alphabet contains invalid rune %U", what, r)
		}
		index[r] = i
	}
	return &alphabet{symbols: sorted, index: index}, nil
}

func (a *alphabet) len() int {
	return len(a.symbols)
}

func (a *alphabet) lookup(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

func (a *alphabet) contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

func (a *alphabet) all() []rune {
	return slices.Clone(a.symbols)
}

func singleton(t *stateTable, state int) *bitset.BitSet {
	set := t.newSet()
	set.Set(uint(state))
	return set
}
