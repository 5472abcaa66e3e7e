package automata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// DefaultDeterminizeWorkLimit is the work budget Determinize uses unless WithWorkLimit overrides
// it. One unit of work is one NFA state moved on one symbol.
const DefaultDeterminizeWorkLimit = 1_000_000

type determinizeOptions struct {
	workLimit   int
	prefix      string
	subsetNames bool
}

type DeterminizeOption func(*determinizeOptions)

// WithWorkLimit caps the effort subset construction may spend before failing with
// ErrTooComplexToDeterminize. A limit <= 0 disables the cap.
func WithWorkLimit(limit int) DeterminizeOption {
	return func(o *determinizeOptions) {
		o.workLimit = limit
	}
}

// WithStatePrefix names generated states prefix0, prefix1, ... instead of q0, q1, ...
func WithStatePrefix(prefix string) DeterminizeOption {
	return func(o *determinizeOptions) {
		o.prefix = prefix
	}
}

// WithSubsetNames names every generated state after the NFA states it stands for, e.g. "{X,Y}".
func WithSubsetNames() DeterminizeOption {
	return func(o *determinizeOptions) {
		o.subsetNames = true
	}
}

// nameGenerator mints fresh state names for one conversion call.
type nameGenerator struct {
	prefix string
	next   int
}

func (g *nameGenerator) fresh() string {
	name := g.prefix + strconv.Itoa(g.next)
	g.next++
	return name
}

// subsetName renders members as "{X,Y}". A member that could be mistaken for punctuation is
// written as a quoted Go string, so distinct sets always get distinct names.
func subsetName(members []string) string {
	parts := make([]string, len(members))
	for i, m := range members {
		if m == "" || strings.ContainsAny(m, `,{}"\`) {
			m = strconv.Quote(m)
		}
		parts[i] = m
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Determinize converts n into a DFA over the same alphabet recognizing the same language, using
// the subset construction. Each DFA state stands for the ε-closed set of NFA states reachable on
// some input. Sets are discovered breadth-first and the alphabet is walked in sorted order, so the
// generated state numbering is the same on every run.
//
// Symbols whose destination set is empty get no transition: the result is a partial DFA. Use
// Totalize to add an explicit sink state.
//
// Worst case complexity: exponential in the number of NFA states.
func Determinize(n *NFA, options ...DeterminizeOption) (*DFA, error) {
	if !n.valid() {
		return nil, unsupported("determinize requires an NFA built by NewNFA")
	}

	opts := &determinizeOptions{workLimit: DefaultDeterminizeWorkLimit, prefix: "q"}
	for _, fn := range options {
		fn(opts)
	}
	names := &nameGenerator{prefix: opts.prefix}
	nameOf := func(set *bitset.BitSet) string {
		if opts.subsetNames {
			return subsetName(n.states.namesOf(set))
		}
		return names.fresh()
	}

	b := newDFADraft(n.alphabet)
	seen := newHashMap[int](withCapacity(n.states.len()))

	initialSet := n.closure(singleton(n.states, n.initial))
	b.initial = b.CreateState(nameOf(initialSet), initialSet.IntersectionCardinality(n.finals) > 0)
	seen.Set(freezeStateSet(initialSet), b.initial)

	workList := []*bitset.BitSet{initialSet}
	work := 0
	for id := 0; id < len(workList); id++ {
		current := workList[id]

		work += int(current.Count()) * n.alphabet.len()
		if opts.workLimit > 0 && work > opts.workLimit {
			return nil, fmt.Errorf("%w: more than %d units of work after %d states",
				ErrTooComplexToDeterminize, opts.workLimit, len(workList))
		}

		for sym := 0; sym < n.alphabet.len(); sym++ {
			next := n.closure(n.move(current, sym))
			if next.None() {
				continue
			}

			key := freezeStateSet(next)
			dest, ok := seen.Get(key)
			if !ok {
				dest = b.CreateState(nameOf(next), next.IntersectionCardinality(n.finals) > 0)
				seen.Set(key, dest)
				workList = append(workList, next)
			}
			b.AddTransition(id, sym, dest)
		}
	}

	return b.build()
}
