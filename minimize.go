package automata

import (
	"strconv"
	"strings"
)

type minimizeOptions struct {
	observer    func(round int, blocks [][]string)
	determinize []DeterminizeOption
}

type MinimizeOption func(*minimizeOptions)

// WithRefinementObserver registers fn to be called with the initial partition (round 0) and again
// after every refinement pass that split a block. Blocks and their members are listed in state
// order.
func WithRefinementObserver(fn func(round int, blocks [][]string)) MinimizeOption {
	return func(o *minimizeOptions) {
		o.observer = fn
	}
}

// WithDeterminizeOptions passes options to the subset construction MinimizeNFA runs first. Minimize
// ignores them.
func WithDeterminizeOptions(options ...DeterminizeOption) MinimizeOption {
	return func(o *minimizeOptions) {
		o.determinize = append(o.determinize, options...)
	}
}

// Minimize returns the minimal DFA recognizing the same language as d.
//
// Unreachable states are pruned first. The remaining states are split into final and non-final
// blocks, and blocks are refined until stable: two states stay together only while, for every
// symbol in sorted order, their transitions lead into the same block (or are both undefined). At
// the fixpoint the blocks are the Myhill-Nerode classes of the reachable states.
//
// Every block becomes one state named after its lexicographically smallest member.
func Minimize(d *DFA, options ...MinimizeOption) (*DFA, error) {
	if !d.valid() {
		return nil, unsupported("minimize requires a DFA built by NewDFA")
	}
	opts := &minimizeOptions{}
	for _, fn := range options {
		fn(opts)
	}

	blocks := d.initialPartition()
	blockOf := make([]int, d.states.len())
	assign := func() {
		for i, block := range blocks {
			for _, s := range block {
				blockOf[s] = i
			}
		}
	}
	assign()
	if opts.observer != nil {
		opts.observer(0, d.blockNames(blocks))
	}

	for round := 1; ; round++ {
		refined := make([][]int, 0, len(blocks))
		split := false
		for _, block := range blocks {
			parts := d.splitBlock(block, blockOf)
			if len(parts) > 1 {
				split = true
			}
			refined = append(refined, parts...)
		}
		blocks = refined
		assign()

		if !split {
			break
		}
		if opts.observer != nil {
			opts.observer(round, d.blockNames(blocks))
		}
	}

	b := newDFADraft(d.alphabet)
	for _, block := range blocks {
		accept := false
		for _, s := range block {
			if d.finals.Test(uint(s)) {
				accept = true
				break
			}
		}
		// Members are kept in index order, and indices follow the sorted names.
		b.CreateState(d.states.name(block[0]), accept)
	}
	for i, block := range blocks {
		for sym, dst := range d.delta[block[0]] {
			if dst != -1 {
				b.AddTransition(i, sym, blockOf[dst])
			}
		}
	}
	b.initial = blockOf[d.initial]

	return b.build()
}

// MinimizeNFA determinizes n and minimizes the result. Options apply to both steps.
func MinimizeNFA(n *NFA, options ...MinimizeOption) (*DFA, error) {
	opts := &minimizeOptions{}
	for _, fn := range options {
		fn(opts)
	}
	d, err := Determinize(n, opts.determinize...)
	if err != nil {
		return nil, err
	}
	return Minimize(d, options...)
}

// initialPartition splits the reachable states into non-final and final blocks, omitting an empty
// block.
func (d *DFA) initialPartition() [][]int {
	reachable := d.reachableSet()
	var nonFinal, final []int
	for s, ok := reachable.NextSet(0); ok; s, ok = reachable.NextSet(s + 1) {
		if d.finals.Test(s) {
			final = append(final, int(s))
		} else {
			nonFinal = append(nonFinal, int(s))
		}
	}

	blocks := make([][]int, 0, 2)
	if len(nonFinal) > 0 {
		blocks = append(blocks, nonFinal)
	}
	if len(final) > 0 {
		blocks = append(blocks, final)
	}
	return blocks
}

// splitBlock groups the members of block by signature. Groups are ordered by their first member,
// and members keep their relative order.
func (d *DFA) splitBlock(block []int, blockOf []int) [][]int {
	if len(block) == 1 {
		return [][]int{block}
	}

	groups := make(map[string]int)
	var parts [][]int
	for _, s := range block {
		sig := d.signature(s, blockOf)
		i, ok := groups[sig]
		if !ok {
			i = len(parts)
			groups[sig] = i
			parts = append(parts, nil)
		}
		parts[i] = append(parts[i], s)
	}
	return parts
}

// signature encodes, per symbol, the block the transition leads into, or -1 if it is undefined.
func (d *DFA) signature(state int, blockOf []int) string {
	buf := make([]byte, 0, 4*d.alphabet.len())
	for _, dst := range d.delta[state] {
		target := -1
		if dst != -1 {
			target = blockOf[dst]
		}
		buf = strconv.AppendInt(buf, int64(target), 10)
		buf = append(buf, ',')
	}
	return string(buf)
}

func (d *DFA) blockNames(blocks [][]int) [][]string {
	names := make([][]string, len(blocks))
	for i, block := range blocks {
		names[i] = make([]string, len(block))
		for j, s := range block {
			names[i][j] = d.states.name(s)
		}
	}
	return names
}

// FormatPartition renders blocks as "{a,b} {c}", the form a minimization trace is usually
// printed in.
func FormatPartition(blocks [][]string) string {
	parts := make([]string, len(blocks))
	for i, block := range blocks {
		parts[i] = "{" + strings.Join(block, ",") + "}"
	}
	return strings.Join(parts, " ")
}
