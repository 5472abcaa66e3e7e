package automata

import (
	"context"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// AcceptanceMode selects how a PDA decides acceptance once its input is consumed.
type AcceptanceMode int

const (
	AcceptByFinalState = AcceptanceMode(iota) // The current state is final
	AcceptByEmptyStack                        // The stack is empty
)

func (m AcceptanceMode) String() string {
	switch m {
	case AcceptByFinalState:
		return "final state"
	case AcceptByEmptyStack:
		return "empty stack"
	default:
		return fmt.Sprintf("AcceptanceMode(%d)", int(m))
	}
}

// PDATransition is one rule of a pushdown automaton: in state From, reading Input (or Epsilon)
// with Top on top of the stack, move to To and replace Top with Push. The first rune of Push ends
// up on top; an empty Push pops.
type PDATransition struct {
	From  string
	Input rune
	Top   rune
	To    string
	Push  string
}

func (t PDATransition) String() string {
	return Transition{From: t.From, Symbol: t.Input, To: t.To, Top: t.Top, Push: t.Push}.String()
}

// PDADefinition collects everything NewPDA needs.
type PDADefinition struct {
	States        []string
	InputAlphabet []rune
	StackAlphabet []rune
	Transitions   []PDATransition
	Initial       string
	InitialStack  rune
	Finals        []string
	Mode          AcceptanceMode
}

// PDA is a nondeterministic pushdown automaton.
type PDA struct {
	states *stateTable
	input  *alphabet
	stack  *alphabet

	rules []pdaRule
	// byState[state] lists the rules leaving state, in declaration order.
	byState [][]int

	initial      int
	initialStack rune
	finals       *bitset.BitSet
	mode         AcceptanceMode

	// longestPush is the length of the longest replacement string.
	longestPush int
}

type pdaRule struct {
	PDATransition
	from, to int
	push     []rune
}

// NewPDA validates def and builds a PDA. Transitions keep their declaration order, which is the
// order the acceptance search tries them in.
func NewPDA(def PDADefinition) (*PDA, error) {
	table := newStateTable(def.States)
	input, err := newAlphabet(def.InputAlphabet, "input")
	if err != nil {
		return nil, err
	}
	stack, err := newAlphabet(def.StackAlphabet, "stack")
	if err != nil {
		return nil, err
	}

	start, ok := table.lookup(def.Initial)
	if !ok {
		return nil, malformed("initial state %q is not a declared state", def.Initial)
	}
	if !stack.contains(def.InitialStack) {
		return nil, malformed("initial stack symbol %q is not in the stack alphabet", def.InitialStack)
	}
	finals, err := table.setOf(def.Finals, "final")
	if err != nil {
		return nil, err
	}
	if def.Mode != AcceptByFinalState && def.Mode != AcceptByEmptyStack {
		return nil, malformed("unknown acceptance mode %d", int(def.Mode))
	}

	p := &PDA{
		states:       table,
		input:        input,
		stack:        stack,
		rules:        make([]pdaRule, 0, len(def.Transitions)),
		byState:      make([][]int, table.len()),
		initial:      start,
		initialStack: def.InitialStack,
		finals:       finals,
		mode:         def.Mode,
	}

	for _, t := range def.Transitions {
		from, ok := table.lookup(t.From)
		if !ok {
			return nil, malformed("transition %s: undeclared state %q", t, t.From)
		}
		to, ok := table.lookup(t.To)
		if !ok {
			return nil, malformed("transition %s: undeclared state %q", t, t.To)
		}
		if t.Input != Epsilon && !input.contains(t.Input) {
			return nil, malformed("transition %s: input symbol %q is not in the input alphabet", t, t.Input)
		}
		if !stack.contains(t.Top) {
			return nil, malformed("transition %s: stack top %q is not in the stack alphabet", t, t.Top)
		}
		push := []rune(t.Push)
		for _, r := range push {
			if !stack.contains(r) {
				return nil, malformed("transition %s: replacement symbol %q is not in the stack alphabet", t, r)
			}
		}

		p.longestPush = max(p.longestPush, len(push))
		p.byState[from] = append(p.byState[from], len(p.rules))
		p.rules = append(p.rules, pdaRule{PDATransition: t, from: from, to: to, push: push})
	}
	return p, nil
}

func (p *PDA) valid() bool {
	return p != nil && p.states != nil && p.input != nil && p.stack != nil && p.finals != nil &&
		len(p.byState) == p.states.len() && p.initial >= 0 && p.initial < p.states.len()
}

func (p *PDA) Kind() Kind {
	return Pushdown
}

func (p *PDA) States() []string {
	if !p.valid() {
		return nil
	}
	return p.states.all()
}

// Alphabet returns the input alphabet.
func (p *PDA) Alphabet() []rune {
	if !p.valid() {
		return nil
	}
	return p.input.all()
}

func (p *PDA) StackAlphabet() []rune {
	if !p.valid() {
		return nil
	}
	return p.stack.all()
}

func (p *PDA) Initial() string {
	if !p.valid() {
		return ""
	}
	return p.states.name(p.initial)
}

func (p *PDA) InitialStack() rune {
	return p.initialStack
}

func (p *PDA) Finals() []string {
	if !p.valid() {
		return nil
	}
	return p.states.namesOf(p.finals)
}

func (p *PDA) IsFinal(state string) bool {
	if !p.valid() {
		return false
	}
	i, ok := p.states.lookup(state)
	return ok && p.finals.Test(uint(i))
}

func (p *PDA) Mode() AcceptanceMode {
	return p.mode
}

// Rules returns the transitions in declaration order, in the shape NewPDA accepts.
func (p *PDA) Rules() []PDATransition {
	if !p.valid() {
		return nil
	}
	rules := make([]PDATransition, len(p.rules))
	for i, r := range p.rules {
		rules[i] = r.PDATransition
	}
	return rules
}

// Transitions returns the rules as flat rows grouped by source state, each group in declaration
// order.
func (p *PDA) Transitions() []Transition {
	if !p.valid() {
		return nil
	}
	transitions := make([]Transition, 0, len(p.rules))
	for _, ids := range p.byState {
		for _, id := range ids {
			r := p.rules[id]
			transitions = append(transitions, Transition{
				From:   r.From,
				Symbol: r.Input,
				To:     r.To,
				Top:    r.Top,
				Push:   r.Push,
			})
		}
	}
	return transitions
}

// Accepts runs Search with the default limits. An inconclusive search counts as a rejection.
func (p *PDA) Accepts(input string) bool {
	ok, _ := p.Search(context.Background(), input)
	return ok
}

func (p *PDA) String() string {
	return describe(p, func(sb *strings.Builder) {
		fmt.Fprintf(sb, "  stack alphabet: %s\n", runesString(p.StackAlphabet()))
		fmt.Fprintf(sb, "  initial stack: %c\n", p.initialStack)
		fmt.Fprintf(sb, "  accepts by: %s\n", p.mode)
	})
}
