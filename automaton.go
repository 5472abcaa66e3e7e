package automata

import (
	"fmt"
	"strings"
)

// Epsilon marks a transition that consumes no input. It is never a member of an alphabet.
const Epsilon rune = -1

// Kind identifies the concrete automaton behind an Automaton value.
type Kind int

const (
	Deterministic    = Kind(iota) // A DFA
	Nondeterministic              // An NFA with ε-transitions
	Pushdown                      // A PDA
)

func (k Kind) String() string {
	switch k {
	case Deterministic:
		return "DFA"
	case Nondeterministic:
		return "NFA"
	case Pushdown:
		return "PDA"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Automaton is the read-only surface shared by DFA, NFA and PDA. It is everything a serializer
// or a renderer needs to walk an automaton without knowing its kind.
type Automaton interface {
	Kind() Kind

	// States returns the declared states, sorted.
	States() []string

	// Alphabet returns the input alphabet, sorted. Epsilon is never included.
	Alphabet() []rune

	Initial() string

	// Finals returns the final states, sorted.
	Finals() []string

	IsFinal(state string) bool

	// Transitions returns every transition as a flat row, ordered by source state, then symbol
	// (Epsilon first), then destination.
	Transitions() []Transition

	// Accepts reports whether the automaton accepts input. Rejection is never an error.
	Accepts(input string) bool

	String() string
}

var (
	_ Automaton = &DFA{}
	_ Automaton = &NFA{}
	_ Automaton = &PDA{}
)

// Transition is one row of a transition function. Top and Push are only meaningful for
// pushdown automata; for finite automata Top is zero and Push is empty.
type Transition struct {
	From   string
	Symbol rune // Epsilon for ε-moves
	To     string
	Top    rune
	Push   string
}

// IsEpsilon reports whether the transition consumes no input.
func (t Transition) IsEpsilon() bool {
	return t.Symbol == Epsilon
}

func (t Transition) String() string {
	if t.Top != 0 {
		push := t.Push
		if push == "" {
			push = "ε"
		}
		return fmt.Sprintf("δ(%s, %s, %c) = (%s, %s)", t.From, symbolString(t.Symbol), t.Top, t.To, push)
	}
	return fmt.Sprintf("δ(%s, %s) = %s", t.From, symbolString(t.Symbol), t.To)
}

func symbolString(r rune) string {
	if r == Epsilon {
		return "ε"
	}
	return string(r)
}

// describe renders the summary shared by every kind's String method.
func describe(a Automaton, extra func(sb *strings.Builder)) string {
	sb := new(strings.Builder)
	fmt.Fprintf(sb, "%s:\n", a.Kind())
	fmt.Fprintf(sb, "  states: %v\n", a.States())
	fmt.Fprintf(sb, "  alphabet: %s\n", runesString(a.Alphabet()))
	fmt.Fprintf(sb, "  initial: %s\n", a.Initial())
	fmt.Fprintf(sb, "  finals: %v\n", a.Finals())
	if extra != nil {
		extra(sb)
	}
	sb.WriteString("  transitions:\n")
	for _, t := range a.Transitions() {
		fmt.Fprintf(sb, "    %s\n", t)
	}
	return sb.String()
}

func runesString(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
