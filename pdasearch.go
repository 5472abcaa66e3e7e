package automata

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// DefaultMaxSearchSteps bounds the number of configurations one search may expand.
const DefaultMaxSearchSteps = 1 << 20

// cancelCheckInterval is how many expansions happen between two context checks.
const cancelCheckInterval = 1024

// Configuration is a snapshot of a PDA run: the current state, the unread input and the stack
// contents, top first.
type Configuration struct {
	State     string
	Remaining string
	Stack     string
}

func (c Configuration) String() string {
	stack := c.Stack
	if stack == "" {
		stack = "ε"
	}
	return fmt.Sprintf("(%s, %q, %s)", c.State, c.Remaining, stack)
}

type searchOptions struct {
	maxSteps       int
	maxStackHeight int
	visit          func(Configuration)
}

type SearchOption func(*searchOptions)

// WithMaxSteps caps the number of configurations expanded. A limit <= 0 disables the cap.
func WithMaxSteps(n int) SearchOption {
	return func(o *searchOptions) {
		o.maxSteps = n
	}
}

// WithMaxStackHeight prunes every configuration whose stack grows beyond n symbols. The default grows
// with the input length, the number of states and the longest replacement. A limit <= 0 disables
// the cap.
func WithMaxStackHeight(n int) SearchOption {
	return func(o *searchOptions) {
		o.maxStackHeight = n
	}
}

// WithVisitor calls fn with every configuration the search expands, in expansion order.
func WithVisitor(fn func(Configuration)) SearchOption {
	return func(o *searchOptions) {
		o.visit = fn
	}
}

// defaultMaxStackHeight scales with both the input and the automaton: every input position may be
// followed by an ε-run through each state, and each move grows the stack by at most the longest
// replacement minus the popped top.
func (p *PDA) defaultMaxStackHeight(inputLen int) int {
	return 64 + (inputLen+1)*p.states.len()*max(1, p.longestPush)
}

// configuration is the interned form of Configuration. offset indexes the input runes.
type configuration struct {
	state  int
	offset int
	stack  int
}

// Search reports whether p accepts input under its acceptance mode.
//
// The search is depth-first over configurations, driven by an explicit work list and trying
// transitions in declaration order; it stops at the first accepting configuration. Every
// configuration is expanded at most once per call: whether an accepting configuration is
// reachable from it does not depend on how it was reached, so a repeat visit can never succeed
// where the first one failed. This is what makes ε-cycles terminate.
//
// ε-pushes can still grow the stack without bound, so the search is also capped by step count and
// stack height. If a cap cut the search short and nothing was accepted, Search returns false and
// an error wrapping ErrSearchLimitExceeded. Input that is not valid UTF-8 is rejected without
// searching. A cancelled ctx stops the search with ctx.Err().
func (p *PDA) Search(ctx context.Context, input string, options ...SearchOption) (bool, error) {
	if !p.valid() {
		return false, unsupported("search requires a PDA built by NewPDA")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !utf8.ValidString(input) {
		return false, nil
	}

	tape := []rune(input)
	opts := &searchOptions{
		maxSteps:       DefaultMaxSearchSteps,
		maxStackHeight: p.defaultMaxStackHeight(len(tape)),
	}
	for _, fn := range options {
		fn(opts)
	}

	pool := newStackPool()
	start := configuration{state: p.initial, stack: pool.push(emptyStack, p.initialStack)}

	visited := map[configuration]struct{}{}
	workList := []configuration{start}
	truncated := false
	steps := 0

	for len(workList) > 0 {
		c := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		if _, ok := visited[c]; ok {
			continue
		}
		visited[c] = struct{}{}

		if opts.visit != nil {
			opts.visit(Configuration{
				State:     p.states.name(c.state),
				Remaining: string(tape[c.offset:]),
				Stack:     pool.contents(c.stack),
			})
		}
		if p.accepting(c, len(tape)) {
			return true, nil
		}

		steps++
		if opts.maxSteps > 0 && steps > opts.maxSteps {
			return false, fmt.Errorf("%w: more than %d configurations expanded", ErrSearchLimitExceeded, opts.maxSteps)
		}
		if steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}

		if c.stack == emptyStack {
			continue
		}
		top := pool.top(c.stack)
		rules := p.byState[c.state]

		// Pushed in reverse so the first declared rule is popped, and explored, first.
		for i := len(rules) - 1; i >= 0; i-- {
			r := &p.rules[rules[i]]
			if r.Top != top {
				continue
			}
			next := configuration{state: r.to, offset: c.offset}
			if r.Input != Epsilon {
				if c.offset >= len(tape) || tape[c.offset] != r.Input {
					continue
				}
				next.offset++
			}
			next.stack = pool.replace(c.stack, r.push)
			if opts.maxStackHeight > 0 && pool.height(next.stack) > opts.maxStackHeight {
				truncated = true
				continue
			}
			if _, ok := visited[next]; !ok {
				workList = append(workList, next)
			}
		}
	}

	if truncated {
		return false, fmt.Errorf("%w: stack grew beyond %d symbols", ErrSearchLimitExceeded, opts.maxStackHeight)
	}
	return false, nil
}

func (p *PDA) accepting(c configuration, inputLen int) bool {
	if c.offset != inputLen {
		return false
	}
	if p.mode == AcceptByEmptyStack {
		return c.stack == emptyStack
	}
	return p.finals.Test(uint(c.state))
}
