package automata

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// allStrings returns every string over symbols of length at most maxLen, shortest first.
func allStrings(symbols []rune, maxLen int) []string {
	out := []string{""}
	layer := []string{""}
	for n := 0; n < maxLen; n++ {
		var next []string
		for _, prefix := range layer {
			for _, r := range symbols {
				next = append(next, prefix+string(r))
			}
		}
		out = append(out, next...)
		layer = next
	}
	return out
}

func stateNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + strconv.Itoa(i)
	}
	return names
}

// randomNFA builds an NFA with roughly density edges per state and symbol, including ε-edges.
func randomNFA(t *testing.T, rng *rand.Rand, numStates int, symbols []rune, density float64) *NFA {
	t.Helper()
	states := stateNames("s", numStates)
	keys := append([]rune{Epsilon}, symbols...)

	delta := make(map[string]map[rune][]string)
	var finals []string
	for _, from := range states {
		for _, r := range keys {
			p := density
			if r == Epsilon {
				p /= 2
			}
			for _, to := range states {
				if rng.Float64() < p/float64(numStates) {
					if delta[from] == nil {
						delta[from] = make(map[rune][]string)
					}
					delta[from][r] = append(delta[from][r], to)
				}
			}
		}
		if rng.IntN(3) == 0 {
			finals = append(finals, from)
		}
	}

	n, err := NewNFA(states, symbols, delta, states[0], finals)
	require.NoError(t, err)
	return n
}

// randomDFA builds a partial DFA where each transition is defined with probability fill.
func randomDFA(t *testing.T, rng *rand.Rand, numStates int, symbols []rune, fill float64) *DFA {
	t.Helper()
	states := stateNames("d", numStates)

	delta := make(map[string]map[rune]string)
	var finals []string
	for _, from := range states {
		for _, r := range symbols {
			if rng.Float64() < fill {
				if delta[from] == nil {
					delta[from] = make(map[rune]string)
				}
				delta[from][r] = states[rng.IntN(numStates)]
			}
		}
		if rng.IntN(3) == 0 {
			finals = append(finals, from)
		}
	}

	d, err := NewDFA(states, symbols, delta, states[0], finals)
	require.NoError(t, err)
	return d
}
