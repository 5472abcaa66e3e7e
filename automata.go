package automata

import "strconv"

// MakeEmpty
// Returns a new DFA over symbols with the empty language.
func MakeEmpty(symbols []rune) (*DFA, error) {
	return NewDFA([]string{"q0"}, symbols, nil, "q0", nil)
}

// MakeEmptyString
// Returns a new DFA over symbols that accepts only the empty string.
func MakeEmptyString(symbols []rune) (*DFA, error) {
	return NewDFA([]string{"q0"}, symbols, nil, "q0", []string{"q0"})
}

// MakeAnyString
// Returns a new DFA that accepts every string over symbols.
func MakeAnyString(symbols []rune) (*DFA, error) {
	loop := make(map[rune]string, len(symbols))
	for _, r := range symbols {
		loop[r] = "q0"
	}
	return NewDFA([]string{"q0"}, symbols, map[string]map[rune]string{"q0": loop}, "q0", []string{"q0"})
}

// MakeString
// Returns a new DFA that accepts only s. The alphabet is the set of runes in s.
func MakeString(s string) (*DFA, error) {
	runes := []rune(s)
	states := make([]string, len(runes)+1)
	for i := range states {
		states[i] = "q" + strconv.Itoa(i)
	}

	delta := make(map[string]map[rune]string, len(runes))
	for i, r := range runes {
		delta[states[i]] = map[rune]string{r: states[i+1]}
	}

	return NewDFA(states, runes, delta, states[0], []string{states[len(runes)]})
}
