package automata

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedAutomaton is returned by the constructors when the declared states, alphabet and
	// transitions are inconsistent. It is never returned after construction.
	ErrMalformedAutomaton = errors.New("malformed automaton")

	// ErrUnsupportedPrecondition is returned by an algorithm given an input that violates its
	// documented precondition, e.g. a zero-value DFA.
	ErrUnsupportedPrecondition = errors.New("unsupported precondition")

	// ErrTooComplexToDeterminize is returned when subset construction exceeds its work limit.
	ErrTooComplexToDeterminize = errors.New("automaton too complex to determinize")

	// ErrSearchLimitExceeded is returned by PDA.Search when a step or stack-height budget cut the
	// search short before an accepting configuration was found.
	ErrSearchLimitExceeded = errors.New("pushdown search limit exceeded")
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedAutomaton, fmt.Sprintf(format, args...))
}

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedPrecondition, fmt.Sprintf(format, args...))
}
