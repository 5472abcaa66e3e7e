package automata

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newXYZNFA is the five-state NFA over {a,b} used across the conversion tests.
//
//	X -a-> {X,Y}   X -b-> {X}
//	Y -a-> {Z}     Y -ε-> {P}
//	Z -a-> {W}     Z -b-> {W}
//	P -b-> {W}
func newXYZNFA(t *testing.T) *NFA {
	t.Helper()
	n, err := NewNFA(
		[]string{"X", "Y", "Z", "W", "P"},
		[]rune{'a', 'b'},
		map[string]map[rune][]string{
			"X": {'a': {"X", "Y"}, 'b': {"X"}},
			"Y": {'a': {"Z"}, Epsilon: {"P"}},
			"Z": {'a': {"W"}, 'b': {"W"}},
			"P": {'b': {"W"}},
		},
		"X",
		[]string{"W"},
	)
	require.NoError(t, err)
	return n
}

func TestDeterminize(t *testing.T) {
	n := newXYZNFA(t)
	d, err := Determinize(n)
	require.NoError(t, err)

	t.Run("aab", func(t *testing.T) {
		// {X} -a-> {X,Y,P} -a-> {X,Y,Z,P} -b-> {X,W}
		assert.True(t, n.Accepts("aab"))
		assert.True(t, d.Accepts("aab"))
	})

	t.Run("structure", func(t *testing.T) {
		assert.Equal(t, []string{"q0", "q1", "q2", "q3", "q4"}, d.States())
		assert.Equal(t, []rune{'a', 'b'}, d.Alphabet())
		assert.Equal(t, "q0", d.Initial())
		assert.Equal(t, []string{"q3", "q4"}, d.Finals())

		steps := []struct {
			from   string
			symbol rune
			to     string
		}{
			{"q0", 'a', "q1"}, {"q0", 'b', "q0"},
			{"q1", 'a', "q2"}, {"q1", 'b', "q3"},
			{"q2", 'a', "q4"}, {"q2", 'b', "q3"},
			{"q3", 'a', "q1"}, {"q3", 'b', "q0"},
			{"q4", 'a', "q4"}, {"q4", 'b', "q3"},
		}
		for _, s := range steps {
			to, ok := d.Step(s.from, s.symbol)
			assert.True(t, ok)
			assert.Equal(t, s.to, to, "δ(%s, %c)", s.from, s.symbol)
		}
	})

	t.Run("reproducible", func(t *testing.T) {
		again, err := Determinize(n)
		require.NoError(t, err)
		assert.Equal(t, d.Transitions(), again.Transitions())
	})

	t.Run("subset names", func(t *testing.T) {
		named, err := Determinize(n, WithSubsetNames())
		require.NoError(t, err)
		assert.Equal(t, "{X}", named.Initial())
		assert.Equal(t, []string{"{P,W,X,Y,Z}", "{P,X,Y}", "{P,X,Y,Z}", "{W,X}", "{X}"}, named.States())
		assert.Equal(t, []string{"{P,W,X,Y,Z}", "{W,X}"}, named.Finals())
	})

	t.Run("prefix", func(t *testing.T) {
		named, err := Determinize(n, WithStatePrefix("S"))
		require.NoError(t, err)
		assert.Equal(t, "S0", named.Initial())
		assert.Len(t, named.States(), 5)
	})

	t.Run("input untouched", func(t *testing.T) {
		assert.Equal(t, newXYZNFA(t).Transitions(), n.Transitions())
	})
}

func TestDeterminizeSubsetNameQuoting(t *testing.T) {
	// {X,Y} and {"X,Y"} are different subsets that print alike unless members are quoted.
	n, err := NewNFA(
		[]string{"S", "X", "Y", "X,Y"},
		[]rune{'a', 'b'},
		map[string]map[rune][]string{
			"S": {'a': {"X", "Y"}, 'b': {"X,Y"}},
		},
		"S",
		[]string{"X,Y"},
	)
	require.NoError(t, err)

	d, err := Determinize(n, WithSubsetNames())
	require.NoError(t, err)
	assert.Equal(t, []string{`{"X,Y"}`, "{S}", "{X,Y}"}, d.States())
	assert.Equal(t, []string{`{"X,Y"}`}, d.Finals())

	tests := []struct {
		members []string
		want    string
	}{
		{[]string{"A", "B"}, "{A,B}"},
		{[]string{"{A}"}, `{"{A}"}`},
		{[]string{`a"b`}, `{"a\"b"}`},
		{[]string{""}, `{""}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, subsetName(tt.members))
	}
}

func TestDeterminizePartial(t *testing.T) {
	n, err := NewNFA(
		[]string{"s0", "s1"},
		[]rune{'a', 'b'},
		map[string]map[rune][]string{"s0": {'a': {"s1"}}},
		"s0",
		[]string{"s1"},
	)
	require.NoError(t, err)

	d, err := Determinize(n)
	require.NoError(t, err)
	assert.False(t, d.IsTotal())
	assert.Len(t, d.Transitions(), 1)
	_, ok := d.Step("q0", 'b')
	assert.False(t, ok, "an empty move produces no transition")
}

func TestDeterminizeWorkLimit(t *testing.T) {
	n := newXYZNFA(t)

	_, err := Determinize(n, WithWorkLimit(1))
	assert.ErrorIs(t, err, ErrTooComplexToDeterminize)

	d, err := Determinize(n, WithWorkLimit(0))
	require.NoError(t, err)
	assert.Equal(t, 5, d.NumStates())
}

func TestDeterminizePrecondition(t *testing.T) {
	_, err := Determinize(nil)
	assert.ErrorIs(t, err, ErrUnsupportedPrecondition)

	_, err = Determinize(&NFA{})
	assert.ErrorIs(t, err, ErrUnsupportedPrecondition)
}

func TestDeterminizeEquivalence(t *testing.T) {
	symbols := []rune{'a', 'b'}
	inputs := allStrings(symbols, 6)
	rng := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 100; round++ {
		n := randomNFA(t, rng, 6, symbols, 1.2)
		d, err := Determinize(n)
		require.NoError(t, err)

		for _, w := range inputs {
			if !assert.Equal(t, n.Accepts(w), d.Accepts(w), "round %d input %q\n%s", round, w, n) {
				return
			}
		}
	}
}

func TestDeterminizeConcurrent(t *testing.T) {
	n := newXYZNFA(t)
	want, err := Determinize(n)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*DFA, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Determinize(n)
		}(i)
	}
	wg.Wait()

	for _, d := range results {
		require.NotNil(t, d)
		assert.Equal(t, want.Transitions(), d.Transitions())
	}
}
