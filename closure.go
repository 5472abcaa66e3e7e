package automata

import "github.com/bits-and-blooms/bitset"

// closure returns the ε-closure of set as a new set. The result doubles as the visited marker, so
// every state is pushed onto the worklist at most once.
func (n *NFA) closure(set *bitset.BitSet) *bitset.BitSet {
	result := set.Clone()

	workList := make([]uint, 0, set.Count())
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		workList = append(workList, s)
	}

	for len(workList) > 0 {
		s := workList[len(workList)-1]
		workList = workList[:len(workList)-1]

		eps := n.epsilon[s]
		if eps == nil {
			continue
		}
		for d, ok := eps.NextSet(0); ok; d, ok = eps.NextSet(d + 1) {
			if !result.Test(d) {
				result.Set(d)
				workList = append(workList, d)
			}
		}
	}
	return result
}

// move returns the union of δ(s, symbol) over every s in set, without taking the closure.
func (n *NFA) move(set *bitset.BitSet, symbol int) *bitset.BitSet {
	next := n.states.newSet()
	for s, ok := set.NextSet(0); ok; s, ok = set.NextSet(s + 1) {
		if dests := n.delta[s][symbol]; dests != nil {
			next.InPlaceUnion(dests)
		}
	}
	return next
}
