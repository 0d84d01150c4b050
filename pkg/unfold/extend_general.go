package unfold

import "github.com/jtomasevic/unfold/pkg/netsys"

// candidateEvent is a not-yet-admitted possible extension: a transition
// together with a concrete, concurrent precondition set that matches its
// preset. Distinct from Event, which only exists once AddEvent has run.
type candidateEvent struct {
	Transition    netsys.Transition
	PreConditions []ConditionID // sorted
}

// possibleExtensionsA is the general possible-extensions engine (variant
// A): every maximal co-set (Cut) already admitted is searched for a
// sub-cover matching some transition's preset. Valid for unbounded nets,
// since it never assumes a place holds at most one condition.
//
// Walks an explicit place index, builds combinations, and dedupes by key —
// generalized from a single adjacency index to Cut-restricted coset search.
func possibleExtensionsA(p *Prefix) []candidateEvent {
	seen := make(map[eventKey]bool)
	var out []candidateEvent

	for _, cut := range p.cuts {
		byPlace := make(map[netsys.Place][]ConditionID)
		for _, c := range cut.Conditions {
			place := p.conditions[c].Place
			byPlace[place] = append(byPlace[place], c)
		}

		for _, t := range p.net.Transitions() {
			preset := p.net.Preset(t)
			combos := [][]ConditionID{{}}
			satisfiable := true
			for _, a := range preset {
				conds, has := byPlace[a.Place]
				if !has || len(conds) < a.Mult {
					satisfiable = false
					break
				}
				combos = extendCombos(combos, choose(conds, a.Mult))
			}
			if !satisfiable {
				continue
			}
			for _, combo := range combos {
				pre := sortedConditionIDs(combo)
				if _, exists := p.hasEvent(t, pre); exists {
					continue
				}
				key := eventKey{Transition: t, PreKey: preConditionKey(pre)}
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, candidateEvent{Transition: t, PreConditions: pre})
			}
		}
	}
	return out
}

// choose returns every k-combination of items, in generation order.
func choose(items []ConditionID, k int) [][]ConditionID {
	if k == 0 {
		return [][]ConditionID{{}}
	}
	if k > len(items) {
		return nil
	}
	var out [][]ConditionID
	var rec func(start int, cur []ConditionID)
	rec = func(start int, cur []ConditionID) {
		if len(cur) == k {
			cp := make([]ConditionID, len(cur))
			copy(cp, cur)
			out = append(out, cp)
			return
		}
		for i := start; i < len(items); i++ {
			rec(i+1, append(cur, items[i]))
		}
	}
	rec(0, nil)
	return out
}

// extendCombos is the cartesian product of an existing combination set with
// a fresh set of picks for the next preset place.
func extendCombos(combos [][]ConditionID, picks [][]ConditionID) [][]ConditionID {
	if len(picks) == 0 {
		return nil
	}
	out := make([][]ConditionID, 0, len(combos)*len(picks))
	for _, c := range combos {
		for _, pick := range picks {
			merged := make([]ConditionID, 0, len(c)+len(pick))
			merged = append(merged, c...)
			merged = append(merged, pick...)
			out = append(out, merged)
		}
	}
	return out
}
