package unfold

import "github.com/jtomasevic/unfold/pkg/netsys"

// possibleExtensionsB is the safe possible-extensions engine (variant B):
// valid only for 1-bounded net systems. It never builds or consults a Cut;
// a preset cover is found by walking each preset place in turn and keeping
// only conditions pairwise concurrent with everything chosen so far, using
// the concurrency relation directly. This is what the engine's
// SafeOptimization flag selects, and the reason deriveCutsForEvent is
// skipped entirely in that mode (see AddEvent in prefix.go).
func possibleExtensionsB(p *Prefix) []candidateEvent {
	seen := make(map[eventKey]bool)
	var out []candidateEvent

	for _, t := range p.net.Transitions() {
		preset := p.net.Preset(t)
		places := make([]netsys.Place, 0, len(preset))
		for _, a := range preset {
			places = append(places, a.Place)
		}

		var rec func(i int, chosen []ConditionID)
		rec = func(i int, chosen []ConditionID) {
			if i == len(places) {
				pre := sortedConditionIDs(chosen)
				if _, exists := p.hasEvent(t, pre); exists {
					return
				}
				key := eventKey{Transition: t, PreKey: preConditionKey(pre)}
				if seen[key] {
					return
				}
				seen[key] = true
				out = append(out, candidateEvent{Transition: t, PreConditions: pre})
				return
			}
			for _, c := range p.placeConditions[places[i]] {
				ok := true
				for _, prev := range chosen {
					if !p.concurrent(conditionNode(c), conditionNode(prev)) {
						ok = false
						break
					}
				}
				if !ok {
					continue
				}
				next := make([]ConditionID, 0, len(chosen)+1)
				next = append(next, chosen...)
				next = append(next, c)
				rec(i+1, next)
			}
		}
		rec(0, nil)
	}
	return out
}

// updatePE computes the possible extensions newly unlocked by admitting
// event e, without rescanning every transition. Only the affected
// transitions need reconsidering: postsetTransitions(postset(t)) minus
// postsetTransitions(preset(t)\postset(t)), since those are exactly the
// transitions that can gain an enablement from e's post-conditions without
// e's consumed pre-conditions having removed one elsewhere.
func updatePE(p *Prefix, e EventID) []candidateEvent {
	ev := p.events[e]
	t := ev.Transition

	postPlaces := p.net.Postset(t).Places()
	preOnly := make([]netsys.Place, 0, len(p.net.Preset(t)))
	postSet := make(map[netsys.Place]bool, len(postPlaces))
	for _, pl := range postPlaces {
		postSet[pl] = true
	}
	for _, a := range p.net.Preset(t) {
		if !postSet[a.Place] {
			preOnly = append(preOnly, a.Place)
		}
	}

	lost := make(map[netsys.Transition]bool)
	for _, t2 := range p.net.PostsetTransitions(preOnly) {
		lost[t2] = true
	}

	seen := make(map[eventKey]bool)
	var out []candidateEvent
	for _, t2 := range p.net.PostsetTransitions(postPlaces) {
		if lost[t2] {
			continue
		}
		out = append(out, coverFromSeed(p, t2, ev.PostConditions, seen)...)
	}
	return out
}

// coverFromSeed completes every possible cover of preset(t) that starts from
// the subset of seed whose places lie in preset(t), extending place by place
// with conditions concurrent with everything chosen so far. The same
// backtracking shape as possibleExtensionsB, just entered with a non-empty
// starting selection instead of an empty one.
func coverFromSeed(p *Prefix, t netsys.Transition, seed []ConditionID, seen map[eventKey]bool) []candidateEvent {
	preset := p.net.Preset(t)
	placeSet := make(map[netsys.Place]bool, len(preset))
	for _, a := range preset {
		placeSet[a.Place] = true
	}

	var chosen []ConditionID
	chosenPlaces := make(map[netsys.Place]bool)
	for _, c := range seed {
		place := p.conditions[c].Place
		if placeSet[place] && !chosenPlaces[place] {
			chosen = append(chosen, c)
			chosenPlaces[place] = true
		}
	}

	var remaining []netsys.Place
	for _, a := range preset {
		if !chosenPlaces[a.Place] {
			remaining = append(remaining, a.Place)
		}
	}

	var out []candidateEvent
	var rec func(i int, cur []ConditionID)
	rec = func(i int, cur []ConditionID) {
		if i == len(remaining) {
			pre := sortedConditionIDs(cur)
			if _, exists := p.hasEvent(t, pre); exists {
				return
			}
			key := eventKey{Transition: t, PreKey: preConditionKey(pre)}
			if seen[key] {
				return
			}
			seen[key] = true
			out = append(out, candidateEvent{Transition: t, PreConditions: pre})
			return
		}
		for _, c := range p.placeConditions[remaining[i]] {
			ok := true
			for _, prev := range cur {
				if !p.concurrent(conditionNode(c), conditionNode(prev)) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			next := make([]ConditionID, 0, len(cur)+1)
			next = append(next, cur...)
			next = append(next, c)
			rec(i+1, next)
		}
	}
	rec(0, chosen)
	return out
}
