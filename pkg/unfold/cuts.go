package unfold

import "github.com/jtomasevic/unfold/pkg/netsys"

// CutID indexes a Cut within a Prefix.
type CutID int

// Cut is a maximal co-set: a set of pairwise-concurrent conditions.
// Conditions are kept sorted so two structurally identical cuts always
// compare equal byte-for-byte.
type Cut struct {
	ID         CutID
	Conditions []ConditionID
}

func (c *Cut) containsAll(ids []ConditionID) bool {
	set := make(map[ConditionID]bool, len(c.Conditions))
	for _, x := range c.Conditions {
		set[x] = true
	}
	for _, id := range ids {
		if !set[id] {
			return false
		}
	}
	return true
}

// admitInitialCut registers the initial marking's conditions as the
// prefix's first cut.
func (p *Prefix) admitInitialCut(initial []ConditionID) {
	p.addCut(sortedConditionIDs(initial))
}

func (p *Prefix) addCut(conds []ConditionID) *Cut {
	id := CutID(len(p.cuts))
	cut := &Cut{ID: id, Conditions: conds}
	p.cuts = append(p.cuts, cut)
	for _, c := range conds {
		p.c2cut[c] = append(p.c2cut[c], id)
	}
	return cut
}

// cutsContaining returns every cut that contains ids as a subset, via the
// c2cut index (intersect the candidate lists of ids[0], then filter).
func (p *Prefix) cutsContaining(ids []ConditionID) []*Cut {
	if len(ids) == 0 {
		return nil
	}
	var out []*Cut
	for _, cid := range p.c2cut[ids[0]] {
		cut := p.cuts[cid]
		if cut.containsAll(ids) {
			out = append(out, cut)
		}
	}
	return out
}

// deriveCutsForEvent derives, for every cut C covering e's preconditions,
// the successor cut C' = (C \ pre(e)) ∪ post(e). A successor whose per-place
// multiplicity would exceed MaxBound is skipped; ErrBoundExceeded is
// returned once any such skip happens, after every derivable cut has still
// been admitted.
func (p *Prefix) deriveCutsForEvent(e EventID) error {
	ev := p.events[e]
	covering := p.cutsContaining(ev.PreConditions)

	preSet := make(map[ConditionID]bool, len(ev.PreConditions))
	for _, c := range ev.PreConditions {
		preSet[c] = true
	}

	boundExceeded := false
	for _, cut := range covering {
		next := make([]ConditionID, 0, len(cut.Conditions)+len(ev.PostConditions))
		for _, c := range cut.Conditions {
			if !preSet[c] {
				next = append(next, c)
			}
		}
		next = append(next, ev.PostConditions...)
		next = sortedConditionIDs(next)

		if p.exceedsBound(next) {
			boundExceeded = true
			continue
		}
		newCut := p.addCut(next)
		p.seedConcurrentForCut(newCut)
	}

	if boundExceeded {
		return ErrBoundExceeded
	}
	return nil
}

func (p *Prefix) exceedsBound(conds []ConditionID) bool {
	counts := map[netsys.Place]int{}
	for _, c := range conds {
		place := p.conditions[c].Place
		counts[place]++
		if counts[place] > p.setup.MaxBound {
			return true
		}
	}
	return false
}

// seedConcurrentForCut performs the full eager-seeding rule for a freshly
// admitted cut: every pair of its conditions is CO, and so is every pair of
// distinct pre-events of those conditions that are not already causally
// related to one another.
func (p *Prefix) seedConcurrentForCut(cut *Cut) {
	p.seedConcurrentSet(cut.Conditions)
	for i := range cut.Conditions {
		ci := p.conditions[cut.Conditions[i]]
		if ci.PreEvent == noPreEvent {
			continue
		}
		for j := i + 1; j < len(cut.Conditions); j++ {
			cj := p.conditions[cut.Conditions[j]]
			if cj.PreEvent == noPreEvent || cj.PreEvent == ci.PreEvent {
				continue
			}
			n1, n2 := eventNode(ci.PreEvent), eventNode(cj.PreEvent)
			if !p.causal(n1, n2) && !p.causal(n2, n1) {
				p.co.set(canonicalPair(n1, n2), true)
			}
		}
	}
}
