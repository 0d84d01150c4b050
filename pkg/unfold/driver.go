package unfold

import (
	"context"
	"errors"

	"github.com/jtomasevic/unfold/pkg/netsys"
)

// Unfolder drives construction of a finite complete prefix for a net
// system. It owns no mutable state across runs: each call to Run starts a
// fresh Prefix.
type Unfolder struct {
	net   netsys.NetSystem
	setup Setup
}

// New returns an Unfolder for net, applying setup's defaults.
func New(net netsys.NetSystem, setup Setup) *Unfolder {
	return &Unfolder{net: net, setup: setup.withDefaults()}
}

// Run executes the main unfolding loop: seed the initial marking, then
// repeatedly pick the adequate-order-minimal possible extension and admit
// it, until none remain, the event budget is exhausted, or ctx is
// cancelled. The returned Prefix is usable even when Run also returns an
// error or leaves Prefix.Truncated set.
//
// The general variant recomputes possible extensions from the current cuts
// on every iteration. The safe variant instead maintains an explicit PE
// queue: seeded once from a full scan, then grown incrementally after each
// non-cutoff admission by updatePE, which only reconsiders the affected
// transitions (postsetTransitions(postset(t)) minus
// postsetTransitions(preset(t)\postset(t))) rather than rescanning every
// transition.
func (u *Unfolder) Run(ctx context.Context) (*Prefix, error) {
	p := newPrefix(u.net, u.setup)

	if len(u.net.Places()) == 0 || len(u.net.InitialMarking()) == 0 {
		return p, ErrInvalidInput
	}

	var initial []ConditionID
	for _, a := range u.net.InitialMarking() {
		for i := 0; i < a.Mult; i++ {
			initial = append(initial, p.addInitialCondition(a.Place))
		}
	}
	p.seedConcurrentSet(initial)

	var pe []candidateEvent
	if u.setup.SafeOptimization {
		pe = append(possibleExtensionsB(p), u.setup.Hook.AdditionalExtensions(p)...)
	} else {
		p.admitInitialCut(initial)
	}

	for {
		select {
		case <-ctx.Done():
			p.Truncated = true
			return p, ctx.Err()
		default:
		}

		if len(p.events) >= u.setup.MaxEvents {
			p.Truncated = true
			return p, nil
		}

		var candidates []candidateEvent
		if u.setup.SafeOptimization {
			pe = dropExisting(p, pe)
			candidates = filterCutoffFree(p, pe)
		} else {
			candidates = filterCutoffFree(p, u.gatherExtensions(p))
		}
		if len(candidates) == 0 {
			return p, nil
		}

		idx := pickMinimal(p, candidates)
		chosen := candidates[idx]
		id, err := p.AddEvent(chosen.Transition, chosen.PreConditions)
		if err != nil {
			if errors.Is(err, ErrBoundExceeded) {
				return p, nil
			}
			return p, err
		}

		if u.setup.SafeOptimization {
			pe = removeCandidate(pe, chosen)
			if !p.IsCutoff(id) {
				pe = append(pe, updatePE(p, id)...)
				pe = append(pe, u.setup.Hook.AdditionalExtensions(p)...)
			}
		}
	}
}

func (u *Unfolder) gatherExtensions(p *Prefix) []candidateEvent {
	base := possibleExtensionsA(p)
	base = append(base, u.setup.Hook.AdditionalExtensions(p)...)
	return base
}

// dropExisting filters out any queued candidate whose event has since been
// admitted (by another candidate resolving to the same transition and
// precondition set). Filters in place: the write cursor never outruns the
// read cursor, so reusing pe's backing array is safe.
func dropExisting(p *Prefix, pe []candidateEvent) []candidateEvent {
	out := pe[:0]
	for _, c := range pe {
		if _, exists := p.hasEvent(c.Transition, c.PreConditions); !exists {
			out = append(out, c)
		}
	}
	return out
}

func candidateEventEqual(a, b candidateEvent) bool {
	if a.Transition != b.Transition || len(a.PreConditions) != len(b.PreConditions) {
		return false
	}
	for i := range a.PreConditions {
		if a.PreConditions[i] != b.PreConditions[i] {
			return false
		}
	}
	return true
}

// removeCandidate drops chosen from pe once it has been admitted.
func removeCandidate(pe []candidateEvent, chosen candidateEvent) []candidateEvent {
	out := pe[:0]
	for _, c := range pe {
		if !candidateEventEqual(c, chosen) {
			out = append(out, c)
		}
	}
	return out
}

// filterCutoffFree drops candidates whose precondition set rests, even
// indirectly, past a cutoff event: a cutoff's continuation is already
// covered by its corresponding event, so the prefix never grows beyond it.
func filterCutoffFree(p *Prefix, candidates []candidateEvent) []candidateEvent {
	out := make([]candidateEvent, 0, len(candidates))
	for _, c := range candidates {
		blocked := false
		for _, cond := range c.PreConditions {
			preEvt := p.conditions[cond].PreEvent
			if preEvt != noPreEvent && p.IsCutoff(preEvt) {
				blocked = true
				break
			}
		}
		if !blocked {
			out = append(out, c)
		}
	}
	return out
}

// pickMinimal returns the index, within candidates, of the one whose
// induced local configuration is smallest under the configured
// AdequateOrder.
func pickMinimal(p *Prefix, candidates []candidateEvent) int {
	items := make([]WeightedCandidate, len(candidates))
	for i, c := range candidates {
		preds := make(map[EventID]bool)
		for _, cond := range c.PreConditions {
			for ev := range p.eventPredecessors(conditionNode(cond)) {
				preds[ev] = true
			}
		}
		items[i] = WeightedCandidate{Ref: i, Weight: candidateWeight(p, preds, int(c.Transition))}
	}
	return Minimal(p.setup.Order, items)
}
