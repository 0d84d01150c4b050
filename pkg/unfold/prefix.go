package unfold

import (
	"fmt"

	"github.com/jtomasevic/unfold/pkg/netsys"
)

// Prefix is the branching process under construction: the sets of
// conditions and events, the indexes over them, and the derived causality,
// concurrency, conflict and cutoff state a consumer needs. A Prefix is
// owned by exactly one unfolding run and is safe for concurrent reads once
// that run has finished; see relations.go's relationCache for how relation
// queries stay race-free under that assumption.
type Prefix struct {
	net   netsys.NetSystem
	setup Setup

	conditions []*Condition
	events     []*Event

	condByKey  map[conditionKey]ConditionID
	eventByKey map[eventKey]EventID

	placeConditions   map[netsys.Place][]ConditionID
	transitionEvents  map[netsys.Transition][]EventID

	predecessors map[NodeID]map[NodeID]bool

	co    *relationCache
	ex    *relationCache

	cuts   []*Cut
	c2cut  map[ConditionID][]CutID

	cutoffs       map[EventID]EventID // cutoff -> corresponding
	cutoffNodes   map[NodeID]bool     // cutoffs, as NodeID; recorded by checkCutoff, not read by any check

	markingIndex map[string][]EventID // reached-marking key -> events reaching it, admission order

	// Truncated/BoundViolated record why construction stopped; both may be
	// false if PE was simply exhausted.
	Truncated     bool
	BoundViolated bool
}

func newPrefix(net netsys.NetSystem, setup Setup) *Prefix {
	return &Prefix{
		net:              net,
		setup:            setup,
		condByKey:        make(map[conditionKey]ConditionID),
		eventByKey:       make(map[eventKey]EventID),
		placeConditions:  make(map[netsys.Place][]ConditionID),
		transitionEvents: make(map[netsys.Transition][]EventID),
		predecessors:     make(map[NodeID]map[NodeID]bool),
		co:               newRelationCache(),
		ex:               newRelationCache(),
		c2cut:            make(map[ConditionID][]CutID),
		cutoffs:          make(map[EventID]EventID),
		cutoffNodes:      make(map[NodeID]bool),
		markingIndex:     make(map[string][]EventID),
	}
}

// Conditions returns every condition of the prefix, in creation order.
func (p *Prefix) Conditions() []*Condition { return p.conditions }

// Events returns every event of the prefix, in creation order.
func (p *Prefix) Events() []*Event { return p.events }

// Condition looks a condition up by ID.
func (p *Prefix) Condition(id ConditionID) *Condition { return p.conditions[id] }

// Event looks an event up by ID.
func (p *Prefix) Event(id EventID) *Event { return p.events[id] }

// ConditionsAtPlace returns the conditions whose underlying place is p.
func (pf *Prefix) ConditionsAtPlace(p netsys.Place) []ConditionID {
	return pf.placeConditions[p]
}

// EventsOfTransition returns the events whose transition is t.
func (pf *Prefix) EventsOfTransition(t netsys.Transition) []EventID {
	return pf.transitionEvents[t]
}

// IsCutoff reports whether e has been marked a cutoff.
func (p *Prefix) IsCutoff(e EventID) bool {
	_, ok := p.cutoffs[e]
	return ok
}

// Corresponding returns the event a cutoff corresponds to, if any.
func (p *Prefix) Corresponding(e EventID) (EventID, bool) {
	c, ok := p.cutoffs[e]
	return c, ok
}

// Cutoffs returns every cutoff event, in admission order.
func (p *Prefix) Cutoffs() []EventID {
	out := make([]EventID, 0, len(p.cutoffs))
	for _, e := range p.events {
		if _, ok := p.cutoffs[e.ID]; ok {
			out = append(out, e.ID)
		}
	}
	return out
}

// addInitialCondition creates a fresh initial condition at place. Initial
// conditions are never deduplicated against one another: the data model's
// (place, pre-event) equality rule is injective for event-produced
// conditions (arcs carry weight 1) but the initial marking may legitimately
// hold several tokens at the same place, each a physically distinct
// occurrence. See DESIGN.md for the reasoning behind this choice.
func (p *Prefix) addInitialCondition(place netsys.Place) ConditionID {
	id := ConditionID(len(p.conditions))
	c := &Condition{ID: id, Place: place, PreEvent: noPreEvent}
	p.conditions = append(p.conditions, c)
	p.placeConditions[place] = append(p.placeConditions[place], id)
	p.predecessors[conditionNode(id)] = map[NodeID]bool{}
	return id
}

// getOrCreatePostCondition returns the (possibly freshly created) condition
// at place produced by preEvent, honouring the (place, pre-event)
// deduplication rule for event-produced conditions.
func (p *Prefix) getOrCreatePostCondition(place netsys.Place, preEvent EventID) ConditionID {
	key := conditionKey{Place: place, PreEvent: preEvent}
	if id, ok := p.condByKey[key]; ok {
		return id
	}
	id := ConditionID(len(p.conditions))
	c := &Condition{ID: id, Place: place, PreEvent: preEvent}
	p.conditions = append(p.conditions, c)
	p.condByKey[key] = id
	p.placeConditions[place] = append(p.placeConditions[place], id)

	preds := cloneNodeSet(p.predecessors[eventNode(preEvent)])
	preds[eventNode(preEvent)] = true
	p.predecessors[conditionNode(id)] = preds

	return id
}

// hasEvent reports whether an event with this transition and precondition
// set already exists, enforcing the "no duplicate events" invariant.
func (p *Prefix) hasEvent(t netsys.Transition, preConditions []ConditionID) (EventID, bool) {
	key := eventKey{Transition: t, PreKey: preConditionKey(preConditions)}
	id, ok := p.eventByKey[key]
	return id, ok
}

// AddEvent atomically admits a new event: inserts it, assigns its
// post-conditions, updates causality and the place/transition indexes, and
// (general variant only) derives the cuts it induces. Returns
// ErrBoundExceeded if doing so would violate MAX_BOUND; the event then stays
// in the prefix, the cuts that respect the bound are kept, and
// BoundViolated is set.
func (p *Prefix) AddEvent(t netsys.Transition, preConditions []ConditionID) (EventID, error) {
	pre := sortedConditionIDs(preConditions)
	if _, exists := p.hasEvent(t, pre); exists {
		return 0, fmt.Errorf("unfold: event for transition %v with this preset already exists", t)
	}
	if err := p.checkPlaceFidelity(t, pre); err != nil {
		panic(err) // internal invariant failure
	}

	id := EventID(len(p.events))
	ev := &Event{ID: id, Transition: t, PreConditions: pre}
	p.events = append(p.events, ev)
	p.eventByKey[eventKey{Transition: t, PreKey: preConditionKey(pre)}] = id
	p.transitionEvents[t] = append(p.transitionEvents[t], id)

	// Causality: predecessors(e) = ⋃_{c ∈ pre} (predecessors(c) ∪ {c}).
	preds := map[NodeID]bool{}
	for _, c := range pre {
		cNode := conditionNode(c)
		for n := range p.predecessors[cNode] {
			preds[n] = true
		}
		preds[cNode] = true
	}
	p.predecessors[eventNode(id)] = preds

	// Link consumed conditions to this event (post-events growth).
	for _, c := range pre {
		cond := p.conditions[c]
		cond.PostEvents = append(cond.PostEvents, id)
	}

	// Post-conditions: one per place of postset(t) (arcs carry weight 1).
	post := p.net.Postset(t)
	postConds := make([]ConditionID, 0, len(post))
	for _, a := range post {
		postConds = append(postConds, p.getOrCreatePostCondition(a.Place, id))
	}
	ev.PostConditions = postConds

	// Eagerly seed concurrency for this event's own precondition coset: its
	// members are pairwise concurrent by construction.
	p.seedConcurrentSet(pre)

	if !p.setup.SafeOptimization {
		if err := p.deriveCutsForEvent(id); err != nil {
			// Undo is not attempted: on bound violation the whole prefix is
			// marked terminated and returned as-is, with the event that
			// triggered it already present.
			p.BoundViolated = true
			p.checkCutoff(id)
			return id, ErrBoundExceeded
		}
	}

	p.checkCutoff(id)
	return id, nil
}

// checkPlaceFidelity enforces the "place fidelity" invariant: the places of
// preConditions must equal preset(t) as multisets.
func (p *Prefix) checkPlaceFidelity(t netsys.Transition, preConditions []ConditionID) error {
	want := p.net.Preset(t)
	got := map[netsys.Place]int{}
	for _, c := range preConditions {
		got[p.conditions[c].Place]++
	}
	for _, a := range want {
		if got[a.Place] != a.Mult {
			return fmt.Errorf("unfold: preset mismatch for transition %v at place %v: want %d got %d", t, a.Place, a.Mult, got[a.Place])
		}
		delete(got, a.Place)
	}
	for p := range got {
		return fmt.Errorf("unfold: precondition at place %v not in preset of transition", p)
	}
	return nil
}

func cloneNodeSet(in map[NodeID]bool) map[NodeID]bool {
	out := make(map[NodeID]bool, len(in))
	for k := range in {
		out[k] = true
	}
	return out
}
