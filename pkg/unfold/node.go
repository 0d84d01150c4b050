package unfold

import (
	"hash"
	"hash/fnv"
	"sort"

	"github.com/jtomasevic/unfold/pkg/netsys"
)

// ConditionID and EventID are stable arena indices into a Prefix's condition
// and event slices: the identity external callers hold. Plain small
// integers rather than a UUID, because the prefix, not a distributed
// system, owns every node for the run's lifetime.
type ConditionID int
type EventID int

// noPreEvent marks a Condition created directly from the initial marking: it
// has no pre-event.
const noPreEvent EventID = -1

// Marking aliases netsys.Marking so unfold's public API does not force
// callers to import netsys just to read a reached marking.
type Marking = netsys.Marking

// NodeKind distinguishes the two node variants of a branching process.
type NodeKind uint8

const (
	KindCondition NodeKind = iota
	KindEvent
)

// NodeID addresses either a Condition or an Event node, used by the
// relation/causality machinery which must treat both uniformly: a closed
// tagged variant over a stable index rather than an interface or pointer.
type NodeID struct {
	Kind NodeKind
	Cond ConditionID
	Evt  EventID
}

func conditionNode(c ConditionID) NodeID { return NodeID{Kind: KindCondition, Cond: c} }
func eventNode(e EventID) NodeID         { return NodeID{Kind: KindEvent, Evt: e} }

// Condition is a place-occurrence of the branching process. Equality is
// structural: two conditions are equal iff both Place and PreEvent match,
// with PreEvent == noPreEvent matching only another initial condition.
//
// PostEvents grows over the condition's lifetime (events admitted later may
// consume it); hashing/identity must never read PostEvents, since it is
// mutated after insertion and would break deduplication.
type Condition struct {
	ID         ConditionID
	Place      netsys.Place
	PreEvent   EventID // noPreEvent iff initial
	PostEvents []EventID
}

func (c *Condition) isInitial() bool { return c.PreEvent == noPreEvent }

// conditionKey is the structural identity of a (not-yet-created) condition,
// used to deduplicate conditions with the same (place, pre-event).
type conditionKey struct {
	Place    netsys.Place
	PreEvent EventID
}

// Event is a transition-occurrence of the branching process. Equality is
// structural: two events are equal iff both Transition and the *set* of
// PreConditions match. PreConditions is stored in a canonical (sorted) order
// so that two events built from the same coset in different discovery order
// still dedupe.
type Event struct {
	ID             EventID
	Transition     netsys.Transition
	PreConditions  []ConditionID // canonical sorted order; a coset
	PostConditions []ConditionID
}

// eventKey is the structural identity of a (not-yet-created) event.
type eventKey struct {
	Transition netsys.Transition
	PreKey     string // canonical join of sorted PreConditions
}

func sortedConditionIDs(ids []ConditionID) []ConditionID {
	out := append([]ConditionID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// preConditionKey builds the canonical join used for event deduplication: a
// stable sort, then an order-independent fnv64a hash of the result.
func preConditionKey(ids []ConditionID) string {
	sorted := sortedConditionIDs(ids)
	h := fnv.New64a()
	for _, id := range sorted {
		writeInt64(h, int(id))
	}
	return string(h.Sum(nil))
}

func writeInt64(h hash.Hash64, v int) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}
