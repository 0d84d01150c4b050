package unfold

import (
	"sort"
	"strconv"
	"strings"
)

// LocalConfiguration is the set of events {e} ∪ causal predecessors of e,
// together with the marking it reaches.
type LocalConfiguration struct {
	Events  map[EventID]bool
	Marking Marking
}

func (lc LocalConfiguration) size() int { return len(lc.Events) }

// ConfigWeight is the comparable projection of a LocalConfiguration an
// AdequateOrder actually needs: a cardinality plus a deterministic
// structural tie-break key. Expressing the order over this lightweight
// value (rather than over a LocalConfiguration tied to an admitted EventID)
// lets the possible-extensions engine rank *candidate* events — which do
// not have an EventID yet — using the exact same comparison the cutoff
// detector uses for admitted ones.
type ConfigWeight struct {
	Size int
	Key  string
}

// weightOf builds the ConfigWeight of a configuration's event set, keyed on
// the sorted transition handles of its members: one canonical comparable
// projection everything else is built from.
func weightOf(p *Prefix, events map[EventID]bool) ConfigWeight {
	parts := make([]string, 0, len(events))
	for id := range events {
		parts = append(parts, strconv.Itoa(int(p.events[id].Transition)))
	}
	sort.Strings(parts)
	return ConfigWeight{Size: len(events), Key: strings.Join(parts, ",")}
}

// candidateWeight computes the weight of a not-yet-admitted candidate event:
// its predecessor event set plus its own transition, without requiring the
// candidate to have been assigned an EventID.
func candidateWeight(p *Prefix, predEvents map[EventID]bool, t int) ConfigWeight {
	ids := make([]int, 0, len(predEvents))
	for id := range predEvents {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	parts := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(int(p.events[EventID(id)].Transition)))
	}
	parts = append(parts, strconv.Itoa(t))
	sort.Strings(parts)
	return ConfigWeight{Size: len(predEvents) + 1, Key: strings.Join(parts, ",")}
}

// AdequateOrder is the injected strict well-founded partial order over
// local configurations. The engine only needs Smaller (for cutoff tests)
// and Minimal (to pick the next possible extension).
//
// A single less-than comparison primitive that every other operation is
// built from, in the style of a logical-clock comparator, repurposed here
// from comparing monotonic counters to comparing local configurations.
type AdequateOrder interface {
	// Smaller reports whether a < b under the order.
	Smaller(a, b ConfigWeight) bool
}

// WeightedCandidate pairs an opaque reference (an EventID for an admitted
// event, or a slice index for a not-yet-admitted candidate) with its weight,
// so Minimal can rank either uniformly.
type WeightedCandidate struct {
	Ref    int
	Weight ConfigWeight
}

// Minimal returns the Ref of the order-minimum item of a nonempty slice.
func Minimal(order AdequateOrder, items []WeightedCandidate) int {
	best := items[0]
	for _, it := range items[1:] {
		if order.Smaller(it.Weight, best.Weight) {
			best = it
		}
	}
	return best.Ref
}

// SizeOrder is the default adequate order: Esparza–Römer–Vogler's size-based
// order (compare local-configuration cardinality), tie-broken by a
// deterministic structural key so Minimal is total. It refines set
// inclusion: if lc ⊊ lc' then size(lc) < size(lc'), so a configuration is
// always Smaller than any configuration that strictly contains it.
type SizeOrder struct{}

// NewSizeOrder returns the default adequate order.
func NewSizeOrder() *SizeOrder { return &SizeOrder{} }

func (SizeOrder) Smaller(a, b ConfigWeight) bool {
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.Key < b.Key
}
