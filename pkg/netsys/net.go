// Package netsys defines the net-system contract consumed by the unfolding
// engine (package unfold) and ships a small in-memory implementation of it.
//
// Places and transitions of the originative net are external collaborators
// to the unfolding core: the core only ever asks for presets, postsets, the
// transitions a set of places can enable, and the initial marking.
package netsys

import "fmt"

// Place identifies a place of the originative net. Handles are interned
// small integers so they are cheap to use as map keys and inside Markings.
type Place int

// Transition identifies a transition of the originative net.
type Transition int

func (p Place) String() string      { return fmt.Sprintf("p%d", int(p)) }
func (t Transition) String() string { return fmt.Sprintf("t%d", int(t)) }

// NetSystem is the external contract the unfolding engine requires from
// whatever models the originative P/T net. Implementations must give places
// and transitions a stable identity (handles are comparable, so map/set
// membership is identity) and must not mutate preset/postset/marking data
// once construction is complete — the engine treats the net system as
// read-only for the lifetime of a run.
type NetSystem interface {
	// Places enumerates every place of the net, in a stable order.
	Places() []Place
	// Transitions enumerates every transition of the net, in a stable order.
	Transitions() []Transition

	// Preset returns the input places of t together with arc weights (the
	// engine only supports weight-1 arcs).
	Preset(t Transition) Marking
	// Postset returns the output places of t together with arc weights.
	Postset(t Transition) Marking

	// PostsetTransitions returns every transition whose preset contains at
	// least one of the given places.
	PostsetTransitions(places []Place) []Transition

	// InitialMarking returns the marking of the net at t=0.
	InitialMarking() Marking

	// PlaceName and TransitionName return a human-readable label, used
	// only for rendering (occnet.RenderDOT) and error messages.
	PlaceName(p Place) string
	TransitionName(t Transition) string
}
