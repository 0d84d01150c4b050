// Package occnet provides a read-only occurrence-net view over a finished
// unfold.Prefix: the same conditions and events, presented for inspection
// and rendering rather than further construction.
package occnet

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/jtomasevic/unfold/pkg/netsys"
	"github.com/jtomasevic/unfold/pkg/unfold"
)

// View wraps a completed Prefix with a stable run identifier, so callers
// that persist or log rendered output can correlate it back to a single
// unfolding run.
type View struct {
	ID     uuid.UUID
	net    netsys.NetSystem
	prefix *unfold.Prefix
}

// New builds a View over prefix. prefix is expected to have come from a
// finished unfold.Unfolder.Run call; View never mutates it.
func New(net netsys.NetSystem, prefix *unfold.Prefix) *View {
	return &View{ID: uuid.New(), net: net, prefix: prefix}
}

// Conditions returns the prefix's conditions, unchanged.
func (v *View) Conditions() []*unfold.Condition { return v.prefix.Conditions() }

// Events returns the prefix's events, unchanged.
func (v *View) Events() []*unfold.Event { return v.prefix.Events() }

// IsCutoff reports whether e was marked a cutoff during construction.
func (v *View) IsCutoff(e unfold.EventID) bool { return v.prefix.IsCutoff(e) }

// CorrespondingEvent returns the event a cutoff corresponds to, if any.
func (v *View) CorrespondingEvent(e unfold.EventID) (unfold.EventID, bool) {
	return v.prefix.Corresponding(e)
}

// Truncated reports whether construction stopped early (event budget
// reached or caller cancellation), as opposed to PE simply running dry.
func (v *View) Truncated() bool { return v.prefix.Truncated }

// BoundViolated reports whether construction stopped because admitting an
// event would have exceeded the configured place-multiplicity bound.
func (v *View) BoundViolated() bool { return v.prefix.BoundViolated }

// RenderDOT writes a Graphviz DOT rendering of the occurrence net to w:
// conditions as ellipses labelled with their place name, events as boxes
// labelled with their transition name, cutoffs drawn with a dashed border
// and a dotted edge to their corresponding event.
//
// Walks the same node/edge structure a plain fmt-based graph printer would,
// just emitting DOT instead of an indented tree: an occurrence net's
// condition/event bipartite shape does not fit a single derivation tree the
// way a simple event lineage does.
func (v *View) RenderDOT(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "digraph occurrence_net {\n  rankdir=TB;\n"); err != nil {
		return err
	}

	for _, c := range v.Conditions() {
		label := v.net.PlaceName(c.Place)
		if _, err := fmt.Fprintf(w, "  %s [shape=ellipse, label=%q];\n", conditionNodeName(c.ID), label); err != nil {
			return err
		}
	}

	for _, e := range v.Events() {
		label := v.net.TransitionName(e.Transition)
		style := ""
		if v.IsCutoff(e.ID) {
			style = ", style=dashed"
		}
		if _, err := fmt.Fprintf(w, "  %s [shape=box, label=%q%s];\n", eventNodeName(e.ID), label, style); err != nil {
			return err
		}
		for _, c := range e.PreConditions {
			if _, err := fmt.Fprintf(w, "  %s -> %s;\n", conditionNodeName(c), eventNodeName(e.ID)); err != nil {
				return err
			}
		}
		for _, c := range e.PostConditions {
			if _, err := fmt.Fprintf(w, "  %s -> %s;\n", eventNodeName(e.ID), conditionNodeName(c)); err != nil {
				return err
			}
		}
		if corr, ok := v.CorrespondingEvent(e.ID); ok {
			if _, err := fmt.Fprintf(w, "  %s -> %s [style=dotted, constraint=false];\n", eventNodeName(e.ID), eventNodeName(corr)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "}\n")
	return err
}

func conditionNodeName(id unfold.ConditionID) string { return fmt.Sprintf("c%d", id) }
func eventNodeName(id unfold.EventID) string         { return fmt.Sprintf("e%d", id) }
