package unfold

// causal reports whether n1 is a strict causal predecessor of n2:
// causal(n1, n2) ≡ n1 ∈ predecessors(n2).
//
// Falls back to an on-the-fly walk when n2 has no recorded predecessor set
// yet (the safe variant may query relations for a candidate's conditions
// before AddEvent has run for it): a recursive walk run directly against
// PreEvent/PreConditions instead of adjacency maps.
func (p *Prefix) causal(n1, n2 NodeID) bool {
	preds, ok := p.predecessors[n2]
	if !ok {
		preds = p.recomputePredecessors(n2)
	}
	return preds[n1]
}

func (p *Prefix) inverseCausal(n1, n2 NodeID) bool { return p.causal(n2, n1) }

// recomputePredecessors walks PreEvent/PreConditions directly, without
// relying on the incrementally maintained predecessors map.
func (p *Prefix) recomputePredecessors(n NodeID) map[NodeID]bool {
	out := map[NodeID]bool{}
	switch n.Kind {
	case KindCondition:
		c := p.conditions[n.Cond]
		if c.isInitial() {
			return out
		}
		eNode := eventNode(c.PreEvent)
		for k := range p.recomputePredecessors(eNode) {
			out[k] = true
		}
		out[eNode] = true
	case KindEvent:
		e := p.events[n.Evt]
		for _, c := range e.PreConditions {
			cNode := conditionNode(c)
			for k := range p.recomputePredecessors(cNode) {
				out[k] = true
			}
			out[cNode] = true
		}
	}
	return out
}

// eventPredecessors returns the event-typed predecessors of n, including n
// itself when n is an event. Used by the conflict detector, which scans
// every event predecessor of n1 (including n1 itself) against every event
// predecessor of n2 looking for a shared precondition.
func (p *Prefix) eventPredecessors(n NodeID) map[EventID]bool {
	out := map[EventID]bool{}
	if n.Kind == KindEvent {
		out[n.Evt] = true
	}
	preds, ok := p.predecessors[n]
	if !ok {
		preds = p.recomputePredecessors(n)
	}
	for pr := range preds {
		if pr.Kind == KindEvent {
			out[pr.Evt] = true
		}
	}
	return out
}

// localConfiguration builds LocalConfiguration(e): {e} ∪ its causal
// predecessor events, and the marking that set of events reaches.
func (p *Prefix) localConfiguration(e EventID) LocalConfiguration {
	events := map[EventID]bool{e: true}
	for ev := range p.eventPredecessors(eventNode(e)) {
		events[ev] = true
	}
	return LocalConfiguration{Events: events, Marking: p.reachedMarking(events)}
}

// reachedMarking computes M0 plus the net token effect of firing exactly
// the given (causally closed) event set. Because the set is causally
// closed, every condition any of these events consumed was produced either
// initially or by another event in the set, so the multiset telescopes:
// M(events) = M0 + Σ postset(t) - Σ preset(t) over the set's transitions.
func (p *Prefix) reachedMarking(events map[EventID]bool) Marking {
	net := p.net.InitialMarking()
	for e := range events {
		t := p.events[e].Transition
		net = net.Add(p.net.Postset(t)).Sub(p.net.Preset(t))
	}
	return net
}
