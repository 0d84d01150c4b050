package unfold

import "github.com/jtomasevic/unfold/pkg/netsys"

// buildChainNet returns a ->t1-> b ->t2-> c, a single finite path with no
// concurrency and no cutoffs.
func buildChainNet() *netsys.Net {
	n := netsys.NewNet()
	a := n.AddPlace("a")
	b := n.AddPlace("b")
	c := n.AddPlace("c")
	t1 := n.AddTransition("t1")
	t2 := n.AddTransition("t2")

	n.AddArc(a, t1, 1)
	n.AddPostArc(t1, b, 1)
	n.AddArc(b, t2, 1)
	n.AddPostArc(t2, c, 1)

	n.SetInitial(netsys.NewMarking(netsys.Atom{Place: a, Mult: 1}))
	return n
}

// buildSelfLoopNet returns a single place p and transition t with p in both
// t's preset and postset, one initial token: an infinite firing sequence
// that a correct unfolder must cut off after the second occurrence of t.
func buildSelfLoopNet() *netsys.Net {
	n := netsys.NewNet()
	p := n.AddPlace("p")
	t := n.AddTransition("t")
	n.AddArc(p, t, 1)
	n.AddPostArc(t, p, 1)
	n.SetInitial(netsys.NewMarking(netsys.Atom{Place: p, Mult: 1}))
	return n
}

// buildConflictNet returns a shared place p consumed by two transitions
// t1/t2, each producing a distinct output place: firing one should not
// prevent the other from appearing as a conflicting possible extension.
func buildConflictNet() *netsys.Net {
	n := netsys.NewNet()
	p := n.AddPlace("p")
	q1 := n.AddPlace("q1")
	q2 := n.AddPlace("q2")
	t1 := n.AddTransition("t1")
	t2 := n.AddTransition("t2")

	n.AddArc(p, t1, 1)
	n.AddPostArc(t1, q1, 1)
	n.AddArc(p, t2, 1)
	n.AddPostArc(t2, q2, 1)

	n.SetInitial(netsys.NewMarking(netsys.Atom{Place: p, Mult: 1}))
	return n
}

// buildConcurrentNet returns two wholly independent places/transitions:
// p1 ->t1-> q1 and p2 ->t2-> q2, both enabled by the initial marking.
func buildConcurrentNet() *netsys.Net {
	n := netsys.NewNet()
	p1 := n.AddPlace("p1")
	p2 := n.AddPlace("p2")
	q1 := n.AddPlace("q1")
	q2 := n.AddPlace("q2")
	t1 := n.AddTransition("t1")
	t2 := n.AddTransition("t2")

	n.AddArc(p1, t1, 1)
	n.AddPostArc(t1, q1, 1)
	n.AddArc(p2, t2, 1)
	n.AddPostArc(t2, q2, 1)

	n.SetInitial(netsys.NewMarking(
		netsys.Atom{Place: p1, Mult: 1},
		netsys.Atom{Place: p2, Mult: 1},
	))
	return n
}

// buildMutexNet returns the textbook two-transition mutual-exclusion net: a
// shared resource place r, two process places p1/p2, and transitions t1/t2
// each consuming their process place plus r, producing a done place q1/q2
// and returning r. r sits in
// both the preset and the postset of every transition, exercising the safe
// variant's affected-transition filter (which must not drop the enablement
// t1's release of r hands to t2, or vice versa).
func buildMutexNet() *netsys.Net {
	n := netsys.NewNet()

	p1 := n.AddPlace("p1")
	p2 := n.AddPlace("p2")
	r := n.AddPlace("r")
	q1 := n.AddPlace("q1")
	q2 := n.AddPlace("q2")

	t1 := n.AddTransition("t1")
	t2 := n.AddTransition("t2")

	n.AddArc(p1, t1, 1)
	n.AddArc(r, t1, 1)
	n.AddPostArc(t1, q1, 1)
	n.AddPostArc(t1, r, 1)

	n.AddArc(p2, t2, 1)
	n.AddArc(r, t2, 1)
	n.AddPostArc(t2, q2, 1)
	n.AddPostArc(t2, r, 1)

	n.SetInitial(netsys.NewMarking(
		netsys.Atom{Place: p1, Mult: 1},
		netsys.Atom{Place: p2, Mult: 1},
		netsys.Atom{Place: r, Mult: 1},
	))
	return n
}

// buildBoundNet returns three independent producers (a1/a2/a3, each guarded
// by its own transition) all feeding tokens into a single shared place s:
// three concurrent firings would need multiplicity 3 at s, enough to
// exercise MAX_BOUND=2 in the general variant.
func buildBoundNet() *netsys.Net {
	n := netsys.NewNet()

	a1 := n.AddPlace("a1")
	a2 := n.AddPlace("a2")
	a3 := n.AddPlace("a3")
	s := n.AddPlace("s")

	t1 := n.AddTransition("t1")
	t2 := n.AddTransition("t2")
	t3 := n.AddTransition("t3")

	n.AddArc(a1, t1, 1)
	n.AddPostArc(t1, s, 1)
	n.AddArc(a2, t2, 1)
	n.AddPostArc(t2, s, 1)
	n.AddArc(a3, t3, 1)
	n.AddPostArc(t3, s, 1)

	n.SetInitial(netsys.NewMarking(
		netsys.Atom{Place: a1, Mult: 1},
		netsys.Atom{Place: a2, Mult: 1},
		netsys.Atom{Place: a3, Mult: 1},
	))
	return n
}
