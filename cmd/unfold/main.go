// Command unfold builds a small example net system, runs the unfolding
// engine over it, and writes a DOT rendering of the resulting occurrence
// net to stdout.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jtomasevic/unfold/pkg/netsys"
	"github.com/jtomasevic/unfold/pkg/occnet"
	"github.com/jtomasevic/unfold/pkg/unfold"
)

// buildMutexNet returns the textbook two-transition mutual-exclusion net:
// a shared resource place r, two process places p1/p2, and transitions
// t1/t2 each consuming their process place plus r and returning both.
func buildMutexNet() *netsys.Net {
	n := netsys.NewNet()

	p1 := n.AddPlace("p1")
	p2 := n.AddPlace("p2")
	r := n.AddPlace("r")

	t1 := n.AddTransition("t1")
	t2 := n.AddTransition("t2")

	n.AddArc(p1, t1, 1)
	n.AddArc(r, t1, 1)
	n.AddPostArc(t1, p1, 1)
	n.AddPostArc(t1, r, 1)

	n.AddArc(p2, t2, 1)
	n.AddArc(r, t2, 1)
	n.AddPostArc(t2, p2, 1)
	n.AddPostArc(t2, r, 1)

	n.SetInitial(netsys.NewMarking(
		netsys.Atom{Place: p1, Mult: 1},
		netsys.Atom{Place: p2, Mult: 1},
		netsys.Atom{Place: r, Mult: 1},
	))

	return n
}

func main() {
	net := buildMutexNet()

	setup := unfold.Setup{
		MaxEvents:        50,
		MaxBound:         1,
		SafeOptimization: true,
	}

	prefix, err := unfold.New(net, setup).Run(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "unfold: run failed:", err)
		os.Exit(1)
	}

	view := occnet.New(net, prefix)
	fmt.Fprintf(os.Stderr, "run %s: %d conditions, %d events, %d cutoffs\n",
		view.ID, len(view.Conditions()), len(view.Events()), len(prefix.Cutoffs()))

	if err := view.RenderDOT(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "unfold: render failed:", err)
		os.Exit(1)
	}
}
