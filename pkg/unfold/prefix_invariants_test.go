package unfold

import (
	"context"
	"testing"

	"github.com/jtomasevic/unfold/pkg/netsys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allNodes collects every condition and event node of a prefix, for tests
// that need to walk all pairs.
func allNodes(p *Prefix) []NodeID {
	out := make([]NodeID, 0, len(p.conditions)+len(p.events))
	for _, c := range p.conditions {
		out = append(out, conditionNode(c.ID))
	}
	for _, e := range p.events {
		out = append(out, eventNode(e.ID))
	}
	return out
}

// Property 1: acyclicity of the conditions-and-events flow graph. No node
// is its own causal predecessor, and causality never runs both ways between
// two distinct nodes.
func TestPropertyAcyclicity(t *testing.T) {
	prefix, err := New(buildConcurrentNet(), Setup{SafeOptimization: false, MaxEvents: 10}).Run(context.Background())
	require.NoError(t, err)

	nodes := allNodes(prefix)
	for _, n := range nodes {
		assert.False(t, prefix.causal(n, n), "node %+v is causally before itself", n)
	}
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			assert.False(t, prefix.causal(a, b) && prefix.causal(b, a),
				"nodes %+v and %+v are causal in both directions", a, b)
		}
	}
}

// Property 2: place fidelity. For every event, the places of its
// preconditions equal preset(transition) and the places of its
// postconditions equal postset(transition), as multisets.
func TestPropertyPlaceFidelity(t *testing.T) {
	net := buildConcurrentNet()
	prefix, err := New(net, Setup{SafeOptimization: false, MaxEvents: 10}).Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, prefix.Events())

	for _, ev := range prefix.Events() {
		gotPre := map[int]int{}
		for _, c := range ev.PreConditions {
			gotPre[int(prefix.Condition(c).Place)]++
		}
		wantPre := map[int]int{}
		for _, a := range net.Preset(ev.Transition) {
			wantPre[int(a.Place)] += a.Mult
		}
		assert.Equal(t, wantPre, gotPre, "event %d preset mismatch", ev.ID)

		gotPost := map[int]int{}
		for _, c := range ev.PostConditions {
			gotPost[int(prefix.Condition(c).Place)]++
		}
		wantPost := map[int]int{}
		for _, a := range net.Postset(ev.Transition) {
			wantPost[int(a.Place)] += a.Mult
		}
		assert.Equal(t, wantPost, gotPost, "event %d postset mismatch", ev.ID)
	}
}

// Property 3: every non-initial condition's pre-event exists and lists the
// condition among its own post-conditions.
func TestPropertyConditionBackreference(t *testing.T) {
	prefix, err := New(buildChainNet(), Setup{SafeOptimization: false, MaxEvents: 10}).Run(context.Background())
	require.NoError(t, err)

	for _, c := range prefix.Conditions() {
		if c.isInitial() {
			continue
		}
		require.Less(t, int(c.PreEvent), len(prefix.Events()))
		ev := prefix.Event(c.PreEvent)
		assert.Contains(t, ev.PostConditions, c.ID)
	}
}

// Property 4: every cut's place multiset equals a marking reachable from
// the originative net's initial marking. buildChainNet has a single linear
// history, so each cut corresponds to exactly one prefix of it.
func TestPropertyCutsAreReachableMarkings(t *testing.T) {
	net := buildChainNet()
	prefix, err := New(net, Setup{SafeOptimization: false, MaxEvents: 10}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, prefix.Events(), 2)

	want := []map[int]int{
		{int(net.Places()[0]): 1}, // a
		{int(net.Places()[1]): 1}, // b, after t1
		{int(net.Places()[2]): 1}, // c, after t2
	}
	require.Len(t, prefix.cuts, len(want))

	for i, cut := range prefix.cuts {
		got := map[int]int{}
		for _, cid := range cut.Conditions {
			got[int(prefix.Condition(cid).Place)]++
		}
		assert.Equal(t, want[i], got, "cut %d does not match the expected reachable marking", i)
	}
}

// Property 5: the four relations partition every distinct node pair: exactly
// one of causal, inverseCausal, concurrent, conflict holds.
func TestPropertyRelationsPartitionNodePairs(t *testing.T) {
	for _, net := range []struct {
		name  string
		build func() *netsys.Net
	}{
		{name: "chain", build: buildChainNet},
		{name: "conflict", build: buildConflictNet},
		{name: "concurrent", build: buildConcurrentNet},
		{name: "mutex", build: buildMutexNet},
	} {
		t.Run(net.name, func(t *testing.T) {
			prefix, err := New(net.build(), Setup{SafeOptimization: false, MaxEvents: 20}).Run(context.Background())
			require.NoError(t, err)

			nodes := allNodes(prefix)
			for i := range nodes {
				for j := i + 1; j < len(nodes); j++ {
					a, b := nodes[i], nodes[j]
					count := 0
					if prefix.causal(a, b) {
						count++
					}
					if prefix.inverseCausal(a, b) {
						count++
					}
					if prefix.concurrent(a, b) {
						count++
					}
					if prefix.conflict(a, b) {
						count++
					}
					assert.Equal(t, 1, count, "nodes %+v, %+v satisfy %d of the four relations", a, b, count)
				}
			}
		})
	}
}

// Property 6: no two events share both a transition and a precondition set.
func TestPropertyNoDuplicateEvents(t *testing.T) {
	prefix, err := New(buildMutexNet(), Setup{SafeOptimization: true, MaxEvents: 20}).Run(context.Background())
	require.NoError(t, err)

	seen := map[eventKey]bool{}
	for _, ev := range prefix.Events() {
		key := eventKey{Transition: ev.Transition, PreKey: preConditionKey(ev.PreConditions)}
		assert.False(t, seen[key], "duplicate event for transition %v", ev.Transition)
		seen[key] = true
	}
}

// Property 7: every cutoff's local configuration reaches the same marking
// as its corresponding event's, and the corresponding event's configuration
// is strictly smaller under the adequate order.
func TestPropertyCutoffCorrespondence(t *testing.T) {
	prefix, err := New(buildSelfLoopNet(), Setup{SafeOptimization: true, MaxEvents: 2}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, prefix.Events(), 2)
	require.Len(t, prefix.Cutoffs(), 1)

	cutoff := prefix.Cutoffs()[0]
	corr, ok := prefix.Corresponding(cutoff)
	require.True(t, ok)

	lcCutoff := prefix.localConfiguration(cutoff)
	lcCorr := prefix.localConfiguration(corr)
	assert.Equal(t, lcCorr.Marking, lcCutoff.Marking)

	order := prefix.setup.Order
	assert.True(t, order.Smaller(weightOf(prefix, lcCorr.Events), weightOf(prefix, lcCutoff.Events)))
}
