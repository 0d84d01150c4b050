package unfold

import (
	"fmt"
	"strings"
)

// markingKey is a deterministic string key for a Marking, usable as a map
// key. Marking is already normalized and sorted (pkg/netsys/marking.go), so
// equal markings always produce equal keys.
func markingKey(m Marking) string {
	parts := make([]string, 0, len(m))
	for _, a := range m {
		parts = append(parts, fmt.Sprintf("%d:%d", a.Place, a.Mult))
	}
	return strings.Join(parts, ",")
}

// checkCutoff is the cutoff detector: e is a cutoff if some earlier,
// non-cutoff event e' reaches the same marking with a
// local configuration strictly smaller under the adequate order. The first
// such e' found (in admission order) becomes e's correspondence, subject to
// the configured ExtensionHook's review.
//
// Only admitted events are candidate witnesses: the empty configuration,
// whose reached marking is the initial marking, is never one, so an event
// leading back to the initial marking is not a cutoff on that ground alone.
func (p *Prefix) checkCutoff(e EventID) {
	lc := p.localConfiguration(e)
	key := markingKey(lc.Marking)
	w := weightOf(p, lc.Events)

	var corr EventID
	found := false
	for _, other := range p.markingIndex[key] {
		if other == e || p.IsCutoff(other) {
			continue
		}
		ow := weightOf(p, p.localConfiguration(other).Events)
		if p.setup.Order.Smaller(ow, w) {
			corr = other
			found = true
			break
		}
	}

	p.markingIndex[key] = append(p.markingIndex[key], e)

	if !found {
		return
	}
	if newCorr, ok := p.setup.Hook.ReviewCutoff(p, e, corr); ok {
		p.cutoffs[e] = newCorr
		p.cutoffNodes[eventNode(e)] = true
	}
}
