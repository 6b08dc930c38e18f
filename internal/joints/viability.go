package joints

// UnresolvedBars returns the unresolved bars incident to node n in the
// node's incidence order. The first entry becomes the reference axis when
// the node has two unknowns.
func (r *Resolver) UnresolvedBars(n int) []int {
	var out []int
	for _, b := range r.truss.Nodes[n].Bars {
		if !r.bars[b].resolved {
			out = append(out, b)
		}
	}
	return out
}

// IsViable reports whether node n has one or two unresolved bars and can be
// solved by local equilibrium now
func (r *Resolver) IsViable(n int) bool {
	k := len(r.UnresolvedBars(n))
	return k >= 1 && k <= 2
}
