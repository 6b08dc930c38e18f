package joints

import (
	"github.com/alexiusacademia/gotruss/internal/geometry"
	"github.com/alexiusacademia/gotruss/internal/truss"
)

// Residual is the out-of-balance force left at a node
type Residual struct {
	Node  int
	Force geometry.Vector
}

// Closure returns, for every node, the vector sum of its net external force
// and the forces its bars exert on it. A tension bar pulls the node toward
// the bar's far end.
func Closure(t *truss.Truss, forces []float64) []Residual {
	out := make([]Residual, len(t.Nodes))
	for n := range t.Nodes {
		sum := t.Nodes[n].NetForce()
		for _, b := range t.Nodes[n].Bars {
			sum = sum.Add(t.Direction(n, b).Unit().Scale(forces[b]))
		}
		out[n] = Residual{Node: n, Force: sum}
	}
	return out
}

// MaxResidual returns the largest residual magnitude and the node it occurs at
func MaxResidual(rs []Residual) (float64, int) {
	worst, node := 0.0, -1
	for _, r := range rs {
		if m := r.Force.Norm(); m > worst || node < 0 {
			worst, node = m, r.Node
		}
	}
	return worst, node
}
