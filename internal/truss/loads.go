package truss

import (
	"fmt"

	"github.com/alexiusacademia/gotruss/internal/geometry"
	"github.com/alexiusacademia/gotruss/internal/nscp"
)

// HasLoadCases reports whether any node carries case loads
func (t *Truss) HasLoadCases() bool {
	for i := range t.Nodes {
		if len(t.Nodes[i].Loads) > 0 {
			return true
		}
	}
	return false
}

// CaseLoads sums the case loads of node n into X and Y load sets
func (t *Truss) CaseLoads(n int) (x, y nscp.LoadSet, err error) {
	for _, l := range t.Nodes[n].Loads {
		c, err := nscp.ParseCase(l.Case)
		if err != nil {
			return x, y, fmt.Errorf("node %d: %w", n, err)
		}
		x.Add(c, l.X)
		y.Add(c, l.Y)
	}
	return x, y, nil
}

// ApplyCombination returns a copy of the truss whose applied loads are the
// factored case loads of combo. The direct Load of every node is replaced.
func ApplyCombination(t *Truss, combo nscp.LoadCombination) (*Truss, error) {
	if !t.HasLoadCases() {
		return nil, ErrNoLoadCases
	}

	c := t.Clone()
	for i := range c.Nodes {
		x, y, err := c.CaseLoads(i)
		if err != nil {
			return nil, err
		}
		c.Nodes[i].Load = geometry.Vector{X: combo.Apply(x), Y: combo.Apply(y)}
		c.Nodes[i].Reaction = geometry.Vector{}
	}
	return c, nil
}

// TotalLoad returns the sum of applied loads over all nodes
func (t *Truss) TotalLoad() geometry.Vector {
	var sum geometry.Vector
	for i := range t.Nodes {
		sum = sum.Add(t.Nodes[i].Load)
	}
	return sum
}
