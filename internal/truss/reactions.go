package truss

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gotruss/internal/geometry"
)

// leverTolerance is the smallest roller lever arm (in length units) accepted
const leverTolerance = 1e-12

// ComputeReactions solves the support reactions of a truss with one pin and
// one roller from global equilibrium and stores them on the support nodes.
//
// The roller reaction follows from the sum of moments about the pin; the pin
// components then balance the remaining X and Y forces.
func ComputeReactions(t *Truss) error {
	pin, roller := -1, -1
	var pins, rollers int

	for i := range t.Nodes {
		t.Nodes[i].Reaction = geometry.Vector{}
		switch s := t.Nodes[i].Support; {
		case s == Pin:
			pin = i
			pins++
		case s.IsRoller():
			roller = i
			rollers++
		}
	}

	if pins != 1 || rollers != 1 {
		return fmt.Errorf("%w (found %d pin(s), %d roller(s))", ErrUnsupportedSupports, pins, rollers)
	}

	p := t.Nodes[pin].Location()
	r := &t.Nodes[roller]

	// Moment of all applied loads about the pin (counter-clockwise positive)
	var moment, sumX, sumY float64
	for i := range t.Nodes {
		n := &t.Nodes[i]
		moment += n.Load.Y * (n.X - p.X)
		moment += n.Load.X * (p.Y - n.Y)
		sumX += n.Load.X
		sumY += n.Load.Y
	}

	switch r.Support {
	case RollerNoXDisp:
		arm := p.Y - r.Y
		if math.Abs(arm) < leverTolerance {
			return fmt.Errorf("node %d: %w", roller, ErrSingularSupports)
		}
		r.Reaction.X = -moment / arm
		sumX += r.Reaction.X
	case RollerNoYDisp:
		arm := r.X - p.X
		if math.Abs(arm) < leverTolerance {
			return fmt.Errorf("node %d: %w", roller, ErrSingularSupports)
		}
		r.Reaction.Y = -moment / arm
		sumY += r.Reaction.Y
	}

	t.Nodes[pin].Reaction = geometry.Vector{X: -sumX, Y: -sumY}
	return nil
}

// Supports returns the IDs of all restrained nodes in index order
func (t *Truss) Supports() []int {
	var ids []int
	for i := range t.Nodes {
		if s := t.Nodes[i].Support; s != Free && s != "" {
			ids = append(ids, i)
		}
	}
	return ids
}
