// Package joints solves the bar forces of a statically determinate planar
// truss by the method of joints.
//
// A Resolver owns the resolution state of every bar: whether its axial
// force is known and, once known, its value. The truss model is only read.
// Forces are positive in tension. Each bar's force is computed once, from
// whichever end joint becomes solvable first, and is never overwritten.
package joints

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/alexiusacademia/gotruss/internal/truss"
)

type barState struct {
	resolved bool
	force    float64
}

// Resolver holds the write-once force state of every bar of a truss
type Resolver struct {
	truss  *truss.Truss
	bars   []barState
	logger *log.Logger

	pass  int
	steps []Step
}

// NewResolver creates a resolver with every bar unresolved.
// A nil logger discards output.
func NewResolver(t *truss.Truss, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		truss:  t,
		bars:   make([]barState, len(t.Bars)),
		logger: logger,
	}
}

// Resolved reports whether bar b has a known force
func (r *Resolver) Resolved(b int) bool {
	return r.bars[b].resolved
}

// Force returns the axial force of bar b (zero while unresolved)
func (r *Resolver) Force(b int) float64 {
	return r.bars[b].force
}

// Forces returns a copy of all bar forces indexed by bar ID
func (r *Resolver) Forces() []float64 {
	out := make([]float64, len(r.bars))
	for i, s := range r.bars {
		out[i] = s.force
	}
	return out
}

// Remaining returns the number of unresolved bars
func (r *Resolver) Remaining() int {
	n := 0
	for _, s := range r.bars {
		if !s.resolved {
			n++
		}
	}
	return n
}

// Steps returns the resolution trace so far
func (r *Resolver) Steps() []Step {
	return append([]Step(nil), r.steps...)
}

// set records the force of bar b. A resolved bar is never written again.
func (r *Resolver) set(n, b int, force float64, eq Equation) error {
	if r.bars[b].resolved {
		return fmt.Errorf("bar %d: %w", b, ErrAlreadyResolved)
	}
	if force == 0 {
		force = 0 // drop negative zero
	}
	r.bars[b] = barState{resolved: true, force: force}
	r.steps = append(r.steps, Step{Pass: r.pass, Node: n, Bar: b, Force: force, Equation: eq})
	r.logger.Debug("resolved bar", "pass", r.pass, "node", n, "bar", b, "force", force, "equation", eq)
	return nil
}

// Equation names the local equilibrium equation used to resolve a bar
type Equation string

const (
	// AlongBar sums forces along the resolved bar's own axis
	AlongBar Equation = "along-bar"
	// Perpendicular sums forces normal to a reference bar
	Perpendicular Equation = "perpendicular"
)

// Step is one bar resolution
type Step struct {
	Pass     int
	Node     int
	Bar      int
	Force    float64
	Equation Equation
}
