package joints

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/gotruss/internal/geometry"
)

// collinearTolerance is the smallest |sin θ| between the reference and
// target bars accepted by SolvePerpendicular
const collinearTolerance = 1e-9

// SolveAlongBar resolves bar target at node n by summing forces along the
// bar's own axis:
//
//	F_target + Σ F_i·cos θ_i + F_ext·cos θ_ext = 0
//
// Every other bar at the node must already be resolved.
func (r *Resolver) SolveAlongBar(n, target int) (float64, error) {
	if err := r.checkIncident(n, target); err != nil {
		return 0, err
	}
	if r.bars[target].resolved {
		return 0, fmt.Errorf("bar %d: %w", target, ErrAlreadyResolved)
	}

	node := &r.truss.Nodes[n]
	axis := r.truss.Direction(n, target)

	// External and reaction forces projected onto the local X axis
	sum := node.NetXForce()*geometry.Cosine(axis, geometry.XAxis) +
		node.NetYForce()*geometry.Cosine(axis, geometry.YAxis)

	for _, b := range node.Bars {
		if b == target {
			continue
		}
		if !r.bars[b].resolved {
			return 0, fmt.Errorf("node %d bar %d: %w (bar %d)", n, target, ErrUnresolvedNeighbour, b)
		}
		sum += r.bars[b].force * geometry.Cosine(axis, r.truss.Direction(n, b))
	}

	force := -sum
	if err := r.set(n, target, force, AlongBar); err != nil {
		return 0, err
	}
	return force, nil
}

// SolvePerpendicular resolves bar target at node n when both ref and target
// are unknown. Forces are summed along the axis normal to ref, so ref drops
// out of the equation:
//
//	F_target·sin θ_target + Σ F_i·sin θ_i + F_ext·sin θ_ext = 0
//
// Only target is marked resolved; the caller completes the pair with
// SolveAlongBar(n, ref). A *GeometryError is returned when the two bars are
// collinear at the node.
func (r *Resolver) SolvePerpendicular(n, ref, target int) (float64, error) {
	if err := r.checkIncident(n, ref); err != nil {
		return 0, err
	}
	if err := r.checkIncident(n, target); err != nil {
		return 0, err
	}
	if ref == target {
		return 0, fmt.Errorf("node %d: reference and target are both bar %d", n, ref)
	}
	for _, b := range []int{ref, target} {
		if r.bars[b].resolved {
			return 0, fmt.Errorf("bar %d: %w", b, ErrAlreadyResolved)
		}
	}

	node := &r.truss.Nodes[n]
	axis := r.truss.Direction(n, ref)

	// External and reaction forces projected onto the local Y axis
	sum := node.NetXForce()*geometry.Sine(axis, geometry.XAxis) +
		node.NetYForce()*geometry.Sine(axis, geometry.YAxis)

	for _, b := range node.Bars {
		if b == ref || b == target {
			continue
		}
		if !r.bars[b].resolved {
			return 0, fmt.Errorf("node %d bar %d: %w (bar %d)", n, target, ErrUnresolvedNeighbour, b)
		}
		sum += r.bars[b].force * geometry.Sine(axis, r.truss.Direction(n, b))
	}

	sin := geometry.Sine(axis, r.truss.Direction(n, target))
	if math.Abs(sin) < collinearTolerance {
		return 0, &GeometryError{Node: n, Reference: ref, Target: target, Sine: sin}
	}

	force := -sum / sin
	if err := r.set(n, target, force, Perpendicular); err != nil {
		return 0, err
	}
	return force, nil
}

func (r *Resolver) checkIncident(n, b int) error {
	if n < 0 || n >= len(r.truss.Nodes) {
		return fmt.Errorf("node %d does not exist", n)
	}
	if b < 0 || b >= len(r.bars) {
		return fmt.Errorf("bar %d does not exist", b)
	}
	if bar := &r.truss.Bars[b]; bar.Start != n && bar.End != n {
		return fmt.Errorf("bar %d is not connected to node %d", b, n)
	}
	return nil
}
