package joints

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrGeometry matches every *GeometryError
	ErrGeometry = errors.New("singular joint geometry")

	// ErrStability matches every *StabilityError
	ErrStability = errors.New("no viable joint")

	// ErrAlreadyResolved is returned when a resolved bar would be written again
	ErrAlreadyResolved = errors.New("bar force already resolved")

	// ErrUnresolvedNeighbour is returned when an equation is applied at a
	// joint that still has other unknown bars
	ErrUnresolvedNeighbour = errors.New("joint has another unresolved bar")
)

// GeometryError reports a joint whose two unknown bars are collinear, so the
// perpendicular equation has no solution
type GeometryError struct {
	Node      int
	Reference int
	Target    int
	Sine      float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("bars %d and %d at node %d are collinear or invalid geometry (sin θ = %.3g)",
		e.Reference, e.Target, e.Node, e.Sine)
}

// Is makes errors.Is(err, ErrGeometry) match
func (e *GeometryError) Is(target error) bool {
	return target == ErrGeometry
}

// BlockedJoint is a joint that still has more than two unknown bars
type BlockedJoint struct {
	Node     int
	Unknowns int
}

// StabilityError reports that unresolved bars remain but no joint has one or
// two unknowns. The truss is kinematically unstable, has a disconnected
// island, or holds an indeterminate region the method cannot cut into.
type StabilityError struct {
	Pass           int            // Pass on which no progress was made
	UnresolvedBars []int          // Bar IDs still unknown
	Blocked        []BlockedJoint // Joints touching unresolved bars
	Islands        [][]int        // Connected groups of unresolved bars
}

func (e *StabilityError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "stuck on pass %d: no viable joints; %d bar(s) unresolved in %d island(s)",
		e.Pass, len(e.UnresolvedBars), len(e.Islands))
	if len(e.Blocked) > 0 {
		parts := make([]string, len(e.Blocked))
		for i, b := range e.Blocked {
			parts[i] = fmt.Sprintf("%d (%d unknowns)", b.Node, b.Unknowns)
		}
		fmt.Fprintf(&sb, "; blocked joints: %s", strings.Join(parts, ", "))
	}
	sb.WriteString("; the truss may be unstable or statically indeterminate")
	return sb.String()
}

// Is makes errors.Is(err, ErrStability) match
func (e *StabilityError) Is(target error) bool {
	return target == ErrStability
}

// stall builds the StabilityError for the current state
func (r *Resolver) stall(pass int) *StabilityError {
	e := &StabilityError{Pass: pass}

	for b := range r.bars {
		if !r.bars[b].resolved {
			e.UnresolvedBars = append(e.UnresolvedBars, b)
		}
	}
	for n := range r.truss.Nodes {
		if k := len(r.UnresolvedBars(n)); k > 0 {
			e.Blocked = append(e.Blocked, BlockedJoint{Node: n, Unknowns: k})
		}
	}
	e.Islands = r.islands(e.UnresolvedBars)
	return e
}

// islands groups unresolved bars into connected components using union-find
// over their end nodes. Groups are ordered by their lowest bar ID.
func (r *Resolver) islands(bars []int) [][]int {
	parent := make([]int, len(r.truss.Nodes))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	for _, b := range bars {
		bar := &r.truss.Bars[b]
		if a, c := find(bar.Start), find(bar.End); a != c {
			parent[a] = c
		}
	}

	index := make(map[int]int)
	var groups [][]int
	for _, b := range bars {
		root := find(r.truss.Bars[b].Start)
		i, ok := index[root]
		if !ok {
			i = len(groups)
			index[root] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], b)
	}
	return groups
}
