package truss

import "fmt"

// Determinacy summarises the b + r = 2j count
type Determinacy struct {
	Bars      int
	Reactions int
	Joints    int
}

// Degree returns b + r - 2j. Zero means statically determinate.
func (d Determinacy) Degree() int {
	return d.Bars + d.Reactions - 2*d.Joints
}

func (d Determinacy) String() string {
	return fmt.Sprintf("b + r = %d + %d = %d, 2j = %d", d.Bars, d.Reactions, d.Bars+d.Reactions, 2*d.Joints)
}

// CheckDeterminacy verifies that the truss satisfies b + r = 2j.
// A fixed support is rejected before counting.
func CheckDeterminacy(t *Truss) (Determinacy, error) {
	d := Determinacy{Bars: len(t.Bars), Joints: len(t.Nodes)}

	for i := range t.Nodes {
		n := &t.Nodes[i]
		switch r := n.Support.Reactions(); {
		case n.Support == Fixed:
			return d, fmt.Errorf("node %d: %w", i, ErrMomentSupport)
		case r < 0:
			return d, &ValidationError{fmt.Sprintf("node %d has unknown support type %q", i, n.Support)}
		default:
			d.Reactions += r
		}
	}

	switch deg := d.Degree(); {
	case deg < 0:
		return d, fmt.Errorf("%w: %s; did you input all of the reaction constraints correctly?", ErrUnstable, d)
	case deg > 0:
		return d, fmt.Errorf("%w: %s; the method of joints cannot resolve it", ErrIndeterminate, d)
	}
	return d, nil
}
