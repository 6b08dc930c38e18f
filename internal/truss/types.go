// Package truss holds the planar truss model: joints, bars, supports and the
// external loads applied to them.
//
// The model is laid out as an arena. Bars are addressed by their index in
// Truss.Bars and every node keeps the IDs of its incident bars in declaration
// order, which is the stable incidence order the joint solver relies on.
package truss

import (
	"fmt"

	"github.com/alexiusacademia/gotruss/internal/geometry"
)

// Support describes how a node is restrained
type Support string

const (
	Free          Support = "free"
	Pin           Support = "pin"
	RollerNoXDisp Support = "roller_no_xdisp" // reacts in X only
	RollerNoYDisp Support = "roller_no_ydisp" // reacts in Y only
	Fixed         Support = "fixed"           // carries a moment, not valid for a truss
)

// Reactions returns the number of reaction components the support provides.
// Returns -1 for an unknown support type.
func (s Support) Reactions() int {
	switch s {
	case Free, "":
		return 0
	case Pin:
		return 2
	case RollerNoXDisp, RollerNoYDisp:
		return 1
	case Fixed:
		return 3
	}
	return -1
}

// IsRoller reports whether the support is one of the roller types
func (s Support) IsRoller() bool {
	return s == RollerNoXDisp || s == RollerNoYDisp
}

// Units labels the force and length units of an input file
type Units struct {
	Force  string `json:"force,omitempty" toml:"force"`
	Length string `json:"length,omitempty" toml:"length"`
}

// CaseLoad is an unfactored nodal load belonging to a named load case
// (dead, live, roof, wind, earthquake, rain)
type CaseLoad struct {
	Case string  `json:"case" toml:"case"`
	X    float64 `json:"x" toml:"x"`
	Y    float64 `json:"y" toml:"y"`
}

// Node is a pin joint of the truss
type Node struct {
	ID      int     `json:"-" toml:"-"`
	Name    string  `json:"name,omitempty" toml:"name"`
	X       float64 `json:"x" toml:"x"`
	Y       float64 `json:"y" toml:"y"`
	Support Support `json:"support,omitempty" toml:"support"`

	// Load is the applied external force. When a load combination is
	// applied it is replaced by the factored sum of Loads.
	Load  geometry.Vector `json:"load" toml:"load"`
	Loads []CaseLoad      `json:"loads,omitempty" toml:"loads"`

	// Reaction is filled in by ComputeReactions
	Reaction geometry.Vector `json:"-" toml:"-"`

	// Bars lists incident bar IDs in declaration order (set by Validate)
	Bars []int `json:"-" toml:"-"`
}

// Location returns the node coordinates as a vector
func (n *Node) Location() geometry.Vector {
	return geometry.Vector{X: n.X, Y: n.Y}
}

// NetXForce returns the applied plus reaction force in global X
func (n *Node) NetXForce() float64 {
	return n.Load.X + n.Reaction.X
}

// NetYForce returns the applied plus reaction force in global Y
func (n *Node) NetYForce() float64 {
	return n.Load.Y + n.Reaction.Y
}

// NetForce returns the applied plus reaction force vector
func (n *Node) NetForce() geometry.Vector {
	return geometry.Vector{X: n.NetXForce(), Y: n.NetYForce()}
}

// Label returns the node name, or its index if unnamed
func (n *Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return fmt.Sprintf("N%d", n.ID)
}

// Bar is a two-force member connecting two nodes
type Bar struct {
	ID    int    `json:"-" toml:"-"`
	Name  string `json:"name,omitempty" toml:"name"`
	Start int    `json:"start" toml:"start"`
	End   int    `json:"end" toml:"end"`

	// Optional section and material data for member checks
	Area   float64 `json:"area,omitempty" toml:"area"`     // Gross area (mm²)
	Radius float64 `json:"radius,omitempty" toml:"radius"` // Least radius of gyration (mm)
	Fy     float64 `json:"fy,omitempty" toml:"fy"`         // Yield strength (MPa)
	E      float64 `json:"e,omitempty" toml:"e"`           // Elastic modulus (MPa)
	K      float64 `json:"k,omitempty" toml:"k"`           // Effective length factor
}

// Label returns the bar name, or its index if unnamed
func (b *Bar) Label() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("B%d", b.ID)
}

// HasSection reports whether enough data is given to check member capacity
func (b *Bar) HasSection() bool {
	return b.Area > 0 && b.Fy > 0
}

// Truss is a planar pin-jointed structure
type Truss struct {
	Name        string `json:"name" toml:"name"`
	Description string `json:"description,omitempty" toml:"description"`
	Units       Units  `json:"units,omitempty" toml:"units"`
	Nodes       []Node `json:"nodes" toml:"nodes"`
	Bars        []Bar  `json:"bars" toml:"bars"`
}

// New builds and validates a truss from nodes and bars
func New(name string, nodes []Node, bars []Bar) (*Truss, error) {
	t := &Truss{Name: name, Nodes: nodes, Bars: bars}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Far returns the ID of the node at the other end of bar b from node n
func (t *Truss) Far(n, b int) int {
	bar := &t.Bars[b]
	if bar.Start == n {
		return bar.End
	}
	return bar.Start
}

// Direction returns the vector of bar b pointing away from node n toward
// the bar's far end
func (t *Truss) Direction(n, b int) geometry.Vector {
	return geometry.BarVector(t.Nodes[n].Location(), t.Nodes[t.Far(n, b)].Location())
}

// Length returns the length of bar b
func (t *Truss) Length(b int) float64 {
	bar := &t.Bars[b]
	return t.Nodes[bar.End].Location().Sub(t.Nodes[bar.Start].Location()).Norm()
}

// Clone returns a deep copy of the truss
func (t *Truss) Clone() *Truss {
	c := *t
	c.Nodes = make([]Node, len(t.Nodes))
	for i, n := range t.Nodes {
		n.Loads = append([]CaseLoad(nil), n.Loads...)
		n.Bars = append([]int(nil), n.Bars...)
		c.Nodes[i] = n
	}
	c.Bars = append([]Bar(nil), t.Bars...)
	return &c
}

// ForceUnit returns the force unit label, defaulting to kN
func (t *Truss) ForceUnit() string {
	if t.Units.Force == "" {
		return "kN"
	}
	return t.Units.Force
}

// LengthUnit returns the length unit label, defaulting to m
func (t *Truss) LengthUnit() string {
	if t.Units.Length == "" {
		return "m"
	}
	return t.Units.Length
}

// Validate checks the truss definition and indexes node incidence.
// Node and bar IDs are reset to their positions in the slices.
func (t *Truss) Validate() error {
	if len(t.Nodes) < 2 {
		return &ValidationError{"truss must have at least 2 nodes"}
	}
	if len(t.Bars) == 0 {
		return &ValidationError{"truss must have at least one bar"}
	}

	for i := range t.Nodes {
		n := &t.Nodes[i]
		n.ID = i
		n.Bars = n.Bars[:0]
		if n.Support == "" {
			n.Support = Free
		}
		if n.Support.Reactions() < 0 {
			return &ValidationError{fmt.Sprintf("node %d has unknown support type %q", i, n.Support)}
		}
	}

	seen := make(map[[2]int]int, len(t.Bars))
	for i := range t.Bars {
		b := &t.Bars[i]
		b.ID = i
		if b.Start < 0 || b.Start >= len(t.Nodes) || b.End < 0 || b.End >= len(t.Nodes) {
			return &ValidationError{fmt.Sprintf("bar %d references a node outside 0..%d", i, len(t.Nodes)-1)}
		}
		if b.Start == b.End {
			return &ValidationError{fmt.Sprintf("bar %d starts and ends at node %d", i, b.Start)}
		}
		if t.Length(i) == 0 {
			return &ValidationError{fmt.Sprintf("bar %d has zero length", i)}
		}
		key := [2]int{min(b.Start, b.End), max(b.Start, b.End)}
		if prev, ok := seen[key]; ok {
			return &ValidationError{fmt.Sprintf("bars %d and %d both connect nodes %d and %d", prev, i, key[0], key[1])}
		}
		seen[key] = i
		if b.Area < 0 || b.Radius < 0 || b.Fy < 0 || b.E < 0 || b.K < 0 {
			return &ValidationError{fmt.Sprintf("bar %d has a negative section or material property", i)}
		}

		t.Nodes[b.Start].Bars = append(t.Nodes[b.Start].Bars, i)
		t.Nodes[b.End].Bars = append(t.Nodes[b.End].Bars, i)
	}

	return nil
}

// ValidationError represents a truss definition error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
