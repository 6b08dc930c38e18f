package diagram

import (
	"github.com/alexiusacademia/gotruss/internal/analysis"
)

// NodeData is a joint as drawn
type NodeData struct {
	Label   string
	X       float64
	Y       float64
	Support string  // "" for a free joint
	LoadX   float64 // Applied load, reactions excluded
	LoadY   float64
}

// BarData is a member as drawn
type BarData struct {
	Label string
	Start int
	End   int
	Force float64
	State analysis.State
}

// TrussDiagramData holds everything needed to draw a solved truss
type TrussDiagramData struct {
	Title      string
	ForceUnit  string
	LengthUnit string
	Nodes      []NodeData
	Bars       []BarData
}

// FromReport collects the diagram data of an analysis run
func FromReport(rep *analysis.Report) TrussDiagramData {
	t := rep.Truss
	data := TrussDiagramData{
		Title:      t.Name,
		ForceUnit:  t.ForceUnit(),
		LengthUnit: t.LengthUnit(),
		Nodes:      make([]NodeData, len(t.Nodes)),
		Bars:       make([]BarData, len(rep.Members)),
	}
	if id := rep.CombinationID(); id != "" {
		data.Title += " (combination " + id + ")"
	}

	for i := range t.Nodes {
		n := &t.Nodes[i]
		nd := NodeData{Label: n.Label(), X: n.X, Y: n.Y, LoadX: n.Load.X, LoadY: n.Load.Y}
		if n.Support.Reactions() > 0 {
			nd.Support = string(n.Support)
		}
		data.Nodes[i] = nd
	}
	for i, m := range rep.Members {
		data.Bars[i] = BarData{Label: m.Label, Start: m.Start, End: m.End, Force: m.Force, State: m.State}
	}
	return data
}

// bounds returns the extent of the node coordinates
func (d TrussDiagramData) bounds() (minX, minY, maxX, maxY float64) {
	if len(d.Nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = d.Nodes[0].X, d.Nodes[0].X
	minY, maxY = d.Nodes[0].Y, d.Nodes[0].Y
	for _, n := range d.Nodes[1:] {
		minX = min(minX, n.X)
		maxX = max(maxX, n.X)
		minY = min(minY, n.Y)
		maxY = max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY
}
