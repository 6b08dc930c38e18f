package diagram

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/alexiusacademia/gotruss/internal/analysis"
)

// dotSpan is the size in inches of the longer side of the drawing
const dotSpan = 8.0

func dotColor(s analysis.State) string {
	switch s {
	case analysis.Tension:
		return "#1e5ac8"
	case analysis.Compression:
		return "#c82828"
	case analysis.ZeroForce:
		return "#969696"
	}
	return "black"
}

// ToDOT converts a solved truss to an undirected Graphviz graph. Joints are
// pinned at their coordinates so the neato layout keeps the geometry.
func ToDOT(data TrussDiagramData) string {
	minX, minY, maxX, maxY := data.bounds()
	scale := dotSpan / math.Max(math.Max(maxX-minX, maxY-minY), 1e-9)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	if data.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", data.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.35, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=2.5, fontsize=9];\n")
	buf.WriteString("\n")

	for i, n := range data.Nodes {
		attrs := []string{
			fmt.Sprintf("label=%q", n.Label),
			fmt.Sprintf("pos=\"%.3f,%.3f!\"", (n.X-minX)*scale, (n.Y-minY)*scale),
		}
		if n.Support != "" {
			attrs = append(attrs, "shape=triangle", "fillcolor=lightgrey",
				fmt.Sprintf("xlabel=%q", n.Support))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, b := range data.Bars {
		attrs := []string{
			fmt.Sprintf("label=%q", fmt.Sprintf("%s %.2f", b.Label, b.Force)),
			fmt.Sprintf("color=%q", dotColor(b.State)),
		}
		if b.State == analysis.ZeroForce {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  n%d -- n%d [%s];\n", b.Start, b.End, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT graph with neato and renders it to SVG
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
