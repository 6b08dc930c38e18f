package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gotruss/internal/analysis"
)

var (
	colorTension     = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	colorCompression = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	colorZero        = color.Gray{Y: 150}
	colorLoad        = color.RGBA{R: 0, G: 130, B: 0, A: 255}
)

func barColor(s analysis.State) color.Color {
	switch s {
	case analysis.Tension:
		return colorTension
	case analysis.Compression:
		return colorCompression
	}
	return colorZero
}

// ExportTrussDiagram exports the solved truss to an image file. The format
// follows the extension (.png, .svg, .pdf); anything else gets .png added.
func ExportTrussDiagram(data TrussDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = data.Title
	p.X.Label.Text = fmt.Sprintf("X (%s)", data.LengthUnit)
	p.Y.Label.Text = fmt.Sprintf("Y (%s)", data.LengthUnit)

	minX, minY, maxX, maxY := data.bounds()
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	pad := span * 0.15

	// Members, coloured by state, with the force at mid-length
	var mids plotter.XYs
	var forces []string
	for _, b := range data.Bars {
		s, e := data.Nodes[b.Start], data.Nodes[b.End]
		line, err := plotter.NewLine(plotter.XYs{{X: s.X, Y: s.Y}, {X: e.X, Y: e.Y}})
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2.5)
		line.LineStyle.Color = barColor(b.State)
		if b.State == analysis.ZeroForce {
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		}
		p.Add(line)

		mids = append(mids, plotter.XY{X: (s.X + e.X) / 2, Y: (s.Y + e.Y) / 2})
		forces = append(forces, fmt.Sprintf("%s: %.2f", b.Label, b.Force))
	}

	// Applied loads as short arrows ending at the joint
	maxLoad := 0.0
	for _, n := range data.Nodes {
		maxLoad = math.Max(maxLoad, math.Hypot(n.LoadX, n.LoadY))
	}
	for _, n := range data.Nodes {
		mag := math.Hypot(n.LoadX, n.LoadY)
		if mag == 0 {
			continue
		}
		length := pad * (0.4 + 0.6*mag/maxLoad)
		tail := plotter.XY{X: n.X - n.LoadX/mag*length, Y: n.Y - n.LoadY/mag*length}
		arrow, err := plotter.NewLine(plotter.XYs{tail, {X: n.X, Y: n.Y}})
		if err != nil {
			return err
		}
		arrow.LineStyle.Width = vg.Points(1.5)
		arrow.LineStyle.Color = colorLoad
		p.Add(arrow)

		l, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{tail},
			Labels: []string{fmt.Sprintf("%.2f %s", mag, data.ForceUnit)},
		})
		if err != nil {
			return err
		}
		p.Add(l)
	}

	// Joints, then supports drawn over them
	var joints, supports plotter.XYs
	var names []string
	for _, n := range data.Nodes {
		pt := plotter.XY{X: n.X, Y: n.Y}
		joints = append(joints, pt)
		names = append(names, n.Label)
		if n.Support != "" {
			supports = append(supports, plotter.XY{X: n.X, Y: n.Y - span*0.03})
		}
	}

	jointScatter, err := plotter.NewScatter(joints)
	if err != nil {
		return err
	}
	jointScatter.GlyphStyle.Color = color.Black
	jointScatter.GlyphStyle.Radius = vg.Points(3)
	jointScatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(jointScatter)

	if len(supports) > 0 {
		supportScatter, err := plotter.NewScatter(supports)
		if err != nil {
			return err
		}
		supportScatter.GlyphStyle.Color = color.RGBA{R: 90, G: 90, B: 90, A: 255}
		supportScatter.GlyphStyle.Radius = vg.Points(7)
		supportScatter.GlyphStyle.Shape = draw.TriangleGlyph{}
		p.Add(supportScatter)
	}

	// Annotations
	if len(mids) > 0 {
		barLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: mids, Labels: forces})
		if err != nil {
			return err
		}
		p.Add(barLabels)
	}

	nodeLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: joints, Labels: names})
	if err != nil {
		return err
	}
	nodeLabels.Offset = vg.Point{X: vg.Points(5), Y: vg.Points(5)}
	p.Add(nodeLabels)

	p.X.Min, p.X.Max = minX-pad, maxX+pad
	p.Y.Min, p.Y.Max = minY-pad, maxY+pad

	// Determine file format from extension
	ext := filepath.Ext(filename)
	width := 10 * vg.Inch
	height := 7 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch ext {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
