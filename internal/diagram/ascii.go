package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gotruss/internal/analysis"
)

// Sketch grid limits in characters. Terminal cells are about twice as tall
// as they are wide, so the vertical scale is half the horizontal one.
const (
	sketchWidth  = 61
	sketchHeight = 21
	labelRoom    = 6
)

// Bar and joint glyphs
const (
	glyphTension     = '='
	glyphCompression = '#'
	glyphZero        = '·'
	glyphUnresolved  = '?'
	glyphFree        = '●'
	glyphPin         = '▲'
	glyphRoller      = '○'
)

func barGlyph(s analysis.State) rune {
	switch s {
	case analysis.Tension:
		return glyphTension
	case analysis.Compression:
		return glyphCompression
	case analysis.ZeroForce:
		return glyphZero
	}
	return glyphUnresolved
}

func nodeGlyph(support string) rune {
	switch {
	case support == "":
		return glyphFree
	case strings.HasPrefix(support, "roller"):
		return glyphRoller
	}
	return glyphPin
}

// DrawTrussSketch rasterises the truss onto a character grid. Bars are drawn
// with their force state and joints are marked by support type and labelled.
func DrawTrussSketch(data TrussDiagramData) string {
	var sb strings.Builder

	minX, minY, maxX, maxY := data.bounds()
	dx, dy := maxX-minX, maxY-minY

	var sx, sy float64
	if dx > 0 {
		sx = float64(sketchWidth-1) / dx
		sy = sx / 2
	}
	if dy > 0 && (sx == 0 || dy*sy > sketchHeight-1) {
		sy = float64(sketchHeight-1) / dy
		sx = 2 * sy
		if dx > 0 {
			sx = math.Min(sx, float64(sketchWidth-1)/dx)
		}
	}

	cols := int(math.Round(dx*sx)) + 1
	rows := int(math.Round(dy*sy)) + 1

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols+labelRoom))
	}

	cell := func(n NodeData) (int, int) {
		c := int(math.Round((n.X - minX) * sx))
		r := rows - 1 - int(math.Round((n.Y-minY)*sy))
		return r, c
	}

	for _, b := range data.Bars {
		r0, c0 := cell(data.Nodes[b.Start])
		r1, c1 := cell(data.Nodes[b.End])
		plotLine(grid, r0, c0, r1, c1, barGlyph(b.State))
	}

	// Joint glyphs and labels may cover bars but never each other
	taken := make(map[[2]int]bool)
	for _, n := range data.Nodes {
		r, c := cell(n)
		grid[r][c] = nodeGlyph(n.Support)
		taken[[2]int{r, c}] = true
	}
	for _, n := range data.Nodes {
		r, c := cell(n)
		for i, ch := range []rune(n.Label) {
			col := c + 1 + i
			if col >= len(grid[r]) || taken[[2]int{r, col}] {
				break
			}
			grid[r][col] = ch
			taken[[2]int{r, col}] = true
		}
	}

	sb.WriteString("\n")
	if data.Title != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", data.Title))
		sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", utf8.RuneCountInString(data.Title))))
	}
	for _, line := range grid {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString(fmt.Sprintf("  %c%c%c = Tension    %c%c%c = Compression    %c%c%c = Zero-force\n",
		glyphTension, glyphTension, glyphTension,
		glyphCompression, glyphCompression, glyphCompression,
		glyphZero, glyphZero, glyphZero))
	sb.WriteString(fmt.Sprintf("  %c = Pin    %c = Roller    %c = Joint\n", glyphPin, glyphRoller, glyphFree))

	return sb.String()
}

// plotLine draws a Bresenham line between two cells, endpoints excluded
func plotLine(grid [][]rune, r0, c0, r1, c1 int, ch rune) {
	dr, dc := abs(r1-r0), abs(c1-c0)
	sr, sc := sign(r1-r0), sign(c1-c0)
	err := dc - dr

	r, c := r0, c0
	for r != r1 || c != c1 {
		if (r != r0 || c != c0) && grid[r][c] == ' ' {
			grid[r][c] = ch
		}
		e2 := 2 * err
		if e2 > -dr {
			err -= dr
			c += sc
		}
		if e2 < dc {
			err += dc
			r += sr
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// chartWidth stretches short series so each bar gets a few columns
func chartWidth(n int) int {
	return min(max(n*6, 30), 72)
}

// DrawForceChart plots the axial force of every bar, in bar order
func DrawForceChart(data TrussDiagramData) string {
	if len(data.Bars) == 0 {
		return ""
	}
	forces := make([]float64, len(data.Bars))
	for i, b := range data.Bars {
		forces[i] = b.Force
	}
	if len(forces) == 1 {
		forces = append(forces, forces[0])
	}

	caption := fmt.Sprintf("Axial force per bar, B0 to B%d (%s, + tension)", len(data.Bars)-1, data.ForceUnit)
	return "\n" + asciigraph.Plot(forces,
		asciigraph.Height(10),
		asciigraph.Width(chartWidth(len(data.Bars))),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	) + "\n"
}

// DrawEnvelopeChart plots the maximum tension and compression of every bar
// over a set of load combinations
func DrawEnvelopeChart(rows []analysis.EnvelopeRow, unit string) string {
	if len(rows) == 0 {
		return ""
	}
	tension := make([]float64, len(rows))
	compression := make([]float64, len(rows))
	for i, r := range rows {
		tension[i] = r.MaxTension
		compression[i] = r.MaxCompression
	}
	if len(rows) == 1 {
		tension = append(tension, tension[0])
		compression = append(compression, compression[0])
	}

	return "\n" + asciigraph.PlotMany([][]float64{tension, compression},
		asciigraph.Height(10),
		asciigraph.Width(chartWidth(len(rows))),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.SeriesLegends("max tension", "max compression"),
		asciigraph.Caption(fmt.Sprintf("Force envelope per bar (%s)", unit)),
	) + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}

	row := func(s string) {
		pad := width - utf8.RuneCountInString(s)
		sb.WriteString(fmt.Sprintf("  ║  %s%s  ║\n", s, strings.Repeat(" ", pad)))
	}

	border := strings.Repeat("═", width+4)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	row(title)
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		row(line)
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
