package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gotruss/internal/analysis"
	"github.com/alexiusacademia/gotruss/internal/geometry"
	"github.com/alexiusacademia/gotruss/internal/nscp"
	"github.com/alexiusacademia/gotruss/internal/truss"
)

func triangle(t *testing.T) *truss.Truss {
	t.Helper()
	tr, err := truss.New("triangle",
		[]truss.Node{
			{X: 0, Y: 0, Support: truss.Pin},
			{X: 4, Y: 0, Support: truss.RollerNoYDisp},
			{X: 2, Y: 2, Load: geometry.Vector{Y: -10}, Loads: []truss.CaseLoad{
				{Case: "dead", Y: -10},
				{Case: "wind", X: 4},
			}},
		},
		[]truss.Bar{
			{Start: 0, End: 1, Area: 1000, Fy: 250, Radius: 20},
			{Start: 1, End: 2},
			{Start: 0, End: 2},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func run(t *testing.T) *analysis.Report {
	t.Helper()
	rep, err := analysis.Run(triangle(t), analysis.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return rep
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPDF(&buf, run(t)); err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "triangle.pdf")
	if err := WritePDF(run(t), path); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.xlsx")
	if err := WriteXLSX(run(t), path); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		sheet string
		rows  int
		cell  [2]int // row, column of a value to check
		want  string
	}{
		{SheetMembers, 4, [2]int{1, 5}, "Tension"},
		{SheetMembers, 4, [2]int{2, 5}, "Compression"},
		{SheetReactions, 3, [2]int{0, 1}, "Support"},
		{SheetJoints, 4, [2]int{3, 0}, "N2"},
		{SheetTrace, 4, [2]int{1, 3}, "perpendicular"},
	}
	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			rows, err := f.GetRows(tt.sheet)
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != tt.rows {
				t.Fatalf("%d rows, want %d", len(rows), tt.rows)
			}
			if got := rows[tt.cell[0]][tt.cell[1]]; got != tt.want {
				t.Errorf("cell %v = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}

	// Only bar 0 has a section, so only it has a check message
	rows, _ := f.GetRows(SheetMembers)
	if len(rows[1]) != 11 || rows[1][10] != "OK" {
		t.Errorf("bar 0 row = %v", rows[1])
	}
	if len(rows[2]) != 6 {
		t.Errorf("bar 1 row = %v, want no check columns", rows[2])
	}
}

func TestWriteEnvelopeXLSX(t *testing.T) {
	combos := []nscp.LoadCombination{{ID: "D", Dead: 1}, {ID: "W", Wind: 1}}
	env, err := analysis.Envelope(triangle(t), combos, analysis.Options{})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "envelope.xlsx")
	if err := WriteEnvelopeXLSX(env, "kN", path); err != nil {
		t.Fatalf("WriteEnvelopeXLSX() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetEnvelope)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("%d rows, want header + 3", len(rows))
	}
	// Bar 2 is in tension under wind and compression under dead load
	if rows[3][2] != "W" || rows[3][4] != "D" {
		t.Errorf("bar 2 row = %v", rows[3])
	}
}
