package truss

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gotruss/internal/geometry"
	"github.com/alexiusacademia/gotruss/internal/nscp"
	"github.com/xuri/excelize/v2"
)

// triangle is the 3-node, 3-bar truss with a pin at node 0, a vertical
// roller at node 1 and a downward load at the apex
func triangle(t *testing.T) *Truss {
	t.Helper()
	tr, err := New("triangle",
		[]Node{
			{X: 0, Y: 0, Support: Pin},
			{X: 4, Y: 0, Support: RollerNoYDisp},
			{X: 2, Y: 2, Load: geometry.Vector{Y: -10}},
		},
		[]Bar{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 0, End: 2}},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tr
}

func TestValidateIndexesIncidence(t *testing.T) {
	tr := triangle(t)

	want := [][]int{{0, 2}, {0, 1}, {1, 2}}
	for i, n := range tr.Nodes {
		if n.ID != i {
			t.Errorf("node %d has ID %d", i, n.ID)
		}
		if len(n.Bars) != len(want[i]) {
			t.Fatalf("node %d bars = %v, want %v", i, n.Bars, want[i])
		}
		for j := range n.Bars {
			if n.Bars[j] != want[i][j] {
				t.Errorf("node %d bars = %v, want %v", i, n.Bars, want[i])
			}
		}
	}

	// Validating twice must not duplicate incidence
	if err := tr.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(tr.Nodes[0].Bars) != 2 {
		t.Errorf("re-validate duplicated incidence: %v", tr.Nodes[0].Bars)
	}
}

func TestValidateErrors(t *testing.T) {
	nodes := func() []Node {
		return []Node{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}}
	}
	tests := []struct {
		name  string
		nodes []Node
		bars  []Bar
	}{
		{"too few nodes", []Node{{}}, []Bar{{Start: 0, End: 0}}},
		{"no bars", nodes(), nil},
		{"missing node", nodes(), []Bar{{Start: 0, End: 7}}},
		{"self loop", nodes(), []Bar{{Start: 1, End: 1}}},
		{"zero length", nodes(), []Bar{{Start: 1, End: 2}}},
		{"duplicate", nodes(), []Bar{{Start: 0, End: 1}, {Start: 1, End: 0}}},
		{"negative area", nodes(), []Bar{{Start: 0, End: 1, Area: -1}}},
		{"unknown support", []Node{{Support: "glued"}, {X: 1}}, []Bar{{Start: 0, End: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.name, tt.nodes, tt.bars)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("New() error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestDirectionAndFar(t *testing.T) {
	tr := triangle(t)

	if got := tr.Far(0, 2); got != 2 {
		t.Errorf("Far(0, 2) = %d, want 2", got)
	}
	if got := tr.Direction(2, 2); got != (geometry.Vector{X: -2, Y: -2}) {
		t.Errorf("Direction(2, 2) = %v, want {-2 -2}", got)
	}
	if got := tr.Length(0); got != 4 {
		t.Errorf("Length(0) = %v, want 4", got)
	}
}

func TestCheckDeterminacy(t *testing.T) {
	tr := triangle(t)
	d, err := CheckDeterminacy(tr)
	if err != nil {
		t.Fatalf("CheckDeterminacy() error = %v", err)
	}
	if d.Degree() != 0 || d.Reactions != 3 {
		t.Errorf("determinacy = %+v", d)
	}

	unstable := tr.Clone()
	unstable.Nodes[0].Support = RollerNoYDisp
	if _, err := CheckDeterminacy(unstable); !errors.Is(err, ErrUnstable) {
		t.Errorf("roller+roller error = %v, want ErrUnstable", err)
	}

	indeterminate := tr.Clone()
	indeterminate.Nodes[1].Support = Pin
	if _, err := CheckDeterminacy(indeterminate); !errors.Is(err, ErrIndeterminate) {
		t.Errorf("pin+pin error = %v, want ErrIndeterminate", err)
	}

	fixed := tr.Clone()
	fixed.Nodes[0].Support = Fixed
	if _, err := CheckDeterminacy(fixed); !errors.Is(err, ErrMomentSupport) {
		t.Errorf("fixed error = %v, want ErrMomentSupport", err)
	}
}

func TestComputeReactions(t *testing.T) {
	tests := []struct {
		name       string
		roller     Support
		rollerAt   geometry.Vector
		load       geometry.Vector
		wantPin    geometry.Vector
		wantRoller geometry.Vector
		wantErr    error
	}{
		{
			name:       "vertical roller, gravity load",
			roller:     RollerNoYDisp,
			rollerAt:   geometry.Vector{X: 4, Y: 0},
			load:       geometry.Vector{Y: -10},
			wantPin:    geometry.Vector{X: 0, Y: 5},
			wantRoller: geometry.Vector{X: 0, Y: 5},
		},
		{
			name:       "vertical roller, lateral load",
			roller:     RollerNoYDisp,
			rollerAt:   geometry.Vector{X: 4, Y: 0},
			load:       geometry.Vector{X: 8},
			wantPin:    geometry.Vector{X: -8, Y: -4},
			wantRoller: geometry.Vector{X: 0, Y: 4},
		},
		{
			name:       "horizontal roller above pin",
			roller:     RollerNoXDisp,
			rollerAt:   geometry.Vector{X: 0, Y: 4},
			load:       geometry.Vector{Y: -10},
			wantPin:    geometry.Vector{X: 5, Y: 10},
			wantRoller: geometry.Vector{X: -5, Y: 0},
		},
		{
			name:     "horizontal roller level with pin",
			roller:   RollerNoXDisp,
			rollerAt: geometry.Vector{X: 4, Y: 0},
			load:     geometry.Vector{Y: -10},
			wantErr:  ErrSingularSupports,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.name,
				[]Node{
					{X: 0, Y: 0, Support: Pin},
					{X: tt.rollerAt.X, Y: tt.rollerAt.Y, Support: tt.roller},
					{X: 2, Y: 2, Load: tt.load},
				},
				[]Bar{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 0, End: 2}},
			)
			if err != nil {
				t.Fatal(err)
			}

			err = ComputeReactions(tr)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeReactions() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeReactions() error = %v", err)
			}
			if !nearVec(tr.Nodes[0].Reaction, tt.wantPin) {
				t.Errorf("pin reaction = %v, want %v", tr.Nodes[0].Reaction, tt.wantPin)
			}
			if !nearVec(tr.Nodes[1].Reaction, tt.wantRoller) {
				t.Errorf("roller reaction = %v, want %v", tr.Nodes[1].Reaction, tt.wantRoller)
			}

			// Global equilibrium: ΣF = 0 and ΣM about the origin = 0
			var sum geometry.Vector
			var moment float64
			for i := range tr.Nodes {
				f := tr.Nodes[i].NetForce()
				sum = sum.Add(f)
				moment += tr.Nodes[i].Location().Cross(f)
			}
			if sum.Norm() > 1e-9 || math.Abs(moment) > 1e-9 {
				t.Errorf("not in equilibrium: ΣF = %v, ΣM = %v", sum, moment)
			}
		})
	}
}

func TestComputeReactionsSupportCount(t *testing.T) {
	tr := triangle(t)
	tr.Nodes[1].Support = Pin
	if err := ComputeReactions(tr); !errors.Is(err, ErrUnsupportedSupports) {
		t.Errorf("ComputeReactions() error = %v, want ErrUnsupportedSupports", err)
	}
}

func TestApplyCombination(t *testing.T) {
	tr := triangle(t)
	if _, err := ApplyCombination(tr, nscp.LoadCombinations[0]); !errors.Is(err, ErrNoLoadCases) {
		t.Fatalf("ApplyCombination() error = %v, want ErrNoLoadCases", err)
	}

	tr.Nodes[2].Loads = []CaseLoad{
		{Case: "dead", Y: -10},
		{Case: "live", Y: -5},
		{Case: "wind", X: 3},
	}
	combo, _ := nscp.Find(nscp.LoadCombinations, "4")
	c, err := ApplyCombination(tr, combo)
	if err != nil {
		t.Fatal(err)
	}
	if !nearVec(c.Nodes[2].Load, geometry.Vector{X: 3, Y: -17}) {
		t.Errorf("factored load = %v, want {3 -17}", c.Nodes[2].Load)
	}
	if tr.Nodes[2].Load.Y != -10 {
		t.Error("ApplyCombination modified the source truss")
	}

	tr.Nodes[2].Loads = append(tr.Nodes[2].Loads, CaseLoad{Case: "snow"})
	if _, err := ApplyCombination(tr, combo); err == nil {
		t.Error("unknown load case should fail")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "tri.json")
	writeFile(t, jsonPath, `{
  "name": "Triangle",
  "nodes": [
    {"x": 0, "y": 0, "support": "pin"},
    {"x": 4, "y": 0, "support": "roller_no_ydisp"},
    {"x": 2, "y": 2, "load": {"x": 0, "y": -10}, "loads": [{"case": "dead", "y": -10}]}
  ],
  "bars": [
    {"start": 0, "end": 1, "name": "bottom"},
    {"start": 1, "end": 2},
    {"start": 0, "end": 2, "area": 500, "fy": 250}
  ]
}`)

	tomlPath := filepath.Join(dir, "tri.toml")
	writeFile(t, tomlPath, `name = "Triangle"

[[nodes]]
x = 0.0
y = 0.0
support = "pin"

[[nodes]]
x = 4.0
y = 0.0
support = "roller_no_ydisp"

[[nodes]]
x = 2.0
y = 2.0
load = { x = 0.0, y = -10.0 }
loads = [{ case = "dead", x = 0.0, y = -10.0 }]

[[bars]]
start = 0
end = 1
name = "bottom"

[[bars]]
start = 1
end = 2

[[bars]]
start = 0
end = 2
area = 500.0
fy = 250.0
`)

	xlsxPath := filepath.Join(dir, "tri.xlsx")
	writeWorkbook(t, xlsxPath)

	for _, path := range []string{jsonPath, tomlPath, xlsxPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			tr, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile() error = %v", err)
			}
			if len(tr.Nodes) != 3 || len(tr.Bars) != 3 {
				t.Fatalf("got %d nodes, %d bars", len(tr.Nodes), len(tr.Bars))
			}
			if tr.Nodes[0].Support != Pin || tr.Nodes[1].Support != RollerNoYDisp {
				t.Errorf("supports = %q, %q", tr.Nodes[0].Support, tr.Nodes[1].Support)
			}
			if tr.Nodes[2].Load.Y != -10 {
				t.Errorf("apex load = %v", tr.Nodes[2].Load)
			}
			if len(tr.Nodes[2].Loads) != 1 || tr.Nodes[2].Loads[0].Case != "dead" {
				t.Errorf("case loads = %+v", tr.Nodes[2].Loads)
			}
			if tr.Bars[0].Label() != "bottom" || tr.Bars[1].Label() != "B1" {
				t.Errorf("bar labels = %s, %s", tr.Bars[0].Label(), tr.Bars[1].Label())
			}
			if !tr.Bars[2].HasSection() {
				t.Error("bar 2 should carry section data")
			}
			if len(tr.Nodes[2].Bars) != 2 {
				t.Errorf("incidence not built: %v", tr.Nodes[2].Bars)
			}
		})
	}

	if _, err := LoadFromFile(filepath.Join(dir, "tri.yaml")); err == nil {
		t.Error("unsupported extension should fail")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][]any{
		SheetNodes: {
			{"name", "x", "y", "support", "load_x", "load_y"},
			{"", 0, 0, "pin"},
			{"", 4, 0, "roller_no_ydisp"},
			{"", 2, 2, "", 0, -10},
		},
		SheetBars: {
			{"name", "start", "end", "area", "radius", "fy", "e", "k"},
			{"bottom", 0, 1},
			{"", 1, 2},
			{"", 0, 2, 500, "", 250},
		},
		SheetLoads: {
			{"node", "case", "x", "y"},
			{2, "dead", 0, -10},
		},
	}
	for _, name := range []string{SheetNodes, SheetBars, SheetLoads} {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatal(err)
		}
		for r, row := range sheets[name] {
			for c, v := range row {
				cellName, _ := excelize.CoordinatesToCellName(c+1, r+1)
				if err := f.SetCellValue(name, cellName, v); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func nearVec(a, b geometry.Vector) bool {
	return a.Sub(b).Norm() < 1e-9
}
