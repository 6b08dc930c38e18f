package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gotruss/internal/analysis"
)

// Sheet names of the result workbook
const (
	SheetMembers   = "Members"
	SheetReactions = "Reactions"
	SheetJoints    = "Joints"
	SheetTrace     = "Trace"
	SheetEnvelope  = "Envelope"
)

// WriteXLSX writes the results of one run to a workbook with Members,
// Reactions, Joints and Trace sheets
func WriteXLSX(rep *analysis.Report, path string) error {
	t := rep.Truss
	unit := t.ForceUnit()

	f := excelize.NewFile()
	defer f.Close()

	w, err := newWorkbook(f, SheetMembers, SheetReactions, SheetJoints, SheetTrace)
	if err != nil {
		return err
	}

	w.header(SheetMembers, "Bar", "Start", "End", "Length ("+t.LengthUnit()+")",
		"Force ("+unit+")", "State", "Stress (MPa)", "KL/r", "Capacity ("+unit+")", "Utilization", "Check")
	for _, m := range rep.Members {
		values := []interface{}{m.Label, t.Nodes[m.Start].Label(), t.Nodes[m.End].Label(), m.Length}
		if m.State == analysis.Unresolved {
			values = append(values, nil)
		} else {
			values = append(values, m.Force)
		}
		values = append(values, m.State.String())
		if c := m.Check; c != nil {
			values = append(values, c.Stress, c.Slenderness, c.Capacity, c.Utilization, c.Message)
		}
		w.row(SheetMembers, values...)
	}

	w.header(SheetReactions, "Node", "Support", "Rx ("+unit+")", "Ry ("+unit+")")
	for _, r := range rep.Reactions {
		w.row(SheetReactions, r.Label, string(r.Support), r.Force.X, r.Force.Y)
	}

	w.header(SheetJoints, "Node", "X", "Y", "Support", "Load X", "Load Y", "Residual X", "Residual Y")
	for i := range t.Nodes {
		n := &t.Nodes[i]
		res := rep.Residuals[i].Force
		w.row(SheetJoints, n.Label(), n.X, n.Y, string(n.Support), n.Load.X, n.Load.Y, res.X, res.Y)
	}

	w.header(SheetTrace, "Pass", "Node", "Bar", "Equation", "Force ("+unit+")")
	for _, s := range rep.Result.Steps {
		w.row(SheetTrace, s.Pass, t.Nodes[s.Node].Label(), t.Bars[s.Bar].Label(), string(s.Equation), s.Force)
	}

	if w.err != nil {
		return w.err
	}
	if err := mkdirFor(path); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// WriteEnvelopeXLSX writes the force envelope over a set of combinations
func WriteEnvelopeXLSX(env *analysis.EnvelopeReport, unit, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	w, err := newWorkbook(f, SheetEnvelope)
	if err != nil {
		return err
	}

	w.header(SheetEnvelope, "Bar", "Max tension ("+unit+")", "Combination",
		"Max compression ("+unit+")", "Combination", "Governing ("+unit+")", "Combination")
	for _, r := range env.Rows {
		w.row(SheetEnvelope, r.Label, r.MaxTension, r.TensionCombo,
			r.MaxCompression, r.CompressionCombo, r.Governing, r.GoverningCombo)
	}

	if w.err != nil {
		return w.err
	}
	if err := mkdirFor(path); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// workbook appends rows to sheets and keeps the first error
type workbook struct {
	f           *excelize.File
	next        map[string]int
	headerStyle int
	err         error
}

// newWorkbook renames the default sheet to the first name and adds the rest
func newWorkbook(f *excelize.File, sheets ...string) (*workbook, error) {
	if err := f.SetSheetName("Sheet1", sheets[0]); err != nil {
		return nil, err
	}
	for _, s := range sheets[1:] {
		if _, err := f.NewSheet(s); err != nil {
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	return &workbook{f: f, next: make(map[string]int), headerStyle: style}, nil
}

func (w *workbook) header(sheet string, titles ...string) {
	if w.err != nil {
		return
	}
	values := make([]interface{}, len(titles))
	for i, t := range titles {
		values[i] = t
	}
	w.row(sheet, values...)

	last, err := excelize.CoordinatesToCellName(len(titles), 1)
	if err != nil {
		w.err = err
		return
	}
	lastCol := last[:len(last)-1]
	if err := w.f.SetCellStyle(sheet, "A1", last, w.headerStyle); err != nil {
		w.err = err
		return
	}
	if err := w.f.SetColWidth(sheet, "A", lastCol, 14); err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func (w *workbook) row(sheet string, values ...interface{}) {
	if w.err != nil {
		return
	}
	w.next[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, w.next[sheet])
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("sheet %s row %d: %w", sheet, w.next[sheet], err)
	}
}
