// Package report writes analysis results to PDF and XLSX files.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gotruss/internal/analysis"
	"github.com/alexiusacademia/gotruss/internal/version"
)

type column struct {
	title string
	width float64
	align string
}

// WritePDF writes a one-run calculation report to path
func WritePDF(rep *analysis.Report, path string) error {
	if err := mkdirFor(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderPDF(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderPDF writes a one-run calculation report to w
func RenderPDF(w io.Writer, rep *analysis.Report) error {
	t := rep.Truss
	unit, length := t.ForceUnit(), t.LengthUnit()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Truss analysis: "+t.Name, true)
	pdf.SetCreator("gotruss "+version.Version, true)
	pdf.AliasNbPages("{nb}")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Run %s  |  Page %d/{nb}", rep.ID, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Truss Analysis - Method of Joints")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	info := [][2]string{
		{"Truss", t.Name},
		{"Date", rep.Started.Format(time.DateTime)},
		{"Units", fmt.Sprintf("%s, %s", unit, length)},
		{"Loads", loadsLabel(rep)},
		{"Determinacy", rep.Determinacy.String()},
		{"Outcome", fmt.Sprintf("%s after %d pass(es)", rep.Result.Outcome, rep.Result.Passes)},
		{"Max residual", fmt.Sprintf("%.3g %s at node %d (tolerance %.0e)", rep.MaxResidual, unit, rep.WorstNode, rep.Tolerance)},
	}
	if t.Description != "" {
		info = append(info[:1], append([][2]string{{"Description", t.Description}}, info[1:]...)...)
	}
	for _, kv := range info {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, kv[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, kv[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Support Reactions")
	cols := []column{{"Node", 30, "L"}, {"Support", 40, "L"}, {"Rx (" + unit + ")", 35, "R"}, {"Ry (" + unit + ")", 35, "R"}}
	header(pdf, cols)
	for _, r := range rep.Reactions {
		row(pdf, cols, r.Label, string(r.Support), fmt.Sprintf("%.3f", r.Force.X), fmt.Sprintf("%.3f", r.Force.Y))
	}
	pdf.Ln(4)

	section(pdf, "Member Forces")
	cols = []column{
		{"Bar", 18, "L"}, {"Start", 16, "L"}, {"End", 16, "L"}, {"L (" + length + ")", 22, "R"},
		{"Force (" + unit + ")", 28, "R"}, {"State", 26, "L"}, {"Util.", 18, "R"}, {"Check", 46, "L"},
	}
	header(pdf, cols)
	for _, m := range rep.Members {
		util, msg := "-", "-"
		if m.Check != nil {
			util = fmt.Sprintf("%.3f", m.Check.Utilization)
			msg = m.Check.Message
		}
		force := "-"
		if m.State != analysis.Unresolved {
			force = fmt.Sprintf("%.3f", m.Force)
		}
		if m.State == analysis.Compression {
			pdf.SetTextColor(200, 40, 40)
		} else if m.State == analysis.Tension {
			pdf.SetTextColor(30, 90, 200)
		}
		row(pdf, cols, m.Label, t.Nodes[m.Start].Label(), t.Nodes[m.End].Label(),
			fmt.Sprintf("%.3f", m.Length), force, m.State.String(), util, msg)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	counts := analysis.Count(rep.Members)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("%d tension, %d compression, %d zero-force, %d unresolved. Tension is positive.",
		counts[analysis.Tension], counts[analysis.Compression], counts[analysis.ZeroForce], counts[analysis.Unresolved]),
		"", "L", false)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func loadsLabel(rep *analysis.Report) string {
	if rep.Combination == nil {
		return "direct nodal loads"
	}
	return fmt.Sprintf("NSCP 2015 combination %s: %s", rep.Combination.ID, rep.Combination.Description)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func header(pdf *gofpdf.Fpdf, cols []column) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(221, 235, 247)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
}

func row(pdf *gofpdf.Fpdf, cols []column, values ...string) {
	for i, c := range cols {
		pdf.CellFormat(c.width, 6, values[i], "1", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)
}

func mkdirFor(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}
