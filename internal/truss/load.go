package truss

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xuri/excelize/v2"
)

// LoadFromFile loads a truss definition from a JSON, TOML or XLSX file
// and validates it
func LoadFromFile(path string) (*Truss, error) {
	var (
		t   *Truss
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		t, err = loadJSON(path)
	case ".toml":
		t, err = loadTOML(path)
	case ".xlsx":
		t, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported truss file type %q (use .json, .toml or .xlsx)", ext)
	}
	if err != nil {
		return nil, err
	}

	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func loadJSON(path string) (*Truss, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Truss
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &t, nil
}

func loadTOML(path string) (*Truss, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Truss
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &t, nil
}

// Workbook sheet names used by the XLSX format
const (
	SheetNodes = "nodes"
	SheetBars  = "bars"
	SheetLoads = "loads"
)

// loadXLSX reads a workbook with a "nodes" sheet
// (name, x, y, support, load_x, load_y), a "bars" sheet
// (name, start, end, area, radius, fy, e, k) and an optional "loads" sheet
// (node, case, x, y). The first row of each sheet is a header.
func loadXLSX(path string) (*Truss, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := &Truss{}

	rows, err := f.GetRows(SheetNodes)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", SheetNodes, err)
	}
	for i, row := range dataRows(rows) {
		var n Node
		n.Name = cell(row, 0)
		if n.X, err = floatCell(row, 1); err != nil {
			return nil, rowError(SheetNodes, i, "x", err)
		}
		if n.Y, err = floatCell(row, 2); err != nil {
			return nil, rowError(SheetNodes, i, "y", err)
		}
		n.Support = Support(strings.ToLower(cell(row, 3)))
		if n.Load.X, err = floatCell(row, 4); err != nil {
			return nil, rowError(SheetNodes, i, "load_x", err)
		}
		if n.Load.Y, err = floatCell(row, 5); err != nil {
			return nil, rowError(SheetNodes, i, "load_y", err)
		}
		t.Nodes = append(t.Nodes, n)
	}

	rows, err = f.GetRows(SheetBars)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", SheetBars, err)
	}
	for i, row := range dataRows(rows) {
		var b Bar
		b.Name = cell(row, 0)
		if b.Start, err = intCell(row, 1); err != nil {
			return nil, rowError(SheetBars, i, "start", err)
		}
		if b.End, err = intCell(row, 2); err != nil {
			return nil, rowError(SheetBars, i, "end", err)
		}
		props := []*float64{&b.Area, &b.Radius, &b.Fy, &b.E, &b.K}
		for j, p := range props {
			if *p, err = floatCell(row, 3+j); err != nil {
				return nil, rowError(SheetBars, i, "section", err)
			}
		}
		t.Bars = append(t.Bars, b)
	}

	if idx, _ := f.GetSheetIndex(SheetLoads); idx >= 0 {
		rows, err = f.GetRows(SheetLoads)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", SheetLoads, err)
		}
		for i, row := range dataRows(rows) {
			node, err := intCell(row, 0)
			if err != nil {
				return nil, rowError(SheetLoads, i, "node", err)
			}
			if node < 0 || node >= len(t.Nodes) {
				return nil, rowError(SheetLoads, i, "node", fmt.Errorf("no node %d", node))
			}
			l := CaseLoad{Case: cell(row, 1)}
			if l.X, err = floatCell(row, 2); err != nil {
				return nil, rowError(SheetLoads, i, "x", err)
			}
			if l.Y, err = floatCell(row, 3); err != nil {
				return nil, rowError(SheetLoads, i, "y", err)
			}
			t.Nodes[node].Loads = append(t.Nodes[node].Loads, l)
		}
	}

	return t, nil
}

// dataRows drops the header row and blank rows
func dataRows(rows [][]string) [][]string {
	if len(rows) < 2 {
		return nil
	}
	var out [][]string
	for _, row := range rows[1:] {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func floatCell(row []string, i int) (float64, error) {
	s := cell(row, i)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func intCell(row []string, i int) (int, error) {
	s := cell(row, i)
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.Atoi(s)
}

func rowError(sheet string, i int, column string, err error) error {
	// i counts data rows; +2 for the 1-based header row
	return &ValidationError{fmt.Sprintf("sheet %q row %d column %s: %v", sheet, i+2, column, err)}
}
