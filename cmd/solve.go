package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/analysis"
	"github.com/alexiusacademia/gotruss/internal/diagram"
	"github.com/alexiusacademia/gotruss/internal/joints"
	"github.com/alexiusacademia/gotruss/internal/nscp"
	"github.com/alexiusacademia/gotruss/internal/report"
	"github.com/alexiusacademia/gotruss/internal/truss"
)

var (
	solveFile       string
	solveCombo      string
	solveEnvelope   bool
	solveSimplified bool
	solveTolerance  float64
	solveMaxPasses  int
	solveTrace      bool

	// Outputs
	solveShowDiagram bool
	solveShowChart   bool
	solveImageFile   string
	solveDOTFile     string
	solvePDFFile     string
	solveXLSXFile    string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve bar forces by the method of joints",
	Long: `Solve the support reactions and axial bar forces of a statically
determinate planar truss defined in a JSON, TOML or XLSX file.

The truss must have exactly one pin and one roller support. Forces are
positive in tension and negative in compression.

When nodes carry case loads (dead, live, roof, wind, earthquake, rain)
a single NSCP 2015 combination can be applied with --combo, or every
combination can be run with --envelope.

Examples:
  gotruss solve -f examples/pratt.json
  gotruss solve -f examples/pratt.json --diagram --chart
  gotruss solve -f examples/roof.toml --combo 4 --pdf roof.pdf
  gotruss solve -f examples/roof.toml --envelope --xlsx envelope.xlsx`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "Path to truss file (.json, .toml, .xlsx) [required]")
	solveCmd.MarkFlagRequired("file")

	// Loading
	solveCmd.Flags().StringVarP(&solveCombo, "combo", "c", "", "Apply the NSCP load combination with this ID")
	solveCmd.Flags().BoolVarP(&solveEnvelope, "envelope", "e", false, "Run every load combination and report the force envelope")
	solveCmd.Flags().BoolVarP(&solveSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")

	// Solver
	solveCmd.Flags().Float64Var(&solveTolerance, "tolerance", 0, "Equilibrium and zero-force tolerance (overrides GOTRUSS_TOLERANCE)")
	solveCmd.Flags().IntVar(&solveMaxPasses, "max-passes", 0, "Pass limit for the joint solver (default bars + 5)")
	solveCmd.Flags().BoolVar(&solveTrace, "trace", false, "Print the order in which bars were resolved")

	// Outputs
	solveCmd.Flags().BoolVar(&solveShowDiagram, "diagram", false, "Show ASCII truss sketch")
	solveCmd.Flags().BoolVar(&solveShowChart, "chart", false, "Show ASCII force chart")
	solveCmd.Flags().StringVarP(&solveImageFile, "output", "o", "", "Export truss diagram to file (png, svg, pdf)")
	solveCmd.Flags().StringVar(&solveDOTFile, "dot", "", "Export Graphviz topology as SVG")
	solveCmd.Flags().StringVar(&solvePDFFile, "pdf", "", "Write a PDF calculation report")
	solveCmd.Flags().StringVar(&solveXLSXFile, "xlsx", "", "Write results to an Excel workbook")

	solveCmd.MarkFlagsMutuallyExclusive("combo", "envelope")
}

func runSolve(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	t, err := loadTruss(solveFile)
	if err != nil {
		return err
	}

	opts := analysis.Options{
		Logger:    logger,
		Tolerance: cfg.Tolerance,
		MaxPasses: solveMaxPasses,
	}
	if solveTolerance > 0 {
		opts.Tolerance = solveTolerance
	}

	combinations := nscp.LoadCombinations
	if solveSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	if solveEnvelope {
		return runEnvelope(cmd, t, combinations, opts)
	}

	if solveCombo != "" {
		combo, err := nscp.Find(combinations, solveCombo)
		if err != nil {
			return err
		}
		opts.Combination = &combo
	}

	prog := newProgress(logger)
	rep, err := analysis.Run(t, opts)
	if err != nil {
		printFailure(err)
		return err
	}
	prog.done(fmt.Sprintf("Solved %d bars in %d pass(es)", len(t.Bars), rep.Result.Passes))

	printSolution(rep)

	data := diagram.FromReport(rep)
	if solveShowDiagram {
		fmt.Print(diagram.DrawTrussSketch(data))
		fmt.Println()
	}
	if solveShowChart {
		fmt.Print(diagram.DrawForceChart(data))
		fmt.Println()
	}

	return writeOutputs(cmd, rep, data)
}

// loadTruss reads the input file and fills missing units from the config
func loadTruss(path string) (*truss.Truss, error) {
	t, err := truss.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading truss: %w", err)
	}
	if t.Units.Force == "" {
		t.Units.Force = cfg.ForceUnit
	}
	if t.Units.Length == "" {
		t.Units.Length = cfg.LengthUnit
	}
	return t, nil
}

func printSolution(rep *analysis.Report) {
	t := rep.Truss
	unit, length := t.ForceUnit(), t.LengthUnit()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          PLANAR TRUSS ANALYSIS - METHOD OF JOINTS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Printf("  Truss: %s\n", t.Name)
	if t.Description != "" {
		fmt.Printf("  Description: %s\n", t.Description)
	}
	if rep.Combination != nil {
		fmt.Printf("  Load Combination: %s (%s)\n", rep.Combination.ID, rep.Combination.Description)
	}
	fmt.Printf("  Run: %s\n", styleDim.Render(rep.ID))
	fmt.Println()

	fmt.Println("GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Joints (j):\t%d\n", rep.Determinacy.Joints)
	fmt.Fprintf(w, "  Bars (b):\t%d\n", rep.Determinacy.Bars)
	fmt.Fprintf(w, "  Reactions (r):\t%d\n", rep.Determinacy.Reactions)
	fmt.Fprintf(w, "  Determinacy:\t%s\n", rep.Determinacy)
	w.Flush()
	fmt.Println()

	fmt.Printf("SUPPORT REACTIONS (%s):\n", unit)
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Node\tSupport\tRx\tRy\n")
	fmt.Fprintf(w, "  ────\t───────\t──\t──\n")
	for _, r := range rep.Reactions {
		fmt.Fprintf(w, "  %s\t%s\t%.3f\t%.3f\n", r.Label, r.Support, r.Force.X, r.Force.Y)
	}
	w.Flush()
	fmt.Println()

	fmt.Printf("MEMBER FORCES (%s, + tension):\n", unit)
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Bar\tNodes\tLength (%s)\tForce\tState\n", length)
	fmt.Fprintf(w, "  ───\t─────\t──────\t─────\t─────\n")
	for _, m := range rep.Members {
		force := "-"
		if m.State != analysis.Unresolved {
			force = fmt.Sprintf("%.3f", m.Force)
		}
		fmt.Fprintf(w, "  %s\t%s-%s\t%.3f\t%s\t%s\n", m.Label,
			t.Nodes[m.Start].Label(), t.Nodes[m.End].Label(), m.Length, force, stateLabel(m.State))
	}
	w.Flush()
	fmt.Println()

	if hasChecks(rep.Members) {
		fmt.Println("MEMBER CHECKS (NSCP 2015 Section 5):")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Bar\tStress (MPa)\tKL/r\tφPn (kN)\tRatio\tStatus\n")
		fmt.Fprintf(w, "  ───\t────────────\t────\t────────\t─────\t──────\n")
		for _, m := range rep.Members {
			if c := m.Check; c != nil {
				fmt.Fprintf(w, "  %s\t%.2f\t%.1f\t%.2f\t%.3f\t%s\n",
					m.Label, c.Stress, c.Slenderness, c.Capacity, c.Utilization, c.Message)
			}
		}
		w.Flush()
		fmt.Println()
	}

	if solveTrace {
		fmt.Println("RESOLUTION ORDER:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Pass\tJoint\tBar\tEquation\tForce\n")
		fmt.Fprintf(w, "  ────\t─────\t───\t────────\t─────\n")
		for _, s := range rep.Result.Steps {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%.3f\n",
				s.Pass, t.Nodes[s.Node].Label(), t.Bars[s.Bar].Label(), s.Equation, s.Force)
		}
		w.Flush()
		fmt.Println()
	}

	counts := analysis.Count(rep.Members)
	fmt.Print(diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("Outcome: %s after %d pass(es)", rep.Result.Outcome, rep.Result.Passes),
		fmt.Sprintf("Tension: %d   Compression: %d   Zero-force: %d",
			counts[analysis.Tension], counts[analysis.Compression], counts[analysis.ZeroForce]),
		fmt.Sprintf("Max residual: %.3g %s at %s", rep.MaxResidual, unit, t.Nodes[rep.WorstNode].Label()),
	}))
	fmt.Println()

	fmt.Println("STATUS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	switch {
	case !rep.Complete():
		printWarning("%d bar(s) unresolved: pass limit reached", counts[analysis.Unresolved])
	case !rep.Balanced():
		printWarning("Equilibrium closure exceeds tolerance %.0e", rep.Tolerance)
	default:
		printSuccess("All joints in equilibrium within %.0e %s", rep.Tolerance, unit)
	}
	if over := analysis.Overstressed(rep.Members); len(over) > 0 {
		labels := make([]string, len(over))
		for i, m := range over {
			labels[i] = m.Label
		}
		printError("Overstressed: %s", strings.Join(labels, ", "))
	}
	fmt.Println()
}

func stateLabel(s analysis.State) string {
	switch s {
	case analysis.Tension:
		return styleTension.Render(s.String())
	case analysis.Compression:
		return styleCompression.Render(s.String())
	}
	return styleDim.Render(s.String())
}

func hasChecks(ms []analysis.Member) bool {
	for _, m := range ms {
		if m.Check != nil {
			return true
		}
	}
	return false
}

// printFailure explains solver errors that carry joint details
func printFailure(err error) {
	var se *joints.StabilityError
	var ge *joints.GeometryError
	switch {
	case errors.As(err, &se):
		printError("No joint can be solved on pass %d", se.Pass)
		for _, b := range se.Blocked {
			fmt.Printf("      joint %d has %d unknown bars\n", b.Node, b.Unknowns)
		}
		for i, island := range se.Islands {
			fmt.Printf("      unresolved group %d: bars %v\n", i+1, island)
		}
	case errors.As(err, &ge):
		printError("Bars %d and %d meet in a straight line at joint %d", ge.Reference, ge.Target, ge.Node)
	}
}

func writeOutputs(cmd *cobra.Command, rep *analysis.Report, data diagram.TrussDiagramData) error {
	if solveImageFile != "" {
		path := outputPath(solveImageFile)
		if err := diagram.ExportTrussDiagram(data, path); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		printFile(path)
	}

	if solveDOTFile != "" {
		path := outputPath(solveDOTFile)
		svg, err := diagram.RenderSVG(cmd.Context(), diagram.ToDOT(data))
		if err != nil {
			return err
		}
		if err := writeFile(path, svg); err != nil {
			return err
		}
		printFile(path)
	}

	if solvePDFFile != "" {
		path := outputPath(solvePDFFile)
		if err := report.WritePDF(rep, path); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		printFile(path)
	}

	if solveXLSXFile != "" {
		path := outputPath(solveXLSXFile)
		if err := report.WriteXLSX(rep, path); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		printFile(path)
	}
	return nil
}
