package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/analysis"
	"github.com/alexiusacademia/gotruss/internal/diagram"
	"github.com/alexiusacademia/gotruss/internal/nscp"
	"github.com/alexiusacademia/gotruss/internal/report"
	"github.com/alexiusacademia/gotruss/internal/truss"
)

func runEnvelope(cmd *cobra.Command, t *truss.Truss, combinations []nscp.LoadCombination, opts analysis.Options) error {
	logger := loggerFromContext(cmd.Context())
	unit := t.ForceUnit()

	prog := newProgress(logger)
	env, err := analysis.Envelope(t, combinations, opts)
	if err != nil {
		printFailure(err)
		return err
	}
	prog.done(fmt.Sprintf("Solved %d combination(s)", len(env.Runs)))

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 MEMBER FORCE ENVELOPE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Truss: %s\n", t.Name)
	fmt.Println()

	fmt.Println("LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tPasses\tMax residual\n")
	fmt.Fprintf(w, "  ─\t───────────\t──────\t────────────\n")
	for _, rep := range env.Runs {
		fmt.Fprintf(w, "  %s\t%s\t%d\t%.2e\n", rep.Combination.ID, rep.Combination.Description,
			rep.Result.Passes, rep.MaxResidual)
	}
	for _, id := range env.Skipped {
		combo, _ := nscp.Find(combinations, id)
		fmt.Fprintf(w, "  %s\t%s\t%s\t\n", id, combo.Description, styleDim.Render("no load"))
	}
	w.Flush()
	fmt.Println()

	fmt.Printf("FORCE ENVELOPE (%s, + tension):\n", unit)
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Bar\tMax T\tCombo\tMax C\tCombo\tGoverning\n")
	fmt.Fprintf(w, "  ───\t─────\t─────\t─────\t─────\t─────────\n")
	for _, r := range env.Rows {
		fmt.Fprintf(w, "  %s\t%.3f\t%s\t%.3f\t%s\t%.3f (%s)\n", r.Label,
			r.MaxTension, dash(r.TensionCombo), r.MaxCompression, dash(r.CompressionCombo),
			r.Governing, r.GoverningCombo)
	}
	w.Flush()
	fmt.Println()

	for _, rep := range env.Runs {
		if !rep.Balanced() {
			printWarning("Combination %s does not close within tolerance", rep.Combination.ID)
		}
	}

	if solveShowChart {
		fmt.Print(diagram.DrawEnvelopeChart(env.Rows, unit))
		fmt.Println()
	}

	if solveXLSXFile != "" {
		path := outputPath(solveXLSXFile)
		if err := report.WriteEnvelopeXLSX(env, unit, path); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		printFile(path)
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
