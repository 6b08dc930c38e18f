package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/diagram"
	"github.com/alexiusacademia/gotruss/internal/nscp"
)

var (
	// Unfactored load effects, in any consistent unit
	comboDead       float64
	comboLive       float64
	comboRoof       float64
	comboWind       float64
	comboEarthquake float64
	comboRain       float64

	comboSimplified bool
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "List NSCP load combinations and factor load effects",
	Long: `List the NSCP 2015 load combinations used by 'solve --combo' and
'solve --envelope'.

Given unfactored load effects (a nodal load, or a bar force from an
unfactored solve) the factored value of every combination is shown and
the governing one is marked.

Load Types:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  gotruss combos
  gotruss combos --dead 12 --live 8 --wind -6`,
	Run: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	combosCmd.Flags().Float64VarP(&comboDead, "dead", "d", 0, "Dead load effect")
	combosCmd.Flags().Float64VarP(&comboLive, "live", "l", 0, "Live load effect")
	combosCmd.Flags().Float64VarP(&comboRoof, "roof", "r", 0, "Roof live load effect")
	combosCmd.Flags().Float64VarP(&comboWind, "wind", "w", 0, "Wind load effect")
	combosCmd.Flags().Float64VarP(&comboEarthquake, "earthquake", "e", 0, "Earthquake load effect")
	combosCmd.Flags().Float64VarP(&comboRain, "rain", "R", 0, "Rain load effect")

	combosCmd.Flags().BoolVarP(&comboSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func runCombos(cmd *cobra.Command, args []string) {
	loads := nscp.LoadSet{
		Dead:       comboDead,
		Live:       comboLive,
		Roof:       comboRoof,
		Wind:       comboWind,
		Earthquake: comboEarthquake,
		Rain:       comboRain,
	}

	combinations := nscp.LoadCombinations
	if comboSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 LOAD COMBINATIONS (Section 203.3)")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if loads.IsZero() {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tD\tL\tLr\tW\tE\tR\tCombination\n")
		fmt.Fprintf(w, "  ─\t─\t─\t──\t─\t─\t─\t───────────\n")
		for _, combo := range combinations {
			fmt.Fprintf(w, "  %s\t", combo.ID)
			for _, c := range nscp.Cases {
				fmt.Fprintf(w, "%s\t", factorLabel(combo.Factor(c)))
			}
			fmt.Fprintf(w, "%s\n", combo.Description)
		}
		w.Flush()
		fmt.Println()
		fmt.Println("  Case names accepted in truss files:")
		for _, c := range nscp.Cases {
			fmt.Printf("    %s\n", c)
		}
		fmt.Println()
		return
	}

	fmt.Println("UNFACTORED LOAD EFFECTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, c := range nscp.Cases {
		if v := loads.Get(c); v != 0 {
			fmt.Fprintf(w, "  %s:\t%.2f\n", c, v)
		}
	}
	fmt.Fprintf(w, "  %s:\t%.2f\n", nscp.Unfactored.Description, nscp.Unfactored.Apply(loads))
	w.Flush()
	fmt.Println()

	governing, governingCombo := nscp.Governing(loads, combinations)

	fmt.Println("FACTORED LOAD EFFECTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tFactored\n")
	fmt.Fprintf(w, "  ─\t───────────\t────────\n")
	for _, combo := range combinations {
		marker := ""
		if combo.ID == governingCombo.ID {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", combo.ID, combo.Description, combo.Apply(loads), marker)
	}
	w.Flush()
	fmt.Println()

	fmt.Print(diagram.DrawSummaryBox("RESULT", []string{
		fmt.Sprintf("Governing Combination: %s (%s)", governingCombo.ID, governingCombo.Description),
		fmt.Sprintf("Factored Load Effect = %.2f", governing),
	}))
	fmt.Println()
}

// factorLabel formats a load factor, with "-" for cases the combination omits
func factorLabel(f float64) string {
	if f == 0 {
		return "-"
	}
	return fmt.Sprintf("%g", f)
}
