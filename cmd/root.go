package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/config"
	"github.com/alexiusacademia/gotruss/internal/version"
)

var (
	verbose bool
	envFile string
	outDir  string

	// cfg is loaded before any subcommand runs
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gotruss",
	Short: "Planar Truss Analysis Tool",
	Long: `gotruss - Go Planar Truss Solver

A CLI tool for the analysis of statically determinate planar trusses
by the method of joints.

This tool helps structural engineers perform:
  - Determinacy and stability checks (b + r = 2j)
  - Support reactions for a pin and roller
  - Bar forces by joint-by-joint equilibrium
  - NSCP 2015 load combinations and force envelopes
  - Steel member axial capacity checks

Tension is positive, compression is negative.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(envFile)
		if err != nil {
			return err
		}
		cfg = loaded
		if outDir != "" {
			cfg.OutputDir = outDir
		}

		level := cfg.LogLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gotruss v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Planar Truss Solver                                  ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the analysis of statically determinate")
		fmt.Println("  planar trusses by the method of joints.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Bar forces from JSON, TOML or XLSX truss definitions")
		fmt.Println("    • NSCP 2015 load combinations and force envelopes")
		fmt.Println("    • Steel member axial capacity checks")
		fmt.Println("    • ASCII sketches, images, Graphviz, PDF and XLSX reports")
		fmt.Println()
		fmt.Println("  Use 'gotruss --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to a .env file (default .env if present)")
	rootCmd.PersistentFlags().StringVar(&outDir, "out-dir", "", "Directory for relative output paths (overrides GOTRUSS_OUTPUT_DIR)")
}

// outputPath places relative output files under the configured directory
func outputPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.OutputDir, name)
}
