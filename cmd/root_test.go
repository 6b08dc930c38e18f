package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexiusacademia/gotruss/internal/nscp"
)

// execute runs the command tree with args after restoring every flag to its
// default, since flag values live in package variables
func execute(t *testing.T, args ...string) error {
	t.Helper()
	reset := func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd)
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range rootCmd.Commands() {
		reset(c)
	}

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func example(name string) string {
	return filepath.Join("..", "examples", name)
}

func TestCheckCommand(t *testing.T) {
	if err := execute(t, "check", "-f", example("pratt.json")); err != nil {
		t.Fatalf("check error = %v", err)
	}
	if err := execute(t, "check", "-f", example("roof.toml"), "--combo", "2"); err != nil {
		t.Fatalf("check --combo error = %v", err)
	}
}

func TestSolveCommandOutputs(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "pratt.xlsx")
	pdf := filepath.Join(dir, "pratt.pdf")
	img := filepath.Join(dir, "pratt.svg")

	err := execute(t, "solve", "-f", example("pratt.json"),
		"--diagram", "--chart", "--trace",
		"--xlsx", xlsx, "--pdf", pdf, "-o", img)
	if err != nil {
		t.Fatalf("solve error = %v", err)
	}
	for _, p := range []string{xlsx, pdf, img} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing output %s: %v", p, err)
		}
	}
}

func TestSolveCommandRelativeOutputUsesOutDir(t *testing.T) {
	dir := t.TempDir()
	err := execute(t, "solve", "-f", example("pratt.json"), "--out-dir", dir, "--xlsx", "forces.xlsx")
	if err != nil {
		t.Fatalf("solve error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "forces.xlsx")); err != nil {
		t.Error(err)
	}
}

func TestSolveCommandCombinations(t *testing.T) {
	if err := execute(t, "solve", "-f", example("roof.toml"), "--combo", "4"); err != nil {
		t.Fatalf("solve --combo error = %v", err)
	}

	xlsx := filepath.Join(t.TempDir(), "envelope.xlsx")
	if err := execute(t, "solve", "-f", example("roof.toml"), "--envelope", "--chart", "--xlsx", xlsx); err != nil {
		t.Fatalf("solve --envelope error = %v", err)
	}
	if _, err := os.Stat(xlsx); err != nil {
		t.Error(err)
	}

	if err := execute(t, "solve", "-f", example("roof.toml"), "--simplified", "--combo", "5"); err == nil {
		t.Error("combination 5 is not in the simplified set")
	}
}

func TestSolveCommandErrors(t *testing.T) {
	if err := execute(t, "solve", "-f", "missing.json"); err == nil {
		t.Error("expected error for a missing file")
	}

	// A pin-roller triangle with one bar removed is unstable
	path := filepath.Join(t.TempDir(), "bad.json")
	content := `{"nodes":[{"x":0,"y":0,"support":"pin"},{"x":4,"y":0,"support":"roller_no_ydisp"},{"x":2,"y":2}],
"bars":[{"start":0,"end":1},{"start":1,"end":2}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "solve", "-f", path); err == nil {
		t.Error("expected error for an unstable truss")
	}

	if err := execute(t, "solve", "-f", path, "--combo", "1", "--envelope"); err == nil {
		t.Error("--combo and --envelope are mutually exclusive")
	}
}

func TestCombosCommand(t *testing.T) {
	if err := execute(t, "combos"); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "combos", "--dead", "10", "--wind=-12"); err != nil {
		t.Fatal(err)
	}
}

func TestEnvFileIsLoaded(t *testing.T) {
	t.Setenv("GOTRUSS_TOLERANCE", "")
	os.Unsetenv("GOTRUSS_TOLERANCE")

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("GOTRUSS_TOLERANCE=0.01\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := execute(t, "--env", path, "check", "-f", example("pratt.json")); err != nil {
		t.Fatal(err)
	}
	if cfg.Tolerance != 0.01 {
		t.Errorf("tolerance = %v, want 0.01", cfg.Tolerance)
	}

	if err := execute(t, "--env", filepath.Join(t.TempDir(), "none.env"), "version"); err == nil {
		t.Error("a named missing env file should fail")
	}
}

func TestCombinationIDsAreUnique(t *testing.T) {
	for _, set := range [][]nscp.LoadCombination{nscp.LoadCombinations, nscp.SimplifiedCombinations} {
		seen := make(map[string]bool)
		for _, c := range set {
			if seen[c.ID] {
				t.Errorf("duplicate combination ID %s", c.ID)
			}
			seen[c.ID] = true
		}
	}
	if _, err := nscp.Find(nscp.LoadCombinations, "8"); err == nil {
		t.Error("Find should fail for an unknown ID")
	}
}

func TestFactorLabel(t *testing.T) {
	tests := map[float64]string{0: "-", 1.2: "1.2", 1: "1", 0.5: "0.5"}
	for f, want := range tests {
		if got := factorLabel(f); got != want {
			t.Errorf("factorLabel(%v) = %q, want %q", f, got, want)
		}
	}
}
