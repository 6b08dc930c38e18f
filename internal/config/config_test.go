package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// clearEnv blanks every variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvTolerance, EnvLogLevel, EnvOutputDir, EnvForceUnit, EnvLengthUnit} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("FromEnv() = %+v, want %+v", cfg, Default())
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(Config) bool
		wantErr string
	}{
		{
			name:  "tolerance",
			env:   map[string]string{EnvTolerance: "1e-4"},
			check: func(c Config) bool { return c.Tolerance == 1e-4 },
		},
		{
			name:  "log level is case insensitive",
			env:   map[string]string{EnvLogLevel: "DEBUG"},
			check: func(c Config) bool { return c.LogLevel == log.DebugLevel },
		},
		{
			name: "units and output",
			env:  map[string]string{EnvForceUnit: "kip", EnvLengthUnit: "ft", EnvOutputDir: "out"},
			check: func(c Config) bool {
				return c.ForceUnit == "kip" && c.LengthUnit == "ft" && c.OutputDir == "out"
			},
		},
		{
			name:    "bad tolerance",
			env:     map[string]string{EnvTolerance: "tiny"},
			wantErr: EnvTolerance,
		},
		{
			name:    "negative tolerance",
			env:     map[string]string{EnvTolerance: "-1"},
			wantErr: EnvTolerance,
		},
		{
			name:    "bad level",
			env:     map[string]string{EnvLogLevel: "loud"},
			wantErr: EnvLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := FromEnv()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("FromEnv() error = %v, want mention of %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromEnv() error = %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("FromEnv() = %+v", cfg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are set, even blank ones
	os.Unsetenv(EnvForceUnit)
	os.Unsetenv(EnvTolerance)

	dir := t.TempDir()
	path := filepath.Join(dir, "gotruss.env")
	content := EnvForceUnit + "=lbf\n" + EnvTolerance + "=0.001\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvForceUnit)
		os.Unsetenv(EnvTolerance)
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ForceUnit != "lbf" || cfg.Tolerance != 0.001 {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Load() of a named missing file should fail")
	}

	// The default file is optional
	t.Chdir(t.TempDir())
	if _, err := Load(""); err != nil {
		t.Errorf("Load(\"\") error = %v", err)
	}
}
