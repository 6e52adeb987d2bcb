package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benwilkes9/ealog/internal/datafile"
)

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
output_dir: out
updates: 50
population:
  size: 40
  subpopulations: 4
datafile:
  delimiter: ","
  no_sync: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "out")
	}
	if cfg.Updates != 50 {
		t.Errorf("Updates = %d, want 50", cfg.Updates)
	}
	if cfg.Population.Subpopulations != 4 {
		t.Errorf("Subpopulations = %d, want 4", cfg.Population.Subpopulations)
	}
	if cfg.Topology() != "islands" {
		t.Errorf("Topology = %q, want islands", cfg.Topology())
	}

	opts := cfg.DatafileOptions()
	if opts.Delimiter != "," || opts.Sync || opts.Precision != datafile.DefaultPrecision {
		t.Errorf("DatafileOptions = %+v", opts)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, "seed: 3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "runs" {
		t.Errorf("OutputDir = %q, want runs", cfg.OutputDir)
	}
	if cfg.Updates != 100 {
		t.Errorf("Updates = %d, want default 100", cfg.Updates)
	}
	if cfg.Seed != 3 {
		t.Errorf("Seed = %d, want 3", cfg.Seed)
	}
	if cfg.Population.MutationRate != 1.0/64 {
		t.Errorf("MutationRate = %v, want 1/64", cfg.Population.MutationRate)
	}
	if cfg.Topology() != "flat" {
		t.Errorf("Topology = %q, want flat", cfg.Topology())
	}
	if !cfg.DatafileOptions().Sync {
		t.Error("sync should default to on")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"negative updates", "updates: -1\n", "non-negative"},
		{"excessive updates", "updates: 999999999\n", "exceeds maximum"},
		{"negative stale", "stale_updates: -2\n", "non-negative"},
		{"negative subpopulations", "population:\n  subpopulations: -1\n", "non-negative"},
		{"mutation rate", "population:\n  mutation_rate: 2\n", "between 0 and 1"},
		{"precision", "datafile:\n  precision: 40\n", "between 0 and 17"},
		{"newline delimiter", "datafile:\n  delimiter: \"\\n\"\n", "datafile.delimiter"},
		{"underscore delimiter", "datafile:\n  delimiter: _\n", "datafile.delimiter"},
		{"dot delimiter", "datafile:\n  delimiter: .\n", "datafile.delimiter"},
		{"dash delimiter", "datafile:\n  delimiter: \"-\"\n", "datafile.delimiter"},
		{"unbounded without stale", "unbounded: true\n", "requires stale_updates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want mention of %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoad_AllowedDelimiters(t *testing.T) {
	for _, d := range []string{`" "`, `"  "`, `"\t"`, `","`, `";"`, `"|"`} {
		t.Run(d, func(t *testing.T) {
			if _, err := Load(writeConfig(t, "datafile:\n  delimiter: "+d+"\n")); err != nil {
				t.Errorf("delimiter %s rejected: %v", d, err)
			}
		})
	}
}

func TestMaxUpdates(t *testing.T) {
	cfg, err := Load(writeConfig(t, "updates: 0\nseed: 0\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxUpdates() != 100 || cfg.Seed != 1 {
		t.Errorf("zero values: MaxUpdates = %d, Seed = %d, want defaults 100 and 1", cfg.MaxUpdates(), cfg.Seed)
	}

	cfg, err = Load(writeConfig(t, "unbounded: true\nstale_updates: 20\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxUpdates() != 0 {
		t.Errorf("MaxUpdates = %d, want 0 when unbounded", cfg.MaxUpdates())
	}
}

func TestLoad_FileTooLarge(t *testing.T) {
	large := strings.Repeat("x", maxConfigSize+1)
	_, err := Load(writeConfig(t, large))
	if err == nil {
		t.Fatal("expected error for oversized config")
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("error = %q, want mention of too large", err.Error())
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, ":\n  bad:\nyaml: ["))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadOrDefault_Missing(t *testing.T) {
	cfg, found, err := LoadOrDefault(filepath.Join(t.TempDir(), DefaultPath))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("found = true for missing file")
	}
	if cfg.Updates != 100 {
		t.Errorf("Updates = %d, want default 100", cfg.Updates)
	}
}

func TestLoadOrDefault_InvalidIsError(t *testing.T) {
	_, _, err := LoadOrDefault(writeConfig(t, "updates: -5\n"))
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Subpopulations = 3

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
