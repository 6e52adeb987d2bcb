package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benwilkes9/ealog/internal/config"
)

func TestGenerate_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	a := &Answers{Subpopulations: 4, Updates: 500, OutputDir: "runs", Ignore: true}

	result, err := Generate(dir, a)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.DefaultPath))
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Population.Subpopulations != 4 {
		t.Errorf("Subpopulations = %d, want 4", cfg.Population.Subpopulations)
	}
	if cfg.Updates != 500 {
		t.Errorf("Updates = %d, want 500", cfg.Updates)
	}

	if len(result.Created) != 2 {
		t.Errorf("Created = %v, want config and .gitignore", result.Created)
	}
}

func TestGenerate_SkipsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultPath)
	original := "updates: 7\n"
	if err := os.WriteFile(path, []byte(original), 0o600); err != nil {
		t.Fatal(err)
	}

	result, err := Generate(dir, &Answers{Updates: 100, OutputDir: "runs"})
	if err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != original {
		t.Errorf("existing config was overwritten: %q", content)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != config.DefaultPath {
		t.Errorf("Skipped = %v", result.Skipped)
	}
}

func TestGenerate_GitignoreIdempotent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("node_modules/"), 0o600); err != nil {
		t.Fatal(err)
	}
	a := &Answers{Updates: 100, OutputDir: "runs/", Ignore: true}

	if _, err := Generate(dir, a); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(dir, a); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(content)
	if !strings.HasPrefix(s, "node_modules/\nruns/\n") {
		t.Errorf("unexpected .gitignore:\n%s", s)
	}
	if strings.Count(s, "runs/") != 1 {
		t.Errorf("runs/ appended more than once:\n%s", s)
	}
}

func TestGenerate_NoGitignoreWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	if _, err := Generate(dir, &Answers{Updates: 100, OutputDir: "runs"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".gitignore")); !os.IsNotExist(err) {
		t.Errorf("expected no .gitignore, stat err = %v", err)
	}
}

func TestGenerate_InvalidAnswers(t *testing.T) {
	_, err := Generate(t.TempDir(), &Answers{Updates: 100, OutputDir: "/abs"})
	if err == nil {
		t.Fatal("expected error for absolute output dir")
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, &GenerateResult{
		Created: []string{config.DefaultPath},
		Skipped: []string{".gitignore"},
	})
	out := buf.String()

	for _, want := range []string{"created  ealog.yaml", "exists   .gitignore", "ealog run"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
