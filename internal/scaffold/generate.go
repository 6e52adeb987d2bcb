package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benwilkes9/ealog/internal/config"
)

// GenerateResult tracks which files were created or skipped.
type GenerateResult struct {
	Created []string
	Skipped []string
}

// Generate writes ealog.yaml into dir from the answers, skipping an existing
// file, and appends the output directory to .gitignore when asked.
func Generate(dir string, a *Answers) (*GenerateResult, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	result := &GenerateResult{}

	configPath := filepath.Join(dir, config.DefaultPath)
	if fileExists(configPath) {
		result.Skipped = append(result.Skipped, config.DefaultPath)
	} else {
		data, err := a.Config().Marshal()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return nil, fmt.Errorf("writing %s: %w", config.DefaultPath, err)
		}
		result.Created = append(result.Created, config.DefaultPath)
	}

	if a.Ignore {
		entry := strings.TrimSuffix(filepath.ToSlash(filepath.Clean(a.OutputDir)), "/") + "/"
		if err := appendGitignore(dir, []string{entry}, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func appendGitignore(dir string, entries []string, result *GenerateResult) error {
	gitignorePath := filepath.Join(dir, ".gitignore")

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}

	var toAdd []string
	for _, entry := range entries {
		if !containsLine(existing, entry) {
			toAdd = append(toAdd, entry)
		}
	}

	if len(toAdd) == 0 {
		return nil
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening .gitignore: %w", err)
	}
	defer f.Close() //nolint:errcheck // best-effort close on append

	if existing != "" && !strings.HasSuffix(existing, "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("writing to .gitignore: %w", err)
		}
	}

	for _, entry := range toAdd {
		if _, err := fmt.Fprintln(f, entry); err != nil {
			return fmt.Errorf("writing to .gitignore: %w", err)
		}
	}

	result.Created = append(result.Created, ".gitignore (appended)")
	return nil
}

func containsLine(content, line string) bool {
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) == strings.TrimSpace(line) {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// PrintSummary displays which files were created and skipped.
func PrintSummary(w io.Writer, result *GenerateResult) {
	printLine(w, "")
	for _, f := range result.Created {
		printLine(w, "  created  "+f)
	}
	for _, f := range result.Skipped {
		printLine(w, "  exists   "+f)
	}
	printLine(w, "")
	printLine(w, "Next steps:")
	printLine(w, "  1. Review "+config.DefaultPath)
	printLine(w, "  2. Run: ealog run")
	printLine(w, "  3. Inspect: ealog status <run-dir>")
}

func printLine(w io.Writer, s string) {
	fmt.Fprintln(w, s) //nolint:errcheck // display-only
}
