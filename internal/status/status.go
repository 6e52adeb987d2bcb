// Package status inspects the data files of a finished or running run.
package status

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benwilkes9/ealog/internal/console"
	"github.com/benwilkes9/ealog/internal/datafile"
	"github.com/benwilkes9/ealog/internal/report"
)

// KnownFiles lists the data files a run may produce, in display order.
var KnownFiles = []string{
	report.FitnessFile,
	report.SubpopulationFitnessFile,
	report.MetapopulationFitnessFile,
}

// FileStatus describes one data file.
type FileStatus struct {
	Name    string
	Columns []string
	Rows    int
	// Last is the final row keyed by column; nil when the file has no rows.
	Last map[string]string
}

// LastUpdate returns the update column of the final row.
func (s *FileStatus) LastUpdate() string {
	if s.Last == nil || len(s.Columns) == 0 {
		return ""
	}
	return s.Last[s.Columns[0]]
}

// Collect reads every known data file present in runDir. Missing files are
// skipped; a missing runDir is an error.
func Collect(runDir, delim string) ([]FileStatus, error) {
	info, err := os.Stat(runDir)
	if err != nil {
		return nil, fmt.Errorf("reading run dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("run dir %s is not a directory", runDir)
	}

	var out []FileStatus
	for _, name := range KnownFiles {
		path := filepath.Join(runDir, name)
		t, err := datafile.ReadFile(path, delim)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		out = append(out, summarize(name, t))
	}
	return out, nil
}

func summarize(name string, t *datafile.Table) FileStatus {
	s := FileStatus{Name: name, Columns: t.Columns, Rows: len(t.Rows)}
	if len(t.Rows) > 0 {
		last := t.Rows[len(t.Rows)-1]
		s.Last = make(map[string]string, len(t.Columns))
		for i, c := range t.Columns {
			s.Last[c] = last[i]
		}
	}
	return s
}

// Render writes a formatted status summary to w.
//
//nolint:errcheck // display output, best-effort writes
func Render(w io.Writer, runDir string, statuses []FileStatus) {
	fmt.Fprintf(w, "Run: %s\n", runDir)

	if len(statuses) == 0 {
		fmt.Fprintf(w, "\n%sNo data files found.%s\n", console.Dim, console.Reset)
		return
	}

	for _, s := range statuses {
		fmt.Fprintf(w, "\n%s%s%s  %d columns, %d rows\n", console.BoldWhite, s.Name, console.Reset, len(s.Columns), s.Rows)
		if s.Last == nil {
			fmt.Fprintf(w, "  %s\u00b7%s no updates recorded\n", console.Dim, console.Reset)
			continue
		}
		fmt.Fprintf(w, "  %sLast update:%s %s\n", console.Dim, console.Reset, s.LastUpdate())
		for _, c := range s.Columns[1:] {
			if !strings.Contains(c, "fitness") {
				continue
			}
			fmt.Fprintf(w, "  %s\u2713%s %-24s %s\n", console.Green, console.Reset, c, s.Last[c])
		}
	}
}
