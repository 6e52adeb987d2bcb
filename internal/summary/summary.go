// Package summary renders the end-of-run box.
package summary

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/benwilkes9/ealog/internal/console"
)

// Stats is everything the summary box shows.
type Stats struct {
	RunID        string
	Status       string
	Updates      int
	WallTime     time.Duration
	MeanSeconds  float64
	PeakMemoryMB float64
	BestFitness  float64
	RowsWritten  int
}

const innerWidth = 38

// PrintBox renders the final run summary box.
//
//nolint:errcheck // display-only writes to terminal
func PrintBox(w io.Writer, s *Stats) {
	fmt.Fprintln(w, "┌"+repeat("─", innerWidth)+"┐")
	fmt.Fprintln(w, "│         RUN SUMMARY                  │")
	fmt.Fprintln(w, "├"+repeat("─", innerWidth)+"┤")
	if s.RunID != "" {
		line(w, "Run", shortID(s.RunID))
	}
	if s.Status != "" {
		coloredLine(w, "Status", s.Status, StatusColor(s.Status))
	}
	line(w, "Updates", humanize.Comma(int64(s.Updates)))
	line(w, "Wall time", formatDuration(s.WallTime))
	line(w, "Mean update", fmt.Sprintf("%.4fs", s.MeanSeconds))
	line(w, "Peak memory", formatMemory(s.PeakMemoryMB))
	line(w, "Best fitness", formatFitness(s.BestFitness))
	if s.RowsWritten > 0 {
		line(w, "Rows written", humanize.Comma(int64(s.RowsWritten)))
	}
	fmt.Fprintln(w, "└"+repeat("─", innerWidth)+"┘")
}

// StatusColor picks the console color used for a run status.
func StatusColor(status string) string {
	switch status {
	case "max_updates":
		return console.BoldGreen
	case "stagnated":
		return console.BoldYellow
	default:
		return console.BoldRed
	}
}

//nolint:errcheck // display-only writes to terminal
func line(w io.Writer, label, value string) {
	fmt.Fprintf(w, "│  %-15s%-21s│\n", label, value)
}

// coloredLine pads value before styling it so the escape codes do not count
// toward the column width.
//
//nolint:errcheck // display-only writes to terminal
func coloredLine(w io.Writer, label, value, color string) {
	fmt.Fprintf(w, "│  %-15s%s%-21s%s│\n", label, color, value, console.Reset)
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}

func formatMemory(mb float64) string {
	if mb <= 0 {
		return "n/a"
	}
	return humanize.IBytes(uint64(mb * 1024 * 1024))
}

func formatFitness(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", f)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for range n {
		out = append(out, s...)
	}
	return string(out)
}
