package loop

import (
	"fmt"
	"io"

	"github.com/benwilkes9/ealog/internal/console"
)

// RenderHeader prints the configuration bar at the start of a run.
//
//nolint:errcheck // display-only writes to terminal
func RenderHeader(w io.Writer, opts *Options) {
	fmt.Fprintln(w, console.Bar)
	if opts.Topology != "" {
		fmt.Fprintf(w, "  %sTopology%s %s%s%s\n", console.Dim, console.Reset, topologyColor(opts.Topology), opts.Topology, console.Reset)
	}
	if opts.RunDir != "" {
		fmt.Fprintf(w, "  %sOutput%s   %s%s%s\n", console.Dim, console.Reset, console.White, opts.RunDir, console.Reset)
	}
	if opts.MaxUpdates > 0 {
		fmt.Fprintf(w, "  %sMax%s      %s%d updates%s\n", console.Dim, console.Reset, console.White, opts.MaxUpdates, console.Reset)
	}
	if opts.MaxStale > 0 {
		fmt.Fprintf(w, "  %sStale%s    %s%d updates%s\n", console.Dim, console.Reset, console.White, opts.MaxStale, console.Reset)
	}
	fmt.Fprintln(w, console.Bar)
}

// RenderStaleWarning prints a warning when the run is one update from stagnating.
//
//nolint:errcheck // display-only writes to terminal
func RenderStaleWarning(w io.Writer, count, threshold int) {
	fmt.Fprintf(w, "%sNo fitness improvement%s %s(stale: %d/%d)%s\n",
		console.BoldYellow, console.Reset, console.Dim, count, threshold, console.Reset)
}

// RenderStaleAbort prints the stop message when the stale threshold is reached.
//
//nolint:errcheck // display-only writes to terminal
func RenderStaleAbort(w io.Writer, threshold int) {
	fmt.Fprintf(w, "%sStagnation detected:%s %d consecutive updates without improvement. Stopping.\n",
		console.BoldRed, console.Reset, threshold)
}

// RenderMaxUpdates prints the max updates reached message.
//
//nolint:errcheck // display-only writes to terminal
func RenderMaxUpdates(w io.Writer, threshold int) {
	fmt.Fprintf(w, "%sReached max updates: %d%s\n", console.BoldYellow, threshold, console.Reset)
}

func topologyColor(topology string) string {
	if topology == "islands" {
		return console.BoldCyan
	}
	return console.BoldGreen
}
