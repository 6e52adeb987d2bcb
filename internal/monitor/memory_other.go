//go:build !unix

package monitor

import "runtime"

// PeakMemory returns the memory obtained from the OS by the Go runtime in
// megabytes. Platforms without getrusage have no peak resident set size.
func PeakMemory() (float64, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return float64(ms.Sys) / bytesPerMB, nil
}
