//go:build unix

package monitor

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// PeakMemory returns the peak resident set size of the process in megabytes.
func PeakMemory() (float64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, fmt.Errorf("getrusage: %w", err)
	}
	return NormalizeMaxRSS(int64(ru.Maxrss), runtime.GOOS), nil //nolint:unconvert // Maxrss is int32 on some platforms
}
