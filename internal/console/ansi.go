// Package console holds the ANSI styling shared by the run header, status
// and summary renderers.
package console

// ANSI escape codes
const (
	Reset      = "\033[0m"
	Bold       = "\033[1m"
	Dim        = "\033[2m"
	White      = "\033[37m"
	Green      = "\033[32m"
	Red        = "\033[31m"
	Yellow     = "\033[33m"
	Cyan       = "\033[36m"
	Magenta    = "\033[35m"
	BoldCyan   = "\033[1;36m"
	BoldRed    = "\033[1;31m"
	BoldWhite  = "\033[1;37m"
	BoldGreen  = "\033[1;32m"
	BoldYellow = "\033[1;33m"
	BoldBlue   = "\033[1;34m"
)

// Bar is the horizontal rule drawn around the run header.
const Bar = BoldBlue + "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━" + Reset
