package monitor

const bytesPerMB = 1024 * 1024

// NormalizeMaxRSS converts a getrusage ru_maxrss value to megabytes.
// Darwin and iOS report bytes; Linux and the BSDs report kilobytes.
func NormalizeMaxRSS(raw int64, goos string) float64 {
	switch goos {
	case "darwin", "ios":
		return float64(raw) / bytesPerMB
	default:
		return float64(raw) * 1024 / bytesPerMB
	}
}
