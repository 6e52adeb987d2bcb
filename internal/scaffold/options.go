package scaffold

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

const customSentinel = "_custom_"

const islandsPrefix = "islands-"

// option creates a huh select option with a multiline key showing
// the value and a description underneath.
func option(value, description string) huh.Option[string] {
	key := fmt.Sprintf("%s\n    %s", value, description)
	return huh.NewOption(key, value)
}

// customOption returns the "Type something." sentinel option.
func customOption() huh.Option[string] {
	return huh.NewOption("Type something.", customSentinel)
}

// topologyOptions returns the population layouts offered by init.
func topologyOptions() []huh.Option[string] {
	return []huh.Option[string]{
		option("flat", "One population; writes fitness.dat"),
		option(islandsPrefix+"4", "Four islands; writes sub-population and metapopulation files"),
		option(islandsPrefix+"8", "Eight islands; writes sub-population and metapopulation files"),
		customOption(),
	}
}

// updatesOptions returns suggested run lengths.
func updatesOptions() []huh.Option[string] {
	return []huh.Option[string]{
		option("100", "Quick smoke run"),
		option("1000", "Typical experiment"),
		option("10000", "Long run; stagnation detection usually stops it first"),
		customOption(),
	}
}

// outputDirOptions returns suggested data directories.
func outputDirOptions() []huh.Option[string] {
	return []huh.Option[string]{
		option("runs", "One sub-directory per run ID"),
		option("data", "Alternative location"),
		customOption(),
	}
}

// parseTopology maps a topology choice to a sub-population count; 0 is flat.
// A bare integer is accepted for custom input.
func parseTopology(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == "flat" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(v, islandsPrefix))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid topology %q: want flat or a number of islands", v)
	}
	if n == 1 {
		return 0, nil
	}
	return n, nil
}

// parseUpdates validates a run length choice.
func parseUpdates(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid updates %q: want a positive integer", v)
	}
	return n, nil
}
