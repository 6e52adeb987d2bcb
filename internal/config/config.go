package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/benwilkes9/ealog/internal/datafile"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "ealog.yaml"

// Config holds the run configuration loaded from ealog.yaml.
//
// Zero numeric values mean "use the default": updates: 0 becomes 100 and
// seed: 0 becomes 1. To run without an update limit set unbounded: true,
// which needs stale_updates so the run can stop on its own.
type Config struct {
	OutputDir    string `yaml:"output_dir"`
	RunID        string `yaml:"run_id,omitempty"`
	Updates      int    `yaml:"updates"`
	Unbounded    bool   `yaml:"unbounded,omitempty"`
	StaleUpdates int    `yaml:"stale_updates,omitempty"`
	Seed         uint64 `yaml:"seed"`

	Population Population `yaml:"population"`
	Datafile   Datafile   `yaml:"datafile"`
	Reports    Reports    `yaml:"reports"`
}

// Population configures the reference simulation.
type Population struct {
	Size           int     `yaml:"size"`
	Subpopulations int     `yaml:"subpopulations,omitempty"`
	GenomeLength   int     `yaml:"genome_length"`
	MutationRate   float64 `yaml:"mutation_rate"`
	TournamentSize int     `yaml:"tournament_size"`
}

// Datafile controls data file formatting.
type Datafile struct {
	Delimiter string `yaml:"delimiter,omitempty"`
	Precision int    `yaml:"precision,omitempty"`
	NoSync    bool   `yaml:"no_sync,omitempty"`
}

// Reports toggles the individual reports. All are enabled by default.
type Reports struct {
	DisableFitness        bool `yaml:"disable_fitness,omitempty"`
	DisableMetapopulation bool `yaml:"disable_metapopulation,omitempty"`
	DisableRuntime        bool `yaml:"disable_runtime,omitempty"`
}

// maxConfigSize is the maximum config file size we'll read (64 KiB).
const maxConfigSize = 64 * 1024

// maxUpdates bounds the updates setting.
const maxUpdates = 10_000_000

// Load reads the config file at path.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

func (c *Config) validate() error {
	if c.Updates < 0 {
		return errors.New("updates must be non-negative")
	}
	if c.Updates > maxUpdates {
		return fmt.Errorf("updates exceeds maximum (%d)", maxUpdates)
	}
	if c.StaleUpdates < 0 {
		return errors.New("stale_updates must be non-negative")
	}
	if c.Unbounded && c.StaleUpdates == 0 {
		return errors.New("unbounded requires stale_updates")
	}
	if c.Population.Size < 0 {
		return errors.New("population.size must be non-negative")
	}
	if c.Population.Subpopulations < 0 {
		return errors.New("population.subpopulations must be non-negative")
	}
	if c.Population.GenomeLength < 0 {
		return errors.New("population.genome_length must be non-negative")
	}
	if c.Population.MutationRate < 0 || c.Population.MutationRate > 1 {
		return errors.New("population.mutation_rate must be between 0 and 1")
	}
	if c.Population.TournamentSize < 0 {
		return errors.New("population.tournament_size must be non-negative")
	}
	if c.Datafile.Precision < 0 || c.Datafile.Precision > 17 {
		return errors.New("datafile.precision must be between 0 and 17")
	}
	if !validDelimiter(c.Datafile.Delimiter) {
		return fmt.Errorf("datafile.delimiter %q must be spaces or tabs, or one of %q", c.Datafile.Delimiter, separators)
	}
	return nil
}

// separators are the non-whitespace delimiters allowed in data files. None of
// them occurs in a column label or a formatted value.
var separators = []string{",", ";", "|"}

// validDelimiter accepts an unset delimiter, a run of spaces and tabs, or one
// of separators.
func validDelimiter(d string) bool {
	if d == "" || slices.Contains(separators, d) {
		return true
	}
	return strings.Trim(d, " \t") == ""
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "runs"
	}
	if c.Updates == 0 {
		c.Updates = 100
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.Population.Size == 0 {
		c.Population.Size = 100
	}
	if c.Population.GenomeLength == 0 {
		c.Population.GenomeLength = 64
	}
	if c.Population.MutationRate == 0 {
		c.Population.MutationRate = 1.0 / float64(c.Population.GenomeLength)
	}
	if c.Population.TournamentSize == 0 {
		c.Population.TournamentSize = 2
	}
	if c.Datafile.Delimiter == "" {
		c.Datafile.Delimiter = datafile.DefaultDelimiter
	}
	if c.Datafile.Precision == 0 {
		c.Datafile.Precision = datafile.DefaultPrecision
	}
}

// DatafileOptions converts the datafile section to writer options.
func (c *Config) DatafileOptions() datafile.Options {
	return datafile.Options{
		Delimiter: c.Datafile.Delimiter,
		Precision: c.Datafile.Precision,
		Sync:      !c.Datafile.NoSync,
	}
}

// MaxUpdates is the loop's update limit; 0 when unbounded.
func (c *Config) MaxUpdates() int {
	if c.Unbounded {
		return 0
	}
	return c.Updates
}

// Topology names the population layout: "islands" or "flat".
func (c *Config) Topology() string {
	if c.Population.Subpopulations > 0 {
		return "islands"
	}
	return "flat"
}
