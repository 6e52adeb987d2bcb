package scaffold

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/benwilkes9/ealog/internal/config"
)

// Answers holds the choices made during init.
type Answers struct {
	Subpopulations int
	Updates        int
	OutputDir      string
	// Ignore appends OutputDir to .gitignore.
	Ignore bool
}

// DefaultAnswers mirrors config.Default.
func DefaultAnswers() *Answers {
	cfg := config.Default()
	return &Answers{
		Subpopulations: cfg.Population.Subpopulations,
		Updates:        cfg.Updates,
		OutputDir:      cfg.OutputDir,
		Ignore:         true,
	}
}

// Config builds the configuration written by Generate.
func (a *Answers) Config() *config.Config {
	cfg := config.Default()
	cfg.Population.Subpopulations = a.Subpopulations
	if a.Updates > 0 {
		cfg.Updates = a.Updates
	}
	if a.OutputDir != "" {
		cfg.OutputDir = a.OutputDir
	}
	return cfg
}

func (a *Answers) validate() error {
	if a.OutputDir == "" {
		return errors.New("output directory must not be empty")
	}
	if filepath.IsAbs(a.OutputDir) {
		return fmt.Errorf("output directory %q must be relative", a.OutputDir)
	}
	if clean := filepath.Clean(a.OutputDir); clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("output directory %q must not escape the working directory", a.OutputDir)
	}
	return nil
}

// AskFunc prompts for free text after a custom option is chosen.
type AskFunc func(title string) (string, error)

// RunForm asks for the init choices with an interactive huh form.
func RunForm(a *Answers) error {
	topology := "flat"
	if a.Subpopulations > 0 {
		topology = islandsPrefix + strconv.Itoa(a.Subpopulations)
	}
	updates := strconv.Itoa(a.Updates)
	outputDir := a.OutputDir

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Population layout").
				Options(topologyOptions()...).
				Value(&topology),
			huh.NewSelect[string]().
				Title("How many updates should a run last?").
				Options(updatesOptions()...).
				Value(&updates),
			huh.NewSelect[string]().
				Title("Where should data files be written?").
				Options(outputDirOptions()...).
				Value(&outputDir),
			huh.NewConfirm().
				Title("Add the output directory to .gitignore?").
				Value(&a.Ignore),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("running init form: %w", err)
	}
	return applyChoices(a, topology, updates, outputDir, askInput)
}

func askInput(title string) (string, error) {
	var v string
	err := huh.NewInput().Title(title).Value(&v).Run()
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", title, err)
	}
	return v, nil
}

// applyChoices resolves custom sentinels through ask and stores the parsed
// values on a.
func applyChoices(a *Answers, topology, updates, outputDir string, ask AskFunc) error {
	var err error
	if topology, err = resolveCustom(topology, "Number of islands", ask); err != nil {
		return err
	}
	if updates, err = resolveCustom(updates, "Updates per run", ask); err != nil {
		return err
	}
	if outputDir, err = resolveCustom(outputDir, "Output directory", ask); err != nil {
		return err
	}

	if a.Subpopulations, err = parseTopology(topology); err != nil {
		return err
	}
	if a.Updates, err = parseUpdates(updates); err != nil {
		return err
	}
	a.OutputDir = strings.TrimSpace(outputDir)
	return a.validate()
}

func resolveCustom(value, title string, ask AskFunc) (string, error) {
	if value != customSentinel {
		return value, nil
	}
	if ask == nil {
		return "", fmt.Errorf("%s: no value given", strings.ToLower(title))
	}
	return ask(title)
}

// PromptOptions configures input/output for plain-text prompts.
type PromptOptions struct {
	In  io.Reader
	Out io.Writer
}

// RunPrompts asks for the init choices line by line, for terminals where the
// huh form cannot run.
func RunPrompts(a *Answers, opts *PromptOptions) error {
	scanner := bufio.NewScanner(opts.In)

	topology := "flat"
	if a.Subpopulations > 0 {
		topology = strconv.Itoa(a.Subpopulations)
	}
	topology = promptWithDefault(scanner, opts.Out,
		"Islands (flat for a single population)", topology)

	updates := promptWithDefault(scanner, opts.Out,
		"Updates per run", strconv.Itoa(a.Updates))

	outputDir := promptWithDefault(scanner, opts.Out,
		"Output directory", a.OutputDir)

	a.Ignore = promptYesNo(scanner, opts.Out,
		"Add the output directory to .gitignore?", a.Ignore)

	return applyChoices(a, topology, updates, outputDir, nil)
}

//nolint:errcheck // display-only writes to terminal
func promptWithDefault(scanner *bufio.Scanner, w io.Writer, prompt, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(w, "%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Fprintf(w, "%s: ", prompt)
	}
	if scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input != "" {
			return input
		}
	}
	return defaultVal
}

//nolint:errcheck // display-only writes to terminal
func promptYesNo(scanner *bufio.Scanner, w io.Writer, prompt string, defaultYes bool) bool {
	hint := "Y/n"
	if !defaultYes {
		hint = "y/N"
	}
	fmt.Fprintf(w, "%s [%s]: ", prompt, hint)
	if scanner.Scan() {
		input := strings.TrimSpace(strings.ToLower(scanner.Text()))
		switch input {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
	return defaultYes
}
