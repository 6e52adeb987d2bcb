package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/benwilkes9/ealog/internal/config"
	"github.com/benwilkes9/ealog/internal/hook"
	logfile "github.com/benwilkes9/ealog/internal/log"
	"github.com/benwilkes9/ealog/internal/loop"
	"github.com/benwilkes9/ealog/internal/monitor"
	"github.com/benwilkes9/ealog/internal/report"
	"github.com/benwilkes9/ealog/internal/scaffold"
	"github.com/benwilkes9/ealog/internal/sim"
	"github.com/benwilkes9/ealog/internal/status"
	"github.com/benwilkes9/ealog/internal/summary"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "ealog",
		Short:   "Per-update fitness statistics for evolutionary runs",
		Version: version,
	}
	root.PersistentFlags().StringP("config", "c", config.DefaultPath, "config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "debug logging to stderr")

	root.AddCommand(runCmd())
	root.AddCommand(initCmd())
	root.AddCommand(statusCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the reference simulation and record fitness statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd, os.Stderr)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, logger)
			if err != nil {
				return err
			}

			maxVal, err := cmd.Flags().GetInt("max")
			if err != nil {
				return fmt.Errorf("reading --max flag: %w", err)
			}
			if maxVal > 0 {
				cfg.Updates = maxVal
				cfg.Unbounded = false
			}
			seed, err := cmd.Flags().GetUint64("seed")
			if err != nil {
				return fmt.Errorf("reading --seed flag: %w", err)
			}
			if seed > 0 {
				cfg.Seed = seed
			}

			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return fmt.Errorf("reading --verbose flag: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			out, runErr := runSimulation(ctx, cfg, os.Stdout, os.Stderr, verbose)
			stop()

			if out != nil && out.Result != nil {
				summary.PrintBox(os.Stderr, out.summary())
			}
			if ctx.Err() != nil {
				os.Exit(130)
			}
			return runErr
		},
	}
	cmd.Flags().IntP("max", "n", 0, "maximum updates (0 = use config)")
	cmd.Flags().Uint64("seed", 0, "random seed (0 = use config)")
	return cmd
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an " + config.DefaultPath + " in the current directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			plain, err := cmd.Flags().GetBool("plain")
			if err != nil {
				return fmt.Errorf("reading --plain flag: %w", err)
			}
			defaults, err := cmd.Flags().GetBool("defaults")
			if err != nil {
				return fmt.Errorf("reading --defaults flag: %w", err)
			}

			answers := scaffold.DefaultAnswers()
			switch {
			case defaults:
			case plain:
				err = scaffold.RunPrompts(answers, &scaffold.PromptOptions{In: os.Stdin, Out: os.Stdout})
			default:
				err = scaffold.RunForm(answers)
			}
			if err != nil {
				return err
			}

			result, err := scaffold.Generate(".", answers)
			if err != nil {
				return fmt.Errorf("generating config: %w", err)
			}
			scaffold.PrintSummary(os.Stdout, result)
			return nil
		},
	}
	cmd.Flags().Bool("plain", false, "line-based prompts instead of the interactive form")
	cmd.Flags().Bool("defaults", false, "write the default config without prompting")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [run-dir]",
		Short: "Summarize the data files of a run (default: the latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd, os.Stderr)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, logger)
			if err != nil {
				return err
			}

			runDir := ""
			if len(args) == 1 {
				runDir = args[0]
			} else if runDir, err = latestRun(cfg.OutputDir); err != nil {
				return err
			}

			statuses, err := status.Collect(runDir, cfg.Datafile.Delimiter)
			if err != nil {
				return fmt.Errorf("collecting status: %w", err)
			}
			status.Render(os.Stdout, runDir, statuses)
			return nil
		},
	}
}

func newLogger(cmd *cobra.Command, w io.Writer) (*slog.Logger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("reading --verbose flag: %w", err)
	}
	return buildLogger(w, verbose), nil
}

func buildLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(cmd *cobra.Command, logger *slog.Logger) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("reading --config flag: %w", err)
	}
	cfg, found, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if !found {
		logger.Debug("config file not found, using defaults", "path", path)
	}
	return cfg, nil
}

// runOutcome is what a finished run reports back to the command.
type runOutcome struct {
	RunID   string
	RunDir  string
	Files   []string
	Result  *loop.Result
	Runtime monitor.Stats
}

func (o *runOutcome) summary() *summary.Stats {
	return &summary.Stats{
		RunID:        o.RunID,
		Status:       string(o.Result.Status),
		Updates:      o.Result.Updates,
		WallTime:     o.Result.WallTime,
		MeanSeconds:  o.Runtime.MeanSeconds,
		PeakMemoryMB: o.Runtime.PeakMemoryMB,
		BestFitness:  o.Result.BestFitness,
		RowsWritten:  o.Result.Updates * len(o.Files),
	}
}

// runSimulation creates the run directory and its log, registers the reports
// and the runtime monitor, and drives the simulation until it stops. Monitor
// lines go to stdout; the run header and log records go to stderr. Reports
// and the log are closed before it returns.
func runSimulation(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, verbose bool) (out *runOutcome, err error) {
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	runDir := filepath.Join(cfg.OutputDir, runID)

	lf, err := logfile.Open(runDir, stderr)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := lf.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing run log: %w", cerr))
		}
	}()
	logger := lf.Logger(verbose).With("run_id", runID)
	out = &runOutcome{RunID: runID, RunDir: runDir}

	eng, err := sim.New(sim.Params{
		PopulationSize: cfg.Population.Size,
		Islands:        cfg.Population.Subpopulations,
		GenomeLength:   cfg.Population.GenomeLength,
		MutationRate:   cfg.Population.MutationRate,
		TournamentSize: cfg.Population.TournamentSize,
		Seed:           cfg.Seed,
	})
	if err != nil {
		return out, err
	}

	hooks := hook.NewRegistry()
	defer func() {
		if cerr := hooks.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing reports: %w", cerr))
		}
	}()

	files, err := registerReports(cfg, runDir, eng, hooks, logger)
	if err != nil {
		return out, err
	}
	out.Files = files

	var rt *monitor.Runtime
	if !cfg.Reports.DisableRuntime {
		rt = monitor.New(stdout, eng, monitor.Options{})
		hooks.Register(hook.PhaseEndOfUpdate, rt)
	}

	logger.Info("run started", "dir", runDir, "topology", cfg.Topology(), "max_updates", cfg.MaxUpdates())
	logger.Debug("handlers registered",
		hook.PhaseRecordStatistics.String(), hooks.Len(hook.PhaseRecordStatistics),
		hook.PhaseEndOfUpdate.String(), hooks.Len(hook.PhaseEndOfUpdate))

	res, err := loop.Run(ctx, &loop.Options{
		MaxUpdates: cfg.MaxUpdates(),
		MaxStale:   cfg.StaleUpdates,
		RunDir:     runDir,
		Topology:   cfg.Topology(),
	}, stderr, eng, hooks)
	out.Result = res
	if rt != nil {
		out.Runtime = rt.Stats()
	}
	if err != nil {
		return out, err
	}

	logger.Info("run finished", "status", res.Status, "updates", res.Updates, "best_fitness", res.BestFitness)
	return out, nil
}

// registerReports adds the statistics reports for the configured topology
// and returns the paths of the files they write.
func registerReports(cfg *config.Config, runDir string, eng *sim.Engine, hooks *hook.Registry, logger *slog.Logger) ([]string, error) {
	opts := report.Options{Datafile: cfg.DatafileOptions(), Logger: logger}

	if cfg.Population.Subpopulations > 0 {
		if cfg.Reports.DisableMetapopulation {
			return nil, nil
		}
		r, err := report.NewMetapopulation(runDir, eng, opts)
		if err != nil {
			return nil, fmt.Errorf("creating metapopulation report: %w", err)
		}
		hooks.Register(hook.PhaseRecordStatistics, r)
		sub, meta := r.Paths()
		logger.Debug("metapopulation report registered", "subpopulations", r.Subpopulations())
		return []string{sub, meta}, nil
	}

	if cfg.Reports.DisableFitness {
		return nil, nil
	}
	r, err := report.NewFitness(runDir, eng, opts)
	if err != nil {
		return nil, fmt.Errorf("creating fitness report: %w", err)
	}
	hooks.Register(hook.PhaseRecordStatistics, r)
	logger.Debug("fitness report registered", "path", r.Path())
	return []string{r.Path()}, nil
}

// latestRun returns the most recently modified run directory under outputDir.
func latestRun(outputDir string) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", fmt.Errorf("reading output dir: %w", err)
	}

	var (
		latest string
		newest int64
	)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mt := info.ModTime().UnixNano(); latest == "" || mt > newest {
			latest, newest = e.Name(), mt
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no runs found in %s", outputDir)
	}
	return filepath.Join(outputDir, latest), nil
}
