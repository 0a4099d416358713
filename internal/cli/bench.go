package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/lootbench/internal/bench"
	"github.com/roach88/lootbench/internal/journal"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	bench.Config
	Journal string
	Metrics bool

	// Clock and RunIDs override the system clock and UUIDv7 run ids (for testing).
	Clock  bench.Clock
	RunIDs journal.RunIDGenerator
}

// BenchOutput is the JSON payload of the bench command.
type BenchOutput struct {
	Run     journal.Run    `json:"run"`
	Report  bench.Report   `json:"report"`
	Metrics []bench.Sample `json:"metrics,omitempty"`
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	return newBenchCommand(&BenchOptions{RootOptions: rootOpts})
}

func newBenchCommand(opts *BenchOptions) *cobra.Command {
	def := bench.Default()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare sorting and search costs on a generated workload",
		Long: `Fill an array store with a deterministic workload, run bubble,
insertion and selection sort on identical copies, then compare linear
search with binary search for a few names.

Measurements are written to a SQLite journal. The default journal lives
in memory; pass --journal to keep history for the history command.

Examples:
  lootbench bench
  lootbench bench --size 500 --seed 42 --journal bench.db --label nightly
  lootbench bench --metrics --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Size, "size", def.Size, "number of generated records")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", def.Seed, "workload seed")
	cmd.Flags().IntVar(&opts.Capacity, "capacity", 0, "array capacity (defaults to --size)")
	cmd.Flags().StringVar(&opts.Label, "label", def.Label, "label stored with the run")
	cmd.Flags().StringVar(&opts.Journal, "journal", journal.MemoryPath, "path to SQLite journal")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print collected counters")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, out.GetErrWriter())

	cfg := opts.Config
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid benchmark configuration", err)
	}

	metrics := bench.NewMetrics()
	timerOpts := []bench.TimerOption{bench.WithMetrics(metrics), bench.WithLogger(logger)}
	if opts.Clock != nil {
		timerOpts = append(timerOpts, bench.WithClock(opts.Clock))
	}
	timer := bench.NewTimer(timerOpts...)

	report, err := timer.Run(cfg)
	if err != nil {
		return WrapExitError(ExitFailure, "benchmark failed", err)
	}

	run, err := recordBench(cmd.Context(), opts, cfg, report, logger)
	if err != nil {
		return err
	}

	output := BenchOutput{Run: run, Report: report}
	if opts.Metrics {
		output.Metrics, err = metrics.Counters()
		if err != nil {
			return WrapExitError(ExitFailure, "failed to gather metrics", err)
		}
	}

	if out.IsJSON() {
		return out.Success(output)
	}
	writeBenchText(out.Writer, output)
	return nil
}

func recordBench(ctx context.Context, opts *BenchOptions, cfg bench.Config, report bench.Report, logger *slog.Logger) (journal.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var jopts []journal.Option
	if opts.RunIDs != nil {
		jopts = append(jopts, journal.WithRunIDGenerator(opts.RunIDs))
	}
	j, err := journal.Open(opts.Journal, jopts...)
	if err != nil {
		return journal.Run{}, WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer func() {
		if closeErr := j.Close(); closeErr != nil {
			logger.Error("error closing journal", "error", closeErr)
		}
	}()

	sorts := make([]journal.SortMeasurement, 0, len(report.Sorts))
	algorithms := make([]string, 0, len(report.Sorts))
	for _, row := range report.Sorts {
		sorts = append(sorts, journal.SortMeasurement{
			Algorithm:   row.Algorithm,
			Key:         row.Key,
			Elements:    row.Elements,
			Comparisons: row.Comparisons,
			ElapsedNS:   row.ElapsedNS,
		})
		algorithms = append(algorithms, row.Algorithm)
	}

	searches := make([]journal.SearchMeasurement, 0, 2*len(report.Searches))
	targets := make([]string, 0, len(report.Searches))
	for _, row := range report.Searches {
		searches = append(searches,
			journal.SearchMeasurement{Strategy: "linear", Target: row.Target, Found: row.Found, Comparisons: row.LinearComparisons},
			journal.SearchMeasurement{Strategy: "binary", Target: row.Target, Found: row.Found, Comparisons: row.BinaryComparisons},
		)
		targets = append(targets, row.Target)
	}

	details := map[string]any{
		"algorithms": algorithms,
		"targets":    targets,
	}
	run, err := j.RecordRun(ctx, journal.Run{
		Label:    cfg.Label,
		Capacity: cfg.Capacity,
		Size:     cfg.Size,
		Seed:     cfg.Seed,
	}, details, sorts, searches)
	if err != nil {
		return journal.Run{}, WrapExitError(ExitCommandError, "failed to record run", err)
	}
	logger.Debug("run recorded", "id", run.ID, "journal", opts.Journal, "seq", run.Seq)
	return run, nil
}

func writeBenchText(w io.Writer, o BenchOutput) {
	fmt.Fprintf(w, "Run %s (%s): %d records, capacity %d, seed %d\n\n",
		o.Run.ID, o.Run.Label, o.Run.Size, o.Run.Capacity, o.Run.Seed)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tKEY\tELEMENTS\tCOMPARISONS\tELAPSED")
	for _, r := range o.Report.Sorts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%dns\n", r.Algorithm, r.Key, r.Elements, r.Comparisons, r.ElapsedNS)
	}
	tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tFOUND\tLINEAR\tBINARY")
	for _, r := range o.Report.Searches {
		fmt.Fprintf(tw, "%s\t%t\t%d\t%d\n", r.Target, r.Found, r.LinearComparisons, r.BinaryComparisons)
	}
	tw.Flush()

	if len(o.Metrics) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "METRIC\tLABELS\tVALUE")
		for _, s := range o.Metrics {
			fmt.Fprintf(tw, "%s\t%v\t%g\n", s.Name, s.Labels, s.Value)
		}
		tw.Flush()
	}
}
