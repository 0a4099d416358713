package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/lootbench/internal/journal"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Journal string
	RunID   string
}

// RunDetail is one run with its measurements.
type RunDetail struct {
	Run      journal.Run                 `json:"run"`
	Sorts    []journal.SortMeasurement   `json:"sorts"`
	Searches []journal.SearchMeasurement `json:"searches"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List benchmark runs recorded in a journal",
		Long: `List the runs recorded by "lootbench bench --journal FILE".

With --run, print every sort and search measurement of one run.

Examples:
  lootbench history --journal bench.db
  lootbench history --journal bench.db --run 0190a4b2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite journal (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show measurements of one run")
	_ = cmd.MarkFlagRequired("journal")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	// Opening a missing file would silently create an empty journal.
	if _, err := os.Stat(opts.Journal); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", opts.Journal), err)
	}

	j, err := journal.Open(opts.Journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.RunID == "" {
		runs, err := j.Runs(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read runs", err)
		}
		if out.IsJSON() {
			return out.Success(runs)
		}
		writeRunsText(out.Writer, runs)
		return nil
	}

	detail, err := readRunDetail(ctx, j, opts.RunID)
	if err != nil {
		if errors.Is(err, journal.ErrRunNotFound) {
			if out.IsJSON() {
				_ = out.Error("E_RUN_NOT_FOUND", err.Error(), nil)
			}
			return WrapExitError(ExitFailure, "unknown run", err)
		}
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}
	if out.IsJSON() {
		return out.Success(detail)
	}
	writeRunDetailText(out.Writer, detail)
	return nil
}

func readRunDetail(ctx context.Context, j *journal.Journal, id string) (RunDetail, error) {
	run, err := j.ReadRun(ctx, id)
	if err != nil {
		return RunDetail{}, err
	}
	sorts, err := j.Sorts(ctx, id)
	if err != nil {
		return RunDetail{}, err
	}
	searches, err := j.Searches(ctx, id)
	if err != nil {
		return RunDetail{}, err
	}
	return RunDetail{Run: run, Sorts: sorts, Searches: searches}, nil
}

func writeRunsText(w io.Writer, runs []journal.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tLABEL\tSIZE\tCAPACITY\tSEED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n", r.Seq, r.ID, r.Label, r.Size, r.Capacity, r.Seed)
	}
	tw.Flush()
}

func writeRunDetailText(w io.Writer, d RunDetail) {
	fmt.Fprintf(w, "Run %s (%s): %d records, capacity %d, seed %d\n",
		d.Run.ID, d.Run.Label, d.Run.Size, d.Run.Capacity, d.Run.Seed)
	fmt.Fprintf(w, "Details: %s\n\n", d.Run.Details)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tALGORITHM\tKEY\tELEMENTS\tCOMPARISONS\tELAPSED")
	for _, m := range d.Sorts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%dns\n", m.Seq, m.Algorithm, m.Key, m.Elements, m.Comparisons, m.ElapsedNS)
	}
	tw.Flush()

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tSTRATEGY\tTARGET\tFOUND\tCOMPARISONS")
	for _, m := range d.Searches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%d\n", m.Seq, m.Strategy, m.Target, m.Found, m.Comparisons)
	}
	tw.Flush()
}
