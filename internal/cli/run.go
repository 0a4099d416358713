package cli

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lootbench/internal/scenario"
)

const (
	markPass = "✓"
	markFail = "✗"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Filter    string // scenario filter (glob over the file name without extension)
	GoldenDir string // compare traces with {GoldenDir}/{name}.golden when set
	Update    bool   // rewrite golden files instead of comparing
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// RunResult holds the overall result.
type RunResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario-file|dir>...",
		Short: "Run inventory scenarios",
		Long: `Run scripted inventory scenarios and check their expectations.

Each YAML scenario drives a fresh array or list store through insert,
remove, list, search, bsearch and sort steps. With --golden-dir the
step trace is also compared byte for byte with a golden file.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  lootbench run ./scenarios
  lootbench run ./scenarios --filter "linked_*"
  lootbench run ./scenarios --golden-dir ./golden --update
  lootbench run capacity.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVar(&opts.GoldenDir, "golden-dir", "", "directory of golden trace files")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files (requires --golden-dir)")

	return cmd
}

func runScenarios(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)
	if opts.Update && opts.GoldenDir == "" {
		return NewExitError(ExitCommandError, "--update requires --golden-dir")
	}

	var files []string
	for _, p := range paths {
		found, err := findScenarioFiles(p, opts.Filter)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to find scenarios", err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		if out.IsJSON() {
			return out.Success(RunResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(out.Writer, "No scenarios found.")
		return nil
	}

	logger := newLogger(opts.RootOptions, out.GetErrWriter())
	result := RunResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}
	for _, file := range files {
		res := runScenarioFile(opts, file, logger)
		result.Scenarios = append(result.Scenarios, res)
		if res.Pass {
			result.Passed++
		} else {
			result.Failed++
		}

		if !out.IsJSON() {
			mark := markPass
			if !res.Pass {
				mark = markFail
			}
			fmt.Fprintf(out.Writer, "%s %s\n", mark, res.Name)
			for _, e := range res.Errors {
				fmt.Fprintf(out.Writer, "  %s\n", e)
			}
		}
	}

	return outputRunResult(out, result)
}

// findScenarioFiles returns path itself when it is a file, or every .yaml
// and .yml file below it when it is a directory.
func findScenarioFiles(path string, filter string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("path not found: %s", path)
	}
	if !info.IsDir() {
		ok, err := matchFilter(path, filter)
		if err != nil || !ok {
			return nil, err
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(p)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		ok, err := matchFilter(p, filter)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

func matchFilter(path, filter string) (bool, error) {
	if filter == "" {
		return true, nil
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	matched, err := filepath.Match(filter, name)
	if err != nil {
		return false, fmt.Errorf("invalid filter pattern: %w", err)
	}
	return matched, nil
}

func runScenarioFile(opts *RunOptions, file string, logger *slog.Logger) ScenarioResult {
	res := ScenarioResult{Name: filepath.Base(file), File: file}

	s, err := scenario.Load(file)
	if err != nil {
		res.Errors = []string{fmt.Sprintf("load error: %v", err)}
		return res
	}
	res.Name = s.Name

	result, err := scenario.RunWithLogger(s, logger)
	if err != nil {
		res.Errors = []string{fmt.Sprintf("execution error: %v", err)}
		return res
	}
	logger.Debug("scenario executed", "name", s.Name, "steps", len(result.Trace), "pass", result.Pass)

	res.Pass = result.Pass
	res.Errors = result.Errors

	if opts.GoldenDir != "" {
		if msg := checkGolden(opts, s, result); msg != "" {
			res.Pass = false
			res.Errors = append(res.Errors, msg)
		}
	}
	return res
}

// checkGolden compares or rewrites the golden trace. It returns a failure
// message, or "" when the trace matches or a golden file is missing.
func checkGolden(opts *RunOptions, s *scenario.Scenario, result *scenario.Result) string {
	current, err := scenario.Snapshot(s, result)
	if err != nil {
		return fmt.Sprintf("snapshot failed: %v", err)
	}
	path := filepath.Join(opts.GoldenDir, s.Name+".golden")

	if opts.Update {
		if err := os.MkdirAll(opts.GoldenDir, 0755); err != nil {
			return fmt.Sprintf("failed to create golden directory: %v", err)
		}
		if err := os.WriteFile(path, current, 0644); err != nil {
			return fmt.Sprintf("failed to write golden file: %v", err)
		}
		return ""
	}

	golden, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		return fmt.Sprintf("failed to read golden file: %v", err)
	}
	if !bytes.Equal(golden, current) {
		return "trace does not match golden file (run with --update to regenerate)"
	}
	return ""
}

func outputRunResult(out *OutputFormatter, result RunResult) error {
	if out.IsJSON() {
		resp := CLIResponse{Status: "ok", Data: result}
		if result.Failed > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    "E_SCENARIO_FAILED",
				Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
			}
		}
		if err := out.encode(resp); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out.Writer)
		fmt.Fprintf(out.Writer, "Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	if !out.IsJSON() {
		fmt.Fprintf(out.Writer, "%s All scenarios passed\n", markPass)
	}
	return nil
}
