package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/lootbench/internal/bench"
	"github.com/roach88/lootbench/internal/inventory"
	"github.com/roach88/lootbench/internal/sorting"
)

// ShellOptions holds flags for the shell command.
type ShellOptions struct {
	*RootOptions
	Store    string // "array" | "list"
	Capacity int

	// Clock overrides the sort timer clock (for testing).
	Clock bench.Clock
}

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	return newShellCommand(&ShellOptions{RootOptions: rootOpts})
}

func newShellCommand(opts *ShellOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Manage an inventory interactively",
		Long: `Start a line-based menu over one inventory store.

Records are added, removed, listed and found by name. The array store
also sorts (bubble by name, insertion by category, selection by
priority) and binary searches the key it is sorted by. The inventory is
listed after every add and remove.

Commands may be typed by number or by name. Input ends at "quit" or EOF.

Examples:
  lootbench shell
  lootbench shell --store list
  lootbench shell --capacity 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Store, "store", "array", "store representation (array|list)")
	cmd.Flags().IntVar(&opts.Capacity, "capacity", 10, "array store capacity")

	return cmd
}

func runShell(opts *ShellOptions, cmd *cobra.Command) error {
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	sh := &shell{
		in:     bufio.NewScanner(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		logger: logger,
	}
	timerOpts := []bench.TimerOption{bench.WithLogger(logger)}
	if opts.Clock != nil {
		timerOpts = append(timerOpts, bench.WithClock(opts.Clock))
	}
	sh.timer = bench.NewTimer(timerOpts...)

	switch opts.Store {
	case "array":
		s, err := inventory.NewArrayStore(opts.Capacity)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid capacity", err)
		}
		sh.array = s
	case "list":
		sh.list = inventory.NewLinkedStore()
		defer sh.list.Clear()
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid store %q: must be array or list", opts.Store))
	}

	return sh.loop()
}

// shell is one interactive session. Exactly one of array and list is set.
type shell struct {
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
	timer  *bench.Timer

	array *inventory.ArrayStore
	list  *inventory.LinkedStore
}

var shellCommands = map[string]string{
	"1": "add", "2": "remove", "3": "list", "4": "find",
	"5": "sort", "6": "bsearch", "0": "quit",
}

func (sh *shell) loop() error {
	for {
		sh.menu()
		line, ok := sh.readLine()
		if !ok {
			fmt.Fprintln(sh.out, "\nClosing inventory. Bye!")
			return nil
		}
		choice := strings.ToLower(line)
		if name, ok := shellCommands[choice]; ok {
			choice = name
		}
		sh.logger.Debug("shell command", "command", choice)

		switch choice {
		case "add":
			sh.add()
		case "remove":
			sh.remove()
		case "list":
			sh.printList()
		case "find":
			sh.find()
		case "sort":
			sh.sort()
		case "bsearch":
			sh.bsearch()
		case "quit", "exit":
			fmt.Fprintln(sh.out, "Closing inventory. Bye!")
			return nil
		case "":
		default:
			fmt.Fprintln(sh.out, "Invalid option, try again.")
		}

		if choice == "add" || choice == "remove" {
			fmt.Fprintln(sh.out, "\n--- Current inventory ---")
			sh.printList()
		}
	}
}

func (sh *shell) menu() {
	if sh.array != nil {
		fmt.Fprintf(sh.out, "\n--- INVENTORY (%d/%d, %s) ---\n", sh.array.Len(), sh.array.Cap(), sh.array.Order())
	} else {
		fmt.Fprintf(sh.out, "\n--- INVENTORY (%d, list) ---\n", sh.list.Len())
	}
	fmt.Fprintln(sh.out, "1. add")
	fmt.Fprintln(sh.out, "2. remove")
	fmt.Fprintln(sh.out, "3. list")
	fmt.Fprintln(sh.out, "4. find")
	if sh.array != nil {
		fmt.Fprintln(sh.out, "5. sort")
		fmt.Fprintln(sh.out, "6. bsearch")
	}
	fmt.Fprintln(sh.out, "0. quit")
	fmt.Fprint(sh.out, "> ")
}

func (sh *shell) readLine() (string, bool) {
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

func (sh *shell) prompt(label string) (string, bool) {
	fmt.Fprintf(sh.out, "%s: ", label)
	return sh.readLine()
}

func (sh *shell) length() int {
	if sh.array != nil {
		return sh.array.Len()
	}
	return sh.list.Len()
}

func (sh *shell) records() []inventory.Record {
	if sh.array != nil {
		return sh.array.List()
	}
	return sh.list.List()
}

func (sh *shell) fail(err error) {
	var invErr *inventory.Error
	if errors.As(err, &invErr) {
		fmt.Fprintf(sh.out, "Error [%s]: %s\n", invErr.Code, invErr.Message)
		return
	}
	fmt.Fprintf(sh.out, "Error: %v\n", err)
}

func (sh *shell) add() {
	if sh.array != nil && sh.array.Len() == sh.array.Cap() {
		fmt.Fprintf(sh.out, "\nInventory full (%d/%d), cannot add.\n", sh.array.Len(), sh.array.Cap())
		return
	}

	fmt.Fprintln(sh.out, "\n--- New item ---")
	name, ok := sh.prompt("Name")
	if !ok {
		return
	}
	category, ok := sh.prompt("Category")
	if !ok {
		return
	}
	raw, ok := sh.prompt("Priority")
	if !ok {
		return
	}
	priority, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(sh.out, "Invalid priority %q: must be an integer.\n", raw)
		return
	}

	rec, err := inventory.NewRecord(name, category, priority)
	if err != nil {
		sh.fail(err)
		if inventory.IsInputTooLong(err) {
			fmt.Fprintf(sh.out, "Names hold up to %d characters, categories up to %d.\n",
				inventory.MaxNameLen, inventory.MaxCategoryLen)
		}
		return
	}
	if sh.array != nil {
		if err := sh.array.Insert(rec); err != nil {
			sh.fail(err)
			return
		}
	} else {
		sh.list.InsertFront(rec)
	}
	fmt.Fprintf(sh.out, "\nItem '%s' added.\n", rec.Name)
}

func (sh *shell) remove() {
	if sh.length() == 0 {
		fmt.Fprintln(sh.out, "\nInventory is empty, nothing to remove.")
		return
	}
	name, ok := sh.prompt("Name to remove")
	if !ok {
		return
	}

	var err error
	if sh.array != nil {
		_, err = sh.array.RemoveByName(name)
	} else {
		_, err = sh.list.RemoveByName(name)
	}
	if inventory.IsNotFound(err) {
		fmt.Fprintf(sh.out, "\nItem '%s' not found.\n", name)
		return
	}
	if err != nil {
		sh.fail(err)
		return
	}
	fmt.Fprintf(sh.out, "\nItem '%s' removed.\n", name)
}

func (sh *shell) printList() {
	recs := sh.records()
	if len(recs) == 0 {
		fmt.Fprintln(sh.out, "\nInventory is empty.")
		return
	}

	if sh.array != nil {
		fmt.Fprintf(sh.out, "\n--- Items (%d/%d) ---\n", len(recs), sh.array.Cap())
	} else {
		fmt.Fprintf(sh.out, "\n--- Items (%d) ---\n", len(recs))
	}
	tw := tabwriter.NewWriter(sh.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tPRIORITY")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Name, r.Category, r.Priority)
	}
	tw.Flush()
}

func (sh *shell) find() {
	if sh.length() == 0 {
		fmt.Fprintln(sh.out, "\nInventory is empty, nothing to find.")
		return
	}
	name, ok := sh.prompt("Name to find")
	if !ok {
		return
	}

	var (
		rec inventory.Record
		res inventory.SearchResult
	)
	if sh.array != nil {
		res = sh.array.LinearSearch(name)
		if res.Found {
			rec = sh.array.At(res.Index)
		}
	} else {
		rec, res = sh.list.LinearSearch(name)
	}

	if !res.Found {
		fmt.Fprintf(sh.out, "\nItem '%s' not found (%d comparisons).\n", name, res.Comparisons)
		return
	}
	fmt.Fprintf(sh.out, "\n--- Item found (%d comparisons) ---\n", res.Comparisons)
	sh.printRecord(rec)
}

func (sh *shell) printRecord(rec inventory.Record) {
	fmt.Fprintf(sh.out, "Name: %s\n", rec.Name)
	fmt.Fprintf(sh.out, "Category: %s\n", rec.Category)
	fmt.Fprintf(sh.out, "Priority: %d\n", rec.Priority)
}

func (sh *shell) sort() {
	if sh.array == nil {
		fmt.Fprintln(sh.out, "Sorting is only available on the array store.")
		return
	}
	raw, ok := sh.prompt("Algorithm (bubble|insertion|selection)")
	if !ok {
		return
	}
	alg, err := sorting.ParseAlgorithm(raw)
	if err != nil {
		sh.fail(err)
		return
	}

	m := sh.timer.Sort(alg, sh.array)
	fmt.Fprintf(sh.out, "\nSorted by %s with %s: %d comparisons in %s.\n", alg.Key(), alg, m.Comparisons, m.Elapsed)
	sh.printList()
}

func (sh *shell) bsearch() {
	if sh.array == nil {
		fmt.Fprintln(sh.out, "Binary search is only available on the array store.")
		return
	}
	rawField, ok := sh.prompt("Field (name|category|priority)")
	if !ok {
		return
	}
	field, err := inventory.ParseField(rawField)
	if err != nil {
		sh.fail(err)
		return
	}
	rawKey, ok := sh.prompt("Key")
	if !ok {
		return
	}

	var key inventory.Key
	switch field {
	case inventory.FieldPriority:
		n, err := strconv.Atoi(rawKey)
		if err != nil {
			fmt.Fprintf(sh.out, "Invalid priority %q: must be an integer.\n", rawKey)
			return
		}
		key = inventory.PriorityKey(n)
	case inventory.FieldCategory:
		key = inventory.CategoryKey(rawKey)
	default:
		key = inventory.NameKey(rawKey)
	}

	res, err := sh.array.BinarySearch(key)
	if err != nil {
		sh.fail(err)
		if inventory.IsNotSorted(err) {
			fmt.Fprintf(sh.out, "Sort with %s first.\n", sorting.ForField(field))
		}
		return
	}
	if !res.Found {
		fmt.Fprintf(sh.out, "\nNo item with %s (%d comparisons).\n", key, res.Comparisons)
		return
	}
	fmt.Fprintf(sh.out, "\n--- Item found at position %d (%d comparisons) ---\n", res.Index, res.Comparisons)
	sh.printRecord(sh.array.At(res.Index))
}
