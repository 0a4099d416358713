package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lootbench/internal/testutil"
)

func executeShell(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := newShellCommand(&ShellOptions{
		RootOptions: &RootOptions{Format: "text"},
		Clock:       testutil.NewStepClock(time.Millisecond),
	})
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func lines(in ...string) string { return strings.Join(in, "\n") + "\n" }

func TestShell_ArraySession(t *testing.T) {
	input := lines(
		"1", "Faca", "arma", "3",
		"add", "Bala", "municao", "1",
		"add",
		"5", "bubble",
		"bsearch", "name", "Faca",
		"bsearch", "priority", "3",
		"remove", "Faca",
		"find", "Faca",
		"quit",
	)

	out, err := executeShell(t, input, "--capacity", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "--- INVENTORY (0/2, unordered) ---")
	assert.Contains(t, out, "Item 'Faca' added.")
	assert.Contains(t, out, "Item 'Bala' added.")
	assert.Contains(t, out, "--- Current inventory ---")
	assert.Contains(t, out, "Inventory full (2/2), cannot add.")
	assert.Contains(t, out, "Sorted by name with bubble: 1 comparisons in 1ms.")
	assert.Contains(t, out, "--- INVENTORY (2/2, sorted-by-name) ---")
	assert.Contains(t, out, "--- Item found at position 1 (1 comparisons) ---")
	assert.Contains(t, out, "Error [NOT_SORTED]: binary search needs sorted-by-priority, store is sorted-by-name")
	assert.Contains(t, out, "Sort with selection first.")
	assert.Contains(t, out, "Item 'Faca' removed.")
	assert.Contains(t, out, "--- INVENTORY (1/2, unordered) ---")
	assert.Contains(t, out, "Item 'Faca' not found (1 comparisons).")
	assert.Contains(t, out, "Closing inventory. Bye!")
}

func TestShell_ListSession(t *testing.T) {
	input := lines(
		"add", "A", "arma", "1",
		"add", "B", "cura", "2",
		"list",
		"find", "A",
		"sort",
		"remove", "Z",
	)

	out, err := executeShell(t, input, "--store", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "--- INVENTORY (2, list) ---")
	assert.NotContains(t, out, "5. sort")
	assert.Contains(t, out, "--- Item found (2 comparisons) ---")
	assert.Contains(t, out, "Sorting is only available on the array store.")
	assert.Contains(t, out, "Item 'Z' not found.")

	// Insert-at-head puts B before A.
	listing := out[strings.LastIndex(out, "NAME"):]
	assert.Less(t, strings.Index(listing, "B "), strings.Index(listing, "A "))

	// EOF without quit still ends the session cleanly.
	assert.Contains(t, out, "Closing inventory. Bye!")
}

func TestShell_InputErrors(t *testing.T) {
	input := lines(
		"remove",
		"find",
		"list",
		"9",
		"add", "Faca", "arma", "many",
		"add", "Um nome muito comprido demais para caber", "arma", "1",
		"sort", "quick",
		"bsearch", "weight",
		"0",
	)

	out, err := executeShell(t, input)
	require.NoError(t, err)

	assert.Contains(t, out, "Inventory is empty, nothing to remove.")
	assert.Contains(t, out, "Inventory is empty, nothing to find.")
	assert.Contains(t, out, "Inventory is empty.")
	assert.Contains(t, out, "Invalid option, try again.")
	assert.Contains(t, out, `Invalid priority "many": must be an integer.`)
	assert.Contains(t, out, "Error [INPUT_TOO_LONG]: name has 40 characters, limit is 29")
	assert.Contains(t, out, "Names hold up to 29 characters, categories up to 19.")
	assert.Contains(t, out, `Error: unknown algorithm "quick"`)
	assert.Contains(t, out, `Error: unknown field "weight"`)
}

func TestShell_InvalidFlags(t *testing.T) {
	_, err := executeShell(t, "", "--store", "tree")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = executeShell(t, "", "--capacity", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
