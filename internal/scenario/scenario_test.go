package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidFiles(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			require.NoError(t, err)
			assert.NotEmpty(t, s.Name)
			assert.NotEmpty(t, s.Steps)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParse_Defaults(t *testing.T) {
	s, err := Parse([]byte(`
name: defaults
description: "store and capacity default"
steps:
  - op: list
`))
	require.NoError(t, err)
	assert.Equal(t, StoreArray, s.Store)
	assert.Equal(t, DefaultCapacity, s.Capacity)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: y\nstepz: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing description",
			yaml:    "name: x\nsteps:\n  - op: list\n",
			wantErr: "schema violation",
		},
		{
			name:    "unknown op",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: shuffle\n",
			wantErr: "schema violation",
		},
		{
			name:    "unknown algorithm",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: sort\n    algorithm: quick\n",
			wantErr: "schema violation",
		},
		{
			name:    "unknown outcome",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: list\n    expect: { outcome: MAYBE }\n",
			wantErr: "schema violation",
		},
		{
			name:    "zero capacity",
			yaml:    "name: x\ndescription: y\ncapacity: -1\nsteps:\n  - op: list\n",
			wantErr: "schema violation",
		},
		{
			name:    "empty steps",
			yaml:    "name: x\ndescription: y\nsteps: []\n",
			wantErr: "schema violation",
		},
		{
			name:    "insert without record",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: insert\n",
			wantErr: "record is required",
		},
		{
			name:    "remove without name",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: remove\n",
			wantErr: "name is required",
		},
		{
			name:    "sort on list",
			yaml:    "name: x\ndescription: y\nstore: list\nsteps:\n  - op: sort\n    algorithm: bubble\n",
			wantErr: "not supported on list",
		},
		{
			name:    "bsearch without key",
			yaml:    "name: x\ndescription: y\nsteps:\n  - op: bsearch\n    field: name\n",
			wantErr: "field and key are required",
		},
		{
			name:    "index on list",
			yaml:    "name: x\ndescription: y\nstore: list\nsteps:\n  - op: search\n    name: a\n    expect: { index: 0 }\n",
			wantErr: "index cannot be expected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRun_AllFixturesPass(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := Load(path)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Trace, len(s.Steps))
		})
	}
}

func TestRun_ReportsMismatches(t *testing.T) {
	s, err := Parse([]byte(`
name: mismatch
description: "wrong expectations are reported, not fatal"
capacity: 2
steps:
  - op: insert
    record: { name: A }
  - op: search
    name: A
    expect: { outcome: NOT_FOUND, comparisons: 5, index: 3 }
  - op: list
    expect: { names: [B] }
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], `step 1 (search "A"): outcome = OK, want NOT_FOUND`)
	assert.Contains(t, result.Errors[1], "index = 0, want 3")
	assert.Contains(t, result.Errors[2], "comparisons = 1, want 5")
	assert.Contains(t, result.Errors[3], "names = [A], want [B]")
}

func TestRun_PriorityKeyAsString(t *testing.T) {
	s, err := Parse([]byte(`
name: priority_string
description: "quoted priority keys are accepted"
steps:
  - op: insert
    record: { name: A, priority: 7 }
  - op: sort
    algorithm: selection
  - op: bsearch
    field: priority
    key: "7"
    expect: { outcome: OK, index: 0, comparisons: 1 }
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_BadKeyAborts(t *testing.T) {
	s, err := Parse([]byte(`
name: bad_key
description: "non-numeric priority key cannot run"
steps:
  - op: bsearch
    field: priority
    key: high
`))
	require.NoError(t, err)

	_, err = Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "priority key must be an integer")
}

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"array_capacity", "linked_lifecycle"} {
		t.Run(name, func(t *testing.T) {
			s, err := Load(filepath.Join("testdata", "scenarios", name+".yaml"))
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestSnapshot_Deterministic(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "scenarios", "bubble_then_bsearch.yaml"))
	require.NoError(t, err)

	r1, err := Run(s)
	require.NoError(t, err)
	r2, err := Run(s)
	require.NoError(t, err)

	a, err := Snapshot(s, r1)
	require.NoError(t, err)
	b, err := Snapshot(s, r2)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestParse_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
