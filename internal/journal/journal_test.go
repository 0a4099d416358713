package journal

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lootbench/internal/testutil"
)

func openMemory(t *testing.T, opts ...Option) *Journal {
	t.Helper()
	j, err := Open(MemoryPath, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func sampleSorts() []SortMeasurement {
	return []SortMeasurement{
		{Algorithm: "bubble", Key: "name", Elements: 10, Comparisons: 45, ElapsedNS: 1200},
		{Algorithm: "insertion", Key: "category", Elements: 10, Comparisons: 27, ElapsedNS: 800},
	}
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")

	j, err := Open(path)
	require.NoError(t, err)
	defer j.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")

	for i := 0; i < 3; i++ {
		j, err := Open(path)
		require.NoError(t, err, "Open() iteration %d", i)
		require.NoError(t, j.Close())
	}

	j, err := Open(path)
	require.NoError(t, err)
	defer j.Close()

	for _, table := range []string{"runs", "sort_measurements", "search_measurements"} {
		var name string
		err := j.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		assert.NoError(t, err, "table %q missing", table)
	}

	var version int
	require.NoError(t, j.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestRecordRun_RoundTrip(t *testing.T) {
	j := openMemory(t, WithRunIDGenerator(testutil.NewFixedRunIDGenerator("run-1")))
	ctx := context.Background()

	searches := []SearchMeasurement{
		{Strategy: "linear", Target: "Faca-001", Found: true, Comparisons: 4},
		{Strategy: "binary", Target: "Faca-001", Found: true, Comparisons: 3},
		{Strategy: "linear", Target: "missing", Found: false, Comparisons: 10},
	}

	run, err := j.RecordRun(ctx, Run{Label: "smoke", Capacity: 10, Size: 10, Seed: 42},
		map[string]any{"size": 10, "format": "text"}, sampleSorts(), searches)
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, int64(1), run.Seq)
	assert.Equal(t, `{"format":"text","size":10}`, run.Details)

	got, err := j.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run, got)

	sorts, err := j.Sorts(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, sorts, 2)
	assert.Equal(t, "bubble", sorts[0].Algorithm)
	assert.Equal(t, 45, sorts[0].Comparisons)
	assert.Equal(t, int64(2), sorts[0].Seq)
	assert.Equal(t, int64(3), sorts[1].Seq)

	gotSearches, err := j.Searches(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, gotSearches, 3)
	assert.True(t, gotSearches[0].Found)
	assert.False(t, gotSearches[2].Found)
	assert.Equal(t, int64(6), gotSearches[2].Seq)
}

func TestRecordRun_UUIDv7ByDefault(t *testing.T) {
	j := openMemory(t)
	run, err := j.RecordRun(context.Background(), Run{Label: "x", Capacity: 1}, nil, nil, nil)
	require.NoError(t, err)

	uuidPattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	assert.Regexp(t, uuidPattern, run.ID)
	assert.Equal(t, "{}", run.Details)
}

func TestRecordRun_DuplicateIDRollsBack(t *testing.T) {
	j := openMemory(t, WithRunIDGenerator(testutil.NewFixedRunIDGenerator("dup")))
	ctx := context.Background()

	_, err := j.RecordRun(ctx, Run{Label: "first"}, nil, sampleSorts(), nil)
	require.NoError(t, err)
	_, err = j.RecordRun(ctx, Run{Label: "second"}, nil, sampleSorts(), nil)
	require.Error(t, err)

	sorts, err := j.Sorts(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, sorts, 2, "failed run must not leave measurements behind")
}

func TestRecordRun_RejectsFloatDetails(t *testing.T) {
	j := openMemory(t)
	_, err := j.RecordRun(context.Background(), Run{}, map[string]any{"ratio": 0.5}, nil, nil)
	assert.Error(t, err)
}

func TestRuns_EmptyAndOrdered(t *testing.T) {
	j := openMemory(t)
	ctx := context.Background()

	runs, err := j.Runs(ctx)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)

	for _, label := range []string{"a", "b", "c"} {
		_, err := j.RecordRun(ctx, Run{Label: label}, nil, nil, nil)
		require.NoError(t, err)
	}

	runs, err = j.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{runs[0].Label, runs[1].Label, runs[2].Label})
}

func TestReadRun_NotFound(t *testing.T) {
	j := openMemory(t)
	_, err := j.ReadRun(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestOpen_SequenceResumesAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")
	ctx := context.Background()

	j1, err := Open(path)
	require.NoError(t, err)
	_, err = j1.RecordRun(ctx, Run{Label: "first"}, nil, sampleSorts(), nil)
	require.NoError(t, err)
	require.NoError(t, j1.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	run, err := j2.RecordRun(ctx, Run{Label: "second"}, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), run.Seq)
}

func TestSequence(t *testing.T) {
	s := NewSequenceAt(10)
	assert.Equal(t, int64(10), s.Current())
	assert.Equal(t, int64(11), s.Next())
	assert.Equal(t, int64(11), s.Current())
}
