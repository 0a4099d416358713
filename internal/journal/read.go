package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned by ReadRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// Runs returns every run in seq order.
// Returns an empty slice (not nil) for an empty journal.
func (j *Journal) Runs(ctx context.Context) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, label, capacity, size, seed, details, seq
		FROM runs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a single run by id.
func (j *Journal) ReadRun(ctx context.Context, id string) (Run, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT id, label, capacity, size, seed, details, seq
		FROM runs
		WHERE id = ?
	`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return r, err
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r    Run
		seed int64
	)
	if err := s.Scan(&r.ID, &r.Label, &r.Capacity, &r.Size, &seed, &r.Details, &r.Seq); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	r.Seed = uint64(seed)
	return r, nil
}

// Sorts returns the sort measurements of a run in seq order.
func (j *Journal) Sorts(ctx context.Context, runID string) ([]SortMeasurement, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, algorithm, sort_key, elements, comparisons, elapsed_ns, seq
		FROM sort_measurements
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query sorts: %w", err)
	}
	defer rows.Close()

	out := []SortMeasurement{}
	for rows.Next() {
		var m SortMeasurement
		if err := rows.Scan(&m.RunID, &m.Algorithm, &m.Key, &m.Elements, &m.Comparisons, &m.ElapsedNS, &m.Seq); err != nil {
			return nil, fmt.Errorf("scan sort: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sorts: %w", err)
	}
	return out, nil
}

// Searches returns the search measurements of a run in seq order.
func (j *Journal) Searches(ctx context.Context, runID string) ([]SearchMeasurement, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, strategy, target, found, comparisons, seq
		FROM search_measurements
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query searches: %w", err)
	}
	defer rows.Close()

	out := []SearchMeasurement{}
	for rows.Next() {
		var m SearchMeasurement
		if err := rows.Scan(&m.RunID, &m.Strategy, &m.Target, &m.Found, &m.Comparisons, &m.Seq); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate searches: %w", err)
	}
	return out, nil
}
