package journal

import (
	"context"
	"fmt"

	"github.com/roach88/lootbench/internal/report"
)

// RecordRun writes a run and all of its measurements in one transaction.
// The run id is generated here; RunID fields on the measurements are
// overwritten. Returns the stored run.
func (j *Journal) RecordRun(ctx context.Context, run Run, details map[string]any, sorts []SortMeasurement, searches []SearchMeasurement) (Run, error) {
	detailsJSON := []byte("{}")
	if len(details) > 0 {
		var err error
		detailsJSON, err = report.MarshalCanonical(details)
		if err != nil {
			return Run{}, fmt.Errorf("record run: details: %w", err)
		}
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	run.ID = j.ids.Generate()
	run.Details = string(detailsJSON)
	run.Seq = j.seq.Next()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, label, capacity, size, seed, details, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Label,
		run.Capacity,
		run.Size,
		int64(run.Seed),
		run.Details,
		run.Seq,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: insert run: %w", err)
	}

	for i := range sorts {
		m := &sorts[i]
		m.RunID = run.ID
		m.Seq = j.seq.Next()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sort_measurements (run_id, algorithm, sort_key, elements, comparisons, elapsed_ns, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, m.RunID, m.Algorithm, m.Key, m.Elements, m.Comparisons, m.ElapsedNS, m.Seq)
		if err != nil {
			return Run{}, fmt.Errorf("record run: insert sort %s: %w", m.Algorithm, err)
		}
	}

	for i := range searches {
		m := &searches[i]
		m.RunID = run.ID
		m.Seq = j.seq.Next()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO search_measurements (run_id, strategy, target, found, comparisons, seq)
			VALUES (?, ?, ?, ?, ?, ?)
		`, m.RunID, m.Strategy, m.Target, m.Found, m.Comparisons, m.Seq)
		if err != nil {
			return Run{}, fmt.Errorf("record run: insert search %q: %w", m.Target, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}
