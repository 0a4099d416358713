package bench

import (
	"fmt"

	"github.com/roach88/lootbench/internal/inventory"
)

// MissingTarget never appears in a generated workload; searching for it
// measures the cost of a miss.
const MissingTarget = "Nada-999"

// MaxSize bounds both Size and Capacity, matching the scenario file limit.
const MaxSize = 4096

// Config describes one benchmark run.
type Config struct {
	Size     int    `json:"size"`
	Seed     uint64 `json:"seed"`
	Capacity int    `json:"capacity"`
	Label    string `json:"label"`
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Size:     100,
		Seed:     1,
		Capacity: 100,
		Label:    "bench",
	}
}

// Normalize replaces unusable values with defaults. Capacity never ends up
// smaller than Size.
func (c *Config) Normalize() {
	d := Default()

	if c.Size <= 0 {
		c.Size = d.Size
	}
	if c.Capacity < c.Size {
		c.Capacity = c.Size
	}
	if c.Label == "" {
		c.Label = d.Label
	}
}

// Validate rejects a Size or Capacity above MaxSize. Call it after Normalize.
func (c Config) Validate() error {
	if c.Size > MaxSize {
		return fmt.Errorf("size %d exceeds limit %d", c.Size, MaxSize)
	}
	if c.Capacity > MaxSize {
		return fmt.Errorf("capacity %d exceeds limit %d", c.Capacity, MaxSize)
	}
	return nil
}

// SearchTargets picks the first, middle and last generated names plus
// MissingTarget.
func SearchTargets(records []inventory.Record) []string {
	if len(records) == 0 {
		return []string{MissingTarget}
	}
	n := len(records)
	return []string{records[0].Name, records[n/2].Name, records[n-1].Name, MissingTarget}
}

// Run fills a fresh store with cfg's workload, compares every sorting
// algorithm on it and then compares linear and binary search over
// SearchTargets.
func (t *Timer) Run(cfg Config) (Report, error) {
	cfg.Normalize()

	s, err := inventory.NewArrayStore(cfg.Capacity)
	if err != nil {
		return Report{}, err
	}
	records := Workload(cfg.Size, cfg.Seed)
	if err := Fill(s, records); err != nil {
		return Report{}, fmt.Errorf("fill workload: %w", err)
	}

	report := t.Compare(s)
	report.Searches, err = t.CompareSearches(s, SearchTargets(records))
	if err != nil {
		return Report{}, err
	}
	t.logger.Debug("benchmark finished", "label", cfg.Label, "size", cfg.Size, "seed", cfg.Seed)
	return report, nil
}
