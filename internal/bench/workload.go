package bench

import (
	"fmt"
	"math/rand/v2"

	"github.com/roach88/lootbench/internal/inventory"
)

var (
	workloadItems      = []string{"Faca", "Kit", "Bala", "Corda", "Radio", "Mapa", "Pistola", "Bandagem", "Lanterna", "Chip"}
	workloadCategories = []string{"arma", "cura", "municao", "ferramenta", "componente"}
)

// Workload returns n records generated from seed. The same (n, seed) always
// yields the same records. Names are unique within one workload.
func Workload(n int, seed uint64) []inventory.Record {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	perm := rng.Perm(n)

	out := make([]inventory.Record, n)
	for i := range out {
		id := perm[i]
		out[i] = inventory.Record{
			Name:     fmt.Sprintf("%s-%03d", workloadItems[id%len(workloadItems)], id),
			Category: workloadCategories[rng.IntN(len(workloadCategories))],
			Priority: 1 + rng.IntN(5),
		}
	}
	return out
}

// Fill inserts records into s in order, stopping at the first failure.
func Fill(s *inventory.ArrayStore, records []inventory.Record) error {
	for _, r := range records {
		if err := s.Insert(r); err != nil {
			return fmt.Errorf("insert %q: %w", r.Name, err)
		}
	}
	return nil
}
