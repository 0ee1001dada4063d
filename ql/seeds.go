package ql

import (
	"runtime"

	"github.com/sw965/omw/parallel"
	"github.com/sw965/qrec/mathx/randx"
	"github.com/sw965/qrec/qtable"
	"github.com/sw965/qrec/rating"
)

// TrainSeeds trains one independent table per seed over p workers.
// Each run owns its table and generator, so tables[i] matches a sequential run seeded with seeds[i].
func TrainSeeds(store *rating.Store, config Config, seeds []uint64, p int, opts ...Option) ([]*qtable.Table, error) {
	if p <= 0 {
		p = runtime.NumCPU()
	}
	tables := make([]*qtable.Table, len(seeds))
	err := parallel.For(len(seeds), p, func(workerId, idx int) error {
		trainer, err := NewTrainer(store, config, randx.New(seeds[idx]), opts...)
		if err != nil {
			return err
		}
		table, err := trainer.Train()
		if err != nil {
			return err
		}
		tables[idx] = table
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// Agreement returns, per user, the fraction of tables whose recommendation equals want[user].
// Users missing from want are skipped.
func Agreement(tables []*qtable.Table, want map[int]int) (map[int]float64, error) {
	hits := map[int]int{}
	for _, table := range tables {
		for _, user := range table.Users() {
			target, ok := want[user]
			if !ok {
				continue
			}
			item, err := Recommend(user, table)
			if err != nil {
				return nil, err
			}
			if item == target {
				hits[user]++
			} else if _, seen := hits[user]; !seen {
				hits[user] = 0
			}
		}
	}

	ratios := make(map[int]float64, len(hits))
	for user, n := range hits {
		ratios[user] = float64(n) / float64(len(tables))
	}
	return ratios, nil
}
