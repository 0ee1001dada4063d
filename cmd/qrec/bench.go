package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sw965/qrec/mathx/randx"
	"github.com/sw965/qrec/ql"
	"github.com/sw965/qrec/rating"
)

type benchOptions struct {
	runs    int
	workers int
}

func newBenchCmd(opts *rootOptions) *cobra.Command {
	bopts := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Train over many seeds and report agreement with each user's top-rated item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, opts, bopts)
		},
	}
	cmd.Flags().IntVar(&bopts.runs, "runs", 0, "Number of seeded runs (default from config)")
	cmd.Flags().IntVar(&bopts.workers, "workers", 0, "Parallel workers (0 uses every CPU)")
	return cmd
}

func runBench(cmd *cobra.Command, opts *rootOptions, bopts *benchOptions) error {
	cfg, logger, err := opts.load(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("runs") {
		cfg.Bench.Runs = bopts.runs
	}
	if cmd.Flags().Changed("workers") {
		cfg.Bench.Workers = bopts.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	obs, err := loadObservations(cfg, logger)
	if err != nil {
		return err
	}
	store := rating.NewStore(obs)

	seeds := randx.Seeds(cfg.Seed, cfg.Bench.Runs)
	logger.Info().Int("runs", len(seeds)).Int("workers", cfg.Bench.Workers).Msg("bench started")
	tables, err := ql.TrainSeeds(store, cfg.Trainer(), seeds, cfg.Bench.Workers)
	if err != nil {
		return err
	}

	want := map[int]int{}
	for _, user := range store.Users() {
		if item, ok := store.TopRated(user); ok {
			want[user] = item
		}
	}
	agreement, err := ql.Agreement(tables, want)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	negative := 0
	for _, table := range tables {
		if table.Min() < 0 {
			negative++
		}
	}
	for _, user := range store.Users() {
		fmt.Fprintf(w, "User %d: top-rated item %d, agreement %.2f over %d runs\n", user, want[user], agreement[user], len(tables))
	}
	fmt.Fprintf(w, "Tables with negative entries: %d\n", negative)
	return nil
}
