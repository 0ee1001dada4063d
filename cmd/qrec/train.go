package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sw965/qrec/mathx/randx"
	"github.com/sw965/qrec/ql"
	"github.com/sw965/qrec/rating"
)

func newTrainCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train once and print the Q-table and recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd, opts)
		},
	}
}

func runTrain(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, err := opts.load(cmd)
	if err != nil {
		return err
	}
	obs, err := loadObservations(cfg, logger)
	if err != nil {
		return err
	}
	store := rating.NewStore(obs)

	trainer, err := ql.NewTrainer(store, cfg.Trainer(), randx.New(cfg.Seed), ql.WithLogger(logger))
	if err != nil {
		return err
	}
	table, err := trainer.Train()
	if err != nil {
		return err
	}
	recs, err := ql.RecommendAll(table)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Ratings:")
	fmt.Fprint(w, obs.Table())
	fmt.Fprintln(w, "\nQ-table:")
	fmt.Fprint(w, table.String())
	fmt.Fprintln(w)
	for _, rec := range recs {
		fmt.Fprintf(w, "Recommend item %d to user %d\n", rec.Item, rec.User)
	}

	feedback := rating.NewSampleFeedback()
	fmt.Fprintln(w, "\nUser feedback:")
	for _, user := range feedback.Users() {
		fmt.Fprintf(w, "User %d feedback: %s\n", user, formatFeedback(feedback, user))
	}
	return nil
}

func formatFeedback(feedback rating.Feedback, user int) string {
	parts := make([]string, 0, len(feedback[user]))
	for _, item := range feedback.Items(user) {
		parts = append(parts, fmt.Sprintf("%d: %d", item, feedback[user][item]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
