package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/sw965/qrec/config"
	"github.com/sw965/qrec/logging"
	"github.com/sw965/qrec/rating"
)

type rootOptions struct {
	configFile      string
	logLevel        string
	logFormat       string
	dataPath        string
	seed            uint64
	epochs          int
	learningRate    float64
	discountFactor  float64
	explorationRate float64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:   "qrec",
		Short: "Tabular Q-learning item recommender",
		Long: `qrec learns one recommended item per user from explicit ratings.

Each user is a single state and recommending an item is the action. The reward is the
user's rating for that item, or 0 when the user never rated it.

Commands:
  train  Train once and print the ratings, the Q-table and a recommendation per user
  bench  Train over many seeds and report how often each user gets their top-rated item`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Config file (default: $"+config.PathEnvVar+")")
	flags.StringVar(&opts.logLevel, "log-level", defaults.Logging.Level, "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", defaults.Logging.Format, "Log format (console, json)")
	flags.StringVar(&opts.dataPath, "data", "", "JSON ratings file (default: built-in sample)")
	flags.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 draws one)")
	flags.IntVar(&opts.epochs, "epochs", defaults.Learning.Epochs, "Training epochs")
	flags.Float64Var(&opts.learningRate, "learning-rate", defaults.Learning.LearningRate, "Q-value step size in (0,1]")
	flags.Float64Var(&opts.discountFactor, "discount-factor", defaults.Learning.DiscountFactor, "Weight of the row maximum in [0,1)")
	flags.Float64Var(&opts.explorationRate, "exploration-rate", defaults.Learning.ExplorationRate, "Probability of a random item in [0,1]")

	cmd.AddCommand(newTrainCmd(opts))
	cmd.AddCommand(newBenchCmd(opts))
	return cmd
}

// load merges config sources with the flags the user actually set.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if flags.Changed("data") {
		cfg.DataPath = o.dataPath
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("epochs") {
		cfg.Learning.Epochs = o.epochs
	}
	if flags.Changed("learning-rate") {
		cfg.Learning.LearningRate = o.learningRate
	}
	if flags.Changed("discount-factor") {
		cfg.Learning.DiscountFactor = o.discountFactor
	}
	if flags.Changed("exploration-rate") {
		cfg.Learning.ExplorationRate = o.explorationRate
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), err
	}

	logCfg := cfg.Logger()
	logCfg.Output = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger, nil
}

func loadObservations(cfg *config.Config, logger zerolog.Logger) (rating.Observations, error) {
	if cfg.DataPath == "" {
		logger.Debug().Msg("using built-in sample ratings")
		return rating.NewSampleObservations(), nil
	}
	obs, err := rating.LoadObservationsJSON(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("%s contains no observations", cfg.DataPath)
	}
	logger.Debug().Str("path", cfg.DataPath).Int("observations", len(obs)).Msg("loaded ratings")
	return obs, nil
}
