package ql

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"github.com/sw965/qrec/qtable"
	"github.com/sw965/qrec/rating"
)

var ErrInvalidConfig = errors.New("ql: invalid config")

type Config struct {
	LearningRate    float64
	DiscountFactor  float64
	ExplorationRate float64
	Epochs          int
}

func DefaultConfig() Config {
	return Config{
		LearningRate:    0.1,
		DiscountFactor:  0.9,
		ExplorationRate: 0.2,
		Epochs:          1000,
	}
}

// Validate checks learning rate in (0,1], discount factor in [0,1), exploration rate in [0,1]
// and a non-negative epoch count. Zero epochs is allowed and trains nothing.
func (c Config) Validate() error {
	switch {
	case math.IsNaN(c.LearningRate) || c.LearningRate <= 0 || c.LearningRate > 1:
		return fmt.Errorf("%w: learning rate %v not in (0,1]", ErrInvalidConfig, c.LearningRate)
	case math.IsNaN(c.DiscountFactor) || c.DiscountFactor < 0 || c.DiscountFactor >= 1:
		return fmt.Errorf("%w: discount factor %v not in [0,1)", ErrInvalidConfig, c.DiscountFactor)
	case math.IsNaN(c.ExplorationRate) || c.ExplorationRate < 0 || c.ExplorationRate > 1:
		return fmt.Errorf("%w: exploration rate %v not in [0,1]", ErrInvalidConfig, c.ExplorationRate)
	case c.Epochs < 0:
		return fmt.Errorf("%w: epochs %d is negative", ErrInvalidConfig, c.Epochs)
	}
	return nil
}

type Trainer struct {
	store  *rating.Store
	config Config
	rng    *rand.Rand
	policy Policy
	logger zerolog.Logger
}

type Option func(*Trainer)

// WithPolicy replaces the default epsilon-greedy selector.
func WithPolicy(p Policy) Option {
	return func(t *Trainer) {
		t.policy = p
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(t *Trainer) {
		t.logger = logger
	}
}

func NewTrainer(store *rating.Store, config Config, rng *rand.Rand, opts ...Option) (*Trainer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: nil rating store", ErrInvalidConfig)
	}
	if len(store.Users()) == 0 || len(store.Items()) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, qtable.ErrEmptyUniverse)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random generator", ErrInvalidConfig)
	}

	t := &Trainer{
		store:  store,
		config: config,
		rng:    rng,
		policy: EpsilonGreedy{Rate: config.ExplorationRate},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.policy == nil {
		return nil, fmt.Errorf("%w: nil policy", ErrInvalidConfig)
	}
	return t, nil
}

func (t *Trainer) Config() Config {
	return t.config
}

// Train builds a zeroed table over the store's universe and runs Epochs passes over the users.
// The returned table is owned by the caller.
func (t *Trainer) Train() (*qtable.Table, error) {
	users := t.store.Users()
	table, err := qtable.New(users, t.store.Items())
	if err != nil {
		return nil, err
	}

	t.logger.Debug().
		Int("users", len(users)).
		Int("items", len(table.Items())).
		Int("epochs", t.config.Epochs).
		Float64("learning_rate", t.config.LearningRate).
		Float64("discount_factor", t.config.DiscountFactor).
		Float64("exploration_rate", t.config.ExplorationRate).
		Msg("training started")

	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		for _, user := range users {
			if err := t.Step(table, user); err != nil {
				return nil, fmt.Errorf("epoch %d: %w", epoch, err)
			}
		}
	}

	t.logger.Debug().Int("steps", t.config.Epochs*len(users)).Msg("training finished")
	return table, nil
}

// Step selects an item for user with the trainer's policy and applies one update.
func (t *Trainer) Step(table *qtable.Table, user int) error {
	item, err := t.policy.Select(user, table, t.rng)
	if err != nil {
		return err
	}
	return Update(table, t.store, user, item, t.config.LearningRate, t.config.DiscountFactor)
}
