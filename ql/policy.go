package ql

import (
	"fmt"
	"math/rand/v2"

	"github.com/sw965/omw/mathx/randx"
	crandx "github.com/sw965/qrec/mathx/randx"
	"github.com/sw965/qrec/qtable"
)

type Policy interface {
	Select(user int, table *qtable.Table, rng *rand.Rand) (int, error)
}

// SelectItem explores with probability explorationRate, picking an item uniformly at random,
// and otherwise exploits the row arg-max of table.
func SelectItem(user int, table *qtable.Table, explorationRate float64, rng *rand.Rand) (int, error) {
	if !table.HasUser(user) {
		return 0, fmt.Errorf("%w: %d", qtable.ErrUnknownUser, user)
	}
	if crandx.Bernoulli(explorationRate, rng) {
		return randx.Choice(table.Items(), rng)
	}
	return table.RowArgmax(user)
}

type EpsilonGreedy struct {
	Rate float64
}

func (p EpsilonGreedy) Select(user int, table *qtable.Table, rng *rand.Rand) (int, error) {
	return SelectItem(user, table, p.Rate, rng)
}

// Fixed always selects Item. Useful to drive a single pair deterministically.
type Fixed struct {
	Item int
}

func (p Fixed) Select(user int, table *qtable.Table, rng *rand.Rand) (int, error) {
	if !table.HasUser(user) {
		return 0, fmt.Errorf("%w: %d", qtable.ErrUnknownUser, user)
	}
	return p.Item, nil
}
