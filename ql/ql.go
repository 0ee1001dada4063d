// Package ql trains a user x item Q-table from rating rewards with epsilon-greedy Q-learning.
//
// Every user is a single state and recommending an item is the action. The update target uses
// the maximum of the same user's row as the future value: there is no transition to another
// state, so this is a degenerate one-state Bellman backup rather than a multi-step one.
package ql

import (
	"github.com/sw965/qrec/qtable"
	"github.com/sw965/qrec/rating"
)

// UpdateQ returns q + lr * (reward + discountRate*nextMaxQ - q).
// The expression is evaluated in this exact order so trained tables are reproducible bit for bit.
func UpdateQ(q, nextMaxQ, reward, lr, discountRate float64) float64 {
	return q + lr*(reward+discountRate*nextMaxQ-q)
}

// Update applies one Q-learning step for (user, item) to table in place.
func Update(table *qtable.Table, store *rating.Store, user, item int, lr, discountRate float64) error {
	reward := store.Reward(user, item)
	q, err := table.Get(user, item)
	if err != nil {
		return err
	}
	maxQ, err := table.RowMax(user)
	if err != nil {
		return err
	}
	return table.Set(user, item, UpdateQ(q, maxQ, reward, lr, discountRate))
}
