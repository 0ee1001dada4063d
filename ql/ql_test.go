package ql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/qrec/ql"
	"github.com/sw965/qrec/qtable"
	"github.com/sw965/qrec/rating"
)

func TestUpdateQ(t *testing.T) {
	tests := []struct {
		name         string
		q            float64
		nextMaxQ     float64
		reward       float64
		lr           float64
		discountRate float64
		want         float64
	}{
		{name: "from_zero", q: 0, nextMaxQ: 0, reward: 5, lr: 0.1, discountRate: 0.9, want: 0.5},
		{name: "full_step", q: 3, nextMaxQ: 2, reward: 5, lr: 1, discountRate: 0.9, want: 6.8},
		{name: "no_discount", q: 1, nextMaxQ: 100, reward: 2, lr: 0.5, discountRate: 0, want: 1.5},
		{name: "fixed_point", q: 50, nextMaxQ: 50, reward: 5, lr: 0.1, discountRate: 0.9, want: 50},
		{name: "zero_reward_decay", q: 4, nextMaxQ: 0, reward: 0, lr: 0.25, discountRate: 0.9, want: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ql.UpdateQ(tc.q, tc.nextMaxQ, tc.reward, tc.lr, tc.discountRate)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestUpdateUsesSameUserRow(t *testing.T) {
	store := rating.NewStore(rating.NewSampleObservations())
	table, err := qtable.New(store.Users(), store.Items())
	require.NoError(t, err)
	require.NoError(t, table.Set(1, 4, 2.0))
	require.NoError(t, table.Set(2, 4, 100.0))

	require.NoError(t, ql.Update(table, store, 1, 1, 1.0, 0.9))

	got, err := table.Get(1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 5+0.9*2.0, got, 1e-12)
}

func TestUpdateUnobservedPair(t *testing.T) {
	store := rating.NewStore(rating.NewSampleObservations())
	table, err := qtable.New(store.Users(), store.Items())
	require.NoError(t, err)
	require.NoError(t, table.Set(2, 1, 10.0))

	require.NoError(t, ql.Update(table, store, 2, 2, 0.5, 0.9))

	got, err := table.Get(2, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*(0+0.9*10.0), got, 1e-12)
}

func TestUpdateUnknownPair(t *testing.T) {
	store := rating.NewStore(rating.NewSampleObservations())
	table, err := qtable.New(store.Users(), store.Items())
	require.NoError(t, err)

	assert.ErrorIs(t, ql.Update(table, store, 9, 1, 0.1, 0.9), qtable.ErrUnknownUser)
	assert.ErrorIs(t, ql.Update(table, store, 1, 9, 0.1, 0.9), qtable.ErrUnknownItem)
}
