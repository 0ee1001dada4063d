package ql_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/qrec/mathx/randx"
	"github.com/sw965/qrec/ql"
	"github.com/sw965/qrec/qtable"
)

func newPolicyTable(t *testing.T) *qtable.Table {
	t.Helper()
	table, err := qtable.New([]int{1, 2}, []int{1, 2, 3, 4})
	require.NoError(t, err)
	require.NoError(t, table.Set(1, 3, 1.0))
	return table
}

func TestSelectItemExploit(t *testing.T) {
	table := newPolicyTable(t)
	rng := randx.New(11)

	for _, rate := range []float64{0, -1} {
		for range 200 {
			item, err := ql.SelectItem(1, table, rate, rng)
			require.NoError(t, err)
			if item != 3 {
				t.Fatalf("rate %v: want: 3, got: %d", rate, item)
			}
		}
	}

	item, err := ql.SelectItem(2, table, 0, rng)
	require.NoError(t, err)
	assert.Equal(t, 1, item)
}

func TestSelectItemExplore(t *testing.T) {
	table := newPolicyTable(t)
	rng := randx.New(5)
	items := table.Items()
	counts := map[int]int{}

	n := 4000
	for range n {
		item, err := ql.SelectItem(1, table, 1, rng)
		require.NoError(t, err)
		if !slices.Contains(items, item) {
			t.Fatalf("item %d outside universe", item)
		}
		counts[item]++
	}

	for _, item := range items {
		assert.InDelta(t, 0.25, float64(counts[item])/float64(n), 0.05, "item %d", item)
	}
}

func TestSelectItemMixed(t *testing.T) {
	table := newPolicyTable(t)
	rng := randx.New(9)

	n := 10000
	greedy := 0
	for range n {
		item, err := ql.SelectItem(1, table, 0.2, rng)
		require.NoError(t, err)
		if item == 3 {
			greedy++
		}
	}
	// 0.8 exploit plus a quarter of the 0.2 explore share.
	assert.InDelta(t, 0.85, float64(greedy)/float64(n), 0.03)
}

func TestSelectItemUnknownUser(t *testing.T) {
	table := newPolicyTable(t)
	for _, rate := range []float64{0, 1} {
		_, err := ql.SelectItem(7, table, rate, randx.New(1))
		assert.ErrorIs(t, err, qtable.ErrUnknownUser)
	}
	_, err := ql.Fixed{Item: 1}.Select(7, table, randx.New(1))
	assert.ErrorIs(t, err, qtable.ErrUnknownUser)
}

func TestEpsilonGreedyMatchesSelectItem(t *testing.T) {
	table := newPolicyTable(t)
	a := randx.New(21)
	b := randx.New(21)
	policy := ql.EpsilonGreedy{Rate: 0.5}

	for range 100 {
		got, err := policy.Select(1, table, a)
		require.NoError(t, err)
		want, err := ql.SelectItem(1, table, 0.5, b)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}
