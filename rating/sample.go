package rating

import (
	"maps"
	"slices"
)

func NewSampleObservations() Observations {
	return Observations{
		{UserID: 1, ItemID: 1, Rating: 5},
		{UserID: 1, ItemID: 2, Rating: 3},
		{UserID: 1, ItemID: 3, Rating: 2},
		{UserID: 2, ItemID: 1, Rating: 4},
		{UserID: 2, ItemID: 3, Rating: 5},
		{UserID: 3, ItemID: 2, Rating: 1},
		{UserID: 3, ItemID: 3, Rating: 4},
		{UserID: 3, ItemID: 4, Rating: 5},
	}
}

// Feedback maps user -> item -> 1 (clicked) or 0. It is shown alongside results and never used for training.
type Feedback map[int]map[int]int

func NewSampleFeedback() Feedback {
	return Feedback{
		1: {1: 1, 2: 0, 3: 0},
		2: {1: 0, 2: 1, 3: 1},
		3: {1: 1, 2: 1, 3: 0},
	}
}

func (f Feedback) Users() []int {
	return slices.Sorted(maps.Keys(f))
}

func (f Feedback) Items(user int) []int {
	return slices.Sorted(maps.Keys(f[user]))
}
