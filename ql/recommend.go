package ql

import (
	"github.com/sw965/qrec/qtable"
)

type Recommendation struct {
	User int
	Item int
	Q    float64
}

// Recommend returns the item with the highest Q-value for user.
func Recommend(user int, table *qtable.Table) (int, error) {
	return table.RowArgmax(user)
}

func RecommendAll(table *qtable.Table) ([]Recommendation, error) {
	users := table.Users()
	recs := make([]Recommendation, 0, len(users))
	for _, user := range users {
		item, err := Recommend(user, table)
		if err != nil {
			return nil, err
		}
		q, err := table.Get(user, item)
		if err != nil {
			return nil, err
		}
		recs = append(recs, Recommendation{User: user, Item: item, Q: q})
	}
	return recs, nil
}
