// Package rating holds explicit (user, item, rating) observations and answers reward lookups.
package rating

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/sw965/omw/encoding/jsonx"
)

type Observation struct {
	UserID int
	ItemID int
	Rating float64
}

type Observations []Observation

func LoadObservationsJSON(path string) (Observations, error) {
	obs, err := jsonx.Load[Observations](path)
	if err != nil {
		return nil, fmt.Errorf("failed to load observations %s: %w", path, err)
	}
	return obs, nil
}

// Users returns the distinct user ids in order of first appearance.
func (obs Observations) Users() []int {
	users := make([]int, 0, len(obs))
	for _, o := range obs {
		if !slices.Contains(users, o.UserID) {
			users = append(users, o.UserID)
		}
	}
	return users
}

// Items returns the distinct item ids in order of first appearance.
func (obs Observations) Items() []int {
	items := make([]int, 0, len(obs))
	for _, o := range obs {
		if !slices.Contains(items, o.ItemID) {
			items = append(items, o.ItemID)
		}
	}
	return items
}

func (obs Observations) Table() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "\tuser_id\titem_id\trating\t")
	for i, o := range obs {
		fmt.Fprintf(w, "%d\t%d\t%d\t%g\t\n", i, o.UserID, o.ItemID, o.Rating)
	}
	w.Flush()
	return sb.String()
}

type key struct {
	user int
	item int
}

// Store is immutable once built. A pair that appears more than once keeps its first rating.
type Store struct {
	observations Observations
	ratings      map[key]float64
	users        []int
	items        []int
}

func NewStore(observations Observations) *Store {
	ratings := make(map[key]float64, len(observations))
	for _, o := range observations {
		k := key{user: o.UserID, item: o.ItemID}
		if _, ok := ratings[k]; ok {
			continue
		}
		ratings[k] = o.Rating
	}
	return &Store{
		observations: slices.Clone(observations),
		ratings:      ratings,
		users:        observations.Users(),
		items:        observations.Items(),
	}
}

// Reward returns the observed rating, or 0 when the user never rated the item.
func (s *Store) Reward(user, item int) float64 {
	r, _ := s.Lookup(user, item)
	return r
}

func (s *Store) Lookup(user, item int) (float64, bool) {
	r, ok := s.ratings[key{user: user, item: item}]
	return r, ok
}

// TopRated returns the user's highest rated item. Ties go to the earlier observation.
func (s *Store) TopRated(user int) (int, bool) {
	best, found := 0, false
	var bestRating float64
	for _, o := range s.observations {
		if o.UserID != user {
			continue
		}
		if r := s.ratings[key{user: user, item: o.ItemID}]; !found || r > bestRating {
			best, bestRating, found = o.ItemID, r, true
		}
	}
	return best, found
}

func (s *Store) Users() []int {
	return slices.Clone(s.users)
}

func (s *Store) Items() []int {
	return slices.Clone(s.items)
}

func (s *Store) Observations() Observations {
	return slices.Clone(s.observations)
}

func (s *Store) Len() int {
	return len(s.ratings)
}
