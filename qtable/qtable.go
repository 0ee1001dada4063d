// Package qtable implements a dense Q-value table indexed by user and item identifiers.
//
// Values live in a gonum matrix with one row per user and one column per item. Identifiers
// are translated to indices through lookup tables and every access validates the translation,
// so a pair outside the initial universe is reported as an error instead of indexing out of range.
package qtable

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/sw965/omw/slicesx"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmptyUniverse = errors.New("qtable: empty user or item universe")
	ErrDuplicateID   = errors.New("qtable: duplicate identifier")
	ErrUnknownUser   = errors.New("qtable: unknown user")
	ErrUnknownItem   = errors.New("qtable: unknown item")
)

type Table struct {
	users   []int
	items   []int
	userIdx map[int]int
	itemIdx map[int]int
	values  *mat.Dense
}

// New returns a table covering users x items with every value set to 0.
// The order of items decides the arg-max tie-break.
func New(users, items []int) (*Table, error) {
	if len(users) == 0 || len(items) == 0 {
		return nil, fmt.Errorf("%w: %d users, %d items", ErrEmptyUniverse, len(users), len(items))
	}
	if !slicesx.IsUnique(users) {
		return nil, fmt.Errorf("%w in users %v", ErrDuplicateID, users)
	}
	if !slicesx.IsUnique(items) {
		return nil, fmt.Errorf("%w in items %v", ErrDuplicateID, items)
	}

	return &Table{
		users:   slices.Clone(users),
		items:   slices.Clone(items),
		userIdx: indexOf(users),
		itemIdx: indexOf(items),
		values:  mat.NewDense(len(users), len(items), nil),
	}, nil
}

func indexOf(ids []int) map[int]int {
	m := make(map[int]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

func (t *Table) row(user int) (int, error) {
	i, ok := t.userIdx[user]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownUser, user)
	}
	return i, nil
}

func (t *Table) cell(user, item int) (int, int, error) {
	i, err := t.row(user)
	if err != nil {
		return 0, 0, err
	}
	j, ok := t.itemIdx[item]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %d", ErrUnknownItem, item)
	}
	return i, j, nil
}

func (t *Table) Get(user, item int) (float64, error) {
	i, j, err := t.cell(user, item)
	if err != nil {
		return 0, err
	}
	return t.values.At(i, j), nil
}

func (t *Table) Set(user, item int, v float64) error {
	i, j, err := t.cell(user, item)
	if err != nil {
		return err
	}
	t.values.Set(i, j, v)
	return nil
}

func (t *Table) RowMax(user int) (float64, error) {
	i, err := t.row(user)
	if err != nil {
		return 0, err
	}
	return floats.Max(t.values.RawRowView(i)), nil
}

// RowArgmax returns the item holding the row maximum.
// Ties go to the item that comes first in the item universe.
func (t *Table) RowArgmax(user int) (int, error) {
	i, err := t.row(user)
	if err != nil {
		return 0, err
	}
	return t.items[floats.MaxIdx(t.values.RawRowView(i))], nil
}

func (t *Table) Row(user int) ([]float64, error) {
	i, err := t.row(user)
	if err != nil {
		return nil, err
	}
	return mat.Row(nil, i, t.values), nil
}

func (t *Table) HasUser(user int) bool {
	_, ok := t.userIdx[user]
	return ok
}

func (t *Table) Users() []int {
	return slices.Clone(t.users)
}

func (t *Table) Items() []int {
	return slices.Clone(t.items)
}

func (t *Table) Min() float64 {
	return mat.Min(t.values)
}

func (t *Table) Clone() *Table {
	return &Table{
		users:   slices.Clone(t.users),
		items:   slices.Clone(t.items),
		userIdx: indexOf(t.users),
		itemIdx: indexOf(t.items),
		values:  mat.DenseCopyOf(t.values),
	}
}

// Equal reports whether both tables share the same universe, in the same order, and identical values.
func (t *Table) Equal(other *Table) bool {
	if other == nil {
		return false
	}
	return slices.Equal(t.users, other.users) &&
		slices.Equal(t.items, other.items) &&
		mat.Equal(t.values, other.values)
}

func (t *Table) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, item := range t.items {
		fmt.Fprintf(w, "\t%d", item)
	}
	fmt.Fprintln(w, "\t")
	for i, user := range t.users {
		fmt.Fprintf(w, "%d", user)
		for _, v := range t.values.RawRowView(i) {
			fmt.Fprintf(w, "\t%.6f", v)
		}
		fmt.Fprintln(w, "\t")
	}
	w.Flush()
	return sb.String()
}
