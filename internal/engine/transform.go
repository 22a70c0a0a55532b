package engine

import (
	"sort"

	"github.com/pkg/errors"
)

// DeriveFunc computes one derived value from a row. Returning an error
// aborts the whole derivation.
type DeriveFunc func(Row) (float64, error)

// Ratio derives num / denom. Both columns must exist and be numeric
// (ErrUnknownColumn / ErrParse otherwise). A zero denominator fails the
// derivation with ErrDivisionByZero; no infinity or NaN is ever stored.
func Ratio(num, denom string) DeriveFunc {
	return func(r Row) (float64, error) {
		n, err := r.Numeric(num)
		if err != nil {
			return 0, err
		}
		d, err := r.Numeric(denom)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, errors.Wrapf(ErrDivisionByZero, "%s/%s at label %d", num, denom, r.Label())
		}
		return n / d, nil
	}
}

// AddDerivedColumn evaluates fn over every row and appends the results as a
// new float column named name. This is the engine's only mutating operation.
// Fails with ErrDuplicateColumn if name already exists. All values are
// computed into scratch storage before the column is attached, so on any
// error the table is unchanged.
func (t *Table) AddDerivedColumn(name string, fn DeriveFunc) error {
	if _, exists := t.byName[name]; exists {
		return errors.Wrapf(ErrDuplicateColumn, "column %q", name)
	}
	vals := make([]float64, t.NumRows())
	for p := 0; p < t.NumRows(); p++ {
		v, err := fn(t.Row(p))
		if err != nil {
			return err
		}
		vals[p] = v
	}
	t.cols = append(t.cols, &Column{Name: name, Type: TypeFloat, Floats: vals})
	t.byName[name] = len(t.cols) - 1
	return nil
}

// Sort returns a new Table with rows ordered by the named column. The sort
// is stable (ties keep original relative order), the receiver is not
// mutated, and index labels travel with their rows, so the result's index
// is a permutation of the input's. Missing cells sort last either way.
// Fails with ErrUnknownColumn if the column is absent.
func (t *Table) Sort(column string, ascending bool) (*Table, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	pos := make([]int, t.NumRows())
	for i := range pos {
		pos[i] = i
	}

	var less func(a, b int) bool
	if c.Type.Numeric() {
		less = func(a, b int) bool { return c.Float(a) < c.Float(b) }
	} else {
		less = func(a, b int) bool { return c.Text[a] < c.Text[b] }
	}

	sort.SliceStable(pos, func(i, j int) bool {
		a, b := pos[i], pos[j]
		switch {
		case c.IsMissing(a):
			return false
		case c.IsMissing(b):
			return true
		case ascending:
			return less(a, b)
		default:
			return less(b, a)
		}
	})

	return t.take(pos), nil
}
