package engine

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Project returns a new Table holding only the requested columns, in the
// requested order, with all rows and the index preserved.
// Fails with ErrUnknownColumn if any name is absent.
func (t *Table) Project(names ...string) (*Table, error) {
	all := make([]int, t.NumRows())
	for p := range all {
		all[p] = p
	}
	cols := make([]*Column, len(names))
	for i, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		cols[i] = c.take(all)
	}
	index := append([]int(nil), t.index...)
	return NewTable(cols, index)
}

// Predicate is a per-row boolean test.
type Predicate func(Row) bool

// Filter returns a new Table with only the rows satisfying pred, in original
// relative order. Index labels travel with their rows, so the result's index
// may be non-contiguous. A result with zero rows is valid.
func (t *Table) Filter(pred Predicate) *Table {
	pos := make([]int, 0, t.NumRows())
	for p := 0; p < t.NumRows(); p++ {
		if pred(t.Row(p)) {
			pos = append(pos, p)
		}
	}
	return t.take(pos)
}

// CompareOp is a comparison operator in a Condition.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// Condition is a single "column op value" comparison, the textual filter
// form accepted by the CLI and HTTP surfaces. Value stays raw text; it is
// parsed against the column's type at evaluation time.
type Condition struct {
	Column string
	Op     CompareOp
	Value  string
}

// Longest operators first so ">=" is not read as ">".
var condOps = []struct {
	text string
	op   CompareOp
}{
	{"==", OpEq}, {"!=", OpNe}, {"<=", OpLe}, {">=", OpGe},
	{"<", OpLt}, {">", OpGt}, {"=", OpEq},
}

// ParseCondition parses expressions like "loyalty_score > 75" or
// "region == South". Fails with ErrParse on anything else.
func ParseCondition(expr string) (Condition, error) {
	for _, c := range condOps {
		if i := strings.Index(expr, c.text); i > 0 {
			col := strings.TrimSpace(expr[:i])
			val := strings.TrimSpace(expr[i+len(c.text):])
			if col == "" || val == "" {
				break
			}
			return Condition{Column: col, Op: c.op, Value: val}, nil
		}
	}
	return Condition{}, errors.Wrapf(ErrParse, "bad filter expression %q", expr)
}

// FilterWhere evaluates a Condition against every row. Numeric columns
// compare numerically (the condition value must parse as a number); text
// columns compare lexically. Fails with ErrUnknownColumn before scanning.
func (t *Table) FilterWhere(cond Condition) (*Table, error) {
	c, err := t.Column(cond.Column)
	if err != nil {
		return nil, err
	}

	if c.Type.Numeric() {
		want, err := strconv.ParseFloat(cond.Value, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrParse, "value %q is not numeric, column %q is", cond.Value, c.Name)
		}
		return t.Filter(func(r Row) bool {
			if r.IsMissing(cond.Column) {
				return false
			}
			return compareFloat(r.Float(cond.Column), want, cond.Op)
		}), nil
	}
	return t.Filter(func(r Row) bool {
		if r.IsMissing(cond.Column) {
			return false
		}
		return compareText(r.Text(cond.Column), cond.Value, cond.Op)
	}), nil
}

func compareFloat(got, want float64, op CompareOp) bool {
	switch op {
	case OpEq:
		return got == want
	case OpNe:
		return got != want
	case OpLt:
		return got < want
	case OpLe:
		return got <= want
	case OpGt:
		return got > want
	default:
		return got >= want
	}
}

func compareText(got, want string, op CompareOp) bool {
	switch op {
	case OpEq:
		return got == want
	case OpNe:
		return got != want
	case OpLt:
		return got < want
	case OpLe:
		return got <= want
	case OpGt:
		return got > want
	default:
		return got >= want
	}
}

// LabelRange selects rows by index label, inclusive of both endpoints, and
// optionally projects columns (no names means all). The result spans the
// first occurrence of start through the first occurrence of end in physical
// order; an end label positioned before start yields an empty table.
// Fails with ErrOutOfRange when an endpoint label is absent and
// ErrUnknownColumn under the same rule as Project.
func (t *Table) LabelRange(start, end int, names ...string) (*Table, error) {
	from := -1
	to := -1
	for p, label := range t.index {
		if from == -1 && label == start {
			from = p
		}
		if to == -1 && label == end {
			to = p
		}
	}
	if from == -1 {
		return nil, errors.Wrapf(ErrOutOfRange, "label %d not in index", start)
	}
	if to == -1 {
		return nil, errors.Wrapf(ErrOutOfRange, "label %d not in index", end)
	}

	pos := make([]int, 0)
	for p := from; p <= to; p++ {
		pos = append(pos, p)
	}
	sub := t.take(pos)
	if len(names) == 0 {
		return sub, nil
	}
	return sub.Project(names...)
}
