package engine

import (
	"github.com/pkg/errors"
)

// ColumnType is the inferred semantic type of a column.
type ColumnType int

const (
	TypeInt ColumnType = iota
	TypeFloat
	TypeText
)

func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeText:
		return "text"
	default:
		return "unknown"
	}
}

// Numeric reports whether the type participates in statistics and derivations.
func (t ColumnType) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Column holds one named column in Struct-of-Arrays form.
// Exactly one of the value slices is populated, matching Type.
// missing marks cells that were empty in the source; it is nil when
// every cell is present.
type Column struct {
	Name string
	Type ColumnType

	Ints   []int64
	Floats []float64
	Text   []string

	missing []bool
}

// NewIntColumn builds an integer column. missing may be nil.
func NewIntColumn(name string, vals []int64, missing []bool) *Column {
	return &Column{Name: name, Type: TypeInt, Ints: vals, missing: missing}
}

// NewFloatColumn builds a floating-point column. missing may be nil.
func NewFloatColumn(name string, vals []float64, missing []bool) *Column {
	return &Column{Name: name, Type: TypeFloat, Floats: vals, missing: missing}
}

// NewTextColumn builds a text column. missing may be nil.
func NewTextColumn(name string, vals []string, missing []bool) *Column {
	return &Column{Name: name, Type: TypeText, Text: vals, missing: missing}
}

func (c *Column) Len() int {
	switch c.Type {
	case TypeInt:
		return len(c.Ints)
	case TypeFloat:
		return len(c.Floats)
	default:
		return len(c.Text)
	}
}

// IsMissing reports whether the cell at position i was empty in the source.
func (c *Column) IsMissing(i int) bool {
	return c.missing != nil && c.missing[i]
}

// NonMissing returns the number of populated cells.
func (c *Column) NonMissing() int {
	n := c.Len()
	if c.missing == nil {
		return n
	}
	for _, m := range c.missing {
		if m {
			n--
		}
	}
	return n
}

// Float returns the cell at position i widened to float64.
// Only meaningful for numeric columns; text columns yield 0.
func (c *Column) Float(i int) float64 {
	switch c.Type {
	case TypeInt:
		return float64(c.Ints[i])
	case TypeFloat:
		return c.Floats[i]
	default:
		return 0
	}
}

// Value returns the cell at position i as its natural Go value,
// or nil for a missing cell.
func (c *Column) Value(i int) any {
	if c.IsMissing(i) {
		return nil
	}
	switch c.Type {
	case TypeInt:
		return c.Ints[i]
	case TypeFloat:
		return c.Floats[i]
	default:
		return c.Text[i]
	}
}

// SizeBytes estimates the in-memory footprint of the column's values.
func (c *Column) SizeBytes() int {
	switch c.Type {
	case TypeInt:
		return 8 * len(c.Ints)
	case TypeFloat:
		return 8 * len(c.Floats)
	default:
		n := 0
		for _, s := range c.Text {
			n += 16 + len(s) // string header + bytes
		}
		return n
	}
}

// take gathers the cells at the given positions into a new Column.
func (c *Column) take(pos []int) *Column {
	out := &Column{Name: c.Name, Type: c.Type}
	switch c.Type {
	case TypeInt:
		out.Ints = make([]int64, len(pos))
		for i, p := range pos {
			out.Ints[i] = c.Ints[p]
		}
	case TypeFloat:
		out.Floats = make([]float64, len(pos))
		for i, p := range pos {
			out.Floats[i] = c.Floats[p]
		}
	default:
		out.Text = make([]string, len(pos))
		for i, p := range pos {
			out.Text[i] = c.Text[p]
		}
	}
	if c.missing != nil {
		out.missing = make([]bool, len(pos))
		any := false
		for i, p := range pos {
			out.missing[i] = c.missing[p]
			any = any || c.missing[p]
		}
		if !any {
			out.missing = nil
		}
	}
	return out
}

// Table is an in-memory collection of equally long, uniquely named columns
// plus a row index. The index holds per-row labels (ordinal 0..N-1 after a
// fresh load); selection and sorting carry labels along without renumbering.
//
// Ownership: every operation except AddDerivedColumn returns a new,
// independently owned Table and leaves its receiver untouched.
type Table struct {
	cols   []*Column
	byName map[string]int
	index  []int
}

// NewTable builds a table from columns and an optional index
// (nil means ordinal labels). Column lengths must agree and names be unique.
func NewTable(cols []*Column, index []int) (*Table, error) {
	if len(cols) == 0 {
		return nil, errors.Wrap(ErrParse, "table has no columns")
	}
	rows := cols[0].Len()
	byName := make(map[string]int, len(cols))
	for i, c := range cols {
		if c.Len() != rows {
			return nil, errors.Wrapf(ErrParse, "column %q has %d values, want %d", c.Name, c.Len(), rows)
		}
		if _, dup := byName[c.Name]; dup {
			return nil, errors.Wrapf(ErrParse, "duplicate column name %q", c.Name)
		}
		byName[c.Name] = i
	}
	if index == nil {
		index = make([]int, rows)
		for i := range index {
			index[i] = i
		}
	} else if len(index) != rows {
		return nil, errors.Wrapf(ErrParse, "index has %d labels, want %d", len(index), rows)
	}
	return &Table{cols: cols, byName: byName, index: index}, nil
}

func (t *Table) NumRows() int { return len(t.index) }
func (t *Table) NumCols() int { return len(t.cols) }

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or ErrUnknownColumn.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownColumn, "column %q", name)
	}
	return t.cols[i], nil
}

// Index returns the row labels in physical order. Callers must not modify it.
func (t *Table) Index() []int { return t.index }

// Row returns a read-only view of the row at physical position pos.
func (t *Table) Row(pos int) Row { return Row{t: t, pos: pos} }

// take builds a new Table from the rows at the given physical positions,
// carrying their index labels along.
func (t *Table) take(pos []int) *Table {
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.take(pos)
	}
	index := make([]int, len(pos))
	for i, p := range pos {
		index[i] = t.index[p]
	}
	byName := make(map[string]int, len(cols))
	for i, c := range cols {
		byName[c.Name] = i
	}
	return &Table{cols: cols, byName: byName, index: index}
}

// Row is a lightweight per-row view used by predicates and derivations.
// Accessors return zero values for unknown column names.
type Row struct {
	t   *Table
	pos int
}

// Label returns the row's index label.
func (r Row) Label() int { return r.t.index[r.pos] }

// Float returns the named cell widened to float64.
func (r Row) Float(name string) float64 {
	if i, ok := r.t.byName[name]; ok {
		return r.t.cols[i].Float(r.pos)
	}
	return 0
}

// Int returns the named cell as int64 (integer columns only).
func (r Row) Int(name string) int64 {
	if i, ok := r.t.byName[name]; ok && r.t.cols[i].Type == TypeInt {
		return r.t.cols[i].Ints[r.pos]
	}
	return 0
}

// Text returns the named cell as a string (text columns only).
func (r Row) Text(name string) string {
	if i, ok := r.t.byName[name]; ok && r.t.cols[i].Type == TypeText {
		return r.t.cols[i].Text[r.pos]
	}
	return ""
}

// Numeric returns the named cell widened to float64, failing with
// ErrUnknownColumn when the column is absent and ErrParse when it is not
// numeric. Derivations use this instead of Float so a misspelled column
// name surfaces as an error rather than a default zero.
func (r Row) Numeric(name string) (float64, error) {
	i, ok := r.t.byName[name]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownColumn, "column %q", name)
	}
	c := r.t.cols[i]
	if !c.Type.Numeric() {
		return 0, errors.Wrapf(ErrParse, "column %q is not numeric", name)
	}
	return c.Float(r.pos), nil
}

// IsMissing reports whether the named cell is missing.
func (r Row) IsMissing(name string) bool {
	if i, ok := r.t.byName[name]; ok {
		return r.t.cols[i].IsMissing(r.pos)
	}
	return false
}
