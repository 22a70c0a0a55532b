package engine

import (
	"strconv"
	"strings"
)

// InferColumn turns one column of raw text fields into a typed Column.
// Inference runs once, at load time: if every non-empty field parses as an
// integer the column is TypeInt; else if every non-empty field parses as a
// decimal number it is TypeFloat; otherwise TypeText. Empty fields are
// recorded as missing and do not participate in inference.
func InferColumn(name string, raw []string) *Column {
	allInt := true
	allFloat := true
	hasMissing := false

	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			hasMissing = true
			continue
		}
		if allInt {
			if _, err := strconv.ParseInt(s, 10, 64); err != nil {
				allInt = false
			}
		}
		if !allInt && allFloat {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				allFloat = false
			}
		}
	}

	col := &Column{Name: name}
	if hasMissing {
		col.missing = make([]bool, len(raw))
	}

	switch {
	case allInt:
		col.Type = TypeInt
		col.Ints = make([]int64, len(raw))
		for i, s := range raw {
			s = strings.TrimSpace(s)
			if s == "" {
				col.missing[i] = true
				continue
			}
			v, _ := strconv.ParseInt(s, 10, 64)
			col.Ints[i] = v
		}
	case allFloat:
		col.Type = TypeFloat
		col.Floats = make([]float64, len(raw))
		for i, s := range raw {
			s = strings.TrimSpace(s)
			if s == "" {
				col.missing[i] = true
				continue
			}
			v, _ := strconv.ParseFloat(s, 64)
			col.Floats[i] = v
		}
	default:
		col.Type = TypeText
		col.Text = make([]string, len(raw))
		for i, s := range raw {
			if strings.TrimSpace(s) == "" {
				col.missing[i] = true
				continue
			}
			col.Text[i] = s
		}
	}
	return col
}
