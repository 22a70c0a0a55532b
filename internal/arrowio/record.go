// Package arrowio converts engine tables to and from Apache Arrow records
// for interchange with arrow-speaking tools.
package arrowio

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/pkg/errors"

	"tabular/internal/engine"
)

// Schema maps a table's columns onto an Arrow schema:
// int -> int64, float -> float64, text -> utf8.
func Schema(t *engine.Table) *arrow.Schema {
	names := t.ColumnNames()
	fields := make([]arrow.Field, len(names))
	for i, name := range names {
		c, _ := t.Column(name)
		var dt arrow.DataType
		switch c.Type {
		case engine.TypeInt:
			dt = arrow.PrimitiveTypes.Int64
		case engine.TypeFloat:
			dt = arrow.PrimitiveTypes.Float64
		default:
			dt = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: name, Type: dt, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

// ToRecord materializes the table as an Arrow record. Missing cells become
// nulls. The row index is not carried over; the record holds data columns
// only. The caller owns the returned record and must Release it.
func ToRecord(t *engine.Table, mem memory.Allocator) arrow.Record {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	b := array.NewRecordBuilder(mem, Schema(t))
	defer b.Release()

	for i, name := range t.ColumnNames() {
		c, _ := t.Column(name)
		for p := 0; p < c.Len(); p++ {
			if c.IsMissing(p) {
				b.Field(i).AppendNull()
				continue
			}
			switch c.Type {
			case engine.TypeInt:
				b.Field(i).(*array.Int64Builder).Append(c.Ints[p])
			case engine.TypeFloat:
				b.Field(i).(*array.Float64Builder).Append(c.Floats[p])
			default:
				b.Field(i).(*array.StringBuilder).Append(c.Text[p])
			}
		}
	}
	return b.NewRecord()
}

// FromRecord rebuilds a table from an Arrow record produced by ToRecord
// (or any record limited to int64/float64/utf8 columns). Nulls become
// missing cells; the index is ordinal.
func FromRecord(rec arrow.Record) (*engine.Table, error) {
	n := int(rec.NumRows())
	cols := make([]*engine.Column, rec.NumCols())

	for i, field := range rec.Schema().Fields() {
		arr := rec.Column(i)
		missing := nullMask(arr, n)
		switch a := arr.(type) {
		case *array.Int64:
			vals := make([]int64, n)
			for p := 0; p < n; p++ {
				if !a.IsNull(p) {
					vals[p] = a.Value(p)
				}
			}
			cols[i] = engine.NewIntColumn(field.Name, vals, missing)
		case *array.Float64:
			vals := make([]float64, n)
			for p := 0; p < n; p++ {
				if !a.IsNull(p) {
					vals[p] = a.Value(p)
				}
			}
			cols[i] = engine.NewFloatColumn(field.Name, vals, missing)
		case *array.String:
			vals := make([]string, n)
			for p := 0; p < n; p++ {
				if !a.IsNull(p) {
					vals[p] = a.Value(p)
				}
			}
			cols[i] = engine.NewTextColumn(field.Name, vals, missing)
		default:
			return nil, errors.Errorf("unsupported arrow type %s for column %q", field.Type, field.Name)
		}
	}
	return engine.NewTable(cols, nil)
}

func nullMask(arr arrow.Array, n int) []bool {
	if arr.NullN() == 0 {
		return nil
	}
	missing := make([]bool, n)
	for p := 0; p < n; p++ {
		missing[p] = arr.IsNull(p)
	}
	return missing
}

// WriteIPC streams the table as a single-record Arrow IPC file.
func WriteIPC(t *engine.Table, w io.Writer) error {
	mem := memory.NewGoAllocator()
	rec := ToRecord(t, mem)
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return errors.Wrap(err, "create ipc writer")
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return errors.Wrap(err, "write record")
	}
	return fw.Close()
}
