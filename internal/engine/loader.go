package engine

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"os"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a comma-delimited UTF-8 file into a Table. The first line is
// the header; every later line is one row. Column types are inferred once,
// per column, by InferColumn. The resulting index is ordinal 0..N-1.
//
// Fails with ErrNotFound when the path cannot be opened and ErrParse when
// the content is malformed (ragged rows, duplicate header names, bad
// encoding) or has zero data rows.
func Load(path string) (*Table, error) {
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%s: %v", path, err)
	}

	t, err := LoadReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}

	log.Printf("Load complete. Rows: %d, Cols: %d. Time: %v", t.NumRows(), t.NumCols(), time.Since(start))
	return t, nil
}

// LoadReader parses delimited content from r under the same contract as Load,
// minus the filesystem step.
func LoadReader(r io.Reader) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "read: %v", err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return nil, errors.Wrap(ErrParse, "content is not valid UTF-8")
	}

	cr := csv.NewReader(bytes.NewReader(content))
	// FieldsPerRecord locks to the header width, so ragged rows fail in ReadAll.
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrParse, "%v", err)
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrParse, "input is empty")
	}
	header := records[0]
	rows := records[1:]
	if len(rows) == 0 {
		return nil, errors.Wrap(ErrParse, "no data rows")
	}

	// Pivot row records into raw text columns, then infer each.
	cols := make([]*Column, len(header))
	raw := make([]string, len(rows))
	for c, name := range header {
		for i, rec := range rows {
			raw[i] = rec[c]
		}
		cols[c] = InferColumn(name, raw)
	}

	return NewTable(cols, nil)
}
