package arrowio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabular/internal/engine"
)

func testTable(t *testing.T) *engine.Table {
	t.Helper()
	tbl, err := engine.LoadReader(strings.NewReader(
		"user_id,loyalty_score,region\n1,7.5,North\n2,8.2,South\n3,,East\n"))
	require.NoError(t, err)
	return tbl
}

func TestSchema(t *testing.T) {
	s := Schema(testTable(t))
	require.Equal(t, 3, len(s.Fields()))
	assert.Equal(t, arrow.PrimitiveTypes.Int64, s.Field(0).Type)
	assert.Equal(t, arrow.PrimitiveTypes.Float64, s.Field(1).Type)
	assert.Equal(t, arrow.BinaryTypes.String, s.Field(2).Type)
}

func TestRoundTrip(t *testing.T) {
	tbl := testTable(t)

	rec := ToRecord(tbl, nil)
	defer rec.Release()
	require.EqualValues(t, 3, rec.NumRows())
	require.EqualValues(t, 3, rec.NumCols())

	back, err := FromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, tbl.ColumnNames(), back.ColumnNames())
	assert.Equal(t, tbl.NumRows(), back.NumRows())

	ls, err := back.Column("loyalty_score")
	require.NoError(t, err)
	assert.Equal(t, engine.TypeFloat, ls.Type)
	assert.Equal(t, 8.2, ls.Floats[1])
	assert.True(t, ls.IsMissing(2), "null cell must come back missing")
	assert.Equal(t, 2, ls.NonMissing())

	region, err := back.Column("region")
	require.NoError(t, err)
	assert.Equal(t, "East", region.Text[2])
}

func TestWriteIPC(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIPC(testTable(t), &buf))
	assert.Greater(t, buf.Len(), 0)
	// Arrow IPC files start with the ARROW1 magic
	assert.Equal(t, "ARROW1", string(buf.Bytes()[:6]))
}
