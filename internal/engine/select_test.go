package engine

import (
	"testing"

	"github.com/pkg/errors"
)

func TestProject(t *testing.T) {
	tbl := loadTestTable(t)

	sub, err := tbl.Project("region", "user_id")
	if err != nil {
		t.Fatal(err)
	}
	if sub.NumCols() != 2 || sub.NumRows() != 6 {
		t.Fatalf("Expected 6x2, got %dx%d", sub.NumRows(), sub.NumCols())
	}
	// Requested order, not table order
	names := sub.ColumnNames()
	if names[0] != "region" || names[1] != "user_id" {
		t.Errorf("Column order wrong: %v", names)
	}

	// Projecting twice with the same columns changes nothing
	again, err := sub.Project("region", "user_id")
	if err != nil {
		t.Fatal(err)
	}
	if again.NumCols() != 2 || again.NumRows() != 6 {
		t.Errorf("Repeated projection changed shape: %dx%d", again.NumRows(), again.NumCols())
	}

	if _, err := tbl.Project("region", "nope"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Expected ErrUnknownColumn, got %v", err)
	}
}

func TestFilterPreservesIndexAndOrder(t *testing.T) {
	tbl := loadTestTable(t)

	// Rows 0, 4 are North
	north := tbl.Filter(func(r Row) bool { return r.Text("region") == "North" })
	if north.NumRows() != 2 {
		t.Fatalf("Expected 2 North rows, got %d", north.NumRows())
	}
	idx := north.Index()
	if idx[0] != 0 || idx[1] != 4 {
		t.Errorf("Index labels must survive filtering, got %v", idx)
	}

	// Every kept row satisfies the predicate
	region, _ := north.Column("region")
	for i := 0; i < north.NumRows(); i++ {
		if region.Text[i] != "North" {
			t.Errorf("Row %d does not satisfy predicate: %q", i, region.Text[i])
		}
	}

	// The source is untouched
	if tbl.NumRows() != 6 {
		t.Errorf("Filter mutated its input: %d rows", tbl.NumRows())
	}
}

func TestFilterEmptyResultIsSuccess(t *testing.T) {
	tbl := loadTestTable(t)

	// Max observed loyalty_score is 9.5, so this matches nothing
	none := tbl.Filter(func(r Row) bool { return r.Float("loyalty_score") > 75 })
	if none.NumRows() != 0 {
		t.Fatalf("Expected 0 rows, got %d", none.NumRows())
	}
	if none.NumCols() != 7 {
		t.Errorf("Empty result must keep all 7 columns, got %d", none.NumCols())
	}
}

func TestFilterWhere(t *testing.T) {
	tbl := loadTestTable(t)

	cond, err := ParseCondition("loyalty_score >= 8.2")
	if err != nil {
		t.Fatal(err)
	}
	got, err := tbl.FilterWhere(cond)
	if err != nil {
		t.Fatal(err)
	}
	if got.NumRows() != 3 { // labels 1, 3, 5
		t.Fatalf("Expected 3 rows, got %d", got.NumRows())
	}

	cond, _ = ParseCondition("region == South")
	south, err := tbl.FilterWhere(cond)
	if err != nil {
		t.Fatal(err)
	}
	if south.NumRows() != 2 {
		t.Errorf("Expected 2 South rows, got %d", south.NumRows())
	}

	if _, err := tbl.FilterWhere(Condition{Column: "nope", Op: OpGt, Value: "1"}); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Expected ErrUnknownColumn, got %v", err)
	}
	if _, err := tbl.FilterWhere(Condition{Column: "age", Op: OpGt, Value: "old"}); !errors.Is(err, ErrParse) {
		t.Errorf("Expected ErrParse for non-numeric value, got %v", err)
	}
}

func TestParseCondition(t *testing.T) {
	c, err := ParseCondition("loyalty_score > 75")
	if err != nil {
		t.Fatal(err)
	}
	if c.Column != "loyalty_score" || c.Op != OpGt || c.Value != "75" {
		t.Errorf("Parsed wrong: %+v", c)
	}

	c, err = ParseCondition("age<=30")
	if err != nil {
		t.Fatal(err)
	}
	if c.Op != OpLe || c.Value != "30" {
		t.Errorf("Parsed wrong: %+v", c)
	}

	for _, bad := range []string{"", "age", "> 5", "age >"} {
		if _, err := ParseCondition(bad); !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected ErrParse, got %v", bad, err)
		}
	}
}

func TestLabelRange(t *testing.T) {
	tbl := loadTestTable(t)

	// Inclusive on both ends: labels 0..4 is five rows
	sub, err := tbl.LabelRange(0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if sub.NumRows() != 5 {
		t.Fatalf("Expected 5 rows, got %d", sub.NumRows())
	}
	if sub.NumCols() != 7 {
		t.Errorf("No projection requested, expected all 7 columns, got %d", sub.NumCols())
	}

	sub, err = tbl.LabelRange(1, 3, "user_id", "loyalty_score")
	if err != nil {
		t.Fatal(err)
	}
	if sub.NumRows() != 3 || sub.NumCols() != 2 {
		t.Errorf("Expected 3x2, got %dx%d", sub.NumRows(), sub.NumCols())
	}

	// Both labels exist but end sits before start: empty table, not an error
	empty, err := tbl.LabelRange(4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if empty.NumRows() != 0 {
		t.Errorf("Expected 0 rows for reversed range, got %d", empty.NumRows())
	}
	if empty.NumCols() != 7 {
		t.Errorf("Reversed range must keep all 7 columns, got %d", empty.NumCols())
	}

	if _, err := tbl.LabelRange(0, 99); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if _, err := tbl.LabelRange(-1, 4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange, got %v", err)
	}
	if _, err := tbl.LabelRange(0, 4, "nope"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Expected ErrUnknownColumn, got %v", err)
	}
}

func TestLabelRangeAfterFilter(t *testing.T) {
	tbl := loadTestTable(t)

	// Filtering leaves a non-contiguous index; label lookup still works
	odd := tbl.Filter(func(r Row) bool { return r.Label()%2 == 1 })
	sub, err := odd.LabelRange(1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if sub.NumRows() != 3 { // labels 1, 3, 5
		t.Errorf("Expected 3 rows, got %d", sub.NumRows())
	}
}
