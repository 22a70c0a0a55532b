package engine

import "tabular/internal/models"

// View renders the table row-oriented for JSON output. Missing cells
// become nulls.
func (t *Table) View() *models.TableView {
	v := &models.TableView{
		Columns: t.ColumnNames(),
		Index:   append([]int(nil), t.index...),
		Rows:    make([][]any, t.NumRows()),
		Total:   t.NumRows(),
	}
	for p := 0; p < t.NumRows(); p++ {
		cells := make([]any, len(t.cols))
		for i, c := range t.cols {
			cells[i] = c.Value(p)
		}
		v.Rows[p] = cells
	}
	return v
}
