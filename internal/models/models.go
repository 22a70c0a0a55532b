package models

// StructuralReport describes a table's shape: column names, inferred types,
// non-missing counts and estimated memory, plus the shared row count.
type StructuralReport struct {
	Rows    int          `json:"rows"`
	Bytes   int          `json:"memory_bytes"`
	Columns []ColumnInfo `json:"columns"`
}

type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NonMissing int    `json:"non_missing"`
	Bytes      int    `json:"memory_bytes"`
}

// StatisticalReport carries descriptive statistics for the numeric columns
// of a table. Text columns are excluded.
type StatisticalReport struct {
	Columns []ColumnStats `json:"columns"`
}

type ColumnStats struct {
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Std    *float64 `json:"std,omitempty"` // nil when undefined (count < 2)
	Min    float64  `json:"min"`
	P25    float64  `json:"p25"`
	Median float64  `json:"p50"`
	P75    float64  `json:"p75"`
	Max    float64  `json:"max"`
}

// TableView is the row-oriented JSON rendering of a table, used by the API
// and CLI. Cells are typed values or null for missing.
type TableView struct {
	Columns []string `json:"columns"`
	Index   []int    `json:"index"`
	Rows    [][]any  `json:"rows"`
	Total   int      `json:"total"`
	Limit   int      `json:"limit,omitempty"`
	Offset  int      `json:"offset,omitempty"`
}
