package engine

import (
	"math"
	"sort"

	"tabular/internal/models"
)

// Preview returns the first n rows (all columns, original order) as a new
// Table. n larger than the row count returns everything; n <= 0 returns an
// empty table with the same columns.
func (t *Table) Preview(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > t.NumRows() {
		n = t.NumRows()
	}
	pos := make([]int, n)
	for i := range pos {
		pos[i] = i
	}
	return t.take(pos)
}

// Summary reports the table's structure without computing statistics.
func (t *Table) Summary() *models.StructuralReport {
	rep := &models.StructuralReport{
		Rows:    t.NumRows(),
		Columns: make([]models.ColumnInfo, 0, t.NumCols()),
	}
	for _, c := range t.cols {
		info := models.ColumnInfo{
			Name:       c.Name,
			Type:       c.Type.String(),
			NonMissing: c.NonMissing(),
			Bytes:      c.SizeBytes(),
		}
		rep.Bytes += info.Bytes
		rep.Columns = append(rep.Columns, info)
	}
	return rep
}

// Describe computes descriptive statistics for every numeric column:
// non-missing count, mean, sample standard deviation, min, quartiles, max.
// Text columns are skipped. Std is omitted where it is undefined
// (fewer than two observations).
func (t *Table) Describe() *models.StatisticalReport {
	rep := &models.StatisticalReport{}
	for _, c := range t.cols {
		if !c.Type.Numeric() {
			continue
		}
		vals := make([]float64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if c.IsMissing(i) {
				continue
			}
			vals = append(vals, c.Float(i))
		}
		if len(vals) == 0 {
			continue
		}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)

		stats := models.ColumnStats{
			Name:   c.Name,
			Count:  len(vals),
			Mean:   Mean(vals),
			Min:    sorted[0],
			P25:    Percentile(sorted, 25),
			Median: Percentile(sorted, 50),
			P75:    Percentile(sorted, 75),
			Max:    sorted[len(sorted)-1],
		}
		if sd, err := SampleStd(vals); err == nil {
			stats.Std = &sd
		}
		rep.Columns = append(rep.Columns, stats)
	}
	return rep
}

// Mean returns the arithmetic mean of vals, or NaN for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// SampleStd returns the sample standard deviation (N-1 denominator).
// Fewer than two values yields ErrUndefinedStatistic.
func SampleStd(vals []float64) (float64, error) {
	if len(vals) < 2 {
		return 0, ErrUndefinedStatistic
	}
	m := Mean(vals)
	ss := 0.0
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)-1)), nil
}

// Percentile returns the p-th percentile (p in [0,100]) of an already sorted
// slice, using linear interpolation between bracketing order statistics:
// position = p/100 * (n-1).
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	pos := p / 100 * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
