package splitter

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/gogradient/treecore/pkg/errors"
)

// Argsort returns the row indices of values sorted ascending by value,
// ties broken by original row order. The result is the order input Scan
// expects for a node covering every row. For a node covering a subset,
// sort the subset's indices with the same comparison.
func Argsort(values []float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})
	return order
}

// ArgsortSubset sorts the given row indices ascending by value, ties
// broken by original row order. indices is not modified.
func ArgsortSubset(values []float64, indices []int) []int {
	order := make([]int, len(indices))
	copy(order, indices)
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})
	return order
}

// ColumnValues extracts one feature column of a sample matrix into a flat
// row-indexed slice, the values layout Scan expects.
func ColumnValues(m mat.Matrix, col int) ([]float64, error) {
	rows, cols := m.Dims()
	if col < 0 || col >= cols {
		return nil, errors.NewValueError("splitter.ColumnValues", "column index out of range")
	}
	values := make([]float64, rows)
	for i := 0; i < rows; i++ {
		values[i] = m.At(i, col)
	}
	return values, nil
}

// ArgsortColumn is Argsort over one column of a sample matrix.
func ArgsortColumn(m mat.Matrix, col int) ([]int, []float64, error) {
	values, err := ColumnValues(m, col)
	if err != nil {
		return nil, nil, err
	}
	return Argsort(values), values, nil
}
