// Package dense provides rectangular storage indexed by (column, row) pairs
// with an arbitrary origin, for per-cell data over a bounded region.
package dense

import "fmt"

// Array is a width x height block of T whose top-left cell is
// (OriginCol, OriginRow).
type Array[T any] struct {
	width, height        int
	originCol, originRow int
	cells                []T
}

// New returns an Array filled with fill. Negative sizes are treated as 0.
func New[T any](width, height, originCol, originRow int, fill T) *Array[T] {
	width = max(width, 0)
	height = max(height, 0)
	a := &Array[T]{
		width:     width,
		height:    height,
		originCol: originCol,
		originRow: originRow,
		cells:     make([]T, width*height),
	}
	a.Fill(fill)
	return a
}

// Width returns the column count.
func (a *Array[T]) Width() int { return a.width }

// Height returns the row count.
func (a *Array[T]) Height() int { return a.height }

// Origin returns the (column, row) of the first cell.
func (a *Array[T]) Origin() (int, int) { return a.originCol, a.originRow }

// Len returns width * height.
func (a *Array[T]) Len() int { return len(a.cells) }

// Contains reports whether (col, row) lies inside the array.
func (a *Array[T]) Contains(col, row int) bool {
	c := col - a.originCol
	r := row - a.originRow
	return c >= 0 && c < a.width && r >= 0 && r < a.height
}

func (a *Array[T]) index(col, row int) int {
	if !a.Contains(col, row) {
		panic(fmt.Sprintf("dense: (%d, %d) outside %dx%d array at (%d, %d)",
			col, row, a.width, a.height, a.originCol, a.originRow))
	}
	return (row-a.originRow)*a.width + (col - a.originCol)
}

// Get returns the value at (col, row). It panics outside the array.
func (a *Array[T]) Get(col, row int) T {
	return a.cells[a.index(col, row)]
}

// Set stores v at (col, row). It panics outside the array.
func (a *Array[T]) Set(col, row int, v T) {
	a.cells[a.index(col, row)] = v
}

// Lookup returns the value at (col, row) and whether it was in range.
func (a *Array[T]) Lookup(col, row int) (T, bool) {
	if !a.Contains(col, row) {
		var zero T
		return zero, false
	}
	return a.cells[a.index(col, row)], true
}

// Fill sets every cell to v.
func (a *Array[T]) Fill(v T) {
	for i := range a.cells {
		a.cells[i] = v
	}
}

// Each calls fn for every cell in row-major order.
func (a *Array[T]) Each(fn func(col, row int, v T)) {
	for i, v := range a.cells {
		fn(a.originCol+i%a.width, a.originRow+i/a.width, v)
	}
}
