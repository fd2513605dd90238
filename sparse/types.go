// Package sparse defines the CSC matrix type and its sentinel errors.
package sparse

import "errors"

// Sentinel errors for CSC construction and conversion.
var (
	// ErrBadShape indicates a non-positive row or column count.
	ErrBadShape = errors.New("sparse: rows and cols must be positive")

	// ErrLengthMismatch indicates len(Data) != len(Indices).
	ErrLengthMismatch = errors.New("sparse: data and indices lengths differ")

	// ErrBadIndptr indicates a malformed column-pointer slice: wrong
	// length, decreasing offsets, or a terminal sentinel that does not
	// equal the non-zero count.
	ErrBadIndptr = errors.New("sparse: malformed column pointer slice")

	// ErrBadIndex indicates a row index outside [0, Rows).
	ErrBadIndex = errors.New("sparse: row index out of range")

	// ErrLowerTriangle indicates ToSym encountered an entry below the
	// diagonal; symmetric matrices are stored upper-triangle only.
	ErrLowerTriangle = errors.New("sparse: entry below the diagonal in upper-triangular matrix")
)

// CSC is a matrix in compressed-sparse-column form.
//
// Column j occupies Data[Indptr[j]:Indptr[j+1]]; Indices carries the row
// index of each stored value. Within one column row indices are expected
// in increasing order (all constructors in this module emit them so).
type CSC struct {
	Rows, Cols int       // matrix dimensions
	Data       []float64 // non-zero values, column-major
	Indices    []int     // row index per value
	Indptr     []int     // per-column start offsets, len Cols+1
}
