package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NewCSC validates the CSC layout invariants and returns the assembled
// matrix. The slices are retained, not copied; callers hand over
// ownership. Complexity: O(nnz + cols).
func NewCSC(rows, cols int, data []float64, indices, indptr []int) (*CSC, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadShape, rows, cols)
	}
	if len(data) != len(indices) {
		return nil, fmt.Errorf("%w: %d values, %d indices", ErrLengthMismatch, len(data), len(indices))
	}
	if len(indptr) != cols+1 || indptr[0] != 0 || indptr[cols] != len(data) {
		return nil, fmt.Errorf("%w: len=%d, first=%d, last=%d, nnz=%d",
			ErrBadIndptr, len(indptr), indptr[0], indptr[len(indptr)-1], len(data))
	}
	for j := 0; j < cols; j++ {
		if indptr[j] > indptr[j+1] {
			return nil, fmt.Errorf("%w: column %d decreases", ErrBadIndptr, j)
		}
	}
	for _, i := range indices {
		if i < 0 || i >= rows {
			return nil, fmt.Errorf("%w: row %d of %d", ErrBadIndex, i, rows)
		}
	}

	return &CSC{Rows: rows, Cols: cols, Data: data, Indices: indices, Indptr: indptr}, nil
}

// Identity returns the n×n identity matrix in CSC form, one non-zero
// per column. Complexity: O(n).
func Identity(n int) *CSC {
	data := make([]float64, n)
	indices := make([]int, n)
	indptr := make([]int, n+1)
	for i := 0; i < n; i++ {
		data[i] = 1.0
		indices[i] = i
		indptr[i] = i
	}
	indptr[n] = n

	return &CSC{Rows: n, Cols: n, Data: data, Indices: indices, Indptr: indptr}
}

// Nnz returns the number of stored values. Complexity: O(1).
func (c *CSC) Nnz() int {
	return len(c.Data)
}

// At returns the value at (i, j), zero if the position is not stored.
// Complexity: O(nnz in column j).
func (c *CSC) At(i, j int) float64 {
	for k := c.Indptr[j]; k < c.Indptr[j+1]; k++ {
		if c.Indices[k] == i {
			return c.Data[k]
		}
	}

	return 0
}

// ToDense reconstructs the matrix as a gonum dense matrix, stored
// entries only. Complexity: O(rows*cols) memory.
func (c *CSC) ToDense() *mat.Dense {
	d := mat.NewDense(c.Rows, c.Cols, nil)
	for j := 0; j < c.Cols; j++ {
		for k := c.Indptr[j]; k < c.Indptr[j+1]; k++ {
			d.Set(c.Indices[k], j, c.Data[k])
		}
	}

	return d
}

// ToSym interprets the stored entries as the upper triangle of a
// symmetric matrix and reconstructs the full symmetric dense form.
// Returns ErrBadShape if the matrix is not square, ErrLowerTriangle if
// any stored entry lies below the diagonal.
// Complexity: O(rows²) memory.
func (c *CSC) ToSym() (*mat.SymDense, error) {
	if c.Rows != c.Cols {
		return nil, fmt.Errorf("%w: %dx%d is not square", ErrBadShape, c.Rows, c.Cols)
	}
	s := mat.NewSymDense(c.Rows, nil)
	for j := 0; j < c.Cols; j++ {
		for k := c.Indptr[j]; k < c.Indptr[j+1]; k++ {
			i := c.Indices[k]
			if i > j {
				return nil, fmt.Errorf("%w: entry at (%d,%d)", ErrLowerTriangle, i, j)
			}
			s.SetSym(i, j, c.Data[k])
		}
	}

	return s, nil
}

// MulVec computes y = A·x treating the stored entries literally (no
// implied symmetry) and writes the result into y.
// Panics if len(x) != Cols or len(y) != Rows.
// Complexity: O(nnz).
func (c *CSC) MulVec(y, x []float64) {
	if len(x) != c.Cols || len(y) != c.Rows {
		panic("sparse: MulVec dimension mismatch")
	}
	for i := range y {
		y[i] = 0
	}
	for j := 0; j < c.Cols; j++ {
		xj := x[j]
		for k := c.Indptr[j]; k < c.Indptr[j+1]; k++ {
			y[c.Indices[k]] += c.Data[k] * xj
		}
	}
}

// MulVecT computes y = Aᵀ·x. The CSC layout makes the transpose
// product a per-column dot product, no transposition needed.
// Panics if len(x) != Rows or len(y) != Cols.
// Complexity: O(nnz).
func (c *CSC) MulVecT(y, x []float64) {
	if len(x) != c.Rows || len(y) != c.Cols {
		panic("sparse: MulVecT dimension mismatch")
	}
	for j := 0; j < c.Cols; j++ {
		s := 0.0
		for k := c.Indptr[j]; k < c.Indptr[j+1]; k++ {
			s += c.Data[k] * x[c.Indices[k]]
		}
		y[j] = s
	}
}

// MulVecSym computes y = A·x where the stored entries are the upper
// triangle of a symmetric matrix (the kernel convention).
// Panics on dimension mismatch. Complexity: O(nnz).
func (c *CSC) MulVecSym(y, x []float64) {
	if len(x) != c.Cols || len(y) != c.Rows {
		panic("sparse: MulVecSym dimension mismatch")
	}
	for i := range y {
		y[i] = 0
	}
	for j := 0; j < c.Cols; j++ {
		xj := x[j]
		for k := c.Indptr[j]; k < c.Indptr[j+1]; k++ {
			i := c.Indices[k]
			y[i] += c.Data[k] * xj
			if i != j {
				// Mirror the implied lower-triangle entry.
				y[j] += c.Data[k] * x[i]
			}
		}
	}
}
