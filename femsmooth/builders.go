package femsmooth

import (
	"github.com/minicore2/apollo/sparse"
)

// Kernel builds the quadratic objective term over the 2N interleaved
// decision variables as a 2N×2N upper-triangular CSC matrix.
//
// x and y decouple, so each point contributes the same banded stencil
// on both axes: a diagonal entry, an entry one point back (2 columns
// left), and an entry two points back (4 columns left). The per-point
// coefficients fall out of expanding the squared second- and
// first-difference operators; boundary points see fewer stencils and
// get smaller diagonals. Every stored value is twice the algebraic
// coefficient, matching the ½·xᵀPx objective convention.
//
// n must be ≥ 3 (validated by the orchestrator).
// Complexity: O(n) time and memory.
func Kernel(n int, w Weights) *sparse.CSC {
	dim := 2 * n
	data := make([]float64, 0, 3*dim)
	indices := make([]int, 0, 3*dim)
	indptr := make([]int, 0, dim+1)

	for i := 0; i < n; i++ {
		var back2, back1, diag float64
		switch {
		case i == 0:
			// First point: appears in one stencil only.
			diag = w.Smooth + w.Length + w.Deviation
		case i == 1:
			back1 = -2.0*w.Smooth - w.Length
			if n == minPoints {
				// The single middle point of a 3-point path is second
				// and second-from-last at once; it sits in exactly one
				// second-difference stencil, with coefficient -2.
				diag = 4.0*w.Smooth + 2.0*w.Length + w.Deviation
			} else {
				diag = 5.0*w.Smooth + 2.0*w.Length + w.Deviation
			}
		case i < n-2:
			back2 = w.Smooth
			back1 = -4.0*w.Smooth - w.Length
			diag = 6.0*w.Smooth + 2.0*w.Length + w.Deviation
		case i == n-2:
			back2 = w.Smooth
			back1 = -4.0*w.Smooth - w.Length
			diag = 5.0*w.Smooth + 2.0*w.Length + w.Deviation
		default: // i == n-1
			back2 = w.Smooth
			back1 = -2.0*w.Smooth - w.Length
			diag = w.Smooth + w.Length + w.Deviation
		}

		for axis := 0; axis < 2; axis++ {
			col := 2*i + axis
			indptr = append(indptr, len(data))
			if i >= 2 {
				data = append(data, 2.0*back2)
				indices = append(indices, col-4)
			}
			if i >= 1 {
				data = append(data, 2.0*back1)
				indices = append(indices, col-2)
			}
			data = append(data, 2.0*diag)
			indices = append(indices, col)
		}
	}
	indptr = append(indptr, len(data))

	return &sparse.CSC{Rows: dim, Cols: dim, Data: data, Indices: indices, Indptr: indptr}
}

// LinearTerm builds the linear coefficient vector q of length 2N: the
// derivative of the deviation penalty, -2·w_dev·ref per coordinate.
// Complexity: O(n).
func LinearTerm(spec *PathSpec, w Weights) []float64 {
	q := make([]float64, 2*len(spec.Ref))
	for i, p := range spec.Ref {
		q[2*i] = -2.0 * w.Deviation * p.X
		q[2*i+1] = -2.0 * w.Deviation * p.Y
	}

	return q
}

// BoxConstraint builds the per-variable box constraints: an identity
// constraint matrix (one non-zero per column) and the interleaved
// lower/upper bound vectors ref ∓/± half-width.
// Complexity: O(n).
func BoxConstraint(spec *PathSpec) (a *sparse.CSC, lower, upper []float64) {
	n := len(spec.Ref)
	a = sparse.Identity(2 * n)
	lower = make([]float64, 2*n)
	upper = make([]float64, 2*n)
	for i, p := range spec.Ref {
		lower[2*i] = p.X - spec.XBounds[i]
		upper[2*i] = p.X + spec.XBounds[i]
		lower[2*i+1] = p.Y - spec.YBounds[i]
		upper[2*i+1] = p.Y + spec.YBounds[i]
	}

	return a, lower, upper
}

// WarmStart builds the initial primal guess: the flattened reference
// path itself, already near the constraint-satisfying region.
// Complexity: O(n).
func WarmStart(spec *PathSpec) []float64 {
	warm := make([]float64, 0, 2*len(spec.Ref))
	for _, p := range spec.Ref {
		warm = append(warm, p.X, p.Y)
	}

	return warm
}
