package femsmooth

import (
	"fmt"

	"github.com/minicore2/apollo/qp"
)

// Smooth validates spec, formulates the QP, solves it with the bundled
// ADMM solver, and returns the smoothed x- and y- sequences, each of
// length len(spec.Ref) and in the original point order.
//
// Validation (in order):
//  1. Ref must be non-empty (ErrEmptyPath).
//  2. Ref, XBounds, YBounds must share length (ErrLengthMismatch).
//  3. At least 3 points (ErrTooFewPoints).
//  4. 2N must fit the solver's signed 32-bit indexing (ErrPathTooLong).
//  5. Half-widths non-negative (ErrNegativeBound).
//  6. Weights non-negative (ErrNegativeWeight).
//
// Exactly one solve attempt per call; on failure no output sequences
// are produced and the error carries the solver's status string.
// Complexity: builder work is O(n); the solve dominates.
func Smooth(spec *PathSpec, opts Options) (xs, ys []float64, err error) {
	return SmoothWith(qp.NewADMM(), spec, opts)
}

// SmoothWith is Smooth with a caller-supplied solver, e.g. a native
// solver binding or a test double.
func SmoothWith(solver qp.Solver, spec *PathSpec, opts Options) (xs, ys []float64, err error) {
	if err = validate(spec, opts.Weights); err != nil {
		return nil, nil, err
	}

	n := len(spec.Ref)
	a, lower, upper := BoxConstraint(spec)
	prob := &qp.Problem{
		P: Kernel(n, opts.Weights),
		Q: LinearTerm(spec, opts.Weights),
		A: a,
		L: lower,
		U: upper,
	}

	sol, err := solveOnce(solver, prob, WarmStart(spec), opts.Solver)
	if err != nil {
		return nil, nil, err
	}

	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = sol[2*i]
		ys[i] = sol[2*i+1]
	}

	return xs, ys, nil
}

// validate runs the precondition checks in the documented order.
func validate(spec *PathSpec, w Weights) error {
	if spec == nil || len(spec.Ref) == 0 {
		return ErrEmptyPath
	}
	n := len(spec.Ref)
	if len(spec.XBounds) != n || len(spec.YBounds) != n {
		return fmt.Errorf("%w: %d points, %d x-bounds, %d y-bounds",
			ErrLengthMismatch, n, len(spec.XBounds), len(spec.YBounds))
	}
	if n < minPoints {
		return fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}
	if n > maxPoints {
		return fmt.Errorf("%w: %d points", ErrPathTooLong, n)
	}
	for i := 0; i < n; i++ {
		if spec.XBounds[i] < 0 || spec.YBounds[i] < 0 {
			return fmt.Errorf("%w: point %d", ErrNegativeBound, i)
		}
	}
	if w.Smooth < 0 || w.Length < 0 || w.Deviation < 0 {
		return ErrNegativeWeight
	}

	return nil
}

// solveOnce runs the single solve attempt: set up the workspace, warm
// start when enabled, solve, classify, extract. The workspace is
// released on every exit path by the deferred Free.
func solveOnce(solver qp.Solver, prob *qp.Problem, warm []float64, s qp.Settings) ([]float64, error) {
	ws, err := solver.Setup(prob, s)
	if err != nil {
		return nil, fmt.Errorf("femsmooth: solver setup: %w", err)
	}
	defer ws.Free()

	if s.WarmStart {
		if err = ws.WarmStartX(warm); err != nil {
			return nil, fmt.Errorf("femsmooth: warm start: %w", err)
		}
	}

	res, err := ws.Solve()
	if err != nil {
		return nil, fmt.Errorf("femsmooth: solve: %w", err)
	}
	if !res.Status.Acceptable() {
		return nil, fmt.Errorf("%w: status %q", ErrSolveFailed, res.Status)
	}

	return res.X, nil
}
