// Package qp defines the problem, settings, status, and lifecycle types
// of the quadratic-program solver boundary.
package qp

import (
	"errors"
	"fmt"

	"github.com/minicore2/apollo/sparse"
)

// Sentinel errors for problem assembly and workspace lifecycle.
var (
	// ErrNilMatrix indicates a nil objective or constraint matrix.
	ErrNilMatrix = errors.New("qp: objective and constraint matrices must be non-nil")

	// ErrDimensionMismatch indicates incoherent problem dimensions.
	ErrDimensionMismatch = errors.New("qp: problem dimensions are inconsistent")

	// ErrBoundOrder indicates a lower bound above its upper bound.
	ErrBoundOrder = errors.New("qp: lower bound exceeds upper bound")

	// ErrNonConvex indicates the objective matrix is not positive
	// semi-definite, so the factorization at setup failed.
	ErrNonConvex = errors.New("qp: objective matrix is not positive semi-definite")

	// ErrFreed indicates use of a Workspace after Free.
	ErrFreed = errors.New("qp: workspace already freed")

	// ErrBadSettings indicates a non-positive iteration cap, tolerance,
	// or step parameter.
	ErrBadSettings = errors.New("qp: invalid solver settings")
)

// Status classifies one solve attempt.
type Status int

const (
	// StatusSolved: both primal and dual residuals met the configured
	// tolerances.
	StatusSolved Status = iota

	// StatusSolvedInaccurate: only the 10× relaxed tolerances held when
	// the iteration or time budget ran out.
	StatusSolvedInaccurate

	// StatusMaxIterations: the iteration cap was reached without
	// meeting even the relaxed tolerances.
	StatusMaxIterations

	// StatusTimeLimit: the wall-clock budget was exhausted without
	// meeting even the relaxed tolerances.
	StatusTimeLimit

	// StatusPrimalInfeasible: a certificate of primal infeasibility was
	// detected (reported by external solver implementations).
	StatusPrimalInfeasible

	// StatusNonConvex: the objective was found non-convex during the
	// solve (reported by external solver implementations).
	StatusNonConvex

	// StatusError: any other solver-internal failure.
	StatusError
)

// String returns the human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusSolvedInaccurate:
		return "solved inaccurate"
	case StatusMaxIterations:
		return "maximum iterations reached"
	case StatusTimeLimit:
		return "run time limit reached"
	case StatusPrimalInfeasible:
		return "primal infeasible"
	case StatusNonConvex:
		return "problem non convex"
	case StatusError:
		return "solver error"
	default:
		return fmt.Sprintf("unknown status (%d)", int(s))
	}
}

// Acceptable reports whether the status counts as a successful solve.
// Only solved and solved-inaccurate outcomes qualify; everything else
// is failure.
func (s Status) Acceptable() bool {
	return s == StatusSolved || s == StatusSolvedInaccurate
}

// Problem is one box-constrained quadratic program:
//
//	minimize ½·xᵀPx + qᵀx  subject to  l ≤ Ax ≤ u.
//
// P holds the upper triangle of the symmetric PSD objective matrix;
// the lower triangle is implied.
type Problem struct {
	P *sparse.CSC // n×n objective, upper triangle only
	Q []float64   // linear term, length n
	A *sparse.CSC // m×n constraint matrix
	L []float64   // lower bounds, length m
	U []float64   // upper bounds, length m
}

// Validate checks dimensional coherence and bound ordering.
// Complexity: O(m).
func (p *Problem) Validate() error {
	if p.P == nil || p.A == nil {
		return ErrNilMatrix
	}
	n := p.P.Cols
	if p.P.Rows != n {
		return fmt.Errorf("%w: objective is %dx%d", ErrDimensionMismatch, p.P.Rows, p.P.Cols)
	}
	if p.A.Cols != n {
		return fmt.Errorf("%w: constraint has %d columns, want %d", ErrDimensionMismatch, p.A.Cols, n)
	}
	if len(p.Q) != n {
		return fmt.Errorf("%w: linear term length %d, want %d", ErrDimensionMismatch, len(p.Q), n)
	}
	m := p.A.Rows
	if len(p.L) != m || len(p.U) != m {
		return fmt.Errorf("%w: bounds lengths %d/%d, want %d", ErrDimensionMismatch, len(p.L), len(p.U), m)
	}
	for i := range p.L {
		if p.L[i] > p.U[i] {
			return fmt.Errorf("%w: constraint %d has l=%g > u=%g", ErrBoundOrder, i, p.L[i], p.U[i])
		}
	}

	return nil
}

// Settings configures one solve attempt.
//
//   - MaxIterations: iteration cap (must be positive).
//   - TimeLimit: wall-clock budget in seconds; 0 disables the limit.
//   - Verbose: per-iteration reporting; consumed by external solver
//     bindings, ignored by the bundled ADMM solver.
//   - ScaledTermination: evaluate termination on the scaled problem;
//     the bundled solver performs no scaling, so the flag has no
//     observable effect there.
//   - WarmStart: honor a caller-supplied primal warm start.
//   - EpsAbs, EpsRel: absolute and relative residual tolerances.
//   - Rho, Sigma, Alpha: ADMM step, regularization, and over-relaxation
//     parameters of the bundled solver.
type Settings struct {
	MaxIterations     int
	TimeLimit         float64
	Verbose           bool
	ScaledTermination bool
	WarmStart         bool
	EpsAbs            float64
	EpsRel            float64
	Rho               float64
	Sigma             float64
	Alpha             float64
}

// DefaultSettings returns the solver defaults:
// 4000 iterations, no time limit, warm start enabled, eps 1e-3,
// rho 0.1, sigma 1e-6, alpha 1.6.
func DefaultSettings() Settings {
	return Settings{
		MaxIterations: 4000,
		TimeLimit:     0,
		WarmStart:     true,
		EpsAbs:        1e-3,
		EpsRel:        1e-3,
		Rho:           0.1,
		Sigma:         1e-6,
		Alpha:         1.6,
	}
}

// validate reports ErrBadSettings for unusable parameter values.
func (s Settings) validate() error {
	if s.MaxIterations <= 0 {
		return fmt.Errorf("%w: MaxIterations=%d", ErrBadSettings, s.MaxIterations)
	}
	if s.EpsAbs < 0 || s.EpsRel < 0 || (s.EpsAbs == 0 && s.EpsRel == 0) {
		return fmt.Errorf("%w: EpsAbs=%g, EpsRel=%g", ErrBadSettings, s.EpsAbs, s.EpsRel)
	}
	if s.Rho <= 0 || s.Sigma <= 0 {
		return fmt.Errorf("%w: Rho=%g, Sigma=%g", ErrBadSettings, s.Rho, s.Sigma)
	}
	if s.Alpha <= 0 || s.Alpha >= 2 {
		return fmt.Errorf("%w: Alpha=%g outside (0,2)", ErrBadSettings, s.Alpha)
	}
	if s.TimeLimit < 0 {
		return fmt.Errorf("%w: TimeLimit=%g", ErrBadSettings, s.TimeLimit)
	}

	return nil
}

// Result is the outcome of one solve attempt. X is populated only when
// Status is acceptable.
type Result struct {
	Status     Status    // termination classification
	X          []float64 // primal solution, length n
	Iterations int       // iterations consumed
	PriRes     float64   // final primal residual, infinity norm
	DuaRes     float64   // final dual residual, infinity norm
}

// Workspace owns the solver-side buffers of one problem instance.
// It is confined to a single goroutine.
type Workspace interface {
	// WarmStartX installs a primal warm start. Returns
	// ErrDimensionMismatch on length mismatch, ErrFreed after Free.
	WarmStartX(x []float64) error

	// Solve runs the solver once and classifies termination. Returns
	// ErrFreed after Free.
	Solve() (Result, error)

	// Free releases all solver-owned resources. Idempotent; every
	// Setup must be paired with exactly one (deferred) Free.
	Free()
}

// Solver sets up a Workspace for one problem. Implementations must be
// safe for concurrent Setup calls.
type Solver interface {
	Setup(p *Problem, s Settings) (Workspace, error)
}
