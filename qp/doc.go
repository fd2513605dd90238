// Package qp defines the quadratic-program solver boundary used by the
// path smoother, plus a bundled operator-splitting solver.
//
// What:
//
//   - Problem packages one box-constrained QP:
//     minimize ½·xᵀPx + qᵀx  subject to  l ≤ Ax ≤ u,
//     with P the upper triangle of a sparse symmetric PSD matrix.
//   - Settings carries solver configuration (iteration cap, wall-clock
//     time limit, warm-start enable, termination tunables).
//   - Solver/Workspace split the lifecycle the way native QP solvers do:
//     Setup allocates and factors once, Solve runs once, Free releases.
//     Free is idempotent and safe on every exit path.
//   - Status classifies termination; only StatusSolved and
//     StatusSolvedInaccurate are acceptable outcomes.
//   - ADMM is the bundled Solver: the alternating-direction method of
//     multipliers with over-relaxation, the same scheme production QP
//     solvers for this problem class use.
//
// Why:
//
//   - The smoother needs exactly one solve per call with hard resource
//     guarantees; the Workspace interface makes "release on every exit
//     path" a single deferred call instead of duplicated cleanup code.
//   - Keeping Solver an interface lets callers swap in a native solver
//     binding, and lets tests inject failing or counting mocks.
//
// Concurrency:
//
//   - A Solver may be shared; each Workspace owns its buffers and must
//     be confined to one goroutine.
//
// Complexity (bundled ADMM):
//
//   - Setup: O(n³) for the dense Cholesky factorization of
//     P + σI + AᵀρA (n = number of variables).
//   - Solve: O(n² + nnz) per iteration.
//
// Errors:
//
//   - ErrNilMatrix, ErrDimensionMismatch, ErrBoundOrder: malformed Problem.
//   - ErrNonConvex: the objective is not positive semi-definite.
//   - ErrFreed: use of a Workspace after Free.
//   - ErrBadSettings: non-positive iteration cap or tolerances.
package qp
