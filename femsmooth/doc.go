// Package femsmooth turns a raw, noisy sequence of 2-D path points into
// a smooth trajectory by solving a box-constrained quadratic program,
// keeping every output point inside an axis-aligned box around its
// reference point.
//
// What:
//
//   - PathSpec holds the ordered reference points and the per-point
//     box half-widths; Weights holds the three objective weights.
//   - Kernel, LinearTerm, BoxConstraint, and WarmStart are pure
//     builders producing the pieces of the QP: the sparse quadratic
//     term (upper triangle, CSC), the linear term, the identity
//     constraint matrix with its bound vectors, and the initial guess.
//   - Smooth / SmoothWith orchestrate: validate the input, run the four
//     builders, hand the problem to a qp.Solver, classify the outcome,
//     and de-interleave the solution into x- and y- sequences.
//
// Objective:
//
//	w_smooth · Σ‖p_{i-1} − 2p_i + p_{i+1}‖² +
//	w_length · Σ‖p_{i+1} − p_i‖² +
//	w_dev    · Σ‖p_i − ref_i‖²
//
// over the 2N interleaved decision variables (x₀,y₀,…,x_{N-1},y_{N-1}).
// x and y decouple, so the kernel is two identical banded patterns,
// one per axis.
//
// Why:
//
//   - Path-smoothing stage of a planning pipeline: a downstream motion
//     controller needs bounded-deviation, low-curvature trajectories.
//   - The builders are exported so callers with their own solver
//     binding can consume the formulation directly.
//
// Concurrency:
//
//   - Every call owns its matrices and solver workspace; concurrent
//     Smooth calls are safe.
//
// Errors:
//
//   - ErrEmptyPath, ErrTooFewPoints, ErrLengthMismatch, ErrPathTooLong,
//     ErrNegativeBound, ErrNegativeWeight: input validation, detected
//     before any solver interaction.
//   - ErrSolveFailed: the solver terminated with an unacceptable
//     status; no output is produced and no retry is attempted.
package femsmooth
