// Package femsmooth defines the path specification, weights, options,
// and sentinel errors of the QP path smoother.
package femsmooth

import (
	"errors"
	"math"

	"github.com/minicore2/apollo/qp"
)

// Sentinel errors returned by Smooth and SmoothWith.
var (
	// ErrEmptyPath indicates the reference path has no points.
	ErrEmptyPath = errors.New("femsmooth: reference path is empty")

	// ErrLengthMismatch indicates the reference points and the two
	// bound sequences differ in length.
	ErrLengthMismatch = errors.New("femsmooth: reference points and bounds lengths differ")

	// ErrTooFewPoints indicates fewer than 3 reference points; the
	// second-difference stencil needs at least three.
	ErrTooFewPoints = errors.New("femsmooth: at least 3 reference points required")

	// ErrPathTooLong indicates the decision-vector length would exceed
	// the signed 32-bit index range used for solver sizing.
	ErrPathTooLong = errors.New("femsmooth: reference path too long for solver indexing")

	// ErrNegativeBound indicates a negative box half-width.
	ErrNegativeBound = errors.New("femsmooth: bound half-widths must be non-negative")

	// ErrNegativeWeight indicates a negative objective weight.
	ErrNegativeWeight = errors.New("femsmooth: weights must be non-negative")

	// ErrSolveFailed indicates the solver terminated with an
	// unacceptable status. One solve per call; the caller owns any
	// retry policy.
	ErrSolveFailed = errors.New("femsmooth: solver failed to find a solution")
)

// minPoints is the smallest path the second-difference stencil admits.
const minPoints = 3

// maxPoints caps the path so the 2N decision variables stay inside the
// signed 32-bit index range of native solver bindings.
const maxPoints = math.MaxInt32 / 2

// Point is one 2-D reference path coordinate. Sequence order is path
// order; adjacency encodes path topology.
type Point struct {
	X, Y float64
}

// PathSpec is the reference path and its per-point deviation boxes.
// XBounds[i] and YBounds[i] are the non-negative half-widths of the
// axis-aligned box around Ref[i]; all three slices must share length.
// The caller owns the slices for the duration of the call.
type PathSpec struct {
	Ref     []Point
	XBounds []float64
	YBounds []float64
}

// Weights are the three non-negative objective weights, fixed for one
// optimization call.
//
// Smooth    – penalizes the discrete second difference (curvature proxy).
// Length    – penalizes the discrete first difference (path length).
// Deviation – penalizes distance from the original reference point.
type Weights struct {
	Smooth    float64
	Length    float64
	Deviation float64
}

// Options configures one smoothing call.
type Options struct {
	Weights Weights     // objective weights
	Solver  qp.Settings // solver configuration
}

// DefaultOptions returns the planner-side defaults: heavy smoothness
// weight (1e10) against unit length and deviation weights, 500 solver
// iterations, warm start and scaled termination enabled.
func DefaultOptions() Options {
	s := qp.DefaultSettings()
	s.MaxIterations = 500
	s.ScaledTermination = true

	return Options{
		Weights: Weights{Smooth: 1e10, Length: 1.0, Deviation: 1.0},
		Solver:  s,
	}
}
