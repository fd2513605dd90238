// Package apollo smooths noisy 2-D reference paths into trajectories a
// motion controller can follow, by formulating and solving a
// box-constrained quadratic program.
//
// 🚀 What is apollo?
//
//	A small, pure-Go planning building block that brings together:
//		• Formulation: sparse quadratic kernel, linear term, per-point
//		  box constraints, and a warm start, built from a reference path
//		• Solving: a pluggable QP solver boundary with a bundled ADMM
//		  implementation (over-relaxation, adaptive step size)
//		• Guarantees: every output point stays inside an axis-aligned
//		  box around its reference point
//
// ✨ Why choose apollo?
//
//   - Minimal API – one PathSpec in, two coordinate sequences out
//   - Rock-solid lifecycle – solver workspaces released on every exit path
//   - Pure Go – no cgo; swap in a native solver binding via qp.Solver
//   - Testable – every builder is a pure function you can call directly
//
// Under the hood, everything is organized under three subpackages:
//
//	sparse/    — compressed-sparse-column matrices shared by all pieces
//	qp/        — the solver boundary: Problem, Settings, Status, ADMM
//	femsmooth/ — the builders and the smoothing orchestrator
//
// Quick ASCII example:
//
//	raw:      ●─╮ ╭─●─╮ ╭─●      noisy reference points
//	             ●     ●
//	smoothed: ●───●───●───●───●  bounded-deviation trajectory
//
// Dive into the femsmooth package docs for the objective, the
// validation rules, and runnable examples.
//
//	go get github.com/minicore2/apollo
package apollo
