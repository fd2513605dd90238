package qp

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// equalityTol classifies a constraint row as an equality (l == u) for
// step-size stiffening.
const equalityTol = 1e-12

// equalityRhoScale stiffens the step on equality rows; without it the
// projection step barely moves z on zero-width boxes.
const equalityRhoScale = 1e3

// residualCheckEvery controls how often the (comparatively expensive)
// residual computation runs inside the iteration loop.
const residualCheckEvery = 25

// inaccurateScale relaxes the tolerances for the "solved inaccurate"
// classification when the iteration or time budget runs out.
const inaccurateScale = 10.0

// Adaptive step bounds and the ratio that triggers a refactorization.
const (
	rhoMin           = 1e-6
	rhoMax           = 1e6
	rhoChangeTrigger = 5.0
)

// ADMM is the bundled Solver: alternating-direction method of
// multipliers with over-relaxation and adaptive step size, the
// operator-splitting scheme production solvers use for box-constrained
// QPs.
//
// Setup factors P + σI + AᵀρA once with a dense Cholesky decomposition
// and reuses the factor across iterations; the factor is rebuilt only
// when the adaptive step changes by more than a fixed ratio.
type ADMM struct{}

// NewADMM returns the bundled ADMM solver. The zero value is also
// ready to use; the constructor exists for symmetry with external
// solver bindings.
func NewADMM() *ADMM {
	return &ADMM{}
}

// Setup validates the problem and settings, allocates the workspace,
// and factors the regularized objective. Returns ErrNonConvex when the
// factorization fails (objective not PSD).
// Complexity: O(n³) time, O(n² + m) memory.
func (ADMM) Setup(p *Problem, s Settings) (Workspace, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("qp: setup: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("qp: setup: %w", err)
	}

	psym, err := p.P.ToSym()
	if err != nil {
		return nil, fmt.Errorf("qp: setup: %w", err)
	}

	n, m := p.P.Cols, p.A.Rows
	w := &admmWorkspace{
		prob:     p,
		set:      s,
		psym:     psym,
		baseRho:  s.Rho,
		rho:      make([]float64, m),
		rhoInv:   make([]float64, m),
		x:        make([]float64, n),
		z:        make([]float64, m),
		y:        make([]float64, m),
		xTilde:   make([]float64, n),
		zTilde:   make([]float64, m),
		rhs:      make([]float64, n),
		scratchN: make([]float64, n),
		scratchM: make([]float64, m),
	}
	w.setRho(s.Rho)
	if err = w.refactor(); err != nil {
		return nil, fmt.Errorf("qp: setup: %w", err)
	}

	return w, nil
}

// admmWorkspace holds the iterates and scratch buffers of one solve.
// Confined to a single goroutine.
type admmWorkspace struct {
	prob    *Problem
	set     Settings
	psym    *mat.SymDense // dense symmetric objective, kept for refactorization
	chol    *mat.Cholesky
	baseRho float64
	rho     []float64 // per-row step: baseRho, stiffened on equality rows
	rhoInv  []float64

	x, z, y        []float64 // primal, splitting, and dual iterates
	xTilde, zTilde []float64
	rhs            []float64
	scratchN       []float64
	scratchM       []float64

	freed bool
}

// setRho installs a new base step and derives the per-row steps.
func (w *admmWorkspace) setRho(rho float64) {
	w.baseRho = rho
	for i := range w.rho {
		w.rho[i] = rho
		if w.prob.U[i]-w.prob.L[i] <= equalityTol {
			w.rho[i] = rho * equalityRhoScale
		}
		w.rhoInv[i] = 1.0 / w.rho[i]
	}
}

// refactor rebuilds and factors K = P + σI + AᵀρA, the fixed matrix of
// every x-update under the current step.
func (w *admmWorkspace) refactor() error {
	n := w.psym.SymmetricDim()
	k := mat.NewSymDense(n, nil)
	k.CopySym(w.psym)
	for j := 0; j < n; j++ {
		k.SetSym(j, j, k.At(j, j)+w.set.Sigma)
	}
	a := w.prob.A
	for j1 := 0; j1 < n; j1++ {
		for k1 := a.Indptr[j1]; k1 < a.Indptr[j1+1]; k1++ {
			row, v1 := a.Indices[k1], a.Data[k1]
			for j2 := j1; j2 < n; j2++ {
				for k2 := a.Indptr[j2]; k2 < a.Indptr[j2+1]; k2++ {
					if a.Indices[k2] == row {
						k.SetSym(j1, j2, k.At(j1, j2)+w.rho[row]*v1*a.Data[k2])
					}
				}
			}
		}
	}

	chol := new(mat.Cholesky)
	if ok := chol.Factorize(k); !ok {
		return ErrNonConvex
	}
	w.chol = chol

	return nil
}

// WarmStartX installs a primal warm start. The splitting iterate is
// re-derived from it so the first iteration starts consistent.
func (w *admmWorkspace) WarmStartX(x []float64) error {
	if w.freed {
		return ErrFreed
	}
	if !w.set.WarmStart {
		return fmt.Errorf("%w: warm start disabled", ErrBadSettings)
	}
	if len(x) != len(w.x) {
		return fmt.Errorf("%w: warm start length %d, want %d", ErrDimensionMismatch, len(x), len(w.x))
	}
	copy(w.x, x)
	w.prob.A.MulVec(w.z, w.x)

	return nil
}

// Solve runs the ADMM iteration until the tolerances, the iteration
// cap, or the wall-clock budget is hit, and classifies the outcome.
func (w *admmWorkspace) Solve() (Result, error) {
	if w.freed {
		return Result{Status: StatusError}, ErrFreed
	}

	p, s := w.prob, w.set
	n, m := len(w.x), len(w.z)
	alpha := s.Alpha
	start := time.Now()

	var deadline time.Time
	if s.TimeLimit > 0 {
		deadline = start.Add(time.Duration(s.TimeLimit * float64(time.Second)))
	}

	res := Result{Status: StatusMaxIterations}
	for iter := 1; iter <= s.MaxIterations; iter++ {
		// x̃ = K⁻¹(σx − q + Aᵀ(ρ∘z − y))
		for i := 0; i < m; i++ {
			w.scratchM[i] = w.rho[i]*w.z[i] - w.y[i]
		}
		p.A.MulVecT(w.scratchN, w.scratchM)
		for j := 0; j < n; j++ {
			w.rhs[j] = s.Sigma*w.x[j] - p.Q[j] + w.scratchN[j]
		}
		xt := mat.NewVecDense(n, w.xTilde)
		if err := w.chol.SolveVecTo(xt, mat.NewVecDense(n, w.rhs)); err != nil {
			return Result{Status: StatusError}, fmt.Errorf("qp: solve: %w", err)
		}
		p.A.MulVec(w.zTilde, w.xTilde)

		// Over-relaxed updates with projection of z onto [l, u].
		for j := 0; j < n; j++ {
			w.x[j] = alpha*w.xTilde[j] + (1-alpha)*w.x[j]
		}
		for i := 0; i < m; i++ {
			zRelax := alpha*w.zTilde[i] + (1-alpha)*w.z[i]
			zNew := clamp(zRelax+w.rhoInv[i]*w.y[i], p.L[i], p.U[i])
			w.y[i] += w.rho[i] * (zRelax - zNew)
			w.z[i] = zNew
		}

		timedOut := s.TimeLimit > 0 && time.Now().After(deadline)
		if iter%residualCheckEvery != 0 && iter != s.MaxIterations && !timedOut {
			continue
		}

		r := w.residuals()
		res.Iterations = iter
		res.PriRes, res.DuaRes = r.pri, r.dua
		epsPri := s.EpsAbs + s.EpsRel*r.priNorm
		epsDua := s.EpsAbs + s.EpsRel*r.duaNorm

		if r.pri <= epsPri && r.dua <= epsDua {
			res.Status = StatusSolved
			res.X = append([]float64(nil), w.x...)

			return res, nil
		}
		if timedOut || iter == s.MaxIterations {
			if r.pri <= inaccurateScale*epsPri && r.dua <= inaccurateScale*epsDua {
				res.Status = StatusSolvedInaccurate
				res.X = append([]float64(nil), w.x...)
			} else if timedOut {
				res.Status = StatusTimeLimit
			} else {
				res.Status = StatusMaxIterations
			}

			return res, nil
		}

		if err := w.adaptRho(r); err != nil {
			return Result{Status: StatusError}, fmt.Errorf("qp: solve: %w", err)
		}
	}

	return res, nil
}

// residualInfo carries one residual evaluation: the infinity-norm
// primal and dual residuals and the norms that scale their tolerances.
type residualInfo struct {
	pri, priNorm float64
	dua, duaNorm float64
}

// residuals evaluates ‖Ax − z‖∞ and ‖Px + q + Aᵀy‖∞ together with the
// relative-tolerance scales max(‖Ax‖∞, ‖z‖∞) and
// max(‖Px‖∞, ‖q‖∞, ‖Aᵀy‖∞).
func (w *admmWorkspace) residuals() residualInfo {
	p := w.prob
	var r residualInfo

	ax := w.scratchM
	p.A.MulVec(ax, w.x)
	for i, v := range ax {
		r.pri = math.Max(r.pri, math.Abs(v-w.z[i]))
	}
	r.priNorm = math.Max(maxAbs(ax), maxAbs(w.z))

	px := w.rhs
	p.P.MulVecSym(px, w.x)
	aty := w.scratchN
	p.A.MulVecT(aty, w.y)
	for j := range px {
		r.dua = math.Max(r.dua, math.Abs(px[j]+p.Q[j]+aty[j]))
	}
	r.duaNorm = math.Max(maxAbs(px), math.Max(maxAbs(p.Q), maxAbs(aty)))

	return r
}

// adaptRho rebalances the step toward the residual that lags: the new
// base step scales with sqrt of the normalized primal/dual residual
// ratio, and the factorization is rebuilt only when the step moves by
// more than the trigger ratio.
func (w *admmWorkspace) adaptRho(r residualInfo) error {
	priScaled := r.pri / math.Max(r.priNorm, 1e-10)
	duaScaled := r.dua / math.Max(r.duaNorm, 1e-10)
	if priScaled <= 0 || duaScaled <= 0 {
		return nil
	}
	newRho := clamp(w.baseRho*math.Sqrt(priScaled/duaScaled), rhoMin, rhoMax)
	if newRho < rhoChangeTrigger*w.baseRho && newRho > w.baseRho/rhoChangeTrigger {
		return nil
	}
	w.setRho(newRho)

	return w.refactor()
}

// Free releases all workspace buffers. Idempotent; any later use of
// the workspace returns ErrFreed.
func (w *admmWorkspace) Free() {
	if w.freed {
		return
	}
	w.freed = true
	w.prob = nil
	w.psym = nil
	w.chol = nil
	w.rho, w.rhoInv = nil, nil
	w.x, w.z, w.y = nil, nil, nil
	w.xTilde, w.zTilde, w.rhs = nil, nil, nil
	w.scratchN, w.scratchM = nil, nil
}

// clamp projects v onto [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// maxAbs returns the infinity norm of v.
func maxAbs(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if a := math.Abs(x); a > m {
			m = a
		}
	}

	return m
}
