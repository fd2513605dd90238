package femsmooth_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicore2/apollo/femsmooth"
	"github.com/minicore2/apollo/qp"
)

// mockWorkspace records lifecycle calls for leak verification.
type mockWorkspace struct {
	res       qp.Result
	warmed    []float64
	freeCount int
}

func (m *mockWorkspace) WarmStartX(x []float64) error {
	m.warmed = append([]float64(nil), x...)

	return nil
}

func (m *mockWorkspace) Solve() (qp.Result, error) {
	return m.res, nil
}

func (m *mockWorkspace) Free() {
	m.freeCount++
}

// mockSolver tracks every workspace it hands out, so tests can assert
// that no allocation survives a call on any exit path.
type mockSolver struct {
	res        qp.Result
	setupErr   error
	setupCount int
	lastProb   *qp.Problem
	lastSet    qp.Settings
	workspaces []*mockWorkspace
}

func (m *mockSolver) Setup(p *qp.Problem, s qp.Settings) (qp.Workspace, error) {
	m.setupCount++
	m.lastProb = p
	m.lastSet = s
	if m.setupErr != nil {
		return nil, m.setupErr
	}
	ws := &mockWorkspace{res: m.res}
	m.workspaces = append(m.workspaces, ws)

	return ws, nil
}

// assertNoLeak checks every handed-out workspace was freed exactly once.
func (m *mockSolver) assertNoLeak(t *testing.T) {
	t.Helper()
	for i, ws := range m.workspaces {
		assert.Equal(t, 1, ws.freeCount, "workspace %d free count", i)
	}
}

// validSpec returns a minimal valid 3-point path.
func validSpec() *femsmooth.PathSpec {
	return &femsmooth.PathSpec{
		Ref:     []femsmooth.Point{{X: 0, Y: 0}, {X: 1, Y: 0.5}, {X: 2, Y: 0}},
		XBounds: []float64{0.2, 0.2, 0.2},
		YBounds: []float64{0.2, 0.2, 0.2},
	}
}

// TestSmooth_ValidationFailures walks every precondition violation and
// verifies the solver is never reached.
func TestSmooth_ValidationFailures(t *testing.T) {
	mock := &mockSolver{}
	opts := femsmooth.DefaultOptions()

	cases := []struct {
		name string
		spec *femsmooth.PathSpec
		opts femsmooth.Options
		want error
	}{
		{"nil spec", nil, opts, femsmooth.ErrEmptyPath},
		{"empty path", &femsmooth.PathSpec{}, opts, femsmooth.ErrEmptyPath},
		{
			"mismatched bounds",
			&femsmooth.PathSpec{
				Ref:     validSpec().Ref,
				XBounds: []float64{0.2, 0.2},
				YBounds: []float64{0.2, 0.2, 0.2},
			},
			opts,
			femsmooth.ErrLengthMismatch,
		},
		{
			"two points",
			&femsmooth.PathSpec{
				Ref:     []femsmooth.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
				XBounds: []float64{0.2, 0.2},
				YBounds: []float64{0.2, 0.2},
			},
			opts,
			femsmooth.ErrTooFewPoints,
		},
		{
			"negative bound",
			&femsmooth.PathSpec{
				Ref:     validSpec().Ref,
				XBounds: []float64{0.2, -0.1, 0.2},
				YBounds: []float64{0.2, 0.2, 0.2},
			},
			opts,
			femsmooth.ErrNegativeBound,
		},
		{
			"negative weight",
			validSpec(),
			femsmooth.Options{
				Weights: femsmooth.Weights{Smooth: -1, Length: 1, Deviation: 1},
				Solver:  qp.DefaultSettings(),
			},
			femsmooth.ErrNegativeWeight,
		},
	}

	for _, tc := range cases {
		xs, ys, err := femsmooth.SmoothWith(mock, tc.spec, tc.opts)
		assert.ErrorIs(t, err, tc.want, "case %q", tc.name)
		assert.Nil(t, xs, "case %q: no output on failure", tc.name)
		assert.Nil(t, ys, "case %q: no output on failure", tc.name)
	}
	assert.Zero(t, mock.setupCount, "validation failures must not reach the solver")
}

// TestSmooth_ProblemShape inspects the formulated problem a mock
// solver receives: 2N decision variables, 2N constraints, the warm
// start equal to the flattened reference, and the de-interleave of the
// returned primal.
func TestSmooth_ProblemShape(t *testing.T) {
	spec := validSpec()
	mock := &mockSolver{res: qp.Result{
		Status: qp.StatusSolved,
		X:      []float64{0, 0, 1, 0.5, 2, 0},
	}}
	opts := femsmooth.Options{
		Weights: femsmooth.Weights{Smooth: 1, Length: 1, Deviation: 1},
		Solver:  qp.DefaultSettings(),
	}

	xs, ys, err := femsmooth.SmoothWith(mock, spec, opts)
	require.NoError(t, err)

	require.Equal(t, 1, mock.setupCount)
	p := mock.lastProb
	assert.Equal(t, 6, p.P.Cols, "decision vector length is 2N")
	assert.Equal(t, 6, p.A.Rows, "constraint count equals decision vector length")
	assert.Len(t, p.Q, 6)
	assert.Len(t, p.L, 6)
	assert.Len(t, p.U, 6)
	require.NoError(t, p.Validate())

	require.Len(t, mock.workspaces, 1)
	assert.Equal(t, []float64{0, 0, 1, 0.5, 2, 0}, mock.workspaces[0].warmed,
		"warm start is the flattened reference path")

	assert.Equal(t, []float64{0, 1, 2}, xs)
	assert.Equal(t, []float64{0, 0.5, 0}, ys)
	mock.assertNoLeak(t)
}

// TestSmooth_WarmStartDisabled verifies the adapter honors the
// warm-start flag instead of pushing the guess unconditionally.
func TestSmooth_WarmStartDisabled(t *testing.T) {
	mock := &mockSolver{res: qp.Result{
		Status: qp.StatusSolved,
		X:      make([]float64, 6),
	}}
	opts := femsmooth.DefaultOptions()
	opts.Solver.WarmStart = false

	_, _, err := femsmooth.SmoothWith(mock, validSpec(), opts)
	require.NoError(t, err)
	require.Len(t, mock.workspaces, 1)
	assert.Nil(t, mock.workspaces[0].warmed, "no warm start when disabled")
	mock.assertNoLeak(t)
}

// TestSmooth_SolverFailure verifies an unacceptable status maps to
// ErrSolveFailed with no output and no leaked workspace.
func TestSmooth_SolverFailure(t *testing.T) {
	for _, status := range []qp.Status{
		qp.StatusMaxIterations,
		qp.StatusTimeLimit,
		qp.StatusPrimalInfeasible,
		qp.StatusNonConvex,
		qp.StatusError,
	} {
		mock := &mockSolver{res: qp.Result{Status: status}}

		xs, ys, err := femsmooth.SmoothWith(mock, validSpec(), femsmooth.DefaultOptions())
		assert.ErrorIs(t, err, femsmooth.ErrSolveFailed, "status %q", status)
		assert.Nil(t, xs)
		assert.Nil(t, ys)
		mock.assertNoLeak(t)
	}
}

// TestSmooth_SetupFailure propagates a setup error untouched.
func TestSmooth_SetupFailure(t *testing.T) {
	boom := errors.New("allocation failed")
	mock := &mockSolver{setupErr: boom}

	_, _, err := femsmooth.SmoothWith(mock, validSpec(), femsmooth.DefaultOptions())
	assert.ErrorIs(t, err, boom)
}

// TestSmooth_ReferenceRoundTrip uses the bundled solver with a
// deviation-dominated objective and wide bounds: the optimum is the
// reference path itself.
func TestSmooth_ReferenceRoundTrip(t *testing.T) {
	spec := zigzag(8, 1e6)
	opts := femsmooth.Options{
		Weights: femsmooth.Weights{Smooth: 0, Length: 0, Deviation: 1},
		Solver:  qp.DefaultSettings(),
	}

	xs, ys, err := femsmooth.Smooth(spec, opts)
	require.NoError(t, err)
	require.Len(t, xs, 8)
	require.Len(t, ys, 8)
	for i, p := range spec.Ref {
		assert.InDelta(t, p.X, xs[i], 1e-2, "x[%d]", i)
		assert.InDelta(t, p.Y, ys[i], 1e-2, "y[%d]", i)
	}
}

// TestSmooth_ThreePointZeroBounds pins the boundary scenario: zero
// half-widths make the reference the only feasible point, so it comes
// back unchanged up to solver tolerance.
func TestSmooth_ThreePointZeroBounds(t *testing.T) {
	spec := &femsmooth.PathSpec{
		Ref:     []femsmooth.Point{{X: 0, Y: 0}, {X: 1, Y: 0.5}, {X: 2, Y: 0}},
		XBounds: []float64{0, 0, 0},
		YBounds: []float64{0, 0, 0},
	}
	opts := femsmooth.Options{
		Weights: femsmooth.Weights{Smooth: 1, Length: 1, Deviation: 1},
		Solver:  qp.DefaultSettings(),
	}

	xs, ys, err := femsmooth.Smooth(spec, opts)
	require.NoError(t, err)
	for i, p := range spec.Ref {
		assert.InDelta(t, p.X, xs[i], 1e-2, "x[%d]", i)
		assert.InDelta(t, p.Y, ys[i], 1e-2, "y[%d]", i)
	}
}

// TestSmooth_ReducesRoughness smooths a zigzag and verifies the
// second-difference energy drops while every point stays inside its
// box.
func TestSmooth_ReducesRoughness(t *testing.T) {
	spec := zigzag(9, 0.5)
	opts := femsmooth.Options{
		Weights: femsmooth.Weights{Smooth: 10, Length: 1, Deviation: 1},
		Solver:  qp.DefaultSettings(),
	}

	xs, ys, err := femsmooth.Smooth(spec, opts)
	require.NoError(t, err)

	before, after := 0.0, 0.0
	for i := 1; i < len(spec.Ref)-1; i++ {
		ry := spec.Ref[i-1].Y - 2*spec.Ref[i].Y + spec.Ref[i+1].Y
		sy := ys[i-1] - 2*ys[i] + ys[i+1]
		before += ry * ry
		after += sy * sy
	}
	assert.Less(t, after, before, "smoothing must reduce second-difference energy")

	const slack = 1e-2
	for i, p := range spec.Ref {
		assert.LessOrEqual(t, math.Abs(xs[i]-p.X), spec.XBounds[i]+slack, "x[%d] within box", i)
		assert.LessOrEqual(t, math.Abs(ys[i]-p.Y), spec.YBounds[i]+slack, "y[%d] within box", i)
	}
}
