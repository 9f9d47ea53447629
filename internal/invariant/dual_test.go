package invariant

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/operator-framework/bmc-core/internal/bddv"
	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/fsm"
	"github.com/operator-framework/bmc-core/internal/sat/ginisolver"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

func latchProblemNoInput(t *testing.T, maxK int) Problem {
	t.Helper()
	return latchProblem(t, maxK)
}

func TestDualProvesInvariantLatch(t *testing.T) {
	p := latchProblemNoInput(t, 5)
	res, err := Dual(p, newIncSolver, newIncSolver)
	require.NoError(t, err)
	require.Equal(t, Proved, res.Outcome)
}

func TestDualFalsifiesFlip(t *testing.T) {
	m := be.NewManager()
	vm, err := varmgr.New(m, []string{"s0"}, nil)
	require.NoError(t, err)
	s0, n0 := vm.CurrentVar(0), vm.NextVar(0)
	f, err := fsm.New(vm, s0, m.Truth(), m.Iff(n0, m.Not(s0)), nil)
	require.NoError(t, err)
	p := Problem{FSM: f, Property: s0, MaxK: 5, Encoding: bddv.NewTableEncoding(nil)}

	res, err := Dual(p, newIncSolver, newIncSolver)
	require.NoError(t, err)
	require.Equal(t, Falsified, res.Outcome)
	require.NotNil(t, res.Trace)
}

func TestDualRejectsInputVariables(t *testing.T) {
	m := be.NewManager()
	vm, err := varmgr.New(m, []string{"s0"}, []string{"i0"})
	require.NoError(t, err)
	s0, i0, n0 := vm.CurrentVar(0), vm.InputVar(0), vm.NextVar(0)
	f, err := fsm.New(vm, s0, m.Truth(), m.Iff(n0, m.Xor(s0, i0)), nil)
	require.NoError(t, err)
	p := Problem{FSM: f, Property: s0, MaxK: 5, Encoding: bddv.NewTableEncoding(nil)}

	_, err = Dual(p, newIncSolver, newIncSolver)
	require.Error(t, err)
	kind, ok := bmcerr.KindOf(err)
	require.True(t, ok)
	require.Equal(t, bmcerr.AlgorithmUnavailable, kind)
}

func TestDualReportsUnknownUpToKWhenStarved(t *testing.T) {
	m := be.NewManager()
	vm, err := varmgr.New(m, []string{"s0"}, nil)
	require.NoError(t, err)
	s0, n0 := vm.CurrentVar(0), vm.NextVar(0)
	f, err := fsm.New(vm, s0, m.Truth(), m.Iff(n0, m.Not(s0)), nil)
	require.NoError(t, err)
	p := Problem{FSM: f, Property: s0, MaxK: -1, Encoding: bddv.NewTableEncoding(nil)}

	res, err := Dual(p, newIncSolver, newIncSolver)
	require.NoError(t, err)
	require.Equal(t, UnknownUpToK, res.Outcome)
}
