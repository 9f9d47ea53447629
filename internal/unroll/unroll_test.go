package unroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/fsm"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

func newTestUnroller(t *testing.T) (*be.Manager, *varmgr.Manager, *Unroller) {
	t.Helper()
	m := be.NewManager()
	vm, err := varmgr.New(m, []string{"s0"}, []string{"i0"})
	require.NoError(t, err)

	s0, i0, n0 := vm.CurrentVar(0), vm.InputVar(0), vm.NextVar(0)
	f, err := fsm.New(vm, s0, m.Truth(), m.Iff(n0, m.Xor(s0, i0)), []*be.Node{s0})
	require.NoError(t, err)
	return m, vm, New(f)
}

func TestInit0(t *testing.T) {
	m, vm, u := newTestUnroller(t)
	want := vm.ShiftToTime(m.And(vm.CurrentVar(0), m.Truth()), 0)
	assert.Same(t, want, u.Init0())
}

func TestUnrollRejectsBackwardsRange(t *testing.T) {
	_, _, u := newTestUnroller(t)
	_, err := u.Unroll(3, 1)
	assert.Error(t, err)
}

func TestUnrollEmptyRangeIsJustTerminalInvar(t *testing.T) {
	m, _, u := newTestUnroller(t)
	got, err := u.Unroll(2, 2)
	require.NoError(t, err)
	want := u.InvarAt(2)
	assert.Same(t, want, got)
	_ = m
}

func TestPathWithInitConjoinsInit0(t *testing.T) {
	m, _, u := newTestUnroller(t)
	got, err := u.PathWithInit(2)
	require.NoError(t, err)
	noInit, err := u.PathNoInit(2)
	require.NoError(t, err)
	want := m.And(noInit, u.Init0())
	assert.Same(t, want, got)
}

func TestFairnessNoLoopIsFalsity(t *testing.T) {
	m, _, u := newTestUnroller(t)
	got, err := u.Fairness(3, NoLoopHypothesis)
	require.NoError(t, err)
	assert.Same(t, m.Falsity(), got)
}

func TestFairnessFixedLoopRejectsOutOfRange(t *testing.T) {
	_, _, u := newTestUnroller(t)
	_, err := u.Fairness(3, FixedLoopAt(3))
	assert.Error(t, err)

	_, err = u.Fairness(3, FixedLoopAt(-1))
	assert.Error(t, err)
}

func TestFairnessFixedLoopShape(t *testing.T) {
	m, vm, u := newTestUnroller(t)
	got, err := u.Fairness(3, FixedLoopAt(1))
	require.NoError(t, err)

	s0 := vm.CurrentVar(0)
	want := m.And(m.Truth(), vm.OrInterval(s0, 1, 2))
	assert.Same(t, want, got)
}

func TestFairnessAllLoopsDisjoinsFixedCases(t *testing.T) {
	m, _, u := newTestUnroller(t)
	got, err := u.Fairness(3, AllLoopsHypothesis)
	require.NoError(t, err)

	l0, err := u.Fairness(3, FixedLoopAt(0))
	require.NoError(t, err)
	l1, err := u.Fairness(3, FixedLoopAt(1))
	require.NoError(t, err)
	l2, err := u.Fairness(3, FixedLoopAt(2))
	require.NoError(t, err)

	want := m.Or(m.Or(m.Or(m.Falsity(), l0), l1), l2)
	assert.Same(t, want, got)
}
