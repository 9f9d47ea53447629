package ltl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

func newTestVM(t *testing.T) (*be.Manager, *varmgr.Manager) {
	t.Helper()
	m := be.NewManager()
	vm, err := varmgr.New(m, []string{"p"}, []string{"act"})
	require.NoError(t, err)
	return m, vm
}

func TestLeafVarFoldsInputAtTerminalFrame(t *testing.T) {
	m, vm := newTestVM(t)
	leaf, err := leafVar(vm, "act", 2, 2)
	require.NoError(t, err)
	assert.Same(t, m.Falsity(), leaf)

	// Away from the terminal frame, the same input variable is a real
	// time-shifted variable, not folded.
	notTerminal, err := leafVar(vm, "act", 1, 2)
	require.NoError(t, err)
	idx, _ := vm.IndexByName("act")
	want := vm.ShiftToTime(m.VarOfIndex(idx), 1)
	assert.Same(t, want, notTerminal)
}

func TestLeafVarNormalShift(t *testing.T) {
	m, vm := newTestVM(t)
	idx, _ := vm.IndexByName("p")
	leaf, err := leafVar(vm, "p", 2, 5)
	require.NoError(t, err)
	want := vm.ShiftToTime(m.VarOfIndex(idx), 2)
	assert.Same(t, want, leaf)
}

func TestTableauUndeclaredVar(t *testing.T) {
	_, vm := newTestVM(t)
	_, err := Tableau(vm, Var{Name: "nope"}, 1, NoLoopHypothesis)
	assert.Error(t, err)
}

func TestTableauNegationRequiresVar(t *testing.T) {
	_, vm := newTestVM(t)
	_, err := Tableau(vm, Not{X: And{X: Top{}, Y: Bottom{}}}, 1, NoLoopHypothesis)
	assert.Error(t, err)
}

func TestFutureNoLoopWindow(t *testing.T) {
	m, vm := newTestVM(t)
	got, err := Tableau(vm, Future{X: Var{Name: "p"}}, 2, NoLoopHypothesis)
	require.NoError(t, err)

	var want *be.Node = m.Falsity()
	for i := 0; i <= 2; i++ {
		l, err := leafVar(vm, "p", i, 2)
		require.NoError(t, err)
		want = m.Or(want, l)
	}
	assert.Same(t, want, got)
}

func TestGloballyNoLoopIsFalsity(t *testing.T) {
	m, vm := newTestVM(t)
	got, err := Tableau(vm, Globally{X: Var{Name: "p"}}, 3, NoLoopHypothesis)
	require.NoError(t, err)
	assert.Same(t, m.Falsity(), got)
}

func TestGloballyWithLoopConjoinsWindow(t *testing.T) {
	m, vm := newTestVM(t)
	loop := FixedLoopAt(1)
	got, err := Tableau(vm, Globally{X: Var{Name: "p"}}, 3, loop)
	require.NoError(t, err)

	// At the top-level call t=0 < l=1, so the window is [min(t,l)..k-1]
	// = [0..2].
	want := m.Truth()
	for i := 0; i <= 2; i++ {
		l, err := leafVar(vm, "p", i, 3)
		require.NoError(t, err)
		want = m.And(want, l)
	}
	assert.Same(t, want, got)
}

func TestFixedLoopRejectsOutOfRange(t *testing.T) {
	_, vm := newTestVM(t)
	_, err := Tableau(vm, Var{Name: "p"}, 2, FixedLoopAt(2))
	assert.Error(t, err)
}

func TestLoopClosureConjoinsStateBits(t *testing.T) {
	m, vm := newTestVM(t)
	got := LoopClosure(vm, 1, 3)
	want := m.And(m.Truth(), m.Iff(vm.ShiftToTime(vm.CurrentVar(0), 1), vm.ShiftToTime(vm.CurrentVar(0), 3)))
	assert.Same(t, want, got)
}

func TestAllLoopsDisjoinsOverPositions(t *testing.T) {
	m, vm := newTestVM(t)
	got, err := Tableau(vm, Var{Name: "p"}, 2, AllLoopsHypothesis)
	require.NoError(t, err)

	acc := m.Falsity()
	for l := 0; l < 2; l++ {
		tab, err := Tableau(vm, Var{Name: "p"}, 2, FixedLoopAt(l))
		require.NoError(t, err)
		lc := LoopClosure(vm, l, 2)
		acc = m.Or(acc, m.And(tab, lc))
	}
	assert.Same(t, acc, got)
}

func TestUntilBaseCase(t *testing.T) {
	_, vm := newTestVM(t)
	// phi1 is the constant Bottom, so every recursive branch
	// (phi1 ∧ next-unfolding) folds to ⊥ regardless of budget, leaving
	// Until collapse to phi2's translation at the original t.
	got, err := Tableau(vm, Until{X: Bottom{}, Y: Var{Name: "p"}}, 2, NoLoopHypothesis)
	require.NoError(t, err)
	want, err := leafVar(vm, "p", 0, 2)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestReleaseBaseCaseNoLoopConjoinsBoth(t *testing.T) {
	m, vm := newTestVM(t)
	got, err := Tableau(vm, Release{X: Var{Name: "p"}, Y: Var{Name: "p"}}, 0, NoLoopHypothesis)
	require.NoError(t, err)
	l, err := leafVar(vm, "p", 0, 0)
	require.NoError(t, err)
	want := m.And(l, l)
	assert.Same(t, want, got)
}
