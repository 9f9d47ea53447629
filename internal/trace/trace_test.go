package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/bmc-core/internal/bddv"
	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/cnf"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

func newTraceFixture(t *testing.T) (*be.Manager, *varmgr.Manager) {
	t.Helper()
	m := be.NewManager()
	vm, err := varmgr.New(m, []string{"p"}, []string{"act"})
	require.NoError(t, err)
	return m, vm
}

// litFor returns the signed CNF literal asserting idx to the given
// value, using whatever CNF variable Convert assigned it.
func litFor(t *testing.T, c *cnf.CNF, idx be.VarIndex, value bool) cnf.Literal {
	t.Helper()
	v, ok := c.BEVarToCNF(idx)
	require.True(t, ok)
	if value {
		return cnf.Literal(v)
	}
	return cnf.Literal(-v)
}

func TestReconstructTwoFrames(t *testing.T) {
	m, vm := newTraceFixture(t)
	vm.InitTime(1)

	p0 := vm.TimedIndex(0, false, 0)
	act0 := vm.TimedIndex(0, true, 0)
	p1 := vm.TimedIndex(0, false, 1)

	formula := m.And(m.And(m.VarOfIndex(p0), m.Not(m.VarOfIndex(act0))), m.VarOfIndex(p1))
	c := cnf.Convert(formula)

	model := []cnf.Literal{
		litFor(t, c, p0, true),
		litFor(t, c, act0, false),
		litFor(t, c, p1, true),
	}
	enc := bddv.NewTableEncoding(nil)

	tr, err := Reconstruct(model, c, vm, enc, 1)
	require.NoError(t, err)
	require.Len(t, tr.States, 2)
	require.Len(t, tr.Inputs, 1)

	p0v, ok := tr.States[0].Bool("p")
	require.True(t, ok)
	assert.True(t, p0v)

	act0v, ok := tr.Inputs[0].Bool("act")
	require.True(t, ok)
	assert.False(t, act0v)

	p1v, ok := tr.States[1].Bool("p")
	require.True(t, ok)
	assert.True(t, p1v)
}

func TestReconstructDropsUntimedLiterals(t *testing.T) {
	m, vm := newTraceFixture(t)
	vm.InitTime(0)

	p0 := vm.TimedIndex(0, false, 0)
	untimedP := be.VarIndex(0) // the untimed current-state slot for "p"

	formula := m.And(m.VarOfIndex(p0), m.VarOfIndex(untimedP))
	c := cnf.Convert(formula)

	model := []cnf.Literal{
		litFor(t, c, p0, true),
		litFor(t, c, untimedP, true),
	}
	enc := bddv.NewTableEncoding(nil)

	tr, err := Reconstruct(model, c, vm, enc, 0)
	require.NoError(t, err)
	require.Len(t, tr.States, 1)
	p0v, ok := tr.States[0].Bool("p")
	require.True(t, ok)
	assert.True(t, p0v)
}

func TestReconstructRejectsNegativeK(t *testing.T) {
	_, vm := newTraceFixture(t)
	enc := bddv.NewTableEncoding(nil)
	_, err := Reconstruct(nil, &cnf.CNF{}, vm, enc, -1)
	assert.Error(t, err)
}
