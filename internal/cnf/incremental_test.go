package cnf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/bmc-core/internal/be"
)

func TestIncrementalConvertMemoizesAcrossCalls(t *testing.T) {
	m := be.NewManager()
	m.Reserve(2)
	v0, v1 := m.VarOfIndex(0), m.VarOfIndex(1)
	f := m.And(v0, v1)

	ic := NewIncremental()
	top1, fresh1 := ic.Convert(f)
	require.NotEmpty(t, fresh1)

	top2, fresh2 := ic.Convert(f)
	assert.Equal(t, top1, top2)
	assert.Empty(t, fresh2, "converting the same DAG twice must not re-teach its clauses")
}

func TestIncrementalConvertReusesSharedSubDAG(t *testing.T) {
	m := be.NewManager()
	m.Reserve(3)
	v0, v1, v2 := m.VarOfIndex(0), m.VarOfIndex(1), m.VarOfIndex(2)
	shared := m.And(v0, v1)

	ic := NewIncremental()
	_, freshA := ic.Convert(m.Or(shared, v2))
	_, freshB := ic.Convert(m.Xor(shared, v2))

	// Both formulas reference `shared`; only its first conversion
	// should have taught its defining clauses.
	assert.NotEmpty(t, freshA)
	for _, clause := range freshB {
		assert.NotContains(t, freshA, clause)
	}
}

func TestIncrementalConvertTrivialForms(t *testing.T) {
	m := be.NewManager()
	ic := NewIncremental()

	top, fresh := ic.Convert(m.Truth())
	assert.Equal(t, TopTrue, top)
	assert.Empty(t, fresh)

	top, fresh = ic.Convert(m.Falsity())
	assert.Equal(t, TopFalse, top)
	assert.Empty(t, fresh)
}

func TestIncrementalBEVarToCNFRoundTrips(t *testing.T) {
	m := be.NewManager()
	m.Reserve(1)
	idx := be.VarIndex(0)
	v0 := m.VarOfIndex(idx)

	ic := NewIncremental()
	top, _ := ic.Convert(v0)

	cnfVar, ok := ic.BEVarToCNF(idx)
	require.True(t, ok)
	assert.Equal(t, top.Var(), cnfVar)

	gotIdx, ok := ic.CNFToBEVar(cnfVar)
	require.True(t, ok)
	assert.Equal(t, idx, gotIdx)
}

func TestIncrementalCNFToBEVarUnknownIsFalse(t *testing.T) {
	ic := NewIncremental()
	_, ok := ic.CNFToBEVar(999)
	assert.False(t, ok)
}
