package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/bmc-core/internal/be"
)

func TestStaticSymbolTableClassification(t *testing.T) {
	tbl := NewStaticSymbolTable(
		[]string{"c1", "c0", "ready"},
		[]string{"go"},
		map[string][]string{"c": {"c1", "c0"}},
	)

	assert.True(t, tbl.IsState("c1"))
	assert.True(t, tbl.IsInput("go"))
	assert.False(t, tbl.IsState("go"))
	assert.True(t, tbl.IsDeclared("ready"))
	assert.False(t, tbl.IsDeclared("nope"))
	assert.True(t, tbl.IsBoolean("ready"))
	assert.False(t, tbl.IsBoolean("c"))

	bits, ok := tbl.BitsOf("c")
	require.True(t, ok)
	assert.Equal(t, []string{"c1", "c0"}, bits)

	_, ok = tbl.BitsOf("ready")
	assert.False(t, ok)
}

func TestStaticSexpFSMReturnsBuiltNodes(t *testing.T) {
	m := be.NewManager()
	m.Reserve(1)
	v := m.VarOfIndex(0)

	fsm := NewStaticSexpFSM(v, m.Truth(), m.Not(v), []*be.Node{m.Truth()})
	assert.Same(t, v, fsm.Init())
	assert.Same(t, m.Truth(), fsm.Invar())
	assert.Same(t, m.Not(v), fsm.Trans())
	require.Len(t, fsm.Justice(), 1)
	assert.Same(t, m.Truth(), fsm.Justice()[0])
}
