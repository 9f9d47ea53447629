package bddv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableEncodingDecodesScalar(t *testing.T) {
	e := NewTableEncoding(map[string][]string{"c": {"c1", "c0"}})

	v, err := e.Eval([]SignedVar{{Name: "c1", Value: true}, {Name: "c0", Value: true}})
	require.NoError(t, err)
	n, ok := v.Int("c")
	require.True(t, ok)
	assert.Equal(t, int64(3), n)
}

func TestTableEncodingZeroDefaultsUnsetBits(t *testing.T) {
	e := NewTableEncoding(map[string][]string{"c": {"c1", "c0"}})
	v, err := e.Eval(nil)
	require.NoError(t, err)
	n, ok := v.Int("c")
	require.True(t, ok)
	assert.Equal(t, int64(0), n)
}

func TestTableEncodingPassesThroughPlainBool(t *testing.T) {
	e := NewTableEncoding(nil)
	v, err := e.Eval([]SignedVar{{Name: "ready", Value: true}})
	require.NoError(t, err)
	b, ok := v.Bool("ready")
	require.True(t, ok)
	assert.True(t, b)
}

func TestPrettyIsDeterministic(t *testing.T) {
	e := NewTableEncoding(map[string][]string{"c": {"c1", "c0"}})
	v, err := e.Eval([]SignedVar{{Name: "c1", Value: false}, {Name: "c0", Value: true}, {Name: "ready", Value: true}})
	require.NoError(t, err)
	assert.Equal(t, "c=1 ready=true", v.Pretty())
}
