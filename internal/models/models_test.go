package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesAreSorted(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

func TestGetUnknownNameFails(t *testing.T) {
	_, ok := Get("no-such-model")
	assert.False(t, ok)
}

func TestEveryModelHasAProperty(t *testing.T) {
	for _, name := range Names() {
		m, ok := Get(name)
		require.True(t, ok)
		assert.NotNil(t, m.FSM)
		assert.NotNil(t, m.Encoding)
		if m.InvariantProperty == nil && m.LTLProperty == nil {
			t.Errorf("model %q has neither an invariant nor an LTL property", name)
		}
	}
}
