package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/config"
)

func TestNewAppliesDefaults(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	assert.NotNil(t, s.Logger())
	assert.Equal(t, config.Default(), s.Config())
}

func TestWithVariablesBuildsBEAndVM(t *testing.T) {
	s, err := New(WithVariables([]string{"x"}, nil))
	require.NoError(t, err)

	m, err := s.BE()
	require.NoError(t, err)
	assert.NotNil(t, m)

	vm, err := s.VM()
	require.NoError(t, err)
	assert.Equal(t, 1, vm.NumState())
}

func TestAccessorsFailWithoutVariables(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	_, err = s.BE()
	require.Error(t, err)
	kind, ok := bmcerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, bmcerr.SetupRequired, kind)

	_, err = s.VM()
	require.Error(t, err)
}

func TestWithConfigRejectsInvalidConfig(t *testing.T) {
	bad := config.Default()
	bad.Algorithm = "bogus"

	_, err := New(WithConfig(bad))
	require.Error(t, err)
	kind, ok := bmcerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, bmcerr.InvalidProperty, kind)
}

func TestCloseThenAccessorsFail(t *testing.T) {
	s, err := New(WithVariables([]string{"x"}, nil))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.BE()
	require.Error(t, err)
	kind, ok := bmcerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, bmcerr.SetupRequired, kind)
}

func TestDoubleCloseErrors(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.Error(t, s.Close())
}
