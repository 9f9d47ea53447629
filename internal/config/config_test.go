package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/operator-framework/bmc-core/internal/bmcerr"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestAddFlagsBindsValues(t *testing.T) {
	c := Default()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.AddFlags(flags)

	require.NoError(t, flags.Parse([]string{"--max-k=25", "--algorithm=dual", "--ltl-incremental=false"}))
	assert.Equal(t, 25, c.MaxK)
	assert.Equal(t, Dual, c.Algorithm)
	assert.False(t, c.LTLIncremental)
}

func TestValidateRejectsUnknownAlgorithm(t *testing.T) {
	c := Default()
	c.Algorithm = "bogus"
	err := c.Validate()
	require.Error(t, err)
	kind, ok := bmcerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, bmcerr.InvalidProperty, kind)
}

func TestValidateRejectsMaxKBelowMinK(t *testing.T) {
	c := Default()
	c.MinK, c.MaxK = 5, 2
	err := c.Validate()
	require.Error(t, err)
	kind, ok := bmcerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, bmcerr.ParameterInconsistent, kind)
}

func TestValidateRejectsNegativeMinK(t *testing.T) {
	c := Default()
	c.MinK = -1
	err := c.Validate()
	require.Error(t, err)
	kind, ok := bmcerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, bmcerr.ParameterInconsistent, kind)
}

func TestDual_Incremental(t *testing.T) {
	assert.True(t, Dual.Incremental())
	assert.True(t, ZigZag.Incremental())
	assert.False(t, Classic.Incremental())
	assert.False(t, EenSorensson.Incremental())
}

func TestLogrusLevelParsesValidLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "debug"
	lvl, err := c.LogrusLevel()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)
}

func TestLogrusLevelRejectsUnknownLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "deafening"
	_, err := c.LogrusLevel()
	require.Error(t, err)
	kind, ok := bmcerr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, bmcerr.InvalidProperty, kind)
}
