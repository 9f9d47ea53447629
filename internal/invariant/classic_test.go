package invariant

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/operator-framework/bmc-core/internal/sat"
	"github.com/operator-framework/bmc-core/internal/sat/ginisolver"
)

func newSolver() sat.Solver { return ginisolver.New() }

func TestClassicProvesInvariantLatch(t *testing.T) {
	p := latchProblem(t, 5)
	res, err := Classic(p, newSolver)
	require.NoError(t, err)
	require.Equal(t, Proved, res.Outcome)
}

func TestClassicFalsifiesFlip(t *testing.T) {
	p := flipProblem(t, 5)
	res, err := Classic(p, newSolver)
	require.NoError(t, err)
	require.Equal(t, Falsified, res.Outcome)
	require.Equal(t, 1, res.K)
	require.NotNil(t, res.Trace)
}

func TestEenSorenssonProvesInvariantLatch(t *testing.T) {
	p := latchProblem(t, 5)
	res, err := EenSorensson(p, newSolver)
	require.NoError(t, err)
	require.Equal(t, Proved, res.Outcome)
}

func TestEenSorenssonFalsifiesFlip(t *testing.T) {
	p := flipProblem(t, 5)
	res, err := EenSorensson(p, newSolver)
	require.NoError(t, err)
	require.Equal(t, Falsified, res.Outcome)
}

func TestClassicReportsUnknownUpToKWhenStarved(t *testing.T) {
	p := flipProblem(t, 0)
	res, err := Classic(p, newSolver)
	require.NoError(t, err)
	require.Equal(t, UnknownUpToK, res.Outcome)
	require.Equal(t, 0, res.K)
}
