// Package trace implements the bounded-trace reconstructor (C10):
// turning a SAT model (a flat list of signed CNF literals) back into an
// alternating sequence of state and input assignments, grounded on
// NuSMV's bmcSatTrace.c filter/group-by-time/decode pipeline.
package trace

import (
	"github.com/operator-framework/bmc-core/internal/bddv"
	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/cnf"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

// VarMapper is the slice of cnf.CNF / cnf.Incremental that Reconstruct
// needs: both the one-shot and the persistent incremental converters
// satisfy it, so either can feed a model back through the same
// reconstruction path.
type VarMapper interface {
	CNFToBEVar(v int32) (be.VarIndex, bool)
}

// Trace is a reconstructed witness: k+1 state assignments interleaved
// with k input assignments (no input assignment exists at the final
// frame).
type Trace struct {
	States []bddv.Valuation
	Inputs []bddv.Valuation
}

// Reconstruct decodes model (as returned by sat.Solver.Model, with c
// mapping CNF variables back to BE variable indices) into a Trace of
// length k+1. Literals outside the timed block, and literals whose CNF
// variable was never reached during conversion (pure Tseitin
// variables), are dropped; everything else is grouped by time and
// decoded through enc.
func Reconstruct(model []cnf.Literal, c VarMapper, vm *varmgr.Manager, enc bddv.Encoding, k int) (*Trace, error) {
	if k < 0 {
		return nil, bmcerr.New(bmcerr.ParameterInconsistent, "trace length k=%d must be non-negative", k)
	}

	stateBits := make([][]bddv.SignedVar, k+1)
	inputBits := make([][]bddv.SignedVar, k)

	for _, lit := range model {
		beIdx, ok := c.CNFToBEVar(lit.Var())
		if !ok {
			continue // internal Tseitin variable, not a model variable
		}
		local, isInput, t, timed := vm.Locate(beIdx)
		if !timed {
			continue // untimed current/input/next block, not a trace-relevant var
		}
		if t < 0 || t > k {
			return nil, bmcerr.New(bmcerr.SolverInternalError, "model literal at frame %d outside requested length k=%d", t, k)
		}

		untimed := localUntimedIndex(vm, local, isInput)
		name, ok := vm.NameByIndex(untimed)
		if !ok {
			continue
		}
		sv := bddv.SignedVar{Name: name, Value: lit > 0}

		if isInput {
			if t == k {
				// No input variable is materialized at the terminal
				// frame; consistent with the ltl tableau's leaf rule.
				continue
			}
			inputBits[t] = append(inputBits[t], sv)
			continue
		}
		stateBits[t] = append(stateBits[t], sv)
	}

	tr := &Trace{
		States: make([]bddv.Valuation, k+1),
		Inputs: make([]bddv.Valuation, k),
	}
	for t := 0; t <= k; t++ {
		v, err := enc.Eval(stateBits[t])
		if err != nil {
			return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "decoding state at frame %d", t)
		}
		tr.States[t] = v
	}
	for t := 0; t < k; t++ {
		v, err := enc.Eval(inputBits[t])
		if err != nil {
			return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "decoding input at frame %d", t)
		}
		tr.Inputs[t] = v
	}
	return tr, nil
}

func localUntimedIndex(vm *varmgr.Manager, local int, isInput bool) be.VarIndex {
	if isInput {
		return be.VarIndex(vm.NumState() + local)
	}
	return be.VarIndex(local)
}
