// Package ltlcheck implements the LTL bounded model checking algorithms
// of §4.7: a non-incremental variant that rebuilds the problem and
// solver at every depth, and an incremental variant that keeps init0
// and the growing unrolling permanent across depths and tests each
// depth in its own disposable assumption group — the same group
// lifecycle (create, assert, solve, destroy) §4.6's ZigZag/Dual already
// use, generalized from an invariant's P@k to a tableau witness of
// ¬ϕ@(k,l).
//
// Neither variant can conclude Proved: bounded semantics alone witness
// a finite counterexample but never establish that none exists beyond
// the searched depth (that needs a completeness threshold, out of
// scope per the Non-goals). A run therefore only ever reports
// Falsified or UnknownUpToK.
package ltlcheck

import (
	"github.com/operator-framework/bmc-core/internal/bddv"
	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/fsm"
	"github.com/operator-framework/bmc-core/internal/ltl"
	"github.com/operator-framework/bmc-core/internal/sat"
	"github.com/operator-framework/bmc-core/internal/trace"
	"github.com/operator-framework/bmc-core/internal/unroll"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

// Outcome is the final disposition of an LTL check.
type Outcome int

const (
	Falsified Outcome = iota
	UnknownUpToK
)

func (o Outcome) String() string {
	if o == Falsified {
		return "falsified"
	}
	return "unknown-up-to-k"
}

// Result is the outcome of one LTL-checking run.
type Result struct {
	Outcome Outcome
	K       int
	Trace   *trace.Trace
}

// Problem bundles the inputs both algorithms need: the FSM to check,
// the property in NNF, the search range, the loop hypothesis under
// which the tableau is built, and the encoding used to decode a
// witness model into a readable trace.
//
// AllLoops is the hypothesis that matches the informal "l=*" reading of
// "falsified" used in S4: a stuttering path only witnesses the
// violation of Fx (x never holding) under some admissible loop, never
// under NoLoop, so a caller wanting that
// exhaustive search sets Loop to unroll.AllLoopsHypothesis.
type Problem struct {
	FSM      *fsm.FSM
	Phi      ltl.Formula
	MinK     int
	MaxK     int
	Loop     unroll.Loop
	Encoding bddv.Encoding
}

func (p Problem) vm() *varmgr.Manager { return p.FSM.VM }

// toLTLLoop converts unroll.Loop (the shared vocabulary fairness and
// the tableau both speak, kept as two identical types in two packages
// so internal/ltl does not have to import internal/unroll) to the
// ltl package's own Loop value.
func toLTLLoop(l unroll.Loop) ltl.Loop {
	switch l.Kind {
	case unroll.FixedLoop:
		return ltl.FixedLoopAt(l.At)
	case unroll.AllLoops:
		return ltl.AllLoopsHypothesis
	default:
		return ltl.NoLoopHypothesis
	}
}

// effectiveMinK resolves the first k actually worth querying: a fixed
// loop position l is only meaningful once k > l (§7 ParameterInconsistent
// covers 0<=l<k), so a caller-supplied MinK below that is raised rather
// than rejected — there is simply nothing to check at those depths.
func effectiveMinK(p Problem) (int, error) {
	min := p.MinK
	if min < 0 {
		min = 0
	}
	if p.Loop.Kind == unroll.FixedLoop {
		if p.Loop.At < 0 {
			return 0, bmcerr.New(bmcerr.ParameterInconsistent, "fixed loop position %d is negative", p.Loop.At)
		}
		if min <= p.Loop.At {
			min = p.Loop.At + 1
		}
	}
	return min, nil
}

// validateProperty resolves every variable Phi references against vm,
// the one way a caller-supplied LTL property can be malformed short of
// outright CTL operators (out of scope: the tableau constructor has no
// CTL cases to mis-dispatch to in the first place).
func validateProperty(vm *varmgr.Manager, phi ltl.Formula) error {
	var walk func(ltl.Formula) error
	walk = func(f ltl.Formula) error {
		switch n := f.(type) {
		case ltl.Var:
			if !ltl.ResolveVar(vm, n) {
				return bmcerr.New(bmcerr.InvalidProperty, "undeclared variable %q", n.Name)
			}
			return nil
		case ltl.Not:
			return walk(n.X)
		case ltl.And:
			if err := walk(n.X); err != nil {
				return err
			}
			return walk(n.Y)
		case ltl.Or:
			if err := walk(n.X); err != nil {
				return err
			}
			return walk(n.Y)
		case ltl.Iff:
			if err := walk(n.X); err != nil {
				return err
			}
			return walk(n.Y)
		case ltl.Next:
			return walk(n.X)
		case ltl.Future:
			return walk(n.X)
		case ltl.Globally:
			return walk(n.X)
		case ltl.Until:
			if err := walk(n.X); err != nil {
				return err
			}
			return walk(n.Y)
		case ltl.Release:
			if err := walk(n.X); err != nil {
				return err
			}
			return walk(n.Y)
		default:
			return nil
		}
	}
	return walk(phi)
}

// reconstructFrom reads s's last model and decodes it through
// Problem.Encoding, shared by both algorithm variants.
func reconstructFrom(s sat.Solver, c trace.VarMapper, vm *varmgr.Manager, p Problem, k int) (*trace.Trace, error) {
	model, err := s.Model()
	if err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "reading model")
	}
	return trace.Reconstruct(model, c, vm, p.Encoding, k)
}
