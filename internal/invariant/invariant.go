// Package invariant implements the four invariant-checking algorithms
// of §4.6: Classic and Eén-Sørensson (both non-incremental, rebuilding
// a fresh solver at every depth) and ZigZag and Dual (incremental,
// sharing one long-lived solver across depths). Each is written as an
// explicit state machine over {NeedBase, NeedStep, DoneProved,
// DoneFalsified, DoneAbort} per the Design Note "Coroutine/control-flow
// tricks ⇒ explicit state", mirroring the teacher's searcher/search
// split (solver/search.go's push/pop-guess stack as an inspectable
// structure rather than recursive backtracking) generalized from a
// single push/pop step to the base/step alternation BMC induction
// needs.
package invariant

import (
	"github.com/operator-framework/bmc-core/internal/bddv"
	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/cnf"
	"github.com/operator-framework/bmc-core/internal/fsm"
	"github.com/operator-framework/bmc-core/internal/sat"
	"github.com/operator-framework/bmc-core/internal/trace"
	"github.com/operator-framework/bmc-core/internal/unroll"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

// Outcome is the final disposition of an invariant check.
type Outcome int

const (
	Proved Outcome = iota
	Falsified
	UnknownUpToK
)

func (o Outcome) String() string {
	switch o {
	case Proved:
		return "proved"
	case Falsified:
		return "falsified"
	default:
		return "unknown-up-to-k"
	}
}

// Result is the outcome of one invariant-checking run.
type Result struct {
	Outcome Outcome
	K       int
	Trace   *trace.Trace
}

// State is a run's control state.
type State int

const (
	NeedBase State = iota
	NeedStep
	DoneProved
	DoneFalsified
	DoneAbort
)

// Problem bundles the inputs every algorithm needs: the FSM to check,
// the invariant property (a BE over current-state variable names), the
// search bound, and the encoding used to decode a counterexample model
// into a readable trace.
type Problem struct {
	FSM      *fsm.FSM
	Property *be.Node
	MaxK     int
	Encoding bddv.Encoding
}

func (p Problem) vm() *varmgr.Manager { return p.FSM.VM }

// addAllTo adds every clause of a fresh one-shot CNF conversion to
// group, used by Classic/Eén-Sørensson which rebuild their solver from
// scratch at every depth.
func addAllTo(s sat.Solver, group sat.Group, c *cnf.CNF) error {
	for _, clause := range c.Clauses {
		if err := s.AddClause(group, clause); err != nil {
			return err
		}
	}
	return nil
}

// assertTop asserts c's top-level truth value as a unit clause in
// group, special-casing the trivially-true/false sentinels Convert
// returns instead of a real CNF variable.
func assertTop(s sat.Solver, group sat.Group, c *cnf.CNF) error {
	switch {
	case c.IsTriviallyTrue():
		return nil
	case c.IsTriviallyFalse():
		return s.AddClause(group, cnf.Clause{})
	default:
		return s.AddClause(group, cnf.Clause{c.Top})
	}
}

func solveOneShot(newSolver func() sat.Solver, negated *be.Node) (sat.Status, *cnf.CNF, sat.Solver, error) {
	s := newSolver()
	c := cnf.Convert(negated)
	if c.IsTriviallyFalse() {
		s.Close()
		return sat.StatusUnsatisfiable, c, nil, nil
	}
	if c.IsTriviallyTrue() {
		s.Close()
		return sat.StatusSatisfiable, c, nil, nil
	}
	if err := addAllTo(s, s.PermanentGroup(), c); err != nil {
		s.Close()
		return sat.StatusUnknown, c, nil, err
	}
	status, err := s.SolveAllGroups()
	if err != nil {
		s.Close()
		return sat.StatusUnknown, c, nil, err
	}
	if status != sat.StatusSatisfiable {
		s.Close()
		return status, c, nil, nil
	}
	return status, c, s, nil // caller must Close s after reading the model
}

func reconstructFrom(s sat.Solver, c trace.VarMapper, vm *varmgr.Manager, enc bddv.Encoding, k int) (*trace.Trace, error) {
	model, err := s.Model()
	if err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "reading model")
	}
	return trace.Reconstruct(model, c, vm, enc, k)
}

// reconstructFromStatus is reconstructFrom generalized over
// solveOneShot's trivially-true outcome, where no solver was ever
// constructed (there is nothing to negate a model out of): the witness
// is then any assignment at all, decoded from an empty literal list.
func reconstructFromStatus(s sat.Solver, c trace.VarMapper, vm *varmgr.Manager, enc bddv.Encoding, k int) (*trace.Trace, error) {
	if s == nil {
		return trace.Reconstruct(nil, c, vm, enc, k)
	}
	defer s.Close()
	return reconstructFrom(s, c, vm, enc, k)
}

// unrollerFor is a small convenience wrapper so each algorithm file
// doesn't need to import internal/unroll directly.
func unrollerFor(f *fsm.FSM) *unroll.Unroller { return unroll.New(f) }
