package ltlcheck

import (
	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/cnf"
	"github.com/operator-framework/bmc-core/internal/ltl"
	"github.com/operator-framework/bmc-core/internal/sat"
	"github.com/operator-framework/bmc-core/internal/unroll"
)

// NonIncremental runs §4.7's non-incremental variant: at every depth it
// rebuilds path_with_init(k) ∧ tableau(¬ϕ,k,l) from scratch, converts it
// in one shot, and hands it to a fresh solver — the same rebuild-every-
// depth shape as invariant.Classic, generalized from P@k to an LTL
// witness.
func NonIncremental(p Problem, newSolver func() sat.Solver) (*Result, error) {
	if err := validateProperty(p.vm(), p.Phi); err != nil {
		return nil, err
	}
	minK, err := effectiveMinK(p)
	if err != nil {
		return nil, err
	}

	notPhi := ltl.Negate(p.Phi)
	u := unroll.New(p.FSM)
	lloop := toLTLLoop(p.Loop)

	for k := minK; k <= p.MaxK; k++ {
		res, err := nonIncrementalRound(p, u, notPhi, lloop, newSolver, k)
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
	return &Result{Outcome: UnknownUpToK, K: p.MaxK}, nil
}

// nonIncrementalRound returns a non-nil Result only when depth k settles
// the search (a witness is found); nil means "inconclusive, try k+1".
func nonIncrementalRound(p Problem, u *unroll.Unroller, notPhi ltl.Formula, lloop ltl.Loop, newSolver func() sat.Solver, k int) (*Result, error) {
	vm := p.vm()
	path, err := u.PathWithInit(k)
	if err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "building path at k=%d", k)
	}
	tab, err := ltl.Tableau(vm, notPhi, k, lloop)
	if err != nil {
		return nil, bmcerr.Wrap(bmcerr.InvalidProperty, err, "building tableau at k=%d", k)
	}
	formula := vm.BE().And(path, tab)
	if p.Loop.Kind == unroll.FixedLoop {
		// Tableau leaves closure to the caller outside AllLoops; see
		// its doc comment.
		lc := ltl.LoopClosure(vm, p.Loop.At, k)
		formula = vm.BE().And(formula, lc)
	}

	c := cnf.Convert(formula)
	s := newSolver()
	defer s.Close()

	if c.IsTriviallyFalse() {
		return nil, nil
	}
	if !c.IsTriviallyTrue() {
		permanent := s.PermanentGroup()
		for _, clause := range c.Clauses {
			if err := s.AddClause(permanent, clause); err != nil {
				return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "teaching depth-%d formula", k)
			}
		}
		if err := s.AddClause(permanent, cnf.Clause{c.Top}); err != nil {
			return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "asserting depth-%d formula", k)
		}
	}

	status, err := s.SolveAllGroups()
	if err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "solving depth %d", k)
	}
	if status != sat.StatusSatisfiable {
		return nil, nil
	}
	tr, err := reconstructFrom(s, c, vm, p, k)
	if err != nil {
		return nil, err
	}
	return &Result{Outcome: Falsified, K: k, Trace: tr}, nil
}
