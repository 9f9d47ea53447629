package ltlcheck

import (
	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/cnf"
	"github.com/operator-framework/bmc-core/internal/ltl"
	"github.com/operator-framework/bmc-core/internal/sat"
	"github.com/operator-framework/bmc-core/internal/unroll"
)

// Incremental runs §4.7's incremental variant: init0 and the growing
// unrolling are taught once into the permanent group and never
// retracted, while each depth's witness condition lives in its own
// assumption group that is destroyed the moment it's ruled out —
// exactly the create/assert/solve/destroy cycle ZigZag's step check
// already uses, grounded on solver.IncSolver's group API.
func Incremental(p Problem, newSolver func() sat.IncSolver) (*Result, error) {
	if err := validateProperty(p.vm(), p.Phi); err != nil {
		return nil, err
	}
	minK, err := effectiveMinK(p)
	if err != nil {
		return nil, err
	}

	s := newSolver()
	defer s.Close()
	conv := cnf.NewIncremental()
	u := unroll.New(p.FSM)
	permanent := s.PermanentGroup()

	top, fresh := conv.Convert(u.Init0())
	if err := addFresh(s, permanent, fresh); err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "teaching init0")
	}
	if err := assertTrue(s, permanent, top); err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "asserting init0")
	}

	notPhi := ltl.Negate(p.Phi)
	lloop := toLTLLoop(p.Loop)
	vm := p.vm()
	prevK := -1 // sentinel: only init0 has been taught so far

	for k := minK; k <= p.MaxK; k++ {
		from := prevK
		if from < 0 {
			from = 0
		}
		if k > 0 {
			step, err := u.Unroll(from, k)
			if err != nil {
				return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "extending unrolling to k=%d", k)
			}
			stepTop, stepFresh := conv.Convert(step)
			if err := addFresh(s, permanent, stepFresh); err != nil {
				return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "teaching unrolling at k=%d", k)
			}
			if err := assertTrue(s, permanent, stepTop); err != nil {
				return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "asserting unrolling at k=%d", k)
			}
		}
		prevK = k

		tab, err := ltl.Tableau(vm, notPhi, k, lloop)
		if err != nil {
			return nil, bmcerr.Wrap(bmcerr.InvalidProperty, err, "building tableau at k=%d", k)
		}
		if p.Loop.Kind == unroll.FixedLoop {
			lc := ltl.LoopClosure(vm, p.Loop.At, k)
			tab = vm.BE().And(tab, lc)
		}

		witnessTop, witnessFresh := conv.Convert(tab)
		if err := addFresh(s, permanent, witnessFresh); err != nil {
			return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "teaching witness condition at k=%d", k)
		}

		a, err := s.CreateGroup()
		if err != nil {
			return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "creating assumption group at k=%d", k)
		}
		if err := assertTrue(s, a, witnessTop); err != nil {
			return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "asserting witness condition at k=%d", k)
		}

		status, err := s.SolveAllGroups()
		if err != nil {
			return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "solving at k=%d", k)
		}
		if status == sat.StatusSatisfiable {
			tr, err := reconstructFrom(s, conv, vm, p, k)
			if err != nil {
				return nil, err
			}
			return &Result{Outcome: Falsified, K: k, Trace: tr}, nil
		}
		if err := s.DestroyGroup(a); err != nil {
			return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "destroying assumption group at k=%d", k)
		}
	}
	return &Result{Outcome: UnknownUpToK, K: p.MaxK}, nil
}

func addFresh(s sat.Solver, group sat.Group, clauses []cnf.Clause) error {
	for _, c := range clauses {
		if err := s.AddClause(group, c); err != nil {
			return err
		}
	}
	return nil
}

// assertTrue asserts top's truth as a unit clause in group, special-
// casing the trivially-true/false sentinels Convert returns instead of
// a real CNF variable.
func assertTrue(s sat.Solver, group sat.Group, top cnf.Literal) error {
	switch top {
	case cnf.TopTrue:
		return nil
	case cnf.TopFalse:
		return s.AddClause(group, cnf.Clause{})
	default:
		return s.AddClause(group, cnf.Clause{top})
	}
}
