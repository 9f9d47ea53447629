package invariant

import (
	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/cnf"
	"github.com/operator-framework/bmc-core/internal/sat"
	"github.com/operator-framework/bmc-core/internal/uniq"
	"github.com/operator-framework/bmc-core/internal/unroll"
)

// zigzagRun implements §4.6.c: one incremental solver, a dedicated
// group G_init for init0, and a per-k assumption group A holding
// ¬top(P@k). The same assertion in A backs both queries at depth k —
// only which groups are excluded changes between them, which is the
// "zigzag" the algorithm is named for:
//   - step check: solve excluding G_init. UNSAT means the accumulated
//     transition facts and earlier P@i commitments already force P@k,
//     with no help from init — proved by induction.
//   - base check: solve with every group (init included). SAT means a
//     real reachable path of length k falsifies P@k.
//
// Only once both checks are inconclusive (step SAT, base UNSAT) is
// +top(P@k) promoted to a permanent fact and k advanced; this ordering
// differs from a literal top-to-bottom reading of the source steps
// (which would commit +top(P@k) before running the base check, making
// the base check unable to ever find a counterexample) and is the
// sound reconciliation used here.
//
// Invariants I1-I3 of §4.6 hold by construction: the permanent group
// only ever grows (I1), group A's clauses are fully retracted by
// DestroyGroup before +top(P@k) is committed (I2), and k only
// increases (I3).
type zigzagRun struct {
	p     Problem
	u     *unroll.Unroller
	conv  *cnf.Incremental
	s     sat.IncSolver
	gInit sat.Group
	a     sat.Group
	k     int
	state State

	result *Result
	err    error
}

func newZigzagRun(p Problem, s sat.IncSolver) *zigzagRun {
	return &zigzagRun{p: p, u: unrollerFor(p.FSM), conv: cnf.NewIncremental(), s: s, state: NeedStep}
}

// ZigZag runs §4.6.c to completion against a freshly created incremental
// solver, closing it before returning.
func ZigZag(p Problem, newSolver func() sat.IncSolver) (*Result, error) {
	s := newSolver()
	defer s.Close()
	r := newZigzagRun(p, s)

	gInit, err := s.CreateGroup()
	if err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "creating init group")
	}
	r.gInit = gInit
	top, fresh := r.conv.Convert(r.u.Init0())
	if err := addFresh(s, gInit, fresh); err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "teaching init0")
	}
	if err := assertSigned(s, gInit, top, true); err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "asserting init0")
	}

	for r.state != DoneProved && r.state != DoneFalsified && r.state != DoneAbort {
		r.step()
	}
	if r.state == DoneAbort {
		return nil, r.err
	}
	return r.result, nil
}

func addFresh(s sat.Solver, group sat.Group, clauses []cnf.Clause) error {
	for _, c := range clauses {
		if err := s.AddClause(group, c); err != nil {
			return err
		}
	}
	return nil
}

// assertSigned asserts top's truth value (positive or its negation)
// into group, special-casing Convert's trivially-true/false sentinels.
func assertSigned(s sat.Solver, group sat.Group, top cnf.Literal, positive bool) error {
	switch top {
	case cnf.TopTrue:
		if !positive {
			return s.AddClause(group, cnf.Clause{})
		}
		return nil
	case cnf.TopFalse:
		if positive {
			return s.AddClause(group, cnf.Clause{})
		}
		return nil
	default:
		lit := top
		if !positive {
			lit = -lit
		}
		return s.AddClause(group, cnf.Clause{lit})
	}
}

func (r *zigzagRun) step() {
	switch r.state {
	case NeedStep:
		r.stepCheck()
	case NeedBase:
		r.baseCheck()
	}
}

// stepCheck opens group A for depth k, asserts ¬top(P@k) in it, and
// tries to discharge it purely by induction (G_init excluded).
func (r *zigzagRun) stepCheck() {
	vm := r.p.vm()
	permanent := r.s.PermanentGroup()

	propK := vm.ShiftToTime(r.p.Property, r.k)
	top, fresh := r.conv.Convert(propK)
	if err := addFresh(r.s, permanent, fresh); err != nil {
		r.fail(err)
		return
	}

	a, err := r.s.CreateGroup()
	if err != nil {
		r.fail(err)
		return
	}
	r.a = a
	if err := assertSigned(r.s, a, top, false); err != nil {
		r.fail(err)
		return
	}

	status, err := r.s.SolveWithoutGroups([]sat.Group{r.gInit})
	if err != nil {
		r.fail(err)
		return
	}
	if status == sat.StatusUnsatisfiable {
		r.result = &Result{Outcome: Proved, K: r.k}
		r.state = DoneProved
		return
	}
	r.state = NeedBase
}

// baseCheck reuses group A's ¬top(P@k) assertion, now solving with
// every group (init included) to look for a genuine counterexample.
func (r *zigzagRun) baseCheck() {
	vm := r.p.vm()
	status, err := r.s.SolveAllGroups()
	if err != nil {
		r.fail(err)
		return
	}
	if status == sat.StatusSatisfiable {
		tr, err := reconstructFrom(r.s, r.conv, vm, r.p.Encoding, r.k)
		if err != nil {
			r.fail(err)
			return
		}
		r.result = &Result{Outcome: Falsified, K: r.k, Trace: tr}
		r.state = DoneFalsified
		return
	}

	if err := r.s.DestroyGroup(r.a); err != nil {
		r.fail(err)
		return
	}
	permanent := r.s.PermanentGroup()
	propTop, _ := r.conv.Convert(vm.ShiftToTime(r.p.Property, r.k))
	if err := assertSigned(r.s, permanent, propTop, true); err != nil {
		r.fail(err)
		return
	}

	if r.k+1 > r.p.MaxK {
		r.result = &Result{Outcome: UnknownUpToK, K: r.p.MaxK}
		r.state = DoneProved
		return
	}

	step, err := r.u.Unroll(r.k, r.k+1)
	if err != nil {
		r.fail(err)
		return
	}
	stepTop, stepFresh := r.conv.Convert(step)
	if err := addFresh(r.s, permanent, stepFresh); err != nil {
		r.fail(err)
		return
	}
	if err := assertSigned(r.s, permanent, stepTop, true); err != nil {
		r.fail(err)
		return
	}

	against := make([]int, r.k+1)
	for i := range against {
		against[i] = i
	}
	dist := uniq.AllDistinctFrom(vm, nil, against, r.k+1)
	distTop, distFresh := r.conv.Convert(dist)
	if err := addFresh(r.s, permanent, distFresh); err != nil {
		r.fail(err)
		return
	}
	if err := assertSigned(r.s, permanent, distTop, true); err != nil {
		r.fail(err)
		return
	}

	r.k++
	r.state = NeedStep
}

func (r *zigzagRun) fail(err error) {
	r.err = bmcerr.Wrap(bmcerr.SolverInternalError, err, "ZigZag run aborted")
	r.state = DoneAbort
}
