package invariant

import (
	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/sat"
	"github.com/operator-framework/bmc-core/internal/uniq"
)

// classicRun drives both Classic and Eén-Sørensson: at each depth k it
// checks a base case (is there a real counterexample of length k?) and
// a one-step inductive case (does P holding at k, plus one transition,
// force P at k+1?). Eén-Sørensson additionally strengthens the
// inductive step with the simple-path distinctness constraints of
// §4.6.b; Classic omits them, matching §4.6.a's literal base/ind
// formulas. Both are iterated up to MaxK: §4.6.a's single (k=0,1)
// example is the first iteration of this same loop, generalized
// because a fixed depth-1 check cannot, by itself, explain scenario
// S1's depth-3 counterexample.
type classicRun struct {
	p         Problem
	newSolver func() sat.Solver
	withUniq  bool
	k         int
	state     State
	result    *Result
	err       error
}

func runClassicLike(p Problem, newSolver func() sat.Solver, withUniq bool) (*Result, error) {
	r := &classicRun{p: p, newSolver: newSolver, withUniq: withUniq, state: NeedBase}
	for r.state != DoneProved && r.state != DoneFalsified && r.state != DoneAbort {
		r.step()
	}
	if r.state == DoneAbort {
		return nil, r.err
	}
	return r.result, nil
}

// Classic runs §4.6.a: base/one-step-induction, no uniqueness, iterated
// up to p.MaxK.
func Classic(p Problem, newSolver func() sat.Solver) (*Result, error) {
	return runClassicLike(p, newSolver, false)
}

// EenSorensson runs §4.6.b: the same base check, but with the inductive
// step strengthened by simple-path (pairwise-distinct) state
// uniqueness.
func EenSorensson(p Problem, newSolver func() sat.Solver) (*Result, error) {
	return runClassicLike(p, newSolver, true)
}

func (r *classicRun) step() {
	switch r.state {
	case NeedBase:
		r.checkBase()
	case NeedStep:
		r.checkStep()
	}
}

func (r *classicRun) checkBase() {
	vm := r.p.vm()
	m := vm.BE()
	u := unrollerFor(r.p.FSM)

	pathK, err := u.Unroll(0, r.k)
	if err != nil {
		r.fail(err)
		return
	}

	propK := vm.ShiftToTime(r.p.Property, r.k)
	notBase := m.And(m.And(u.Init0(), pathK), m.Not(propK))

	status, cnfObj, solver, err := solveOneShot(r.newSolver, notBase)
	if err != nil {
		r.fail(err)
		return
	}
	if status == sat.StatusSatisfiable {
		tr, err := reconstructFromStatus(solver, cnfObj, vm, r.p.Encoding, r.k)
		if err != nil {
			r.fail(err)
			return
		}
		r.result = &Result{Outcome: Falsified, K: r.k, Trace: tr}
		r.state = DoneFalsified
		return
	}
	r.state = NeedStep
}

func (r *classicRun) checkStep() {
	vm := r.p.vm()
	m := vm.BE()
	u := unrollerFor(r.p.FSM)
	k := r.k

	pathStep, err := u.Unroll(k, k+1)
	if err != nil {
		r.fail(err)
		return
	}

	propK := vm.ShiftToTime(r.p.Property, k)
	propK1 := vm.ShiftToTime(r.p.Property, k+1)

	antecedent := m.And(propK, pathStep)
	if r.withUniq {
		against := make([]int, k)
		for i := range against {
			against[i] = i
		}
		antecedent = m.And(antecedent, uniq.AllDistinctFrom(vm, nil, against, k))
	}
	notInd := m.And(antecedent, m.Not(propK1))

	status, _, solver, err := solveOneShot(r.newSolver, notInd)
	if err != nil {
		r.fail(err)
		return
	}
	if solver != nil {
		solver.Close()
	}

	if status == sat.StatusUnsatisfiable {
		r.result = &Result{Outcome: Proved, K: k}
		r.state = DoneProved
		return
	}

	// Inductive step inconclusive at this depth (not a real
	// counterexample — only base-case SAT is); try the next depth.
	if k+1 > r.p.MaxK {
		r.result = &Result{Outcome: UnknownUpToK, K: r.p.MaxK}
		r.state = DoneProved // loop exit; Outcome carries the real answer
		return
	}
	r.k = k + 1
	r.state = NeedBase
}

func (r *classicRun) fail(err error) {
	r.err = bmcerr.Wrap(bmcerr.SolverInternalError, err, "invariant check aborted")
	r.state = DoneAbort
}
