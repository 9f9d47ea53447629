package invariant

import (
	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/cnf"
	"github.com/operator-framework/bmc-core/internal/sat"
	"github.com/operator-framework/bmc-core/internal/uniq"
	"github.com/operator-framework/bmc-core/internal/unroll"
)

// dualRun implements §4.6.d: a forward solver S_base that only ever
// grows the path from init looking for a real counterexample, and a
// backward solver S_step that only ever grows the induction hypothesis
// (P holds permanently at every frame it has already cleared) looking
// for a depth at which the step becomes unsatisfiable without it. The
// two solvers never interpret each other's models; they agree only
// through k, which is advanced symmetrically on every round that
// neither falsifies nor proves.
//
// S_step has no equivalent of ZigZag's G_init: it never contains init
// at all, so its "step check" is simply SolveAllGroups against a fresh
// assumption group for ¬P@(k+1). UNSAT there ends the run as Proved;
// when it is SAT the group is destroyed, k advances, and the next round
// asserts P at that same frame permanently true, much as ZigZag commits
// +top(P@k) after a clean iteration.
type dualRun struct {
	p            Problem
	u            *unroll.Unroller
	convBase     *cnf.Incremental
	convStep     *cnf.Incremental
	sBase        sat.IncSolver
	sStep        sat.IncSolver
	k            int
	state        State
	stepDistinct []int // frames already hardened into S_step's permanent context

	result *Result
	err    error
}

// Dual runs §4.6.d to completion, rejecting any model with at least one
// input variable with AlgorithmUnavailable before issuing any SAT
// query (S6).
func Dual(p Problem, newBaseSolver, newStepSolver func() sat.IncSolver) (*Result, error) {
	if p.FSM.VM.NumInput() > 0 {
		return nil, bmcerr.New(bmcerr.AlgorithmUnavailable, "Dual requires a model with no input variables")
	}

	sBase := newBaseSolver()
	defer sBase.Close()
	sStep := newStepSolver()
	defer sStep.Close()

	r := &dualRun{
		p:        p,
		u:        unrollerFor(p.FSM),
		convBase: cnf.NewIncremental(),
		convStep: cnf.NewIncremental(),
		sBase:    sBase,
		sStep:    sStep,
		state:    NeedBase,
	}

	top, fresh := r.convBase.Convert(r.u.Init0())
	if err := addFresh(sBase, sBase.PermanentGroup(), fresh); err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "teaching init0 to S_base")
	}
	if err := assertSigned(sBase, sBase.PermanentGroup(), top, true); err != nil {
		return nil, bmcerr.Wrap(bmcerr.SolverInternalError, err, "asserting init0 in S_base")
	}

	for r.state != DoneProved && r.state != DoneFalsified && r.state != DoneAbort {
		r.step()
	}
	if r.state == DoneAbort {
		return nil, r.err
	}
	return r.result, nil
}

func (r *dualRun) step() {
	switch r.state {
	case NeedBase:
		r.baseCheck()
	case NeedStep:
		r.stepCheck()
	}
}

func (r *dualRun) baseCheck() {
	vm := r.p.vm()
	permanent := r.sBase.PermanentGroup()

	// Extend the forward path up to the current frame before testing
	// it: the path from 0 to k-1 was already present from the previous
	// round, so only the last step is new.
	if r.k > 0 {
		pathStep, err := r.u.Unroll(r.k-1, r.k)
		if err != nil {
			r.fail(err)
			return
		}
		stepTop, stepFresh := r.convBase.Convert(pathStep)
		if err := addFresh(r.sBase, permanent, stepFresh); err != nil {
			r.fail(err)
			return
		}
		if err := assertSigned(r.sBase, permanent, stepTop, true); err != nil {
			r.fail(err)
			return
		}
	}

	propK := vm.ShiftToTime(r.p.Property, r.k)
	top, fresh := r.convBase.Convert(propK)
	if err := addFresh(r.sBase, permanent, fresh); err != nil {
		r.fail(err)
		return
	}

	a, err := r.sBase.CreateGroup()
	if err != nil {
		r.fail(err)
		return
	}
	if err := assertSigned(r.sBase, a, top, false); err != nil {
		r.fail(err)
		return
	}

	status, err := r.sBase.SolveAllGroups()
	if err != nil {
		r.fail(err)
		return
	}
	if status == sat.StatusSatisfiable {
		tr, err := reconstructFrom(r.sBase, r.convBase, vm, r.p.Encoding, r.k)
		if err != nil {
			r.fail(err)
			return
		}
		r.result = &Result{Outcome: Falsified, K: r.k, Trace: tr}
		r.state = DoneFalsified
		return
	}
	if err := r.sBase.DestroyGroup(a); err != nil {
		r.fail(err)
		return
	}

	r.state = NeedStep
}

func (r *dualRun) stepCheck() {
	vm := r.p.vm()
	permanent := r.sStep.PermanentGroup()

	if r.k+1 > r.p.MaxK {
		r.result = &Result{Outcome: UnknownUpToK, K: r.p.MaxK}
		r.state = DoneProved
		return
	}

	propK := vm.ShiftToTime(r.p.Property, r.k)
	pathStep, err := r.u.Unroll(r.k, r.k+1)
	if err != nil {
		r.fail(err)
		return
	}
	propK1 := vm.ShiftToTime(r.p.Property, r.k+1)

	pathTop, freshPathStep := r.convStep.Convert(pathStep)
	if err := addFresh(r.sStep, permanent, freshPathStep); err != nil {
		r.fail(err)
		return
	}
	if err := assertSigned(r.sStep, permanent, pathTop, true); err != nil {
		r.fail(err)
		return
	}

	if len(r.stepDistinct) > 0 {
		dist := uniq.AllDistinctFrom(vm, nil, r.stepDistinct, r.k)
		distTop, distFresh := r.convStep.Convert(dist)
		if err := addFresh(r.sStep, permanent, distFresh); err != nil {
			r.fail(err)
			return
		}
		if err := assertSigned(r.sStep, permanent, distTop, true); err != nil {
			r.fail(err)
			return
		}
	}
	// Frame 0 is deliberately excluded from the distinctness bookkeeping:
	// it is the distinguished "bad" state the backward search starts
	// from, not a state this induction is free to assume unreachable.
	if r.k > 0 {
		r.stepDistinct = append(r.stepDistinct, r.k)
	}

	propKTop, freshPropK := r.convStep.Convert(propK)
	if err := addFresh(r.sStep, permanent, freshPropK); err != nil {
		r.fail(err)
		return
	}
	if err := assertSigned(r.sStep, permanent, propKTop, true); err != nil {
		r.fail(err)
		return
	}

	top1, fresh1 := r.convStep.Convert(propK1)
	if err := addFresh(r.sStep, permanent, fresh1); err != nil {
		r.fail(err)
		return
	}

	a, err := r.sStep.CreateGroup()
	if err != nil {
		r.fail(err)
		return
	}
	if err := assertSigned(r.sStep, a, top1, false); err != nil {
		r.fail(err)
		return
	}

	status, err := r.sStep.SolveAllGroups()
	if err != nil {
		r.fail(err)
		return
	}
	if status == sat.StatusUnsatisfiable {
		r.result = &Result{Outcome: Proved, K: r.k}
		r.state = DoneProved
		return
	}
	if err := r.sStep.DestroyGroup(a); err != nil {
		r.fail(err)
		return
	}

	r.k++
	r.state = NeedBase
}

func (r *dualRun) fail(err error) {
	r.err = bmcerr.Wrap(bmcerr.SolverInternalError, err, "Dual run aborted")
	r.state = DoneAbort
}
