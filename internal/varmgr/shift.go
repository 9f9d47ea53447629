package varmgr

import (
	"fmt"

	"github.com/operator-framework/bmc-core/internal/be"
)

// ShiftToTime renames a BE built over the current/input/next blocks so
// that current and input variables land in frame t and next-state
// variables land in frame t+1. Because current, input, and next occupy
// three contiguous blocks of width S, I, S respectively, and frame t+1
// begins exactly S+I past frame t, a single uniform index shift by
// frameBase(t) realizes both moves at once.
func (vm *Manager) ShiftToTime(f *be.Node, t int) *be.Node {
	if t < 0 {
		panic("varmgr: ShiftToTime called with negative time")
	}
	vm.InitTime(t)
	return vm.mgr.Shift(f, vm.frameBase(t))
}

// ShiftCurrNextToTimes renames a BE so current/input variables land in
// frame tc and next-state variables land in frame tn. When the formula
// may reference input variables this requires tc+1 == tn (the same
// relationship ShiftToTime always uses); callers needing tc+1 != tn
// must guarantee f has no input-block references, since otherwise the
// input slot has nowhere consistent to land.
func (vm *Manager) ShiftCurrNextToTimes(f *be.Node, tc, tn int) *be.Node {
	if tc < 0 || tn < 0 {
		panic("varmgr: ShiftCurrNextToTimes called with negative time")
	}
	if vm.numInput > 0 && tc+1 != tn {
		panic(fmt.Sprintf("varmgr: ShiftCurrNextToTimes requires tc+1==tn when inputs are present (tc=%d, tn=%d)", tc, tn))
	}
	vm.InitTime(tc)
	vm.InitTime(tn)

	n := vm.mgr.NumVars()
	repl := make([]*be.Node, n)
	curBase, nextBase := vm.frameBase(tc), vm.frameBase(tn)
	for i := 0; i < vm.numState; i++ {
		repl[i] = vm.mgr.VarOfIndex(be.VarIndex(curBase + i))
	}
	for i := 0; i < vm.numInput; i++ {
		repl[vm.numState+i] = vm.mgr.VarOfIndex(be.VarIndex(curBase + vm.numState + i))
	}
	for i := 0; i < vm.numState; i++ {
		repl[vm.numState+vm.numInput+i] = vm.mgr.VarOfIndex(be.VarIndex(nextBase + i))
	}
	return vm.mgr.Subst(f, repl)
}

// ShiftCurrToNext relabels a BE's current-state variables as next-state
// variables at the same time, leaving input variables untouched.
func (vm *Manager) ShiftCurrToNext(f *be.Node) *be.Node {
	n := vm.mgr.NumVars()
	repl := make([]*be.Node, n)
	for i := 0; i < vm.numState; i++ {
		repl[i] = vm.mgr.VarOfIndex(be.VarIndex(vm.numState + vm.numInput + i))
	}
	return vm.mgr.Subst(f, repl)
}

// AndInterval returns the conjunction of f shifted to every time in
// [from,to]. An empty range (from>to) returns ⊤, the neutral element.
func (vm *Manager) AndInterval(f *be.Node, from, to int) *be.Node {
	acc := vm.mgr.Truth()
	for t := from; t <= to; t++ {
		acc = vm.mgr.And(acc, vm.ShiftToTime(f, t))
	}
	return acc
}

// OrInterval returns the disjunction of f shifted to every time in
// [from,to]. An empty range (from>to) returns ⊥, the neutral element.
func (vm *Manager) OrInterval(f *be.Node, from, to int) *be.Node {
	acc := vm.mgr.Falsity()
	for t := from; t <= to; t++ {
		acc = vm.mgr.Or(acc, vm.ShiftToTime(f, t))
	}
	return acc
}
