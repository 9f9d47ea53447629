package varmgr

import "github.com/operator-framework/bmc-core/internal/be"

// IsIndexCurrent reports whether i is an untimed current-state index.
func (vm *Manager) IsIndexCurrent(i be.VarIndex) bool {
	return int(i) >= 0 && int(i) < vm.numState
}

// IsIndexNext reports whether i is an untimed next-state index.
func (vm *Manager) IsIndexNext(i be.VarIndex) bool {
	lo := vm.numState + vm.numInput
	return int(i) >= lo && int(i) < lo+vm.numState
}

// IsIndexInput reports whether i is an input index, timed or untimed.
func (vm *Manager) IsIndexInput(i be.VarIndex) bool {
	lo, hi := vm.numState, vm.numState+vm.numInput
	if int(i) >= lo && int(i) < hi {
		return true
	}
	_, isInput, _, timed := vm.Locate(i)
	return timed && isInput
}

// IsIndexState reports whether i is a state index: current, next, or
// timed state.
func (vm *Manager) IsIndexState(i be.VarIndex) bool {
	if vm.IsIndexCurrent(i) || vm.IsIndexNext(i) {
		return true
	}
	_, isInput, _, timed := vm.Locate(i)
	return timed && !isInput
}

// Locate decomposes a timed-block index into its local variable index,
// whether it is an input slot, and its time step. timed is false if i
// falls outside the timed block (i.e. it is one of the three untimed
// blocks).
func (vm *Manager) Locate(i be.VarIndex) (local int, isInput bool, t int, timed bool) {
	base := vm.numState*2 + vm.numInput
	if int(i) < base {
		return 0, false, 0, false
	}
	off := int(i) - base
	stride := vm.numState + vm.numInput
	t = off / stride
	within := off % stride
	if within < vm.numState {
		return within, false, t, true
	}
	return within - vm.numState, true, t, true
}

// TimedIndex is the inverse of Locate: the BE index of local variable
// local (state if isInput is false, input otherwise) at time t.
func (vm *Manager) TimedIndex(local int, isInput bool, t int) be.VarIndex {
	base := vm.frameBase(t)
	if isInput {
		return be.VarIndex(base + vm.numState + local)
	}
	return be.VarIndex(base + local)
}
