// Package varmgr implements the boolean-variable encoding described in
// spec.md §3/§4.3: three untimed sub-blocks (current, input, next) plus
// a lazily-extended timed block indexed by time step. It owns the
// name↔index↔timed-BE maps and the shifting primitives every other
// component builds unrollings from.
package varmgr

import (
	"fmt"

	"github.com/operator-framework/bmc-core/internal/be"
)

// Manager is the variable manager (C3). It wraps a be.Manager and
// imposes the regular index layout of spec.md §3 on it.
type Manager struct {
	mgr *be.Manager

	numState int
	numInput int
	maxTime  int // highest frame ever allocated via InitTime; -1 if none yet

	currentNames []string
	inputNames   []string
	nameToIndex  map[string]be.VarIndex
}

// New returns a Manager laying out stateNames as the current-state
// block and inputNames as the input block, reserving the current,
// input, and next blocks up front. Names must be distinct across both
// lists.
func New(mgr *be.Manager, stateNames, inputNames []string) (*Manager, error) {
	s, in := len(stateNames), len(inputNames)
	vm := &Manager{
		mgr:          mgr,
		numState:     s,
		numInput:     in,
		maxTime:      -1,
		currentNames: append([]string(nil), stateNames...),
		inputNames:   append([]string(nil), inputNames...),
		nameToIndex:  make(map[string]be.VarIndex, s+in),
	}
	for i, name := range stateNames {
		if _, dup := vm.nameToIndex[name]; dup {
			return nil, fmt.Errorf("varmgr: duplicate variable name %q", name)
		}
		vm.nameToIndex[name] = be.VarIndex(i)
	}
	for i, name := range inputNames {
		if _, dup := vm.nameToIndex[name]; dup {
			return nil, fmt.Errorf("varmgr: duplicate variable name %q", name)
		}
		vm.nameToIndex[name] = be.VarIndex(s + i)
	}
	mgr.Reserve(2*s + in)
	return vm, nil
}

// BE returns the underlying be.Manager.
func (vm *Manager) BE() *be.Manager { return vm.mgr }

// NumState returns S, the number of boolean state variables.
func (vm *Manager) NumState() int { return vm.numState }

// NumInput returns I, the number of boolean input variables.
func (vm *Manager) NumInput() int { return vm.numInput }

// MaxTime returns T, the highest frame index currently allocated, or -1
// if InitTime has never been called.
func (vm *Manager) MaxTime() int { return vm.maxTime }

func (vm *Manager) frameBase(t int) int {
	s, in := vm.numState, vm.numInput
	return 2*s + in + t*(s+in)
}

// InitTime extends the timed block so that frames [0..t] exist. It is
// monotone and never shrinks the allocation.
func (vm *Manager) InitTime(t int) {
	if t < 0 {
		panic("varmgr: InitTime called with negative time")
	}
	vm.mgr.Reserve(vm.frameBase(t) + vm.numState)
	if t > vm.maxTime {
		vm.maxTime = t
	}
}

// CurrentVar returns the current-state BE variable for local index i.
func (vm *Manager) CurrentVar(i int) *be.Node {
	vm.checkLocal(i, vm.numState, "state")
	return vm.mgr.VarOfIndex(be.VarIndex(i))
}

// InputVar returns the untimed input BE variable for local index i.
func (vm *Manager) InputVar(i int) *be.Node {
	vm.checkLocal(i, vm.numInput, "input")
	return vm.mgr.VarOfIndex(be.VarIndex(vm.numState + i))
}

// NextVar returns the next-state BE variable for local index i.
func (vm *Manager) NextVar(i int) *be.Node {
	vm.checkLocal(i, vm.numState, "state")
	return vm.mgr.VarOfIndex(be.VarIndex(vm.numState + vm.numInput + i))
}

func (vm *Manager) checkLocal(i, n int, what string) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("varmgr: %s local index %d out of range [0,%d)", what, i, n))
	}
}

// VarByName returns the current-state or input BE variable for name, if
// declared.
func (vm *Manager) VarByName(name string) (*be.Node, bool) {
	idx, ok := vm.nameToIndex[name]
	if !ok {
		return nil, false
	}
	return vm.mgr.VarOfIndex(idx), true
}

// IndexByName returns the untimed VarIndex for name, if declared.
func (vm *Manager) IndexByName(name string) (be.VarIndex, bool) {
	idx, ok := vm.nameToIndex[name]
	return idx, ok
}

// NameByIndex is the inverse of IndexByName, valid only for indices in
// the untimed current-state or input blocks.
func (vm *Manager) NameByIndex(idx be.VarIndex) (string, bool) {
	i := int(idx)
	switch {
	case i >= 0 && i < vm.numState:
		return vm.currentNames[i], true
	case i >= vm.numState && i < vm.numState+vm.numInput:
		return vm.inputNames[i-vm.numState], true
	default:
		return "", false
	}
}
