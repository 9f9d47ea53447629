// Package uniq builds the distinctness constraints ZigZag, Dual, and
// Eén-Sørensson induction use to force a "simple path" (no two frames
// of the unrolling share the same restricted state), grounded on
// NuSMV's bmcInt.c distinctness-constraint construction. The Go shape
// follows the teacher's small, composable solver.Constraint value
// (constraints.go): a constructor that returns one *be.Node, not a
// stateful builder.
package uniq

import (
	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

// Distinct returns ⋁_v (v@i ⊕ v@j) over the given local current-state
// indices, asserting that frames i and j differ in at least one of
// those state bits. An empty bits slice means "every state bit",
// matching the spec's unrestricted case; callers doing cone-of-
// influence restriction pass the restricted index set instead.
func Distinct(vm *varmgr.Manager, bits []int, i, j int) *be.Node {
	m := vm.BE()
	if len(bits) == 0 {
		bits = allStateBits(vm)
	}

	acc := m.Falsity()
	for _, b := range bits {
		v := vm.CurrentVar(b)
		lhs := vm.ShiftToTime(v, i)
		rhs := vm.ShiftToTime(v, j)
		acc = m.Or(acc, m.Xor(lhs, rhs))
	}
	return acc
}

func allStateBits(vm *varmgr.Manager) []int {
	bits := make([]int, vm.NumState())
	for i := range bits {
		bits[i] = i
	}
	return bits
}

// AllDistinctFrom returns ⋀_{i∈against} Distinct(vm,bits,i,k), the
// conjunction ZigZag appends at each k: frame k must differ from every
// earlier frame in against.
func AllDistinctFrom(vm *varmgr.Manager, bits []int, against []int, k int) *be.Node {
	m := vm.BE()
	acc := m.Truth()
	for _, i := range against {
		acc = m.And(acc, Distinct(vm, bits, i, k))
	}
	return acc
}
