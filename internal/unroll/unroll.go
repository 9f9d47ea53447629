// Package unroll builds the time-unrolled BE formulas (C5) that
// represent bounded executions of an fsm.FSM: the initial frame, the
// path-without-init and path-with-init conjunctions, and the fairness
// constraint for a chosen loop hypothesis.
package unroll

import (
	"fmt"

	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/fsm"
)

// LoopKind tags the three loop hypotheses a (k,l)-path can carry.
type LoopKind uint8

const (
	// NoLoop means the path does not close into a cycle; no infinite
	// behaviour (fairness, non-trivial Gϕ) can be witnessed.
	NoLoop LoopKind = iota
	// FixedLoop means the path loops back to frame At.
	FixedLoop
	// AllLoops considers every admissible back-loop position at once
	// (NuSMV's "l=*" mode).
	AllLoops
)

// Loop names which of the three hypotheses a bounded check is running
// under.
type Loop struct {
	Kind LoopKind
	At   int // valid only when Kind == FixedLoop
}

// NoLoopHypothesis is the loop value meaning "the path does not close".
var NoLoopHypothesis = Loop{Kind: NoLoop}

// FixedLoopAt returns the loop hypothesis "the path closes back to l".
func FixedLoopAt(l int) Loop { return Loop{Kind: FixedLoop, At: l} }

// AllLoopsHypothesis is the loop value considering every admissible l.
var AllLoopsHypothesis = Loop{Kind: AllLoops}

// Unroller builds unrolled formulas for one FSM.
type Unroller struct {
	F *fsm.FSM
}

// New returns an Unroller over f.
func New(f *fsm.FSM) *Unroller { return &Unroller{F: f} }

// Init0 returns init ∧ invar shifted to frame 0.
func (u *Unroller) Init0() *be.Node {
	vm := u.F.VM
	return vm.ShiftToTime(vm.BE().And(u.F.Init, u.F.Invar), 0)
}

// InvarAt returns invar shifted to frame t.
func (u *Unroller) InvarAt(t int) *be.Node {
	return u.F.VM.ShiftToTime(u.F.Invar, t)
}

// Unroll returns ⋀_{t∈[j..k-1]} shift_to_time(trans∧invar,t) ∧
// shift_to_time(invar,k): the invariant must hold at every visited
// frame including the terminal one, where trans cannot be placed
// because there is no frame k+1 to transition into.
func (u *Unroller) Unroll(j, k int) (*be.Node, error) {
	if j < 0 || k < j {
		return nil, fmt.Errorf("unroll: invalid range [%d,%d)", j, k)
	}
	vm := u.F.VM
	transInvar := vm.BE().And(u.F.Trans, u.F.Invar)
	acc := vm.AndInterval(transInvar, j, k-1)
	return vm.BE().And(acc, u.InvarAt(k)), nil
}

// PathNoInit returns Unroll(0,k).
func (u *Unroller) PathNoInit(k int) (*be.Node, error) {
	return u.Unroll(0, k)
}

// PathWithInit returns PathNoInit(k) ∧ Init0().
func (u *Unroller) PathWithInit(k int) (*be.Node, error) {
	p, err := u.PathNoInit(k)
	if err != nil {
		return nil, err
	}
	return u.F.VM.BE().And(p, u.Init0()), nil
}

// Fairness returns the fairness constraint for a k-bounded path under
// loop. NoLoop always yields ⊥ (a fair path cannot be finitely
// witnessed without a cycle). FixedLoop requires 0<=At<k and conjoins,
// over every justice BE, the disjunction of its truth across
// [At..k-1]. AllLoops extends the single-loop case by disjoining that
// same conjunction over every admissible loop position, since any one
// admissible l suffices to witness fairness.
func (u *Unroller) Fairness(k int, loop Loop) (*be.Node, error) {
	m := u.F.VM.BE()
	switch loop.Kind {
	case NoLoop:
		return m.Falsity(), nil
	case FixedLoop:
		if loop.At < 0 || loop.At >= k {
			return nil, fmt.Errorf("unroll: loop position %d out of range [0,%d)", loop.At, k)
		}
		return u.fairnessAt(k, loop.At), nil
	case AllLoops:
		acc := m.Falsity()
		for l := 0; l < k; l++ {
			acc = m.Or(acc, u.fairnessAt(k, l))
		}
		return acc, nil
	default:
		return nil, fmt.Errorf("unroll: unrecognised loop kind %d", loop.Kind)
	}
}

func (u *Unroller) fairnessAt(k, l int) *be.Node {
	vm := u.F.VM
	m := vm.BE()
	acc := m.Truth()
	for _, just := range u.F.Fairness {
		acc = m.And(acc, vm.OrInterval(just, l, k-1))
	}
	return acc
}
