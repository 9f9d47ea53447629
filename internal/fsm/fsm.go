// Package fsm defines the BE-based finite state machine tuple (C4):
// an immutable {init, invar, trans, fairness} bundle expressed as BEs
// over the blocks of a varmgr.Manager. It mirrors the teacher's
// installable-set construction in shape — a small immutable value built
// once and handed to every downstream consumer without copying.
package fsm

import (
	"fmt"

	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

// FSM is the five-tuple {init, invar, trans, fairness, vars}. vars is
// carried implicitly via the embedded *varmgr.Manager rather than a
// separate field, since every BE here was built over that manager's
// blocks.
type FSM struct {
	VM *varmgr.Manager

	Init     *be.Node // over current ∪ input
	Invar    *be.Node // over current ∪ input
	Trans    *be.Node // over current ∪ input ∪ next
	Fairness []*be.Node
}

// New validates and wraps the five-tuple. It does not copy vm or the
// BE nodes; the FSM is referenced, not duplicated, by every algorithm
// that consumes it.
func New(vm *varmgr.Manager, init, invar, trans *be.Node, fairness []*be.Node) (*FSM, error) {
	if vm == nil {
		return nil, fmt.Errorf("fsm: nil variable manager")
	}
	if init == nil || invar == nil || trans == nil {
		return nil, fmt.Errorf("fsm: init, invar, and trans must be non-nil")
	}
	return &FSM{
		VM:       vm,
		Init:     init,
		Invar:    invar,
		Trans:    trans,
		Fairness: append([]*be.Node(nil), fairness...),
	}, nil
}

// NumJustice returns the number of fairness (justice) BEs.
func (f *FSM) NumJustice() int { return len(f.Fairness) }
