// Package models ships a small, fixed registry of named FSMs the CLI
// can check without a front-end parser (explicitly out of scope, per
// SPEC_FULL.md's Non-goals). Each entry bundles an fsm.FSM with a
// canonical invariant or LTL property to check against it, the same
// way internal/invariant and internal/ltlcheck's own tests build a
// latch/flip/sets/stutter fixture by hand rather than parsing one from
// a file.
package models

import (
	"fmt"
	"sort"

	"github.com/operator-framework/bmc-core/internal/bddv"
	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/fsm"
	"github.com/operator-framework/bmc-core/internal/ltl"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

// Model bundles one FSM with the properties a caller can check against
// it.
type Model struct {
	Name        string
	Description string

	FSM      *fsm.FSM
	Encoding bddv.Encoding

	// InvariantProperty is over current-state variables; nil if this
	// model has no invariant worth checking.
	InvariantProperty *be.Node

	// LTLProperty is the canonical temporal property; nil if this model
	// has no LTL property worth checking.
	LTLProperty ltl.Formula
}

func build(name, desc string, fn func(m *be.Manager, vm *varmgr.Manager) (*Model, error)) Model {
	mgr := be.NewManager()
	vm, err := varmgr.New(mgr, []string{"s0"}, nil)
	if err != nil {
		panic(fmt.Sprintf("models: building %q: %v", name, err))
	}
	model, err := fn(mgr, vm)
	if err != nil {
		panic(fmt.Sprintf("models: building %q: %v", name, err))
	}
	model.Name = name
	model.Description = desc
	model.Encoding = bddv.NewTableEncoding(nil)
	return *model
}

var registry = map[string]Model{
	"latch": build("latch", "a one-bit latch that starts true and never changes",
		func(m *be.Manager, vm *varmgr.Manager) (*Model, error) {
			s0, n0 := vm.CurrentVar(0), vm.NextVar(0)
			f, err := fsm.New(vm, s0, m.Truth(), m.Iff(n0, s0), nil)
			if err != nil {
				return nil, err
			}
			return &Model{FSM: f, InvariantProperty: s0}, nil
		}),

	"flip": build("flip", "a one-bit latch that toggles every step, starting true",
		func(m *be.Manager, vm *varmgr.Manager) (*Model, error) {
			s0, n0 := vm.CurrentVar(0), vm.NextVar(0)
			f, err := fsm.New(vm, s0, m.Truth(), m.Iff(n0, m.Not(s0)), nil)
			if err != nil {
				return nil, err
			}
			return &Model{FSM: f, InvariantProperty: s0}, nil
		}),

	"sets": build("sets", "a one-bit variable that starts false and is set unconditionally on the first step",
		func(m *be.Manager, vm *varmgr.Manager) (*Model, error) {
			s0, n0 := vm.CurrentVar(0), vm.NextVar(0)
			f, err := fsm.New(vm, m.Not(s0), m.Truth(), n0, nil)
			if err != nil {
				return nil, err
			}
			return &Model{FSM: f, LTLProperty: ltl.Future{X: ltl.Var{Name: "s0"}}}, nil
		}),

	"stutter": build("stutter", "a one-bit variable that starts false and never changes",
		func(m *be.Manager, vm *varmgr.Manager) (*Model, error) {
			s0, n0 := vm.CurrentVar(0), vm.NextVar(0)
			f, err := fsm.New(vm, m.Not(s0), m.Truth(), m.Iff(n0, s0), nil)
			if err != nil {
				return nil, err
			}
			return &Model{FSM: f, LTLProperty: ltl.Future{X: ltl.Var{Name: "s0"}}}, nil
		}),
}

// Get looks up a named model.
func Get(name string) (Model, bool) {
	m, ok := registry[name]
	return m, ok
}

// Names returns every registered model name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
