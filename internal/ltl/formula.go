// Package ltl implements the LTL formula representation and the
// bounded-semantics tableau construction (C6): translating an
// already-NNF temporal formula into a BE whose satisfiability, combined
// with a path and a loop-closure constraint, witnesses the formula
// along a (k,l)-path.
package ltl

import "github.com/operator-framework/bmc-core/internal/varmgr"

// Formula is the tagged-variant LTL AST. Every concrete case below
// implements it; translation dispatches on the concrete type via a type
// switch rather than virtual methods, per the chosen operator-dispatch
// style.
type Formula interface {
	isFormula()
}

// Top is the constant ⊤.
type Top struct{}

// Bottom is the constant ⊥.
type Bottom struct{}

// Var references a named untimed current-state or input variable by
// the varmgr.Manager's own name table.
type Var struct {
	Name string
}

// Not is negation; in a well-formed NNF tree it only ever wraps a Var.
type Not struct {
	X Formula
}

// And is conjunction.
type And struct {
	X, Y Formula
}

// Or is disjunction.
type Or struct {
	X, Y Formula
}

// Iff is if-and-only-if.
type Iff struct {
	X, Y Formula
}

// Next is Xϕ.
type Next struct {
	X Formula
}

// Future is Fϕ.
type Future struct {
	X Formula
}

// Globally is Gϕ.
type Globally struct {
	X Formula
}

// Until is ϕ₁ U ϕ₂.
type Until struct {
	X, Y Formula
}

// Release is ϕ₁ R ϕ₂.
type Release struct {
	X, Y Formula
}

func (Top) isFormula()      {}
func (Bottom) isFormula()   {}
func (Var) isFormula()      {}
func (Not) isFormula()      {}
func (And) isFormula()      {}
func (Or) isFormula()       {}
func (Iff) isFormula()      {}
func (Next) isFormula()     {}
func (Future) isFormula()   {}
func (Globally) isFormula() {}
func (Until) isFormula()    {}
func (Release) isFormula()  {}

// ResolveVar reports whether vm declares v.Name; an undeclared name is
// the one leaf case translation can fail on.
func ResolveVar(vm *varmgr.Manager, v Var) (ok bool) {
	_, ok = vm.IndexByName(v.Name)
	return ok
}
