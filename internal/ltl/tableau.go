package ltl

import (
	"fmt"

	"github.com/operator-framework/bmc-core/internal/be"
	"github.com/operator-framework/bmc-core/internal/varmgr"
)

// Tableau translates phi into a BE whose conjunction with
// path_with_init(k) and (for a fixed loop) LoopClosure is satisfiable
// iff phi has a length-k witness along the path loop describes.
//
// For AllLoops, the per-l tableau and per-l loop closure cannot be
// shared across candidate loop positions (the window arithmetic below
// depends on which l is hypothesised), so this case folds the closure
// in directly: it returns ⋁_{l=0}^{k-1} ( tableau(phi,k,l) ∧
// LoopClosure(l,k) ), the same "disjoin over admissible l" construction
// used for fairness in internal/unroll. Callers using a FixedLoop
// hypothesis must conjoin LoopClosure themselves; NoLoop needs no
// closure.
func Tableau(vm *varmgr.Manager, phi Formula, k int, loop Loop) (*be.Node, error) {
	if k < 0 {
		return nil, fmt.Errorf("ltl: negative bound k=%d", k)
	}
	m := vm.BE()
	switch loop.Kind {
	case NoLoop:
		return tableauAt(vm, phi, 0, k, loop)
	case FixedLoop:
		if loop.At < 0 || loop.At >= k {
			return nil, fmt.Errorf("ltl: loop position %d out of range [0,%d)", loop.At, k)
		}
		return tableauAt(vm, phi, 0, k, loop)
	case AllLoops:
		acc := m.Falsity()
		for l := 0; l < k; l++ {
			fixed := FixedLoopAt(l)
			tab, err := tableauAt(vm, phi, 0, k, fixed)
			if err != nil {
				return nil, err
			}
			lc := LoopClosure(vm, l, k)
			acc = m.Or(acc, m.And(tab, lc))
		}
		return acc, nil
	default:
		return nil, fmt.Errorf("ltl: unrecognised loop kind %d", loop.Kind)
	}
}

// LoopClosure returns ⋀_v shift_to_time(v,l) ↔ shift_to_time(v,k): the
// constraint that frame l and frame k agree on every state bit, which
// makes the path a genuine (k,l)-loop.
func LoopClosure(vm *varmgr.Manager, l, k int) *be.Node {
	m := vm.BE()
	acc := m.Truth()
	for i := 0; i < vm.NumState(); i++ {
		v := vm.CurrentVar(i)
		acc = m.And(acc, m.Iff(vm.ShiftToTime(v, l), vm.ShiftToTime(v, k)))
	}
	return acc
}

// leafVar evaluates a named variable at time t, folding an input
// reference at the terminal frame t==k to ⊥ per the tableau's leaf
// rule: there is no outgoing transition's input choice to speak of
// once the unrolling has reached its final frame.
func leafVar(vm *varmgr.Manager, name string, t, k int) (*be.Node, error) {
	idx, ok := vm.IndexByName(name)
	if !ok {
		return nil, fmt.Errorf("ltl: undeclared variable %q", name)
	}
	if t == k && vm.IsIndexInput(idx) {
		return vm.BE().Falsity(), nil
	}
	return vm.ShiftToTime(vm.BE().VarOfIndex(idx), t), nil
}

// windowT resolves the effective time used by F/G/U/R window arithmetic:
// being at the terminal frame under a loop is state-equivalent to being
// at the loop target, since loop closure identifies frame k with frame
// l, so the window at t==k under a loop is computed as if t==l.
func windowT(t, k int, loop Loop) int {
	if t == k && loop.Kind == FixedLoop {
		return loop.At
	}
	return t
}

func tableauAt(vm *varmgr.Manager, phi Formula, t, k int, loop Loop) (*be.Node, error) {
	m := vm.BE()
	switch f := phi.(type) {
	case Top:
		return m.Truth(), nil
	case Bottom:
		return m.Falsity(), nil
	case Var:
		return leafVar(vm, f.Name, t, k)
	case Not:
		v, ok := f.X.(Var)
		if !ok {
			return nil, fmt.Errorf("ltl: negation in a non-NNF position (expected a variable)")
		}
		child, err := leafVar(vm, v.Name, t, k)
		if err != nil {
			return nil, err
		}
		return m.Not(child), nil
	case And:
		x, err := tableauAt(vm, f.X, t, k, loop)
		if err != nil {
			return nil, err
		}
		y, err := tableauAt(vm, f.Y, t, k, loop)
		if err != nil {
			return nil, err
		}
		return m.And(x, y), nil
	case Or:
		x, err := tableauAt(vm, f.X, t, k, loop)
		if err != nil {
			return nil, err
		}
		y, err := tableauAt(vm, f.Y, t, k, loop)
		if err != nil {
			return nil, err
		}
		return m.Or(x, y), nil
	case Iff:
		x, err := tableauAt(vm, f.X, t, k, loop)
		if err != nil {
			return nil, err
		}
		y, err := tableauAt(vm, f.Y, t, k, loop)
		if err != nil {
			return nil, err
		}
		return m.Iff(x, y), nil
	case Next:
		nt, ok := succ(t, k, loop)
		if !ok {
			return m.Falsity(), nil
		}
		return tableauAt(vm, f.X, nt, k, loop)
	case Future:
		return tableauFuture(vm, f, t, k, loop)
	case Globally:
		return tableauGlobally(vm, f, t, k, loop)
	case Until:
		return tableauUntil(vm, f, t, k, loop)
	case Release:
		return tableauRelease(vm, f, t, k, loop)
	default:
		return nil, fmt.Errorf("ltl: unrecognised formula node %T", phi)
	}
}

// futureWindow returns the inclusive time range F windows over.
func futureWindow(t, k int, loop Loop) (from, to int, empty bool) {
	if loop.Kind == NoLoop {
		return t, k, false
	}
	te := windowT(t, k, loop)
	l := loop.At
	if te < l {
		return te, k - 1, false
	}
	return l, k - 1, false
}

func tableauFuture(vm *varmgr.Manager, f Future, t, k int, loop Loop) (*be.Node, error) {
	m := vm.BE()
	from, to, empty := futureWindow(t, k, loop)
	if empty {
		return m.Falsity(), nil
	}
	acc := m.Falsity()
	for i := from; i <= to; i++ {
		child, err := tableauAt(vm, f.X, i, k, loop)
		if err != nil {
			return nil, err
		}
		acc = m.Or(acc, child)
	}
	return acc, nil
}

func tableauGlobally(vm *varmgr.Manager, g Globally, t, k int, loop Loop) (*be.Node, error) {
	m := vm.BE()
	if loop.Kind == NoLoop {
		return m.Falsity(), nil
	}
	te := windowT(t, k, loop)
	l := loop.At
	from := l
	if te < l {
		from = te
	}
	acc := m.Truth()
	for i := from; i <= k-1; i++ {
		child, err := tableauAt(vm, g.X, i, k, loop)
		if err != nil {
			return nil, err
		}
		acc = m.And(acc, child)
	}
	return acc, nil
}

// unfoldingBudget returns the number of ϕ₁∧X(...) unfoldings available
// before ϕ₂ must hold, per the U/R window-count formula.
func unfoldingBudget(t, k int, loop Loop) int {
	if loop.Kind == NoLoop {
		return k - t + 1
	}
	te := windowT(t, k, loop)
	l := loop.At
	m := l
	if te < l {
		m = te
	}
	return (k - 1) - m + 1
}

func tableauUntil(vm *varmgr.Manager, u Until, t, k int, loop Loop) (*be.Node, error) {
	mgr := vm.BE()
	budget := unfoldingBudget(t, k, loop)
	return untilRec(vm, u.X, u.Y, t, k, loop, budget, mgr)
}

func untilRec(vm *varmgr.Manager, phi1, phi2 Formula, t, k int, loop Loop, stepsLeft int, m *be.Manager) (*be.Node, error) {
	d2, err := tableauAt(vm, phi2, t, k, loop)
	if err != nil {
		return nil, err
	}
	if stepsLeft <= 1 {
		return d2, nil
	}
	nt, ok := succ(t, k, loop)
	if !ok {
		return d2, nil
	}
	d1, err := tableauAt(vm, phi1, t, k, loop)
	if err != nil {
		return nil, err
	}
	rest, err := untilRec(vm, phi1, phi2, nt, k, loop, stepsLeft-1, m)
	if err != nil {
		return nil, err
	}
	return m.Or(d2, m.And(d1, rest)), nil
}

func tableauRelease(vm *varmgr.Manager, r Release, t, k int, loop Loop) (*be.Node, error) {
	mgr := vm.BE()
	budget := unfoldingBudget(t, k, loop)
	return releaseRec(vm, r.X, r.Y, t, k, loop, budget, mgr)
}

func releaseRec(vm *varmgr.Manager, phi1, phi2 Formula, t, k int, loop Loop, stepsLeft int, m *be.Manager) (*be.Node, error) {
	d2, err := tableauAt(vm, phi2, t, k, loop)
	if err != nil {
		return nil, err
	}
	base := func() (*be.Node, error) {
		if loop.Kind == NoLoop {
			d1, err := tableauAt(vm, phi1, t, k, loop)
			if err != nil {
				return nil, err
			}
			return m.And(d2, d1), nil
		}
		return d2, nil
	}
	if stepsLeft <= 1 {
		return base()
	}
	nt, ok := succ(t, k, loop)
	if !ok {
		return base()
	}
	d1, err := tableauAt(vm, phi1, t, k, loop)
	if err != nil {
		return nil, err
	}
	rest, err := releaseRec(vm, phi1, phi2, nt, k, loop, stepsLeft-1, m)
	if err != nil {
		return nil, err
	}
	return m.And(d2, m.Or(d1, rest)), nil
}
