package cnf

import "github.com/operator-framework/bmc-core/internal/be"

// Incremental is a persistent Tseitin/Plaisted-Greenbaum converter for
// incremental solver use (ZigZag, Dual, incremental LTL): unlike the
// free Convert function, which restarts CNF variable numbering from 1
// on every call, Incremental remembers the CNF variable already
// assigned to every BE node and BE variable it has converted before.
// Converting an overlapping sub-DAG a second time reuses the same CNF
// variables and returns no new clauses for nodes it has already
// defined, so a caller accumulating clauses into a permanent solver
// group never re-teaches a clause the solver already has.
type Incremental struct {
	next       int32
	lit        map[*be.Node]Literal
	beVarToCNF map[be.VarIndex]int32
	cnfToBEVar map[int32]be.VarIndex
}

// NewIncremental returns an empty persistent converter.
func NewIncremental() *Incremental {
	return &Incremental{
		lit:        make(map[*be.Node]Literal),
		beVarToCNF: make(map[be.VarIndex]int32),
		cnfToBEVar: make(map[int32]be.VarIndex),
	}
}

func (ic *Incremental) newVar() int32 {
	ic.next++
	return ic.next
}

// BEVarToCNF returns the CNF variable assigned to the BE variable at
// idx, if converted so far.
func (ic *Incremental) BEVarToCNF(idx be.VarIndex) (int32, bool) {
	v, ok := ic.beVarToCNF[idx]
	return v, ok
}

// CNFToBEVar is the inverse of BEVarToCNF.
func (ic *Incremental) CNFToBEVar(v int32) (be.VarIndex, bool) {
	idx, ok := ic.cnfToBEVar[v]
	return idx, ok
}

// Convert returns root's top literal (TopTrue/TopFalse if root is a
// constant) and the clauses newly introduced by this call. Nodes
// already converted by an earlier call to this same Incremental
// contribute no clauses.
func (ic *Incremental) Convert(root *be.Node) (Literal, []Clause) {
	if root.IsTruth() {
		return TopTrue, nil
	}
	if root.IsFalsity() {
		return TopFalse, nil
	}

	var fresh []Clause
	add := func(lits ...Literal) {
		clause := make(Clause, len(lits))
		copy(clause, lits)
		fresh = append(fresh, clause)
	}

	be.Walk(root, func(n *be.Node) {
		if _, already := ic.lit[n]; already {
			return
		}
		op, a, b, d := n.Decompose()
		switch op {
		case be.OpVar:
			idx := n.VarIndex()
			v, ok := ic.beVarToCNF[idx]
			if !ok {
				v = ic.newVar()
				ic.beVarToCNF[idx] = v
				ic.cnfToBEVar[v] = idx
			}
			ic.lit[n] = Literal(v)
		case be.OpNot:
			ic.lit[n] = -ic.lit[a]
		case be.OpAnd:
			t := Literal(ic.newVar())
			la, lb := ic.lit[a], ic.lit[b]
			add(-t, la)
			add(-t, lb)
			add(t, -la, -lb)
			ic.lit[n] = t
		case be.OpOr:
			t := Literal(ic.newVar())
			la, lb := ic.lit[a], ic.lit[b]
			add(t, -la)
			add(t, -lb)
			add(-t, la, lb)
			ic.lit[n] = t
		case be.OpXor:
			t := Literal(ic.newVar())
			la, lb := ic.lit[a], ic.lit[b]
			add(-t, la, lb)
			add(-t, -la, -lb)
			add(t, la, -lb)
			add(t, -la, lb)
			ic.lit[n] = t
		case be.OpIff:
			t := Literal(ic.newVar())
			la, lb := ic.lit[a], ic.lit[b]
			add(-t, -la, lb)
			add(-t, la, -lb)
			add(t, la, lb)
			add(t, -la, -lb)
			ic.lit[n] = t
		case be.OpIte:
			t := Literal(ic.newVar())
			lcond, lthen, lelse := ic.lit[a], ic.lit[b], ic.lit[d]
			add(-t, -lcond, lthen)
			add(-t, lcond, lelse)
			add(t, -lcond, -lthen)
			add(t, lcond, -lelse)
			ic.lit[n] = t
		default:
			panic("cnf: Incremental.Convert encountered an unrecognised operator")
		}
	})

	return ic.lit[root], fresh
}
