// Package cnf converts a boolean expression (be.Node) to Conjunctive
// Normal Form via Tseitin/Plaisted-Greenbaum conversion, the way gini's
// logic.C converts a circuit to CNF when handed to an inter.Adder
// (compare (*litMapping).AddConstraints in the teacher's solver
// package, which calls d.c.ToCnf(g)). This package plays C1's "to_cnf"
// role as a free function rather than a be.Manager method, so that
// internal/be does not need to import internal/cnf (which itself must
// import internal/be to walk the DAG) — a plain layering choice, not a
// workaround.
package cnf

import "github.com/operator-framework/bmc-core/internal/be"

// Literal is a non-zero signed CNF literal: a positive value k asserts
// CNF variable k, a negative value -k asserts its negation — the same
// convention DIMACS uses, so DIMACS output needs no translation.
type Literal int32

// Var returns the unsigned variable underlying l.
func (l Literal) Var() int32 {
	if l < 0 {
		return int32(-l)
	}
	return int32(l)
}

// Negate returns ¬l.
func (l Literal) Negate() Literal { return -l }

// Two reserved top-literal encodings stand in for the constants ⊤ and ⊥
// when the whole problem folds to a trivial form; they are chosen far
// outside the range any real variable numbering will reach.
const (
	TopTrue  Literal = 1 << 30
	TopFalse Literal = -(1 << 30)
)

// Clause is a disjunction of literals.
type Clause []Literal

// CNF is the result of converting one be.Node to Conjunctive Normal
// Form.
type CNF struct {
	Root    *be.Node
	Vars    []int32 // CNF variables actually used, in order of first use
	Clauses []Clause
	MaxVar  int32
	Top     Literal

	beVarToCNF map[be.VarIndex]int32
	cnfToBEVar map[int32]be.VarIndex
}

// BEVarToCNF returns the CNF variable assigned to the BE variable at
// idx, if that variable was reached during conversion.
func (c *CNF) BEVarToCNF(idx be.VarIndex) (int32, bool) {
	v, ok := c.beVarToCNF[idx]
	return v, ok
}

// CNFToBEVar is the inverse of BEVarToCNF.
func (c *CNF) CNFToBEVar(v int32) (be.VarIndex, bool) {
	idx, ok := c.cnfToBEVar[v]
	return idx, ok
}

// IsTriviallyTrue reports whether the converted formula was the
// constant ⊤ (empty clause list).
func (c *CNF) IsTriviallyTrue() bool { return c.Top == TopTrue }

// IsTriviallyFalse reports whether the converted formula was the
// constant ⊥ (the singleton empty clause).
func (c *CNF) IsTriviallyFalse() bool { return c.Top == TopFalse }

func (c *CNF) addClause(lits ...Literal) {
	clause := make(Clause, len(lits))
	copy(clause, lits)
	c.Clauses = append(c.Clauses, clause)
}

// DedupLiterals removes repeated literals within each clause. It is an
// idempotent post-pass; calling it more than once, or on a CNF it has
// already processed, is a no-op.
func (c *CNF) DedupLiterals() {
	for i, clause := range c.Clauses {
		seen := make(map[Literal]bool, len(clause))
		out := clause[:0]
		for _, l := range clause {
			if seen[l] {
				continue
			}
			seen[l] = true
			out = append(out, l)
		}
		c.Clauses[i] = out
	}
}

// Convert performs Tseitin/Plaisted-Greenbaum conversion of root:
// it assigns one CNF variable per BE variable reference and one fresh
// CNF variable per internal operator node reached by DFS (negation is
// folded into literal polarity directly, for free, since it needs no
// defining clauses — the DAG's shared structure already guarantees each
// node is visited once regardless). Conversion is total: a trivially
// true root yields no clauses, a trivially false root yields the
// singleton empty clause.
func Convert(root *be.Node) *CNF {
	c := &CNF{
		Root:       root,
		beVarToCNF: make(map[be.VarIndex]int32),
		cnfToBEVar: make(map[int32]be.VarIndex),
	}

	if root.IsTruth() {
		c.Top = TopTrue
		return c
	}
	if root.IsFalsity() {
		c.Top = TopFalse
		c.Clauses = []Clause{{}}
		return c
	}

	lit := make(map[*be.Node]Literal)
	var next int32 = 1
	newVar := func() int32 {
		v := next
		next++
		c.Vars = append(c.Vars, v)
		return v
	}

	be.Walk(root, func(n *be.Node) {
		op, a, b, d := n.Decompose()
		switch op {
		case be.OpVar:
			idx := n.VarIndex()
			v, ok := c.beVarToCNF[idx]
			if !ok {
				v = newVar()
				c.beVarToCNF[idx] = v
				c.cnfToBEVar[v] = idx
			}
			lit[n] = Literal(v)
		case be.OpNot:
			lit[n] = -lit[a]
		case be.OpAnd:
			t := Literal(newVar())
			la, lb := lit[a], lit[b]
			c.addClause(-t, la)
			c.addClause(-t, lb)
			c.addClause(t, -la, -lb)
			lit[n] = t
		case be.OpOr:
			t := Literal(newVar())
			la, lb := lit[a], lit[b]
			c.addClause(t, -la)
			c.addClause(t, -lb)
			c.addClause(-t, la, lb)
			lit[n] = t
		case be.OpXor:
			t := Literal(newVar())
			la, lb := lit[a], lit[b]
			c.addClause(-t, la, lb)
			c.addClause(-t, -la, -lb)
			c.addClause(t, la, -lb)
			c.addClause(t, -la, lb)
			lit[n] = t
		case be.OpIff:
			t := Literal(newVar())
			la, lb := lit[a], lit[b]
			c.addClause(-t, -la, lb)
			c.addClause(-t, la, -lb)
			c.addClause(t, la, lb)
			c.addClause(t, -la, -lb)
			lit[n] = t
		case be.OpIte:
			t := Literal(newVar())
			lcond, lthen, lelse := lit[a], lit[b], lit[d]
			c.addClause(-t, -lcond, lthen)
			c.addClause(-t, lcond, lelse)
			c.addClause(t, -lcond, -lthen)
			c.addClause(t, lcond, -lelse)
			lit[n] = t
		default:
			panic("cnf: Convert encountered an unrecognised operator")
		}
	})

	c.MaxVar = next - 1
	c.Top = lit[root]
	return c
}
