package be

import "fmt"

// Subst replaces every variable reference in n according to repl, a
// slice indexed by source VarIndex whose length must equal
// m.NumVars(). A nil entry leaves that variable unchanged. The
// traversal is memoised for the duration of this call.
func (m *Manager) Subst(n *Node, repl []*Node) *Node {
	if len(repl) != m.NumVars() {
		panic(fmt.Sprintf("be: Subst map has length %d, want %d", len(repl), m.NumVars()))
	}
	memo := make(map[*Node]*Node)
	return m.subst(n, repl, memo)
}

func (m *Manager) subst(n *Node, repl []*Node, memo map[*Node]*Node) *Node {
	if n.IsConstant() {
		return n
	}
	if r, ok := memo[n]; ok {
		return r
	}
	var r *Node
	switch n.kind {
	case kVar:
		if repl[n.idx] != nil {
			r = repl[n.idx]
		} else {
			r = n
		}
	case kNot:
		r = m.Not(m.subst(n.a, repl, memo))
	case kAnd:
		r = m.And(m.subst(n.a, repl, memo), m.subst(n.b, repl, memo))
	case kOr:
		r = m.Or(m.subst(n.a, repl, memo), m.subst(n.b, repl, memo))
	case kXor:
		r = m.Xor(m.subst(n.a, repl, memo), m.subst(n.b, repl, memo))
	case kIff:
		r = m.Iff(m.subst(n.a, repl, memo), m.subst(n.b, repl, memo))
	case kIte:
		r = m.Ite(m.subst(n.a, repl, memo), m.subst(n.b, repl, memo), m.subst(n.c, repl, memo))
	default:
		panic("be: Subst encountered an unrecognised node kind")
	}
	memo[n] = r
	return r
}
