package be

// Shift renames every variable index i occurring in n to i+delta,
// reserving new variable slots as needed. The traversal is memoised for
// the duration of this call so that it runs in O(nodes in n), not
// O(paths through n).
func (m *Manager) Shift(n *Node, delta int) *Node {
	if delta == 0 {
		return n
	}
	memo := make(map[*Node]*Node)
	return m.shift(n, delta, memo)
}

func (m *Manager) shift(n *Node, delta int, memo map[*Node]*Node) *Node {
	if n.IsConstant() {
		return n
	}
	if r, ok := memo[n]; ok {
		return r
	}
	var r *Node
	switch n.kind {
	case kVar:
		newIdx := int(n.idx) + delta
		if newIdx < 0 {
			panic("be: Shift produced a negative variable index")
		}
		r = m.VarOfIndex(VarIndex(newIdx))
	case kNot:
		r = m.Not(m.shift(n.a, delta, memo))
	case kAnd:
		r = m.And(m.shift(n.a, delta, memo), m.shift(n.b, delta, memo))
	case kOr:
		r = m.Or(m.shift(n.a, delta, memo), m.shift(n.b, delta, memo))
	case kXor:
		r = m.Xor(m.shift(n.a, delta, memo), m.shift(n.b, delta, memo))
	case kIff:
		r = m.Iff(m.shift(n.a, delta, memo), m.shift(n.b, delta, memo))
	case kIte:
		r = m.Ite(m.shift(n.a, delta, memo), m.shift(n.b, delta, memo), m.shift(n.c, delta, memo))
	default:
		panic("be: Shift encountered an unrecognised node kind")
	}
	memo[n] = r
	return r
}
