package be

// Op identifies the operator of a Node for callers outside this package
// (principally the CNF converter and the debug emitters) that need to
// walk the DAG without reaching into its internals.
type Op uint8

const (
	OpConst Op = iota
	OpVar
	OpNot
	OpAnd
	OpOr
	OpXor
	OpIff
	OpIte
)

func (o Op) String() string {
	switch o {
	case OpConst:
		return "const"
	case OpVar:
		return "var"
	case OpNot:
		return "not"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	case OpIff:
		return "iff"
	case OpIte:
		return "ite"
	default:
		return "?"
	}
}

// Decompose returns n's operator and its (up to three) operands. For
// OpConst and OpVar, a, b, and c are nil; use IsTruth/VarIndex to read
// the payload.
func (n *Node) Decompose() (op Op, a, b, c *Node) {
	switch n.kind {
	case kTrue, kFalse:
		return OpConst, nil, nil, nil
	case kVar:
		return OpVar, nil, nil, nil
	case kNot:
		return OpNot, n.a, nil, nil
	case kAnd:
		return OpAnd, n.a, n.b, nil
	case kOr:
		return OpOr, n.a, n.b, nil
	case kXor:
		return OpXor, n.a, n.b, nil
	case kIff:
		return OpIff, n.a, n.b, nil
	case kIte:
		return OpIte, n.a, n.b, n.c
	default:
		panic("be: Decompose encountered an unrecognised node kind")
	}
}

// ID returns n's creation-order identity within its Manager. It is
// useful for deterministic iteration order in debug emitters; it carries
// no semantic meaning beyond being a stable, unique label per node.
func (n *Node) ID() int64 { return n.id }

// Walk visits every node reachable from root exactly once, in
// post-order (operands before the node that contains them), calling
// visit for each.
func Walk(root *Node, visit func(*Node)) {
	seen := make(map[*Node]bool)
	var rec func(*Node)
	rec = func(n *Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		_, a, b, c := n.Decompose()
		if a != nil {
			rec(a)
		}
		if b != nil {
			rec(b)
		}
		if c != nil {
			rec(c)
		}
		visit(n)
	}
	rec(root)
}
