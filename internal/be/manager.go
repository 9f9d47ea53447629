package be

import "fmt"

// Manager owns a single process/session-scoped DAG of propositional
// formulas. It is created at BMC setup and destroyed at shutdown; all
// Nodes it returns remain valid for its entire lifetime.
type Manager struct {
	table   map[key]*Node
	nextID  int64
	truth   *Node
	falsity *Node
	vars    []*Node // dense: vars[i] is the node for VarIndex(i)
}

// NewManager returns an empty Manager with no reserved variables.
func NewManager() *Manager {
	m := &Manager{table: make(map[key]*Node)}
	m.truth = m.intern(key{kind: kTrue})
	m.falsity = m.intern(key{kind: kFalse})
	return m
}

func (m *Manager) intern(k key) *Node {
	if n, ok := m.table[k]; ok {
		return n
	}
	n := &Node{kind: k.kind, idx: k.idx, a: k.a, b: k.b, c: k.c, id: m.nextID}
	m.nextID++
	m.table[k] = n
	return n
}

// Truth returns the constant ⊤.
func (m *Manager) Truth() *Node { return m.truth }

// Falsity returns the constant ⊥.
func (m *Manager) Falsity() *Node { return m.falsity }

// NumVars returns the number of currently reserved variables.
func (m *Manager) NumVars() int { return len(m.vars) }

// Reserve enlarges the variable-index range to at least n variables. It
// is idempotent and monotone: calling it with a smaller or equal n is a
// no-op.
func (m *Manager) Reserve(n int) {
	if n <= len(m.vars) {
		return
	}
	if n < 0 {
		panic("be: Reserve called with negative count")
	}
	for i := len(m.vars); i < n; i++ {
		idx := VarIndex(i)
		m.vars = append(m.vars, m.intern(key{kind: kVar, idx: idx}))
	}
}

// VarOfIndex returns the variable Node for i, reserving space if
// necessary. Index overflow (i beyond int32 range) is fatal, consistent
// with the arithmetic-overflow-is-fatal failure model of the BE layer.
func (m *Manager) VarOfIndex(i VarIndex) *Node {
	if i < 0 {
		panic(fmt.Sprintf("be: negative variable index %d", i))
	}
	if int(i) >= len(m.vars) {
		m.Reserve(int(i) + 1)
	}
	return m.vars[i]
}

// IndexOfVar returns the VarIndex of a variable Node. It panics if v is
// not a variable node returned by this Manager.
func (m *Manager) IndexOfVar(v *Node) VarIndex {
	if v.kind != kVar {
		panic("be: IndexOfVar called on non-variable node")
	}
	return v.idx
}
