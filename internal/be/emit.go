package be

import (
	"fmt"
	"io"
)

// Emitter writes some textual serialisation of a DAG rooted at a given
// Node to a stream. The exact syntax produced is out of scope for the
// core (§1); only the existence of the hook is specified.
type Emitter interface {
	Emit(w io.Writer, root *Node) error
}

// WriteSexp writes root as a fully-parenthesised S-expression to w.
func (m *Manager) WriteSexp(w io.Writer, root *Node) error {
	return SexpEmitter{}.Emit(w, root)
}

// WriteGDL writes root in the "graph description language" consumed by
// aiSee, one node/edge declaration per line.
func (m *Manager) WriteGDL(w io.Writer, root *Node) error {
	return GDLEmitter{}.Emit(w, root)
}

// WriteDaVinci writes root in daVinci's term-representation format.
func (m *Manager) WriteDaVinci(w io.Writer, root *Node) error {
	return DaVinciEmitter{}.Emit(w, root)
}

// SexpEmitter writes the whole DAG as one fully-parenthesised
// S-expression on a single line; shared subterms are repeated inline.
type SexpEmitter struct{}

func (SexpEmitter) Emit(w io.Writer, root *Node) error {
	label := make(map[*Node]string)
	Walk(root, func(n *Node) {
		label[n] = sexpOf(n, label)
	})
	_, err := fmt.Fprintln(w, label[root])
	return err
}

func sexpOf(n *Node, label map[*Node]string) string {
	switch {
	case n.IsTruth():
		return "true"
	case n.IsFalsity():
		return "false"
	}
	op, a, b, c := n.Decompose()
	switch op {
	case OpVar:
		return fmt.Sprintf("v%d", n.VarIndex())
	case OpNot:
		return fmt.Sprintf("(not %s)", label[a])
	case OpIte:
		return fmt.Sprintf("(ite %s %s %s)", label[a], label[b], label[c])
	default:
		return fmt.Sprintf("(%s %s %s)", op, label[a], label[b])
	}
}

// GDLEmitter writes the node graph in a simple "graph description
// language" of labelled nodes and edges, one declaration per line.
type GDLEmitter struct{}

func (GDLEmitter) Emit(w io.Writer, root *Node) error {
	var err error
	Walk(root, func(n *Node) {
		if err != nil {
			return
		}
		op, a, b, c := n.Decompose()
		switch op {
		case OpVar:
			_, err = fmt.Fprintf(w, "node: { title: \"%d\" label: \"v%d\" }\n", n.ID(), n.VarIndex())
		case OpConst:
			lbl := "false"
			if n.IsTruth() {
				lbl = "true"
			}
			_, err = fmt.Fprintf(w, "node: { title: \"%d\" label: \"%s\" }\n", n.ID(), lbl)
		default:
			_, err = fmt.Fprintf(w, "node: { title: \"%d\" label: \"%s\" }\n", n.ID(), op)
			for _, child := range []*Node{a, b, c} {
				if child == nil {
					continue
				}
				_, err = fmt.Fprintf(w, "edge: { sourcename: \"%d\" targetname: \"%d\" }\n", n.ID(), child.ID())
				if err != nil {
					return
				}
			}
		}
	})
	return err
}

// DaVinciEmitter writes the graph in daVinci's term-representation
// format, which is similar in spirit to GDL but wraps each node in an
// l(label, ...) term.
type DaVinciEmitter struct{}

func (DaVinciEmitter) Emit(w io.Writer, root *Node) error {
	label := make(map[*Node]string)
	var err error
	Walk(root, func(n *Node) {
		if err != nil {
			return
		}
		op, a, b, c := n.Decompose()
		id := fmt.Sprintf("n%d", n.ID())
		switch op {
		case OpVar:
			label[n] = fmt.Sprintf(`l("%s",n("",[],[v(%d)]))`, id, n.VarIndex())
		case OpConst:
			lbl := "false"
			if n.IsTruth() {
				lbl = "true"
			}
			label[n] = fmt.Sprintf(`l("%s",n("%s",[],[]))`, id, lbl)
		default:
			var kids []string
			for _, child := range []*Node{a, b, c} {
				if child != nil {
					kids = append(kids, label[child])
				}
			}
			joined := ""
			for i, k := range kids {
				if i > 0 {
					joined += ","
				}
				joined += k
			}
			label[n] = fmt.Sprintf(`l("%s",n("%s",[],[%s]))`, id, op, joined)
		}
	})
	_, err = fmt.Fprintln(w, label[root])
	return err
}
