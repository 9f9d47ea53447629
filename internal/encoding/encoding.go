// Package encoding defines the narrow interfaces the BMC core consumes
// from a front-end it does not implement: a symbol table describing
// which names are state/input/boolean variables (and how scalars
// booleanise), and a "sexp FSM" supplying the init/invar/trans/justice
// expressions already compiled to BE nodes. A real front-end would
// parse a model description and flatten it to these shapes; that
// parser/flattener is explicitly out of scope, so this package also
// ships static, in-memory implementations of both interfaces, just
// rich enough to drive the documented scenarios end to end.
//
// SexpFSM lives here rather than in its own package named after the
// teacher's "sexp" vocabulary because internal/fsm already names the
// compiled BE-level FSM (current/invar/trans/fairness as *be.Node);
// colliding the two would force an import rename at every call site.
package encoding

import "github.com/operator-framework/bmc-core/internal/be"

// SymbolTable answers questions about a model's variable names that
// the variable manager, trace reconstructor, and property translator
// all need but that none of them is the source of truth for.
type SymbolTable interface {
	StateVars() []string
	InputVars() []string
	IsState(name string) bool
	IsInput(name string) bool
	IsBoolean(name string) bool
	IsDeclared(name string) bool
	// BitsOf returns the ordered (MSB-first) bit-variable names that
	// booleanise the scalar variable name, and false if name is not a
	// scalar (e.g. it is already boolean, or undeclared).
	BitsOf(name string) ([]string, bool)
}

// SexpFSM supplies the four expressions a Sexp-based front end would
// otherwise parse: init, invar, trans, and the justice (fairness)
// obligations, each already compiled to a BE node over declared
// variable names.
type SexpFSM interface {
	Init() *be.Node
	Invar() *be.Node
	Trans() *be.Node
	Justice() []*be.Node
}

// StaticSymbolTable is a fixed, in-memory SymbolTable.
type StaticSymbolTable struct {
	state      map[string]bool
	input      map[string]bool
	scalarBits map[string][]string
	stateOrder []string
	inputOrder []string
}

// NewStaticSymbolTable builds a SymbolTable from explicit name lists.
// scalarBits maps a scalar variable's name to its booleanising bits,
// MSB first; names absent from scalarBits are boolean variables.
func NewStaticSymbolTable(state, input []string, scalarBits map[string][]string) *StaticSymbolTable {
	t := &StaticSymbolTable{
		state:      make(map[string]bool, len(state)),
		input:      make(map[string]bool, len(input)),
		scalarBits: scalarBits,
		stateOrder: append([]string(nil), state...),
		inputOrder: append([]string(nil), input...),
	}
	for _, n := range state {
		t.state[n] = true
	}
	for _, n := range input {
		t.input[n] = true
	}
	return t
}

func (t *StaticSymbolTable) StateVars() []string { return t.stateOrder }
func (t *StaticSymbolTable) InputVars() []string { return t.inputOrder }
func (t *StaticSymbolTable) IsState(name string) bool { return t.state[name] }
func (t *StaticSymbolTable) IsInput(name string) bool { return t.input[name] }

func (t *StaticSymbolTable) IsDeclared(name string) bool {
	return t.state[name] || t.input[name]
}

func (t *StaticSymbolTable) IsBoolean(name string) bool {
	if !t.IsDeclared(name) {
		return false
	}
	_, isScalar := t.scalarBits[name]
	return !isScalar
}

func (t *StaticSymbolTable) BitsOf(name string) ([]string, bool) {
	bits, ok := t.scalarBits[name]
	return bits, ok
}

// StaticSexpFSM is a fixed, in-memory SexpFSM over already-built BE
// nodes.
type StaticSexpFSM struct {
	init, invar, trans *be.Node
	justice            []*be.Node
}

func NewStaticSexpFSM(init, invar, trans *be.Node, justice []*be.Node) *StaticSexpFSM {
	return &StaticSexpFSM{init: init, invar: invar, trans: trans, justice: append([]*be.Node(nil), justice...)}
}

func (f *StaticSexpFSM) Init() *be.Node      { return f.init }
func (f *StaticSexpFSM) Invar() *be.Node     { return f.invar }
func (f *StaticSexpFSM) Trans() *be.Node     { return f.trans }
func (f *StaticSexpFSM) Justice() []*be.Node { return f.justice }
