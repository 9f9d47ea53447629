// Package sat declares the abstract SAT solver capability the BMC core
// depends on (C9): group-scoped clause addition, polarity setting,
// solving, and model extraction, with IncSolver extending it with group
// creation/destruction and solve-excluding-groups. Concrete backends
// (internal/sat/ginisolver) implement this interface; the invariant and
// LTL algorithms are written against it, not against any one solver
// library.
package sat

import "github.com/operator-framework/bmc-core/internal/cnf"

// Status is a solver outcome, using the same 1/-1/0
// satisfiable/unsatisfiable/unknown convention the teacher's solver
// package used for gini's own Solve()/Test() results.
type Status int

const (
	StatusUnsatisfiable Status = -1
	StatusUnknown       Status = 0
	StatusSatisfiable   Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusSatisfiable:
		return "satisfiable"
	case StatusUnsatisfiable:
		return "unsatisfiable"
	default:
		return "unknown"
	}
}

// Group is an opaque handle to a solver-managed, atomically-discardable
// container of clauses.
type Group int

// NoGroup is reserved to mean "not a valid group". It is -1, not the
// zero value: ginisolver's permanent group is 0 and the groups it
// creates count up from 1, so no group it hands out equals NoGroup.
const NoGroup Group = -1

// Solver is the required baseline capability: create/destroy the
// solver itself (via the concrete constructor and Close), a permanent
// group, clause/polarity addition to a group, solving across every
// active group, and model extraction on SAT.
type Solver interface {
	// PermanentGroup returns the group whose clauses are never
	// retracted for the lifetime of the solver.
	PermanentGroup() Group

	// AddClause adds clause to group. Clauses added to the permanent
	// group remain globally sound for the solver's lifetime.
	AddClause(group Group, clause cnf.Clause) error

	// SetPolarity forces lit's variable to the given polarity
	// (positive if polarity>=0, negative otherwise) within group, used
	// to bias search without permanently asserting a unit clause.
	SetPolarity(group Group, lit cnf.Literal, polarity int) error

	// SolveAllGroups solves with every non-destroyed group active.
	SolveAllGroups() (Status, error)

	// Model returns the signed literals of the last satisfying
	// assignment. It is only meaningful immediately after
	// SolveAllGroups or SolveWithoutGroups returned StatusSatisfiable.
	Model() ([]cnf.Literal, error)

	// Close releases the solver's resources. All groups and solver
	// state owned by one algorithm run must be released before the run
	// returns.
	Close() error
}

// IncSolver extends Solver with the incremental group lifecycle:
// creating and destroying assumption groups, and solving with a subset
// of them temporarily excluded.
type IncSolver interface {
	Solver

	// CreateGroup allocates a new retractable group.
	CreateGroup() (Group, error)

	// DestroyGroup permanently removes every clause ever added to g.
	// Per (I2), this must happen before any interpretation of the
	// solver's permanent state.
	DestroyGroup(g Group) error

	// SolveWithoutGroups solves as if every group in excluded were
	// absent, without destroying them: a later solve with an empty
	// excluded set sees their clauses again.
	SolveWithoutGroups(excluded []Group) (Status, error)
}
