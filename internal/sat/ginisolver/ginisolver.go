// Package ginisolver implements sat.IncSolver on top of gini, grounded
// on the teacher's litMapping (pkg/controller/registry/resolver/solver/
// lit_mapping.go), which drives the same underlying solver through
// inter.S's Add/Assume/Solve/Value. Retractable groups are realized
// with gini's native inter.Activatable mechanism (Activate/
// ActivateWith/ActivationLit/Deactivate) rather than a hand-rolled
// selector-literal scheme: clauses in a created group are taught with
// an activation literal in place of the usual 0 terminator, and a group
// is "active" for a solve exactly when its activation literal is
// assumed true.
package ginisolver

import (
	"sort"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/bmc-core/internal/bmcerr"
	"github.com/operator-framework/bmc-core/internal/cnf"
	"github.com/operator-framework/bmc-core/internal/sat"
)

type group struct {
	destroyed  bool
	act        z.Lit // z.LitNull for the permanent group
	polarities []z.Lit
}

// Solver is a gini-backed sat.IncSolver.
type Solver struct {
	g         *gini.Gini
	varToLit  map[int32]z.Lit
	varOrder  []int32
	groups    map[sat.Group]*group
	permanent sat.Group
	nextID    sat.Group
}

var _ sat.IncSolver = (*Solver)(nil)

// New creates a solver with its permanent group already allocated.
func New() *Solver {
	s := &Solver{
		g:        gini.New(),
		varToLit: make(map[int32]z.Lit),
		groups:   make(map[sat.Group]*group),
	}
	s.permanent = 0
	s.groups[s.permanent] = &group{}
	s.nextID = 1
	return s
}

func (s *Solver) PermanentGroup() sat.Group { return s.permanent }

func (s *Solver) litOfVar(va int32) z.Lit {
	m, ok := s.varToLit[va]
	if !ok {
		m = s.g.Lit()
		s.varToLit[va] = m
		s.varOrder = append(s.varOrder, va)
	}
	return m
}

func (s *Solver) litOf(v cnf.Literal) z.Lit {
	m := s.litOfVar(v.Var())
	if v < 0 {
		return m.Not()
	}
	return m
}

func (s *Solver) lookupGroup(gr sat.Group) (*group, error) {
	grp, ok := s.groups[gr]
	if !ok {
		return nil, bmcerr.New(bmcerr.ParameterInconsistent, "unknown group %d", gr)
	}
	if grp.destroyed {
		return nil, bmcerr.New(bmcerr.ParameterInconsistent, "group %d already destroyed", gr)
	}
	return grp, nil
}

func (s *Solver) AddClause(gr sat.Group, clause cnf.Clause) error {
	grp, err := s.lookupGroup(gr)
	if err != nil {
		return err
	}
	for _, lit := range clause {
		s.g.Add(s.litOf(lit))
	}
	if grp.act == z.LitNull {
		s.g.Add(z.LitNull)
		return nil
	}
	s.g.ActivateWith(grp.act)
	return nil
}

func (s *Solver) SetPolarity(gr sat.Group, lit cnf.Literal, polarity int) error {
	grp, err := s.lookupGroup(gr)
	if err != nil {
		return err
	}
	m := s.litOfVar(lit.Var())
	if polarity < 0 {
		m = m.Not()
	}
	grp.polarities = append(grp.polarities, m)
	return nil
}

func (s *Solver) CreateGroup() (sat.Group, error) {
	id := s.nextID
	s.nextID++
	s.groups[id] = &group{act: s.g.ActivationLit()}
	return id, nil
}

func (s *Solver) DestroyGroup(gr sat.Group) error {
	if gr == s.permanent {
		return bmcerr.New(bmcerr.ParameterInconsistent, "cannot destroy the permanent group")
	}
	grp, err := s.lookupGroup(gr)
	if err != nil {
		return err
	}
	s.g.Deactivate(grp.act)
	grp.destroyed = true
	grp.polarities = nil
	return nil
}

func (s *Solver) assumeActive(excluded map[sat.Group]bool) {
	for id, grp := range s.groups {
		if grp.destroyed {
			continue
		}
		if id == s.permanent {
			if len(grp.polarities) > 0 {
				s.g.Assume(grp.polarities...)
			}
			continue
		}
		if excluded[id] {
			s.g.Assume(grp.act.Not())
			continue
		}
		s.g.Assume(grp.act)
		if len(grp.polarities) > 0 {
			s.g.Assume(grp.polarities...)
		}
	}
}

func (s *Solver) SolveAllGroups() (sat.Status, error) {
	s.assumeActive(nil)
	return statusOf(s.g.Solve()), nil
}

func (s *Solver) SolveWithoutGroups(excluded []sat.Group) (sat.Status, error) {
	ex := make(map[sat.Group]bool, len(excluded))
	for _, gr := range excluded {
		if gr == s.permanent {
			return sat.StatusUnknown, bmcerr.New(bmcerr.ParameterInconsistent, "cannot exclude the permanent group")
		}
		if _, err := s.lookupGroup(gr); err != nil {
			return sat.StatusUnknown, err
		}
		ex[gr] = true
	}
	s.assumeActive(ex)
	return statusOf(s.g.Solve()), nil
}

func statusOf(r int) sat.Status {
	switch {
	case r > 0:
		return sat.StatusSatisfiable
	case r < 0:
		return sat.StatusUnsatisfiable
	default:
		return sat.StatusUnknown
	}
}

func (s *Solver) Model() ([]cnf.Literal, error) {
	vars := make([]int32, len(s.varOrder))
	copy(vars, s.varOrder)
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })

	out := make([]cnf.Literal, 0, len(vars))
	for _, v := range vars {
		m := s.varToLit[v]
		if s.g.Value(m) {
			out = append(out, cnf.Literal(v))
		} else {
			out = append(out, -cnf.Literal(v))
		}
	}
	return out, nil
}

func (s *Solver) Close() error { return nil }
