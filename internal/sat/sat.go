package sat

import (
	"context"
	"errors"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

var errUnknownOutcome = errors.New("unknown outcome from satisfiability check")

// Identifier values uniquely identify boolean variables within the input to
// a single Solver.
type Identifier string

// Solver wraps a gini SAT instance together with a logic circuit used to
// build formulas over named boolean variables. Formulas are constructed on
// the circuit, asserted as roots, and taught to gini as CNF on the first
// satisfiability check. Blocking clauses added during enumeration go
// straight to the solver.
type Solver struct {
	g      *gini.Gini
	c      *logic.C
	lits   map[Identifier]z.Lit
	roots  []z.Lit
	loaded bool
}

func NewSolver() *Solver {
	return &Solver{
		g:    gini.New(),
		c:    logic.NewC(),
		lits: make(map[Identifier]z.Lit),
	}
}

// LitOf returns the positive literal corresponding to the boolean variable
// with the given Identifier, creating a fresh one on first use.
func (s *Solver) LitOf(id Identifier) z.Lit {
	if _, ok := s.lits[id]; !ok {
		s.lits[id] = s.c.Lit()
	}
	return s.lits[id]
}

// Circuit exposes the underlying logic circuit for formula construction.
func (s *Solver) Circuit() *logic.C {
	return s.c
}

// Assert records m as a formula that must hold in every solution. Asserting
// after the first satisfiability check is a contract violation.
func (s *Solver) Assert(m z.Lit) {
	if s.loaded {
		panic("assert after satisfiability check")
	}
	s.roots = append(s.roots, m)
}

// AtLeast returns a literal that is true iff at least k of ms are true.
// Out-of-range bounds need no special handling: the sorting network clamps
// them to constant truth values.
func (s *Solver) AtLeast(ms []z.Lit, k int) z.Lit {
	return s.c.CardSort(ms).Geq(k)
}

// AtMost returns a literal that is true iff at most k of ms are true.
func (s *Solver) AtMost(ms []z.Lit, k int) z.Lit {
	return s.c.CardSort(ms).Leq(k)
}

// load teaches the circuit's CNF translation to gini and pins every
// asserted root as a unit clause.
func (s *Solver) load() {
	if s.loaded {
		return
	}
	s.c.ToCnf(s.g)
	for _, m := range s.roots {
		s.g.Add(m)
		s.g.Add(z.LitNull)
	}
	s.loaded = true
}

// Solve runs one satisfiability check over the asserted formulas. The
// underlying search blocks until gini terminates; ctx is only consulted
// before the search starts.
func (s *Solver) Solve(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.load()
	switch s.g.Solve() {
	case satisfiable:
		return true, nil
	case unsatisfiable:
		return false, nil
	}
	return false, errUnknownOutcome
}

// Solutions returns a lazy enumerator of pairwise-distinct satisfying
// assignments projected onto the given item and group literal sequences.
// Distinctness is defined over exactly those literals: after each model a
// blocking clause over them is added before the next search.
func (s *Solver) Solutions(items, groups []z.Lit) *Solutions {
	return &Solutions{s: s, items: items, groups: groups}
}

// Solutions enumerates distinct models. It stops cleanly when the formula
// becomes unsatisfiable; fewer solutions than the caller hoped for is not
// an error.
type Solutions struct {
	s      *Solver
	items  []z.Lit
	groups []z.Lit
	err    error
	done   bool
}

// Next produces the next distinct assignment, aligned index-for-index with
// the item and group sequences the enumerator was created with. It returns
// ok=false when no further solutions exist or an error occurred; Err
// disambiguates.
func (it *Solutions) Next(ctx context.Context) (itemVals, groupVals []bool, ok bool) {
	if it.done {
		return nil, nil, false
	}
	if err := ctx.Err(); err != nil {
		it.err = err
		it.done = true
		return nil, nil, false
	}

	it.s.load()
	switch it.s.g.Solve() {
	case satisfiable:
	case unsatisfiable:
		it.done = true
		return nil, nil, false
	default:
		it.err = errUnknownOutcome
		it.done = true
		return nil, nil, false
	}

	itemVals = it.read(it.items)
	groupVals = it.read(it.groups)
	it.block(itemVals, groupVals)
	return itemVals, groupVals, true
}

// Err reports the error that terminated enumeration, if any.
func (it *Solutions) Err() error {
	return it.err
}

func (it *Solutions) read(ms []z.Lit) []bool {
	vals := make([]bool, len(ms))
	for i, m := range ms {
		vals[i] = it.s.g.Value(m)
	}
	return vals
}

// block forbids the exact assignment just found, restricted to the
// projected literals.
func (it *Solutions) block(itemVals, groupVals []bool) {
	for i, m := range it.items {
		if itemVals[i] {
			m = m.Not()
		}
		it.s.g.Add(m)
	}
	for i, m := range it.groups {
		if groupVals[i] {
			m = m.Not()
		}
		it.s.g.Add(m)
	}
	it.s.g.Add(z.LitNull)
}
