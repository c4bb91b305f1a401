package encode

import (
	"github.com/go-air/gini/z"

	"github.com/groupsolver/grouper/internal/model"
	"github.com/groupsolver/grouper/internal/sat"
	"github.com/groupsolver/grouper/internal/sets"
)

const (
	// DefaultGroupSize is the number of selected members every active
	// group must have.
	DefaultGroupSize = 4
	// DefaultTotal is the number of items selected overall.
	DefaultTotal = 16
)

// Params are the run parameters of the selection problem.
type Params struct {
	GroupSize int
	Total     int
}

func (p Params) withDefaults() Params {
	if p.GroupSize == 0 {
		p.GroupSize = DefaultGroupSize
	}
	if p.Total == 0 {
		p.Total = DefaultTotal
	}
	return p
}

// Vars holds the decision variables of one run: one boolean per item ("is
// this item selected") and one per group ("is this group active"), aligned
// index-for-index with the canonical model arrays.
type Vars struct {
	Items  []z.Lit
	Groups []z.Lit
}

// Encoder translates a canonical model into boolean constraints on a SAT
// solver. Encoding is pure formula construction and cannot fail; whether
// the constraints admit a solution is discovered when the solver is
// queried.
type Encoder struct {
	model  *model.Model
	params Params
}

func NewEncoder(m *model.Model, params Params) *Encoder {
	return &Encoder{
		model:  m,
		params: params.withDefaults(),
	}
}

// Encode declares fresh decision variables and asserts the full constraint
// set on s.
func (e *Encoder) Encode(s *sat.Solver) Vars {
	vars := e.declare(s)
	e.membership(s, vars)
	e.overlapCoherence(s, vars)
	e.groupCardinality(s, vars)
	e.avoidExclusions(s, vars)
	e.ignoreGroups(s, vars)
	e.globalTotal(s, vars)
	return vars
}

func (e *Encoder) declare(s *sat.Solver) Vars {
	vars := Vars{
		Items:  make([]z.Lit, len(e.model.Items)),
		Groups: make([]z.Lit, len(e.model.Groups)),
	}
	// item and group namespaces may share names
	for i, name := range e.model.Items {
		vars.Items[i] = s.LitOf(sat.Identifier("item/" + name))
	}
	for i, g := range e.model.Groups {
		vars.Groups[i] = s.LitOf(sat.Identifier("group/" + g.Name))
	}
	return vars
}

// membership: an item may only be selected if at least one group containing
// it is active. An item belonging to no group degenerates to an empty
// disjunction and can never be selected.
func (e *Encoder) membership(s *sat.Solver, vars Vars) {
	c := s.Circuit()
	for i := range e.model.Items {
		m := vars.Items[i].Not()
		for _, gi := range e.model.GroupsOf(i) {
			m = c.Or(m, vars.Groups[gi])
		}
		s.Assert(m)
	}
}

// overlapCoherence: two active groups that share any selected item must
// have all GroupSize of their required selections inside the shared
// region. Pairs with empty intersections are skipped; encoding them would
// assert an unsatisfiable cardinality over an empty set.
func (e *Encoder) overlapCoherence(s *sat.Solver, vars Vars) {
	c := s.Circuit()
	for a := 1; a < len(e.model.Groups); a++ {
		for b := 0; b < a; b++ {
			shared := sets.Intersection(e.model.Groups[a].Members, e.model.Groups[b].Members)
			if len(shared) == 0 {
				continue
			}
			sharedLits := itemLits(vars, shared)
			someShared := sharedLits[0]
			for _, m := range sharedLits[1:] {
				someShared = c.Or(someShared, m)
			}
			bothActive := c.And(vars.Groups[a], c.And(vars.Groups[b], someShared))
			s.Assert(c.Or(bothActive.Not(), e.exactly(s, sharedLits, e.params.GroupSize)))
		}
	}
}

// groupCardinality: every active group has exactly GroupSize selected
// members.
func (e *Encoder) groupCardinality(s *sat.Solver, vars Vars) {
	c := s.Circuit()
	for gi, g := range e.model.Groups {
		memberLits := itemLits(vars, g.Members)
		s.Assert(c.Or(vars.Groups[gi].Not(), e.exactly(s, memberLits, e.params.GroupSize)))
	}
}

// avoidExclusions: a group cannot be active while two or more items from
// the same avoid-set are selected within it. Pairwise exclusion subsumes
// any larger co-occurrence.
func (e *Encoder) avoidExclusions(s *sat.Solver, vars Vars) {
	c := s.Circuit()
	for gi, g := range e.model.Groups {
		for _, avoid := range e.model.AvoidSets {
			shared := sets.Intersection(g.Members, avoid)
			for p := 1; p < len(shared); p++ {
				for q := 0; q < p; q++ {
					together := c.And(vars.Groups[gi],
						c.And(vars.Items[shared[p]], vars.Items[shared[q]]))
					s.Assert(together.Not())
				}
			}
		}
	}
}

// ignoreGroups: ignored groups are unconditionally deactivated.
func (e *Encoder) ignoreGroups(s *sat.Solver, vars Vars) {
	for _, gi := range e.model.IgnoreGroups {
		s.Assert(vars.Groups[gi].Not())
	}
}

// globalTotal: exactly Total items are selected overall, independent of
// grouping.
func (e *Encoder) globalTotal(s *sat.Solver, vars Vars) {
	s.Assert(e.exactly(s, vars.Items, e.params.Total))
}

// exactly composes the solver's monotone cardinality primitives into
// "exactly k of ms are true".
func (e *Encoder) exactly(s *sat.Solver, ms []z.Lit, k int) z.Lit {
	return s.Circuit().And(s.AtLeast(ms, k), s.AtMost(ms, k))
}

func itemLits(vars Vars, indices []int) []z.Lit {
	ms := make([]z.Lit, len(indices))
	for i, index := range indices {
		ms[i] = vars.Items[index]
	}
	return ms
}
