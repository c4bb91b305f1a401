package grouper

import (
	"context"
	"io"

	"github.com/groupsolver/grouper/internal/config"
	"github.com/groupsolver/grouper/internal/encode"
	"github.com/groupsolver/grouper/internal/model"
	"github.com/groupsolver/grouper/internal/sat"
)

const (
	// DefaultSolutionCap is the number of distinct solutions Enumerate
	// produces when the caller does not ask for a specific count.
	DefaultSolutionCap = 10
	// DefaultGroupSize is the number of selected members every active
	// group must have.
	DefaultGroupSize = encode.DefaultGroupSize
	// DefaultTotal is the number of items selected overall.
	DefaultTotal = encode.DefaultTotal
)

// Problem is a canonicalized selection problem, ready to solve. It is
// immutable once built.
type Problem struct {
	model *model.Model
}

// LoadProblem reads a TOML selection problem from the file at path and
// canonicalizes it. Unresolvable item or group names abort with an error.
func LoadProblem(path string) (*Problem, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return newProblem(cfg)
}

// ParseProblem decodes a TOML selection problem from r and canonicalizes
// it.
func ParseProblem(r io.Reader) (*Problem, error) {
	cfg, err := config.Parse(r)
	if err != nil {
		return nil, err
	}
	return newProblem(cfg)
}

// ProblemFromMap canonicalizes a selection problem supplied as an
// already-parsed nested mapping, for callers that own their configuration
// format.
func ProblemFromMap(raw map[string]interface{}) (*Problem, error) {
	cfg, err := config.FromMap(raw)
	if err != nil {
		return nil, err
	}
	return newProblem(cfg)
}

func newProblem(cfg *config.Config) (*Problem, error) {
	m, err := model.Build(cfg)
	if err != nil {
		return nil, err
	}
	return &Problem{model: m}, nil
}

// Solver enumerates distinct valid selections for a Problem.
type Solver struct {
	problem *Problem
	params  encode.Params
}

type Option func(*Solver)

// WithGroupSize overrides the number of selected members every active
// group must have. The default is 4.
func WithGroupSize(n int) Option {
	return func(s *Solver) {
		s.params.GroupSize = n
	}
}

// WithTotal overrides the number of items selected overall. The default is
// 16.
func WithTotal(n int) Option {
	return func(s *Solver) {
		s.params.Total = n
	}
}

func New(problem *Problem, options ...Option) *Solver {
	s := &Solver{problem: problem}
	for _, option := range options {
		option(s)
	}
	return s
}

// Iterator encodes the problem onto a fresh SAT solver and returns a lazy
// stream of pairwise-distinct solutions. Each Iterator owns its own solver
// instance; iterators from the same Solver enumerate independently.
func (s *Solver) Iterator() *Iter {
	oracle := sat.NewSolver()
	vars := encode.NewEncoder(s.problem.model, s.params).Encode(oracle)
	return &Iter{
		model: s.problem.model,
		sols:  oracle.Solutions(vars.Items, vars.Groups),
	}
}

// Solve returns one valid selection, or nil if the constraints admit none.
// An unsatisfiable problem is an empty result, not an error.
func (s *Solver) Solve(ctx context.Context) (*Solution, error) {
	it := s.Iterator()
	sol, ok := it.Next(ctx)
	if !ok {
		return nil, it.Err()
	}
	return &sol, nil
}

// Enumerate returns up to n pairwise-distinct solutions, fewer if the
// problem admits fewer. If enumeration fails mid-way, the solutions found
// so far are returned along with the error. n <= 0 means
// DefaultSolutionCap.
func (s *Solver) Enumerate(ctx context.Context, n int) ([]Solution, error) {
	if n <= 0 {
		n = DefaultSolutionCap
	}
	it := s.Iterator()
	solutions := make([]Solution, 0, n)
	for len(solutions) < n {
		sol, ok := it.Next(ctx)
		if !ok {
			break
		}
		solutions = append(solutions, sol)
	}
	return solutions, it.Err()
}

// Iter lazily produces distinct solutions. It stops when the underlying
// formula becomes unsatisfiable; Err reports whether it stopped due to a
// failure instead.
type Iter struct {
	model *model.Model
	sols  *sat.Solutions
}

func (it *Iter) Next(ctx context.Context) (Solution, bool) {
	itemVals, groupVals, ok := it.sols.Next(ctx)
	if !ok {
		return Solution{}, false
	}
	return project(it.model, itemVals, groupVals), true
}

func (it *Iter) Err() error {
	return it.sols.Err()
}
