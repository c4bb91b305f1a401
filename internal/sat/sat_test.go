package sat

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lits(s *Solver, n int) []z.Lit {
	ms := make([]z.Lit, n)
	for i := range ms {
		ms[i] = s.LitOf(Identifier(fmt.Sprintf("v%d", i)))
	}
	return ms
}

func TestCardinalityExactness(t *testing.T) {
	for k := 0; k <= 5; k++ {
		t.Run(fmt.Sprintf("exactly %d of 5", k), func(t *testing.T) {
			s := NewSolver()
			ms := lits(s, 5)
			s.Assert(s.Circuit().And(s.AtLeast(ms, k), s.AtMost(ms, k)))

			sat, err := s.Solve(context.Background())
			require.NoError(t, err)
			require.True(t, sat)

			count := 0
			for _, m := range ms {
				if s.g.Value(m) {
					count++
				}
			}
			assert.Equal(t, k, count)
		})
	}
}

func TestConflictingCardinalitiesAreUnsatisfiable(t *testing.T) {
	s := NewSolver()
	ms := lits(s, 5)
	s.Assert(s.Circuit().And(s.AtLeast(ms, 2), s.AtMost(ms, 2)))
	s.Assert(s.Circuit().And(s.AtLeast(ms, 3), s.AtMost(ms, 3)))

	sat, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.False(t, sat)
}

func TestOutOfRangeBounds(t *testing.T) {
	s := NewSolver()
	ms := lits(s, 3)
	// vacuous bounds must not make the formula unsatisfiable
	s.Assert(s.AtLeast(ms, 0))
	s.Assert(s.AtMost(ms, 3))

	sat, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.True(t, sat)
}

func TestSolutionsEnumeratesAllDistinctModels(t *testing.T) {
	s := NewSolver()
	a := s.LitOf("a")
	b := s.LitOf("b")
	s.Assert(s.Circuit().Or(a, b))

	seen := map[[2]bool]struct{}{}
	it := s.Solutions([]z.Lit{a, b}, nil)
	for {
		itemVals, _, ok := it.Next(context.Background())
		if !ok {
			break
		}
		key := [2]bool{itemVals[0], itemVals[1]}
		_, dup := seen[key]
		assert.False(t, dup, "solution %v yielded twice", key)
		seen[key] = struct{}{}
		assert.True(t, itemVals[0] || itemVals[1])
	}
	require.NoError(t, it.Err())
	assert.Len(t, seen, 3)
}

func TestSolutionsDistinctnessIsOverProjectedLiterals(t *testing.T) {
	s := NewSolver()
	a := s.LitOf("a")
	aux := s.LitOf("aux")
	s.Assert(s.Circuit().Or(a, aux))

	// models differing only in aux must collapse into one solution
	var count int
	it := s.Solutions([]z.Lit{a}, nil)
	for {
		if _, _, ok := it.Next(context.Background()); !ok {
			break
		}
		count++
	}
	require.NoError(t, it.Err())
	assert.Equal(t, 2, count)
}

func TestSolutionsOnUnsatisfiableFormula(t *testing.T) {
	s := NewSolver()
	a := s.LitOf("a")
	s.Assert(a)
	s.Assert(a.Not())

	it := s.Solutions([]z.Lit{a}, nil)
	_, _, ok := it.Next(context.Background())
	assert.False(t, ok)
	assert.NoError(t, it.Err())
}

func TestSolutionsContextCancellation(t *testing.T) {
	s := NewSolver()
	a := s.LitOf("a")
	s.Assert(a)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	it := s.Solutions([]z.Lit{a}, nil)
	_, _, ok := it.Next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, it.Err(), context.Canceled)
}

func TestAssertAfterCheckPanics(t *testing.T) {
	s := NewSolver()
	a := s.LitOf("a")
	s.Assert(a)
	_, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.Panics(t, func() { s.Assert(a.Not()) })
}
