package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersection(t *testing.T) {
	type tc struct {
		Name     string
		A        []int
		B        []int
		Expected []int
	}

	for _, tt := range []tc{
		{
			Name:     "disjoint",
			A:        []int{0, 2, 4},
			B:        []int{1, 3, 5},
			Expected: []int{},
		},
		{
			Name:     "partial overlap",
			A:        []int{0, 1, 4, 7, 9},
			B:        []int{1, 2, 7, 8},
			Expected: []int{1, 7},
		},
		{
			Name:     "identical",
			A:        []int{3, 5, 8},
			B:        []int{3, 5, 8},
			Expected: []int{3, 5, 8},
		},
		{
			Name:     "one empty",
			A:        []int{1, 2, 3},
			B:        []int{},
			Expected: []int{},
		},
		{
			Name:     "both empty",
			A:        []int{},
			B:        []int{},
			Expected: []int{},
		},
		{
			Name:     "subset",
			A:        []int{2, 4},
			B:        []int{1, 2, 3, 4, 5},
			Expected: []int{2, 4},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Expected, Intersection(tt.A, tt.B))
			assert.Equal(t, tt.Expected, Intersection(tt.B, tt.A))
		})
	}
}

func TestIntersectionMatchesReference(t *testing.T) {
	a := []int{0, 1, 3, 6, 7, 10, 15, 21}
	b := []int{1, 2, 3, 5, 7, 11, 15, 22}

	inB := map[int]struct{}{}
	for _, x := range b {
		inB[x] = struct{}{}
	}
	expected := make([]int, 0)
	for _, x := range a {
		if _, ok := inB[x]; ok {
			expected = append(expected, x)
		}
	}

	assert.Equal(t, expected, Intersection(a, b))
}

func TestIntersectionSelf(t *testing.T) {
	a := []int{0, 4, 9, 12}
	assert.Equal(t, a, Intersection(a, a))
}

func TestIntersectionRejectsUnsortedInput(t *testing.T) {
	assert.Panics(t, func() { Intersection([]int{3, 1, 2}, []int{1, 2}) })
	assert.Panics(t, func() { Intersection([]int{1, 2}, []int{5, 4}) })
}
