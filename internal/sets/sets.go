package sets

import "fmt"

// Intersection returns the ascending intersection of two ascending,
// duplicate-free index slices using a linear two-pointer merge.
//
// Both inputs must already be sorted. An unsorted input is a broken caller
// contract, not recoverable data: Intersection panics instead of re-sorting
// and masking the corruption.
func Intersection(a, b []int) []int {
	mustBeSorted(a)
	mustBeSorted(b)

	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func mustBeSorted(s []int) {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			panic(fmt.Sprintf("unsorted index list: %v", s))
		}
	}
}
