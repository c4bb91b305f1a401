package grouper

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/groupsolver/grouper/internal/model"
	"github.com/groupsolver/grouper/internal/sets"
)

// GroupSelection reports one active group and the names of its selected
// members, in canonical item order.
type GroupSelection struct {
	Name  string
	Items []string
}

// Solution is one satisfying assignment projected back into the domain:
// the active groups in canonical group order, plus every selected item
// name overall.
type Solution struct {
	Groups []GroupSelection
	Items  []string
}

// project maps a boolean assignment over the canonical item and group
// variable sequences back to names. It trusts the solver's answer and does
// not re-verify cardinality.
func project(m *model.Model, itemVals, groupVals []bool) Solution {
	chosen := make([]int, 0, len(itemVals))
	for i, selected := range itemVals {
		if selected {
			chosen = append(chosen, i)
		}
	}

	itemName := func(i int, _ int) string { return m.Items[i] }

	out := Solution{Items: lo.Map(chosen, itemName)}
	for gi, g := range m.Groups {
		if !groupVals[gi] {
			continue
		}
		members := sets.Intersection(chosen, g.Members)
		out.Groups = append(out.Groups, GroupSelection{
			Name:  g.Name,
			Items: lo.Map(members, itemName),
		})
	}
	return out
}

// ActiveGroup reports whether the named group is active in the solution.
func (s Solution) ActiveGroup(name string) bool {
	return lo.ContainsBy(s.Groups, func(g GroupSelection) bool {
		return g.Name == name
	})
}

func (s Solution) String() string {
	var b strings.Builder
	b.WriteString("GROUPS:\n")
	for _, g := range s.Groups {
		fmt.Fprintf(&b, "%s: %v\n", g.Name, g.Items)
	}
	return b.String()
}
