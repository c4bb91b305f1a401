package model

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/groupsolver/grouper/internal/config"
)

// LookupError reports a name reference that does not resolve against the
// canonical item or group universe. It is a fatal configuration error.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("name %q not found", e.Name)
}

// Group is a named subset of the item universe. Members holds item indices,
// strictly ascending and duplicate-free.
type Group struct {
	Name    string
	Members []int
}

// Model is the canonical, immutable form of a selection problem. Items and
// Groups are sorted by name so every name reference can be resolved by
// binary search, and so variable order is deterministic across runs. All
// index lists are kept strictly ascending.
type Model struct {
	Items        []string
	Groups       []Group
	AvoidSets    [][]int
	IgnoreGroups []int
}

// Build canonicalizes a raw config into a Model. Any item or group name
// that fails to resolve aborts the build with a *LookupError.
func Build(cfg *config.Config) (*Model, error) {
	items := lo.Uniq(cfg.Names)
	sort.Strings(items)

	m := &Model{Items: items}

	for name, members := range cfg.Groups {
		indices, err := m.resolveItems(members)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", name, err)
		}
		m.Groups = append(m.Groups, Group{Name: name, Members: indices})
	}
	slices.SortFunc(m.Groups, func(a, b Group) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, avoid := range cfg.AvoidSets() {
		indices, err := m.resolveItems(avoid)
		if err != nil {
			return nil, fmt.Errorf("avoid-grouping: %w", err)
		}
		m.AvoidSets = append(m.AvoidSets, indices)
	}
	slices.SortFunc(m.AvoidSets, slices.Compare)

	for _, name := range cfg.IgnoredGroups() {
		index, ok := m.GroupIndex(name)
		if !ok {
			return nil, fmt.Errorf("ignore-group: %w", &LookupError{Name: name})
		}
		m.IgnoreGroups = append(m.IgnoreGroups, index)
	}
	slices.Sort(m.IgnoreGroups)
	m.IgnoreGroups = slices.Compact(m.IgnoreGroups)

	return m, nil
}

// ItemIndex resolves an item name against the canonical item array.
func (m *Model) ItemIndex(name string) (int, bool) {
	i := sort.SearchStrings(m.Items, name)
	if i < len(m.Items) && m.Items[i] == name {
		return i, true
	}
	return 0, false
}

// GroupIndex resolves a group name against the canonical group array.
func (m *Model) GroupIndex(name string) (int, bool) {
	i := sort.Search(len(m.Groups), func(i int) bool {
		return m.Groups[i].Name >= name
	})
	if i < len(m.Groups) && m.Groups[i].Name == name {
		return i, true
	}
	return 0, false
}

// GroupsOf returns the indices of every group containing item index i,
// ascending.
func (m *Model) GroupsOf(i int) []int {
	var out []int
	for gi := range m.Groups {
		if _, ok := slices.BinarySearch(m.Groups[gi].Members, i); ok {
			out = append(out, gi)
		}
	}
	return out
}

// resolveItems maps item names to a strictly ascending, duplicate-free
// index list. Duplicate names within one list collapse to a single index.
func (m *Model) resolveItems(names []string) ([]int, error) {
	indices := make([]int, 0, len(names))
	for _, name := range names {
		index, ok := m.ItemIndex(name)
		if !ok {
			return nil, &LookupError{Name: name}
		}
		indices = append(indices, index)
	}
	slices.Sort(indices)
	return slices.Compact(indices), nil
}
