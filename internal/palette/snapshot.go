package palette

import (
	"maps"
	"slices"
)

// Snapshot is a read-only copy of the palette handed to renderers and
// exporters. Mutating it never affects the store.
type Snapshot struct {
	Cells  []Cell
	Groups map[string][]int
}

// Snapshot copies the current cells and groups.
func (s *Store) Snapshot() Snapshot {
	groups := make(map[string][]int, len(s.groups))
	for name, members := range s.groups {
		groups[name] = slices.Clone(members)
	}
	return Snapshot{Cells: s.Cells(), Groups: groups}
}

// Select narrows the snapshot to the given ids, keeping display order.
// Groups are filtered to the surviving members.
func (sn Snapshot) Select(ids []int) Snapshot {
	keep := make(map[int]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	out := Snapshot{Groups: make(map[string][]int, len(sn.Groups))}
	for _, c := range sn.Cells {
		if keep[c.ID] {
			out.Cells = append(out.Cells, c)
		}
	}
	for name, members := range sn.Groups {
		out.Groups[name] = slices.DeleteFunc(slices.Clone(members), func(id int) bool { return !keep[id] })
	}
	return out
}

// GroupsOf returns the sorted group names containing id.
func (sn Snapshot) GroupsOf(id int) []string {
	var out []string
	for _, name := range slices.Sorted(maps.Keys(sn.Groups)) {
		if slices.Contains(sn.Groups[name], id) {
			out = append(out, name)
		}
	}
	return out
}
