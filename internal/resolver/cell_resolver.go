package resolver

import (
	"fmt"
	"slices"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/palette"
	"github.com/amterp/swatch/internal/script"
)

// CellSource is the read side of the palette the resolver needs.
type CellSource interface {
	Len() int
	Order() []int
	CellAt(rank int) (palette.Cell, bool)
	Lookup(name string) (palette.Cell, bool)
	Group(name string) ([]int, bool)
}

var _ CellSource = (*palette.Store)(nil)

// CellResolver turns selectors into cell ids against the current palette.
type CellResolver struct {
	cells CellSource
}

// NewCellResolver creates a new cell resolver.
func NewCellResolver(cells CellSource) *CellResolver {
	return &CellResolver{cells: cells}
}

// Resolve returns the selected ids in display order, each at most once. The
// result may be empty for an empty group, an empty palette, or a range past
// the last cell; callers decide whether that is an error. A name, group or
// single index that does not exist is always an error, also inside a list.
func (r *CellResolver) Resolve(sel script.Selector) ([]int, error) {
	switch sel.Kind {
	case script.SelectIndex:
		c, ok := r.cells.CellAt(sel.Index)
		if !ok {
			return nil, swerr.Unresolved(sel.String(),
				fmt.Sprintf("index out of range (palette has %d cells)", r.cells.Len()))
		}
		return []int{c.ID}, nil

	case script.SelectRange:
		order := r.cells.Order()
		lo := min(sel.Lo, len(order))
		hi := min(sel.Hi+1, len(order))
		return slices.Clone(order[lo:hi]), nil

	case script.SelectName:
		c, ok := r.cells.Lookup(sel.Name)
		if !ok {
			return nil, swerr.Unresolved(sel.String(), "no cell with that name")
		}
		return []int{c.ID}, nil

	case script.SelectGroup:
		members, ok := r.cells.Group(sel.Name)
		if !ok {
			return nil, swerr.Unresolved(sel.String(), "no such group")
		}
		return r.inDisplayOrder(members), nil

	case script.SelectGroupIndex:
		members, ok := r.cells.Group(sel.Name)
		if !ok {
			return nil, swerr.Unresolved(sel.String(), "no such group")
		}
		if sel.Index < 0 || sel.Index >= len(members) {
			return nil, swerr.Unresolved(sel.String(),
				fmt.Sprintf("index out of range (group has %d cells)", len(members)))
		}
		return []int{members[sel.Index]}, nil

	case script.SelectGroupRange:
		members, ok := r.cells.Group(sel.Name)
		if !ok {
			return nil, swerr.Unresolved(sel.String(), "no such group")
		}
		lo := min(sel.Lo, len(members))
		hi := min(sel.Hi+1, len(members))
		return r.inDisplayOrder(members[lo:hi]), nil

	case script.SelectList:
		var union []int
		for _, part := range sel.Parts {
			ids, err := r.Resolve(part)
			if err != nil {
				return nil, err
			}
			union = append(union, ids...)
		}
		return r.inDisplayOrder(union), nil

	case script.SelectAll:
		return r.cells.Order(), nil
	}
	return nil, swerr.Unresolved(sel.String(), "unknown selector")
}

// ResolveAny is Resolve where an empty match is an error.
func (r *CellResolver) ResolveAny(sel script.Selector) ([]int, error) {
	ids, err := r.Resolve(sel)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, swerr.Unresolved(sel.String(), "matched no cells")
	}
	return ids, nil
}

// ResolveOne is Resolve where anything but exactly one match is an error.
func (r *CellResolver) ResolveOne(sel script.Selector) (int, error) {
	ids, err := r.ResolveAny(sel)
	if err != nil {
		return 0, err
	}
	if len(ids) > 1 {
		return 0, swerr.Ambiguous(sel.String(), len(ids))
	}
	return ids[0], nil
}

func (r *CellResolver) inDisplayOrder(ids []int) []int {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]int, 0, len(ids))
	for _, id := range r.cells.Order() {
		if want[id] {
			out = append(out, id)
		}
	}
	return out
}
