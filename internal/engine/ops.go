package engine

import (
	"fmt"
	"slices"

	"github.com/amterp/swatch/internal/color"
	"github.com/amterp/swatch/internal/history"
	"github.com/amterp/swatch/internal/palette"
)

// Every command that edits the palette collapses into exactly one of these,
// however many cells it touches, so one undo reverts one command.

type insertOp struct {
	Cell palette.Cell `json:"cell"`
	Rank int          `json:"rank"`
}

func (o *insertOp) Apply(s *palette.Store) error {
	_, err := s.InsertCell(o.Cell, o.Rank)
	return err
}

func (o *insertOp) Revert(s *palette.Store) error {
	_, err := s.RemoveCell(o.Cell.ID)
	return err
}

func (o *insertOp) Describe() string {
	if o.Cell.Name != "" {
		return fmt.Sprintf("insert %s %q at %d", o.Cell.Color, o.Cell.Name, o.Rank)
	}
	return fmt.Sprintf("insert %s at %d", o.Cell.Color, o.Rank)
}

// deleteOp removes cells one at a time and captures each removal, so the
// revert can put groups and ranks back exactly.
type deleteOp struct {
	IDs     []int             `json:"ids"`
	Removed []palette.Removed `json:"removed"`
}

func (o *deleteOp) Apply(s *palette.Store) error {
	removed := make([]palette.Removed, 0, len(o.IDs))
	for _, id := range o.IDs {
		r, err := s.RemoveCell(id)
		if err != nil {
			_ = restoreAll(s, removed)
			return err
		}
		removed = append(removed, r)
	}
	o.Removed = removed
	return nil
}

func (o *deleteOp) Revert(s *palette.Store) error {
	return restoreAll(s, o.Removed)
}

func restoreAll(s *palette.Store, removed []palette.Removed) error {
	for i := len(removed) - 1; i >= 0; i-- {
		if err := s.RestoreCell(removed[i]); err != nil {
			return err
		}
	}
	return nil
}

func (o *deleteOp) Describe() string {
	return fmt.Sprintf("delete %s", plural(len(o.IDs), "cell"))
}

type reorderOp struct {
	Before []int `json:"before"`
	After  []int `json:"after"`
}

func (o *reorderOp) Apply(s *palette.Store) error {
	_, err := s.Reorder(o.After)
	return err
}

func (o *reorderOp) Revert(s *palette.Store) error {
	_, err := s.Reorder(o.Before)
	return err
}

func (o *reorderOp) Describe() string {
	moved := 0
	for i := range o.Before {
		if o.Before[i] != o.After[i] {
			moved++
		}
	}
	return fmt.Sprintf("move (%s changed rank)", plural(moved, "cell"))
}

// moveBlock returns order with the selected ids, kept in their relative
// order, placed as one block starting at rank to of the result.
func moveBlock(order, selected []int, to int) []int {
	pick := make(map[int]bool, len(selected))
	for _, id := range selected {
		pick[id] = true
	}
	var block, rest []int
	for _, id := range order {
		if pick[id] {
			block = append(block, id)
		} else {
			rest = append(rest, id)
		}
	}
	to = max(0, min(to, len(rest)))
	return slices.Concat(rest[:to], block, rest[to:])
}

type renameOp struct {
	ID  int    `json:"id"`
	Old string `json:"old"`
	New string `json:"new"`
}

func (o *renameOp) Apply(s *palette.Store) error {
	_, err := s.RenameCell(o.ID, o.New)
	return err
}

func (o *renameOp) Revert(s *palette.Store) error {
	_, err := s.RenameCell(o.ID, o.Old)
	return err
}

func (o *renameOp) Describe() string {
	if o.New == "" {
		return fmt.Sprintf("clear name %q", o.Old)
	}
	return fmt.Sprintf("rename to %q", o.New)
}

type setColorsOp struct {
	Attr string        `json:"attr"`
	IDs  []int         `json:"ids"`
	Old  []color.Color `json:"old"`
	New  []color.Color `json:"new"`
}

func (o *setColorsOp) Apply(s *palette.Store) error {
	return o.assign(s, o.New, o.Old)
}

func (o *setColorsOp) Revert(s *palette.Store) error {
	return o.assign(s, o.Old, o.New)
}

// assign sets every cell to to[i]; on failure it puts back from[i] for the
// cells already changed.
func (o *setColorsOp) assign(s *palette.Store, to, from []color.Color) error {
	for i, id := range o.IDs {
		if _, err := s.SetColor(id, to[i]); err != nil {
			for j := 0; j < i; j++ {
				_, _ = s.SetColor(o.IDs[j], from[j])
			}
			return err
		}
	}
	return nil
}

func (o *setColorsOp) Describe() string {
	return fmt.Sprintf("set %s on %s", o.Attr, plural(len(o.IDs), "cell"))
}

type groupAddOp struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
	Added   []int  `json:"added"`
}

func (o *groupAddOp) Apply(s *palette.Store) error {
	if o.Created {
		if err := s.CreateGroup(o.Name); err != nil {
			return err
		}
	}
	if _, err := s.AddMembers(o.Name, o.Added); err != nil {
		if o.Created {
			_, _ = s.DeleteGroup(o.Name)
		}
		return err
	}
	return nil
}

func (o *groupAddOp) Revert(s *palette.Store) error {
	if o.Created {
		_, err := s.DeleteGroup(o.Name)
		return err
	}
	return s.RemoveMembers(o.Name, o.Added)
}

func (o *groupAddOp) Describe() string {
	return fmt.Sprintf("group %s into @%s", plural(len(o.Added), "cell"), o.Name)
}

type ungroupOp struct {
	Name    string `json:"name"`
	Members []int  `json:"members"`
}

func (o *ungroupOp) Apply(s *palette.Store) error {
	_, err := s.DeleteGroup(o.Name)
	return err
}

func (o *ungroupOp) Revert(s *palette.Store) error {
	return s.RestoreGroup(o.Name, o.Members)
}

func (o *ungroupOp) Describe() string {
	return fmt.Sprintf("ungroup @%s", o.Name)
}

var (
	_ history.Operation = (*insertOp)(nil)
	_ history.Operation = (*deleteOp)(nil)
	_ history.Operation = (*reorderOp)(nil)
	_ history.Operation = (*renameOp)(nil)
	_ history.Operation = (*setColorsOp)(nil)
	_ history.Operation = (*groupAddOp)(nil)
	_ history.Operation = (*ungroupOp)(nil)
)

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
