// Package palette holds the in-memory palette: cells ordered by display rank,
// named groups of cell ids, and the id counter.
//
// Mutators are primitive and know nothing about history. Each one validates
// before changing anything, keeps the invariants below, and returns the prior
// state its caller needs to build an inverse:
//   - cell ids are unique while live and never reissued (NextID only grows)
//   - group members are always live cells, in a stable order
//   - Position is the cell's 0-based rank in display order
package palette

import (
	"slices"
	"sort"

	"github.com/amterp/swatch/internal/color"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/util"
)

// Cell is a single palette entry.
type Cell struct {
	ID       int         `json:"id"`
	Color    color.Color `json:"color"`
	Name     string      `json:"name,omitempty"`
	Position int         `json:"position"`
}

// Membership records where a cell sat inside a group.
type Membership struct {
	Group string `json:"group"`
	Index int    `json:"index"`
}

// Removed is everything needed to put a removed cell back exactly.
// Cell.Position holds the rank the cell had.
type Removed struct {
	Cell        Cell         `json:"cell"`
	Memberships []Membership `json:"memberships,omitempty"`
}

// Store is the palette data model. It is not safe for concurrent use.
type Store struct {
	order  []int
	cells  map[int]*Cell
	names  map[string]int
	groups map[string][]int
	nextID int
	meta   *model.Meta
}

// New creates an empty palette. The first issued id is 1.
func New() *Store {
	return &Store{
		cells:  make(map[int]*Cell),
		names:  make(map[string]int),
		groups: make(map[string][]int),
		nextID: 1,
	}
}

// Len returns the number of live cells.
func (s *Store) Len() int {
	return len(s.order)
}

// NextID returns the id the next inserted cell should take.
func (s *Store) NextID() int {
	return s.nextID
}

// Order returns live cell ids in display order.
func (s *Store) Order() []int {
	return slices.Clone(s.order)
}

// Cell returns the live cell with the given id.
func (s *Store) Cell(id int) (Cell, bool) {
	c, ok := s.cells[id]
	if !ok {
		return Cell{}, false
	}
	return *c, true
}

// CellAt returns the cell at a display rank.
func (s *Store) CellAt(rank int) (Cell, bool) {
	if rank < 0 || rank >= len(s.order) {
		return Cell{}, false
	}
	return *s.cells[s.order[rank]], true
}

// Lookup finds a cell by name.
func (s *Store) Lookup(name string) (Cell, bool) {
	id, ok := s.names[util.NormalizeName(name)]
	if !ok {
		return Cell{}, false
	}
	return *s.cells[id], true
}

// Cells returns copies of all live cells in display order.
func (s *Store) Cells() []Cell {
	out := make([]Cell, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.cells[id])
	}
	return out
}

// Group returns a copy of a group's member ids.
func (s *Store) Group(name string) ([]int, bool) {
	members, ok := s.groups[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(members), true
}

// GroupNames returns all group names, sorted.
func (s *Store) GroupNames() []string {
	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupsOf returns the sorted names of the groups containing id.
func (s *Store) GroupsOf(id int) []string {
	var out []string
	for _, name := range s.GroupNames() {
		if slices.Contains(s.groups[name], id) {
			out = append(out, name)
		}
	}
	return out
}

// InsertCell adds c at the given rank, clamped to [0, Len()]. The cell keeps
// its id, so redoing an insert restores the same cell. Returns the rank used.
func (s *Store) InsertCell(c Cell, rank int) (int, error) {
	if c.ID < 1 {
		return 0, swerr.State("cell id must be positive, got %d", c.ID)
	}
	if _, live := s.cells[c.ID]; live {
		return 0, swerr.State("cell id %d is already live", c.ID)
	}
	if c.Name != "" {
		c.Name = util.NormalizeName(c.Name)
		if err := util.ValidateName(c.Name); err != nil {
			return 0, swerr.State("%v", err)
		}
		if _, taken := s.names[c.Name]; taken {
			return 0, swerr.NameInUse(c.Name)
		}
	}

	rank = clamp(rank, 0, len(s.order))
	s.order = slices.Insert(s.order, rank, c.ID)
	cell := c
	s.cells[c.ID] = &cell
	if c.Name != "" {
		s.names[c.Name] = c.ID
	}
	if c.ID >= s.nextID {
		s.nextID = c.ID + 1
	}
	s.renumber()
	return rank, nil
}

// RemoveCell deletes a cell and cascades it out of every group.
func (s *Store) RemoveCell(id int) (Removed, error) {
	cell, ok := s.cells[id]
	if !ok {
		return Removed{}, swerr.CellNotFound(id)
	}

	removed := Removed{Cell: *cell}
	for _, name := range s.GroupNames() {
		members := s.groups[name]
		if idx := slices.Index(members, id); idx >= 0 {
			removed.Memberships = append(removed.Memberships, Membership{Group: name, Index: idx})
			s.groups[name] = slices.Delete(members, idx, idx+1)
		}
	}

	s.order = slices.Delete(s.order, cell.Position, cell.Position+1)
	delete(s.cells, id)
	if cell.Name != "" {
		delete(s.names, cell.Name)
	}
	s.renumber()
	return removed, nil
}

// RestoreCell reverses RemoveCell: the cell returns at its old rank and to
// its old index in each group it belonged to.
func (s *Store) RestoreCell(r Removed) error {
	for _, m := range r.Memberships {
		if _, ok := s.groups[m.Group]; !ok {
			return swerr.GroupNotFound(m.Group)
		}
	}
	if _, err := s.InsertCell(r.Cell, r.Cell.Position); err != nil {
		return err
	}
	for _, m := range r.Memberships {
		members := s.groups[m.Group]
		s.groups[m.Group] = slices.Insert(members, clamp(m.Index, 0, len(members)), r.Cell.ID)
	}
	return nil
}

// Reorder replaces the display order. order must be a permutation of the
// live ids. Returns the previous order.
func (s *Store) Reorder(order []int) ([]int, error) {
	if len(order) != len(s.order) {
		return nil, swerr.State("reorder lists %d cells, palette has %d", len(order), len(s.order))
	}
	seen := make(map[int]bool, len(order))
	for _, id := range order {
		if _, ok := s.cells[id]; !ok {
			return nil, swerr.CellNotFound(id)
		}
		if seen[id] {
			return nil, swerr.State("reorder lists cell %d twice", id)
		}
		seen[id] = true
	}

	prev := s.order
	s.order = slices.Clone(order)
	s.renumber()
	return prev, nil
}

// RenameCell sets or clears (empty name) a cell's name. Returns the old name.
func (s *Store) RenameCell(id int, name string) (string, error) {
	cell, ok := s.cells[id]
	if !ok {
		return "", swerr.CellNotFound(id)
	}
	name = util.NormalizeName(name)
	if name != "" {
		if err := util.ValidateName(name); err != nil {
			return "", swerr.State("%v", err)
		}
		if owner, taken := s.names[name]; taken && owner != id {
			return "", swerr.NameInUse(name)
		}
	}

	old := cell.Name
	if old != "" {
		delete(s.names, old)
	}
	cell.Name = name
	if name != "" {
		s.names[name] = id
	}
	return old, nil
}

// SetColor replaces a cell's color. Returns the old color.
func (s *Store) SetColor(id int, c color.Color) (color.Color, error) {
	cell, ok := s.cells[id]
	if !ok {
		return color.Color{}, swerr.CellNotFound(id)
	}
	old := cell.Color
	cell.Color = c
	return old, nil
}

// CreateGroup adds an empty group.
func (s *Store) CreateGroup(name string) error {
	if err := util.ValidateGroupName(name); err != nil {
		return swerr.State("%v", err)
	}
	if _, exists := s.groups[name]; exists {
		return swerr.State("group %q already exists", name)
	}
	s.groups[name] = []int{}
	return nil
}

// DeleteGroup removes a group. Cells are untouched. Returns the members.
func (s *Store) DeleteGroup(name string) ([]int, error) {
	members, ok := s.groups[name]
	if !ok {
		return nil, swerr.GroupNotFound(name)
	}
	delete(s.groups, name)
	return members, nil
}

// RestoreGroup recreates a deleted group with its members in order.
func (s *Store) RestoreGroup(name string, members []int) error {
	if _, exists := s.groups[name]; exists {
		return swerr.State("group %q already exists", name)
	}
	for _, id := range members {
		if _, ok := s.cells[id]; !ok {
			return swerr.CellNotFound(id)
		}
	}
	s.groups[name] = slices.Clone(members)
	return nil
}

// AddMembers appends ids to a group, skipping ones already present. Returns
// the ids actually added, in order.
func (s *Store) AddMembers(name string, ids []int) ([]int, error) {
	members, ok := s.groups[name]
	if !ok {
		return nil, swerr.GroupNotFound(name)
	}
	for _, id := range ids {
		if _, live := s.cells[id]; !live {
			return nil, swerr.CellNotFound(id)
		}
	}

	var added []int
	for _, id := range ids {
		if slices.Contains(members, id) || slices.Contains(added, id) {
			continue
		}
		added = append(added, id)
	}
	s.groups[name] = append(members, added...)
	return added, nil
}

// RemoveMembers drops ids from a group. Ids that are not members are ignored.
func (s *Store) RemoveMembers(name string, ids []int) error {
	members, ok := s.groups[name]
	if !ok {
		return swerr.GroupNotFound(name)
	}
	s.groups[name] = slices.DeleteFunc(slices.Clone(members), func(id int) bool {
		return slices.Contains(ids, id)
	})
	return nil
}

func (s *Store) renumber() {
	for rank, id := range s.order {
		s.cells[id].Position = rank
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
