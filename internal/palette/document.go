package palette

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/amterp/swatch/internal/color"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/util"
	"github.com/amterp/swatch/internal/version"
)

// Meta returns the palette's provenance block, if any.
func (s *Store) Meta() *model.Meta {
	return s.meta
}

// SetMeta replaces the provenance block.
func (s *Store) SetMeta(m *model.Meta) {
	s.meta = m
}

// ToDocument converts the store to its persisted form.
func (s *Store) ToDocument() *model.Document {
	doc := &model.Document{
		Schema: version.CurrentPaletteSchema(),
		Meta:   s.meta,
		Cells:  make([]model.CellRecord, 0, len(s.order)),
		Groups: make(map[string][]int, len(s.groups)),
		NextID: s.nextID,
	}
	for _, c := range s.Cells() {
		doc.Cells = append(doc.Cells, model.CellRecord{
			ID:       c.ID,
			Color:    c.Color.Hex(),
			Name:     c.Name,
			Position: c.Position,
		})
	}
	for name, members := range s.groups {
		doc.Groups[name] = slices.Clone(members)
	}
	return doc
}

// FromDocument builds a store from a persisted document. The document is
// fully validated first; on failure a SerializationError naming path is
// returned and nothing is built.
func FromDocument(doc *model.Document, path string) (*Store, error) {
	if doc == nil {
		return nil, swerr.Corrupt(path, "empty document")
	}
	if err := version.CheckPaletteSchema(path, doc.Schema); err != nil {
		return nil, &swerr.SerializationError{Path: path, Message: "unsupported schema", Err: err}
	}

	records := slices.Clone(doc.Cells)
	slices.SortStableFunc(records, func(a, b model.CellRecord) int {
		return cmp.Compare(a.Position, b.Position)
	})

	s := New()
	s.meta = doc.Meta
	seenPos := make(map[int]bool, len(records))
	for _, rec := range records {
		if rec.ID < 1 {
			return nil, swerr.Corrupt(path, "cell id %d must be positive", rec.ID)
		}
		if _, dup := s.cells[rec.ID]; dup {
			return nil, swerr.Corrupt(path, "duplicate cell id %d", rec.ID)
		}
		if seenPos[rec.Position] {
			return nil, swerr.Corrupt(path, "cell %d: duplicate position %d", rec.ID, rec.Position)
		}
		seenPos[rec.Position] = true

		c, err := color.Parse(rec.Color)
		if err != nil {
			return nil, &swerr.SerializationError{Path: path, Message: fmt.Sprintf("cell %d", rec.ID), Err: err}
		}
		name := util.NormalizeName(rec.Name)
		if name != "" {
			if err := util.ValidateName(name); err != nil {
				return nil, &swerr.SerializationError{Path: path, Message: fmt.Sprintf("cell %d", rec.ID), Err: err}
			}
			if owner, taken := s.names[name]; taken {
				return nil, swerr.Corrupt(path, "cells %d and %d share the name %q", owner, rec.ID, name)
			}
			s.names[name] = rec.ID
		}
		s.cells[rec.ID] = &Cell{ID: rec.ID, Color: c, Name: name}
		s.order = append(s.order, rec.ID)
	}
	s.renumber()

	if max := doc.MaxID(); doc.NextID <= max {
		return nil, swerr.Corrupt(path, "next_id %d must exceed the largest cell id %d", doc.NextID, max)
	}
	s.nextID = doc.NextID

	for name, members := range doc.Groups {
		if err := util.ValidateGroupName(name); err != nil {
			return nil, &swerr.SerializationError{Path: path, Message: "group " + name, Err: err}
		}
		seen := make(map[int]bool, len(members))
		for _, id := range members {
			if _, ok := s.cells[id]; !ok {
				return nil, swerr.Corrupt(path, "group %q references missing cell %d", name, id)
			}
			if seen[id] {
				return nil, swerr.Corrupt(path, "group %q lists cell %d twice", name, id)
			}
			seen[id] = true
		}
		s.groups[name] = slices.Clone(members)
	}
	return s, nil
}
