// Package history is the two-stack undo/redo log. It is unbounded: nothing is
// ever evicted.
package history

import (
	"fmt"

	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/palette"
)

// Operation is one applied, invertible edit. Apply must be repeatable after
// Revert, leaving the store exactly as the first Apply did.
type Operation interface {
	Apply(s *palette.Store) error
	Revert(s *palette.Store) error
	Describe() string
}

// History holds past operations (undo) and undone ones (redo), most recent
// last on both stacks.
type History struct {
	undo []Operation
	redo []Operation
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Restore rebuilds a history from persisted stacks, oldest first.
func Restore(undo, redo []Operation) *History {
	return &History{undo: undo, redo: redo}
}

// Execute applies op and records it. A failed apply records nothing.
func (h *History) Execute(s *palette.Store, op Operation) error {
	if err := op.Apply(s); err != nil {
		return err
	}
	h.Record(op)
	return nil
}

// Record pushes an operation that was already applied. Any pending redo is
// discarded.
func (h *History) Record(op Operation) {
	h.undo = append(h.undo, op)
	h.redo = nil
}

// Undo reverts up to n operations, most recent first. It returns how many
// were reverted; when fewer than n were available the error is a
// HistoryError and the reverted ones stay reverted.
func (h *History) Undo(s *palette.Store, n int) (int, error) {
	done := 0
	for done < n {
		if len(h.undo) == 0 {
			return done, &swerr.HistoryError{Action: "undo", Requested: n, Performed: done}
		}
		op := h.undo[len(h.undo)-1]
		if err := op.Revert(s); err != nil {
			return done, fmt.Errorf("undo %s: %w", op.Describe(), err)
		}
		h.undo = h.undo[:len(h.undo)-1]
		h.redo = append(h.redo, op)
		done++
	}
	return done, nil
}

// Redo reapplies up to n undone operations in their original order.
func (h *History) Redo(s *palette.Store, n int) (int, error) {
	done := 0
	for done < n {
		if len(h.redo) == 0 {
			return done, &swerr.HistoryError{Action: "redo", Requested: n, Performed: done}
		}
		op := h.redo[len(h.redo)-1]
		if err := op.Apply(s); err != nil {
			return done, fmt.Errorf("redo %s: %w", op.Describe(), err)
		}
		h.redo = h.redo[:len(h.redo)-1]
		h.undo = append(h.undo, op)
		done++
	}
	return done, nil
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// Depths returns the number of undoable and redoable operations.
func (h *History) Depths() (undo, redo int) {
	return len(h.undo), len(h.redo)
}

// Stacks returns both stacks, oldest first. The slices are copies.
func (h *History) Stacks() (undo, redo []Operation) {
	return append([]Operation(nil), h.undo...), append([]Operation(nil), h.redo...)
}
