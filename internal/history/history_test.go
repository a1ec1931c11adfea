package history

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amterp/swatch/internal/color"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/palette"
)

// insertOp is a minimal Operation for exercising the stacks.
type insertOp struct {
	id  int
	hex string
}

func (o *insertOp) Apply(s *palette.Store) error {
	_, err := s.InsertCell(palette.Cell{ID: o.id, Color: color.MustParse(o.hex)}, s.Len())
	return err
}

func (o *insertOp) Revert(s *palette.Store) error {
	_, err := s.RemoveCell(o.id)
	return err
}

func (o *insertOp) Describe() string { return "insert " + o.hex }

// failingOp always fails to apply.
type failingOp struct{}

func (failingOp) Apply(*palette.Store) error  { return swerr.State("boom") }
func (failingOp) Revert(*palette.Store) error { return nil }
func (failingOp) Describe() string            { return "fail" }

func colors(s *palette.Store) []string {
	var out []string
	for _, c := range s.Cells() {
		out = append(out, c.Color.Hex())
	}
	return out
}

func exec(t *testing.T, h *History, s *palette.Store, hex string) {
	t.Helper()
	if err := h.Execute(s, &insertOp{id: s.NextID(), hex: hex}); err != nil {
		t.Fatalf("Execute(%s) failed: %v", hex, err)
	}
}

func TestHistory_UndoRedoSymmetry(t *testing.T) {
	s := palette.New()
	h := New()
	for _, hex := range []string{"#ff0000", "#00ff00", "#0000ff"} {
		exec(t, h, s, hex)
	}
	before := s.ToDocument()

	if n, err := h.Undo(s, 3); err != nil || n != 3 {
		t.Fatalf("Undo(3) = %d, %v", n, err)
	}
	if s.Len() != 0 {
		t.Fatalf("Expected empty palette after undo, got %v", colors(s))
	}
	if n, err := h.Redo(s, 3); err != nil || n != 3 {
		t.Fatalf("Redo(3) = %d, %v", n, err)
	}
	if diff := cmp.Diff(before, s.ToDocument()); diff != "" {
		t.Errorf("palette differs after undo+redo (-want +got):\n%s", diff)
	}
}

func TestHistory_RedoReplaysForward(t *testing.T) {
	s := palette.New()
	h := New()
	exec(t, h, s, "#ff0000")
	exec(t, h, s, "#00ff00")
	exec(t, h, s, "#0000ff")

	_, _ = h.Undo(s, 2)
	if n, _ := h.Redo(s, 1); n != 1 {
		t.Fatalf("Expected one redo, got %d", n)
	}
	if diff := cmp.Diff([]string{"#ff0000", "#00ff00"}, colors(s)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if u, r := h.Depths(); u != 2 || r != 1 {
		t.Errorf("Expected depths 2/1, got %d/%d", u, r)
	}
}

func TestHistory_NewOperationClearsRedo(t *testing.T) {
	s := palette.New()
	h := New()
	exec(t, h, s, "#ff0000")
	exec(t, h, s, "#0000ff")
	_, _ = h.Undo(s, 1)
	exec(t, h, s, "#00ff00")

	n, err := h.Redo(s, 1)
	if n != 0 {
		t.Errorf("Expected zero redos, got %d", n)
	}
	if !swerr.IsHistory(err) {
		t.Errorf("Expected HistoryError, got %v", err)
	}
	if diff := cmp.Diff([]string{"#ff0000", "#00ff00"}, colors(s)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_UndoPastDepth(t *testing.T) {
	s := palette.New()
	h := New()
	exec(t, h, s, "#ff0000")
	exec(t, h, s, "#00ff00")

	n, err := h.Undo(s, 5)
	if n != 2 {
		t.Errorf("Expected 2 undos performed, got %d", n)
	}
	var he *swerr.HistoryError
	if !errors.As(err, &he) {
		t.Fatalf("Expected HistoryError, got %v", err)
	}
	if he.Requested != 5 || he.Performed != 2 {
		t.Errorf("Unexpected report: %+v", he)
	}
	if s.Len() != 0 {
		t.Error("Expected performed undos to stay applied")
	}
}

func TestHistory_ZeroCountIsNoop(t *testing.T) {
	s := palette.New()
	h := New()
	exec(t, h, s, "#ff0000")
	if n, err := h.Undo(s, 0); n != 0 || err != nil {
		t.Errorf("Undo(0) = %d, %v", n, err)
	}
	if s.Len() != 1 {
		t.Error("Undo(0) changed the palette")
	}
}

func TestHistory_FailedExecuteRecordsNothing(t *testing.T) {
	s := palette.New()
	h := New()
	exec(t, h, s, "#ff0000")
	_, _ = h.Undo(s, 1)

	if err := h.Execute(s, failingOp{}); !swerr.IsState(err) {
		t.Fatalf("Expected StateError, got %v", err)
	}
	if u, r := h.Depths(); u != 0 || r != 1 {
		t.Errorf("Expected depths 0/1 after failed execute, got %d/%d", u, r)
	}
}

func TestHistory_RestoreAndClear(t *testing.T) {
	op := &insertOp{id: 1, hex: "#ff0000"}
	h := Restore([]Operation{op}, nil)

	undo, redo := h.Stacks()
	if len(undo) != 1 || undo[0] != op || len(redo) != 0 {
		t.Fatalf("Unexpected stacks: %v / %v", undo, redo)
	}
	h.Clear()
	if u, r := h.Depths(); u != 0 || r != 0 {
		t.Errorf("Expected empty history after Clear, got %d/%d", u, r)
	}
}
