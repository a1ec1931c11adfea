package palette

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amterp/swatch/internal/color"
	swerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/version"
)

func mustInsert(t *testing.T, s *Store, hex, name string) int {
	t.Helper()
	id := s.NextID()
	if _, err := s.InsertCell(Cell{ID: id, Color: color.MustParse(hex), Name: name}, s.Len()); err != nil {
		t.Fatalf("InsertCell(%s) failed: %v", hex, err)
	}
	return id
}

func TestStore_InsertCell_RenumbersPositions(t *testing.T) {
	s := New()
	a := mustInsert(t, s, "#ff0000", "red")
	b := mustInsert(t, s, "#0000ff", "")

	if _, err := s.InsertCell(Cell{ID: s.NextID(), Color: color.MustParse("#00ff00")}, 1); err != nil {
		t.Fatalf("InsertCell failed: %v", err)
	}

	if diff := cmp.Diff([]int{a, 3, b}, s.Order()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	for rank, c := range s.Cells() {
		if c.Position != rank {
			t.Errorf("cell %d has position %d, want %d", c.ID, c.Position, rank)
		}
	}
}

func TestStore_InsertCell_ClampsRank(t *testing.T) {
	s := New()
	mustInsert(t, s, "#ff0000", "")
	rank, err := s.InsertCell(Cell{ID: s.NextID(), Color: color.MustParse("#00ff00")}, 99)
	if err != nil {
		t.Fatalf("InsertCell failed: %v", err)
	}
	if rank != 1 {
		t.Errorf("Expected clamped rank 1, got %d", rank)
	}
}

func TestStore_InsertCell_Rejects(t *testing.T) {
	s := New()
	id := mustInsert(t, s, "#ff0000", "accent")

	tests := []struct {
		name string
		cell Cell
	}{
		{"zero id", Cell{ID: 0}},
		{"live id", Cell{ID: id}},
		{"duplicate name", Cell{ID: 10, Name: "accent"}},
		{"reserved name", Cell{ID: 11, Name: "@x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.InsertCell(tt.cell, 0)
			if !swerr.IsState(err) {
				t.Fatalf("Expected StateError, got %v", err)
			}
			if s.Len() != 1 {
				t.Errorf("failed insert changed the store: len=%d", s.Len())
			}
		})
	}
}

func TestStore_IDsNeverReissued(t *testing.T) {
	s := New()
	seen := map[int]bool{}
	for i := 0; i < 5; i++ {
		id := mustInsert(t, s, "#123456", "")
		if seen[id] {
			t.Fatalf("id %d issued twice", id)
		}
		seen[id] = true
		if _, err := s.RemoveCell(id); err != nil {
			t.Fatalf("RemoveCell failed: %v", err)
		}
	}
	if s.NextID() != 6 {
		t.Errorf("Expected next id 6, got %d", s.NextID())
	}
}

func TestStore_RemoveCell_CascadesPreservingOrder(t *testing.T) {
	s := New()
	a := mustInsert(t, s, "#ff0000", "a")
	b := mustInsert(t, s, "#00ff00", "b")
	c := mustInsert(t, s, "#0000ff", "c")
	if err := s.CreateGroup("warm"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddMembers("warm", []int{c, a, b}); err != nil {
		t.Fatal(err)
	}

	removed, err := s.RemoveCell(a)
	if err != nil {
		t.Fatalf("RemoveCell failed: %v", err)
	}

	members, _ := s.Group("warm")
	if diff := cmp.Diff([]int{c, b}, members); diff != "" {
		t.Errorf("group members mismatch (-want +got):\n%s", diff)
	}
	if _, ok := s.Lookup("a"); ok {
		t.Error("removed cell's name is still registered")
	}
	if diff := cmp.Diff([]Membership{{Group: "warm", Index: 1}}, removed.Memberships); diff != "" {
		t.Errorf("memberships mismatch (-want +got):\n%s", diff)
	}

	if err := s.RestoreCell(removed); err != nil {
		t.Fatalf("RestoreCell failed: %v", err)
	}
	members, _ = s.Group("warm")
	if diff := cmp.Diff([]int{c, a, b}, members); diff != "" {
		t.Errorf("restored members mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{a, b, c}, s.Order()); diff != "" {
		t.Errorf("restored order mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_DeleteGroupKeepsCells(t *testing.T) {
	s := New()
	a := mustInsert(t, s, "#ff0000", "")
	_ = s.CreateGroup("g")
	_, _ = s.AddMembers("g", []int{a})

	members, err := s.DeleteGroup("g")
	if err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if s.Len() != 1 {
		t.Error("deleting a group removed cells")
	}
	if err := s.RestoreGroup("g", members); err != nil {
		t.Fatalf("RestoreGroup failed: %v", err)
	}
	if got, _ := s.Group("g"); len(got) != 1 || got[0] != a {
		t.Errorf("Expected restored group [%d], got %v", a, got)
	}
}

func TestStore_CreateGroup_RejectsUnselectableNames(t *testing.T) {
	s := New()
	for _, name := range []string{"a+b", "x/y", "acc:1"} {
		if err := s.CreateGroup(name); !swerr.IsState(err) {
			t.Errorf("CreateGroup(%q): expected StateError, got %v", name, err)
		}
	}
	if len(s.GroupNames()) != 0 {
		t.Errorf("Expected no groups, got %v", s.GroupNames())
	}
}

func TestStore_AddMembers_SkipsExisting(t *testing.T) {
	s := New()
	a := mustInsert(t, s, "#ff0000", "")
	b := mustInsert(t, s, "#00ff00", "")
	_ = s.CreateGroup("g")
	_, _ = s.AddMembers("g", []int{a})

	added, err := s.AddMembers("g", []int{a, b, b})
	if err != nil {
		t.Fatalf("AddMembers failed: %v", err)
	}
	if diff := cmp.Diff([]int{b}, added); diff != "" {
		t.Errorf("added mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.AddMembers("g", []int{99}); !swerr.IsState(err) {
		t.Errorf("Expected StateError for dead id, got %v", err)
	}
}

func TestStore_Reorder(t *testing.T) {
	s := New()
	a := mustInsert(t, s, "#ff0000", "")
	b := mustInsert(t, s, "#00ff00", "")

	prev, err := s.Reorder([]int{b, a})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if diff := cmp.Diff([]int{a, b}, prev); diff != "" {
		t.Errorf("prev order mismatch (-want +got):\n%s", diff)
	}
	if c, _ := s.CellAt(0); c.ID != b {
		t.Errorf("Expected cell %d first, got %d", b, c.ID)
	}

	for _, bad := range [][]int{{a}, {a, a}, {a, 9}} {
		if _, err := s.Reorder(bad); !swerr.IsState(err) {
			t.Errorf("Reorder(%v) expected StateError, got %v", bad, err)
		}
	}
}

func TestStore_RenameCell(t *testing.T) {
	s := New()
	a := mustInsert(t, s, "#ff0000", "one")
	mustInsert(t, s, "#00ff00", "two")

	if _, err := s.RenameCell(a, "two"); !swerr.IsState(err) {
		t.Fatalf("Expected StateError renaming onto a taken name, got %v", err)
	}

	old, err := s.RenameCell(a, "  uno ")
	if err != nil {
		t.Fatalf("RenameCell failed: %v", err)
	}
	if old != "one" {
		t.Errorf("Expected old name one, got %q", old)
	}
	if c, ok := s.Lookup("uno"); !ok || c.ID != a {
		t.Error("Expected lookup by new name to succeed")
	}

	if _, err := s.RenameCell(a, ""); err != nil {
		t.Fatalf("clearing name failed: %v", err)
	}
	if _, ok := s.Lookup("uno"); ok {
		t.Error("cleared name still resolves")
	}
}

func TestStore_DocumentRoundTrip(t *testing.T) {
	s := New()
	a := mustInsert(t, s, "#ff0000", "red")
	mustInsert(t, s, "#00ff0080", "")
	_ = s.CreateGroup("warm")
	_, _ = s.AddMembers("warm", []int{a})
	s.SetMeta(&model.Meta{ID: "p_1", CreatedAtMillis: 42})

	doc := s.ToDocument()
	back, err := FromDocument(doc, "mem")
	if err != nil {
		t.Fatalf("FromDocument failed: %v", err)
	}
	if diff := cmp.Diff(doc, back.ToDocument()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromDocument_SortsByPosition(t *testing.T) {
	doc := &model.Document{
		Schema: version.CurrentPaletteSchema(),
		Cells: []model.CellRecord{
			{ID: 2, Color: "#00ff00", Position: 5},
			{ID: 1, Color: "#ff0000", Position: 3},
		},
		NextID: 3,
	}
	s, err := FromDocument(doc, "mem")
	if err != nil {
		t.Fatalf("FromDocument failed: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, s.Order()); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if c, _ := s.Cell(2); c.Position != 1 {
		t.Errorf("Expected renumbered position 1, got %d", c.Position)
	}
}

func TestFromDocument_Invalid(t *testing.T) {
	valid := func() *model.Document {
		return &model.Document{
			Schema: version.CurrentPaletteSchema(),
			Cells: []model.CellRecord{
				{ID: 1, Color: "#ff0000", Name: "red", Position: 0},
				{ID: 2, Color: "#00ff00", Position: 1},
			},
			Groups: map[string][]int{"g": {1, 2}},
			NextID: 3,
		}
	}

	tests := []struct {
		name   string
		mutate func(d *model.Document)
	}{
		{"missing schema", func(d *model.Document) { d.Schema = "" }},
		{"future schema", func(d *model.Document) { d.Schema = "palette/9" }},
		{"duplicate id", func(d *model.Document) { d.Cells[1].ID = 1 }},
		{"non-positive id", func(d *model.Document) { d.Cells[0].ID = 0 }},
		{"next_id too small", func(d *model.Document) { d.NextID = 2 }},
		{"dangling group ref", func(d *model.Document) { d.Groups["g"] = []int{1, 7} }},
		{"duplicate group member", func(d *model.Document) { d.Groups["g"] = []int{1, 1} }},
		{"bad color", func(d *model.Document) { d.Cells[0].Color = "#zzzzzz" }},
		{"duplicate name", func(d *model.Document) { d.Cells[1].Name = "red" }},
		{"duplicate position", func(d *model.Document) { d.Cells[1].Position = 0 }},
		{"bad group name", func(d *model.Document) { d.Groups["1bad"] = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := valid()
			tt.mutate(doc)
			_, err := FromDocument(doc, "p.json")
			if !swerr.IsSerialization(err) {
				t.Fatalf("Expected SerializationError, got %v", err)
			}
		})
	}
}

func TestSnapshot_SelectIsDetached(t *testing.T) {
	s := New()
	a := mustInsert(t, s, "#ff0000", "")
	b := mustInsert(t, s, "#00ff00", "")
	_ = s.CreateGroup("g")
	_, _ = s.AddMembers("g", []int{a, b})

	snap := s.Snapshot().Select([]int{b})
	if len(snap.Cells) != 1 || snap.Cells[0].ID != b {
		t.Fatalf("Expected only cell %d, got %+v", b, snap.Cells)
	}
	if diff := cmp.Diff([]int{b}, snap.Groups["g"]); diff != "" {
		t.Errorf("group filter mismatch (-want +got):\n%s", diff)
	}

	snap.Groups["g"][0] = 99
	if members, _ := s.Group("g"); members[1] != b {
		t.Error("mutating a snapshot changed the store")
	}
}
