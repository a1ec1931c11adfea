package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/amterp/swatch/internal/color"
	"github.com/amterp/swatch/internal/palette"
)

func testSnapshot() palette.Snapshot {
	return palette.Snapshot{
		Cells: []palette.Cell{
			{ID: 1, Color: color.MustParse("#ff0000"), Name: "accent", Position: 0},
			{ID: 2, Color: color.MustParse("#0000ff80"), Position: 1},
			{ID: 5, Color: color.MustParse("white"), Name: "paper", Position: 2},
		},
		Groups: map[string][]int{"warm": {1}, "all": {1, 2, 5}},
	}
}

// A bytes.Buffer is not a terminal, so output carries no escape codes.
func TestRenderer_List(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf).List(testSnapshot()); err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{
		"0  ██  #ff0000  accent  @all @warm",
		"1  ██  #0000ff80" + strings.Repeat(" ", 10) + "@all",
		"2  ██  #ffffff  paper   @all",
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_ListWithoutNamesOrGroups(t *testing.T) {
	snap := palette.Snapshot{Cells: []palette.Cell{{ID: 1, Color: color.MustParse("#123456"), Position: 10}}}

	got := New(&bytes.Buffer{}).ListString(snap)
	if got != "10  ██  #123456\n" {
		t.Errorf("Unexpected list line %q", got)
	}
}

func TestRenderer_EmptySnapshot(t *testing.T) {
	r := New(&bytes.Buffer{})
	if got := r.ListString(palette.Snapshot{}); got != "(no cells)\n" {
		t.Errorf("ListString = %q", got)
	}
	if got := r.GridString(palette.Snapshot{}); got != "(no cells)\n" {
		t.Errorf("GridString = %q", got)
	}
}

func TestRenderer_GridWrapsRows(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, WithColumns(2)).Grid(testSnapshot()); err != nil {
		t.Fatalf("Grid failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Two rows of tiles, each a swatch line plus a caption line.
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "#ff0000") || !strings.Contains(lines[0], "#0000ff") {
		t.Errorf("First row should hold the first two cells: %q", lines[0])
	}
	if !strings.Contains(lines[1], "0 accent") {
		t.Errorf("Expected caption with rank and name: %q", lines[1])
	}
	if !strings.Contains(lines[2], "#ffffff") || strings.Contains(lines[2], "#ff0000") {
		t.Errorf("Second row should hold only the last cell: %q", lines[2])
	}
}

func TestRenderer_WithColumnsIgnoresNonPositive(t *testing.T) {
	r := New(&bytes.Buffer{}, WithColumns(0))
	if r.columns != defaultColumns {
		t.Errorf("Expected default columns, got %d", r.columns)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "short"},
		{"exactly9!", "exactly9!"},
		{"0 a-very-long-name", "0 a-very…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, 9); got != tt.want {
			t.Errorf("truncate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextOn(t *testing.T) {
	if got := textOn(color.MustParse("white")); got != "#000000" {
		t.Errorf("Expected dark text on white, got %s", got)
	}
	if got := textOn(color.MustParse("navy")); got != "#ffffff" {
		t.Errorf("Expected light text on navy, got %s", got)
	}
}
