package export

import (
	"bytes"
	stdcolor "image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/amterp/swatch/internal/color"
	"github.com/amterp/swatch/internal/palette"
)

func threeCells() palette.Snapshot {
	return palette.Snapshot{Cells: []palette.Cell{
		{ID: 1, Color: color.MustParse("#ff0000"), Position: 0},
		{ID: 2, Color: color.MustParse("#00ff00"), Position: 1},
		{ID: 3, Color: color.MustParse("#0000ff80"), Position: 2},
	}}
}

func TestSheet_Layout(t *testing.T) {
	img, err := Sheet(threeCells(), Options{CellSize: 10, Columns: 2})
	if err != nil {
		t.Fatalf("Sheet failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Fatalf("Expected 20x20 sheet, got %v", b)
	}

	tests := []struct {
		x, y int
		want stdcolor.NRGBA
	}{
		{0, 0, stdcolor.NRGBA{R: 0xff, A: 0xff}},
		{9, 9, stdcolor.NRGBA{R: 0xff, A: 0xff}},
		{10, 0, stdcolor.NRGBA{G: 0xff, A: 0xff}},
		{5, 15, stdcolor.NRGBA{B: 0xff, A: 0x80}},
		{15, 15, stdcolor.NRGBA{}}, // unused slot stays transparent
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSheet_ColumnsCappedByCellCount(t *testing.T) {
	img, err := Sheet(threeCells(), Options{CellSize: 4, Columns: 8})
	if err != nil {
		t.Fatalf("Sheet failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 4 {
		t.Errorf("Expected a single 12x4 row, got %v", b)
	}
}

func TestSheet_LabelsDrawOnLargeTiles(t *testing.T) {
	snap := palette.Snapshot{Cells: []palette.Cell{{ID: 1, Color: color.MustParse("white")}}}

	plain, err := Sheet(snap, Options{CellSize: 64, Columns: 1})
	if err != nil {
		t.Fatal(err)
	}
	labeled, err := Sheet(snap, Options{CellSize: 64, Columns: 1, Labels: true})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(plain.Pix, labeled.Pix) {
		t.Error("Expected label pixels on a 64px tile")
	}

	small, _ := Sheet(snap, Options{CellSize: 16, Columns: 1, Labels: true})
	smallPlain, _ := Sheet(snap, Options{CellSize: 16, Columns: 1})
	if !bytes.Equal(small.Pix, smallPlain.Pix) {
		t.Error("Expected no label on a tile too small to hold one")
	}
}

func TestSheet_Rejects(t *testing.T) {
	tests := []struct {
		name string
		snap palette.Snapshot
		opts Options
	}{
		{"zero cell size", threeCells(), Options{Columns: 2}},
		{"zero columns", threeCells(), Options{CellSize: 8}},
		{"empty selection", palette.Snapshot{}, Options{CellSize: 8, Columns: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Sheet(tt.snap, tt.opts); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestWritePNG_Decodes(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, threeCells(), Options{CellSize: 8, Columns: 3}); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 8 {
		t.Errorf("Unexpected bounds %v", b)
	}
}

func TestWriteFile_RequiresPNGExtension(t *testing.T) {
	dir := t.TempDir()
	if err := WriteFile(filepath.Join(dir, "sheet.jpg"), threeCells(), Options{CellSize: 8, Columns: 3}); err == nil {
		t.Error("Expected error for non-PNG path")
	}
	if err := WriteFile(filepath.Join(dir, "out", "sheet.PNG"), threeCells(), Options{CellSize: 8, Columns: 3}); err != nil {
		t.Errorf("WriteFile failed: %v", err)
	}
}
