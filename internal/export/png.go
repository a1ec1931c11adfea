// Package export writes palette snapshots as PNG swatch sheets.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/amterp/swatch/internal/color"
	"github.com/amterp/swatch/internal/palette"
)

// Labels need room for "#rrggbb" in the 7px-wide face.
const minLabelSize = 56

// Options controls the sheet layout.
type Options struct {
	CellSize int // Edge of each square tile, in pixels
	Columns  int // Tiles per row
	Labels   bool
}

// Sheet draws the snapshot as a grid of square tiles in display order.
func Sheet(snap palette.Snapshot, opts Options) (*image.NRGBA, error) {
	if opts.CellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %d", opts.CellSize)
	}
	if opts.Columns <= 0 {
		return nil, fmt.Errorf("columns must be positive, got %d", opts.Columns)
	}
	if len(snap.Cells) == 0 {
		return nil, fmt.Errorf("nothing to export: no cells selected")
	}

	cols := min(opts.Columns, len(snap.Cells))
	rows := (len(snap.Cells) + cols - 1) / cols
	img := image.NewNRGBA(image.Rect(0, 0, cols*opts.CellSize, rows*opts.CellSize))

	face := basicfont.Face7x13
	for i, c := range snap.Cells {
		x := (i % cols) * opts.CellSize
		y := (i / cols) * opts.CellSize
		tile := image.Rect(x, y, x+opts.CellSize, y+opts.CellSize)
		draw.Draw(img, tile, image.NewUniform(c.Color), image.Point{}, draw.Src)

		if opts.Labels && opts.CellSize >= minLabelSize {
			label := c.Color.Hex()[:7]
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(labelColor(c.Color)),
				Face: face,
			}
			width := d.MeasureString(label).Ceil()
			d.Dot = fixed.P(x+(opts.CellSize-width)/2, y+opts.CellSize-face.Descent-4)
			d.DrawString(label)
		}
	}
	return img, nil
}

// WritePNG encodes the sheet to w.
func WritePNG(w io.Writer, snap palette.Snapshot, opts Options) error {
	img, err := Sheet(snap, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteFile writes the sheet to path, which must end in .png.
func WriteFile(path string, snap palette.Snapshot, opts Options) error {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		return fmt.Errorf("export path must end in .png, got %q", path)
	}
	img, err := Sheet(snap, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}

func labelColor(c color.Color) color.Color {
	if _, _, l := c.HSL(); l > 0.55 {
		return color.FromRGBA(0, 0, 0, 0xff)
	}
	return color.FromRGBA(0xff, 0xff, 0xff, 0xff)
}
