// Package render draws palette snapshots on a terminal with lipgloss.
package render

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amterp/swatch/internal/color"
	"github.com/amterp/swatch/internal/palette"
)

const (
	tileWidth      = 9
	defaultColumns = 8
)

var (
	colorMuted  = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"}
	colorAccent = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"}
)

// Renderer writes list and grid views of snapshots. It implements
// engine.Renderer.
type Renderer struct {
	out     io.Writer
	lg      *lipgloss.Renderer
	columns int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColumns sets how many tiles a grid row holds.
func WithColumns(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.columns = n
		}
	}
}

// New creates a renderer writing to w. Color output follows w's terminal
// capabilities, so piped output stays plain.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		out:     w,
		lg:      lipgloss.NewRenderer(w),
		columns: defaultColumns,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List prints one line per cell: rank, swatch, hex, name and groups.
func (r *Renderer) List(snap palette.Snapshot) error {
	_, err := io.WriteString(r.out, r.ListString(snap))
	return err
}

// Grid prints cells as colored tiles, columns per row.
func (r *Renderer) Grid(snap palette.Snapshot) error {
	_, err := io.WriteString(r.out, r.GridString(snap))
	return err
}

// ListString renders the list view.
func (r *Renderer) ListString(snap palette.Snapshot) string {
	muted := r.lg.NewStyle().Foreground(colorMuted)
	if len(snap.Cells) == 0 {
		return muted.Render("(no cells)") + "\n"
	}

	rankWidth := len(strconv.Itoa(snap.Cells[len(snap.Cells)-1].Position))
	nameWidth := 0
	for _, c := range snap.Cells {
		nameWidth = max(nameWidth, lipgloss.Width(c.Name))
	}

	rankStyle := muted.Width(rankWidth).Align(lipgloss.Right)
	nameStyle := r.lg.NewStyle().Bold(true).Width(nameWidth)
	groupStyle := r.lg.NewStyle().Foreground(colorAccent)

	var b strings.Builder
	for _, c := range snap.Cells {
		parts := []string{
			rankStyle.Render(strconv.Itoa(c.Position)),
			r.lg.NewStyle().Foreground(lipgloss.Color(opaqueHex(c.Color))).Render("██"),
			c.Color.Hex(),
		}
		if nameWidth > 0 {
			parts = append(parts, nameStyle.Render(c.Name))
		}
		if groups := snap.GroupsOf(c.ID); len(groups) > 0 {
			tagged := make([]string, len(groups))
			for i, g := range groups {
				tagged[i] = "@" + g
			}
			parts = append(parts, groupStyle.Render(strings.Join(tagged, " ")))
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// GridString renders the grid view.
func (r *Renderer) GridString(snap palette.Snapshot) string {
	if len(snap.Cells) == 0 {
		return r.lg.NewStyle().Foreground(colorMuted).Render("(no cells)") + "\n"
	}

	var rows []string
	for chunk := range slices.Chunk(snap.Cells, r.columns) {
		tiles := make([]string, len(chunk))
		for i, c := range chunk {
			tiles[i] = r.tile(c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

// tile is a colored block showing the hex, above a caption with the rank
// and name.
func (r *Renderer) tile(c palette.Cell) string {
	swatch := r.lg.NewStyle().
		Width(tileWidth).
		Align(lipgloss.Center).
		Background(lipgloss.Color(opaqueHex(c.Color))).
		Foreground(lipgloss.Color(textOn(c.Color))).
		Render(c.Color.Hex()[:7])

	caption := strconv.Itoa(c.Position)
	if c.Name != "" {
		caption = fmt.Sprintf("%d %s", c.Position, c.Name)
	}
	label := r.lg.NewStyle().
		Width(tileWidth).
		MaxWidth(tileWidth).
		Align(lipgloss.Center).
		Foreground(colorMuted).
		Render(truncate(caption, tileWidth))

	return lipgloss.NewStyle().MarginRight(1).Render(lipgloss.JoinVertical(lipgloss.Left, swatch, label))
}

// opaqueHex drops alpha; terminals cannot blend.
func opaqueHex(c color.Color) string {
	return c.Hex()[:7]
}

// textOn picks black or white text for legibility on c.
func textOn(c color.Color) string {
	if _, _, l := c.HSL(); l > 0.55 {
		return "#000000"
	}
	return "#ffffff"
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)+"…") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
