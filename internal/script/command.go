package script

import (
	"github.com/amterp/swatch/internal/color"
	swerr "github.com/amterp/swatch/internal/errors"
)

// Command is a validated instruction. The set of implementations is closed;
// consumers switch over the concrete types.
type Command interface {
	Pos() swerr.Pos
	Verb() string
	command()
}

type at struct {
	pos swerr.Pos
}

func (a at) Pos() swerr.Pos { return a.pos }
func (at) command()         {}

// PositionEnd places a cell after every other cell.
const PositionEnd = int(^uint(0) >> 1)

// New replaces the palette with an empty one.
type New struct{ at }

// Insert adds one cell. A nil Position means the configured default.
type Insert struct {
	at
	Color    color.Color
	Name     string
	Position *int
}

// Delete removes the selected cells.
type Delete struct {
	at
	Target Selector
}

// Move places the selected cells, in display order, as a block starting at
// rank To of the resulting order.
type Move struct {
	at
	Target Selector
	To     int
}

// Rename sets the name of exactly one cell. An empty Name clears it.
type Rename struct {
	at
	Target Selector
	Name   string
}

// Attribute is a settable cell attribute.
type Attribute string

const (
	AttrColor      Attribute = "color"
	AttrHue        Attribute = "hue"
	AttrSaturation Attribute = "saturation"
	AttrLightness  Attribute = "lightness"
)

// Set changes one attribute on every selected cell. Color is used for
// AttrColor, Amount for the others.
type Set struct {
	at
	Target Selector
	Attr   Attribute
	Color  color.Color
	Amount float64
}

// Group adds the selected cells to a group, creating it if needed.
type Group struct {
	at
	Name   string
	Target Selector
}

// Ungroup deletes a group, leaving its cells alone.
type Ungroup struct {
	at
	Name string
}

// Undo reverts up to Count operations.
type Undo struct {
	at
	Count int
}

// Redo reapplies up to Count operations.
type Redo struct {
	at
	Count int
}

// Save writes the palette to Path.
type Save struct {
	at
	Path string
}

// Load replaces the palette with the one at Path.
type Load struct {
	at
	Path string
}

// List prints the selected cells as a table.
type List struct {
	at
	Target Selector
}

// Grid prints the selected cells as color swatches.
type Grid struct {
	at
	Target Selector
}

func (*New) Verb() string     { return "new" }
func (*Insert) Verb() string  { return "insert" }
func (*Delete) Verb() string  { return "delete" }
func (*Move) Verb() string    { return "move" }
func (*Rename) Verb() string  { return "rename" }
func (*Set) Verb() string     { return "set" }
func (*Group) Verb() string   { return "group" }
func (*Ungroup) Verb() string { return "ungroup" }
func (*Undo) Verb() string    { return "undo" }
func (*Redo) Verb() string    { return "redo" }
func (*Save) Verb() string    { return "save" }
func (*Load) Verb() string    { return "load" }
func (*List) Verb() string    { return "list" }
func (*Grid) Verb() string    { return "grid" }
