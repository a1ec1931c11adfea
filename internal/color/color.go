// Package color wraps go-colorful to parse, validate and convert palette color
// literals. Values are quantized to 8-bit RGBA on construction, so a color
// survives a round trip through any persisted format unchanged.
package color

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is an opaque, validated palette color.
type Color struct {
	r, g, b, a uint8
}

// FromRGBA builds a color from 8-bit channels.
func FromRGBA(r, g, b, a uint8) Color {
	return Color{r: r, g: g, b: b, a: a}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r: r, g: g, b: b, a: 0xff}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.r) / 255.0,
		G: float64(c.g) / 255.0,
		B: float64(c.b) / 255.0,
	}
}

// Hex renders the color as #rrggbb, or #rrggbbaa when not fully opaque.
func (c Color) Hex() string {
	if c.a != 0xff {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.r, c.g, c.b, c.a)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

func (c Color) String() string {
	return c.Hex()
}

// RGBA implements image/color.Color (alpha-premultiplied, 16-bit).
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.r, G: c.g, B: c.b, A: c.a}.RGBA()
}

// RGB255 returns the 8-bit channels.
func (c Color) RGB255() (r, g, b uint8) {
	return c.r, c.g, c.b
}

// Alpha returns the 8-bit alpha channel.
func (c Color) Alpha() uint8 {
	return c.a
}

// HSL returns hue in degrees [0,360) and saturation/lightness in [0,1].
func (c Color) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

// WithHue returns the color with its HSL hue replaced.
func (c Color) WithHue(h float64) Color {
	_, s, l := c.HSL()
	return c.withAlpha(fromColorful(colorful.Hsl(h, s, l)))
}

// WithSaturation returns the color with its HSL saturation replaced.
func (c Color) WithSaturation(s float64) Color {
	h, _, l := c.HSL()
	return c.withAlpha(fromColorful(colorful.Hsl(h, s, l)))
}

// WithLightness returns the color with its HSL lightness replaced.
func (c Color) WithLightness(l float64) Color {
	h, s, _ := c.HSL()
	return c.withAlpha(fromColorful(colorful.Hsl(h, s, l)))
}

func (c Color) withAlpha(n Color) Color {
	n.a = c.a
	return n
}

// Distance is the CIEDE2000 distance between two colors.
func (c Color) Distance(o Color) float64 {
	return c.colorful().DistanceCIEDE2000(o.colorful())
}

// MarshalText encodes the color as its hex form.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts any literal Parse accepts.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse reads a color literal: #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b) with
// 0-255 channels, hsl(h, s, l), hsv(h, s, v), cmyk(c, m, y, k), xyz(x, y, z)
// or an SVG color name.
func Parse(text string) (Color, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Color{}, fmt.Errorf("empty color literal")
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if open := strings.IndexByte(s, '('); open > 0 {
		return parseFunctional(strings.ToLower(s[:open]), s[open:])
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Color{r: named.R, g: named.G, b: named.B, a: 0xff}, nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) Color {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (Color, error) {
	switch len(s) {
	case 4, 7:
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		return fromColorful(c), nil
	case 9:
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q", s)
		}
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in hex color %q", s)
		}
		out := fromColorful(c)
		out.a = uint8(a)
		return out, nil
	}
	return Color{}, fmt.Errorf("invalid hex color %q (expected #rgb, #rrggbb or #rrggbbaa)", s)
}

func parseFunctional(name, rest string) (Color, error) {
	if !strings.HasSuffix(rest, ")") {
		return Color{}, fmt.Errorf("unterminated %s(...) color", name)
	}
	var arity int
	switch name {
	case "rgb", "hsl", "hsv", "xyz":
		arity = 3
	case "cmyk":
		arity = 4
	default:
		return Color{}, fmt.Errorf("unknown color function %q", name)
	}

	parts := strings.Split(rest[1:len(rest)-1], ",")
	if len(parts) != arity {
		return Color{}, fmt.Errorf("%s() takes %d components, got %d", name, arity, len(parts))
	}
	v := make([]float64, arity)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("%s() component %d: %q is not a number", name, i+1, strings.TrimSpace(p))
		}
		v[i] = f
	}

	switch name {
	case "rgb":
		for i, f := range v {
			if f < 0 || f > 255 {
				return Color{}, fmt.Errorf("rgb() component %d out of range 0-255", i+1)
			}
		}
		return fromColorful(colorful.Color{R: v[0] / 255, G: v[1] / 255, B: v[2] / 255}), nil
	case "hsl":
		if err := checkHueUnit(name, v); err != nil {
			return Color{}, err
		}
		return fromColorful(colorful.Hsl(v[0], v[1], v[2])), nil
	case "hsv":
		if err := checkHueUnit(name, v); err != nil {
			return Color{}, err
		}
		return fromColorful(colorful.Hsv(v[0], v[1], v[2])), nil
	case "cmyk":
		for i, f := range v {
			if f < 0 || f > 1 {
				return Color{}, fmt.Errorf("cmyk() component %d out of range 0-1", i+1)
			}
		}
		k := 1 - v[3]
		return fromColorful(colorful.Color{R: (1 - v[0]) * k, G: (1 - v[1]) * k, B: (1 - v[2]) * k}), nil
	default: // xyz
		return fromColorful(colorful.Xyz(v[0], v[1], v[2])), nil
	}
}

func checkHueUnit(name string, v []float64) error {
	if v[0] < 0 || v[0] > 360 {
		return fmt.Errorf("%s() hue out of range 0-360", name)
	}
	for i := 1; i < 3; i++ {
		if v[i] < 0 || v[i] > 1 {
			return fmt.Errorf("%s() component %d out of range 0-1", name, i+1)
		}
	}
	return nil
}
