package color

import (
	"math"
	"testing"
)

func TestParse_Forms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#FF0000", "#ff0000"},
		{"#f00", "#ff0000"},
		{"#00ff0080", "#00ff0080"},
		{"red", "#ff0000"},
		{"RoyalBlue", "#4169e1"},
		{"rgb(0, 128, 255)", "#0080ff"},
		{"RGB(255,255,255)", "#ffffff"},
		{"hsl(0, 1, 0.5)", "#ff0000"},
		{"hsv(120, 1, 1)", "#00ff00"},
		{"cmyk(0, 0, 0, 1)", "#000000"},
		{"cmyk(1, 0, 0, 0)", "#00ffff"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if got := c.Hex(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"#12",
		"#ggg",
		"notacolor",
		"rgb(1, 2)",
		"rgb(300, 0, 0)",
		"hsl(400, 0.5, 0.5)",
		"hsl(10, 2, 0.5)",
		"cmyk(0, 0, 0)",
		"lab(1, 2, 3)",
		"rgb(1, x, 3)",
	}
	for _, in := range inputs {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) expected error", in)
		}
	}
}

func TestColor_TextRoundTrip(t *testing.T) {
	c := MustParse("hsl(210, 0.4, 0.3)")
	text, err := c.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var back Color
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if back != c {
		t.Errorf("round trip changed color: %s -> %s", c, back)
	}
}

func TestColor_WithLightness(t *testing.T) {
	c := MustParse("#ff0000")
	darker := c.WithLightness(0.25)

	_, _, l := darker.HSL()
	if math.Abs(l-0.25) > 0.01 {
		t.Errorf("Expected lightness ~0.25, got %f", l)
	}
	if darker.Hex() != "#800000" {
		t.Errorf("Expected #800000, got %s", darker.Hex())
	}
}

func TestColor_WithHueKeepsAlpha(t *testing.T) {
	c := MustParse("#ff000080")
	shifted := c.WithHue(120)
	if shifted.Alpha() != 0x80 {
		t.Errorf("Expected alpha preserved, got %#x", shifted.Alpha())
	}
	if shifted.Hex() != "#00ff0080" {
		t.Errorf("Expected #00ff0080, got %s", shifted.Hex())
	}
}
