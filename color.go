package loom

import (
	"errors"
	"fmt"
	"strings"
)

// ColorType distinguishes between color representations.
type ColorType uint8

const (
	// ColorDefault is the backend's default color (no color set).
	ColorDefault ColorType = iota
	// ColorANSI is an ANSI 256 palette color (0-255).
	ColorANSI
	// ColorRGB is a 24-bit color.
	ColorRGB
)

// Color is the fill color of a quad. The zero value is the default color.
type Color struct {
	typ ColorType
	// For ANSI: r holds the palette index
	r, g, b uint8
}

// DefaultColor returns the backend's default color.
func DefaultColor() Color {
	return Color{typ: ColorDefault}
}

// ANSIColor returns a Color from the ANSI 256 palette.
func ANSIColor(index uint8) Color {
	return Color{typ: ColorANSI, r: index}
}

// RGBColor returns a 24-bit Color.
func RGBColor(r, g, b uint8) Color {
	return Color{typ: ColorRGB, r: r, g: g, b: b}
}

// HexColor parses "#RRGGBB" or "#RGB".
func HexColor(hex string) (Color, error) {
	s := strings.TrimPrefix(hex, "#")

	var v [3]uint8
	switch len(s) {
	case 6:
		for i := range v {
			hi, err := parseHexNibble(s[2*i])
			if err != nil {
				return Color{}, fmt.Errorf("color %q: %w", hex, err)
			}
			lo, err := parseHexNibble(s[2*i+1])
			if err != nil {
				return Color{}, fmt.Errorf("color %q: %w", hex, err)
			}
			v[i] = hi<<4 | lo
		}
	case 3:
		for i := range v {
			n, err := parseHexNibble(s[i])
			if err != nil {
				return Color{}, fmt.Errorf("color %q: %w", hex, err)
			}
			v[i] = n<<4 | n
		}
	default:
		return Color{}, fmt.Errorf("color %q: expected #RGB or #RRGGBB", hex)
	}
	return RGBColor(v[0], v[1], v[2]), nil
}

// MustHexColor is HexColor for literals. It panics on malformed input.
func MustHexColor(hex string) Color {
	c, err := HexColor(hex)
	if err != nil {
		panic("loom: " + err.Error())
	}
	return c
}

func parseHexNibble(c byte) (uint8, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, errors.New("invalid hex character")
	}
}

// Type returns the ColorType of this color.
func (c Color) Type() ColorType {
	return c.typ
}

// IsDefault reports whether c is the default color.
func (c Color) IsDefault() bool {
	return c.typ == ColorDefault
}

// ANSI returns the palette index. Panics if c is not an ANSI color.
func (c Color) ANSI() uint8 {
	if c.typ != ColorANSI {
		panic("loom: ANSI() called on non-ANSI color")
	}
	return c.r
}

// RGB returns the components. Panics if c is not an RGB color.
func (c Color) RGB() (r, g, b uint8) {
	if c.typ != ColorRGB {
		panic("loom: RGB() called on non-RGB color")
	}
	return c.r, c.g, c.b
}

// String renders c in the form lipgloss.Color accepts: "#rrggbb" for RGB,
// the decimal palette index for ANSI, and "" for the default color.
func (c Color) String() string {
	switch c.typ {
	case ColorANSI:
		return fmt.Sprintf("%d", c.r)
	case ColorRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
	default:
		return ""
	}
}
