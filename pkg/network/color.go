package network

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/netcanvas/pkg/errors"
)

// darkerFactor matches the CSS/d3 convention: darker(k) scales every
// channel by 0.7^k.
const darkerFactor = 0.7

var namedColors = map[string]string{
	"black": "#000000",
	"white": "#ffffff",
	"gray":  "#808080",
	"grey":  "#808080",
	"red":   "#ff0000",
	"green": "#008000",
	"blue":  "#0000ff",
}

// Color is an sRGB color that serializes as a hex string.
type Color struct {
	colorful.Color
}

// ParseColor accepts "#rgb", "#rrggbb" and a handful of CSS color names.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "invalid color %q", s)
	}
	return Color{c}, nil
}

// MustColor is like ParseColor but panics on error. Use for constants.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Darker returns c with every channel scaled by 0.7^k.
func (c Color) Darker(k float64) Color {
	f := math.Pow(darkerFactor, k)
	return Color{colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped()}
}

// String returns the color as "#rrggbb".
func (c Color) String() string { return c.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
