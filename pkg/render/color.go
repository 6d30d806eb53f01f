package render

import (
	"image/color"
	"math"
)

// Format tags the shape of a Color.
type Format uint8

const (
	FormatRGB  Format = iota // Three 8-bit channels, always opaque
	FormatRGBA               // Three 8-bit channels plus alpha
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	default:
		return "unknown"
	}
}

// Color is an 8-bit RGB or RGBA value. A is meaningful only when Format is
// FormatRGBA.
type Color struct {
	R, G, B, A uint8
	Format     Format
}

// RGB creates an opaque three-channel color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Format: FormatRGB}
}

// RGBA creates a four-channel color.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a, Format: FormatRGBA}
}

// Colors for convenience
var (
	ColorBlack = RGB(0, 0, 0)
	ColorWhite = RGB(255, 255, 255)
	ColorRed   = RGB(255, 0, 0)
	ColorGreen = RGB(0, 255, 0)
	ColorBlue  = RGB(0, 0, 255)
	ColorGray  = RGB(128, 128, 128)
)

// Scale multiplies the R, G and B channels by intensity. Alpha passes
// through unchanged. Results saturate to [0, 255]; NaN maps to 0.
func (c Color) Scale(intensity float64) Color {
	c.R = scaleChannel(c.R, intensity)
	c.G = scaleChannel(c.G, intensity)
	c.B = scaleChannel(c.B, intensity)
	return c
}

func scaleChannel(v uint8, intensity float64) uint8 {
	f := float64(v) * intensity
	if !(f > 0) {
		return 0
	}
	return uint8(math.Min(255, f))
}

// As converts c to format f. Widening RGB to RGBA yields an opaque color;
// narrowing drops alpha.
func (c Color) As(f Format) Color {
	if c.Format == f {
		return c
	}
	if f == FormatRGBA {
		c.A = 255
	} else {
		c.A = 0
	}
	c.Format = f
	return c
}

// RGBA implements color.Color with non-premultiplied channels expanded to
// 16 bits and premultiplied as the interface requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns the equivalent standard library color.
func (c Color) NRGBA() color.NRGBA {
	a := c.A
	if c.Format == FormatRGB {
		a = 255
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
