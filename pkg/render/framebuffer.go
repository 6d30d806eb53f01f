// Package render converts lines and triangles into pixels in an in-memory
// framebuffer, with per-pixel depth testing and texture sampling.
package render

import (
	"image"

	"golang.org/x/image/draw"
)

// Texels is a read-only pixel grid, the shape a texture is sampled through.
type Texels interface {
	Width() int
	Height() int
	Pixel(x, y int) Color
}

// Surface is a writable pixel grid. The rasterizer only calls SetPixel with
// coordinates inside [0, Width) × [0, Height), except for Line which leaves
// bounds to the caller.
type Surface interface {
	Texels
	SetPixel(x, y int, c Color)
}

// Framebuffer is a fixed-size grid of colors stored row-major. Row 0 is the
// bottom of the rendered frame until FlipVertical is called.
type Framebuffer struct {
	width  int
	height int
	format Format
	pixels []Color
}

// NewFramebuffer creates a framebuffer filled with the zero color of the
// given format.
func NewFramebuffer(width, height int, format Format) *Framebuffer {
	fb := &Framebuffer{
		width:  width,
		height: height,
		format: format,
		pixels: make([]Color, width*height),
	}
	fb.Clear(Color{Format: format})
	return fb
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// Format returns the pixel format.
func (fb *Framebuffer) Format() Format { return fb.format }

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	c = c.As(fb.format)
	for i := range fb.pixels {
		fb.pixels[i] = c
	}
}

// SetPixel sets the pixel at (x, y), converting c to the framebuffer's
// format. Out-of-range coordinates are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.pixels[y*fb.width+x] = c.As(fb.format)
}

// Pixel returns the color at (x, y), or the zero color of the framebuffer's
// format when out of range.
func (fb *Framebuffer) Pixel(x, y int) Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return Color{Format: fb.format}
	}
	return fb.pixels[y*fb.width+x]
}

// FlipVertical mirrors the rows in place.
func (fb *Framebuffer) FlipVertical() {
	for top, bot := 0, fb.height-1; top < bot; top, bot = top+1, bot-1 {
		a := fb.pixels[top*fb.width : (top+1)*fb.width]
		b := fb.pixels[bot*fb.width : (bot+1)*fb.width]
		for x := range a {
			a[x], b[x] = b[x], a[x]
		}
	}
}

// FlipHorizontal mirrors the columns in place.
func (fb *Framebuffer) FlipHorizontal() {
	for y := range fb.height {
		row := fb.pixels[y*fb.width : (y+1)*fb.width]
		for l, r := 0, len(row)-1; l < r; l, r = l+1, r-1 {
			row[l], row[r] = row[r], row[l]
		}
	}
}

// ToImage converts the framebuffer to a standard library image. Row 0 of the
// framebuffer becomes the top row of the image.
func (fb *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := range fb.height {
		for x := range fb.width {
			img.SetNRGBA(x, y, fb.pixels[y*fb.width+x].NRGBA())
		}
	}
	return img
}

// FromImage copies any image into an RGBA framebuffer. The image's top row
// becomes row 0.
func FromImage(img image.Image) *Framebuffer {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return fromNRGBA(dst, FormatRGBA)
}

// Resized returns a copy scaled to width × height with bilinear filtering.
func (fb *Framebuffer) Resized(width, height int) *Framebuffer {
	src := fb.ToImage()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return fromNRGBA(dst, fb.format)
}

func fromNRGBA(img *image.NRGBA, format Format) *Framebuffer {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	fb := NewFramebuffer(w, h, format)
	for y := range h {
		for x := range w {
			o := img.PixOffset(x, y)
			c := RGBA(img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3])
			fb.pixels[y*w+x] = c.As(format)
		}
	}
	return fb
}

// NewChecker creates a procedural checkerboard, used as a fallback texture.
func NewChecker(width, height, checkSize int, c1, c2 Color) *Framebuffer {
	fb := NewFramebuffer(width, height, c1.Format)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				fb.SetPixel(x, y, c1)
			} else {
				fb.SetPixel(x, y, c2)
			}
		}
	}
	return fb
}
