package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// Descriptor bit 5: rows are stored top-to-bottom
const tgaTopToBottom = 0x20

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed (type 2) or RLE compressed (type 10)
// true-color TGA image with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	src := data[offset:]
	if !tgaFits(len(src), width*height, bpp/8, imageType) {
		return nil, errTGATruncated
	}

	t := &tgaReader{
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		src:         src,
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		topToBottom: descriptor&tgaTopToBottom != 0,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = t.readRaw()
	} else {
		err = t.readRLE()
	}
	if err != nil {
		return nil, err
	}
	return t.img, nil
}

// tgaFits reports whether n bytes of pixel data can describe the given
// number of pixels. An RLE packet takes at least 1+bpp bytes and covers at
// most 128 pixels.
func tgaFits(n, pixels, bpp int, imageType byte) bool {
	if imageType == TGATypeUncompressed {
		return n >= pixels*bpp
	}
	packets := (n + bpp) / (1 + bpp)
	return pixels <= packets*128
}

// tgaReader walks TGA pixel data in file order.
type tgaReader struct {
	img         *image.NRGBA
	src         []byte
	pos         int
	width       int
	height      int
	bpp         int
	topToBottom bool
}

// next reads one BGR(A) pixel.
func (t *tgaReader) next() (color.NRGBA, error) {
	if t.pos+t.bpp > len(t.src) {
		return color.NRGBA{}, errTGATruncated
	}
	p := t.src[t.pos:]
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if t.bpp == 4 {
		c.A = p[3]
	}
	t.pos += t.bpp
	return c, nil
}

// set stores the i-th pixel in file order.
func (t *tgaReader) set(i int, c color.NRGBA) {
	x, y := i%t.width, i/t.width
	if !t.topToBottom {
		y = t.height - 1 - y
	}
	t.img.SetNRGBA(x, y, c)
}

func (t *tgaReader) readRaw() error {
	for i := range t.width * t.height {
		c, err := t.next()
		if err != nil {
			return err
		}
		t.set(i, c)
	}
	return nil
}

func (t *tgaReader) readRLE() error {
	total := t.width * t.height
	for i := 0; i < total; {
		if t.pos >= len(t.src) {
			return errTGATruncated
		}
		packet := t.src[t.pos]
		t.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run-length packet: one pixel repeated
			c, err := t.next()
			if err != nil {
				return err
			}
			for ; count > 0 && i < total; count-- {
				t.set(i, c)
				i++
			}
			continue
		}

		// Raw packet
		for ; count > 0 && i < total; count-- {
			c, err := t.next()
			if err != nil {
				return err
			}
			t.set(i, c)
			i++
		}
	}
	return nil
}

// EncodeTGA writes img as an uncompressed top-to-bottom TGA. Opaque images
// use 24 bits per pixel, others 32.
func EncodeTGA(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > 0xFFFF || b.Dy() > 0xFFFF {
		return fmt.Errorf("tga: image %dx%d too large", b.Dx(), b.Dy())
	}

	bpp := 4
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		bpp = 3
	}

	header := make([]byte, tgaHeaderSize)
	header[2] = TGATypeUncompressed
	header[12], header[13] = byte(b.Dx()), byte(b.Dx()>>8)
	header[14], header[15] = byte(b.Dy()), byte(b.Dy()>>8)
	header[16] = byte(bpp * 8)
	header[17] = tgaTopToBottom
	if bpp == 4 {
		header[17] |= 8 // alpha channel depth
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header); err != nil {
		return err
	}

	px := make([]byte, bpp)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			px[0], px[1], px[2] = c.B, c.G, c.R
			if bpp == 4 {
				px[3] = c.A
			}
			if _, err := bw.Write(px); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
