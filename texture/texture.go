// Package texture generates the procedural pixel arrays presented as
// visual stimuli: sinusoids and square-wave gratings, flat color
// fields, discs and checkerboards.
//
// Textures are square. Gratings vary along x only, so a texture
// rotated by the stimulus layer produces a grating of arbitrary
// orientation. Power-of-two sizes keep the GPU happier but are not
// required.
package texture

import (
	"fmt"
	"image"
	"image/color"
)

// Format describes the pixel layout of a Texture.
type Format uint8

const (
	// FormatGray8 is 1 byte per pixel luminance.
	FormatGray8 Format = iota
	// FormatGray16 is 2 bytes per pixel luminance, little-endian.
	FormatGray16
	// FormatRGB8 is 3 bytes per pixel.
	FormatRGB8
)

func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "gray8"
	case FormatGray16:
		return "gray16"
	case FormatRGB8:
		return "rgb8"
	default:
		return "unknown"
	}
}

// BytesPerPixel returns the pixel stride for the format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatGray8:
		return 1
	case FormatGray16:
		return 2
	case FormatRGB8:
		return 3
	default:
		return 0
	}
}

// RGB is an 8-bit color triple used by the colored generators.
type RGB struct {
	R, G, B uint8
}

// Texture is a square pixel array in one of the supported formats.
//
// Pix holds size*size pixels row-major with the format's stride.
type Texture struct {
	size   int
	format Format
	pix    []byte
}

// New creates an all-zero texture.
func New(size int, format Format) (*Texture, error) {
	if size <= 0 {
		return nil, fmt.Errorf("texture: size must be positive, got %d", size)
	}
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("texture: unsupported format %v", format)
	}
	return &Texture{
		size:   size,
		format: format,
		pix:    make([]byte, size*size*bpp),
	}, nil
}

// Size returns the side length in pixels.
func (t *Texture) Size() int { return t.size }

// Format returns the pixel layout.
func (t *Texture) Format() Format { return t.format }

// Pix returns the raw pixel buffer. Callers must not resize it.
func (t *Texture) Pix() []byte { return t.pix }

// Gray8At returns the 8-bit luminance at (x, y). Gray16 is truncated
// to its high byte, RGB8 uses the standard luma weights.
func (t *Texture) Gray8At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= t.size || y >= t.size {
		return 0
	}
	switch t.format {
	case FormatGray8:
		return t.pix[y*t.size+x]
	case FormatGray16:
		return t.pix[(y*t.size+x)*2+1]
	case FormatRGB8:
		i := (y*t.size + x) * 3
		r := uint32(t.pix[i])
		g := uint32(t.pix[i+1])
		b := uint32(t.pix[i+2])
		return uint8((299*r + 587*g + 114*b) / 1000)
	default:
		return 0
	}
}

func (t *Texture) setGray8(x, y int, v uint8) {
	t.pix[y*t.size+x] = v
}

func (t *Texture) setGray16(x, y int, v uint16) {
	i := (y*t.size + x) * 2
	t.pix[i] = byte(v)
	t.pix[i+1] = byte(v >> 8)
}

func (t *Texture) setRGB8(x, y int, c RGB) {
	i := (y*t.size + x) * 3
	t.pix[i] = c.R
	t.pix[i+1] = c.G
	t.pix[i+2] = c.B
}

// RGBA converts the texture to an opaque RGBA image for upload to the
// render target.
func (t *Texture) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.size, t.size))
	dst := img.Pix
	switch t.format {
	case FormatGray8:
		for i, v := range t.pix {
			j := i * 4
			dst[j] = v
			dst[j+1] = v
			dst[j+2] = v
			dst[j+3] = 0xFF
		}
	case FormatGray16:
		for i := 0; i+1 < len(t.pix); i += 2 {
			v := t.pix[i+1] // high byte of little-endian 16-bit sample
			j := (i / 2) * 4
			dst[j] = v
			dst[j+1] = v
			dst[j+2] = v
			dst[j+3] = 0xFF
		}
	case FormatRGB8:
		for i := 0; i+2 < len(t.pix); i += 3 {
			j := (i / 3) * 4
			dst[j] = t.pix[i]
			dst[j+1] = t.pix[i+1]
			dst[j+2] = t.pix[i+2]
			dst[j+3] = 0xFF
		}
	}
	return img
}

// At implements image-style access for debugging and tests.
func (t *Texture) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= t.size || y >= t.size {
		return color.Gray{}
	}
	switch t.format {
	case FormatGray16:
		i := (y*t.size + x) * 2
		return color.Gray16{Y: uint16(t.pix[i]) | uint16(t.pix[i+1])<<8}
	case FormatRGB8:
		i := (y*t.size + x) * 3
		return color.RGBA{R: t.pix[i], G: t.pix[i+1], B: t.pix[i+2], A: 0xFF}
	default:
		return color.Gray{Y: t.pix[y*t.size+x]}
	}
}
