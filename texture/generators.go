package texture

import (
	"fmt"
	"math"
)

// Sin returns a gray8 sinusoidal grating. The wave completes
// spatialFreq cycles across the texture width; values span 0..255.
func Sin(size int, spatialFreq float64) (*Texture, error) {
	t, err := newWave(size, spatialFreq, FormatGray8)
	if err != nil {
		return nil, err
	}
	for x := 0; x < size; x++ {
		v := uint8((math.Sin(phase(x, size)*spatialFreq) + 1) * 127.5)
		for y := 0; y < size; y++ {
			t.setGray8(x, y, v)
		}
	}
	return t, nil
}

// Sin16 is Sin at 16-bit depth for displays driven above 8 bits.
func Sin16(size int, spatialFreq float64) (*Texture, error) {
	t, err := newWave(size, spatialFreq, FormatGray16)
	if err != nil {
		return nil, err
	}
	for x := 0; x < size; x++ {
		v := uint16((math.Sin(phase(x, size)*spatialFreq) + 1) * 32767.5)
		for y := 0; y < size; y++ {
			t.setGray16(x, y, v)
		}
	}
	return t, nil
}

// Grating returns a gray8 square-wave grating (maximum contrast:
// values are exactly 0 and 255).
func Grating(size int, spatialFreq float64) (*Texture, error) {
	t, err := newWave(size, spatialFreq, FormatGray8)
	if err != nil {
		return nil, err
	}
	for x := 0; x < size; x++ {
		v := squareWave8(phase(x, size) * spatialFreq)
		for y := 0; y < size; y++ {
			t.setGray8(x, y, v)
		}
	}
	return t, nil
}

// SinRGB returns a sinusoidal grating that modulates the given color
// instead of luminance.
func SinRGB(size int, spatialFreq float64, rgb RGB) (*Texture, error) {
	t, err := newWave(size, spatialFreq, FormatRGB8)
	if err != nil {
		return nil, err
	}
	for x := 0; x < size; x++ {
		m := (math.Sin(phase(x, size)*spatialFreq) + 1) / 2
		c := scaleRGB(rgb, m)
		for y := 0; y < size; y++ {
			t.setRGB8(x, y, c)
		}
	}
	return t, nil
}

// GratingRGB returns a square-wave grating alternating between black
// and the given color.
func GratingRGB(size int, spatialFreq float64, rgb RGB) (*Texture, error) {
	t, err := newWave(size, spatialFreq, FormatRGB8)
	if err != nil {
		return nil, err
	}
	for x := 0; x < size; x++ {
		var c RGB
		if squareWave8(phase(x, size)*spatialFreq) != 0 {
			c = rgb
		}
		for y := 0; y < size; y++ {
			t.setRGB8(x, y, c)
		}
	}
	return t, nil
}

// FlatRGB returns a uniform color field.
func FlatRGB(size int, rgb RGB) (*Texture, error) {
	t, err := New(size, FormatRGB8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t.setRGB8(x, y, rgb)
		}
	}
	return t, nil
}

// Circle returns a gray8 texture with a filled disc of luminance fg
// over a bg field. The center is in pixel coordinates.
func Circle(size int, cx, cy, radius int, bg, fg uint8) (*Texture, error) {
	if radius < 0 {
		return nil, fmt.Errorf("texture: radius must be non-negative, got %d", radius)
	}
	t, err := New(size, FormatGray8)
	if err != nil {
		return nil, err
	}
	r2 := radius * radius
	for y := 0; y < size; y++ {
		dy := y - cy
		for x := 0; x < size; x++ {
			dx := x - cx
			if dx*dx+dy*dy <= r2 {
				t.setGray8(x, y, fg)
			} else {
				t.setGray8(x, y, bg)
			}
		}
	}
	return t, nil
}

// Checkerboard returns a gray8 board of checkSize squares alternating
// between 0 and 255.
func Checkerboard(size, checkSize int) (*Texture, error) {
	if checkSize <= 0 || checkSize > size {
		return nil, fmt.Errorf("texture: check size must be in 1..%d, got %d", size, checkSize)
	}
	t, err := New(size, FormatGray8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				t.setGray8(x, y, 0xFF)
			}
		}
	}
	return t, nil
}

func newWave(size int, spatialFreq float64, f Format) (*Texture, error) {
	if spatialFreq <= 0 {
		return nil, fmt.Errorf("texture: spatial frequency must be positive, got %g", spatialFreq)
	}
	return New(size, f)
}

// phase maps column x to [0, 2π), excluding 2π so the texture tiles
// seamlessly when drifted.
func phase(x, size int) float64 {
	return 2 * math.Pi * float64(x) / float64(size)
}

func squareWave8(p float64) uint8 {
	if math.Sin(p) >= 0 {
		return 0xFF
	}
	return 0
}

func scaleRGB(c RGB, m float64) RGB {
	return RGB{
		R: uint8(float64(c.R)*m + 0.5),
		G: uint8(float64(c.G)*m + 0.5),
		B: uint8(float64(c.B)*m + 0.5),
	}
}
