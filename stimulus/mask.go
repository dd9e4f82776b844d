package stimulus

import (
	"fmt"
	"image"
)

// HalfFieldMasks builds the left/right luminance masks for binocular
// presentation. Lit pixels are 255, masked pixels 0. A center band of
// half-width bandRadius pixels straddling the dividing column is dark
// on both masks, so the two halves never overlap.
func HalfFieldMasks(size, bandRadius int) (left, right []byte, err error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("stimulus: mask size must be positive, got %d", size)
	}
	if bandRadius < 0 || bandRadius > size/2 {
		return nil, nil, fmt.Errorf("stimulus: band radius must be in 0..%d, got %d", size/2, bandRadius)
	}

	left = make([]byte, size*size)
	right = make([]byte, size*size)
	mid := size / 2
	for y := 0; y < size; y++ {
		row := y * size
		for x := 0; x < mid-bandRadius; x++ {
			left[row+x] = 0xFF
		}
		for x := mid + bandRadius; x < size; x++ {
			right[row+x] = 0xFF
		}
	}
	return left, right, nil
}

// maskAlpha converts a luminance mask into an alpha image: lit pixels
// become opaque white, masked pixels fully transparent. Drawn with a
// destination-in blend it cuts the composed texture to the mask.
func maskAlpha(mask []byte, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i, v := range mask {
		j := i * 4
		img.Pix[j] = v
		img.Pix[j+1] = v
		img.Pix[j+2] = v
		img.Pix[j+3] = v
	}
	return img
}
