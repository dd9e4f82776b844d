package stimulus

import (
	"fmt"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"finstim/texture"
)

// BinocularParams configures a binocular stimulus: one texture shown
// to each half of the field with independent orientation and drift.
type BinocularParams struct {
	// Angles are the left and right texture orientations in degrees.
	Angles [2]float64
	// Velocities are the left and right drift velocities in NDC
	// widths per second.
	Velocities [2]float64
	// MaskAngle rotates the dividing line, degrees clockwise.
	MaskAngle float64
	// Position is the center of the dividing line in NDC.
	Position [2]float64
	// BandRadius is the half-width in texture pixels of the dark band
	// along the dividing line.
	BandRadius int
}

// BinocularDrift shows the shared texture to the left and right
// half-fields through rotatable masks. The mask center and angle can
// be retargeted between frames, which is the closed-loop hook: point
// the divider at the subject and it tracks.
type BinocularDrift struct {
	name string
	tex  *texture.Texture

	angles     [2]float64
	velocities [2]float64
	bandRadius int

	mu        sync.Mutex
	maskAngle float64
	center    [2]float64

	elapsed time.Duration

	img   *ebiten.Image
	masks [2]*ebiten.Image
	off   [2]*ebiten.Image
}

// NewBinocularDrift creates a drifting binocular stimulus.
func NewBinocularDrift(tex *texture.Texture, p BinocularParams) (*BinocularDrift, error) {
	if tex == nil {
		return nil, fmt.Errorf("stimulus: binocular needs a texture")
	}
	if p.BandRadius < 0 || p.BandRadius > tex.Size()/2 {
		return nil, fmt.Errorf("stimulus: band radius must be in 0..%d, got %d", tex.Size()/2, p.BandRadius)
	}
	for _, c := range p.Position {
		if c < -1 || c > 1 {
			return nil, fmt.Errorf("stimulus: mask position %v outside NDC range", p.Position)
		}
	}
	name := "BinocularDrift"
	if p.Velocities[0] == 0 && p.Velocities[1] == 0 {
		name = "BinocularStatic"
	}
	return &BinocularDrift{
		name:       name,
		tex:        tex,
		angles:     p.Angles,
		velocities: p.Velocities,
		bandRadius: p.BandRadius,
		maskAngle:  p.MaskAngle,
		center:     p.Position,
	}, nil
}

// NewBinocularStatic is NewBinocularDrift with both velocities zero.
func NewBinocularStatic(tex *texture.Texture, p BinocularParams) (*BinocularDrift, error) {
	p.Velocities = [2]float64{}
	return NewBinocularDrift(tex, p)
}

func (s *BinocularDrift) Name() string { return s.name }

// SetCenter moves the dividing line center, clamped to NDC.
func (s *BinocularDrift) SetCenter(x, y float64) {
	s.mu.Lock()
	s.center = [2]float64{clampNDC(x), clampNDC(y)}
	s.mu.Unlock()
}

// SetMaskAngle rotates the dividing line.
func (s *BinocularDrift) SetMaskAngle(deg float64) {
	s.mu.Lock()
	s.maskAngle = deg
	s.mu.Unlock()
}

// Center returns the current dividing line center in NDC.
func (s *BinocularDrift) Center() (x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center[0], s.center[1]
}

// MaskAngle returns the current dividing line angle.
func (s *BinocularDrift) MaskAngle() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maskAngle
}

func (s *BinocularDrift) Advance(t time.Duration) {
	s.elapsed = t
}

// Offset returns the drift offset in tile units for side 0 (left) or
// 1 (right).
func (s *BinocularDrift) Offset(side int) float64 {
	if side < 0 || side > 1 {
		return 0
	}
	return WrapOffset(s.elapsed.Seconds() * s.velocities[side])
}

func (s *BinocularDrift) Draw(dst *ebiten.Image) {
	s.ensureImages(dst)

	maskAngle := s.MaskAngle()
	cx, cy := s.Center()
	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()
	px, py := NDCToPixel(cx, cy, w, h)

	for side := 0; side < 2; side++ {
		buf := s.off[side]
		buf.Clear()
		drawTiled(buf, s.img, s.angles[side], s.Offset(side), coverShifted)
		s.applyMask(buf, s.masks[side], maskAngle, px, py)

		op := &ebiten.DrawImageOptions{}
		op.Blend = ebiten.BlendLighter
		dst.DrawImage(buf, op)
	}

	drawMarker(dst, float32(px), float32(py))
}

// applyMask cuts buf down to the mask half-field. The mask is scaled
// to cover the target, rotated with the dividing line, and centered
// on the mask position.
func (s *BinocularDrift) applyMask(buf, mask *ebiten.Image, angleDeg, px, py float64) {
	w := buf.Bounds().Dx()
	ts := float64(mask.Bounds().Dx())
	if ts == 0 {
		return
	}
	scale := coverShifted * float64(w) / ts
	theta := angleDeg * math.Pi / 180

	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendDestinationIn
	op.GeoM.Translate(-ts/2, -ts/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Rotate(theta)
	op.GeoM.Translate(px, py)
	buf.DrawImage(mask, op)
}

func (s *BinocularDrift) ensureImages(dst *ebiten.Image) {
	if s.img == nil {
		s.img = ebiten.NewImageFromImage(s.tex.RGBA())
	}
	if s.masks[0] == nil {
		left, right, err := HalfFieldMasks(s.tex.Size(), s.bandRadius)
		if err != nil {
			// Ruled out at construction.
			return
		}
		s.masks[0] = ebiten.NewImageFromImage(maskAlpha(left, s.tex.Size()))
		s.masks[1] = ebiten.NewImageFromImage(maskAlpha(right, s.tex.Size()))
	}
	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()
	if s.off[0] == nil || s.off[0].Bounds().Dx() != w || s.off[0].Bounds().Dy() != h {
		for i := range s.off {
			if s.off[i] != nil {
				s.off[i].Deallocate()
			}
			s.off[i] = ebiten.NewImage(w, h)
		}
	}
}

var markerColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// drawMarker draws a small alignment cross at the mask center.
func drawMarker(dst *ebiten.Image, x, y float32) {
	const arm = 4
	c := markerColor
	vector.StrokeLine(dst, x-arm, y, x+arm, y, 1, c, false)
	vector.StrokeLine(dst, x, y-arm, x, y+arm, 1, c, false)
}

func clampNDC(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
