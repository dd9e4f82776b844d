package stimulus

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"finstim/texture"
)

// FullFieldDrift shows one texture covering the whole window,
// translating along its grating axis at a fixed velocity.
type FullFieldDrift struct {
	name     string
	tex      *texture.Texture
	angle    float64
	velocity float64

	elapsed time.Duration
	img     *ebiten.Image
}

// NewFullFieldDrift creates a drifting full-field stimulus.
func NewFullFieldDrift(tex *texture.Texture, angle, velocity float64) (*FullFieldDrift, error) {
	if tex == nil {
		return nil, fmt.Errorf("stimulus: full field needs a texture")
	}
	name := "FullFieldDrift"
	if velocity == 0 {
		name = "FullFieldStatic"
	}
	return &FullFieldDrift{
		name:     name,
		tex:      tex,
		angle:    angle,
		velocity: velocity,
	}, nil
}

// NewFullFieldStatic is NewFullFieldDrift with velocity fixed at zero.
func NewFullFieldStatic(tex *texture.Texture, angle float64) (*FullFieldDrift, error) {
	return NewFullFieldDrift(tex, angle, 0)
}

func (s *FullFieldDrift) Name() string { return s.name }

// Angle returns the grating orientation in degrees.
func (s *FullFieldDrift) Angle() float64 { return s.angle }

// Velocity returns the drift velocity in NDC widths per second.
func (s *FullFieldDrift) Velocity() float64 { return s.velocity }

func (s *FullFieldDrift) Advance(t time.Duration) {
	s.elapsed = t
}

// Offset returns the current texture shift in tile units.
func (s *FullFieldDrift) Offset() float64 {
	return WrapOffset(s.elapsed.Seconds() * s.velocity)
}

func (s *FullFieldDrift) Draw(dst *ebiten.Image) {
	if s.img == nil {
		s.img = ebiten.NewImageFromImage(s.tex.RGBA())
	}
	drawTiled(dst, s.img, s.angle, s.Offset(), coverFull)
}
