package stimulus

import (
	"math"
	"testing"
	"time"

	"finstim/texture"
)

func TestWrapOffset(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 0},
		{1.75, 0.75},
		{-0.25, 0.75},
		{-3.5, 0.5},
	}
	for _, c := range cases {
		if got := WrapOffset(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("WrapOffset(%g) = %g, want %g", c.in, got, c.want)
		}
	}
}

func TestNDCToPixel(t *testing.T) {
	px, py := NDCToPixel(0, 0, 512, 512)
	if px != 256 || py != 256 {
		t.Fatalf("center: %g,%g", px, py)
	}
	px, py = NDCToPixel(-1, 1, 512, 512)
	if px != 0 || py != 0 {
		t.Fatalf("top-left: %g,%g", px, py)
	}
	px, py = NDCToPixel(1, -1, 512, 512)
	if px != 512 || py != 512 {
		t.Fatalf("bottom-right: %g,%g", px, py)
	}
}

func TestFullFieldOffsetPureFunctionOfTime(t *testing.T) {
	tex, err := texture.Sin(64, 4)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewFullFieldDrift(tex, 30, 0.25)
	if err != nil {
		t.Fatal(err)
	}

	s.Advance(2 * time.Second)
	first := s.Offset()
	s.Advance(10 * time.Second)
	s.Advance(2 * time.Second)
	if got := s.Offset(); got != first {
		t.Fatalf("offset not reproducible: %g vs %g", got, first)
	}
	if want := 0.5; math.Abs(first-want) > 1e-9 {
		t.Fatalf("offset at 2s = %g, want %g", first, want)
	}
}

func TestFullFieldStaticNeverMoves(t *testing.T) {
	tex, err := texture.Grating(64, 8)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewFullFieldStatic(tex, -45)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "FullFieldStatic" {
		t.Fatalf("name = %q", s.Name())
	}
	s.Advance(time.Hour)
	if s.Offset() != 0 {
		t.Fatalf("static stimulus drifted to %g", s.Offset())
	}
}

func TestFullFieldNilTexture(t *testing.T) {
	if _, err := NewFullFieldDrift(nil, 0, 0.1); err == nil {
		t.Fatal("expected error for nil texture")
	}
}

func TestBinocularIndependentOffsets(t *testing.T) {
	tex, err := texture.Sin(64, 4)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewBinocularDrift(tex, BinocularParams{
		Angles:     [2]float64{-45, 90},
		Velocities: [2]float64{0.1, 0.5},
		BandRadius: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	s.Advance(time.Second)
	if got := s.Offset(0); math.Abs(got-0.1) > 1e-9 {
		t.Fatalf("left offset = %g", got)
	}
	if got := s.Offset(1); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("right offset = %g", got)
	}
	if got := s.Offset(2); got != 0 {
		t.Fatalf("invalid side offset = %g", got)
	}
}

func TestBinocularRetarget(t *testing.T) {
	tex, err := texture.Grating(64, 8)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewBinocularStatic(tex, BinocularParams{MaskAngle: 45})
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "BinocularStatic" {
		t.Fatalf("name = %q", s.Name())
	}

	s.SetCenter(0.5, -0.25)
	x, y := s.Center()
	if x != 0.5 || y != -0.25 {
		t.Fatalf("center = %g,%g", x, y)
	}

	// Out-of-range targets clamp instead of leaving the field.
	s.SetCenter(3, -7)
	x, y = s.Center()
	if x != 1 || y != -1 {
		t.Fatalf("clamped center = %g,%g", x, y)
	}

	s.SetMaskAngle(-30)
	if got := s.MaskAngle(); got != -30 {
		t.Fatalf("mask angle = %g", got)
	}
}

func TestBinocularValidation(t *testing.T) {
	tex, err := texture.Sin(64, 4)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewBinocularDrift(nil, BinocularParams{}); err == nil {
		t.Fatal("expected error for nil texture")
	}
	if _, err := NewBinocularDrift(tex, BinocularParams{BandRadius: -1}); err == nil {
		t.Fatal("expected error for negative band radius")
	}
	if _, err := NewBinocularDrift(tex, BinocularParams{BandRadius: 40}); err == nil {
		t.Fatal("expected error for oversized band radius")
	}
	if _, err := NewBinocularDrift(tex, BinocularParams{Position: [2]float64{2, 0}}); err == nil {
		t.Fatal("expected error for position outside NDC")
	}
}
