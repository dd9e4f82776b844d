// Package stimulus implements the presentable stimuli: full-field and
// binocular textures, static or drifting.
//
// Geometry conventions follow the rig: angles are degrees, positive
// clockwise; positions are normalized device coordinates in [-1, 1]
// with y up; drift velocity is NDC widths per second, so 1.0 crosses
// the whole window in one second.
package stimulus

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stimulus is anything that can be advanced to a point in time and
// drawn to a frame.
type Stimulus interface {
	// Name labels the stimulus in window titles and event records.
	Name() string
	// Advance updates state for the elapsed time since stimulus onset.
	// The offset drawn at time t is a pure function of t.
	Advance(t time.Duration)
	// Draw renders the current state.
	Draw(dst *ebiten.Image)
}

// coverFull scales a card so rotation alone never exposes background.
const coverFull = math.Sqrt2

// coverShifted handles arbitrary rotation plus center shifts.
var coverShifted = math.Sqrt(8)

// WrapOffset reduces a drift offset to [0, 1) tile units.
func WrapOffset(u float64) float64 {
	u -= math.Floor(u)
	if u < 0 || u >= 1 {
		return 0
	}
	return u
}

// NDCToPixel maps a normalized device coordinate to pixel coordinates
// on a w×h target. NDC y points up, pixel y points down.
func NDCToPixel(x, y float64, w, h int) (px, py float64) {
	px = (x + 1) / 2 * float64(w)
	py = (1 - (y+1)/2) * float64(h)
	return px, py
}

// drawTiled fills dst with src tiled 3×3, shifted u tile-widths along
// the texture axis, rotated by angleDeg about the target center, and
// scaled so a single tile covers the target times cover.
func drawTiled(dst, src *ebiten.Image, angleDeg, u, cover float64) {
	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()
	ts := float64(src.Bounds().Dx())
	if ts == 0 || w == 0 || h == 0 {
		return
	}
	scale := cover * float64(w) / ts
	theta := angleDeg * math.Pi / 180
	shift := WrapOffset(u) * ts

	for ty := -1; ty <= 1; ty++ {
		for tx := -1; tx <= 1; tx++ {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(tx)*ts+shift-ts/2, float64(ty)*ts-ts/2)
			op.GeoM.Scale(scale, scale)
			op.GeoM.Rotate(theta)
			op.GeoM.Translate(float64(w)/2, float64(h)/2)
			dst.DrawImage(src, op)
		}
	}
}
