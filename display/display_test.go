package display

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

type countingApp struct {
	steps  []time.Duration
	stopAt int
	fail   error
}

func (a *countingApp) Step(t time.Duration) (bool, error) {
	if a.fail != nil {
		return false, a.fail
	}
	a.steps = append(a.steps, t)
	return a.stopAt > 0 && len(a.steps) >= a.stopAt, nil
}

func (a *countingApp) Draw(dst *ebiten.Image) {}

func (a *countingApp) Title() string { return "test" }

func TestFrameTime(t *testing.T) {
	if got := frameTime(0, 60); got != 0 {
		t.Fatalf("frame 0 = %v", got)
	}
	if got := frameTime(60, 60); got != time.Second {
		t.Fatalf("frame 60 = %v", got)
	}
	if got := frameTime(30, 60); got != 500*time.Millisecond {
		t.Fatalf("frame 30 = %v", got)
	}
}

func TestRunHeadlessStopsWhenDone(t *testing.T) {
	app := &countingApp{stopAt: 5}
	if err := RunHeadless(app, Options{FPS: 10}, 0); err != nil {
		t.Fatal(err)
	}
	if len(app.steps) != 5 {
		t.Fatalf("steps = %d", len(app.steps))
	}
	if app.steps[4] != 400*time.Millisecond {
		t.Fatalf("last step at %v", app.steps[4])
	}
}

func TestRunHeadlessMaxTicks(t *testing.T) {
	app := &countingApp{}
	if err := RunHeadless(app, Options{FPS: 60}, 7); err != nil {
		t.Fatal(err)
	}
	if len(app.steps) != 7 {
		t.Fatalf("steps = %d", len(app.steps))
	}
}

func TestRunHeadlessPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	app := &countingApp{fail: boom}
	if err := RunHeadless(app, Options{}, 0); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunHeadlessNilApp(t *testing.T) {
	if err := RunHeadless(nil, Options{}, 1); err == nil {
		t.Fatal("expected error for nil app")
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.WindowSize != DefaultWindowSize || o.FPS != DefaultFPS || o.Scale != 1 {
		t.Fatalf("defaults = %+v", o)
	}
	o = Options{WindowSize: 256, FPS: 50, Scale: 2}.withDefaults()
	if o.WindowSize != 256 || o.FPS != 50 || o.Scale != 2 {
		t.Fatalf("explicit options clobbered: %+v", o)
	}
}
