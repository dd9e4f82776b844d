// Package display hosts stimuli in a desktop window.
//
// The frame loop runs at a fixed ticks-per-second rate and derives
// elapsed time from the frame counter, so event times recorded by an
// experiment line up with the frames that were actually presented.
package display

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"finstim/stimulus"
)

// Options configures the host window.
type Options struct {
	// WindowSize is the window side length in pixels. Windows are
	// square like the projection area of the rig.
	WindowSize int
	// Title is the initial window title.
	Title string
	// FPS is the tick rate of the stimulus clock.
	FPS int
	// Scale multiplies the on-screen window size without changing the
	// render resolution.
	Scale int
}

const (
	// DefaultWindowSize matches the common rig projector patch.
	DefaultWindowSize = 512
	// DefaultFPS is the default stimulus tick rate.
	DefaultFPS = 60
)

func (o Options) withDefaults() Options {
	if o.WindowSize <= 0 {
		o.WindowSize = DefaultWindowSize
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	return o
}

func (o Options) validate() error {
	if o.WindowSize < 0 {
		return fmt.Errorf("display: negative window size %d", o.WindowSize)
	}
	return nil
}

// App is a stepped application hosted by the frame loop. Experiments
// implement it; single stimuli are wrapped by stimulusApp.
type App interface {
	// Step advances to elapsed time t. Returning done ends the run.
	Step(t time.Duration) (done bool, err error)
	// Draw renders the current frame.
	Draw(dst *ebiten.Image)
	// Title returns the current window title, re-read every frame so
	// apps can retitle on phase changes.
	Title() string
}

// Run opens a window showing a single stimulus until the window is
// closed.
func Run(stim stimulus.Stimulus, opts Options) error {
	if stim == nil {
		return fmt.Errorf("display: nil stimulus")
	}
	if opts.Title == "" {
		opts.Title = stim.Name()
	}
	return RunApp(&stimulusApp{stim: stim, title: opts.Title}, opts)
}

// RunApp opens a window and drives app until it reports done or the
// window is closed.
func RunApp(app App, opts Options) error {
	if app == nil {
		return fmt.Errorf("display: nil app")
	}
	if err := opts.validate(); err != nil {
		return err
	}
	opts = opts.withDefaults()

	g := &game{app: app, opts: opts}
	ebiten.SetWindowTitle(app.Title())
	ebiten.SetWindowSize(opts.WindowSize*opts.Scale, opts.WindowSize*opts.Scale)
	ebiten.SetTPS(opts.FPS)
	if err := ebiten.RunGame(g); err != nil && err != errDone {
		return err
	}
	return nil
}

// RunHeadless drives app at the configured tick rate without a
// window, for rig dry-runs and tests. It stops when the app reports
// done or after maxTicks frames (0 = no limit).
func RunHeadless(app App, opts Options, maxTicks uint64) error {
	if app == nil {
		return fmt.Errorf("display: nil app")
	}
	if err := opts.validate(); err != nil {
		return err
	}
	opts = opts.withDefaults()

	for frame := uint64(0); maxTicks == 0 || frame < maxTicks; frame++ {
		t := frameTime(frame, opts.FPS)
		done, err := app.Step(t)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

// errDone is the sentinel ending a RunGame loop cleanly.
var errDone = fmt.Errorf("display: done")

type game struct {
	app   App
	opts  Options
	frame uint64
	title string
}

func (g *game) Update() error {
	t := frameTime(g.frame, g.opts.FPS)
	g.frame++

	done, err := g.app.Step(t)
	if err != nil {
		return err
	}
	if title := g.app.Title(); title != g.title {
		g.title = title
		ebiten.SetWindowTitle(title)
	}
	if done {
		return errDone
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.app.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.opts.WindowSize, g.opts.WindowSize
}

func frameTime(frame uint64, fps int) time.Duration {
	return time.Duration(frame) * time.Second / time.Duration(fps)
}

type stimulusApp struct {
	stim  stimulus.Stimulus
	title string
}

func (a *stimulusApp) Step(t time.Duration) (bool, error) {
	a.stim.Advance(t)
	return false, nil
}

func (a *stimulusApp) Draw(dst *ebiten.Image) {
	a.stim.Draw(dst)
}

func (a *stimulusApp) Title() string { return a.title }
