package experiment

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"finstim/internal/logger"
	"finstim/internal/metrics"
	"finstim/stimulus"
)

// Position is a subject position report in NDC, heading in degrees
// clockwise from up.
type Position struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// Decision is what a policy wants shown in response to a position.
type Decision struct {
	// StimIndex selects the bank entry to present.
	StimIndex int
	// Center retargets the binocular mask center.
	Center [2]float64
	// MaskAngle retargets the binocular mask angle.
	MaskAngle float64
}

// PositionPolicy maps a subject position to a presentation decision.
type PositionPolicy interface {
	Decide(p Position) Decision
}

// MidlinePolicy is the default closed-loop policy: the binocular mask
// recenters on the subject, rotates with its heading, and the
// presented bank entry flips when the subject crosses the midline.
type MidlinePolicy struct{}

func (MidlinePolicy) Decide(p Position) Decision {
	idx := 0
	if p.X >= 0 {
		idx = 1
	}
	return Decision{
		StimIndex: idx,
		Center:    [2]float64{p.X, p.Y},
		MaskAngle: p.Heading,
	}
}

// InputConfig wires an input-switched experiment.
type InputConfig struct {
	// Bank holds the selectable stimuli; entry 0 is shown first.
	Bank []stimulus.Stimulus
	// Params optionally holds a JSON parameter blob per bank entry.
	Params []string
	// Policy maps positions to decisions; nil means MidlinePolicy.
	Policy   PositionPolicy
	Recorder Recorder
	Logger   logger.Logger
	Metrics  *metrics.Metrics
}

// InputExperiment presents one stimulus of a bank at a time and
// switches on external triggers: digit keys select a bank entry,
// escape ends the run, and position reports from the control API go
// through the policy. It implements display.App.
type InputExperiment struct {
	bank    []stimulus.Stimulus
	params  []string
	policy  PositionPolicy
	rec     Recorder
	log     logger.Logger
	metrics *metrics.Metrics

	mu         sync.Mutex
	session    Session
	active     int
	switchedAt time.Duration
	elapsed    time.Duration
	frames     uint64
	seq        int
	open       Event
	openFrames uint64
	hasOpen    bool
	title      string
	done       bool
}

// NewInputExperiment validates the bank and opens a session.
func NewInputExperiment(cfg InputConfig) (*InputExperiment, error) {
	if len(cfg.Bank) == 0 {
		return nil, fmt.Errorf("experiment: input experiment needs a stimulus bank")
	}
	if cfg.Params != nil && len(cfg.Params) != len(cfg.Bank) {
		return nil, fmt.Errorf("experiment: %d param blobs for %d stimuli", len(cfg.Params), len(cfg.Bank))
	}
	if cfg.Policy == nil {
		cfg.Policy = MidlinePolicy{}
	}
	if cfg.Recorder == nil {
		cfg.Recorder = NopRecorder{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewConsoleLogger(logger.LevelInfo)
	}

	e := &InputExperiment{
		bank:    cfg.Bank,
		params:  cfg.Params,
		policy:  cfg.Policy,
		rec:     cfg.Recorder,
		log:     cfg.Logger,
		metrics: cfg.Metrics,
		session: Session{
			ID:        uuid.NewString(),
			Protocol:  "input",
			StartedAt: time.Now(),
		},
	}
	if err := e.rec.Begin(e.session); err != nil {
		return nil, fmt.Errorf("experiment: begin session: %w", err)
	}
	e.openEvent(0, 0)
	e.log.Info("input session ", e.session.ID, " started with ", len(cfg.Bank), " stimuli")
	return e, nil
}

// Session returns the session record for this run.
func (e *InputExperiment) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// SetPosition feeds a subject position through the policy. It is safe
// to call from the API goroutine.
func (e *InputExperiment) SetPosition(p Position) error {
	if p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1 {
		return fmt.Errorf("experiment: position %+v outside NDC range", p)
	}

	d := e.policy.Decide(p)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done {
		return fmt.Errorf("experiment: session finished")
	}
	e.switchTo(d.StimIndex)
	if b, ok := e.bank[e.active].(*stimulus.BinocularDrift); ok {
		b.SetCenter(d.Center[0], d.Center[1])
		b.SetMaskAngle(d.MaskAngle)
	}
	if e.metrics != nil {
		e.metrics.PositionUpdates.Inc()
	}
	return nil
}

// Step implements display.App.
func (e *InputExperiment) Step(t time.Duration) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done {
		return true, nil
	}
	e.elapsed = t
	e.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true, e.finish()
	}
	for i := 0; i < len(e.bank) && i < 10; i++ {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit0 + ebiten.Key(i)) {
			e.switchTo(i)
		}
	}

	e.bank[e.active].Advance(t - e.switchedAt)
	if e.metrics != nil {
		e.metrics.FramesPresented.WithLabelValues(e.bank[e.active].Name()).Inc()
	}
	return false, nil
}

// Draw implements display.App.
func (e *InputExperiment) Draw(dst *ebiten.Image) {
	start := time.Now()
	e.mu.Lock()
	active := e.active
	e.mu.Unlock()
	dst.Fill(color.Black)
	e.bank[active].Draw(dst)
	if e.metrics != nil {
		e.metrics.DrawDuration.Observe(time.Since(start).Seconds())
	}
}

// Title implements display.App.
func (e *InputExperiment) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.title
}

// Active returns the presented bank index.
func (e *InputExperiment) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Status implements the API status source.
func (e *InputExperiment) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		SessionID: e.session.ID,
		Phase:     e.active,
		Phases:    len(e.bank),
		Stimulus:  e.bank[e.active].Name(),
		Elapsed:   e.elapsed,
		Frames:    e.frames,
		Done:      e.done,
	}
}

// switchTo swaps the active stimulus, closing out the running event.
// Callers hold e.mu.
func (e *InputExperiment) switchTo(idx int) {
	if idx < 0 || idx >= len(e.bank) || idx == e.active {
		return
	}
	e.closeEvent()
	e.openEvent(idx, e.elapsed)
	e.log.Info("switched to stimulus ", idx, " (", e.bank[idx].Name(), ") at ", e.elapsed)
	if e.metrics != nil {
		e.metrics.StimulusSwitch.Inc()
	}
}

func (e *InputExperiment) openEvent(idx int, t time.Duration) {
	e.active = idx
	e.switchedAt = t
	e.title = fmt.Sprintf("finstim input: %s", e.bank[idx].Name())
	e.open = Event{
		SessionID:    e.session.ID,
		Seq:          e.seq,
		StimIndex:    idx,
		StimulusName: e.bank[idx].Name(),
		Onset:        t,
	}
	if e.params != nil {
		e.open.Params = e.params[idx]
	}
	e.openFrames = e.frames
	e.hasOpen = true
	e.seq++
}

func (e *InputExperiment) closeEvent() {
	if !e.hasOpen {
		return
	}
	e.open.Offset = e.elapsed
	e.open.Frames = int(e.frames - e.openFrames)
	if err := e.rec.Record(e.open); err != nil {
		e.log.Error("record event ", e.open.Seq, ": ", err)
	}
	e.hasOpen = false
}

func (e *InputExperiment) finish() error {
	e.closeEvent()
	e.done = true
	e.title = "finstim input: done"
	e.log.Info("input session ", e.session.ID, " finished after ", e.elapsed)
	if err := e.rec.Close(); err != nil {
		return fmt.Errorf("experiment: close recorder: %w", err)
	}
	return nil
}
