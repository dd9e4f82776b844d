package experiment

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"finstim/internal/logger"
	"finstim/internal/metrics"
	"finstim/stimulus"
)

// DefaultBackground is the mid-gray shown during baseline phases.
var DefaultBackground = color.RGBA{R: 0x7F, G: 0x7F, B: 0x7F, A: 0xFF}

// RunnerConfig wires a timeline to a stimulus bank plus the ambient
// services of a run.
type RunnerConfig struct {
	Timeline *Timeline
	// Bank holds the stimuli addressed by timeline phase indices.
	Bank []stimulus.Stimulus
	// Params optionally holds a JSON parameter blob per bank entry,
	// copied into event records.
	Params []string
	// Background is the baseline color; zero value means the default
	// mid-gray.
	Background color.RGBA
	Recorder   Recorder
	Logger     logger.Logger
	Metrics    *metrics.Metrics
	// Protocol names the protocol in the session record.
	Protocol string
	// Profile logs per-phase frame counts at the end of the run.
	Profile bool
}

// Runner drives a timed protocol: on each phase change it swaps the
// presented stimulus, retitles the window, records the event and
// updates metrics. It implements display.App.
type Runner struct {
	tl      *Timeline
	bank    []stimulus.Stimulus
	params  []string
	bg      color.RGBA
	rec     Recorder
	log     logger.Logger
	metrics *metrics.Metrics
	profile bool

	mu          sync.Mutex
	session     Session
	cur         int
	seq         int
	open        Event
	hasOpen     bool
	elapsed     time.Duration
	frames      uint64
	phaseFrames []int
	title       string
	done        bool
}

// NewRunner validates the wiring and creates a runner with a fresh
// session ID.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Timeline == nil {
		return nil, fmt.Errorf("experiment: runner needs a timeline")
	}
	if len(cfg.Bank) == 0 {
		return nil, fmt.Errorf("experiment: runner needs a stimulus bank")
	}
	for i := 0; i < cfg.Timeline.Len(); i++ {
		if idx := cfg.Timeline.Phase(i).StimIndex; idx >= len(cfg.Bank) {
			return nil, fmt.Errorf("experiment: phase %d references stimulus %d, bank has %d", i, idx, len(cfg.Bank))
		}
	}
	if cfg.Params != nil && len(cfg.Params) != len(cfg.Bank) {
		return nil, fmt.Errorf("experiment: %d param blobs for %d stimuli", len(cfg.Params), len(cfg.Bank))
	}
	if cfg.Recorder == nil {
		cfg.Recorder = NopRecorder{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewConsoleLogger(logger.LevelInfo)
	}
	if cfg.Background == (color.RGBA{}) {
		cfg.Background = DefaultBackground
	}

	r := &Runner{
		tl:          cfg.Timeline,
		bank:        cfg.Bank,
		params:      cfg.Params,
		bg:          cfg.Background,
		rec:         cfg.Recorder,
		log:         cfg.Logger,
		metrics:     cfg.Metrics,
		profile:     cfg.Profile,
		cur:         -1,
		phaseFrames: make([]int, cfg.Timeline.Len()),
		title:       "finstim: starting",
		session: Session{
			ID:        uuid.NewString(),
			Protocol:  cfg.Protocol,
			StartedAt: time.Now(),
		},
	}
	if err := r.rec.Begin(r.session); err != nil {
		return nil, fmt.Errorf("experiment: begin session: %w", err)
	}
	r.log.Info("session ", r.session.ID, " started, protocol ", cfg.Protocol,
		", ", cfg.Timeline.Len(), " phases over ", cfg.Timeline.Total())
	return r, nil
}

// Session returns the session record for this run.
func (r *Runner) Session() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Step implements display.App.
func (r *Runner) Step(t time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return true, nil
	}

	idx, finished := r.tl.At(t)
	if finished {
		r.elapsed = r.tl.Total()
		r.closeEvent(r.tl.Total())
		return true, r.finish()
	}

	if idx != r.cur {
		r.closeEvent(t)
		r.openPhase(idx, t)
	}
	r.elapsed = t
	r.frames++
	r.phaseFrames[idx]++
	if r.metrics != nil {
		r.metrics.FramesPresented.WithLabelValues(r.stimName(idx)).Inc()
	}

	if ph := r.tl.Phase(idx); ph.StimIndex != BaselineIndex {
		r.bank[ph.StimIndex].Advance(t - r.tl.Start(idx))
	}
	return false, nil
}

// Draw implements display.App.
func (r *Runner) Draw(dst *ebiten.Image) {
	start := time.Now()
	r.drawFrame(dst)
	if r.metrics != nil {
		r.metrics.DrawDuration.Observe(time.Since(start).Seconds())
	}
}

func (r *Runner) drawFrame(dst *ebiten.Image) {
	r.mu.Lock()
	idx := r.cur
	r.mu.Unlock()
	if idx < 0 {
		dst.Fill(r.bg)
		return
	}
	ph := r.tl.Phase(idx)
	if ph.StimIndex == BaselineIndex {
		dst.Fill(r.bg)
		return
	}
	dst.Fill(color.Black)
	r.bank[ph.StimIndex].Draw(dst)
}

// Title implements display.App.
func (r *Runner) Title() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.title
}

// Status is a point-in-time snapshot for the control API.
type Status struct {
	SessionID string        `json:"session_id"`
	Phase     int           `json:"phase"`
	Phases    int           `json:"phases"`
	Stimulus  string        `json:"stimulus"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Frames    uint64        `json:"frames"`
	Done      bool          `json:"done"`
}

// Status implements the API status source.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.cur
	if idx < 0 {
		idx = 0
	}
	return Status{
		SessionID: r.session.ID,
		Phase:     idx,
		Phases:    r.tl.Len(),
		Stimulus:  r.stimName(idx),
		Elapsed:   r.elapsed,
		Frames:    r.frames,
		Done:      r.done,
	}
}

func (r *Runner) stimName(phase int) string {
	ph := r.tl.Phase(phase)
	if ph.StimIndex == BaselineIndex {
		return "baseline"
	}
	return r.bank[ph.StimIndex].Name()
}

func (r *Runner) openPhase(idx int, t time.Duration) {
	r.cur = idx
	name := r.stimName(idx)
	r.title = fmt.Sprintf("finstim %d/%d: %s", idx+1, r.tl.Len(), name)

	ev := Event{
		SessionID:    r.session.ID,
		Seq:          r.seq,
		StimIndex:    r.tl.Phase(idx).StimIndex,
		StimulusName: name,
		Onset:        t,
	}
	if si := ev.StimIndex; r.params != nil && si != BaselineIndex {
		ev.Params = r.params[si]
	}
	r.open = ev
	r.hasOpen = true
	r.seq++

	r.log.Info("phase ", idx+1, "/", r.tl.Len(), ": ", name, " at ", t)
	if r.metrics != nil {
		r.metrics.PhaseTransitions.Inc()
		r.metrics.CurrentPhase.Set(float64(idx))
	}
}

// closeEvent finalizes the open event at offset t and records it.
func (r *Runner) closeEvent(t time.Duration) {
	if !r.hasOpen {
		return
	}
	r.open.Offset = t
	r.open.Frames = r.phaseFrames[r.cur]
	if err := r.rec.Record(r.open); err != nil {
		r.log.Error("record event ", r.open.Seq, ": ", err)
	}
	r.hasOpen = false
}

func (r *Runner) finish() error {
	r.done = true
	r.title = "finstim: done"
	if r.profile {
		for i, n := range r.phaseFrames {
			r.log.Info("phase ", i+1, ": ", n, " frames over ", r.tl.Phase(i).Duration)
		}
		r.log.Info("total frames ", r.frames, " over ", r.tl.Total())
	}
	r.log.Info("session ", r.session.ID, " finished")
	if err := r.rec.Close(); err != nil {
		return fmt.Errorf("experiment: close recorder: %w", err)
	}
	return nil
}
