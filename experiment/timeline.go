// Package experiment schedules stimuli into timed protocols, records
// what was shown, and reacts to live subject input.
package experiment

import (
	"fmt"
	"time"
)

// BaselineIndex marks a phase that shows the background instead of a
// stimulus.
const BaselineIndex = -1

// Phase is one epoch of a protocol: a stimulus (by bank index) or
// baseline, held for a duration.
type Phase struct {
	StimIndex int
	Duration  time.Duration
}

// Timeline is the flattened phase sequence of a protocol. Protocols
// alternate baseline and stimulus epochs, starting and ending at
// baseline, so there is always one more baseline than stimulus.
type Timeline struct {
	phases []Phase
	// ends[i] is the cumulative end time of phase i.
	ends []time.Duration
}

// NewTimeline interleaves stimulus phases with baselines.
// sequence[i] is the stimulus bank index shown for stimDurations[i];
// baselineDurations[0] runs before the first stimulus and
// baselineDurations[i+1] after stimulus i.
func NewTimeline(sequence []int, stimDurations, baselineDurations []time.Duration) (*Timeline, error) {
	if len(sequence) == 0 {
		return nil, fmt.Errorf("experiment: empty stimulus sequence")
	}
	if len(stimDurations) != len(sequence) {
		return nil, fmt.Errorf("experiment: %d durations for %d stimuli", len(stimDurations), len(sequence))
	}
	if len(baselineDurations) != len(sequence)+1 {
		return nil, fmt.Errorf("experiment: need %d baseline durations, got %d", len(sequence)+1, len(baselineDurations))
	}
	for i, idx := range sequence {
		if idx < 0 {
			return nil, fmt.Errorf("experiment: sequence[%d] = %d is not a bank index", i, idx)
		}
	}

	tl := &Timeline{}
	add := func(p Phase) error {
		if p.Duration <= 0 {
			return fmt.Errorf("experiment: phase duration %v must be positive", p.Duration)
		}
		var end time.Duration
		if n := len(tl.ends); n > 0 {
			end = tl.ends[n-1]
		}
		tl.phases = append(tl.phases, p)
		tl.ends = append(tl.ends, end+p.Duration)
		return nil
	}

	for i := range sequence {
		if err := add(Phase{StimIndex: BaselineIndex, Duration: baselineDurations[i]}); err != nil {
			return nil, err
		}
		if err := add(Phase{StimIndex: sequence[i], Duration: stimDurations[i]}); err != nil {
			return nil, err
		}
	}
	if err := add(Phase{StimIndex: BaselineIndex, Duration: baselineDurations[len(sequence)]}); err != nil {
		return nil, err
	}
	return tl, nil
}

// Len returns the number of phases.
func (tl *Timeline) Len() int { return len(tl.phases) }

// Phase returns phase i.
func (tl *Timeline) Phase(i int) Phase {
	if i < 0 || i >= len(tl.phases) {
		return Phase{StimIndex: BaselineIndex}
	}
	return tl.phases[i]
}

// Total returns the protocol duration.
func (tl *Timeline) Total() time.Duration {
	if len(tl.ends) == 0 {
		return 0
	}
	return tl.ends[len(tl.ends)-1]
}

// Start returns the onset time of phase i.
func (tl *Timeline) Start(i int) time.Duration {
	if i <= 0 || i >= len(tl.ends) {
		return 0
	}
	return tl.ends[i-1]
}

// At returns the phase active at time t. done reports that t is past
// the end of the protocol.
func (tl *Timeline) At(t time.Duration) (index int, done bool) {
	if t < 0 {
		return 0, false
	}
	for i, end := range tl.ends {
		if t < end {
			return i, false
		}
	}
	return len(tl.phases) - 1, true
}
