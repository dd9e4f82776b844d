package experiment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finstim/stimulus"
	"finstim/texture"
)

type memRecorder struct {
	session Session
	events  []Event
	closed  bool
}

func (m *memRecorder) Begin(s Session) error { m.session = s; return nil }
func (m *memRecorder) Record(e Event) error  { m.events = append(m.events, e); return nil }
func (m *memRecorder) Close() error          { m.closed = true; return nil }

func testBinocularBank(t *testing.T) []stimulus.Stimulus {
	t.Helper()
	tex, err := texture.Sin(64, 4)
	require.NoError(t, err)
	left, err := stimulus.NewBinocularDrift(tex, stimulus.BinocularParams{
		Angles:     [2]float64{-30, 30},
		Velocities: [2]float64{0.1, 0.1},
		BandRadius: 2,
	})
	require.NoError(t, err)
	right, err := stimulus.NewBinocularDrift(tex, stimulus.BinocularParams{
		Angles:     [2]float64{30, -30},
		Velocities: [2]float64{-0.1, -0.1},
		BandRadius: 2,
	})
	require.NoError(t, err)
	return []stimulus.Stimulus{left, right}
}

func TestMidlinePolicy(t *testing.T) {
	cases := []struct {
		pos  Position
		want Decision
	}{
		{Position{X: -0.5, Y: 0.2, Heading: 90}, Decision{0, [2]float64{-0.5, 0.2}, 90}},
		{Position{X: 0.5, Y: -0.2, Heading: 180}, Decision{1, [2]float64{0.5, -0.2}, 180}},
		{Position{X: 0, Y: 0}, Decision{1, [2]float64{0, 0}, 0}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MidlinePolicy{}.Decide(c.pos), "position %+v", c.pos)
	}
}

func TestNewInputExperimentValidation(t *testing.T) {
	_, err := NewInputExperiment(InputConfig{})
	assert.Error(t, err)

	_, err = NewInputExperiment(InputConfig{
		Bank:   testBank(t),
		Params: []string{`{}`},
	})
	assert.Error(t, err)
}

func TestSetPositionSwitchesAcrossMidline(t *testing.T) {
	rec := &memRecorder{}
	e, err := NewInputExperiment(InputConfig{Bank: testBank(t), Recorder: rec})
	require.NoError(t, err)
	assert.Equal(t, 0, e.Active())

	for i := 0; i < 5; i++ {
		done, err := e.Step(time.Duration(i) * 100 * time.Millisecond)
		require.NoError(t, err)
		require.False(t, done)
	}

	require.NoError(t, e.SetPosition(Position{X: 0.3}))
	assert.Equal(t, 1, e.Active())

	// The closed-out segment covers the frames stepped so far.
	require.Len(t, rec.events, 1)
	assert.Equal(t, 0, rec.events[0].StimIndex)
	assert.Equal(t, time.Duration(0), rec.events[0].Onset)
	assert.Equal(t, 400*time.Millisecond, rec.events[0].Offset)
	assert.Equal(t, 5, rec.events[0].Frames)

	// Same side again: no switch, no extra event.
	require.NoError(t, e.SetPosition(Position{X: 0.9}))
	assert.Equal(t, 1, e.Active())
	assert.Len(t, rec.events, 1)

	for i := 5; i < 10; i++ {
		_, err := e.Step(time.Duration(i) * 100 * time.Millisecond)
		require.NoError(t, err)
	}
	require.NoError(t, e.SetPosition(Position{X: -0.3}))
	assert.Equal(t, 0, e.Active())
	require.Len(t, rec.events, 2)
	assert.Equal(t, 1, rec.events[1].StimIndex)
	assert.Equal(t, 400*time.Millisecond, rec.events[1].Onset)
	assert.Equal(t, 900*time.Millisecond, rec.events[1].Offset)
	assert.Equal(t, 5, rec.events[1].Frames)
}

func TestSetPositionRejectsOutOfRange(t *testing.T) {
	e, err := NewInputExperiment(InputConfig{Bank: testBank(t)})
	require.NoError(t, err)

	assert.Error(t, e.SetPosition(Position{X: 1.5}))
	assert.Error(t, e.SetPosition(Position{Y: -2}))
	assert.Equal(t, 0, e.Active())
}

func TestSetPositionRetargetsBinocular(t *testing.T) {
	e, err := NewInputExperiment(InputConfig{Bank: testBinocularBank(t)})
	require.NoError(t, err)

	require.NoError(t, e.SetPosition(Position{X: 0.25, Y: -0.5, Heading: 45}))
	assert.Equal(t, 1, e.Active())

	b := e.bank[1].(*stimulus.BinocularDrift)
	x, y := b.Center()
	assert.InDelta(t, 0.25, x, 1e-9)
	assert.InDelta(t, -0.5, y, 1e-9)
	assert.InDelta(t, 45, b.MaskAngle(), 1e-9)
}

func TestInputExperimentStatus(t *testing.T) {
	e, err := NewInputExperiment(InputConfig{Bank: testBank(t), Params: []string{`{"v":0.1}`, `{"v":-0.08}`}})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := e.Step(time.Duration(i) * 100 * time.Millisecond)
		require.NoError(t, err)
	}

	st := e.Status()
	assert.Equal(t, e.Session().ID, st.SessionID)
	assert.Equal(t, 0, st.Phase)
	assert.Equal(t, 2, st.Phases)
	assert.Equal(t, "FullFieldDrift", st.Stimulus)
	assert.Equal(t, 200*time.Millisecond, st.Elapsed)
	assert.Equal(t, uint64(3), st.Frames)
	assert.False(t, st.Done)
}
