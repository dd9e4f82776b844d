package experiment

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finstim/stimulus"
)

const testProtocolYAML = `name: habituation
texture_size: 64
stimuli:
  - kind: sin
    spatial_freq: 4
    angle: -20
    velocity: 0.1
  - kind: grating
    spatial_freq: 8
    angle: 90
  - kind: sin
    spatial_freq: 4
    binocular:
      angles: [-30, 30]
      velocities: [0.05, -0.05]
      band_radius: 2
sequence: [0, 1, 2]
stim_durations: [2, 2, 4]
baseline_durations: [1, 1, 1, 1]
`

func writeProtocol(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "protocol.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadProtocol(t *testing.T) {
	p, err := LoadProtocol(writeProtocol(t, testProtocolYAML))
	require.NoError(t, err)

	assert.Equal(t, "habituation", p.Name)
	assert.Equal(t, 64, p.TextureSize)
	require.Len(t, p.Stimuli, 3)
	assert.Equal(t, KindSin, p.Stimuli[0].Kind)
	assert.Equal(t, 4.0, p.Stimuli[0].SpatialFreq)
	require.NotNil(t, p.Stimuli[2].Binocular)
	assert.Equal(t, [2]float64{-30, 30}, p.Stimuli[2].Binocular.Angles)
	assert.Equal(t, []int{0, 1, 2}, p.Sequence)
}

func TestLoadProtocolMissingFile(t *testing.T) {
	_, err := LoadProtocol(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestProtocolValidate(t *testing.T) {
	base := func() *Protocol {
		return &Protocol{
			Name:              "p",
			Stimuli:           []StimulusSpec{{Kind: KindSin, SpatialFreq: 4}},
			Sequence:          []int{0},
			StimDurations:     []float64{1},
			BaselineDurations: []float64{1, 1},
		}
	}

	require.NoError(t, base().Validate())

	p := base()
	p.Name = ""
	assert.Error(t, p.Validate())

	p = base()
	p.Stimuli[0].Kind = "plaid"
	assert.Error(t, p.Validate())

	p = base()
	p.Sequence = []int{1}
	assert.Error(t, p.Validate(), "sequence index beyond bank")

	p = base()
	p.StimDurations = []float64{0}
	assert.Error(t, p.Validate())

	p = base()
	p.BaselineDurations = []float64{1}
	assert.Error(t, p.Validate(), "needs at least two baselines")
}

func TestProtocolBuild(t *testing.T) {
	p, err := LoadProtocol(writeProtocol(t, testProtocolYAML))
	require.NoError(t, err)

	bank, params, tl, err := p.Build(0)
	require.NoError(t, err)

	require.Len(t, bank, 3)
	require.Len(t, params, 3)
	assert.Equal(t, "FullFieldDrift", bank[0].Name())
	assert.Equal(t, "FullFieldStatic", bank[1].Name())
	assert.Equal(t, "BinocularDrift", bank[2].Name())
	_, ok := bank[2].(*stimulus.BinocularDrift)
	assert.True(t, ok)

	assert.Contains(t, params[0], `"kind":"sin"`)
	assert.Contains(t, params[2], `"binocular"`)

	// 4 baselines interleave the 3 stimulus phases.
	assert.Equal(t, 7, tl.Len())
	assert.Equal(t, 12*time.Second, tl.Total())
}

func TestProtocolBuildDefaultSize(t *testing.T) {
	p := &Protocol{
		Name:              "p",
		Stimuli:           []StimulusSpec{{Kind: KindCheckerboard, CheckSize: 8}},
		Sequence:          []int{0},
		StimDurations:     []float64{1},
		BaselineDurations: []float64{1, 1},
	}
	require.NoError(t, p.Validate())

	bank, _, _, err := p.Build(128)
	require.NoError(t, err)
	require.Len(t, bank, 1)

	_, _, _, err = p.Build(0)
	assert.Error(t, err, "no texture size anywhere")
}