package experiment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"finstim/stimulus"
	"finstim/texture"
)

// Texture kinds accepted in protocol files.
const (
	KindSin          = "sin"
	KindSin16        = "sin16"
	KindGrating      = "grating"
	KindSinRGB       = "sin_rgb"
	KindGratingRGB   = "grating_rgb"
	KindFlatRGB      = "flat_rgb"
	KindCheckerboard = "checkerboard"
	KindCircle       = "circle"
)

// BinocularSpec turns a stimulus entry into a binocular presentation.
type BinocularSpec struct {
	Angles     [2]float64 `mapstructure:"angles" json:"angles"`
	Velocities [2]float64 `mapstructure:"velocities" json:"velocities"`
	MaskAngle  float64    `mapstructure:"mask_angle" json:"mask_angle"`
	Position   [2]float64 `mapstructure:"position" json:"position" validate:"dive,gte=-1,lte=1"`
	BandRadius int        `mapstructure:"band_radius" json:"band_radius" validate:"gte=0"`
}

// StimulusSpec describes one bank entry of a protocol file.
type StimulusSpec struct {
	Kind        string  `mapstructure:"kind" json:"kind" validate:"required,oneof=sin sin16 grating sin_rgb grating_rgb flat_rgb checkerboard circle"`
	SpatialFreq float64 `mapstructure:"spatial_freq" json:"spatial_freq,omitempty" validate:"gte=0"`
	Angle       float64 `mapstructure:"angle" json:"angle,omitempty"`
	Velocity    float64 `mapstructure:"velocity" json:"velocity,omitempty"`
	RGB         []int   `mapstructure:"rgb" json:"rgb,omitempty" validate:"omitempty,len=3,dive,gte=0,lte=255"`
	CheckSize   int     `mapstructure:"check_size" json:"check_size,omitempty" validate:"gte=0"`
	Radius      int     `mapstructure:"radius" json:"radius,omitempty" validate:"gte=0"`

	Binocular *BinocularSpec `mapstructure:"binocular" json:"binocular,omitempty"`
}

// Protocol is a parsed protocol file: a stimulus bank plus the timed
// sequence presented from it.
type Protocol struct {
	Name        string         `mapstructure:"name" json:"name" validate:"required"`
	TextureSize int            `mapstructure:"texture_size" json:"texture_size" validate:"gte=0"`
	Stimuli     []StimulusSpec `mapstructure:"stimuli" json:"stimuli" validate:"required,min=1,dive"`
	// Sequence lists bank indices in presentation order.
	Sequence []int `mapstructure:"sequence" json:"sequence" validate:"required,min=1,dive,gte=0"`
	// Durations are seconds.
	StimDurations     []float64 `mapstructure:"stim_durations" json:"stim_durations" validate:"required,min=1,dive,gt=0"`
	BaselineDurations []float64 `mapstructure:"baseline_durations" json:"baseline_durations" validate:"required,min=2,dive,gt=0"`
}

// LoadProtocol reads a protocol file (YAML or JSON by extension).
func LoadProtocol(path string) (*Protocol, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("experiment: read protocol: %w", err)
	}
	var p Protocol
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("experiment: parse protocol: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks field constraints and cross-references.
func (p *Protocol) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		return fmt.Errorf("experiment: invalid protocol: %w", err)
	}
	for i, idx := range p.Sequence {
		if idx >= len(p.Stimuli) {
			return fmt.Errorf("experiment: sequence[%d] = %d, bank has %d stimuli", i, idx, len(p.Stimuli))
		}
	}
	return nil
}

// Build instantiates the stimulus bank and timeline. defaultTexSize
// applies when the protocol does not set texture_size. The returned
// params blobs mirror each spec for event records.
func (p *Protocol) Build(defaultTexSize int) (bank []stimulus.Stimulus, params []string, tl *Timeline, err error) {
	size := p.TextureSize
	if size <= 0 {
		size = defaultTexSize
	}
	if size <= 0 {
		return nil, nil, nil, fmt.Errorf("experiment: no texture size")
	}

	for i, spec := range p.Stimuli {
		stim, err := spec.Build(size)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("experiment: stimulus %d: %w", i, err)
		}
		blob, err := json.Marshal(spec)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("experiment: stimulus %d params: %w", i, err)
		}
		bank = append(bank, stim)
		params = append(params, string(blob))
	}

	tl, err = NewTimeline(p.Sequence, seconds(p.StimDurations), seconds(p.BaselineDurations))
	if err != nil {
		return nil, nil, nil, err
	}
	return bank, params, tl, nil
}

// Build instantiates the spec as a presentable stimulus.
func (s *StimulusSpec) Build(size int) (stimulus.Stimulus, error) {
	tex, err := s.buildTexture(size)
	if err != nil {
		return nil, err
	}
	if b := s.Binocular; b != nil {
		return stimulus.NewBinocularDrift(tex, stimulus.BinocularParams{
			Angles:     b.Angles,
			Velocities: b.Velocities,
			MaskAngle:  b.MaskAngle,
			Position:   b.Position,
			BandRadius: b.BandRadius,
		})
	}
	return stimulus.NewFullFieldDrift(tex, s.Angle, s.Velocity)
}

func (s *StimulusSpec) buildTexture(size int) (*texture.Texture, error) {
	switch s.Kind {
	case KindSin:
		return texture.Sin(size, s.SpatialFreq)
	case KindSin16:
		return texture.Sin16(size, s.SpatialFreq)
	case KindGrating:
		return texture.Grating(size, s.SpatialFreq)
	case KindSinRGB:
		return texture.SinRGB(size, s.SpatialFreq, s.rgb())
	case KindGratingRGB:
		return texture.GratingRGB(size, s.SpatialFreq, s.rgb())
	case KindFlatRGB:
		return texture.FlatRGB(size, s.rgb())
	case KindCheckerboard:
		return texture.Checkerboard(size, s.CheckSize)
	case KindCircle:
		return texture.Circle(size, size/2, size/2, s.Radius, 0, 0xFF)
	default:
		return nil, fmt.Errorf("unknown texture kind %q", s.Kind)
	}
}

func (s *StimulusSpec) rgb() texture.RGB {
	if len(s.RGB) != 3 {
		return texture.RGB{R: 0xFF, G: 0xFF, B: 0xFF}
	}
	return texture.RGB{R: uint8(s.RGB[0]), G: uint8(s.RGB[1]), B: uint8(s.RGB[2])}
}

func seconds(vals []float64) []time.Duration {
	out := make([]time.Duration, len(vals))
	for i, v := range vals {
		out[i] = time.Duration(v * float64(time.Second))
	}
	return out
}
