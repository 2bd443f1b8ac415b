// Package config holds the per-run simulation constants and the options that
// select how a run is rendered.
package config

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Quality is the rendering detail tier.
type Quality int

const (
	QualityLow    Quality = 1 // link lines only
	QualityMedium Quality = 2 // plus mass-sized discs
	QualityHigh   Quality = 3 // plus outline rings
)

// QualityFromInt maps 1-3 to a tier. Anything else is Low.
func QualityFromInt(n int) Quality {
	switch q := Quality(n); q {
	case QualityLow, QualityMedium, QualityHigh:
		return q
	default:
		return QualityLow
	}
}

func (q Quality) String() string {
	switch q {
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	default:
		return "low"
	}
}

// Varying selects which parameter the sweep spreads across pendulums.
type Varying uint8

const (
	VaryAngle Varying = iota
	VaryLength1
	VaryLength2
	VaryMass1
	VaryMass2
)

var varyingNames = [...]string{"angle", "length1", "length2", "mass1", "mass2"}

// ParseVarying returns the selector for name. Unknown names select VaryAngle.
func ParseVarying(name string) Varying {
	for i, n := range varyingNames {
		if strings.EqualFold(n, name) {
			return Varying(i)
		}
	}
	return VaryAngle
}

func (v Varying) String() string {
	if int(v) < len(varyingNames) {
		return varyingNames[v]
	}
	return "unknown"
}

// UnmarshalYAML accepts the selector by name.
func (v *Varying) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	*v = ParseVarying(name)
	return nil
}

// MarshalYAML writes the selector by name.
func (v Varying) MarshalYAML() (any, error) {
	return v.String(), nil
}

// UnmarshalYAML accepts the tier as 1-3.
func (q *Quality) UnmarshalYAML(node *yaml.Node) error {
	var n int
	if err := node.Decode(&n); err != nil {
		return err
	}
	*q = QualityFromInt(n)
	return nil
}

// Settings is the immutable-per-run bag of constants handed by value to every
// update and draw call.
type Settings struct {
	G             float64 `yaml:"gravity" json:"g"`
	Mass1         float64 `yaml:"mass1" json:"mass1"` // max mass when varying mass1
	Mass2         float64 `yaml:"mass2" json:"mass2"` // max mass when varying mass2
	Length1       float64 `yaml:"radius1" json:"radius1"`
	Length2       float64 `yaml:"radius2" json:"radius2"`
	Magnification float64 `yaml:"magnification" json:"magnification"`
	Transparency  float64 `yaml:"transparency" json:"transparency"` // stroke alpha in [0, 1]
	Width         float64 `yaml:"width" json:"width"`
	Speed         float64 `yaml:"speed" json:"speed"` // time-step multiplier
	Quality       Quality `yaml:"quality" json:"quality"`
	Varying       Varying `yaml:"vary" json:"vary"`
}

// Config is everything read from the command line for one run.
type Config struct {
	Settings Settings `yaml:",inline"`

	Count      int     `yaml:"pendulums"`
	Separation float64 `yaml:"separation"` // angle spread, used when varying angle

	Compile   bool   `yaml:"compile"`
	Frames    int    `yaml:"frames"`
	FramesDir string `yaml:"frames_dir"`
	Output    string `yaml:"output"`
	ImageSize int    `yaml:"image_size"`

	WindowSize int `yaml:"window_size"`
	TPS        int `yaml:"tps"`

	Record string `yaml:"record"` // SQLite file runs are saved to
	Resume string `yaml:"resume"` // run id (or "latest") to restore from Record

	Jitter float64 `yaml:"jitter"`
	Seed   int64   `yaml:"seed"`

	ConfigFile string `yaml:"-"`
	Help       bool   `yaml:"-"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Settings: Settings{
			G:             0.1,
			Mass1:         10,
			Mass2:         10,
			Length1:       125,
			Length2:       125,
			Magnification: 2,
			Transparency:  0.05,
			Width:         1.5,
			Speed:         1,
			Quality:       QualityLow,
			Varying:       VaryAngle,
		},
		Count:      50_000,
		Separation: 0.1,
		Frames:     50,
		FramesDir:  "frames",
		Output:     "output.mp4",
		ImageSize:  1500,
		WindowSize: 600,
		TPS:        60,
		Seed:       1,
	}
}

// Load decodes YAML from r over cfg. Keys absent from the document keep their
// current values.
func Load(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
