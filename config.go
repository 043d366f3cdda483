package thumbstick

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	defaultSlop = 8.0 // pixels
)

// Config holds the tunable behavior of a Controller.
type Config struct {
	// Slop is the distance in pixels a press can wander before it counts as a drag.
	Slop float64 `yaml:"slop" json:"slop"`
	// MotionConstraint restricts drags to one axis.
	MotionConstraint MotionConstraint `yaml:"motion_constraint" json:"motion_constraint"`
	// StartOnFirstTouch starts the drag on the press itself instead of
	// waiting for the pointer to leave the slop.
	StartOnFirstTouch bool `yaml:"start_on_first_touch" json:"start_on_first_touch"`
	// Radius, if set, fixes the maximum stick displacement and disables
	// recomputation from the control size.
	Radius *float64 `yaml:"radius,omitempty" json:"radius,omitempty"`
	// OutputMode selects polar or per-axis drag output.
	OutputMode OutputMode `yaml:"output_mode" json:"output_mode"`
}

// DefaultConfig returns the configuration a new Controller starts with.
func DefaultConfig() Config {
	return Config{
		Slop:              defaultSlop,
		MotionConstraint:  ConstraintNone,
		StartOnFirstTouch: true,
		OutputMode:        OutputPolar,
	}
}

// Validate reports every invalid field, joined.
func (c Config) Validate() error {
	var errs []error
	if c.Slop < 0 {
		errs = append(errs, fmt.Errorf("slop %v is negative: %w", c.Slop, ErrInvalidConfig))
	}
	if c.Radius != nil && *c.Radius < 0 {
		errs = append(errs, fmt.Errorf("radius %v is negative: %w", *c.Radius, ErrInvalidConfig))
	}
	if c.MotionConstraint > ConstraintVertical {
		errs = append(errs, fmt.Errorf("motion constraint %d: %w", c.MotionConstraint, ErrInvalidConfig))
	}
	if c.OutputMode > OutputRect {
		errs = append(errs, fmt.Errorf("output mode %d: %w", c.OutputMode, ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// UnmarshalYAML decodes over DefaultConfig so absent keys keep their defaults.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	p := plain(DefaultConfig())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Config(p)
	return nil
}

// LoadConfig decodes a YAML config over DefaultConfig and validates it.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FixedRadius returns a pointer suitable for Config.Radius.
func FixedRadius(r float64) *float64 {
	return &r
}
