package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is wrapped by every validation failure.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WorldSpec holds the level-wide tuning shared by every actor.
type WorldSpec struct {
	Name      string  `yaml:"name"`
	Gravity   float64 `yaml:"gravity"`
	Damping   float64 `yaml:"damping"`
	MaxFall   float64 `yaml:"max_fall"`
	FallLimit float64 `yaml:"fall_limit"`
	// StartLevel is the player's level when a stage begins.
	StartLevel int `yaml:"start_level"`
}

func LoadWorldSpec() (*WorldSpec, error) {
	spec, err := LoadSpec[WorldSpec]("world.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: world.yaml: %w", err)
	}
	return &spec, nil
}

func (s WorldSpec) Validate() error {
	switch {
	case s.Gravity >= 0:
		return fmt.Errorf("%w: gravity must pull down, got %v", ErrInvalidSpec, s.Gravity)
	case s.Damping <= 0 || s.Damping > 1:
		return fmt.Errorf("%w: damping must be in (0, 1], got %v", ErrInvalidSpec, s.Damping)
	case s.MaxFall < 0:
		return fmt.Errorf("%w: max_fall must not be negative, got %v", ErrInvalidSpec, s.MaxFall)
	case s.StartLevel < 1 || s.StartLevel > 2:
		return fmt.Errorf("%w: start_level must be 1 or 2, got %d", ErrInvalidSpec, s.StartLevel)
	}
	return nil
}

type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}
