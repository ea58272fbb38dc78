package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is a prefab: a name plus raw component specs keyed by
// component name. Each raw value is decoded by the builder that owns it.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](PrefabName(filename))
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (s SizeSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %vx%v", ErrInvalidSpec, s.Width, s.Height)
	}
	return nil
}

type ActorComponentSpec struct {
	Kind string `yaml:"kind"`
}

type StateComponentSpec struct {
	Initial string `yaml:"initial"`
	Facing  string `yaml:"facing"`
}

type BodyComponentSpec struct {
	SizeSpec `yaml:",inline"`
}

// MotionComponentSpec overrides the world tuning for one prefab. Unset
// fields keep the world value.
type MotionComponentSpec struct {
	Damping   *float64 `yaml:"damping"`
	CheckFall *bool    `yaml:"check_fall"`
}

type PlayerComponentSpec struct {
	MaxVelocity      float64  `yaml:"max_velocity"`
	JumpVelocity     float64  `yaml:"jump_velocity"`
	JumpBoost        float64  `yaml:"jump_boost"`
	WalkSpeed        float64  `yaml:"walk_speed"`
	InvulnerableTime float64  `yaml:"invulnerable_time"`
	BlinkInterval    float64  `yaml:"blink_interval"`
	Small            SizeSpec `yaml:"small"`
	Big              SizeSpec `yaml:"big"`
}

func (s PlayerComponentSpec) Validate() error {
	if s.MaxVelocity <= 0 {
		return fmt.Errorf("%w: max_velocity must be positive, got %v", ErrInvalidSpec, s.MaxVelocity)
	}
	if s.JumpVelocity <= 0 {
		return fmt.Errorf("%w: jump_velocity must be positive, got %v", ErrInvalidSpec, s.JumpVelocity)
	}
	if s.InvulnerableTime < 0 || s.BlinkInterval < 0 {
		return fmt.Errorf("%w: invulnerability timings must not be negative", ErrInvalidSpec)
	}
	if err := s.Small.Validate(); err != nil {
		return fmt.Errorf("small: %w", err)
	}
	if err := s.Big.Validate(); err != nil {
		return fmt.Errorf("big: %w", err)
	}
	return nil
}

type EnemyComponentSpec struct {
	Kind        string  `yaml:"kind"`
	Speed       float64 `yaml:"speed"`
	Script      string  `yaml:"script"`
	TrampleTime float64 `yaml:"trample_time"`
}

type PickupComponentSpec struct {
	Kind  string  `yaml:"kind"`
	Speed float64 `yaml:"speed"`
}

type ObstacleComponentSpec struct {
	Kind     string `yaml:"kind"`
	Contents string `yaml:"contents"`
}

type FlagComponentSpec struct {
	// Width of the pole; its height comes from the level.
	Width float64 `yaml:"width"`
}

type SpriteComponentSpec struct {
	Color YAMLColor `yaml:"color"`
	Glyph string    `yaml:"glyph"`
	Layer int       `yaml:"layer"`
}

type CameraComponentSpec struct {
	ViewWidth  float64 `yaml:"view_width"`
	Smoothness float64 `yaml:"smoothness"`
}
