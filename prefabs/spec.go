package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Prefab file names.
const (
	PlayerFile  = "player.yaml"
	SnowmanFile = "snowman.yaml"
	PickupsFile = "pickups.yaml"
	HUDFile     = "hud.yaml"
)

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

type PlayerSpec struct {
	Name           string        `yaml:"name"`
	MoveSpeed      float64       `yaml:"move_speed"`
	JumpSpeed      float64       `yaml:"jump_speed"`
	BounceSpeed    float64       `yaml:"bounce_speed"`
	KnockbackSpeed float64       `yaml:"knockback_speed"`
	MaxHealth      int           `yaml:"max_health"`
	HazardDamage   int           `yaml:"hazard_damage"`
	EnemyDamage    int           `yaml:"enemy_damage"`
	PickupHealth   int           `yaml:"pickup_health"`
	Flash          FlashSpec     `yaml:"flash"`
	Collider       ColliderSpec  `yaml:"collider"`
	Animation      AnimationSpec `yaml:"animation"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SnowmanSpec struct {
	Name      string        `yaml:"name"`
	MoveSpeed float64       `yaml:"move_speed"`
	DwellMS   int           `yaml:"dwell_ms"`
	FadeMS    int           `yaml:"fade_ms"`
	Script    string        `yaml:"script"`
	Collider  ColliderSpec  `yaml:"collider"`
	Animation AnimationSpec `yaml:"animation"`
}

func LoadSnowmanSpec() (*SnowmanSpec, error) {
	spec, err := LoadSpec[SnowmanSpec](SnowmanFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type PickupsSpec struct {
	Star   PickupSpec `yaml:"star"`
	Health PickupSpec `yaml:"health"`
}

type PickupSpec struct {
	Size   float64    `yaml:"size"`
	Amount int        `yaml:"amount"`
	Color  *YAMLColor `yaml:"color"`
}

func LoadPickupsSpec() (*PickupsSpec, error) {
	spec, err := LoadSpec[PickupsSpec](PickupsFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type HUDSpec struct {
	BarWidth   float64    `yaml:"bar_width"`
	BarHeight  float64    `yaml:"bar_height"`
	TweenMS    int        `yaml:"tween_ms"`
	Margin     float64    `yaml:"margin"`
	Track      *YAMLColor `yaml:"track"`
	Fill       *YAMLColor `yaml:"fill"`
	Text       *YAMLColor `yaml:"text"`
	Background *YAMLColor `yaml:"background"`
	Ground     *YAMLColor `yaml:"ground"`
	Spikes     *YAMLColor `yaml:"spikes"`
	RestartMS  int        `yaml:"restart_ms"`
}

func LoadHUDSpec() (*HUDSpec, error) {
	spec, err := LoadSpec[HUDSpec](HUDFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type FlashSpec struct {
	DurationMS int        `yaml:"duration_ms"`
	From       *YAMLColor `yaml:"from"`
	Hazard     *YAMLColor `yaml:"hazard"`
	Enemy      *YAMLColor `yaml:"enemy"`
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type AnimationSpec struct {
	FPS  float64                     `yaml:"fps"`
	Defs map[string]AnimationDefSpec `yaml:"defs"`
}

type AnimationDefSpec struct {
	Frames int        `yaml:"frames"`
	FPS    float64    `yaml:"fps"`
	Loop   *bool      `yaml:"loop"`
	Color  *YAMLColor `yaml:"color"`
}

// Looping reports whether the animation repeats. Animations loop unless the
// spec says otherwise.
func (a AnimationDefSpec) Looping() bool {
	return a.Loop == nil || *a.Loop
}

// Set is every prefab the game reads.
type Set struct {
	Player  *PlayerSpec
	Snowman *SnowmanSpec
	Pickups *PickupsSpec
	HUD     *HUDSpec
}

func LoadSet() (*Set, error) {
	player, err := LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	snowman, err := LoadSnowmanSpec()
	if err != nil {
		return nil, err
	}
	pickups, err := LoadPickupsSpec()
	if err != nil {
		return nil, err
	}
	hud, err := LoadHUDSpec()
	if err != nil {
		return nil, err
	}
	return &Set{Player: player, Snowman: snowman, Pickups: pickups, HUD: hud}, nil
}

// Reload re-reads the prefab behind path, which may be a bare file name or a
// path reported by the watcher. It reports whether path named a known prefab.
func (s *Set) Reload(path string) (bool, error) {
	switch baseName(path) {
	case PlayerFile:
		spec, err := LoadPlayerSpec()
		if err != nil {
			return true, err
		}
		s.Player = spec
	case SnowmanFile:
		spec, err := LoadSnowmanSpec()
		if err != nil {
			return true, err
		}
		s.Snowman = spec
	case PickupsFile:
		spec, err := LoadPickupsSpec()
		if err != nil {
			return true, err
		}
		s.Pickups = spec
	case HUDFile:
		spec, err := LoadHUDSpec()
		if err != nil {
			return true, err
		}
		s.HUD = spec
	default:
		return false, nil
	}
	return true, nil
}

// Millis converts a millisecond field, falling back to def when unset.
func Millis(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

type YAMLColor struct {
	color.Color
}

// Or returns the parsed colour, or def when c was not set.
func (c *YAMLColor) Or(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
