package prefabs

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is a prefab: a name plus raw component blocks keyed by
// component name. Blocks are decoded lazily so overrides can be merged first.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (*EntityBuildSpec, error) {
	spec, err := LoadSpec[EntityBuildSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Components == nil {
		spec.Components = map[string]any{}
	}
	return &spec, nil
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var out T
	if raw == nil {
		return out, nil
	}

	bytes, err := yaml.Marshal(raw)
	if err != nil {
		return out, fmt.Errorf("prefabs: marshal component spec: %w", err)
	}
	if err := yaml.Unmarshal(bytes, &out); err != nil {
		return out, fmt.Errorf("prefabs: unmarshal component spec: %w", err)
	}

	return out, nil
}

// MergeComponents overlays override blocks on base. Keys inside a block are
// replaced one by one; a block absent from base is added whole.
func MergeComponents(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for name, block := range base {
		out[name] = block
	}
	for name, block := range override {
		baseBlock, ok := out[name].(map[string]any)
		overBlock, ok2 := block.(map[string]any)
		if !ok || !ok2 {
			out[name] = block
			continue
		}
		merged := make(map[string]any, len(baseBlock)+len(overBlock))
		for k, v := range baseBlock {
			merged[k] = v
		}
		for k, v := range overBlock {
			merged[k] = v
		}
		out[name] = merged
	}
	return out
}

type TransformComponentSpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Heading float64 `yaml:"heading"`
	Scale   float64 `yaml:"scale"`
}

type RigidBodyComponentSpec struct {
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
}

type RotatableBodyComponentSpec struct {
	RotationRate float64 `yaml:"rotation_rate"`
}

type MoveAttributesComponentSpec struct {
	Speed    float64 `yaml:"speed"`
	TurnRate float64 `yaml:"turn_rate"`
}

type ScriptControlComponentSpec struct {
	Script string `yaml:"script"`
}

type CircleColliderComponentSpec struct {
	Radius float64 `yaml:"radius"`
}

type HealthComponentSpec struct {
	HP  int `yaml:"hp"`
	Max int `yaml:"max"`
}

type ProjectileEmitterComponentSpec struct {
	ProjectileSpeed    float64       `yaml:"projectile_speed"`
	Cooldown           time.Duration `yaml:"cooldown"`
	ProjectileDuration time.Duration `yaml:"projectile_duration"`
	HitDamage          int           `yaml:"hit_damage"`
	Friendly           bool          `yaml:"friendly"`
}

type OrbitComponentSpec struct {
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
	Angle  float64 `yaml:"angle"`
}

type AnimationComponentSpec struct {
	FrameCount    int     `yaml:"frame_count"`
	FrameDuration float64 `yaml:"frame_duration"`
	Loop          bool    `yaml:"loop"`
	Repeats       int     `yaml:"repeats"`
}

type DrawBodyComponentSpec struct {
	Shape  string    `yaml:"shape"`
	Color  YAMLColor `yaml:"color"`
	Radius float64   `yaml:"radius"`
}
