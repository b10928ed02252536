package prefabs

// ScenarioSpec lists the entities a run starts with.
type ScenarioSpec struct {
	Name     string          `yaml:"name"`
	Entities []PlacementSpec `yaml:"entities"`
	Random   []RandomSpec    `yaml:"random"`
}

// PlacementSpec places one prefab. ID names the placement so later ones can
// attach to it; Components overrides prefab blocks key by key.
type PlacementSpec struct {
	ID         string         `yaml:"id"`
	Prefab     string         `yaml:"prefab"`
	X          float64        `yaml:"x"`
	Y          float64        `yaml:"y"`
	VX         float64        `yaml:"vx"`
	VY         float64        `yaml:"vy"`
	Heading    float64        `yaml:"heading"`
	AttachTo   string         `yaml:"attach_to"`
	Components map[string]any `yaml:"components"`
	Repeat     *RepeatSpec    `yaml:"repeat"`
}

// RepeatSpec stamps a placement Count times, offset by DX/DY each step.
type RepeatSpec struct {
	Count int     `yaml:"count"`
	DX    float64 `yaml:"dx"`
	DY    float64 `yaml:"dy"`
}

// RandomSpec scatters Count copies of a prefab across the arena with random
// headings and speeds in [MinSpeed, MaxSpeed].
type RandomSpec struct {
	Prefab   string  `yaml:"prefab"`
	Count    int     `yaml:"count"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
	Margin   float64 `yaml:"margin"`
}

func LoadScenarioSpec(name string) (*ScenarioSpec, error) {
	spec, err := LoadSpec[ScenarioSpec](ScenarioPath(name))
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return &spec, nil
}
