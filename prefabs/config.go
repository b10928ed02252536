package prefabs

import (
	"errors"
	"fmt"

	"github.com/protofarer/aion/audio"
	"gopkg.in/yaml.v3"
)

const GameConfigFile = "game.yaml"

var ErrInvalidConfig = errors.New("prefabs: invalid config")

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
}

type ArenaConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	SpawnPings bool    `yaml:"spawn_pings"`
}

type AudioConfig struct {
	Enabled    bool                    `yaml:"enabled"`
	SampleRate int                     `yaml:"sample_rate"`
	Volume     float64                 `yaml:"volume"`
	Cues       map[string]audio.Recipe `yaml:"cues"`
}

// GameConfig is the top-level game.yaml. Missing keys keep the values from
// DefaultGameConfig.
type GameConfig struct {
	Window   WindowConfig        `yaml:"window"`
	Arena    ArenaConfig         `yaml:"arena"`
	LogLevel string              `yaml:"log_level"`
	Scenario string              `yaml:"scenario"`
	Seed     int64               `yaml:"seed"`
	Audio    AudioConfig         `yaml:"audio"`
	Keys     map[string][]string `yaml:"keys"`
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		Window: WindowConfig{
			Title:  "aion",
			Width:  960,
			Height: 540,
			TPS:    60,
		},
		Arena: ArenaConfig{
			Width:      960,
			Height:     540,
			SpawnPings: true,
		},
		LogLevel: "info",
		Scenario: "shootingallery",
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: audio.DefaultSampleRate,
			Volume:     0.5,
		},
	}
}

func LoadGameConfig(filename string) (GameConfig, error) {
	cfg := DefaultGameConfig()
	data, err := Load(filename)
	if err != nil {
		return cfg, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c GameConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.Window.TPS)
	}
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("%w: arena %gx%g", ErrInvalidConfig, c.Arena.Width, c.Arena.Height)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.Audio.SampleRate)
	}
	return nil
}
