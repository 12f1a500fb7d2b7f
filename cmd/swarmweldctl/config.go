package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the on-disk shape of a demo run: planning knobs, the agent
// fleet, and the toolpath. Producing a real toolpath (G-code parsing,
// translate/rotate/split preprocessing) is out of scope (spec.md §1); this
// is a fixed YAML fixture for exercising the scheduler end to end.
type Config struct {
	Planning PlanningConfig  `mapstructure:"planning"`
	Agents   []AgentConfig   `mapstructure:"agents"`
	Contours []ContourConfig `mapstructure:"contours"`
}

type PlanningConfig struct {
	RetractHeight         float64 `mapstructure:"retract_height"`
	CollisionOffset       float64 `mapstructure:"collision_offset"`
	CollisionGapThreshold float64 `mapstructure:"collision_gap_threshold"`
}

type AgentConfig struct {
	ID             string    `mapstructure:"id"`
	Home           [3]float64 `mapstructure:"home"`
	Base           [3]float64 `mapstructure:"base"`
	Velocity       float64   `mapstructure:"velocity"`
	TravelVelocity float64   `mapstructure:"travel_velocity"`
	Tools          []string  `mapstructure:"tools"`
	BoxDims        [3]float64 `mapstructure:"box_dims"`
}

type ContourConfig struct {
	ID        int         `mapstructure:"id"`
	Tool      string      `mapstructure:"tool"`
	Path      [][3]float64 `mapstructure:"path"`
	DependsOn []int       `mapstructure:"depends_on"`
}

// LoadConfig reads a YAML run fixture, following the teacher pack's
// stateless-new-instance-per-load viper usage (niceyeti-tabular's FromYaml)
// rather than viper's package-level global config.
func LoadConfig(path string) (*Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("swarmweldctl: reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("swarmweldctl: decoding config %s: %w", path, err)
	}
	return cfg, nil
}
