package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is either a filename (path) for the HDF5 output file,
	// or the empty string for an interactive OpenGL simulation.
	Output string `toml:"output" yaml:"output"`

	// Headless runs Steps steps without display or recording
	// and prints the final pose table.
	Headless bool `toml:"headless" yaml:"headless"`

	SwarmSize int     `toml:"swarm_size" yaml:"swarm_size"` // number of agents
	Steps     int     `toml:"steps" yaml:"steps"`           // number of time steps (hdf5 and headless only)
	Dt        float64 `toml:"dt" yaml:"dt"`                 // duration of time steps
	Speed     float64 `toml:"speed" yaml:"speed"`           // linear speed of agents

	// Deployment parameters
	Distribution      string        `toml:"distribution" yaml:"distribution"` // possible values: none, uniform, gaussian, data
	DataPath          string        `toml:"data_path" yaml:"data_path"`       // HDF5 recording (data only)
	PositionLimits    [2][3]float64 `toml:"position_limits" yaml:"position_limits"`
	OrientationLimits [2][3]float64 `toml:"orientation_limits" yaml:"orientation_limits"`

	// Behavior parameters
	Behaviors      []string   `toml:"behaviors" yaml:"behaviors"`
	Target         [3]float64 `toml:"target" yaml:"target"`
	RepulsionAlpha float64    `toml:"repulsion_alpha" yaml:"repulsion_alpha"`
	RepulsionD     float64    `toml:"repulsion_d" yaml:"repulsion_d"`
	GeofenceRadius float64    `toml:"geofence_radius" yaml:"geofence_radius"` // region of geofencing and area coverage

	Seed    uint64 `toml:"seed" yaml:"seed"`       // 0 picks a random seed
	Strict  bool   `toml:"strict" yaml:"strict"`   // degenerate agents keep their pose
	Verbose bool   `toml:"verbose" yaml:"verbose"` // development logging

	// Display parameters
	PlotLimits    [4]float64 `toml:"plot_limits" yaml:"plot_limits"` // xmin, ymin, xmax, ymax
	HeadingLength float64    `toml:"heading_length" yaml:"heading_length"`
}

// DefaultConf are the default parameters.
var DefaultConf = &Config{
	Output:            "",
	SwarmSize:         10,
	Steps:             100,
	Dt:                1,
	Speed:             0.5,
	Distribution:      "uniform",
	PositionLimits:    [2][3]float64{{-10, -10, 0}, {10, 10, 0}},
	OrientationLimits: [2][3]float64{{0, 0, -3.14159}, {0, 0, 3.14159}},
	Behaviors:         []string{"target"},
	Target:            [3]float64{30, 30, 30},
	RepulsionAlpha:    10,
	RepulsionD:        2,
	GeofenceRadius:    10,
	Strict:            true,
	PlotLimits:        [4]float64{-50, -50, 50, 50},
	HeadingLength:     1,
}

// ParseConfig parses the TOML or YAML config file whose path is provided.
// Files ending in .yaml or .yml are read as YAML.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := *DefaultConf
	conf.Behaviors = append([]string(nil), DefaultConf.Behaviors...)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &conf); err != nil {
			return nil, err
		}
	default:
		if _, err := toml.DecodeFile(path, &conf); err != nil {
			return nil, err
		}
	}
	return &conf, nil
}
