// Package config holds the YAML-serializable configuration surface: the PDG
// build-option toggles enumerated in the external-interfaces contract, and
// the analyzer-wide settings the CLI reads from a config file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/PandaAwAke/PropertyGraph/pdg"
)

// PDGOptions mirrors pdg.Options with yaml tags, decoupling the wire format
// from the build package's Go type.
type PDGOptions struct {
	BuildControl   bool `yaml:"buildControlDependence"`
	BuildData      bool `yaml:"buildDataDependence"`
	BuildExecution bool `yaml:"buildExecutionDependence"`

	ControlDependenceFromEnterToAllNodes       bool `yaml:"buildControlDependenceFromEnterToAllNodes"`
	ControlDependenceFromEnterToParameterNodes bool `yaml:"buildControlDependenceFromEnterToParameterNodes"`

	AvoidDefPropagation bool `yaml:"avoidDefPropagationWhenBuildingDataDependence"`
}

// ToOptions converts to the pdg package's build-time switches.
func (o PDGOptions) ToOptions() pdg.Options {
	return pdg.Options{
		BuildControl:                  o.BuildControl,
		BuildData:                     o.BuildData,
		BuildExecution:                o.BuildExecution,
		ControlDependenceFromEnterToAllNodes:          o.ControlDependenceFromEnterToAllNodes,
		ControlDependenceFromEnterToParameterNodes:    o.ControlDependenceFromEnterToParameterNodes,
		AvoidDefPropagationWhenBuildingDataDependence: o.AvoidDefPropagation,
	}
}

// DefaultPDGOptions mirrors pdg.DefaultOptions' defaults in the yaml shape.
func DefaultPDGOptions() PDGOptions {
	d := pdg.DefaultOptions()
	return PDGOptions{
		BuildControl:        d.BuildControl,
		BuildData:           d.BuildData,
		BuildExecution:      d.BuildExecution,
		AvoidDefPropagation: d.AvoidDefPropagationWhenBuildingDataDependence,
	}
}

// Config is the top-level analyzer/CLI configuration.
type Config struct {
	PDG PDGOptions `yaml:"pdg"`

	// IncludeUnexported mirrors teacher's info.Config.IncludeUnexported:
	// private methods are still analyzed by default.
	IncludeUnexported bool `yaml:"includeUnexported"`
	SkipTests         bool `yaml:"skipTests"`
	RecursivePackages bool `yaml:"recursivePackages"`

	// OutputFormat selects the CLI's emission mode ("json" or "dot").
	OutputFormat string `yaml:"outputFormat"`
}

// DefaultConfig mirrors teacher's info.DefaultConfig defaults.
func DefaultConfig() *Config {
	return &Config{
		PDG:               DefaultPDGOptions(),
		IncludeUnexported: true,
		SkipTests:         false,
		RecursivePackages: true,
		OutputFormat:      "json",
	}
}

// Load decodes a Config from YAML bytes, starting from DefaultConfig so an
// omitted field keeps its default rather than zeroing.
func Load(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

// LoadFile reads and decodes a Config from a YAML file on local disk.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	return Load(data)
}
