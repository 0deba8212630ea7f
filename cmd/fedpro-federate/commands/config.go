package commands

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration fedpro-federate reads before connecting.
type Config struct {
	RTI struct {
		Host string `yaml:"host"`
		Port uint16 `yaml:"port"`
	} `yaml:"rti"`

	Federation struct {
		Name       string   `yaml:"name"`
		FOMModules []string `yaml:"fom_modules"`
	} `yaml:"federation"`

	Federate struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	} `yaml:"federate"`

	RunTime time.Duration `yaml:"run_time"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// DefaultConfig returns the configuration fedpro-federate init writes out.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.RTI.Host = "127.0.0.1"
	cfg.RTI.Port = 15164
	cfg.Federation.Name = "ExampleFederation"
	cfg.Federation.FOMModules = []string{"foms/RestaurantFireFOM.xml"}
	cfg.Federate.Name = "simplefederate"
	cfg.Federate.Type = "simplefederate"
	cfg.RunTime = 60 * time.Second
	cfg.Logging.Level = "info"
	return cfg
}

// LoadConfig reads and parses a YAML configuration file, starting from
// DefaultConfig so a partial file still yields sane values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// WriteConfig saves cfg to path as YAML, refusing to overwrite an existing
// file unless force is set.
func WriteConfig(cfg *Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
