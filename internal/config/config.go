package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
)

// Config is the raw selection problem as declared by the user, before any
// canonicalization. Names are free-form strings; referential validation
// against the item universe happens in the model builder.
type Config struct {
	// Names is the item universe.
	Names []string `toml:"names" mapstructure:"names"`
	// Groups maps a group name to the names of its member items.
	Groups map[string][]string `toml:"props" mapstructure:"props"`
	// Limits holds the optional structural limits.
	Limits *Limits `toml:"limits" mapstructure:"limits"`
}

// Limits restricts which selections are acceptable.
type Limits struct {
	// AvoidGrouping lists sets of items that must not co-occur (two or
	// more selected) inside a single active group.
	AvoidGrouping [][]string `toml:"avoid-grouping" mapstructure:"avoid-grouping"`
	// IgnoreGroups lists groups that must never be active.
	IgnoreGroups []string `toml:"ignore-group" mapstructure:"ignore-group"`
}

// AvoidSets returns the declared avoid-grouping sets, or nil if no limits
// section was given.
func (c *Config) AvoidSets() [][]string {
	if c.Limits == nil {
		return nil
	}
	return c.Limits.AvoidGrouping
}

// IgnoredGroups returns the declared ignore-group names, or nil if no limits
// section was given.
func (c *Config) IgnoredGroups() []string {
	if c.Limits == nil {
		return nil
	}
	return c.Limits.IgnoreGroups
}

// Load reads and decodes a TOML selection problem from the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file (%s): %w", path, err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file (%s): %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a TOML selection problem from r.
func Parse(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromMap decodes an already-parsed nested mapping, for callers that load
// the configuration themselves in some other format.
func FromMap(raw map[string]interface{}) (*Config, error) {
	var cfg Config
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return nil, fmt.Errorf("error decoding config map: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Names) == 0 {
		return fmt.Errorf("invalid config: no names declared")
	}
	if len(c.Groups) == 0 {
		return fmt.Errorf("invalid config: no groups declared")
	}
	for name, members := range c.Groups {
		if len(members) == 0 {
			return fmt.Errorf("invalid config: group %q has no members", name)
		}
	}
	return nil
}
