package project

import (
	"os"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"unstruct/internal/cppgen"
	"unstruct/internal/layout"
)

// Config carries generation settings kept outside the project document,
// typically per machine or per game title rather than per project.
type Config struct {
	// Aliases maps kind names ("int32", "hex", ...) to replacement C++
	// type names.
	Aliases      map[string]string `yaml:"aliases"`
	PointerWidth int               `yaml:"pointer_width"`
	Disabled     bool              `yaml:"disabled"`
}

// LoadConfig reads a YAML config from path. An empty path yields the
// zero config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// GeneratorOptions resolves the config into generator options, parsing
// alias keys into kinds.
func (c *Config) GeneratorOptions() (cppgen.Options, error) {
	opts := cppgen.Options{PointerWidth: c.PointerWidth}
	if err := checkPointerWidth(c.PointerWidth); err != nil {
		return opts, err
	}

	if len(c.Aliases) > 0 {
		opts.Aliases = make(map[layout.Kind]string, len(c.Aliases))
		for name, alias := range c.Aliases {
			k, err := layout.ParseKind(name)
			if err != nil {
				return opts, errors.Errorf("alias %q: %w", name, err)
			}
			opts.Aliases[k] = alias
		}
	}
	return opts, nil
}
