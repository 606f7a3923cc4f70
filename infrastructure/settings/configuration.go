package settings

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

const DefaultDialTimeoutMs DialTimeoutMs = 3000

// Configuration is the on-disk configuration of the probe. Both YAML and
// JSON files are accepted; field names follow the JSON tags.
type Configuration struct {
	Read          ReadConfig    `json:"Read"`
	DialTimeoutMs DialTimeoutMs `json:"DialTimeoutMs"`
}

func (c Configuration) WithDefaults() Configuration {
	c.Read = c.Read.WithDefaults()
	if c.DialTimeoutMs == 0 {
		c.DialTimeoutMs = DefaultDialTimeoutMs
	}
	return c
}

func (c Configuration) Validate() error {
	if err := c.Read.Validate(); err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if c.DialTimeoutMs < 0 {
		return fmt.Errorf("DialTimeoutMs must be >= 0, got %d", c.DialTimeoutMs)
	}
	return nil
}

// LoadConfiguration reads path, applies defaults and validates the result.
func LoadConfiguration(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, err
	}

	var configuration Configuration
	if err := yaml.UnmarshalStrict(data, &configuration); err != nil {
		return Configuration{}, fmt.Errorf("parse configuration (%s): %w", path, err)
	}

	configuration = configuration.WithDefaults()
	if err := configuration.Validate(); err != nil {
		return Configuration{}, fmt.Errorf("invalid configuration (%s): %w", path, err)
	}
	return configuration, nil
}
