package scoring

import (
	"os"

	"gopkg.in/yaml.v3"

	"taxsale-agent/internal/errors"
)

// LoadConfig reads a YAML scoring configuration from path. Fields absent
// from the file keep their defaults, so a partial override file is
// valid; an unreadable or malformed file is not.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.ConfigError("failed to read scoring config", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.ConfigError("failed to parse scoring config", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.ConfigError("invalid scoring config", err)
	}
	return cfg, nil
}
