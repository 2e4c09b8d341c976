package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := mapEnvKey(envPattern.FindStringSubmatch(m)[1])
		return os.Getenv(key)
	})
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// expand $(ENV_VAR) placeholders before parsing
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Watch.Mode == "" {
		c.Watch.Mode = "auto"
	}
	if c.Watch.PollInterval == 0 {
		c.Watch.PollInterval = 5 * time.Second
	}
	if c.Watch.DebounceWindow == 0 {
		c.Watch.DebounceWindow = 500 * time.Millisecond
	}
	if c.Watch.StabilityWindow == 0 {
		c.Watch.StabilityWindow = time.Second
	}
}

func (c *Config) validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("config has no targets")
	}
	for i, t := range c.Targets {
		if t.File == "" {
			return fmt.Errorf("target %d has no file", i)
		}
		if t.Schedule == "" && !t.Watch {
			return fmt.Errorf("target %q has neither a schedule nor watch enabled", t.File)
		}
	}
	return nil
}
