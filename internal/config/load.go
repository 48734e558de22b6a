package config

import (
	"fmt"
	"os"
	"regexp"

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

// Load reads path, expands $(ENV_VAR) placeholders, and unmarshals
// the result into a Config. It does not validate target rule sets;
// that happens per-target via ruleset.Validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("config %s: no targets defined", path)
	}
	for i, t := range cfg.Targets {
		if t.Path == "" || t.Pattern == "" || t.Cron == "" {
			return nil, fmt.Errorf("config %s: target %d (%q): path, pattern and cron are all required", path, i, t.Name)
		}
	}

	return &cfg, nil
}
