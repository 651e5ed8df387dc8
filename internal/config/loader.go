package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// LocalPath is the project-relative config file checked after the user file.
const LocalPath = "configs/skyhop.yaml"

// Load loads and validates the game configuration.
// Search order: customPath -> ~/.skyhop/config.yaml -> ./configs/skyhop.yaml -> embedded default.
// Files are applied over the defaults, so a file may set only the fields it changes.
// A custom path that cannot be read or parsed is an error. Absent implicit
// files are skipped silently; broken ones are skipped with a warning on logger.
func Load(customPath string, logger *log.Logger) (Config, error) {
	return load(customPath, []string{userConfigPath(), LocalPath}, logger)
}

func load(customPath string, candidates []string, logger *log.Logger) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			logger.Warn("ignoring unreadable config file", "path", path, "err", err)
			continue
		}
		cfg, err := Parse(data)
		if err != nil {
			logger.Warn("ignoring invalid config file", "path", path, "err", err)
			continue
		}
		logger.Debug("loaded config", "path", path)
		return cfg, nil
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns ~/.skyhop/config.yaml, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skyhop", "config.yaml")
}
